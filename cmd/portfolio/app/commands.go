package app

import (
	"github.com/spf13/cobra"

	"github.com/nikeshgamal24/portfolio/cmd/portfolio/cmd/profile"
	"github.com/nikeshgamal24/portfolio/cmd/portfolio/cmd/projects"
	"github.com/nikeshgamal24/portfolio/cmd/portfolio/cmd/serve"
	"github.com/nikeshgamal24/portfolio/cmd/portfolio/cmd/tags"
	"github.com/nikeshgamal24/portfolio/cmd/portfolio/cmd/theme"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(projects.NewCommand(a))
	rootCmd.AddCommand(tags.NewCommand(a))
	rootCmd.AddCommand(theme.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	// GitHub commands
	rootCmd.AddCommand(profile.NewUserCommand(a))
	rootCmd.AddCommand(profile.NewTopicsCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("portfolio %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
