// Package profile provides commands that show GitHub account data.
package profile

import (
	"github.com/spf13/cobra"

	"github.com/nikeshgamal24/portfolio/cmd/application"
	"github.com/nikeshgamal24/portfolio/internal/cmd/output"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/logging"
)

// NewUserCommand creates the user command.
func NewUserCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "user",
		GroupID: "github",
		Short:   "Show the GitHub profile of the configured account",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			pf, err := app.Portfolio()
			if err != nil {
				return err
			}
			if pf == nil {
				return errors.NewConfigError("portfolio", "client not configured", nil)
			}

			ctx := logging.WithUsername(logging.WithLogger(cmd.Context(), app.Logger()), pf.Username())
			user, err := pf.User(ctx)
			if err != nil {
				return err
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), user)
		},
	}
}

// NewTopicsCommand creates the topics command.
func NewTopicsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "topics <repo>",
		GroupID: "github",
		Short:   "List the topics of one repository",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			pf, err := app.Portfolio()
			if err != nil {
				return err
			}
			if pf == nil {
				return errors.NewConfigError("portfolio", "client not configured", nil)
			}

			ctx := logging.WithUsername(logging.WithLogger(cmd.Context(), app.Logger()), pf.Username())
			topics, err := pf.Topics(ctx, args[0])
			if err != nil {
				return err
			}

			if !format.IsTable() {
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), topics)
			}
			rows := make([][]string, 0, len(topics))
			for _, topic := range topics {
				rows = append(rows, []string{topic})
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), output.Data{
				Headers: []string{"Topic"},
				Rows:    rows,
			})
		},
	}
}
