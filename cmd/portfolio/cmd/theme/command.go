// Package theme provides commands that read and change the theme preference.
package theme

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikeshgamal24/portfolio"
	"github.com/nikeshgamal24/portfolio/cmd/application"
	"github.com/nikeshgamal24/portfolio/internal/cmd/alerts"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/logging"
	"github.com/nikeshgamal24/portfolio/pkg/theme"
)

// NewCommand creates the theme command. Without a subcommand it prints the
// current preference.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "theme",
		GroupID: "core",
		Short:   "Show or change the light/dark theme preference",
		Args:    cobra.NoArgs,
		Example: `  portfolio theme             # Print the current theme
  portfolio theme set dark    # Store a preference
  portfolio theme toggle      # Switch between light and dark`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return get(cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the current theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return get(cmd, app)
			},
		},
		&cobra.Command{
			Use:       "set <light|dark>",
			Short:     "Store a theme preference",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{theme.Light.String(), theme.Dark.String()},
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := theme.Parse(args[0])
				if err != nil {
					return err
				}
				themes, ctx, err := themesFor(cmd, app)
				if err != nil {
					return err
				}
				if err := themes.SetTheme(ctx, p); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), p)
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle",
			Short: "Switch between light and dark",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				themes, ctx, err := themesFor(cmd, app)
				if err != nil {
					return err
				}
				p, err := themes.ToggleTheme(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), p)
				return nil
			},
		},
	)

	return cmd
}

func get(cmd *cobra.Command, app application.Application) error {
	themes, ctx, err := themesFor(cmd, app)
	if err != nil {
		return err
	}
	p, err := themes.Theme(ctx)
	if err != nil {
		if !errors.IsValidationError(err) {
			return err
		}
		alert := alerts.NewWarning("using " + p.String()).WithError(err)
		if err := alerts.NewWriter(cmd.ErrOrStderr()).Write(alert); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), p)
	return nil
}

func themesFor(cmd *cobra.Command, app application.Application) (portfolio.Themes, context.Context, error) {
	pf, err := app.Portfolio()
	if err != nil {
		return nil, nil, err
	}
	if pf == nil {
		return nil, nil, errors.NewConfigError("portfolio", "client not configured", nil)
	}
	return pf, logging.WithLogger(cmd.Context(), app.Logger()), nil
}
