// Package tags provides the command that lists project tags.
package tags

import (
	"github.com/spf13/cobra"

	"github.com/nikeshgamal24/portfolio/cmd/application"
	"github.com/nikeshgamal24/portfolio/internal/cmd/alerts"
	"github.com/nikeshgamal24/portfolio/internal/cmd/output"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/logging"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
)

// NewCommand creates the tags command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "tags",
		GroupID: "core",
		Short:   "List the tags used by the reconciled projects",
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

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			res, err := pf.Result(ctx)
			if err != nil {
				return err
			}
			if err := alerts.NewWriter(cmd.ErrOrStderr()).Warn(res.Warning); err != nil {
				return err
			}

			formatter := output.NewFormatter(format)
			if !format.IsTable() {
				return formatter.Format(cmd.OutOrStdout(), projects.UniqueTags(res.Projects))
			}
			return formatter.Format(cmd.OutOrStdout(), output.TagsToTableData(res.Projects))
		},
	}
}
