// Package projects provides the command that lists reconciled projects.
package projects

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikeshgamal24/portfolio"
	"github.com/nikeshgamal24/portfolio/cmd/application"
	"github.com/nikeshgamal24/portfolio/internal/cmd/alerts"
	"github.com/nikeshgamal24/portfolio/internal/cmd/output"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/logging"
	pkgprojects "github.com/nikeshgamal24/portfolio/pkg/projects"
)

// Flags holds the projects command flags.
type Flags struct {
	Search    string
	Tags      []string
	LocalOnly bool
	Limit     int
}

// NewCommand creates the projects command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "projects [slug]",
		GroupID: "core",
		Short:   "List projects merged from GitHub and the local list",
		Aliases: []string{"project", "ls"},
		Args:    cobra.MaximumNArgs(1),
		Example: `  portfolio projects                       # List all projects
  portfolio projects bloodlink             # Show one project
  portfolio projects --search chat         # Match title, summary or description
  portfolio projects --tag go --tag web    # Projects carrying go or web
  portfolio projects --local-only          # Skip GitHub entirely`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			pf, release, err := client(app, flags.LocalOnly)
			if err != nil {
				return err
			}
			defer release()

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			if len(args) == 1 {
				return showProject(ctx, cmd, pf, format, args[0])
			}
			return listProjects(ctx, cmd, pf, format, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Search, "search", "s", "", "Case-insensitive search over title, summary and description")
	cmd.Flags().StringArrayVarP(&flags.Tags, "tag", "t", nil, "Show projects carrying any of these tags (repeatable)")
	cmd.Flags().BoolVar(&flags.LocalOnly, "local-only", false, "Use the local list only")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0, "Maximum number of projects to print")

	return cmd
}

// client returns the shared client, or a dedicated local-only one that the
// returned release func closes.
func client(app application.Application, localOnly bool) (portfolio.Client, func(), error) {
	if !localOnly {
		pf, err := app.Portfolio()
		if err != nil {
			return nil, nil, err
		}
		if pf == nil {
			return nil, nil, errors.NewConfigError("portfolio", "client not configured", nil)
		}
		return pf, func() {}, nil
	}

	pf, err := app.PortfolioWithOptions(portfolio.WithLocalOnly(true))
	if err != nil {
		return nil, nil, err
	}
	if pf == nil {
		return nil, nil, errors.NewConfigError("portfolio", "client not configured", nil)
	}
	return pf, func() {
		if err := pf.Close(); err != nil {
			app.Logger().Warn().Err(err).Msg("Failed to close local client")
		}
	}, nil
}

func listProjects(ctx context.Context, cmd *cobra.Command, pf portfolio.Projects, format output.Format, flags *Flags) error {
	if flags.Limit < 0 {
		return errors.NewValidationError("limit", flags.Limit, "cannot be negative")
	}

	listing, err := pf.Search(ctx, pkgprojects.Query{Term: flags.Search, Tags: flags.Tags})
	if err != nil {
		return err
	}
	if err := alerts.NewWriter(cmd.ErrOrStderr()).Warn(listing.Warning); err != nil {
		return err
	}

	if flags.Limit > 0 && len(listing.Projects) > flags.Limit {
		listing.Projects = listing.Projects[:flags.Limit]
	}

	formatter := output.NewFormatter(format)
	if !format.IsTable() {
		return formatter.Format(cmd.OutOrStdout(), listing)
	}

	data := output.ProjectsToTableData(listing.Projects, format == output.FormatWide, time.Now())
	if err := formatter.Format(cmd.OutOrStdout(), data); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), listing.Label)
	return nil
}

func showProject(ctx context.Context, cmd *cobra.Command, pf portfolio.Projects, format output.Format, slug string) error {
	project, err := pf.Project(logging.WithSlug(ctx, slug), slug)
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(format)
	if !format.IsTable() {
		return formatter.Format(cmd.OutOrStdout(), project)
	}
	return formatter.Format(cmd.OutOrStdout(), output.ProjectDetails(*project, time.Now()))
}
