// Package application provides the application interface for portfolio commands.
//
// The Application interface is the contract between the CLI's App and the
// command implementations, so commands and the HTTP server can be tested
// with a Mock instead of a fully configured App.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            pf, err := app.Portfolio()
//	            if err != nil {
//	                return err
//	            }
//	            res, err := pf.Result(cmd.Context())
//	            // ... print res
//	            return err
//	        },
//	    }
//	}
package application

import (
	"github.com/rs/zerolog"

	"github.com/nikeshgamal24/portfolio"
)

// Application provides what commands need from the CLI app.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Portfolio returns the shared client, creating it on first use.
	Portfolio() (portfolio.Client, error)

	// PortfolioWithOptions returns a new client built from the configuration
	// plus opts. The caller owns it and must Close it.
	PortfolioWithOptions(opts ...portfolio.Option) (portfolio.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, wide, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
