// Package app provides the application container for the portfolio CLI.
// It centralizes configuration, logging and the lazily created portfolio
// client, and owns their lifecycle.
package app

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/nikeshgamal24/portfolio"
	"github.com/nikeshgamal24/portfolio/cmd/application"
	"github.com/nikeshgamal24/portfolio/internal/server"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App represents the portfolio application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	viper  *viper.Viper
	config *Config
	logger *zerolog.Logger
	stderr io.Writer

	// Portfolio client (lazy-initialized, singleton)
	mu        sync.RWMutex
	portfolio portfolio.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		viper:   viper.New(),
		stderr:  os.Stderr,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		config, err := LoadConfig(app.viper)
		if err != nil {
			return nil, errors.WrapResource("load", "config", "", err)
		}
		app.config = config
	}

	if app.logger == nil {
		logger := NewLogger(app.config, app.stderr)
		app.logger = &logger
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// ServerConfig returns the configured HTTP server settings.
func (a *App) ServerConfig() server.Config {
	return a.config.Server
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Portfolio returns the shared client, creating it lazily if needed.
func (a *App) Portfolio() (portfolio.Client, error) {
	a.mu.RLock()
	if a.portfolio != nil {
		pf := a.portfolio
		a.mu.RUnlock()
		return pf, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.portfolio != nil {
		return a.portfolio, nil
	}

	pf, err := portfolio.New(a.portfolioOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "portfolio", a.config.Username, err)
	}

	a.portfolio = pf
	return pf, nil
}

// PortfolioWithOptions returns a new client with opts applied after the
// configured ones. The caller must Close it.
func (a *App) PortfolioWithOptions(opts ...portfolio.Option) (portfolio.Client, error) {
	pf, err := portfolio.New(append(a.portfolioOptions(), opts...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "portfolio", "with custom options", err)
	}
	return pf, nil
}

// Shutdown stops background work of the shared client and releases it.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	pf := a.portfolio
	a.portfolio = nil
	a.mu.Unlock()

	if pf == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- pf.Close() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// portfolioOptions constructs client options from the configuration.
func (a *App) portfolioOptions() []portfolio.Option {
	opts := []portfolio.Option{
		portfolio.WithUsername(a.config.Username),
		portfolio.WithFilters(a.config.Filters),
	}
	if a.config.Token != "" {
		opts = append(opts, portfolio.WithToken(a.config.Token))
	}
	if a.config.BaseURL != "" {
		opts = append(opts, portfolio.WithBaseURL(a.config.BaseURL))
	}
	if a.config.LocalFile != "" {
		opts = append(opts, portfolio.WithLocalFile(a.config.LocalFile))
	}
	if a.config.CacheTTL > 0 {
		opts = append(opts, portfolio.WithCacheTTL(a.config.CacheTTL))
	}
	if a.config.RedisURL != "" {
		opts = append(opts, portfolio.WithRedisURL(a.config.RedisURL))
	}
	if a.config.ThemeFile != "" {
		opts = append(opts, portfolio.WithThemeFile(a.config.ThemeFile))
	}
	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration and skips loading one.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithPortfolio sets a custom client (useful for testing).
func WithPortfolio(pf portfolio.Client) Option {
	return func(a *App) error {
		a.portfolio = pf
		return nil
	}
}

// WithStderr redirects warnings printed while configuring the logger.
func WithStderr(w io.Writer) Option {
	return func(a *App) error {
		a.stderr = w
		return nil
	}
}
