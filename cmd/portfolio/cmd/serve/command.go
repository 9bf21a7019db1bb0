// Package serve provides the command that runs the HTTP API server.
package serve

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nikeshgamal24/portfolio"
	"github.com/nikeshgamal24/portfolio/cmd/application"
	"github.com/nikeshgamal24/portfolio/internal/server"
	"github.com/nikeshgamal24/portfolio/pkg/constants"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
)

// AppContext is what the serve command needs from the app.
type AppContext interface {
	application.Application
	ServerConfig() server.Config
}

// NewCommand creates the serve command.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "core",
		Short:   "Serve the project API with live search over WebSocket",
		Long: `Start an HTTP server exposing the reconciled project list.

Endpoints (under the path prefix, /api/v1 by default):
  GET  /projects          filtered listing (?q=term&tag=a&tag=b)
  GET  /projects/{slug}   one project
  GET  /tags              unique tags
  POST /refresh           drop the cached GitHub listing and reconcile
  GET  /theme, PUT /theme theme preference
  GET  /user, /topics/{repo}
  GET  /search/ws         debounced live search over WebSocket`,
		Example: `  portfolio serve
  portfolio serve --port 3000 --cors-origins https://example.com
  portfolio serve --redis-url redis://localhost:6379/0 --cache-ttl 10m
  portfolio serve --auto-refresh 30m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, opts, err := configFromFlags(cmd, app.ServerConfig())
			if err != nil {
				return err
			}
			return run(cmd.Context(), app, cfg, opts)
		},
	}

	cmd.Flags().String("host", "", "Bind address (default from config, localhost)")
	cmd.Flags().IntP("port", "p", 0, "Server port (default from config, 8080)")
	cmd.Flags().StringSlice("cors-origins", nil, "Allowed CORS origins (comma-separated, empty allows all)")
	cmd.Flags().Duration("cache-ttl", 0, "How long a GitHub listing is reused")
	cmd.Flags().String("redis-url", "", "Share the GitHub listing cache through Redis")
	cmd.Flags().Duration("debounce", 0, "Live search debounce delay")
	cmd.Flags().Duration("auto-refresh", 0, "Refresh interval for the project list (0 disables)")

	return cmd
}

// configFromFlags overlays explicitly set flags on the configured values.
func configFromFlags(cmd *cobra.Command, cfg server.Config) (server.Config, []portfolio.Option, error) {
	flags := cmd.Flags()
	var opts []portfolio.Option

	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
	}
	if flags.Changed("debounce") {
		cfg.SearchDebounce, _ = flags.GetDuration("debounce")
	}
	if flags.Changed("cache-ttl") {
		ttl, _ := flags.GetDuration("cache-ttl")
		opts = append(opts, portfolio.WithCacheTTL(ttl))
	}
	if flags.Changed("redis-url") {
		url, _ := flags.GetString("redis-url")
		opts = append(opts, portfolio.WithRedisURL(url))
	}
	if flags.Changed("auto-refresh") {
		interval, _ := flags.GetDuration("auto-refresh")
		if interval > 0 {
			opts = append(opts,
				portfolio.WithAutoRefreshInterval(interval),
				portfolio.WithAutoRefresh(true),
			)
		}
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return cfg, nil, errors.NewValidationError("port", cfg.Port, "must be between 0 and 65535")
	}
	return cfg, opts, nil
}

// serverApp hands the server a client dedicated to this command.
type serverApp struct {
	application.Application
	client portfolio.Client
}

// Portfolio returns the dedicated client.
func (a serverApp) Portfolio() (portfolio.Client, error) {
	return a.client, nil
}

func run(ctx context.Context, app application.Application, cfg server.Config, opts []portfolio.Option) error {
	logger := app.Logger()

	pf, err := app.PortfolioWithOptions(opts...)
	if err != nil {
		return err
	}
	if pf == nil {
		return errors.NewConfigError("portfolio", "client not configured", nil)
	}
	defer func() {
		if err := pf.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close portfolio client")
		}
	}()

	srv, err := server.New(serverApp{Application: app, client: pf}, cfg)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return errors.WrapIO("listen", cfg.Addr(), err)
	}

	return serve(ctx, ln, srv, cfg, logger)
}

// serve runs srv on ln until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, srv *server.Server, cfg server.Config, logger *zerolog.Logger) error {
	srv.Start()

	httpServer := &http.Server{
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", ln.Addr().String()).
			Str("prefix", cfg.PathPrefix).
			Strs("cors_origins", cfg.CORSOrigins).
			Dur("search_debounce", cfg.SearchDebounce).
			Msg("Server starting")

		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	// Hijacked WebSocket connections are not tracked by http.Server, so the
	// hub closes them first.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("Search hub shutdown incomplete")
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	<-serverErr

	logger.Info().Dur("uptime", time.Since(srv.StartTime())).Msg("Server stopped gracefully")
	return nil
}
