package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/nikeshgamal24/portfolio"
	"github.com/nikeshgamal24/portfolio/cmd/application"
	"github.com/nikeshgamal24/portfolio/internal/server/middleware"
	ws "github.com/nikeshgamal24/portfolio/internal/server/websocket"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/reconciler"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app       application.Application
	portfolio portfolio.Client
	hub       *ws.Hub
	upgrader  websocket.Upgrader
	logger    *zerolog.Logger
	config    Config
	ctx       context.Context
	cancel    context.CancelFunc
	startOnce sync.Once
	started   bool
	startTime time.Time
}

// New creates a new server instance with the given configuration.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultConfig().PathPrefix
	}
	if cfg.SearchDebounce < 0 {
		return nil, errors.NewValidationError("search_debounce", cfg.SearchDebounce, "cannot be negative")
	}

	pf, err := app.Portfolio()
	if err != nil {
		return nil, err
	}
	if pf == nil {
		return nil, errors.NewConfigError("server", "no portfolio client", nil)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSOrigins

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		app:       app,
		portfolio: pf,
		hub:       ws.NewHub(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || cors.Allows(origin)
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}

	// Every reconcile, whether from a refresh request or the auto refresh
	// ticker, reaches open search sessions.
	pf.OnReconciled(func(res *reconciler.Result) {
		s.hub.Publish(res)
	})

	logger.Debug().
		Str("username", pf.Username()).
		Dur("search_debounce", cfg.SearchDebounce).
		Msg("Server instance created")
	return s, nil
}

// Start starts the live search hub.
func (s *Server) Start() {
	s.startOnce.Do(func() {
		s.started = true
		go s.hub.Run(s.ctx)
		s.logger.Debug().Msg("Live search hub started")
	})
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops the hub, closing every search session.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()

	if !s.started {
		return nil
	}
	select {
	case <-s.hub.Done():
		s.logger.Info().Msg("Background services shut down successfully")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// Hub returns the live search hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
