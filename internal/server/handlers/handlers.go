// Package handlers provides HTTP request handlers for the portfolio API.
package handlers

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/nikeshgamal24/portfolio"
	ws "github.com/nikeshgamal24/portfolio/internal/server/websocket"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	portfolio      portfolio.Client
	hub            *ws.Hub
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	searchDebounce time.Duration
	startTime      time.Time
}

// New creates a new Handlers instance.
func New(
	pf portfolio.Client,
	hub *ws.Hub,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
	searchDebounce time.Duration,
) *Handlers {
	return &Handlers{
		portfolio:      pf,
		hub:            hub,
		upgrader:       upgrader,
		logger:         logger,
		searchDebounce: searchDebounce,
		startTime:      time.Now(),
	}
}
