// Package websocket provides live project search over WebSocket connections.
//
// Each connection is a Session holding its own query. Tag changes apply at
// once; term changes go through a debouncer so a burst of keystrokes yields
// one result message. The Hub pushes fresh results to every session when
// the reconciled list changes.
package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nikeshgamal24/portfolio/pkg/reconciler"
)

// Message types sent to clients.
const (
	TypeResults = "results"
	TypeError   = "error"
)

// Message represents a WebSocket message.
type Message struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Hub tracks live sessions and fans reconciled results out to them.
type Hub struct {
	sessions   map[*Session]bool
	broadcast  chan *reconciler.Result
	register   chan *Session
	unregister chan *Session
	done       chan struct{}
	mu         sync.RWMutex
	logger     *zerolog.Logger
}

// NewHub creates a new WebSocket hub.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		sessions:   make(map[*Session]bool),
		broadcast:  make(chan *reconciler.Result, 16),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run starts the hub's main loop and returns when ctx ends, closing every
// session. Should be called in a goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case s := <-h.register:
			h.mu.Lock()
			h.sessions[s] = true
			total := len(h.sessions)
			h.mu.Unlock()
			h.logger.Info().
				Str("session_id", s.id).
				Int("total_sessions", total).
				Msg("Search session opened")

		case s := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.sessions[s]; ok {
				delete(h.sessions, s)
				s.closeSend()
			}
			total := len(h.sessions)
			h.mu.Unlock()
			h.logger.Info().
				Str("session_id", s.id).
				Int("total_sessions", total).
				Msg("Search session closed")

		case result := <-h.broadcast:
			h.mu.RLock()
			for s := range h.sessions {
				s.update(result)
			}
			h.mu.RUnlock()

		case <-ctx.Done():
			h.mu.Lock()
			for s := range h.sessions {
				delete(h.sessions, s)
				s.closeSend()
			}
			h.mu.Unlock()
			return
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Publish hands a new reconciled result to every session.
func (h *Hub) Publish(result *reconciler.Result) {
	select {
	case h.broadcast <- result:
	default:
		h.logger.Warn().Msg("Broadcast channel full, result dropped")
	}
}

// SessionCount returns the number of open sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// add registers s unless the hub has stopped.
func (h *Hub) add(s *Session) bool {
	select {
	case h.register <- s:
		return true
	case <-h.done:
		return false
	}
}

// remove unregisters s. After the hub stopped, sessions were already closed.
func (h *Hub) remove(s *Session) {
	select {
	case h.unregister <- s:
	case <-h.done:
	}
}
