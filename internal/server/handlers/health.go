package handlers

import (
	"net/http"
	"time"

	"github.com/nikeshgamal24/portfolio/internal/server/response"
)

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":          "ok",
		"username":        h.portfolio.Username(),
		"search_sessions": h.hub.SessionCount(),
		"uptime":          time.Since(h.startTime).Round(time.Second).String(),
	})
}
