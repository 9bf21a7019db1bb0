package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nikeshgamal24/portfolio/internal/server/response"
	ws "github.com/nikeshgamal24/portfolio/internal/server/websocket"
)

// HandleSearchWebSocket handles GET /api/v1/search/ws.
func (h *Handlers) HandleSearchWebSocket(w http.ResponseWriter, r *http.Request) {
	res, err := h.portfolio.Result(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	id := fmt.Sprintf("%s-%d", r.RemoteAddr, time.Now().UnixNano())
	ws.NewSession(id, h.hub, conn, res, h.searchDebounce).Start()
}
