package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nikeshgamal24/portfolio/internal/server/response"
)

// HandleGetUser handles GET /api/v1/user.
func (h *Handlers) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.portfolio.User(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, user)
}

// HandleGetTopics handles GET /api/v1/topics/{repo}.
func (h *Handlers) HandleGetTopics(w http.ResponseWriter, r *http.Request) {
	repo := chi.URLParam(r, "repo")
	topics, err := h.portfolio.Topics(r.Context(), repo)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{
		"repo":   repo,
		"topics": topics,
	})
}
