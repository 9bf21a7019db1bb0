package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nikeshgamal24/portfolio/internal/server/response"
	"github.com/nikeshgamal24/portfolio/pkg/logging"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
)

// HandleListProjects handles GET /api/v1/projects?q=&tag=.
// The query is applied at once; only live search debounces.
func (h *Handlers) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := projects.Query{
		Term: params.Get("q"),
		Tags: params["tag"],
	}

	listing, err := h.portfolio.Search(r.Context(), q)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, listing)
}

// HandleGetProject handles GET /api/v1/projects/{slug}.
func (h *Handlers) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	p, err := h.portfolio.Project(logging.WithSlug(r.Context(), slug), slug)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, p)
}

// HandleListTags handles GET /api/v1/tags.
func (h *Handlers) HandleListTags(w http.ResponseWriter, r *http.Request) {
	res, err := h.portfolio.Result(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{
		"tags": projects.UniqueTags(res.Projects),
	})
}

// HandleRefresh handles POST /api/v1/refresh.
func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	res, err := h.portfolio.Refresh(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, map[string]any{
		"projects":         len(res.Projects),
		"remote_available": res.RemoteAvailable,
		"remote_count":     res.RemoteCount,
		"local_count":      res.LocalCount,
		"source":           res.Source,
		"warning":          res.Warning,
		"duration":         res.Duration.String(),
	})
}
