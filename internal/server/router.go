package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nikeshgamal24/portfolio/internal/server/handlers"
	"github.com/nikeshgamal24/portfolio/internal/server/middleware"
	"github.com/nikeshgamal24/portfolio/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	r := chi.NewRouter()

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = s.config.CORSOrigins

	r.Use(middleware.Recovery(s.logger))
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.CORS(cors))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, "Not found", req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		response.MethodNotAllowed(w, req.Method)
	})

	h := handlers.New(
		s.portfolio,
		s.hub,
		s.upgrader,
		s.logger,
		s.config.SearchDebounce,
	)

	// Favicon handler (return 204 No Content to avoid 404 logs)
	r.Get("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/health", h.HandleHealth)

	r.Route(s.config.PathPrefix, func(r chi.Router) {
		r.Get("/health", h.HandleHealth)

		r.Get("/projects", h.HandleListProjects)
		r.Get("/projects/{slug}", h.HandleGetProject)
		r.Get("/tags", h.HandleListTags)
		r.Post("/refresh", h.HandleRefresh)

		r.Get("/theme", h.HandleGetTheme)
		r.Put("/theme", h.HandlePutTheme)

		r.Get("/user", h.HandleGetUser)
		r.Get("/topics/{repo}", h.HandleGetTopics)

		r.Get("/search/ws", h.HandleSearchWebSocket)
	})

	return r
}
