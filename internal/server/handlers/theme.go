package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nikeshgamal24/portfolio/internal/server/response"
	"github.com/nikeshgamal24/portfolio/pkg/theme"
)

// themeBody is the request and response shape of /api/v1/theme.
type themeBody struct {
	Theme string `json:"theme"`
	Dark  bool   `json:"dark"`
}

func newThemeBody(p theme.Preference) themeBody {
	return themeBody{Theme: p.String(), Dark: p.IsDark()}
}

// HandleGetTheme handles GET /api/v1/theme.
func (h *Handlers) HandleGetTheme(w http.ResponseWriter, r *http.Request) {
	p, err := h.portfolio.Theme(r.Context())
	if err != nil {
		// The default is still usable; the stored value was not.
		h.logger.Warn().Err(err).Msg("Stored theme preference ignored")
	}
	response.OK(w, newThemeBody(p))
}

// HandlePutTheme handles PUT /api/v1/theme with {"theme": "dark"}.
func (h *Handlers) HandlePutTheme(w http.ResponseWriter, r *http.Request) {
	var body themeBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}

	p, err := theme.Parse(body.Theme)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	if err := h.portfolio.SetTheme(r.Context(), p); err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, newThemeBody(p))
}
