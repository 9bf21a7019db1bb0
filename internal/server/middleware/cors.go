package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"
)

// CORSConfig controls which browser origins may call the API.
type CORSConfig struct {
	// AllowedOrigins lists accepted origins. Empty allows every origin.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	// MaxAge is how long a browser may cache a preflight answer.
	MaxAge time.Duration
}

// DefaultCORSConfig allows every origin for the verbs the API serves.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         24 * time.Hour,
	}
}

// AllowsAll reports whether every origin is accepted.
func (c CORSConfig) AllowsAll() bool {
	return len(c.AllowedOrigins) == 0 || slices.Contains(c.AllowedOrigins, "*")
}

// Allows reports whether origin may call the API.
func (c CORSConfig) Allows(origin string) bool {
	return c.AllowsAll() || slices.Contains(c.AllowedOrigins, origin)
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin.
func (c CORSConfig) allowOrigin(origin string) (string, bool) {
	switch {
	case c.AllowsAll():
		return "*", true
	case origin != "" && c.Allows(origin):
		return origin, true
	}
	return "", false
}

// CORS answers preflight requests and decorates responses with CORS headers.
// A preflight from an origin that is not allowed is rejected with 403.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(int(config.MaxAge / time.Second))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, ok := config.allowOrigin(r.Header.Get("Origin"))
			h := w.Header()
			if ok {
				h.Set("Access-Control-Allow-Origin", allowed)
				if allowed != "*" {
					h.Add("Vary", "Origin")
				}
			}
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			h.Set("Access-Control-Max-Age", maxAge)

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
