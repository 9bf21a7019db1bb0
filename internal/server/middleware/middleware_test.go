package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikeshgamal24/portfolio/pkg/logging"
)

func TestChain_ExecutionOrder(t *testing.T) {
	var log []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				log = append(log, "start-"+name)
				next.ServeHTTP(w, r)
				log = append(log, "end-"+name)
			})
		}
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		log = append(log, "handler")
		w.WriteHeader(http.StatusOK)
	})

	Chain(mw("1"), mw("2"))(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"start-1", "start-2", "handler", "end-2", "end-1"}, log)
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		status int
		level  string
	}{
		{name: "GET request", method: http.MethodGet, path: "/api/v1/projects", status: http.StatusOK, level: "info"},
		{name: "POST refresh", method: http.MethodPost, path: "/api/v1/refresh", status: http.StatusOK, level: "info"},
		{name: "not found", method: http.MethodGet, path: "/api/v1/projects/nope", status: http.StatusNotFound, level: "info"},
		{name: "server error", method: http.MethodGet, path: "/api/v1/tags", status: http.StatusInternalServerError, level: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := logging.NewTestLogger(t)
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			rec := httptest.NewRecorder()
			Logger(tl.Logger)(handler).ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			require.Equal(t, 1, tl.Count())
			var entry map[string]any
			require.NoError(t, json.Unmarshal([]byte(tl.Lines()[0]), &entry))
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.method, entry["method"])
			assert.Equal(t, tt.path, entry["path"])
			assert.EqualValues(t, tt.status, entry["status"])
			assert.Equal(t, "HTTP request", entry["message"])
		})
	}
}

func TestLogger_ContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info().Msg("inside handler")
		assert.NotEmpty(t, logging.RequestID(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})

	chained := Chain(chimw.RequestID, Logger(tl.Logger))(handler)
	chained.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/theme", nil))

	tl.AssertContains(t, "inside handler")
	tl.AssertContains(t, `"path":"/api/v1/theme"`)
	tl.AssertContains(t, `"request_id"`)
}

func TestRecovery(t *testing.T) {
	tl := logging.NewTestLogger(t)
	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Recovery(tl.Logger)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Data  any `json:"data"`
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.Data)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	tl.AssertContains(t, "Panic recovered")
}

func TestRecovery_PassesThrough(t *testing.T) {
	tl := logging.NewTestLogger(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	Recovery(tl.Logger)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Zero(t, tl.Count())
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusTeapot, rw.statusCode)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Same(t, rec, rw.Unwrap())
}
