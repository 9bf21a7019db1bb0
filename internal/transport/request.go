package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/logging"
)

// maxErrorBody bounds how much of a failed response is kept in the error message.
const maxErrorBody = 512

// DecodeResponse decodes a JSON response into target. Non-2xx responses become
// an *errors.APIError carrying the rate-limit headers; malformed bodies become
// an *errors.ParseError.
func DecodeResponse(resp *http.Response, provider string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Str("provider", provider).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewAPIError(resp, provider, body)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}

// NewAPIError builds an APIError from a failed response.
func NewAPIError(resp *http.Response, provider string, body []byte) *errors.APIError {
	apiErr := errors.NewAPIError(provider, resp.StatusCode, errorMessage(body, resp.Status))
	if resp.Request != nil && resp.Request.URL != nil {
		apiErr.Endpoint = resp.Request.URL.Path
	}
	if v := resp.Header.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiErr.RateLimitRemaining = n
		}
	}
	apiErr.RateLimitReset = resp.Header.Get("X-RateLimit-Reset")
	return apiErr
}

// errorMessage prefers the "message" field GitHub puts in error bodies.
func errorMessage(body []byte, status string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return status
	}
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}
	return msg
}
