// Package transport provides the HTTP client used to talk to remote APIs:
// credential handling, common headers and response decoding into typed errors.
package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/nikeshgamal24/portfolio/pkg/constants"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http    *http.Client
	auth    Authenticator
	token   string
	headers http.Header
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithToken sets the credential passed to the Authenticator.
// An empty token disables authentication.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHeader sets a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// New creates a new transport client with the specified authenticator.
func New(auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		auth:    auth,
		headers: make(http.Header),
	}
	c.headers.Set("Accept", "application/json")
	c.headers.Set("User-Agent", constants.UserAgent)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasToken reports whether requests carry a credential.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// Do performs an HTTP request with authentication and common headers applied.
// Headers already present on req take precedence over the client defaults.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	for key, values := range c.headers {
		if req.Header.Get(key) != "" {
			continue
		}
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if c.token != "" {
		c.auth.Apply(req, c.token)
	}
	return c.http.Do(req)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(req)
}
