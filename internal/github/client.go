// Package github talks to the GitHub REST API and turns a user's public
// repositories into portfolio project records.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nikeshgamal24/portfolio/internal/transport"
	"github.com/nikeshgamal24/portfolio/pkg/constants"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
)

// Provider is the name used in errors and logs.
const Provider = "github"

// topicsAccept is the preview media type that exposes repository topics.
const topicsAccept = "application/vnd.github.mercy-preview+json"

// Client is a minimal read-only GitHub REST client.
type Client struct {
	baseURL   string
	transport *transport.Client
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	baseURL    string
	token      string
	httpClient *http.Client
	timeout    time.Duration
}

// WithBaseURL points the client at another API root, such as a test server.
func WithBaseURL(u string) Option {
	return func(c *clientConfig) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithToken attaches a personal access token to every request.
func WithToken(token string) Option {
	return func(c *clientConfig) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a GitHub client.
func NewClient(opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL: constants.GitHubAPIURL,
		timeout: constants.DefaultHTTPTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	topts := []transport.Option{
		transport.WithHTTPClient(cfg.httpClient),
		transport.WithTimeout(cfg.timeout),
		transport.WithToken(cfg.token),
		transport.WithHeader("Accept", constants.GitHubAcceptHeader),
	}
	return &Client{
		baseURL:   cfg.baseURL,
		transport: transport.New(authFor(cfg.token), topts...),
	}
}

// authFor picks the Authorization scheme for a token. Fine-grained tokens
// use Bearer; classic tokens keep the "token" scheme.
func authFor(token string) transport.Authenticator {
	if strings.HasPrefix(token, "github_pat_") {
		return &transport.BearerAuth{}
	}
	return &transport.TokenAuth{}
}

// Authenticated reports whether a token is configured.
func (c *Client) Authenticated() bool {
	return c.transport.HasToken()
}

// ListUserRepos returns the first page of a user's public repositories,
// most recently updated first.
func (c *Client) ListUserRepos(ctx context.Context, username string) ([]Repository, error) {
	if username == "" {
		return nil, errors.NewValidationError("username", username, "cannot be empty")
	}

	q := url.Values{}
	q.Set("per_page", fmt.Sprint(constants.GitHubPageSize))
	q.Set("sort", "updated")
	q.Set("direction", "desc")
	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())

	var repos []Repository
	if err := c.get(ctx, endpoint, "", &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// GetUser returns the public profile of username.
func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	if username == "" {
		return nil, errors.NewValidationError("username", username, "cannot be empty")
	}

	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username))
	var user User
	if err := c.get(ctx, endpoint, "", &user); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError("user", username)
		}
		return nil, err
	}
	return &user, nil
}

// RepoTopics returns the topic names of owner/repo.
func (c *Client) RepoTopics(ctx context.Context, owner, repo string) ([]string, error) {
	if owner == "" || repo == "" {
		return nil, errors.NewValidationError("repository", owner+"/"+repo, "owner and name are required")
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/topics", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))
	var resp topicsResponse
	if err := c.get(ctx, endpoint, topicsAccept, &resp); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError("repository", owner+"/"+repo)
		}
		return nil, err
	}
	if resp.Names == nil {
		resp.Names = []string{}
	}
	return resp.Names, nil
}

func (c *Client) get(ctx context.Context, endpoint, accept string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.WrapResource("create", "request", "GET "+endpoint, err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.transport.Do(req)
	if err != nil {
		return &errors.APIError{
			Provider:           Provider,
			Endpoint:           req.URL.Path,
			Message:            "request failed",
			RateLimitRemaining: -1,
			Err:                err,
		}
	}
	return transport.DecodeResponse(resp, Provider, target)
}
