package github

import (
	"context"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/logging"
	"github.com/nikeshgamal24/portfolio/pkg/sources"
)

// Lister is the part of Client a Source needs.
type Lister interface {
	ListUserRepos(ctx context.Context, username string) ([]Repository, error)
}

// Source is the remote project source backed by GitHub.
// Fetch never fails: every error becomes an unavailable result.
type Source struct {
	client        Lister
	filter        FilterConfig
	authenticated bool
}

// NewSource creates a remote source listing repositories through client.
func NewSource(client *Client, filter FilterConfig) *Source {
	return &Source{client: client, filter: filter, authenticated: client.Authenticated()}
}

// NewSourceFromLister creates a source over any Lister.
func NewSourceFromLister(l Lister, filter FilterConfig) *Source {
	return &Source{client: l, filter: filter}
}

// ID implements sources.Remote.
func (s *Source) ID() sources.ID {
	return sources.GitHubID
}

// Filter returns the filter applied to fetched repositories.
func (s *Source) Filter() FilterConfig {
	return s.filter
}

// Fetch implements sources.Remote.
func (s *Source) Fetch(ctx context.Context, username string) sources.Result {
	logger := logging.FromContext(ctx).With().
		Str("source", s.ID().String()).
		Str("username", username).
		Logger()

	repos, err := s.client.ListUserRepos(ctx, username)
	if err != nil {
		s.logFailure(&logger, err)
		return sources.Unavailable(err)
	}

	list := ToProjects(repos, s.filter)
	logger.Debug().
		Int("repositories", len(repos)).
		Int("kept", len(list)).
		Msg("Fetched GitHub repositories")
	return sources.Available(list)
}

func (s *Source) logFailure(logger *zerolog.Logger, err error) {
	if errors.IsRateLimited(err) {
		event := logger.Warn().Err(err).Bool("authenticated", s.authenticated)
		var apiErr *errors.APIError
		if errors.As(err, &apiErr) {
			if reset, ok := parseReset(apiErr.RateLimitReset); ok {
				event = event.Time("reset_at", reset).Str("resets", humanize.Time(reset))
			}
		}
		if !s.authenticated {
			event = event.Str("hint", "set GITHUB_TOKEN to raise the rate limit")
		}
		event.Msg("GitHub API rate limit exceeded")
		return
	}
	logger.Error().Err(err).Msg("Failed to fetch GitHub repositories")
}

func parseReset(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}
