package cache

import (
	"context"
	"time"

	"github.com/nikeshgamal24/portfolio/pkg/logging"
	"github.com/nikeshgamal24/portfolio/pkg/sources"
)

// Remote is a sources.Remote that answers from a Store when it can.
type Remote struct {
	next  sources.Remote
	store Store
	ttl   time.Duration
}

// Wrap returns a remote that serves cached listings for username and fills
// the cache from next. Only available results are stored.
func Wrap(next sources.Remote, store Store, ttl time.Duration) *Remote {
	return &Remote{next: next, store: store, ttl: ttl}
}

// ID implements sources.Remote.
func (r *Remote) ID() sources.ID {
	return r.next.ID()
}

// Store returns the backing store.
func (r *Remote) Store() Store {
	return r.store
}

// Fetch implements sources.Remote.
func (r *Remote) Fetch(ctx context.Context, username string) sources.Result {
	logger := logging.FromContext(ctx)

	if list, ok := r.store.Get(ctx, username); ok {
		logger.Debug().Str("username", username).Int("projects", len(list)).Msg("Serving cached listing")
		return sources.Available(list)
	}

	res := r.next.Fetch(ctx, username)
	if !res.Available {
		return res
	}
	if err := r.store.Set(ctx, username, res.Projects, r.ttl); err != nil {
		logger.Warn().Err(err).Str("username", username).Msg("Failed to cache listing")
	}
	return res
}

// Invalidate drops the cached listing for username.
func (r *Remote) Invalidate(ctx context.Context, username string) error {
	return r.store.Delete(ctx, username)
}
