// Package cache keeps recent remote project listings so repeated loads do not
// spend the GitHub rate limit. Stores hold listings keyed by username; Wrap
// puts a store in front of a remote source.
package cache

import (
	"context"
	"time"

	"github.com/nikeshgamal24/portfolio/pkg/projects"
)

// Store holds project listings with a per-entry TTL.
type Store interface {
	// Get returns the listing stored under key, if present and not expired.
	Get(ctx context.Context, key string) ([]projects.Project, bool)
	// Set stores list under key for ttl. A zero ttl uses the store default.
	Set(ctx context.Context, key string, list []projects.Project, ttl time.Duration) error
	// Delete removes key.
	Delete(ctx context.Context, key string) error
	// Clear removes every listing held by the store.
	Clear(ctx context.Context) error
}

// Stats describes a store's contents.
type Stats struct {
	Backend   string `json:"backend"`
	ItemCount int    `json:"item_count"`
}

// StatsProvider is implemented by stores that can report their size.
type StatsProvider interface {
	Stats(ctx context.Context) Stats
}
