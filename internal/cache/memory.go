package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/nikeshgamal24/portfolio/pkg/projects"
)

// Memory is an in-process Store backed by patrickmn/go-cache.
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates a memory store.
// defaultTTL applies when Set is called with a zero ttl; expired entries are
// purged every cleanupInterval.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{store: gocache.New(defaultTTL, cleanupInterval)}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) ([]projects.Project, bool) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, false
	}
	list, ok := v.([]projects.Project)
	if !ok {
		return nil, false
	}
	return append([]projects.Project(nil), list...), true
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, key string, list []projects.Project, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, append([]projects.Project(nil), list...), ttl)
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}

// Clear implements Store.
func (m *Memory) Clear(_ context.Context) error {
	m.store.Flush()
	return nil
}

// Stats implements StatsProvider.
func (m *Memory) Stats(_ context.Context) Stats {
	return Stats{Backend: "memory", ItemCount: m.store.ItemCount()}
}
