package portfolio

import (
	"context"
	"time"

	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/logging"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
	"github.com/nikeshgamal24/portfolio/pkg/reconciler"
)

// Compile-time interface checks to ensure proper implementation.
var (
	_ Projects  = (*client)(nil)
	_ Refresher = (*client)(nil)
)

// Projects provides read access to the reconciled list.
type Projects interface {
	// Result returns the current reconcile, reconciling first when there is
	// none yet or the last one is older than the cache TTL.
	Result(ctx context.Context) (*reconciler.Result, error)

	// Search filters the current result. The query is applied as given;
	// debouncing is up to interactive callers.
	Search(ctx context.Context, q projects.Query) (*reconciler.Listing, error)

	// Project returns the project with slug from the current result.
	Project(ctx context.Context, slug string) (*projects.Project, error)
}

// Refresher forces a new reconcile.
type Refresher interface {
	// Refresh drops the cached remote listing and reconciles again.
	Refresh(ctx context.Context) (*reconciler.Result, error)
}

// Result implements Projects.
func (c *client) Result(ctx context.Context) (*reconciler.Result, error) {
	c.mu.RLock()
	current, fetchedAt := c.current, c.fetchedAt
	c.mu.RUnlock()

	if current != nil && time.Since(fetchedAt) < c.options.cacheTTL {
		return current, nil
	}
	return c.reconcile(ctx)
}

// Search implements Projects.
func (c *client) Search(ctx context.Context, q projects.Query) (*reconciler.Listing, error) {
	res, err := c.Result(ctx)
	if err != nil {
		return nil, err
	}
	listing := res.Listing(q)
	return &listing, nil
}

// Project implements Projects.
func (c *client) Project(ctx context.Context, slug string) (*projects.Project, error) {
	res, err := c.Result(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := projects.FindBySlug(res.Projects, slug)
	if !ok {
		return nil, errors.NewNotFoundError("project", slug)
	}
	return &p, nil
}

// Refresh implements Refresher.
func (c *client) Refresh(ctx context.Context) (*reconciler.Result, error) {
	if c.remote != nil {
		if err := c.remote.Invalidate(ctx, c.options.username); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("Failed to invalidate cached listing")
		}
	}
	return c.reconcile(ctx)
}

// reconcile runs the reconciler, stores the result and fires hooks.
func (c *client) reconcile(ctx context.Context) (*reconciler.Result, error) {
	res, err := c.reconciler.Reconcile(ctx, c.options.username)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	previous := c.current
	c.current = res
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	c.hooks.trigger(previous, res)
	return res, nil
}
