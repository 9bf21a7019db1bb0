package portfolio

import (
	"reflect"
	"sync"

	"github.com/nikeshgamal24/portfolio/pkg/projects"
	"github.com/nikeshgamal24/portfolio/pkg/reconciler"
)

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*client)(nil)

// Hook function types for reconcile events
type (
	// ReconciledHook is called after every reconcile
	ReconciledHook func(result *reconciler.Result)

	// ProjectAddedHook is called when a slug appears that the previous result lacked
	ProjectAddedHook func(project projects.Project)

	// ProjectUpdatedHook is called when a project changed between results
	ProjectUpdatedHook func(old, updated projects.Project)

	// ProjectRemovedHook is called when a slug disappears
	ProjectRemovedHook func(project projects.Project)

	// RemoteUnavailableHook is called when a reconcile had to fall back
	RemoteUnavailableHook func(reason error)
)

// Hooks registers change callbacks. Callbacks run synchronously on the
// goroutine that reconciled, which is the auto-refresh goroutine for
// periodic refreshes. A callback may call AutoRefreshOff or Close; it must
// not block waiting on another reconcile.
type Hooks interface {
	OnReconciled(fn ReconciledHook)
	OnProjectAdded(fn ProjectAddedHook)
	OnProjectUpdated(fn ProjectUpdatedHook)
	OnProjectRemoved(fn ProjectRemovedHook)
	OnRemoteUnavailable(fn RemoteUnavailableHook)
}

// hooks manages event callbacks for list changes
type hooks struct {
	mu                  sync.RWMutex
	onReconciled        []ReconciledHook
	onProjectAdded      []ProjectAddedHook
	onProjectUpdated    []ProjectUpdatedHook
	onProjectRemoved    []ProjectRemovedHook
	onRemoteUnavailable []RemoteUnavailableHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnReconciled implements Hooks.
func (c *client) OnReconciled(fn ReconciledHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onReconciled = append(c.hooks.onReconciled, fn)
}

// OnProjectAdded implements Hooks.
func (c *client) OnProjectAdded(fn ProjectAddedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onProjectAdded = append(c.hooks.onProjectAdded, fn)
}

// OnProjectUpdated implements Hooks.
func (c *client) OnProjectUpdated(fn ProjectUpdatedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onProjectUpdated = append(c.hooks.onProjectUpdated, fn)
}

// OnProjectRemoved implements Hooks.
func (c *client) OnProjectRemoved(fn ProjectRemovedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onProjectRemoved = append(c.hooks.onProjectRemoved, fn)
}

// OnRemoteUnavailable implements Hooks.
func (c *client) OnRemoteUnavailable(fn RemoteUnavailableHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onRemoteUnavailable = append(c.hooks.onRemoteUnavailable, fn)
}

// trigger compares the previous and new result and fires the matching hooks.
// The first reconcile has no previous result and reports no project changes.
func (h *hooks) trigger(previous, current *reconciler.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !current.RemoteAvailable && current.Warning != "" {
		for _, hook := range h.onRemoteUnavailable {
			hook(current.Reason)
		}
	}

	if previous != nil {
		h.diff(previous.Projects, current.Projects)
	}

	for _, hook := range h.onReconciled {
		hook(current)
	}
}

// diff fires added, updated and removed hooks. h.mu must be held.
func (h *hooks) diff(oldList, newList []projects.Project) {
	oldBySlug := make(map[string]projects.Project, len(oldList))
	for _, p := range oldList {
		oldBySlug[p.Slug] = p
	}
	newBySlug := make(map[string]struct{}, len(newList))

	for _, p := range newList {
		newBySlug[p.Slug] = struct{}{}
		old, exists := oldBySlug[p.Slug]
		if !exists {
			for _, hook := range h.onProjectAdded {
				hook(p)
			}
			continue
		}
		if !reflect.DeepEqual(old, p) {
			for _, hook := range h.onProjectUpdated {
				hook(old, p)
			}
		}
	}

	for _, p := range oldList {
		if _, exists := newBySlug[p.Slug]; !exists {
			for _, hook := range h.onProjectRemoved {
				hook(p)
			}
		}
	}
}
