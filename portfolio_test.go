package portfolio

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikeshgamal24/portfolio/internal/cache"
	"github.com/nikeshgamal24/portfolio/internal/github"
	"github.com/nikeshgamal24/portfolio/internal/utils/ptr"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
	"github.com/nikeshgamal24/portfolio/pkg/reconciler"
	"github.com/nikeshgamal24/portfolio/pkg/sources"
	"github.com/nikeshgamal24/portfolio/pkg/theme"
)

func localList() []projects.Project {
	return []projects.Project{
		{Slug: "bloodlink", Title: "BloodLink", Summary: "Blood donation platform", Tags: []string{"React", "Node.js"}},
		{Slug: "chatapp", Title: "Chat App", Summary: "Realtime chat", Tags: []string{"Socket.io"}},
	}
}

// fakeRemote serves a switchable result and counts fetches.
type fakeRemote struct {
	mu     sync.Mutex
	result sources.Result
	calls  atomic.Int32
}

func (f *fakeRemote) set(r sources.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.result = r
}

func (f *fakeRemote) ID() sources.ID { return sources.GitHubID }

func (f *fakeRemote) Fetch(_ context.Context, _ string) sources.Result {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

func newTestClient(t *testing.T, remote sources.Remote, opts ...Option) Client {
	t.Helper()
	base := []Option{
		WithUsername("tester"),
		WithLocalSource(sources.NewStatic(sources.FileID, localList())),
		WithRemoteSource(remote),
		WithThemeFile(filepath.Join(t.TempDir(), "theme.yaml")),
		WithCacheStore(cache.NewMemory(time.Minute, time.Minute)),
	}
	c, err := New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewValidation(t *testing.T) {
	_, err := New(WithUsername(""))
	assert.True(t, errors.IsValidationError(err))

	_, err = New(WithCacheTTL(0))
	assert.True(t, errors.IsValidationError(err))

	_, err = New(WithFilters(github.FilterConfig{MinStars: -1}))
	assert.True(t, errors.IsValidationError(err))

	empty := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("[]\n"), 0o644))
	_, err = New(WithLocalFile(empty), WithThemeFile(filepath.Join(t.TempDir(), "theme.yaml")))
	assert.True(t, errors.IsValidationError(err), "an empty fallback list is rejected up front")
}

func TestResultMergesRemote(t *testing.T) {
	remote := &fakeRemote{}
	remote.set(sources.Available([]projects.Project{
		{Slug: "cachekit", Title: "Cachekit", Stars: ptr.To(7)},
		{Slug: "bloodlink", Title: "BloodLink (GitHub)", Stars: ptr.To(3)},
	}))
	c := newTestClient(t, remote)

	res, err := c.Result(context.Background())
	require.NoError(t, err)

	assert.True(t, res.RemoteAvailable)
	assert.Empty(t, res.Warning)
	assert.Equal(t, []string{"cachekit", "bloodlink", "chatapp"}, projects.Slugs(res.Projects))
	assert.Equal(t, "BloodLink (GitHub)", res.Projects[1].Title)
	assert.Equal(t, "tester", c.Username())
}

func TestResultReusesCurrent(t *testing.T) {
	remote := &fakeRemote{}
	remote.set(sources.Available(localList()[:1]))
	c := newTestClient(t, remote)

	first, err := c.Result(context.Background())
	require.NoError(t, err)
	second, err := c.Result(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), remote.calls.Load())
}

func TestRemoteUnavailableFallsBack(t *testing.T) {
	remote := &fakeRemote{}
	remote.set(sources.Unavailable(errors.NewAPIError("github", 403, "rate limit exceeded")))
	c := newTestClient(t, remote, WithWarning("GitHub is down"))

	var reasons []error
	c.OnRemoteUnavailable(func(reason error) { reasons = append(reasons, reason) })

	res, err := c.Result(context.Background())
	require.NoError(t, err)

	assert.False(t, res.RemoteAvailable)
	assert.Equal(t, "GitHub is down", res.Warning)
	assert.Equal(t, projects.Slugs(localList()), projects.Slugs(res.Projects))
	require.Len(t, reasons, 1)
	assert.True(t, errors.IsRateLimited(reasons[0]))
}

func TestLocalOnly(t *testing.T) {
	remote := &fakeRemote{}
	c := newTestClient(t, remote, WithLocalOnly(true))

	res, err := c.Result(context.Background())
	require.NoError(t, err)

	assert.Empty(t, res.Warning)
	assert.Len(t, res.Projects, 2)
	assert.Zero(t, remote.calls.Load())

	// Refresh has no cache to invalidate.
	_, err = c.Refresh(context.Background())
	require.NoError(t, err)
}

func TestSearch(t *testing.T) {
	remote := &fakeRemote{}
	remote.set(sources.Available(nil))
	c := newTestClient(t, remote)

	listing, err := c.Search(context.Background(), projects.Query{Term: "CHAT"})
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Count)
	assert.Equal(t, 2, listing.Total)
	assert.Equal(t, "1 of 2 projects", listing.Label)

	listing, err = c.Search(context.Background(), projects.Query{Tags: []string{"React"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"bloodlink"}, projects.Slugs(listing.Projects))
}

func TestProject(t *testing.T) {
	c := newTestClient(t, &fakeRemote{})

	p, err := c.Project(context.Background(), "chatapp")
	require.NoError(t, err)
	assert.Equal(t, "Chat App", p.Title)

	_, err = c.Project(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestRefreshInvalidatesAndFiresHooks(t *testing.T) {
	remote := &fakeRemote{}
	remote.set(sources.Available([]projects.Project{
		{Slug: "cachekit", Title: "Cachekit"},
		{Slug: "oldtool", Title: "Old Tool"},
	}))
	c := newTestClient(t, remote)

	var added, updated, removed []string
	var reconciled int
	c.OnProjectAdded(func(p projects.Project) { added = append(added, p.Slug) })
	c.OnProjectUpdated(func(_, p projects.Project) { updated = append(updated, p.Slug) })
	c.OnProjectRemoved(func(p projects.Project) { removed = append(removed, p.Slug) })
	c.OnReconciled(func(_ *reconciler.Result) { reconciled++ })

	_, err := c.Result(context.Background())
	require.NoError(t, err)
	assert.Empty(t, added, "first reconcile reports no changes")

	remote.set(sources.Available([]projects.Project{
		{Slug: "cachekit", Title: "Cachekit v2"},
		{Slug: "newtool", Title: "New Tool"},
	}))

	// Still cached until refreshed.
	res, err := c.Result(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Cachekit", res.Projects[0].Title)

	res, err = c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Cachekit v2", res.Projects[0].Title)

	assert.Equal(t, []string{"newtool"}, added)
	assert.Equal(t, []string{"cachekit"}, updated)
	assert.Equal(t, []string{"oldtool"}, removed)
	assert.Equal(t, 2, reconciled)
	assert.Equal(t, int32(2), remote.calls.Load())
}

func TestThemes(t *testing.T) {
	c := newTestClient(t, &fakeRemote{})
	ctx := context.Background()

	p, err := c.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Light, p)

	p, err = c.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, p)

	require.NoError(t, c.SetTheme(ctx, theme.Light))
	p, err = c.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.Light, p)
}

func TestAutoRefresh(t *testing.T) {
	remote := &fakeRemote{}
	remote.set(sources.Available(nil))
	c := newTestClient(t, remote, WithAutoRefreshInterval(20*time.Millisecond))

	require.NoError(t, c.AutoRefreshOn())
	assert.Eventually(t, func() bool { return remote.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, c.AutoRefreshOff())

	after := remote.calls.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, after, remote.calls.Load(), "no refresh after AutoRefreshOff")

	// Turning it off twice is fine.
	require.NoError(t, c.AutoRefreshOff())
}

func TestAutoRefreshOffFromHook(t *testing.T) {
	remote := &fakeRemote{}
	remote.set(sources.Available(nil))
	c := newTestClient(t, remote, WithAutoRefreshInterval(10*time.Millisecond))

	stopped := make(chan struct{})
	var once sync.Once
	c.OnReconciled(func(*reconciler.Result) {
		once.Do(func() {
			assert.NoError(t, c.Close())
			close(stopped)
		})
	})

	require.NoError(t, c.AutoRefreshOn())
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Close from a hook did not return")
	}

	after := remote.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, remote.calls.Load(), "no refresh after Close")
	require.NoError(t, c.AutoRefreshOff())
}

func TestAutoRefreshRejectsBadInterval(t *testing.T) {
	c := newTestClient(t, &fakeRemote{}, WithAutoRefreshInterval(0))
	assert.True(t, errors.IsValidationError(c.AutoRefreshOn()))
}
