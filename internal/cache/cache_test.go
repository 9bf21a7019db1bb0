package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikeshgamal24/portfolio/internal/utils/ptr"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
	"github.com/nikeshgamal24/portfolio/pkg/sources"
)

func setupTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()).Err())

	store := NewRedis(client, time.Minute)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func sample() []projects.Project {
	return []projects.Project{
		{Slug: "high", Title: "High", Tech: []string{"Go"}, Tags: []string{"demo"}, Stars: ptr.Int(10)},
		{Slug: "low", Title: "Low", Tech: []string{}, Tags: []string{}, Code: ptr.String("https://example.com/low")},
	}
}

// storeContract runs the behaviour every Store must share.
func storeContract(t *testing.T, store Store) {
	ctx := context.Background()

	_, ok := store.Get(ctx, "nobody")
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "alice", sample(), 0))
	got, ok := store.Get(ctx, "alice")
	require.True(t, ok)
	assert.Equal(t, sample(), got)

	require.NoError(t, store.Set(ctx, "bob", sample()[:1], time.Minute))
	require.NoError(t, store.Delete(ctx, "alice"))
	_, ok = store.Get(ctx, "alice")
	assert.False(t, ok)
	_, ok = store.Get(ctx, "bob")
	assert.True(t, ok)

	require.NoError(t, store.Clear(ctx))
	_, ok = store.Get(ctx, "bob")
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemory(time.Minute, time.Minute))
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(time.Minute, time.Minute)
	list := sample()
	require.NoError(t, store.Set(ctx, "alice", list, 0))

	list[0].Slug = "mutated"
	got, _ := store.Get(ctx, "alice")
	assert.Equal(t, "high", got[0].Slug)

	assert.Equal(t, Stats{Backend: "memory", ItemCount: 1}, store.Stats(ctx))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(time.Minute, time.Minute)
	require.NoError(t, store.Set(ctx, "alice", sample(), 10*time.Millisecond))

	assert.Eventually(t, func() bool {
		_, ok := store.Get(ctx, "alice")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestRedisStore(t *testing.T) {
	store, _ := setupTestRedis(t)
	storeContract(t, store)
}

func TestRedisStoreLayout(t *testing.T) {
	ctx := context.Background()
	store, mr := setupTestRedis(t)

	require.NoError(t, store.Set(ctx, "alice", sample(), 0))
	assert.True(t, mr.Exists("portfolio:repos:alice"))
	assert.Equal(t, time.Minute, mr.TTL("portfolio:repos:alice"))

	require.NoError(t, store.Set(ctx, "bob", sample(), 30*time.Second))
	assert.Equal(t, 30*time.Second, mr.TTL("portfolio:repos:bob"))
	assert.Equal(t, 2, store.Stats(ctx).ItemCount)

	// Keys outside the prefix survive Clear.
	require.NoError(t, mr.Set("other:key", "x"))
	require.NoError(t, store.Clear(ctx))
	assert.True(t, mr.Exists("other:key"))
	assert.False(t, mr.Exists("portfolio:repos:alice"))
}

func TestRedisStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := setupTestRedis(t)

	require.NoError(t, store.Set(ctx, "alice", sample(), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok := store.Get(ctx, "alice")
	assert.False(t, ok)
}

func TestRedisStoreCorruptEntry(t *testing.T) {
	ctx := context.Background()
	store, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("portfolio:repos:alice", "{not json"))
	_, ok := store.Get(ctx, "alice")
	assert.False(t, ok)
	assert.False(t, mr.Exists("portfolio:repos:alice"), "corrupt entries are dropped")
}

func TestRedisStoreUnreachable(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	store := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}), 0)
	defer store.Close()
	mr.Close()

	_, ok := store.Get(ctx, "alice")
	assert.False(t, ok, "a dead server reads as a miss")
	assert.Error(t, store.Set(ctx, "alice", sample(), 0))
}

func TestNewRedisFromURL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	store, err := NewRedisFromURL(context.Background(), "redis://"+mr.Addr()+"/0", 0)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, 5*time.Minute, store.defaultTTL)

	_, err = NewRedisFromURL(context.Background(), "not a url", 0)
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

type countingRemote struct {
	calls atomic.Int32
	res   sources.Result
}

func (c *countingRemote) ID() sources.ID { return sources.GitHubID }

func (c *countingRemote) Fetch(_ context.Context, _ string) sources.Result {
	c.calls.Add(1)
	return c.res
}

func TestWrapCachesAvailableResults(t *testing.T) {
	ctx := context.Background()
	next := &countingRemote{res: sources.Available(sample())}
	remote := Wrap(next, NewMemory(time.Minute, time.Minute), time.Minute)

	first := remote.Fetch(ctx, "alice")
	second := remote.Fetch(ctx, "alice")

	assert.True(t, first.Available)
	assert.True(t, second.Available)
	assert.Equal(t, first.Projects, second.Projects)
	assert.Equal(t, int32(1), next.calls.Load())
	assert.Equal(t, sources.GitHubID, remote.ID())

	require.NoError(t, remote.Invalidate(ctx, "alice"))
	remote.Fetch(ctx, "alice")
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestWrapNeverCachesUnavailable(t *testing.T) {
	ctx := context.Background()
	next := &countingRemote{res: sources.Unavailable(errors.ErrRateLimited)}
	store := NewMemory(time.Minute, time.Minute)
	remote := Wrap(next, store, time.Minute)

	for n := 0; n < 3; n++ {
		res := remote.Fetch(ctx, "alice")
		assert.False(t, res.Available)
		assert.ErrorIs(t, res.Reason, errors.ErrRateLimited)
	}
	assert.Equal(t, int32(3), next.calls.Load())
	assert.Zero(t, store.Stats(ctx).ItemCount)
}

func TestWrapCachesEmptyAvailableListing(t *testing.T) {
	ctx := context.Background()
	next := &countingRemote{res: sources.Available(nil)}
	remote := Wrap(next, NewMemory(time.Minute, time.Minute), time.Minute)

	remote.Fetch(ctx, "alice")
	res := remote.Fetch(ctx, "alice")

	assert.True(t, res.Available)
	assert.Empty(t, res.Projects)
	assert.Equal(t, int32(1), next.calls.Load())
}
