package sources_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
	"github.com/nikeshgamal24/portfolio/pkg/sources"
)

func TestResults(t *testing.T) {
	t.Run("unavailable", func(t *testing.T) {
		reason := errors.New("boom")
		res := sources.Unavailable(reason)
		assert.False(t, res.Available)
		assert.False(t, res.Usable())
		assert.Empty(t, res.Projects)
		assert.Equal(t, reason, res.Reason)
	})

	t.Run("available but empty", func(t *testing.T) {
		res := sources.Available(nil)
		assert.True(t, res.Available)
		assert.NotNil(t, res.Projects)
		assert.False(t, res.Usable(), "an empty listing falls back to local")
	})

	t.Run("available", func(t *testing.T) {
		res := sources.Available([]projects.Project{{Slug: "a"}})
		assert.True(t, res.Usable())
		assert.Nil(t, res.Reason)
	})
}

func TestRemoteFunc(t *testing.T) {
	var got string
	remote := sources.RemoteFunc(func(_ context.Context, username string) sources.Result {
		got = username
		return sources.Available(nil)
	})

	res := remote.Fetch(context.Background(), "octocat")
	assert.True(t, res.Available)
	assert.Equal(t, "octocat", got)
	assert.True(t, remote.ID().IsValid())
}

func TestStatic(t *testing.T) {
	list := []projects.Project{{Slug: "a"}, {Slug: "b"}}
	local := sources.NewStatic(sources.EmbeddedID, list)

	loaded, err := local.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, list, loaded)

	loaded[0].Slug = "mutated"
	assert.Equal(t, "a", list[0].Slug)
	assert.Equal(t, sources.EmbeddedID, local.ID())
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- slug: one\n- slug: two\n"), 0o644))

	local := sources.NewFile(path)
	loaded, err := local.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, projects.Slugs(loaded))
	assert.Equal(t, sources.FileID, local.ID())
	assert.Equal(t, path, local.Path())

	t.Run("missing file", func(t *testing.T) {
		_, err := sources.NewFile(filepath.Join(dir, "nope.yaml")).Load(context.Background())
		require.Error(t, err)
		var ioErr *errors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})

	t.Run("empty list", func(t *testing.T) {
		empty := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(empty, []byte("projects: []\n"), 0o644))
		_, err := sources.NewFile(empty).Load(context.Background())
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := local.Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFS(t *testing.T) {
	fsys := fstest.MapFS{
		"good.yaml":  {Data: []byte("projects:\n  - slug: x\n")},
		"dupes.yaml": {Data: []byte("- slug: x\n- slug: x\n")},
	}

	loaded, err := sources.NewFS(sources.EmbeddedID, fsys, "good.yaml").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, projects.Slugs(loaded))

	_, err = sources.NewFS(sources.EmbeddedID, fsys, "dupes.yaml").Load(context.Background())
	assert.True(t, errors.IsValidationError(err))
}
