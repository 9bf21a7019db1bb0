// Package cmdtest provides helpers for testing CLI commands against a
// portfolio client backed by in-memory sources.
package cmdtest

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/nikeshgamal24/portfolio"
	"github.com/nikeshgamal24/portfolio/internal/cache"
	"github.com/nikeshgamal24/portfolio/internal/utils/ptr"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
	"github.com/nikeshgamal24/portfolio/pkg/sources"
)

// Username is the account every test client lists.
const Username = "tester"

// LocalList returns the fallback list used by test clients.
func LocalList() []projects.Project {
	return []projects.Project{
		{Slug: "bloodlink", Title: "BloodLink", Summary: "Blood donation platform", Tech: []string{"React"}, Tags: []string{"react", "web"}},
		{Slug: "chatapp", Title: "Chat App", Summary: "Realtime chat", Tech: []string{"Socket.io"}, Tags: []string{"web"}},
	}
}

// RemoteList returns the listing served by Available.
func RemoteList() []projects.Project {
	updated := utc.Time{Time: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}
	return []projects.Project{
		{
			Slug:     "cachekit",
			Title:    "Cachekit",
			Summary:  "Cache toolkit",
			Tech:     []string{"Go"},
			Tags:     []string{"go", "cache"},
			Code:     ptr.String("https://github.com/tester/cachekit"),
			Stars:    ptr.Int(42),
			Language: ptr.String("Go"),
			Updated:  &updated,
		},
		{Slug: "chatapp", Title: "Chatapp", Summary: "Realtime chat over websockets", Tags: []string{"web"}, Stars: ptr.Int(3)},
	}
}

// Available returns a remote that always serves RemoteList.
func Available() sources.Remote {
	return sources.RemoteFunc(func(context.Context, string) sources.Result {
		return sources.Available(RemoteList())
	})
}

// Unavailable returns a remote that always fails with a rate limit.
func Unavailable() sources.Remote {
	return sources.RemoteFunc(func(context.Context, string) sources.Result {
		return sources.Unavailable(errors.NewAPIError("github", 403, "rate limited"))
	})
}

// NewClient returns a client over LocalList and remote. It is closed when
// the test ends.
func NewClient(t testing.TB, remote sources.Remote, opts ...portfolio.Option) portfolio.Client {
	t.Helper()
	base := []portfolio.Option{
		portfolio.WithUsername(Username),
		portfolio.WithLocalSource(sources.NewStatic(sources.FileID, LocalList())),
		portfolio.WithRemoteSource(remote),
		portfolio.WithThemeFile(filepath.Join(t.TempDir(), "theme.yaml")),
		portfolio.WithCacheStore(cache.NewMemory(time.Minute, 0)),
	}
	pf, err := portfolio.New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pf.Close() })
	return pf
}

// Execute runs cmd with args and returns what it wrote to stdout and stderr.
func Execute(t testing.TB, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// Local returns a source serving LocalList.
func Local() sources.Local {
	return sources.NewStatic(sources.FileID, LocalList())
}
