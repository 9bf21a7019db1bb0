package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikeshgamal24/portfolio"
	"github.com/nikeshgamal24/portfolio/cmd/application"
	"github.com/nikeshgamal24/portfolio/internal/cmd/cmdtest"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
)

func newApp(t *testing.T, themeFile string) *application.Mock {
	pf := cmdtest.NewClient(t, cmdtest.Available(), portfolio.WithThemeFile(themeFile))
	return &application.Mock{
		PortfolioFunc: func() (portfolio.Client, error) { return pf, nil },
	}
}

func TestThemeLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	app := newApp(t, path)

	stdout, _, err := cmdtest.Execute(t, NewCommand(app))
	require.NoError(t, err)
	assert.Equal(t, "light", strings.TrimSpace(stdout))

	stdout, _, err = cmdtest.Execute(t, NewCommand(app), "set", "dark")
	require.NoError(t, err)
	assert.Equal(t, "dark", strings.TrimSpace(stdout))

	stdout, _, err = cmdtest.Execute(t, NewCommand(app), "get")
	require.NoError(t, err)
	assert.Equal(t, "dark", strings.TrimSpace(stdout))

	stdout, _, err = cmdtest.Execute(t, NewCommand(app), "toggle")
	require.NoError(t, err)
	assert.Equal(t, "light", strings.TrimSpace(stdout))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestThemeSetInvalid(t *testing.T) {
	app := newApp(t, filepath.Join(t.TempDir(), "theme.yaml"))

	_, _, err := cmdtest.Execute(t, NewCommand(app), "set", "purple")
	assert.True(t, errors.IsValidationError(err))

	_, _, err = cmdtest.Execute(t, NewCommand(app), "set")
	assert.Error(t, err)
}

func TestThemeUnknownStoredValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: purple\n"), 0o644))
	app := newApp(t, path)

	stdout, stderr, err := cmdtest.Execute(t, NewCommand(app), "get")
	require.NoError(t, err)
	assert.Equal(t, "light", strings.TrimSpace(stdout))
	assert.Contains(t, stderr, "Warning:")
}
