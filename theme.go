package portfolio

import (
	"context"

	"github.com/nikeshgamal24/portfolio/pkg/theme"
)

// Compile-time interface check to ensure proper implementation.
var _ Themes = (*client)(nil)

// Themes reads and writes the viewer's theme preference.
type Themes interface {
	Theme(ctx context.Context) (theme.Preference, error)
	SetTheme(ctx context.Context, p theme.Preference) error
	ToggleTheme(ctx context.Context) (theme.Preference, error)
}

// Theme implements Themes.
func (c *client) Theme(ctx context.Context) (theme.Preference, error) {
	return c.themes.Load(ctx)
}

// SetTheme implements Themes.
func (c *client) SetTheme(ctx context.Context, p theme.Preference) error {
	return c.themes.Save(ctx, p)
}

// ToggleTheme implements Themes.
func (c *client) ToggleTheme(ctx context.Context) (theme.Preference, error) {
	return c.themes.Toggle(ctx)
}
