// Package theme holds the viewer's light/dark preference.
//
// The preference is a plain value owned by whoever renders; it is passed
// explicitly and persisted through a Store.
package theme

import (
	"strings"

	"github.com/nikeshgamal24/portfolio/pkg/errors"
)

// Preference is the colour scheme the site renders with.
type Preference string

// Supported preferences.
const (
	Light Preference = "light"
	Dark  Preference = "dark"
)

// Default is used when no preference has been stored.
const Default = Light

// Parse reads a preference, ignoring case and surrounding space.
func Parse(s string) (Preference, error) {
	switch Preference(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", errors.NewValidationError("theme", s, "must be light or dark")
}

// String returns the preference name.
func (p Preference) String() string {
	return string(p)
}

// IsValid reports whether p is light or dark.
func (p Preference) IsValid() bool {
	return p == Light || p == Dark
}

// IsDark reports whether p is the dark theme.
func (p Preference) IsDark() bool {
	return p == Dark
}

// Toggle returns the other preference. Unknown values toggle to dark, as
// they render as the default light theme.
func (p Preference) Toggle() Preference {
	if p == Dark {
		return Light
	}
	return Dark
}

// MarshalText implements encoding.TextMarshaler.
func (p Preference) MarshalText() ([]byte, error) {
	if p == "" {
		p = Default
	}
	return []byte(p), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Preference) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
