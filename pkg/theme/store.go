package theme

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/nikeshgamal24/portfolio/pkg/constants"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/logging"
)

// file is the on-disk layout of the preference.
type file struct {
	Theme string `yaml:"theme"`
}

// Store persists a single preference in a YAML file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a store writing to path. An empty path uses DefaultPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// DefaultPath is theme.yaml under the user configuration directory
// ($XDG_CONFIG_HOME/portfolio on Linux).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "portfolio", "theme.yaml")
}

// Path returns the file the store uses.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored preference. A missing, empty or unreadable file
// yields Default; only an unknown theme name is reported as an error.
func (s *Store) Load(ctx context.Context) (Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.FromContext(ctx).Warn().Err(err).Str("path", s.path).Msg("Cannot read theme file, using default")
		}
		return Default, nil
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("path", s.path).Msg("Malformed theme file, using default")
		return Default, nil
	}
	if f.Theme == "" {
		return Default, nil
	}
	p, err := Parse(f.Theme)
	if err != nil {
		return Default, err
	}
	return p, nil
}

// Save writes p, creating the parent directory if needed.
func (s *Store) Save(ctx context.Context, p Preference) error {
	if !p.IsValid() {
		return errors.NewValidationError("theme", p, "must be light or dark")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(s.path), err)
	}
	data, err := yaml.Marshal(file{Theme: p.String()})
	if err != nil {
		return errors.WrapParse("yaml", s.path, err)
	}
	if err := os.WriteFile(s.path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", s.path, err)
	}

	logging.FromContext(ctx).Debug().Str("theme", p.String()).Str("path", s.path).Msg("Saved theme preference")
	return nil
}

// Toggle flips the stored preference and returns the new value.
func (s *Store) Toggle(ctx context.Context) (Preference, error) {
	current, err := s.Load(ctx)
	if err != nil {
		current = Default
	}
	next := current.Toggle()
	if err := s.Save(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}
