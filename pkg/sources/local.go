package sources

import (
	"context"
	"io/fs"
	"os"
	"sync"

	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
)

// Static is a Local source over a list held in memory.
type Static struct {
	id   ID
	list []projects.Project
}

// NewStatic returns a Local source that always yields a copy of list.
func NewStatic(id ID, list []projects.Project) *Static {
	return &Static{id: id, list: list}
}

// ID implements Local.
func (s *Static) ID() ID { return s.id }

// Load implements Local.
func (s *Static) Load(_ context.Context) ([]projects.Project, error) {
	return append([]projects.Project(nil), s.list...), nil
}

// File is a Local source that parses a YAML or JSON project list.
// The file is read and validated once; later loads return the same list.
// An empty list is rejected since it is what gets shown when the remote fails.
type File struct {
	id       ID
	path     string
	readFile func(string) ([]byte, error)

	once sync.Once
	list []projects.Project
	err  error
}

// NewFile returns a Local source reading path from disk.
func NewFile(path string) *File {
	return &File{id: FileID, path: path, readFile: os.ReadFile}
}

// NewFS returns a Local source reading name from fsys.
func NewFS(id ID, fsys fs.FS, name string) *File {
	return &File{
		id:   id,
		path: name,
		readFile: func(n string) ([]byte, error) {
			return fs.ReadFile(fsys, n)
		},
	}
}

// ID implements Local.
func (f *File) ID() ID { return f.id }

// Path returns the file the list is read from.
func (f *File) Path() string { return f.path }

// Load implements Local.
func (f *File) Load(ctx context.Context) ([]projects.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.once.Do(func() {
		data, err := f.readFile(f.path)
		if err != nil {
			f.err = errors.WrapIO("read", f.path, err)
			return
		}
		f.list, f.err = projects.Parse(f.path, data)
		if f.err == nil && len(f.list) == 0 {
			f.err = errors.NewValidationError("projects", f.path, "fallback list is empty")
		}
	})
	if f.err != nil {
		return nil, f.err
	}
	return append([]projects.Project(nil), f.list...), nil
}
