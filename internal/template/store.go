package template

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

//go:embed all:templates
var embeddedTemplates embed.FS

// Descriptor identifies one template directory in a store.
type Descriptor struct {
	ID  string // <framework>-<language>
	Dir fs.FS  // Tree rooted at the template directory
}

// Store is a tree of template directories named <framework>-<language>.
type Store struct {
	fsys fs.FS
}

// NewStore creates a Store backed by fsys. In tests use testing/fstest.MapFS.
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// EmbeddedStore returns the store compiled into the binary.
func EmbeddedStore() *Store {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(fmt.Sprintf("embedded templates: %v", err))
	}
	return NewStore(sub)
}

// DirStore returns a store read from an on-disk directory with the same
// layout as the embedded one.
func DirStore(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template dir %s: not a directory", dir)
	}
	return NewStore(os.DirFS(dir)), nil
}

// Lookup returns the template directory for the answers' framework and
// language.
func (s *Store) Lookup(a *models.Answers) (Descriptor, error) {
	return s.Get(a.TemplateID())
}

// Get returns the template directory named id.
func (s *Store) Get(id string) (Descriptor, error) {
	if id == "" || !fs.ValidPath(id) || id == "." {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	info, err := fs.Stat(s.fsys, id)
	if err != nil || !info.IsDir() {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	dir, err := fs.Sub(s.fsys, id)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %s: %w", ErrTemplateNotFound, id, err)
	}
	return Descriptor{ID: id, Dir: dir}, nil
}

// IDs returns the sorted names of all template directories.
func (s *Store) IDs() []string {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	slices.Sort(ids)
	return ids
}
