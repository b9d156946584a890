package project

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/spf13/afero"
)

// Guard owns a freshly created project directory. Release deletes the
// directory unless Commit was called first, so every exit path of a
// generation run either keeps a complete project or leaves nothing.
type Guard struct {
	fs   afero.Fs
	root string

	mu        sync.Mutex
	committed bool
	released  bool
}

// Acquire creates root and returns a guard for it. It fails with
// ErrProjectExists when anything already exists at root.
func Acquire(fsys afero.Fs, root string) (*Guard, error) {
	if _, err := fsys.Stat(root); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, root)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRoot, root, err)
	}

	if err := fsys.MkdirAll(root, 0o755); err != nil {
		return nil, &WriteError{Err: fmt.Errorf("create %s: %w", root, err)}
	}
	return &Guard{fs: fsys, root: root}, nil
}

// Root returns the guarded directory.
func (g *Guard) Root() string {
	return g.root
}

// Commit keeps the directory: a later Release becomes a no-op.
func (g *Guard) Commit() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.committed = true
}

// Committed reports whether Commit was called.
func (g *Guard) Committed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.committed
}

// Release removes the directory recursively unless the guard was
// committed. Only the first call does any work.
func (g *Guard) Release() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.committed || g.released {
		return nil
	}
	g.released = true
	if err := g.fs.RemoveAll(g.root); err != nil {
		return fmt.Errorf("remove %s: %w", g.root, err)
	}
	return nil
}
