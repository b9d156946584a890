package project

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestGuard(t *testing.T) {
	t.Run("release_removes", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		g, err := Acquire(fsys, "/demo")
		if err != nil {
			t.Fatalf("Acquire error: %v", err)
		}
		if g.Root() != "/demo" {
			t.Errorf("Root() = %q", g.Root())
		}
		if err := afero.WriteFile(fsys, "/demo/src/index.js", []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := g.Release(); err != nil {
			t.Fatalf("Release error: %v", err)
		}
		if ok, _ := afero.Exists(fsys, "/demo"); ok {
			t.Error("directory should be removed")
		}
		// Idempotent.
		if err := g.Release(); err != nil {
			t.Errorf("second Release error: %v", err)
		}
	})

	t.Run("commit_keeps", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		g, err := Acquire(fsys, "/demo")
		if err != nil {
			t.Fatal(err)
		}
		g.Commit()
		if !g.Committed() {
			t.Error("Committed() = false after Commit")
		}
		if err := g.Release(); err != nil {
			t.Fatal(err)
		}
		if ok, _ := afero.DirExists(fsys, "/demo"); !ok {
			t.Error("committed directory should survive Release")
		}
	})

	t.Run("existing_path", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		if err := fsys.MkdirAll("/demo", 0o755); err != nil {
			t.Fatal(err)
		}
		if err := afero.WriteFile(fsys, "/demo/keep.txt", []byte("mine"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Acquire(fsys, "/demo")
		if !errors.Is(err, ErrProjectExists) {
			t.Fatalf("error = %v, want ErrProjectExists", err)
		}
		if ok, _ := afero.Exists(fsys, "/demo/keep.txt"); !ok {
			t.Error("existing content must not be touched")
		}
	})

	t.Run("read_only", func(t *testing.T) {
		_, err := Acquire(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/demo")
		if !errors.Is(err, ErrWriteFailed) {
			t.Errorf("error = %v, want ErrWriteFailed", err)
		}
	})
}

func TestResolveRoot(t *testing.T) {
	base := t.TempDir()

	got, err := ResolveRoot(base, "demo")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(base, "demo") {
		t.Errorf("ResolveRoot = %q", got)
	}

	for _, name := range []string{"", " ", ".", "..", "a/b", `a\b`} {
		if _, err := ResolveRoot(base, name); !errors.Is(err, ErrInvalidRoot) {
			t.Errorf("ResolveRoot(%q) error = %v, want ErrInvalidRoot", name, err)
		}
	}

	if _, err := ResolveRoot("", "demo"); err != nil {
		t.Errorf("empty base should use the working directory: %v", err)
	}
}
