package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"

	"github.com/looker-open-source/create-looker-extension/internal/template"
)

func TestWriter_Write(t *testing.T) {
	fsys := afero.NewMemMapFs()
	root := "/work/demo"

	var (
		mu    sync.Mutex
		calls []string
	)
	w := NewWriter(fsys, WithParallelWrites(2), WithProgress(func(done, total int, path string) {
		mu.Lock()
		defer mu.Unlock()
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		calls = append(calls, path)
	}))

	files := template.OutputMapping{
		"package.json":         "{}",
		"src/components/a.js":  "a",
		"scripts/bootstrap.sh": "#!/bin/sh\n",
	}
	if err := w.Write(context.Background(), files, root); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	for p, want := range files {
		got, err := afero.ReadFile(fsys, filepath.Join(root, filepath.FromSlash(p)))
		if err != nil {
			t.Errorf("read %s: %v", p, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", p, got, want)
		}
	}

	info, err := fsys.Stat(filepath.Join(root, "scripts", "bootstrap.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("bootstrap.sh mode = %v, want 0755", info.Mode().Perm())
	}
	info, err = fsys.Stat(filepath.Join(root, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("package.json mode = %v, want 0644", info.Mode().Perm())
	}

	if len(calls) != 3 {
		t.Errorf("progress calls = %d, want 3", len(calls))
	}
}

func TestWriter_Overwrites(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/p/README.md", []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	w := NewWriter(fsys)
	if err := w.Write(context.Background(), template.OutputMapping{"README.md": "new"}, "/p"); err != nil {
		t.Fatal(err)
	}
	got, _ := afero.ReadFile(fsys, "/p/README.md")
	if string(got) != "new" {
		t.Errorf("README.md = %q, want new", got)
	}
}

func TestWriter_CleanupOnFailure(t *testing.T) {
	t.Run("file_and_directory_clash", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "demo")
		w := NewWriter(afero.NewOsFs())

		// "a" cannot be both a file and the parent of "a/b".
		files := template.OutputMapping{"a": "x", "a/b": "y", "c.txt": "z"}
		err := w.Write(context.Background(), files, root)
		if !errors.Is(err, ErrWriteFailed) {
			t.Fatalf("error = %v, want ErrWriteFailed", err)
		}
		var we *WriteError
		if !errors.As(err, &we) || (we.Path != "a" && we.Path != "a/b") {
			t.Errorf("error = %#v, want WriteError for a or a/b", err)
		}
		if _, statErr := os.Stat(root); !os.IsNotExist(statErr) {
			t.Errorf("project root should be removed, stat error = %v", statErr)
		}
	})

	t.Run("read_only_fs", func(t *testing.T) {
		fsys := afero.NewReadOnlyFs(afero.NewMemMapFs())
		w := NewWriter(fsys)
		err := w.Write(context.Background(), template.OutputMapping{"index.js": "x"}, "/demo")
		if !errors.Is(err, ErrWriteFailed) {
			t.Fatalf("error = %v, want ErrWriteFailed", err)
		}
		if ok, _ := afero.Exists(fsys, "/demo"); ok {
			t.Error("project root should not exist")
		}
	})

	t.Run("path_traversal", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		w := NewWriter(fsys)
		err := w.Write(context.Background(), template.OutputMapping{"../escape.txt": "x"}, "/demo")
		if !errors.Is(err, template.ErrPathTraversal) {
			t.Fatalf("error = %v, want ErrPathTraversal", err)
		}
		if ok, _ := afero.Exists(fsys, "/escape.txt"); ok {
			t.Error("file escaped the project root")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		if err := fsys.MkdirAll("/demo", 0o755); err != nil {
			t.Fatal(err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewWriter(fsys).Write(ctx, template.OutputMapping{"a.txt": "a"}, "/demo")
		if !errors.Is(err, context.Canceled) || !errors.Is(err, ErrWriteFailed) {
			t.Fatalf("error = %v, want ErrWriteFailed wrapping context.Canceled", err)
		}
		if ok, _ := afero.DirExists(fsys, "/demo"); ok {
			t.Error("project root should be removed after cancellation")
		}
	})
}
