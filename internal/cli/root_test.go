package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"

	"github.com/looker-open-source/create-looker-extension/internal/config"
	"github.com/looker-open-source/create-looker-extension/internal/installer"
)

type fakeRunner struct {
	mu      sync.Mutex
	version string
	runErr  error
	ran     []installer.Command
}

func (f *fakeRunner) Run(_ context.Context, c installer.Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ran = append(f.ran, c)
	return f.runErr
}

func (f *fakeRunner) Output(context.Context, string, ...string) (string, error) {
	if f.version == "" {
		return "10.8.2", nil
	}
	return f.version, nil
}

type testEnv struct {
	*environment
	dir    string
	runner *fakeRunner
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv isolates the config lookup and the working directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	t.Setenv("HOME", dir)
	for _, k := range config.Keys {
		t.Setenv(config.EnvPrefix+"_"+strings.ToUpper(k), "")
	}
	work := filepath.Join(dir, "work")
	if err := os.MkdirAll(work, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(work)

	headless := true
	r := &fakeRunner{}
	var stdout, stderr bytes.Buffer
	return &testEnv{
		environment: &environment{
			in:       strings.NewReader(""),
			out:      &stdout,
			errOut:   &stderr,
			fs:       afero.NewOsFs(),
			runner:   r,
			headless: &headless,
		},
		dir:    work,
		runner: r,
		stdout: &stdout,
		stderr: &stderr,
	}
}

func (e *testEnv) run(args ...string) error {
	return execute(context.Background(), e.environment, append(args, "--no-color"))
}

func TestListCommand(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("list"); err != nil {
		t.Fatalf("list error: %v", err)
	}
	want := "react-javascript\nreact-typescript\nvanilla-javascript\nvanilla-typescript\n"
	if env.stdout.String() != want {
		t.Errorf("list output = %q, want %q", env.stdout.String(), want)
	}
}

func TestListCommand_TemplateDir(t *testing.T) {
	env := newTestEnv(t)
	tmpl := filepath.Join(env.dir, "templates")
	if err := os.MkdirAll(filepath.Join(tmpl, "custom-family"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := env.run("list", "--template-dir", tmpl); err != nil {
		t.Fatalf("list error: %v", err)
	}
	if env.stdout.String() != "custom-family\n" {
		t.Errorf("list output = %q", env.stdout.String())
	}
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("version"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(env.stdout.String(), "create-looker-extension ") {
		t.Errorf("version output = %q", env.stdout.String())
	}
}

func TestInvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	cfgPath := filepath.Join(env.dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("max_parallel_writes: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := env.run("list", "--config", cfgPath)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(env.stderr.String(), "Error: ") || !strings.Contains(env.stderr.String(), "max_parallel_writes") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}

func TestTooManyArgs(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run("a", "b"); err == nil {
		t.Fatal("expected an argument error")
	}
	if !strings.Contains(env.stderr.String(), "Error: ") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
}
