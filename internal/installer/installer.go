package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
)

// Defaults used when no option overrides them.
const (
	DefaultPackageManager = "npm"
	DefaultMinVersion     = "7.0.0"
)

// DefaultInstallArgs are passed to the package manager.
var DefaultInstallArgs = []string{"install"}

// Installer runs the package manager install in a project directory.
type Installer struct {
	packageManager string
	args           []string
	minVersion     string

	runner Runner
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	notify func(msg string)
	logger *slog.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithPackageManager sets the executable and its install arguments.
// Empty values keep the defaults.
func WithPackageManager(name string, args ...string) Option {
	return func(i *Installer) {
		if name != "" {
			i.packageManager = name
		}
		if len(args) > 0 {
			i.args = slices.Clone(args)
		}
	}
}

// WithMinVersion sets the lowest package manager version CheckVersion accepts.
func WithMinVersion(v string) Option {
	return func(i *Installer) {
		if v != "" {
			i.minVersion = v
		}
	}
}

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(i *Installer) {
		if r != nil {
			i.runner = r
		}
	}
}

// WithStdio sets the streams attached to the child process.
func WithStdio(in io.Reader, out, errOut io.Writer) Option {
	return func(i *Installer) {
		i.stdin = in
		i.stdout = out
		i.stderr = errOut
	}
}

// WithNotify registers a callback for user-facing status lines.
func WithNotify(fn func(msg string)) Option {
	return func(i *Installer) { i.notify = fn }
}

// WithLogger sets the installer logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Installer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New creates an Installer. Without options it runs `npm install` through
// os/exec with the process stdio attached.
func New(opts ...Option) *Installer {
	i := &Installer{
		packageManager: DefaultPackageManager,
		args:           slices.Clone(DefaultInstallArgs),
		minVersion:     DefaultMinVersion,
		runner:         ExecRunner{},
		stdin:          os.Stdin,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// PackageManager returns the configured executable name.
func (i *Installer) PackageManager() string {
	return i.packageManager
}

// Install runs the package manager synchronously in dir with the child's
// output streamed through. It returns an error wrapping
// ErrInstallInterrupted when the child was interrupted or ctx was cancelled,
// and one wrapping ErrInstallFailed for every other failure.
func (i *Installer) Install(ctx context.Context, dir string) error {
	cmd := Command{
		Name:   i.packageManager,
		Args:   i.args,
		Dir:    dir,
		Stdin:  i.stdin,
		Stdout: i.stdout,
		Stderr: i.stderr,
	}

	i.say("Installing dependencies...")
	i.logger.Info("installing dependencies", "dir", dir, "command", cmd.String())

	err := i.runner.Run(ctx, cmd)
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrInstallInterrupted) || ctx.Err() != nil {
		i.logger.Warn("install interrupted", "dir", dir, "error", err)
		if errors.Is(err, ErrInstallInterrupted) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInstallInterrupted, err)
	}

	i.logger.Error("install failed", "dir", dir, "error", err)
	return fmt.Errorf("%w: %s: %w", ErrInstallFailed, cmd, err)
}

func (i *Installer) say(msg string) {
	if i.notify != nil {
		i.notify(msg)
	}
}
