package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// DefaultWaitDelay bounds how long a cancelled child may keep running
// after it has been sent an interrupt.
const DefaultWaitDelay = 5 * time.Second

// Command describes one child process invocation.
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// String returns the command line.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes child processes.
type Runner interface {
	// Run executes c and waits for it. A child killed by SIGINT (or exiting
	// with status 130) yields an error wrapping ErrInstallInterrupted.
	Run(ctx context.Context, c Command) error
	// Output executes name with args and returns its trimmed stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner is the os/exec backed Runner.
type ExecRunner struct {
	WaitDelay time.Duration
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, c Command) error {
	bin, err := exec.LookPath(c.Name)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Name, err)
	}

	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	// Let the child handle the interrupt the way it would from a terminal.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	if err := cmd.Run(); err != nil {
		if interruptedExit(err) {
			return fmt.Errorf("%w: %w", ErrInstallInterrupted, err)
		}
		return err
	}
	return nil
}

// Output implements Runner.
func (r ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	out, err := exec.CommandContext(ctx, bin, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// interruptedExit reports whether err describes a child stopped by SIGINT.
func interruptedExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ws.Signal() == syscall.SIGINT
	}
	return exitErr.ExitCode() == 130
}
