package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/looker-open-source/create-looker-extension/internal/ui"
)

// printer writes styled status lines. Status goes to out, problems to errOut.
type printer struct {
	out    io.Writer
	errOut io.Writer
	theme  *ui.Theme
}

func newPrinter(out, errOut io.Writer, theme *ui.Theme) *printer {
	return &printer{out: out, errOut: errOut, theme: theme}
}

// Info prints a status line.
func (p *printer) Info(msg string) {
	_, _ = fmt.Fprintln(p.out, p.theme.Info(msg))
}

// Success prints a completion line.
func (p *printer) Success(msg string) {
	_, _ = fmt.Fprintln(p.out, p.theme.Success(msg))
}

// Plain prints msg unstyled.
func (p *printer) Plain(msg string) {
	_, _ = fmt.Fprintln(p.out, msg)
}

// Muted prints secondary detail.
func (p *printer) Muted(msg string) {
	_, _ = fmt.Fprintln(p.out, p.theme.Muted(msg))
}

// Warn prints a recoverable problem.
func (p *printer) Warn(msg string) {
	_, _ = fmt.Fprintln(p.errOut, p.theme.Warning(msg))
}

// Fail prints a fatal problem.
func (p *printer) Fail(msg string) {
	_, _ = fmt.Fprintln(p.errOut, p.theme.Error(msg))
}

// writeProgress starts a progress bar on the first written file and stops
// it on finish. It is called concurrently by the project writer.
type writeProgress struct {
	progress ui.Progress

	mu       sync.Mutex
	bar      ui.ProgressBar
	finished bool
}

func (w *writeProgress) report(_, total int, path string) {
	w.mu.Lock()
	if w.finished {
		w.mu.Unlock()
		return
	}
	if w.bar == nil {
		w.bar = w.progress.Start("Writing files", total)
	}
	bar := w.bar
	w.mu.Unlock()

	bar.Step(path)
}

func (w *writeProgress) finish() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.finished {
		return
	}
	w.finished = true
	if w.bar != nil {
		w.bar.Done()
	}
}
