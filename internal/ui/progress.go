package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Progress creates progress indicators.
type Progress interface {
	// Start creates a determinate bar for total steps.
	Start(title string, total int) ProgressBar
	// Spinner creates an indeterminate spinner.
	Spinner(title string) Spinner
}

// ProgressBar tracks a fixed number of steps. Implementations are safe for
// concurrent use.
type ProgressBar interface {
	// Step sets the title and advances by one.
	Step(title string)
	Done()
}

// Spinner shows that a short task is running. Stop replaces it with a
// single "title: result" line.
type Spinner interface {
	Stop(result string)
}

// progressImpl implements the Progress interface.
type progressImpl struct {
	theme    *Theme
	headless *HeadlessManager
	writer   io.Writer
}

// NewProgress creates a Progress backed by the given theme and headless manager.
// Output goes to os.Stdout.
func NewProgress(theme *Theme, hm *HeadlessManager) Progress {
	return &progressImpl{theme: theme, headless: hm, writer: os.Stdout}
}

// NewProgressTo is NewProgress with headless output going to w.
func NewProgressTo(theme *Theme, hm *HeadlessManager, w io.Writer) Progress {
	return newProgressImpl(theme, hm, w)
}

func newProgressImpl(theme *Theme, hm *HeadlessManager, w io.Writer) *progressImpl {
	return &progressImpl{theme: theme, headless: hm, writer: w}
}

// Start creates a determinate progress bar with the given total.
// In headless mode it returns a log-based progress bar.
func (p *progressImpl) Start(title string, total int) ProgressBar {
	if p.headless.IsHeadless() || p.theme.NoColor {
		return newHeadlessProgressBar(p.theme, title, total, p.writer)
	}
	return newInteractiveProgressBar(p.theme, title, total)
}

// Spinner creates an indeterminate spinner.
// In headless mode nothing is shown until Stop.
func (p *progressImpl) Spinner(title string) Spinner {
	if p.headless.IsHeadless() || p.theme.NoColor {
		return &headlessSpinner{title: title, writer: p.writer}
	}
	return newInteractiveSpinner(p.theme, title, p.writer)
}

// --- interactiveSpinner ---

// spinnerStopMsg stops the spinner and carries the result line.
type spinnerStopMsg string

// spinnerModel is the bubbletea Model for the animated spinner.
type spinnerModel struct {
	spinner spinner.Model
	theme   *Theme
	title   string
	result  string
	done    bool
}

func newSpinnerModel(theme *Theme, title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if !theme.NoColor {
		s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Colors.Primary))
	}
	return spinnerModel{spinner: s, theme: theme, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerStopMsg:
		m.result = string(msg)
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View keeps the result line on screen once the spinner stops.
func (m spinnerModel) View() string {
	if m.done {
		return spinnerLine(m.title, m.theme.Muted(m.result))
	}
	return m.spinner.View() + " " + m.title + "\n"
}

func spinnerLine(title, result string) string {
	return fmt.Sprintf("%s: %s\n", title, result)
}

// interactiveSpinner implements Spinner with an animated bubbles spinner.
type interactiveSpinner struct {
	program *tea.Program
	once    sync.Once
}

// @MX:WARN: [AUTO] the program runs in its own goroutine; Stop must be called or it keeps the terminal
// @MX:REASON: [AUTO] the goroutine lives as long as the tea.Program
func newInteractiveSpinner(theme *Theme, title string, w io.Writer) *interactiveSpinner {
	// Input stays detached so the spinner never competes with a child
	// process for stdin.
	p := tea.NewProgram(newSpinnerModel(theme, title), tea.WithOutput(w), tea.WithInput(nil))
	go func() {
		_, _ = p.Run()
	}()
	return &interactiveSpinner{program: p}
}

// Stop halts the spinner and leaves the result line behind.
func (s *interactiveSpinner) Stop(result string) {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg(result))
		s.program.Wait()
	})
}

// --- interactiveProgressBar ---

// progressStepMsg advances the bar by one and sets its title.
type progressStepMsg string

// progressDoneMsg is sent to complete the progress bar.
type progressDoneMsg struct{}

// progressModel is the bubbletea Model for the animated progress bar.
type progressModel struct {
	bar     progress.Model
	title   string
	current int
	total   int
	done    bool
}

func newProgressModel(theme *Theme, title string, total int) progressModel {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
	)
	if !theme.NoColor {
		bar = progress.New(
			progress.WithGradient(theme.Colors.Primary, theme.Colors.Secondary),
			progress.WithWidth(40),
		)
	}
	return progressModel{bar: bar, title: title, total: total}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressStepMsg:
		m.title = string(msg)
		m.current = min(m.current+1, m.total)
		return m, nil
	case progressDoneMsg:
		m.current = m.total
		m.done = true
		return m, tea.Quit
	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.current) / float64(m.total)
	}
	return m.bar.ViewAs(pct) + " " + fmt.Sprintf("[%d/%d] %s\n", m.current, m.total, m.title)
}

// interactiveProgressBar implements ProgressBar with an animated bubbles progress bar.
type interactiveProgressBar struct {
	program *tea.Program
	once    sync.Once
}

// @MX:WARN: [AUTO] the program runs in its own goroutine; Stop or Done must be called or it keeps the terminal
// @MX:REASON: [AUTO] the goroutine lives as long as the tea.Program
func newInteractiveProgressBar(theme *Theme, title string, total int) *interactiveProgressBar {
	m := newProgressModel(theme, title, total)
	p := tea.NewProgram(m)

	pb := &interactiveProgressBar{program: p}

	go func() {
		_, _ = p.Run()
	}()

	return pb
}

// Step sets the title and advances by one.
func (b *interactiveProgressBar) Step(title string) {
	b.program.Send(progressStepMsg(title))
}

// Done completes the progress bar at 100%.
func (b *interactiveProgressBar) Done() {
	b.once.Do(func() {
		b.program.Send(progressDoneMsg{})
		b.program.Wait()
	})
}

// --- headlessProgressBar ---

// headlessProgressBar implements ProgressBar with plain text log output.
type headlessProgressBar struct {
	theme *Theme

	mu      sync.Mutex
	title   string
	total   int
	current int
	writer  io.Writer
}

// newHeadlessProgressBar creates a headless progress bar that writes log lines.
func newHeadlessProgressBar(theme *Theme, title string, total int, w io.Writer) *headlessProgressBar {
	return &headlessProgressBar{
		theme:  theme,
		title:  title,
		total:  total,
		writer: w,
	}
}

// Step sets the title, advances by one and writes a log line.
func (b *headlessProgressBar) Step(title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.title = title
	b.current = min(b.current+1, b.total)
	_, _ = fmt.Fprintf(b.writer, "[%d/%d] %s\n", b.current, b.total, b.title)
}

// Done completes the progress bar at 100%.
func (b *headlessProgressBar) Done() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = b.total
	_, _ = fmt.Fprintf(b.writer, "[%d/%d] %s\n", b.current, b.total, b.title)
}

// --- headlessSpinner ---

// headlessSpinner prints only the result line.
type headlessSpinner struct {
	title  string
	writer io.Writer
	once   sync.Once
}

// Stop writes the result line once.
func (s *headlessSpinner) Stop(result string) {
	s.once.Do(func() {
		_, _ = io.WriteString(s.writer, spinnerLine(s.title, result))
	})
}

// FileProgress adapts bar to the per-file callback of the project writer.
func FileProgress(bar ProgressBar) func(done, total int, path string) {
	return func(_, _ int, path string) {
		bar.Step(path)
	}
}
