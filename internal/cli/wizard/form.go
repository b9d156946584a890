package wizard

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

// Brand colors for the dark palette.
const (
	ColorPrimary   = "#7B61FF"
	ColorSecondary = "#4285F4"
	ColorSuccess   = "#10B981"
	ColorError     = "#EF4444"
	ColorText      = "#F9FAFB"
	ColorMuted     = "#6B7280"
	ColorBorder    = "#4B5563"
)

// FormPrompter asks each question with its own huh.Form.
// Running one form per question keeps the conditional flow in Collect
// and avoids the huh v0.8.x YOffset scroll bug seen when several groups
// share a viewport.
type FormPrompter struct {
	theme      *huh.Theme
	accessible bool
	input      io.Reader
	output     io.Writer
}

// FormOption configures a FormPrompter.
type FormOption func(*FormPrompter)

// WithAccessible switches huh to its accessible (line-based) mode.
func WithAccessible(accessible bool) FormOption {
	return func(p *FormPrompter) { p.accessible = accessible }
}

// WithIO sets the reader and writer used by the forms.
func WithIO(r io.Reader, w io.Writer) FormOption {
	return func(p *FormPrompter) {
		p.input = r
		p.output = w
	}
}

// WithTheme overrides the form theme.
func WithTheme(t *huh.Theme) FormOption {
	return func(p *FormPrompter) { p.theme = t }
}

// NewFormPrompter creates an interactive prompter.
func NewFormPrompter(opts ...FormOption) *FormPrompter {
	p := &FormPrompter{theme: newExtensionTheme()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ask runs a single-field form for q.
func (p *FormPrompter) Ask(ctx context.Context, q *Question, _ *models.Answers) (Value, error) {
	var v Value
	form := huh.NewForm(huh.NewGroup(buildField(q, &v))).
		WithTheme(p.theme).
		WithAccessible(p.accessible)
	if p.input != nil {
		form = form.WithInput(p.input)
	}
	if p.output != nil {
		form = form.WithOutput(p.output)
	}

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Value{}, ErrCancelled
		}
		return Value{}, err
	}

	if q.Kind == KindInput && strings.TrimSpace(v.Text) == "" {
		v.Text = q.Default
	}
	return v, nil
}

// buildField creates the huh field for q, bound to v.
func buildField(q *Question, v *Value) huh.Field {
	switch q.Kind {
	case KindSelect:
		v.Text = q.Default
		return huh.NewSelect[string]().
			Title(q.Title).
			Description(q.Description).
			Options(huhOptions(q.Options)...).
			Value(&v.Text)
	case KindMultiSelect:
		return huh.NewMultiSelect[string]().
			Title(q.Title).
			Description(q.Description).
			Options(huhOptions(q.Options)...).
			Value(&v.List)
	case KindConfirm:
		v.Bool = q.Default == "true"
		return huh.NewConfirm().
			Title(q.Title).
			Description(q.Description).
			Affirmative("Yes").
			Negative("No").
			Value(&v.Bool)
	default:
		inp := huh.NewInput().
			Title(q.Title).
			Description(q.Description).
			Value(&v.Text)
		if q.Default != "" {
			inp = inp.Placeholder(q.Default)
		}
		required := q.Required
		defVal := q.Default
		validate := q.Validate
		return inp.Validate(func(val string) error {
			s := strings.TrimSpace(val)
			if s == "" {
				s = defVal
			}
			if required && s == "" {
				return errors.New("this field is required")
			}
			if validate != nil && s != "" {
				return validate(s)
			}
			return nil
		})
	}
}

func huhOptions(options []Option) []huh.Option[string] {
	opts := make([]huh.Option[string], len(options))
	for i, opt := range options {
		opts[i] = huh.NewOption(opt.Label, opt.Value)
	}
	return opts
}

// newExtensionTheme creates a huh.Theme with the generator branding.
func newExtensionTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#5B3FD9", Dark: ColorPrimary}
	secondary := lipgloss.AdaptiveColor{Light: "#1A73E8", Dark: ColorSecondary}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: ColorSuccess}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: ColorError}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: ColorText}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: ColorMuted}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: ColorBorder}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(primary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(green).SetString("◆ ")
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(text)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(muted).SetString("◇ ")
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base

	return t
}
