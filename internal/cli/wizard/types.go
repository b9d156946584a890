// Package wizard collects the extension generation answers. Questions are
// declared as data (kind, skip predicate, resolver, the keys they read and
// write), ordered by their data dependencies and run against a Prompter
// front end: interactive huh forms or a scripted answer source.
package wizard

import (
	"context"
	"errors"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

// QuestionKind represents the type of wizard question.
type QuestionKind int

const (
	// KindInput is a single free-text input.
	KindInput QuestionKind = iota
	// KindSelect is a single-choice selection.
	KindSelect
	// KindMultiSelect is a multi-choice selection.
	KindMultiSelect
	// KindConfirm is a yes/no confirmation.
	KindConfirm
)

// String returns the kind name used in diagnostics.
func (k QuestionKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindSelect:
		return "select"
	case KindMultiSelect:
		return "multiselect"
	case KindConfirm:
		return "confirm"
	}
	return "unknown"
}

// Value is the raw answer returned by a front end. Only the field matching
// the question kind is meaningful.
type Value struct {
	Text string   // KindInput, KindSelect
	List []string // KindMultiSelect
	Bool bool     // KindConfirm
}

// Question defines a single wizard step.
type Question struct {
	Key         models.Key   // Destination field
	Kind        QuestionKind // Input, Select, MultiSelect or Confirm
	Title       string       // Prompt message
	Description string       // Additional description
	Options     []Option     // Choices for select questions
	Default     string       // Default value; "true"/"false" for confirmations
	Required    bool         // Whether an input may be left empty

	// Reads lists the keys consulted by Skip and Resolve.
	Reads []models.Key
	// Writes lists the keys Resolve may set besides Key.
	Writes []models.Key

	// Skip reports whether the question should not be asked. A skipped
	// question still runs Resolve with skipped set to true.
	Skip func(a *models.Answers) bool
	// Resolve normalizes the raw value, stores it and derives dependent keys.
	Resolve func(raw Value, skipped bool, a *models.Answers) error
	// Validate checks free-text input before it is accepted.
	Validate func(s string) error
}

// Option represents a selectable option.
type Option struct {
	Label string // Display label
	Value string // Raw value passed to Resolve
}

// Prompter asks a single question and returns the raw answer.
type Prompter interface {
	Ask(ctx context.Context, q *Question, a *models.Answers) (Value, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(ctx context.Context, q *Question, a *models.Answers) (Value, error)

// Ask calls f.
func (f PrompterFunc) Ask(ctx context.Context, q *Question, a *models.Answers) (Value, error) {
	return f(ctx, q, a)
}

// Error definitions for the wizard package.
var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
	// ErrPromptFailed wraps any front-end or resolver failure.
	ErrPromptFailed = errors.New("error receiving answers")
	// ErrQuestionCycle is returned when question dependencies form a cycle.
	ErrQuestionCycle = errors.New("question dependency cycle")
	// ErrInvalidAnswer is returned when a raw value is not an accepted choice.
	ErrInvalidAnswer = errors.New("invalid answer")
	// ErrMissingAnswer is returned when a required answer has no value or default.
	ErrMissingAnswer = errors.New("missing answer")
	// ErrInvalidProjectName is returned for names that cannot be a directory.
	ErrInvalidProjectName = errors.New("invalid project name")
	// ErrInvalidAnswersFile is returned when an answers file fails validation.
	ErrInvalidAnswersFile = errors.New("invalid answers file")
)
