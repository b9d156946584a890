package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

// @MX:ANCHOR: [AUTO] Collect is the single entry point of the answer collector.
// @MX:REASON: [AUTO] called from cli.runCreate and every wizard test
// Collect runs questions in dependency order against the prompter and
// returns the resolved record. Skipped questions are not shown; their
// resolver runs with an empty raw value so the key can be derived from
// earlier answers.
func Collect(ctx context.Context, questions []Question, p Prompter) (*models.Answers, error) {
	return CollectWithLogger(ctx, questions, p, nil)
}

// CollectWithLogger is Collect with debug logging of each step.
func CollectWithLogger(ctx context.Context, questions []Question, p Prompter, logger *slog.Logger) (*models.Answers, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ordered, err := Order(questions)
	if err != nil {
		return nil, err
	}

	answers := models.NewAnswers()
	for i := range ordered {
		q := &ordered[i]

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPromptFailed, err)
		}

		skipped := q.Skip != nil && q.Skip(answers)

		var raw Value
		if !skipped {
			raw, err = p.Ask(ctx, q, answers)
			if err != nil {
				if errors.Is(err, ErrCancelled) {
					return nil, ErrCancelled
				}
				return nil, fmt.Errorf("%w: %s: %w", ErrPromptFailed, q.Key, err)
			}
		}

		if q.Resolve != nil {
			if err := q.Resolve(raw, skipped, answers); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrPromptFailed, q.Key, err)
			}
		}

		logger.Debug("question resolved", "key", q.Key, "skipped", skipped)
	}

	return answers, nil
}

// RunWithDefaults runs the default questions interactively.
func RunWithDefaults(ctx context.Context, projectName string) (*models.Answers, error) {
	return Collect(ctx, DefaultQuestions(projectName), NewFormPrompter())
}

// RunFromFile resolves the default questions from an answers file without
// prompting.
func RunFromFile(ctx context.Context, path, projectName string) (*models.Answers, error) {
	values, err := LoadAnswersFile(path)
	if err != nil {
		return nil, err
	}
	return Collect(ctx, DefaultQuestions(projectName), NewScriptedPrompter(values))
}
