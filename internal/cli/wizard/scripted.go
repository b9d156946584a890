package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

// ScriptedPrompter answers questions from a fixed set of values, for
// headless runs (answers file, CI) and tests. Questions without a value
// take their default.
type ScriptedPrompter struct {
	values map[models.Key]any
	asked  []models.Key
}

// NewScriptedPrompter creates a prompter backed by values.
func NewScriptedPrompter(values map[models.Key]any) *ScriptedPrompter {
	if values == nil {
		values = map[models.Key]any{}
	}
	return &ScriptedPrompter{values: values}
}

// Asked returns the keys of the questions that were surfaced, in order.
func (p *ScriptedPrompter) Asked() []models.Key {
	return append([]models.Key(nil), p.asked...)
}

// Ask returns the scripted value for q, converted to q's kind.
func (p *ScriptedPrompter) Ask(ctx context.Context, q *Question, _ *models.Answers) (Value, error) {
	if err := ctx.Err(); err != nil {
		return Value{}, err
	}
	p.asked = append(p.asked, q.Key)

	raw, ok := p.values[q.Key]
	if !ok || raw == nil {
		return defaultValue(q)
	}

	switch q.Kind {
	case KindInput, KindSelect:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: %s wants a string, got %T", ErrInvalidAnswer, q.Key, raw)
		}
		if q.Kind == KindInput && strings.TrimSpace(s) == "" {
			return defaultValue(q)
		}
		return Value{Text: s}, nil
	case KindConfirm:
		b, ok := raw.(bool)
		if !ok {
			return Value{}, fmt.Errorf("%w: %s wants a boolean, got %T", ErrInvalidAnswer, q.Key, raw)
		}
		return Value{Bool: b}, nil
	case KindMultiSelect:
		list, err := toStringList(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s: %w", ErrInvalidAnswer, q.Key, err)
		}
		return Value{List: list}, nil
	}
	return Value{}, fmt.Errorf("%w: unsupported question kind %s", ErrInvalidAnswer, q.Kind)
}

// defaultValue returns the answer used when no value was scripted.
func defaultValue(q *Question) (Value, error) {
	switch q.Kind {
	case KindInput:
		if q.Required && q.Default == "" {
			return Value{}, fmt.Errorf("%w: %s", ErrMissingAnswer, q.Key)
		}
		return Value{Text: q.Default}, nil
	case KindSelect:
		if q.Default != "" {
			return Value{Text: q.Default}, nil
		}
		if len(q.Options) > 0 {
			return Value{Text: q.Options[0].Value}, nil
		}
		return Value{}, fmt.Errorf("%w: %s has no options", ErrMissingAnswer, q.Key)
	case KindConfirm:
		return Value{Bool: q.Default == "true"}, nil
	default:
		return Value{List: []string{}}, nil
	}
}

func toStringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list item %v is %T, not string", item, item)
			}
			list = append(list, s)
		}
		return list, nil
	case string:
		var list []string
		for part := range strings.SplitSeq(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				list = append(list, p)
			}
		}
		return list, nil
	}
	return nil, fmt.Errorf("want a list, got %T", raw)
}
