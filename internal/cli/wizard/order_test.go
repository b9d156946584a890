package wizard

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

func keysOf(questions []Question) []models.Key {
	keys := make([]models.Key, len(questions))
	for i, q := range questions {
		keys[i] = q.Key
	}
	return keys
}

func TestOrder_KeepsConsistentDeclaration(t *testing.T) {
	ordered, err := Order(DefaultQuestions(""))
	if err != nil {
		t.Fatalf("Order() error: %v", err)
	}
	if got := keysOf(ordered); !slices.Equal(got, models.Keys()) {
		t.Errorf("Order() = %v, want %v", got, models.Keys())
	}
}

func TestOrder_ReversedDeclaration(t *testing.T) {
	questions := DefaultQuestions("")
	slices.Reverse(questions)

	ordered, err := Order(questions)
	if err != nil {
		t.Fatalf("Order() error: %v", err)
	}

	pos := make(map[models.Key]int, len(ordered))
	for i, q := range ordered {
		pos[q.Key] = i
	}
	for _, q := range ordered {
		for _, read := range q.Reads {
			for _, p := range ordered {
				if p.Key == q.Key {
					continue
				}
				if p.Key == read || slices.Contains(p.Writes, read) {
					if pos[p.Key] > pos[q.Key] {
						t.Errorf("%s produces %s but runs after %s", p.Key, read, q.Key)
					}
				}
			}
		}
	}
}

func TestOrder_IndependentQuestionsKeepOrder(t *testing.T) {
	questions := []Question{
		{Key: models.KeyUIFramework},
		{Key: models.KeyLanguage},
		{Key: models.KeyProjectName},
	}
	ordered, err := Order(questions)
	if err != nil {
		t.Fatal(err)
	}
	want := []models.Key{models.KeyUIFramework, models.KeyLanguage, models.KeyProjectName}
	if got := keysOf(ordered); !slices.Equal(got, want) {
		t.Errorf("Order() = %v, want %v", got, want)
	}
}

func TestOrder_Cycle(t *testing.T) {
	questions := []Question{
		{Key: models.KeyProjectName},
		{Key: models.KeyLanguage, Reads: []models.Key{models.KeyFramework}},
		{Key: models.KeyFramework, Reads: []models.Key{models.KeyLanguage}},
	}
	_, err := Order(questions)
	if !errors.Is(err, ErrQuestionCycle) {
		t.Fatalf("error = %v, want ErrQuestionCycle", err)
	}
	msg := err.Error()
	for _, k := range []string{"language", "framework"} {
		if !strings.Contains(msg, k) {
			t.Errorf("error %q should name %s", msg, k)
		}
	}
	if strings.Contains(msg, "projectName") {
		t.Errorf("error %q should not name questions outside the cycle", msg)
	}
}
