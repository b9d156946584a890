package wizard

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

func TestScriptedPrompter_Ask(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		q       Question
		value   any
		want    Value
		wantErr error
	}{
		{
			name:  "select string",
			q:     Question{Key: models.KeyLanguage, Kind: KindSelect},
			value: "Typescript",
			want:  Value{Text: "Typescript"},
		},
		{
			name:  "confirm bool",
			q:     Question{Key: models.KeyUseRecommendedPackages, Kind: KindConfirm},
			value: true,
			want:  Value{Bool: true},
		},
		{
			name:  "multiselect from yaml list",
			q:     Question{Key: models.KeyFeatures, Kind: KindMultiSelect},
			value: []any{"Looker API", "Looker Embed"},
			want:  Value{List: []string{"Looker API", "Looker Embed"}},
		},
		{
			name:  "multiselect from comma string",
			q:     Question{Key: models.KeyFeatures, Kind: KindMultiSelect},
			value: "Looker API, Server Proxy Request,",
			want:  Value{List: []string{"Looker API", "Server Proxy Request"}},
		},
		{
			name:  "blank input takes default",
			q:     Question{Key: models.KeyProjectName, Kind: KindInput, Default: "x", Required: true},
			value: "  ",
			want:  Value{Text: "x"},
		},
		{
			name:    "confirm with string",
			q:       Question{Key: models.KeyUseEmbedSDK, Kind: KindConfirm},
			value:   "yes",
			wantErr: ErrInvalidAnswer,
		},
		{
			name:    "select with number",
			q:       Question{Key: models.KeyFramework, Kind: KindSelect},
			value:   3,
			wantErr: ErrInvalidAnswer,
		},
		{
			name:    "list with non-string item",
			q:       Question{Key: models.KeyFeatures, Kind: KindMultiSelect},
			value:   []any{"Looker API", 7},
			wantErr: ErrInvalidAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewScriptedPrompter(map[models.Key]any{tt.q.Key: tt.value})
			got, err := p.Ask(ctx, &tt.q, models.NewAnswers())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Ask() error: %v", err)
			}
			if got.Text != tt.want.Text || got.Bool != tt.want.Bool || !slices.Equal(got.List, tt.want.List) {
				t.Errorf("Ask() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScriptedPrompter_Defaults(t *testing.T) {
	ctx := context.Background()
	p := NewScriptedPrompter(nil)

	t.Run("required input without default", func(t *testing.T) {
		q := Question{Key: models.KeyProjectName, Kind: KindInput, Required: true}
		if _, err := p.Ask(ctx, &q, models.NewAnswers()); !errors.Is(err, ErrMissingAnswer) {
			t.Errorf("error = %v, want ErrMissingAnswer", err)
		}
	})

	t.Run("select falls back to first option", func(t *testing.T) {
		q := Question{Key: models.KeyEmbedType, Kind: KindSelect, Options: optionsFrom(models.EmbedTypes())}
		got, err := p.Ask(ctx, &q, models.NewAnswers())
		if err != nil {
			t.Fatal(err)
		}
		if got.Text != models.EmbedDashboard {
			t.Errorf("Text = %q, want Dashboard", got.Text)
		}
	})

	t.Run("confirm default", func(t *testing.T) {
		q := Question{Key: models.KeyUseLookerSDK, Kind: KindConfirm, Default: "true"}
		got, err := p.Ask(ctx, &q, models.NewAnswers())
		if err != nil {
			t.Fatal(err)
		}
		if !got.Bool {
			t.Error("Bool = false, want true default")
		}
	})

	t.Run("multiselect default is empty", func(t *testing.T) {
		q := Question{Key: models.KeyFeatures, Kind: KindMultiSelect}
		got, err := p.Ask(ctx, &q, models.NewAnswers())
		if err != nil {
			t.Fatal(err)
		}
		if got.List == nil || len(got.List) != 0 {
			t.Errorf("List = %#v, want empty non-nil", got.List)
		}
	})

	want := []models.Key{models.KeyProjectName, models.KeyEmbedType, models.KeyUseLookerSDK, models.KeyFeatures}
	if got := p.Asked(); !slices.Equal(got, want) {
		t.Errorf("Asked() = %v, want %v", got, want)
	}
}
