package wizard

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

// DefaultProjectName is used when no project name is supplied.
const DefaultProjectName = "my-extension"

// Labels shown for choices that normalize to a different value.
const (
	labelNoFramework   = "No framework"
	labelNoUIFramework = "No UI framework"
)

var lower = cases.Lower(language.Und)

// DefaultQuestions returns the extension generator questions.
// The declared order is:
// 1. Project name
// 2. Language
// 3. Framework
// 4. Recommended packages (React only)
// 5. Features
// 6. Embed type (conditional on Looker Embed)
// 7. Embed SDK confirmation
// 8. Looker SDK confirmation
// 9. UI framework (React only)
//
// Execution order is computed by Order from the Reads/Writes declarations.
func DefaultQuestions(projectName string) []Question {
	if strings.TrimSpace(projectName) == "" {
		projectName = DefaultProjectName
	}

	return []Question{
		// 1. Project name
		{
			Key:      models.KeyProjectName,
			Kind:     KindInput,
			Title:    "What would you like to call this extension?",
			Default:  projectName,
			Required: true,
			Validate: ValidateProjectName,
			Resolve: func(raw Value, _ bool, a *models.Answers) error {
				name := norm.NFC.String(strings.TrimSpace(raw.Text))
				if name == "" {
					name = projectName
				}
				if err := ValidateProjectName(name); err != nil {
					return err
				}
				return a.Set(models.KeyProjectName, name)
			},
		},
		// 2. Language
		{
			Key:     models.KeyLanguage,
			Kind:    KindSelect,
			Title:   "What language would you like to use?",
			Options: []Option{{Label: "Javascript", Value: "Javascript"}, {Label: "Typescript", Value: "Typescript"}},
			Default: "Javascript",
			Resolve: func(raw Value, _ bool, a *models.Answers) error {
				v := lower.String(strings.TrimSpace(raw.Text))
				if !models.IsValidLanguage(v) {
					return fmt.Errorf("%w: language %q", ErrInvalidAnswer, raw.Text)
				}
				return a.Set(models.KeyLanguage, v)
			},
		},
		// 3. Framework
		{
			Key:     models.KeyFramework,
			Kind:    KindSelect,
			Title:   "What framework would you like to use?",
			Options: []Option{{Label: "React", Value: "React"}, {Label: labelNoFramework, Value: labelNoFramework}},
			Default: "React",
			Resolve: func(raw Value, _ bool, a *models.Answers) error {
				v := lower.String(strings.TrimSpace(raw.Text))
				if v == lower.String(labelNoFramework) {
					v = models.FrameworkVanilla
				}
				if !models.IsValidFramework(v) {
					return fmt.Errorf("%w: framework %q", ErrInvalidAnswer, raw.Text)
				}
				return a.Set(models.KeyFramework, v)
			},
		},
		// 4. Recommended packages (React only)
		{
			Key:     models.KeyUseRecommendedPackages,
			Kind:    KindConfirm,
			Title:   "Do you want to install all recommended packages for React? (swr, usehooks-ts, @looker/components, @looker/embed-sdk, @looker/sdk)",
			Default: "false",
			Reads:   []models.Key{models.KeyFramework},
			Writes: []models.Key{
				models.KeyEmbedType,
				models.KeyUseEmbedSDK,
				models.KeyUseLookerSDK,
				models.KeyUIFramework,
			},
			Skip: func(a *models.Answers) bool {
				return a.Framework != models.FrameworkReact
			},
			Resolve: func(raw Value, skipped bool, a *models.Answers) error {
				accepted := !skipped && raw.Bool
				if err := a.Set(models.KeyUseRecommendedPackages, accepted); err != nil {
					return err
				}
				if !accepted {
					return nil
				}
				return setAll(a, map[models.Key]any{
					models.KeyEmbedType:    models.EmbedDashboard,
					models.KeyUseEmbedSDK:  true,
					models.KeyUseLookerSDK: true,
					models.KeyUIFramework:  models.UILookerComponents,
				})
			},
		},
		// 5. Features
		{
			Key:     models.KeyFeatures,
			Kind:    KindMultiSelect,
			Title:   "Select the features you want to include in your extension:",
			Options: optionsFrom(models.Features()),
			Reads:   []models.Key{models.KeyUseRecommendedPackages},
			Writes:  []models.Key{models.KeyUseEmbedSDK, models.KeyUseLookerSDK},
			Resolve: func(raw Value, _ bool, a *models.Answers) error {
				features := make([]string, 0, len(raw.List))
				for _, f := range raw.List {
					canonical, ok := canonicalChoice(f, models.Features())
					if !ok {
						return fmt.Errorf("%w: feature %q", ErrInvalidAnswer, f)
					}
					if !slices.Contains(features, canonical) {
						features = append(features, canonical)
					}
				}
				if err := a.Set(models.KeyFeatures, features); err != nil {
					return err
				}
				// Recommended packages already fixed both SDK flags to true.
				recommended := a.UseRecommendedPackages
				return setAll(a, map[models.Key]any{
					models.KeyUseEmbedSDK:  recommended || slices.Contains(features, models.FeatureLookerEmbed),
					models.KeyUseLookerSDK: recommended || slices.Contains(features, models.FeatureLookerAPI),
				})
			},
		},
		// 6. Embed type (conditional)
		{
			Key:     models.KeyEmbedType,
			Kind:    KindSelect,
			Title:   "Select the type of content to embed:",
			Options: optionsFrom(models.EmbedTypes()),
			Default: models.EmbedDashboard,
			Reads:   []models.Key{models.KeyUseRecommendedPackages, models.KeyFeatures},
			Skip: func(a *models.Answers) bool {
				return a.UseRecommendedPackages || !a.HasFeature(models.FeatureLookerEmbed)
			},
			Resolve: func(raw Value, skipped bool, a *models.Answers) error {
				if skipped {
					return nil
				}
				v, ok := canonicalChoice(raw.Text, models.EmbedTypes())
				if !ok {
					return fmt.Errorf("%w: embed type %q", ErrInvalidAnswer, raw.Text)
				}
				return a.Set(models.KeyEmbedType, v)
			},
		},
		// 7. Embed SDK confirmation
		{
			Key:     models.KeyUseEmbedSDK,
			Kind:    KindConfirm,
			Title:   "Do you want to install the @looker/embed-sdk package?",
			Default: "true",
			Reads:   []models.Key{models.KeyUseEmbedSDK, models.KeyUseRecommendedPackages},
			Skip: func(a *models.Answers) bool {
				return a.Has(models.KeyUseEmbedSDK) || a.UseRecommendedPackages
			},
			Resolve: echoFlag(models.KeyUseEmbedSDK),
		},
		// 8. Looker SDK confirmation
		{
			Key:     models.KeyUseLookerSDK,
			Kind:    KindConfirm,
			Title:   "Do you want to install the @looker/sdk and @looker/sdk-rtl packages?",
			Default: "true",
			Reads:   []models.Key{models.KeyUseLookerSDK, models.KeyUseRecommendedPackages},
			Skip: func(a *models.Answers) bool {
				return a.Has(models.KeyUseLookerSDK) || a.UseRecommendedPackages
			},
			Resolve: echoFlag(models.KeyUseLookerSDK),
		},
		// 9. UI framework (React only)
		{
			Key:   models.KeyUIFramework,
			Kind:  KindSelect,
			Title: "Which UI framework would you like to use?",
			Options: []Option{
				{Label: models.UILookerComponents, Value: models.UILookerComponents},
				{Label: models.UIMaterial, Value: models.UIMaterial},
				{Label: labelNoUIFramework, Value: labelNoUIFramework},
			},
			Default: models.UILookerComponents,
			Reads:   []models.Key{models.KeyFramework, models.KeyUseRecommendedPackages},
			Skip: func(a *models.Answers) bool {
				return a.Framework != models.FrameworkReact || a.UseRecommendedPackages
			},
			Resolve: func(raw Value, skipped bool, a *models.Answers) error {
				if skipped {
					if a.Has(models.KeyUIFramework) {
						return nil
					}
					return a.Set(models.KeyUIFramework, models.UINone)
				}
				v := lower.String(strings.TrimSpace(raw.Text))
				if v == lower.String(labelNoUIFramework) {
					v = models.UINone
				}
				if !slices.Contains(models.UIFrameworks(), v) {
					return fmt.Errorf("%w: UI framework %q", ErrInvalidAnswer, raw.Text)
				}
				return a.Set(models.KeyUIFramework, v)
			},
		},
	}
}

// echoFlag returns a resolver that ignores the confirmation and keeps the
// flag derived by an earlier step. An underived flag resolves to false.
func echoFlag(key models.Key) func(Value, bool, *models.Answers) error {
	return func(_ Value, _ bool, a *models.Answers) error {
		v, _ := a.Get(key)
		flag, _ := v.(bool)
		return a.Set(key, flag)
	}
}

// ValidateProjectName rejects names that cannot be used as a single
// directory name.
func ValidateProjectName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidProjectName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidProjectName, name)
	case strings.ContainsAny(name, `/\`) || filepath.Base(name) != name:
		return fmt.Errorf("%w: %q must not contain path separators", ErrInvalidProjectName, name)
	}
	return nil
}

func setAll(a *models.Answers, values map[models.Key]any) error {
	for _, k := range models.Keys() {
		v, ok := values[k]
		if !ok {
			continue
		}
		if err := a.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

func optionsFrom(values []string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Label: v, Value: v}
	}
	return opts
}

// canonicalChoice matches s case-insensitively against choices.
func canonicalChoice(s string, choices []string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, c := range choices {
		if strings.EqualFold(s, c) {
			return c, true
		}
	}
	return "", false
}

// QuestionByKey finds a question by its key.
func QuestionByKey(questions []Question, key models.Key) *Question {
	for i := range questions {
		if questions[i].Key == key {
			return &questions[i]
		}
	}
	return nil
}
