package models

import (
	"errors"
	"fmt"
	"slices"
)

// Key identifies a single answer in the record.
type Key string

// Answer keys, named after the prompt fields they store.
const (
	KeyProjectName            Key = "projectName"
	KeyLanguage               Key = "language"
	KeyFramework              Key = "framework"
	KeyUseRecommendedPackages Key = "useRecommendedPackages"
	KeyFeatures               Key = "features"
	KeyEmbedType              Key = "embedType"
	KeyUseEmbedSDK            Key = "useEmbedSDK"
	KeyUseLookerSDK           Key = "useLookerSDK"
	KeyUIFramework            Key = "uiFramework"
)

// Keys returns every answer key in prompt order.
func Keys() []Key {
	return []Key{
		KeyProjectName,
		KeyLanguage,
		KeyFramework,
		KeyUseRecommendedPackages,
		KeyFeatures,
		KeyEmbedType,
		KeyUseEmbedSDK,
		KeyUseLookerSDK,
		KeyUIFramework,
	}
}

var (
	// ErrUnknownKey is returned when a key is not part of the answer record.
	ErrUnknownKey = errors.New("unknown answer key")
	// ErrAnswerType is returned when a value has the wrong type for its key.
	ErrAnswerType = errors.New("answer has wrong type")
)

// Answers is the flat record of resolved generation choices.
// Fields are readable directly (dynamic templates use them); writes should
// go through Set so that Has reports the key as resolved.
type Answers struct {
	ProjectName            string   `yaml:"projectName" json:"projectName"`
	Language               string   `yaml:"language" json:"language"`
	Framework              string   `yaml:"framework" json:"framework"`
	UseRecommendedPackages bool     `yaml:"useRecommendedPackages" json:"useRecommendedPackages"`
	Features               []string `yaml:"features" json:"features"`
	EmbedType              string   `yaml:"embedType" json:"embedType"`
	UseEmbedSDK            bool     `yaml:"useEmbedSDK" json:"useEmbedSDK"`
	UseLookerSDK           bool     `yaml:"useLookerSDK" json:"useLookerSDK"`
	UIFramework            string   `yaml:"uiFramework" json:"uiFramework"`

	resolved map[Key]struct{}
}

// NewAnswers returns an empty record with no resolved keys.
func NewAnswers() *Answers {
	return &Answers{resolved: make(map[Key]struct{})}
}

// Set stores value under key and marks the key resolved.
// Strings, booleans and string slices are accepted according to the key.
func (a *Answers) Set(key Key, value any) error {
	switch key {
	case KeyProjectName, KeyLanguage, KeyFramework, KeyEmbedType, KeyUIFramework:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants string, got %T", ErrAnswerType, key, value)
		}
		switch key {
		case KeyProjectName:
			a.ProjectName = s
		case KeyLanguage:
			a.Language = s
		case KeyFramework:
			a.Framework = s
		case KeyEmbedType:
			a.EmbedType = s
		case KeyUIFramework:
			a.UIFramework = s
		}
	case KeyUseRecommendedPackages, KeyUseEmbedSDK, KeyUseLookerSDK:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s wants bool, got %T", ErrAnswerType, key, value)
		}
		switch key {
		case KeyUseRecommendedPackages:
			a.UseRecommendedPackages = b
		case KeyUseEmbedSDK:
			a.UseEmbedSDK = b
		case KeyUseLookerSDK:
			a.UseLookerSDK = b
		}
	case KeyFeatures:
		list, ok := value.([]string)
		if !ok {
			return fmt.Errorf("%w: %s wants []string, got %T", ErrAnswerType, key, value)
		}
		a.Features = slices.Clone(list)
		if a.Features == nil {
			a.Features = []string{}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	if a.resolved == nil {
		a.resolved = make(map[Key]struct{})
	}
	a.resolved[key] = struct{}{}
	return nil
}

// Get returns the value stored under key and whether the key is resolved.
func (a *Answers) Get(key Key) (any, bool) {
	_, ok := a.resolved[key]
	switch key {
	case KeyProjectName:
		return a.ProjectName, ok
	case KeyLanguage:
		return a.Language, ok
	case KeyFramework:
		return a.Framework, ok
	case KeyUseRecommendedPackages:
		return a.UseRecommendedPackages, ok
	case KeyFeatures:
		return slices.Clone(a.Features), ok
	case KeyEmbedType:
		return a.EmbedType, ok
	case KeyUseEmbedSDK:
		return a.UseEmbedSDK, ok
	case KeyUseLookerSDK:
		return a.UseLookerSDK, ok
	case KeyUIFramework:
		return a.UIFramework, ok
	}
	return nil, false
}

// Has reports whether key has been resolved.
func (a *Answers) Has(key Key) bool {
	_, ok := a.resolved[key]
	return ok
}

// Resolved returns the resolved keys in prompt order.
func (a *Answers) Resolved() []Key {
	var keys []Key
	for _, k := range Keys() {
		if a.Has(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// HasFeature reports whether name is among the selected features.
func (a *Answers) HasFeature(name string) bool {
	return slices.Contains(a.Features, name)
}

// IsReact reports whether the React framework was selected.
func (a *Answers) IsReact() bool {
	return a.Framework == FrameworkReact
}

// IsTypeScript reports whether TypeScript was selected.
func (a *Answers) IsTypeScript() bool {
	return a.Language == LanguageTypeScript
}

// TemplateID returns the template directory name for the selection,
// in the form <framework>-<language>.
func (a *Answers) TemplateID() string {
	return a.Framework + "-" + a.Language
}
