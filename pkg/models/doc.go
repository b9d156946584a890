// Package models provides the shared answer record used across the
// create-looker-extension packages.
//
// # Answer Record
//
// [Answers] holds every resolved generation choice. Values are written
// through [Answers.Set] so the record knows which keys have been resolved,
// either by a prompt or as a side effect of an earlier answer:
//
//	a := models.NewAnswers()
//	_ = a.Set(models.KeyFramework, models.FrameworkReact)
//	a.Has(models.KeyUIFramework) // false until a resolver sets it
//
// # Choices
//
// The enumerations for languages, frameworks, features, embed types and
// UI frameworks are defined as constants and exposed through
// [Languages], [Frameworks], [Features], [EmbedTypes] and [UIFrameworks].
package models
