// Package template holds the extension template store and turns a template
// directory plus an answer record into the final file mapping written to
// disk. Dynamic files (ending in the dynamic marker, .tmpl by default) are
// Go text/template sources compiled once and executed against the answers;
// all other files are copied verbatim.
package template

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the template package.
var (
	// ErrTemplateNotFound indicates no template exists for the selected
	// framework and language.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrRenderFailed indicates a dynamic file failed to compile or execute.
	ErrRenderFailed = errors.New("dynamic file render failed")

	// ErrConflictingPaths is wrapped by every CollisionError.
	ErrConflictingPaths = errors.New("conflicting paths")

	// ErrPathTraversal indicates a template path escapes the project root.
	ErrPathTraversal = errors.New("path traversal detected")
)

// CollisionError reports two template files that produce the same output
// path. The first file keeps the path; Dropped is never written.
type CollisionError struct {
	Path    string // Output-relative path
	Kept    string // Template file that produced the path first
	Dropped string // Template file whose content was discarded
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("Conflicting paths - %s", e.Path)
}

// Unwrap returns ErrConflictingPaths so callers can use errors.Is.
func (e *CollisionError) Unwrap() error {
	return ErrConflictingPaths
}

// RenderError describes a dynamic file that could not be rendered.
type RenderError struct {
	File string
	Err  error
}

func (e *RenderError) Error() string {
	var b strings.Builder
	b.WriteString("render ")
	b.WriteString(e.File)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *RenderError) Unwrap() []error {
	return []error{ErrRenderFailed, e.Err}
}
