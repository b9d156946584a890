// Package project writes a generated extension to disk. It owns the
// project directory guard, the concurrent file writer and the generation
// pipeline that runs template lookup, materialization, finalization,
// writing and the optional dependency install.
package project

import (
	"errors"
	"fmt"
)

// Sentinel errors for the project package.
var (
	// ErrProjectExists indicates the project directory already exists.
	ErrProjectExists = errors.New("project directory already exists")

	// ErrInvalidRoot indicates the project root path is invalid or inaccessible.
	ErrInvalidRoot = errors.New("invalid project root path")

	// ErrWriteFailed indicates a directory or file could not be written. The
	// project directory has been removed when this is returned.
	ErrWriteFailed = errors.New("error generating extension")

	// ErrInitFailed indicates a generation step other than writing failed.
	ErrInitFailed = errors.New("initialization failed")
)

// WriteError records the first file that could not be written.
type WriteError struct {
	Path string // Output-relative path, empty when no file was involved
	Err  error
}

func (e *WriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", ErrWriteFailed, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrWriteFailed, e.Path, e.Err)
}

// Unwrap returns both ErrWriteFailed and the underlying cause.
func (e *WriteError) Unwrap() []error {
	return []error{ErrWriteFailed, e.Err}
}
