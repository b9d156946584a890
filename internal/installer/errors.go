// Package installer runs the package manager inside a generated extension
// and produces the follow-up instructions shown once generation succeeds.
package installer

import "errors"

var (
	// ErrInstallInterrupted indicates the install was stopped by SIGINT or by
	// cancellation of the calling context.
	ErrInstallInterrupted = errors.New("dependency installation interrupted")

	// ErrInstallFailed indicates the package manager could not be started or
	// exited unsuccessfully.
	ErrInstallFailed = errors.New("dependency installation failed")

	// ErrVersionUnsupported indicates the package manager is older than the
	// configured minimum.
	ErrVersionUnsupported = errors.New("package manager version unsupported")

	// ErrVersionUnknown indicates the package manager version could not be
	// determined.
	ErrVersionUnknown = errors.New("package manager version unknown")
)
