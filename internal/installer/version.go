package installer

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckVersion runs `<package manager> --version` and compares the result
// against the minimum version. The parsed version is returned whenever it
// could be read, even if it is too old. Callers treat both errors as
// warnings.
func (i *Installer) CheckVersion(ctx context.Context) (*semver.Version, error) {
	out, err := i.runner.Output(ctx, i.packageManager, "--version")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVersionUnknown, err)
	}

	v, err := parseVersion(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %s reported %q: %w", ErrVersionUnknown, i.packageManager, out, err)
	}

	c, err := semver.NewConstraint(">= " + i.minVersion)
	if err != nil {
		return v, fmt.Errorf("%w: minimum %q: %w", ErrVersionUnknown, i.minVersion, err)
	}
	if !c.Check(v) {
		return v, fmt.Errorf("%w: %s %s is older than %s", ErrVersionUnsupported, i.packageManager, v, i.minVersion)
	}
	return v, nil
}

// parseVersion reads the first line of out as a version, tolerating a
// leading "v".
func parseVersion(out string) (*semver.Version, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(line), "v"))
}
