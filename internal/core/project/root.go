package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveRoot returns the absolute project directory for name under base.
// An empty base means the current working directory. The result is always
// a direct child of base.
func ResolveRoot(base, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: project name %q", ErrInvalidRoot, name)
	}

	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: get working directory: %w", ErrInvalidRoot, err)
		}
		base = wd
	}

	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %w", ErrInvalidRoot, base, err)
	}

	dir := filepath.Join(absBase, name)
	if filepath.Dir(dir) != absBase {
		return "", fmt.Errorf("%w: %q escapes %s", ErrInvalidRoot, name, absBase)
	}
	return dir, nil
}
