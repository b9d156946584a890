// Package version carries the build metadata of the binary.
package version

import "fmt"

// Build-time variables injected via -ldflags, e.g.
// -X github.com/looker-open-source/create-looker-extension/pkg/version.Version=v1.2.0
var (
	Version = "v0.0.0-dev"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetFullVersion returns a formatted full version string.
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
