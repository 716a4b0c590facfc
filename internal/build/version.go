// Package build provides version and build information for changelog-publisher.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// ShortCommit returns the commit hash truncated to 8 characters.
func ShortCommit() string {
	if len(Commit) > 8 {
		return Commit[:8]
	}
	return Commit
}

// Info returns the version lines printed by the version command.
func Info() []string {
	return []string{
		fmt.Sprintf("changelog-publisher %s", Version),
		fmt.Sprintf("commit: %s", ShortCommit()),
		fmt.Sprintf("built: %s", BuildDate),
		fmt.Sprintf("go: %s", runtime.Version()),
		fmt.Sprintf("platform: %s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
