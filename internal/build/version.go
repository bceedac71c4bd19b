// Package build provides version and build information for the commitlog binaries.
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

// Info returns a multi-line, script-friendly description of the build
// for the given binary name.
func Info(binary string) string {
	return fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\ngo: %s\nplatform: %s/%s\n",
		binary, Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
