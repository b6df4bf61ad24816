// Package version carries build metadata, set with -ldflags "-X".
package version

import "fmt"

var (
	// Version is the release version.
	Version = "dev"
	// GitSHA is the commit the binary was built from.
	GitSHA = "unknown"
)

// String formats the metadata for -version output.
func String(program string) string {
	return fmt.Sprintf("%s %s (%s)", program, Version, GitSHA)
}
