package version

import "fmt"

var (
	// Version is the navgrid release, set via -ldflags at build time.
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String formats the build info for CLI banners.
func String() string {
	return fmt.Sprintf("navgrid %s (%s, built %s)", Version, GitSHA, BuildTime)
}
