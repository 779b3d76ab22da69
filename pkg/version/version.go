// Package version holds build metadata injected at link time.
package version

var (
	// Version is the semantic version of the build, set via -ldflags.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "unknown"

	// BuildDate is the UTC build timestamp.
	BuildDate = "unknown"
)
