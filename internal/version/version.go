package version

import "fmt"

var (
	// Version is the semantic version, set with -ldflags "-X .../version.Version=...".
	Version = "0.1.0-dev"
	// Commit is the short git SHA, "none" for local builds.
	Commit = "none"
	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// Short returns the semantic version.
func Short() string {
	return Version
}

// Full returns version, commit and build time on one line.
func Full() string {
	return fmt.Sprintf("clock-widget %s (commit %s, built %s)", Version, Commit, BuildTime)
}
