// Package version contains the version of zcal.
package version

// These are set at build time via -ldflags.
var (
	// Version is the version of zcal.
	Version = "dev"
	// GitCommit is the git commit zcal was built from.
	GitCommit = "unknown"
)
