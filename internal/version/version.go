// Package version exposes build metadata stamped at link time.
package version

// Populated via -ldflags "-X ..." by the release build; the zero values
// identify a local development build.
//
//nolint:revive
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
