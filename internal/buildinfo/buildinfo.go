// Package buildinfo holds release metadata injected at link time.
package buildinfo

// These values are set via ldflags for release binaries and stay empty for
// local/dev builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
