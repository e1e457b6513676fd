// SPDX-License-Identifier: Apache-2.0

// Package version holds build metadata, overridden at link time with
// -ldflags "-X email-harvest/internal/version.Version=...".
package version

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns the full version string for --version output.
func String() string {
	return Version + " (" + Commit + ", " + BuildDate + ")"
}
