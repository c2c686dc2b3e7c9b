// Package buildinfo carries the version stamps injected at link time.
package buildinfo

// Set via -ldflags "-X stepkit/internal/buildinfo.Version=..." and friends.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short picks the most specific identifier available, for window titles
// and log prefixes.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}
