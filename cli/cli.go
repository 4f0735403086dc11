// Package cli holds link-time build metadata for external build scripts.
package cli

// Version and Date can be set at build time using ldflags, e.g.:
//
//	-ldflags "-X 'github.com/flarebyte/nodecli/cli.Version=1.2.3' -X 'github.com/flarebyte/nodecli/cli.Date=2026-10-19'"
var (
	Version string
	Date    string
)
