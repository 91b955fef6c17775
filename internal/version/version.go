// Package version holds build information injected via -ldflags.
package version

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/mandalnilabja/pagesmith/internal/version.Version=v1.2.0"
var Version = "dev"
