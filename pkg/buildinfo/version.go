// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/iconfinder/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/iconfinder/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/iconfinder/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version, "dev" for local builds.
	Version = "dev"
	// Commit is the git commit SHA.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s", Version, Commit, Date, runtime.Version())
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent is sent with every outgoing API request.
func UserAgent() string {
	return "iconfinder/" + Version
}
