// Package buildinfo carries version metadata stamped in at build time.
//
// Release builds overwrite the defaults with ldflags:
//
//	go build -ldflags "\
//	    -X github.com/skeinlab/skein/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/skeinlab/skein/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/skeinlab/skein/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// A plain "go build" reports version "dev".
package buildinfo

import "fmt"

var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String renders the build info as a multi-line block for --version style
// output.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template used by the cobra root command.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
