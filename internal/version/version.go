// Package version holds build information injected with -ldflags, e.g.
//
//	go build -ldflags "-X region-tracer/internal/version.Version=1.2.0"
package version

import "fmt"

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the build information for display.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
