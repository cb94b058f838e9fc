// Package goap is the root of goap-go, a goal-oriented action planner. The
// library surface lives in interfaces/api; this package only carries the
// release version.
package goap

// Version is the release version, reported by the CLI and in trace resources.
const Version = "0.1.0"

func GetVersion() string { return Version }
