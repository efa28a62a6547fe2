// Package version reports build metadata stamped with -ldflags, e.g.
//
//	-X activitycal/internal/core/version.Version=v0.3.0 -X activitycal/internal/core/version.Commit=abcd
package version

// BuildInfo is the build metadata served by the meta endpoints
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the stamped build info for service
func Info(service string) BuildInfo {
	return BuildInfo{Service: service, Version: Version, Commit: Commit, Date: Date}
}
