// Package version provides information about the build version of the service.
package version

import (
	"runtime"
	"runtime/debug"
)

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Info returns the build information. version, commit and date are set at build time:
//
//	-ldflags "-X 'nutriscope/internal/core/version.version=v0.1.0'
//	          -X 'nutriscope/internal/core/version.commit=abcd'
//	          -X 'nutriscope/internal/core/version.date=2026-10-01'"
//
// When commit is not stamped, the VCS revision embedded by the go tool is used.
func Info() BuildInfo {
	c := commit
	if c == "none" {
		if rev := vcsRevision(); rev != "" {
			c = rev
		}
	}
	return BuildInfo{
		Service:   Service,
		Version:   version,
		Commit:    c,
		Date:      date,
		GoVersion: runtime.Version(),
	}
}

// Service is the name reported by the API
const Service = "nutriscope-api"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
