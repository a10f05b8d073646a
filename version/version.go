// Package version exposes build-time version information.
package version

import "runtime/debug"

// Set at build time via -ldflags, e.g.
//
//	go build -ldflags "-X github.com/cinevault/cinevault/version.Version=v1.2.0"
var (
	Version   = "dev"
	GitCommit = ""
)

// Info is the version block reported by the readiness endpoint.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit,omitempty"`
	GoVersion string `json:"goVersion,omitempty"`
}

// Get returns the build's version information, filling in whatever the
// binary's embedded build info can provide.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		if info.GitCommit == "" {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					info.GitCommit = s.Value
					break
				}
			}
		}
	}
	return info
}
