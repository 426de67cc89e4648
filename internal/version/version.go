// Package version holds the jscore build identity.
package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Overridden at build time:
// go build -ldflags "-X jscore/internal/version.Version=1.0.0 -X jscore/internal/version.Commit=abc123"
var (
	Version   = "0.3.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version" toml:"version"`
	Commit    string `json:"commit" yaml:"commit" toml:"commit"`
	BuildDate string `json:"buildDate" yaml:"buildDate" toml:"buildDate"`
	GoVersion string `json:"goVersion" yaml:"goVersion" toml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform" toml:"platform"`
}

// Get returns the build info. When no commit was injected it falls back to
// the VCS revision recorded by the Go toolchain.
func Get() BuildInfo {
	commit := Commit
	if commit == "unknown" {
		if rev := vcsRevision(); rev != "" {
			commit = rev
		}
	}
	return BuildInfo{
		Version:   Version,
		Commit:    commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Short returns "version (commit7)", or just the version without a commit.
func (b BuildInfo) Short() string {
	if b.Commit != "unknown" && len(b.Commit) > 7 {
		return b.Version + " (" + b.Commit[:7] + ")"
	}
	return b.Version
}

// RenderHuman writes the multi-line form shown by `jscore version`.
func (b BuildInfo) RenderHuman(w io.Writer) error {
	_, err := fmt.Fprintf(w, "jscore version %s\nCommit: %s\nBuilt: %s\nGo: %s %s\n",
		b.Version, b.Commit, b.BuildDate, b.GoVersion, b.Platform)
	return err
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
