// Package version reports the build version, set by ldflags or read from
// the module build info.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

const devVersion = "0.0.0-dev"

var (
	Version   = devVersion
	Commit    = ""
	BuildTime = ""
)

func init() {
	populateFromBuildInfo(debug.ReadBuildInfo)
}

func populateFromBuildInfo(read func() (*debug.BuildInfo, bool)) {
	if Version != "" && Version != devVersion {
		return
	}

	bi, ok := read()
	if !ok || bi == nil {
		return
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if Commit == "" {
		if rev := settings["vcs.revision"]; len(rev) >= 7 {
			Commit = rev[:7]
		}
	}

	if BuildTime == "" {
		if ts, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}

	if v := bi.Main.Version; v != "" && v != "(devel)" {
		Version = strings.TrimPrefix(v, "v")
		if settings["vcs.modified"] == "true" {
			Version += "-dirty"
		}
	}
}

// Short is the bare version string.
func Short() string {
	if Version == "" {
		return devVersion
	}
	return Version
}

// FormatVersion adds the commit and build time when known, e.g.
// "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)".
func FormatVersion() string {
	ver := Short()
	switch {
	case Commit == "" && BuildTime == "":
		return ver + " (development)"
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	case Commit == "":
		return fmt.Sprintf("%s (built at: %s)", ver, BuildTime)
	}
	return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
}
