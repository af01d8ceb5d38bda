package common

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
)

// Build metadata, set with -ldflags "-X github.com/WangYihang/sdscan-analytics/pkg/common.Version=..."
var (
	Version    string
	CommitHash string
	BuildTime  string
)

// PV describes the running binary
var PV = NewProgramVersion(Version, CommitHash, BuildTime)

const unknown = "unknown"

// ProgramVersion is the version object of the program
type ProgramVersion struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
}

// NewProgramVersion fills fields left empty by the build from the module
// build info, so `go install` binaries still report something useful.
func NewProgramVersion(version, commit, built string) ProgramVersion {
	v := ProgramVersion{Version: version, CommitHash: commit, BuildTime: built}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v.Version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if v.CommitHash == "" {
					v.CommitHash = shortHash(setting.Value)
				}
			case "vcs.time":
				if v.BuildTime == "" {
					v.BuildTime = setting.Value
				}
			}
		}
	}

	if v.Version == "" {
		v.Version = "dev"
	}
	v.Version = strings.TrimPrefix(v.Version, "v")
	if v.CommitHash == "" {
		v.CommitHash = unknown
	}
	if v.BuildTime == "" {
		v.BuildTime = unknown
	}
	return v
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

// Short returns a one line version
func (v ProgramVersion) Short() string {
	return fmt.Sprintf("sdscan-analytics v%s (%s)", v.Version, v.CommitHash)
}

// String returns the verbose version of the program
func (v ProgramVersion) String() string {
	return strings.Join([]string{
		"sdscan-analytics: service discovery scan analysis",
		"Version: v" + v.Version,
		"Commit: " + v.CommitHash,
		"Build Date: " + v.BuildTime,
	}, "\n")
}

// LogValue implements slog.LogValuer
func (v ProgramVersion) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("version", v.Version),
		slog.String("commit", v.CommitHash),
		slog.String("built", v.BuildTime),
	)
}
