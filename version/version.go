// Package version reports the build of huffgen: its semantic version, the commit it was built from and the
// go-ethereum fork whose opcode table and ABI encoder it generates code against.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

// gethModulePath is the module providing the opcode table and ABI encoding used during code generation.
const gethModulePath = "github.com/crytic/medusa-geth"

// Build metadata. Each value may be injected with -ldflags "-X"; empty values are filled from the binary's embedded
// build information.
var (
	// Version is the semantic version of huffgen.
	Version = "0.1.0"
	// GitCommit is the commit hash the binary was built from.
	GitCommit = ""
	// GitCommitTime is the RFC3339 time of that commit.
	GitCommitTime = ""
	// GitTreeDirty is "true" if the working tree had uncommitted changes.
	GitTreeDirty = ""
	// GethVersion is the version of the go-ethereum fork linked into the binary.
	GethVersion = ""
)

// Info describes a huffgen build.
type Info struct {
	Version       string
	GitCommit     string
	GitCommitTime string
	GitTreeDirty  bool
	GethVersion   string
	GoVersion     string
	Platform      string
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(info)
	}
}

// applyBuildInfo fills every build variable which was not set through ldflags from the embedded build information.
func applyBuildInfo(info *debug.BuildInfo) {
	settings := map[string]*string{
		"vcs.revision": &GitCommit,
		"vcs.time":     &GitCommitTime,
		"vcs.modified": &GitTreeDirty,
	}
	for _, kv := range info.Settings {
		if target, ok := settings[kv.Key]; ok && *target == "" {
			*target = kv.Value
		}
	}

	if GethVersion != "" {
		return
	}
	for _, dep := range info.Deps {
		if dep.Path != gethModulePath {
			continue
		}
		GethVersion = dep.Version
		if dep.Replace != nil {
			GethVersion = dep.Replace.Version + " (replaced)"
		}
	}
}

// GetInfo returns the build information of the running binary.
func GetInfo() Info {
	return Info{
		Version:       Version,
		GitCommit:     GitCommit,
		GitCommitTime: GitCommitTime,
		GitTreeDirty:  GitTreeDirty == "true",
		GethVersion:   GethVersion,
		GoVersion:     runtime.Version(),
		Platform:      runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// revision returns the abbreviated commit, marked when the tree was dirty, or an empty string if unknown.
func (i Info) revision() string {
	commit := i.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit != "" && i.GitTreeDirty {
		commit += "-dirty"
	}
	return commit
}

// commitTime renders the commit time in UTC, or returns the raw value if it is not RFC3339.
func (i Info) commitTime() string {
	t, err := time.Parse(time.RFC3339, i.GitCommitTime)
	if err != nil {
		return i.GitCommitTime
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

// Channel returns "release" for a plain semantic version and "pre-release" otherwise.
func (i Info) Channel() string {
	if i.IsPrerelease() {
		return "pre-release"
	}
	return "release"
}

// String renders the build information as printed by the version command. Unknown fields are omitted.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "huffgen version %s (%s)\n", i.Version, i.Channel())

	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "  %-10s %s\n", name+":", value)
		}
	}
	field("commit", i.revision())
	field("committed", i.commitTime())
	field("geth", i.GethVersion)
	field("go", i.GoVersion)
	field("platform", i.Platform)
	return sb.String()
}

// Short returns the version with the build's commit as semver build metadata, e.g. 0.1.0+0123456.
func (i Info) Short() string {
	if revision := i.revision(); revision != "" {
		return i.Version + "+" + revision
	}
	return i.Version
}

// SemVer parses the version as a semantic version. Versions injected through ldflags are not checked at build time,
// so a malformed one is reported here.
func (i Info) SemVer() (*semver.Version, error) {
	v, err := semver.NewVersion(i.Version)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid version %q", i.Version)
	}
	return v, nil
}

// IsPrerelease returns true if the version carries a pre-release tag, e.g. 0.2.0-rc1. A malformed version is treated
// as a pre-release.
func (i Info) IsPrerelease() bool {
	v, err := i.SemVer()
	if err != nil {
		return true
	}
	return v.Prerelease() != ""
}
