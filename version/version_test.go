package version

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultVersionIsSemVer verifies the compiled-in version is a valid semantic version.
func TestDefaultVersionIsSemVer(t *testing.T) {
	t.Parallel()

	v, err := GetInfo().SemVer()
	require.NoError(t, err)
	assert.Equal(t, Version, v.String())
	assert.Contains(t, GetInfo().Platform, "/")
}

// TestInfoFormatting verifies the short and long renderings of the build information.
func TestInfoFormatting(t *testing.T) {
	t.Parallel()

	info := Info{
		Version:       "0.2.0-rc1",
		GitCommit:     "0123456789abcdef",
		GitCommitTime: "2024-01-02T05:04:05+02:00",
		GitTreeDirty:  true,
		GethVersion:   "v0.0.0-20250423141023-d818338d6925",
		GoVersion:     "go1.23.3",
		Platform:      "linux/amd64",
	}
	assert.Equal(t, "0.2.0-rc1+0123456-dirty", info.Short())
	assert.True(t, info.IsPrerelease())
	assert.Equal(t, "pre-release", info.Channel())

	out := info.String()
	assert.True(t, strings.HasPrefix(out, "huffgen version 0.2.0-rc1 (pre-release)\n"), out)
	assert.Contains(t, out, "  commit:    0123456-dirty\n")
	assert.Contains(t, out, "  committed: 2024-01-02 03:04:05 UTC\n")
	assert.Contains(t, out, "  geth:      v0.0.0-20250423141023-d818338d6925\n")
	assert.Contains(t, out, "  platform:  linux/amd64\n")
}

// TestInfoWithoutBuildMetadata verifies unknown fields are left out and malformed versions are flagged.
func TestInfoWithoutBuildMetadata(t *testing.T) {
	t.Parallel()

	info := Info{Version: "1.0.0", GoVersion: "go1.23.3"}
	assert.Equal(t, "1.0.0", info.Short())
	assert.Equal(t, "huffgen version 1.0.0 (release)\n  go:        go1.23.3\n", info.String())

	info = Info{Version: "not-a-version"}
	_, err := info.SemVer()
	assert.Error(t, err)
	assert.True(t, info.IsPrerelease())
}

// TestApplyBuildInfo verifies VCS settings and the geth dependency are read from the embedded build information,
// without overriding values injected through ldflags.
func TestApplyBuildInfo(t *testing.T) {
	saved := []string{GitCommit, GitCommitTime, GitTreeDirty, GethVersion}
	defer func() {
		GitCommit, GitCommitTime, GitTreeDirty, GethVersion = saved[0], saved[1], saved[2], saved[3]
	}()

	GitCommit, GitCommitTime, GitTreeDirty, GethVersion = "injected", "", "", ""
	applyBuildInfo(&debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "fromvcs"},
			{Key: "vcs.time", Value: "2024-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
		Deps: []*debug.Module{
			{Path: "github.com/pkg/errors", Version: "v0.9.1"},
			{Path: gethModulePath, Version: "v1.0.0", Replace: &debug.Module{Path: "../geth", Version: "v1.0.1"}},
		},
	})

	assert.Equal(t, "injected", GitCommit)
	assert.Equal(t, "2024-01-02T03:04:05Z", GitCommitTime)
	assert.Equal(t, "true", GitTreeDirty)
	assert.Equal(t, "v1.0.1 (replaced)", GethVersion)
	assert.True(t, GetInfo().GitTreeDirty)
}
