package artifacts

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/crytic/huffgen/logging"
	"github.com/crytic/huffgen/logging/colors"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// ArtifactHashCacheFileName is the name of the file used to store the hash of the last exported artifact.
const ArtifactHashCacheFileName = ".huffgen-artifact-hash"

// ArtifactHashCache stores the hash of an artifact along with the time it was computed.
type ArtifactHashCache struct {
	// Hash is the Keccak-256 hash of the artifact's bytecode, runtime and ABI.
	Hash string `json:"hash"`
	// Timestamp is when the hash was computed.
	Timestamp time.Time `json:"timestamp"`
}

// ComputeArtifactHash computes a Keccak-256 hash over the artifact's fields. A nil artifact hashes like an empty one.
func ComputeArtifactHash(artifact *Artifact) (string, error) {
	hasher := sha3.NewLegacyKeccak256()
	if artifact == nil {
		artifact = &Artifact{}
	}

	hasher.Write([]byte(artifact.Bytecode))
	hasher.Write([]byte{0})
	hasher.Write([]byte(artifact.Runtime))
	hasher.Write([]byte{0})
	if artifact.Abi != nil {
		b, err := json.Marshal(artifact.Abi)
		if err != nil {
			return "", errors.WithStack(err)
		}
		hasher.Write(b)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// LoadArtifactHashCache loads the artifact hash cache from the specified directory.
// Returns nil if the cache file does not exist or cannot be parsed.
func LoadArtifactHashCache(directory string) *ArtifactHashCache {
	data, err := os.ReadFile(filepath.Join(directory, ArtifactHashCacheFileName))
	if err != nil {
		return nil
	}

	var cache ArtifactHashCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil
	}
	return &cache
}

// SaveArtifactHashCache saves the artifact hash cache to the specified directory.
func SaveArtifactHashCache(directory string, cache *ArtifactHashCache) error {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return errors.Wrap(err, "failed to create cache directory")
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal cache")
	}

	if err := os.WriteFile(filepath.Join(directory, ArtifactHashCacheFileName), data, 0644); err != nil {
		return errors.Wrap(err, "failed to write cache file")
	}
	return nil
}

// NotifyArtifactHashStatus compares the artifact's hash with the cached hash of the previous build, logs whether the
// artifact changed, and updates the cache. It returns true if the artifact changed or no previous hash existed.
func NotifyArtifactHashStatus(artifact *Artifact, cacheDirectory string, logger *logging.Logger) bool {
	currentHash, err := ComputeArtifactHash(artifact)
	if err != nil {
		logger.Warn("Failed to hash the compile artifact", err)
		return true
	}

	cachedHash := LoadArtifactHashCache(cacheDirectory)
	changed := cachedHash == nil || cachedHash.Hash != currentHash
	if changed {
		logger.Info(colors.Bold, "artifact: ", colors.Reset, "bytecode ", colors.GreenBold, "changed", colors.Reset, " since the previous build")
	} else {
		logger.Info(
			colors.Bold, "artifact: ", colors.Reset, "bytecode is ", colors.YellowBold, "unchanged", colors.Reset,
			" since the previous build (", formatDuration(time.Since(cachedHash.Timestamp)), " ago)",
		)
	}

	newCache := &ArtifactHashCache{Hash: currentHash, Timestamp: time.Now()}
	if err := SaveArtifactHashCache(cacheDirectory, newCache); err != nil {
		logger.Warn("Failed to save artifact hash cache", err)
	}
	return changed
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	case d < time.Hour:
		return pluralize(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return pluralize(int(d.Hours()), "hour")
	default:
		return pluralize(int(d.Hours()/24), "day")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
