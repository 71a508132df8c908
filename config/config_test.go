package config

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProjectConfigRoundTrip verifies a written config reads back unchanged.
func TestProjectConfigRoundTrip(t *testing.T) {
	t.Parallel()

	projectConfig := GetDefaultProjectConfig()
	projectConfig.Compilation.Target = "erc20.json"
	projectConfig.Compilation.ConstructorArgs = []ArgumentConfig{{Type: "uint256", Value: "1000"}}
	projectConfig.Logging.Level = zerolog.DebugLevel

	path := filepath.Join(t.TempDir(), "huffgen.json")
	require.NoError(t, projectConfig.WriteToFile(path))

	read, err := ReadProjectConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, projectConfig, read)
	assert.NoError(t, read.Validate())
}

// TestReadProjectConfigDefaults verifies fields absent from the file keep their defaults.
func TestReadProjectConfigDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "huffgen.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"compilation": {"target": "token.json"}}`), 0644))

	read, err := ReadProjectConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "token.json", read.Compilation.Target)
	assert.Equal(t, ".huffgen", read.Compilation.ArtifactCacheDirectory)
	assert.Equal(t, zerolog.InfoLevel, read.Logging.Level)
	assert.True(t, read.Logging.EnableConsoleLogging)

	_, err = ReadProjectConfigFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"compilation": `), 0644))
	_, err = ReadProjectConfigFromFile(path)
	assert.Error(t, err)
}

// TestValidate verifies invalid targets, constructor arguments and log levels are rejected.
func TestValidate(t *testing.T) {
	t.Parallel()

	projectConfig := GetDefaultProjectConfig()
	assert.Error(t, projectConfig.Validate())

	projectConfig.Compilation.Target = "erc20.json"
	assert.NoError(t, projectConfig.Validate())

	projectConfig.Compilation.ConstructorArgs = []ArgumentConfig{{Type: "uint8", Value: "256"}}
	assert.Error(t, projectConfig.Validate())
	projectConfig.Compilation.ConstructorArgs = nil

	projectConfig.Logging.Level = zerolog.Disabled
	assert.Error(t, projectConfig.Validate())
}

// TestCompilationConfig verifies output path derivation and constructor argument parsing.
func TestCompilationConfig(t *testing.T) {
	t.Parallel()

	compilationConfig := CompilationConfig{
		Target: filepath.Join("contracts", "erc20.json"),
		ConstructorArgs: []ArgumentConfig{
			{Type: "uint256", Value: "0x3e8"},
			{Type: "bool", Value: "true"},
		},
	}
	assert.Equal(t, filepath.Join("contracts", "erc20.artifact.json"), compilationConfig.GetOutputPath())
	compilationConfig.OutputPath = "out.json"
	assert.Equal(t, "out.json", compilationConfig.GetOutputPath())

	args, err := compilationConfig.ParseConstructorArgs()
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Equal(t, big.NewInt(1000), args[0].Value)
	assert.Equal(t, true, args[1].Value)
}

// TestParseArgumentConfig verifies the type:value form of constructor arguments.
func TestParseArgumentConfig(t *testing.T) {
	t.Parallel()

	arg, err := ParseArgumentConfig("address:0x1111111111111111111111111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, ArgumentConfig{Type: "address", Value: "0x1111111111111111111111111111111111111111"}, arg)

	arg, err = ParseArgumentConfig("string:a:b")
	require.NoError(t, err)
	assert.Equal(t, "a:b", arg.Value)

	_, err = ParseArgumentConfig("uint256")
	assert.Error(t, err)
	_, err = ParseArgumentConfig(":1")
	assert.Error(t, err)
}
