package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crytic/huffgen/artifacts"
	"github.com/crytic/huffgen/cmd/exitcodes"
	"github.com/crytic/huffgen/codegen"
	"github.com/crytic/huffgen/config"
	"github.com/crytic/huffgen/utils/testutils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag of cmd to its default so that commands can be executed repeatedly within a test
// binary.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if sliceValue, ok := flag.Value.(pflag.SliceValue); ok {
			_ = sliceValue.Replace([]string{})
		} else {
			_ = flag.Value.Set(flag.DefValue)
		}
		flag.Changed = false
	})
}

// runCommand executes the CLI with the given arguments and returns everything the command printed.
func runCommand(args ...string) (string, error) {
	for _, cmd := range rootCmd.Commands() {
		resetFlags(cmd)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// TestCompileEndToEnd initializes a project for the ERC-20 syntax tree, compiles it with a constructor argument and
// verifies the exported artifact.
func TestCompileEndToEnd(t *testing.T) {
	targetPath := testutils.CopyToTestDirectory(t, filepath.Join("..", "codegen", "testdata", "erc20.json"))

	testutils.ExecuteInDirectory(t, targetPath, func() {
		_, err := runCommand("init", "--target", "erc20.json")
		require.NoError(t, err)
		projectConfig, err := config.ReadProjectConfigFromFile(DefaultProjectConfigFilename)
		require.NoError(t, err)
		assert.Equal(t, "erc20.json", projectConfig.Compilation.Target)

		out, err := runCommand("compile", "--constructor-arg", "uint256:1000", "--print-opcodes")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "0000: PUSH1 0x00\n"), out)
		assert.Contains(t, out, "SSTORE")

		artifact, err := artifacts.ReadArtifactFromFile("erc20.artifact.json")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(artifact.Bytecode, "336000556101ac806100116000396000f3"+artifact.Runtime))
		assert.True(t, strings.HasSuffix(artifact.Bytecode, strings.Repeat("0", 61)+"3e8"))
		assert.Len(t, artifact.Runtime, 856)
		require.NotNil(t, artifact.Abi)
		assert.NotNil(t, artifact.Abi.Constructor())

		_, err = os.Stat(filepath.Join(".huffgen", artifacts.ArtifactHashCacheFileName))
		assert.NoError(t, err)

		// Without constructor arguments the deployment bytecode ends with the runtime code
		_, err = runCommand("compile", "--out", filepath.Join("build", "token.json"))
		require.NoError(t, err)
		artifact, err = artifacts.ReadArtifactFromFile(filepath.Join("build", "token.json"))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(artifact.Bytecode, artifact.Runtime))

		out, err = runCommand("disassemble", "--artifact", filepath.Join("build", "token.json"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "0000: CALLER\n"), out)
	})
}

// TestCompileCodegenFailure verifies a codegen failure is reported with its own exit code.
func TestCompileCodegenFailure(t *testing.T) {
	dir := t.TempDir()
	targetPath := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(targetPath, []byte(`{
		"macros": [{"name": "CONSTRUCTOR", "statements": [], "takes": 0, "returns": 0}],
		"constants": []
	}`), 0644))

	testutils.ExecuteInDirectory(t, targetPath, func() {
		_, err := runCommand("compile", "--target", "broken.json", "--cache-dir", "")
		require.Error(t, err)

		innerErr, exitCode := exitcodes.GetInnerErrorAndExitCode(err)
		assert.Equal(t, exitcodes.ExitCodeCodegenError, exitCode)
		kind, ok := codegen.KindOf(innerErr)
		require.True(t, ok)
		assert.Equal(t, codegen.MissingMain, kind)

		_, err = os.Stat("broken.artifact.json")
		assert.True(t, os.IsNotExist(err))
	})
}

// TestCompileConfigErrors verifies missing configs, missing targets and malformed arguments are rejected.
func TestCompileConfigErrors(t *testing.T) {
	dir := t.TempDir()

	testutils.ExecuteInDirectory(t, dir, func() {
		_, err := runCommand("compile", "--config", filepath.Join(dir, "missing.json"))
		assert.Error(t, err)

		// The default config has no target
		_, err = runCommand("compile")
		assert.Error(t, err)

		_, err = runCommand("compile", "--target", "erc20.json", "--constructor-arg", "uint256")
		assert.Error(t, err)

		_, err = runCommand("compile", "--target", "missing.json")
		assert.Error(t, err)

		_, err = runCommand("compile", "erc20.json", "extra.json")
		assert.Error(t, err)
		_, err = runCommand("init", "erc20.json", "extra.json")
		assert.Error(t, err)
	})
}

// TestPositionalTarget verifies compile and init accept the target as a positional argument, and that --target still
// takes precedence over it.
func TestPositionalTarget(t *testing.T) {
	targetPath := testutils.CopyToTestDirectory(t, filepath.Join("..", "codegen", "testdata", "erc20.json"))

	testutils.ExecuteInDirectory(t, targetPath, func() {
		_, err := runCommand("compile", "erc20.json", "--cache-dir", "")
		require.NoError(t, err)
		artifact, err := artifacts.ReadArtifactFromFile("erc20.artifact.json")
		require.NoError(t, err)
		assert.Len(t, artifact.Runtime, 856)

		// The flag wins over the positional argument
		_, err = runCommand("compile", "missing.json", "--target", "erc20.json", "--out", "flag.json", "--cache-dir", "")
		require.NoError(t, err)
		_, err = os.Stat("flag.json")
		assert.NoError(t, err)

		_, err = runCommand("init", "erc20.json")
		require.NoError(t, err)
		projectConfig, err := config.ReadProjectConfigFromFile(DefaultProjectConfigFilename)
		require.NoError(t, err)
		assert.Equal(t, "erc20.json", projectConfig.Compilation.Target)

		_, err = runCommand("init", "other.json", "--target", "erc20.json", "--out", "flag-config.json")
		require.NoError(t, err)
		projectConfig, err = config.ReadProjectConfigFromFile("flag-config.json")
		require.NoError(t, err)
		assert.Equal(t, "erc20.json", projectConfig.Compilation.Target)
	})
}

// TestDisassembleCommand verifies the listing of a bytecode argument and argument validation.
func TestDisassembleCommand(t *testing.T) {
	out, err := runCommand("disassemble", "6100d68061000d6000396000f3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "0000: PUSH2 0x00d6", lines[0])
	assert.Equal(t, "000c: RETURN", lines[6])

	_, err = runCommand("disassemble")
	assert.Error(t, err)
	_, err = runCommand("disassemble", "abc")
	assert.Error(t, err)
}

// TestVersionAndCompletionCommands verifies the informational commands.
func TestVersionAndCompletionCommands(t *testing.T) {
	out, err := runCommand("version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "huffgen version "))

	out, err = runCommand("completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "huffgen")

	_, err = runCommand("completion", "fish")
	assert.Error(t, err)
}
