package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/crytic/huffgen/utils"
	"github.com/stretchr/testify/require"
)

// CopyToTestDirectory copies the file at filePath (relative to the working directory) into an ephemeral directory
// used for unit tests, returning the absolute path of the copy.
func CopyToTestDirectory(t *testing.T, filePath string) string {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	sourcePath := filepath.Join(cwd, filePath)

	sourcePathInfo, err := os.Stat(sourcePath)
	require.NoError(t, err)
	require.False(t, sourcePathInfo.IsDir())

	targetPath := filepath.Join(t.TempDir(), "huffgenTest", sourcePathInfo.Name())
	require.NoError(t, utils.CopyFile(sourcePath, targetPath))

	targetPath, err = filepath.Abs(targetPath)
	require.NoError(t, err)
	return targetPath
}

// ExecuteInDirectory executes the given method in a given test directory. It changes the current working directory
// to the directory specified, runs the provided method, then restores the working directory. This wraps tests so
// any file artifacts generated do not end up in the codebase directories. Tests using it must not run in parallel.
func ExecuteInDirectory(t *testing.T, testPath string, method func()) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	// A file path means its containing directory
	testPathInfo, err := os.Stat(testPath)
	require.NoError(t, err)
	testDirectory := testPath
	if !testPathInfo.IsDir() {
		testDirectory = filepath.Dir(testPath)
	}

	require.NoError(t, os.Chdir(testDirectory))
	defer func() {
		// We must leave the test directory or else clean up will fail post testing
		require.NoError(t, os.Chdir(cwd))
	}()

	method()
}
