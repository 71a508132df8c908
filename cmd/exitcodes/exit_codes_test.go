package exitcodes

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// TestGetInnerErrorAndExitCode verifies nil, generic and exit code carrying errors map to their exit codes.
func TestGetInnerErrorAndExitCode(t *testing.T) {
	t.Parallel()

	err, code := GetInnerErrorAndExitCode(nil)
	assert.NoError(t, err)
	assert.Equal(t, ExitCodeSuccess, code)

	generic := errors.New("generic")
	err, code = GetInnerErrorAndExitCode(generic)
	assert.Equal(t, generic, err)
	assert.Equal(t, ExitCodeGeneralError, code)

	err, code = GetInnerErrorAndExitCode(NewErrorWithExitCode(generic, ExitCodeCodegenError))
	assert.Equal(t, generic, err)
	assert.Equal(t, ExitCodeCodegenError, code)
	assert.Equal(t, "generic", NewErrorWithExitCode(generic, ExitCodeCodegenError).Error())
}
