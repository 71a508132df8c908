package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddAndRemoveWriter ensures Logger.AddWriter deduplicates writers and Logger.RemoveWriter drops them again.
func TestAddAndRemoveWriter(t *testing.T) {
	t.Parallel()

	logger := NewLogger(zerolog.InfoLevel, false)

	var structured, unstructured bytes.Buffer
	logger.AddWriter(&structured, STRUCTURED)
	logger.AddWriter(&unstructured, UNSTRUCTURED)
	assert.Len(t, logger.writers, 2)

	// Duplicates are ignored
	logger.AddWriter(&structured, STRUCTURED)
	assert.Len(t, logger.writers, 2)

	logger.RemoveWriter(&structured)
	assert.Len(t, logger.writers, 1)

	// Removing an unknown writer is a no-op
	logger.RemoveWriter(&bytes.Buffer{})
	assert.Len(t, logger.writers, 1)
}

// TestStructuredOutput verifies that structured writers receive JSON events with sub-logger context, errors and
// structured info attached.
func TestStructuredOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(zerolog.InfoLevel, false)
	logger.AddWriter(&buf, STRUCTURED)

	subLogger := logger.NewSubLogger("module", CODEGEN_SERVICE)
	subLogger.Warn("expanded ", 3, " macros", errors.New("boom"), StructuredLogInfo{"macro": "MAIN"})

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "warn", event["level"])
	assert.Equal(t, CODEGEN_SERVICE, event["module"])
	assert.Equal(t, "expanded 3 macros", event["message"])
	assert.Equal(t, "boom", event["error"])
	assert.Equal(t, map[string]any{"macro": "MAIN"}, event["info"])
}

// TestSubLoggerKeepsContextForNewWriters verifies a writer added after deriving a sub-logger still sees its context.
func TestSubLoggerKeepsContextForNewWriters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	subLogger := NewLogger(zerolog.InfoLevel, false).NewSubLogger("module", CLI_SERVICE)
	subLogger.AddWriter(&buf, STRUCTURED)
	subLogger.Info("hello")

	assert.True(t, strings.Contains(buf.String(), `"module":"cli"`))
}

// TestLevelFiltering verifies that events below the logger level are discarded.
func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(zerolog.WarnLevel, false, &buf)
	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.SetLevel(zerolog.DebugLevel)
	assert.Equal(t, zerolog.DebugLevel, logger.Level())
	logger.Debug("kept")
	assert.Contains(t, buf.String(), "kept")
}
