package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, ParseLogLevel("debug", LogLevelInfo))
	assert.Equal(t, LogLevelWarn, ParseLogLevel(" WARN ", LogLevelInfo))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("chatty", LogLevelInfo))
	assert.Equal(t, LogLevelError, ParseLogLevel("", LogLevelError))
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogLevelWarn).With("TableReader")

	logger.Info("hidden %d", 1)
	logger.Warn("skipped cell %q", "abc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `[WARN] [TableReader] skipped cell "abc"`)

	buf.Reset()
	logger.SetLevel(LogLevelTrace)
	logger.Trace("now visible")
	assert.Contains(t, buf.String(), "[TRACE] [TableReader] now visible")
}
