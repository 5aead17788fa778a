package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level, format string) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := &Logger{
		level:  parseLogLevel(level),
		format: format,
		output: buf,
		fields: make(map[string]any),
	}

	return logger, buf
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, InfoLevel, parseLogLevel("info"))
	assert.Equal(t, WarnLevel, parseLogLevel("WARN"))
	assert.Equal(t, WarnLevel, parseLogLevel("warning"))
	assert.Equal(t, ErrorLevel, parseLogLevel("error"))
	assert.Equal(t, InfoLevel, parseLogLevel("bogus"))
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger("warn", "text")

	logger.Debug("too quiet")
	logger.Info("still too quiet")
	logger.Warn("this one lands")
	logger.Error("so does this")

	out := buf.String()
	assert.NotContains(t, out, "too quiet")
	assert.Contains(t, out, "this one lands")
	assert.Contains(t, out, "so does this")
}

func TestJSONFormat(t *testing.T) {
	logger, buf := newBufferLogger("info", "json")

	logger.WithField("component", "validate").Info("statement accepted")

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "statement accepted", entry.Message)
	assert.Equal(t, "validate", entry.Fields["component"])
	assert.NotEmpty(t, entry.Timestamp)
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	logger, buf := newBufferLogger("info", "text")

	child := logger.WithField("request_id", "abc123")
	child.Info("child line")
	logger.Info("parent line")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "request_id=abc123")
	assert.NotContains(t, lines[1], "request_id")
}

func TestWithError(t *testing.T) {
	logger, buf := newBufferLogger("info", "text")

	logger.WithError(assert.AnError).Warn("call failed")
	assert.Contains(t, buf.String(), "error=")

	same := logger.WithError(nil)
	assert.Same(t, logger, same, "nil error adds no context")
}

func TestNewLogger_InvalidOutput(t *testing.T) {
	_, err := NewLogger(Options{Level: "info", Format: "text", Output: "syslog"})
	require.Error(t, err)

	_, err = NewLogger(Options{Level: "info", Format: "text", Output: "file"})
	require.Error(t, err, "file output requires a path")
}
