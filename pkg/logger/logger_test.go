package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var events []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var ev map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &ev), line)
		events = append(events, ev)
	}
	return events
}

func TestLoggerWritesFieldsAndSource(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(WithoutFile(), WithWriter(&buf), WithLevel(zerolog.DebugLevel))
	require.NoError(t, err)

	log.Info("capture finished", "source", "clipboard", "chars", 12)

	events := decodeLines(t, &buf)
	require.Len(t, events, 1)
	assert.Equal(t, "capture finished", events[0]["message"])
	assert.Equal(t, "clipboard", events[0]["source"])
	assert.EqualValues(t, 12, events[0]["chars"])
	assert.Equal(t, "logger_test.go", events[0]["file"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(WithoutFile(), WithWriter(&buf), WithLevel(zerolog.WarnLevel))
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("shown")
	log.Error("shown as well", errors.New("boom"), "attempt", 2)

	events := decodeLines(t, &buf)
	require.Len(t, events, 2)
	assert.Equal(t, "shown", events[0]["message"])
	assert.Equal(t, "boom", events[1]["error"])
}

func TestLoggerIgnoresDanglingField(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(WithoutFile(), WithWriter(&buf))
	require.NoError(t, err)

	log.Info("odd fields", "key", "value", "dangling")
	log.Info("non-string key", 42, "value")

	events := decodeLines(t, &buf)
	require.Len(t, events, 2)
	assert.Equal(t, "value", events[0]["key"])
	assert.NotContains(t, events[0], "dangling")
}

func TestAddWriterTeesEvents(t *testing.T) {
	var primary, extra bytes.Buffer
	log, err := NewLogger(WithoutFile(), WithWriter(&primary))
	require.NoError(t, err)

	log.Info("before")
	log.AddWriter(&extra)
	log.Info("after")

	assert.Len(t, decodeLines(t, &primary), 2)
	events := decodeLines(t, &extra)
	require.Len(t, events, 1)
	assert.Equal(t, "after", events[0]["message"])
}

func TestWithFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")
	log, err := NewLogger(WithFile(path))
	require.NoError(t, err)
	defer log.Close()

	log.Info("hello file")
	assert.FileExists(t, path)
}

func TestNopLoggerIsSilent(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Debug("x")
		log.Error("y", errors.New("z"))
		log.AddWriter(&bytes.Buffer{})
	})
	assert.NoError(t, log.Close())
}
