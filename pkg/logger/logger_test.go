package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info("hidden %d", 1)
	log.Warn("visible %d", 2)
	log.Error("visible %s", "three")

	out := buf.String()
	assert.NotContains(t, out, "hidden 1")
	assert.Contains(t, out, "visible 2")
	assert.Contains(t, out, "visible three")
	assert.Contains(t, out, `"level":"warn"`)
}

func TestLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "verbose")

	log.Debug("debug line")
	log.Info("info line")

	assert.NotContains(t, buf.String(), "debug line")
	assert.Contains(t, buf.String(), "info line")
}

func TestLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(path, "info")
	require.NoError(t, err)
	log.Info("booking created id=%s", "abc")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "booking created id=abc")
}

func TestLoggerFatalExits(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	code := -1
	log.exit = func(c int) { code = c }
	log.Fatal("cannot start: %v", "boom")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "cannot start: boom")
}

func TestLoggerWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info").With("worker")

	log.Info("started")

	assert.Contains(t, buf.String(), `"component":"worker"`)
}
