package loggy

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "test.log")

	err := Init(Config{
		Level:  slog.LevelDebug,
		Format: "json",
		Output: logPath,
	})
	require.NoError(t, err)

	logger := GetGlobalLogger()
	require.NotNil(t, logger)

	logger.Info("hello from test", "key", "value")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestInitIsIdempotent(t *testing.T) {
	// The first Init in this binary wins; later calls are no-ops
	require.NoError(t, Init(DefaultConfig()))
	first := GetGlobalLogger()

	require.NoError(t, Init(DefaultConfig()))
	assert.Same(t, first, GetGlobalLogger())
}

func TestNoopLogger(t *testing.T) {
	logger := NewNoopLogger()
	require.NotNil(t, logger)
	assert.Same(t, logger, GetGlobalLogger())

	// Must not panic
	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")
	Debug("e")
	Info("f")
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger

	logger.Debug("no panic")
	logger.Info("no panic")
	logger.Warn("no panic")
	logger.Error("no panic")
	assert.Nil(t, logger.With("k", "v"))
}

func TestWith(t *testing.T) {
	logger := NewNoopLogger()
	child := logger.With("component", "test")
	require.NotNil(t, child)
	assert.NotSame(t, logger, child)
}
