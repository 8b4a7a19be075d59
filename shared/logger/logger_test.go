package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()

	output := &bytes.Buffer{}
	logger, err := New(&Config{
		Level:  level,
		Format: "json",
		writer: output,
	})
	require.NoError(t, err)
	return logger, output
}

func TestNew(t *testing.T) {
	t.Run("json output carries attrs", func(t *testing.T) {
		logger, output := newJSONLogger(t, "debug")

		logger.Debug("starting up", slog.String("queue", "notifications_queue"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(output.Bytes(), &entry))
		assert.Equal(t, "DEBUG", entry["level"])
		assert.Equal(t, "starting up", entry["msg"])
		assert.Equal(t, "notifications_queue", entry["queue"])
	})

	t.Run("level filters lower records", func(t *testing.T) {
		logger, output := newJSONLogger(t, "warn")

		logger.Info("dropped")
		logger.Warn("kept")

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "kept")
	})

	t.Run("console format uses tint", func(t *testing.T) {
		output := &bytes.Buffer{}
		logger, err := New(&Config{
			Level:      "info",
			Format:     "console",
			TimeFormat: time.RFC3339,
			writer:     output,
		})
		require.NoError(t, err)

		logger.Info("console test")

		// tint abbreviates the level
		assert.Contains(t, output.String(), "INF")
		assert.Contains(t, output.String(), "console test")
	})

	t.Run("source location when enabled", func(t *testing.T) {
		output := &bytes.Buffer{}
		logger, err := New(&Config{
			Level:        "info",
			Format:       "json",
			EnableSource: true,
			writer:       output,
		})
		require.NoError(t, err)

		logger.Info("message with source")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(output.Bytes(), &entry))
		assert.Contains(t, entry, "source")
	})
}

func TestNewDefault(t *testing.T) {
	logger := NewDefault()
	require.NotNil(t, logger)
	assert.NotNil(t, logger.Logger)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLevel(tt.level), "level %q", tt.level)
	}
}

func TestComponent(t *testing.T) {
	logger, output := newJSONLogger(t, "info")

	logger.Component("notifier").Info("consumer started")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(output.Bytes(), &entry))
	assert.Equal(t, "notifier", entry["component"])
}

func TestWith(t *testing.T) {
	logger, output := newJSONLogger(t, "info")

	logger.With(slog.String("request_id", "req-1")).Info("handled")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(output.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "handled", entry["msg"])
}
