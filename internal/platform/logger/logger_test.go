package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/effectlift/internal/config"
)

func TestSetup(t *testing.T) {
	levels := []struct {
		configured string
		enabled    slog.Level
		disabled   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 4},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
	}

	for _, tc := range levels {
		t.Run("level "+tc.configured, func(t *testing.T) {
			log, err := Setup(config.LoggingConfig{Level: tc.configured})

			require.NoError(t, err)
			require.NotNil(t, log)
			assert.True(t, log.Enabled(context.Background(), tc.enabled))
			assert.False(t, log.Enabled(context.Background(), tc.disabled))
		})
	}

	t.Run("invalid level falls back to info", func(t *testing.T) {
		log, err := Setup(config.LoggingConfig{Level: "shouting"})

		require.NoError(t, err)
		require.NotNil(t, log)
		assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
		assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
	})
}

func TestCapture(t *testing.T) {
	t.Parallel()

	log, buf := NewCapture(slog.LevelInfo)
	log.Info("task completed", "task_id", "abc", "value", 3)
	log.Debug("dropped below level")

	entries, err := buf.GetLogEntries()

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "task completed", entries[0]["msg"])
	assert.Equal(t, "abc", entries[0]["task_id"])
	assert.EqualValues(t, 3, entries[0]["value"])

	buf.Reset()
	assert.Empty(t, buf.String())
}
