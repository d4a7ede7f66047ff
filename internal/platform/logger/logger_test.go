package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	t.Run("respects configured level", func(t *testing.T) {
		buf := &TestLogBuffer{}
		l, err := SetupWithWriter(config.ServerConfig{LogLevel: "warn"}, buf)
		require.NoError(t, err)
		require.NotNil(t, l)

		l.Info("dropped")
		l.Warn("kept", "key", "value")

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "kept", entries[0]["msg"])
		assert.Equal(t, "value", entries[0]["key"])
		assert.Same(t, l, slog.Default())
	})

	t.Run("invalid level falls back to info with a warning", func(t *testing.T) {
		buf := &TestLogBuffer{}
		l, err := SetupWithWriter(config.ServerConfig{LogLevel: "chatty"}, buf)
		require.NoError(t, err)

		l.Debug("dropped")
		l.Info("kept")

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "invalid log level configured, using default level", entries[0]["msg"])
		assert.Equal(t, "kept", entries[1]["msg"])
	})
}

func TestContextLogger(t *testing.T) {
	_, l := NewTestLogger(t)
	fallback := slog.New(slog.DiscardHandler)

	ctx := WithLogger(context.Background(), l)

	assert.Same(t, l, FromContext(ctx))
	assert.Same(t, l, FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
