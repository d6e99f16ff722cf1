package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/snapdex/internal/config"
	"github.com/phrazzld/snapdex/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreDefault puts the original slog default back after a test that calls New.
func restoreDefault(t *testing.T) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestNew_Levels(t *testing.T) {
	testCases := []struct {
		level        string
		debugVisible bool
		infoVisible  bool
		warnVisible  bool
	}{
		{level: "debug", debugVisible: true, infoVisible: true, warnVisible: true},
		{level: "info", debugVisible: false, infoVisible: true, warnVisible: true},
		{level: "WARN", debugVisible: false, infoVisible: false, warnVisible: true},
		{level: "error", debugVisible: false, infoVisible: false, warnVisible: false},
		{level: "bogus", debugVisible: false, infoVisible: true, warnVisible: true},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			restoreDefault(t)
			var buf bytes.Buffer

			log, err := logger.New(&buf, config.LogConfig{Level: tc.level, Format: "json"})
			require.NoError(t, err)
			require.NotNil(t, log)

			log.Debug("debug message")
			log.Info("info message")
			log.Warn("warn message")

			out := buf.String()
			assert.Equal(t, tc.debugVisible, strings.Contains(out, "debug message"))
			assert.Equal(t, tc.infoVisible, strings.Contains(out, "info message"))
			assert.Equal(t, tc.warnVisible, strings.Contains(out, "warn message"))
		})
	}
}

func TestNew_SetsDefault(t *testing.T) {
	restoreDefault(t)
	buf := &logger.TestLogBuffer{}

	_, err := logger.New(buf, config.LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)

	slog.Info("via default", "card_id", "abc")

	logger.AssertLogContains(t, buf, "via default")
	logger.AssertLogField(t, buf, "card_id", "abc")
}

func TestNew_Formats(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		restoreDefault(t)
		var buf bytes.Buffer
		log, err := logger.New(&buf, config.LogConfig{Level: "info", Format: "text"})
		require.NoError(t, err)

		log.Info("hello", "key", "value")
		assert.Contains(t, buf.String(), "key=value")
	})

	t.Run("unsupported", func(t *testing.T) {
		restoreDefault(t)
		log, err := logger.New(&bytes.Buffer{}, config.LogConfig{Level: "info", Format: "xml"})
		assert.Error(t, err)
		assert.Nil(t, log)
	})
}

func TestContextLogger(t *testing.T) {
	capture := logger.NewLogCaptureContext(t)

	got, ok := logger.FromContext(capture.Context)
	require.True(t, ok)
	assert.Same(t, capture.Logger, got)
	assert.Same(t, capture.Logger, logger.FromContextOrDefault(capture.Context))

	logger.FromContextOrDefault(capture.Context).Info("from context")
	logger.AssertLogContains(t, capture.Buffer, "from context")

	_, ok = logger.FromContext(context.Background())
	assert.False(t, ok)
	assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background()))
}

func TestCaptureLogs(t *testing.T) {
	out := logger.CaptureLogs(t, func(l *slog.Logger) {
		l.Debug("captured", "component", "test")
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &entry))
	assert.Equal(t, "captured", entry["msg"])
	assert.Equal(t, "test", entry["component"])
}
