package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, FormatText, cfg.LogFormat)
	assert.Equal(t, "spacesync.db", cfg.JournalPath)
	assert.False(t, cfg.Strict)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SPACESYNC_LOG_LEVEL", "debug")
	t.Setenv("SPACESYNC_LOG_FORMAT", "json")
	t.Setenv("SPACESYNC_JOURNAL_PATH", "/tmp/j.db")
	t.Setenv("SPACESYNC_STRICT", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, FormatJSON, cfg.LogFormat)
	assert.Equal(t, "/tmp/j.db", cfg.JournalPath)
	assert.True(t, cfg.Strict)
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("SPACESYNC_STRICT", "not-a-bool")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse env:"), err.Error())
}

func TestLoadInvalidFormat(t *testing.T) {
	t.Setenv("SPACESYNC_LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log format "xml"`)
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{LogLevel: slog.LevelWarn, LogFormat: FormatJSON}, &buf)

	log.Info("hidden")
	log.Warn("shown", "key", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, float64(3), rec["key"])
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{LogLevel: slog.LevelInfo, LogFormat: FormatText}, &buf)

	log.Info("hello", "event", "AsyncCallCompleted")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "event=AsyncCallCompleted")
}
