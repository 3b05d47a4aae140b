package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRecorderCapturesAttrs(t *testing.T) {
	rec, log := NewLogRecorder()

	log.With("component", "collision").Error("bad value", "key", 3)

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, slog.LevelError, records[0].Level)
	assert.Equal(t, "bad value", records[0].Message)
	assert.Equal(t, "collision", records[0].Attrs["component"])
	assert.Equal(t, int64(3), records[0].Attrs["key"])
}

func TestLogRecorderCountByLevel(t *testing.T) {
	rec, log := NewLogRecorder()

	log.Debug("d")
	log.Warn("w")
	log.Error("e")

	assert.Equal(t, 3, rec.Count(slog.LevelDebug))
	assert.Equal(t, 2, rec.Count(slog.LevelWarn))
	assert.Equal(t, 1, rec.Count(slog.LevelError))

	rec.Reset()
	assert.Equal(t, 0, rec.Count(slog.LevelDebug))
}

func TestFixedSessionGenerator(t *testing.T) {
	assert.Equal(t, "abc", NewFixedSessionGenerator("abc").Generate())
	assert.Equal(t, "test-session-default", NewFixedSessionGenerator("").Generate())
}
