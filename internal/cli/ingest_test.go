package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spacesync/internal/journal"
)

func TestIngest_CountsDuplicates(t *testing.T) {
	cfg := testConfig(t)
	first := writeFile(t, "first.json", []byte(legacyPayload))
	second := writeFile(t, "second.json", []byte(otherPayload))
	again := writeFile(t, "again.json", []byte("\n  "+legacyPayload+"\n"))

	stdout, _, err := execute(t, cfg, "ingest", first, second, again)
	require.NoError(t, err)
	assert.Contains(t, stdout, "(duplicate)")
	assert.Contains(t, stdout, "Ingested 3 payload(s): 2 new, 1 duplicate, 0 dropped")

	j, err := journal.Open(cfg.JournalPath)
	require.NoError(t, err)
	defer j.Close()

	entries, err := j.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].Seq)
	assert.Equal(t, "AsyncCallCompleted", entries[0].EventName)
	assert.JSONEq(t, legacyRecord, string(entries[0].Record))
	assert.Equal(t, journal.PayloadID(entries[0].Payload), entries[0].ID)
}

func TestIngest_JSONFormat(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, "payload.json", []byte(legacyPayload))

	stdout, _, err := execute(t, cfg, "ingest", path, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   IngestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Data.Session)
	assert.Equal(t, 1, resp.Data.Inserted)
	require.Len(t, resp.Data.Files, 1)
	assert.Len(t, resp.Data.Files[0].ID, 64)
	assert.True(t, resp.Data.Files[0].Inserted)
}

func TestIngest_DroppedPayloadIsJournaled(t *testing.T) {
	cfg := testConfig(t)
	path := writeFile(t, "dropped.json", []byte(droppedPayload))

	stdout, _, err := execute(t, cfg, "ingest", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "0 duplicate, 1 dropped")

	j, err := journal.Open(cfg.JournalPath)
	require.NoError(t, err)
	defer j.Close()

	entries, err := j.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "null", string(entries[0].Record))
	assert.Equal(t, "AsyncCallCompleted", entries[0].EventName)
}

func TestIngest_StrictFailsOnDrop(t *testing.T) {
	cfg := testConfig(t)
	good := writeFile(t, "good.json", []byte(legacyPayload))
	bad := writeFile(t, "dropped.json", []byte(droppedPayload))

	_, _, err := execute(t, cfg, "ingest", "--strict", good, bad)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 payload(s) dropped")
}

func TestIngest_UnopenableJournal(t *testing.T) {
	path := writeFile(t, "payload.json", []byte(legacyPayload))

	_, _, err := execute(t, testConfig(t), "ingest", "--db", "/nonexistent/dir/journal.db", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to open journal")
}

func TestIngest_RequiresFile(t *testing.T) {
	_, _, err := execute(t, testConfig(t), "ingest")
	require.Error(t, err)
}
