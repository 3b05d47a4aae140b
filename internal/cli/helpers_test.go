package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/spacesync/internal/config"
)

const (
	legacyPayload  = `["AsyncCallCompleted", 1, null, {"0": [20, ["DuplicateSpace"]], "1": [20, ["space-1"]], "2": [20, ["GroupId"]]}]`
	otherPayload   = `["AsyncCallCompleted", 2, null, {"0": [20, ["DeleteSpace"]], "1": [20, ["space-2"]], "2": [20, ["GroupId"]]}]`
	droppedPayload = `["AsyncCallCompleted", 1, null, {"0": [20, ["DuplicateSpace"]]}]`
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, cfg config.Config, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand(cfg)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		LogFormat:   config.FormatText,
		JournalPath: filepath.Join(t.TempDir(), "journal.db"),
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
