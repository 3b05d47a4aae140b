package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validScenario = `
name: test_scenario
description: "Test scenario for validation"
payload: [AsyncCallCompleted, 1, null, {0: [20, [Op]], 1: [20, [ref]]}]
assertions:
  - type: decoded
    event: AsyncCallCompleted
`

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "test.yaml", validScenario)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	require.Len(t, scenario.Assertions, 1)
	assert.Equal(t, AssertDecoded, scenario.Assertions[0].Type)

	payload, ok := scenario.Payload.([]any)
	require.True(t, ok)
	assert.Len(t, payload, 4)
	assert.Equal(t, "AsyncCallCompleted", payload[0])
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_UnknownField(t *testing.T) {
	_, err := ParseScenario([]byte(validScenario + "assertion: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\npayload: [x]\nassertions: [{type: decoded, event: x}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\npayload: [x]\nassertions: [{type: decoded, event: x}]\n",
			wantErr: "description is required",
		},
		{
			name:    "missing payload",
			content: "name: n\ndescription: d\nassertions: [{type: decoded, event: x}]\n",
			wantErr: "payload is required",
		},
		{
			name:    "no assertions",
			content: "name: n\ndescription: d\npayload: [x]\n",
			wantErr: "assertions list is required",
		},
		{
			name:    "decoded without event",
			content: "name: n\ndescription: d\npayload: [x]\nassertions: [{type: decoded}]\n",
			wantErr: "assertions[0]: event is required for decoded",
		},
		{
			name:    "dropped without code",
			content: "name: n\ndescription: d\npayload: [x]\nassertions: [{type: dropped}]\n",
			wantErr: "assertions[0]: code is required for dropped",
		},
		{
			name:    "field_equals without field",
			content: "name: n\ndescription: d\npayload: [x]\nassertions: [{type: field_equals, value: 1}]\n",
			wantErr: "assertions[0]: field is required for field_equals",
		},
		{
			name:    "bad level",
			content: "name: n\ndescription: d\npayload: [x]\nassertions: [{type: diagnostic_count, level: LOUD}]\n",
			wantErr: "assertions[0]: level must be one of",
		},
		{
			name:    "negative count",
			content: "name: n\ndescription: d\npayload: [x]\nassertions: [{type: diagnostic_count, level: WARN, count: -1}]\n",
			wantErr: "count must be non-negative",
		},
		{
			name:    "unknown type",
			content: "name: n\ndescription: d\npayload: [x]\nassertions: [{type: trace_order}]\n",
			wantErr: `unknown assertion type "trace_order"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenarios_SortedAndUnique(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "b.yaml", validScenario)
	writeScenario(t, dir, "a.yaml", `
name: first
description: "first"
payload: [x, 1, null, {}]
assertions: [{type: decoded, event: x}]
`)
	writeScenario(t, dir, "notes.txt", "ignored")

	scenarios, err := LoadScenarios(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "first", scenarios[0].Name)
	assert.Equal(t, "test_scenario", scenarios[1].Name)

	writeScenario(t, dir, "c.yaml", validScenario)
	_, err = LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `scenario name "test_scenario" already used by b.yaml`)
}

func TestLoadScenarios_Testdata(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	assert.Len(t, scenarios, 6)
}
