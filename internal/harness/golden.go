package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/spacesync/internal/journal"
)

// Snapshot is the golden representation of a scenario run.
type Snapshot struct {
	Scenario    string          `json:"scenario"`
	Event       string          `json:"event"`
	Dropped     bool            `json:"dropped"`
	ErrorCode   string          `json:"error_code"`
	Record      json.RawMessage `json:"record"`
	Diagnostics []Diagnostic    `json:"diagnostics"`
}

// Bytes renders the snapshot as stable JSON followed by a newline.
func (s Snapshot) Bytes() ([]byte, error) {
	data, err := journal.EncodeRecord(s)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// NewSnapshot captures result under name.
func NewSnapshot(name string, result *Result) Snapshot {
	return Snapshot{
		Scenario:    name,
		Event:       result.Event,
		Dropped:     result.Dropped,
		ErrorCode:   result.ErrorCode,
		Record:      result.Record,
		Diagnostics: result.Diagnostics,
	}
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if the scenario could not be executed. Assertion failures
// are reported through t.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", scenario.Name, msg)
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result against its golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := NewSnapshot(name, result).Bytes()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
