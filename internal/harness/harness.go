package harness

import (
	"errors"
	"fmt"

	"github.com/roach88/spacesync/internal/event"
	"github.com/roach88/spacesync/internal/journal"
	"github.com/roach88/spacesync/internal/testutil"
	"github.com/roach88/spacesync/internal/wire"
)

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Convert the YAML payload to a wire value
//  2. Encode it to CBOR and decode it back, as the transport would
//  3. Decode the event with a fresh dispatcher whose diagnostics are captured
//  4. Evaluate the assertions
//
// A returned error means the scenario itself could not be executed; decode
// failures are part of the result.
func Run(scenario *Scenario) (*Result, error) {
	payload, err := wire.FromNative(scenario.Payload)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: payload: %w", scenario.Name, err)
	}
	data, err := wire.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	received, err := wire.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	recorder, log := testutil.NewLogRecorder()
	result := NewResult()

	ev, decodeErr := event.NewDispatcher(log).Decode(received)
	if decodeErr != nil {
		result.Dropped = true
		var de *event.DecodeError
		if errors.As(decodeErr, &de) {
			result.ErrorCode = string(de.Code)
		}
	} else {
		record, err := journal.EncodeRecord(ev)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		result.Event = ev.EventName()
		result.Record = record
	}

	for _, rec := range recorder.Records() {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Level:   rec.Level.String(),
			Message: rec.Message,
		})
	}

	for i, a := range scenario.Assertions {
		if err := evaluate(result, a); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return result, nil
}
