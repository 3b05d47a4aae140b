// Package harness runs event decode scenarios and compares their output
// against golden snapshots.
//
// # Scenario Format
//
// Scenarios are YAML files. The payload is written as the wire value itself
// and is sent through the CBOR transport before it is decoded, so scenarios
// exercise the same path a received message takes:
//
//	name: current_schema
//	description: "References dictionary with back-fill"
//	payload:
//	  - AsyncCallCompleted
//	  - 1
//	  - null
//	  - 0: [20, [DuplicateSpace]]
//	    1: [22, [{SpaceId: [20, [space-1]]}]]
//	assertions:
//	  - type: decoded
//	    event: AsyncCallCompleted
//	  - type: field_equals
//	    field: reference_type
//	    value: GroupId
//
// # Assertion Types
//
//   - decoded: the payload produced a record for the named event
//   - dropped: the payload was rejected with the given error code
//   - field_equals: a dotted path into the record's JSON equals value
//   - diagnostic_count: exactly count diagnostics were logged at level
//
// # Golden Snapshots
//
// RunWithGolden stores the record and diagnostics as stable JSON in
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
