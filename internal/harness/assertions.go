package harness

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, actual %s", e.Type, e.Expected, e.Actual)
}

func evaluate(r *Result, a Assertion) error {
	switch a.Type {
	case AssertDecoded:
		return assertDecoded(r, a)
	case AssertDropped:
		return assertDropped(r, a)
	case AssertFieldEquals:
		return assertFieldEquals(r, a)
	case AssertDiagnosticCount:
		return assertDiagnosticCount(r, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertDecoded(r *Result, a Assertion) error {
	if r.Dropped {
		return &AssertionError{
			Type:     AssertDecoded,
			Expected: fmt.Sprintf("a %s record", a.Event),
			Actual:   fmt.Sprintf("dropped with %s", r.ErrorCode),
		}
	}
	if r.Event != a.Event {
		return &AssertionError{Type: AssertDecoded, Expected: a.Event, Actual: r.Event}
	}
	return nil
}

func assertDropped(r *Result, a Assertion) error {
	if !r.Dropped {
		return &AssertionError{
			Type:     AssertDropped,
			Expected: fmt.Sprintf("drop with %s", a.Code),
			Actual:   fmt.Sprintf("a %s record", r.Event),
		}
	}
	if r.ErrorCode != a.Code {
		return &AssertionError{Type: AssertDropped, Expected: a.Code, Actual: r.ErrorCode}
	}
	return nil
}

// assertFieldEquals compares after normalizing both sides through JSON, so
// YAML integers match JSON numbers.
func assertFieldEquals(r *Result, a Assertion) error {
	if r.Record == nil {
		return &AssertionError{Type: AssertFieldEquals, Expected: a.Field, Actual: "no record"}
	}

	var record any
	if err := json.Unmarshal(r.Record, &record); err != nil {
		return fmt.Errorf("record is not JSON: %w", err)
	}
	got, ok := lookupPath(record, a.Field)
	if !ok {
		return &AssertionError{Type: AssertFieldEquals, Expected: a.Field, Actual: "field not present"}
	}

	want, err := normalize(a.Value)
	if err != nil {
		return fmt.Errorf("expected value: %w", err)
	}
	if !reflect.DeepEqual(got, want) {
		return &AssertionError{
			Type:     AssertFieldEquals,
			Expected: fmt.Sprintf("%s = %v", a.Field, want),
			Actual:   fmt.Sprintf("%v", got),
		}
	}
	return nil
}

func assertDiagnosticCount(r *Result, a Assertion) error {
	if got := r.CountDiagnostics(a.Level); got != a.Count {
		return &AssertionError{
			Type:     AssertDiagnosticCount,
			Expected: fmt.Sprintf("%d %s diagnostics", a.Count, a.Level),
			Actual:   fmt.Sprintf("%d", got),
		}
	}
	return nil
}

// lookupPath walks a dotted path through decoded JSON objects.
func lookupPath(v any, path string) (any, bool) {
	for _, part := range strings.Split(path, ".") {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return v, true
}

func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
