package harness

import "encoding/json"

// Diagnostic is one log record emitted while decoding.
type Diagnostic struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Event is the decoded event name; empty when the payload was dropped.
	Event string `json:"event"`

	// Dropped is true when the decoder rejected the payload.
	Dropped bool `json:"dropped"`

	// ErrorCode is the DecodeError code of a dropped payload.
	ErrorCode string `json:"error_code"`

	// Record is the stable JSON encoding of the decoded record, or nil.
	Record json.RawMessage `json:"record"`

	// Diagnostics are the log records emitted while decoding, in order.
	Diagnostics []Diagnostic `json:"diagnostics"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:        true,
		Diagnostics: []Diagnostic{},
		Errors:      []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// CountDiagnostics returns how many diagnostics were logged at level.
func (r *Result) CountDiagnostics(level string) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Level == level {
			n++
		}
	}
	return n
}
