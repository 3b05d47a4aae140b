package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Scenario defines one decode scenario: a payload as it would arrive from
// the multiplayer service, and assertions on what decoding it produces.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Payload is the event payload as a wire value:
	// [EventName, SenderId, RecipientId, ComponentsMap].
	Payload any `yaml:"payload"`

	// Assertions validate the decode result.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of a decode result.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Event is the expected event name (decoded).
	Event string `yaml:"event,omitempty"`

	// Code is the expected DecodeError code (dropped).
	Code string `yaml:"code,omitempty"`

	// Field is a dotted path into the record JSON (field_equals).
	Field string `yaml:"field,omitempty"`

	// Value is the expected field value (field_equals).
	Value any `yaml:"value,omitempty"`

	// Level is a slog level name (diagnostic_count).
	Level string `yaml:"level,omitempty"`

	// Count is the expected number of diagnostics (diagnostic_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertDecoded         = "decoded"
	AssertDropped         = "dropped"
	AssertFieldEquals     = "field_equals"
	AssertDiagnosticCount = "diagnostic_count"
)

var diagnosticLevels = []string{"DEBUG", "INFO", "WARN", "ERROR"}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	slices.Sort(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if prev, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s", filepath.Base(path), s.Name, prev)
		}
		seen[s.Name] = filepath.Base(path)
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Payload == nil {
		return fmt.Errorf("payload is required")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertDecoded:
		if a.Event == "" {
			return fmt.Errorf("assertions[%d]: event is required for decoded", index)
		}
	case AssertDropped:
		if a.Code == "" {
			return fmt.Errorf("assertions[%d]: code is required for dropped", index)
		}
	case AssertFieldEquals:
		if a.Field == "" {
			return fmt.Errorf("assertions[%d]: field is required for field_equals", index)
		}
	case AssertDiagnosticCount:
		if !slices.Contains(diagnosticLevels, a.Level) {
			return fmt.Errorf("assertions[%d]: level must be one of %v for diagnostic_count", index, diagnosticLevels)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for diagnostic_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
