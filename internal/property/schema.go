package property

import (
	"fmt"
	"slices"

	"github.com/roach88/spacesync/internal/replicated"
)

// Key identifies one replicated attribute within a component.
// Keys are part of the wire contract and must not be renumbered.
type Key uint32

// Entry declares one key, its diagnostic name and its default value.
// The default also fixes the type the key is expected to hold.
type Entry struct {
	Key     Key
	Name    string
	Default replicated.Value
}

// Schema is the declared key layout of a component kind.
type Schema struct {
	entries  []Entry
	reserved []Key
	index    map[Key]int
}

// SchemaError reports a schema that cannot establish the construction invariant.
type SchemaError struct {
	Key     Key
	Message string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("property schema: key %d: %s", e.Key, e.Message)
}

// NewSchema validates and builds a schema.
//
// It fails if a key is declared twice, a declared key is also reserved, or a
// default is InvalidType. Reserved keys are gaps kept for compatibility with
// other peers and can never be populated.
func NewSchema(entries []Entry, reserved ...Key) (*Schema, error) {
	s := &Schema{
		entries:  slices.Clone(entries),
		reserved: slices.Clone(reserved),
		index:    make(map[Key]int, len(entries)),
	}
	slices.Sort(s.reserved)

	for i, e := range s.entries {
		if _, dup := s.index[e.Key]; dup {
			return nil, &SchemaError{Key: e.Key, Message: "declared twice"}
		}
		if slices.Contains(s.reserved, e.Key) {
			return nil, &SchemaError{Key: e.Key, Message: "key is reserved"}
		}
		if !e.Default.IsValid() {
			return nil, &SchemaError{Key: e.Key, Message: fmt.Sprintf("%s has no typed default", e.Name)}
		}
		s.index[e.Key] = i
	}
	return s, nil
}

// MustSchema is NewSchema for package-level schema tables. It panics on error.
func MustSchema(entries []Entry, reserved ...Key) *Schema {
	s, err := NewSchema(entries, reserved...)
	if err != nil {
		panic(err)
	}
	return s
}

// Entries returns the declared entries in declaration order.
func (s *Schema) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Reserved returns the reserved keys in ascending order.
func (s *Schema) Reserved() []Key {
	return slices.Clone(s.reserved)
}

// Entry returns the declaration for key.
func (s *Schema) Entry(key Key) (Entry, bool) {
	i, ok := s.index[key]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// IsReserved reports whether key is a reserved gap.
func (s *Schema) IsReserved(key Key) bool {
	_, found := slices.BinarySearch(s.reserved, key)
	return found
}
