package property

import (
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/roach88/spacesync/internal/replicated"
)

// Store holds the replicated property state of one component.
//
// Every declared key is populated with its default at construction, so Get
// never has to synthesize a type. Set records the key as dirty for the
// replication transport.
//
// Thread-safety: Store has no internal locking. If local application code and
// network-apply code can run concurrently, callers must serialize access.
type Store struct {
	schema *Schema
	values map[Key]replicated.Value
	dirty  map[Key]struct{}
	onSet  func(Key)
	log    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the sink for tolerant-accessor diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDirtyFunc registers a hook called on every Set, after the key is marked dirty.
func WithDirtyFunc(fn func(Key)) Option {
	return func(s *Store) {
		s.onSet = fn
	}
}

// New creates a store for schema and writes every default.
func New(schema *Schema, opts ...Option) *Store {
	s := &Store{
		schema: schema,
		values: make(map[Key]replicated.Value, len(schema.entries)),
		dirty:  make(map[Key]struct{}),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.SetDefaults()
	return s
}

// SetDefaults writes the declared default for every key.
// Defaults are not replication changes, so the dirty set is left untouched.
func (s *Store) SetDefaults() {
	for _, e := range s.schema.entries {
		s.values[e.Key] = e.Default
	}
}

// Schema returns the schema the store was built from.
func (s *Store) Schema() *Schema {
	return s.schema
}

// Logger returns the diagnostic sink.
func (s *Store) Logger() *slog.Logger {
	return s.log
}

// Get returns the stored value for key without inserting.
// An absent key returns the zero Value and logs; for declared keys this
// cannot happen.
func (s *Store) Get(key Key) replicated.Value {
	v, ok := s.values[key]
	if !ok {
		s.log.Error("property key not populated", "key", uint32(key))
	}
	return v
}

// Lookup returns the stored value and whether key is present.
func (s *Store) Lookup(key Key) (replicated.Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set overwrites the value for key and marks it dirty.
func (s *Store) Set(key Key, value replicated.Value) {
	s.values[key] = value
	s.dirty[key] = struct{}{}
	if s.onSet != nil {
		s.onSet(key)
	}
}

// Dirty returns the keys set since the last ClearDirty, ascending.
func (s *Store) Dirty() []Key {
	return slices.Sorted(maps.Keys(s.dirty))
}

// ClearDirty empties the dirty set, typically after the patch was sent.
func (s *Store) ClearDirty() {
	clear(s.dirty)
}

// Keys returns every populated key, ascending.
func (s *Store) Keys() []Key {
	return slices.Sorted(maps.Keys(s.values))
}

// Snapshot returns a copy of the stored values.
func (s *Store) Snapshot() map[Key]replicated.Value {
	return maps.Clone(s.values)
}

// Strict returns the value for key if it holds typ, or a
// *replicated.TypeMismatchError otherwise.
func (s *Store) Strict(key Key, typ replicated.Type) (replicated.Value, error) {
	v := s.Get(key)
	if v.Type() != typ {
		return replicated.Value{}, &replicated.TypeMismatchError{Expected: v.Type(), Actual: typ}
	}
	return v, nil
}

// The accessors below use the tolerant policy: on a type mismatch they log
// one error with the key and return the type's default.

// Bool reads key as a bool.
func (s *Store) Bool(key Key) bool {
	v, log := s.tolerant(key, replicated.BooleanType)
	return v.BoolOr(log)
}

// Int reads key as an int64.
func (s *Store) Int(key Key) int64 {
	v, log := s.tolerant(key, replicated.IntegerType)
	return v.IntOr(log)
}

// Float reads key as a float32.
func (s *Store) Float(key Key) float32 {
	v, log := s.tolerant(key, replicated.FloatType)
	return v.FloatOr(log)
}

// Str reads key as a string.
func (s *Store) Str(key Key) string {
	v, log := s.tolerant(key, replicated.StringType)
	return v.StrOr(log)
}

// Vector2 reads key as a Vector2.
func (s *Store) Vector2(key Key) replicated.Vector2 {
	v, log := s.tolerant(key, replicated.Vector2Type)
	return v.Vector2Or(log)
}

// Vector3 reads key as a Vector3.
func (s *Store) Vector3(key Key) replicated.Vector3 {
	v, log := s.tolerant(key, replicated.Vector3Type)
	return v.Vector3Or(log)
}

// Vector4 reads key as a Vector4.
func (s *Store) Vector4(key Key) replicated.Vector4 {
	v, log := s.tolerant(key, replicated.Vector4Type)
	return v.Vector4Or(log)
}

// StringMap reads key as a replicated.Map.
func (s *Store) StringMap(key Key) replicated.Map {
	v, log := s.tolerant(key, replicated.StringMapType)
	return v.StringMapOr(log)
}

// tolerant returns the stored value and, only when it does not hold typ, a
// logger annotated with the key. The annotated logger is not built on the
// matching path. A missing key is logged here and a nil logger returned, so
// each read produces at most one diagnostic.
func (s *Store) tolerant(key Key, typ replicated.Type) (replicated.Value, *slog.Logger) {
	v, ok := s.Lookup(key)
	if !ok {
		s.keyLog(key).Error("property key not populated", "expected", typ.String())
		return v, nil
	}
	if v.Type() == typ {
		return v, nil
	}
	return v, s.keyLog(key)
}

func (s *Store) keyLog(key Key) *slog.Logger {
	if e, ok := s.schema.Entry(key); ok {
		return s.log.With("key", uint32(key), "property", e.Name)
	}
	return s.log.With("key", uint32(key))
}
