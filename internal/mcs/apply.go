package mcs

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/roach88/spacesync/internal/property"
	"github.com/roach88/spacesync/internal/wire"
)

// ApplyComponentUpdate writes a replicated component patch into store.
//
// components maps property keys to Component Elements. It may be an IntMap,
// or a StringMap with decimal keys when the patch arrived as text. Decoding
// is best-effort for forward compatibility: elements with an unsupported tag,
// keys the schema does not declare and values whose type disagrees with the
// declared default are skipped with a warning. A malformed element aborts the
// whole patch before anything is written.
//
// The returned keys are the ones actually Set, ascending. A nil log falls
// back to the store's logger.
func ApplyComponentUpdate(store *property.Store, components wire.Value, log *slog.Logger) ([]property.Key, error) {
	if log == nil {
		log = store.Logger()
	}
	elems, err := Components(components)
	if err != nil {
		return nil, err
	}

	schema := store.Schema()
	pending := make(map[uint64]Field, len(elems))
	for _, key := range slices.Sorted(maps.Keys(elems)) {
		f, err := DecodeElement(elems[key])
		if err != nil {
			if IsUnsupportedType(err) {
				log.Warn("skipping component property", "key", key, "error", err)
				continue
			}
			return nil, fmt.Errorf("component property %d: %w", key, err)
		}
		pending[key] = f
	}

	applied := make([]property.Key, 0, len(pending))
	for _, key := range slices.Sorted(maps.Keys(pending)) {
		if key > math.MaxUint32 {
			log.Warn("skipping component property", "key", key, "reason", "key out of range")
			continue
		}
		pk := property.Key(key)
		entry, ok := schema.Entry(pk)
		if !ok {
			log.Warn("skipping component property", "key", key, "reason", "key not declared")
			continue
		}
		rv, err := ToReplicated(pending[key])
		if err != nil {
			log.Warn("skipping component property", "key", key, "property", entry.Name, "error", err)
			continue
		}
		if rv.Type() != entry.Default.Type() {
			log.Warn("skipping component property", "key", key, "property", entry.Name,
				"expected", entry.Default.Type().String(), "actual", rv.Type().String())
			continue
		}
		store.Set(pk, rv)
		applied = append(applied, pk)
	}
	return applied, nil
}

// EncodeComponentUpdate builds the outgoing patch for keys, typically
// store.Dirty().
func EncodeComponentUpdate(store *property.Store, keys []property.Key) (wire.IntMap, error) {
	out := make(wire.IntMap, len(keys))
	for _, key := range keys {
		v, ok := store.Lookup(key)
		if !ok {
			return nil, fmt.Errorf("component property %d: not populated", key)
		}
		f, err := FromReplicated(v)
		if err != nil {
			return nil, fmt.Errorf("component property %d: %w", key, err)
		}
		elem, err := EncodeElement(f)
		if err != nil {
			return nil, fmt.Errorf("component property %d: %w", key, err)
		}
		out[uint64(key)] = elem
	}
	return out, nil
}

// Components normalises an integer-keyed component map. A StringMap must
// have decimal keys; null yields an empty map.
func Components(v wire.Value) (map[uint64]wire.Value, error) {
	switch m := v.(type) {
	case wire.IntMap:
		return m, nil
	case wire.StringMap:
		out := make(map[uint64]wire.Value, len(m))
		for k, elem := range m {
			n, err := strconv.ParseUint(k, 10, 64)
			if err != nil {
				return nil, &ShapeError{
					Type:    noElementType,
					Message: fmt.Sprintf("component key %q is not an integer", k),
					Excerpt: wire.Excerpt(v),
				}
			}
			out[n] = elem
		}
		return out, nil
	case wire.Null:
		return nil, nil
	}
	return nil, &ShapeError{
		Type:    noElementType,
		Message: "components are not a map, got " + wire.Kind(v),
		Excerpt: wire.Excerpt(v),
	}
}
