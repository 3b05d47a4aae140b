package wire

import (
	"fmt"
)

// FromNative converts a transport-native Go value into a wire Value.
//
// Accepted inputs are what generic decoders produce: nil, bool, signed and
// unsigned integers, float32/float64, string, []any, map[string]any,
// map[uint64]any and map[any]any with all-string or all-integer keys.
// An empty map[any]any becomes an empty StringMap.
func FromNative(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint:
		return Uint(val), nil
	case uint8:
		return Uint(val), nil
	case uint16:
		return Uint(val), nil
	case uint32:
		return Uint(val), nil
	case uint64:
		return Uint(val), nil
	case float32:
		return Float(val), nil
	case float64:
		return Float(val), nil
	case string:
		return String(val), nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			w, err := FromNative(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = w
		}
		return arr, nil
	case map[string]any:
		m := make(StringMap, len(val))
		for k, elem := range val {
			w, err := FromNative(elem)
			if err != nil {
				return nil, fmt.Errorf("map[%q]: %w", k, err)
			}
			m[k] = w
		}
		return m, nil
	case map[uint64]any:
		m := make(IntMap, len(val))
		for k, elem := range val {
			w, err := FromNative(elem)
			if err != nil {
				return nil, fmt.Errorf("map[%d]: %w", k, err)
			}
			m[k] = w
		}
		return m, nil
	case map[any]any:
		return fromAnyMap(val)
	default:
		return nil, fmt.Errorf("unsupported native type: %T", v)
	}
}

// fromAnyMap handles generic maps whose keys must be homogeneous.
func fromAnyMap(val map[any]any) (Value, error) {
	var strs StringMap
	var ints IntMap
	for k, elem := range val {
		w, err := FromNative(elem)
		if err != nil {
			return nil, fmt.Errorf("map[%v]: %w", k, err)
		}
		switch key := k.(type) {
		case string:
			if ints != nil {
				return nil, fmt.Errorf("map mixes string and integer keys")
			}
			if strs == nil {
				strs = make(StringMap, len(val))
			}
			strs[key] = w
		default:
			n, err := FromNative(key)
			if err != nil {
				return nil, fmt.Errorf("map key %v: %w", k, err)
			}
			u, ok := AsUint64(n)
			if !ok {
				return nil, fmt.Errorf("map key %v is not a non-negative integer", k)
			}
			if strs != nil {
				return nil, fmt.Errorf("map mixes string and integer keys")
			}
			if ints == nil {
				ints = make(IntMap, len(val))
			}
			ints[u] = w
		}
	}
	if ints != nil {
		return ints, nil
	}
	if strs == nil {
		strs = StringMap{}
	}
	return strs, nil
}

// ToNative converts a wire Value into plain Go values suitable for generic
// encoders.
func ToNative(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(val)
	case Int:
		return int64(val)
	case Uint:
		return uint64(val)
	case Float:
		return float64(val)
	case String:
		return string(val)
	case Array:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = ToNative(elem)
		}
		return out
	case StringMap:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = ToNative(elem)
		}
		return out
	case IntMap:
		out := make(map[uint64]any, len(val))
		for k, elem := range val {
			out[k] = ToNative(elem)
		}
		return out
	default:
		return nil
	}
}
