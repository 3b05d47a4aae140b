package mcs

import (
	"fmt"
	"math"
	"strconv"

	"github.com/roach88/spacesync/internal/wire"
)

// DecodeElement decodes one Component Element, [TypeId, [Value]].
func DecodeElement(v wire.Value) (Field, error) {
	return decodeElement("", v)
}

// DecodeComponent decodes the singleton-wrapped payload of an element whose
// type tag is already known.
//
// Unknown tags fail with *UnsupportedTypeError; whether that is fatal is up
// to the caller. Dictionary entries are elements themselves and are decoded
// recursively. No schema interpretation happens here.
func DecodeComponent(typeID uint64, wrapped wire.Value) (Field, error) {
	return decodeComponent("", typeID, wrapped)
}

func decodeElement(path string, v wire.Value) (Field, error) {
	arr, ok := v.(wire.Array)
	if !ok || len(arr) != 2 {
		return Field{}, &ShapeError{
			Type:    noElementType,
			Path:    path,
			Message: "element is not a [TypeId, [Value]] pair",
			Excerpt: wire.Excerpt(v),
		}
	}
	typeID, ok := wire.AsUint64(arr[0])
	if !ok {
		return Field{}, &ShapeError{
			Type:    noElementType,
			Path:    path,
			Message: "type tag is not a non-negative integer",
			Excerpt: wire.Excerpt(arr[0]),
		}
	}
	return decodeComponent(path, typeID, arr[1])
}

func decodeComponent(path string, typeID uint64, wrapped wire.Value) (Field, error) {
	t := DataType(typeID)
	if !t.Known() {
		return Field{}, &UnsupportedTypeError{TypeID: typeID, Path: path}
	}

	outer, ok := wrapped.(wire.Array)
	if !ok || len(outer) != 1 {
		return Field{}, shapeErr(t, path, "payload is not wrapped in a single-element array", wrapped)
	}
	inner := outer[0]

	if k, ok := nullableInts[t]; ok {
		return decodeNullableInt(path, t, k, inner)
	}
	if k, ok := intArrays[t]; ok {
		return decodeIntArray(path, t, k, inner)
	}

	switch t {
	case NullableBool:
		if wire.IsNull(inner) {
			return Field{Type: t, Value: (*bool)(nil)}, nil
		}
		b, ok := inner.(wire.Bool)
		if !ok {
			return Field{}, shapeErr(t, path, "expected bool or null, got "+wire.Kind(inner), inner)
		}
		val := bool(b)
		return Field{Type: t, Value: &val}, nil

	case BoolArray:
		arr, ok := inner.(wire.Array)
		if !ok {
			return Field{}, shapeErr(t, path, "expected array, got "+wire.Kind(inner), inner)
		}
		out := make([]bool, len(arr))
		for i, elem := range arr {
			b, ok := elem.(wire.Bool)
			if !ok {
				return Field{}, shapeErr(t, indexPath(path, i), "expected bool, got "+wire.Kind(elem), elem)
			}
			out[i] = bool(b)
		}
		return Field{Type: t, Value: out}, nil

	case NullableFloat:
		if wire.IsNull(inner) {
			return Field{Type: t, Value: (*float32)(nil)}, nil
		}
		f, err := readFloat32(path, t, inner)
		if err != nil {
			return Field{}, err
		}
		return Field{Type: t, Value: &f}, nil

	case FloatArray:
		arr, ok := inner.(wire.Array)
		if !ok {
			return Field{}, shapeErr(t, path, "expected array, got "+wire.Kind(inner), inner)
		}
		out := make([]float32, len(arr))
		for i, elem := range arr {
			f, err := readFloat32(indexPath(path, i), t, elem)
			if err != nil {
				return Field{}, err
			}
			out[i] = f
		}
		return Field{Type: t, Value: out}, nil

	case NullableDouble:
		if wire.IsNull(inner) {
			return Field{Type: t, Value: (*float64)(nil)}, nil
		}
		f, ok := wire.AsFloat64(inner)
		if !ok {
			return Field{}, shapeErr(t, path, "expected number or null, got "+wire.Kind(inner), inner)
		}
		return Field{Type: t, Value: &f}, nil

	case DoubleArray:
		arr, ok := inner.(wire.Array)
		if !ok {
			return Field{}, shapeErr(t, path, "expected array, got "+wire.Kind(inner), inner)
		}
		out := make([]float64, len(arr))
		for i, elem := range arr {
			f, ok := wire.AsFloat64(elem)
			if !ok {
				return Field{}, shapeErr(t, indexPath(path, i), "expected number, got "+wire.Kind(elem), elem)
			}
			out[i] = f
		}
		return Field{Type: t, Value: out}, nil

	case String:
		s, ok := inner.(wire.String)
		if !ok {
			return Field{}, shapeErr(t, path, "expected string, got "+wire.Kind(inner), inner)
		}
		return Field{Type: t, Value: string(s)}, nil

	case StringDictionary:
		return decodeStringDictionary(path, inner)

	case Uint16Dictionary:
		return decodeUint16Dictionary(path, inner)
	}

	// Every known tag is handled above.
	return Field{}, &UnsupportedTypeError{TypeID: typeID, Path: path}
}

func decodeNullableInt(path string, t DataType, k intKind, inner wire.Value) (Field, error) {
	if k.signed {
		if wire.IsNull(inner) {
			return Field{Type: t, Value: (*int64)(nil)}, nil
		}
		i, err := readSigned(path, t, k, inner)
		if err != nil {
			return Field{}, err
		}
		return Field{Type: t, Value: &i}, nil
	}
	if wire.IsNull(inner) {
		return Field{Type: t, Value: (*uint64)(nil)}, nil
	}
	u, err := readUnsigned(path, t, k, inner)
	if err != nil {
		return Field{}, err
	}
	return Field{Type: t, Value: &u}, nil
}

func decodeIntArray(path string, t DataType, k intKind, inner wire.Value) (Field, error) {
	arr, ok := inner.(wire.Array)
	if !ok {
		return Field{}, shapeErr(t, path, "expected array, got "+wire.Kind(inner), inner)
	}
	if k.signed {
		out := make([]int64, len(arr))
		for i, elem := range arr {
			n, err := readSigned(indexPath(path, i), t, k, elem)
			if err != nil {
				return Field{}, err
			}
			out[i] = n
		}
		return Field{Type: t, Value: out}, nil
	}
	out := make([]uint64, len(arr))
	for i, elem := range arr {
		n, err := readUnsigned(indexPath(path, i), t, k, elem)
		if err != nil {
			return Field{}, err
		}
		out[i] = n
	}
	return Field{Type: t, Value: out}, nil
}

func decodeStringDictionary(path string, inner wire.Value) (Field, error) {
	out := make(map[string]Field)
	switch m := inner.(type) {
	case wire.StringMap:
		for key, elem := range m {
			f, err := decodeElement(keyPath(path, key), elem)
			if err != nil {
				return Field{}, err
			}
			out[key] = f
		}
	case wire.IntMap:
		// Generic decoders cannot tell an empty map's key type.
		if len(m) != 0 {
			return Field{}, shapeErr(StringDictionary, path, "expected string-keyed map, got int map", inner)
		}
	default:
		return Field{}, shapeErr(StringDictionary, path, "expected map, got "+wire.Kind(inner), inner)
	}
	return Field{Type: StringDictionary, Value: out}, nil
}

func decodeUint16Dictionary(path string, inner wire.Value) (Field, error) {
	out := make(map[uint16]Field)
	put := func(key uint64, elem wire.Value) error {
		if key > math.MaxUint16 {
			return shapeErr(Uint16Dictionary, path, fmt.Sprintf("key %d overflows uint16", key), inner)
		}
		f, err := decodeElement(indexPath(path, int(key)), elem)
		if err != nil {
			return err
		}
		out[uint16(key)] = f
		return nil
	}

	switch m := inner.(type) {
	case wire.IntMap:
		for key, elem := range m {
			if err := put(key, elem); err != nil {
				return Field{}, err
			}
		}
	case wire.StringMap:
		// Text transports can only carry string keys.
		for key, elem := range m {
			n, err := strconv.ParseUint(key, 10, 16)
			if err != nil {
				return Field{}, shapeErr(Uint16Dictionary, path, fmt.Sprintf("key %q is not a uint16", key), inner)
			}
			if err := put(n, elem); err != nil {
				return Field{}, err
			}
		}
	default:
		return Field{}, shapeErr(Uint16Dictionary, path, "expected map, got "+wire.Kind(inner), inner)
	}
	return Field{Type: Uint16Dictionary, Value: out}, nil
}

func readSigned(path string, t DataType, k intKind, v wire.Value) (int64, error) {
	n, ok := wire.AsInt64(v)
	if !ok {
		return 0, shapeErr(t, path, "expected integer, got "+wire.Kind(v), v)
	}
	if k.bits < 64 {
		limit := int64(1) << (k.bits - 1)
		if n < -limit || n >= limit {
			return 0, shapeErr(t, path, fmt.Sprintf("%d overflows int%d", n, k.bits), v)
		}
	}
	return n, nil
}

func readUnsigned(path string, t DataType, k intKind, v wire.Value) (uint64, error) {
	n, ok := wire.AsUint64(v)
	if !ok {
		return 0, shapeErr(t, path, "expected non-negative integer, got "+wire.Kind(v), v)
	}
	if k.bits < 64 && n >= uint64(1)<<k.bits {
		return 0, shapeErr(t, path, fmt.Sprintf("%d overflows uint%d", n, k.bits), v)
	}
	return n, nil
}

func readFloat32(path string, t DataType, v wire.Value) (float32, error) {
	f, ok := wire.AsFloat64(v)
	if !ok {
		return 0, shapeErr(t, path, "expected number, got "+wire.Kind(v), v)
	}
	if !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
		return 0, shapeErr(t, path, "value overflows float32", v)
	}
	return float32(f), nil
}

func shapeErr(t DataType, path, msg string, v wire.Value) *ShapeError {
	return &ShapeError{Type: t, Path: path, Message: msg, Excerpt: wire.Excerpt(v)}
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func keyPath(path, key string) string {
	return path + "[" + strconv.Quote(key) + "]"
}
