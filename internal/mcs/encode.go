package mcs

import (
	"fmt"

	"github.com/roach88/spacesync/internal/wire"
)

// EncodeElement renders f as a Component Element, [TypeId, [Value]].
// It is the inverse of DecodeElement for every catalogue tag.
func EncodeElement(f Field) (wire.Value, error) {
	return encodeElement("", f)
}

func encodeElement(path string, f Field) (wire.Value, error) {
	inner, err := encodeValue(path, f)
	if err != nil {
		return nil, err
	}
	return wire.Array{wire.Uint(f.Type), wire.Array{inner}}, nil
}

func encodeValue(path string, f Field) (wire.Value, error) {
	t := f.Type
	if !t.Known() {
		return nil, &UnsupportedTypeError{TypeID: uint64(t), Path: path}
	}
	mismatch := func() error {
		return &ShapeError{Type: t, Path: path, Message: fmt.Sprintf("native value %T does not fit the tag", f.Value)}
	}

	if k, ok := nullableInts[t]; ok {
		if k.signed {
			p, ok := f.Value.(*int64)
			if !ok {
				return nil, mismatch()
			}
			if p == nil {
				return wire.Null{}, nil
			}
			if _, err := readSigned(path, t, k, wire.Int(*p)); err != nil {
				return nil, err
			}
			return wire.Int(*p), nil
		}
		p, ok := f.Value.(*uint64)
		if !ok {
			return nil, mismatch()
		}
		if p == nil {
			return wire.Null{}, nil
		}
		if _, err := readUnsigned(path, t, k, wire.Uint(*p)); err != nil {
			return nil, err
		}
		return wire.Uint(*p), nil
	}

	if k, ok := intArrays[t]; ok {
		if k.signed {
			vals, ok := f.Value.([]int64)
			if !ok {
				return nil, mismatch()
			}
			arr := make(wire.Array, len(vals))
			for i, n := range vals {
				if _, err := readSigned(indexPath(path, i), t, k, wire.Int(n)); err != nil {
					return nil, err
				}
				arr[i] = wire.Int(n)
			}
			return arr, nil
		}
		vals, ok := f.Value.([]uint64)
		if !ok {
			return nil, mismatch()
		}
		arr := make(wire.Array, len(vals))
		for i, n := range vals {
			if _, err := readUnsigned(indexPath(path, i), t, k, wire.Uint(n)); err != nil {
				return nil, err
			}
			arr[i] = wire.Uint(n)
		}
		return arr, nil
	}

	switch t {
	case NullableBool:
		p, ok := f.Value.(*bool)
		if !ok {
			return nil, mismatch()
		}
		if p == nil {
			return wire.Null{}, nil
		}
		return wire.Bool(*p), nil

	case BoolArray:
		vals, ok := f.Value.([]bool)
		if !ok {
			return nil, mismatch()
		}
		arr := make(wire.Array, len(vals))
		for i, b := range vals {
			arr[i] = wire.Bool(b)
		}
		return arr, nil

	case NullableFloat:
		p, ok := f.Value.(*float32)
		if !ok {
			return nil, mismatch()
		}
		if p == nil {
			return wire.Null{}, nil
		}
		return wire.Float(*p), nil

	case FloatArray:
		vals, ok := f.Value.([]float32)
		if !ok {
			return nil, mismatch()
		}
		arr := make(wire.Array, len(vals))
		for i, v := range vals {
			arr[i] = wire.Float(v)
		}
		return arr, nil

	case NullableDouble:
		p, ok := f.Value.(*float64)
		if !ok {
			return nil, mismatch()
		}
		if p == nil {
			return wire.Null{}, nil
		}
		return wire.Float(*p), nil

	case DoubleArray:
		vals, ok := f.Value.([]float64)
		if !ok {
			return nil, mismatch()
		}
		arr := make(wire.Array, len(vals))
		for i, v := range vals {
			arr[i] = wire.Float(v)
		}
		return arr, nil

	case String:
		s, ok := f.Value.(string)
		if !ok {
			return nil, mismatch()
		}
		return wire.String(s), nil

	case StringDictionary:
		dict, ok := f.Value.(map[string]Field)
		if !ok {
			return nil, mismatch()
		}
		m := make(wire.StringMap, len(dict))
		for key, entry := range dict {
			elem, err := encodeElement(keyPath(path, key), entry)
			if err != nil {
				return nil, err
			}
			m[key] = elem
		}
		return m, nil

	case Uint16Dictionary:
		dict, ok := f.Value.(map[uint16]Field)
		if !ok {
			return nil, mismatch()
		}
		m := make(wire.IntMap, len(dict))
		for key, entry := range dict {
			elem, err := encodeElement(indexPath(path, int(key)), entry)
			if err != nil {
				return nil, err
			}
			m[uint64(key)] = elem
		}
		return m, nil
	}

	return nil, &UnsupportedTypeError{TypeID: uint64(t), Path: path}
}
