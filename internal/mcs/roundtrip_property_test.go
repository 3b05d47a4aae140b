package mcs

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/roach88/spacesync/internal/wire"
)

func signedPtr[T int16 | int32 | int64](t DataType) func(*T) Field {
	return func(p *T) Field {
		if p == nil {
			return Field{Type: t, Value: (*int64)(nil)}
		}
		n := int64(*p)
		return Field{Type: t, Value: &n}
	}
}

func unsignedPtr[T uint8 | uint16 | uint32 | uint64](t DataType) func(*T) Field {
	return func(p *T) Field {
		if p == nil {
			return Field{Type: t, Value: (*uint64)(nil)}
		}
		n := uint64(*p)
		return Field{Type: t, Value: &n}
	}
}

func signedSlice[T int16 | int32 | int64](t DataType) func([]T) Field {
	return func(vs []T) Field {
		out := make([]int64, len(vs))
		for i, v := range vs {
			out[i] = int64(v)
		}
		return Field{Type: t, Value: out}
	}
}

func unsignedSlice[T uint8 | uint16 | uint32 | uint64](t DataType) func([]T) Field {
	return func(vs []T) Field {
		out := make([]uint64, len(vs))
		for i, v := range vs {
			out[i] = uint64(v)
		}
		return Field{Type: t, Value: out}
	}
}

// genField produces a field for every catalogue tag, nulls included.
func genField() gopter.Gen {
	f32 := gen.Float32Range(-1e6, 1e6)
	f64 := gen.Float64Range(-1e12, 1e12)
	return gen.OneGenOf(
		gen.PtrOf(gen.Bool()).Map(func(p *bool) Field { return Field{Type: NullableBool, Value: p} }),
		gen.SliceOf(gen.Bool()).Map(func(vs []bool) Field { return Field{Type: BoolArray, Value: append([]bool{}, vs...)} }),
		gen.PtrOf(gen.UInt8()).Map(unsignedPtr[uint8](NullableUint8)),
		gen.SliceOf(gen.UInt8()).Map(unsignedSlice[uint8](Uint8Array)),
		gen.PtrOf(gen.Int16()).Map(signedPtr[int16](NullableInt16)),
		gen.SliceOf(gen.Int16()).Map(signedSlice[int16](Int16Array)),
		gen.PtrOf(gen.UInt16()).Map(unsignedPtr[uint16](NullableUint16)),
		gen.SliceOf(gen.UInt16()).Map(unsignedSlice[uint16](Uint16Array)),
		gen.PtrOf(gen.Int32()).Map(signedPtr[int32](NullableInt32)),
		gen.SliceOf(gen.Int32()).Map(signedSlice[int32](Int32Array)),
		gen.PtrOf(gen.UInt32()).Map(unsignedPtr[uint32](NullableUint32)),
		gen.SliceOf(gen.UInt32()).Map(unsignedSlice[uint32](Uint32Array)),
		gen.PtrOf(gen.Int64()).Map(signedPtr[int64](NullableInt64)),
		gen.SliceOf(gen.Int64()).Map(signedSlice[int64](Int64Array)),
		gen.PtrOf(gen.UInt64()).Map(unsignedPtr[uint64](NullableUint64)),
		gen.SliceOf(gen.UInt64()).Map(unsignedSlice[uint64](Uint64Array)),
		gen.PtrOf(f32).Map(func(p *float32) Field { return Field{Type: NullableFloat, Value: p} }),
		gen.SliceOf(f32).Map(func(vs []float32) Field { return Field{Type: FloatArray, Value: append([]float32{}, vs...)} }),
		gen.PtrOf(f64).Map(func(p *float64) Field { return Field{Type: NullableDouble, Value: p} }),
		gen.SliceOf(f64).Map(func(vs []float64) Field { return Field{Type: DoubleArray, Value: append([]float64{}, vs...)} }),
		gen.AlphaString().Map(StringField),
		gen.MapOf(gen.UInt16(), gen.Bool()).Map(func(m map[uint16]bool) Field {
			out := make(map[uint16]Field, len(m))
			for k, b := range m {
				out[k] = BoolField(b)
			}
			return Field{Type: Uint16Dictionary, Value: out}
		}),
		gen.MapOf(gen.AlphaString(), gen.AlphaString()).Map(func(m map[string]string) Field {
			out := make(map[string]Field, len(m))
			for k, s := range m {
				out[k] = StringField(s)
			}
			return StringDictionaryField(out)
		}),
	)
}

func TestPropertyElementRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("decode(encode(f)) == f", prop.ForAll(
		func(f Field) bool {
			elem, err := EncodeElement(f)
			if err != nil {
				return false
			}
			got, err := DecodeElement(elem)
			return err == nil && reflect.DeepEqual(f, got)
		},
		genField(),
	))

	properties.Property("round trip survives the CBOR transport", prop.ForAll(
		func(f Field) bool {
			elem, err := EncodeElement(f)
			if err != nil {
				return false
			}
			data, err := wire.Marshal(elem)
			if err != nil {
				return false
			}
			back, err := wire.Unmarshal(data)
			if err != nil {
				return false
			}
			got, err := DecodeElement(back)
			return err == nil && reflect.DeepEqual(f, got)
		},
		genField(),
	))

	properties.TestingRun(t)
}
