package mcs

import (
	"fmt"
	"math"

	"github.com/roach88/spacesync/internal/replicated"
)

// ToReplicated converts a decoded field into a property value.
//
//	NULLABLE_BOOL                 -> Boolean
//	nullable integer tags         -> Integer
//	NULLABLE_FLOAT/NULLABLE_DOUBLE -> Float
//	STRING                        -> String
//	FLOAT_ARRAY of length 2, 3, 4 -> Vector2, Vector3, Vector4
//	STRING_DICTIONARY             -> StringMap
//
// Null scalars and other tags have no replicated form.
func ToReplicated(f Field) (replicated.Value, error) {
	if f.IsNull() {
		return replicated.Value{}, &ShapeError{Type: f.Type, Message: "null has no replicated form"}
	}
	unfit := func(msg string) error {
		return &ShapeError{Type: f.Type, Message: msg}
	}

	switch v := f.Value.(type) {
	case *bool:
		return replicated.NewBool(*v), nil
	case *int64:
		return replicated.NewInt(*v), nil
	case *uint64:
		if *v > math.MaxInt64 {
			return replicated.Value{}, unfit(fmt.Sprintf("%d overflows a replicated integer", *v))
		}
		return replicated.NewInt(int64(*v)), nil
	case *float32:
		return replicated.NewFloat(*v), nil
	case *float64:
		return replicated.NewFloat(float32(*v)), nil
	case string:
		return replicated.NewString(v), nil
	case []float32:
		switch len(v) {
		case 2:
			return replicated.NewVector2(replicated.Vector2{X: v[0], Y: v[1]}), nil
		case 3:
			return replicated.NewVector3(replicated.Vector3{X: v[0], Y: v[1], Z: v[2]}), nil
		case 4:
			return replicated.NewVector4(replicated.Vector4{X: v[0], Y: v[1], Z: v[2], W: v[3]}), nil
		}
		return replicated.Value{}, unfit(fmt.Sprintf("%d components do not form a vector", len(v)))
	case map[string]Field:
		m := make(replicated.Map, len(v))
		for key, entry := range v {
			rv, err := ToReplicated(entry)
			if err != nil {
				return replicated.Value{}, fmt.Errorf("entry %q: %w", key, err)
			}
			m[key] = rv
		}
		return replicated.NewStringMap(m), nil
	}
	return replicated.Value{}, unfit("tag has no replicated form")
}

// FromReplicated is the inverse of ToReplicated. Integers become
// NULLABLE_INT64, floats NULLABLE_FLOAT and vectors FLOAT_ARRAY.
func FromReplicated(v replicated.Value) (Field, error) {
	switch v.Type() {
	case replicated.BooleanType:
		b, _ := v.Bool()
		return BoolField(b), nil
	case replicated.IntegerType:
		i, _ := v.Int()
		return Int64Field(i), nil
	case replicated.FloatType:
		f, _ := v.Float()
		return FloatField(f), nil
	case replicated.StringType:
		s, _ := v.Str()
		return StringField(s), nil
	case replicated.Vector2Type:
		vec, _ := v.Vector2()
		return FloatArrayField(vec.X, vec.Y), nil
	case replicated.Vector3Type:
		vec, _ := v.Vector3()
		return FloatArrayField(vec.X, vec.Y, vec.Z), nil
	case replicated.Vector4Type:
		vec, _ := v.Vector4()
		return FloatArrayField(vec.X, vec.Y, vec.Z, vec.W), nil
	case replicated.StringMapType:
		m, _ := v.StringMap()
		dict := make(map[string]Field, len(m))
		for key, entry := range m {
			f, err := FromReplicated(entry)
			if err != nil {
				return Field{}, fmt.Errorf("entry %q: %w", key, err)
			}
			dict[key] = f
		}
		return StringDictionaryField(dict), nil
	}
	return Field{}, fmt.Errorf("replicated %s value: %w", v.Type(), ErrMalformedPayload)
}
