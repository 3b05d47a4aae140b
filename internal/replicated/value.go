package replicated

import (
	"log/slog"
	"maps"
)

// Vector2 is a two component float vector.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a three component float vector.
type Vector3 struct {
	X, Y, Z float32
}

// Vector4 is a four component float vector, also used for quaternions.
type Vector4 struct {
	X, Y, Z, W float32
}

// Map is the payload of a StringMapType value.
type Map map[string]Value

// Defaults returned by the tolerant accessors.
var (
	DefaultVector2 = Vector2{}
	DefaultVector3 = Vector3{}
	DefaultVector4 = Vector4{}
)

// Value is a tagged union over the replicated type catalogue.
// The zero Value has type InvalidType.
type Value struct {
	typ Type
	b   bool
	i   int64
	f   float32
	s   string
	v   [4]float32
	m   Map
}

// NewBool creates a BooleanType value.
func NewBool(b bool) Value { return Value{typ: BooleanType, b: b} }

// NewInt creates an IntegerType value.
func NewInt(i int64) Value { return Value{typ: IntegerType, i: i} }

// NewFloat creates a FloatType value.
func NewFloat(f float32) Value { return Value{typ: FloatType, f: f} }

// NewString creates a StringType value.
func NewString(s string) Value { return Value{typ: StringType, s: s} }

// NewVector2 creates a Vector2Type value.
func NewVector2(v Vector2) Value { return Value{typ: Vector2Type, v: [4]float32{v.X, v.Y}} }

// NewVector3 creates a Vector3Type value.
func NewVector3(v Vector3) Value { return Value{typ: Vector3Type, v: [4]float32{v.X, v.Y, v.Z}} }

// NewVector4 creates a Vector4Type value.
func NewVector4(v Vector4) Value { return Value{typ: Vector4Type, v: [4]float32{v.X, v.Y, v.Z, v.W}} }

// NewStringMap creates a StringMapType value.
// The map is copied; later changes to m are not observed.
func NewStringMap(m Map) Value {
	return Value{typ: StringMapType, m: cloneMap(m)}
}

// Type returns the discriminant. It never fails.
func (v Value) Type() Type {
	return v.typ
}

// IsValid reports whether v holds a payload.
func (v Value) IsValid() bool {
	return v.typ != InvalidType
}

// SetBool replaces the payload with b.
func (v *Value) SetBool(b bool) { *v = NewBool(b) }

// SetInt replaces the payload with i.
func (v *Value) SetInt(i int64) { *v = NewInt(i) }

// SetFloat replaces the payload with f.
func (v *Value) SetFloat(f float32) { *v = NewFloat(f) }

// SetString replaces the payload with s.
func (v *Value) SetString(s string) { *v = NewString(s) }

// SetVector2 replaces the payload with vec.
func (v *Value) SetVector2(vec Vector2) { *v = NewVector2(vec) }

// SetVector3 replaces the payload with vec.
func (v *Value) SetVector3(vec Vector3) { *v = NewVector3(vec) }

// SetVector4 replaces the payload with vec.
func (v *Value) SetVector4(vec Vector4) { *v = NewVector4(vec) }

// SetStringMap replaces the payload with a copy of m.
func (v *Value) SetStringMap(m Map) { *v = NewStringMap(m) }

// Bool returns the payload of a BooleanType value.
func (v Value) Bool() (bool, error) {
	if v.typ != BooleanType {
		return false, mismatch(v.typ, BooleanType)
	}
	return v.b, nil
}

// Int returns the payload of an IntegerType value.
func (v Value) Int() (int64, error) {
	if v.typ != IntegerType {
		return 0, mismatch(v.typ, IntegerType)
	}
	return v.i, nil
}

// Float returns the payload of a FloatType value.
func (v Value) Float() (float32, error) {
	if v.typ != FloatType {
		return 0, mismatch(v.typ, FloatType)
	}
	return v.f, nil
}

// Str returns the payload of a StringType value.
// It is not named String so that Value does not satisfy fmt.Stringer.
func (v Value) Str() (string, error) {
	if v.typ != StringType {
		return "", mismatch(v.typ, StringType)
	}
	return v.s, nil
}

// Vector2 returns the payload of a Vector2Type value.
func (v Value) Vector2() (Vector2, error) {
	if v.typ != Vector2Type {
		return DefaultVector2, mismatch(v.typ, Vector2Type)
	}
	return Vector2{X: v.v[0], Y: v.v[1]}, nil
}

// Vector3 returns the payload of a Vector3Type value.
func (v Value) Vector3() (Vector3, error) {
	if v.typ != Vector3Type {
		return DefaultVector3, mismatch(v.typ, Vector3Type)
	}
	return Vector3{X: v.v[0], Y: v.v[1], Z: v.v[2]}, nil
}

// Vector4 returns the payload of a Vector4Type value.
func (v Value) Vector4() (Vector4, error) {
	if v.typ != Vector4Type {
		return DefaultVector4, mismatch(v.typ, Vector4Type)
	}
	return Vector4{X: v.v[0], Y: v.v[1], Z: v.v[2], W: v.v[3]}, nil
}

// StringMap returns a copy of the payload of a StringMapType value.
func (v Value) StringMap() (Map, error) {
	if v.typ != StringMapType {
		return Map{}, mismatch(v.typ, StringMapType)
	}
	return cloneMap(v.m), nil
}

// BoolOr returns the payload, or false after logging if v is not a BooleanType value.
func (v Value) BoolOr(log *slog.Logger) bool {
	b, err := v.Bool()
	if err != nil {
		logMismatch(log, v.typ, BooleanType)
	}
	return b
}

// IntOr returns the payload, or 0 after logging if v is not an IntegerType value.
func (v Value) IntOr(log *slog.Logger) int64 {
	i, err := v.Int()
	if err != nil {
		logMismatch(log, v.typ, IntegerType)
	}
	return i
}

// FloatOr returns the payload, or 0 after logging if v is not a FloatType value.
func (v Value) FloatOr(log *slog.Logger) float32 {
	f, err := v.Float()
	if err != nil {
		logMismatch(log, v.typ, FloatType)
	}
	return f
}

// StrOr returns the payload, or "" after logging if v is not a StringType value.
func (v Value) StrOr(log *slog.Logger) string {
	s, err := v.Str()
	if err != nil {
		logMismatch(log, v.typ, StringType)
	}
	return s
}

// Vector2Or returns the payload, or DefaultVector2 after logging on mismatch.
func (v Value) Vector2Or(log *slog.Logger) Vector2 {
	vec, err := v.Vector2()
	if err != nil {
		logMismatch(log, v.typ, Vector2Type)
	}
	return vec
}

// Vector3Or returns the payload, or DefaultVector3 after logging on mismatch.
func (v Value) Vector3Or(log *slog.Logger) Vector3 {
	vec, err := v.Vector3()
	if err != nil {
		logMismatch(log, v.typ, Vector3Type)
	}
	return vec
}

// Vector4Or returns the payload, or DefaultVector4 after logging on mismatch.
func (v Value) Vector4Or(log *slog.Logger) Vector4 {
	vec, err := v.Vector4()
	if err != nil {
		logMismatch(log, v.typ, Vector4Type)
	}
	return vec
}

// StringMapOr returns the payload, or an empty Map after logging on mismatch.
func (v Value) StringMapOr(log *slog.Logger) Map {
	m, err := v.StringMap()
	if err != nil {
		logMismatch(log, v.typ, StringMapType)
	}
	return m
}

// Equal reports structural equality: same discriminant and equal payloads.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case InvalidType:
		return true
	case BooleanType:
		return v.b == other.b
	case IntegerType:
		return v.i == other.i
	case FloatType:
		return v.f == other.f
	case StringType:
		return v.s == other.s
	case Vector2Type, Vector3Type, Vector4Type:
		return v.v == other.v
	case StringMapType:
		return maps.EqualFunc(v.m, other.m, Value.Equal)
	default:
		return false
	}
}

func logMismatch(log *slog.Logger, expected, actual Type) {
	if log == nil {
		return
	}
	log.Error("underlying replicated value not valid",
		"expected", expected.String(),
		"actual", actual.String(),
	)
}

func cloneMap(m Map) Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
