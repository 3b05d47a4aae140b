package mcs

import "fmt"

// DataType is the numeric type tag carried by every Component Element.
// The values are fixed by the multiplayer service and must never be
// renumbered.
type DataType uint64

const (
	NullableBool DataType = iota
	BoolArray
	NullableUint8
	Uint8Array
	NullableInt16
	Int16Array
	NullableUint16
	Uint16Array
	NullableInt32
	Int32Array
	NullableUint32
	Uint32Array
	NullableInt64
	Int64Array
	NullableUint64
	Uint64Array
	NullableFloat
	FloatArray
	NullableDouble
	DoubleArray
	String
	Uint16Dictionary
	StringDictionary
)

var dataTypeNames = map[DataType]string{
	NullableBool:     "NULLABLE_BOOL",
	BoolArray:        "BOOL_ARRAY",
	NullableUint8:    "NULLABLE_UINT8",
	Uint8Array:       "UINT8_ARRAY",
	NullableInt16:    "NULLABLE_INT16",
	Int16Array:       "INT16_ARRAY",
	NullableUint16:   "NULLABLE_UINT16",
	Uint16Array:      "UINT16_ARRAY",
	NullableInt32:    "NULLABLE_INT32",
	Int32Array:       "INT32_ARRAY",
	NullableUint32:   "NULLABLE_UINT32",
	Uint32Array:      "UINT32_ARRAY",
	NullableInt64:    "NULLABLE_INT64",
	Int64Array:       "INT64_ARRAY",
	NullableUint64:   "NULLABLE_UINT64",
	Uint64Array:      "UINT64_ARRAY",
	NullableFloat:    "NULLABLE_FLOAT",
	FloatArray:       "FLOAT_ARRAY",
	NullableDouble:   "NULLABLE_DOUBLE",
	DoubleArray:      "DOUBLE_ARRAY",
	String:           "STRING",
	Uint16Dictionary: "UINT16_DICTIONARY",
	StringDictionary: "STRING_DICTIONARY",
}

// String returns the catalogue name, e.g. "STRING_DICTIONARY".
func (t DataType) String() string {
	if name, ok := dataTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DataType(%d)", uint64(t))
}

// Known reports whether t is in the catalogue.
func (t DataType) Known() bool {
	_, ok := dataTypeNames[t]
	return ok
}

// MarshalText renders the catalogue name so JSON output stays readable.
func (t DataType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts a catalogue name.
func (t *DataType) UnmarshalText(text []byte) error {
	parsed, ok := ParseDataType(string(text))
	if !ok {
		return fmt.Errorf("unknown data type %q", text)
	}
	*t = parsed
	return nil
}

// ParseDataType looks a type tag up by catalogue name.
func ParseDataType(name string) (DataType, bool) {
	for t, n := range dataTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// intKind describes the integer tags: width and signedness.
type intKind struct {
	bits   uint
	signed bool
}

var nullableInts = map[DataType]intKind{
	NullableUint8:  {8, false},
	NullableInt16:  {16, true},
	NullableUint16: {16, false},
	NullableInt32:  {32, true},
	NullableUint32: {32, false},
	NullableInt64:  {64, true},
	NullableUint64: {64, false},
}

var intArrays = map[DataType]intKind{
	Uint8Array:  {8, false},
	Int16Array:  {16, true},
	Uint16Array: {16, false},
	Int32Array:  {32, true},
	Uint32Array: {32, false},
	Int64Array:  {64, true},
	Uint64Array: {64, false},
}

// Field is one decoded Component Element.
//
// Value holds the native form for Type:
//
//	NULLABLE_BOOL                      *bool      (nil when the wire value is null)
//	NULLABLE_INT16/INT32/INT64         *int64
//	NULLABLE_UINT8/UINT16/UINT32/UINT64 *uint64
//	NULLABLE_FLOAT                     *float32
//	NULLABLE_DOUBLE                    *float64
//	BOOL_ARRAY                         []bool
//	INT16/INT32/INT64_ARRAY            []int64
//	UINT8/UINT16/UINT32/UINT64_ARRAY   []uint64
//	FLOAT_ARRAY                        []float32
//	DOUBLE_ARRAY                       []float64
//	STRING                             string
//	STRING_DICTIONARY                  map[string]Field
//	UINT16_DICTIONARY                  map[uint16]Field
type Field struct {
	Type  DataType `json:"type"`
	Value any      `json:"value"`
}

// IsNull reports whether f is a nullable scalar carrying null.
func (f Field) IsNull() bool {
	switch v := f.Value.(type) {
	case nil:
		return true
	case *bool:
		return v == nil
	case *int64:
		return v == nil
	case *uint64:
		return v == nil
	case *float32:
		return v == nil
	case *float64:
		return v == nil
	default:
		return false
	}
}

// StringValue returns the payload of a STRING field.
func (f Field) StringValue() (string, bool) {
	if f.Type != String {
		return "", false
	}
	s, ok := f.Value.(string)
	return s, ok
}

// Convenience constructors for building fields in code and tests.

// StringField builds a STRING field.
func StringField(s string) Field { return Field{Type: String, Value: s} }

// BoolField builds a non-null NULLABLE_BOOL field.
func BoolField(b bool) Field { return Field{Type: NullableBool, Value: &b} }

// NullBoolField builds a null NULLABLE_BOOL field.
func NullBoolField() Field { return Field{Type: NullableBool, Value: (*bool)(nil)} }

// Int64Field builds a non-null NULLABLE_INT64 field.
func Int64Field(i int64) Field { return Field{Type: NullableInt64, Value: &i} }

// FloatField builds a non-null NULLABLE_FLOAT field.
func FloatField(f float32) Field { return Field{Type: NullableFloat, Value: &f} }

// FloatArrayField builds a FLOAT_ARRAY field.
func FloatArrayField(fs ...float32) Field { return Field{Type: FloatArray, Value: fs} }

// StringDictionaryField builds a STRING_DICTIONARY field.
func StringDictionaryField(m map[string]Field) Field { return Field{Type: StringDictionary, Value: m} }
