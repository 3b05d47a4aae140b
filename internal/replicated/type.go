package replicated

// Type is the discriminant of a Value.
// The numbering is part of the replication contract and must not change.
type Type int

const (
	InvalidType Type = iota
	BooleanType
	IntegerType
	FloatType
	StringType
	Vector3Type
	Vector4Type
	Vector2Type
	StringMapType
)

// String renders the type name used in diagnostics.
func (t Type) String() string {
	switch t {
	case InvalidType:
		return "InvalidType"
	case BooleanType:
		return "Boolean"
	case IntegerType:
		return "Integer"
	case FloatType:
		return "Float"
	case StringType:
		return "String"
	case Vector2Type:
		return "Vector2"
	case Vector3Type:
		return "Vector3"
	case Vector4Type:
		return "Vector4"
	case StringMapType:
		return "StringMap"
	default:
		return "UnknownType"
	}
}

// ParseType is the inverse of Type.String. Unknown names return false.
func ParseType(name string) (Type, bool) {
	for t := InvalidType; t <= StringMapType; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return InvalidType, false
}
