package replicated

import (
	"encoding/json"
	"fmt"
)

// jsonValue is the JSON form of a Value: {"type":"Vector3","value":[1,2,3]}.
type jsonValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON implements json.Marshaler.
// Map keys come out sorted because encoding/json sorts map[string] keys.
func (v Value) MarshalJSON() ([]byte, error) {
	var payload any
	switch v.typ {
	case InvalidType:
		return json.Marshal(jsonValue{Type: v.typ.String()})
	case BooleanType:
		payload = v.b
	case IntegerType:
		payload = v.i
	case FloatType:
		payload = v.f
	case StringType:
		payload = v.s
	case Vector2Type:
		payload = v.v[:2]
	case Vector3Type:
		payload = v.v[:3]
	case Vector4Type:
		payload = v.v[:4]
	case StringMapType:
		payload = map[string]Value(v.m)
	default:
		return nil, fmt.Errorf("unknown replicated type: %d", v.typ)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", v.typ, err)
	}
	return json.Marshal(jsonValue{Type: v.typ.String(), Value: raw})
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var jv jsonValue
	if err := json.Unmarshal(data, &jv); err != nil {
		return err
	}

	typ, ok := ParseType(jv.Type)
	if !ok {
		return fmt.Errorf("unknown replicated type %q", jv.Type)
	}
	if typ == InvalidType {
		*v = Value{}
		return nil
	}
	if len(jv.Value) == 0 {
		return fmt.Errorf("%s value is missing its payload", typ)
	}

	switch typ {
	case BooleanType:
		var b bool
		if err := json.Unmarshal(jv.Value, &b); err != nil {
			return err
		}
		*v = NewBool(b)
	case IntegerType:
		var i int64
		if err := json.Unmarshal(jv.Value, &i); err != nil {
			return err
		}
		*v = NewInt(i)
	case FloatType:
		var f float32
		if err := json.Unmarshal(jv.Value, &f); err != nil {
			return err
		}
		*v = NewFloat(f)
	case StringType:
		var s string
		if err := json.Unmarshal(jv.Value, &s); err != nil {
			return err
		}
		*v = NewString(s)
	case Vector2Type, Vector3Type, Vector4Type:
		var comps []float32
		if err := json.Unmarshal(jv.Value, &comps); err != nil {
			return err
		}
		return v.setVector(typ, comps)
	case StringMapType:
		var m map[string]Value
		if err := json.Unmarshal(jv.Value, &m); err != nil {
			return err
		}
		*v = NewStringMap(m)
	}
	return nil
}

func (v *Value) setVector(typ Type, comps []float32) error {
	want := map[Type]int{Vector2Type: 2, Vector3Type: 3, Vector4Type: 4}[typ]
	if len(comps) != want {
		return fmt.Errorf("%s needs %d components, got %d", typ, want, len(comps))
	}
	switch typ {
	case Vector2Type:
		*v = NewVector2(Vector2{X: comps[0], Y: comps[1]})
	case Vector3Type:
		*v = NewVector3(Vector3{X: comps[0], Y: comps[1], Z: comps[2]})
	default:
		*v = NewVector4(Vector4{X: comps[0], Y: comps[1], Z: comps[2], W: comps[3]})
	}
	return nil
}
