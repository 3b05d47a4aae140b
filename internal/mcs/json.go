package mcs

import (
	"encoding/json"
	"math"
)

// MarshalJSON renders f as {"type":"NULLABLE_DOUBLE","value":...}.
// JSON has no non-finite numbers, so NaN and the infinities are written as
// the strings "NaN", "+Inf" and "-Inf".
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  DataType `json:"type"`
		Value any      `json:"value"`
	}{Type: f.Type, Value: jsonValue(f.Value)})
}

func jsonValue(v any) any {
	switch val := v.(type) {
	case *float32:
		if val != nil {
			return jsonFloat(*val)
		}
	case *float64:
		if val != nil {
			return jsonFloat(*val)
		}
	case []float32:
		if val != nil {
			return jsonFloats(val)
		}
	case []float64:
		if val != nil {
			return jsonFloats(val)
		}
	}
	return v
}

func jsonFloat[F float32 | float64](f F) any {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "+Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	}
	return f
}

func jsonFloats[F float32 | float64](fs []F) []any {
	out := make([]any, len(fs))
	for i, f := range fs {
		out[i] = jsonFloat(f)
	}
	return out
}
