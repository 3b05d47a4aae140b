package wire

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Value is a sealed interface over the self-describing wire structure.
// Only Null, Bool, Int, Uint, Float, String, Array, StringMap and IntMap
// implement it.
type Value interface {
	wireValue() // Sealed
}

// Null is an explicit wire null.
type Null struct{}

func (Null) wireValue() {}

// Bool is a wire boolean.
type Bool bool

func (Bool) wireValue() {}

// Int is a signed wire integer.
type Int int64

func (Int) wireValue() {}

// Uint is an unsigned wire integer. Transports that encode non-negative
// integers as unsigned (CBOR, MessagePack) produce Uint rather than Int, so
// consumers should read numbers through AsInt64/AsUint64/AsFloat64.
type Uint uint64

func (Uint) wireValue() {}

// Float is a wire floating point number.
type Float float64

func (Float) wireValue() {}

// String is a wire string.
type String string

func (String) wireValue() {}

// Array is an ordered sequence of wire values.
type Array []Value

func (Array) wireValue() {}

// StringMap maps string keys to wire values.
type StringMap map[string]Value

func (StringMap) wireValue() {}

// IntMap maps integer keys to wire values.
type IntMap map[uint64]Value

func (IntMap) wireValue() {}

// IsNull reports whether v is nil or Null.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}

// AsInt64 reads any integral number as int64.
func AsInt64(v Value) (int64, bool) {
	switch n := v.(type) {
	case Int:
		return int64(n), true
	case Uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case Float:
		f := float64(n)
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

// AsUint64 reads any non-negative integral number as uint64.
func AsUint64(v Value) (uint64, bool) {
	switch n := v.(type) {
	case Uint:
		return uint64(n), true
	case Int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case Float:
		f := float64(n)
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
			return 0, false
		}
		return uint64(f), true
	default:
		return 0, false
	}
}

// AsFloat64 reads any number as float64.
func AsFloat64(v Value) (float64, bool) {
	switch n := v.(type) {
	case Float:
		return float64(n), true
	case Int:
		return float64(n), true
	case Uint:
		return float64(n), true
	default:
		return 0, false
	}
}

// Kind names the concrete wire type of v for diagnostics.
func Kind(v Value) string {
	switch v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		return "bool"
	case Int, Uint:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Array:
		return "array"
	case StringMap:
		return "string map"
	case IntMap:
		return "int map"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Format renders v as compact JSON-like text. Map keys are sorted.
func Format(v Value) string {
	var b strings.Builder
	format(&b, v)
	return b.String()
}

func format(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case nil, Null:
		b.WriteString("null")
	case Bool:
		b.WriteString(strconv.FormatBool(bool(val)))
	case Int:
		b.WriteString(strconv.FormatInt(int64(val), 10))
	case Uint:
		b.WriteString(strconv.FormatUint(uint64(val), 10))
	case Float:
		b.WriteString(strconv.FormatFloat(float64(val), 'g', -1, 64))
	case String:
		b.WriteString(strconv.Quote(string(val)))
	case Array:
		b.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			format(b, elem)
		}
		b.WriteByte(']')
	case StringMap:
		b.WriteByte('{')
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			format(b, val[k])
		}
		b.WriteByte('}')
	case IntMap:
		b.WriteByte('{')
		keys := make([]uint64, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatUint(k, 10))
			b.WriteByte(':')
			format(b, val[k])
		}
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "<%T>", v)
	}
}

// excerptLimit bounds Excerpt output.
const excerptLimit = 64

// Excerpt renders a short excerpt of v for diagnostics.
func Excerpt(v Value) string {
	s := Format(v)
	if len(s) <= excerptLimit {
		return s
	}
	cut := excerptLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
