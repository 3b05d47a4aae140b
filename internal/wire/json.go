package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// parseContextChars is how much text either side of a parse error is logged.
const parseContextChars = 20

// ParseError reports where JSON text failed to parse.
type ParseError struct {
	Offset  int64
	Excerpt string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("json parse error at offset %d: %v (context: %s)", e.Offset, e.Err, e.Excerpt)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseJSON parses JSON text into a wire Value.
//
// Integral numbers become Int (or Uint above MaxInt64); other numbers become
// Float. Objects become StringMap. On failure the error is logged with the
// offset and the surrounding text, and a *ParseError is returned.
func ParseJSON(data []byte, log *slog.Logger) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	err := dec.Decode(&raw)
	if err == nil {
		if _, trailing := dec.Token(); trailing != io.EOF {
			err = fmt.Errorf("unexpected data after top-level value")
		}
	}
	if err != nil {
		perr := newParseError(data, dec.InputOffset(), err)
		if log != nil {
			log.Error("json parse error",
				"error", perr.Err.Error(),
				"offset", perr.Offset,
				"context", perr.Excerpt,
			)
		}
		return nil, perr
	}

	return fromJSON(raw)
}

func newParseError(data []byte, fallback int64, err error) *ParseError {
	offset := fallback
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syn):
		offset = syn.Offset
	case errors.As(err, &typ):
		offset = typ.Offset
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}

	start := max(offset-parseContextChars, 0)
	end := min(offset+parseContextChars, int64(len(data)))
	return &ParseError{
		Offset:  offset,
		Excerpt: string(data[start:end]),
		Err:     err,
	}
}

func fromJSON(v any) (Value, error) {
	switch val := v.(type) {
	case json.Number:
		s := string(val)
		if !strings.ContainsAny(s, ".eE") {
			if i, err := val.Int64(); err == nil {
				return Int(i), nil
			}
			var u uint64
			if _, err := fmt.Sscan(s, &u); err == nil {
				return Uint(u), nil
			}
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", s, err)
		}
		return Float(f), nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			w, err := fromJSON(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = w
		}
		return arr, nil
	case map[string]any:
		m := make(StringMap, len(val))
		for k, elem := range val {
			w, err := fromJSON(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			m[k] = w
		}
		return m, nil
	default:
		return FromNative(v)
	}
}
