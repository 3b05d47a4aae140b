package event

import (
	"errors"
	"fmt"

	"github.com/roach88/spacesync/internal/mcs"
)

// DecodeError reports an event payload that could not be decoded.
//
// A DecodeError always aborts the whole decode; no partially populated
// record is returned alongside it.
type DecodeError struct {
	// Code identifies the error category.
	Code DecodeErrorCode

	// Message is a human-readable description.
	Message string

	// Position locates the fault, e.g. "payload[3]" or "components[1]".
	Position string

	// Excerpt is a short rendering of the offending wire region.
	Excerpt string

	// Err is the underlying decoder error, if any.
	Err error
}

// DecodeErrorCode categorizes decode errors.
type DecodeErrorCode string

const (
	// ErrCodeTypeMismatch indicates a well-formed element with the wrong tag
	// for its position.
	ErrCodeTypeMismatch DecodeErrorCode = "TYPE_MISMATCH"

	// ErrCodeUnsupportedWireType indicates a type tag outside the catalogue at
	// a required position.
	ErrCodeUnsupportedWireType DecodeErrorCode = "UNSUPPORTED_WIRE_TYPE"

	// ErrCodeMalformedPayload indicates a wrong element count or shape at a
	// required position.
	ErrCodeMalformedPayload DecodeErrorCode = "MALFORMED_PAYLOAD"
)

// Error implements the error interface.
func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Position != "" {
		msg += " (at " + e.Position + ")"
	}
	if e.Excerpt != "" {
		msg += ": " + e.Excerpt
	}
	return msg
}

// Unwrap exposes the decoder error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is matches the mcs sentinels by code, so callers can test either layer.
func (e *DecodeError) Is(target error) bool {
	switch e.Code {
	case ErrCodeMalformedPayload:
		return target == mcs.ErrMalformedPayload
	case ErrCodeUnsupportedWireType:
		return target == mcs.ErrUnsupportedWireType
	}
	return false
}

// IsMalformed returns true if err is a MALFORMED_PAYLOAD decode error.
// Uses errors.As to handle wrapped errors.
func IsMalformed(err error) bool {
	return hasCode(err, ErrCodeMalformedPayload)
}

// IsUnsupportedType returns true if err is an UNSUPPORTED_WIRE_TYPE decode error.
func IsUnsupportedType(err error) bool {
	return hasCode(err, ErrCodeUnsupportedWireType)
}

// IsTypeMismatch returns true if err is a TYPE_MISMATCH decode error.
func IsTypeMismatch(err error) bool {
	return hasCode(err, ErrCodeTypeMismatch)
}

func hasCode(err error, code DecodeErrorCode) bool {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// fromElementError classifies an mcs error at a required position.
func fromElementError(position string, err error) *DecodeError {
	de := &DecodeError{
		Code:     ErrCodeMalformedPayload,
		Message:  "element could not be decoded",
		Position: position,
		Err:      err,
	}
	var se *mcs.ShapeError
	if errors.As(err, &se) {
		de.Excerpt = se.Excerpt
	}
	if mcs.IsUnsupportedType(err) {
		de.Code = ErrCodeUnsupportedWireType
		de.Message = "unsupported type tag"
	}
	return de
}
