package mcs

import (
	"errors"
	"fmt"
	"math"
)

// Sentinels for errors.Is checks. Every decode error matches exactly one.
var (
	ErrUnsupportedWireType = errors.New("unsupported wire type")
	ErrMalformedPayload    = errors.New("malformed payload")
)

// noElementType marks shape errors raised before a type tag was read.
const noElementType = DataType(math.MaxUint64)

// UnsupportedTypeError reports a type tag outside the catalogue.
type UnsupportedTypeError struct {
	TypeID uint64
	Path   string
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: unsupported wire type %d", e.Path, e.TypeID)
	}
	return fmt.Sprintf("unsupported wire type %d", e.TypeID)
}

// Is matches ErrUnsupportedWireType.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedWireType
}

// ShapeError reports a wire value whose structure does not fit its tag.
// Type is noElementType when the element envelope itself is malformed.
type ShapeError struct {
	Type    DataType
	Path    string
	Message string
	Excerpt string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	msg := e.Message
	if e.Type != noElementType {
		msg = e.Type.String() + ": " + msg
	}
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Excerpt != "" {
		msg += " (near " + e.Excerpt + ")"
	}
	return msg
}

// Is matches ErrMalformedPayload.
func (e *ShapeError) Is(target error) bool {
	return target == ErrMalformedPayload
}

// IsUnsupportedType reports whether err carries an unknown type tag.
func IsUnsupportedType(err error) bool {
	return errors.Is(err, ErrUnsupportedWireType)
}

// IsMalformed reports whether err carries a shape violation.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedPayload)
}
