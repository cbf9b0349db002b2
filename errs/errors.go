// Package errs defines the errors returned by the fdt packages.
//
// Callers match errors with errors.Is against the sentinel values below, and
// use errors.As to recover the byte offset carried by a ParseError or the
// property name carried by a PropError.
package errs

import (
	"errors"
	"fmt"
)

// Header validation errors.
var (
	// ErrInvalidMagicNumber is returned when the buffer does not start with 0xd00dfeed.
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	// ErrSizeMismatch is returned when the header total size disagrees with the buffer length.
	ErrSizeMismatch = errors.New("total size does not match buffer length")
	// ErrVersionNotSupported is returned for any header version other than 17.
	ErrVersionNotSupported = errors.New("device tree version not supported")
)

// Structure decoding errors.
var (
	// ErrMaxDepthExceeded is returned when nodes nest deeper than the decoder allows.
	ErrMaxDepthExceeded = errors.New("maximum node depth exceeded")
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("unexpected data in structure block")
	// ErrInvalidUTF8 is returned when a node name, property name or string value is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8 sequence")
	// ErrUnexpectedEndOfInput is returned by every read that would cross the end of the buffer.
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
)

// Property accessor errors.
var (
	// ErrProp is matched by every *PropError.
	ErrProp = errors.New("property error")
	// ErrPropNotFound is returned when a node has no property with the requested name.
	ErrPropNotFound = errors.New("property not found")
	// ErrPropMissingNul is returned when a string property is not NUL terminated.
	ErrPropMissingNul = errors.New("property value is missing its nul terminator")
)

// Encoding errors.
var (
	// ErrNonContiguousWrite is returned when a back-patch targets bytes that were never written.
	ErrNonContiguousWrite = errors.New("non-contiguous write")
	// ErrUnalignedWrite is returned for padding or patching that violates word alignment.
	ErrUnalignedWrite = errors.New("unaligned write")
	// ErrInvalidName is returned when a node or property name cannot be stored as a C string.
	ErrInvalidName = errors.New("invalid node or property name")
	// ErrNilNode is returned when encoding a tree whose root or one of its children is nil.
	ErrNilNode = errors.New("device tree contains a nil node")
	// ErrBlobTooLarge is returned when an offset or size does not fit in 32 bits.
	ErrBlobTooLarge = errors.New("device tree blob too large")
	// ErrInvalidReservation is returned for a zero-sized reservation, which would read back as the terminator.
	ErrInvalidReservation = errors.New("invalid memory reservation")
)

// ErrUnsupportedCompression is returned for an unknown compression type.
var ErrUnsupportedCompression = errors.New("unsupported compression type")

// ParseError reports a structure block record that did not carry the expected tag.
type ParseError struct {
	// Offset is the byte offset of the offending tag in the buffer.
	Offset int
	// Tag is the tag value found at Offset.
	Tag uint32
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: tag 0x%08x at offset %d", ErrParse, e.Tag, e.Offset)
}

// Is reports ErrParse as the sentinel for every ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// PropError reports a failed property query.
type PropError struct {
	Name string
	Err  error
}

func (e *PropError) Error() string {
	return fmt.Sprintf("property %q: %v", e.Name, e.Err)
}

// Is reports ErrProp as the sentinel for every PropError.
func (e *PropError) Is(target error) bool {
	return target == ErrProp
}

func (e *PropError) Unwrap() error {
	return e.Err
}
