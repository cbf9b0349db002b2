// Package binio provides bounds-checked access to device tree buffers.
//
// Every read takes an explicit (buffer, position) pair and either returns the
// decoded value or an error wrapping errs.ErrUnexpectedEndOfInput. Offsets
// found inside a DTB are untrusted, so no read ever indexes past len(buf),
// whatever position it is handed.
//
// The write side is Writer, an append-only buffer that additionally supports
// zero padding to a power-of-two boundary and back-patching of 32-bit fields
// that have already been written.
package binio

import (
	"bytes"
	"fmt"

	"github.com/arloliu/fdt/endian"
	"github.com/arloliu/fdt/errs"
)

var engine = endian.FDT()

// ReadU32 reads a big-endian uint32 at pos.
func ReadU32(buf []byte, pos int) (uint32, error) {
	b, err := Subslice(buf, pos, pos+4)
	if err != nil {
		return 0, err
	}

	return engine.Uint32(b), nil
}

// ReadU64 reads a big-endian uint64 at pos.
func ReadU64(buf []byte, pos int) (uint64, error) {
	b, err := Subslice(buf, pos, pos+8)
	if err != nil {
		return 0, err
	}

	return engine.Uint64(b), nil
}

// ReadCString returns the bytes starting at pos up to, but not including, the
// next NUL byte. The returned slice aliases buf.
func ReadCString(buf []byte, pos int) ([]byte, error) {
	if pos < 0 || pos >= len(buf) {
		return nil, fmt.Errorf("%w: string at offset %d, buffer length %d", errs.ErrUnexpectedEndOfInput, pos, len(buf))
	}

	n := bytes.IndexByte(buf[pos:], 0)
	if n < 0 {
		return nil, fmt.Errorf("%w: unterminated string at offset %d", errs.ErrUnexpectedEndOfInput, pos)
	}

	return buf[pos : pos+n], nil
}

// Subslice returns buf[start:end] after checking the range against len(buf).
// The returned slice aliases buf.
func Subslice(buf []byte, start, end int) ([]byte, error) {
	if start < 0 || end < start || end > len(buf) {
		return nil, fmt.Errorf("%w: range [%d, %d), buffer length %d", errs.ErrUnexpectedEndOfInput, start, end, len(buf))
	}

	return buf[start:end], nil
}

// Align returns the smallest multiple of boundary that is >= value.
// boundary must be a power of two.
func Align(value, boundary int) int {
	return (value + boundary - 1) &^ (boundary - 1)
}
