// Package strtab builds the strings block of a flattened device tree.
//
// Property names are not stored inline in the structure block. Each PROP
// record carries the byte offset of its name inside the strings block, a
// concatenation of NUL-terminated names. A StringTable accumulates that block
// while a tree is being encoded and hands out the offsets.
//
// Two variants exist because they produce different bytes:
//
//   - Dedup stores every distinct name once, as dtc and libfdt do.
//   - Plain appends the name for every property, which reproduces the larger
//     strings blocks written by some producers.
//
// Both are selected at runtime through New and format.StringTableMode.
package strtab

import (
	"github.com/arloliu/fdt/format"
	"github.com/arloliu/fdt/internal/pool"
)

// StringTable collects NUL-terminated names and returns their offsets.
//
// Note: StringTable implementations are NOT thread-safe. A table belongs to a
// single encode call.
type StringTable interface {
	// Add stores name and returns the offset at which it begins.
	Add(name string) uint32
	// Bytes returns the strings block built so far.
	Bytes() []byte
	// Len returns the size of the strings block in bytes.
	Len() int
	// Reset empties the table and returns its buffer to the pool.
	// The table must not be used afterwards.
	Reset()
}

// New returns the table variant selected by mode. Unknown modes fall back to Dedup.
func New(mode format.StringTableMode) StringTable {
	if mode == format.StringsPlain {
		return NewPlain()
	}

	return NewDedup()
}

// Plain is a StringTable that never deduplicates.
type Plain struct {
	buf *pool.ByteBuffer
}

var _ StringTable = (*Plain)(nil)

// NewPlain creates an empty non-deduplicating table.
func NewPlain() *Plain {
	return &Plain{buf: pool.GetStringsBuffer()}
}

// Add appends name and its terminator and returns the offset of name.
func (t *Plain) Add(name string) uint32 {
	offset := uint32(t.buf.Len()) //nolint:gosec
	t.buf.Grow(len(name) + 1)
	t.buf.B = append(t.buf.B, name...)
	t.buf.MustWriteByte(0)

	return offset
}

// Bytes returns the strings block.
func (t *Plain) Bytes() []byte {
	return t.buf.Bytes()
}

// Len returns the size of the strings block.
func (t *Plain) Len() int {
	return t.buf.Len()
}

// Reset returns the buffer to the pool.
func (t *Plain) Reset() {
	if t.buf != nil {
		pool.PutStringsBuffer(t.buf)
		t.buf = nil
	}
}
