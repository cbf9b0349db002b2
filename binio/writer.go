package binio

import (
	"fmt"

	"github.com/arloliu/fdt/errs"
	"github.com/arloliu/fdt/internal/pool"
)

// Writer accumulates an encoded DTB in a pooled buffer.
//
// Note: The Writer is NOT thread-safe. Call Release once the content has been
// copied out with Detach or is no longer needed.
type Writer struct {
	buf *pool.ByteBuffer
}

// NewWriter returns an empty Writer backed by a buffer from the DTB pool.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetDTBBuffer()}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the written bytes. The slice is only valid until the next
// write or Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// AppendU32 appends v in big-endian order.
func (w *Writer) AppendU32(v uint32) {
	w.buf.B = engine.AppendUint32(w.buf.B, v)
}

// AppendU64 appends v in big-endian order.
func (w *Writer) AppendU64(v uint64) {
	w.buf.B = engine.AppendUint64(w.buf.B, v)
}

// AppendBytes appends b verbatim.
func (w *Writer) AppendBytes(b []byte) {
	w.buf.MustWrite(b)
}

// AppendCString appends s followed by a NUL byte.
func (w *Writer) AppendCString(s string) {
	w.buf.Grow(len(s) + 1)
	w.buf.B = append(w.buf.B, s...)
	w.buf.MustWriteByte(0)
}

// AppendZero appends n zero bytes.
func (w *Writer) AppendZero(n int) {
	w.buf.ExtendZero(n)
}

// Pad appends zero bytes until the length is a multiple of boundary.
//
// Returns errs.ErrUnalignedWrite if boundary is not a positive power of two.
func (w *Writer) Pad(boundary int) error {
	if boundary <= 0 || boundary&(boundary-1) != 0 {
		return fmt.Errorf("%w: padding boundary %d is not a power of two", errs.ErrUnalignedWrite, boundary)
	}

	cur := w.buf.Len()
	w.buf.ExtendZero(Align(cur, boundary) - cur)

	return nil
}

// PatchU32 overwrites the four bytes at pos with v in big-endian order.
//
// Returns:
//   - errs.ErrUnalignedWrite if pos is not a multiple of 4
//   - errs.ErrNonContiguousWrite if [pos, pos+4) was not written yet
func (w *Writer) PatchU32(pos int, v uint32) error {
	if pos%4 != 0 {
		return fmt.Errorf("%w: patch at offset %d", errs.ErrUnalignedWrite, pos)
	}
	if pos < 0 || pos+4 > w.buf.Len() {
		return fmt.Errorf("%w: patch at offset %d, written %d bytes", errs.ErrNonContiguousWrite, pos, w.buf.Len())
	}

	engine.PutUint32(w.buf.B[pos:pos+4], v)

	return nil
}

// Detach returns a copy of the written bytes that stays valid after Release.
func (w *Writer) Detach() []byte {
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.B)

	return out
}

// Release returns the backing buffer to the pool. The Writer must not be used afterwards.
func (w *Writer) Release() {
	if w.buf != nil {
		pool.PutDTBBuffer(w.buf)
		w.buf = nil
	}
}
