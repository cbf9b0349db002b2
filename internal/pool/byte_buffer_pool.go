package pool

import (
	"io"
	"sync"
)

// Default sizes of the buffers handed out by the package level pools.
const (
	DTBBufferDefaultSize      = 1024 * 16  // 16KiB, larger than most board DTBs
	DTBBufferMaxThreshold     = 1024 * 512 // 512KiB
	StringsBufferDefaultSize  = 1024 * 2   // 2KiB
	StringsBufferMaxThreshold = 1024 * 64  // 64KiB
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// MustWriteByte appends a single byte.
func (bb *ByteBuffer) MustWriteByte(c byte) {
	bb.B = append(bb.B, c)
}

// ExtendZero extends the buffer by n zero bytes, growing it if necessary.
//
// Buffers come back from the pool with stale content past their length, so
// the extension is cleared explicitly.
func (bb *ByteBuffer) ExtendZero(n int) {
	if n <= 0 {
		return
	}

	bb.Grow(n)
	start := len(bb.B)
	bb.B = bb.B[:start+n]
	clear(bb.B[start:])
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers (<64KB), grow by DTBBufferDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := DTBBufferDefaultSize
	if cap(bb.B) > 4*DTBBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// Buffers that grew beyond maxThreshold are dropped instead of being retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	dtbDefaultPool     = NewByteBufferPool(DTBBufferDefaultSize, DTBBufferMaxThreshold)
	stringsDefaultPool = NewByteBufferPool(StringsBufferDefaultSize, StringsBufferMaxThreshold)
)

// GetDTBBuffer retrieves a ByteBuffer from the default DTB pool.
func GetDTBBuffer() *ByteBuffer {
	return dtbDefaultPool.Get()
}

// PutDTBBuffer returns a ByteBuffer to the default DTB pool.
func PutDTBBuffer(bb *ByteBuffer) {
	dtbDefaultPool.Put(bb)
}

// GetStringsBuffer retrieves a ByteBuffer from the strings block pool.
func GetStringsBuffer() *ByteBuffer {
	return stringsDefaultPool.Get()
}

// PutStringsBuffer returns a ByteBuffer to the strings block pool.
func PutStringsBuffer(bb *ByteBuffer) {
	stringsDefaultPool.Put(bb)
}
