package strtab

import (
	"bytes"

	"github.com/arloliu/fdt/internal/hash"
)

// Dedup is a StringTable that stores every distinct name once.
//
// Names are indexed by their xxHash64. A hash maps to the offsets of every
// distinct name that produced it, and candidates are confirmed against the
// bytes already in the block, so colliding names still get their own entry.
type Dedup struct {
	plain   *Plain
	offsets map[uint64][]uint32
}

var _ StringTable = (*Dedup)(nil)

// NewDedup creates an empty deduplicating table.
func NewDedup() *Dedup {
	return &Dedup{
		plain:   NewPlain(),
		offsets: make(map[uint64][]uint32),
	}
}

// Add returns the offset of the first occurrence of name, appending it only
// if it has not been seen before.
func (t *Dedup) Add(name string) uint32 {
	h := hash.ID(name)
	for _, off := range t.offsets[h] {
		if t.matches(off, name) {
			return off
		}
	}

	off := t.plain.Add(name)
	t.offsets[h] = append(t.offsets[h], off)

	return off
}

// matches reports whether the entry at off is exactly name.
func (t *Dedup) matches(off uint32, name string) bool {
	block := t.plain.Bytes()
	end := int(off) + len(name)
	if end >= len(block) || block[end] != 0 {
		return false
	}

	return bytes.Equal(block[off:end], []byte(name))
}

// Bytes returns the strings block.
func (t *Dedup) Bytes() []byte {
	return t.plain.Bytes()
}

// Len returns the size of the strings block.
func (t *Dedup) Len() int {
	return t.plain.Len()
}

// Count returns the number of distinct names stored.
func (t *Dedup) Count() int {
	n := 0
	for _, offs := range t.offsets {
		n += len(offs)
	}

	return n
}

// Reset returns the buffer to the pool and clears the index.
func (t *Dedup) Reset() {
	t.plain.Reset()
	clear(t.offsets)
}
