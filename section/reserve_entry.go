package section

import (
	"github.com/arloliu/fdt/binio"
)

// ReserveEntry is one (address, size) pair of the memory reservation block.
type ReserveEntry struct {
	Address uint64 // byte offset 0-7
	Size    uint64 // byte offset 8-15
}

// IsTerminator reports whether the entry ends the reservation block.
func (e ReserveEntry) IsTerminator() bool {
	return e.Size == 0
}

// ParseReserveMap reads entries starting at off until the first entry with a
// zero size. The terminator is consumed but not returned.
//
// Returns:
//   - []ReserveEntry: entries in block order, nil if the block only holds the terminator
//   - int: offset just past the terminator
//   - error: errs.ErrUnexpectedEndOfInput if the block runs past the buffer
func ParseReserveMap(data []byte, off int) ([]ReserveEntry, int, error) {
	var entries []ReserveEntry

	pos := off
	for {
		addr, err := binio.ReadU64(data, pos)
		if err != nil {
			return nil, 0, err
		}
		size, err := binio.ReadU64(data, pos+8)
		if err != nil {
			return nil, 0, err
		}
		pos += ReserveEntrySize

		entry := ReserveEntry{Address: addr, Size: size}
		if entry.IsTerminator() {
			return entries, pos, nil
		}
		entries = append(entries, entry)
	}
}

// AppendReserveMap writes entries followed by the (0, 0) terminator to w.
func AppendReserveMap(w *binio.Writer, entries []ReserveEntry) {
	for _, e := range entries {
		w.AppendU64(e.Address)
		w.AppendU64(e.Size)
	}
	w.AppendU64(0)
	w.AppendU64(0)
}
