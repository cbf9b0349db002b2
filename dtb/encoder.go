package dtb

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/fdt/binio"
	"github.com/arloliu/fdt/errs"
	"github.com/arloliu/fdt/internal/options"
	"github.com/arloliu/fdt/section"
	"github.com/arloliu/fdt/strtab"
)

// Encoder writes a DeviceTree as a version 17 DTB.
//
// Blocks are laid out in the order dtc uses: header, memory reservation
// block (8-byte aligned), structure block and strings block (both 4-byte
// aligned). Offsets and sizes are back-patched into the header once each
// block is complete.
//
// An Encoder holds configuration only. Each Encode call works on its own
// pooled buffer and string table, so an Encoder may be shared between
// goroutines.
type Encoder struct {
	*EncoderConfig
}

// NewEncoder creates an Encoder.
//
// Parameters:
//   - opts: string table mode, last_comp_version and logger options
//
// Returns:
//   - *Encoder: encoder ready for Encode
//   - error: configuration error if an invalid option is provided
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	config := newEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &Encoder{EncoderConfig: config}, nil
}

// Encode serializes tree and returns a newly allocated buffer.
//
// The header always carries version 17, whatever tree.Version says. The
// reservation terminator is appended automatically.
//
// Returns:
//   - []byte: the encoded DTB
//   - error: errs.ErrNilNode, errs.ErrInvalidName, errs.ErrInvalidReservation,
//     or errs.ErrBlobTooLarge
func (e *Encoder) Encode(tree *DeviceTree) ([]byte, error) {
	if tree == nil || tree.Root == nil {
		return nil, fmt.Errorf("%w: missing root", errs.ErrNilNode)
	}
	for i, r := range tree.Reserved {
		if r.Size == 0 {
			return nil, fmt.Errorf("%w: entry %d at 0x%x has zero size", errs.ErrInvalidReservation, i, r.Address)
		}
	}

	w := binio.NewWriter()
	defer w.Release()

	table := strtab.New(e.stringMode)
	defer table.Reset()

	header := section.Header{
		Magic:           section.Magic,
		Version:         section.Version,
		LastCompVersion: e.lastCompVersion,
		BootCPUIDPhys:   tree.BootCPUIDPhys,
	}
	w.AppendBytes(header.Bytes())

	// Memory reservation block.
	if err := w.Pad(section.ReserveMapAlignment); err != nil {
		return nil, err
	}
	if err := patchLen(w, section.OffsetOffMemRsvmap, w.Len()); err != nil {
		return nil, err
	}
	section.AppendReserveMap(w, tree.Reserved)

	// Structure block.
	if err := w.Pad(section.StructAlignment); err != nil {
		return nil, err
	}
	structOff := w.Len()
	if err := patchLen(w, section.OffsetOffDtStruct, structOff); err != nil {
		return nil, err
	}
	if err := e.encodeNode(w, table, tree.Root, "/"); err != nil {
		return nil, err
	}
	w.AppendU32(uint32(section.TagEnd))
	structSize := w.Len() - structOff
	if err := patchLen(w, section.OffsetSizeDtStruct, structSize); err != nil {
		return nil, err
	}

	// Strings block.
	if err := patchLen(w, section.OffsetSizeDtStrings, table.Len()); err != nil {
		return nil, err
	}
	if err := w.Pad(section.StructAlignment); err != nil {
		return nil, err
	}
	if err := patchLen(w, section.OffsetOffDtStrings, w.Len()); err != nil {
		return nil, err
	}
	w.AppendBytes(table.Bytes())

	if err := patchLen(w, section.OffsetTotalSize, w.Len()); err != nil {
		return nil, err
	}

	e.logger.Debug("dtb encoded",
		slog.Int("total_size", w.Len()),
		slog.Int("size_dt_struct", structSize),
		slog.Int("size_dt_strings", table.Len()),
		slog.Int("reservations", len(tree.Reserved)),
		slog.String("string_table", e.stringMode.String()),
	)

	return w.Detach(), nil
}

func (e *Encoder) encodeNode(w *binio.Writer, table strtab.StringTable, n *Node, path string) error {
	if err := validateName(n.Name); err != nil {
		return fmt.Errorf("node %s: %w", path, err)
	}

	w.AppendU32(uint32(section.TagBeginNode))
	w.AppendCString(n.Name)
	if err := w.Pad(section.StructAlignment); err != nil {
		return err
	}

	for _, p := range n.Props {
		if err := validateName(p.Name); err != nil {
			return fmt.Errorf("property %q of node %s: %w", p.Name, path, err)
		}
		if uint64(len(p.Value)) > math.MaxUint32 {
			return fmt.Errorf("%w: property %q of node %s holds %d bytes", errs.ErrBlobTooLarge, p.Name, path, len(p.Value))
		}

		w.AppendU32(uint32(section.TagProp))
		w.AppendU32(uint32(len(p.Value))) //nolint:gosec
		w.AppendU32(table.Add(p.Name))
		w.AppendBytes(p.Value)
		if err := w.Pad(section.StructAlignment); err != nil {
			return err
		}
	}

	for i, c := range n.Children {
		if c == nil {
			return fmt.Errorf("%w: child %d of node %s", errs.ErrNilNode, i, path)
		}

		if err := e.encodeNode(w, table, c, joinPath(path, c.Name)); err != nil {
			return err
		}
	}

	w.AppendU32(uint32(section.TagEndNode))

	return nil
}

// patchLen writes n into the header field at pos, failing if n does not fit.
func patchLen(w *binio.Writer, pos int, n int) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes", errs.ErrBlobTooLarge, n)
	}

	return w.PatchU32(pos, uint32(n))
}

// validateName checks that name can be stored as a NUL-terminated UTF-8 string.
func validateName(name string) error {
	if strings.IndexByte(name, 0) >= 0 {
		return fmt.Errorf("%w: %q contains a nul byte", errs.ErrInvalidName, name)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: %q is not valid utf-8", errs.ErrInvalidName, name)
	}

	return nil
}
