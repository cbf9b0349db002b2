package section

import (
	"fmt"

	"github.com/arloliu/fdt/binio"
	"github.com/arloliu/fdt/endian"
	"github.com/arloliu/fdt/errs"
)

// Header is the fixed 40-byte record at the start of a DTB.
//
// All fields are big-endian uint32 values stored in declaration order.
type Header struct {
	Magic           uint32 // byte offset 0-3
	TotalSize       uint32 // byte offset 4-7
	OffDtStruct     uint32 // byte offset 8-11
	OffDtStrings    uint32 // byte offset 12-15
	OffMemRsvmap    uint32 // byte offset 16-19
	Version         uint32 // byte offset 20-23
	LastCompVersion uint32 // byte offset 24-27
	BootCPUIDPhys   uint32 // byte offset 28-31
	SizeDtStrings   uint32 // byte offset 32-35
	SizeDtStruct    uint32 // byte offset 36-39
}

// ParseHeader decodes and validates the header at the start of data.
//
// Fields are read one at a time through the bounds-checked reader and checked
// in this order, stopping at the first failure:
//   - magic number: errs.ErrInvalidMagicNumber
//   - total size against len(data): errs.ErrSizeMismatch
//   - version: errs.ErrVersionNotSupported
//
// A buffer too short to hold a field fails with errs.ErrUnexpectedEndOfInput.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	var err error

	if h.Magic, err = binio.ReadU32(data, OffsetMagic); err != nil {
		return Header{}, err
	}
	if h.Magic != Magic {
		if engine, ok := endian.Detect(data, Magic); ok && engine != endian.FDT() {
			return Header{}, fmt.Errorf("%w: got 0x%08x, blob is byte-swapped", errs.ErrInvalidMagicNumber, h.Magic)
		}

		return Header{}, fmt.Errorf("%w: got 0x%08x", errs.ErrInvalidMagicNumber, h.Magic)
	}

	if h.TotalSize, err = binio.ReadU32(data, OffsetTotalSize); err != nil {
		return Header{}, err
	}
	if uint64(h.TotalSize) != uint64(len(data)) {
		return Header{}, fmt.Errorf("%w: header says %d, buffer has %d", errs.ErrSizeMismatch, h.TotalSize, len(data))
	}

	if h.Version, err = binio.ReadU32(data, OffsetVersion); err != nil {
		return Header{}, err
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: version %d", errs.ErrVersionNotSupported, h.Version)
	}

	fields := []struct {
		dst *uint32
		off int
	}{
		{&h.OffDtStruct, OffsetOffDtStruct},
		{&h.OffDtStrings, OffsetOffDtStrings},
		{&h.OffMemRsvmap, OffsetOffMemRsvmap},
		{&h.LastCompVersion, OffsetLastCompVersion},
		{&h.BootCPUIDPhys, OffsetBootCPUIDPhys},
		{&h.SizeDtStrings, OffsetSizeDtStrings},
		{&h.SizeDtStruct, OffsetSizeDtStruct},
	}
	for _, f := range fields {
		if *f.dst, err = binio.ReadU32(data, f.off); err != nil {
			return Header{}, err
		}
	}

	return h, nil
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h *Header) Bytes() []byte {
	engine := endian.FDT()
	b := make([]byte, 0, HeaderSize)

	b = engine.AppendUint32(b, h.Magic)
	b = engine.AppendUint32(b, h.TotalSize)
	b = engine.AppendUint32(b, h.OffDtStruct)
	b = engine.AppendUint32(b, h.OffDtStrings)
	b = engine.AppendUint32(b, h.OffMemRsvmap)
	b = engine.AppendUint32(b, h.Version)
	b = engine.AppendUint32(b, h.LastCompVersion)
	b = engine.AppendUint32(b, h.BootCPUIDPhys)
	b = engine.AppendUint32(b, h.SizeDtStrings)
	b = engine.AppendUint32(b, h.SizeDtStruct)

	return b
}
