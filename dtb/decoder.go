package dtb

import (
	"bytes"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/arloliu/fdt/binio"
	"github.com/arloliu/fdt/endian"
	"github.com/arloliu/fdt/errs"
	"github.com/arloliu/fdt/internal/options"
	"github.com/arloliu/fdt/section"
)

var (
	engine        = endian.FDT()
	discardLogger = slog.New(slog.DiscardHandler)
)

// Decoder reads a DTB buffer into a DeviceTree.
//
// The header is validated by NewDecoder; the memory reservation and
// structure blocks are read by Decode. Every offset taken from the buffer is
// bounds checked before use, so malformed input yields an error, never a
// panic.
//
// Note: The Decoder is NOT thread-safe and NOT reusable. Create a new decoder
// for every buffer.
type Decoder struct {
	*DecoderConfig

	data    []byte
	header  section.Header
	strings int // absolute offset of the strings block
}

// NewDecoder validates the header of data and prepares it for decoding.
//
// Returns:
//   - *Decoder: decoder ready for Decode
//   - error: errs.ErrInvalidMagicNumber, errs.ErrSizeMismatch,
//     errs.ErrVersionNotSupported, errs.ErrUnexpectedEndOfInput, or an
//     invalid option
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	config := newDecoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	config.logger.Debug("dtb header decoded",
		slog.Int("total_size", int(header.TotalSize)),
		slog.Int("off_dt_struct", int(header.OffDtStruct)),
		slog.Int("off_dt_strings", int(header.OffDtStrings)),
		slog.Int("off_mem_rsvmap", int(header.OffMemRsvmap)),
		slog.Int("last_comp_version", int(header.LastCompVersion)),
	)

	return &Decoder{
		DecoderConfig: config,
		data:          data,
		header:        header,
		strings:       int(header.OffDtStrings),
	}, nil
}

// Header returns the parsed header.
func (d *Decoder) Header() section.Header {
	return d.header
}

// Decode reads the reservation block and the node tree.
//
// The structure block must hold exactly one root node followed by FDT_END;
// FDT_NOP records are skipped wherever a tag is expected. Names are copied
// out of the buffer, and so are property values, so the result stays valid
// after data is modified or released.
//
// Returns:
//   - *DeviceTree: the decoded tree
//   - error: *errs.ParseError on an unexpected tag, errs.ErrInvalidUTF8,
//     errs.ErrMaxDepthExceeded, or errs.ErrUnexpectedEndOfInput
func (d *Decoder) Decode() (*DeviceTree, error) {
	reserved, _, err := section.ParseReserveMap(d.data, int(d.header.OffMemRsvmap))
	if err != nil {
		return nil, fmt.Errorf("memory reservation block: %w", err)
	}
	d.logger.Debug("dtb reservations decoded", slog.Int("count", len(reserved)))

	pos := int(d.header.OffDtStruct)

	tag, pos, err := d.nextTag(pos)
	if err != nil {
		return nil, err
	}
	if tag != section.TagBeginNode {
		return nil, &errs.ParseError{Offset: pos - 4, Tag: uint32(tag)}
	}

	root, pos, err := d.decodeNode(pos, 1)
	if err != nil {
		return nil, err
	}

	tag, pos, err = d.nextTag(pos)
	if err != nil {
		return nil, err
	}
	if tag != section.TagEnd {
		return nil, &errs.ParseError{Offset: pos - 4, Tag: uint32(tag)}
	}

	return &DeviceTree{
		Version:       d.header.Version,
		BootCPUIDPhys: d.header.BootCPUIDPhys,
		Reserved:      reserved,
		Root:          root,
	}, nil
}

// nextTag reads the tag at pos, skipping NOP records, and returns the
// position just past it.
func (d *Decoder) nextTag(pos int) (section.Tag, int, error) {
	for {
		v, err := binio.ReadU32(d.data, pos)
		if err != nil {
			return 0, 0, err
		}
		pos += 4

		if tag := section.Tag(v); tag != section.TagNop {
			return tag, pos, nil
		}
	}
}

// decodeNode decodes a node whose FDT_BEGIN_NODE tag ends just before pos.
// It returns the node and the position past its FDT_END_NODE tag.
func (d *Decoder) decodeNode(pos int, depth int) (*Node, int, error) {
	if depth > d.maxDepth {
		return nil, 0, fmt.Errorf("%w: depth %d at offset %d", errs.ErrMaxDepthExceeded, depth, pos)
	}

	name, err := d.readName(pos)
	if err != nil {
		return nil, 0, err
	}
	pos = binio.Align(pos+len(name)+1, section.StructAlignment)

	node := &Node{Name: string(name)}

	// Properties come first, then children.
	tag, pos, err := d.nextTag(pos)
	if err != nil {
		return nil, 0, err
	}
	for tag == section.TagProp {
		var prop Property
		prop, pos, err = d.decodeProp(pos)
		if err != nil {
			return nil, 0, err
		}
		node.Props = append(node.Props, prop)

		if tag, pos, err = d.nextTag(pos); err != nil {
			return nil, 0, err
		}
	}

	for tag == section.TagBeginNode {
		var child *Node
		child, pos, err = d.decodeNode(pos, depth+1)
		if err != nil {
			return nil, 0, err
		}
		node.Children = append(node.Children, child)

		if tag, pos, err = d.nextTag(pos); err != nil {
			return nil, 0, err
		}
	}

	if tag != section.TagEndNode {
		return nil, 0, &errs.ParseError{Offset: pos - 4, Tag: uint32(tag)}
	}

	return node, pos, nil
}

// decodeProp decodes a property whose FDT_PROP tag ends just before pos.
func (d *Decoder) decodeProp(pos int) (Property, int, error) {
	length, err := binio.ReadU32(d.data, pos)
	if err != nil {
		return Property{}, 0, err
	}
	nameOff, err := binio.ReadU32(d.data, pos+4)
	if err != nil {
		return Property{}, 0, err
	}
	pos += 8

	end, err := d.offset(pos, length)
	if err != nil {
		return Property{}, 0, err
	}
	value, err := binio.Subslice(d.data, pos, end)
	if err != nil {
		return Property{}, 0, err
	}

	namePos, err := d.offset(d.strings, nameOff)
	if err != nil {
		return Property{}, 0, err
	}
	name, err := d.readName(namePos)
	if err != nil {
		return Property{}, 0, err
	}

	return Property{Name: string(name), Value: bytes.Clone(value)}, binio.Align(end, section.StructAlignment), nil
}

// readName reads a NUL-terminated UTF-8 name at pos.
func (d *Decoder) readName(pos int) ([]byte, error) {
	name, err := binio.ReadCString(d.data, pos)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(name) {
		return nil, fmt.Errorf("%w: name at offset %d", errs.ErrInvalidUTF8, pos)
	}

	return name, nil
}

// offset adds a 32-bit length or offset from the buffer to base without
// overflowing int, rejecting results that land past the buffer.
func (d *Decoder) offset(base int, rel uint32) (int, error) {
	sum := uint64(base) + uint64(rel) //nolint:gosec
	if sum > uint64(len(d.data)) {
		return 0, fmt.Errorf("%w: offset %d+%d exceeds buffer length %d",
			errs.ErrUnexpectedEndOfInput, base, rel, len(d.data))
	}

	return int(sum), nil //nolint:gosec
}
