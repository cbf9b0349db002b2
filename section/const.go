package section

// Header constants.
const (
	Magic           uint32 = 0xd00dfeed // Magic is the first word of every DTB.
	Version         uint32 = 17         // Version is the only header version this codec reads and writes.
	LastCompVersion uint32 = 16         // LastCompVersion is the default lowest compatible version written by the encoder.
)

// Block sizes and alignments.
const (
	HeaderSize          = 40 // HeaderSize is the size of the version 17 header in bytes.
	ReserveEntrySize    = 16 // ReserveEntrySize is the size of one (address, size) pair.
	ReserveMapAlignment = 8  // ReserveMapAlignment is the alignment of the memory reservation block.
	StructAlignment     = 4  // StructAlignment is the word size the structure block is aligned to.
)

// Byte offsets of the header fields.
const (
	OffsetMagic           = 0
	OffsetTotalSize       = 4
	OffsetOffDtStruct     = 8
	OffsetOffDtStrings    = 12
	OffsetOffMemRsvmap    = 16
	OffsetVersion         = 20
	OffsetLastCompVersion = 24
	OffsetBootCPUIDPhys   = 28
	OffsetSizeDtStrings   = 32
	OffsetSizeDtStruct    = 36
)

// Tag is a structure block token.
type Tag uint32

// Structure block tokens.
const (
	TagBeginNode Tag = 0x1
	TagEndNode   Tag = 0x2
	TagProp      Tag = 0x3
	TagNop       Tag = 0x4
	TagEnd       Tag = 0x9
)

func (t Tag) String() string {
	switch t {
	case TagBeginNode:
		return "FDT_BEGIN_NODE"
	case TagEndNode:
		return "FDT_END_NODE"
	case TagProp:
		return "FDT_PROP"
	case TagNop:
		return "FDT_NOP"
	case TagEnd:
		return "FDT_END"
	default:
		return "FDT_UNKNOWN"
	}
}
