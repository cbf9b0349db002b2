package format

type (
	CompressionType uint8
	StringTableMode uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.

	StringsDedup StringTableMode = 0x1 // StringsDedup stores each property name once.
	StringsPlain StringTableMode = 0x2 // StringsPlain stores a property name for every property.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (m StringTableMode) String() string {
	switch m {
	case StringsDedup:
		return "Dedup"
	case StringsPlain:
		return "Plain"
	default:
		return "Unknown"
	}
}
