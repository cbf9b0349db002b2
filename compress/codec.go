package compress

import (
	"fmt"

	"github.com/arloliu/fdt/errs"
	"github.com/arloliu/fdt/format"
)

// MaxDecompressedSize bounds the output of every Decompress call. A DTB
// records its own size in a 32-bit field, but real images stay far below this.
const MaxDecompressedSize = 128 << 20

// Compressor compresses an encoded DTB image.
type Compressor interface {
	// Compress returns the compressed form of data.
	//
	// The returned slice is owned by the caller, except for the no-op codec,
	// which returns data itself. data is never modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores an image produced by the matching Compressor.
//
// Implementations are safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original bytes of data.
	//
	// Corrupted input, input produced by another algorithm, and output larger
	// than MaxDecompressedSize are reported as errors.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes the effect of compressing one image.
type Stats struct {
	// Algorithm identifies the compression algorithm used.
	Algorithm format.CompressionType
	// OriginalSize is the size of the encoded DTB.
	OriginalSize int
	// CompressedSize is the size of the compressed image.
	CompressedSize int
}

// Ratio returns CompressedSize / OriginalSize, or 0 for an empty input.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage.
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

// Measure compresses data with the codec for compressionType and reports the sizes.
func Measure(compressionType format.CompressionType, data []byte) (Stats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return Stats{}, err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		Algorithm:      compressionType,
		OriginalSize:   len(data),
		CompressedSize: len(compressed),
	}, nil
}

// CreateCodec creates a new Codec for compressionType.
//
// Returns:
//   - Codec: codec for None, Zstd, S2 or LZ4
//   - error: errs.ErrUnsupportedCompression for any other value
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

func tooLarge(algorithm string, size int) error {
	return fmt.Errorf("%s: decompressed size %d exceeds limit %d", algorithm, size, MaxDecompressedSize)
}
