// Package compress provides the codecs used for compressed DTB images.
//
// Bootloaders and firmware packages frequently ship device tree blobs
// compressed. The codecs here wrap an already encoded DTB; they know nothing
// about its structure, and a decompressed image still goes through the full
// header validation of the dtb package.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): the image is stored as is
//   - Zstd (format.CompressionZstd): best ratio, klauspost/compress/zstd
//   - S2 (format.CompressionS2): fast, klauspost/compress/s2 block format
//   - LZ4 (format.CompressionLZ4): fast decompression, pierrec/lz4 block format
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(image)
//	...
//	image, err = codec.Decompress(packed)
//
// GetCodec returns shared instances that are safe for concurrent use;
// CreateCodec returns a fresh one. Both fail with errs.ErrUnsupportedCompression
// for an unknown type.
//
// Every decompressor refuses to produce more than MaxDecompressedSize bytes,
// so a hostile image cannot exhaust memory.
package compress
