// Package fdt reads and writes Flattened Device Tree blobs (DTB).
//
// A DTB is the binary hardware description that bootloaders hand to an
// operating system kernel. This package offers one-call wrappers around the
// dtb package for the common cases:
//
//	tree, err := fdt.Load(data)
//	if err != nil {
//	    return err
//	}
//	uart := tree.Find("/soc/serial@7e201000")
//	status, err := uart.PropStr("status")
//
//	out, err := fdt.Store(tree)
//
// Images shipped compressed are handled by LoadCompressed and StoreCompressed.
//
// # Package Structure
//
//   - dtb: tree model, Decoder, Encoder and queries
//   - section: header, reservation block and structure tags
//   - strtab: strings block builders
//   - compress: None, Zstd, S2 and LZ4 codecs
//   - errs: sentinel errors
//
// Load and Store share no state, so any number of calls may run concurrently.
package fdt

import (
	"fmt"

	"github.com/arloliu/fdt/compress"
	"github.com/arloliu/fdt/dtb"
	"github.com/arloliu/fdt/format"
)

// Load decodes a DTB buffer into an owned tree. data is only borrowed; the
// returned tree does not reference it.
//
// Parameters:
//   - data: the complete DTB, exactly as long as its header's total size
//   - opts: optional decoder settings (max depth, logger)
//
// Returns:
//   - *dtb.DeviceTree: the decoded tree
//   - error: any of the errs sentinels describing why data is not a valid DTB
func Load(data []byte, opts ...dtb.DecoderOption) (*dtb.DeviceTree, error) {
	decoder, err := dtb.NewDecoder(data, opts...)
	if err != nil {
		return nil, err
	}

	return decoder.Decode()
}

// Store encodes tree as a version 17 DTB with a deduplicated strings block.
func Store(tree *dtb.DeviceTree) ([]byte, error) {
	return StoreWithOptions(tree)
}

// StoreWithOptions encodes tree with the given encoder settings.
//
// Example:
//
//	data, err := fdt.StoreWithOptions(tree,
//	    dtb.WithStringDedup(false),
//	    dtb.WithLastCompVersion(2),
//	)
func StoreWithOptions(tree *dtb.DeviceTree, opts ...dtb.EncoderOption) ([]byte, error) {
	encoder, err := dtb.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return encoder.Encode(tree)
}

// LoadCompressed decompresses data with the codec for compressionType and
// decodes the result.
func LoadCompressed(data []byte, compressionType format.CompressionType, opts ...dtb.DecoderOption) (*dtb.DeviceTree, error) {
	codec, err := compress.GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	image, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress %s image: %w", compressionType, err)
	}

	return Load(image, opts...)
}

// StoreCompressed encodes tree and compresses the image with the codec for
// compressionType.
func StoreCompressed(tree *dtb.DeviceTree, compressionType format.CompressionType, opts ...dtb.EncoderOption) ([]byte, error) {
	codec, err := compress.GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	image, err := StoreWithOptions(tree, opts...)
	if err != nil {
		return nil, err
	}

	packed, err := codec.Compress(image)
	if err != nil {
		return nil, fmt.Errorf("compress %s image: %w", compressionType, err)
	}

	return packed, nil
}
