package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fdt/dtb"
	"github.com/arloliu/fdt/errs"
	"github.com/arloliu/fdt/format"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
	}
}

// encodeTestImage returns an encoded DTB with n similar device nodes.
func encodeTestImage(tb testing.TB, n int) []byte {
	tb.Helper()

	tree := dtb.New()
	tree.Root.AddPropStrings("compatible", "vendor,board")
	soc := tree.Root.AddChild(dtb.NewNode("soc"))
	for i := range n {
		soc.AddChild(dtb.NewNode("uart@"+strconv.Itoa(i))).
			AddPropStrings("compatible", "ns16550a").
			AddPropU32("reg", uint32(i)*0x100).
			AddPropString("status", "okay")
	}

	encoder, err := dtb.NewEncoder()
	require.NoError(tb, err)
	data, err := encoder.Encode(tree)
	require.NoError(tb, err)

	return data
}

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "None", format.CompressionNone.String())
	require.Equal(t, "Zstd", format.CompressionZstd.String())
	require.Equal(t, "S2", format.CompressionS2.String())
	require.Equal(t, "LZ4", format.CompressionLZ4.String())
	require.Equal(t, "Unknown", format.CompressionType(0).String())
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			created, err := CreateCodec(ct)
			require.NoError(t, err)
			require.NotNil(t, created)

			shared, err := GetCodec(ct)
			require.NoError(t, err)
			require.IsType(t, created, shared)
		})
	}

	_, err := CreateCodec(format.CompressionType(0x7f))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Nil(t, compressed)

			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Nil(t, decompressed)

			compressed, err = codec.Compress([]byte{})
			require.NoError(t, err)

			decompressed, err = codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "single_byte", data: []byte{0x42}},
		{name: "small_image", data: encodeTestImage(t, 1)},
		{name: "medium_image", data: encodeTestImage(t, 200)},
		{name: "large_image", data: encodeTestImage(t, 5000)},
		{name: "zero_filled", data: make([]byte, 1<<20)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotNil(t, compressed)

					t.Logf("original: %d bytes, compressed: %d bytes", len(tc.data), len(compressed))

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.True(t, bytes.Equal(tc.data, decompressed))
				})
			}
		})
	}
}

func TestAllCodecs_DecompressedImageDecodes(t *testing.T) {
	image := encodeTestImage(t, 50)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(image)
			require.NoError(t, err)
			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)

			decoder, err := dtb.NewDecoder(decompressed)
			require.NoError(t, err)
			tree, err := decoder.Decode()
			require.NoError(t, err)
			require.NotNil(t, tree.Find("/soc/uart@49"))
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := []struct {
		name string
		data []byte
	}{
		{name: "random_bytes", data: []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{name: "text_as_compressed", data: []byte("this is not compressed data")},
		{name: "raw_dtb_magic", data: []byte{0xd0, 0x0d, 0xfe, 0xed, 0x00, 0x00, 0x00, 0x28}},
	}

	for codecName, codec := range getAllCodecs() {
		if codecName == "NoOp" {
			continue
		}

		t.Run(codecName, func(t *testing.T) {
			for _, input := range invalidInputs {
				t.Run(input.name, func(t *testing.T) {
					_, err := codec.Decompress(input.data)
					require.Error(t, err)
				})
			}
		})
	}
}

func TestS2Compressor_DecompressedSizeLimit(t *testing.T) {
	data := binary.AppendUvarint(nil, MaxDecompressedSize+1)
	data = append(data, 0x00, 0x01, 0x02)

	_, err := NewS2Compressor().Decompress(data)
	require.ErrorContains(t, err, "exceeds limit")
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 16
	image := encodeTestImage(t, 20)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			var wg sync.WaitGroup
			failures := make(chan error, numGoroutines)

			for range numGoroutines {
				wg.Add(1)
				go func() {
					defer wg.Done()

					compressed, err := codec.Compress(image)
					if err != nil {
						failures <- err
						return
					}
					decompressed, err := codec.Decompress(compressed)
					if err != nil {
						failures <- err
						return
					}
					if !bytes.Equal(image, decompressed) {
						failures <- errors.New("round trip mismatch")
					}
				}()
			}
			wg.Wait()
			close(failures)

			for err := range failures {
				require.NoError(t, err)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	image := encodeTestImage(t, 200)

	stats, err := Measure(format.CompressionZstd, image)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, stats.Algorithm)
	require.Equal(t, len(image), stats.OriginalSize)
	require.Less(t, stats.CompressedSize, stats.OriginalSize)
	require.Greater(t, stats.SpaceSavings(), 0.0)

	none, err := Measure(format.CompressionNone, image)
	require.NoError(t, err)
	require.InDelta(t, 1.0, none.Ratio(), 1e-9)
	require.InDelta(t, 0.0, none.SpaceSavings(), 1e-9)

	require.Zero(t, Stats{}.Ratio())

	_, err = Measure(format.CompressionType(9), image)
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}
