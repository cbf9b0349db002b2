package compress

import (
	"testing"
)

func BenchmarkCodecs(b *testing.B) {
	image := encodeTestImage(b, 500)

	for name, codec := range getAllCodecs() {
		compressed, _ := codec.Compress(image)

		b.Run(name+"/Compress", func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(image)))
			for b.Loop() {
				_, _ = codec.Compress(image)
			}
		})

		b.Run(name+"/Decompress", func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(image)))
			for b.Loop() {
				_, _ = codec.Decompress(compressed)
			}
		})
	}
}
