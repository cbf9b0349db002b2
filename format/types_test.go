package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0).String())
}

func TestStringTableMode_String(t *testing.T) {
	require.Equal(t, "Dedup", StringsDedup.String())
	require.Equal(t, "Plain", StringsPlain.String())
	require.Equal(t, "Unknown", StringTableMode(9).String())
}
