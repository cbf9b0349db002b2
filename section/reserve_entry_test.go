package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fdt/binio"
	"github.com/arloliu/fdt/errs"
)

func TestReserveMap_RoundTrip(t *testing.T) {
	entries := []ReserveEntry{
		{Address: 0x0, Size: 0x1000},
		{Address: 0x3b400000, Size: 0x4c00000},
	}

	w := binio.NewWriter()
	defer w.Release()
	w.AppendZero(8) // leading bytes so the block does not start at 0
	AppendReserveMap(w, entries)

	data := w.Detach()
	require.Len(t, data, 8+3*ReserveEntrySize)

	parsed, end, err := ParseReserveMap(data, 8)
	require.NoError(t, err)
	require.Equal(t, entries, parsed)
	require.Equal(t, len(data), end)
}

func TestParseReserveMap_EmptyBlock(t *testing.T) {
	data := make([]byte, ReserveEntrySize)

	parsed, end, err := ParseReserveMap(data, 0)
	require.NoError(t, err)
	require.Nil(t, parsed)
	require.Equal(t, ReserveEntrySize, end)
}

func TestParseReserveMap_TerminatorWithAddress(t *testing.T) {
	w := binio.NewWriter()
	defer w.Release()
	w.AppendU64(0xdead0000)
	w.AppendU64(0)

	parsed, end, err := ParseReserveMap(w.Bytes(), 0)
	require.NoError(t, err)
	require.Empty(t, parsed)
	require.Equal(t, ReserveEntrySize, end)
}

func TestParseReserveMap_MissingTerminator(t *testing.T) {
	w := binio.NewWriter()
	defer w.Release()
	w.AppendU64(0x1000)
	w.AppendU64(0x1000)
	w.AppendU64(0x2000)

	_, _, err := ParseReserveMap(w.Bytes(), 0)
	require.ErrorIs(t, err, errs.ErrUnexpectedEndOfInput)
}

func TestReserveEntry_IsTerminator(t *testing.T) {
	require.True(t, ReserveEntry{}.IsTerminator())
	require.True(t, ReserveEntry{Address: 5}.IsTerminator())
	require.False(t, ReserveEntry{Size: 1}.IsTerminator())
}
