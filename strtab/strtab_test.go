package strtab

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fdt/format"
	"github.com/arloliu/fdt/internal/hash"
)

func TestPlain_Add(t *testing.T) {
	tbl := NewPlain()
	defer tbl.Reset()

	require.Equal(t, uint32(0), tbl.Add("compatible"))
	require.Equal(t, uint32(11), tbl.Add("status"))
	require.Equal(t, uint32(18), tbl.Add("status"))

	require.Equal(t, []byte("compatible\x00status\x00status\x00"), tbl.Bytes())
	require.Equal(t, 25, tbl.Len())
}

func TestDedup_Add(t *testing.T) {
	tbl := NewDedup()
	defer tbl.Reset()

	require.Equal(t, uint32(0), tbl.Add("compatible"))
	require.Equal(t, uint32(11), tbl.Add("status"))
	require.Equal(t, uint32(11), tbl.Add("status"))
	require.Equal(t, uint32(0), tbl.Add("compatible"))
	require.Equal(t, uint32(18), tbl.Add("reg"))

	require.Equal(t, []byte("compatible\x00status\x00reg\x00"), tbl.Bytes())
	require.Equal(t, 3, tbl.Count())
}

func TestDedup_EmptyName(t *testing.T) {
	tbl := NewDedup()
	defer tbl.Reset()

	require.Equal(t, uint32(0), tbl.Add(""))
	require.Equal(t, uint32(0), tbl.Add(""))
	require.Equal(t, uint32(1), tbl.Add("a"))
	require.Equal(t, []byte("\x00a\x00"), tbl.Bytes())
}

func TestDedup_SuffixIsNotShared(t *testing.T) {
	tbl := NewDedup()
	defer tbl.Reset()

	// "cells" is a suffix of "#address-cells" but must get its own entry so
	// the block stays byte-compatible with dtc output.
	require.Equal(t, uint32(0), tbl.Add("#address-cells"))
	require.Equal(t, uint32(15), tbl.Add("cells"))
}

func TestDedup_HashCollision(t *testing.T) {
	tbl := NewDedup()
	defer tbl.Reset()

	off := tbl.Add("a")
	require.Equal(t, uint32(0), off)

	// Pretend "b" hashes to the same bucket as "a".
	tbl.offsets[hash.ID("b")] = append(tbl.offsets[hash.ID("b")], off)

	require.Equal(t, uint32(2), tbl.Add("b"))
	require.Equal(t, uint32(2), tbl.Add("b"))
	require.Equal(t, []byte("a\x00b\x00"), tbl.Bytes())
}

func TestNew(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		tbl := New(format.StringsPlain)
		defer tbl.Reset()
		require.IsType(t, &Plain{}, tbl)
	})

	t.Run("dedup", func(t *testing.T) {
		tbl := New(format.StringsDedup)
		defer tbl.Reset()
		require.IsType(t, &Dedup{}, tbl)
	})

	t.Run("unknown falls back to dedup", func(t *testing.T) {
		tbl := New(format.StringTableMode(0))
		defer tbl.Reset()
		require.IsType(t, &Dedup{}, tbl)
	})
}

func TestStringTable_StatusCount(t *testing.T) {
	tests := []struct {
		mode format.StringTableMode
		want int
	}{
		{format.StringsDedup, 1},
		{format.StringsPlain, 2},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			tbl := New(tt.mode)
			defer tbl.Reset()

			tbl.Add("status")
			tbl.Add("status")

			require.Equal(t, tt.want, bytes.Count(tbl.Bytes(), []byte("status\x00")))
		})
	}
}

func BenchmarkDedup_Add(b *testing.B) {
	names := []string{"compatible", "reg", "status", "interrupts", "clocks", "#address-cells", "#size-cells"}
	b.ReportAllocs()
	for b.Loop() {
		tbl := NewDedup()
		for range 32 {
			for _, n := range names {
				tbl.Add(n)
			}
		}
		tbl.Reset()
	}
}
