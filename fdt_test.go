package fdt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fdt/dtb"
	"github.com/arloliu/fdt/errs"
	"github.com/arloliu/fdt/format"
)

func newTestTree() *dtb.DeviceTree {
	tree := dtb.New()
	tree.Reserved = []dtb.Reservation{{Address: 0x8000_0000, Size: 0x10_0000}}
	tree.Root.AddPropStrings("compatible", "vendor,board").
		AddPropU32("#address-cells", 1).
		AddPropU32("#size-cells", 1)

	cpus := tree.Root.AddChild(dtb.NewNode("cpus"))
	cpus.AddChild(dtb.NewNode("cpu@0")).AddPropU32("reg", 0).AddPropString("status", "okay")
	cpus.AddChild(dtb.NewNode("cpu@1")).AddPropU32("reg", 1).AddPropString("status", "disabled")

	tree.Root.AddChild(dtb.NewNode("memory@80000000")).
		AddPropString("device_type", "memory").
		AddProp("reg", []byte{0x80, 0, 0, 0, 0x40, 0, 0, 0})

	return tree
}

func TestLoadStore_RoundTrip(t *testing.T) {
	tree := newTestTree()

	data, err := Store(tree)
	require.NoError(t, err)

	loaded, err := Load(data)
	require.NoError(t, err)
	require.True(t, tree.Equal(loaded))

	again, err := Store(loaded)
	require.NoError(t, err)
	require.Equal(t, data, again)

	status, err := loaded.Find("/cpus/cpu@1").PropStr("status")
	require.NoError(t, err)
	require.Equal(t, "disabled", status)
}

func TestStoreWithOptions(t *testing.T) {
	tree := newTestTree()

	dedup, err := StoreWithOptions(tree, dtb.WithStringDedup(true))
	require.NoError(t, err)
	plain, err := StoreWithOptions(tree, dtb.WithStringDedup(false))
	require.NoError(t, err)

	require.Less(t, len(dedup), len(plain))

	fromPlain, err := Load(plain)
	require.NoError(t, err)
	require.True(t, tree.Equal(fromPlain))

	_, err = StoreWithOptions(tree, dtb.WithLastCompVersion(99))
	require.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	data, err := Store(newTestTree())
	require.NoError(t, err)

	bad := bytes.Clone(data)
	bad[0] = 0

	_, err = Load(bad)
	require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)

	_, err = Load(data[:len(data)-1])
	require.ErrorIs(t, err, errs.ErrSizeMismatch)

	_, err = Load(data, dtb.WithMaxDepth(2))
	require.ErrorIs(t, err, errs.ErrMaxDepthExceeded)

	_, err = Store(nil)
	require.ErrorIs(t, err, errs.ErrNilNode)
}

func TestCompressed_RoundTrip(t *testing.T) {
	tree := newTestTree()

	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			packed, err := StoreCompressed(tree, ct)
			require.NoError(t, err)

			loaded, err := LoadCompressed(packed, ct)
			require.NoError(t, err)
			require.True(t, tree.Equal(loaded))
		})
	}
}

func TestCompressed_Errors(t *testing.T) {
	tree := newTestTree()

	_, err := StoreCompressed(tree, format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = LoadCompressed([]byte{1, 2, 3}, format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = LoadCompressed([]byte("not zstd"), format.CompressionZstd)
	require.ErrorContains(t, err, "decompress Zstd image")

	// A raw image is not a valid zstd frame, but the no-op codec passes it through.
	raw, err := Store(tree)
	require.NoError(t, err)
	_, err = LoadCompressed(raw, format.CompressionNone)
	require.NoError(t, err)

	_, err = StoreCompressed(&dtb.DeviceTree{}, format.CompressionZstd)
	require.ErrorIs(t, err, errs.ErrNilNode)
}
