package tile

import (
	"testing"

	"github.com/bodgit/retrogfx/rgba"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexedTile(t *testing.T, width, height int, indexed []uint8) *Tile {
	t.Helper()

	p := make([]rgba.Color, len(indexed))
	for i, v := range indexed {
		p[i] = rgba.FromRGBA(v<<4, v<<4, v<<4, 0xff)
	}

	tl, err := NewIndexed(width, height, p, indexed, 0)
	require.NoError(t, err)

	return tl
}

// gradient is an 8x8 tile whose top row counts 0 through 7, remaining
// rows all zero. Bitplane bytes for that row are 0x55, 0x33, 0x0f, 0x00.
func gradient(t *testing.T) *Tile {
	t.Helper()

	indexed := make([]uint8, 64)
	for x := 0; x < 8; x++ {
		indexed[x] = uint8(x)
	}

	return indexedTile(t, 8, 8, indexed)
}

func TestDefaultDepth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4, DefaultDepth(rgba.SNES))
	assert.Equal(t, 2, DefaultDepth(rgba.GB))
	assert.Equal(t, 2, DefaultDepth(rgba.GBC))
	assert.Equal(t, 4, DefaultDepth(rgba.MD))
}

func TestNativeDataPlanar(t *testing.T) {
	t.Parallel()

	tl := gradient(t)

	b, err := tl.NativeData(rgba.SNES, 4)
	require.NoError(t, err)
	require.Len(t, b, 32)

	want := make([]byte, 32)
	want[0], want[1] = 0x55, 0x33
	want[16] = 0x0f
	assert.Equal(t, want, b)

	// PC Engine characters share the paired bitplane layout
	b, err = tl.NativeData(rgba.PCE, 4)
	require.NoError(t, err)
	assert.Equal(t, want, b)

	b, err = tl.NativeData(rgba.SNES, 8)
	require.NoError(t, err)
	require.Len(t, b, 64)
	assert.Equal(t, want, b[:32])
	assert.Equal(t, make([]byte, 32), b[32:])
}

func TestNativeDataGB(t *testing.T) {
	t.Parallel()

	indexed := make([]uint8, 64)
	copy(indexed, []uint8{3, 3, 0, 0, 1, 1, 2, 2})

	b, err := indexedTile(t, 8, 8, indexed).NativeData(rgba.GB, 2)
	require.NoError(t, err)
	require.Len(t, b, 16)

	want := make([]byte, 16)
	want[0], want[1] = 0xcc, 0xc3
	assert.Equal(t, want, b)
}

func TestNativeDataRowPlanar(t *testing.T) {
	t.Parallel()

	b, err := gradient(t).NativeData(rgba.SMS, 4)
	require.NoError(t, err)
	require.Len(t, b, 32)

	want := make([]byte, 32)
	want[0], want[1], want[2], want[3] = 0x55, 0x33, 0x0f, 0x00
	assert.Equal(t, want, b)

	gg, err := gradient(t).NativeData(rgba.GG, 4)
	require.NoError(t, err)
	assert.Equal(t, want, gg)
}

func TestNativeDataNibbles(t *testing.T) {
	t.Parallel()

	indexed := make([]uint8, 64)
	for i := range indexed {
		indexed[i] = uint8(i % 16)
	}
	tl := indexedTile(t, 8, 8, indexed)

	b, err := tl.NativeData(rgba.MD, 4)
	require.NoError(t, err)
	require.Len(t, b, 32)
	assert.Equal(t, []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}, b[:8])

	b, err = tl.NativeData(rgba.GBA, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x10, 0x32, 0x54, 0x76, 0x98, 0xba, 0xdc, 0xfe}, b[:8])

	b, err = tl.NativeData(rgba.GBA, 8)
	require.NoError(t, err)
	assert.Equal(t, indexed, []uint8(b))
}

func TestNativeDataErrors(t *testing.T) {
	t.Parallel()

	plain, err := New(8, 8, make([]rgba.Color, 64))
	require.NoError(t, err)

	_, err = plain.NativeData(rgba.SNES, 4)
	assert.ErrorIs(t, err, errNoIndexed)

	tl := gradient(t)

	_, err = tl.NativeData(rgba.SNES, 3)
	assert.ErrorIs(t, err, ErrUnsupportedDepth)

	_, err = tl.NativeData(rgba.MD, 2)
	assert.ErrorIs(t, err, ErrUnsupportedDepth)

	_, err = tl.NativeData(rgba.GB, 4)
	assert.ErrorIs(t, err, ErrUnsupportedDepth)

	// planar packing is only defined for 8 pixel wide tiles
	wide := indexedTile(t, 16, 16, make([]uint8, 256))
	_, err = wide.NativeData(rgba.SNES, 4)
	assert.Error(t, err)
}

func TestTilesetNativeData(t *testing.T) {
	t.Parallel()

	ts := NewTileset(8, 8, false, false)

	indexed := make([]uint8, 64)
	copy(indexed, []uint8{3, 3, 0, 0, 1, 1, 2, 2})

	_, err := ts.Add(indexedTile(t, 8, 8, indexed))
	require.NoError(t, err)
	_, err = ts.Add(indexedTile(t, 8, 8, make([]uint8, 64)))
	require.NoError(t, err)

	b, err := ts.NativeData(rgba.GB, 2)
	require.NoError(t, err)
	require.Len(t, b, 32)

	assert.Equal(t, byte(0xcc), b[0])
	assert.Equal(t, byte(0xc3), b[1])
	assert.Equal(t, make([]byte, 16), b[16:])
}

func TestTilesetNativeDataError(t *testing.T) {
	t.Parallel()

	ts := NewTileset(8, 8, false, false)

	plain, err := New(8, 8, make([]rgba.Color, 64))
	require.NoError(t, err)

	_, err = ts.Add(plain)
	require.NoError(t, err)

	_, err = ts.NativeData(rgba.SNES, 4)
	assert.ErrorIs(t, err, errNoIndexed)
}
