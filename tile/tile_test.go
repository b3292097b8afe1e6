package tile

import (
	"testing"

	"github.com/bodgit/retrogfx/rgba"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pixels(values ...uint8) []rgba.Color {
	p := make([]rgba.Color, len(values))
	for i, v := range values {
		p[i] = rgba.FromRGBA(v, v, v, 0xff)
	}
	return p
}

func TestNew(t *testing.T) {
	t.Parallel()

	tl, err := New(2, 2, pixels(1, 2, 3, 4))
	require.NoError(t, err)

	assert.Equal(t, 2, tl.Width())
	assert.Equal(t, 2, tl.Height())
	assert.Equal(t, pixels(1, 2, 3, 4), tl.RGBAData())

	_, err = tl.IndexedData()
	assert.Error(t, err)

	_, err = New(2, 2, pixels(1, 2, 3))
	assert.Error(t, err)
}

func TestNewIndexed(t *testing.T) {
	t.Parallel()

	tl, err := NewIndexed(2, 1, pixels(1, 2), []uint8{3, 4}, 5)
	require.NoError(t, err)

	indexed, err := tl.IndexedData()
	require.NoError(t, err)
	assert.Equal(t, []uint8{3, 4}, indexed)
	assert.Equal(t, 5, tl.Subpalette())

	_, err = NewIndexed(2, 1, pixels(1, 2), []uint8{3}, 0)
	assert.Error(t, err)
}

func TestTilesetAdd(t *testing.T) {
	t.Parallel()

	ts := NewTileset(2, 2, false, false)

	assert.Equal(t, 2, ts.TileWidth())
	assert.Equal(t, 2, ts.TileHeight())

	tl, err := New(2, 2, pixels(1, 2, 3, 4))
	require.NoError(t, err)

	ref, err := ts.Add(tl)
	require.NoError(t, err)
	assert.Equal(t, Ref{Index: 0}, ref)

	// without dedupe identical content is stored again
	ref, err = ts.Add(tl)
	require.NoError(t, err)
	assert.Equal(t, Ref{Index: 1}, ref)

	assert.Equal(t, 2, ts.Size())
	assert.Len(t, ts.Tiles(), 2)
}

func TestTilesetAddWrongSize(t *testing.T) {
	t.Parallel()

	ts := NewTileset(2, 2, false, false)

	tl, err := New(2, 1, pixels(1, 2))
	require.NoError(t, err)

	_, err = ts.Add(tl)
	assert.Error(t, err)
}

func TestTilesetDedupe(t *testing.T) {
	t.Parallel()

	ts := NewTileset(2, 2, true, false)

	a, err := New(2, 2, pixels(1, 2, 3, 4))
	require.NoError(t, err)
	b, err := New(2, 2, pixels(1, 2, 3, 4))
	require.NoError(t, err)
	mirrored, err := New(2, 2, pixels(2, 1, 4, 3))
	require.NoError(t, err)

	ref, err := ts.Add(a)
	require.NoError(t, err)
	assert.Equal(t, Ref{Index: 0}, ref)

	ref, err = ts.Add(b)
	require.NoError(t, err)
	assert.Equal(t, Ref{Index: 0}, ref)

	// flip matching is off so mirrored content is new
	ref, err = ts.Add(mirrored)
	require.NoError(t, err)
	assert.Equal(t, Ref{Index: 1}, ref)

	assert.Equal(t, 2, ts.Size())
}

func TestTilesetDedupeFlips(t *testing.T) {
	t.Parallel()

	ts := NewTileset(2, 2, true, true)

	a, err := New(2, 2, pixels(1, 2, 3, 4))
	require.NoError(t, err)

	ref, err := ts.Add(a)
	require.NoError(t, err)
	assert.Equal(t, Ref{Index: 0}, ref)

	tests := []struct {
		name   string
		pixels []rgba.Color
		ref    Ref
	}{
		{"hflip", pixels(2, 1, 4, 3), Ref{Index: 0, HFlip: true}},
		{"vflip", pixels(3, 4, 1, 2), Ref{Index: 0, VFlip: true}},
		{"hvflip", pixels(4, 3, 2, 1), Ref{Index: 0, HFlip: true, VFlip: true}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tl, err := New(2, 2, tt.pixels)
			require.NoError(t, err)

			ref, err := ts.Add(tl)
			require.NoError(t, err)
			assert.Equal(t, tt.ref, ref)
		})
	}

	assert.Equal(t, 1, ts.Size())
}

func TestTilesetDedupeSymmetric(t *testing.T) {
	t.Parallel()

	ts := NewTileset(2, 2, true, true)

	// horizontally symmetric, so the flipped key collides with the
	// exact one and the exact match must win
	a, err := New(2, 2, pixels(1, 1, 2, 2))
	require.NoError(t, err)

	_, err = ts.Add(a)
	require.NoError(t, err)

	b, err := New(2, 2, pixels(1, 1, 2, 2))
	require.NoError(t, err)

	ref, err := ts.Add(b)
	require.NoError(t, err)
	assert.Equal(t, Ref{Index: 0}, ref)
}

func TestFlip(t *testing.T) {
	t.Parallel()

	src := pixels(1, 2, 3, 4, 5, 6)

	tests := []struct {
		name         string
		hflip, vflip bool
		want         []rgba.Color
	}{
		{"none", false, false, pixels(1, 2, 3, 4, 5, 6)},
		{"h", true, false, pixels(2, 1, 4, 3, 6, 5)},
		{"v", false, true, pixels(5, 6, 3, 4, 1, 2)},
		{"hv", true, true, pixels(6, 5, 4, 3, 2, 1)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, flip(src, 2, 3, tt.hflip, tt.vflip))
		})
	}
}
