/*
Package tile implements fixed-size tile collections for console graphics.

A Tileset gathers uniformly-sized tiles in insertion order, optionally
discarding duplicate content. Consoles whose tilemap hardware can mirror
tiles let a flipped variant of an existing tile share its slot; the Ref
returned from Add records which stored tile represents the added content
and the mirroring needed to reproduce it.
*/
package tile

import (
	"errors"
	"fmt"

	"github.com/bodgit/retrogfx/rgba"
)

var (
	errNoIndexed = errors.New("tile: no indexed data in tile")

	// ErrUnsupportedDepth is returned when a mode has no native tile
	// format at the requested depth.
	ErrUnsupportedDepth = errors.New("tile: unsupported depth for mode")
)

// Tile is one fixed-size cell of pixel data. The RGBA content is always
// present; indexed content and its owning subpalette are populated when
// the tile was produced by quantization against a palette.
type Tile struct {
	width, height int
	pixels        []rgba.Color
	indexed       []uint8
	subpalette    int
}

// New returns a tile of the given dimensions. pixels must hold exactly
// width*height entries in row-major order.
func New(width, height int, pixels []rgba.Color) (*Tile, error) {
	if len(pixels) != width*height {
		return nil, fmt.Errorf("tile: have %d pixels, want %d", len(pixels), width*height)
	}
	return &Tile{
		width:  width,
		height: height,
		pixels: pixels,
	}, nil
}

// NewIndexed returns a tile carrying both RGBA content and the palette
// indices it maps to against subpalette number subpalette.
func NewIndexed(width, height int, pixels []rgba.Color, indexed []uint8, subpalette int) (*Tile, error) {
	t, err := New(width, height, pixels)
	if err != nil {
		return nil, err
	}
	if len(indexed) != width*height {
		return nil, fmt.Errorf("tile: have %d indices, want %d", len(indexed), width*height)
	}
	t.indexed = indexed
	t.subpalette = subpalette
	return t, nil
}

// Width returns the tile width in pixels.
func (t *Tile) Width() int { return t.width }

// Height returns the tile height in pixels.
func (t *Tile) Height() int { return t.height }

// RGBAData returns the tile's pixels in row-major order.
func (t *Tile) RGBAData() []rgba.Color { return t.pixels }

// IndexedData returns the tile's palette indices, or an error if the tile
// carries none.
func (t *Tile) IndexedData() ([]uint8, error) {
	if t.indexed == nil {
		return nil, errNoIndexed
	}
	return t.indexed, nil
}

// Subpalette returns the subpalette the indexed content maps against.
func (t *Tile) Subpalette() int { return t.subpalette }

// Ref records where an added tile landed in a Tileset: the index of the
// stored tile, and the mirroring to apply to it to reproduce the added
// content.
type Ref struct {
	Index        int
	HFlip, VFlip bool
}

// Tileset is an ordered collection of uniformly-sized tiles.
type Tileset struct {
	tileWidth  int
	tileHeight int
	dedupe     bool
	flips      bool
	tiles      []*Tile
	seen       map[string]Ref
}

// NewTileset returns an empty tileset for tiles of the given dimensions.
// With dedupe set, content already in the set is not stored again; with
// flips additionally set, mirrored duplicates share the original's slot.
func NewTileset(tileWidth, tileHeight int, dedupe, flips bool) *Tileset {
	return &Tileset{
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
		dedupe:     dedupe,
		flips:      flips,
		seen:       make(map[string]Ref),
	}
}

// TileWidth returns the width in pixels of every tile in the set.
func (ts *Tileset) TileWidth() int { return ts.tileWidth }

// TileHeight returns the height in pixels of every tile in the set.
func (ts *Tileset) TileHeight() int { return ts.tileHeight }

// Size returns the number of stored tiles.
func (ts *Tileset) Size() int { return len(ts.tiles) }

// Tiles returns the stored tiles in insertion order.
func (ts *Tileset) Tiles() []*Tile { return ts.tiles }

// Add stores t and returns where it landed. With dedupe enabled, content
// already present exactly, or mirrored when flip matching is on, maps onto
// the existing tile instead of growing the set.
func (ts *Tileset) Add(t *Tile) (Ref, error) {
	if t.width != ts.tileWidth || t.height != ts.tileHeight {
		return Ref{}, fmt.Errorf("tile: %dx%d tile in %dx%d tileset", t.width, t.height, ts.tileWidth, ts.tileHeight)
	}

	if ts.dedupe {
		if ref, ok := ts.seen[key(t.pixels)]; ok {
			return ref, nil
		}
	}

	ref := Ref{Index: len(ts.tiles)}
	ts.tiles = append(ts.tiles, t)

	if ts.dedupe {
		ts.seen[key(t.pixels)] = ref
		if ts.flips {
			for _, o := range [...]Ref{
				{Index: ref.Index, HFlip: true},
				{Index: ref.Index, VFlip: true},
				{Index: ref.Index, HFlip: true, VFlip: true},
			} {
				k := key(flip(t.pixels, t.width, t.height, o.HFlip, o.VFlip))
				if _, ok := ts.seen[k]; !ok {
					ts.seen[k] = o
				}
			}
		}
	}

	return ref, nil
}

func key(pixels []rgba.Color) string {
	return string(rgba.Bytes(pixels))
}

// flip mirrors pixels horizontally and/or vertically.
func flip(pixels []rgba.Color, width, height int, hflip, vflip bool) []rgba.Color {
	out := make([]rgba.Color, len(pixels))
	for y := 0; y < height; y++ {
		sy := y
		if vflip {
			sy = height - 1 - y
		}
		for x := 0; x < width; x++ {
			sx := x
			if hflip {
				sx = width - 1 - x
			}
			out[y*width+x] = pixels[sy*width+sx]
		}
	}
	return out
}
