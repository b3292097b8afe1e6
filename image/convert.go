package image

import (
	"fmt"

	"github.com/bodgit/retrogfx/palette"
	"github.com/bodgit/retrogfx/rgba"
	"github.com/bodgit/retrogfx/tile"
)

// Atlas images are always this many pixels wide.
const atlasWidth = 128

// FromPalette renders p as a swatch grid, one row per subpalette and one
// column per color. Unused columns in a short row stay transparent.
func FromPalette(p *palette.Palette) (*Image, error) {
	v := p.NormalizedColors()
	if len(v) == 0 || len(v[0]) == 0 {
		return nil, ErrEmptyPalette
	}

	m := New(p.MaxColorsPerSubpalette(), len(v))
	for y, row := range v {
		for x, c := range row {
			m.SetPixel(c, x, y)
			m.palette = append(m.palette, c)
		}
	}

	return m, nil
}

// FromTileset composes the tileset into an atlas, tiles placed left to
// right then top to bottom in index order. Unoccupied cells stay
// transparent.
func FromTileset(ts *tile.Tileset) *Image {
	perRow := (atlasWidth + ts.TileWidth() - 1) / ts.TileWidth()
	rows := (ts.Size() + perRow - 1) / perRow

	m := New(atlasWidth, rows*ts.TileHeight())
	for i, t := range ts.Tiles() {
		m.Blit(t.RGBAData(), i%perRow*ts.TileWidth(), i/perRow*ts.TileHeight(), ts.TileWidth())
	}

	return m
}

// Quantize maps every pixel onto the subpalette s, returning a new image
// of the same dimensions carrying both pixel and indexed data. Each pixel
// is reduced and normalized for the subpalette's mode and then looked up
// exactly; fully transparent pixels map to index 0. A color missing from
// s, even after reduction, is fatal.
func (m *Image) Quantize(s *palette.Subpalette) (*Image, error) {
	colors := s.Colors()
	if len(colors) == 0 {
		return nil, ErrEmptyPalette
	}

	out := New(m.width, m.height)
	out.palette = append([]rgba.Color(nil), colors...)
	out.indexed = make([]uint8, len(m.pixels))

	for i, c := range m.pixels {
		n := rgba.Normalize(rgba.Reduce(c, s.Mode()), s.Mode())
		if n == rgba.Transparent {
			out.pixels[i] = rgba.Transparent
			continue
		}

		j := s.IndexOf(n)
		if j == -1 {
			return nil, fmt.Errorf("%w: %s", ErrColorNotInPalette, n)
		}

		out.indexed[i] = uint8(j)
		out.pixels[i] = colors[j]
	}

	return out, nil
}
