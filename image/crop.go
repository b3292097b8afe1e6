package image

import "github.com/bodgit/retrogfx/rgba"

// Crop returns a new width by height image holding the region of m with
// origin (x, y). The result is pre-filled with the transparent color, so
// any part of the region outside m stays transparent. Indexed data, when
// present, is cropped the same way and the palette carries over.
func (m *Image) Crop(x, y, width, height int) *Image {
	out := New(width, height)
	out.palette = m.palette

	if m.indexed != nil {
		out.indexed = make([]uint8, width*height)
	}

	// Entirely outside, keep the transparent fill
	if x < 0 || y < 0 || x > m.width || y > m.height {
		return out
	}

	blitWidth := width
	if m.width-x < blitWidth {
		blitWidth = m.width - x
	}
	blitHeight := height
	if m.height-y < blitHeight {
		blitHeight = m.height - y
	}

	for row := 0; row < blitHeight; row++ {
		src := (y+row)*m.width + x
		dst := row * width
		copy(out.pixels[dst:dst+blitWidth], m.pixels[src:src+blitWidth])
		if m.indexed != nil {
			copy(out.indexed[dst:dst+blitWidth], m.indexed[src:src+blitWidth])
		}
	}

	return out
}

// Crops splits the image into tile sized crops, left to right then top to
// bottom. Crops straddling the right or bottom edge are transparent
// padded.
func (m *Image) Crops(tileWidth, tileHeight int) []*Image {
	if tileWidth < 1 || tileHeight < 1 {
		return nil
	}

	var out []*Image
	for y := 0; y < m.height; y += tileHeight {
		for x := 0; x < m.width; x += tileWidth {
			out = append(out, m.Crop(x, y, tileWidth, tileHeight))
		}
	}
	return out
}

// RGBACrops returns the pixel data of every tile sized crop.
func (m *Image) RGBACrops(tileWidth, tileHeight int) [][]rgba.Color {
	crops := m.Crops(tileWidth, tileHeight)
	out := make([][]rgba.Color, len(crops))
	for i, c := range crops {
		out[i] = c.pixels
	}
	return out
}

// IndexedCrops returns the indexed data of every tile sized crop, or an
// error if the image carries no indexed data.
func (m *Image) IndexedCrops(tileWidth, tileHeight int) ([][]uint8, error) {
	if m.indexed == nil {
		return nil, ErrNoIndexedData
	}

	crops := m.Crops(tileWidth, tileHeight)
	out := make([][]uint8, len(crops))
	for i, c := range crops {
		out[i] = c.indexed
	}
	return out, nil
}
