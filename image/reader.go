package image

import (
	"errors"
	"image"
	"image/draw"
	_ "image/png" // always registered, other formats are up to the caller
	"io"

	"github.com/bodgit/retrogfx/rgba"
)

var errBadPalette = errors.New("image: invalid palette index")

// Decode reads an image in any registered format from r. A paletted
// source keeps its palette and index data, anything else is converted to
// plain RGBA pixels.
func Decode(r io.Reader) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(src)
}

// FromImage converts an already decoded image.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	m := New(b.Dx(), b.Dy())

	switch src := src.(type) {
	case *image.Paletted:
		m.palette = make([]rgba.Color, len(src.Palette))
		for i, c := range src.Palette {
			m.palette[i] = rgba.FromColor(c)
		}

		m.indexed = make([]uint8, m.width*m.height)
		for y := 0; y < m.height; y++ {
			row := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(m.indexed[y*m.width:(y+1)*m.width], src.Pix[row:row+m.width])
		}

		for i, idx := range m.indexed {
			if int(idx) >= len(m.palette) {
				return nil, errBadPalette
			}
			m.pixels[i] = m.palette[idx]
		}
	case *image.NRGBA:
		for y := 0; y < m.height; y++ {
			row := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(m.pixels[y*m.width:], rgba.Colors(src.Pix[row:row+m.width*4]))
		}
	default:
		// Second pass converting to 8-bit RGBA
		dst := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
		draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
		copy(m.pixels, rgba.Colors(dst.Pix))
	}

	return m, nil
}
