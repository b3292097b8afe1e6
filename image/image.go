/*
Package image implements the in-memory image the conversion pipeline works
on.

An Image always owns a flat row-major pixel buffer of packed RGBA colors.
Images produced by quantization, or decoded from an indexed source, carry a
parallel buffer of 8-bit palette indices and the palette they refer to;
index 0 is reserved for the transparent color. Pixel writes never update
the indexed data, so it reflects the image as constructed.
*/
package image

import (
	"errors"
	"fmt"

	"github.com/bodgit/retrogfx/rgba"
)

var (
	// ErrEmptyPalette is returned when constructing from a palette or
	// subpalette with no colors.
	ErrEmptyPalette = errors.New("image: empty palette")

	// ErrColorNotInPalette is returned when quantization meets a color
	// that is absent from the target subpalette even after reduction.
	ErrColorNotInPalette = errors.New("image: color not in palette")

	// ErrNoIndexedData is returned when indexed data is requested from
	// an image that carries none.
	ErrNoIndexedData = errors.New("image: no indexed data")
)

// Image is a fixed-size grid of packed RGBA pixels with optional parallel
// indexed data.
type Image struct {
	width, height int
	pixels        []rgba.Color
	indexed       []uint8
	palette       []rgba.Color
}

// New returns a fully transparent width by height image.
func New(width, height int) *Image {
	return &Image{
		width:  width,
		height: height,
		pixels: make([]rgba.Color, width*height),
	}
}

// Width returns the image width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the image height in pixels.
func (m *Image) Height() int { return m.height }

// PaletteSize returns the number of colors in the image's palette, zero
// when it has none.
func (m *Image) PaletteSize() int { return len(m.palette) }

// Palette returns the image's palette, nil when it has none.
func (m *Image) Palette() []rgba.Color { return m.palette }

// RGBAData returns the image's pixels in row-major order.
func (m *Image) RGBAData() []rgba.Color { return m.pixels }

// IndexedData returns the image's palette indices, or an error if it
// carries none.
func (m *Image) IndexedData() ([]uint8, error) {
	if m.indexed == nil {
		return nil, ErrNoIndexedData
	}
	return m.indexed, nil
}

// SetPixel writes c at (x, y). Writes whose computed offset falls outside
// the pixel buffer are silently dropped. Indexed data, if any, is not
// updated.
func (m *Image) SetPixel(c rgba.Color, x, y int) {
	m.SetPixelOffset(c, y*m.width+x)
}

// SetPixelOffset writes c at the row-major offset i, subject to the same
// rules as SetPixel.
func (m *Image) SetPixelOffset(c rgba.Color, i int) {
	if i < 0 || i >= len(m.pixels) {
		return
	}
	m.pixels[i] = c
}

// Blit copies src onto the image at origin (x, y), treating src as rows of
// the given width. Destination pixels outside the buffer are silently
// dropped.
func (m *Image) Blit(src []rgba.Color, x, y, width int) {
	if width < 1 {
		return
	}
	for i, c := range src {
		m.SetPixel(c, x+i%width, y+i/width)
	}
}

func (m *Image) String() string {
	if m.palette != nil {
		return fmt.Sprintf("%dx%dpx, %d colors", m.width, m.height, len(m.palette))
	}
	return fmt.Sprintf("%dx%dpx", m.width, m.height)
}
