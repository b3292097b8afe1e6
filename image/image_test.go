package image

import (
	"testing"

	"github.com/bodgit/retrogfx/rgba"
	"github.com/stretchr/testify/assert"
)

var (
	red    = rgba.FromRGBA(0xff, 0x00, 0x00, 0xff)
	green  = rgba.FromRGBA(0x00, 0xff, 0x00, 0xff)
	blue   = rgba.FromRGBA(0x00, 0x00, 0xff, 0xff)
	yellow = rgba.FromRGBA(0xff, 0xff, 0x00, 0xff)
)

// grid returns a width by height image where the pixel at (x, y) encodes
// its own coordinates, handy for verifying copies.
func grid(width, height int) *Image {
	m := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.SetPixel(rgba.FromRGBA(uint8(x), uint8(y), 0x00, 0xff), x, y)
		}
	}
	return m
}

func at(m *Image, x, y int) rgba.Color {
	return m.RGBAData()[y*m.Width()+x]
}

func TestNew(t *testing.T) {
	t.Parallel()

	m := New(4, 2)

	assert.Equal(t, 4, m.Width())
	assert.Equal(t, 2, m.Height())
	assert.Len(t, m.RGBAData(), 8)
	assert.Equal(t, 0, m.PaletteSize())
	assert.Nil(t, m.Palette())

	for _, c := range m.RGBAData() {
		assert.Equal(t, rgba.Transparent, c)
	}

	_, err := m.IndexedData()
	assert.ErrorIs(t, err, ErrNoIndexedData)
}

func TestSetPixel(t *testing.T) {
	t.Parallel()

	m := New(4, 4)

	m.SetPixel(red, 1, 2)
	assert.Equal(t, red, at(m, 1, 2))

	// out of range writes are dropped without error
	m.SetPixel(green, 0, -1)
	m.SetPixel(green, 0, 4)
	for _, c := range m.RGBAData() {
		assert.NotEqual(t, green, c)
	}

	// a column past the row width lands at the computed offset, which
	// wraps into the next row
	m.SetPixel(blue, 5, 0)
	assert.Equal(t, blue, at(m, 1, 1))
}

func TestSetPixelOffset(t *testing.T) {
	t.Parallel()

	m := New(2, 2)

	m.SetPixelOffset(red, 3)
	assert.Equal(t, red, at(m, 1, 1))

	m.SetPixelOffset(green, -1)
	m.SetPixelOffset(green, 4)
	for _, c := range m.RGBAData() {
		assert.NotEqual(t, green, c)
	}
}

func TestBlit(t *testing.T) {
	t.Parallel()

	m := New(4, 4)

	m.Blit([]rgba.Color{red, green, blue, yellow}, 1, 2, 2)

	assert.Equal(t, red, at(m, 1, 2))
	assert.Equal(t, green, at(m, 2, 2))
	assert.Equal(t, blue, at(m, 1, 3))
	assert.Equal(t, yellow, at(m, 2, 3))
}

func TestBlitClipped(t *testing.T) {
	t.Parallel()

	m := New(4, 4)

	// second source row falls below the image and is dropped
	m.Blit([]rgba.Color{red, green, blue, yellow}, 0, 3, 2)

	assert.Equal(t, red, at(m, 0, 3))
	assert.Equal(t, green, at(m, 1, 3))

	for _, c := range m.RGBAData() {
		assert.NotEqual(t, blue, c)
		assert.NotEqual(t, yellow, c)
	}
}

func TestBlitZeroWidth(t *testing.T) {
	t.Parallel()

	m := New(4, 4)
	m.Blit([]rgba.Color{red}, 0, 0, 0)

	assert.Equal(t, rgba.Transparent, at(m, 0, 0))
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "4x2px", New(4, 2).String())
}
