/*
Package rgba implements the packed 32-bit color value shared by all of the
console graphics formats, along with the per-console color reduction used
to map arbitrary colors onto hardware palette entries.

A Color packs the four 8-bit channels with red in the least significant
byte, matching the byte order of a flat RGBA pixel buffer. The zero value
is the reserved Transparent sentinel.
*/
package rgba

import (
	"fmt"
	"image/color"
)

// Color is a packed 32-bit RGBA value with R in the low byte.
type Color uint32

// Transparent is the reserved sentinel denoting "no color". It doubles as
// the backdrop entry on consoles where palette slot 0 is never drawn.
const Transparent Color = 0

// FromRGBA packs the four 8-bit channels into a Color.
func FromRGBA(r, g, b, a uint8) Color {
	return Color(uint32(r) | uint32(g)<<8 | uint32(b)<<16 | uint32(a)<<24)
}

// FromColor converts any color.Color to a Color, keeping the channels
// non-premultiplied.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return FromRGBA(n.R, n.G, n.B, n.A)
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c >> 16) }

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}.RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R(), c.G(), c.B(), c.A())
}

// Colors unpacks a flat RGBA byte buffer, 4 bytes per pixel, into packed
// colors. Any trailing partial pixel is ignored.
func Colors(pix []byte) []Color {
	colors := make([]Color, len(pix)/4)
	for i := range colors {
		colors[i] = FromRGBA(pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3])
	}
	return colors
}

// Bytes packs colors into a flat RGBA byte buffer, the inverse of Colors.
func Bytes(colors []Color) []byte {
	pix := make([]byte, len(colors)*4)
	for i, c := range colors {
		pix[i*4+0] = c.R()
		pix[i*4+1] = c.G()
		pix[i*4+2] = c.B()
		pix[i*4+3] = c.A()
	}
	return pix
}
