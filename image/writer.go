package image

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/bodgit/retrogfx/rgba"
)

// Encode writes m to w as an RGBA PNG, regardless of whether the image
// carries indexed data.
func Encode(w io.Writer, m *Image) error {
	return png.Encode(w, &image.NRGBA{
		Pix:    rgba.Bytes(m.pixels),
		Stride: m.width * 4,
		Rect:   image.Rect(0, 0, m.width, m.height),
	})
}

// Save writes the image to path as a PNG file.
func (m *Image) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, m); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
