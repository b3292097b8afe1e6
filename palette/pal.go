package palette

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bodgit/retrogfx/rgba"

	"golang.org/x/image/riff"
)

// Microsoft RIFF PAL document: a "PAL " form holding LOGPALETTE "data"
// chunks of version 0x0300 with one four byte RGB entry per color.
const palVersion = 0x0300

var (
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// DecodePal reads a RIFF PAL document from r and returns the colors of
// every data chunk in document order. PAL entries carry no alpha so every
// color is opaque.
func DecodePal(r io.Reader) ([]rgba.Color, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, err
	}
	if formType != palType {
		return nil, fmt.Errorf("palette: unsupported RIFF form %q", formType[:])
	}

	var colors []rgba.Color
	for {
		id, _, data, err := rd.Next()
		if err == io.EOF {
			return colors, nil
		}
		if err != nil {
			return nil, err
		}
		if id != dataType {
			continue
		}

		var hdr struct {
			Version uint16
			Count   uint16
		}
		if err := binary.Read(data, binary.LittleEndian, &hdr); err != nil {
			return nil, err
		}
		if hdr.Version != palVersion {
			return nil, fmt.Errorf("palette: unsupported PAL version %#04x", hdr.Version)
		}

		entry := make([]byte, 4)
		for i := 0; i < int(hdr.Count); i++ {
			if _, err := io.ReadFull(data, entry); err != nil {
				return nil, err
			}
			colors = append(colors, rgba.FromRGBA(entry[0], entry[1], entry[2], 0xff))
		}
	}
}

// EncodePal writes colors to w as a RIFF PAL document with a single data
// chunk. Alpha is not representable and is dropped.
func EncodePal(w io.Writer, colors []rgba.Color) error {
	chunk := 4 + len(colors)*4

	b := new(bytes.Buffer)
	b.WriteString("RIFF")
	binary.Write(b, binary.LittleEndian, uint32(4+8+chunk))
	b.Write(palType[:])
	b.Write(dataType[:])
	binary.Write(b, binary.LittleEndian, uint32(chunk))
	binary.Write(b, binary.LittleEndian, uint16(palVersion))
	binary.Write(b, binary.LittleEndian, uint16(len(colors)))
	for _, c := range colors {
		b.Write([]byte{c.R(), c.G(), c.B(), 0x00})
	}

	_, err := w.Write(b.Bytes())
	return err
}

// ReadPal populates the palette from a RIFF PAL document, splitting the
// colors into rows of the palette's size.
func (p *Palette) ReadPal(r io.Reader) error {
	colors, err := DecodePal(r)
	if err != nil {
		return err
	}

	for len(colors) > 0 {
		n := p.colorsPer
		if n > len(colors) {
			n = len(colors)
		}
		if err := p.AddSubpalette(colors[:n]); err != nil {
			return err
		}
		colors = colors[n:]
	}

	return nil
}

// WritePal writes every row to w as one RIFF PAL document.
func (p *Palette) WritePal(w io.Writer) error {
	var colors []rgba.Color
	for _, s := range p.subpalettes {
		colors = append(colors, s.Colors()...)
	}

	return EncodePal(w, colors)
}
