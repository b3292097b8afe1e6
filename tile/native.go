package tile

import (
	"fmt"

	"github.com/bodgit/retrogfx/rgba"
)

// DefaultDepth returns the usual bits per pixel for tiles on the given
// console.
func DefaultDepth(m rgba.Mode) int {
	switch m {
	case rgba.GB, rgba.GBC:
		return 2
	default:
		return 4
	}
}

// NativeData packs the tile's indexed pixels into the console's native
// character format at the given depth. Planar formats require the tile to
// be eight pixels wide.
func (t *Tile) NativeData(m rgba.Mode, bpp int) ([]byte, error) {
	if t.indexed == nil {
		return nil, errNoIndexed
	}

	switch m {
	case rgba.SNES:
		switch bpp {
		case 2, 4, 8:
			return t.planar(bpp)
		}
	case rgba.GB, rgba.GBC:
		if bpp == 2 {
			return t.planar(bpp)
		}
	case rgba.PCE:
		if bpp == 4 {
			return t.planar(bpp)
		}
	case rgba.SMS, rgba.GG:
		if bpp == 4 {
			return t.rowPlanar(bpp)
		}
	case rgba.MD:
		if bpp == 4 {
			return t.nibbles(false)
		}
	case rgba.GBA:
		switch bpp {
		case 4:
			return t.nibbles(true)
		case 8:
			out := make([]byte, len(t.indexed))
			copy(out, t.indexed)
			return out, nil
		}
	}

	return nil, ErrUnsupportedDepth
}

// planar packs rows a bitplane pair at a time, the layout shared by SNES,
// Game Boy and PC Engine characters.
func (t *Tile) planar(bpp int) ([]byte, error) {
	if t.width != 8 {
		return nil, fmt.Errorf("tile: planar packing needs 8 pixel wide tiles, have %d", t.width)
	}

	out := make([]byte, 0, t.height*bpp)
	for plane := 0; plane < bpp; plane += 2 {
		for y := 0; y < t.height; y++ {
			var lo, hi byte
			for x := 0; x < t.width; x++ {
				px := t.indexed[y*t.width+x]
				lo = lo<<1 | px>>uint(plane)&1
				hi = hi<<1 | px>>uint(plane+1)&1
			}
			out = append(out, lo, hi)
		}
	}

	return out, nil
}

// rowPlanar packs all bitplanes of each row together, the Master System
// and Game Gear layout.
func (t *Tile) rowPlanar(bpp int) ([]byte, error) {
	if t.width != 8 {
		return nil, fmt.Errorf("tile: planar packing needs 8 pixel wide tiles, have %d", t.width)
	}

	out := make([]byte, 0, t.height*bpp)
	for y := 0; y < t.height; y++ {
		for plane := 0; plane < bpp; plane++ {
			var b byte
			for x := 0; x < t.width; x++ {
				b = b<<1 | t.indexed[y*t.width+x]>>uint(plane)&1
			}
			out = append(out, b)
		}
	}

	return out, nil
}

// nibbles packs two pixels per byte. The Mega Drive puts the leftmost
// pixel in the high nibble, the GBA in the low one.
func (t *Tile) nibbles(little bool) ([]byte, error) {
	if t.width&1 != 0 {
		return nil, fmt.Errorf("tile: nibble packing needs even width, have %d", t.width)
	}

	out := make([]byte, len(t.indexed)/2)
	for i := range out {
		if little {
			out[i] = t.indexed[i*2]&0x0f | t.indexed[i*2+1]&0x0f<<4
		} else {
			out[i] = t.indexed[i*2]&0x0f<<4 | t.indexed[i*2+1]&0x0f
		}
	}

	return out, nil
}

// NativeData packs every tile in the set, in insertion order, into the
// console's native character format.
func (ts *Tileset) NativeData(m rgba.Mode, bpp int) ([]byte, error) {
	out := make([]byte, 0, len(ts.tiles)*ts.tileWidth*ts.tileHeight*bpp/8)
	for _, t := range ts.tiles {
		b, err := t.NativeData(m, bpp)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	return out, nil
}
