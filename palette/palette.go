/*
Package palette manages console palettes divided into fixed-size
subpalettes.

A Palette is built either row by row from explicit colors or by packing
per-tile color sets with AddColorSets, which distributes the sets over as
few rows as possible. Slot 0 of every packed row is reserved for the
transparent color.
*/
package palette

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/bodgit/retrogfx/rgba"
)

var (
	// ErrTooManyColors is returned when a color set cannot fit in a
	// single subpalette.
	ErrTooManyColors = errors.New("palette: too many colors for subpalette")

	// ErrTooManySubpalettes is returned when the packed color sets need
	// more rows than the palette allows.
	ErrTooManySubpalettes = errors.New("palette: too many subpalettes")

	// ErrNoSubpalette is returned when no row holds all wanted colors.
	ErrNoSubpalette = errors.New("palette: no subpalette holds all colors")
)

// Subpalette is one hardware palette row.
type Subpalette struct {
	mode     rgba.Mode
	capacity int
	colors   []rgba.Color
}

// NewSubpalette returns an empty row holding at most capacity colors.
func NewSubpalette(m rgba.Mode, capacity int) *Subpalette {
	return &Subpalette{
		mode:     m,
		capacity: capacity,
		colors:   make([]rgba.Color, 0, capacity),
	}
}

// Add reduces and normalizes c for the row's mode and appends it unless
// already present.
func (s *Subpalette) Add(c rgba.Color) error {
	n := rgba.Normalize(rgba.Reduce(c, s.mode), s.mode)
	if s.IndexOf(n) != -1 {
		return nil
	}
	if len(s.colors) >= s.capacity {
		return ErrTooManyColors
	}
	s.colors = append(s.colors, n)
	return nil
}

// Mode returns the console mode the row's colors are reduced to.
func (s *Subpalette) Mode() rgba.Mode { return s.mode }

// Size returns the number of colors in the row.
func (s *Subpalette) Size() int { return len(s.colors) }

// Capacity returns the maximum number of colors the row can hold.
func (s *Subpalette) Capacity() int { return s.capacity }

// Colors returns the row's colors in index order.
func (s *Subpalette) Colors() []rgba.Color { return s.colors }

// IndexOf returns the position of the first entry equal to c, or -1. Rows
// store normalized colors, so c must be normalized to match.
func (s *Subpalette) IndexOf(c rgba.Color) int {
	for i, have := range s.colors {
		if have == c {
			return i
		}
	}
	return -1
}

// Contains reports whether every color in set is present in the row.
func (s *Subpalette) Contains(set []rgba.Color) bool {
	for _, c := range set {
		if s.IndexOf(c) == -1 {
			return false
		}
	}
	return true
}

// Palette is an ordered set of subpalettes for one console mode. It
// implements the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// interfaces using the console's native color format.
type Palette struct {
	mode           rgba.Mode
	maxSubpalettes int
	colorsPer      int
	subpalettes    []*Subpalette
}

// New returns an empty palette of at most maxSubpalettes rows of
// colorsPerSubpalette colors each.
func New(m rgba.Mode, maxSubpalettes, colorsPerSubpalette int) *Palette {
	return &Palette{
		mode:           m,
		maxSubpalettes: maxSubpalettes,
		colorsPer:      colorsPerSubpalette,
	}
}

// NewForMode returns an empty palette with the conventional geometry for
// the mode at the given depth.
func NewForMode(m rgba.Mode, bpp int) *Palette {
	n, c := DefaultLayout(m, bpp)
	return New(m, n, c)
}

// DefaultLayout returns the conventional palette geometry for the mode at
// the given depth: the number of subpalettes and the colors per
// subpalette.
func DefaultLayout(m rgba.Mode, bpp int) (int, int) {
	colors := 1 << uint(bpp)
	switch m {
	case rgba.GB:
		return 1, 4
	case rgba.GBC:
		return 8, 4
	case rgba.MD:
		return 4, 16
	case rgba.SMS, rgba.GG:
		return 2, 16
	case rgba.PCE, rgba.GBA:
		if colors >= 256 {
			return 1, 256
		}
		return 16, colors
	default:
		if colors >= 256 {
			return 1, 256
		}
		return 8, colors
	}
}

// Mode returns the console mode the palette's colors are reduced to.
func (p *Palette) Mode() rgba.Mode { return p.mode }

// MaxColorsPerSubpalette returns the row size.
func (p *Palette) MaxColorsPerSubpalette() int { return p.colorsPer }

// Size returns the number of rows in use.
func (p *Palette) Size() int { return len(p.subpalettes) }

// Subpalettes returns the rows in order.
func (p *Palette) Subpalettes() []*Subpalette { return p.subpalettes }

// NormalizedColors returns each row's colors in index order.
func (p *Palette) NormalizedColors() [][]rgba.Color {
	out := make([][]rgba.Color, len(p.subpalettes))
	for i, s := range p.subpalettes {
		out[i] = s.Colors()
	}
	return out
}

// AddSubpalette appends a row holding the given colors, reduced and
// normalized for the palette's mode.
func (p *Palette) AddSubpalette(colors []rgba.Color) error {
	if len(p.subpalettes) >= p.maxSubpalettes {
		return ErrTooManySubpalettes
	}
	s := NewSubpalette(p.mode, p.colorsPer)
	for _, c := range colors {
		if err := s.Add(c); err != nil {
			return err
		}
	}
	p.subpalettes = append(p.subpalettes, s)
	return nil
}

// prepare reduces and normalizes set, dropping the transparent color and
// any duplicates.
func (p *Palette) prepare(set []rgba.Color) []rgba.Color {
	seen := make(map[rgba.Color]struct{}, len(set))
	out := make([]rgba.Color, 0, len(set))
	for _, c := range set {
		n := rgba.Normalize(rgba.Reduce(c, p.mode), p.mode)
		if n == rgba.Transparent {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// AddColorSets distributes per-tile color sets over the palette's rows,
// biggest sets first. A set joins the first row it fits into, otherwise a
// new row is opened; the search backtracks when a choice leaves a later
// set unplaceable. Slot 0 of every row is reserved for the transparent
// color.
func (p *Palette) AddColorSets(sets [][]rgba.Color) error {
	capacity := p.colorsPer - 1

	prepared := make([][]rgba.Color, 0, len(sets))
	for _, set := range sets {
		out := p.prepare(set)
		if len(out) > capacity {
			return ErrTooManyColors
		}
		if len(out) > 0 {
			prepared = append(prepared, out)
		}
	}
	if len(prepared) == 0 {
		return nil
	}

	sort.SliceStable(prepared, func(i, j int) bool {
		return len(prepared[i]) > len(prepared[j])
	})

	bins, ok := pack(prepared, nil, capacity, p.maxSubpalettes-len(p.subpalettes))
	if !ok {
		return ErrTooManySubpalettes
	}

	for _, bin := range bins {
		s := NewSubpalette(p.mode, p.colorsPer)
		s.colors = append(s.colors, rgba.Transparent)
		s.colors = append(s.colors, bin...)
		p.subpalettes = append(p.subpalettes, s)
	}

	return nil
}

// Variation of the bin packing problem: at most maxBins bins each with the
// given capacity. Based on the First Fit Decreasing algorithm with
// backtracking; relies on the incoming sets being sorted in decreasing
// size.
func pack(in, out [][]rgba.Color, capacity, maxBins int) ([][]rgba.Color, bool) {
	switch {
	case len(out) > maxBins:
		return nil, false
	case len(in) == 0:
		return out, true
	case len(out) == 0: // First step, use the first (biggest) set
		return pack(in[1:], append(out, in[0]), capacity, maxBins)
	default:
		// Loop over each current bin
		for i := range out {
			d := difference(out[i], in[0])

			// Either the set is a subset of this bin or the
			// difference still fits
			if len(d) == 0 || len(out[i])+len(d) <= capacity {
				dup := append(out[:0:0], out...)
				if len(d) > 0 {
					dup[i] = append(dup[i][:len(dup[i]):len(dup[i])], d...)
				}
				if ret, ok := pack(in[1:], dup, capacity, maxBins); ok {
					return ret, true
				}
			}
		}
		// Last resort, start a new bin
		return pack(in[1:], append(out, in[0]), capacity, maxBins)
	}
}

// difference returns the colors in set that are absent from bin.
func difference(bin, set []rgba.Color) (d []rgba.Color) {
	m := make(map[rgba.Color]struct{}, len(bin))
	for _, c := range bin {
		m[c] = struct{}{}
	}
	for _, c := range set {
		if _, ok := m[c]; !ok {
			d = append(d, c)
		}
	}
	return
}

// BestSubpalette returns the first row holding every color in set, after
// reducing and normalizing, along with its position.
func (p *Palette) BestSubpalette(set []rgba.Color) (int, *Subpalette, error) {
	needed := p.prepare(set)
	for i, s := range p.subpalettes {
		if s.Contains(needed) {
			return i, s, nil
		}
	}
	return 0, nil, ErrNoSubpalette
}

// MarshalBinary encodes every row, padded to the row size, into the
// console's native color format and returns the result.
func (p *Palette) MarshalBinary() ([]byte, error) {
	size := rgba.NativeSize(p.mode)

	b := new(bytes.Buffer)
	for _, s := range p.subpalettes {
		for _, c := range s.colors {
			if _, err := b.Write(rgba.PackNative(c, p.mode)); err != nil {
				return nil, err
			}
		}
		if _, err := b.Write(make([]byte, (p.colorsPer-len(s.colors))*size)); err != nil {
			return nil, err
		}
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes rows of native colors, one row size at a time.
// Native color formats carry no alpha, so every decoded color is opaque.
func (p *Palette) UnmarshalBinary(b []byte) error {
	size := rgba.NativeSize(p.mode)
	row := p.colorsPer * size

	if len(b) == 0 || len(b)%row != 0 {
		return fmt.Errorf("palette: length %d is not a multiple of %d", len(b), row)
	}
	if len(b)/row > p.maxSubpalettes {
		return ErrTooManySubpalettes
	}

	p.subpalettes = nil
	for off := 0; off < len(b); off += row {
		s := NewSubpalette(p.mode, p.colorsPer)
		for i := 0; i < p.colorsPer; i++ {
			s.colors = append(s.colors, rgba.UnpackNative(b[off+i*size:off+(i+1)*size], p.mode))
		}
		p.subpalettes = append(p.subpalettes, s)
	}

	return nil
}
