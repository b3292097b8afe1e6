/*
Package tilemap implements console tilemaps: grids of entries referring to
tiles in a tileset, each with an owning subpalette and mirroring flags.
*/
package tilemap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/bodgit/retrogfx/rgba"
	"github.com/bodgit/retrogfx/tile"
)

const maxEntries = 1024

// ErrEntryRange is returned when an entry cannot be represented in the
// map's native format, either because a field exceeds its bit width or
// because the console has no such feature.
var ErrEntryRange = errors.New("tilemap: entry not representable")

// Entry is one tilemap cell.
type Entry struct {
	Tile       int
	Subpalette int
	HFlip      bool
	VFlip      bool
	Priority   bool
}

// Map is a width by height grid of entries for one console mode. It
// implements the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// interfaces using the console's native tilemap format.
type Map struct {
	mode          rgba.Mode
	width, height int
	entries       []Entry
}

// New returns an empty width by height map.
func New(mode rgba.Mode, width, height int) *Map {
	return &Map{
		mode:    mode,
		width:   width,
		height:  height,
		entries: make([]Entry, width*height),
	}
}

// FromRefs builds a map from tileset placements in row-major order, the
// shape Tileset.Add hands back, pairing each with the subpalette its tile
// maps against. A nil subpalettes leaves every entry on subpalette 0; the
// final row is padded with empty entries when refs does not fill it.
func FromRefs(mode rgba.Mode, width int, refs []tile.Ref, subpalettes []int) (*Map, error) {
	if width < 1 {
		return nil, fmt.Errorf("tilemap: invalid width %d", width)
	}
	if subpalettes != nil && len(subpalettes) != len(refs) {
		return nil, fmt.Errorf("tilemap: have %d subpalettes, want %d", len(subpalettes), len(refs))
	}

	m := New(mode, width, (len(refs)+width-1)/width)
	for i, r := range refs {
		e := Entry{Tile: r.Index, HFlip: r.HFlip, VFlip: r.VFlip}
		if subpalettes != nil {
			e.Subpalette = subpalettes[i]
		}
		m.entries[i] = e
	}

	return m, nil
}

// Mode returns the console mode the map is encoded for.
func (m *Map) Mode() rgba.Mode { return m.mode }

// Width returns the map width in entries.
func (m *Map) Width() int { return m.width }

// Height returns the map height in entries.
func (m *Map) Height() int { return m.height }

// Entries returns the entries in row-major order.
func (m *Map) Entries() []Entry { return m.entries }

// Set stores e at (x, y).
func (m *Map) Set(x, y int, e Entry) error {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return fmt.Errorf("tilemap: (%d, %d) outside %dx%d map", x, y, m.width, m.height)
	}
	m.entries[y*m.width+x] = e
	return nil
}

// At returns the entry at (x, y), or the zero entry outside the map.
func (m *Map) At(x, y int) Entry {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return Entry{}
	}
	return m.entries[y*m.width+x]
}

// MarshalBinary encodes the map into the console's native form and
// returns the result. Game Boy Color maps are written as the tile index
// plane followed by the attribute plane.
func (m *Map) MarshalBinary() ([]byte, error) {
	if len(m.entries) > maxEntries {
		return nil, fmt.Errorf("tilemap: more than %d entries", maxEntries)
	}

	b := new(bytes.Buffer)

	switch m.mode {
	case rgba.GB:
		for _, e := range m.entries {
			if e.Tile < 0 || e.Tile > 0xff || e.Subpalette != 0 || e.HFlip || e.VFlip || e.Priority {
				return nil, ErrEntryRange
			}
			b.WriteByte(byte(e.Tile))
		}
	case rgba.GBC:
		for _, e := range m.entries {
			if e.Tile < 0 || e.Tile > 0xff || e.Subpalette < 0 || e.Subpalette > 7 {
				return nil, ErrEntryRange
			}
			b.WriteByte(byte(e.Tile))
		}
		for _, e := range m.entries {
			a := byte(e.Subpalette)
			if e.HFlip {
				a |= 1 << 5
			}
			if e.VFlip {
				a |= 1 << 6
			}
			if e.Priority {
				a |= 1 << 7
			}
			b.WriteByte(a)
		}
	default:
		order := byteOrder(m.mode)
		for _, e := range m.entries {
			v, err := e.pack(m.mode)
			if err != nil {
				return nil, err
			}
			if err := binary.Write(b, order, v); err != nil {
				return nil, err
			}
		}
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes native form data for the map's current
// dimensions and mode.
func (m *Map) UnmarshalBinary(b []byte) error {
	want := len(m.entries)

	switch m.mode {
	case rgba.GB:
		if len(b) != want {
			return fmt.Errorf("tilemap: have %d bytes, want %d", len(b), want)
		}
		for i, t := range b {
			m.entries[i] = Entry{Tile: int(t)}
		}
	case rgba.GBC:
		if len(b) != want*2 {
			return fmt.Errorf("tilemap: have %d bytes, want %d", len(b), want*2)
		}
		for i := 0; i < want; i++ {
			a := b[want+i]
			m.entries[i] = Entry{
				Tile:       int(b[i]),
				Subpalette: int(a & 0x07),
				HFlip:      a&(1<<5) != 0,
				VFlip:      a&(1<<6) != 0,
				Priority:   a&(1<<7) != 0,
			}
		}
	default:
		if len(b) != want*2 {
			return fmt.Errorf("tilemap: have %d bytes, want %d", len(b), want*2)
		}
		order := byteOrder(m.mode)
		for i := 0; i < want; i++ {
			m.entries[i] = unpack(order.Uint16(b[i*2:]), m.mode)
		}
	}

	return nil
}

// The Mega Drive plane tables are big-endian, everything else is
// little-endian.
func byteOrder(m rgba.Mode) binary.ByteOrder {
	if m == rgba.MD {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (e Entry) pack(m rgba.Mode) (uint16, error) {
	if e.Tile < 0 || e.Subpalette < 0 {
		return 0, ErrEntryRange
	}

	switch m {
	case rgba.SNES:
		// vhopppcc cccccccc
		if e.Tile > 0x3ff || e.Subpalette > 7 {
			return 0, ErrEntryRange
		}
		v := uint16(e.Tile) | uint16(e.Subpalette)<<10
		if e.Priority {
			v |= 1 << 13
		}
		if e.HFlip {
			v |= 1 << 14
		}
		if e.VFlip {
			v |= 1 << 15
		}
		return v, nil
	case rgba.MD:
		// pccvhttt tttttttt
		if e.Tile > 0x7ff || e.Subpalette > 3 {
			return 0, ErrEntryRange
		}
		v := uint16(e.Tile) | uint16(e.Subpalette)<<13
		if e.HFlip {
			v |= 1 << 11
		}
		if e.VFlip {
			v |= 1 << 12
		}
		if e.Priority {
			v |= 1 << 15
		}
		return v, nil
	case rgba.PCE:
		// pppptttt tttttttt, no mirroring or priority
		if e.Tile > 0xfff || e.Subpalette > 15 || e.HFlip || e.VFlip || e.Priority {
			return 0, ErrEntryRange
		}
		return uint16(e.Tile) | uint16(e.Subpalette)<<12, nil
	case rgba.SMS, rgba.GG:
		if e.Tile > 0x1ff || e.Subpalette > 1 {
			return 0, ErrEntryRange
		}
		v := uint16(e.Tile) | uint16(e.Subpalette)<<11
		if e.HFlip {
			v |= 1 << 9
		}
		if e.VFlip {
			v |= 1 << 10
		}
		if e.Priority {
			v |= 1 << 12
		}
		return v, nil
	case rgba.GBA:
		// text mode screen entry, priority lives in the BG control
		// register instead
		if e.Tile > 0x3ff || e.Subpalette > 15 || e.Priority {
			return 0, ErrEntryRange
		}
		v := uint16(e.Tile) | uint16(e.Subpalette)<<12
		if e.HFlip {
			v |= 1 << 10
		}
		if e.VFlip {
			v |= 1 << 11
		}
		return v, nil
	}

	return 0, ErrEntryRange
}

func unpack(v uint16, m rgba.Mode) Entry {
	switch m {
	case rgba.SNES:
		return Entry{
			Tile:       int(v & 0x3ff),
			Subpalette: int(v >> 10 & 0x07),
			Priority:   v&(1<<13) != 0,
			HFlip:      v&(1<<14) != 0,
			VFlip:      v&(1<<15) != 0,
		}
	case rgba.MD:
		return Entry{
			Tile:       int(v & 0x7ff),
			Subpalette: int(v >> 13 & 0x03),
			HFlip:      v&(1<<11) != 0,
			VFlip:      v&(1<<12) != 0,
			Priority:   v&(1<<15) != 0,
		}
	case rgba.PCE:
		return Entry{
			Tile:       int(v & 0xfff),
			Subpalette: int(v >> 12),
		}
	case rgba.SMS, rgba.GG:
		return Entry{
			Tile:       int(v & 0x1ff),
			Subpalette: int(v >> 11 & 0x01),
			HFlip:      v&(1<<9) != 0,
			VFlip:      v&(1<<10) != 0,
			Priority:   v&(1<<12) != 0,
		}
	case rgba.GBA:
		return Entry{
			Tile:       int(v & 0x3ff),
			Subpalette: int(v >> 12),
			HFlip:      v&(1<<10) != 0,
			VFlip:      v&(1<<11) != 0,
		}
	}

	return Entry{}
}
