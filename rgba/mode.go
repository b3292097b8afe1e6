package rgba

import "fmt"

// Mode selects which console's color depth rules apply when reducing a
// color to its hardware representation.
type Mode int

const (
	// SNES is the Super Famicom, 15-bit BGR
	SNES Mode = iota
	// GB is the original Game Boy, 2-bit greyscale
	GB
	// GBC is the Game Boy Color, 15-bit BGR
	GBC
	// GBA is the Game Boy Advance, 15-bit BGR
	GBA
	// MD is the Mega Drive, 9-bit BGR
	MD
	// PCE is the PC Engine, 9-bit GRB
	PCE
	// SMS is the Master System, 6-bit BGR
	SMS
	// GG is the Game Gear, 12-bit BGR
	GG
)

var modeNames = []string{"snes", "gb", "gbc", "gba", "md", "pce", "sms", "gg"}

func (m Mode) String() string {
	if m < SNES || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps a mode name as accepted on the command line to its Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return SNES, fmt.Errorf("rgba: unknown mode %q", s)
}

// depth returns the significant high bits per channel for m.
func (m Mode) depth() uint {
	switch m {
	case SNES, GBC, GBA:
		return 5
	case MD, PCE:
		return 3
	case SMS, GB:
		return 2
	case GG:
		return 4
	}
	return 8
}

// grey reports whether m stores shades rather than colors.
func (m Mode) grey() bool { return m == GB }

// Pixels below this alpha reduce to Transparent, everything else to fully
// opaque; console pixels are either drawn or not.
const alphaThreshold = 0x80

// Reduce quantizes c to the color depth of mode m. It is pure and total:
// equal inputs always reduce to equal outputs.
func Reduce(c Color, m Mode) Color {
	if c.A() < alphaThreshold {
		return Transparent
	}
	mask := uint8(0xff) << (8 - m.depth())
	if m.grey() {
		y := luma(c) & mask
		return FromRGBA(y, y, y, 0xff)
	}
	return FromRGBA(c.R()&mask, c.G()&mask, c.B()&mask, 0xff)
}

// Normalize expands a reduced color back to the full 8-bit range by bit
// replication, so that equal hardware colors compare bit-equal regardless
// of which 8-bit colors they were reduced from. Normalize(Transparent) is
// Transparent.
func Normalize(c Color, m Mode) Color {
	bits := m.depth()
	return FromRGBA(replicate(c.R(), bits), replicate(c.G(), bits), replicate(c.B(), bits), c.A())
}

// replicate spreads the top bits of v across the full 8-bit range, e.g.
// 5-bit 11111000 becomes 11111111 and 00001000 stays 00001000.
func replicate(v uint8, bits uint) uint8 {
	v &= 0xff << (8 - bits)
	out := v
	for s := bits; s < 8; s += bits {
		out |= v >> s
	}
	return out
}

// luma converts to brightness using the BT.601 weights.
func luma(c Color) uint8 {
	return uint8((299*uint32(c.R()) + 587*uint32(c.G()) + 114*uint32(c.B()) + 500) / 1000)
}
