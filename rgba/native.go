package rgba

// NativeSize returns the size in bytes of one native palette entry for m.
func NativeSize(m Mode) int {
	switch m {
	case SMS, GB:
		return 1
	default:
		return 2
	}
}

// PackNative encodes a color into the console's native palette entry.
// Multi-byte entries are emitted in the byte order the hardware consumes.
// The alpha channel is not representable and is dropped.
func PackNative(c Color, m Mode) []byte {
	switch m {
	case SNES, GBC, GBA:
		// 0bbbbbgg gggrrrrr, little-endian
		v := uint16(c.R())>>3 | uint16(c.G()>>3)<<5 | uint16(c.B()>>3)<<10
		return []byte{byte(v), byte(v >> 8)}
	case MD:
		// 0000bbb0 ggg0rrr0
		return []byte{(c.B() >> 4) & 0x0e, c.G()&0xe0 | (c.R()>>4)&0x0e}
	case PCE:
		// 0000000g ggrrrbbb, little-endian
		v := uint16(c.G()>>5)<<6 | uint16(c.R()>>5)<<3 | uint16(c.B()>>5)
		return []byte{byte(v), byte(v >> 8)}
	case SMS:
		// 00bbggrr
		return []byte{c.B()>>6<<4 | c.G()>>6<<2 | c.R()>>6}
	case GG:
		// 0000bbbb ggggrrrr, little-endian
		v := uint16(c.R())>>4 | uint16(c.G()>>4)<<4 | uint16(c.B()>>4)<<8
		return []byte{byte(v), byte(v >> 8)}
	case GB:
		// 2-bit shade, 0 lightest to 3 darkest
		return []byte{3 - luma(c)>>6}
	}
	return nil
}

// UnpackNative decodes a native palette entry as produced by PackNative,
// returning the normalized color. Unpacking a packed normalized color
// round-trips exactly.
func UnpackNative(b []byte, m Mode) Color {
	switch m {
	case SNES, GBC, GBA:
		v := uint16(b[0]) | uint16(b[1])<<8
		return Normalize(FromRGBA(uint8(v&0x1f)<<3, uint8(v>>5&0x1f)<<3, uint8(v>>10&0x1f)<<3, 0xff), m)
	case MD:
		return Normalize(FromRGBA(b[1]&0x0e<<4, b[1]&0xe0, b[0]&0x0e<<4, 0xff), m)
	case PCE:
		v := uint16(b[0]) | uint16(b[1])<<8
		return Normalize(FromRGBA(uint8(v>>3&0x07)<<5, uint8(v>>6&0x07)<<5, uint8(v&0x07)<<5, 0xff), m)
	case SMS:
		return Normalize(FromRGBA(b[0]&0x03<<6, b[0]>>2&0x03<<6, b[0]>>4&0x03<<6, 0xff), m)
	case GG:
		v := uint16(b[0]) | uint16(b[1])<<8
		return Normalize(FromRGBA(uint8(v&0x0f)<<4, uint8(v>>4&0x0f)<<4, uint8(v>>8&0x0f)<<4, 0xff), m)
	case GB:
		y := replicate((3-b[0]&0x03)<<6, 2)
		return FromRGBA(y, y, y, 0xff)
	}
	return Transparent
}
