/*
Package retrogfx converts full-color images into the palette, tile and
tilemap data used by retro console graphics hardware.
*/
package retrogfx

import (
	"fmt"
	"io"
	"log"

	"github.com/bodgit/retrogfx/palette"
	"github.com/bodgit/retrogfx/rgba"
	"github.com/bodgit/retrogfx/tile"
)

// Config selects the target console and conversion behavior. The zero
// value of most fields means "use the mode's convention".
type Config struct {
	// Mode selects the target console.
	Mode rgba.Mode

	// Depth is the tile depth in bits per pixel, 0 for the mode's
	// default.
	Depth int

	// TileWidth and TileHeight are the tile dimensions in pixels, 0
	// for 8.
	TileWidth, TileHeight int

	// Subpalettes caps the number of subpalettes, 0 for the mode's
	// default.
	Subpalettes int

	// Dedupe drops duplicate tiles from the tileset; Flips also treats
	// mirrored tiles as duplicates.
	Dedupe, Flips bool

	// ResizeWidth and ResizeHeight scale the source before conversion,
	// 0 leaves the source dimensions alone.
	ResizeWidth, ResizeHeight int

	// Dither error-diffuses any color remap instead of snapping each
	// pixel to its nearest palette entry.
	Dither bool
}

func (c Config) withDefaults() Config {
	if c.Depth == 0 {
		c.Depth = tile.DefaultDepth(c.Mode)
	}
	if c.TileWidth == 0 {
		c.TileWidth = 8
	}
	if c.TileHeight == 0 {
		c.TileHeight = 8
	}
	if rows, _ := palette.DefaultLayout(c.Mode, c.Depth); c.Subpalettes == 0 || c.Subpalettes > rows {
		c.Subpalettes = rows
	}
	return c
}

// layout returns the palette geometry: subpalette count and colors per
// subpalette.
func (c Config) layout() (int, int) {
	_, colors := palette.DefaultLayout(c.Mode, c.Depth)
	return c.Subpalettes, colors
}

// fingerprint identifies the settings that affect conversion output, for
// keying cached assets.
func (c Config) fingerprint() string {
	return fmt.Sprintf("%s:%d:%dx%d:%d:%t:%t:%dx%d:%t", c.Mode, c.Depth,
		c.TileWidth, c.TileHeight, c.Subpalettes, c.Dedupe, c.Flips,
		c.ResizeWidth, c.ResizeHeight, c.Dither)
}

// Converter turns images into console graphics assets according to its
// configuration, optionally caching results in an AssetDB.
type Converter struct {
	config Config
	db     *AssetDB
	logger *log.Logger
}

// New returns a Converter. db may be nil to disable caching; a nil logger
// discards all output.
func New(config Config, db *AssetDB, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Converter{
		config: config.withDefaults(),
		db:     db,
		logger: logger,
	}
}
