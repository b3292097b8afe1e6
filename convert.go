package retrogfx

import (
	"crypto/sha1"
	"errors"
	"fmt"
	goimage "image"
	"image/color"
	"io"
	"os"

	"github.com/bodgit/retrogfx/image"
	"github.com/bodgit/retrogfx/palette"
	"github.com/bodgit/retrogfx/rgba"
	"github.com/bodgit/retrogfx/tile"
	"github.com/bodgit/retrogfx/tilemap"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Assets is the result of one conversion: the packed palette, the
// deduplicated tileset, the tilemap referring back into it, and the
// quantized rendition of the source image.
type Assets struct {
	Palette *palette.Palette
	Tileset *tile.Tileset
	Map     *tilemap.Map
	Indexed *image.Image

	config Config
}

// NativeAssets holds the console-native encoding of each asset.
type NativeAssets struct {
	Palette []byte
	Tiles   []byte
	Tilemap []byte
}

// Native encodes every asset into the console's native binary format.
func (a *Assets) Native() (*NativeAssets, error) {
	p, err := a.Palette.MarshalBinary()
	if err != nil {
		return nil, err
	}

	t, err := a.Tileset.NativeData(a.config.Mode, a.config.Depth)
	if err != nil {
		return nil, err
	}

	m, err := a.Map.MarshalBinary()
	if err != nil {
		return nil, err
	}

	return &NativeAssets{Palette: p, Tiles: t, Tilemap: m}, nil
}

// PaletteImage renders the palette as a swatch grid, one row per
// subpalette.
func (a *Assets) PaletteImage() (*image.Image, error) {
	return image.FromPalette(a.Palette)
}

// TilesetImage composes the tileset into an atlas image.
func (a *Assets) TilesetImage() *image.Image {
	return image.FromTileset(a.Tileset)
}

// WritePal writes the palette to w as a RIFF PAL file.
func (a *Assets) WritePal(w io.Writer) error {
	return a.Palette.WritePal(w)
}

// Convert splits m into tiles, packs every tile's colors into the target
// palette geometry, quantizes each tile against the subpalette holding
// its colors and assembles the deduplicated tileset and tilemap. It fails
// if the per-tile color sets cannot be packed into the configured number
// of subpalettes.
func (c *Converter) Convert(m *image.Image) (*Assets, error) {
	cfg := c.config
	rows, colors := cfg.layout()

	crops := m.Crops(cfg.TileWidth, cfg.TileHeight)
	sets := make([][]rgba.Color, len(crops))
	for i, crop := range crops {
		sets[i] = crop.RGBAData()
	}

	pal := palette.New(cfg.Mode, rows, colors)
	if err := pal.AddColorSets(sets); err != nil {
		return nil, err
	}
	if pal.Size() == 0 {
		// Source is entirely transparent
		if err := pal.AddSubpalette([]rgba.Color{rgba.Transparent}); err != nil {
			return nil, err
		}
	}

	widthTiles := (m.Width() + cfg.TileWidth - 1) / cfg.TileWidth
	heightTiles := (m.Height() + cfg.TileHeight - 1) / cfg.TileHeight

	ts := tile.NewTileset(cfg.TileWidth, cfg.TileHeight, cfg.Dedupe, cfg.Flips)
	refs := make([]tile.Ref, len(crops))
	subpalettes := make([]int, len(crops))
	rendered := image.New(widthTiles*cfg.TileWidth, heightTiles*cfg.TileHeight)

	for i, crop := range crops {
		n, sub, err := pal.BestSubpalette(crop.RGBAData())
		if err != nil {
			return nil, err
		}

		q, err := crop.Quantize(sub)
		if err != nil {
			return nil, err
		}

		indexed, err := q.IndexedData()
		if err != nil {
			return nil, err
		}

		t, err := tile.NewIndexed(cfg.TileWidth, cfg.TileHeight, q.RGBAData(), indexed, n)
		if err != nil {
			return nil, err
		}

		ref, err := ts.Add(t)
		if err != nil {
			return nil, err
		}

		refs[i] = ref
		subpalettes[i] = n

		rendered.Blit(q.RGBAData(), i%widthTiles*cfg.TileWidth, i/widthTiles*cfg.TileHeight, cfg.TileWidth)
	}

	tm, err := tilemap.FromRefs(cfg.Mode, widthTiles, refs, subpalettes)
	if err != nil {
		return nil, err
	}

	c.logger.Printf("%s: %d tiles, %d subpalettes", m, ts.Size(), pal.Size())

	return &Assets{
		Palette: pal,
		Tileset: ts,
		Map:     tm,
		Indexed: rendered,
		config:  cfg,
	}, nil
}

// ConvertImage converts an already decoded image, scaling it first when
// the configuration asks for it. A source whose tiles will not pack into
// the palette geometry is remapped onto progressively smaller median-cut
// palettes until they do.
func (c *Converter) ConvertImage(src goimage.Image) (*Assets, error) {
	if c.config.ResizeWidth > 0 || c.config.ResizeHeight > 0 {
		src = resize.Resize(uint(c.config.ResizeWidth), uint(c.config.ResizeHeight), src, resize.Lanczos3)
	}

	rows, colors := c.config.layout()
	budget := rows * (colors - 1)
	if budget > 256 {
		budget = 256
	}

	var err error
	if countColors(src) <= budget {
		var m *image.Image
		if m, err = image.FromImage(src); err != nil {
			return nil, err
		}
		var a *Assets
		if a, err = c.Convert(m); err == nil || !packingFailed(err) {
			return a, err
		}
	}

	// Keep reducing the colors until the tiles can be packed
	for max := budget; max >= colors-1 && max > 0; max-- {
		m, ferr := image.FromImage(c.remap(src, max))
		if ferr != nil {
			return nil, ferr
		}

		var a *Assets
		if a, err = c.Convert(m); err == nil {
			return a, nil
		} else if !packingFailed(err) {
			return nil, err
		}

		c.logger.Printf("%d colors will not pack, reducing", max)
	}

	return nil, err
}

// ConvertFile decodes the image at path and converts it, recording the
// result in the asset cache when one is configured.
func (c *Converter) ConvertFile(path string) (*Assets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha1.New()
	src, _, err := goimage.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	a, err := c.ConvertImage(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if c.db != nil {
		n, err := a.Native()
		if err != nil {
			return nil, err
		}
		if err := c.db.Put(fmt.Sprintf("%X", h.Sum(nil)), c.config.fingerprint(), n); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func packingFailed(err error) bool {
	return errors.Is(err, palette.ErrTooManyColors) || errors.Is(err, palette.ErrTooManySubpalettes)
}

// remap redraws src against a median-cut palette of at most max colors.
func (c *Converter) remap(src goimage.Image, max int) *goimage.Paletted {
	q := quantize.MedianCutQuantizer{AddTransparent: true}
	b := src.Bounds()

	dst := goimage.NewPaletted(b, q.Quantize(make(color.Palette, 0, max), src))
	if c.config.Dither {
		draw.FloydSteinberg.Draw(dst, b, src, b.Min)
	} else {
		draw.Draw(dst, b, src, b.Min, draw.Src)
	}

	return dst
}

// countColors returns the number of distinct colors in m.
func countColors(m goimage.Image) int {
	b := m.Bounds()
	colors := make(map[rgba.Color]struct{})
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			colors[rgba.FromColor(m.At(x, y))] = struct{}{}
		}
	}
	return len(colors)
}
