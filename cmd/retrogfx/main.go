package main

import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"

	"github.com/bodgit/retrogfx"
	"github.com/bodgit/retrogfx/rgba"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func conversionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "mode",
			Value: "snes",
			Usage: "target console",
		},
		&cli.IntFlag{
			Name:  "bpp",
			Usage: "tile depth in bits per pixel, 0 for the mode default",
		},
		&cli.IntFlag{
			Name:  "tile-width",
			Value: 8,
			Usage: "tile width in pixels",
		},
		&cli.IntFlag{
			Name:  "tile-height",
			Value: 8,
			Usage: "tile height in pixels",
		},
		&cli.IntFlag{
			Name:  "subpalettes",
			Usage: "maximum subpalettes, 0 for the mode default",
		},
		&cli.BoolFlag{
			Name:  "dedupe",
			Value: true,
			Usage: "drop duplicate tiles",
		},
		&cli.BoolFlag{
			Name:  "flips",
			Usage: "treat mirrored tiles as duplicates",
		},
		&cli.IntFlag{
			Name:  "resize-width",
			Usage: "scale the source to this width before converting",
		},
		&cli.IntFlag{
			Name:  "resize-height",
			Usage: "scale the source to this height before converting",
		},
		&cli.BoolFlag{
			Name:  "dither",
			Usage: "error-diffuse any color remap",
		},
	}
}

func paletteOutputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "out-palette",
			Usage: "write the native palette to this file",
		},
		&cli.StringFlag{
			Name:  "out-pal",
			Usage: "write a RIFF PAL palette to this file",
		},
		&cli.StringFlag{
			Name:  "out-palette-image",
			Usage: "write a palette swatch PNG to this file",
		},
	}
}

func outputFlags() []cli.Flag {
	return append(paletteOutputFlags(),
		&cli.StringFlag{
			Name:  "out-tiles",
			Usage: "write the native tileset to this file",
		},
		&cli.StringFlag{
			Name:  "out-map",
			Usage: "write the native tilemap to this file",
		},
		&cli.StringFlag{
			Name:  "out-tiles-image",
			Usage: "write a tileset atlas PNG to this file",
		},
		&cli.StringFlag{
			Name:  "out-indexed-image",
			Usage: "write the quantized image as a PNG to this file",
		},
	)
}

func newConverter(c *cli.Context) (*retrogfx.Converter, func() error, error) {
	mode, err := rgba.ParseMode(c.String("mode"))
	if err != nil {
		return nil, nil, err
	}

	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	closer := func() error { return nil }
	var db *retrogfx.AssetDB
	if file := c.String("db"); file != "" {
		if db, err = retrogfx.OpenAssetDB(file); err != nil {
			return nil, nil, err
		}
		closer = db.Close
	}

	return retrogfx.New(retrogfx.Config{
		Mode:         mode,
		Depth:        c.Int("bpp"),
		TileWidth:    c.Int("tile-width"),
		TileHeight:   c.Int("tile-height"),
		Subpalettes:  c.Int("subpalettes"),
		Dedupe:       c.Bool("dedupe"),
		Flips:        c.Bool("flips"),
		ResizeWidth:  c.Int("resize-width"),
		ResizeHeight: c.Int("resize-height"),
		Dither:       c.Bool("dither"),
	}, db, logger), closer, nil
}

func writeOutputs(c *cli.Context, a *retrogfx.Assets) error {
	if c.String("out-palette") != "" || c.String("out-tiles") != "" || c.String("out-map") != "" {
		n, err := a.Native()
		if err != nil {
			return err
		}
		for flag, b := range map[string][]byte{
			"out-palette": n.Palette,
			"out-tiles":   n.Tiles,
			"out-map":     n.Tilemap,
		} {
			if file := c.String(flag); file != "" {
				if err := os.WriteFile(file, b, 0666); err != nil {
					return err
				}
			}
		}
	}

	if file := c.String("out-pal"); file != "" {
		f, err := os.Create(file)
		if err != nil {
			return err
		}
		if err := a.WritePal(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	if file := c.String("out-palette-image"); file != "" {
		m, err := a.PaletteImage()
		if err != nil {
			return err
		}
		if err := m.Save(file); err != nil {
			return err
		}
	}

	if file := c.String("out-tiles-image"); file != "" {
		if err := a.TilesetImage().Save(file); err != nil {
			return err
		}
	}

	if file := c.String("out-indexed-image"); file != "" {
		if err := a.Indexed.Save(file); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "retrogfx"
	app.Usage = "Retro console graphics conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"RETROGFX_DB"},
			Usage:   "path to asset cache database",
		},
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert an image to console graphics assets",
			Description: "",
			ArgsUsage:   "FILE",
			Flags:       append(conversionFlags(), outputFlags()...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				a, err := conv.ConvertFile(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writeOutputs(c, a); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Convert every image under a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags:       conversionFlags(),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				if err := conv.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "palette",
			Usage:       "Extract only the packed palette from an image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags:       append(conversionFlags(), paletteOutputFlags()...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, closer, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				a, err := conv.ConvertFile(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := writeOutputs(c, a); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
