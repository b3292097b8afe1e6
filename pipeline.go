package retrogfx

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	goimage "image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Source containers the scan pipeline will pick up. Decoding still needs
// the matching format registered with the image package.
var imageExts = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

func (c *Converter) findImages(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			// Ignore any file greater than 16 MB
			if info.Size() > 16<<(10*2) {
				return nil
			}

			if _, ok := imageExts[strings.ToLower(filepath.Ext(file))]; !ok {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

// nativeAssets converts the image at path to its native binary assets,
// short-circuiting through the asset cache when one is configured.
func (c *Converter) nativeAssets(path string) (*NativeAssets, error) {
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
	sha := fmt.Sprintf("%X", h.Sum(nil))

	if c.db != nil {
		a, err := c.db.Get(sha, c.config.fingerprint())
		if err != nil {
			return nil, err
		}
		if a != nil {
			c.logger.Printf("Cache hit for \"%s\"\n", path)
			return a, nil
		}
	}

	assets, err := c.ConvertImage(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	a, err := assets.Native()
	if err != nil {
		return nil, err
	}

	if c.db != nil {
		if err := c.db.Put(sha, c.config.fingerprint(), a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

func (c *Converter) imageWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			a, err := c.nativeAssets(file)
			if err != nil {
				errc <- err
				return
			}

			stem := strings.TrimSuffix(file, filepath.Ext(file))
			for suffix, b := range map[string][]byte{
				".palette": a.Palette,
				".tiles":   a.Tiles,
				".tilemap": a.Tilemap,
			} {
				if err := os.WriteFile(stem+suffix, b, 0666); err != nil {
					errc <- err
					return
				}
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory tree at path converting every image it finds,
// writing each one's native assets alongside it.
func (c *Converter) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findImages(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := c.imageWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
