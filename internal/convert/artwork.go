package convert

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"ambient-portfolio/internal/utils"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentDecodes bounds memory while converting a whole gallery.
const maxConcurrentDecodes = 8

// DecodeImage decodes an artwork by extension: .tex containers or anything
// the image package has a decoder registered for.
func DecodeImage(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".tex") {
		return DecodeTexFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// CachedPNGPath is where the PNG rendition of a .tex artwork is kept.
func CachedPNGPath(texPath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath)) + ".png"
	if outDir == "" {
		return filepath.Join(filepath.Dir(texPath), base)
	}
	return filepath.Join(outDir, base)
}

// ConvertTex decodes texPath and writes it as PNG, reusing an existing
// conversion when present.
func ConvertTex(texPath, outDir string) (string, error) {
	pngPath := CachedPNGPath(texPath, outDir)
	if _, err := os.Stat(pngPath); err == nil {
		return pngPath, nil
	}

	img, err := DecodeTexFile(texPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(pngPath), 0755); err != nil {
		return "", err
	}

	tmp := pngPath + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("failed to encode %s: %w", pngPath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, pngPath); err != nil {
		return "", err
	}
	return pngPath, nil
}

// BulkConvert converts every .tex under root in parallel. Individual failures
// are logged and counted; only a walk error or cancellation is returned.
func BulkConvert(ctx context.Context, root, outDir string) (converted, failed int, err error) {
	utils.Info("Converting gallery textures under %s", root)

	var ok, bad int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDecodes)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if gctx.Err() != nil {
			return gctx.Err()
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".tex") {
			return nil
		}
		g.Go(func() error {
			if _, err := ConvertTex(path, outDir); err != nil {
				utils.Error("Failed to convert %s: %v", path, err)
				atomic.AddInt32(&bad, 1)
				return nil
			}
			atomic.AddInt32(&ok, 1)
			return nil
		})
		return nil
	})

	waitErr := g.Wait()
	utils.Info("Texture conversion finished: %d converted, %d failed", ok, bad)
	if walkErr != nil {
		return int(ok), int(bad), fmt.Errorf("failed to walk %s: %w", root, walkErr)
	}
	return int(ok), int(bad), waitErr
}
