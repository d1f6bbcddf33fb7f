package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ambient-portfolio/internal/config"
	"ambient-portfolio/internal/content"
	"ambient-portfolio/internal/convert"
	"ambient-portfolio/internal/engine2D"
	"ambient-portfolio/internal/readiness"
	"ambient-portfolio/internal/utils"
)

func loadSite(cfg *config.Config) (*content.Site, error) {
	if cfg.Content.Path == "" {
		return content.Default()
	}
	site, err := content.Load(cfg.Content.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load site %s: %w", cfg.Content.Path, err)
	}
	utils.Info("Loaded site %q from %s", site.Title, cfg.Content.Path)
	return site, nil
}

// prepareGallery unpacks the configured asset bundle into the cache and
// converts its textures to PNG once. It returns the directory holding the
// converted images, or "" when there is nothing to prepare.
func prepareGallery(ctx context.Context, cfg *config.Config) (string, error) {
	cache, err := cfg.GalleryCacheDir()
	if err != nil {
		return "", err
	}
	converted := filepath.Join(cache, "converted")

	if cfg.Gallery.Bundle != "" {
		marker := filepath.Join(cache, ".extracted-"+filepath.Base(cfg.Gallery.Bundle))
		if _, err := os.Stat(marker); err != nil {
			files, err := convert.ExtractPkg(cfg.Gallery.Bundle, cache)
			if err != nil {
				return "", fmt.Errorf("failed to extract gallery bundle: %w", err)
			}
			utils.Info("Extracted %d gallery files from %s", len(files), cfg.Gallery.Bundle)
			if err := os.WriteFile(marker, nil, 0644); err != nil {
				utils.Warn("Could not mark bundle as extracted: %v", err)
			}
		}
		if utils.AssetsPath == "" {
			utils.AssetsPath = cache
		}
	}

	if utils.AssetsPath == "" {
		return "", nil
	}
	ok, failed, err := convert.BulkConvert(ctx, utils.AssetsPath, converted)
	if err != nil {
		return "", err
	}
	if failed > 0 {
		utils.Warn("%d gallery textures could not be converted", failed)
	}
	utils.Debug("Gallery textures ready: %d converted into %s", ok, converted)
	return converted, nil
}

// imageResolver finds an artwork, preferring its PNG conversion over the
// original texture container.
func imageResolver(convertedDir string) func(name string) string {
	return func(name string) string {
		path := utils.FindImageFile(name)
		if path == "" || convertedDir == "" || !strings.EqualFold(filepath.Ext(path), ".tex") {
			return path
		}
		if png := convert.CachedPNGPath(path, convertedDir); fileExists(png) {
			return png
		}
		return path
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// startupProbes are what the loading screen waits for. Decoded critical
// images are uploaded by the render loop as they arrive.
func startupProbes(site *content.Site, r *engine2D.Renderer, layoutReady <-chan struct{}) []readiness.Probe {
	return []readiness.Probe{
		readiness.FontProbe(func() error {
			if !r.CustomFont() {
				return fmt.Errorf("no system font found")
			}
			return nil
		}),
		readiness.ImagesProbe(site.Critical, r.Textures.Load),
		readiness.LayoutProbe(layoutReady),
		readiness.DelayProbe(readiness.MinimumDelay),
	}
}
