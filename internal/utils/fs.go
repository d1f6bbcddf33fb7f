package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// AssetsPath is an extra asset root given on the command line or in the config.
var AssetsPath string

// ImageExtensions lists the artwork formats the gallery can decode, in lookup order.
var ImageExtensions = []string{".tex", ".png", ".jpg", ".jpeg"}

var errFound = errors.New("found")

func ResolveAssetPath(relPath string) string {
	// Try local assets first
	localPath := filepath.Join("assets", relPath)
	if _, err := os.Stat(localPath); err == nil {
		return localPath
	}

	if AssetsPath != "" {
		customPath := filepath.Join(AssetsPath, relPath)
		if _, err := os.Stat(customPath); err == nil {
			return customPath
		}
	}

	return localPath // Fallback to local even if not exists
}

// FindImageFile locates an artwork by name. The name may carry an extension,
// a "gallery/" prefix, or neither.
func FindImageFile(name string) string {
	if name == "" {
		return ""
	}

	if _, err := os.Stat(name); err == nil {
		return name
	}

	cleanName := strings.TrimPrefix(name, "gallery/")
	if ext := filepath.Ext(cleanName); ext != "" && isImageExt(ext) {
		cleanName = strings.TrimSuffix(cleanName, ext)
	}

	searchDirs := []string{
		"assets/gallery",
		"assets",
		"tmp/gallery",
		"tmp",
	}
	if AssetsPath != "" {
		searchDirs = append(searchDirs, filepath.Join(AssetsPath, "gallery"), AssetsPath)
	}

	for _, dir := range searchDirs {
		for _, ext := range ImageExtensions {
			p := filepath.Join(dir, cleanName+ext)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}

	// Deep search by base name
	var foundPath string
	target := filepath.Base(cleanName)
	for _, d := range searchDirs {
		if _, err := os.Stat(d); err != nil {
			continue
		}
		_ = filepath.WalkDir(d, func(path string, entry fs.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return nil
			}
			base := filepath.Base(path)
			ext := filepath.Ext(base)
			if strings.TrimSuffix(base, ext) == target && isImageExt(ext) {
				foundPath = path
				return errFound
			}
			return nil
		})
		if foundPath != "" {
			break
		}
	}

	return foundPath
}

func isImageExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range ImageExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ConfigDir returns the per-user directory for preference and config files.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "ambient-portfolio")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
