package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_site.yaml
var defaultSite []byte

// Default returns the built-in site description.
func Default() (*Site, error) {
	return Parse(defaultSite)
}

func Parse(data []byte) (*Site, error) {
	var site Site
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&site); err != nil {
		return nil, fmt.Errorf("failed to parse site description: %w", err)
	}
	if err := site.Validate(); err != nil {
		return nil, fmt.Errorf("invalid site description: %w", err)
	}
	return &site, nil
}

// Load reads a site description from path. An empty path yields the default.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site description %s: %w", path, err)
	}
	return Parse(data)
}
