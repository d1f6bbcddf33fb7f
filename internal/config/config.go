// Package config loads runtime settings: a YAML file over built-in defaults,
// then environment variables (optionally from .env files), then command line
// flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ambient-portfolio/internal/utils"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvFormID        = "FORMSPREE_FORM_ID"
	EnvSiteKey       = "TURNSTILE_SITE_KEY"
	EnvReducedMotion = "AMBIENT_REDUCED_MOTION"
	EnvLogLevel      = "AMBIENT_LOG_LEVEL"

	DefaultFormID = "mvgreroo"
)

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Content ContentConfig `yaml:"content"`
	Gallery GalleryConfig `yaml:"gallery"`
	Prefs   PrefsConfig   `yaml:"prefs"`
	Contact ContactConfig `yaml:"contact"`
	Motion  MotionConfig  `yaml:"motion"`
	Log     LogConfig     `yaml:"log"`
	Route   string        `yaml:"route"`
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	FPS        int    `yaml:"fps"`
	Fullscreen bool   `yaml:"fullscreen"`
	// Mode "wallpaper" sits the window behind the desktop and reads the
	// pointer globally.
	Mode string `yaml:"mode"`
}

type ContentConfig struct {
	Path     string        `yaml:"path"`
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
}

type GalleryConfig struct {
	Dir      string `yaml:"dir"`
	Bundle   string `yaml:"bundle"`
	CacheDir string `yaml:"cache_dir"`
}

type PrefsConfig struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

type ContactConfig struct {
	FormID   string `yaml:"form_id"`
	SiteKey  string `yaml:"site_key"`
	Headless bool   `yaml:"headless"`
}

type MotionConfig struct {
	ReducedMotion bool    `yaml:"reduced_motion"`
	ScrollRate    float64 `yaml:"scroll_rate"`
	Seed          int64   `yaml:"seed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Debug bool   `yaml:"debug"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Ambient Portfolio",
			FPS:    60,
			Mode:   "window",
		},
		Content: ContentConfig{
			Watch:    true,
			Debounce: 200 * time.Millisecond,
		},
		Prefs: PrefsConfig{
			Backend: "sqlite",
		},
		Contact: ContactConfig{
			FormID: DefaultFormID,
		},
		Motion: MotionConfig{
			ScrollRate: 0.1,
			Seed:       1,
		},
		Log: LogConfig{
			Level: "info",
		},
		Route: "/",
	}
}

// Load reads path over the defaults. A missing file is not an error. envFiles
// are read with godotenv; variables already set in the process win.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			utils.Debug("No config file at %s, using defaults", path)
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	env, err := readEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(env); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readEnvFiles(files []string) (map[string]string, error) {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return map[string]string{}, nil
	}
	env, err := godotenv.Read(existing...)
	if err != nil {
		return nil, fmt.Errorf("failed to read env files: %w", err)
	}
	return env, nil
}

func lookup(env map[string]string, key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := env[key]
	return v, ok
}

func (c *Config) applyEnvOverrides(env map[string]string) error {
	if v, ok := lookup(env, EnvFormID); ok && v != "" {
		c.Contact.FormID = v
	}
	if v, ok := lookup(env, EnvSiteKey); ok && v != "" {
		c.Contact.SiteKey = v
	}
	if v, ok := lookup(env, EnvReducedMotion); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvReducedMotion, err)
		}
		c.Motion.ReducedMotion = b
	}
	if v, ok := lookup(env, EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate rejects settings the window cannot start with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d is invalid", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.Window.FPS)
	}
	switch c.Window.Mode {
	case "window", "wallpaper":
	default:
		return fmt.Errorf("unknown window mode %q", c.Window.Mode)
	}
	if c.Motion.ScrollRate <= 0 || c.Motion.ScrollRate > 1 {
		return fmt.Errorf("scroll rate must be in (0, 1], got %g", c.Motion.ScrollRate)
	}
	if _, err := utils.ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Prefs.Backend {
	case "sqlite", "file", "json", "memory":
	default:
		return fmt.Errorf("unknown preference store %q", c.Prefs.Backend)
	}
	return nil
}

// PrefsDir falls back to the user config directory.
func (c *Config) PrefsDir() (string, error) {
	if c.Prefs.Dir != "" {
		return c.Prefs.Dir, nil
	}
	return utils.ConfigDir()
}

// GalleryCacheDir is where converted artworks are written.
func (c *Config) GalleryCacheDir() (string, error) {
	if c.Gallery.CacheDir != "" {
		return c.Gallery.CacheDir, nil
	}
	dir, err := utils.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gallery"), nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
