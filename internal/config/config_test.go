package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, DefaultFormID, cfg.Contact.FormID)
	assert.Empty(t, cfg.Contact.SiteKey)
	assert.Equal(t, 0.1, cfg.Motion.ScrollRate)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 800
  mode: wallpaper
content:
  debounce: 1s
motion:
  scroll_rate: 0.2
`), 0644))

	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("TURNSTILE_SITE_KEY=from-file\nFORMSPREE_FORM_ID=file-form\n"), 0644))
	t.Setenv(EnvFormID, "process-form")

	cfg, err := Load(path, envPath, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "wallpaper", cfg.Window.Mode)
	assert.Equal(t, time.Second, cfg.Content.Debounce)
	assert.Equal(t, 0.2, cfg.Motion.ScrollRate)
	assert.Equal(t, "from-file", cfg.Contact.SiteKey)
	assert.Equal(t, "process-form", cfg.Contact.FormID)

	_, set := os.LookupEnv(EnvSiteKey)
	assert.False(t, set)
}

func TestEnvReducedMotion(t *testing.T) {
	t.Setenv(EnvReducedMotion, "true")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Motion.ReducedMotion)

	t.Setenv(EnvReducedMotion, "maybe")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"size":    func(c *Config) { c.Window.Width = 0 },
		"fps":     func(c *Config) { c.Window.FPS = -1 },
		"mode":    func(c *Config) { c.Window.Mode = "kiosk" },
		"rate":    func(c *Config) { c.Motion.ScrollRate = 1.5 },
		"level":   func(c *Config) { c.Log.Level = "loud" },
		"backend": func(c *Config) { c.Prefs.Backend = "redis" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.Gallery.Dir = "/art"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/art", loaded.Gallery.Dir)
}

func TestBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [1, 2"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}
