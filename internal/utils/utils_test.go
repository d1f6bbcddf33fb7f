package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogLevelFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	prev := CurrentLevel
	t.Cleanup(func() { CurrentLevel = prev })

	CurrentLevel = LevelWarn
	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "shown 3", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, LevelDebug, lvl)

	_, err = ParseLogLevel("loud")
	assert.Error(t, err)
}

func TestFindImageFile(t *testing.T) {
	dir := t.TempDir()
	prev := AssetsPath
	AssetsPath = dir
	t.Cleanup(func() { AssetsPath = prev })

	nested := filepath.Join(dir, "gallery", "renders")
	require.NoError(t, os.MkdirAll(nested, 0755))
	target := filepath.Join(nested, "spaceship.png")
	require.NoError(t, os.WriteFile(target, []byte("png"), 0644))

	assert.Equal(t, target, FindImageFile("gallery/renders/spaceship.png"))
	assert.Equal(t, target, FindImageFile("spaceship"))
	assert.Empty(t, FindImageFile("missing-artwork"))
	assert.Empty(t, FindImageFile(""))
}
