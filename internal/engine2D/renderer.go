// Package engine2D draws the portfolio with raylib: the shader backdrop, the
// point field, the laid out page, the cursor follower and the loading
// screen. The packages below it stay free of raylib and are driven from
// the window loop.
package engine2D

import (
	"os"

	"ambient-portfolio/internal/engine2D/shader"
	"ambient-portfolio/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	colorText    = rl.NewColor(241, 245, 249, 255)
	colorMuted   = rl.NewColor(148, 163, 184, 255)
	colorAccent  = rl.NewColor(96, 165, 250, 255)
	colorViolet  = rl.NewColor(168, 85, 247, 255)
	colorCard    = rl.NewColor(30, 41, 59, 170)
	colorOutline = rl.NewColor(71, 85, 105, 200)
	colorHeader  = rl.NewColor(15, 23, 42, 210)
	colorScrim   = rl.NewColor(2, 6, 23, 220)
)

// FontPaths are tried in order; the raylib default font is the fallback.
var FontPaths = []string{
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/noto/NotoSans-Regular.ttf",
}

const (
	fontBaseSize = 64
	textSpacing  = 1
)

type Renderer struct {
	Width, Height float64

	font       rl.Font
	customFont bool
	Textures   *TextureCache
	Backdrop   *Backdrop
}

// NewRenderer must be called after the window is open.
func NewRenderer(sources shader.Sources, textures *TextureCache, reduced bool) *Renderer {
	r := &Renderer{
		Width:    float64(rl.GetScreenWidth()),
		Height:   float64(rl.GetScreenHeight()),
		font:     rl.GetFontDefault(),
		Textures: textures,
	}
	if err := r.LoadFont(); err != nil {
		utils.Warn("Renderer: %v, using the default font", err)
	}
	r.Backdrop = NewBackdrop(sources, reduced)
	return r
}

// LoadFont loads the first available system font.
func (r *Renderer) LoadFont() error {
	if r.customFont {
		return nil
	}
	for _, path := range FontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		font := rl.LoadFontEx(path, fontBaseSize, nil)
		if font.BaseSize == 0 {
			continue
		}
		rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
		r.font = font
		r.customFont = true
		utils.Info("Renderer: loaded font %s", path)
		return nil
	}
	return os.ErrNotExist
}

// CustomFont reports whether a system font replaced the raylib default.
func (r *Renderer) CustomFont() bool {
	return r.customFont
}

// UpdateViewport records a new window size.
func (r *Renderer) UpdateViewport(width, height int) {
	r.Width, r.Height = float64(width), float64(height)
}

// Measure implements page.Measurer with the loaded font.
func (r *Renderer) Measure(text string, size float64) float64 {
	return float64(rl.MeasureTextEx(r.font, text, float32(size), textSpacing).X)
}

func (r *Renderer) drawText(text string, x, y, size float64, col rl.Color) {
	rl.DrawTextEx(r.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), textSpacing, col)
}

func (r *Renderer) Close() {
	if r.customFont {
		rl.UnloadFont(r.font)
		r.customFont = false
	}
	if r.Backdrop != nil {
		r.Backdrop.Close()
	}
	if r.Textures != nil {
		r.Textures.Close()
	}
}

func fade(c rl.Color, alpha float64) rl.Color {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(float64(c.A) * alpha)
	return c
}
