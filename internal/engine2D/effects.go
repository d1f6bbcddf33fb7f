package engine2D

import (
	"fmt"
	"math"

	"ambient-portfolio/internal/debug"
	"ambient-portfolio/internal/engine2D/cursor"
	"ambient-portfolio/internal/engine2D/particle"
	"ambient-portfolio/internal/readiness"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	pointWorldSize = 0.06
	glowWorldSize  = 0.22
	pointOpacity   = 0.8
	glowOpacity    = 0.3
	edgeOpacity    = 0.6
)

func linearColor(buf []float32, i int, alpha float64) rl.Color {
	c := func(v float32) uint8 {
		return uint8(math.Max(0, math.Min(1, float64(v))) * 255)
	}
	return rl.NewColor(c(buf[i]), c(buf[i+1]), c(buf[i+2]), uint8(math.Max(0, math.Min(1, alpha))*255))
}

// DrawField draws one point field frame with additive blending. A frame
// whose buffers disagree is skipped.
func (r *Renderer) DrawField(frame *particle.Frame, cam particle.Camera) {
	if !frame.Valid() {
		return
	}
	project := func(buf []float32, i int) (rl.Vector2, float64, bool) {
		p := particle.Vec3{X: float64(buf[i]), Y: float64(buf[i+1]), Z: float64(buf[i+2])}
		x, y, scale, ok := cam.Project(p, r.Width, r.Height)
		return rl.NewVector2(float32(x), float32(y)), scale, ok
	}

	rl.BeginBlendMode(rl.BlendAdditive)
	for i, e := range frame.Edges {
		a, _, okA := project(frame.EdgePositions, i*6)
		b, _, okB := project(frame.EdgePositions, i*6+3)
		if !okA || !okB {
			continue
		}
		rl.DrawLineEx(a, b, 1, linearColor(frame.EdgeColors, i*6, e.Opacity*e.Pulse*edgeOpacity))
	}
	for i := 0; i < len(frame.GlowPositions); i += 3 {
		p, scale, ok := project(frame.GlowPositions, i)
		if !ok {
			continue
		}
		rl.DrawCircleV(p, float32(math.Max(2, glowWorldSize*scale)), linearColor(frame.GlowColors, i, glowOpacity))
	}
	for i := 0; i < len(frame.Positions); i += 3 {
		p, scale, ok := project(frame.Positions, i)
		if !ok {
			continue
		}
		rl.DrawCircleV(p, float32(math.Max(1, pointWorldSize*scale)), linearColor(frame.Colors, i, pointOpacity))
	}
	rl.EndBlendMode()
}

// DrawCursor draws the follower's trail, ring and dot. t drives the busy
// spinner.
func (r *Renderer) DrawCursor(st cursor.State, t float64) {
	if !st.Visible {
		return
	}
	col := st.Variant.Color
	n := len(st.Trail)
	for i := n - 1; i >= 1; i-- {
		d := cursor.Decay(i, n+1)
		s := st.Trail[i]
		rl.DrawCircleV(rl.NewVector2(float32(s.X), float32(s.Y)), float32(cursor.DotRadius*d), fade(col, 0.35*d))
	}

	ring := float32(st.RingRadius * st.RingScale)
	center := rl.NewVector2(float32(st.RingX), float32(st.RingY))
	rl.DrawRing(center, ring-1.5, ring, 0, 360, 36, fade(col, st.RingOpacity))

	dot := rl.NewVector2(float32(st.DotX), float32(st.DotY))
	switch st.Variant.Shape {
	case cursor.ShapeBeam:
		h := float32(18 * st.DotScale)
		rl.DrawRectangleV(rl.NewVector2(dot.X-1, dot.Y-h/2), rl.NewVector2(2, h), col)
	case cursor.ShapeSpinner:
		start := float32(math.Mod(t*360, 360))
		rl.DrawRing(dot, 5, 7, start, start+270, 24, col)
	default:
		rl.DrawCircleV(dot, float32(cursor.DotRadius*st.DotScale), col)
	}
}

// DrawLoading draws the loading screen on top of everything.
func (r *Renderer) DrawLoading(s *readiness.Screen) {
	alpha := s.Opacity()
	if alpha <= 0 {
		return
	}
	w, h := r.Width, r.Height
	rl.DrawRectangle(0, 0, int32(w), int32(h), fade(rl.NewColor(2, 6, 23, 255), alpha))

	for _, d := range s.Dust() {
		rl.DrawCircleV(rl.NewVector2(float32(d.X*w), float32(d.Y*h)), 1.5, fade(colorAccent, d.Opacity*alpha))
	}

	title := "Loading"
	size := 40.0
	tw := r.Measure(title, size)
	r.drawText(title, (w-tw)/2, h/2-80, size, fade(colorText, alpha))

	msg := s.Message()
	mw := r.Measure(msg, 18)
	r.drawText(msg, (w-mw)/2, h/2-20, 18, fade(colorMuted, alpha))

	barW := math.Min(320, w*0.6)
	bx, by := (w-barW)/2, h/2+20
	rl.DrawRectangleRounded(rl.NewRectangle(float32(bx), float32(by), float32(barW), 6), 1, segments, fade(colorOutline, 0.6*alpha))
	fill := barW * s.Progress() / 100
	if fill > 0 {
		rl.DrawRectangleGradientH(int32(bx), int32(by), int32(fill), 6, fade(colorAccent, alpha), fade(colorViolet, alpha))
	}
	pct := formatPercent(s.Progress())
	pw := r.Measure(pct, 14)
	r.drawText(pct, (w-pw)/2, by+16, 14, fade(colorMuted, alpha))
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%d%%", int(math.Min(100, math.Round(p))))
}

// DrawDebug draws the overlay panel and the element outlines.
func (r *Renderer) DrawDebug(o *debug.Overlay, boxes []debug.Box) {
	if !o.Visible {
		return
	}
	for _, b := range boxes {
		col := rl.NewColor(0, 255, 0, 160)
		if b.Selected {
			col = rl.NewColor(255, 255, 0, 255)
		}
		rl.DrawRectangleLines(int32(b.Rect.X), int32(b.Rect.Y), int32(b.Rect.W), int32(b.Rect.H), col)
		rl.DrawRectangle(int32(b.Rect.X-2), int32(b.Rect.Y-2), 4, 4, rl.Red)
		if b.Selected {
			r.drawText(b.Label, b.Rect.X+4, b.Rect.Y+2, 12, col)
		}
	}

	const (
		x, lineHeight, fontSize = 10.0, 20.0, 14.0
	)
	groups := o.Stats.Groups()
	lines := 0
	for _, g := range groups {
		lines += len(g.Lines) + 2
	}
	rl.DrawRectangle(0, 0, 300, int32(float64(lines)*lineHeight+20), rl.NewColor(0, 0, 0, 180))
	y := 10.0
	for _, g := range groups {
		r.drawText(g.Header, x, y, fontSize, rl.White)
		y += lineHeight
		for _, l := range g.Lines {
			r.drawText(l, x+10, y, fontSize, rl.White)
			y += lineHeight
		}
		y += lineHeight / 2
	}
}

// DrawToast shows a short notice above the floating menu.
func (r *Renderer) DrawToast(text string, alpha float64) {
	if text == "" || alpha <= 0 {
		return
	}
	const size, pad = 16.0, 14.0
	w := r.Measure(text, size) + 2*pad
	h := size*1.5 + pad
	x := (r.Width - w) / 2
	y := r.Height - h - 32
	rect := rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
	rl.DrawRectangleRounded(rect, roundness, segments, fade(colorAccent, 0.6*alpha))
	inner := rl.NewRectangle(rect.X+1, rect.Y+1, rect.Width-2, rect.Height-2)
	rl.DrawRectangleRounded(inner, roundness, segments, fade(colorHeader, alpha))
	r.drawText(text, x+pad, y+(h-size)/2, size, fade(colorText, alpha))
}
