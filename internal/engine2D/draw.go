package engine2D

import (
	"math"

	"ambient-portfolio/internal/engine2D/layout"
	"ambient-portfolio/internal/engine2D/page"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Appearance is the reveal state applied to a block when it is drawn.
// Scale pivots on (PivotX, PivotY) in document coordinates.
type Appearance struct {
	Opacity    float64
	TranslateY float64
	Scale      float64
	PivotX     float64
	PivotY     float64
}

var Opaque = Appearance{Opacity: 1, Scale: 1}

type PageStyle struct {
	Offset  float64
	Appear  func(b *page.Block) Appearance
	Hovered *layout.Element
	Image   func(artworkID int) string
	Caret   bool
}

const (
	roundness = 0.25
	segments  = 8
)

// DrawPage draws the scrolling blocks of p. Blocks outside the viewport are
// skipped.
func (r *Renderer) DrawPage(p *page.Page, st PageStyle) {
	for i := range p.Blocks {
		b := &p.Blocks[i]
		a := Opaque
		if st.Appear != nil {
			a = st.Appear(b)
		}
		if a.Opacity <= 0 {
			continue
		}
		rect := transform(b.Bounds, a, st.Offset)
		if rect.Y > r.Height || rect.Y+rect.H < 0 {
			continue
		}
		r.drawBlock(b, rect, a, st)
	}
}

// DrawHeader draws the fixed navigation bar of p.
func (r *Renderer) DrawHeader(p *page.Page, hovered *layout.Element) {
	rl.DrawRectangle(0, 0, int32(r.Width), int32(page.HeaderHeight), colorHeader)
	rl.DrawLine(0, int32(page.HeaderHeight), int32(r.Width), int32(page.HeaderHeight), colorOutline)
	st := PageStyle{Hovered: hovered}
	for i := range p.Fixed {
		b := &p.Fixed[i]
		r.drawBlock(b, b.Bounds, Opaque, st)
	}
}

// DrawOverlay draws a screen-space page such as the lightbox or the
// floating menu. scrim darkens what is underneath first.
func (r *Renderer) DrawOverlay(p *page.Page, st PageStyle, scrim bool) {
	if scrim {
		rl.DrawRectangle(0, 0, int32(r.Width), int32(r.Height), colorScrim)
	}
	st.Offset = 0
	r.DrawPage(p, st)
}

func transform(bounds layout.Rect, a Appearance, offset float64) layout.Rect {
	rect := bounds
	if a.Scale > 0 && a.Scale != 1 {
		rect.X = a.PivotX + (rect.X-a.PivotX)*a.Scale
		rect.Y = a.PivotY + (rect.Y-a.PivotY)*a.Scale
		rect.W *= a.Scale
		rect.H *= a.Scale
	}
	rect.Y += a.TranslateY - offset
	return rect
}

func rlRect(r layout.Rect) rl.Rectangle {
	return rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.W), float32(r.H))
}

func hovering(el, hovered *layout.Element) bool {
	if el == nil || hovered == nil {
		return false
	}
	for h := hovered; h != nil; h = h.Parent {
		if h == el {
			return true
		}
	}
	return false
}

func (r *Renderer) drawBlock(b *page.Block, rect layout.Rect, a Appearance, st PageStyle) {
	alpha := a.Opacity
	hot := hovering(b.Element, st.Hovered)
	size := b.Size
	if a.Scale > 0 {
		size *= a.Scale
	}

	switch b.Kind {
	case page.KindHeading:
		r.drawLines(b.Lines, rect.X, rect.Y, size, fade(colorText, alpha))
	case page.KindText:
		r.drawLines(b.Lines, rect.X, rect.Y, size, fade(colorMuted, alpha))
	case page.KindNotice:
		r.drawLines(b.Lines, rect.X, rect.Y, size, fade(colorViolet, alpha))

	case page.KindChip:
		fill := fade(colorOutline, 0.35*alpha)
		if b.Accent {
			fill = fade(colorAccent, 0.3*alpha)
		}
		if hot && b.Element != nil && b.Element.Role == layout.RoleButton {
			fill = fade(colorAccent, 0.5*alpha)
		}
		rl.DrawRectangleRounded(rlRect(rect), 0.5, segments, fill)
		r.centerText(b.Lines, rect, size, fade(colorText, alpha))

	case page.KindBar:
		rl.DrawRectangleRounded(rlRect(rect), 1, segments, fade(colorOutline, 0.5*alpha))
		fillW := rect.W * b.Value * a.Opacity
		if fillW > 0 {
			rl.DrawRectangleGradientH(int32(rect.X), int32(rect.Y), int32(fillW), int32(rect.H), fade(colorAccent, alpha), fade(colorViolet, alpha))
		}

	case page.KindCard:
		rl.DrawRectangleRounded(rlRect(rect), 0.06, segments, fade(colorCard, alpha))
		outline := fade(colorOutline, alpha)
		if hot {
			outline = fade(colorAccent, alpha)
		}
		rl.DrawRectangleLinesEx(rlRect(rect), 1, outline)

	case page.KindButton:
		disabled := b.Element != nil && b.Element.Disabled
		switch {
		case disabled:
			rl.DrawRectangleRounded(rlRect(rect), roundness, segments, fade(colorOutline, 0.4*alpha))
		case b.Accent:
			base := colorAccent
			if hot {
				base = colorViolet
			}
			rl.DrawRectangleRounded(rlRect(rect), roundness, segments, fade(base, 0.9*alpha))
		default:
			fill := fade(colorCard, alpha)
			if hot {
				fill = fade(colorOutline, alpha)
			}
			rl.DrawRectangleRounded(rlRect(rect), roundness, segments, fill)
			rl.DrawRectangleLinesEx(rlRect(rect), 1, fade(colorAccent, 0.6*alpha))
		}
		textCol := colorText
		if disabled {
			textCol = colorMuted
		}
		r.centerText(b.Lines, rect, size, fade(textCol, alpha))

	case page.KindLink:
		col := colorAccent
		if !b.Accent {
			col = colorText
		}
		if hot {
			col = colorViolet
		}
		r.drawLines(b.Lines, rect.X, rect.Y, size, fade(col, alpha))
		if hot {
			y := int32(rect.Y + rect.H - 2)
			rl.DrawLine(int32(rect.X), y, int32(rect.X+rect.W), y, fade(col, alpha))
		}

	case page.KindImage:
		r.drawImage(b, rect, alpha, st)

	case page.KindInput:
		rl.DrawRectangleRounded(rlRect(rect), 0.1, segments, fade(colorHeader, alpha))
		outline := colorOutline
		if b.Accent {
			outline = colorAccent
		}
		rl.DrawRectangleLinesEx(rlRect(rect), 1, fade(outline, alpha))
		pad := (rect.H - float64(max(len(b.Lines), 1))*size*page.LineSpacing) / 2
		if rect.H > 3*size*page.LineSpacing {
			pad = 12
		}
		r.drawLines(b.Lines, rect.X+12, rect.Y+pad, size, fade(colorText, alpha))
		if b.Accent && st.Caret {
			last := ""
			if n := len(b.Lines); n > 0 {
				last = b.Lines[n-1]
			}
			cx := rect.X + 12 + r.Measure(last, size) + 1
			cy := rect.Y + pad + float64(max(len(b.Lines)-1, 0))*size*page.LineSpacing
			rl.DrawRectangle(int32(cx), int32(cy), 2, int32(size*1.2), fade(colorText, alpha))
		}
	}
}

func (r *Renderer) drawLines(lines []string, x, y, size float64, col rl.Color) {
	for i, line := range lines {
		r.drawText(line, x, y+float64(i)*size*page.LineSpacing, size, col)
	}
}

func (r *Renderer) centerText(lines []string, rect layout.Rect, size float64, col rl.Color) {
	if len(lines) == 0 {
		return
	}
	w := r.Measure(lines[0], size)
	r.drawText(lines[0], rect.X+(rect.W-w)/2, rect.Y+(rect.H-size)/2, size, col)
}

// drawImage draws an artwork cropped to fill rect, or a placeholder while it
// is still decoding.
func (r *Renderer) drawImage(b *page.Block, rect layout.Rect, alpha float64, st PageStyle) {
	name := ""
	if st.Image != nil {
		name = st.Image(b.Index)
	}
	var tex rl.Texture2D
	ok := false
	if name != "" && r.Textures != nil {
		tex, ok = r.Textures.Get(name)
	}
	if !ok || tex.Width == 0 || tex.Height == 0 {
		rl.DrawRectangleRec(rlRect(rect), fade(colorOutline, 0.3*alpha))
		label := "Loading..."
		if name == "" {
			label = "No image"
		}
		w := r.Measure(label, page.SmallSize)
		r.drawText(label, rect.X+(rect.W-w)/2, rect.Y+rect.H/2-page.SmallSize/2, page.SmallSize, fade(colorMuted, alpha))
		return
	}

	src := coverSource(float64(tex.Width), float64(tex.Height), rect.W, rect.H)
	rl.DrawTexturePro(tex, src, rlRect(rect), rl.NewVector2(0, 0), 0, fade(rl.White, alpha))
}

// coverSource crops the texture to the destination aspect, centred.
func coverSource(tw, th, dw, dh float64) rl.Rectangle {
	if dw <= 0 || dh <= 0 {
		return rl.NewRectangle(0, 0, float32(tw), float32(th))
	}
	scale := math.Max(dw/tw, dh/th)
	sw, sh := dw/scale, dh/scale
	return rl.NewRectangle(float32((tw-sw)/2), float32((th-sh)/2), float32(sw), float32(sh))
}
