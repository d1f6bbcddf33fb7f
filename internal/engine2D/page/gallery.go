package page

import (
	"fmt"
	"strings"

	"ambient-portfolio/internal/engine2D/layout"
	"ambient-portfolio/internal/gallery"
)

const imageAspect = 0.75

// BuildGallery lays out the filter chips and the artwork grid for the
// current filter.
func BuildGallery(title string, g *gallery.Gallery, width, height float64, m Measurer) *Page {
	b := newBuilder(m, width, height)
	b.header(title, navLinks)

	end := b.beginSection("gallery", height-HeaderHeight)
	b.text(KindHeading, "Gallery", HeadingSize)
	b.text(KindText, "3D artwork and renders", BodySize)
	b.filters(g.Filters(), g.Filter())

	arts := g.Visible()
	if len(arts) == 0 {
		b.text(KindNotice, "No artworks in this category yet.", BodySize)
	}
	b.gridWith(len(arts), func(i int) (string, layout.Role, int) {
		return fmt.Sprintf("artwork:%d", arts[i].ID), layout.RoleButton, arts[i].ID
	}, func(i int) {
		a := arts[i]
		r := layout.Rect{X: b.x, Y: b.y, W: b.w, H: b.w * imageAspect}
		b.add(Block{Kind: KindImage, Bounds: r, Index: a.ID, Element: b.element("", layout.RoleImage, r)})
		b.y += r.H + Gap/2
		b.text(KindHeading, a.Title, BodySize)
		if meta := joinNonEmpty(" · ", a.Category, a.Year); meta != "" {
			b.text(KindText, meta, SmallSize)
		}
		b.chips(fmt.Sprintf("artwork-%d-tag", a.ID), a.Tags, false)
	})
	end()
	return b.finish()
}

func (b *builder) filters(filters []string, current string) {
	h := b.lineHeight(SmallSize) + buttonPadY
	x := b.x
	for _, f := range filters {
		w := b.m.Measure(f, SmallSize) + 2*chipPadX
		if x > b.x && x+w > b.x+b.w {
			x = b.x
			b.y += h + heroRoleGap
		}
		r := layout.Rect{X: x, Y: b.y, W: w, H: h}
		el := b.element("filter:"+f, layout.RoleButton, r, "chip")
		b.add(Block{Kind: KindChip, Lines: []string{f}, Size: SmallSize, Bounds: r, Element: el, Accent: f == current})
		x += w + heroRoleGap
	}
	b.y += h + Gap
}

// BuildLightbox lays out the enlarged artwork overlay in screen space.
func BuildLightbox(lb gallery.Lightbox, width, height float64, m Measurer) *Page {
	b := newBuilder(m, width, height)
	b.y = Margin
	a := lb.Artwork

	side := min(b.w*0.62, height-2*Margin)
	img := layout.Rect{X: b.x, Y: b.y, W: side, H: side * imageAspect}
	if img.H > height-2*Margin {
		img.H = height - 2*Margin
		img.W = img.H / imageAspect
	}
	panel := b.element("lightbox", layout.RoleSection, layout.Rect{X: b.x, Y: b.y, W: b.w, H: height - 2*Margin})
	b.parent = panel
	b.add(Block{Kind: KindCard, Bounds: panel.Bounds, Element: panel})
	b.add(Block{Kind: KindImage, Bounds: img, Index: a.ID, Element: b.element("lightbox:image", layout.RoleImage, img)})

	x0, w0 := b.x, b.w
	b.x = img.X + img.W + Gap
	b.w = x0 + w0 - b.x - cardPad
	b.y = img.Y + cardPad
	b.text(KindHeading, a.Title, HeadingSize*0.75)
	b.text(KindText, a.Description, SmallSize)
	for _, line := range artworkMeta(a.Software, a.Complexity, a.RenderTime, a.PolyCount, a.Duration) {
		b.text(KindText, line, SmallSize)
	}
	if n := len(a.Images); n > 1 {
		b.text(KindText, fmt.Sprintf("%d / %d", lb.Index+1, n), SmallSize)
	}
	b.x, b.w = x0, w0

	bh := b.lineHeight(BodySize) + 2*buttonPadY
	by := img.Y + img.H + Gap/2
	controls := [][2]string{{"‹ Prev", "lightbox:prev"}, {"Next ›", "lightbox:next"}, {"Close", "lightbox:close"}}
	x := img.X
	for _, c := range controls {
		w := b.m.Measure(c[0], BodySize) + 2*buttonPadX
		r := layout.Rect{X: x, Y: by, W: w, H: bh}
		el := b.element(c[1], layout.RoleButton, r)
		b.add(Block{Kind: KindButton, Lines: []string{c[0]}, Size: BodySize, Bounds: r, Element: el})
		x += w + Gap/2
	}
	p := b.page
	p.Height = height
	p.Root.Bounds.H = height
	return p
}

func artworkMeta(software []string, complexity, renderTime, polys, duration string) []string {
	var out []string
	if len(software) > 0 {
		out = append(out, "Software: "+strings.Join(software, ", "))
	}
	for _, kv := range [][2]string{{"Complexity", complexity}, {"Render time", renderTime}, {"Polygons", polys}, {"Duration", duration}} {
		if kv[1] != "" {
			out = append(out, kv[0]+": "+kv[1])
		}
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
