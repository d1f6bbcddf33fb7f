// Package gallery holds the view state of the artwork gallery: the category
// filter, per-card image carousels and the full-size lightbox.
package gallery

import (
	"ambient-portfolio/internal/content"
	"ambient-portfolio/internal/engine2D/input"
)

const (
	AllCategories = "All"
	// RotateInterval is how long a card shows one image before advancing.
	RotateInterval = 3.0
)

// Lightbox is the full-size viewer. Index addresses Artwork.Images.
type Lightbox struct {
	Artwork content.Artwork
	Index   int
}

func (l Lightbox) Image() string {
	if len(l.Artwork.Images) == 0 {
		return ""
	}
	return l.Artwork.Images[l.Index]
}

type carousel struct {
	index   int
	elapsed float64
	hovered bool
}

type Gallery struct {
	artworks  []content.Artwork
	filters   []string
	filter    string
	carousels map[int]*carousel
	lightbox  *Lightbox
	release   func()
}

// New builds the gallery for a site. With a dispatcher, Escape closes the
// lightbox and the arrow keys page through its images.
func New(site *content.Site, d *input.Dispatcher) *Gallery {
	g := &Gallery{filter: AllCategories}
	g.Load(site)
	if d != nil {
		g.release = d.On(input.KeyPress, g.onKey)
	}
	return g
}

// Load swaps the artworks, e.g. after a content reload. A filter that no
// longer exists falls back to All and an open lightbox is closed.
func (g *Gallery) Load(site *content.Site) {
	g.artworks = append([]content.Artwork(nil), site.Gallery...)
	g.filters = append([]string{AllCategories}, site.Categories()...)
	g.carousels = make(map[int]*carousel, len(g.artworks))
	for _, a := range g.artworks {
		g.carousels[a.ID] = &carousel{}
	}
	if !g.hasFilter(g.filter) {
		g.filter = AllCategories
	}
	g.lightbox = nil
}

func (g *Gallery) Filters() []string { return g.filters }
func (g *Gallery) Filter() string    { return g.filter }

// SetFilter selects a category. Unknown categories are ignored.
func (g *Gallery) SetFilter(category string) bool {
	if !g.hasFilter(category) {
		return false
	}
	g.filter = category
	return true
}

func (g *Gallery) hasFilter(category string) bool {
	for _, f := range g.filters {
		if f == category {
			return true
		}
	}
	return false
}

// Visible returns the artworks matching the active filter in site order.
func (g *Gallery) Visible() []content.Artwork {
	if g.filter == AllCategories {
		return g.artworks
	}
	var out []content.Artwork
	for _, a := range g.artworks {
		if a.Category == g.filter {
			out = append(out, a)
		}
	}
	return out
}

func (g *Gallery) find(id int) (content.Artwork, bool) {
	for _, a := range g.artworks {
		if a.ID == id {
			return a, true
		}
	}
	return content.Artwork{}, false
}

// SetHovered pauses the carousel of the hovered card.
func (g *Gallery) SetHovered(id int, hovered bool) {
	if c, ok := g.carousels[id]; ok {
		c.hovered = hovered
		if !hovered {
			c.elapsed = 0
		}
	}
}

// CardImage is the image index currently shown on a card.
func (g *Gallery) CardImage(id int) int {
	if c, ok := g.carousels[id]; ok {
		return c.index
	}
	return 0
}

// ShowCardImage jumps a card's carousel to index.
func (g *Gallery) ShowCardImage(id, index int) {
	a, ok := g.find(id)
	c := g.carousels[id]
	if !ok || c == nil || len(a.Images) == 0 {
		return
	}
	c.index = wrap(index, len(a.Images))
	c.elapsed = 0
}

// Step advances the carousels of cards that are not hovered.
func (g *Gallery) Step(dt float64) {
	for _, a := range g.artworks {
		c := g.carousels[a.ID]
		if c.hovered || len(a.Images) < 2 {
			continue
		}
		c.elapsed += dt
		for c.elapsed >= RotateInterval {
			c.elapsed -= RotateInterval
			c.index = (c.index + 1) % len(a.Images)
		}
	}
}

// Open shows image index of an artwork full size.
func (g *Gallery) Open(id, index int) bool {
	a, ok := g.find(id)
	if !ok || len(a.Images) == 0 {
		return false
	}
	g.lightbox = &Lightbox{Artwork: a, Index: wrap(index, len(a.Images))}
	return true
}

func (g *Gallery) Close() {
	g.lightbox = nil
}

// Lightbox returns the open viewer, if any.
func (g *Gallery) Lightbox() (Lightbox, bool) {
	if g.lightbox == nil {
		return Lightbox{}, false
	}
	return *g.lightbox, true
}

// Next and Prev wrap around the artwork's images.
func (g *Gallery) Next() {
	if g.lightbox != nil {
		g.lightbox.Index = wrap(g.lightbox.Index+1, len(g.lightbox.Artwork.Images))
	}
}

func (g *Gallery) Prev() {
	if g.lightbox != nil {
		g.lightbox.Index = wrap(g.lightbox.Index-1, len(g.lightbox.Artwork.Images))
	}
}

func (g *Gallery) onKey(ev input.Event) {
	if g.lightbox == nil {
		return
	}
	switch ev.Key {
	case input.KeyEscape:
		g.Close()
	case input.KeyLeft:
		g.Prev()
	case input.KeyRight:
		g.Next()
	}
}

// Dispose releases the key listener.
func (g *Gallery) Dispose() {
	if g.release != nil {
		g.release()
		g.release = nil
	}
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
