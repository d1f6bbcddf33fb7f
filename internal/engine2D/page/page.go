// Package page lays the site description out into blocks the renderer
// draws and an element tree the pointer is hit tested against. Building a
// page has no rendering dependency; only text measurement is injected.
package page

import (
	"ambient-portfolio/internal/engine2D/layout"
)

const (
	HeaderHeight = 64.0
	MaxColumn    = 1040.0
	Margin       = 24.0
	SectionPad   = 96.0
	Gap          = 24.0

	TitleSize   = 56.0
	HeadingSize = 36.0
	BodySize    = 18.0
	SmallSize   = 14.0
	LineSpacing = 1.5
)

type Kind int

const (
	KindHeading Kind = iota
	KindText
	KindChip
	KindBar
	KindCard
	KindButton
	KindLink
	KindImage
	KindInput
	KindNotice
)

// Block is one drawable piece of a page, in document coordinates.
type Block struct {
	Kind    Kind
	Section string
	Lines   []string
	Size    float64
	Bounds  layout.Rect
	Value   float64 // bar fill in [0, 1]
	Element *layout.Element
	Accent  bool
	Index   int // artwork id for gallery cards, field for inputs
}

// Section is a revealable band of the page.
type Section struct {
	ID     string
	Top    float64
	Height float64
}

// Page is one laid out view. Header blocks are fixed to the screen; every
// other block scrolls.
type Page struct {
	Width, Height float64 // Height is the full document height
	Viewport      float64

	Root     *layout.Element
	Header   *layout.Element
	Blocks   []Block
	Fixed    []Block
	Sections []Section
}

// MaxScroll is how far the document can scroll in the viewport.
func (p *Page) MaxScroll() float64 {
	return max(0, p.Height-p.Viewport)
}

// HitTest finds the element under a screen point. The fixed header is
// tested first; the document is tested at the scrolled position.
func (p *Page) HitTest(x, y, offset float64) *layout.Element {
	if hit := p.Header.HitTest(x, y); hit != nil && hit != p.Header {
		return hit
	}
	return p.Root.HitTest(x, y+offset)
}

func (p *Page) Section(id string) (Section, bool) {
	for _, s := range p.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// builder accumulates blocks down a centred column.
type builder struct {
	m      Measurer
	page   *Page
	x, w   float64
	y      float64
	parent *layout.Element
	sec    string
}

func newBuilder(m Measurer, width, height float64) *builder {
	if m == nil {
		m = ApproxMeasurer{}
	}
	col := min(width-2*Margin, MaxColumn)
	col = max(col, 0)
	p := &Page{
		Width:    width,
		Viewport: height,
		Root:     layout.NewRoot(width, height),
		Header:   &layout.Element{ID: "header", Role: layout.RoleSection, Bounds: layout.Rect{W: width, H: HeaderHeight}},
	}
	return &builder{m: m, page: p, x: (width - col) / 2, w: col, y: HeaderHeight, parent: p.Root}
}

func (b *builder) lineHeight(size float64) float64 {
	return size * LineSpacing
}

func (b *builder) add(blk Block) *Block {
	blk.Section = b.sec
	b.page.Blocks = append(b.page.Blocks, blk)
	return &b.page.Blocks[len(b.page.Blocks)-1]
}

func (b *builder) element(id string, role layout.Role, r layout.Rect, classes ...string) *layout.Element {
	return b.parent.Add(&layout.Element{ID: id, Role: role, Bounds: r, Classes: classes})
}

// text wraps s across the column and advances the cursor.
func (b *builder) text(kind Kind, s string, size float64) {
	lines := Wrap(b.m, s, size, b.w)
	h := float64(len(lines)) * b.lineHeight(size)
	r := layout.Rect{X: b.x, Y: b.y, W: b.w, H: h}
	b.add(Block{Kind: kind, Lines: lines, Size: size, Bounds: r, Element: b.element("", layout.RoleText, r)})
	b.y += h + Gap/2
}

// beginSection opens a section band and returns a func that closes it,
// growing the band to at least minHeight.
func (b *builder) beginSection(id string, minHeight float64) func() {
	top := b.y
	el := b.page.Root.Add(&layout.Element{ID: id, Role: layout.RoleSection, Bounds: layout.Rect{X: 0, Y: top, W: b.page.Width}})
	prevParent, prevSec := b.parent, b.sec
	b.parent, b.sec = el, id
	b.y += SectionPad
	return func() {
		h := max(b.y-top+SectionPad, minHeight)
		el.Bounds.H = h
		b.page.Sections = append(b.page.Sections, Section{ID: id, Top: top, Height: h})
		b.y = top + h
		b.parent, b.sec = prevParent, prevSec
	}
}

// header lays out the fixed navigation bar.
func (b *builder) header(title string, links [][2]string) {
	p := b.page
	r := layout.Rect{X: b.x, Y: (HeaderHeight - BodySize*LineSpacing) / 2, W: b.m.Measure(title, BodySize), H: BodySize * LineSpacing}
	el := p.Header.Add(&layout.Element{ID: "brand", Role: layout.RoleLink, Href: "/", Bounds: r})
	p.Fixed = append(p.Fixed, Block{Kind: KindLink, Lines: []string{title}, Size: BodySize, Bounds: r, Element: el, Accent: true})

	x := b.x + b.w
	for i := len(links) - 1; i >= 0; i-- {
		label, href := links[i][0], links[i][1]
		w := b.m.Measure(label, SmallSize) + Gap
		x -= w
		r := layout.Rect{X: x, Y: (HeaderHeight - SmallSize*LineSpacing) / 2, W: w, H: SmallSize * LineSpacing}
		el := p.Header.Add(&layout.Element{ID: "nav:" + href, Role: layout.RoleLink, Href: href, Bounds: r})
		p.Fixed = append(p.Fixed, Block{Kind: KindLink, Lines: []string{label}, Size: SmallSize, Bounds: r, Element: el})
	}
}

func (b *builder) finish() *Page {
	b.page.Height = max(b.y, b.page.Viewport)
	b.page.Root.Bounds.H = b.page.Height
	return b.page
}

var navLinks = [][2]string{{"Home", "/"}, {"Gallery", "/gallery"}, {"Contact", "/contact"}}
