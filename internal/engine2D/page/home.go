package page

import (
	"fmt"
	"strings"

	"ambient-portfolio/internal/content"
	"ambient-portfolio/internal/engine2D/layout"
)

const (
	cardPad     = 20.0
	cardMinW    = 300.0
	chipPadX    = 12.0
	barHeight   = 8.0
	buttonPadX  = 24.0
	buttonPadY  = 12.0
	heroRoleGap = 8.0
)

// BuildHome lays out the single-page portfolio: hero, about, skills,
// projects and contact links. Every section is at least one viewport tall.
func BuildHome(site *content.Site, width, height float64, m Measurer) *Page {
	b := newBuilder(m, width, height)
	b.header(site.Title, navLinks)

	end := b.beginSection("hero", height-HeaderHeight)
	b.y += height / 6
	b.text(KindHeading, site.Hero.Title, TitleSize)
	b.text(KindText, site.Hero.Subtitle, BodySize)
	b.chips("role", site.Hero.Roles, true)
	b.y += Gap
	b.buttons([][2]string{{"View Gallery", "/gallery"}, {"Get in Touch", "/contact"}})
	end()

	end = b.beginSection("about", height)
	b.text(KindHeading, "About Me", HeadingSize)
	for _, p := range site.About.Paragraphs {
		b.text(KindText, p, BodySize)
	}
	b.grid(len(site.About.Features), func(i int) {
		f := site.About.Features[i]
		b.text(KindHeading, f.Title, BodySize)
		b.text(KindText, f.Description, SmallSize)
	})
	end()

	end = b.beginSection("skills", height)
	b.text(KindHeading, "Skills", HeadingSize)
	b.grid(len(site.Skills), func(i int) {
		g := site.Skills[i]
		b.text(KindHeading, g.Category, BodySize)
		for _, s := range g.Skills {
			b.bar(s)
		}
	})
	end()

	end = b.beginSection("projects", height)
	b.text(KindHeading, "Projects", HeadingSize)
	b.grid(len(site.Projects), func(i int) {
		p := site.Projects[i]
		b.text(KindHeading, p.Title, BodySize)
		b.text(KindText, p.Description, SmallSize)
		b.chips(fmt.Sprintf("project-%d-tech", i), p.Tech, false)
		var links [][2]string
		if p.GitHub != "" {
			links = append(links, [2]string{"GitHub", p.GitHub})
		}
		if p.Demo != "" {
			links = append(links, [2]string{"Live Demo", p.Demo})
		}
		b.links(links)
	})
	end()

	end = b.beginSection("contact", height)
	heading := site.Contact.Heading
	if heading == "" {
		heading = "Get In Touch"
	}
	b.text(KindHeading, heading, HeadingSize)
	b.grid(len(site.Contact.Methods), func(i int) {
		cm := site.Contact.Methods[i]
		b.text(KindText, cm.Title, SmallSize)
		if cm.Link != "" {
			b.links([][2]string{{cm.Value, cm.Link}})
		} else {
			b.text(KindText, cm.Value, BodySize)
		}
	})
	b.buttons([][2]string{{"Send a Message", "/contact"}})
	end()

	return b.finish()
}

// ButtonID is the element id of a route button inside a section.
func ButtonID(section, href string) string {
	return "button:" + section + ":" + href
}

// chips lays out a wrapping row of tags.
func (b *builder) chips(id string, labels []string, accent bool) {
	if len(labels) == 0 {
		return
	}
	h := b.lineHeight(SmallSize)
	x := b.x
	for i, label := range labels {
		w := b.m.Measure(label, SmallSize) + 2*chipPadX
		if x > b.x && x+w > b.x+b.w {
			x = b.x
			b.y += h + heroRoleGap
		}
		r := layout.Rect{X: x, Y: b.y, W: w, H: h}
		el := b.element(fmt.Sprintf("%s-%d", id, i), layout.RoleText, r, "chip")
		b.add(Block{Kind: KindChip, Lines: []string{label}, Size: SmallSize, Bounds: r, Element: el, Accent: accent})
		x += w + heroRoleGap
	}
	b.y += h + Gap/2
}

// buttons lays out a row of route or link buttons.
func (b *builder) buttons(items [][2]string) {
	h := b.lineHeight(BodySize) + 2*buttonPadY
	x := b.x
	for _, it := range items {
		w := b.m.Measure(it[0], BodySize) + 2*buttonPadX
		r := layout.Rect{X: x, Y: b.y, W: w, H: h}
		el := b.element(ButtonID(b.sec, it[1]), layout.RoleButton, r)
		el.Href = it[1]
		b.add(Block{Kind: KindButton, Lines: []string{it[0]}, Size: BodySize, Bounds: r, Element: el, Accent: x == b.x})
		x += w + Gap/2
	}
	b.y += h + Gap
}

func (b *builder) links(items [][2]string) {
	if len(items) == 0 {
		return
	}
	h := b.lineHeight(SmallSize)
	x := b.x
	for _, it := range items {
		w := b.m.Measure(it[0], SmallSize)
		r := layout.Rect{X: x, Y: b.y, W: w, H: h}
		el := b.element("link:"+it[1], layout.RoleLink, r)
		el.Href = it[1]
		b.add(Block{Kind: KindLink, Lines: []string{it[0]}, Size: SmallSize, Bounds: r, Element: el, Accent: true})
		x += w + Gap
	}
	b.y += h + Gap/2
}

// bar lays out a skill name with its level bar underneath.
func (b *builder) bar(s content.Skill) {
	label := fmt.Sprintf("%s  %d%%", s.Name, s.Level)
	h := b.lineHeight(SmallSize)
	r := layout.Rect{X: b.x, Y: b.y, W: b.w, H: h}
	b.add(Block{Kind: KindText, Lines: []string{label}, Size: SmallSize, Bounds: r, Element: b.element("", layout.RoleText, r)})
	b.y += h
	br := layout.Rect{X: b.x, Y: b.y, W: b.w, H: barHeight}
	b.add(Block{Kind: KindBar, Bounds: br, Value: float64(s.Level) / 100, Element: b.element("skill:"+strings.ToLower(s.Name), layout.RoleText, br, "bar")})
	b.y += barHeight + Gap/2
}

// grid lays n cards out in as many columns as fit, calling fill with the
// builder narrowed to each card.
func (b *builder) grid(n int, fill func(i int)) {
	b.gridWith(n, nil, fill)
}

// cardSpec names the i-th card element; nil means a plain section card.
type cardSpec func(i int) (id string, role layout.Role, index int)

func (b *builder) gridWith(n int, spec cardSpec, fill func(i int)) {
	if n == 0 {
		return
	}
	cols := max(1, int((b.w+Gap)/(cardMinW+Gap)))
	cols = min(cols, n)
	cw := (b.w - float64(cols-1)*Gap) / float64(cols)

	x0, w0, parent := b.x, b.w, b.parent
	rowTop := b.y
	rowBottom := rowTop
	for i := 0; i < n; i++ {
		col := i % cols
		if col == 0 && i > 0 {
			rowTop = rowBottom + Gap
		}
		cx := x0 + float64(col)*(cw+Gap)
		r := layout.Rect{X: cx, Y: rowTop, W: cw}
		id, role, index := fmt.Sprintf("%s-card-%d", b.sec, i), layout.RoleSection, i
		if spec != nil {
			id, role, index = spec(i)
		}
		el := parent.Add(&layout.Element{ID: id, Role: role, Bounds: r, Classes: []string{"card"}})
		idx := len(b.page.Blocks)
		b.add(Block{Kind: KindCard, Bounds: r, Element: el, Index: index})

		b.parent = el
		b.x, b.w, b.y = cx+cardPad, cw-2*cardPad, rowTop+cardPad
		fill(i)
		h := b.y - rowTop + cardPad - Gap/2
		el.Bounds.H = h
		b.page.Blocks[idx].Bounds.H = h
		rowBottom = max(rowBottom, rowTop+h)
	}
	b.x, b.w, b.parent = x0, w0, parent
	b.y = rowBottom + Gap
}
