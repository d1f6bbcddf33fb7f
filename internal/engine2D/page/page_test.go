package page

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"ambient-portfolio/internal/contact"
	"ambient-portfolio/internal/content"
	"ambient-portfolio/internal/engine2D/layout"
	"ambient-portfolio/internal/gallery"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	vw = 1280.0
	vh = 720.0
)

func defaultSite(t *testing.T) *content.Site {
	t.Helper()
	site, err := content.Default()
	require.NoError(t, err)
	return site
}

func TestWrap(t *testing.T) {
	m := ApproxMeasurer{Advance: 1}
	got := Wrap(m, "aa bb cc", 1, 5)
	if diff := cmp.Diff([]string{"aa bb", "cc"}, got); diff != "" {
		t.Errorf("Wrap mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"abcdefgh", "ij"}, Wrap(m, "abcdefgh ij", 1, 5))
	assert.Equal(t, []string{"one", "", "two"}, Wrap(m, "one\n\ntwo", 1, 50))
}

func TestHomeSectionsFillViewport(t *testing.T) {
	p := BuildHome(defaultSite(t), vw, vh, nil)

	var ids []string
	for i, s := range p.Sections {
		ids = append(ids, s.ID)
		if i == 0 {
			assert.Equal(t, HeaderHeight, s.Top)
			assert.GreaterOrEqual(t, s.Height, vh-HeaderHeight)
			continue
		}
		assert.GreaterOrEqual(t, s.Height, vh, s.ID)
		prev := p.Sections[i-1]
		assert.InDelta(t, prev.Top+prev.Height, s.Top, 1e-9, "sections are contiguous")
	}
	assert.Equal(t, []string{"hero", "about", "skills", "projects", "contact"}, ids)

	last := p.Sections[len(p.Sections)-1]
	assert.InDelta(t, last.Top+last.Height, p.Height, 1e-9)
	assert.InDelta(t, p.Height-vh, p.MaxScroll(), 1e-9)
}

func TestHomeBlocksStayInsideColumn(t *testing.T) {
	p := BuildHome(defaultSite(t), vw, vh, nil)
	col := min(vw-2*Margin, MaxColumn)
	left := (vw - col) / 2
	for _, b := range p.Blocks {
		assert.GreaterOrEqual(t, b.Bounds.X, left-1e-9)
		assert.LessOrEqual(t, b.Bounds.X+b.Bounds.W, left+col+1e-9)
		assert.NotEmpty(t, b.Section)
	}

	var bars int
	for _, b := range p.Blocks {
		if b.Kind == KindBar {
			bars++
			assert.True(t, b.Value >= 0 && b.Value <= 1)
		}
	}
	assert.Positive(t, bars)
}

func TestHomeHitTest(t *testing.T) {
	p := BuildHome(defaultSite(t), vw, vh, nil)

	nav := p.Header.Find("nav:/gallery")
	require.NotNil(t, nav)
	hit := p.HitTest(nav.Bounds.X+1, nav.Bounds.Y+1, 5000)
	assert.Same(t, nav, hit)

	btn := p.Root.Find(ButtonID("hero", "/contact"))
	require.NotNil(t, btn)
	assert.Equal(t, layout.RoleButton, btn.Role)
	offset := btn.Bounds.Y - 200
	hit = p.HitTest(btn.Bounds.X+1, 201, offset)
	assert.Same(t, btn, hit)
	assert.Equal(t, "hero", hit.Closest(layout.RoleSection).ID)
}

func TestGalleryPageFollowsFilter(t *testing.T) {
	site := defaultSite(t)
	g := gallery.New(site, nil)

	cards := func(p *Page) []int {
		var ids []int
		for _, b := range p.Blocks {
			if b.Kind == KindCard {
				ids = append(ids, b.Index)
			}
		}
		return ids
	}

	p := BuildGallery(site.Title, g, vw, vh, nil)
	assert.Len(t, cards(p), len(site.Gallery))
	chip := p.Root.Find("filter:" + gallery.AllCategories)
	require.NotNil(t, chip)

	require.True(t, g.SetFilter(site.Gallery[1].Category))
	p = BuildGallery(site.Title, g, vw, vh, nil)
	assert.Equal(t, []int{site.Gallery[1].ID}, cards(p))

	card := p.Root.Find("artwork:" + strconv.Itoa(site.Gallery[1].ID))
	require.NotNil(t, card)
	assert.Equal(t, layout.RoleButton, card.Role)
	assert.True(t, card.HasClass("card"))
}

func TestLightboxControls(t *testing.T) {
	site := defaultSite(t)
	g := gallery.New(site, nil)
	require.True(t, g.Open(site.Gallery[0].ID, 0))
	lb, ok := g.Lightbox()
	require.True(t, ok)

	p := BuildLightbox(lb, vw, vh, nil)
	for _, id := range []string{"lightbox:prev", "lightbox:next", "lightbox:close", "lightbox:image"} {
		el := p.Root.Find(id)
		require.NotNil(t, el, id)
		assert.LessOrEqual(t, el.Bounds.Y+el.Bounds.H, vh)
	}
	assert.Equal(t, vh, p.Height)
}

type stubSubmitter struct{}

func (stubSubmitter) Submit(context.Context, contact.Submission) error { return nil }

func TestContactPageSubmitState(t *testing.T) {
	site := defaultSite(t)
	form := contact.NewForm("", stubSubmitter{})

	p := BuildContact(site, form, NoFocus, vw, vh, nil)
	submit := p.Root.Find("submit")
	require.NotNil(t, submit)
	assert.True(t, submit.Disabled)

	for f, v := range []string{"Ada", "ada@example.com", "Hello", "A message"} {
		form.Set(contact.Field(f), v)
	}
	p = BuildContact(site, form, contact.FieldEmail, vw, vh, nil)
	assert.False(t, p.Root.Find("submit").Disabled)

	var focused []int
	for _, b := range p.Blocks {
		if b.Kind == KindInput && b.Accent {
			focused = append(focused, b.Index)
		}
	}
	assert.Equal(t, []int{int(contact.FieldEmail)}, focused)

	assert.Equal(t, contact.OutcomeVerificationShown, form.Submit(context.Background()))
	p = BuildContact(site, form, NoFocus, vw, vh, nil)
	var notices []string
	for _, b := range p.Blocks {
		if b.Kind == KindNotice {
			notices = append(notices, b.Lines...)
		}
	}
	assert.Contains(t, strings.Join(notices, " "), "unavailable")
	assert.True(t, p.Root.Find("submit").Disabled)
}

func TestContactSubmitStaysLiveAfterFailedCheck(t *testing.T) {
	site := defaultSite(t)
	form := contact.NewForm("site-key", stubSubmitter{})
	for f, v := range []string{"Ada", "ada@example.com", "Hello", "A message"} {
		form.Set(contact.Field(f), v)
	}
	assert.Equal(t, contact.OutcomeVerificationShown, form.Submit(context.Background()))
	form.OnVerifyError(errors.New("challenge failed"))

	p := BuildContact(site, form, NoFocus, vw, vh, nil)
	submit := p.Root.Find("submit")
	require.NotNil(t, submit)
	assert.False(t, submit.Disabled)
	assert.Equal(t, "Verify & Send", SubmitLabel(form))
}

func TestFieldIDRoundTrip(t *testing.T) {
	for _, f := range []contact.Field{contact.FieldName, contact.FieldMessage} {
		got, ok := ParseFieldID(FieldID(f))
		assert.True(t, ok)
		assert.Equal(t, f, got)
	}
	_, ok := ParseFieldID("field:9")
	assert.False(t, ok)
	_, ok = ParseFieldID("submit")
	assert.False(t, ok)
}

type recordingHost struct {
	calls []string
}

func (h *recordingHost) ScrollTop()          { h.calls = append(h.calls, "top") }
func (h *recordingHost) OpenLink(url string) { h.calls = append(h.calls, "link "+url) }
func (h *recordingHost) Notice(text string)  { h.calls = append(h.calls, "notice "+text) }
func (h *recordingHost) Navigate(p string)   { h.calls = append(h.calls, "route "+p) }

func TestMenu(t *testing.T) {
	m := NewMenu([]content.Action{
		{Label: "Top", Kind: content.ActionScrollTop},
		{Label: "GitHub", Kind: content.ActionLink, Target: "https://github.com/example"},
		{Label: "Discord", Kind: content.ActionNotice, Target: "Discord: @example"},
		{Label: "Gallery", Kind: content.ActionRoute, Target: "/gallery"},
	})

	closed := m.Layout(vw, vh, nil)
	assert.Nil(t, closed.Root.Find(MenuItemID(0)))

	m.Toggle()
	require.True(t, m.Open())
	open := m.Layout(vw, vh, nil)
	item := open.Root.Find(MenuItemID(1))
	require.NotNil(t, item)
	assert.Equal(t, layout.RoleLink, item.Role)
	idx, ok := ParseMenuItemID(item.ID)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	h := &recordingHost{}
	for i := 0; i < 4; i++ {
		m.Toggle()
		assert.True(t, m.Activate(i, h))
		assert.False(t, m.Open())
	}
	assert.Equal(t, []string{"top", "link https://github.com/example", "notice Discord: @example", "route /gallery"}, h.calls)
	assert.False(t, m.Activate(9, h))
}
