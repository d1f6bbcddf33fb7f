package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"ambient-portfolio/internal/config"
	"ambient-portfolio/internal/contact"
	"ambient-portfolio/internal/content"
	"ambient-portfolio/internal/debug"
	"ambient-portfolio/internal/engine2D"
	"ambient-portfolio/internal/engine2D/clock"
	"ambient-portfolio/internal/engine2D/cursor"
	"ambient-portfolio/internal/engine2D/input"
	"ambient-portfolio/internal/engine2D/layout"
	"ambient-portfolio/internal/engine2D/page"
	"ambient-portfolio/internal/engine2D/particle"
	"ambient-portfolio/internal/engine2D/reveal"
	"ambient-portfolio/internal/engine2D/scroll"
	"ambient-portfolio/internal/engine2D/shader"
	"ambient-portfolio/internal/gallery"
	"ambient-portfolio/internal/prefs"
	"ambient-portfolio/internal/readiness"
	"ambient-portfolio/internal/router"
	"ambient-portfolio/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	noticeDuration  = 3.0
	textureUploads  = 2
	caretBlinkHz    = 1.6
	defaultStagger  = 0.1
	wallpaperMode   = "wallpaper"
	pendingTaskSize = 16
)

type Window struct {
	cfg    *config.Config
	site   *content.Site
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	tasks  chan func()

	clock      *clock.FrameClock
	dispatcher *input.Dispatcher
	poller     *engine2D.Poller
	global     *utils.GlobalPointer
	renderer   *engine2D.Renderer
	scroll     *scroll.Proxy
	revealer   *reveal.Revealer
	field      *particle.Field
	follower   *cursor.Follower
	gallery    *gallery.Gallery
	router     *router.Router
	form       *contact.Form
	verifier   contact.Verifier
	menu       *page.Menu
	store      prefs.Store
	prefs      *prefs.Manager
	loading    *readiness.Screen
	report     <-chan readiness.Report
	overlay    *debug.Overlay
	stats      *debug.Stats
	watcher    *content.Watcher
	artworks   map[int]content.Artwork

	page        *page.Page
	menuPage    *page.Page
	lightbox    *page.Page
	dirty       bool
	watched     []string
	focus       contact.Field
	pressedID   string
	hoveredCard int
	notice      string
	noticeLeft  float64
	submitting  bool
	verifying   bool
	reduced     bool
	elapsed     float64
	layoutReady chan struct{}
	layoutOnce  sync.Once
	releases    []func()
}

func run(ctx context.Context, cfg *config.Config) error {
	site, err := loadSite(cfg)
	if err != nil {
		return err
	}

	converted, err := prepareGallery(ctx, cfg)
	if err != nil {
		utils.Warn("Gallery assets unavailable: %v", err)
	}

	store, err := openPrefsStore(cfg)
	if err != nil {
		utils.Warn("Preferences will not be saved: %v", err)
		store = prefs.NewMemoryStore()
	}
	manager, err := prefs.Open(store, cfg.Motion.ReducedMotion)
	if err != nil {
		utils.Warn("Could not save preferences: %v", err)
	}

	if err := openWindow(cfg); err != nil {
		store.Close()
		return err
	}
	defer rl.CloseWindow()

	w := NewWindow(ctx, cfg, site, store, manager, converted)
	defer w.Close()
	w.Run()
	return nil
}

func openWindow(cfg *config.Config) error {
	rl.SetTraceLogCallback(utils.RaylibLogCallback)

	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	if cfg.Window.Mode == wallpaperMode {
		flags |= uint32(rl.FlagWindowUndecorated | rl.FlagWindowMousePassthrough)
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	if !rl.IsWindowReady() {
		return fmt.Errorf("failed to open window")
	}
	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(cfg.Window.FPS))

	switch {
	case cfg.Window.Mode == wallpaperMode:
		monitor := rl.GetCurrentMonitor()
		rl.SetWindowPosition(0, 0)
		rl.SetWindowSize(rl.GetMonitorWidth(monitor), rl.GetMonitorHeight(monitor))
	case cfg.Window.Fullscreen:
		rl.ToggleFullscreen()
	}
	return nil
}

// NewWindow builds every component. The raylib window must be open.
func NewWindow(ctx context.Context, cfg *config.Config, site *content.Site, store prefs.Store, manager *prefs.Manager, convertedDir string) *Window {
	ctx, cancel := context.WithCancel(ctx)
	w := &Window{
		cfg:         cfg,
		site:        site,
		ctx:         ctx,
		cancel:      cancel,
		tasks:       make(chan func(), pendingTaskSize),
		clock:       clock.New(clock.NewMonotonicTimeProvider()),
		dispatcher:  input.NewDispatcher(),
		store:       store,
		prefs:       manager,
		focus:       page.NoFocus,
		hoveredCard: -1,
		dirty:       true,
		layoutReady: make(chan struct{}),
	}
	p := manager.Get()
	w.reduced = p.ReducedAnimations

	if cfg.Window.Mode == wallpaperMode {
		g, err := utils.NewGlobalPointer()
		if err != nil {
			utils.Warn("Wallpaper mode without pointer tracking: %v", err)
		} else {
			w.global = g
		}
	}
	w.poller = engine2D.NewPoller(w.dispatcher, w.global, w.clock.Now)

	textures := engine2D.NewTextureCache(imageResolver(convertedDir))
	w.renderer = engine2D.NewRenderer(shader.Sources{Dir: utils.ResolveAssetPath("shaders")}, textures, w.reduced)
	vh := w.renderer.Height

	w.scroll = scroll.New(w.clock, w.dispatcher, nil, scroll.Options{Rate: w.scrollRate(), PageHeight: vh})
	w.revealer = reveal.New(w.clock, vh, reveal.Options{Instant: w.reduced})
	w.releases = append(w.releases, w.scroll.OnScroll(func(u scroll.Update) { w.revealer.SetOffset(u.Offset) }))
	w.newField()
	w.follower = cursor.New(w.clock, w.dispatcher, w.signals(), cursor.Options{})

	w.gallery = gallery.New(site, w.dispatcher)
	w.indexArtworks()
	w.router = router.New(cfg.Route)
	w.router.OnChange(w.onRoute)
	w.form = contact.NewForm(cfg.Contact.SiteKey, contact.NewHTTPSubmitter(cfg.Contact.FormID))
	verifier := contact.NewBrowserVerifier()
	verifier.Headless = cfg.Contact.Headless
	w.verifier = verifier
	w.menu = page.NewMenu(site.Actions)

	w.stats = debug.NewStats(time.Now)
	w.overlay = debug.NewOverlay(w.dispatcher, w.stats)

	tracker := readiness.NewTracker(nil)
	w.loading = readiness.NewScreen(site.Loading.Messages, tracker, cfg.Motion.Seed, p.SkipLoadingScreen)
	w.report = readiness.Start(ctx, startupProbes(site, w.renderer, w.layoutReady), tracker)

	w.releases = append(w.releases,
		w.dispatcher.On(input.PointerOver, w.onOver),
		w.dispatcher.On(input.PointerDown, w.onPointerDown),
		w.dispatcher.On(input.PointerUp, w.onPointerUp),
		w.dispatcher.On(input.KeyPress, w.onKey),
		w.dispatcher.On(input.CharInput, w.onChar),
		w.dispatcher.On(input.Resize, w.onResize),
	)

	if cfg.Content.Path != "" && cfg.Content.Watch {
		w.startWatcher()
	}
	return w
}

func (w *Window) startWatcher() {
	watcher, err := content.NewWatcher(w.cfg.Content.Path, w.cfg.Content.Debounce)
	if err != nil {
		utils.Warn("Content changes will not be picked up: %v", err)
		return
	}
	if err := watcher.Start(w.ctx); err != nil {
		utils.Warn("Content changes will not be picked up: %v", err)
		return
	}
	w.watcher = watcher
}

func (w *Window) newField() {
	if w.field != nil {
		w.field.Close()
	}
	w.field = particle.New(particle.Config{
		Seed:    w.cfg.Motion.Seed,
		Reduced: w.reduced,
		Aspect:  w.renderer.Width / max(w.renderer.Height, 1),
	})
	w.field.Attach(w.clock)
}

func (w *Window) scrollRate() float64 {
	if w.reduced {
		return 1
	}
	return w.cfg.Motion.ScrollRate
}

// signals reports touch only while a finger is down, since raylib exposes no
// touch capability query. A touch laptop therefore counts as pointer-only
// until it is touched.
func (w *Window) signals() cursor.Signals {
	touch := cursor.No
	if rl.GetTouchPointCount() > 0 {
		touch = cursor.Yes
	}
	return cursor.Signals{Touch: touch, FinePointer: cursor.Yes, Width: w.renderer.Width}
}

func (w *Window) indexArtworks() {
	w.artworks = make(map[int]content.Artwork, len(w.site.Gallery))
	for _, a := range w.site.Gallery {
		w.artworks[a.ID] = a
	}
}

func (w *Window) Run() {
	utils.Info("Window running at %.0fx%.0f, route %s", w.renderer.Width, w.renderer.Height, w.router.Current())
	for !rl.WindowShouldClose() {
		if w.ctx.Err() != nil {
			return
		}
		w.Update()
		w.Draw()
	}
}

func (w *Window) Update() {
	w.drainTasks()
	w.pollContent()
	w.pollReport()
	w.renderer.Textures.Upload(textureUploads)

	w.clock.SetSuspended(rl.IsWindowMinimized())
	if w.dirty || w.router.Current() == router.Contact {
		w.rebuild()
	}
	w.syncOverlays()
	w.scroll.LockKeys(w.focus != page.NoFocus || w.lightbox != nil)

	w.poller.Poll(w.hit)

	if x, y, ok := w.poller.Pointer(); ok && (w.global != nil || rl.IsCursorOnScreen()) {
		w.field.SetPointer(x/w.renderer.Width*2-1, 1-y/w.renderer.Height*2)
	} else {
		w.field.ClearPointer()
	}

	tick, ok := w.clock.Advance()
	if ok {
		w.elapsed = tick.Elapsed
		w.gallery.Step(tick.Delta)
		w.loading.Step(tick.Delta)
		if w.noticeLeft > 0 {
			w.noticeLeft -= tick.Delta
		}
	}

	w.stats.Frame()
	w.stats.Set("Route", w.router.Current().String())
	w.stats.Set("Scroll", fmt.Sprintf("%.0f / %.0f", w.scroll.Offset(), w.scroll.Max()))
	w.stats.Set("Points", w.field.Len())
	w.stats.Set("Listeners", w.dispatcher.Total())
	w.stats.Set("Triggers", w.revealer.Len())
}

func (w *Window) drainTasks() {
	for {
		select {
		case fn := <-w.tasks:
			fn()
		default:
			return
		}
	}
}

// goAsync runs fn off the render loop; the func it returns runs back on it.
func (w *Window) goAsync(fn func(ctx context.Context) func()) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		done := fn(w.ctx)
		if done == nil {
			return
		}
		select {
		case w.tasks <- done:
		case <-w.ctx.Done():
		}
	}()
}

func (w *Window) pollContent() {
	if w.watcher == nil {
		return
	}
	select {
	case site, ok := <-w.watcher.Updates():
		if !ok {
			w.watcher = nil
			return
		}
		utils.Info("Site description reloaded")
		w.site = site
		w.gallery.Load(site)
		w.indexArtworks()
		w.menu.SetActions(site.Actions)
		w.dirty = true
	default:
	}
}

func (w *Window) pollReport() {
	if w.report == nil {
		return
	}
	select {
	case rep, ok := <-w.report:
		if ok {
			if failed := rep.Failed(); len(failed) > 0 {
				utils.Warn("Startup finished in %s without: %s", rep.Elapsed, strings.Join(failed, ", "))
			} else {
				utils.Debug("Startup finished in %s", rep.Elapsed)
			}
		}
		w.report = nil
	default:
	}
}

// rebuild lays out the current route and refreshes the reveal triggers.
func (w *Window) rebuild() {
	vw, vh := w.renderer.Width, w.renderer.Height
	switch w.router.Current() {
	case router.Gallery:
		w.page = page.BuildGallery(w.site.Title, w.gallery, vw, vh, w.renderer)
	case router.Contact:
		w.page = page.BuildContact(w.site, w.form, w.focus, vw, vh, w.renderer)
	default:
		w.page = page.BuildHome(w.site, vw, vh, w.renderer)
	}
	w.scroll.SetPageHeight(vh)
	w.scroll.SetMax(w.page.MaxScroll())
	w.watchSections()
	w.dirty = false
	w.layoutOnce.Do(func() { close(w.layoutReady) })
}

func (w *Window) syncOverlays() {
	vw, vh := w.renderer.Width, w.renderer.Height
	w.menuPage = w.menu.Layout(vw, vh, w.renderer)
	if lb, ok := w.gallery.Lightbox(); ok {
		w.lightbox = page.BuildLightbox(lb, vw, vh, w.renderer)
	} else {
		w.lightbox = nil
	}
}

func (w *Window) watchSections() {
	seen := make(map[string]bool)
	for _, s := range w.page.Sections {
		cfg := reveal.Config{ID: s.ID, Top: s.Top, Height: s.Height}
		stagger := w.applyStyle(s.ID, &cfg)
		w.revealer.Watch(cfg)
		seen[s.ID] = true

		if w.router.Current() == router.Gallery {
			continue
		}
		for i := range w.page.Blocks {
			b := &w.page.Blocks[i]
			if b.Kind != page.KindCard || b.Section != s.ID || b.Element == nil {
				continue
			}
			card := cfg
			card.ID = b.Element.ID
			card.Top, card.Height = b.Bounds.Y, b.Bounds.H
			card.Delay = stagger * float64(b.Index)
			w.revealer.Watch(card)
			seen[card.ID] = true
		}
	}
	for _, id := range w.watched {
		if !seen[id] {
			w.revealer.Unwatch(id)
		}
	}
	w.watched = w.watched[:0]
	for id := range seen {
		w.watched = append(w.watched, id)
	}
}

// applyStyle copies a section's reveal overrides into cfg and returns its
// card stagger.
func (w *Window) applyStyle(id string, cfg *reveal.Config) float64 {
	style, ok := w.site.SectionStyle(id)
	if !ok {
		return defaultStagger
	}
	cfg.Start, cfg.End, cfg.Duration = style.Start, style.End, style.Duration
	if style.ToggleActions != "" {
		actions, err := reveal.ParseToggleActions(style.ToggleActions)
		if err != nil {
			utils.Warn("Section %s: %v", id, err)
		} else {
			cfg.Actions = &actions
		}
	}
	if style.Stagger > 0 {
		return style.Stagger
	}
	return defaultStagger
}

func cardOf(el *layout.Element) *layout.Element {
	for e := el; e != nil; e = e.Parent {
		if e.HasClass("card") {
			return e
		}
	}
	return nil
}

// appear combines the reveal state of a block's card or section with the
// scroll-linked transform of gallery cards.
func (w *Window) appear(b *page.Block) engine2D.Appearance {
	card := cardOf(b.Element)
	if card != nil && w.router.Current() == router.Gallery {
		if w.reduced {
			return engine2D.Opaque
		}
		st := gallery.CardStyleAt(gallery.CardProgress(card.Bounds.Y, card.Bounds.H, w.scroll.Offset(), w.renderer.Height))
		return engine2D.Appearance{
			Opacity:    st.Opacity,
			TranslateY: st.TranslateY,
			Scale:      st.Scale,
			PivotX:     card.Bounds.X + card.Bounds.W/2,
			PivotY:     card.Bounds.Y + card.Bounds.H/2,
		}
	}

	var trig *reveal.Trigger
	if card != nil {
		trig = w.revealer.Get(card.ID)
	}
	if trig == nil {
		trig = w.revealer.Get(b.Section)
	}
	if trig == nil {
		return engine2D.Opaque
	}
	return engine2D.Appearance{Opacity: trig.Opacity(), TranslateY: trig.TranslateY(), Scale: 1}
}

func (w *Window) cardImage(id int) string {
	a, ok := w.artworks[id]
	if !ok || len(a.Images) == 0 {
		return ""
	}
	idx := w.gallery.CardImage(id)
	if idx < 0 || idx >= len(a.Images) {
		idx = 0
	}
	return a.Images[idx]
}

func (w *Window) hit(x, y float64) *layout.Element {
	if !w.loading.Done() || w.page == nil {
		return nil
	}
	if w.lightbox != nil {
		return w.lightbox.HitTest(x, y, 0)
	}
	if w.menuPage != nil {
		if el := w.menuPage.HitTest(x, y, 0); el != nil && el != w.menuPage.Root {
			return el
		}
	}
	return w.page.HitTest(x, y, w.scroll.Offset())
}

// actionable climbs from the hit element to the nearest one that reacts to
// a click.
func actionable(el *layout.Element) *layout.Element {
	for e := el; e != nil; e = e.Parent {
		if e.Href != "" {
			return e
		}
		switch e.Role {
		case layout.RoleButton, layout.RoleLink, layout.RoleTextInput, layout.RoleBusy, layout.RoleRoot:
			return e
		case layout.RoleSection:
			return nil
		}
	}
	return nil
}

// onOver pauses the image carousel of the gallery card under the pointer.
func (w *Window) onOver(ev input.Event) {
	id := -1
	if card := cardOf(ev.Target); card != nil {
		if rest, ok := strings.CutPrefix(card.ID, "artwork:"); ok {
			if n, err := strconv.Atoi(rest); err == nil {
				id = n
			}
		}
	}
	if id == w.hoveredCard {
		return
	}
	if w.hoveredCard >= 0 {
		w.gallery.SetHovered(w.hoveredCard, false)
	}
	if id >= 0 {
		w.gallery.SetHovered(id, true)
	}
	w.hoveredCard = id
}

func (w *Window) onPointerDown(ev input.Event) {
	w.pressedID = ""
	if el := actionable(ev.Target); el != nil {
		w.pressedID = el.ID
	}
}

func (w *Window) onPointerUp(ev input.Event) {
	el := actionable(ev.Target)
	if el == nil || el.ID != w.pressedID {
		w.pressedID = ""
		return
	}
	w.pressedID = ""
	w.activate(el)
}

func (w *Window) activate(el *layout.Element) {
	if el.Disabled {
		return
	}
	id := el.ID

	if w.lightbox != nil {
		switch id {
		case "lightbox:prev":
			w.gallery.Prev()
		case "lightbox:next":
			w.gallery.Next()
		case "lightbox:close", "root":
			w.gallery.Close()
		}
		return
	}

	if id == "menu:toggle" {
		w.menu.Toggle()
		return
	}
	if i, ok := page.ParseMenuItemID(id); ok {
		w.menu.Activate(i, w)
		return
	}
	w.menu.Close()

	if f, ok := page.ParseFieldID(id); ok {
		w.focus = f
		w.dirty = true
		return
	}
	w.setFocus(page.NoFocus)

	switch {
	case id == "submit":
		w.submit()
	case strings.HasPrefix(id, "filter:"):
		if w.gallery.SetFilter(strings.TrimPrefix(id, "filter:")) {
			w.dirty = true
		}
	case strings.HasPrefix(id, "artwork:"):
		if aid, err := strconv.Atoi(strings.TrimPrefix(id, "artwork:")); err == nil {
			w.gallery.Open(aid, w.gallery.CardImage(aid))
		}
	case strings.HasPrefix(el.Href, "/"):
		w.Navigate(el.Href)
	case el.Href != "":
		w.OpenLink(el.Href)
	}
}

func (w *Window) setFocus(f contact.Field) {
	if w.focus != f {
		w.focus = f
		w.dirty = true
	}
}

func (w *Window) onKey(ev input.Event) {
	switch ev.Key {
	case input.KeyEscape:
		w.menu.Close()
		w.setFocus(page.NoFocus)
	case input.KeyF9:
		w.toggleReduced()
	case input.KeyTab:
		if w.router.Current() == router.Contact {
			w.setFocus(page.NextField(w.focus, ev.Shift))
		}
	case input.KeyBackspace:
		if w.focus != page.NoFocus {
			w.form.Set(w.focus, page.DeleteLast(w.form.Fields().Get(w.focus)))
		} else if w.lightbox == nil {
			w.router.Back()
		}
	case input.KeyEnter:
		switch {
		case w.focus == page.NoFocus:
		case page.Multiline(w.focus):
			w.form.Set(w.focus, page.InsertRune(w.form.Fields().Get(w.focus), '\n'))
		default:
			w.setFocus(page.NextField(w.focus, false))
		}
	}
}

func (w *Window) onChar(ev input.Event) {
	if w.focus == page.NoFocus || w.router.Current() != router.Contact {
		return
	}
	w.form.Set(w.focus, page.InsertRune(w.form.Fields().Get(w.focus), ev.Char))
}

func (w *Window) onResize(ev input.Event) {
	if ev.X <= 0 || ev.Y <= 0 {
		return
	}
	w.renderer.UpdateViewport(int(ev.X), int(ev.Y))
	w.revealer.SetViewportHeight(ev.Y)
	w.field.SetAspect(ev.X / ev.Y)
	w.follower.Refresh(w.signals())
	w.dirty = true
}

func (w *Window) onRoute(from, to router.Route) {
	utils.Info("Route %s -> %s", from, to)
	w.menu.Close()
	w.gallery.Close()
	w.focus = page.NoFocus
	for _, id := range w.watched {
		w.revealer.Unwatch(id)
	}
	w.watched = w.watched[:0]
	w.scroll.Jump(0)
	w.revealer.SetOffset(0)
	w.rebuild()
}

func (w *Window) toggleReduced() {
	err := w.prefs.Update(func(p *prefs.Preferences) { p.ReducedAnimations = !p.ReducedAnimations })
	if err != nil {
		utils.Warn("Could not save preferences: %v", err)
	}
	w.reduced = w.prefs.Get().ReducedAnimations
	w.scroll.SetRate(w.scrollRate())
	w.revealer.SetInstant(w.reduced)
	w.renderer.Backdrop.SetReduced(w.reduced)
	w.newField()
	if w.reduced {
		w.Notice("Reduced animations on")
	} else {
		w.Notice("Reduced animations off")
	}
}

func (w *Window) submit() {
	if w.submitting {
		return
	}
	w.submitting = true
	w.goAsync(func(ctx context.Context) func() {
		out := w.form.Submit(ctx)
		return func() {
			w.submitting = false
			w.onOutcome(out)
		}
	})
}

func (w *Window) onOutcome(out contact.Outcome) {
	if w.form.WantsChallenge(out) {
		w.verify()
		w.dirty = true
		return
	}
	switch out {
	case contact.OutcomeUnavailable:
		w.Notice(contact.UnavailableNotice)
	case contact.OutcomeIncomplete:
		w.Notice("Please fill in every field.")
	case contact.OutcomeSent:
		utils.Info("Contact message sent")
	case contact.OutcomeFailed:
		utils.Warn("Contact message failed: %v", w.form.Err())
	}
	w.dirty = true
}

func (w *Window) verify() {
	if w.verifying {
		return
	}
	w.verifying = true
	w.goAsync(func(ctx context.Context) func() {
		err := w.form.Verify(ctx, w.verifier)
		return func() {
			w.verifying = false
			if err != nil {
				utils.Warn("Verification failed: %v", err)
				w.Notice("Verification failed. Please try again.")
				return
			}
			w.Notice("Verified. Press Send Message to deliver it.")
		}
	})
}

// ScrollTop, OpenLink, Notice and Navigate serve the floating menu.
func (w *Window) ScrollTop() { w.scroll.ScrollTo(0) }

func (w *Window) OpenLink(url string) {
	utils.Info("Opening %s", url)
	rl.OpenURL(url)
}

func (w *Window) Notice(text string) {
	w.notice = text
	w.noticeLeft = noticeDuration
}

func (w *Window) Navigate(path string) {
	w.router.Navigate(path)
}

func (w *Window) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	offset := w.scroll.Offset()
	state := shader.GlobalState{
		Time:   w.elapsed,
		Scroll: shader.ScrollProgress(offset, w.scroll.Max()),
		Width:  w.renderer.Width,
		Height: w.renderer.Height,
	}
	if x, y, ok := w.poller.Pointer(); ok {
		state.MouseX, state.MouseY, state.HasMouse = x/w.renderer.Width*2-1, 1-y/w.renderer.Height*2, true
	}
	w.renderer.Backdrop.Draw(state)
	w.renderer.DrawField(w.field.Frame(), w.field.Camera())

	hovered := w.poller.Hovered()
	style := engine2D.PageStyle{
		Offset:  offset,
		Appear:  w.appear,
		Hovered: hovered,
		Image:   w.cardImage,
		Caret:   int(w.elapsed*caretBlinkHz*2)%2 == 0,
	}
	if w.page != nil {
		w.renderer.DrawPage(w.page, style)
		w.renderer.DrawHeader(w.page, hovered)
	}
	if w.menuPage != nil {
		w.renderer.DrawOverlay(w.menuPage, engine2D.PageStyle{Hovered: hovered}, w.menu.Open())
	}
	if w.lightbox != nil {
		lb, _ := w.gallery.Lightbox()
		w.renderer.DrawOverlay(w.lightbox, engine2D.PageStyle{
			Hovered: hovered,
			Image:   func(int) string { return lb.Image() },
		}, true)
	}
	if w.noticeLeft > 0 {
		w.renderer.DrawToast(w.notice, min(1, w.noticeLeft/0.3))
	}

	w.renderer.DrawCursor(w.follower.State(), w.elapsed)
	w.renderer.DrawLoading(w.loading)

	if w.overlay.Visible && w.page != nil {
		w.renderer.DrawDebug(w.overlay, w.overlay.Boxes(w.page.Root, offset, w.renderer.Height, hovered))
	}
	rl.EndDrawing()
}

func (w *Window) Close() {
	w.cancel()
	for _, release := range w.releases {
		release()
	}
	w.releases = nil
	if w.watcher != nil {
		w.watcher.Stop()
	}
	w.wg.Wait()

	w.scroll.Close()
	w.revealer.Close()
	w.field.Close()
	w.follower.Close()
	w.gallery.Dispose()
	w.overlay.Close()
	w.renderer.Close()
	if w.global != nil {
		w.global.Close()
	}
	if err := w.store.Close(); err != nil {
		utils.Warn("Closing preference store: %v", err)
	}
	utils.Info("Window closed")
}
