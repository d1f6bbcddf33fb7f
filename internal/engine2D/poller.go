package engine2D

import (
	"time"

	"ambient-portfolio/internal/engine2D/input"
	"ambient-portfolio/internal/engine2D/layout"
	"ambient-portfolio/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// WheelStep is the scroll distance of one wheel notch in pixels.
const WheelStep = 100.0

var keyMap = []struct {
	raylib int32
	key    input.Key
}{
	{rl.KeyUp, input.KeyUp},
	{rl.KeyDown, input.KeyDown},
	{rl.KeyLeft, input.KeyLeft},
	{rl.KeyRight, input.KeyRight},
	{rl.KeyPageUp, input.KeyPageUp},
	{rl.KeyPageDown, input.KeyPageDown},
	{rl.KeyHome, input.KeyHome},
	{rl.KeyEnd, input.KeyEnd},
	{rl.KeySpace, input.KeySpace},
	{rl.KeyTab, input.KeyTab},
	{rl.KeyEnter, input.KeyEnter},
	{rl.KeyKpEnter, input.KeyEnter},
	{rl.KeyBackspace, input.KeyBackspace},
	{rl.KeyEscape, input.KeyEscape},
	{rl.KeyF8, input.KeyF8},
	{rl.KeyF9, input.KeyF9},
}

// Poller converts the raylib input state of one frame into dispatcher
// events. In wallpaper mode the pointer is read from the X server instead,
// since the window never receives pointer events.
type Poller struct {
	dispatcher *input.Dispatcher
	global     *utils.GlobalPointer
	now        func() time.Time

	x, y       float64
	hasPointer bool
	pressed    bool
	over       *layout.Element
}

// NewPoller stamps events with now; global may be nil outside wallpaper mode.
func NewPoller(d *input.Dispatcher, global *utils.GlobalPointer, now func() time.Time) *Poller {
	if now == nil {
		now = time.Now
	}
	return &Poller{dispatcher: d, global: global, now: now}
}

// Pointer returns the last pointer position in window coordinates.
func (p *Poller) Pointer() (x, y float64, ok bool) {
	return p.x, p.y, p.hasPointer
}

func (p *Poller) Hovered() *layout.Element {
	return p.over
}

// Poll posts this frame's events. hit finds the element under a window
// point and may return nil.
func (p *Poller) Poll(hit func(x, y float64) *layout.Element) {
	at := p.now()
	post := func(ev input.Event) {
		ev.At = at
		p.dispatcher.Post(ev)
	}
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	if rl.IsWindowResized() {
		post(input.Event{Kind: input.Resize, X: float64(rl.GetScreenWidth()), Y: float64(rl.GetScreenHeight())})
	}

	x, y, pressed, ok := p.pointer()
	if ok && (!p.hasPointer || x != p.x || y != p.y) {
		p.x, p.y, p.hasPointer = x, y, true
		post(input.Event{Kind: input.PointerMove, X: x, Y: y})
	}

	// Re-tested every frame since scrolling moves content under a still pointer.
	if p.hasPointer && hit != nil {
		if target := hit(p.x, p.y); target != p.over {
			p.over = target
			post(input.Event{Kind: input.PointerOver, X: p.x, Y: p.y, Target: target})
		}
	}

	if ok && pressed != p.pressed {
		p.pressed = pressed
		kind := input.PointerUp
		if pressed {
			kind = input.PointerDown
		}
		post(input.Event{Kind: kind, X: p.x, Y: p.y, Target: p.over, Shift: shift})
	}

	if move := rl.GetMouseWheelMove(); move != 0 && p.global == nil {
		post(input.Event{Kind: input.Wheel, Delta: -float64(move) * WheelStep, Shift: shift})
	}

	for _, k := range keyMap {
		if rl.IsKeyPressed(k.raylib) || rl.IsKeyPressedRepeat(k.raylib) {
			post(input.Event{Kind: input.KeyPress, Key: k.key, Shift: shift})
		}
	}
	for c := rl.GetCharPressed(); c > 0; c = rl.GetCharPressed() {
		post(input.Event{Kind: input.CharInput, Char: c, Shift: shift})
	}

	p.dispatcher.Flush()
}

func (p *Poller) pointer() (x, y float64, pressed, ok bool) {
	if p.global != nil {
		gx, gy, down, err := p.global.Position()
		if err != nil {
			return 0, 0, false, false
		}
		win := rl.GetWindowPosition()
		return float64(gx) - float64(win.X), float64(gy) - float64(win.Y), down, true
	}
	if !rl.IsCursorOnScreen() && !p.hasPointer {
		return 0, 0, false, false
	}
	pos := rl.GetMousePosition()
	return float64(pos.X), float64(pos.Y), rl.IsMouseButtonDown(rl.MouseButtonLeft), true
}
