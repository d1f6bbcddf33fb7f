package debug

import (
	"ambient-portfolio/internal/engine2D/input"
	"ambient-portfolio/internal/engine2D/layout"
	"ambient-portfolio/internal/utils"
)

// Box is an element outline in screen coordinates.
type Box struct {
	Rect     layout.Rect
	Label    string
	Selected bool // the element under the pointer
}

// Overlay is the toggleable debug panel. F8 shows it; while it is shown
// element bounds are outlined when ShowBoundingBoxes is set.
type Overlay struct {
	Visible           bool
	ShowBoundingBoxes bool
	Stats             *Stats

	release func()
}

func NewOverlay(d *input.Dispatcher, stats *Stats) *Overlay {
	o := &Overlay{Stats: stats, ShowBoundingBoxes: true, Visible: utils.ShowDebugUI}
	if d != nil {
		o.release = d.On(input.KeyPress, func(ev input.Event) {
			if ev.Key == input.KeyF8 {
				o.Toggle()
			}
		})
	}
	return o
}

func (o *Overlay) Toggle() {
	o.Visible = !o.Visible
	utils.ShowDebugUI = o.Visible
	utils.Debug("Debug overlay visible: %v", o.Visible)
}

// Boxes outlines every element of root that has a size, shifted up by the
// scroll offset. Elements entirely off screen are skipped.
func (o *Overlay) Boxes(root *layout.Element, offset, viewportHeight float64, hovered *layout.Element) []Box {
	if !o.Visible || !o.ShowBoundingBoxes {
		return nil
	}
	var boxes []Box
	root.Walk(func(el *layout.Element) {
		if el == root || el.Bounds.W <= 0 || el.Bounds.H <= 0 {
			return
		}
		r := el.Bounds.Offset(0, -offset)
		if r.Y+r.H < 0 || r.Y > viewportHeight {
			return
		}
		label := el.Role.String()
		if el.ID != "" {
			label = el.ID
		}
		boxes = append(boxes, Box{Rect: r, Label: label, Selected: el == hovered})
	})
	return boxes
}

func (o *Overlay) Close() {
	if o.release != nil {
		o.release()
		o.release = nil
	}
}
