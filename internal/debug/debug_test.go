package debug

import (
	"testing"
	"time"

	"ambient-portfolio/internal/engine2D/input"
	"ambient-portfolio/internal/engine2D/layout"
	"ambient-portfolio/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsSamplesOncePerSecond(t *testing.T) {
	now := time.Unix(0, 0)
	s := NewStats(func() time.Time { return now })

	for i := 0; i < 30; i++ {
		now = now.Add(20 * time.Millisecond)
		s.Frame()
	}
	assert.Equal(t, 0.0, s.FPS())
	assert.Len(t, s.Groups(), 2)

	for i := 0; i < 20; i++ {
		now = now.Add(20 * time.Millisecond)
		s.Frame()
	}
	assert.InDelta(t, 50, s.FPS(), 1e-9)

	s.Set("points", 120)
	s.Set("edges", 42)
	groups := s.Groups()
	require.Len(t, groups, 4)
	assert.Equal(t, "Memory Usage:", groups[1].Header)
	assert.Equal(t, []string{"edges: 42", "points: 120"}, groups[3].Lines)
	assert.Equal(t, "Frame Time: 20.00 ms", groups[0].Lines[1])
}

func TestOverlayToggleAndBoxes(t *testing.T) {
	defer func(prev bool) { utils.ShowDebugUI = prev }(utils.ShowDebugUI)
	utils.ShowDebugUI = false

	d := input.NewDispatcher()
	o := NewOverlay(d, NewStats(nil))
	root := layout.NewRoot(800, 3000)
	sec := root.Add(&layout.Element{ID: "about", Role: layout.RoleSection, Bounds: layout.Rect{Y: 1000, W: 800, H: 700}})
	btn := sec.Add(&layout.Element{Role: layout.RoleButton, Bounds: layout.Rect{X: 10, Y: 1100, W: 100, H: 40}})
	root.Add(&layout.Element{ID: "far", Bounds: layout.Rect{Y: 2800, W: 10, H: 10}})

	assert.Nil(t, o.Boxes(root, 900, 600, nil))

	d.Dispatch(input.Event{Kind: input.KeyPress, Key: input.KeyF8})
	require.True(t, o.Visible)
	assert.True(t, utils.ShowDebugUI)

	boxes := o.Boxes(root, 900, 600, btn)
	require.Len(t, boxes, 2)
	assert.Equal(t, "about", boxes[0].Label)
	assert.Equal(t, 100.0, boxes[0].Rect.Y)
	assert.Equal(t, "button", boxes[1].Label)
	assert.True(t, boxes[1].Selected)

	o.Close()
	assert.Equal(t, 0, d.Total())
}
