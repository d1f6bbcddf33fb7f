package reveal

import (
	"testing"
	"time"

	"ambient-portfolio/internal/engine2D/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRevealer() (*Revealer, *[]string) {
	r := New(nil, 1000, Options{})
	var log []string
	r.OnTransition(func(id string, tr Transition) { log = append(log, id+":"+tr.String()) })
	return r, &log
}

func TestRevealerZoneTransitions(t *testing.T) {
	r, log := newTestRevealer()
	trig := r.Watch(Config{ID: "about", Top: 1500, Height: 400})
	assert.Equal(t, OffScreenBelow, trig.State())
	assert.Empty(t, *log)

	r.SetOffset(800)
	assert.Equal(t, []string{"about:enter"}, *log)
	assert.Equal(t, Entering, trig.State())
	assert.Equal(t, 1, trig.Plays())

	r.SetOffset(2000)
	r.SetOffset(1000)
	r.SetOffset(0)
	assert.Equal(t, []string{"about:enter", "about:leave", "about:enter-back", "about:leave-back"}, *log)
	assert.Equal(t, Exiting, trig.State())
}

func TestRevealerIsIdempotent(t *testing.T) {
	r, log := newTestRevealer()
	trig := r.Watch(Config{ID: "skills", Top: 1200, Height: 300})

	for i := 0; i < 10; i++ {
		r.SetOffset(600)
	}
	assert.Len(t, *log, 1)
	assert.Equal(t, 1, trig.Plays())

	r.Watch(Config{ID: "skills", Top: 1200, Height: 300})
	assert.Len(t, *log, 1)
	assert.Equal(t, 1, r.Len())
}

func TestRevealerJumpAcrossBandFiresBoth(t *testing.T) {
	r, log := newTestRevealer()
	r.Watch(Config{ID: "projects", Top: 1500, Height: 400})

	r.SetOffset(5000)
	assert.Equal(t, []string{"projects:enter", "projects:leave"}, *log)

	r.SetOffset(0)
	assert.Equal(t, []string{"projects:enter", "projects:leave", "projects:enter-back", "projects:leave-back"}, *log)
}

func TestRevealerTweenAndEasing(t *testing.T) {
	mock := clock.NewMockTimeProvider(time.Unix(0, 0))
	c := clock.New(mock)
	r := New(c, 1000, Options{})
	trig := r.Watch(Config{ID: "hero", Top: 100, Height: 800})

	require.Equal(t, Entering, trig.State())
	assert.InDelta(t, 100, trig.TranslateY(), 1e-9)
	assert.Equal(t, 0.0, trig.Opacity())

	mock.Advance(750 * time.Millisecond)
	c.Advance()
	assert.InDelta(t, 0.5, trig.Progress(), 1e-9)
	assert.InDelta(t, 0.875, trig.Opacity(), 1e-9)
	assert.InDelta(t, 12.5, trig.TranslateY(), 1e-9)

	mock.Advance(time.Second)
	c.Advance()
	assert.Equal(t, 1.0, trig.Progress())
	assert.Equal(t, Visible, trig.State())
	assert.Equal(t, 0.0, trig.TranslateY())

	r.Close()
	assert.Equal(t, 0, c.Subscribers())
}

func TestRevealerTallElementTriggersOnLeadingEdge(t *testing.T) {
	r, log := newTestRevealer()
	trig := r.Watch(Config{ID: "gallery", Top: 900, Height: 5000})

	r.SetOffset(150)
	assert.Equal(t, []string{"gallery:enter"}, *log)
	assert.Greater(t, trig.ScrollProgress(), 0.0)
	assert.Less(t, trig.ScrollProgress(), 0.1)
}

func TestRevealerInstant(t *testing.T) {
	r := New(nil, 1000, Options{Instant: true})
	trig := r.Watch(Config{ID: "contact", Top: 200, Height: 400})
	assert.Equal(t, 1.0, trig.Progress())
	assert.Equal(t, Visible, trig.State())
}

func TestRevealerDelay(t *testing.T) {
	r := New(nil, 1000, Options{Duration: 1})
	trig := r.Watch(Config{ID: "card", Top: 100, Height: 100, Delay: 0.2})

	r.Step(0.1)
	assert.Equal(t, 0.0, trig.Progress())
	r.Step(0.6)
	assert.InDelta(t, 0.5, trig.Progress(), 1e-9)
}

func TestRevealerLeaveBackCancelsDelayedPlay(t *testing.T) {
	r := New(nil, 1000, Options{})
	trig := r.Watch(Config{ID: "card", Top: 1500, Height: 300, Delay: 0.3})

	r.SetOffset(800)
	r.Step(0.1)
	assert.Equal(t, 0.0, trig.Progress())

	r.SetOffset(0)
	for i := 0; i < 200; i++ {
		r.Step(1.0 / 60)
	}
	assert.Equal(t, 0.0, trig.Progress())
	assert.Equal(t, 0.0, trig.Opacity())
	assert.Equal(t, OffScreenBelow, trig.State())

	r.SetOffset(800)
	assert.Equal(t, 2, trig.Plays())
}

func TestParseToggleActions(t *testing.T) {
	ta, err := ParseToggleActions("play none none reverse")
	require.NoError(t, err)
	assert.Equal(t, DefaultToggleActions, ta)
	assert.Equal(t, "play none none reverse", ta.String())

	ta, err = ParseToggleActions("restart pause resume reset")
	require.NoError(t, err)
	assert.Equal(t, ToggleActions{ActionRestart, ActionPause, ActionResume, ActionReset}, ta)

	_, err = ParseToggleActions("play none")
	assert.Error(t, err)
	_, err = ParseToggleActions("play none none explode")
	assert.Error(t, err)
}
