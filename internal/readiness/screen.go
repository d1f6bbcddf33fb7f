package readiness

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

const (
	MessageInterval = 0.4
	FadeDuration    = 0.8
	DustCount       = 20
	dustCycle       = 3.0
	dustStagger     = 0.1
	progressRate    = 6.0
)

// Dust is one drifting mote on the loading screen, in normalized coordinates.
type Dust struct {
	X, Y    float64
	Opacity float64
}

// Screen is the loading screen model: a message sequence, an eased progress
// bar and a field of noise-driven dust. It is done once startup is ready and
// the fade-out has played.
type Screen struct {
	messages []string
	index    int
	msgTime  float64

	shown   float64
	tracker *Tracker

	ready   bool
	fade    float64
	done    bool
	elapsed float64

	noise opensimplex.Noise
	dust  []Dust
}

// NewScreen builds the loading screen. With skip set it starts out done.
func NewScreen(messages []string, tracker *Tracker, seed int64, skip bool) *Screen {
	if len(messages) == 0 {
		messages = []string{"Loading..."}
	}
	if tracker == nil {
		tracker = NewTracker(nil)
	}
	s := &Screen{
		messages: messages,
		tracker:  tracker,
		noise:    opensimplex.New(seed),
		dust:     make([]Dust, DustCount),
		done:     skip,
	}
	s.updateDust()
	return s
}

// Step advances the screen by dt seconds.
func (s *Screen) Step(dt float64) {
	if s.done || dt <= 0 {
		return
	}
	s.elapsed += dt

	target := s.tracker.Progress()
	if s.shown < target {
		s.shown += (target - s.shown) * (1 - math.Exp(-progressRate*dt))
		if target-s.shown < 0.5 {
			s.shown = target
		}
	}

	if !s.ready {
		s.msgTime += dt
		for s.msgTime >= MessageInterval {
			s.msgTime -= MessageInterval
			// The final message is held back for the welcome.
			if s.index < len(s.messages)-2 {
				s.index++
			}
		}
		if s.tracker.Done() && s.shown >= 100 {
			s.ready = true
			s.index = len(s.messages) - 1
		}
	} else {
		s.fade += dt
		if s.fade >= FadeDuration {
			s.done = true
		}
	}
	s.updateDust()
}

func (s *Screen) updateDust() {
	t := s.elapsed
	for i := range s.dust {
		fi := float64(i)
		x := s.noise.Eval3(fi*7.3, 0, t*0.15)
		y := s.noise.Eval3(0, fi*5.1, t*0.15)
		phase := math.Mod(t-fi*dustStagger, dustCycle)
		opacity := 0.0
		if t >= fi*dustStagger {
			opacity = math.Sin(math.Pi * phase / dustCycle)
		}
		s.dust[i] = Dust{X: 0.5 + 0.5*x, Y: 0.5 + 0.5*y, Opacity: opacity}
	}
}

func (s *Screen) Message() string { return s.messages[s.index] }

// Progress is the displayed bar value in [0, 100].
func (s *Screen) Progress() float64 { return s.shown }

// Opacity of the whole screen; it falls to zero over the fade-out.
func (s *Screen) Opacity() float64 {
	if s.done {
		return 0
	}
	return 1 - s.fade/FadeDuration
}

func (s *Screen) Ready() bool  { return s.ready }
func (s *Screen) Done() bool   { return s.done }
func (s *Screen) Dust() []Dust { return s.dust }
