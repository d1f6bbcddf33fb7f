// Package input turns per-frame input state into discrete events and hands
// them to registered listeners. Every registration returns a release func so
// effects can tear down exactly what they installed.
package input

import (
	"time"

	"ambient-portfolio/internal/engine2D/layout"
)

type Kind int

const (
	PointerMove Kind = iota
	PointerDown
	PointerUp
	PointerOver
	Wheel
	Resize
	KeyPress
	CharInput
	kindCount
)

func (k Kind) String() string {
	switch k {
	case PointerMove:
		return "pointermove"
	case PointerDown:
		return "pointerdown"
	case PointerUp:
		return "pointerup"
	case PointerOver:
		return "pointerover"
	case Wheel:
		return "wheel"
	case Resize:
		return "resize"
	case KeyPress:
		return "keypress"
	case CharInput:
		return "char"
	}
	return "unknown"
}

type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeySpace
	KeyTab
	KeyEnter
	KeyBackspace
	KeyEscape
	KeyF8
	KeyF9
)

// Event carries the fields relevant to its Kind; the rest are zero.
type Event struct {
	Kind   Kind
	X, Y   float64 // pointer position, or new size for Resize
	Delta  float64 // wheel delta in pixels, positive scrolls down
	Key    Key
	Char   rune
	Shift  bool
	Target *layout.Element // element under the pointer for PointerOver
	At     time.Time
}
