package cursor

import "image/color"

type Shape int

const (
	ShapeDot Shape = iota
	ShapeBeam
	ShapeSpinner
)

// Variant is the look of the follower for one interaction context.
type Variant struct {
	Shape       Shape
	Color       color.RGBA
	DotScale    float64
	RingRadius  float64
	RingOpacity float64
}

var (
	accentBlue  = color.RGBA{R: 96, G: 165, B: 250, A: 255}
	accentCyan  = color.RGBA{R: 34, G: 211, B: 238, A: 255}
	accentAmber = color.RGBA{R: 251, G: 191, B: 36, A: 255}
)

var Variants = map[Context]Variant{
	ContextDefault:     {Shape: ShapeDot, Color: accentBlue, DotScale: 1, RingRadius: 12, RingOpacity: 0.4},
	ContextInteractive: {Shape: ShapeDot, Color: accentBlue, DotScale: 1.5, RingRadius: 16, RingOpacity: 0.8},
	ContextText:        {Shape: ShapeBeam, Color: accentCyan, DotScale: 1, RingRadius: 10, RingOpacity: 0.3},
	ContextBusy:        {Shape: ShapeSpinner, Color: accentAmber, DotScale: 1, RingRadius: 14, RingOpacity: 0.6},
}

const (
	DotRadius      = 4.0
	ClickDotScale  = 0.5
	ClickRingScale = 0.8
)

func VariantFor(ctx Context) Variant {
	if v, ok := Variants[ctx]; ok {
		return v
	}
	return Variants[ContextDefault]
}
