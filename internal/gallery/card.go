package gallery

// CardStyle is the scroll-linked transform of a gallery card.
type CardStyle struct {
	Opacity    float64
	Scale      float64
	TranslateY float64
}

// CardStyleAt maps a card's pass through the viewport (0 when its top meets
// the viewport bottom, 1 when its bottom leaves the top) to its transform.
// The card fades and grows in over the first fifth and out over the last.
func CardStyleAt(progress float64) CardStyle {
	p := clamp01(progress)
	return CardStyle{
		Opacity:    piecewise(p, []float64{0, 0.2, 0.8, 1}, []float64{0, 1, 1, 0}),
		Scale:      piecewise(p, []float64{0, 0.2, 0.8, 1}, []float64{0.8, 1, 1, 0.9}),
		TranslateY: 100 - 200*p,
	}
}

// CardProgress computes that pass from document geometry.
func CardProgress(top, height, offset, viewportHeight float64) float64 {
	span := viewportHeight + height
	if span <= 0 {
		return 0
	}
	return clamp01((offset + viewportHeight - top) / span)
}

func piecewise(p float64, in, out []float64) float64 {
	for i := 1; i < len(in); i++ {
		if p <= in[i] {
			t := (p - in[i-1]) / (in[i] - in[i-1])
			return out[i-1] + (out[i]-out[i-1])*t
		}
	}
	return out[len(out)-1]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
