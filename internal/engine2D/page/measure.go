package page

import "strings"

// Measurer reports the pixel width of text at a font size. The renderer
// backs it with the loaded font; tests use ApproxMeasurer.
type Measurer interface {
	Measure(text string, size float64) float64
}

// ApproxMeasurer assumes every rune is Advance * size wide.
type ApproxMeasurer struct {
	Advance float64
}

func (a ApproxMeasurer) Measure(text string, size float64) float64 {
	adv := a.Advance
	if adv <= 0 {
		adv = 0.55
	}
	return float64(len([]rune(text))) * size * adv
}

// Wrap breaks text into lines no wider than width. A single word wider than
// width gets a line of its own.
func Wrap(m Measurer, text string, size, width float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if m.Measure(candidate, size) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}
