package shader

import "math"

// GlobalState is the per-frame input shared by every pass.
type GlobalState struct {
	Time     float64
	MouseX   float64 // normalized device coordinates, +y up
	MouseY   float64
	Scroll   float64 // document scroll progress in [0, 1]
	Width    float64
	Height   float64
	HasMouse bool
}

// Pointer maps the mouse from [-1, 1] to [0, 1] texture space.
func (s GlobalState) Pointer() [2]float32 {
	if !s.HasMouse {
		return [2]float32{0.5, 0.5}
	}
	return [2]float32{float32(s.MouseX*0.5 + 0.5), float32(s.MouseY*0.5 + 0.5)}
}

// ScrollProgress is offset over the scrollable extent, clamped.
func ScrollProgress(offset, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, offset/max))
}

// BackdropConstants are the gradient and orb colours of the page backdrop.
// Reduced animation stops the pulse and the pointer glow.
func BackdropConstants(reduced bool) ConstantShaderValues {
	c := ConstantShaderValues{
		"ColorTop":    "0.059 0.090 0.165",
		"ColorMiddle": "0.231 0.027 0.392",
		"ColorBottom": "0.059 0.090 0.165",
		"OrbColorA":   "0.231 0.510 0.965",
		"OrbColorB":   "0.659 0.333 0.969",
		"OrbStrength": 0.35,
		"PulseSpeed":  1.6,
		"PointerGlow": 0.15,
	}
	if reduced {
		c["PulseSpeed"] = 0.0
		c["PointerGlow"] = 0.0
	}
	return c
}

// Orb is a backdrop orb for the fallback renderer used when the shader does
// not compile. Positions are normalized to the viewport.
type Orb struct {
	X, Y   float64
	Radius float64
	Alpha  float64
	Second bool // uses OrbColorB
}

// Orbs mirrors the shader's orb placement at time t.
func Orbs(count int, t, pulseSpeed, scroll float64) []Orb {
	out := make([]Orb, count)
	for i := range out {
		fi := float64(i)
		pulse := 0.5 + 0.5*math.Sin(t*pulseSpeed+fi*2.1)
		out[i] = Orb{
			X:      0.25 + 0.25*fi,
			Y:      0.3 + 0.2*math.Mod(fi, 2) - scroll*0.2,
			Radius: 0.35 + 0.05*pulse,
			Alpha:  0.6 + 0.4*pulse,
			Second: i%2 == 1,
		}
	}
	return out
}
