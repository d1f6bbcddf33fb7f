package particle

import "math"

// oscillation is the periodic part of a point's motion: two independent
// sinusoids in the plane and a slower depth wave keyed on the point index.
func oscillation(p *Point, t float64) Vec3 {
	return Vec3{
		X: math.Sin(t*0.5+p.Phase) * 0.5,
		Y: math.Cos(t*0.3+p.Phase*1.5) * 0.3,
		Z: math.Sin(t*0.4+float64(p.Index)*0.1) * 0.8,
	}
}

func drift(p *Point, t float64) Vec3 {
	return Vec3{
		X: p.Velocity.X * (t - p.driftStart.X),
		Y: p.Velocity.Y * (t - p.driftStart.Y),
		Z: p.Velocity.Z * (t - p.driftStart.Z),
	}
}

// restPosition is where the point sits at time t with no pointer present.
func restPosition(p *Point, t float64) Vec3 {
	return p.Origin.Add(oscillation(p, t)).Add(drift(p, t))
}

// pointerDisplacement pushes pos away from the pointer with a travelling
// ripple. Outside radius both results are exactly zero.
func pointerDisplacement(pos, pointer Vec3, radius, amplitude, t float64) (Vec3, float64) {
	d := pos.Dist(pointer)
	if d >= radius {
		return Vec3{}, 0
	}
	influence := 1 - d/radius
	ripple := math.Sin(t*4-d*0.5) * influence * amplitude
	return pos.Sub(pointer).Normalize().Scale(ripple), influence
}

// wrap resets any axis beyond bound to the origin and reverses its drift.
func wrap(p *Point, pos Vec3, bound, t float64) Vec3 {
	if math.Abs(pos.X) > bound {
		pos.X = p.Origin.X
		p.Velocity.X = -p.Velocity.X
		p.driftStart.X = t
	}
	if math.Abs(pos.Y) > bound {
		pos.Y = p.Origin.Y
		p.Velocity.Y = -p.Velocity.Y
		p.driftStart.Y = t
	}
	if math.Abs(pos.Z) > bound {
		pos.Z = p.Origin.Z
		p.Velocity.Z = -p.Velocity.Z
		p.driftStart.Z = t
	}
	return pos
}

func pointColor(speed, influence, t float64, index int) Color {
	i := float64(index)
	return Color{
		R: 0.2 + speed*20 + influence*0.5,
		G: 0.4 + math.Sin(t+i*0.1)*0.3 + influence*0.3,
		B: 0.8 + math.Cos(t*0.5+i*0.2)*0.2,
	}
}

func glowColor(c Color) Color {
	return Color{R: c.R * 1.5, G: c.G * 1.5, B: c.B * 1.5}
}

func pulse(t float64, index int) float64 {
	return math.Sin(t*2+float64(index)*0.3)*0.3 + 0.7
}

func edgeColor(opacity, pulse float64) Color {
	return Color{
		R: 0.1 + opacity*0.4 + pulse*0.2,
		G: 0.3 + opacity*0.5 + pulse*0.3,
		B: 0.8 + opacity*0.2,
	}
}
