package particle

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) Dist(o Vec3) float64 {
	return v.Sub(o).Len()
}

// Normalize returns the unit vector, or the zero vector for a zero input.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Camera is a perspective camera on the +Z axis looking at the origin.
type Camera struct {
	Z   float64
	FOV float64 // vertical, degrees
}

func DefaultCamera() Camera {
	return Camera{Z: 12, FOV: 75}
}

// VisibleSize returns the width and height of the plane z=0 seen by the camera.
func (c Camera) VisibleSize(aspect float64) (w, h float64) {
	h = 2 * c.Z * math.Tan(c.FOV*math.Pi/360)
	return h * aspect, h
}

// Project maps a world point to screen pixels. scale is the pixel size of
// one world unit at the point's depth; ok is false behind the camera.
func (c Camera) Project(p Vec3, screenW, screenH float64) (x, y, scale float64, ok bool) {
	depth := c.Z - p.Z
	if depth <= 0 {
		return 0, 0, 0, false
	}
	focal := (screenH / 2) / math.Tan(c.FOV*math.Pi/360)
	scale = focal / depth
	return screenW/2 + p.X*scale, screenH/2 - p.Y*scale, scale, true
}

func appendVec(buf []float32, v Vec3) []float32 {
	return append(buf, float32(v.X), float32(v.Y), float32(v.Z))
}

func appendColor(buf []float32, c Color) []float32 {
	return append(buf, float32(c.R), float32(c.G), float32(c.B))
}
