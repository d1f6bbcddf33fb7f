package particle

// Point is one node of the field. Origin is fixed at seeding; Position is
// recomputed from it every step.
type Point struct {
	Origin   Vec3
	Position Vec3
	Velocity Vec3
	Phase    float64
	Index    int

	// driftStart holds, per axis, the elapsed time the linear drift is
	// measured from. A wrap restarts it so the drift term never accumulates
	// past the bound.
	driftStart Vec3
}

// Edge joins two points closer than the connection threshold.
type Edge struct {
	A, B     int
	Distance float64
	Opacity  float64 // 1 - distance/threshold, before pulsing
	Pulse    float64
}

// Color is a linear RGB triple; components may exceed 1 for additive glow.
type Color struct {
	R, G, B float64
}

// Frame is the complete draw state produced by one step. It is rebuilt from
// scratch every step and never patched.
type Frame struct {
	Elapsed float64

	Positions []float32 // xyz per point
	Colors    []float32 // rgb per point

	EdgePositions []float32 // two xyz per edge
	EdgeColors    []float32 // two rgb per edge
	Edges         []Edge

	GlowPositions []float32
	GlowColors    []float32
}

// Valid reports whether every buffer agrees with its companions. The renderer
// skips a frame that fails this check rather than draw mismatched data.
func (f *Frame) Valid() bool {
	if f == nil {
		return false
	}
	if len(f.Positions)%3 != 0 || len(f.Positions) != len(f.Colors) {
		return false
	}
	if len(f.EdgePositions) != len(f.EdgeColors) || len(f.EdgePositions) != 6*len(f.Edges) {
		return false
	}
	if len(f.GlowPositions)%3 != 0 || len(f.GlowPositions) != len(f.GlowColors) {
		return false
	}
	return true
}

func (f *Frame) PointCount() int {
	return len(f.Positions) / 3
}

type Config struct {
	Count     int
	Extent    Vec3    // full size of the seeding box, centred on the origin
	MaxSpeed  float64 // each velocity component is drawn from [-MaxSpeed, MaxSpeed]
	WrapBound float64
	Threshold float64 // edge connection distance
	Radius    float64 // pointer interaction radius
	Ripple    float64 // ripple amplitude at the pointer
	Camera    Camera
	Seed      int64
	Reduced   bool
	Aspect    float64
}

const (
	DefaultCount     = 120
	DefaultMaxSpeed  = 0.0075
	DefaultWrapBound = 15.0
	DefaultThreshold = 4.5
	DefaultRadius    = 8.0
	DefaultRipple    = 0.5
	GlowSpeed        = 0.01
	GlowInfluence    = 0.3
)

func DefaultConfig() Config {
	return Config{
		Count:     DefaultCount,
		Extent:    Vec3{X: 25, Y: 25, Z: 12},
		MaxSpeed:  DefaultMaxSpeed,
		WrapBound: DefaultWrapBound,
		Threshold: DefaultThreshold,
		Radius:    DefaultRadius,
		Ripple:    DefaultRipple,
		Camera:    DefaultCamera(),
		Aspect:    16.0 / 9.0,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Count <= 0 {
		c.Count = d.Count
	}
	if c.Extent == (Vec3{}) {
		c.Extent = d.Extent
	}
	if c.MaxSpeed == 0 {
		c.MaxSpeed = d.MaxSpeed
	}
	if c.WrapBound <= 0 {
		c.WrapBound = d.WrapBound
	}
	if c.Threshold <= 0 {
		c.Threshold = d.Threshold
	}
	if c.Radius <= 0 {
		c.Radius = d.Radius
	}
	if c.Ripple == 0 {
		c.Ripple = d.Ripple
	}
	if c.Camera == (Camera{}) {
		c.Camera = d.Camera
	}
	if c.Aspect <= 0 {
		c.Aspect = d.Aspect
	}
	return c
}
