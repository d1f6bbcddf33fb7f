package particle

import (
	"math"
	"math/rand"
)

// seedPoints scatters count points uniformly in the extent box with a random
// velocity and oscillation phase each.
func seedPoints(rng *rand.Rand, count int, extent Vec3, maxSpeed float64) []*Point {
	points := make([]*Point, count)
	for i := range points {
		origin := Vec3{
			X: (rng.Float64() - 0.5) * extent.X,
			Y: (rng.Float64() - 0.5) * extent.Y,
			Z: (rng.Float64() - 0.5) * extent.Z,
		}
		points[i] = &Point{
			Origin:   origin,
			Position: origin,
			Velocity: Vec3{
				X: (rng.Float64() - 0.5) * 2 * maxSpeed,
				Y: (rng.Float64() - 0.5) * 2 * maxSpeed,
				Z: (rng.Float64() - 0.5) * 2 * maxSpeed,
			},
			Phase: rng.Float64() * math.Pi * 2,
			Index: i,
		}
	}
	return points
}
