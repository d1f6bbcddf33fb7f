package particle

// connect returns every pair of points closer than threshold, in index order.
// It is recomputed from current positions on every step.
func connect(positions []Vec3, threshold float64, t float64) []Edge {
	var edges []Edge
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			d := positions[i].Dist(positions[j])
			if d >= threshold {
				continue
			}
			edges = append(edges, Edge{
				A:        i,
				B:        j,
				Distance: d,
				Opacity:  1 - d/threshold,
				Pulse:    pulse(t, i),
			})
		}
	}
	return edges
}
