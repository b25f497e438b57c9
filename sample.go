package inkpath

import "math/rand"

// Point is one sampled ink pixel coordinate.
type Point struct {
	X, Y int
}

// SamplePoints draws max(1, count/divisor) ink coordinates from the
// mask, uniformly and without replacement. The caller owns the random
// source; pass a seeded one for reproducible output. A mask with no
// ink yields no points.
func SamplePoints(m Mask, divisor int, rng *rand.Rand) []Point {
	if divisor < 1 {
		divisor = 1
	}
	var coords []Point
	for y := range m.H {
		for x := range m.W {
			if m.Ink[gridOffset(m.W, x, y)] {
				coords = append(coords, Point{X: x, Y: y})
			}
		}
	}
	if len(coords) == 0 {
		return nil
	}
	n := max(1, len(coords)/divisor)
	// Partial Fisher-Yates: after n swaps the first n entries are a
	// uniform draw without replacement.
	for i := range n {
		j := i + rng.Intn(len(coords)-i)
		coords[i], coords[j] = coords[j], coords[i]
	}
	return coords[:n:n]
}
