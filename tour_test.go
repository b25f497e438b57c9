package inkpath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// naiveTour is the O(N^2) correctness baseline: rescan every remaining
// point on each step. Retained only to cross-check the indexed builder
// on small inputs.
func naiveTour(points []Point) Tour {
	n := len(points)
	switch n {
	case 0:
		return Tour{}
	case 1:
		return Tour{Points: []Point{points[0]}, Dist: []float64{0}}
	}
	visited := make([]bool, n)
	order := make([]Point, 1, n)
	dist := make([]float64, 1, n)
	order[0] = points[0]
	visited[0] = true
	cur := 0
	for range n - 1 {
		best := -1
		bestD := math.MaxFloat64
		for i, p := range points {
			if visited[i] {
				continue
			}
			dx := float64(p.X - points[cur].X)
			dy := float64(p.Y - points[cur].Y)
			d := dx*dx + dy*dy
			if d < bestD {
				bestD = d
				best = i
			}
		}
		visited[best] = true
		order = append(order, points[best])
		dist = append(dist, math.Sqrt(bestD))
		cur = best
	}
	return Tour{Points: order, Dist: dist}
}

func uniquePoints(n int, rng *rand.Rand) []Point {
	seen := make(map[Point]bool, n)
	points := make([]Point, 0, n)
	for len(points) < n {
		p := Point{X: rng.Intn(200), Y: rng.Intn(200)}
		if seen[p] {
			continue
		}
		seen[p] = true
		points = append(points, p)
	}
	return points
}

func TestBuildTourEmpty(t *testing.T) {
	tour := BuildTour(nil)
	if len(tour.Points) != 0 || len(tour.Dist) != 0 {
		t.Errorf("empty input gave %d points, %d distances", len(tour.Points), len(tour.Dist))
	}
}

func TestBuildTourSinglePoint(t *testing.T) {
	tour := BuildTour([]Point{{X: 5, Y: 9}})
	want := Tour{Points: []Point{{X: 5, Y: 9}}, Dist: []float64{0}}
	if diff := cmp.Diff(want, tour); diff != "" {
		t.Errorf("single-point tour mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTourTwoPoints(t *testing.T) {
	tour := BuildTour([]Point{{0, 0}, {3, 4}})
	want := Tour{Points: []Point{{0, 0}, {3, 4}}, Dist: []float64{0, 5}}
	if diff := cmp.Diff(want, tour); diff != "" {
		t.Errorf("two-point tour mismatch (-want +got):\n%s", diff)
	}
}

// Sizes stay at or below the initial query width: there the index
// returns the whole point set and the greedy choice must match the
// full rescan exactly, tie-breaks included.
func TestBuildTourMatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, n := range []int{2, 7, 19, 33, 50} {
		points := uniquePoints(n, rng)
		got := BuildTour(points)
		want := naiveTour(points)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("n=%d: indexed tour diverges from baseline (-naive +kdtree):\n%s", n, diff)
		}
	}
}

func TestBuildTourVisitsEveryPointOnce(t *testing.T) {
	// Dense grid larger than the initial query width, so the adaptive
	// expansion path is exercised.
	var points []Point
	for y := range 20 {
		for x := range 30 {
			points = append(points, Point{X: x * 3, Y: y * 2})
		}
	}
	tour := BuildTour(points)
	if len(tour.Points) != len(points) {
		t.Fatalf("tour has %d points, want %d", len(tour.Points), len(points))
	}
	if len(tour.Dist) != len(tour.Points) {
		t.Fatalf("tour has %d distances for %d points", len(tour.Dist), len(tour.Points))
	}
	if tour.Dist[0] != 0 {
		t.Errorf("leading distance = %v, want 0", tour.Dist[0])
	}
	seen := make(map[Point]int, len(points))
	for _, p := range tour.Points {
		seen[p]++
	}
	for _, p := range points {
		if seen[p] != 1 {
			t.Fatalf("point %v visited %d times, want exactly once", p, seen[p])
		}
	}
}

func TestBuildTourDistancesAreConsecutive(t *testing.T) {
	points := uniquePoints(80, rand.New(rand.NewSource(23)))
	tour := BuildTour(points)
	for i := 1; i < len(tour.Points); i++ {
		dx := float64(tour.Points[i].X - tour.Points[i-1].X)
		dy := float64(tour.Points[i].Y - tour.Points[i-1].Y)
		want := math.Sqrt(dx*dx + dy*dy)
		if math.Abs(tour.Dist[i]-want) > 1e-9 {
			t.Fatalf("step %d: recorded distance %v, want %v", i, tour.Dist[i], want)
		}
	}
}

func TestBuildTourDeterministic(t *testing.T) {
	points := uniquePoints(150, rand.New(rand.NewSource(5)))
	a := BuildTour(points)
	b := BuildTour(points)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeated runs diverged (-a +b):\n%s", diff)
	}
}
