package inkpath

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// Tour is an ordered visiting sequence over sampled points. Dist is
// aligned with Points: Dist[i] is the Euclidean distance from
// Points[i-1] to Points[i], and Dist[0] is always 0. The sequence is a
// Hamiltonian path, not a cycle.
type Tour struct {
	Points []Point
	Dist   []float64
}

// initialNeighbors is the starting k for nearest-neighbor queries.
// Spatial locality makes the nearest unvisited point almost always one
// of the first few geometric neighbors, so small queries win on the
// typical step and the query widens only when the local neighborhood
// is exhausted.
const initialNeighbors = 50

// BuildTour connects the points with a greedy nearest-neighbor
// heuristic: start at the first point and repeatedly step to the
// closest point not yet visited, found through a static kd-tree with
// adaptive query widening. The result visits every input point exactly
// once. Equidistant candidates resolve by input position, so a fixed
// input order gives an identical tour on every run.
func BuildTour(points []Point) Tour {
	n := len(points)
	switch n {
	case 0:
		return Tour{}
	case 1:
		return Tour{Points: []Point{points[0]}, Dist: []float64{0}}
	}

	data := make(sites, n)
	for i, p := range points {
		data[i] = site{x: float64(p.X), y: float64(p.Y), idx: i}
	}
	tree := kdtree.New(data, false)

	visited := make([]bool, n)
	order := make([]Point, 1, n)
	dist := make([]float64, 1, n)
	order[0] = points[0]
	cur := site{x: float64(points[0].X), y: float64(points[0].Y), idx: 0}
	visited[0] = true

	for range n - 1 {
		k := min(initialNeighbors, n)
		for {
			next, d, ok := nearestUnvisited(tree, cur, k, visited)
			if ok {
				visited[next.idx] = true
				order = append(order, points[next.idx])
				dist = append(dist, d)
				cur = next
				break
			}
			// All k neighbors already visited; widen the query. At
			// k == n the whole set comes back, so progress is
			// guaranteed.
			k = min(k*2, n)
		}
	}
	return Tour{Points: order, Dist: dist}
}

// nearestUnvisited queries the k nearest neighbors of from and returns
// the closest one not yet visited, with its Euclidean distance.
func nearestUnvisited(tree *kdtree.Tree, from site, k int, visited []bool) (site, float64, bool) {
	keep := kdtree.NewNKeeper(k)
	tree.NearestSet(keep, from)

	got := make([]kdtree.ComparableDist, 0, len(keep.Heap))
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		got = append(got, c)
	}
	sort.Slice(got, func(i, j int) bool {
		if got[i].Dist != got[j].Dist {
			return got[i].Dist < got[j].Dist
		}
		return got[i].Comparable.(site).idx < got[j].Comparable.(site).idx
	})
	for _, c := range got {
		s := c.Comparable.(site)
		if !visited[s.idx] {
			return s, math.Sqrt(c.Dist), true
		}
	}
	return site{}, 0, false
}

// site adapts a sampled point to the kd-tree interfaces, carrying its
// position in the input slice for visited tracking.
type site struct {
	x, y float64
	idx  int
}

func (s site) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(site)
	switch d {
	case 0:
		return s.x - q.x
	case 1:
		return s.y - q.y
	default:
		panic("illegal dimension")
	}
}

func (s site) Dims() int { return 2 }

// Distance returns the squared Euclidean distance between s and c.
func (s site) Distance(c kdtree.Comparable) float64 {
	q := c.(site)
	dx := s.x - q.x
	dy := s.y - q.y
	return dx*dx + dy*dy
}

type sites []site

func (s sites) Index(i int) kdtree.Comparable { return s[i] }

func (s sites) Len() int { return len(s) }

func (s sites) Slice(start, end int) kdtree.Interface { return s[start:end] }

func (s sites) Pivot(d kdtree.Dim) int {
	return sitePlane{Dim: d, sites: s}.Pivot()
}

// sitePlane sorts sites along a kd-tree dimension.
type sitePlane struct {
	kdtree.Dim
	sites
}

func (p sitePlane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.sites[i].x < p.sites[j].x
	case 1:
		return p.sites[i].y < p.sites[j].y
	default:
		panic("illegal dimension")
	}
}

func (p sitePlane) Pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (p sitePlane) Slice(start, end int) kdtree.SortSlicer {
	p.sites = p.sites[start:end]
	return p
}

func (p sitePlane) Swap(i, j int) {
	p.sites[i], p.sites[j] = p.sites[j], p.sites[i]
}
