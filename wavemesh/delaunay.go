package wavemesh

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
)

const DefaultBoundingMargin = 10.0

var (
	ErrInsufficientPoints = errors.New("at least 3 points are required for triangulation")
	ErrNotEnclosed        = errors.New("enclosing triangle does not contain every point")
	ErrInvalidCavity      = errors.New("insertion cavity is not star-shaped")
)

// A BoundingStrategy produces a triangle which strictly contains every
// point of a set, used to seed the triangulation.
type BoundingStrategy interface {
	EnclosingTriangle(points []model2d.Coord) [3]model2d.Coord
}

// MarginStrategy builds an enclosing triangle around the bounding box of
// the points, extended by Margin times the larger side of the box.
//
// This is a heuristic: very large margins lose precision in the
// circumcircle tests, and very small ones may clip the convex hull.
type MarginStrategy struct {
	Margin float64
}

func (m MarginStrategy) EnclosingTriangle(points []model2d.Coord) [3]model2d.Coord {
	margin := m.Margin
	if margin <= 0 {
		margin = DefaultBoundingMargin
	}
	min, max := pointBounds(points)
	size := math.Max(math.Max(max.X-min.X, max.Y-min.Y), 1e-8)
	mid := min.Mid(max)
	return [3]model2d.Coord{
		model2d.XY(mid.X-2*margin*size, mid.Y-margin*size),
		model2d.XY(mid.X+2*margin*size, mid.Y-margin*size),
		model2d.XY(mid.X, mid.Y+2*margin*size),
	}
}

// DiskStrategy builds an equilateral triangle circumscribing the bounding
// disk of the points, with the disk radius multiplied by Scale.
//
// For Scale >= 1, every point is guaranteed to lie inside the triangle.
type DiskStrategy struct {
	Scale float64
}

func (d DiskStrategy) EnclosingTriangle(points []model2d.Coord) [3]model2d.Coord {
	scale := d.Scale
	if scale < 1 {
		scale = DefaultBoundingMargin
	}
	min, max := pointBounds(points)
	center := min.Mid(max)
	var radius float64
	for _, p := range points {
		radius = math.Max(radius, p.Dist(center))
	}
	radius = math.Max(radius, 1e-8) * scale

	// The circumradius of an equilateral triangle is twice its inradius.
	var res [3]model2d.Coord
	for i := range res {
		theta := math.Pi/2 + 2*math.Pi*float64(i)/3
		res[i] = center.Add(model2d.XY(math.Cos(theta), math.Sin(theta)).Scale(2 * radius))
	}
	return res
}

// A Triangulator computes Delaunay triangulations with the Bowyer–Watson
// algorithm.
type Triangulator struct {
	// Bounds creates the initial super-triangle.
	// If nil, a MarginStrategy with DefaultBoundingMargin is used.
	Bounds BoundingStrategy
}

// Triangulate computes the Delaunay triangulation of points using the
// default bounding strategy.
func Triangulate(points []model2d.Coord) ([][3]int, error) {
	return (&Triangulator{}).Triangulate(points)
}

// Triangulate computes the Delaunay triangulation of points.
//
// Points are inserted in order. Each insertion locates the triangle
// containing the point and grows a cavity from it through edge adjacency,
// taking in every neighbor whose circumcircle contains the point. The
// cavity is then replaced by a fan of triangles around the point.
//
// Circumcircle tests use a relative tolerance, so nearly cocircular points
// never invalidate a triangle and either diagonal of a cocircular
// quadrilateral may be produced. If rounding leaves an edge of the cavity
// which does not face the point, the triangle behind it joins the cavity,
// so every new triangle is counter-clockwise and none overlap.
//
// The result contains index triples into points, counter-clockwise in the
// plane. Exact duplicates of earlier points are never referenced.
// If every point is collinear, the result is empty.
//
// Locating a point scans all current triangles, so the runtime is
// quadratic in the number of points.
func (t *Triangulator) Triangulate(points []model2d.Coord) ([][3]int, error) {
	if len(points) < 3 {
		return nil, errors.Wrapf(ErrInsufficientPoints, "got %d", len(points))
	}
	var bounds BoundingStrategy = MarginStrategy{Margin: DefaultBoundingMargin}
	if t.Bounds != nil {
		bounds = t.Bounds
	}
	super := bounds.EnclosingTriangle(points)
	if orientation(super[0], super[1], super[2]) < 0 {
		super[1], super[2] = super[2], super[1]
	}
	for i, p := range points {
		if !strictlyInside(super, p) {
			return nil, errors.Wrapf(ErrNotEnclosed, "point %d at %v", i, p)
		}
	}

	// Super-triangle vertices live after the input points.
	n := len(points)
	coords := make([]model2d.Coord, 0, n+3)
	coords = append(coords, points...)
	coords = append(coords, super[:]...)

	triangles := []*delaunayTriangle{{Indices: [3]int{n, n + 1, n + 2}}}
	seen := make(map[model2d.Coord]struct{}, n)

	for i, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}

		var err error
		triangles, err = insertDelaunayPoint(coords, triangles, i)
		if err != nil {
			return nil, errors.Wrapf(err, "insert point %d at %v", i, p)
		}
	}

	var res [][3]int
	for _, tri := range triangles {
		if tri.Indices[0] < n && tri.Indices[1] < n && tri.Indices[2] < n {
			res = append(res, tri.Indices)
		}
	}
	return res, nil
}

// incircleEpsilon is the relative tolerance of circumcircle tests.
const incircleEpsilon = 1e-12

type delaunayTriangle struct {
	// Indices are counter-clockwise.
	Indices [3]int

	// Neighbors[i] shares the edge from Indices[i] to Indices[(i+1)%3],
	// or is nil on the outside of the super-triangle.
	Neighbors [3]*delaunayTriangle

	inCavity bool
}

// CircumcircleContains checks if c is inside the circumcircle by more than
// the tolerance.
func (d *delaunayTriangle) CircumcircleContains(coords []model2d.Coord, c model2d.Coord) bool {
	det, bound := incircle(coords[d.Indices[0]], coords[d.Indices[1]], coords[d.Indices[2]], c)
	return det > incircleEpsilon*bound
}

func (d *delaunayTriangle) replaceNeighbor(old, replacement *delaunayTriangle) {
	for i, n := range d.Neighbors {
		if n == old {
			d.Neighbors[i] = replacement
		}
	}
}

type cavityEdge struct {
	Start   int
	End     int
	Inside  *delaunayTriangle
	Outside *delaunayTriangle
}

// insertDelaunayPoint adds coords[idx] to a triangulation and returns the
// new set of triangles.
func insertDelaunayPoint(coords []model2d.Coord, triangles []*delaunayTriangle,
	idx int) ([]*delaunayTriangle, error) {
	p := coords[idx]

	start := locateTriangle(coords, triangles, p)
	start.inCavity = true
	cavity := []*delaunayTriangle{start}
	for i := 0; i < len(cavity); i++ {
		tri := cavity[i]
		for e, neighbor := range tri.Neighbors {
			if neighbor == nil || neighbor.inCavity {
				continue
			}
			a, b := coords[tri.Indices[e]], coords[tri.Indices[(e+1)%3]]
			if orientation(a, b, p) <= 0 || neighbor.CircumcircleContains(coords, p) {
				neighbor.inCavity = true
				cavity = append(cavity, neighbor)
			}
		}
	}

	var boundary []cavityEdge
	for _, tri := range cavity {
		for e, neighbor := range tri.Neighbors {
			if neighbor != nil && neighbor.inCavity {
				continue
			}
			edge := cavityEdge{
				Start:   tri.Indices[e],
				End:     tri.Indices[(e+1)%3],
				Inside:  tri,
				Outside: neighbor,
			}
			if orientation(coords[edge.Start], coords[edge.End], p) <= 0 {
				return nil, errors.Wrapf(ErrNotEnclosed, "cavity edge %d-%d", edge.Start, edge.End)
			}
			boundary = append(boundary, edge)
		}
	}

	byStart := make(map[int]*delaunayTriangle, len(boundary))
	byEnd := make(map[int]*delaunayTriangle, len(boundary))
	added := make([]*delaunayTriangle, len(boundary))
	for i, edge := range boundary {
		if _, ok := byStart[edge.Start]; ok {
			return nil, errors.Wrapf(ErrInvalidCavity, "vertex %d starts two edges", edge.Start)
		}
		tri := &delaunayTriangle{Indices: [3]int{edge.Start, edge.End, idx}}
		tri.Neighbors[0] = edge.Outside
		if edge.Outside != nil {
			edge.Outside.replaceNeighbor(edge.Inside, tri)
		}
		byStart[edge.Start] = tri
		byEnd[edge.End] = tri
		added[i] = tri
	}
	for _, tri := range added {
		tri.Neighbors[1] = byStart[tri.Indices[1]]
		tri.Neighbors[2] = byEnd[tri.Indices[0]]
		if tri.Neighbors[1] == nil || tri.Neighbors[2] == nil {
			return nil, errors.Wrapf(ErrInvalidCavity, "open fan at vertex %d", tri.Indices[0])
		}
	}

	res := make([]*delaunayTriangle, 0, len(triangles)-len(cavity)+len(added))
	for _, tri := range triangles {
		if !tri.inCavity {
			res = append(res, tri)
		}
	}
	return append(res, added...), nil
}

// locateTriangle finds a triangle containing p, or, if rounding puts p
// outside of every triangle, the one it is closest to being inside.
func locateTriangle(coords []model2d.Coord, triangles []*delaunayTriangle,
	p model2d.Coord) *delaunayTriangle {
	var best *delaunayTriangle
	bestScore := math.Inf(-1)
	for _, tri := range triangles {
		score := math.Inf(1)
		for e := 0; e < 3; e++ {
			a, b := coords[tri.Indices[e]], coords[tri.Indices[(e+1)%3]]
			score = math.Min(score, orientation(a, b, p))
		}
		if score > bestScore {
			best, bestScore = tri, score
		}
		if score >= 0 {
			break
		}
	}
	return best
}

// incircle is positive when d lies inside the circumcircle of the
// counter-clockwise triangle (a, b, c). The bound scales with the rounding
// error of det.
func incircle(a, b, c, d model2d.Coord) (det, bound float64) {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	aLift := adx*adx + ady*ady
	bLift := bdx*bdx + bdy*bdy
	cLift := cdx*cdx + cdy*cdy

	det = aLift*(bdx*cdy-bdy*cdx) + bLift*(cdx*ady-cdy*adx) + cLift*(adx*bdy-ady*bdx)
	bound = aLift*(math.Abs(bdx*cdy)+math.Abs(bdy*cdx)) +
		bLift*(math.Abs(cdx*ady)+math.Abs(cdy*adx)) +
		cLift*(math.Abs(adx*bdy)+math.Abs(ady*bdx))
	return
}

func edgeKey(a, b int) [2]int {
	if a > b {
		return [2]int{b, a}
	}
	return [2]int{a, b}
}

// orientation is positive if a, b, c are counter-clockwise.
func orientation(a, b, c model2d.Coord) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func strictlyInside(tri [3]model2d.Coord, p model2d.Coord) bool {
	for i := 0; i < 3; i++ {
		if orientation(tri[i], tri[(i+1)%3], p) <= 0 {
			return false
		}
	}
	return true
}

func pointBounds(points []model2d.Coord) (min, max model2d.Coord) {
	min = model2d.XY(math.Inf(1), math.Inf(1))
	max = model2d.XY(math.Inf(-1), math.Inf(-1))
	for _, p := range points {
		min = min.Min(p)
		max = max.Max(p)
	}
	return
}
