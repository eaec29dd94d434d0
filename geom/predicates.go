package geom

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
)

// Epsilon is the distance under which a point counts as lying on an edge.
const Epsilon = 1e-6

// IsPointInside reports whether (x, y) lies inside p. Points on the boundary
// count as inside only when edgeInclusive is set.
func IsPointInside(p Polygon, x, y float64, edgeInclusive bool) bool {
	n := p.Len()
	if n < 3 {
		return false
	}
	pt := cp.Vector{X: x, Y: y}
	if onBoundary(p, pt) {
		return edgeInclusive
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := p.world[i], p.world[j]
		if (vi.Y > y) != (vj.Y > y) &&
			x < (vj.X-vi.X)*(y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

func onBoundary(p Polygon, pt cp.Vector) bool {
	for i := range p.world {
		a, b := p.Edge(i)
		if DistanceToSegment(pt, a, b) <= Epsilon {
			return true
		}
	}
	return false
}

// IsVertexConcave reports whether the interior angle at vertex i is reflex.
// Collinear vertices are not concave.
func IsVertexConcave(p Polygon, i int) bool {
	return vertexTurn(p, i) < 0
}

// IsVertexConvex reports whether the interior angle at vertex i is below
// 180 degrees. Seen from outside the polygon such a corner is reflex, which
// is what makes obstacle corners navigation waypoints.
func IsVertexConvex(p Polygon, i int) bool {
	return vertexTurn(p, i) > 0
}

// vertexTurn is +1 when the boundary turns with the winding at vertex i, -1
// when it turns against it and 0 for collinear or degenerate vertices.
func vertexTurn(p Polygon, i int) int {
	if p.Len() < 3 {
		return 0
	}
	prev, cur, next := p.Vertex(i-1), p.Vertex(i), p.Vertex(i+1)
	turn := cur.Sub(prev).Cross(next.Sub(cur))
	if math.Abs(turn) <= Epsilon*Epsilon {
		return 0
	}
	if p.SignedArea() < 0 {
		turn = -turn
	}
	if turn > 0 {
		return 1
	}
	return -1
}

// InLineOfSight reports whether the segment p1-p2 is unobstructed by p.
//
// The segment is cut at every point where it touches the boundary of p and
// each piece is classified by its midpoint. For a walk zone every piece must
// stay inside (edges included); for an obstacle no piece may be strictly
// inside. Touching a vertex or sliding along an edge therefore never blocks.
func InLineOfSight(p1, p2 cp.Vector, p Polygon, isObstacle bool) bool {
	if p.Len() < 3 {
		return true
	}

	d := p2.Sub(p1)
	if d.LengthSq() <= Epsilon*Epsilon {
		return pieceClear(p, p1, isObstacle)
	}

	cuts := []float64{0, 1}
	for i := range p.world {
		a, b := p.Edge(i)
		cuts = appendContacts(cuts, p1, d, a, b)
	}
	sort.Float64s(cuts)

	for i := 1; i < len(cuts); i++ {
		t0, t1 := cuts[i-1], cuts[i]
		if t1-t0 <= Epsilon {
			continue
		}
		mid := p1.Add(d.Mult((t0 + t1) / 2))
		if !pieceClear(p, mid, isObstacle) {
			return false
		}
	}
	return true
}

func pieceClear(p Polygon, pt cp.Vector, isObstacle bool) bool {
	if isObstacle {
		return !IsPointInside(p, pt.X, pt.Y, false)
	}
	return IsPointInside(p, pt.X, pt.Y, true)
}

// appendContacts adds the parameters along p1 + t*d, t in (0, 1), where the
// segment meets edge a-b.
func appendContacts(cuts []float64, p1, d, a, b cp.Vector) []float64 {
	e := b.Sub(a)
	denom := d.Cross(e)
	ap := a.Sub(p1)
	dd := d.LengthSq()

	if math.Abs(denom) <= Epsilon*math.Sqrt(dd*e.LengthSq()) {
		// parallel; only collinear overlap produces contacts
		if math.Abs(ap.Cross(d)) > Epsilon*math.Sqrt(dd) {
			return cuts
		}
		for _, v := range [2]cp.Vector{a, b} {
			t := v.Sub(p1).Dot(d) / dd
			if t > 0 && t < 1 {
				cuts = append(cuts, t)
			}
		}
		return cuts
	}

	t := ap.Cross(e) / denom
	u := ap.Cross(d) / denom
	tol := Epsilon / math.Sqrt(dd)
	utol := Epsilon / math.Sqrt(e.LengthSq())
	if t < -tol || t > 1+tol || u < -utol || u > 1+utol {
		return cuts
	}
	if t > 0 && t < 1 {
		cuts = append(cuts, t)
	}
	return cuts
}

// ClampedPointInside returns (x, y) when it lies inside p (edges included),
// otherwise the closest point on the boundary of p.
func ClampedPointInside(p Polygon, x, y float64) cp.Vector {
	pt := cp.Vector{X: x, Y: y}
	if p.Len() == 0 || IsPointInside(p, x, y, true) {
		return pt
	}
	best := p.world[0]
	bestDist := math.Inf(1)
	for i := range p.world {
		a, b := p.Edge(i)
		c := closestOnSegment(pt, a, b)
		if dist := c.DistanceSq(pt); dist < bestDist {
			best, bestDist = c, dist
		}
	}
	return best
}

// DistanceToSegment returns the distance from pt to the segment a-b.
func DistanceToSegment(pt, a, b cp.Vector) float64 {
	return closestOnSegment(pt, a, b).Distance(pt)
}

func closestOnSegment(pt, a, b cp.Vector) cp.Vector {
	ab := b.Sub(a)
	l := ab.LengthSq()
	if l == 0 {
		return a
	}
	t := pt.Sub(a).Dot(ab) / l
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Mult(t))
}
