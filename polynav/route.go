package polynav

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/walkzone/geom"
	"github.com/milk9111/walkzone/pathfinder"
)

// Status tells how a query ended.
type Status int

const (
	// StatusNotReady means CreateInitialGraph has not run.
	StatusNotReady Status = iota
	// StatusInvalidStart means the start is outside the walk zone.
	StatusInvalidStart
	// StatusDirect means start and target see each other.
	StatusDirect
	// StatusFound means the path was found by searching the graph.
	StatusFound
	// StatusUnreachable means no path exists.
	StatusUnreachable
)

func (s Status) String() string {
	switch s {
	case StatusNotReady:
		return "not ready"
	case StatusInvalidStart:
		return "invalid start"
	case StatusDirect:
		return "direct"
	case StatusFound:
		return "found"
	case StatusUnreachable:
		return "unreachable"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Route is the full answer to a query.
type Route struct {
	// Points runs from start to target inclusive; empty on failure.
	Points []cp.Vector
	Status Status
	// Target is the goal actually used, after clamping into the walk zone.
	Target  cp.Vector
	Clamped bool
}

// OK reports whether the route can be walked.
func (r Route) OK() bool {
	return len(r.Points) > 0
}

// FindPath returns the shortest path from (sx, sy) to (tx, ty). The result is
// empty when the start is outside the walk zone or the target cannot be
// reached. A target outside the walk zone is clamped to the closest point on
// its boundary.
func (g *Graph) FindPath(sx, sy, tx, ty float64) []cp.Vector {
	return g.Route(nil, sx, sy, tx, ty).Points
}

// Route is FindPath with the reason for the outcome. mover is passed to the
// cost and blocked callbacks.
func (g *Graph) Route(mover any, sx, sy, tx, ty float64) Route {
	if g.state != StateReady {
		g.debugf("query on unbuilt graph")
		return Route{Status: StatusNotReady}
	}

	start := cp.Vector{X: sx, Y: sy}
	target := cp.Vector{X: tx, Y: ty}

	if !geom.IsPointInside(g.walkZone, sx, sy, true) {
		g.debugf("start %v not in walk zone", start)
		return Route{Status: StatusInvalidStart, Target: target}
	}

	r := Route{Target: target}
	if !geom.IsPointInside(g.walkZone, tx, ty, true) {
		r.Target = geom.ClampedPointInside(g.walkZone, tx, ty)
		r.Clamped = true
		target = r.Target
	}

	if g.InLineOfSight(start, target) {
		g.debugf("direct path found")
		r.Points = []cp.Vector{start, target}
		r.Status = StatusDirect
		return r
	}

	startNode, targetNode := g.wireScratch(start, target)
	defer g.releaseScratch()

	if !g.finder.FindPath(mover, startNode, targetNode, &g.result) {
		g.debugf("no path from %v to %v", start, target)
		r.Status = StatusUnreachable
		return r
	}

	r.Points = append([]cp.Vector(nil), g.result.points...)
	r.Status = StatusFound
	return r
}

// wireScratch places the scratch start and target nodes and links them to
// every node they can see.
func (g *Graph) wireScratch(start, target cp.Vector) (*NavNode, *NavNode) {
	g.releaseScratch()

	s, t := &g.scratch[0], &g.scratch[1]
	s.X, s.Y = start.X, start.Y
	t.X, t.Y = target.X, target.Y
	s.search.Reset()
	t.search.Reset()

	for _, n := range g.nodes {
		p := n.Position()
		if g.InLineOfSight(start, p) {
			s.link(n)
		}
		if g.InLineOfSight(target, p) {
			t.link(n)
		}
	}
	return s, t
}

// releaseScratch unhooks the scratch nodes so no edge outlives its query.
func (g *Graph) releaseScratch() {
	g.scratch[0].isolate()
	g.scratch[1].isolate()
}

// pointPath collects the positions of a search result.
type pointPath struct {
	points []cp.Vector
}

var _ pathfinder.NavPath[*NavNode] = (*pointPath)(nil)

func (p *pointPath) Fill(start, target *NavNode) {
	p.points = p.points[:0]
	pathfinder.Walk(start, target, func(n *NavNode) {
		p.points = append(p.points, n.Position())
	})
}

func (p *pointPath) Len() int {
	return len(p.points)
}

func (p *pointPath) Clear() {
	p.points = p.points[:0]
}
