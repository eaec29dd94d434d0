// Package polynav finds shortest walking paths inside a polygonal walk zone
// that contains static and dynamic polygonal obstacles.
//
// The graph keeps a visibility graph whose nodes are the corners a shortest
// path can bend around: reflex vertices of the walk zone and the outward
// corners of obstacles. Static geometry is fixed when the graph is built;
// dynamic obstacles patch the graph incrementally. A query first tries the
// straight line and only falls back to A* when something is in the way.
//
// A Graph is not safe for concurrent use.
package polynav

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/walkzone/geom"
	"github.com/milk9111/walkzone/pathfinder"
)

var (
	ErrNoWalkZone        = errors.New("polynav: walk zone not set")
	ErrDegeneratePolygon = errors.New("polynav: polygon has fewer than 3 vertices")
	ErrGraphBuilt        = errors.New("polynav: static geometry is fixed once the graph is built")
)

// State is the build state of a Graph.
type State int

const (
	StateUnbuilt State = iota
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUnbuilt:
		return "unbuilt"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ObstacleID identifies a dynamic obstacle.
type ObstacleID = uuid.UUID

type edge struct {
	a, b *NavNode
}

func (e edge) touches(set map[*NavNode]struct{}) bool {
	_, a := set[e.a]
	_, b := set[e.b]
	return a || b
}

// dynamicObstacle owns the nodes created for its corners and the edges its
// presence currently hides.
type dynamicObstacle struct {
	id       ObstacleID
	poly     geom.Polygon
	nodes    []*NavNode
	shadowed []edge
}

// DynamicObstacle describes an active dynamic obstacle.
type DynamicObstacle struct {
	ID      ObstacleID
	Polygon geom.Polygon
}

// Graph is a polygonal navigation graph.
type Graph struct {
	walkZone  geom.Polygon
	hasZone   bool
	obstacles []geom.Polygon
	dynamic   []*dynamicObstacle
	byID      map[ObstacleID]*dynamicObstacle
	nodes     []*NavNode
	state     State

	// start and target slots reused by every query
	scratch [2]NavNode

	finder    *pathfinder.AStar[*NavNode]
	result    pointPath
	heuristic pathfinder.Heuristic[*NavNode]
	cost      pathfinder.CostFunc[*NavNode]
	blocked   pathfinder.BlockedFunc[*NavNode]
	capacity  int
	scale     float64

	debug  bool
	logger *log.Logger
}

// New returns an unbuilt graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		byID:      map[ObstacleID]*dynamicObstacle{},
		heuristic: pathfinder.Euclidean[*NavNode],
		cost:      pathfinder.DistanceCost[*NavNode],
		blocked:   pathfinder.NeverBlocked[*NavNode],
		capacity:  pathfinder.DefaultCapacity,
		scale:     1,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.finder = pathfinder.NewAStar[*NavNode](g, g.capacity, g.heuristic)
	return g
}

// SetWalkZone replaces the walk zone. The graph goes back to the unbuilt
// state; dynamic obstacles are kept and re-applied by the next build.
func (g *Graph) SetWalkZone(p geom.Polygon) {
	g.walkZone = p
	g.hasZone = true
	g.clearNodes()
	g.state = StateUnbuilt
}

// AddObstacle registers a static obstacle. Statics can only be added before
// CreateInitialGraph.
func (g *Graph) AddObstacle(p geom.Polygon) error {
	if g.state == StateReady {
		return ErrGraphBuilt
	}
	g.obstacles = append(g.obstacles, p)
	return nil
}

// CreateInitialGraph builds the visibility graph from the walk zone and the
// static obstacles, then patches in every registered dynamic obstacle.
func (g *Graph) CreateInitialGraph() error {
	if !g.hasZone {
		return ErrNoWalkZone
	}
	if g.walkZone.Len() < 3 {
		return fmt.Errorf("%w: walk zone", ErrDegeneratePolygon)
	}

	g.clearNodes()

	for i, v := range g.walkZone.Vertices() {
		if geom.IsVertexConcave(g.walkZone, i) {
			g.nodes = append(g.nodes, newNode(v))
		}
	}

	for _, o := range g.obstacles {
		g.nodes = append(g.nodes, g.cornerNodes(o)...)
	}

	for i := 0; i < len(g.nodes)-1; i++ {
		for j := i + 1; j < len(g.nodes); j++ {
			a, b := g.nodes[i], g.nodes[j]
			if g.staticSight(a.Position(), b.Position()) {
				a.link(b)
			}
		}
	}

	g.state = StateReady

	for _, d := range g.dynamic {
		g.attach(d)
	}

	g.debugf("graph built: %d nodes, %d edges, %d dynamic obstacles", len(g.nodes), len(g.edges()), len(g.dynamic))
	return nil
}

// cornerNodes creates a node for every outward corner of obstacle o that lies
// strictly inside the walk zone. Corners outside the zone can never be on a
// walkable path.
func (g *Graph) cornerNodes(o geom.Polygon) []*NavNode {
	var out []*NavNode
	for i, v := range o.Vertices() {
		if geom.IsVertexConvex(o, i) && geom.IsPointInside(g.walkZone, v.X, v.Y, false) {
			out = append(out, newNode(v))
		}
	}
	return out
}

func (g *Graph) clearNodes() {
	for _, n := range g.nodes {
		n.neighbors = nil
	}
	g.nodes = nil
	for _, d := range g.dynamic {
		d.nodes = nil
		d.shadowed = nil
	}
}

// staticSight checks a segment against the walk zone and static obstacles.
func (g *Graph) staticSight(a, b cp.Vector) bool {
	if !geom.InLineOfSight(a, b, g.walkZone, false) {
		return false
	}
	for _, o := range g.obstacles {
		if !geom.InLineOfSight(a, b, o, true) {
			return false
		}
	}
	return true
}

// blocker returns the first dynamic obstacle that hides b from a.
func (g *Graph) blocker(a, b cp.Vector) *dynamicObstacle {
	for _, d := range g.dynamic {
		if !geom.InLineOfSight(a, b, d.poly, true) {
			return d
		}
	}
	return nil
}

// InLineOfSight reports whether a straight walk from a to b stays inside the
// walk zone and clear of every static and dynamic obstacle.
func (g *Graph) InLineOfSight(a, b cp.Vector) bool {
	return g.staticSight(a, b) && g.blocker(a, b) == nil
}

// connect links a and b when they see each other. A pair hidden only by a
// dynamic obstacle is remembered by that obstacle so removing it can restore
// the edge.
func (g *Graph) connect(a, b *NavNode) {
	pa, pb := a.Position(), b.Position()
	if !g.staticSight(pa, pb) {
		return
	}
	if d := g.blocker(pa, pb); d != nil {
		d.shadowed = append(d.shadowed, edge{a, b})
		return
	}
	a.link(b)
}

// edges lists every edge once.
func (g *Graph) edges() []edge {
	index := make(map[*NavNode]int, len(g.nodes))
	for i, n := range g.nodes {
		index[n] = i
	}
	var out []edge
	for i, n := range g.nodes {
		for _, nb := range n.neighbors {
			if j, ok := index[nb]; ok && j > i {
				out = append(out, edge{n, nb})
			}
		}
	}
	return out
}

func (g *Graph) debugf(format string, args ...any) {
	if !g.debug || g.logger == nil {
		return
	}
	g.logger.Printf("polynav: "+format, args...)
}

// Scale is the asset scale the geometry was placed with.
func (g *Graph) Scale() float64 {
	return g.scale
}

func (g *Graph) State() State {
	return g.state
}

func (g *Graph) WalkZone() geom.Polygon {
	return g.walkZone
}

// Obstacles returns the static obstacles.
func (g *Graph) Obstacles() []geom.Polygon {
	return append([]geom.Polygon(nil), g.obstacles...)
}

// DynamicObstacles returns the active dynamic obstacles in insertion order.
func (g *Graph) DynamicObstacles() []DynamicObstacle {
	out := make([]DynamicObstacle, 0, len(g.dynamic))
	for _, d := range g.dynamic {
		out = append(out, DynamicObstacle{ID: d.id, Polygon: d.poly})
	}
	return out
}

// Nodes returns the current graph nodes, excluding the query scratch nodes.
func (g *Graph) Nodes() []*NavNode {
	return append([]*NavNode(nil), g.nodes...)
}

// Edges returns the end points of every edge, each edge once.
func (g *Graph) Edges() [][2]cp.Vector {
	es := g.edges()
	out := make([][2]cp.Vector, 0, len(es))
	for _, e := range es {
		out = append(out, [2]cp.Vector{e.a.Position(), e.b.Position()})
	}
	return out
}

// Neighbors, Blocked and Cost make the graph searchable by pathfinder.AStar.

func (g *Graph) Neighbors(n *NavNode) []*NavNode {
	return n.neighbors
}

func (g *Graph) Blocked(ctx *pathfinder.Context[*NavNode], n *NavNode) bool {
	return g.blocked(ctx, n)
}

func (g *Graph) Cost(ctx *pathfinder.Context[*NavNode], n *NavNode) float64 {
	return g.cost(ctx, n)
}
