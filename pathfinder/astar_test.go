package pathfinder

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

type testNode struct {
	name      string
	pos       cp.Vector
	neighbors []*testNode
	state     SearchState[*testNode]
}

func (n *testNode) Search() *SearchState[*testNode] { return &n.state }
func (n *testNode) Position() cp.Vector              { return n.pos }

type testGraph struct {
	nodes   map[string]*testNode
	blocked map[string]bool
	cost    CostFunc[*testNode]
}

func newTestGraph(cost CostFunc[*testNode]) *testGraph {
	return &testGraph{nodes: map[string]*testNode{}, blocked: map[string]bool{}, cost: cost}
}

func (g *testGraph) add(name string, x, y float64) *testNode {
	n := &testNode{name: name, pos: cp.Vector{X: x, Y: y}}
	g.nodes[name] = n
	return n
}

func (g *testGraph) link(a, b string) {
	na, nb := g.nodes[a], g.nodes[b]
	na.neighbors = append(na.neighbors, nb)
	nb.neighbors = append(nb.neighbors, na)
}

func (g *testGraph) Neighbors(n *testNode) []*testNode { return n.neighbors }
func (g *testGraph) Blocked(ctx *Context[*testNode], n *testNode) bool {
	return g.blocked[n.name]
}
func (g *testGraph) Cost(ctx *Context[*testNode], n *testNode) float64 {
	return g.cost(ctx, n)
}

func names(p *NodePath[*testNode]) []string {
	out := make([]string, 0, p.Len())
	for _, n := range p.Nodes() {
		out = append(out, n.name)
	}
	return out
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// diamond builds s -> {a, b} -> t where the route over b has fewer hops
// through an extra node but is geometrically shorter over a.
//
//	s(0,0) - a(5,1) - t(10,0)
//	s(0,0) - b(2,8) - c(8,8) - t(10,0)
func diamond(cost CostFunc[*testNode]) *testGraph {
	g := newTestGraph(cost)
	g.add("s", 0, 0)
	g.add("a", 5, 1)
	g.add("b", 2, 8)
	g.add("c", 8, 8)
	g.add("t", 10, 0)
	g.link("s", "a")
	g.link("a", "t")
	g.link("s", "b")
	g.link("b", "c")
	g.link("c", "t")
	return g
}

func TestAStarFindPath(t *testing.T) {
	cases := []struct {
		name    string
		cost    CostFunc[*testNode]
		h       Heuristic[*testNode]
		blocked []string
		want    []string
	}{
		{"distance_euclidean", DistanceCost[*testNode], Euclidean[*testNode], nil, []string{"s", "a", "t"}},
		{"unit_cost", UnitCost[*testNode], Zero[*testNode], nil, []string{"s", "a", "t"}},
		{"blocked_detour", DistanceCost[*testNode], Euclidean[*testNode], []string{"a"}, []string{"s", "b", "c", "t"}},
		{"dijkstra", DistanceCost[*testNode], nil, nil, []string{"s", "a", "t"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := diamond(c.cost)
			for _, b := range c.blocked {
				g.blocked[b] = true
			}
			finder := NewAStar[*testNode](g, 4, c.h)
			var path NodePath[*testNode]
			if !finder.FindPath(nil, g.nodes["s"], g.nodes["t"], &path) {
				t.Fatalf("expected a path")
			}
			if got := names(&path); !equalNames(got, c.want) {
				t.Fatalf("path = %v, want %v", got, c.want)
			}
		})
	}
}

func TestAStarRelaxesOpenNode(t *testing.T) {
	// m is first reached expensively through x and must be re-parented to y.
	g := newTestGraph(DistanceCost[*testNode])
	g.add("s", 0, 0)
	g.add("x", 0, 1)
	g.add("y", 3, 0)
	g.add("m", 6, 0)
	g.add("t", 12, 0)
	g.link("s", "x")
	g.link("s", "y")
	g.link("x", "m")
	g.link("y", "m")
	g.link("m", "t")

	finder := NewAStar[*testNode](g, 0, Zero[*testNode])
	var path NodePath[*testNode]
	if !finder.FindPath(nil, g.nodes["s"], g.nodes["t"], &path) {
		t.Fatalf("expected a path")
	}
	if got := names(&path); !equalNames(got, []string{"s", "y", "m", "t"}) {
		t.Fatalf("unexpected path %v", got)
	}
	if c := g.nodes["t"].Search().Cost(); math.Abs(c-12) > 1e-9 {
		t.Fatalf("expected cost 12, got %v", c)
	}
}

func TestAStarUnreachable(t *testing.T) {
	g := diamond(UnitCost[*testNode])
	island := g.add("island", 50, 50)

	finder := NewAStar[*testNode](g, 4, Euclidean[*testNode])
	var path NodePath[*testNode]
	path.nodes = append(path.nodes, island)
	if finder.FindPath(nil, g.nodes["s"], island, &path) {
		t.Fatalf("expected no path to a disconnected node")
	}
	if path.Len() != 0 {
		t.Fatalf("expected empty path, got %d nodes", path.Len())
	}
}

func TestAStarStartIsTarget(t *testing.T) {
	g := diamond(UnitCost[*testNode])
	finder := NewAStar[*testNode](g, 4, Euclidean[*testNode])
	var path NodePath[*testNode]
	if !finder.FindPath(nil, g.nodes["a"], g.nodes["a"], &path) {
		t.Fatalf("expected trivial path")
	}
	if got := names(&path); !equalNames(got, []string{"a"}) {
		t.Fatalf("expected single node path, got %v", got)
	}
}

func TestAStarReusesNodesAcrossRuns(t *testing.T) {
	g := diamond(DistanceCost[*testNode])
	finder := NewAStar[*testNode](g, 4, Euclidean[*testNode])
	var path NodePath[*testNode]

	if !finder.FindPath(nil, g.nodes["s"], g.nodes["t"], &path) {
		t.Fatalf("first search failed")
	}
	// stale closed flags from the first run must not hide nodes in the second
	if !finder.FindPath(nil, g.nodes["t"], g.nodes["s"], &path) {
		t.Fatalf("second search failed")
	}
	if got := names(&path); !equalNames(got, []string{"t", "a", "s"}) {
		t.Fatalf("unexpected reverse path %v", got)
	}
}

func TestAStarPassesMover(t *testing.T) {
	g := diamond(UnitCost[*testNode])
	var seen any
	g.cost = func(ctx *Context[*testNode], n *testNode) float64 {
		seen = ctx.Mover
		return 1
	}
	finder := NewAStar[*testNode](g, 4, nil)
	var path NodePath[*testNode]
	finder.FindPath("walker", g.nodes["s"], g.nodes["t"], &path)
	if seen != "walker" {
		t.Fatalf("expected mover to reach the cost callback, got %v", seen)
	}
}

func TestHeuristics(t *testing.T) {
	a := &testNode{pos: cp.Vector{X: 0, Y: 0}}
	b := &testNode{pos: cp.Vector{X: 3, Y: 4}}
	if h := Manhattan(a, b); h != 7 {
		t.Fatalf("Manhattan = %v, want 7", h)
	}
	if h := Euclidean(a, b); h != 5 {
		t.Fatalf("Euclidean = %v, want 5", h)
	}
	ctx := &Context[*testNode]{Source: a}
	if c := DistanceCost(ctx, b); c != 5 {
		t.Fatalf("DistanceCost = %v, want 5", c)
	}
	if UnitCost(ctx, b) != 1 || NeverBlocked(ctx, b) {
		t.Fatalf("unexpected default policy values")
	}
}
