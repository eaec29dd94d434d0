package polynav

import (
	"log"

	"github.com/milk9111/walkzone/pathfinder"
)

// Option configures a Graph.
type Option func(*Graph)

// WithHeuristic replaces the A* heuristic. The default is the Euclidean
// distance, which is admissible for the default distance cost.
func WithHeuristic(h pathfinder.Heuristic[*NavNode]) Option {
	return func(g *Graph) {
		if h != nil {
			g.heuristic = h
		}
	}
}

// WithCost replaces the edge cost. The default is the edge length.
func WithCost(c pathfinder.CostFunc[*NavNode]) Option {
	return func(g *Graph) {
		if c != nil {
			g.cost = c
		}
	}
}

// WithBlocked installs a predicate that can refuse nodes during search.
func WithBlocked(b pathfinder.BlockedFunc[*NavNode]) Option {
	return func(g *Graph) {
		if b != nil {
			g.blocked = b
		}
	}
}

// WithUnitCost charges 1 per edge, so paths have the fewest turns rather
// than the shortest length. The search runs without an estimate; a distance
// estimate would overshoot a cost of 1 per edge.
func WithUnitCost() Option {
	return func(g *Graph) {
		g.cost = pathfinder.UnitCost[*NavNode]
		g.heuristic = pathfinder.Zero[*NavNode]
	}
}

// WithCapacity sizes the search buffers.
func WithCapacity(n int) Option {
	return func(g *Graph) {
		g.capacity = n
	}
}

// WithScale records the asset scale the walk zone and obstacles were
// multiplied by. It does not transform anything; snapshots divide it back
// out. Zero and negative values are ignored.
func WithScale(s float64) Option {
	return func(g *Graph) {
		if s > 0 {
			g.scale = s
		}
	}
}

// WithDebug logs build and query diagnostics.
func WithDebug(debug bool) Option {
	return func(g *Graph) {
		g.debug = debug
	}
}

// WithLogger sends diagnostics to l instead of the standard logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Graph) {
		g.logger = l
	}
}
