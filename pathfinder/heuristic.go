package pathfinder

import "math"

// Heuristic estimates the remaining cost between two nodes. It must never
// overestimate for the search to return optimal paths.
type Heuristic[N any] func(a, b N) float64

// Manhattan is the L1 distance between two located nodes.
func Manhattan[N Locatable](a, b N) float64 {
	pa, pb := a.Position(), b.Position()
	return math.Abs(pa.X-pb.X) + math.Abs(pa.Y-pb.Y)
}

// Euclidean is the straight-line distance between two located nodes.
func Euclidean[N Locatable](a, b N) float64 {
	return a.Position().Distance(b.Position())
}

// Zero turns the search into Dijkstra.
func Zero[N any](a, b N) float64 {
	return 0
}

// BlockedFunc and CostFunc let graphs take their edge policy as values.
type BlockedFunc[N any] func(ctx *Context[N], target N) bool
type CostFunc[N any] func(ctx *Context[N], target N) float64

// NeverBlocked is the default blocked policy.
func NeverBlocked[N any](ctx *Context[N], target N) bool {
	return false
}

// UnitCost charges 1 per edge, so the search minimises hop count.
func UnitCost[N any](ctx *Context[N], target N) float64 {
	return 1
}

// DistanceCost charges the length of the edge from ctx.Source to target.
func DistanceCost[N Locatable](ctx *Context[N], target N) float64 {
	return ctx.Source.Position().Distance(target.Position())
}
