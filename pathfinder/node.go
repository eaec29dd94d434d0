// Package pathfinder is a generic A* search over any graph whose nodes carry
// their own search bookkeeping.
package pathfinder

import "github.com/jakecoffman/cp"

// SearchState is the per-node scratch space written during a search.
type SearchState[N any] struct {
	parent N
	cost   float64
	score  float64
	depth  int
	index  int
	run    uint64
	open   bool
	closed bool
}

// Parent returns the node this one was reached from in the last search.
func (s *SearchState[N]) Parent() N {
	return s.parent
}

// Cost returns the accumulated cost from the start in the last search.
func (s *SearchState[N]) Cost() float64 {
	return s.cost
}

// Depth returns the number of edges from the start in the last search.
func (s *SearchState[N]) Depth() int {
	return s.depth
}

// Reset clears the state as if the node had never been searched.
func (s *SearchState[N]) Reset() {
	*s = SearchState[N]{}
}

// Node is implemented by graph vertices. Identity is by comparison, which for
// pointer nodes means by reference.
type Node[N any] interface {
	comparable
	Search() *SearchState[N]
}

// Locatable nodes expose a world position for distance heuristics.
type Locatable interface {
	Position() cp.Vector
}

// Context is handed to the blocked and cost callbacks.
type Context[N any] struct {
	// Mover is opaque caller data, typically the walking actor.
	Mover any
	// Source is the node being expanded.
	Source N
}

// Graph is what the search walks over.
type Graph[N any] interface {
	Neighbors(n N) []N
	Blocked(ctx *Context[N], target N) bool
	Cost(ctx *Context[N], target N) float64
}
