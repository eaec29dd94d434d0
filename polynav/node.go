package polynav

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/walkzone/pathfinder"
)

// NavNode is a waypoint of the visibility graph. Nodes are compared by
// reference; two nodes may share a position.
type NavNode struct {
	X, Y      float64
	neighbors []*NavNode
	search    pathfinder.SearchState[*NavNode]
}

func newNode(p cp.Vector) *NavNode {
	return &NavNode{X: p.X, Y: p.Y}
}

func (n *NavNode) Position() cp.Vector {
	return cp.Vector{X: n.X, Y: n.Y}
}

// Neighbors returns the nodes visible from n. The slice must not be modified.
func (n *NavNode) Neighbors() []*NavNode {
	return n.neighbors
}

func (n *NavNode) Search() *pathfinder.SearchState[*NavNode] {
	return &n.search
}

// HasNeighbor reports whether o is linked to n.
func (n *NavNode) HasNeighbor(o *NavNode) bool {
	for _, nb := range n.neighbors {
		if nb == o {
			return true
		}
	}
	return false
}

// link adds the edge in both directions. Linking twice is a no-op.
func (n *NavNode) link(o *NavNode) {
	if n == o || n.HasNeighbor(o) {
		return
	}
	n.neighbors = append(n.neighbors, o)
	o.neighbors = append(o.neighbors, n)
}

// unlink removes the edge in both directions.
func (n *NavNode) unlink(o *NavNode) {
	n.neighbors = removeNode(n.neighbors, o)
	o.neighbors = removeNode(o.neighbors, n)
}

// isolate drops every edge touching n.
func (n *NavNode) isolate() {
	for _, nb := range n.neighbors {
		nb.neighbors = removeNode(nb.neighbors, n)
	}
	n.neighbors = n.neighbors[:0]
}

func removeNode(list []*NavNode, n *NavNode) []*NavNode {
	for i, v := range list {
		if v == n {
			last := len(list) - 1
			list[i] = list[last]
			list[last] = nil
			return list[:last]
		}
	}
	return list
}
