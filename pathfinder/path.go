package pathfinder

// NavPath receives the result of a search.
type NavPath[N Node[N]] interface {
	// Fill follows parent links from target back to start.
	Fill(start, target N)
	Len() int
	Clear()
}

// NodePath is a NavPath holding the nodes themselves.
type NodePath[N Node[N]] struct {
	nodes []N
}

func (p *NodePath[N]) Fill(start, target N) {
	p.nodes = p.nodes[:0]
	Walk(start, target, func(n N) {
		p.nodes = append(p.nodes, n)
	})
}

func (p *NodePath[N]) Len() int {
	return len(p.nodes)
}

func (p *NodePath[N]) Clear() {
	p.nodes = p.nodes[:0]
}

// Nodes returns the path from start to target. The slice is reused by the
// next Fill.
func (p *NodePath[N]) Nodes() []N {
	return p.nodes
}

// Walk calls visit for every node on the parent chain from start to target,
// in that order.
func Walk[N Node[N]](start, target N, visit func(N)) {
	chain := make([]N, 0, target.Search().depth+1)
	cur := target
	for {
		chain = append(chain, cur)
		if cur == start || len(chain) > target.Search().depth {
			break
		}
		cur = cur.Search().parent
	}
	for i := len(chain) - 1; i >= 0; i-- {
		visit(chain[i])
	}
}
