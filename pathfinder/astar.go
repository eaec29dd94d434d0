package pathfinder

import "container/heap"

// DefaultCapacity pre-sizes the open set when no hint is given.
const DefaultCapacity = 100

// AStar searches a Graph. It keeps its buffers between calls, so one
// instance must not run concurrent searches.
type AStar[N Node[N]] struct {
	graph     Graph[N]
	heuristic Heuristic[N]
	open      openSet[N]
	run       uint64
	ctx       Context[N]
}

// NewAStar returns a search over graph. capacity is a working-size hint for
// the open set; the search still grows past it when the graph is larger.
func NewAStar[N Node[N]](graph Graph[N], capacity int, h Heuristic[N]) *AStar[N] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if h == nil {
		h = Zero[N]
	}
	return &AStar[N]{
		graph:     graph,
		heuristic: h,
		open:      make(openSet[N], 0, capacity),
	}
}

// FindPath runs A* from start to target and fills out on success. On failure
// out is left empty and false is returned.
func (a *AStar[N]) FindPath(mover any, start, target N, out NavPath[N]) bool {
	out.Clear()

	a.run++
	a.open = a.open[:0]
	a.ctx = Context[N]{Mover: mover}

	st := a.touch(start)
	st.score = a.heuristic(start, target)
	a.push(start)

	for len(a.open) > 0 {
		current := heap.Pop(&a.open).(N)
		cs := current.Search()
		cs.open = false
		cs.closed = true

		if current == target {
			out.Fill(start, target)
			return true
		}

		a.ctx.Source = current
		for _, next := range a.graph.Neighbors(current) {
			ns := a.touch(next)
			if ns.closed || a.graph.Blocked(&a.ctx, next) {
				continue
			}

			cost := cs.cost + a.graph.Cost(&a.ctx, next)
			if ns.open && cost >= ns.cost {
				continue
			}

			ns.parent = current
			ns.cost = cost
			ns.depth = cs.depth + 1
			ns.score = cost + a.heuristic(next, target)
			if ns.open {
				heap.Fix(&a.open, ns.index)
			} else {
				a.push(next)
			}
		}
	}

	return false
}

// touch returns the search state of n, discarding whatever an earlier run
// left in it.
func (a *AStar[N]) touch(n N) *SearchState[N] {
	s := n.Search()
	if s.run != a.run {
		s.Reset()
		s.run = a.run
	}
	return s
}

func (a *AStar[N]) push(n N) {
	n.Search().open = true
	heap.Push(&a.open, n)
}

// openSet is a binary heap ordered by cost + heuristic.
type openSet[N Node[N]] []N

func (o openSet[N]) Len() int { return len(o) }
func (o openSet[N]) Less(i, j int) bool {
	return o[i].Search().score < o[j].Search().score
}
func (o openSet[N]) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].Search().index = i
	o[j].Search().index = j
}
func (o *openSet[N]) Push(x any) {
	n := x.(N)
	n.Search().index = len(*o)
	*o = append(*o, n)
}
func (o *openSet[N]) Pop() any {
	old := *o
	last := len(old) - 1
	n := old[last]
	var zero N
	old[last] = zero
	*o = old[:last]
	n.Search().index = -1
	return n
}
