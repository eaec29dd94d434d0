package polynav

import (
	"github.com/google/uuid"
	"github.com/milk9111/walkzone/geom"
)

// AddDynamicObstacle registers an obstacle that can be removed later. On a
// built graph it is patched in immediately; otherwise it is applied by
// CreateInitialGraph.
func (g *Graph) AddDynamicObstacle(p geom.Polygon) ObstacleID {
	d := &dynamicObstacle{id: uuid.New(), poly: p}
	g.dynamic = append(g.dynamic, d)
	g.byID[d.id] = d
	if g.state == StateReady {
		g.attach(d)
	}
	return d.id
}

// RemoveDynamicObstacle removes the obstacle and every node created for it,
// restoring the edges it was hiding. Unknown ids are ignored and reported as
// false.
func (g *Graph) RemoveDynamicObstacle(id ObstacleID) bool {
	d, ok := g.byID[id]
	if !ok {
		return false
	}
	delete(g.byID, id)
	for i, o := range g.dynamic {
		if o == d {
			g.dynamic = append(g.dynamic[:i], g.dynamic[i+1:]...)
			break
		}
	}
	if g.state == StateReady {
		g.detach(d)
	}
	return true
}

// DynamicObstacle returns the polygon registered under id.
func (g *Graph) DynamicObstacle(id ObstacleID) (geom.Polygon, bool) {
	d, ok := g.byID[id]
	if !ok {
		return geom.Polygon{}, false
	}
	return d.poly, true
}

// attach hides the edges crossing d and wires a node for each of its
// corners into the graph. d must already be in g.dynamic.
func (g *Graph) attach(d *dynamicObstacle) {
	for _, e := range g.edges() {
		if !geom.InLineOfSight(e.a.Position(), e.b.Position(), d.poly, true) {
			e.a.unlink(e.b)
			d.shadowed = append(d.shadowed, e)
		}
	}

	for _, n := range g.cornerNodes(d.poly) {
		for _, m := range g.nodes {
			g.connect(n, m)
		}
		g.nodes = append(g.nodes, n)
		d.nodes = append(d.nodes, n)
	}

	g.debugf("dynamic obstacle %s added: %d nodes, %d edges hidden", d.id, len(d.nodes), len(d.shadowed))
}

// detach undoes attach. d must already be gone from g.dynamic so that the
// edges it hid are re-evaluated against the remaining obstacles only.
func (g *Graph) detach(d *dynamicObstacle) {
	removed := make(map[*NavNode]struct{}, len(d.nodes))
	for _, n := range d.nodes {
		removed[n] = struct{}{}
		n.isolate()
	}

	kept := g.nodes[:0]
	for _, n := range g.nodes {
		if _, ok := removed[n]; !ok {
			kept = append(kept, n)
		}
	}
	for i := len(kept); i < len(g.nodes); i++ {
		g.nodes[i] = nil
	}
	g.nodes = kept

	for _, o := range g.dynamic {
		shadowed := o.shadowed[:0]
		for _, e := range o.shadowed {
			if !e.touches(removed) {
				shadowed = append(shadowed, e)
			}
		}
		o.shadowed = shadowed
	}

	restored := 0
	for _, e := range d.shadowed {
		if e.touches(removed) {
			continue
		}
		g.connect(e.a, e.b)
		if e.a.HasNeighbor(e.b) {
			restored++
		}
	}

	g.debugf("dynamic obstacle %s removed: %d nodes dropped, %d edges restored", d.id, len(d.nodes), restored)
	d.nodes = nil
	d.shadowed = nil
}
