package system

import (
	"github.com/milk9111/walkzone/ecs"
	"github.com/milk9111/walkzone/ecs/component"
	"github.com/milk9111/walkzone/geom"
	"github.com/milk9111/walkzone/polynav"
)

// FootprintSystem keeps idle walkers in the graph as dynamic obstacles and
// takes them out while they have somewhere to go. It must run before
// NavigationSystem so a walker never routes out of its own footprint.
type FootprintSystem struct {
	Graph *polynav.Graph
}

func NewFootprintSystem(g *polynav.Graph) *FootprintSystem {
	return &FootprintSystem{Graph: g}
}

func (fs *FootprintSystem) Update(w *ecs.World) {
	if fs == nil || w == nil || fs.Graph == nil {
		return
	}

	ecs.ForEach2(w, component.FootprintComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, fp *component.Footprint, _ *component.Transform) {
		if fp.Placed && busy(w, e) {
			fs.Graph.RemoveDynamicObstacle(fp.Obstacle)
			fp.Placed = false
		}
	})

	ecs.ForEach2(w, component.FootprintComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, fp *component.Footprint, tr *component.Transform) {
		if fp.Placed || busy(w, e) || fp.Width <= 0 || fp.Height <= 0 {
			return
		}
		fp.Obstacle = fs.Graph.AddDynamicObstacle(geom.FromBB(fp.BB(tr.Position())))
		fp.Placed = true
	})
}

// Clear removes every placed footprint from the graph, for example before
// the graph is replaced.
func (fs *FootprintSystem) Clear(w *ecs.World) {
	ecs.ForEach(w, component.FootprintComponent.Kind(), func(_ ecs.Entity, fp *component.Footprint) {
		if fp.Placed && fs.Graph != nil {
			fs.Graph.RemoveDynamicObstacle(fp.Obstacle)
		}
		fp.Placed = false
	})
}

func busy(w *ecs.World, e ecs.Entity) bool {
	if ecs.Has(w, e, component.NavRequestComponent.Kind()) {
		return true
	}
	walker, ok := ecs.Get(w, e, component.WalkerComponent.Kind())
	return ok && walker.Walking()
}

// Withdraw takes e's footprint out of the graph until its next idle update.
func (fs *FootprintSystem) Withdraw(w *ecs.World, e ecs.Entity) {
	fp, ok := ecs.Get(w, e, component.FootprintComponent.Kind())
	if !ok || !fp.Placed || fs.Graph == nil {
		return
	}
	fs.Graph.RemoveDynamicObstacle(fp.Obstacle)
	fp.Placed = false
}
