package system

import (
	"github.com/milk9111/walkzone/ecs"
	"github.com/milk9111/walkzone/ecs/component"
	"github.com/milk9111/walkzone/polynav"
)

// NavigationSystem turns NavRequest components into walker paths.
type NavigationSystem struct {
	Graph *polynav.Graph
}

func NewNavigationSystem(g *polynav.Graph) *NavigationSystem {
	return &NavigationSystem{Graph: g}
}

func (ns *NavigationSystem) Update(w *ecs.World) {
	if ns == nil || w == nil || ns.Graph == nil {
		return
	}

	ecs.ForEach(w, component.NavRequestComponent.Kind(), func(e ecs.Entity, req *component.NavRequest) {
		ecs.Remove(w, e, component.NavRequestComponent.Kind())

		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		walker, ok := ecs.Get(w, e, component.WalkerComponent.Kind())
		if !ok {
			return
		}

		r := ns.Graph.Route(e, tr.X, tr.Y, req.X, req.Y)
		walker.Goal = r.Target
		if !r.OK() {
			walker.Stop()
			w.Events().Push(ecs.Event{Type: ecs.EventUnreachable, Data: walkEvent(w, e)})
			return
		}

		// the first point is where the walker already stands
		walker.Path = append(walker.Path[:0], r.Points[1:]...)
		walker.Next = 0
	})
}

func walkEvent(w *ecs.World, e ecs.Entity) ecs.WalkEvent {
	evt := ecs.WalkEvent{Entity: e}
	if actor, ok := ecs.Get(w, e, component.ActorComponent.Kind()); ok {
		evt.Actor = actor.Name
	}
	return evt
}
