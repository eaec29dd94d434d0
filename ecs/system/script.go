package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/walkzone/ecs"
	"github.com/milk9111/walkzone/ecs/component"
	"github.com/milk9111/walkzone/scenes"
	"github.com/milk9111/walkzone/script"
)

// SceneHost exposes a scene and its actors to scripts.
type SceneHost struct {
	*scenes.Scene
	World *ecs.World
}

var _ script.Host = (*SceneHost)(nil)

// WalkTo queues a walk request for the named actor.
func (h *SceneHost) WalkTo(actor string, x, y float64) bool {
	e, ok := FindActor(h.World, actor)
	if !ok {
		return false
	}
	return ecs.Add(h.World, e, component.NavRequestComponent.Kind(), &component.NavRequest{X: x, Y: y}) == nil
}

func (h *SceneHost) Position(actor string) (cp.Vector, bool) {
	e, ok := FindActor(h.World, actor)
	if !ok {
		return cp.Vector{}, false
	}
	tr, ok := ecs.Get(h.World, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return tr.Position(), true
}

// FindActor returns the entity carrying the actor name.
func FindActor(w *ecs.World, name string) (ecs.Entity, bool) {
	var found ecs.Entity
	ok := false
	ecs.ForEach(w, component.ActorComponent.Kind(), func(e ecs.Entity, a *component.Actor) {
		if !ok && a.Name == name {
			found, ok = e, true
		}
	})
	return found, ok
}

// ScriptSystem runs the scene script: onEnter on the first update, then
// onEvent for every walk event of the tick as "arrived:<actor>" or
// "unreachable:<actor>". Script errors are printed and do not stop the
// frame.
type ScriptSystem struct {
	Runtime *script.Runtime
	entered bool
	queued  []string
}

func NewScriptSystem(rt *script.Runtime) *ScriptSystem {
	return &ScriptSystem{Runtime: rt}
}

// Trigger queues a named event for the next update.
func (ss *ScriptSystem) Trigger(name string) {
	ss.queued = append(ss.queued, name)
}

func (ss *ScriptSystem) Update(w *ecs.World) {
	if ss == nil || ss.Runtime == nil || w == nil {
		return
	}

	if !ss.entered {
		ss.entered = true
		if err := ss.Runtime.Enter(); err != nil {
			fmt.Printf("script: %v\n", err)
		}
	}

	names := ss.queued
	ss.queued = nil
	for _, evt := range w.Events().Pending() {
		if evt.Type != ecs.EventArrived && evt.Type != ecs.EventUnreachable {
			continue
		}
		data, _ := evt.Data.(ecs.WalkEvent)
		names = append(names, evt.Type+":"+data.Actor)
	}

	for _, name := range names {
		if err := ss.Runtime.Event(name); err != nil {
			fmt.Printf("script: %v\n", err)
		}
	}
}
