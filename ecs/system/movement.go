package system

import (
	"github.com/milk9111/walkzone/common"
	"github.com/milk9111/walkzone/ecs"
	"github.com/milk9111/walkzone/ecs/component"
)

const defaultWalkSpeed = 120.0

// MovementSystem advances walkers along their paths at a constant speed.
// A tick that reaches a waypoint carries the leftover distance into the next
// segment.
type MovementSystem struct {
	// Step is the simulated time per update in seconds.
	Step float64
}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{Step: 1.0 / common.TicksPerSecond}
}

func (ms *MovementSystem) Update(w *ecs.World) {
	if ms == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.WalkerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, walker *component.Walker, tr *component.Transform) {
		if !walker.Walking() {
			return
		}

		speed := walker.Speed
		if speed <= 0 {
			speed = defaultWalkSpeed
		}
		budget := speed * ms.Step

		for budget > 0 && walker.Walking() {
			pos := tr.Position()
			next := walker.Path[walker.Next]
			d := pos.Distance(next)
			if d <= budget {
				tr.SetPosition(next)
				budget -= d
				walker.Next++
				continue
			}
			t := budget / d
			tr.X = common.Lerp(pos.X, next.X, t)
			tr.Y = common.Lerp(pos.Y, next.Y, t)
			budget = 0
		}

		if !walker.Walking() {
			walker.Stop()
			w.Events().Push(ecs.Event{Type: ecs.EventArrived, Data: walkEvent(w, e)})
		}
	})
}
