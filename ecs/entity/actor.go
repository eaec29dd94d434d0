package entity

import (
	"fmt"

	"github.com/milk9111/walkzone/ecs"
	"github.com/milk9111/walkzone/ecs/component"
	"github.com/milk9111/walkzone/scenes"
	"golang.org/x/image/colornames"
)

// NewActor creates a walker from its scene spec. Positions and sizes are
// multiplied by scale like the scene geometry.
func NewActor(w *ecs.World, spec scenes.ActorSpec, scale float64) (ecs.Entity, error) {
	if scale == 0 {
		scale = 1
	}

	actor := ecs.CreateEntity(w)
	if err := ecs.Add(w, actor, component.ActorComponent.Kind(), &component.Actor{
		Name:  spec.Name,
		Color: spec.Color.Or(colornames.Gold),
	}); err != nil {
		return 0, fmt.Errorf("actor %s: add actor: %w", spec.Name, err)
	}

	if err := ecs.Add(w, actor, component.TransformComponent.Kind(), &component.Transform{
		X: spec.X * scale,
		Y: spec.Y * scale,
	}); err != nil {
		return 0, fmt.Errorf("actor %s: add transform: %w", spec.Name, err)
	}

	if err := ecs.Add(w, actor, component.WalkerComponent.Kind(), &component.Walker{
		Speed: spec.Speed * scale,
	}); err != nil {
		return 0, fmt.Errorf("actor %s: add walker: %w", spec.Name, err)
	}

	if spec.Footprint {
		if err := ecs.Add(w, actor, component.FootprintComponent.Kind(), &component.Footprint{
			Width:  spec.Width * scale,
			Height: spec.Height * scale,
		}); err != nil {
			return 0, fmt.Errorf("actor %s: add footprint: %w", spec.Name, err)
		}
	}

	return actor, nil
}

// SpawnActors creates every actor of a scene.
func SpawnActors(w *ecs.World, scene *scenes.Scene) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, len(scene.Spec.Actors))
	for _, a := range scene.Spec.Actors {
		e, err := NewActor(w, a, scene.Scale())
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
