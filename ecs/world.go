// Package ecs is a small entity component system. Components are plain
// structs registered through component.NewComponent and stored per kind in
// sparse sets.
package ecs

import "github.com/milk9111/walkzone/ecs/component"

type store interface {
	has(e Entity) bool
	remove(e Entity) bool
	len() int
}

// World owns entities, their components and the event queue systems use to
// talk to each other.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
}

func NewWorld() *World {
	return &World{stores: map[component.ComponentID]store{}}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. It reports false for an
// entity that is not alive.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	return w.entities.entities()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	s, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		set := newSparseSet[T]()
		w.stores[kind.ID()] = set
		return set
	}
	set, _ := s.(*sparseSet[T])
	return set
}
