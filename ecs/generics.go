package ecs

import (
	"fmt"

	"github.com/milk9111/walkzone/ecs/component"
)

// Add attaches value to e, replacing any previous value of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("%w: %s", component.ErrNilComponent, kind)
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	storeFor(w, kind, true).set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := storeFor(w, kind, false)
	return s != nil && s.has(e)
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := storeFor(w, kind, false)
	return s != nil && s.remove(e)
}

// Count returns how many entities have the component.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	s := storeFor(w, kind, false)
	if s == nil {
		return 0
	}
	return s.len()
}

// ForEach calls fn for every entity with the component. fn may add or remove
// components, including the one being iterated.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := storeFor(w, kind, false)
	if s == nil {
		return
	}
	for _, e := range s.entities() {
		if v, ok := s.get(e); ok {
			fn(e, v)
		}
	}
}

// ForEach2 iterates entities that have both components.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := storeFor(w, ka, false), storeFor(w, kb, false)
	if sa == nil || sb == nil {
		return
	}
	ents := sa.entities()
	if sb.len() < sa.len() {
		ents = sb.entities()
	}
	for _, e := range ents {
		a, ok := sa.get(e)
		if !ok {
			continue
		}
		b, ok := sb.get(e)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

// ForEach3 iterates entities that have all three components.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sc := storeFor(w, kc, false)
	if sc == nil {
		return
	}
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c, ok := sc.get(e); ok {
			fn(e, a, b, c)
		}
	})
}

// First returns the entity with the component that sits first in storage.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := storeFor(w, kind, false)
	if s == nil || s.len() == 0 {
		return 0, false
	}
	return s.dense[0], true
}
