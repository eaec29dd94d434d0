// Package component declares the data attached to entities.
package component

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind is the typed key of a component store.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func NewComponentKind[T any]() ComponentKind[T] {
	var zero T
	return ComponentKind[T]{
		id:   ComponentID(nextComponentID.Add(1)),
		name: fmt.Sprintf("%T", zero),
	}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

func (k ComponentKind[T]) String() string {
	if k.name == "" {
		return "invalid"
	}
	return k.name
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
