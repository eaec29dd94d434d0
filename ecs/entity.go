package ecs

import "fmt"

// Entity is a handle to a world slot. Slots are numbered from 1 and reused
// after destruction; every reuse bumps the slot's generation, so a handle
// kept past DestroyEntity stops matching the new occupant.
//
//	bits 63..32  generation
//	bits 31..0   slot
//
// The zero Entity has slot 0 and never refers to anything.
type Entity uint64

type slot uint32
type generation uint32

const (
	slotBits = 32
	slotMask = 1<<slotBits - 1
)

func packEntity(s slot, g generation) Entity {
	return Entity(uint64(g)<<slotBits | uint64(s))
}

func (e Entity) slot() slot {
	return slot(uint64(e) & slotMask)
}

func (e Entity) generation() generation {
	return generation(uint64(e) >> slotBits)
}

// String formats e as "<slot>v<generation>".
func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.slot(), e.generation())
}

// Valid reports whether e names a slot. It says nothing about liveness; use
// IsAlive for that.
func (e Entity) Valid() bool {
	return e.slot() != 0
}
