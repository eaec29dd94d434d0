package ecs

// sparseSet stores one component value per entity slot. Values live in a
// dense slice so iteration touches only entities that have the component.
type sparseSet[T any] struct {
	dense  []Entity
	values []*T
	sparse []int
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{}
}

func (s *sparseSet[T]) index(e Entity) (int, bool) {
	id := int(e.slot())
	if id <= 0 || id > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return 0, false
	}
	return idx, true
}

func (s *sparseSet[T]) has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

// set inserts or replaces the value for e.
func (s *sparseSet[T]) set(e Entity, v *T) {
	if idx, ok := s.index(e); ok {
		s.values[idx] = v
		return
	}
	id := int(e.slot())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

func (s *sparseSet[T]) remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.slot()-1] = idx

	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[e.slot()-1] = -1
	return true
}

func (s *sparseSet[T]) len() int {
	return len(s.dense)
}

// entities returns a copy of the dense entity list so callers may add or
// remove components while iterating.
func (s *sparseSet[T]) entities() []Entity {
	return append([]Entity(nil), s.dense...)
}
