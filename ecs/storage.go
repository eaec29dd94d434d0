package ecs

// entityStore tracks slot generations and recycles destroyed slots.
type entityStore struct {
	gen   []generation
	alive []bool
	free  []slot
	count int
}

func (s *entityStore) create() Entity {
	var id slot
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		s.alive = append(s.alive, false)
		id = slot(len(s.gen))
	}
	s.alive[id-1] = true
	s.count++
	return packEntity(id, s.gen[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.slot() - 1
	s.alive[idx] = false
	s.gen[idx]++
	s.free = append(s.free, e.slot())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.slot()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.alive[id-1] && s.gen[id-1] == e.generation()
}

func (s *entityStore) entities() []Entity {
	out := make([]Entity, 0, s.count)
	for i, ok := range s.alive {
		if ok {
			id := slot(i + 1)
			out = append(out, packEntity(id, s.gen[i]))
		}
	}
	return out
}
