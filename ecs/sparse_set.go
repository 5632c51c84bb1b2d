package ecs

// sparseSet stores one component kind. Values are kept densely for
// iteration and indexed by slot id through the sparse array.
type sparseSet struct {
	dense  []Entity
	values []any
	sparse []int
}

func (s *sparseSet) index(id entityID) int {
	if id == 0 || int(id) > len(s.sparse) {
		return -1
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx].id() != id {
		return -1
	}
	return idx
}

func (s *sparseSet) has(e Entity) bool {
	idx := s.index(e.id())
	return idx >= 0 && s.dense[idx] == e
}

func (s *sparseSet) get(e Entity) (any, bool) {
	idx := s.index(e.id())
	if idx < 0 || s.dense[idx] != e {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseSet) set(e Entity, v any) {
	id := e.id()
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.index(id); idx >= 0 {
		// a stale generation in the same slot is overwritten
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

func (s *sparseSet) remove(e Entity) bool {
	idx := s.index(e.id())
	if idx < 0 || s.dense[idx] != e {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return true
}

func (s *sparseSet) len() int {
	return len(s.dense)
}

// snapshot copies the dense entity list so callers can mutate the set while
// iterating.
func (s *sparseSet) snapshot() []Entity {
	out := make([]Entity, len(s.dense))
	copy(out, s.dense)
	return out
}
