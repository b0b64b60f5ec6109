package ecs

// componentStore is the type-erased view the world needs to drop an
// entity's components on destroy.
type componentStore interface {
	remove(id entityID) bool
	has(id entityID) bool
	len() int
}

// sparseSet keeps components densely packed and indexed by entity id.
type sparseSet[T any] struct {
	dense  []Entity
	values []*T
	sparse []int32
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{}
}

func (s *sparseSet[T]) has(id entityID) bool {
	if int(id) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id]
	return idx >= 0 && int(idx) < len(s.dense) && s.dense[idx].id() == id
}

func (s *sparseSet[T]) get(id entityID) (*T, bool) {
	if !s.has(id) {
		return nil, false
	}
	return s.values[s.sparse[id]], true
}

func (s *sparseSet[T]) set(e Entity, v *T) {
	id := e.id()
	for int(id) >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.has(id) {
		idx := s.sparse[id]
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.sparse[id] = int32(len(s.dense))
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
}

func (s *sparseSet[T]) remove(id entityID) bool {
	if !s.has(id) {
		return false
	}
	idx := s.sparse[id]
	last := int32(len(s.dense) - 1)
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()] = idx

	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[id] = -1
	return true
}

func (s *sparseSet[T]) len() int {
	return len(s.dense)
}
