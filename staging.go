package batch

// staging is the fixed-capacity arena the deferred queuer accumulates
// batches in. Both arrays are allocated once with the drawer's batch size
// and only ever appended to or reset; they are never grown or reallocated.
type staging[V any] struct {
	vertices []V
	indices  []uint16

	vertexCount int
	indexCount  int
}

func newStaging[V any](capacity int) *staging[V] {
	return &staging[V]{
		vertices: make([]V, capacity),
		indices:  make([]uint16, capacity),
	}
}

// capacity returns the number of vertex (and index) slots in the arena.
func (s *staging[V]) capacity() int { return len(s.vertices) }

func (s *staging[V]) usedVertexCount() int { return s.vertexCount }

func (s *staging[V]) usedIndexCount() int { return s.indexCount }

// room returns the number of slots still free in both arrays.
func (s *staging[V]) room() int {
	return s.capacity() - max(s.vertexCount, s.indexCount)
}

// appendVertex copies v into the next vertex slot. The caller has checked
// the room beforehand; running past the capacity is a bug and panics.
func (s *staging[V]) appendVertex(v V) {
	s.vertices[s.vertexCount] = v
	s.vertexCount++
}

func (s *staging[V]) appendIndex(i uint16) {
	s.indices[s.indexCount] = i
	s.indexCount++
}

// appendVertexWithIndex appends v together with an index addressing it.
// index is relative to the base vertex of the render operation v joins.
func (s *staging[V]) appendVertexWithIndex(v V, index int) {
	s.appendIndex(uint16(index))
	s.appendVertex(v)
}

// batch returns the used portion of both arrays.
func (s *staging[V]) batch() ([]V, []uint16) {
	return s.vertices[:s.vertexCount], s.indices[:s.indexCount]
}

// reset forgets all staged data. The backing arrays are kept; stale
// vertices are cleared so the arena does not pin caller data.
func (s *staging[V]) reset() {
	clear(s.vertices[:s.vertexCount])
	s.vertexCount = 0
	s.indexCount = 0
}
