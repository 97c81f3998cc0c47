package recording

// Batch is a copy of one selected batch. Indices is nil for batches
// selected without indices.
type Batch[V any] struct {
	Vertices []V
	Indices  []uint16
}

// BatchPool stores the batches referenced by recorded commands. Every Add
// copies its input, because queuers reuse their staging arrays after a
// flush.
//
// BatchPool is not safe for concurrent use.
type BatchPool[V any] struct {
	batches []Batch[V]
}

// NewBatchPool creates an empty pool.
func NewBatchPool[V any]() *BatchPool[V] {
	return &BatchPool[V]{batches: make([]Batch[V], 0, 16)}
}

// Add copies vertices and indices into the pool and returns their reference.
func (p *BatchPool[V]) Add(vertices []V, indices []uint16) BatchRef {
	b := Batch[V]{Vertices: append([]V(nil), vertices...)}
	if indices != nil {
		b.Indices = append(make([]uint16, 0, len(indices)), indices...)
	}
	p.batches = append(p.batches, b)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return BatchRef(uint32(len(p.batches) - 1))
}

// Get returns the batch for ref and whether it exists.
func (p *BatchPool[V]) Get(ref BatchRef) (Batch[V], bool) {
	if !ref.IsValid() || int(ref) >= len(p.batches) {
		return Batch[V]{}, false
	}
	return p.batches[ref], true
}

// Len returns the number of batches in the pool.
func (p *BatchPool[V]) Len() int {
	return len(p.batches)
}

// Clear removes all batches, keeping the allocated capacity.
func (p *BatchPool[V]) Clear() {
	clear(p.batches)
	p.batches = p.batches[:0]
}

// clone returns a pool sharing no mutable state with p. Batches are never
// modified after Add, so the batch slices themselves are shared.
func (p *BatchPool[V]) clone() *BatchPool[V] {
	return &BatchPool[V]{batches: append([]Batch[V](nil), p.batches...)}
}
