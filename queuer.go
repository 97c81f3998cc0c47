package batch

import "fmt"

// Queuer collects runs of primitives for a batch drawer.
//
// A drawing cycle is Begin, any number of Queue/QueueIndexed calls, then End.
// Queuers are not safe for concurrent use; one cycle corresponds to one
// frame or sub-pass on one goroutine. The caller keeps ownership of the
// slices it passes in: queuers copy what they keep before returning.
type Queuer[V any] interface {
	// Begin starts a new drawing cycle, discarding anything still staged.
	Begin()

	// End finishes the cycle and draws everything that is still staged.
	End() error

	// Queue submits vertices[start:start+count] as one run of topology.
	Queue(vertices []V, start, count int, topology Topology, ctx DrawContext) error

	// QueueIndexed submits indices[startIndex:startIndex+indexCount] as one
	// run of topology. Each index addresses vertices[startVertex+index] and
	// must be smaller than vertexCount.
	QueueIndexed(
		vertices []V, startVertex, vertexCount int,
		indices []uint16, startIndex, indexCount int,
		topology Topology, ctx DrawContext,
	) error
}

// run is a validated view of the primitives submitted by one Queue call.
// For indexed runs, element i is vertices[indices[i]].
type run[V any] struct {
	vertices []V
	indices  []uint16
}

// len returns the number of elements (vertices or indices) in the run.
func (r *run[V]) len() int {
	if r.indices != nil {
		return len(r.indices)
	}
	return len(r.vertices)
}

// at returns the vertex at element i of the run.
func (r *run[V]) at(i int) V {
	if r.indices != nil {
		return r.vertices[r.indices[i]]
	}
	return r.vertices[i]
}

// checkRange validates a start/count pair against a slice length.
func checkRange(what string, start, count, length int) error {
	if start < 0 || count < 0 {
		return fmt.Errorf("%w: negative %s range (start %d, count %d)",
			ErrInvalidVertexCount, what, start, count)
	}
	if start > length || count > length-start {
		return fmt.Errorf("%w: %s range [%d, %d) exceeds length %d",
			ErrInvalidRange, what, start, start+count, length)
	}
	return nil
}

// newRun validates a non-indexed submission and returns its run view.
func newRun[V any](vertices []V, start, count int, topology Topology, ctx DrawContext) (run[V], *topologyRule, error) {
	rule, err := topology.rule()
	if err != nil {
		return run[V]{}, nil, err
	}
	if ctx == nil {
		return run[V]{}, nil, ErrNilDrawContext
	}
	if err := checkRange("vertex", start, count, len(vertices)); err != nil {
		return run[V]{}, nil, err
	}
	if err := rule.validateRun(count); err != nil {
		return run[V]{}, nil, err
	}
	return run[V]{vertices: vertices[start : start+count]}, rule, nil
}

// newIndexedRun validates an indexed submission and returns its run view.
// Every index is checked up front so that the copy loops can stay total.
func newIndexedRun[V any](
	vertices []V, startVertex, vertexCount int,
	indices []uint16, startIndex, indexCount int,
	topology Topology, ctx DrawContext,
) (run[V], *topologyRule, error) {
	rule, err := topology.rule()
	if err != nil {
		return run[V]{}, nil, err
	}
	if ctx == nil {
		return run[V]{}, nil, ErrNilDrawContext
	}
	if err := checkRange("vertex", startVertex, vertexCount, len(vertices)); err != nil {
		return run[V]{}, nil, err
	}
	if err := checkRange("index", startIndex, indexCount, len(indices)); err != nil {
		return run[V]{}, nil, err
	}
	if err := rule.validateRun(indexCount); err != nil {
		return run[V]{}, nil, err
	}
	r := run[V]{
		vertices: vertices[startVertex : startVertex+vertexCount],
		indices:  indices[startIndex : startIndex+indexCount],
	}
	for i, index := range r.indices {
		if int(index) >= vertexCount {
			return run[V]{}, nil, fmt.Errorf("%w: indices[%d] = %d, run has %d vertices",
				ErrInvalidIndex, startIndex+i, index, vertexCount)
		}
	}
	return r, rule, nil
}
