package batch

import (
	"fmt"
	"io"
)

// QueueingStrategy selects how a PrimitiveBatch hands runs to its drawer.
type QueueingStrategy int

const (
	// Immediate draws every run as soon as it is submitted. Draw order is
	// preserved even across several batches sharing one drawer.
	Immediate QueueingStrategy = iota

	// Deferred collects runs until the batch is full or the cycle ends,
	// merging and splitting them to minimize draw calls.
	Deferred
)

// String returns the strategy name.
func (s QueueingStrategy) String() string {
	switch s {
	case Immediate:
		return "Immediate"
	case Deferred:
		return "Deferred"
	default:
		return fmt.Sprintf("QueueingStrategy(%d)", int(s))
	}
}

// ParseQueueingStrategy returns the strategy with the given name
// ("immediate" or "deferred", case-sensitive lower case as used on
// command lines).
func ParseQueueingStrategy(name string) (QueueingStrategy, error) {
	switch name {
	case "immediate":
		return Immediate, nil
	case "deferred":
		return Deferred, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStrategy, name)
	}
}

func (s QueueingStrategy) valid() bool {
	return s == Immediate || s == Deferred
}

// PrimitiveBatch is the entry point for drawing primitives through a
// BatchDrawer. It owns one queuer per strategy and switches between them
// on Begin.
//
// Usage:
//
//	pb, err := batch.NewPrimitiveBatch[batch.VertexPositionColor](drawer)
//	if err != nil { ... }
//	defer pb.Close()
//
//	if err := pb.Begin(batch.Deferred); err != nil { ... }
//	pb.Draw(lines, batch.LineList, ctx)
//	pb.Draw(strip, batch.TriangleStrip, ctx)
//	if err := pb.End(); err != nil { ... }
//
// A PrimitiveBatch is not safe for concurrent use.
type PrimitiveBatch[V any] struct {
	drawer BatchDrawer[V]

	immediate *ImmediateQueuer[V]
	deferred  *DeferredQueuer[V]

	queuer   Queuer[V]
	strategy QueueingStrategy
	begun    bool
	closed   bool
}

// NewPrimitiveBatch creates a primitive batch drawing through drawer.
// Both queuers are created up front so that an unusable drawer batch size
// is reported here rather than on the first Begin.
func NewPrimitiveBatch[V any](drawer BatchDrawer[V], opts ...Option) (*PrimitiveBatch[V], error) {
	if drawer == nil {
		return nil, ErrNilDrawer
	}
	o := applyOptions(opts)
	if !o.strategy.valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStrategy, o.strategy)
	}

	immediate, err := NewImmediateQueuer(drawer, opts...)
	if err != nil {
		return nil, err
	}
	deferred, err := NewDeferredQueuer(drawer, opts...)
	if err != nil {
		return nil, err
	}

	b := &PrimitiveBatch[V]{
		drawer:    drawer,
		immediate: immediate,
		deferred:  deferred,
		strategy:  o.strategy,
	}
	b.queuer = b.queuerFor(o.strategy)
	return b, nil
}

func (b *PrimitiveBatch[V]) queuerFor(s QueueingStrategy) Queuer[V] {
	if s == Deferred {
		return b.deferred
	}
	return b.immediate
}

// Strategy returns the strategy of the current (or last) cycle.
func (b *PrimitiveBatch[V]) Strategy() QueueingStrategy {
	return b.strategy
}

// Begin opens a drawing cycle using strategy.
func (b *PrimitiveBatch[V]) Begin(strategy QueueingStrategy) error {
	switch {
	case b.closed:
		return ErrClosed
	case b.begun:
		return ErrAlreadyBegun
	case !strategy.valid():
		return fmt.Errorf("%w: %s", ErrInvalidStrategy, strategy)
	}

	b.strategy = strategy
	b.queuer = b.queuerFor(strategy)
	b.queuer.Begin()
	b.begun = true
	return nil
}

// End closes the cycle and draws whatever the queuer still holds. The
// cycle is closed even when drawing fails.
func (b *PrimitiveBatch[V]) End() error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	b.begun = false
	return b.queuer.End()
}

// Draw submits all of vertices as one run.
func (b *PrimitiveBatch[V]) Draw(vertices []V, topology Topology, ctx DrawContext) error {
	return b.DrawRange(vertices, 0, len(vertices), topology, ctx)
}

// DrawRange submits vertices[start:start+count] as one run.
func (b *PrimitiveBatch[V]) DrawRange(vertices []V, start, count int, topology Topology, ctx DrawContext) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	return b.queuer.Queue(vertices, start, count, topology, ctx)
}

// DrawIndexed submits all of indices as one run over all of vertices.
func (b *PrimitiveBatch[V]) DrawIndexed(vertices []V, indices []uint16, topology Topology, ctx DrawContext) error {
	return b.DrawIndexedRange(vertices, 0, len(vertices), indices, 0, len(indices), topology, ctx)
}

// DrawIndexedRange submits indices[startIndex:startIndex+indexCount] as one
// run; the indices address vertices[startVertex:startVertex+vertexCount].
func (b *PrimitiveBatch[V]) DrawIndexedRange(
	vertices []V, startVertex, vertexCount int,
	indices []uint16, startIndex, indexCount int,
	topology Topology, ctx DrawContext,
) error {
	if err := b.checkOpen(); err != nil {
		return err
	}
	return b.queuer.QueueIndexed(vertices, startVertex, vertexCount,
		indices, startIndex, indexCount, topology, ctx)
}

// Close releases the batch. An open cycle is abandoned without drawing.
// If the drawer implements io.Closer it is closed as well.
func (b *PrimitiveBatch[V]) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.begun = false
	b.deferred.Begin()

	if c, ok := b.drawer.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("batch: close drawer: %w", err)
		}
	}
	return nil
}

func (b *PrimitiveBatch[V]) checkOpen() error {
	if b.closed {
		return ErrClosed
	}
	if !b.begun {
		return ErrNotBegun
	}
	return nil
}

// Compile-time interface checks.
var (
	_ Queuer[VertexPositionColor] = (*DeferredQueuer[VertexPositionColor])(nil)
	_ Queuer[VertexPositionColor] = (*ImmediateQueuer[VertexPositionColor])(nil)
)
