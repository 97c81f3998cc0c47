package recording

import (
	"fmt"

	"github.com/gogpu/batch"
)

// Drawer is a batch.BatchDrawer that records every call it receives.
//
// Example:
//
//	rec := recording.NewDrawer[batch.VertexPositionColor](batch.DefaultBatchSize)
//	pb, _ := batch.NewPrimitiveBatch[batch.VertexPositionColor](rec)
//	pb.Begin(batch.Deferred)
//	pb.Draw(lines, batch.LineList, ctx)
//	pb.End()
//	r := rec.Finish()
//
// The Drawer is not safe for concurrent use.
type Drawer[V any] struct {
	size     int
	commands []Command
	pool     *BatchPool[V]
	current  BatchRef
	closed   bool

	// SelectErr, when set, is returned by Select and SelectIndexed instead
	// of recording the call.
	SelectErr error

	// DrawErr, when set, is returned by Draw and DrawIndexed instead of
	// recording the call.
	DrawErr error
}

// NewDrawer creates a recording drawer reporting size as its maximum batch size.
func NewDrawer[V any](size int) *Drawer[V] {
	return &Drawer[V]{
		size:     size,
		commands: make([]Command, 0, 64),
		pool:     NewBatchPool[V](),
		current:  BatchRef(InvalidRef),
	}
}

// MaximumBatchSize implements batch.BatchDrawer.
func (d *Drawer[V]) MaximumBatchSize() int {
	return d.size
}

// Select implements batch.BatchDrawer.
func (d *Drawer[V]) Select(vertices []V) error {
	return d.selectBatch(vertices, nil, false)
}

// SelectIndexed implements batch.BatchDrawer.
func (d *Drawer[V]) SelectIndexed(vertices []V, indices []uint16) error {
	return d.selectBatch(vertices, indices, true)
}

func (d *Drawer[V]) selectBatch(vertices []V, indices []uint16, indexed bool) error {
	if d.SelectErr != nil {
		return d.SelectErr
	}
	if len(vertices) > d.size || len(indices) > d.size {
		return fmt.Errorf("%w: %d vertices, %d indices, limit %d",
			ErrBatchTooLarge, len(vertices), len(indices), d.size)
	}
	if indexed && indices == nil {
		indices = []uint16{}
	}

	d.current = d.pool.Add(vertices, indices)
	d.commands = append(d.commands, SelectCommand{
		Batch:       d.current,
		Indexed:     indexed,
		VertexCount: len(vertices),
		IndexCount:  len(indices),
	})
	return nil
}

// Draw implements batch.BatchDrawer.
func (d *Drawer[V]) Draw(baseVertex, vertexCount int, topology batch.Topology, ctx batch.DrawContext) error {
	b, err := d.selected()
	if err != nil {
		return err
	}
	if vertexCount > d.size {
		return fmt.Errorf("%w: draw of %d vertices, limit %d", ErrBatchTooLarge, vertexCount, d.size)
	}
	if baseVertex < 0 || vertexCount < 0 || baseVertex+vertexCount > len(b.Vertices) {
		return fmt.Errorf("%w: vertices [%d,%d) of %d",
			ErrOutOfBatch, baseVertex, baseVertex+vertexCount, len(b.Vertices))
	}

	d.commands = append(d.commands, DrawCommand{
		Batch:       d.current,
		BaseVertex:  baseVertex,
		VertexCount: vertexCount,
		Topology:    topology,
		Context:     ctx,
	})
	return nil
}

// DrawIndexed implements batch.BatchDrawer.
func (d *Drawer[V]) DrawIndexed(baseVertex, vertexCount, startIndex, indexCount int, topology batch.Topology, ctx batch.DrawContext) error {
	b, err := d.selected()
	if err != nil {
		return err
	}
	if b.Indices == nil {
		return ErrTopologyMismatch
	}
	if vertexCount > d.size || indexCount > d.size {
		return fmt.Errorf("%w: draw of %d vertices, %d indices, limit %d",
			ErrBatchTooLarge, vertexCount, indexCount, d.size)
	}
	if baseVertex < 0 || vertexCount < 0 || baseVertex+vertexCount > len(b.Vertices) {
		return fmt.Errorf("%w: vertices [%d,%d) of %d",
			ErrOutOfBatch, baseVertex, baseVertex+vertexCount, len(b.Vertices))
	}
	if startIndex < 0 || indexCount < 0 || startIndex+indexCount > len(b.Indices) {
		return fmt.Errorf("%w: indices [%d,%d) of %d",
			ErrOutOfBatch, startIndex, startIndex+indexCount, len(b.Indices))
	}
	for i, index := range b.Indices[startIndex : startIndex+indexCount] {
		if int(index) >= vertexCount {
			return fmt.Errorf("%w: index %d at %d addresses vertex %d of %d",
				ErrOutOfBatch, index, startIndex+i, index, vertexCount)
		}
	}

	d.commands = append(d.commands, DrawCommand{
		Batch:       d.current,
		Indexed:     true,
		BaseVertex:  baseVertex,
		VertexCount: vertexCount,
		StartIndex:  startIndex,
		IndexCount:  indexCount,
		Topology:    topology,
		Context:     ctx,
	})
	return nil
}

func (d *Drawer[V]) selected() (Batch[V], error) {
	if d.DrawErr != nil {
		return Batch[V]{}, d.DrawErr
	}
	b, ok := d.pool.Get(d.current)
	if !ok {
		return Batch[V]{}, ErrNoBatch
	}
	return b, nil
}

// Commands returns the recorded commands in call order.
func (d *Drawer[V]) Commands() []Command {
	return d.commands
}

// Draws returns every recorded draw call with its vertices resolved.
func (d *Drawer[V]) Draws() []Draw[V] {
	return resolveDraws(d.commands, d.pool)
}

// Batches returns the resolved vertex sequence of every draw call.
func (d *Drawer[V]) Batches() [][]V {
	draws := d.Draws()
	out := make([][]V, len(draws))
	for i := range draws {
		out[i] = draws[i].Vertices
	}
	return out
}

// SelectCount returns the number of recorded Select and SelectIndexed calls.
func (d *Drawer[V]) SelectCount() int {
	return d.pool.Len()
}

// DrawCount returns the number of recorded draw calls.
func (d *Drawer[V]) DrawCount() int {
	return len(d.commands) - d.pool.Len()
}

// Reset discards everything recorded so far.
func (d *Drawer[V]) Reset() {
	d.commands = d.commands[:0]
	d.pool.Clear()
	d.current = BatchRef(InvalidRef)
}

// Finish returns an immutable Recording of everything recorded so far.
// The drawer keeps recording into its own state afterwards.
func (d *Drawer[V]) Finish() *Recording[V] {
	return &Recording[V]{
		size:     d.size,
		commands: append([]Command(nil), d.commands...),
		pool:     d.pool.clone(),
	}
}

// Close marks the drawer as closed. Closed reports the state; recording
// continues to work so tests can inspect what happened after Close.
func (d *Drawer[V]) Close() error {
	d.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (d *Drawer[V]) Closed() bool {
	return d.closed
}

var _ batch.BatchDrawer[int] = (*Drawer[int])(nil)
