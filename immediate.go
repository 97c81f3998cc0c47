package batch

import (
	"fmt"
	"log/slog"
)

// ImmediateQueuer forwards every run to the drawer as its own batch and
// draw call. It never merges or splits, which keeps the exact call order
// across several queuers sharing one drawer at the price of one draw call
// per run. Runs are handed over as they are; a run larger than the
// drawer's batch size fails with whatever error the drawer returns.
type ImmediateQueuer[V any] struct {
	drawer BatchDrawer[V]
	logger *slog.Logger
}

// NewImmediateQueuer creates an immediate queuer feeding drawer.
func NewImmediateQueuer[V any](drawer BatchDrawer[V], opts ...Option) (*ImmediateQueuer[V], error) {
	if drawer == nil {
		return nil, ErrNilDrawer
	}
	o := applyOptions(opts)
	return &ImmediateQueuer[V]{drawer: drawer, logger: o.logger}, nil
}

// Begin is a no-op; the immediate queuer holds no state between runs.
func (q *ImmediateQueuer[V]) Begin() {}

// End is a no-op; every run has already been drawn.
func (q *ImmediateQueuer[V]) End() error { return nil }

// Queue draws vertices[start:start+count] right away.
func (q *ImmediateQueuer[V]) Queue(vertices []V, start, count int, topology Topology, ctx DrawContext) error {
	r, _, err := newRun(vertices, start, count, topology, ctx)
	if err != nil {
		return err
	}
	q.log(topology, count, 0)

	if err := q.drawer.Select(r.vertices); err != nil {
		return fmt.Errorf("batch: select: %w", err)
	}
	if err := q.drawer.Draw(0, count, topology, ctx); err != nil {
		return fmt.Errorf("batch: draw %s: %w", topology, err)
	}
	return nil
}

// QueueIndexed draws an indexed run right away. The vertex range and the
// index range are selected as they are; indices stay relative to
// startVertex.
func (q *ImmediateQueuer[V]) QueueIndexed(
	vertices []V, startVertex, vertexCount int,
	indices []uint16, startIndex, indexCount int,
	topology Topology, ctx DrawContext,
) error {
	r, _, err := newIndexedRun(vertices, startVertex, vertexCount,
		indices, startIndex, indexCount, topology, ctx)
	if err != nil {
		return err
	}
	q.log(topology, vertexCount, indexCount)

	if err := q.drawer.SelectIndexed(r.vertices, r.indices); err != nil {
		return fmt.Errorf("batch: select: %w", err)
	}
	if err := q.drawer.DrawIndexed(0, vertexCount, 0, indexCount, topology, ctx); err != nil {
		return fmt.Errorf("batch: draw %s: %w", topology, err)
	}
	return nil
}

func (q *ImmediateQueuer[V]) log(topology Topology, vertices, indices int) {
	loggerOr(q.logger).Debug("batch: immediate draw",
		"topology", topology.String(),
		"vertices", vertices,
		"indices", indices)
}
