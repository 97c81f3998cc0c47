package batch

import (
	"fmt"
	"log/slog"
)

// DeferredQueuer accumulates runs in a staging arena sized to the drawer's
// maximum batch size and hands the arena to the drawer only when it is full
// or when the cycle ends. Consecutive runs sharing a draw context and a
// concatenable topology end up in a single draw call.
//
// A run that does not fit into the remaining room is split at a legal
// boundary for its topology. Every fragment after the first starts with
// the continuation vertices of its topology (the last vertex for line
// strips, the last two for triangle strips, the pivot and the last vertex
// for triangle fans), so the drawn primitives are exactly those of the
// unsplit run. The last fragment stays staged so later runs may still
// merge into it.
//
// Everything staged is indexed: non-indexed runs get an ascending index
// sequence, indexed runs have their indices translated into the arena.
// Each flush therefore issues one SelectIndexed and one DrawIndexed per
// render operation.
type DeferredQueuer[V any] struct {
	drawer  BatchDrawer[V]
	staging *staging[V]
	seq     *sequencer
	logger  *slog.Logger
}

// NewDeferredQueuer creates a deferred queuer feeding drawer. The drawer's
// MaximumBatchSize must lie between MinimumBatchSize and MaximumBatchSize.
func NewDeferredQueuer[V any](drawer BatchDrawer[V], opts ...Option) (*DeferredQueuer[V], error) {
	if drawer == nil {
		return nil, ErrNilDrawer
	}
	size := drawer.MaximumBatchSize()
	if size < MinimumBatchSize || size > MaximumBatchSize {
		return nil, fmt.Errorf("%w: %d (want %d..%d)",
			ErrInvalidBatchSize, size, MinimumBatchSize, MaximumBatchSize)
	}

	o := applyOptions(opts)
	st := newStaging[V](size)
	return &DeferredQueuer[V]{
		drawer:  drawer,
		staging: st,
		seq:     newSequencer(st),
		logger:  o.logger,
	}, nil
}

// Begin starts a new cycle. Anything staged by an unfinished cycle is dropped.
func (q *DeferredQueuer[V]) Begin() {
	q.reset()
}

// End draws everything still staged and resets the queuer.
func (q *DeferredQueuer[V]) End() error {
	err := q.flush()
	q.reset()
	return err
}

// Queue stages vertices[start:start+count] as one run.
func (q *DeferredQueuer[V]) Queue(vertices []V, start, count int, topology Topology, ctx DrawContext) error {
	r, rule, err := newRun(vertices, start, count, topology, ctx)
	if err != nil {
		return err
	}

	if count <= q.staging.room() {
		offset := q.seq.appendOrStart(topology, ctx, count, count)
		for i, v := range r.vertices {
			q.staging.appendVertexWithIndex(v, offset+i)
		}
		return nil
	}
	return q.split(&r, rule, topology, ctx)
}

// QueueIndexed stages an indexed run. When the run fits, its vertex range
// is copied as is and its indices are shifted into the render operation it
// joins; otherwise it is split and de-indexed while copied.
func (q *DeferredQueuer[V]) QueueIndexed(
	vertices []V, startVertex, vertexCount int,
	indices []uint16, startIndex, indexCount int,
	topology Topology, ctx DrawContext,
) error {
	r, rule, err := newIndexedRun(vertices, startVertex, vertexCount,
		indices, startIndex, indexCount, topology, ctx)
	if err != nil {
		return err
	}

	capacity := q.staging.capacity()
	if vertexCount <= capacity-q.staging.usedVertexCount() &&
		indexCount <= capacity-q.staging.usedIndexCount() {
		offset := q.seq.appendOrStart(topology, ctx, vertexCount, indexCount)
		for _, index := range r.indices {
			q.staging.appendIndex(uint16(offset + int(index)))
		}
		for _, v := range r.vertices {
			q.staging.appendVertex(v)
		}
		return nil
	}
	return q.split(&r, rule, topology, ctx)
}

// split stages r in fragments, flushing whenever the arena is full.
//
// The first fragment uses whatever room is left; when that room is below
// the topology's threshold the whole run moves to the next batch instead
// of leaving a sliver. Later fragments get a full arena each.
func (q *DeferredQueuer[V]) split(r *run[V], rule *topologyRule, topology Topology, ctx DrawContext) error {
	total := r.len()
	room := q.staging.room()
	pos := 0
	fragments := 0

	for {
		continuation := 0
		if pos > 0 {
			continuation = rule.continuation
		}

		n := 0
		if pos > 0 || room >= rule.deferBelow {
			n = min(rule.legalFragment(room)-continuation, total-pos)
		}
		if n > 0 {
			q.stageFragment(r, rule, topology, ctx, pos, continuation, n)
			pos += n
			fragments++
		}
		if pos == total {
			q.log().Debug("batch: run split",
				"topology", topology.String(),
				"vertices", total,
				"fragments", fragments)
			return nil
		}

		if err := q.flush(); err != nil {
			return err
		}
		q.reset()
		room = q.staging.capacity()
	}
}

// stageFragment copies r[pos:pos+n], preceded by continuation vertices,
// into the arena as (part of) one render operation.
func (q *DeferredQueuer[V]) stageFragment(r *run[V], rule *topologyRule, topology Topology, ctx DrawContext, pos, continuation, n int) {
	index := q.seq.appendOrStart(topology, ctx, continuation+n, continuation+n)

	for k := range continuation {
		src := pos - continuation + k
		if k == 0 && rule.pivot {
			src = 0
		}
		q.staging.appendVertexWithIndex(r.at(src), index)
		index++
	}
	for i := pos; i < pos+n; i++ {
		q.staging.appendVertexWithIndex(r.at(i), index)
		index++
	}
}

// flush hands the staged batch to the drawer and issues one draw call per
// render operation. It does not reset the arena.
func (q *DeferredQueuer[V]) flush() error {
	if q.staging.usedVertexCount() == 0 {
		return nil
	}

	vertices, indices := q.staging.batch()
	if err := q.drawer.SelectIndexed(vertices, indices); err != nil {
		return fmt.Errorf("batch: select: %w", err)
	}

	ops := q.seq.operations()
	for i := range ops {
		op := &ops[i]
		err := q.drawer.DrawIndexed(op.BaseVertexIndex, op.VertexCount,
			op.StartIndex, op.IndexCount(), op.Topology, op.Context)
		if err != nil {
			return fmt.Errorf("batch: draw %s: %w", op.Topology, err)
		}
	}

	q.log().Debug("batch: flushed",
		"vertices", len(vertices),
		"indices", len(indices),
		"operations", len(ops))
	return nil
}

func (q *DeferredQueuer[V]) reset() {
	q.staging.reset()
	q.seq.reset()
}

func (q *DeferredQueuer[V]) log() *slog.Logger {
	return loggerOr(q.logger)
}
