package batch

import "errors"

// Contract violations. Queue and Draw calls return these wrapped with the
// offending values; use errors.Is to test for them.
var (
	// ErrInvalidTopology is returned for a topology value outside the known set.
	ErrInvalidTopology = errors.New("batch: invalid primitive topology")

	// ErrInvalidVertexCount is returned when a run is negative, shorter than
	// the topology minimum, or not a whole number of list primitives.
	ErrInvalidVertexCount = errors.New("batch: invalid vertex count")

	// ErrInvalidRange is returned when a start/count pair does not lie
	// inside the supplied slice.
	ErrInvalidRange = errors.New("batch: range out of bounds")

	// ErrInvalidIndex is returned when an index addresses a vertex outside
	// the run it belongs to.
	ErrInvalidIndex = errors.New("batch: index out of range")

	// ErrNilDrawContext is returned when a run is queued without a context.
	ErrNilDrawContext = errors.New("batch: draw context is nil")

	// ErrInvalidStrategy is returned for an unknown or unsupported queueing strategy.
	ErrInvalidStrategy = errors.New("batch: invalid queueing strategy")

	// ErrInvalidBatchSize is returned when a drawer reports a batch size the
	// queuers cannot work with.
	ErrInvalidBatchSize = errors.New("batch: invalid maximum batch size")

	// ErrNilDrawer is returned when a queuer is created without a batch drawer.
	ErrNilDrawer = errors.New("batch: batch drawer is nil")

	// ErrNotBegun is returned when a PrimitiveBatch draws or ends outside a
	// Begin/End cycle.
	ErrNotBegun = errors.New("batch: Begin has not been called")

	// ErrAlreadyBegun is returned when Begin is called on an open cycle.
	ErrAlreadyBegun = errors.New("batch: Begin called twice without End")

	// ErrClosed is returned when a closed PrimitiveBatch is used.
	ErrClosed = errors.New("batch: primitive batch is closed")
)
