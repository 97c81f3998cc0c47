package batch

// DefaultBatchSize is the number of vertices and indices a single batch may
// hold in the backends shipped with this module.
const DefaultBatchSize = 8192

// MinimumBatchSize is the smallest batch size the deferred queuer accepts.
// Splitting a triangle strip or fan needs room for its continuation
// vertices plus at least one new vertex per fragment.
const MinimumBatchSize = 4

// MaximumBatchSize is the largest batch size addressable with 16-bit indices.
const MaximumBatchSize = 1 << 16

// BatchDrawer receives finished batches from a queuer and issues the actual
// draw calls. Implementations own the GPU (or CPU) buffers, including any
// rotation among buffer regions needed to avoid pipeline stalls.
//
// A queuer calls Select once per batch, followed by one Draw or DrawIndexed
// per render operation in that batch. The slices passed to Select belong to
// the queuer and are only valid until the next Select; drawers that need the
// data later must copy it.
//
// Errors returned by a drawer are propagated to the caller of the queuer
// unchanged apart from wrapping; queuers never retry.
type BatchDrawer[V any] interface {
	// MaximumBatchSize returns the number of vertices and indices a single
	// batch may hold. It must not change during the drawer's lifetime.
	MaximumBatchSize() int

	// Select stages a batch of non-indexed vertices for the following draws.
	Select(vertices []V) error

	// SelectIndexed stages a batch of vertices and 16-bit indices for the
	// following indexed draws.
	SelectIndexed(vertices []V, indices []uint16) error

	// Draw issues one draw call over vertexCount vertices of the selected
	// batch beginning at baseVertex, once per pass of ctx.
	Draw(baseVertex, vertexCount int, topology Topology, ctx DrawContext) error

	// DrawIndexed issues one indexed draw call over indexCount indices of
	// the selected batch beginning at startIndex. Each index is relative to
	// baseVertex; vertexCount is the number of vertices the indices address.
	DrawIndexed(baseVertex, vertexCount, startIndex, indexCount int, topology Topology, ctx DrawContext) error
}
