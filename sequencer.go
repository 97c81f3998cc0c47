package batch

// renderOperation is one contiguous, independently drawable slice of the
// staging arena. Indices in [StartIndex, EndIndex) are relative to
// BaseVertexIndex and address VertexCount vertices.
type renderOperation struct {
	StartIndex      int
	EndIndex        int
	BaseVertexIndex int
	VertexCount     int
	Topology        Topology
	Context         DrawContext
}

// IndexCount returns the number of indices the operation draws.
func (op *renderOperation) IndexCount() int { return op.EndIndex - op.StartIndex }

// stagingCursor reports how much of a staging arena is in use. The
// sequencer reads it only when opening a new operation.
type stagingCursor interface {
	usedVertexCount() int
	usedIndexCount() int
}

// sequencer turns a stream of runs into render operations, merging runs
// that share a draw context and a concatenable topology.
//
// The first element of ops is a placeholder that never matches an
// incoming run, so the operation list is never empty and the current
// operation is always ops[len(ops)-1].
type sequencer struct {
	cursor stagingCursor
	ops    []renderOperation
}

func newSequencer(cursor stagingCursor) *sequencer {
	s := &sequencer{cursor: cursor}
	s.reset()
	return s
}

// reset drops all operations and reinstates the placeholder.
func (s *sequencer) reset() {
	clear(s.ops)
	s.ops = append(s.ops[:0], renderOperation{Topology: noTopology})
}

// current returns the operation runs are currently appended to.
func (s *sequencer) current() *renderOperation {
	return &s.ops[len(s.ops)-1]
}

// appendOrStart records vertexCount vertices and indexCount indices about
// to be staged for a run of topology t drawn with ctx. The run extends the
// current operation when ctx equals its context and t equals its topology
// and t is concatenable; otherwise a new operation opens at the arena's
// current fill level.
//
// It returns the number of vertices the operation held before this call:
// the caller adds it to every index it stages for the run.
func (s *sequencer) appendOrStart(t Topology, ctx DrawContext, vertexCount, indexCount int) int {
	cur := s.current()
	if !(cur.Topology == t && t.Concatenable() && sameContext(cur.Context, ctx)) {
		start := s.cursor.usedIndexCount()
		s.ops = append(s.ops, renderOperation{
			StartIndex:      start,
			EndIndex:        start,
			BaseVertexIndex: s.cursor.usedVertexCount(),
			Topology:        t,
			Context:         ctx,
		})
		cur = s.current()
	}

	offset := cur.VertexCount
	cur.VertexCount += vertexCount
	cur.EndIndex += indexCount
	return offset
}

// operations returns the real operations, without the placeholder.
func (s *sequencer) operations() []renderOperation {
	return s.ops[1:]
}

// stagedVertexCount returns the sum of VertexCount over all operations.
func (s *sequencer) stagedVertexCount() int {
	n := 0
	for i := range s.ops {
		n += s.ops[i].VertexCount
	}
	return n
}
