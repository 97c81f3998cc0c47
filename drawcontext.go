package batch

// DrawContext is the opaque rendering configuration (shader, pipeline and
// state) a run of primitives is drawn with.
//
// The queuers only compare contexts and never look inside them: two runs
// may share a draw call only when their contexts are Equal. The pass count
// is read by batch drawers, which issue each draw call once per pass and
// run their own per-pass setup hook (see the backend packages).
//
// Contexts are owned by the caller and referenced by a queuer only until
// the staged operations using them are flushed.
type DrawContext interface {
	// PassCount returns how many times each draw call is issued.
	PassCount() int

	// Equal reports whether other selects the same rendering state, so
	// that primitives using either context can be drawn in one call.
	Equal(other DrawContext) bool
}

// sameContext reports whether a and b are interchangeable. A nil context
// only matches nothing, which keeps the placeholder operation unmergeable.
func sameContext(a, b DrawContext) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Equal(b)
}
