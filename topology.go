package batch

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Topology describes how a flat vertex or index list is interpreted as
// connected primitives.
type Topology int

const (
	// PointList draws every vertex as an isolated point.
	PointList Topology = iota

	// LineList draws every pair of vertices as an independent line segment.
	LineList

	// LineStrip connects every vertex to its predecessor.
	LineStrip

	// TriangleList draws every three vertices as an independent triangle.
	TriangleList

	// TriangleStrip forms a triangle from every vertex and its two
	// predecessors, alternating winding order.
	TriangleStrip

	// TriangleFan forms a triangle from the first vertex (the pivot), the
	// previous vertex and the current vertex.
	TriangleFan

	topologyCount
)

// noTopology marks the placeholder render operation; it never equals a
// valid topology so the first queued run always opens a new operation.
const noTopology Topology = -1

// topologyRule carries everything the queuers need to know about a
// topology. Both the in-place path and the splitting path of the deferred
// queuer consult this table; nothing else switches on topology.
type topologyRule struct {
	name string

	// increment is the number of vertices each additional primitive
	// consumes. List topologies may only be split on multiples of it.
	increment int

	// minimum is the smallest vertex count forming one primitive.
	minimum int

	// concatenable reports whether two independent runs sharing a draw
	// context can be merged into one draw call without changing output.
	concatenable bool

	// continuation is the number of vertices re-emitted at the start of a
	// fragment to resume the primitive run after a split.
	continuation int

	// deferBelow is the number of free slots below which the first fragment
	// of a run is not started in the current batch at all.
	deferBelow int

	// oddFragments requests fragments holding an odd vertex count.
	oddFragments bool

	// pivot makes the first continuation vertex the first vertex of the
	// run instead of the tail of the previous fragment.
	pivot bool

	gpu    gputypes.PrimitiveTopology
	native bool
}

var topologyRules = [topologyCount]topologyRule{
	PointList: {
		name:         "PointList",
		increment:    1,
		minimum:      1,
		concatenable: true,
		gpu:          gputypes.PrimitiveTopologyPointList,
		native:       true,
	},
	LineList: {
		name:         "LineList",
		increment:    2,
		minimum:      2,
		concatenable: true,
		gpu:          gputypes.PrimitiveTopologyLineList,
		native:       true,
	},
	LineStrip: {
		name:         "LineStrip",
		increment:    1,
		minimum:      2,
		continuation: 1,
		deferBelow:   2,
		gpu:          gputypes.PrimitiveTopologyLineStrip,
		native:       true,
	},
	TriangleList: {
		name:         "TriangleList",
		increment:    3,
		minimum:      3,
		concatenable: true,
		gpu:          gputypes.PrimitiveTopologyTriangleList,
		native:       true,
	},
	TriangleStrip: {
		name:         "TriangleStrip",
		increment:    1,
		minimum:      3,
		continuation: 2,
		deferBelow:   4,
		oddFragments: true,
		gpu:          gputypes.PrimitiveTopologyTriangleStrip,
		native:       true,
	},
	// WebGPU has no fans; backends draw them as expanded triangle lists.
	TriangleFan: {
		name:         "TriangleFan",
		increment:    1,
		minimum:      3,
		continuation: 2,
		deferBelow:   3,
		pivot:        true,
		gpu:          gputypes.PrimitiveTopologyTriangleList,
		native:       false,
	},
}

// Valid reports whether t is one of the known topologies.
func (t Topology) Valid() bool {
	return t >= 0 && t < topologyCount
}

// rule returns the rule table entry for t or ErrInvalidTopology.
func (t Topology) rule() (*topologyRule, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTopology, int(t))
	}
	return &topologyRules[t], nil
}

// String returns the topology name.
func (t Topology) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Topology(%d)", int(t))
	}
	return topologyRules[t].name
}

// Increment returns the number of vertices each additional primitive consumes.
// It returns 0 for an invalid topology.
func (t Topology) Increment() int {
	if !t.Valid() {
		return 0
	}
	return topologyRules[t].increment
}

// MinimumVertexCount returns the number of vertices forming one primitive.
// It returns 0 for an invalid topology.
func (t Topology) MinimumVertexCount() int {
	if !t.Valid() {
		return 0
	}
	return topologyRules[t].minimum
}

// Concatenable reports whether independent runs of this topology sharing a
// draw context may be merged into a single draw call. Strips and fans are not
// concatenable: merging two of them would connect their primitives.
func (t Topology) Concatenable() bool {
	return t.Valid() && topologyRules[t].concatenable
}

// ContinuationVertexCount returns how many vertices a fragment repeats after
// a split to keep connectivity, winding and the fan pivot intact:
// 0 for lists, 1 for line strips, 2 for triangle strips and fans.
func (t Topology) ContinuationVertexCount() int {
	if !t.Valid() {
		return 0
	}
	return topologyRules[t].continuation
}

// PrimitiveCount returns the number of primitives n vertices (or indices)
// form under topology t. Counts below the topology minimum yield zero.
func (t Topology) PrimitiveCount(n int) int {
	if !t.Valid() {
		return 0
	}
	r := &topologyRules[t]
	if n < r.minimum {
		return 0
	}
	return (n - (r.minimum - r.increment)) / r.increment
}

// IsValidVertexCount reports whether n vertices form a complete run: at
// least the topology minimum and, for list topologies, a whole number of
// primitives.
func (t Topology) IsValidVertexCount(n int) bool {
	if !t.Valid() || n < 0 {
		return false
	}
	r := &topologyRules[t]
	if n < r.minimum {
		return false
	}
	if r.concatenable {
		return n%r.increment == 0
	}
	return true
}

// GPUTopology returns the WebGPU primitive topology used to draw t and
// whether the hardware supports t natively. Triangle fans report
// [gputypes.PrimitiveTopologyTriangleList] with native == false: the
// backend has to expand them into a triangle list. An invalid topology
// also reports native == false; check Valid first.
func (t Topology) GPUTopology() (gputypes.PrimitiveTopology, bool) {
	if !t.Valid() {
		return gputypes.PrimitiveTopologyTriangleList, false
	}
	r := &topologyRules[t]
	return r.gpu, r.native
}

// legalFragment rounds a number of free slots down to the largest fragment
// size this topology may be cut to. The slots include any continuation
// vertices the fragment will start with.
func (r *topologyRule) legalFragment(room int) int {
	if room <= 0 {
		return 0
	}
	if r.concatenable {
		return room - room%r.increment
	}
	if r.oddFragments {
		return room - (room-1)%2
	}
	return room
}

// validateRun checks a run length against the topology rules.
func (r *topologyRule) validateRun(n int) error {
	if n < r.minimum {
		return fmt.Errorf("%w: %s needs at least %d vertices, got %d",
			ErrInvalidVertexCount, r.name, r.minimum, n)
	}
	if r.concatenable && n%r.increment != 0 {
		return fmt.Errorf("%w: %s needs a multiple of %d vertices, got %d",
			ErrInvalidVertexCount, r.name, r.increment, n)
	}
	return nil
}
