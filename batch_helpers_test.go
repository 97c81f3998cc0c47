package batch_test

import (
	"github.com/gogpu/batch"
)

// ctx is a draw context identified by its value.
type ctx int

func (c ctx) PassCount() int { return 1 }

func (c ctx) Equal(other batch.DrawContext) bool {
	o, ok := other.(ctx)
	return ok && o == c
}

// values returns n consecutive integers starting at first.
func values(first, n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = first + i
	}
	return s
}

// primitives breaks a vertex sequence into the primitives topology t
// draws from it, as vertex tuples in drawing order.
func primitives(t batch.Topology, seq []int) [][]int {
	var out [][]int
	switch t {
	case batch.PointList:
		for _, v := range seq {
			out = append(out, []int{v})
		}
	case batch.LineList:
		for i := 0; i+1 < len(seq); i += 2 {
			out = append(out, []int{seq[i], seq[i+1]})
		}
	case batch.LineStrip:
		for i := 0; i+1 < len(seq); i++ {
			out = append(out, []int{seq[i], seq[i+1]})
		}
	case batch.TriangleList:
		for i := 0; i+2 < len(seq); i += 3 {
			out = append(out, []int{seq[i], seq[i+1], seq[i+2]})
		}
	case batch.TriangleStrip:
		for i := 0; i+2 < len(seq); i++ {
			out = append(out, []int{seq[i], seq[i+1], seq[i+2]})
		}
	case batch.TriangleFan:
		for i := 1; i+1 < len(seq); i++ {
			out = append(out, []int{seq[0], seq[i], seq[i+1]})
		}
	}
	return out
}

// sizes returns the length of every batch.
func sizes(batches [][]int) []int {
	out := make([]int, len(batches))
	for i, b := range batches {
		out[i] = len(b)
	}
	return out
}
