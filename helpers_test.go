package batch

// testContext is a draw context identified by its value.
type testContext int

func (c testContext) PassCount() int { return 1 }

func (c testContext) Equal(other DrawContext) bool {
	o, ok := other.(testContext)
	return ok && o == c
}

// countingDrawer counts the calls it receives and resolves every drawn
// index back to the vertex it addresses.
type countingDrawer struct {
	size int

	selects int
	draws   int

	vertices []int
	indices  []uint16
	drawn    [][]int
}

func (d *countingDrawer) MaximumBatchSize() int { return d.size }

func (d *countingDrawer) Select(vertices []int) error {
	d.selects++
	d.vertices = append(d.vertices[:0], vertices...)
	d.indices = d.indices[:0]
	return nil
}

func (d *countingDrawer) SelectIndexed(vertices []int, indices []uint16) error {
	d.selects++
	d.vertices = append(d.vertices[:0], vertices...)
	d.indices = append(d.indices[:0], indices...)
	return nil
}

func (d *countingDrawer) Draw(baseVertex, vertexCount int, _ Topology, _ DrawContext) error {
	d.draws++
	d.drawn = append(d.drawn, append([]int(nil), d.vertices[baseVertex:baseVertex+vertexCount]...))
	return nil
}

func (d *countingDrawer) DrawIndexed(baseVertex, _, startIndex, indexCount int, _ Topology, _ DrawContext) error {
	d.draws++
	out := make([]int, 0, indexCount)
	for _, i := range d.indices[startIndex : startIndex+indexCount] {
		out = append(out, d.vertices[baseVertex+int(i)])
	}
	d.drawn = append(d.drawn, out)
	return nil
}

// sequence returns 0..n-1.
func sequence(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}
