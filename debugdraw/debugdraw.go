// Package debugdraw collects debugging overlays (lines, triangles, boxes
// and arrows) during a frame and submits them through a PrimitiveBatch.
//
// Geometry is kept in one fixed array: solid shapes grow from the front,
// wireframe shapes from the back. A shape that does not fit is dropped and
// Overflowed reports it until the next Reset.
package debugdraw

import (
	"fmt"
	"image/color"

	"github.com/gogpu/batch"
)

// DefaultCapacity is the default number of vertices a Drawer holds.
const DefaultCapacity = 8192

const (
	lineVertices          = 2
	wireTriangleVertices  = 6
	solidTriangleVertices = 3
	wireBoxVertices       = 24
	solidBoxVertices      = 36
	wireArrowVertices     = 10
	solidArrowVertices    = 18
)

// Drawer accumulates debug shapes. It is not safe for concurrent use.
type Drawer struct {
	vertices []batch.VertexPositionColor

	// triangleEnd is the number of triangle vertices at the front;
	// lineStart is where line vertices begin at the back.
	triangleEnd int
	lineStart   int
	overflowed  bool
}

// New creates a Drawer holding up to capacity vertices. A capacity below
// one means DefaultCapacity.
func New(capacity int) *Drawer {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Drawer{
		vertices:  make([]batch.VertexPositionColor, capacity),
		lineStart: capacity,
	}
}

// Capacity returns the number of vertices the drawer holds.
func (d *Drawer) Capacity() int {
	return len(d.vertices)
}

// Len returns the number of queued vertices.
func (d *Drawer) Len() int {
	return d.triangleEnd + len(d.vertices) - d.lineStart
}

// Overflowed reports whether a shape was dropped since the last Reset.
func (d *Drawer) Overflowed() bool {
	return d.overflowed
}

// Reset discards all queued shapes and clears the overflow flag.
func (d *Drawer) Reset() {
	d.triangleEnd = 0
	d.lineStart = len(d.vertices)
	d.overflowed = false
}

// lines reserves n line vertices, or returns nil and marks the overflow.
func (d *Drawer) lines(n int) []batch.VertexPositionColor {
	if d.lineStart-n < d.triangleEnd {
		d.overflowed = true
		return nil
	}
	d.lineStart -= n
	return d.vertices[d.lineStart : d.lineStart+n]
}

// triangles reserves n triangle vertices, or returns nil and marks the overflow.
func (d *Drawer) triangles(n int) []batch.VertexPositionColor {
	if d.triangleEnd+n > d.lineStart {
		d.overflowed = true
		return nil
	}
	d.triangleEnd += n
	return d.vertices[d.triangleEnd-n : d.triangleEnd]
}

func vertex(p Vec3, c color.RGBA) batch.VertexPositionColor {
	return batch.NewVertex(p.X, p.Y, p.Z, c)
}

func fill(dst []batch.VertexPositionColor, c color.RGBA, points ...Vec3) {
	for i, p := range points {
		dst[i] = vertex(p, c)
	}
}

// DrawLine queues a line from a to b.
func (d *Drawer) DrawLine(a, b Vec3, c color.RGBA) {
	if v := d.lines(lineVertices); v != nil {
		fill(v, c, a, b)
	}
}

// DrawTriangle queues the outline of a triangle.
func (d *Drawer) DrawTriangle(a, b, tc Vec3, c color.RGBA) {
	if v := d.lines(wireTriangleVertices); v != nil {
		fill(v, c, a, b, b, tc, tc, a)
	}
}

// DrawSolidTriangle queues a filled triangle.
func (d *Drawer) DrawSolidTriangle(a, b, tc Vec3, c color.RGBA) {
	if v := d.triangles(solidTriangleVertices); v != nil {
		fill(v, c, a, b, tc)
	}
}

// boxCorners returns the eight corners of the box spanned by lo and hi.
// Bit 0 selects X, bit 1 Y and bit 2 Z of hi.
func boxCorners(lo, hi Vec3) [8]Vec3 {
	var corners [8]Vec3
	for i := range corners {
		p := lo
		if i&1 != 0 {
			p.X = hi.X
		}
		if i&2 != 0 {
			p.Y = hi.Y
		}
		if i&4 != 0 {
			p.Z = hi.Z
		}
		corners[i] = p
	}
	return corners
}

var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along X
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along Z
}

// boxFaces lists each face as two triangles.
var boxFaces = [6][6]int{
	{0, 2, 1, 1, 2, 3}, // -Z
	{4, 5, 6, 5, 7, 6}, // +Z
	{0, 1, 4, 1, 5, 4}, // -Y
	{2, 6, 3, 3, 6, 7}, // +Y
	{0, 4, 2, 2, 4, 6}, // -X
	{1, 3, 5, 3, 7, 5}, // +X
}

// DrawBox queues the twelve edges of an axis-aligned box.
func (d *Drawer) DrawBox(lo, hi Vec3, c color.RGBA) {
	v := d.lines(wireBoxVertices)
	if v == nil {
		return
	}
	corners := boxCorners(lo, hi)
	for i, e := range boxEdges {
		v[2*i] = vertex(corners[e[0]], c)
		v[2*i+1] = vertex(corners[e[1]], c)
	}
}

// DrawSolidBox queues the six faces of an axis-aligned box.
func (d *Drawer) DrawSolidBox(lo, hi Vec3, c color.RGBA) {
	v := d.triangles(solidBoxVertices)
	if v == nil {
		return
	}
	corners := boxCorners(lo, hi)
	for i, face := range boxFaces {
		for j, corner := range face {
			v[6*i+j] = vertex(corners[corner], c)
		}
	}
}

// arrowHead returns the tip and the four base corners of the head of an
// arrow from origin along direction. The head takes a fifth of the length.
func arrowHead(origin, direction Vec3) (Vec3, [4]Vec3) {
	tip := origin.Add(direction)
	length := direction.Length()
	dir := direction.Normalize()
	u, w := perpendicular(dir)

	base := tip.Sub(dir.Mul(length / 5))
	r := length / 10
	return tip, [4]Vec3{
		base.Add(u.Mul(r)), base.Add(w.Mul(r)),
		base.Sub(u.Mul(r)), base.Sub(w.Mul(r)),
	}
}

// DrawArrow queues an arrow starting at origin and ending at
// origin+direction, with a four-sided wireframe head.
func (d *Drawer) DrawArrow(origin, direction Vec3, c color.RGBA) {
	if direction.IsZero() {
		return
	}
	v := d.lines(wireArrowVertices)
	if v == nil {
		return
	}
	tip, head := arrowHead(origin, direction)
	fill(v, c, origin, tip,
		tip, head[0], tip, head[1], tip, head[2], tip, head[3])
}

// DrawSolidArrow queues an arrow whose shaft is a line and whose head is
// a solid pyramid.
func (d *Drawer) DrawSolidArrow(origin, direction Vec3, c color.RGBA) {
	if direction.IsZero() {
		return
	}
	// Both regions are checked first so a shape is queued whole or not at all.
	if d.triangleEnd+solidArrowVertices > d.lineStart-lineVertices {
		d.overflowed = true
		return
	}
	tip, head := arrowHead(origin, direction)
	fill(d.lines(lineVertices), c, origin, tip)
	fill(d.triangles(solidArrowVertices), c,
		tip, head[0], head[1],
		tip, head[1], head[2],
		tip, head[2], head[3],
		tip, head[3], head[0],
		head[0], head[2], head[1],
		head[0], head[3], head[2])
}

// Flush submits all queued shapes through pb, which must be between Begin
// and End, and resets the drawer. Solid shapes are drawn before lines so
// wireframes stay visible on top.
func (d *Drawer) Flush(pb *batch.PrimitiveBatch[batch.VertexPositionColor], ctx batch.DrawContext) error {
	defer d.Reset()

	if d.overflowed {
		batch.Logger().Warn("debugdraw: vertex capacity exceeded, shapes dropped",
			"capacity", len(d.vertices))
	}
	if d.triangleEnd > 0 {
		if err := pb.Draw(d.vertices[:d.triangleEnd], batch.TriangleList, ctx); err != nil {
			return fmt.Errorf("debugdraw: triangles: %w", err)
		}
	}
	if d.lineStart < len(d.vertices) {
		if err := pb.Draw(d.vertices[d.lineStart:], batch.LineList, ctx); err != nil {
			return fmt.Errorf("debugdraw: lines: %w", err)
		}
	}
	return nil
}
