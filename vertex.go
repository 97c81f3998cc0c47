package batch

import "image/color"

// VertexPositionColor is a vertex with a position and a premultiplied
// RGBA color. It is the vertex type of the shipped backends and the debug
// drawer.
type VertexPositionColor struct {
	X, Y, Z float32
	Color   color.RGBA
}

// NewVertex returns a vertex at (x, y, z) with color c.
func NewVertex(x, y, z float32, c color.RGBA) VertexPositionColor {
	return VertexPositionColor{X: x, Y: y, Z: z, Color: c}
}
