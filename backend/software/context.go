package software

import (
	"image/color"
	"image/draw"

	"github.com/gogpu/batch"
)

// Shader adjusts the fill color of a primitive for one pass of a draw call.
// Implementations used in a Context must be comparable, typically pointers.
type Shader interface {
	ShadePass(pass int, c color.RGBA) color.RGBA
}

// Context is the draw context of the software drawer.
// The zero value draws once with draw.Over.
type Context struct {
	// Op composites primitives onto the image. Zero means draw.Over.
	Op draw.Op

	// Passes is the number of times each primitive is drawn. Zero means one.
	Passes int

	// Shader, when set, recolors each pass.
	Shader Shader
}

// PassCount implements batch.DrawContext.
func (c Context) PassCount() int {
	return max(1, c.Passes)
}

// Equal implements batch.DrawContext.
func (c Context) Equal(other batch.DrawContext) bool {
	o, ok := other.(Context)
	return ok && o.Op == c.Op && o.PassCount() == c.PassCount() && o.Shader == c.Shader
}

func (c Context) shade(pass int, col color.RGBA) color.RGBA {
	if c.Shader == nil {
		return col
	}
	return c.Shader.ShadePass(pass, col)
}
