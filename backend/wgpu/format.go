package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/batch"
	"github.com/gogpu/gputypes"
)

// VertexFormat describes how a vertex type is laid out in GPU memory.
type VertexFormat[V any] struct {
	// Stride is the size of one encoded vertex in bytes.
	Stride uint64

	// Attributes are the shader inputs of one vertex.
	Attributes []gputypes.VertexAttribute

	// Encode writes v into dst, which holds exactly Stride bytes.
	Encode func(dst []byte, v V)
}

// Layout returns the vertex buffer layout for pipelines drawing this format.
func (f VertexFormat[V]) Layout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: f.Stride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes:  f.Attributes,
		},
	}
}

// positionColorStride is 3 position floats plus 4 color floats.
const positionColorStride = 28

// PositionColorFormat is the VertexFormat of batch.VertexPositionColor:
// position at location 0 (float32x3), color at location 1 (float32x4,
// premultiplied, 0..1).
func PositionColorFormat() VertexFormat[batch.VertexPositionColor] {
	return VertexFormat[batch.VertexPositionColor]{
		Stride: positionColorStride,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
			{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, // color
		},
		Encode: encodePositionColor,
	}
}

func encodePositionColor(dst []byte, v batch.VertexPositionColor) {
	binary.LittleEndian.PutUint32(dst[0:4], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(dst[4:8], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(dst[8:12], math.Float32bits(v.Z))
	binary.LittleEndian.PutUint32(dst[12:16], math.Float32bits(float32(v.Color.R)/255))
	binary.LittleEndian.PutUint32(dst[16:20], math.Float32bits(float32(v.Color.G)/255))
	binary.LittleEndian.PutUint32(dst[20:24], math.Float32bits(float32(v.Color.B)/255))
	binary.LittleEndian.PutUint32(dst[24:28], math.Float32bits(float32(v.Color.A)/255))
}
