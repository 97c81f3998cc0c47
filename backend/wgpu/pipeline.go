package wgpu

import (
	"fmt"

	"github.com/gogpu/batch"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// PipelineDescriptor describes the pipelines of a PipelineContext.
// Zero fields select the defaults noted on each field.
type PipelineDescriptor struct {
	// Label prefixes the labels of the created GPU objects. Default "batch".
	Label string

	// Format is the color target format. Default BGRA8Unorm.
	Format gputypes.TextureFormat

	// Buffers is the vertex layout. Default PositionColorFormat().Layout().
	Buffers []gputypes.VertexBufferLayout

	// Shader is the module holding both entry points. When nil the
	// PositionColorShaderWGSL shader is compiled and owned by the context.
	Shader hal.ShaderModule

	// VertexEntryPoint and FragmentEntryPoint default to vs_main and fs_main.
	VertexEntryPoint   string
	FragmentEntryPoint string

	// BindGroupLayouts become the pipeline layout.
	BindGroupLayouts []hal.BindGroupLayout

	// BindGroups holds the group 0 binding of every pass. The pass count of
	// the context is len(BindGroups), or 1 when empty.
	BindGroups []hal.BindGroup

	// SampleCount is the multisample count. Default 1.
	SampleCount uint32
}

// PipelineContext is a draw context holding one render pipeline per GPU
// primitive topology, all sharing one shader, layout and blend state.
// Two contexts are equal only if they are the same object.
type PipelineContext struct {
	device     hal.Device
	label      string
	shader     hal.ShaderModule
	ownsShader bool
	layout     hal.PipelineLayout
	pipelines  map[gputypes.PrimitiveTopology]hal.RenderPipeline
	bindGroups []hal.BindGroup
}

// NewPipelineContext creates the pipelines described by desc on device.
func NewPipelineContext(device hal.Device, desc PipelineDescriptor) (*PipelineContext, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	applyPipelineDefaults(&desc)

	c := &PipelineContext{
		device:     device,
		label:      desc.Label,
		shader:     desc.Shader,
		pipelines:  make(map[gputypes.PrimitiveTopology]hal.RenderPipeline),
		bindGroups: desc.BindGroups,
	}
	if err := c.create(desc); err != nil {
		c.Destroy()
		return nil, err
	}
	return c, nil
}

func applyPipelineDefaults(desc *PipelineDescriptor) {
	if desc.Label == "" {
		desc.Label = "batch"
	}
	if desc.Format == gputypes.TextureFormatUndefined {
		desc.Format = gputypes.TextureFormatBGRA8Unorm
	}
	if desc.Buffers == nil {
		desc.Buffers = PositionColorFormat().Layout()
	}
	if desc.VertexEntryPoint == "" {
		desc.VertexEntryPoint = "vs_main"
	}
	if desc.FragmentEntryPoint == "" {
		desc.FragmentEntryPoint = "fs_main"
	}
	if desc.SampleCount == 0 {
		desc.SampleCount = 1
	}
}

func (c *PipelineContext) create(desc PipelineDescriptor) error {
	if c.shader == nil {
		shader, err := NewShaderModule(c.device, c.label+"_shader", PositionColorShaderWGSL)
		if err != nil {
			return err
		}
		c.shader = shader
		c.ownsShader = true
	}

	layout, err := c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            c.label + "_pipe_layout",
		BindGroupLayouts: desc.BindGroupLayouts,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	c.layout = layout

	premulBlend := gputypes.BlendStatePremultiplied()
	for _, t := range []batch.Topology{
		batch.PointList, batch.LineList, batch.LineStrip,
		batch.TriangleList, batch.TriangleStrip, batch.TriangleFan,
	} {
		gpu, _ := t.GPUTopology()
		if c.pipelines[gpu] != nil {
			continue
		}
		pipeline, err := c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
			Label:  fmt.Sprintf("%s_pipeline_%s", c.label, t),
			Layout: c.layout,
			Vertex: hal.VertexState{
				Module:     c.shader,
				EntryPoint: desc.VertexEntryPoint,
				Buffers:    desc.Buffers,
			},
			Fragment: &hal.FragmentState{
				Module:     c.shader,
				EntryPoint: desc.FragmentEntryPoint,
				Targets: []gputypes.ColorTargetState{
					{
						Format:    desc.Format,
						Blend:     &premulBlend,
						WriteMask: gputypes.ColorWriteMaskAll,
					},
				},
			},
			Primitive: gputypes.PrimitiveState{
				Topology: gpu,
				CullMode: gputypes.CullModeNone,
			},
			Multisample: gputypes.MultisampleState{
				Count: desc.SampleCount,
				Mask:  0xFFFFFFFF,
			},
		})
		if err != nil {
			return fmt.Errorf("wgpu: create %s pipeline: %w", t, err)
		}
		c.pipelines[gpu] = pipeline
	}
	return nil
}

// PassCount implements batch.DrawContext.
func (c *PipelineContext) PassCount() int {
	return max(1, len(c.bindGroups))
}

// Equal implements batch.DrawContext.
func (c *PipelineContext) Equal(other batch.DrawContext) bool {
	o, ok := other.(*PipelineContext)
	return ok && o == c
}

// BindPass implements PassBinder: it sets the pipeline for topology and,
// when the context has bind groups, the group of pass index.
func (c *PipelineContext) BindPass(rp RenderPass, index int, topology batch.Topology) error {
	if !topology.Valid() {
		return fmt.Errorf("%w: %d", batch.ErrInvalidTopology, int(topology))
	}
	gpu, _ := topology.GPUTopology()
	pipeline := c.pipelines[gpu]
	if pipeline == nil {
		return fmt.Errorf("wgpu: no pipeline for %s", topology)
	}
	rp.SetPipeline(pipeline)
	if index < len(c.bindGroups) {
		rp.SetBindGroup(0, c.bindGroups[index], nil)
	}
	return nil
}

// Pipeline returns the pipeline used for topology, or nil.
func (c *PipelineContext) Pipeline(topology batch.Topology) hal.RenderPipeline {
	if !topology.Valid() {
		return nil
	}
	gpu, _ := topology.GPUTopology()
	return c.pipelines[gpu]
}

// Destroy releases the pipelines, the layout and an owned shader module.
// Bind groups belong to the caller.
func (c *PipelineContext) Destroy() {
	if c.device == nil {
		return
	}
	for gpu, p := range c.pipelines {
		c.device.DestroyRenderPipeline(p)
		delete(c.pipelines, gpu)
	}
	if c.layout != nil {
		c.device.DestroyPipelineLayout(c.layout)
		c.layout = nil
	}
	if c.shader != nil && c.ownsShader {
		c.device.DestroyShaderModule(c.shader)
	}
	c.shader = nil
}

var _ PassBinder = (*PipelineContext)(nil)
