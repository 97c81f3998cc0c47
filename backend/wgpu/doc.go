// Package wgpu provides a GPU batch drawer on top of gogpu/wgpu HAL devices.
//
// The Drawer implements batch.BatchDrawer for any vertex type described by
// a VertexFormat. It owns one vertex buffer and one index buffer, each
// divided into equally sized divisions of the maximum batch size. Every
// Select uploads its batch into the next division, so the GPU may still be
// reading earlier batches while new ones are written.
//
// # Render passes
//
// The drawer records into a render pass owned by the caller:
//
//	drawer.BeginPass(rp)       // rp is a hal.RenderPassEncoder
//	pb.Begin(batch.Deferred)
//	pb.Draw(vertices, batch.TriangleStrip, pipelines)
//	pb.End()
//	drawer.EndPass()
//
// Queue writes land before the command buffer executes, so a division must
// not be written twice within one pass. Selecting more batches than there
// are divisions inside one pass fails with ErrDivisionsExhausted; raise the
// division count with WithDivisions for heavy passes.
//
// # Draw contexts
//
// Draw contexts passed to the drawer must implement PassBinder. For every
// pass of a draw call the drawer asks the context to bind its pipeline and
// resources. PipelineContext is the stock implementation: it holds one
// render pipeline per primitive topology, built from the default WGSL
// shader (compiled to SPIR-V with naga) or from a caller-supplied module.
//
// # Triangle fans
//
// WebGPU has no triangle fans. The drawer expands every fan draw into a
// triangle list written to a per-division fan index region and draws that
// with the triangle list pipeline of the context.
//
// # Integration
//
// NewDrawerFromProvider creates a drawer from a gpucontext.DeviceProvider
// exposing HAL types, sharing the host application's device and queue.
package wgpu
