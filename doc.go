// Package batch collects primitives submitted by an application and draws
// them with as few draw calls as a fixed-capacity backend allows.
//
// # Overview
//
// Applications submit runs of vertices (points, line lists, line strips,
// triangle lists, triangle strips and triangle fans), each tagged with a
// [DrawContext] describing the shader and render state to use. A [Queuer]
// turns these runs into batches for a [BatchDrawer], which owns the actual
// vertex and index buffers and issues the draw calls.
//
// Two strategies are available:
//   - [Immediate]: every run is drawn right away as its own draw call.
//   - [Deferred]: runs accumulate in a staging arena of the drawer's batch
//     size. Runs sharing a context and a list topology merge into a single
//     draw call; runs too large for the remaining room are split.
//
// # Splitting
//
// A split never changes what is drawn. List topologies are cut only on
// primitive boundaries. Strips and fans start every fragment after the
// first with continuation vertices: the last vertex of a line strip, the
// last two vertices of a triangle strip, and the pivot plus the last vertex
// of a triangle fan. When only a sliver of room is left for the first
// fragment the whole run moves to the next batch instead.
//
// # Quick Start
//
//	drawer, err := software.NewDrawer(img)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pb, err := batch.NewPrimitiveBatch[batch.VertexPositionColor](drawer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pb.Begin(batch.Deferred)
//	pb.Draw(strip, batch.TriangleStrip, software.Context{})
//	pb.End()
//
// # Backends
//
// The module ships three drawers:
//   - backend/wgpu: GPU drawer over gogpu/wgpu HAL devices with rotating
//     buffer divisions
//   - backend/software: CPU rasterizer writing into a draw.Image
//   - recording: captures batches and draw calls for tests
//
// # Concurrency
//
// Queuers and PrimitiveBatch are not safe for concurrent use. One
// Begin/End cycle belongs to one goroutine. Several deferred queuers
// sharing a drawer draw in an order decided by their flushes; use the
// Immediate strategy everywhere when strict submission order matters.
package batch

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
