// Package software provides a CPU batch drawer.
//
// The Drawer rasterizes the points, lines and triangles of every draw call
// into a draw.Image with golang.org/x/image/vector. Vertex X and Y are
// pixel coordinates; Z is ignored. Every primitive is filled with the color
// of its last vertex, so a run renders the same whether or not the batch
// engine split it.
//
// The Drawer is meant for tests, thumbnails and headless tools:
//
//	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
//	drawer, _ := software.NewDrawer(img, software.WithLineWidth(2))
//	pb, _ := batch.NewPrimitiveBatch[batch.VertexPositionColor](drawer)
//	_ = pb.Begin(batch.Deferred)
//	_ = pb.Draw(strip, batch.TriangleStrip, software.Context{})
//	_ = pb.End()
package software
