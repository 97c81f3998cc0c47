package software

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	"github.com/gogpu/batch"
	"golang.org/x/image/vector"
)

var (
	// ErrNilImage is returned by NewDrawer for a nil destination.
	ErrNilImage = errors.New("software: destination image is nil")

	// ErrNoBatch is returned by draw calls without a selected batch.
	ErrNoBatch = errors.New("software: no batch selected")

	// ErrBatchTooLarge is returned when a batch exceeds the batch size.
	ErrBatchTooLarge = errors.New("software: batch exceeds batch size")

	// ErrUnsupportedContext is returned for draw contexts other than Context.
	ErrUnsupportedContext = errors.New("software: draw context is not a software.Context")

	// ErrClosed is returned when a closed drawer is used.
	ErrClosed = errors.New("software: drawer is closed")
)

// Drawer is a batch.BatchDrawer rasterizing into a draw.Image.
//
// The Drawer is not safe for concurrent use.
type Drawer struct {
	dst    draw.Image
	bounds image.Rectangle
	cfg    config
	ras    *vector.Rasterizer

	vertices []batch.VertexPositionColor
	indices  []uint16
	selected bool
	indexed  bool

	primitives int
	closed     bool
}

// NewDrawer creates a drawer rendering into dst.
func NewDrawer(dst draw.Image, opts ...Option) (*Drawer, error) {
	if dst == nil {
		return nil, ErrNilImage
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.batchSize < batch.MinimumBatchSize || cfg.batchSize > batch.MaximumBatchSize {
		return nil, fmt.Errorf("%w: %d", batch.ErrInvalidBatchSize, cfg.batchSize)
	}
	b := dst.Bounds()
	return &Drawer{
		dst:    dst,
		bounds: b,
		cfg:    cfg,
		ras:    vector.NewRasterizer(b.Dx(), b.Dy()),
	}, nil
}

// Image returns the destination image.
func (d *Drawer) Image() draw.Image {
	return d.dst
}

// Primitives returns the number of primitives drawn so far, counting each
// pass once.
func (d *Drawer) Primitives() int {
	return d.primitives
}

// MaximumBatchSize implements batch.BatchDrawer.
func (d *Drawer) MaximumBatchSize() int {
	return d.cfg.batchSize
}

// Select implements batch.BatchDrawer. The drawer keeps a reference to
// vertices until the next Select.
func (d *Drawer) Select(vertices []batch.VertexPositionColor) error {
	if err := d.checkSelect(len(vertices), 0); err != nil {
		return err
	}
	d.vertices, d.indices = vertices, nil
	d.selected, d.indexed = true, false
	return nil
}

// SelectIndexed implements batch.BatchDrawer.
func (d *Drawer) SelectIndexed(vertices []batch.VertexPositionColor, indices []uint16) error {
	if err := d.checkSelect(len(vertices), len(indices)); err != nil {
		return err
	}
	d.vertices, d.indices = vertices, indices
	d.selected, d.indexed = true, true
	return nil
}

func (d *Drawer) checkSelect(vertexCount, indexCount int) error {
	if d.closed {
		return ErrClosed
	}
	if vertexCount > d.cfg.batchSize || indexCount > d.cfg.batchSize {
		return fmt.Errorf("%w: %d vertices, %d indices, batch size %d",
			ErrBatchTooLarge, vertexCount, indexCount, d.cfg.batchSize)
	}
	return nil
}

// Draw implements batch.BatchDrawer.
func (d *Drawer) Draw(baseVertex, vertexCount int, topology batch.Topology, ctx batch.DrawContext) error {
	c, err := d.checkDraw(ctx, topology)
	if err != nil {
		return err
	}
	if baseVertex < 0 || vertexCount < 0 || baseVertex+vertexCount > len(d.vertices) {
		return fmt.Errorf("%w: vertices [%d,%d) of %d",
			batch.ErrInvalidRange, baseVertex, baseVertex+vertexCount, len(d.vertices))
	}
	run := d.vertices[baseVertex : baseVertex+vertexCount]
	d.drawRun(c, topology, vertexCount, func(i int) batch.VertexPositionColor { return run[i] })
	return nil
}

// DrawIndexed implements batch.BatchDrawer. Indices are relative to baseVertex.
func (d *Drawer) DrawIndexed(baseVertex, vertexCount, startIndex, indexCount int, topology batch.Topology, ctx batch.DrawContext) error {
	c, err := d.checkDraw(ctx, topology)
	if err != nil {
		return err
	}
	if !d.indexed {
		return fmt.Errorf("%w: indexed draw needs SelectIndexed", ErrNoBatch)
	}
	if baseVertex < 0 || vertexCount < 0 || baseVertex+vertexCount > len(d.vertices) ||
		startIndex < 0 || indexCount < 0 || startIndex+indexCount > len(d.indices) {
		return fmt.Errorf("%w: vertices [%d,%d) of %d, indices [%d,%d) of %d",
			batch.ErrInvalidRange, baseVertex, baseVertex+vertexCount, len(d.vertices),
			startIndex, startIndex+indexCount, len(d.indices))
	}
	indices := d.indices[startIndex : startIndex+indexCount]
	for _, index := range indices {
		if int(index) >= vertexCount {
			return fmt.Errorf("%w: index %d, %d vertices", batch.ErrInvalidIndex, index, vertexCount)
		}
	}
	run := d.vertices[baseVertex : baseVertex+vertexCount]
	d.drawRun(c, topology, indexCount, func(i int) batch.VertexPositionColor { return run[indices[i]] })
	return nil
}

func (d *Drawer) checkDraw(ctx batch.DrawContext, topology batch.Topology) (Context, error) {
	if d.closed {
		return Context{}, ErrClosed
	}
	if !d.selected {
		return Context{}, ErrNoBatch
	}
	if !topology.Valid() {
		return Context{}, fmt.Errorf("%w: %d", batch.ErrInvalidTopology, int(topology))
	}
	c, ok := ctx.(Context)
	if !ok {
		return Context{}, fmt.Errorf("%w: %T", ErrUnsupportedContext, ctx)
	}
	return c, nil
}

// drawRun draws the n-element run addressed by at once per pass.
func (d *Drawer) drawRun(c Context, topology batch.Topology, n int, at func(int) batch.VertexPositionColor) {
	count := topology.PrimitiveCount(n)
	for pass := range c.PassCount() {
		for p := range count {
			d.drawPrimitive(c, pass, topology, p, at)
		}
	}
	d.primitives += count * c.PassCount()
}

func (d *Drawer) drawPrimitive(c Context, pass int, topology batch.Topology, p int, at func(int) batch.VertexPositionColor) {
	switch topology {
	case batch.PointList:
		v := at(p)
		d.point(v, c.shade(pass, v.Color), c.Op)
	case batch.LineList:
		b := at(2*p + 1)
		d.line(at(2*p), b, c.shade(pass, b.Color), c.Op)
	case batch.LineStrip:
		b := at(p + 1)
		d.line(at(p), b, c.shade(pass, b.Color), c.Op)
	case batch.TriangleList:
		v := at(3*p + 2)
		d.triangle(at(3*p), at(3*p+1), v, c.shade(pass, v.Color), c.Op)
	case batch.TriangleStrip:
		v := at(p + 2)
		d.triangle(at(p), at(p+1), v, c.shade(pass, v.Color), c.Op)
	case batch.TriangleFan:
		v := at(p + 2)
		d.triangle(at(0), at(p+1), v, c.shade(pass, v.Color), c.Op)
	}
}

func (d *Drawer) point(v batch.VertexPositionColor, col color.RGBA, op draw.Op) {
	h := d.cfg.pointSize / 2
	d.polygon(col, op, v.X-h, v.Y-h, v.X+h, v.Y-h, v.X+h, v.Y+h, v.X-h, v.Y+h)
}

// line draws a segment as a quad of the configured width.
func (d *Drawer) line(a, b batch.VertexPositionColor, col color.RGBA, op draw.Op) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	h := d.cfg.lineWidth / 2
	nx, ny := -dy/length*h, dx/length*h
	d.polygon(col, op, a.X+nx, a.Y+ny, b.X+nx, b.Y+ny, b.X-nx, b.Y-ny, a.X-nx, a.Y-ny)
}

func (d *Drawer) triangle(a, b, c batch.VertexPositionColor, col color.RGBA, op draw.Op) {
	d.polygon(col, op, a.X, a.Y, b.X, b.Y, c.X, c.Y)
}

// polygon fills the closed polygon given as x, y pairs in image coordinates.
func (d *Drawer) polygon(col color.RGBA, op draw.Op, xy ...float32) {
	if col.A == 0 && op == draw.Over {
		return
	}
	ox, oy := float32(d.bounds.Min.X), float32(d.bounds.Min.Y)
	d.ras.Reset(d.bounds.Dx(), d.bounds.Dy())
	d.ras.DrawOp = op
	d.ras.MoveTo(xy[0]-ox, xy[1]-oy)
	for i := 2; i+1 < len(xy); i += 2 {
		d.ras.LineTo(xy[i]-ox, xy[i+1]-oy)
	}
	d.ras.ClosePath()
	d.ras.Draw(d.dst, d.bounds, image.NewUniform(col), image.Point{})
}

// Close releases the rasterizer. It is safe to call Close more than once.
func (d *Drawer) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.vertices, d.indices = nil, nil
	d.log().Debug("software: drawer closed", "primitives", d.primitives)
	return nil
}

func (d *Drawer) log() *slog.Logger {
	if d.cfg.logger != nil {
		return d.cfg.logger
	}
	return batch.Logger()
}

var _ batch.BatchDrawer[batch.VertexPositionColor] = (*Drawer)(nil)
