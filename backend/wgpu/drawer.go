package wgpu

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/gogpu/batch"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// RenderPass is the part of hal.RenderPassEncoder the drawer records into.
type RenderPass interface {
	SetPipeline(pipeline hal.RenderPipeline)
	SetBindGroup(index uint32, group hal.BindGroup, dynamicOffsets []uint32)
	SetVertexBuffer(slot uint32, buffer hal.Buffer, offset uint64)
	SetIndexBuffer(buffer hal.Buffer, format gputypes.IndexFormat, offset uint64)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
}

// PassBinder is a draw context that knows how to set up a render pass for
// one pass of a draw call: bind the pipeline matching topology and the
// resources of pass number index.
type PassBinder interface {
	batch.DrawContext
	BindPass(rp RenderPass, index int, topology batch.Topology) error
}

// fanRegionFactor is the size of the fan index region relative to the
// batch size. A fan of n vertices expands to 3(n-2) indices, so all fans
// of one batch together need less than three times the batch size.
const fanRegionFactor = 3

// Drawer is a batch.BatchDrawer uploading batches into rotating divisions
// of a vertex and an index buffer.
//
// The Drawer is not safe for concurrent use.
type Drawer[V any] struct {
	device hal.Device
	queue  hal.Queue
	format VertexFormat[V]
	cfg    config

	vertexBuf hal.Buffer
	indexBuf  hal.Buffer

	// Per-division sizes in bytes. The index division holds the batch
	// indices followed by the fan index region.
	vertexDivision uint64
	indexDivision  uint64
	fanOffset      uint64

	pass     RenderPass
	next     int
	used     int
	division int // division of the selected batch, -1 if none

	vertexCount int
	indices     []uint16 // CPU copy of the selected indices, nil when not indexed
	fanUsed     int      // indices written to the fan region of the division

	scratch  []byte
	fanWords []uint16
	closed   bool
}

// NewDrawer creates a drawer and allocates its GPU buffers on device.
func NewDrawer[V any](device hal.Device, queue hal.Queue, format VertexFormat[V], opts ...Option) (*Drawer[V], error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
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
	if cfg.divisions < 1 {
		return nil, fmt.Errorf("wgpu: division count must be positive, got %d", cfg.divisions)
	}
	if format.Stride == 0 || format.Encode == nil {
		return nil, fmt.Errorf("wgpu: vertex format needs a stride and an encoder")
	}

	d := &Drawer[V]{
		device:         device,
		queue:          queue,
		format:         format,
		cfg:            cfg,
		vertexDivision: align4(uint64(cfg.batchSize) * format.Stride),
		fanOffset:      align4(uint64(cfg.batchSize) * 2),
		division:       -1,
	}
	d.indexDivision = d.fanOffset + align4(uint64(fanRegionFactor*cfg.batchSize)*2)

	if err := d.createBuffers(); err != nil {
		return nil, err
	}
	d.log().Info("wgpu: batch drawer created",
		"batchSize", cfg.batchSize,
		"divisions", cfg.divisions,
		"vertexBytes", d.vertexDivision*uint64(cfg.divisions),
		"indexBytes", d.indexDivision*uint64(cfg.divisions))
	return d, nil
}

func (d *Drawer[V]) createBuffers() error {
	divisions := uint64(d.cfg.divisions)

	vertexBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: d.cfg.label + "_vertices",
		Size:  d.vertexDivision * divisions,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create vertex buffer: %w", err)
	}

	indexBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: d.cfg.label + "_indices",
		Size:  d.indexDivision * divisions,
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		d.device.DestroyBuffer(vertexBuf)
		return fmt.Errorf("wgpu: create index buffer: %w", err)
	}

	d.vertexBuf = vertexBuf
	d.indexBuf = indexBuf
	return nil
}

// MaximumBatchSize implements batch.BatchDrawer.
func (d *Drawer[V]) MaximumBatchSize() int {
	return d.cfg.batchSize
}

// Divisions returns the number of buffer divisions.
func (d *Drawer[V]) Divisions() int {
	return d.cfg.divisions
}

// BeginPass starts recording into rp. Every division becomes available
// again; rotation continues where the previous pass stopped.
func (d *Drawer[V]) BeginPass(rp RenderPass) {
	d.pass = rp
	d.used = 0
	d.division = -1
}

// EndPass stops recording. The render pass itself is ended by its owner.
func (d *Drawer[V]) EndPass() {
	d.pass = nil
	d.division = -1
}

// Select implements batch.BatchDrawer.
func (d *Drawer[V]) Select(vertices []V) error {
	return d.selectBatch(vertices, nil)
}

// SelectIndexed implements batch.BatchDrawer.
func (d *Drawer[V]) SelectIndexed(vertices []V, indices []uint16) error {
	if indices == nil {
		indices = []uint16{}
	}
	return d.selectBatch(vertices, indices)
}

func (d *Drawer[V]) selectBatch(vertices []V, indices []uint16) error {
	switch {
	case d.closed:
		return ErrClosed
	case d.pass == nil:
		return ErrNoRenderPass
	case len(vertices) > d.cfg.batchSize || len(indices) > d.cfg.batchSize:
		return fmt.Errorf("%w: %d vertices, %d indices, batch size %d",
			ErrBatchTooLarge, len(vertices), len(indices), d.cfg.batchSize)
	case d.used == d.cfg.divisions:
		return fmt.Errorf("%w: %d divisions", ErrDivisionsExhausted, d.cfg.divisions)
	}

	div := d.next
	d.next = (d.next + 1) % d.cfg.divisions
	d.used++
	d.division = div
	d.vertexCount = len(vertices)
	d.fanUsed = 0

	vertexOffset := uint64(div) * d.vertexDivision
	if len(vertices) > 0 {
		d.queue.WriteBuffer(d.vertexBuf, vertexOffset, d.encodeVertices(vertices))
	}
	d.pass.SetVertexBuffer(0, d.vertexBuf, vertexOffset)

	if indices == nil {
		d.indices = nil
	} else {
		d.indices = append(d.indices[:0], indices...)
		if len(indices) > 0 {
			d.queue.WriteBuffer(d.indexBuf, uint64(div)*d.indexDivision, encodeIndices(indices))
		}
	}
	d.pass.SetIndexBuffer(d.indexBuf, gputypes.IndexFormatUint16, uint64(div)*d.indexDivision)

	d.log().Debug("wgpu: batch selected",
		"division", div,
		"vertices", len(vertices),
		"indices", len(indices))
	return nil
}

// Draw implements batch.BatchDrawer.
func (d *Drawer[V]) Draw(baseVertex, vertexCount int, topology batch.Topology, ctx batch.DrawContext) error {
	binder, err := d.checkDraw(ctx, topology)
	if err != nil {
		return err
	}
	if baseVertex < 0 || vertexCount < 0 || baseVertex+vertexCount > d.vertexCount {
		return fmt.Errorf("%w: vertices [%d,%d) of %d",
			batch.ErrInvalidRange, baseVertex, baseVertex+vertexCount, d.vertexCount)
	}

	if _, native := topology.GPUTopology(); !native {
		fan := d.fanWords[:0]
		for i := range vertexCount {
			fan = append(fan, uint16(i))
		}
		d.fanWords = fan
		return d.drawFan(binder, baseVertex, fan, topology)
	}

	for pass := range binder.PassCount() {
		if err := binder.BindPass(d.pass, pass, topology); err != nil {
			return fmt.Errorf("wgpu: bind pass %d: %w", pass, err)
		}
		d.pass.Draw(uint32(vertexCount), 1, uint32(baseVertex), 0)
	}
	return nil
}

// DrawIndexed implements batch.BatchDrawer.
func (d *Drawer[V]) DrawIndexed(baseVertex, vertexCount, startIndex, indexCount int, topology batch.Topology, ctx batch.DrawContext) error {
	binder, err := d.checkDraw(ctx, topology)
	if err != nil {
		return err
	}
	if d.indices == nil {
		return fmt.Errorf("%w: indexed draw needs SelectIndexed", ErrNoBatch)
	}
	if baseVertex < 0 || vertexCount < 0 || baseVertex+vertexCount > d.vertexCount ||
		startIndex < 0 || indexCount < 0 || startIndex+indexCount > len(d.indices) {
		return fmt.Errorf("%w: vertices [%d,%d) of %d, indices [%d,%d) of %d",
			batch.ErrInvalidRange, baseVertex, baseVertex+vertexCount, d.vertexCount,
			startIndex, startIndex+indexCount, len(d.indices))
	}

	if _, native := topology.GPUTopology(); !native {
		return d.drawFan(binder, baseVertex, d.indices[startIndex:startIndex+indexCount], topology)
	}

	for pass := range binder.PassCount() {
		if err := binder.BindPass(d.pass, pass, topology); err != nil {
			return fmt.Errorf("wgpu: bind pass %d: %w", pass, err)
		}
		d.pass.DrawIndexed(uint32(indexCount), 1, uint32(startIndex), int32(baseVertex), 0)
	}
	return nil
}

// drawFan expands the fan given by indices (relative to baseVertex) into
// a triangle list in the fan region of the current division and draws it.
func (d *Drawer[V]) drawFan(binder PassBinder, baseVertex int, indices []uint16, topology batch.Topology) error {
	expanded := expandFan(nil, indices)
	if len(expanded) == 0 {
		return nil
	}
	if d.fanUsed+len(expanded) > fanRegionFactor*d.cfg.batchSize {
		return fmt.Errorf("%w: fan region holds %d indices", ErrBatchTooLarge, fanRegionFactor*d.cfg.batchSize)
	}

	first := d.fanUsed
	offset := uint64(d.division)*d.indexDivision + d.fanOffset + uint64(first)*2
	d.queue.WriteBuffer(d.indexBuf, offset, encodeIndices(expanded))
	// Writes stay 4-byte aligned: odd runs occupy one padding slot.
	d.fanUsed += len(expanded) + len(expanded)%2

	// The index buffer is bound at the division start, so the fan region
	// begins at index fanOffset/2.
	firstIndex := uint32(d.fanOffset/2) + uint32(first)
	for pass := range binder.PassCount() {
		if err := binder.BindPass(d.pass, pass, topology); err != nil {
			return fmt.Errorf("wgpu: bind pass %d: %w", pass, err)
		}
		d.pass.DrawIndexed(uint32(len(expanded)), 1, firstIndex, int32(baseVertex), 0)
	}
	return nil
}

func (d *Drawer[V]) checkDraw(ctx batch.DrawContext, topology batch.Topology) (PassBinder, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if d.pass == nil {
		return nil, ErrNoRenderPass
	}
	if d.division < 0 {
		return nil, ErrNoBatch
	}
	if !topology.Valid() {
		return nil, fmt.Errorf("%w: %d", batch.ErrInvalidTopology, int(topology))
	}
	binder, ok := ctx.(PassBinder)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedContext, ctx)
	}
	return binder, nil
}

// Close releases the GPU buffers. It is safe to call Close more than once.
func (d *Drawer[V]) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.pass = nil
	if d.vertexBuf != nil {
		d.device.DestroyBuffer(d.vertexBuf)
		d.vertexBuf = nil
	}
	if d.indexBuf != nil {
		d.device.DestroyBuffer(d.indexBuf)
		d.indexBuf = nil
	}
	d.log().Info("wgpu: batch drawer closed")
	return nil
}

func (d *Drawer[V]) encodeVertices(vertices []V) []byte {
	n := uint64(len(vertices)) * d.format.Stride
	if uint64(cap(d.scratch)) < n {
		d.scratch = make([]byte, n)
	}
	buf := d.scratch[:n]
	stride := d.format.Stride
	for i, v := range vertices {
		off := uint64(i) * stride
		d.format.Encode(buf[off:off+stride], v)
	}
	return buf
}

func (d *Drawer[V]) log() *slog.Logger {
	if d.cfg.logger != nil {
		return d.cfg.logger
	}
	return batch.Logger()
}

// expandFan appends the triangle list equivalent of a fan to dst:
// (f0, f1, f2), (f0, f2, f3), ... Fans shorter than three indices add nothing.
func expandFan(dst, fan []uint16) []uint16 {
	for i := 1; i+1 < len(fan); i++ {
		dst = append(dst, fan[0], fan[i], fan[i+1])
	}
	return dst
}

// encodeIndices returns indices as little-endian bytes padded to a
// multiple of four.
func encodeIndices(indices []uint16) []byte {
	buf := make([]byte, align4(uint64(len(indices))*2))
	for i, index := range indices {
		binary.LittleEndian.PutUint16(buf[i*2:], index)
	}
	return buf
}

func align4(n uint64) uint64 {
	return (n + 3) &^ 3
}

var _ batch.BatchDrawer[batch.VertexPositionColor] = (*Drawer[batch.VertexPositionColor])(nil)
