package wgpu

import (
	"errors"
	"fmt"
	"image/color"
	"slices"
	"testing"

	"github.com/gogpu/batch"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// fakePass records the calls the drawer makes into a render pass.
type fakePass struct {
	calls []string
}

func (p *fakePass) SetPipeline(hal.RenderPipeline) { p.calls = append(p.calls, "pipeline") }

func (p *fakePass) SetBindGroup(index uint32, _ hal.BindGroup, _ []uint32) {
	p.calls = append(p.calls, fmt.Sprintf("bind %d", index))
}

func (p *fakePass) SetVertexBuffer(slot uint32, _ hal.Buffer, offset uint64) {
	p.calls = append(p.calls, fmt.Sprintf("vertices %d@%d", slot, offset))
}

func (p *fakePass) SetIndexBuffer(_ hal.Buffer, _ gputypes.IndexFormat, offset uint64) {
	p.calls = append(p.calls, fmt.Sprintf("indices @%d", offset))
}

func (p *fakePass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.calls = append(p.calls, fmt.Sprintf("draw %d %d %d %d", vertexCount, instanceCount, firstVertex, firstInstance))
}

func (p *fakePass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.calls = append(p.calls, fmt.Sprintf("drawIndexed %d %d %d %d %d", indexCount, instanceCount, firstIndex, baseVertex, firstInstance))
}

// binder is a PassBinder recording which passes were bound.
type binder struct {
	passes int
	bound  []string
}

func (b *binder) PassCount() int { return b.passes }

func (b *binder) Equal(other batch.DrawContext) bool { return other == batch.DrawContext(b) }

func (b *binder) BindPass(rp RenderPass, index int, topology batch.Topology) error {
	b.bound = append(b.bound, fmt.Sprintf("%d %s", index, topology))
	rp.SetPipeline(nil)
	return nil
}

// plainContext implements only batch.DrawContext.
type plainContext struct{}

func (plainContext) PassCount() int                 { return 1 }
func (plainContext) Equal(o batch.DrawContext) bool { return o == batch.DrawContext(plainContext{}) }

func vertices(n int) []batch.VertexPositionColor {
	out := make([]batch.VertexPositionColor, n)
	for i := range out {
		out[i] = batch.NewVertex(float32(i), 0, 0, color.RGBA{A: 255})
	}
	return out
}

func newTestDrawer(t *testing.T, opts ...Option) *Drawer[batch.VertexPositionColor] {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)
	d, err := NewDrawer(device, queue, PositionColorFormat(), opts...)
	if err != nil {
		t.Fatalf("NewDrawer() = %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestNewDrawer(t *testing.T) {
	d := newTestDrawer(t, WithBatchSize(16), WithDivisions(3), WithLabel("test"))
	if d.MaximumBatchSize() != 16 {
		t.Errorf("MaximumBatchSize() = %d, want 16", d.MaximumBatchSize())
	}
	if d.Divisions() != 3 {
		t.Errorf("Divisions() = %d, want 3", d.Divisions())
	}
	if d.vertexDivision != 16*positionColorStride {
		t.Errorf("vertexDivision = %d, want %d", d.vertexDivision, 16*positionColorStride)
	}
	// 16 batch indices plus a 48-index fan region, 2 bytes each.
	if d.fanOffset != 32 || d.indexDivision != 32+96 {
		t.Errorf("fanOffset, indexDivision = %d, %d, want 32, 128", d.fanOffset, d.indexDivision)
	}
}

func TestNewDrawerErrors(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	if _, err := NewDrawer(nil, queue, PositionColorFormat()); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil device = %v, want ErrNilDevice", err)
	}
	if _, err := NewDrawer(device, queue, PositionColorFormat(), WithBatchSize(2)); !errors.Is(err, batch.ErrInvalidBatchSize) {
		t.Errorf("batch size 2 = %v, want ErrInvalidBatchSize", err)
	}
	if _, err := NewDrawer(device, queue, PositionColorFormat(), WithDivisions(0)); err == nil {
		t.Error("zero divisions should fail")
	}
	if _, err := NewDrawer(device, queue, VertexFormat[int]{}); err == nil {
		t.Error("empty vertex format should fail")
	}
}

func TestDrawerRotatesDivisions(t *testing.T) {
	d := newTestDrawer(t, WithBatchSize(8), WithDivisions(2))
	pass := &fakePass{}
	ctx := &binder{passes: 1}

	d.BeginPass(pass)
	for range 2 {
		if err := d.Select(vertices(3)); err != nil {
			t.Fatalf("Select() = %v", err)
		}
		if err := d.Draw(0, 3, batch.TriangleList, ctx); err != nil {
			t.Fatalf("Draw() = %v", err)
		}
	}
	if err := d.Select(vertices(3)); !errors.Is(err, ErrDivisionsExhausted) {
		t.Errorf("third Select() = %v, want ErrDivisionsExhausted", err)
	}
	d.EndPass()

	// 8 vertices * 28 bytes per division; index divisions are 16 + 48 bytes.
	want := []string{
		"vertices 0@0", "indices @0", "pipeline", "draw 3 1 0 0",
		"vertices 0@224", "indices @64", "pipeline", "draw 3 1 0 0",
	}
	if !slices.Equal(pass.calls, want) {
		t.Errorf("calls = %v\nwant %v", pass.calls, want)
	}

	// A new pass frees the divisions; rotation wraps around.
	pass2 := &fakePass{}
	d.BeginPass(pass2)
	if err := d.Select(vertices(3)); err != nil {
		t.Fatalf("Select() in new pass = %v", err)
	}
	if pass2.calls[0] != "vertices 0@0" {
		t.Errorf("first call of new pass = %q, want division 0", pass2.calls[0])
	}
}

func TestDrawerIndexedAndMultiPass(t *testing.T) {
	d := newTestDrawer(t, WithBatchSize(16))
	pass := &fakePass{}
	ctx := &binder{passes: 3}

	d.BeginPass(pass)
	if err := d.SelectIndexed(vertices(6), []uint16{0, 1, 2, 3, 4, 5}); err != nil {
		t.Fatal(err)
	}
	if err := d.DrawIndexed(2, 4, 3, 3, batch.TriangleStrip, ctx); err != nil {
		t.Fatal(err)
	}

	if len(ctx.bound) != 3 || ctx.bound[2] != "2 TriangleStrip" {
		t.Errorf("bound passes = %v", ctx.bound)
	}
	draws := 0
	for _, c := range pass.calls {
		if c == "drawIndexed 3 1 3 2 0" {
			draws++
		}
	}
	if draws != 3 {
		t.Errorf("calls = %v, want 3 identical indexed draws", pass.calls)
	}
}

func TestDrawerFanEmulation(t *testing.T) {
	d := newTestDrawer(t, WithBatchSize(16))
	pass := &fakePass{}
	ctx := &binder{passes: 1}

	d.BeginPass(pass)
	if err := d.Select(vertices(12)); err != nil {
		t.Fatal(err)
	}
	// 5-vertex fan: 3 triangles, 9 indices, at the start of the fan region
	// (index 16), then the next fan starts after one padding slot.
	if err := d.Draw(0, 5, batch.TriangleFan, ctx); err != nil {
		t.Fatal(err)
	}
	if err := d.Draw(5, 4, batch.TriangleFan, ctx); err != nil {
		t.Fatal(err)
	}

	want := []string{"drawIndexed 9 1 16 0 0", "drawIndexed 6 1 26 5 0"}
	var got []string
	for _, c := range pass.calls {
		if len(c) > 11 && c[:11] == "drawIndexed" {
			got = append(got, c)
		}
	}
	if !slices.Equal(got, want) {
		t.Errorf("fan draws = %v, want %v", got, want)
	}
	if ctx.bound[0] != "0 TriangleFan" {
		t.Errorf("bound = %v", ctx.bound)
	}
}

func TestDrawerErrors(t *testing.T) {
	d := newTestDrawer(t, WithBatchSize(8))
	ctx := &binder{passes: 1}

	if err := d.Select(vertices(3)); !errors.Is(err, ErrNoRenderPass) {
		t.Errorf("Select without pass = %v, want ErrNoRenderPass", err)
	}

	d.BeginPass(&fakePass{})
	if err := d.Draw(0, 3, batch.TriangleList, ctx); !errors.Is(err, ErrNoBatch) {
		t.Errorf("Draw without batch = %v, want ErrNoBatch", err)
	}
	if err := d.Select(vertices(9)); !errors.Is(err, ErrBatchTooLarge) {
		t.Errorf("oversized Select = %v, want ErrBatchTooLarge", err)
	}
	if err := d.Select(vertices(3)); err != nil {
		t.Fatal(err)
	}
	if err := d.Draw(0, 3, batch.TriangleList, plainContext{}); !errors.Is(err, ErrUnsupportedContext) {
		t.Errorf("plain context = %v, want ErrUnsupportedContext", err)
	}
	if err := d.Draw(1, 3, batch.TriangleList, ctx); !errors.Is(err, batch.ErrInvalidRange) {
		t.Errorf("draw past batch = %v, want ErrInvalidRange", err)
	}
	if err := d.DrawIndexed(0, 3, 0, 3, batch.TriangleList, ctx); !errors.Is(err, ErrNoBatch) {
		t.Errorf("indexed draw on plain batch = %v, want ErrNoBatch", err)
	}

	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if err := d.Select(vertices(3)); !errors.Is(err, ErrClosed) {
		t.Errorf("Select after Close = %v, want ErrClosed", err)
	}
}

func TestDrawerRejectsInvalidTopology(t *testing.T) {
	d := newTestDrawer(t, WithBatchSize(16))
	pass := &fakePass{}
	ctx := &binder{passes: 1}

	d.BeginPass(pass)
	if err := d.SelectIndexed(vertices(4), []uint16{0, 1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	selectCalls := len(pass.calls)

	for _, top := range []batch.Topology{batch.Topology(42), batch.Topology(-1)} {
		if err := d.Draw(0, 4, top, ctx); !errors.Is(err, batch.ErrInvalidTopology) {
			t.Errorf("Draw(%d) = %v, want ErrInvalidTopology", int(top), err)
		}
		if err := d.DrawIndexed(0, 4, 0, 4, top, ctx); !errors.Is(err, batch.ErrInvalidTopology) {
			t.Errorf("DrawIndexed(%d) = %v, want ErrInvalidTopology", int(top), err)
		}
	}
	if len(pass.calls) != selectCalls || len(ctx.bound) != 0 {
		t.Errorf("invalid topologies reached the render pass: %v", pass.calls[selectCalls:])
	}
	if d.fanUsed != 0 {
		t.Errorf("fanUsed = %d, invalid topologies must not be expanded as fans", d.fanUsed)
	}
}

func TestDrawerWithPrimitiveBatch(t *testing.T) {
	d := newTestDrawer(t, WithBatchSize(16), WithDivisions(8))
	pass := &fakePass{}
	ctx := &binder{passes: 1}

	pb, err := batch.NewPrimitiveBatch[batch.VertexPositionColor](d)
	if err != nil {
		t.Fatal(err)
	}

	d.BeginPass(pass)
	if err := pb.Begin(batch.Deferred); err != nil {
		t.Fatal(err)
	}
	if err := pb.Draw(vertices(40), batch.TriangleStrip, ctx); err != nil {
		t.Fatal(err)
	}
	if err := pb.End(); err != nil {
		t.Fatal(err)
	}
	d.EndPass()

	// 40 strip vertices in batches of 16: 15 + 13 + 12 new vertices.
	if got := len(ctx.bound); got != 3 {
		t.Errorf("draw calls = %d, want 3", got)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
	if !d.closed {
		t.Error("PrimitiveBatch.Close must close the drawer")
	}
}

func TestExpandFan(t *testing.T) {
	tests := []struct {
		fan  []uint16
		want []uint16
	}{
		{nil, nil},
		{[]uint16{0, 1}, nil},
		{[]uint16{0, 1, 2}, []uint16{0, 1, 2}},
		{[]uint16{7, 1, 2, 3}, []uint16{7, 1, 2, 7, 2, 3}},
	}
	for _, tt := range tests {
		if got := expandFan(nil, tt.fan); !slices.Equal(got, tt.want) {
			t.Errorf("expandFan(%v) = %v, want %v", tt.fan, got, tt.want)
		}
	}
}

func TestEncodeIndicesPadding(t *testing.T) {
	if got := len(encodeIndices([]uint16{1, 2, 3})); got != 8 {
		t.Errorf("len(encodeIndices(3)) = %d, want 8", got)
	}
	b := encodeIndices([]uint16{0x0102})
	if b[0] != 0x02 || b[1] != 0x01 {
		t.Errorf("encodeIndices not little-endian: %v", b)
	}
}

func TestPositionColorFormat(t *testing.T) {
	f := PositionColorFormat()
	buf := make([]byte, f.Stride)
	f.Encode(buf, batch.NewVertex(1, 2, 3, color.RGBA{R: 255, A: 255}))

	layout := f.Layout()
	if len(layout) != 1 || layout[0].ArrayStride != positionColorStride || len(layout[0].Attributes) != 2 {
		t.Errorf("Layout() = %+v", layout)
	}
	// 1.0f little-endian
	if buf[12] != 0x00 || buf[15] != 0x3f {
		t.Errorf("red channel bytes = %v, want 1.0", buf[12:16])
	}
}
