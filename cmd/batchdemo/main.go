// Command batchdemo renders a demo scene through the primitive batch and
// the software drawer and writes it as a PNG.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/backend/software"
	"github.com/gogpu/batch/debugdraw"
)

type vertices = []batch.VertexPositionColor

func main() {
	var (
		width     = flag.Int("width", 800, "image width")
		height    = flag.Int("height", 600, "image height")
		output    = flag.String("output", "batch.png", "output file")
		batchSize = flag.Int("batch", 64, "vertices per batch")
		strategy  = flag.String("strategy", "deferred", "queueing strategy: immediate or deferred")
		verbose   = flag.Bool("verbose", false, "log batch flushes")
	)
	flag.Parse()

	if *verbose {
		batch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	s, err := batch.ParseQueueingStrategy(*strategy)
	if err != nil {
		log.Fatal(err)
	}

	img := image.NewRGBA(image.Rect(0, 0, *width, *height))
	drawer, err := software.NewDrawer(img,
		software.WithBatchSize(*batchSize),
		software.WithLineWidth(3),
		software.WithPointSize(4))
	if err != nil {
		log.Fatalf("Failed to create drawer: %v", err)
	}

	pb, err := batch.NewPrimitiveBatch[batch.VertexPositionColor](drawer)
	if err != nil {
		log.Fatalf("Failed to create batch: %v", err)
	}
	defer func() {
		_ = pb.Close()
	}()

	if err := pb.Begin(s); err != nil {
		log.Fatal(err)
	}
	if err := drawScene(pb, float32(*width), float32(*height)); err != nil {
		log.Fatalf("Failed to draw: %v", err)
	}
	if err := pb.End(); err != nil {
		log.Fatalf("Failed to flush: %v", err)
	}

	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d, %d primitives, %s)\n",
		*output, *width, *height, drawer.Primitives(), s)
}

func drawScene(pb *batch.PrimitiveBatch[batch.VertexPositionColor], w, h float32) error {
	ctx := software.Context{}

	if err := pb.Draw(background(w, h), batch.TriangleStrip, ctx); err != nil {
		return err
	}
	for i, c := range []color.RGBA{{R: 230, G: 60, B: 60, A: 255}, {R: 60, G: 200, B: 90, A: 255}, {R: 70, G: 90, B: 230, A: 255}} {
		cx := w/4 + float32(i)*w/4
		if err := pb.Draw(disc(cx, h/3, h/8, 48, c), batch.TriangleFan, ctx); err != nil {
			return err
		}
	}
	if err := pb.Draw(wave(w, h*2/3, h/10), batch.LineStrip, ctx); err != nil {
		return err
	}
	if err := pb.Draw(grid(w, h), batch.PointList, ctx); err != nil {
		return err
	}

	dd := debugdraw.New(debugdraw.DefaultCapacity)
	yellow := color.RGBA{R: 255, G: 220, B: 0, A: 255}
	dd.DrawBox(debugdraw.V3(w/10, h*0.8, 0), debugdraw.V3(w*0.9, h*0.95, 0), yellow)
	dd.DrawArrow(debugdraw.V3(w/10, h*0.875, 0), debugdraw.V3(w*0.8, 0, 0), yellow)
	return dd.Flush(pb, ctx)
}

// background is a vertical gradient drawn as one long triangle strip.
func background(w, h float32) vertices {
	const steps = 100
	out := make(vertices, 0, 2*(steps+1))
	for i := range steps + 1 {
		t := float32(i) / steps
		c := color.RGBA{
			R: uint8(255 * (0.1 + t*0.4)),
			G: uint8(255 * (0.2 + t*0.3)),
			B: uint8(255 * (0.4 + t*0.2)),
			A: 255,
		}
		y := h * t
		out = append(out, batch.NewVertex(0, y, 0, c), batch.NewVertex(w, y, 0, c))
	}
	return out
}

// disc is a filled circle drawn as a triangle fan around its center.
func disc(cx, cy, r float32, segments int, c color.RGBA) vertices {
	out := make(vertices, 0, segments+2)
	out = append(out, batch.NewVertex(cx, cy, 0, c))
	for i := range segments + 1 {
		a := 2 * math.Pi * float64(i) / float64(segments)
		out = append(out, batch.NewVertex(
			cx+r*float32(math.Cos(a)), cy+r*float32(math.Sin(a)), 0, c))
	}
	return out
}

// wave is a sine curve across the image.
func wave(w, y, amplitude float32) vertices {
	const samples = 200
	out := make(vertices, 0, samples+1)
	for i := range samples + 1 {
		t := float64(i) / samples
		c := color.RGBA{R: 255, G: uint8(128 + 127*math.Sin(t*math.Pi)), A: 255}
		out = append(out, batch.NewVertex(
			w*float32(t), y+amplitude*float32(math.Sin(t*4*math.Pi)), 0, c))
	}
	return out
}

func grid(w, h float32) vertices {
	var out vertices
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for x := w / 20; x < w; x += w / 20 {
		for y := h / 20; y < h/5; y += h / 20 {
			out = append(out, batch.NewVertex(x, y, 0, white))
		}
	}
	return out
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
