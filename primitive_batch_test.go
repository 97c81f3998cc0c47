package batch_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/batch"
	"github.com/gogpu/batch/recording"
)

func TestPrimitiveBatchStrategies(t *testing.T) {
	tests := []struct {
		strategy  batch.QueueingStrategy
		wantDraws int
	}{
		{batch.Immediate, 4},
		{batch.Deferred, 1},
	}
	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			rec := recording.NewDrawer[int](64)
			pb, err := batch.NewPrimitiveBatch[int](rec)
			if err != nil {
				t.Fatal(err)
			}
			if err := pb.Begin(tt.strategy); err != nil {
				t.Fatal(err)
			}
			for i := range 4 {
				if err := pb.Draw(values(3*i, 3), batch.TriangleList, ctx(1)); err != nil {
					t.Fatal(err)
				}
			}
			if err := pb.End(); err != nil {
				t.Fatal(err)
			}
			if rec.DrawCount() != tt.wantDraws {
				t.Errorf("DrawCount() = %d, want %d", rec.DrawCount(), tt.wantDraws)
			}
			if pb.Strategy() != tt.strategy {
				t.Errorf("Strategy() = %v, want %v", pb.Strategy(), tt.strategy)
			}
		})
	}
}

func TestPrimitiveBatchSwitchesStrategy(t *testing.T) {
	rec := recording.NewDrawer[int](64)
	pb, _ := batch.NewPrimitiveBatch[int](rec, batch.WithStrategy(batch.Deferred))
	if pb.Strategy() != batch.Deferred {
		t.Errorf("initial Strategy() = %v, want Deferred", pb.Strategy())
	}

	for _, s := range []batch.QueueingStrategy{batch.Deferred, batch.Immediate, batch.Deferred} {
		if err := pb.Begin(s); err != nil {
			t.Fatal(err)
		}
		_ = pb.DrawRange(values(0, 10), 2, 4, batch.LineList, ctx(1))
		_ = pb.DrawIndexed(values(0, 4), []uint16{0, 1, 2, 3}, batch.LineList, ctx(1))
		if err := pb.End(); err != nil {
			t.Fatal(err)
		}
	}
	// Deferred cycles merge both runs, the immediate one draws each.
	if got := rec.DrawCount(); got != 4 {
		t.Errorf("DrawCount() = %d, want 4", got)
	}
}

func TestPrimitiveBatchLifecycleErrors(t *testing.T) {
	rec := recording.NewDrawer[int](16)
	pb, _ := batch.NewPrimitiveBatch[int](rec)

	if err := pb.Draw(values(0, 3), batch.TriangleList, ctx(1)); !errors.Is(err, batch.ErrNotBegun) {
		t.Errorf("Draw before Begin = %v, want ErrNotBegun", err)
	}
	if err := pb.End(); !errors.Is(err, batch.ErrNotBegun) {
		t.Errorf("End before Begin = %v, want ErrNotBegun", err)
	}
	if err := pb.Begin(batch.QueueingStrategy(2)); !errors.Is(err, batch.ErrInvalidStrategy) {
		t.Errorf("Begin(2) = %v, want ErrInvalidStrategy", err)
	}
	if err := pb.Begin(batch.Deferred); err != nil {
		t.Fatal(err)
	}
	if err := pb.Begin(batch.Deferred); !errors.Is(err, batch.ErrAlreadyBegun) {
		t.Errorf("second Begin = %v, want ErrAlreadyBegun", err)
	}
	_ = pb.Draw(values(0, 3), batch.TriangleList, ctx(1))

	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
	if !rec.Closed() {
		t.Error("Close must close a drawer implementing io.Closer")
	}
	if rec.DrawCount() != 0 {
		t.Error("Close must abandon the open cycle without drawing")
	}
	if err := pb.Begin(batch.Immediate); !errors.Is(err, batch.ErrClosed) {
		t.Errorf("Begin after Close = %v, want ErrClosed", err)
	}
	if err := pb.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
}

func TestNewPrimitiveBatchErrors(t *testing.T) {
	if _, err := batch.NewPrimitiveBatch[int](nil); !errors.Is(err, batch.ErrNilDrawer) {
		t.Errorf("nil drawer = %v, want ErrNilDrawer", err)
	}
	rec := recording.NewDrawer[int](16)
	if _, err := batch.NewPrimitiveBatch[int](rec, batch.WithStrategy(7)); !errors.Is(err, batch.ErrInvalidStrategy) {
		t.Errorf("strategy 7 = %v, want ErrInvalidStrategy", err)
	}
	if _, err := batch.NewPrimitiveBatch[int](recording.NewDrawer[int](2)); !errors.Is(err, batch.ErrInvalidBatchSize) {
		t.Errorf("batch size 2 = %v, want ErrInvalidBatchSize", err)
	}
}

func TestParseQueueingStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want batch.QueueingStrategy
		err  bool
	}{
		{"immediate", batch.Immediate, false},
		{"deferred", batch.Deferred, false},
		{"sorted", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := batch.ParseQueueingStrategy(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseQueueingStrategy(%q) error = %v, want error %v", tt.in, err, tt.err)
			continue
		}
		if err != nil && !errors.Is(err, batch.ErrInvalidStrategy) {
			t.Errorf("ParseQueueingStrategy(%q) error = %v, want ErrInvalidStrategy", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseQueueingStrategy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func ExamplePrimitiveBatch() {
	rec := recording.NewDrawer[int](8)
	pb, err := batch.NewPrimitiveBatch[int](rec)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer pb.Close()

	strip := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	_ = pb.Begin(batch.Deferred)
	_ = pb.Draw(strip, batch.TriangleStrip, ctx(1))
	_ = pb.End()

	for _, b := range rec.Batches() {
		fmt.Println(b)
	}
	// Output:
	// [0 1 2 3 4 5 6]
	// [5 6 7 8 9 10 11]
}
