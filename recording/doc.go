// Package recording provides a batch drawer that records what it is asked
// to draw instead of drawing it.
//
// A Drawer captures every Select and Draw call as a typed command. Selected
// batches are copied into a BatchPool and referenced by BatchRef, so a
// finished Recording stays valid after the queuer reuses its staging
// arrays. Recordings can be inspected (Commands, Draws, Batches) or played
// back into another batch.BatchDrawer.
//
// # Basic Usage
//
//	rec := recording.NewDrawer[batch.VertexPositionColor](16)
//	q, _ := batch.NewDeferredQueuer[batch.VertexPositionColor](rec)
//
//	q.Begin()
//	q.Queue(strip, 0, len(strip), batch.LineStrip, ctx)
//	q.End()
//
//	for _, d := range rec.Draws() {
//	    fmt.Println(d.Topology, len(d.Vertices))
//	}
//
// # Validation
//
// The drawer checks what a GPU backend would otherwise silently corrupt:
// batches and draw calls larger than the maximum batch size, draws
// without a selected batch, and index or vertex ranges outside the
// selected batch. Violations are returned as errors wrapping
// ErrBatchTooLarge, ErrNoBatch and ErrOutOfBatch.
//
// # Error Injection
//
// Setting SelectErr or DrawErr makes the corresponding calls fail, which
// lets callers test how their code handles backend failures.
package recording
