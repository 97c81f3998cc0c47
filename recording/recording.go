package recording

import (
	"fmt"

	"github.com/gogpu/batch"
)

// Draw is one recorded draw call with its vertices resolved: Vertices[i]
// is the i-th vertex the call walks through, after applying the base
// vertex and, for indexed draws, the index buffer.
type Draw[V any] struct {
	Topology batch.Topology
	Context  batch.DrawContext
	Vertices []V
}

// Recording is an immutable sequence of recorded batch drawer commands.
type Recording[V any] struct {
	size     int
	commands []Command
	pool     *BatchPool[V]
}

// MaximumBatchSize returns the batch size of the drawer that was recorded.
func (r *Recording[V]) MaximumBatchSize() int {
	return r.size
}

// Commands returns the recorded commands.
func (r *Recording[V]) Commands() []Command {
	return r.commands
}

// Batches returns the pool holding the selected batches.
func (r *Recording[V]) Batches() *BatchPool[V] {
	return r.pool
}

// Draws returns every recorded draw call with its vertices resolved.
func (r *Recording[V]) Draws() []Draw[V] {
	return resolveDraws(r.commands, r.pool)
}

// Playback replays the recording into drawer. The drawer's maximum batch
// size must be at least the recorded one.
func (r *Recording[V]) Playback(drawer batch.BatchDrawer[V]) error {
	if size := drawer.MaximumBatchSize(); size < r.size {
		return fmt.Errorf("%w: playback drawer holds %d, recording needs %d",
			ErrBatchTooLarge, size, r.size)
	}

	for _, cmd := range r.commands {
		var err error
		switch c := cmd.(type) {
		case SelectCommand:
			b, _ := r.pool.Get(c.Batch)
			if c.Indexed {
				err = drawer.SelectIndexed(b.Vertices, b.Indices)
			} else {
				err = drawer.Select(b.Vertices)
			}
		case DrawCommand:
			if c.Indexed {
				err = drawer.DrawIndexed(c.BaseVertex, c.VertexCount, c.StartIndex, c.IndexCount, c.Topology, c.Context)
			} else {
				err = drawer.Draw(c.BaseVertex, c.VertexCount, c.Topology, c.Context)
			}
		}
		if err != nil {
			return fmt.Errorf("recording: playback %s: %w", cmd.Type(), err)
		}
	}
	return nil
}

func resolveDraws[V any](commands []Command, pool *BatchPool[V]) []Draw[V] {
	var draws []Draw[V]
	for _, cmd := range commands {
		c, ok := cmd.(DrawCommand)
		if !ok {
			continue
		}
		b, _ := pool.Get(c.Batch)
		d := Draw[V]{
			Topology: c.Topology,
			Context:  c.Context,
			Vertices: make([]V, 0, c.ElementCount()),
		}
		if c.Indexed {
			for _, index := range b.Indices[c.StartIndex : c.StartIndex+c.IndexCount] {
				d.Vertices = append(d.Vertices, b.Vertices[c.BaseVertex+int(index)])
			}
		} else {
			d.Vertices = append(d.Vertices, b.Vertices[c.BaseVertex:c.BaseVertex+c.VertexCount]...)
		}
		draws = append(draws, d)
	}
	return draws
}
