package wgpu

import (
	"log/slog"

	"github.com/gogpu/batch"
)

// DefaultDivisions is the default number of buffer divisions.
const DefaultDivisions = 4

// Option configures a Drawer.
type Option func(*config)

type config struct {
	batchSize int
	divisions int
	label     string
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		batchSize: batch.DefaultBatchSize,
		divisions: DefaultDivisions,
		label:     "batch",
	}
}

// WithBatchSize sets the number of vertices and indices per batch.
// Values outside [batch.MinimumBatchSize, batch.MaximumBatchSize] make
// NewDrawer fail with batch.ErrInvalidBatchSize.
func WithBatchSize(n int) Option {
	return func(c *config) {
		c.batchSize = n
	}
}

// WithDivisions sets how many batches can be selected per render pass.
func WithDivisions(n int) Option {
	return func(c *config) {
		c.divisions = n
	}
}

// WithLabel sets the debug label prefix of the drawer's GPU objects.
func WithLabel(label string) Option {
	return func(c *config) {
		c.label = label
	}
}

// WithLogger sets the drawer's logger. By default the drawer logs through
// batch.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
