package software

import (
	"log/slog"

	"github.com/gogpu/batch"
)

// Option configures a Drawer.
type Option func(*config)

type config struct {
	batchSize int
	pointSize float32
	lineWidth float32
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		batchSize: batch.DefaultBatchSize,
		pointSize: 1,
		lineWidth: 1,
	}
}

// WithBatchSize sets the maximum number of vertices and indices per batch.
func WithBatchSize(n int) Option {
	return func(c *config) {
		c.batchSize = n
	}
}

// WithPointSize sets the edge length in pixels of the square drawn for a point.
func WithPointSize(px float32) Option {
	return func(c *config) {
		if px > 0 {
			c.pointSize = px
		}
	}
}

// WithLineWidth sets the width in pixels of drawn lines.
func WithLineWidth(px float32) Option {
	return func(c *config) {
		if px > 0 {
			c.lineWidth = px
		}
	}
}

// WithLogger sets the drawer's logger. By default the drawer logs through
// batch.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
