package batch

import "log/slog"

// Option configures a PrimitiveBatch or a queuer during creation.
//
// Example:
//
//	pb, err := batch.NewPrimitiveBatch(drawer,
//	    batch.WithStrategy(batch.Deferred),
//	    batch.WithLogger(logger),
//	)
type Option func(*options)

// options holds optional configuration shared by queuers and PrimitiveBatch.
type options struct {
	strategy QueueingStrategy
	logger   *slog.Logger
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		strategy: Immediate,
		logger:   nil, // falls back to the package logger at log time
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithStrategy sets the queueing strategy a PrimitiveBatch starts with.
// The strategy can still be changed on every Begin call.
func WithStrategy(s QueueingStrategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithLogger sets a logger for one PrimitiveBatch or queuer instead of the
// package-wide logger installed with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// loggerOr returns l if set, otherwise the package logger.
func loggerOr(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return Logger()
}
