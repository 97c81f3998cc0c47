package batch

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so the Debug calls
// on the flush path cost one atomic load and nothing else.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the package logger shared by the queuers and the drawers
// in backend/wgpu, backend/software and debugdraw.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger routes the diagnostics of batch, its drawers and debugdraw to
// l. Queuers and drawers created with their own WithLogger option keep
// that logger. A nil l silences logging again, which is the default.
//
// What is logged:
//   - [slog.LevelDebug]: "batch: flushed" (vertices, indices, operations),
//     "batch: run split" (topology, vertices, fragments),
//     "batch: immediate draw", division selection in backend/wgpu
//   - [slog.LevelInfo]: GPU buffers created and released by backend/wgpu
//   - [slog.LevelWarn]: debugdraw shapes dropped because the drawer was full
//
// Example:
//
//	batch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
//
// SetLogger may be called while other goroutines are drawing.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the package logger. Drawers without their own logger
// log through it.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
