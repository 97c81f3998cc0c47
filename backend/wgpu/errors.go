package wgpu

import "errors"

var (
	// ErrNilDevice is returned when a drawer is created without a device or queue.
	ErrNilDevice = errors.New("wgpu: device or queue is nil")

	// ErrNoRenderPass is returned when a batch is selected outside BeginPass/EndPass.
	ErrNoRenderPass = errors.New("wgpu: no render pass, call BeginPass first")

	// ErrDivisionsExhausted is returned when a render pass selects more
	// batches than the drawer has buffer divisions.
	ErrDivisionsExhausted = errors.New("wgpu: all buffer divisions used in this pass")

	// ErrUnsupportedContext is returned for draw contexts that do not
	// implement PassBinder.
	ErrUnsupportedContext = errors.New("wgpu: draw context does not implement PassBinder")

	// ErrNoBatch is returned by draw calls without a selected batch.
	ErrNoBatch = errors.New("wgpu: no batch selected")

	// ErrBatchTooLarge is returned when a batch exceeds the drawer's batch size.
	ErrBatchTooLarge = errors.New("wgpu: batch exceeds batch size")

	// ErrProviderNotHAL is returned when a device provider does not expose
	// HAL device and queue objects.
	ErrProviderNotHAL = errors.New("wgpu: provider does not expose HAL types")

	// ErrClosed is returned when a closed drawer is used.
	ErrClosed = errors.New("wgpu: drawer is closed")
)
