package wgpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// halProvider is implemented by device providers that expose the HAL
// objects behind their gpucontext handles.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// HALFromProvider returns the HAL device and queue of provider.
func HALFromProvider(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	if provider == nil {
		return nil, nil, ErrNilDevice
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %T", ErrProviderNotHAL, provider)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrProviderNotHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrProviderNotHAL)
	}
	return device, queue, nil
}

// NewDrawerFromProvider creates a drawer sharing the device and queue of a
// host application. The drawer does not own the device.
func NewDrawerFromProvider[V any](provider gpucontext.DeviceProvider, format VertexFormat[V], opts ...Option) (*Drawer[V], error) {
	device, queue, err := HALFromProvider(provider)
	if err != nil {
		return nil, err
	}
	return NewDrawer(device, queue, format, opts...)
}

// NewPipelineContextFromProvider creates pipelines targeting the
// provider's surface format. desc.Format is overridden unless the provider
// reports an undefined format.
func NewPipelineContextFromProvider(provider gpucontext.DeviceProvider, desc PipelineDescriptor) (*PipelineContext, error) {
	device, _, err := HALFromProvider(provider)
	if err != nil {
		return nil, err
	}
	if f := provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		desc.Format = f
	}
	return NewPipelineContext(device, desc)
}
