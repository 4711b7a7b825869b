//go:build !nogpu

package native

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/bufvec/backend"
	"github.com/gogpu/bufvec/gpucore"
)

// init registers the noop backend on package import.
//
// To make the noop backend available, import this package:
//
//	import _ "github.com/gogpu/bufvec/backend/native"
func init() {
	backend.Register(backend.BackendNoop, func() backend.BufferBackend {
		return &NoopBackend{}
	})
}

// RegisterProvider registers the native backend, allocating buffers on the
// device of provider. The provider must expose its HAL handles, see
// NewHALAdapterFromProvider. A nil limits uses gputypes.DefaultLimits.
func RegisterProvider(provider gpucontext.DeviceProvider, limits *gputypes.Limits) {
	backend.Register(backend.BackendNative, func() backend.BufferBackend {
		return &ProviderBackend{provider: provider, limits: limits}
	})
}

// ProviderBackend is a buffer backend sharing the device of an external
// gpucontext.DeviceProvider. Close releases the backend's buffers but leaves
// the provider's device alive.
type ProviderBackend struct {
	provider gpucontext.DeviceProvider
	limits   *gputypes.Limits
	adapter  *HALAdapter
}

// Name returns the backend identifier.
func (b *ProviderBackend) Name() string {
	return backend.BackendNative
}

// Init creates the HAL adapter over the provider's device.
func (b *ProviderBackend) Init() error {
	if b.adapter != nil {
		return nil
	}
	a, err := NewHALAdapterFromProvider(b.provider, b.limits)
	if err != nil {
		return err
	}
	b.adapter = a
	return nil
}

// Close releases all buffers allocated through the backend.
func (b *ProviderBackend) Close() {
	if b.adapter != nil {
		b.adapter.Destroy()
		b.adapter = nil
	}
}

// Adapter returns the buffer adapter, or nil before Init.
func (b *ProviderBackend) Adapter() gpucore.BufferAdapter {
	if b.adapter == nil {
		return nil
	}
	return b.adapter
}

// NoopBackend is a buffer backend on the gogpu/wgpu noop device. It accepts
// every valid allocation and write without storing data, which makes it
// useful for exercising the HAL path without a GPU.
type NoopBackend struct {
	adapter *HALAdapter
	release func()
}

// Name returns the backend identifier.
func (b *NoopBackend) Name() string {
	return backend.BackendNoop
}

// Init opens a noop device.
func (b *NoopBackend) Init() error {
	if b.adapter != nil {
		return nil
	}

	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return fmt.Errorf("native: create noop instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return fmt.Errorf("native: noop instance has no adapters: %w", backend.ErrBackendNotAvailable)
	}

	limits := gputypes.DefaultLimits()
	openDev, err := adapters[0].Adapter.Open(0, limits)
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("native: open noop device: %w", err)
	}

	a, err := NewHALAdapter(openDev.Device, openDev.Queue, &limits)
	if err != nil {
		openDev.Device.Destroy()
		instance.Destroy()
		return err
	}

	b.adapter = a
	b.release = func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return nil
}

// Close releases the buffers, the device and the instance.
func (b *NoopBackend) Close() {
	if b.adapter == nil {
		return
	}
	b.adapter.Destroy()
	b.release()
	b.adapter = nil
	b.release = nil
}

// Adapter returns the buffer adapter, or nil before Init.
func (b *NoopBackend) Adapter() gpucore.BufferAdapter {
	if b.adapter == nil {
		return nil
	}
	return b.adapter
}
