// Package backend provides a pluggable buffer backend abstraction.
//
// The backend package allows bufvec to allocate device buffers from multiple
// implementations. Each backend opens a device and hands out a
// gpucore.BufferAdapter, which bufvec.NewDeviceContext turns into a Context
// for vectors.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The software backend is automatically registered on import:
//
//	import _ "github.com/gogpu/bufvec/backend"
//
// The noop backend is registered by the native package, and the native
// backend is registered by the application once it has a GPU device:
//
//	native.RegisterProvider(app) // gpucontext.DeviceProvider
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get("software")
//
// # Usage with Vectors
//
//	b, err := backend.InitDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	ctx, err := bufvec.NewDeviceContext(b.Adapter())
//
// # Available Backends
//
//   - "native": GPU buffers via gogpu/wgpu HAL (registered by the application)
//   - "software": host-memory buffers (always available)
//   - "noop": gogpu/wgpu noop device, validation only
package backend
