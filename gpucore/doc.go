// Package gpucore provides the backend-neutral GPU buffer abstraction used by
// bufvec.
//
// This package defines the [BufferAdapter] interface, which abstracts over
// different GPU backend implementations so that the same vector code works
// with:
//   - gogpu/wgpu (Pure Go WebGPU via HAL), see backend/native
//   - host memory, see backend/software
//
// # Architecture
//
//	               +-----------------+
//	               |     bufvec      |
//	               | (DeviceContext) |
//	               +--------+--------+
//	                        |
//	               +--------v--------+
//	               |     gpucore     |
//	               | (BufferAdapter) |
//	               +--------+--------+
//	                        |
//	         +--------------+--------------+
//	         |                             |
//	+--------v--------+          +--------v--------+
//	|  native adapter |          | software adapter|
//	|  (hal.Device)   |          |  (host memory)  |
//	+-----------------+          +-----------------+
//
// # Resource Management
//
// GPU buffers are managed via opaque IDs ([BufferID]). Adapters are
// responsible for tracking the mapping between IDs and actual GPU resources.
// Sizes, offsets and write lengths follow WebGPU copy alignment
// ([CopyBufferAlignment]).
package gpucore
