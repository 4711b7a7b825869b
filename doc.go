// Package bufvec provides growable vectors of GPU-resident buffers.
//
// # Overview
//
// A vector owns one device buffer and replaces its contents wholesale on each
// Update. When new contents do not fit, the vector allocates a larger buffer
// with amortized doubling growth and releases the old one. Capacity never
// shrinks, so per-frame streaming of vertex or index data settles into a
// steady state without allocations.
//
// Two vector types share the same protocol:
//   - Vector stores arbitrary plain element types, e.g. vertex structs
//   - IndexVector stores uint16 or uint32 indices for indexed draws
//
// # Quick Start
//
//	adapter := software.NewAdapter()
//	ctx, err := bufvec.NewDeviceContext(adapter)
//	if err != nil {
//	    return err
//	}
//
//	vertices, err := bufvec.New[Vertex](ctx, bufvec.StreamDraw)
//	if err != nil {
//	    return err
//	}
//	defer vertices.Destroy()
//
//	for frame := range frames {
//	    if _, err := vertices.Update(frame.Vertices); err != nil {
//	        return err
//	    }
//	    draw(vertices.View())
//	}
//
// # Devices
//
// Vectors talk to the device only through the Context interface. DeviceContext
// implements Context on top of a gpucore.BufferAdapter:
//   - backend/native: gogpu/wgpu HAL devices
//   - backend/software: host memory, for CPU fallback and tests
//
// # Views
//
// A View covers the elements written by the last successful Update. Views are
// cheap values that do not own the buffer. A reallocating Update or Destroy
// makes every earlier view stale, which View.Valid and View.Err report.
//
// # Architecture
//
//	Vector[T] / IndexVector[T]
//	        |
//	     Context             (allocation, upload, submit)
//	        |
//	  DeviceContext          (alignment, usage flags)
//	        |
//	gpucore.BufferAdapter
//	   /          \
//	native      software
//
// # Observability
//
// Logging is disabled by default; see SetLogger. Update counters are exposed
// in Prometheus format through WriteMetrics or a custom set passed with
// WithMetrics.
//
// The counters come from github.com/VictoriaMetrics/metrics. On Linux that
// package reads cgroup pressure (PSI) files during its initialization and,
// where they are missing, logs a single "metrics: disable exposing PSI
// metrics" line through the standard log package. The line is harmless and
// appears in every program importing bufvec, before main runs.
package bufvec

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
