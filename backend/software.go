package backend

import (
	"github.com/gogpu/bufvec/backend/software"
	"github.com/gogpu/bufvec/gpucore"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the host-memory backend.
	BackendSoftware = "software"
	// BackendNative is the name of the Pure Go GPU backend (gogpu/wgpu).
	BackendNative = "native"
	// BackendNoop is the name of the gogpu/wgpu noop device backend. It
	// validates allocations and writes but stores nothing.
	BackendNoop = "noop"
)

// SoftwareBackend is a host-memory buffer backend.
// It wraps a software.Adapter, created on Init.
type SoftwareBackend struct {
	opts    []software.Option
	adapter *software.Adapter
}

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() BufferBackend {
		return &SoftwareBackend{}
	})
}

// NewSoftwareBackend creates a new software backend. The options are passed
// to software.NewAdapter on Init.
func NewSoftwareBackend(opts ...software.Option) *SoftwareBackend {
	return &SoftwareBackend{opts: opts}
}

// Name returns the backend identifier.
func (b *SoftwareBackend) Name() string {
	return BackendSoftware
}

// Init creates the host-memory adapter. Calling Init again is a no-op.
func (b *SoftwareBackend) Init() error {
	if b.adapter == nil {
		b.adapter = software.NewAdapter(b.opts...)
	}
	return nil
}

// Close releases all backend resources.
func (b *SoftwareBackend) Close() {
	if b.adapter != nil {
		b.adapter.Close()
		b.adapter = nil
	}
}

// Adapter returns the buffer adapter, or nil before Init.
func (b *SoftwareBackend) Adapter() gpucore.BufferAdapter {
	if b.adapter == nil {
		return nil
	}
	return b.adapter
}

// SoftwareAdapter returns the underlying software adapter for readback and
// statistics. Returns nil before Init.
func (b *SoftwareBackend) SoftwareAdapter() *software.Adapter {
	return b.adapter
}
