package backend

import (
	"errors"

	"github.com/gogpu/bufvec/gpucore"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// BufferBackend is the interface for buffer backends.
// It abstracts the device a gpucore.BufferAdapter allocates from, allowing
// bufvec to run on GPUs, on host memory, or on a validation-only device.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type BufferBackend interface {
	// Name returns the backend identifier (e.g., "software", "native").
	Name() string

	// Init opens the backend's device.
	// This must be called before Adapter.
	Init() error

	// Close releases the adapter and every buffer it still holds.
	// The backend should not be used after Close is called.
	Close()

	// Adapter returns the buffer adapter of an initialized backend, or nil
	// before Init.
	Adapter() gpucore.BufferAdapter
}
