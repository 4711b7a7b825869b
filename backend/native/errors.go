//go:build !nogpu

package native

import "errors"

// Adapter errors.
var (
	// ErrNilHALDevice is returned when creating an adapter without a device.
	ErrNilHALDevice = errors.New("native: HAL device is nil")

	// ErrNilHALQueue is returned when creating an adapter without a queue.
	ErrNilHALQueue = errors.New("native: HAL queue is nil")

	// ErrProviderNotHAL is returned when a device provider does not expose
	// HAL device and queue handles.
	ErrProviderNotHAL = errors.New("native: provider does not expose HAL types")

	// ErrInvalidBufferSize is returned when buffer size is invalid.
	ErrInvalidBufferSize = errors.New("native: invalid buffer size")

	// ErrBufferTooLarge is returned when a buffer exceeds the device limit.
	ErrBufferTooLarge = errors.New("native: buffer exceeds device maximum buffer size")

	// ErrBufferNotFound is returned when an ID does not name a live buffer.
	ErrBufferNotFound = errors.New("native: buffer not found")

	// ErrMisalignedWrite is returned when a write offset or size is not copy-aligned.
	ErrMisalignedWrite = errors.New("native: write is not copy-aligned")
)
