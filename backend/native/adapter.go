//go:build !nogpu

// Package native provides a Pure Go GPU buffer backend using gogpu/wgpu.
package native

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/bufvec"
	"github.com/gogpu/bufvec/gpucore"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// bufferDevice is the part of hal.Device the adapter uses.
type bufferDevice interface {
	CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error)
	DestroyBuffer(buffer hal.Buffer)
}

// halProvider is implemented by device providers that can hand out their
// HAL device and queue, e.g. a gogpu application.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// HALAdapter implements gpucore.BufferAdapter using gogpu/wgpu/hal directly.
//
// Writes go through hal.Queue.WriteBuffer, so they execute in queue order
// relative to command buffers submitted on the same queue.
//
// Thread Safety: HALAdapter is safe for concurrent use from multiple goroutines.
// All resource operations are protected by a mutex.
type HALAdapter struct {
	mu     sync.RWMutex
	device bufferDevice
	write  func(buffer hal.Buffer, offset uint64, data []byte)

	maxBufferSize uint64

	// ID generation
	nextID atomic.Uint64

	// Resource tracking maps gpucore IDs to hal buffers
	buffers map[gpucore.BufferID]hal.Buffer
}

// NewHALAdapter creates a new HALAdapter wrapping the given device and queue.
// The limits parameter provides the device's limits.
// If limits is nil, default limits are used.
func NewHALAdapter(device hal.Device, queue hal.Queue, limits *gputypes.Limits) (*HALAdapter, error) {
	if device == nil {
		return nil, ErrNilHALDevice
	}
	if queue == nil {
		return nil, ErrNilHALQueue
	}

	write := func(buffer hal.Buffer, offset uint64, data []byte) {
		queue.WriteBuffer(buffer, offset, data)
	}
	return newHALAdapter(device, write, limits), nil
}

// NewHALAdapterFromProvider creates a HALAdapter sharing the device and queue
// of an external provider, e.g. a gogpu window. This avoids creating a
// separate GPU instance.
//
// The provider must also implement HalDevice() any and HalQueue() any,
// returning hal.Device and hal.Queue.
func NewHALAdapterFromProvider(provider gpucontext.DeviceProvider, limits *gputypes.Limits) (*HALAdapter, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrProviderNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrProviderNotHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrProviderNotHAL)
	}

	bufvec.Logger().Info("native: using shared GPU device")
	return NewHALAdapter(device, queue, limits)
}

func newHALAdapter(device bufferDevice, write func(hal.Buffer, uint64, []byte), limits *gputypes.Limits) *HALAdapter {
	var lim gputypes.Limits
	if limits != nil {
		lim = *limits
	} else {
		lim = gputypes.DefaultLimits()
	}

	a := &HALAdapter{
		device:        device,
		write:         write,
		maxBufferSize: lim.MaxBufferSize,
		buffers:       make(map[gpucore.BufferID]hal.Buffer),
	}

	// Start ID generation at 1 (0 is invalid)
	a.nextID.Store(1)

	return a
}

// newID generates a unique resource ID.
func (a *HALAdapter) newID() gpucore.BufferID {
	return gpucore.BufferID(a.nextID.Add(1) - 1)
}

// MaxBufferSize returns the maximum buffer size in bytes.
func (a *HALAdapter) MaxBufferSize() uint64 {
	return a.maxBufferSize
}

// CreateBuffer creates a GPU buffer.
func (a *HALAdapter) CreateBuffer(size uint64, usage gpucore.BufferUsage, label string) (gpucore.BufferID, error) {
	if size == 0 {
		return gpucore.InvalidID, fmt.Errorf("%w: size is 0", ErrInvalidBufferSize)
	}
	if usage == 0 {
		return gpucore.InvalidID, fmt.Errorf("%w: usage is empty", ErrInvalidBufferSize)
	}

	alignedSize := gpucore.AlignSize(size)
	if a.maxBufferSize > 0 && alignedSize > a.maxBufferSize {
		return gpucore.InvalidID, fmt.Errorf("%w: %d > %d", ErrBufferTooLarge, alignedSize, a.maxBufferSize)
	}

	buffer, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  alignedSize,
		Usage: convertBufferUsage(usage),
	})
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("failed to create buffer: %w", err)
	}

	id := a.newID()

	a.mu.Lock()
	a.buffers[id] = buffer
	a.mu.Unlock()

	bufvec.Logger().Debug("native: buffer created", "id", uint64(id), "label", label, "bytes", alignedSize)

	return id, nil
}

// DestroyBuffer releases a GPU buffer.
func (a *HALAdapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	buffer, ok := a.buffers[id]
	if ok {
		delete(a.buffers, id)
	}
	a.mu.Unlock()

	if ok {
		a.device.DestroyBuffer(buffer)
	}
}

// WriteBuffer writes data to a buffer through the queue.
func (a *HALAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	size := uint64(len(data))
	if offset%gpucore.CopyBufferAlignment != 0 || size%gpucore.CopyBufferAlignment != 0 {
		return fmt.Errorf("%w: offset %d, size %d", ErrMisalignedWrite, offset, size)
	}

	a.mu.RLock()
	buffer, ok := a.buffers[id]
	a.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %d", ErrBufferNotFound, id)
	}
	if size > 0 {
		a.write(buffer, offset, data)
	}
	return nil
}

// BufferCount returns the number of live buffers.
func (a *HALAdapter) BufferCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.buffers)
}

// Destroy releases every buffer still tracked by the adapter.
// The device and queue are not destroyed.
func (a *HALAdapter) Destroy() {
	a.mu.Lock()
	buffers := a.buffers
	a.buffers = make(map[gpucore.BufferID]hal.Buffer)
	a.mu.Unlock()

	for _, buffer := range buffers {
		a.device.DestroyBuffer(buffer)
	}
}

// convertBufferUsage converts gpucore.BufferUsage to gputypes.BufferUsage.
func convertBufferUsage(usage gpucore.BufferUsage) gputypes.BufferUsage {
	var result gputypes.BufferUsage

	if usage&gpucore.BufferUsageMapRead != 0 {
		result |= gputypes.BufferUsageMapRead
	}
	if usage&gpucore.BufferUsageMapWrite != 0 {
		result |= gputypes.BufferUsageMapWrite
	}
	if usage&gpucore.BufferUsageCopySrc != 0 {
		result |= gputypes.BufferUsageCopySrc
	}
	if usage&gpucore.BufferUsageCopyDst != 0 {
		result |= gputypes.BufferUsageCopyDst
	}
	if usage&gpucore.BufferUsageIndex != 0 {
		result |= gputypes.BufferUsageIndex
	}
	if usage&gpucore.BufferUsageVertex != 0 {
		result |= gputypes.BufferUsageVertex
	}
	if usage&gpucore.BufferUsageUniform != 0 {
		result |= gputypes.BufferUsageUniform
	}
	if usage&gpucore.BufferUsageStorage != 0 {
		result |= gputypes.BufferUsageStorage
	}
	if usage&gpucore.BufferUsageIndirect != 0 {
		result |= gputypes.BufferUsageIndirect
	}

	return result
}
