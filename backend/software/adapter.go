package software

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/bufvec"
	"github.com/gogpu/bufvec/gpucore"
)

// Adapter errors.
var (
	// ErrMemoryBudgetExceeded is returned when an allocation would exceed the budget.
	ErrMemoryBudgetExceeded = errors.New("software: memory budget exceeded")

	// ErrBufferTooLarge is returned when a single buffer exceeds the maximum buffer size.
	ErrBufferTooLarge = errors.New("software: buffer exceeds maximum buffer size")

	// ErrInvalidBufferSize is returned when buffer size is invalid.
	ErrInvalidBufferSize = errors.New("software: invalid buffer size")

	// ErrBufferNotFound is returned when an ID does not name a live buffer.
	ErrBufferNotFound = errors.New("software: buffer not found")

	// ErrAdapterClosed is returned when operating on a closed adapter.
	ErrAdapterClosed = errors.New("software: adapter closed")

	// ErrInvalidRange is returned when a write or read is out of bounds or misaligned.
	ErrInvalidRange = errors.New("software: range out of bounds")
)

// Default limits.
const (
	// DefaultBudget is the default memory budget (256 MB).
	DefaultBudget uint64 = 256 << 20

	// DefaultMaxBufferSize is the default maximum size of one buffer (256 MB),
	// matching the WebGPU default limit.
	DefaultMaxBufferSize uint64 = 256 << 20
)

// Stats contains adapter usage statistics.
type Stats struct {
	// BudgetBytes is the total memory budget in bytes.
	BudgetBytes uint64

	// UsedBytes is the currently allocated memory in bytes.
	UsedBytes uint64

	// BufferCount is the number of live buffers.
	BufferCount int

	// Allocations is the total number of buffers created.
	Allocations uint64

	// Writes is the total number of WriteBuffer calls that wrote data.
	Writes uint64
}

// String returns a human-readable string of adapter stats.
func (s Stats) String() string {
	var utilization float64
	if s.BudgetBytes > 0 {
		utilization = float64(s.UsedBytes) / float64(s.BudgetBytes)
	}
	return fmt.Sprintf("Memory[%.1f%% used, %d/%d bytes, %d buffers, %d allocations, %d writes]",
		utilization*100, s.UsedBytes, s.BudgetBytes, s.BufferCount, s.Allocations, s.Writes)
}

type buffer struct {
	label string
	usage gpucore.BufferUsage
	data  []byte
}

// Adapter is a host-memory gpucore.BufferAdapter.
//
// Adapter is safe for concurrent use.
type Adapter struct {
	mu sync.RWMutex

	budget  uint64
	maxSize uint64
	used    uint64

	nextID  gpucore.BufferID
	buffers map[gpucore.BufferID]*buffer

	allocations uint64
	writes      uint64

	closed bool
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithBudget sets the total memory budget in bytes.
// Values of 0 keep DefaultBudget.
func WithBudget(bytes uint64) Option {
	return func(a *Adapter) {
		if bytes > 0 {
			a.budget = bytes
		}
	}
}

// WithMaxBufferSize sets the maximum size of a single buffer in bytes.
// Values of 0 keep DefaultMaxBufferSize.
func WithMaxBufferSize(bytes uint64) Option {
	return func(a *Adapter) {
		if bytes > 0 {
			a.maxSize = bytes
		}
	}
}

// NewAdapter creates a host-memory adapter.
func NewAdapter(opts ...Option) *Adapter {
	a := &Adapter{
		budget:  DefaultBudget,
		maxSize: DefaultMaxBufferSize,
		nextID:  1, // 0 is gpucore.InvalidID
		buffers: make(map[gpucore.BufferID]*buffer),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// MaxBufferSize returns the maximum buffer size in bytes.
func (a *Adapter) MaxBufferSize() uint64 {
	return a.maxSize
}

// CreateBuffer allocates a zero-filled buffer of size bytes.
func (a *Adapter) CreateBuffer(size uint64, usage gpucore.BufferUsage, label string) (gpucore.BufferID, error) {
	if size == 0 {
		return gpucore.InvalidID, fmt.Errorf("%w: size is 0", ErrInvalidBufferSize)
	}
	if size%gpucore.CopyBufferAlignment != 0 {
		return gpucore.InvalidID, fmt.Errorf("%w: size %d is not %d-byte aligned",
			ErrInvalidBufferSize, size, gpucore.CopyBufferAlignment)
	}
	if size > a.maxSize {
		return gpucore.InvalidID, fmt.Errorf("%w: %d > %d", ErrBufferTooLarge, size, a.maxSize)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return gpucore.InvalidID, ErrAdapterClosed
	}
	if size > a.budget-a.used {
		return gpucore.InvalidID, fmt.Errorf("%w: %d bytes requested, %d of %d in use",
			ErrMemoryBudgetExceeded, size, a.used, a.budget)
	}

	id := a.nextID
	a.nextID++
	a.buffers[id] = &buffer{label: label, usage: usage, data: make([]byte, size)}
	a.used += size
	a.allocations++

	return id, nil
}

// DestroyBuffer releases a buffer and returns its memory to the budget.
func (a *Adapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	closed := a.closed
	buf, ok := a.buffers[id]
	if ok {
		delete(a.buffers, id)
		a.used -= uint64(len(buf.data))
	}
	a.mu.Unlock()

	// Close already released everything.
	if !ok && !closed {
		bufvec.Logger().Warn("software: destroy of unknown buffer", "id", uint64(id))
	}
}

// WriteBuffer copies data into a buffer at offset.
func (a *Adapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrAdapterClosed
	}
	buf, ok := a.buffers[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrBufferNotFound, id)
	}
	size := uint64(len(data))
	if offset%gpucore.CopyBufferAlignment != 0 || size%gpucore.CopyBufferAlignment != 0 {
		return fmt.Errorf("%w: offset %d, size %d must be %d-byte aligned",
			ErrInvalidRange, offset, size, gpucore.CopyBufferAlignment)
	}
	if offset > uint64(len(buf.data)) || size > uint64(len(buf.data))-offset {
		return fmt.Errorf("%w: offset %d + size %d > buffer size %d",
			ErrInvalidRange, offset, size, len(buf.data))
	}
	if size == 0 {
		return nil
	}

	copy(buf.data[offset:], data)
	a.writes++
	return nil
}

// ReadBuffer returns a copy of size bytes of a buffer starting at offset.
func (a *Adapter) ReadBuffer(id gpucore.BufferID, offset, size uint64) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return nil, ErrAdapterClosed
	}
	buf, ok := a.buffers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrBufferNotFound, id)
	}
	if offset > uint64(len(buf.data)) || size > uint64(len(buf.data))-offset {
		return nil, fmt.Errorf("%w: offset %d + size %d > buffer size %d",
			ErrInvalidRange, offset, size, len(buf.data))
	}

	out := make([]byte, size)
	copy(out, buf.data[offset:offset+size])
	return out, nil
}

// Usage returns the usage flags a live buffer was created with.
func (a *Adapter) Usage(id gpucore.BufferID) (gpucore.BufferUsage, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	buf, ok := a.buffers[id]
	if !ok {
		return 0, false
	}
	return buf.usage, true
}

// Stats returns current usage statistics.
func (a *Adapter) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return Stats{
		BudgetBytes: a.budget,
		UsedBytes:   a.used,
		BufferCount: len(a.buffers),
		Allocations: a.allocations,
		Writes:      a.writes,
	}
}

// Close releases all buffers. Later operations fail with ErrAdapterClosed.
// Close is idempotent.
func (a *Adapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.closed = true
	a.buffers = nil
	a.used = 0
}
