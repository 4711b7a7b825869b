package gpucore

// BufferAdapter abstracts over the buffer management of different GPU backend
// implementations.
//
// Implementations must be safe for concurrent use.
//
// Resource lifecycle:
//   - Buffers are created via CreateBuffer
//   - Buffers must be explicitly destroyed via DestroyBuffer
//   - Destroying a buffer while in use is undefined behavior
//   - IDs become invalid after destruction and must not be reused
type BufferAdapter interface {
	// MaxBufferSize returns the maximum buffer size in bytes.
	MaxBufferSize() uint64

	// CreateBuffer creates an uninitialized GPU buffer.
	//
	// Parameters:
	//   - size: buffer size in bytes, must be positive
	//   - usage: buffer usage flags (bitmask of BufferUsage*)
	//   - label: optional debug label
	//
	// Returns the buffer ID or an error if allocation fails.
	CreateBuffer(size uint64, usage BufferUsage, label string) (BufferID, error)

	// DestroyBuffer releases a GPU buffer. Unknown IDs are ignored.
	DestroyBuffer(id BufferID)

	// WriteBuffer schedules a write of data into a buffer on the adapter's
	// queue. Writes are executed in submission order.
	//
	// Parameters:
	//   - id: target buffer
	//   - offset: byte offset into the buffer, multiple of 4
	//   - data: data to write, length multiple of 4
	WriteBuffer(id BufferID, offset uint64, data []byte) error
}

// BufferReader is implemented by adapters that can read buffer contents back
// to the host.
type BufferReader interface {
	// ReadBuffer reads data from a buffer.
	// This may cause a GPU-CPU synchronization stall.
	//
	// Parameters:
	//   - id: source buffer
	//   - offset: byte offset into the buffer
	//   - size: number of bytes to read
	//
	// Returns the data or an error if reading fails.
	ReadBuffer(id BufferID, offset, size uint64) ([]byte, error)
}

// CopyBufferAlignment is the alignment, in bytes, of buffer sizes, write
// offsets and write sizes.
const CopyBufferAlignment uint64 = 4

// AlignSize rounds size up to a multiple of CopyBufferAlignment.
func AlignSize(size uint64) uint64 {
	return (size + CopyBufferAlignment - 1) &^ (CopyBufferAlignment - 1)
}
