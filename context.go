package bufvec

// Context is the graphics device capability a vector is built on.
//
// A Context allocates device buffers, builds upload commands and submits them
// for execution. Vectors never talk to a device directly; any backend that
// implements Context can host them. [DeviceContext] implements Context on top
// of a [gpucore.BufferAdapter].
//
// Allocation and submission errors are returned unmodified to the caller of
// the vector operation that triggered them.
//
// A Context handed to a vector is owned by that vector for its lifetime, but
// Vector.Destroy does not destroy it.
type Context interface {
	// CreateBuffer allocates an uninitialized buffer of n elements, each
	// elemSize bytes long. n may be 0.
	CreateBuffer(n, elemSize int, usage UsageHint, label string) (Buffer, error)

	// CreateIndexBuffer allocates an uninitialized buffer of n indices in the
	// given format. n may be 0.
	CreateIndexBuffer(n int, format IndexFormat, usage UsageHint, label string) (Buffer, error)

	// Upload builds a command that copies data into dst. The command does
	// nothing until it is submitted. data must not be longer than dst.
	Upload(dst Range, data []byte) (Command, error)

	// Submit schedules cmd for execution and returns once the submission has
	// been accepted, not once the copy has completed. Commands submitted
	// later on the same Context observe its effects.
	Submit(cmd Command) error
}

// Buffer is a device-side allocation holding a fixed number of elements.
type Buffer interface {
	// Len returns the number of elements the buffer holds.
	Len() int

	// ElemSize returns the size of one element in bytes.
	ElemSize() int

	// Usage returns the hint the buffer was allocated with.
	Usage() UsageHint

	// Destroy releases the device allocation. It is idempotent.
	Destroy()
}

// Command is an encoded device operation waiting for submission.
type Command interface {
	// Discard releases a command that will not be submitted.
	Discard()
}
