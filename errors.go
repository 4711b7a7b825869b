package bufvec

import "errors"

// Vector errors.
var (
	// ErrNilContext is returned when creating a vector without a Context.
	ErrNilContext = errors.New("bufvec: context is nil")

	// ErrNegativeCapacity is returned when creating a vector with a negative capacity.
	ErrNegativeCapacity = errors.New("bufvec: negative capacity")

	// ErrDestroyed is returned when updating a vector after Destroy.
	ErrDestroyed = errors.New("bufvec: vector has been destroyed")

	// ErrStaleView is returned by View.Err when the allocation the view was
	// taken from has been replaced by a reallocating Update or destroyed.
	ErrStaleView = errors.New("bufvec: view refers to a replaced or destroyed buffer")

	// ErrInvalidElement is returned for element types that cannot be copied
	// to device memory byte-for-byte.
	ErrInvalidElement = errors.New("bufvec: element type cannot be stored in a device buffer")

	// ErrRangeOutOfBounds is returned when a range exceeds its buffer.
	ErrRangeOutOfBounds = errors.New("bufvec: range out of bounds")
)

// DeviceContext errors.
var (
	// ErrNilAdapter is returned when creating a DeviceContext without an adapter.
	ErrNilAdapter = errors.New("bufvec: adapter is nil")

	// ErrForeignBuffer is returned when a range refers to a buffer that was
	// not allocated by the context it is used with.
	ErrForeignBuffer = errors.New("bufvec: buffer belongs to another context")

	// ErrForeignCommand is returned when submitting a command that was not
	// built by the context it is submitted to.
	ErrForeignCommand = errors.New("bufvec: command belongs to another context")

	// ErrBufferDestroyed is returned when uploading to a destroyed buffer.
	ErrBufferDestroyed = errors.New("bufvec: buffer has been destroyed")

	// ErrCommandSubmitted is returned when a command is submitted twice.
	ErrCommandSubmitted = errors.New("bufvec: command already submitted or discarded")

	// ErrUploadTooLarge is returned when upload data does not fit its range.
	ErrUploadTooLarge = errors.New("bufvec: upload data larger than destination range")

	// ErrInvalidBufferSize is returned for negative element counts, empty
	// elements or sizes that overflow.
	ErrInvalidBufferSize = errors.New("bufvec: invalid buffer size")

	// ErrMisalignedRange is returned when a range does not start at a byte
	// offset the device can write to.
	ErrMisalignedRange = errors.New("bufvec: range offset is not copy-aligned")

	// ErrReadbackUnsupported is returned when the adapter cannot read buffers back.
	ErrReadbackUnsupported = errors.New("bufvec: adapter does not support readback")
)
