package bufvec

import (
	"fmt"
	"unsafe"
)

// IndexFormat is the element format of an index buffer.
type IndexFormat uint8

// Index formats.
const (
	// IndexFormatUndefined marks a buffer that does not hold indices.
	IndexFormatUndefined IndexFormat = iota
	// IndexFormatUint16 is 16-bit unsigned integer indices.
	IndexFormatUint16
	// IndexFormatUint32 is 32-bit unsigned integer indices.
	IndexFormatUint32
)

// String returns the string representation of IndexFormat.
func (f IndexFormat) String() string {
	switch f {
	case IndexFormatUndefined:
		return "Undefined"
	case IndexFormatUint16:
		return "Uint16"
	case IndexFormatUint32:
		return "Uint32"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// Size returns the size of one index in bytes, or 0 for an undefined format.
func (f IndexFormat) Size() int {
	switch f {
	case IndexFormatUint16:
		return 2
	case IndexFormatUint32:
		return 4
	default:
		return 0
	}
}

// Index is the set of element types that can be used as vertex indices in an
// indexed draw.
type Index interface {
	~uint16 | ~uint32
}

// IndexFormatOf returns the index format matching T.
func IndexFormatOf[T Index]() IndexFormat {
	var zero T
	if unsafe.Sizeof(zero) == 2 {
		return IndexFormatUint16
	}
	return IndexFormatUint32
}
