package bufvec

import "fmt"

// Range is an element range [Offset, Offset+Len) of a Buffer.
type Range struct {
	buf    Buffer
	offset int
	length int
}

// NewRange returns the range [offset, offset+length) of buf.
func NewRange(buf Buffer, offset, length int) (Range, error) {
	if buf == nil {
		return Range{}, fmt.Errorf("%w: buffer is nil", ErrRangeOutOfBounds)
	}
	if offset < 0 || length < 0 || offset > buf.Len() || length > buf.Len()-offset {
		return Range{}, fmt.Errorf("%w: [%d, %d) of buffer with %d elements",
			ErrRangeOutOfBounds, offset, offset+length, buf.Len())
	}
	return Range{buf: buf, offset: offset, length: length}, nil
}

// Buffer returns the buffer the range refers to.
func (r Range) Buffer() Buffer { return r.buf }

// Offset returns the index of the first element in the range.
func (r Range) Offset() int { return r.offset }

// Len returns the number of elements in the range.
func (r Range) Len() int { return r.length }

// ByteOffset returns the offset of the range in bytes.
func (r Range) ByteOffset() uint64 {
	if r.buf == nil {
		return 0
	}
	//nolint:gosec // G115: offset is validated non-negative by NewRange
	return uint64(r.offset * r.buf.ElemSize())
}

// ByteSize returns the size of the range in bytes.
func (r Range) ByteSize() uint64 {
	if r.buf == nil {
		return 0
	}
	//nolint:gosec // G115: length is validated non-negative by NewRange
	return uint64(r.length * r.buf.ElemSize())
}

// uninitRange is a range whose contents may not have been written yet.
// It can be turned into a readable View only through assumeInit.
type uninitRange struct {
	r Range
}

// assumeInit marks the range as holding valid data.
//
// Safety: the caller must submit an upload covering the entire range before
// any other command can read it. Vector.Update is the only caller and uploads
// exactly this range right after allocation, so no view over unwritten device
// memory ever escapes.
func (u uninitRange) assumeInit() Range {
	return u.r
}

// View is a read view over the valid elements of a vector, for consumption
// by device-side work such as draw calls.
//
// A View does not own the buffer. It stays valid until the vector it was taken
// from reallocates or is destroyed. A failed Update also invalidates it, since
// the buffer contents are then undefined. After that Valid reports false and
// Err returns ErrStaleView.
type View[T any] struct {
	r     Range
	owner *vector
	epoch uint64
}

// Range returns the element range the view covers.
func (v View[T]) Range() Range { return v.r }

// Buffer returns the underlying buffer.
func (v View[T]) Buffer() Buffer { return v.r.buf }

// Len returns the number of elements in the view.
func (v View[T]) Len() int { return v.r.length }

// Valid reports whether the view still refers to the vector's live allocation.
func (v View[T]) Valid() bool {
	return v.owner != nil && !v.owner.destroyed && v.owner.epoch == v.epoch
}

// Err returns ErrStaleView if the view is no longer valid.
func (v View[T]) Err() error {
	if !v.Valid() {
		return ErrStaleView
	}
	return nil
}

// IndexView is a View over index data that can be used directly as the index
// source of an indexed draw.
type IndexView[T Index] struct {
	View[T]
}

// Format returns the index format of the view.
func (v IndexView[T]) Format() IndexFormat {
	return IndexFormatOf[T]()
}
