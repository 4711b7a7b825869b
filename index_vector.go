package bufvec

// IndexVector is a growable device buffer of vertex indices for indexed
// draws.
//
// It follows the same growth and update protocol as Vector; only the buffer
// it allocates differs. Unlike Vector, T is restricted to index types.
//
// Example:
//
//	indices, err := bufvec.NewIndex[uint16](ctx, bufvec.StaticDraw)
//	if err != nil {
//	    return err
//	}
//	defer indices.Destroy()
//
//	_, err = indices.Update([]uint16{0, 1, 2})
//
//	view := indices.View() // view.Len() == 3, view.Format() == IndexFormatUint16
type IndexVector[T Index] struct {
	vector
}

// NewIndex creates an index vector with zero capacity.
func NewIndex[T Index](ctx Context, usage UsageHint, opts ...Option) (*IndexVector[T], error) {
	return NewIndexWithCapacity[T](ctx, usage, 0, opts...)
}

// NewIndexWithCapacity creates an index vector whose buffer holds capacity
// indices.
func NewIndexWithCapacity[T Index](ctx Context, usage UsageHint, capacity int, opts ...Option) (*IndexVector[T], error) {
	format := IndexFormatOf[T]()
	kind := elementKind{name: "index", size: format.Size(), format: format}

	core, err := newVector(ctx, usage, kind, capacity, opts)
	if err != nil {
		return nil, err
	}
	return &IndexVector[T]{vector: *core}, nil
}

// Update replaces the vector's indices with data, reallocating the buffer if
// data does not fit. It reports whether a new buffer was allocated.
//
// Update has the same submission and ordering semantics as Vector.Update.
func (v *IndexVector[T]) Update(data []T) (bool, error) {
	return v.update(asBytes(data, v.kind.size), len(data))
}

// View returns an index view over the indices written by the last Update.
func (v *IndexVector[T]) View() IndexView[T] {
	return IndexView[T]{View: View[T]{r: v.rangeView(), owner: &v.vector, epoch: v.epoch}}
}

// Format returns the index format of the vector's buffer.
func (v *IndexVector[T]) Format() IndexFormat {
	return v.kind.format
}
