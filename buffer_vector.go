package bufvec

// Vector is a growable device buffer for arbitrary plain element data, for
// example vertex attributes.
//
// Update replaces the entire contents and reallocates the device buffer when
// the new data does not fit, doubling the capacity (see PlanCapacity). The
// client never tracks capacity or re-upload logic itself.
//
// Elements must be fixed-size and pointer-free: numbers, booleans, and arrays
// and structs of them. The in-memory layout of T is uploaded byte-for-byte.
//
// Example:
//
//	type Vertex struct {
//	    Position [2]float32
//	}
//
//	vertices, err := bufvec.New[Vertex](ctx, bufvec.StaticDraw)
//	if err != nil {
//	    return err
//	}
//	defer vertices.Destroy()
//
//	_, err = vertices.Update([]Vertex{
//	    {Position: [2]float32{-0.5, -0.5}},
//	    {Position: [2]float32{0.5, -0.5}},
//	    {Position: [2]float32{0.0, 0.5}},
//	})
//
//	view := vertices.View() // view.Len() == 3
//
// A Vector is owned by a single goroutine; it does no locking.
type Vector[T any] struct {
	vector
}

// New creates a vector with zero capacity.
func New[T any](ctx Context, usage UsageHint, opts ...Option) (*Vector[T], error) {
	return NewWithCapacity[T](ctx, usage, 0, opts...)
}

// NewWithCapacity creates a vector whose buffer holds capacity elements.
// capacity does not have to be a power of two.
func NewWithCapacity[T any](ctx Context, usage UsageHint, capacity int, opts ...Option) (*Vector[T], error) {
	size, err := elementSize[T]()
	if err != nil {
		return nil, err
	}

	core, err := newVector(ctx, usage, elementKind{name: "generic", size: size}, capacity, opts)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{vector: *core}, nil
}

// Update replaces the vector's contents with data, reallocating the buffer if
// data does not fit. It reports whether a new buffer was allocated; views
// taken before a reallocating Update are stale.
//
// Update always submits an upload, even when nothing was reallocated. It
// returns once the submission is accepted, not once the copy completes.
//
// Ordering: work submitted to the same Context after Update observes the new
// data; work submitted before it observes the old data. No other guarantees
// are given.
//
// On error the vector is left with length 0 so that no view ever covers data
// that may not have been written.
func (v *Vector[T]) Update(data []T) (bool, error) {
	return v.update(asBytes(data, v.kind.size), len(data))
}

// View returns a view over the elements written by the last Update.
func (v *Vector[T]) View() View[T] {
	return View[T]{r: v.rangeView(), owner: &v.vector, epoch: v.epoch}
}
