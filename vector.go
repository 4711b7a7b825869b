package bufvec

import "fmt"

// elementKind describes what a vector stores.
type elementKind struct {
	name   string      // metric and label suffix
	size   int         // bytes per element
	format IndexFormat // IndexFormatUndefined for generic elements
}

// vector implements the growth and upload protocol shared by Vector and
// IndexVector. Only the element kind differs between the two.
//
// A vector owns its Context and Buffer and is not safe for concurrent use.
type vector struct {
	ctx   Context
	usage UsageHint
	kind  elementKind
	label string

	// length is the number of elements written by the last successful update.
	length int

	// buf holds at least length elements. nil after Destroy.
	buf Buffer

	// epoch changes whenever buf is replaced or its contents are lost,
	// invalidating outstanding views.
	epoch     uint64
	destroyed bool

	metrics *vectorMetrics
}

func newVector(ctx Context, usage UsageHint, kind elementKind, capacity int, opts []Option) (*vector, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCapacity, capacity)
	}

	o := defaultOptions(kind.name)
	for _, opt := range opts {
		opt(&o)
	}

	v := &vector{
		ctx:     ctx,
		usage:   usage,
		kind:    kind,
		label:   o.label,
		metrics: newVectorMetrics(o.metrics, kind.name),
	}

	buf, err := v.allocate(capacity)
	if err != nil {
		return nil, fmt.Errorf("bufvec: allocate %d elements: %w", capacity, err)
	}
	v.buf = buf

	Logger().Debug("bufvec: created",
		"label", v.label, "kind", kind.name, "usage", usage, "capacity", capacity)

	return v, nil
}

// allocate requests an uninitialized buffer of n elements of the vector's kind.
func (v *vector) allocate(n int) (Buffer, error) {
	if v.kind.format != IndexFormatUndefined {
		return v.ctx.CreateIndexBuffer(n, v.kind.format, v.usage, v.label)
	}
	return v.ctx.CreateBuffer(n, v.kind.size, v.usage, v.label)
}

// update replaces the vector's contents with n elements encoded in data.
func (v *vector) update(data []byte, n int) (bool, error) {
	if v.destroyed {
		return false, ErrDestroyed
	}

	v.metrics.updates.Inc()
	reallocated, err := v.write(data, n)
	if reallocated {
		v.metrics.reallocations.Inc()
	}
	if err != nil {
		v.metrics.errors.Inc()
		return reallocated, err
	}
	v.metrics.uploadedBytes.Add(len(data))

	return reallocated, nil
}

func (v *vector) write(data []byte, n int) (bool, error) {
	current := v.buf.Len()

	reallocated := false
	if capacity, grow := PlanCapacity(current, n); grow {
		buf, err := v.allocate(capacity)
		if err != nil {
			return false, fmt.Errorf("bufvec: allocate %d elements: %w", capacity, err)
		}
		v.buf.Destroy()
		v.buf = buf
		v.epoch++
		reallocated = true

		Logger().Debug("bufvec: reallocated",
			"label", v.label, "old_capacity", current, "new_capacity", capacity)
	}

	// Nothing is readable until the new contents are accepted by the device.
	v.length = 0

	r, err := NewRange(v.buf, 0, n)
	if err != nil {
		v.epoch++
		return reallocated, err
	}

	// The range may still be uninitialized device memory. It is only written,
	// never read, and the upload below covers all of it.
	cmd, err := v.ctx.Upload(uninitRange{r: r}.assumeInit(), data)
	if err != nil {
		v.epoch++
		return reallocated, fmt.Errorf("bufvec: encode upload: %w", err)
	}
	if err := v.ctx.Submit(cmd); err != nil {
		cmd.Discard()
		v.epoch++
		return reallocated, fmt.Errorf("bufvec: submit upload: %w", err)
	}

	v.length = n
	return reallocated, nil
}

// rangeView returns the range holding the vector's valid elements.
func (v *vector) rangeView() Range {
	if v.buf == nil {
		return Range{}
	}
	return Range{buf: v.buf, offset: 0, length: v.length}
}

// Len returns the number of elements written by the last successful Update.
func (v *vector) Len() int {
	return v.length
}

// Capacity returns the number of elements the vector can hold without
// allocating a new buffer. It is 0 after Destroy.
func (v *vector) Capacity() int {
	if v.buf == nil {
		return 0
	}
	return v.buf.Len()
}

// Usage returns the usage hint every buffer of the vector is allocated with.
func (v *vector) Usage() UsageHint {
	return v.usage
}

// Label returns the debug label of the vector's buffers.
func (v *vector) Label() string {
	return v.label
}

// Destroy releases the vector's device buffer. Views taken from the vector
// become stale and later updates fail with ErrDestroyed.
//
// Destroy does not destroy the Context. It is idempotent.
func (v *vector) Destroy() {
	if v.destroyed {
		return
	}
	v.destroyed = true
	v.epoch++
	v.length = 0
	if v.buf != nil {
		v.buf.Destroy()
		v.buf = nil
	}
	Logger().Debug("bufvec: destroyed", "label", v.label)
}
