package bufvec

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gogpu/bufvec/gpucore"
)

// DeviceContext implements Context on top of a gpucore.BufferAdapter.
//
// It translates element counts into aligned byte sizes, usage hints into
// buffer usage flags, and upload commands into adapter writes. Zero-length
// buffers are represented without a device allocation, since devices reject
// empty buffers.
//
// DeviceContext is safe for concurrent use if its adapter is.
type DeviceContext struct {
	adapter gpucore.BufferAdapter
	reader  gpucore.BufferReader // nil if the adapter cannot read back
}

// NewDeviceContext creates a DeviceContext that allocates and writes buffers
// through adapter.
func NewDeviceContext(adapter gpucore.BufferAdapter) (*DeviceContext, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	c := &DeviceContext{adapter: adapter}
	if r, ok := adapter.(gpucore.BufferReader); ok {
		c.reader = r
	}
	return c, nil
}

// Adapter returns the adapter the context allocates from.
func (c *DeviceContext) Adapter() gpucore.BufferAdapter {
	return c.adapter
}

// CreateBuffer allocates an uninitialized vertex buffer of n elements.
func (c *DeviceContext) CreateBuffer(n, elemSize int, usage UsageHint, label string) (Buffer, error) {
	return c.createBuffer(n, elemSize, usage, IndexFormatUndefined, label)
}

// CreateIndexBuffer allocates an uninitialized index buffer of n indices.
func (c *DeviceContext) CreateIndexBuffer(n int, format IndexFormat, usage UsageHint, label string) (Buffer, error) {
	if format.Size() == 0 {
		return nil, fmt.Errorf("%w: index format %s", ErrInvalidBufferSize, format)
	}
	return c.createBuffer(n, format.Size(), usage, format, label)
}

func (c *DeviceContext) createBuffer(n, elemSize int, usage UsageHint, format IndexFormat, label string) (Buffer, error) {
	if n < 0 || elemSize <= 0 {
		return nil, fmt.Errorf("%w: %d elements of %d bytes", ErrInvalidBufferSize, n, elemSize)
	}
	if n > math.MaxInt/elemSize {
		return nil, fmt.Errorf("%w: %d elements of %d bytes overflows", ErrInvalidBufferSize, n, elemSize)
	}

	buf := &deviceBuffer{
		ctx:      c,
		id:       gpucore.InvalidID,
		n:        n,
		elemSize: elemSize,
		usage:    usage,
		format:   format,
	}
	if n == 0 {
		return buf, nil
	}

	//nolint:gosec // G115: n*elemSize is positive and checked for overflow above
	size := gpucore.AlignSize(uint64(n * elemSize))
	flags := bufferUsage(usage, format)
	id, err := c.adapter.CreateBuffer(size, flags, label)
	if err != nil {
		return nil, fmt.Errorf("create buffer %q (%d bytes, %s): %w", label, size, flags, err)
	}
	buf.id = id
	buf.size = size

	Logger().Debug("bufvec: buffer allocated",
		"label", label, "id", uint64(id), "bytes", size, "usage", flags.String())

	return buf, nil
}

// Upload builds a command writing data to dst. The data is copied, so the
// caller may reuse its slice as soon as Upload returns.
func (c *DeviceContext) Upload(dst Range, data []byte) (Command, error) {
	buf, err := c.ownBuffer(dst.Buffer())
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) > dst.ByteSize() {
		return nil, fmt.Errorf("%w: %d bytes into %d", ErrUploadTooLarge, len(data), dst.ByteSize())
	}
	offset := dst.ByteOffset()
	if offset%gpucore.CopyBufferAlignment != 0 {
		return nil, fmt.Errorf("%w: byte offset %d", ErrMisalignedRange, offset)
	}

	// Writes must be a multiple of the copy alignment. The padding lands in
	// the unused tail of the aligned allocation.
	padded := make([]byte, gpucore.AlignSize(uint64(len(data))))
	copy(padded, data)

	cmd := &uploadCommand{ctx: c, buf: buf, offset: offset, data: padded}
	cmd.pending.Store(true)
	return cmd, nil
}

// Submit executes an upload command built by this context.
func (c *DeviceContext) Submit(cmd Command) error {
	uc, ok := cmd.(*uploadCommand)
	if !ok || uc.ctx != c {
		return ErrForeignCommand
	}
	if !uc.pending.CompareAndSwap(true, false) {
		return ErrCommandSubmitted
	}
	data := uc.data
	uc.data = nil

	if uc.buf.destroyed.Load() {
		return ErrBufferDestroyed
	}
	if len(data) == 0 {
		return nil
	}
	if err := c.adapter.WriteBuffer(uc.buf.id, uc.offset, data); err != nil {
		return fmt.Errorf("write buffer %d: %w", uint64(uc.buf.id), err)
	}

	Logger().Debug("bufvec: upload submitted",
		"id", uint64(uc.buf.id), "offset", uc.offset, "bytes", len(data))
	return nil
}

// ReadRange reads the bytes of r back from the device. It requires an
// adapter implementing gpucore.BufferReader.
func (c *DeviceContext) ReadRange(r Range) ([]byte, error) {
	if c.reader == nil {
		return nil, ErrReadbackUnsupported
	}
	buf, err := c.ownBuffer(r.Buffer())
	if err != nil {
		return nil, err
	}
	if buf.destroyed.Load() {
		return nil, ErrBufferDestroyed
	}
	if r.Len() == 0 {
		return []byte{}, nil
	}
	return c.reader.ReadBuffer(buf.id, r.ByteOffset(), r.ByteSize())
}

// ReadBack reads the elements covered by v back from the device.
func ReadBack[T any](c *DeviceContext, v View[T]) ([]T, error) {
	if err := v.Err(); err != nil {
		return nil, err
	}
	b, err := c.ReadRange(v.Range())
	if err != nil {
		return nil, err
	}
	return fromBytes[T](b, v.Len()), nil
}

func (c *DeviceContext) ownBuffer(b Buffer) (*deviceBuffer, error) {
	buf, ok := b.(*deviceBuffer)
	if !ok || buf.ctx != c {
		return nil, ErrForeignBuffer
	}
	return buf, nil
}

// bufferUsage maps a usage hint to device usage flags. WebGPU-style devices
// have no access-frequency classes, so only the consumer part of the hint
// matters: contents meant to be read or copied must be a copy source.
func bufferUsage(hint UsageHint, format IndexFormat) gpucore.BufferUsage {
	usage := gpucore.BufferUsageCopyDst
	if format != IndexFormatUndefined {
		usage |= gpucore.BufferUsageIndex
	} else {
		usage |= gpucore.BufferUsageVertex
	}
	if hint.IsRead() || hint.IsCopy() {
		usage |= gpucore.BufferUsageCopySrc
	}
	return usage
}

// deviceBuffer is a Buffer allocated by a DeviceContext.
type deviceBuffer struct {
	ctx       *DeviceContext
	id        gpucore.BufferID // InvalidID for zero-length buffers
	n         int
	elemSize  int
	size      uint64 // aligned allocation size in bytes
	usage     UsageHint
	format    IndexFormat
	destroyed atomic.Bool
}

func (b *deviceBuffer) Len() int         { return b.n }
func (b *deviceBuffer) ElemSize() int    { return b.elemSize }
func (b *deviceBuffer) Usage() UsageHint { return b.usage }

// ID returns the adapter buffer ID, or gpucore.InvalidID for a zero-length
// buffer.
func (b *deviceBuffer) ID() gpucore.BufferID { return b.id }

func (b *deviceBuffer) Destroy() {
	if b.destroyed.Swap(true) {
		return
	}
	if b.id != gpucore.InvalidID {
		b.ctx.adapter.DestroyBuffer(b.id)
	}
}

// uploadCommand writes data at offset into buf when submitted.
type uploadCommand struct {
	ctx     *DeviceContext
	buf     *deviceBuffer
	offset  uint64
	data    []byte
	pending atomic.Bool
}

func (u *uploadCommand) Discard() {
	if u.pending.Swap(false) {
		u.data = nil
	}
}

// BufferID returns the adapter ID behind a buffer allocated by a
// DeviceContext, for binding it in backend-specific draw code.
func BufferID(b Buffer) (gpucore.BufferID, bool) {
	db, ok := b.(*deviceBuffer)
	if !ok {
		return gpucore.InvalidID, false
	}
	return db.id, true
}
