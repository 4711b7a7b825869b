//go:build !nogpu

package native

import (
	"errors"
	"sync"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/bufvec"
	"github.com/gogpu/bufvec/gpucore"
)

// Compile-time interface check.
var (
	_ gpucore.BufferAdapter     = (*HALAdapter)(nil)
	_ gpucontext.DeviceProvider = (*mockHALProvider)(nil)
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// =============================================================================
// Mock Buffer Device for Testing
// =============================================================================

// mockHALBuffer is a test double for hal.Buffer.
type mockHALBuffer struct {
	desc hal.BufferDescriptor
}

// Destroy implements hal.Resource.
func (b *mockHALBuffer) Destroy() {}

// NativeHandle implements hal.Buffer.
func (b *mockHALBuffer) NativeHandle() uintptr { return 0 }

// mockBufferDevice records buffer creation and destruction.
type mockBufferDevice struct {
	mu        sync.Mutex
	created   []*mockHALBuffer
	destroyed []hal.Buffer
	createErr error
}

func (d *mockBufferDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.createErr != nil {
		return nil, d.createErr
	}
	b := &mockHALBuffer{desc: *desc}
	d.created = append(d.created, b)
	return b, nil
}

func (d *mockBufferDevice) DestroyBuffer(buffer hal.Buffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyed = append(d.destroyed, buffer)
}

type recordedWrite struct {
	buffer hal.Buffer
	offset uint64
	data   []byte
}

func newMockAdapter(limits *gputypes.Limits) (*HALAdapter, *mockBufferDevice, *[]recordedWrite) {
	device := &mockBufferDevice{}
	var writes []recordedWrite
	write := func(buffer hal.Buffer, offset uint64, data []byte) {
		writes = append(writes, recordedWrite{buffer: buffer, offset: offset, data: append([]byte(nil), data...)})
	}
	return newHALAdapter(device, write, limits), device, &writes
}

// =============================================================================
// HALAdapter Tests
// =============================================================================

func TestNewHALAdapterNil(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	if _, err := NewHALAdapter(nil, queue, nil); !errors.Is(err, ErrNilHALDevice) {
		t.Errorf("nil device error = %v, want ErrNilHALDevice", err)
	}
	if _, err := NewHALAdapter(device, nil, nil); !errors.Is(err, ErrNilHALQueue) {
		t.Errorf("nil queue error = %v, want ErrNilHALQueue", err)
	}
}

func TestHALAdapterNoopDevice(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	adapter, err := NewHALAdapter(device, queue, nil)
	if err != nil {
		t.Fatalf("NewHALAdapter() error = %v", err)
	}
	defer adapter.Destroy()

	if adapter.MaxBufferSize() != gputypes.DefaultLimits().MaxBufferSize {
		t.Errorf("MaxBufferSize() = %d, want default limit", adapter.MaxBufferSize())
	}

	id, err := adapter.CreateBuffer(64, gpucore.BufferUsageVertex|gpucore.BufferUsageCopyDst, "noop-vertices")
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	if id == gpucore.InvalidID {
		t.Fatal("CreateBuffer() returned InvalidID")
	}
	if err := adapter.WriteBuffer(id, 0, make([]byte, 64)); err != nil {
		t.Errorf("WriteBuffer() error = %v", err)
	}
	if adapter.BufferCount() != 1 {
		t.Errorf("BufferCount() = %d, want 1", adapter.BufferCount())
	}

	adapter.DestroyBuffer(id)
	if adapter.BufferCount() != 0 {
		t.Errorf("BufferCount() after destroy = %d, want 0", adapter.BufferCount())
	}
}

func TestHALAdapterVectors(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	adapter, err := NewHALAdapter(device, queue, nil)
	if err != nil {
		t.Fatalf("NewHALAdapter() error = %v", err)
	}
	defer adapter.Destroy()

	ctx, err := bufvec.NewDeviceContext(adapter)
	if err != nil {
		t.Fatalf("NewDeviceContext() error = %v", err)
	}

	vertices, err := bufvec.New[[3]float32](ctx, bufvec.DynamicDraw)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	indices, err := bufvec.NewIndex[uint16](ctx, bufvec.DynamicDraw)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}

	for n := 1; n <= 9; n++ {
		if _, err := vertices.Update(make([][3]float32, n)); err != nil {
			t.Fatalf("vertices.Update(%d) error = %v", n, err)
		}
		if _, err := indices.Update(make([]uint16, 3*n)); err != nil {
			t.Fatalf("indices.Update(%d) error = %v", 3*n, err)
		}
	}
	if adapter.BufferCount() != 2 {
		t.Errorf("BufferCount() = %d, want 2 live buffers", adapter.BufferCount())
	}

	vertices.Destroy()
	indices.Destroy()
	if adapter.BufferCount() != 0 {
		t.Errorf("BufferCount() after Destroy = %d, want 0", adapter.BufferCount())
	}
}

func TestHALAdapterCreateBuffer(t *testing.T) {
	limits := gputypes.DefaultLimits()
	limits.MaxBufferSize = 1024
	adapter, device, _ := newMockAdapter(&limits)

	id, err := adapter.CreateBuffer(6, gpucore.BufferUsageIndex|gpucore.BufferUsageCopyDst, "tri")
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	if id != 1 {
		t.Errorf("first ID = %d, want 1", id)
	}

	desc := device.created[0].desc
	if desc.Size != 8 {
		t.Errorf("Size = %d, want 8 (aligned)", desc.Size)
	}
	if desc.Label != "tri" {
		t.Errorf("Label = %q, want %q", desc.Label, "tri")
	}
	if desc.Usage != gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst {
		t.Errorf("Usage = %v, want Index|CopyDst", desc.Usage)
	}

	tests := []struct {
		name    string
		size    uint64
		usage   gpucore.BufferUsage
		wantErr error
	}{
		{"zero size", 0, gpucore.BufferUsageVertex, ErrInvalidBufferSize},
		{"no usage", 16, 0, ErrInvalidBufferSize},
		{"over limit", 1025, gpucore.BufferUsageVertex, ErrBufferTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := adapter.CreateBuffer(tt.size, tt.usage, ""); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHALAdapterCreateBufferDeviceError(t *testing.T) {
	adapter, device, _ := newMockAdapter(nil)
	device.createErr = errors.New("out of memory")

	_, err := adapter.CreateBuffer(16, gpucore.BufferUsageVertex, "")
	if !errors.Is(err, device.createErr) {
		t.Errorf("error = %v, want %v", err, device.createErr)
	}
	if adapter.BufferCount() != 0 {
		t.Errorf("BufferCount() = %d, want 0", adapter.BufferCount())
	}
}

func TestHALAdapterWriteBuffer(t *testing.T) {
	adapter, device, writes := newMockAdapter(nil)

	id, err := adapter.CreateBuffer(16, gpucore.BufferUsageVertex|gpucore.BufferUsageCopyDst, "")
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}

	if err := adapter.WriteBuffer(id, 4, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("WriteBuffer() error = %v", err)
	}
	if err := adapter.WriteBuffer(id, 0, nil); err != nil {
		t.Fatalf("WriteBuffer(empty) error = %v", err)
	}
	if len(*writes) != 1 {
		t.Fatalf("queue writes = %d, want 1", len(*writes))
	}
	w := (*writes)[0]
	if w.buffer != hal.Buffer(device.created[0]) || w.offset != 4 || len(w.data) != 4 {
		t.Errorf("write = (%v, %d, %d bytes), want (buffer 1, 4, 4 bytes)", w.buffer, w.offset, len(w.data))
	}

	if err := adapter.WriteBuffer(id, 2, make([]byte, 4)); !errors.Is(err, ErrMisalignedWrite) {
		t.Errorf("misaligned offset error = %v, want ErrMisalignedWrite", err)
	}
	if err := adapter.WriteBuffer(id, 0, make([]byte, 3)); !errors.Is(err, ErrMisalignedWrite) {
		t.Errorf("misaligned size error = %v, want ErrMisalignedWrite", err)
	}
	if err := adapter.WriteBuffer(99, 0, make([]byte, 4)); !errors.Is(err, ErrBufferNotFound) {
		t.Errorf("unknown buffer error = %v, want ErrBufferNotFound", err)
	}
}

func TestHALAdapterDestroy(t *testing.T) {
	adapter, device, _ := newMockAdapter(nil)

	ids := make([]gpucore.BufferID, 3)
	for i := range ids {
		id, err := adapter.CreateBuffer(16, gpucore.BufferUsageVertex, "")
		if err != nil {
			t.Fatalf("CreateBuffer() error = %v", err)
		}
		ids[i] = id
	}

	adapter.DestroyBuffer(ids[0])
	adapter.DestroyBuffer(ids[0]) // already released
	if len(device.destroyed) != 1 {
		t.Errorf("destroyed = %d, want 1", len(device.destroyed))
	}

	adapter.Destroy()
	if len(device.destroyed) != 3 {
		t.Errorf("destroyed after Destroy = %d, want 3", len(device.destroyed))
	}
	if adapter.BufferCount() != 0 {
		t.Errorf("BufferCount() = %d, want 0", adapter.BufferCount())
	}
}

func TestConvertBufferUsage(t *testing.T) {
	tests := []struct {
		in   gpucore.BufferUsage
		want gputypes.BufferUsage
	}{
		{gpucore.BufferUsageMapRead, gputypes.BufferUsageMapRead},
		{gpucore.BufferUsageMapWrite, gputypes.BufferUsageMapWrite},
		{gpucore.BufferUsageCopySrc, gputypes.BufferUsageCopySrc},
		{gpucore.BufferUsageCopyDst, gputypes.BufferUsageCopyDst},
		{gpucore.BufferUsageIndex, gputypes.BufferUsageIndex},
		{gpucore.BufferUsageVertex, gputypes.BufferUsageVertex},
		{gpucore.BufferUsageUniform, gputypes.BufferUsageUniform},
		{gpucore.BufferUsageStorage, gputypes.BufferUsageStorage},
		{gpucore.BufferUsageIndirect, gputypes.BufferUsageIndirect},
		{
			gpucore.BufferUsageVertex | gpucore.BufferUsageCopyDst | gpucore.BufferUsageCopySrc,
			gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst | gputypes.BufferUsageCopySrc,
		},
		{0, 0},
	}
	for _, tt := range tests {
		if got := convertBufferUsage(tt.in); got != tt.want {
			t.Errorf("convertBufferUsage(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// =============================================================================
// Device Provider Tests
// =============================================================================

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct{}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "mock", Type: gpucontext.AdapterTypeSoftware}
}

// mockHALProvider additionally exposes HAL handles, like a gogpu application.
type mockHALProvider struct {
	mockProvider
	device any
	queue  any
}

func (m *mockHALProvider) HalDevice() any { return m.device }
func (m *mockHALProvider) HalQueue() any  { return m.queue }

func TestNewHALAdapterFromProvider(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
		wantErr  error
	}{
		{"plain provider", &mockProvider{}, ErrProviderNotHAL},
		{"wrong device type", &mockHALProvider{device: "gpu", queue: queue}, ErrProviderNotHAL},
		{"wrong queue type", &mockHALProvider{device: device, queue: 42}, ErrProviderNotHAL},
		{"nil handles", &mockHALProvider{}, ErrProviderNotHAL},
		{"hal provider", &mockHALProvider{device: device, queue: queue}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, err := NewHALAdapterFromProvider(tt.provider, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if err == nil {
				defer adapter.Destroy()
				if adapter.MaxBufferSize() == 0 {
					t.Error("MaxBufferSize() = 0")
				}
			}
		})
	}
}
