package gpucore

import "strings"

// BufferID is an opaque handle to a GPU buffer.
//
// Each adapter implementation maintains a mapping between IDs and actual
// backend resources. IDs are uint64 to accommodate various backend handle
// sizes.
type BufferID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID BufferID = 0

// BufferUsage is a bitmask specifying how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	// BufferUsageMapRead indicates the buffer can be mapped for reading.
	BufferUsageMapRead BufferUsage = 1 << 0

	// BufferUsageMapWrite indicates the buffer can be mapped for writing.
	BufferUsageMapWrite BufferUsage = 1 << 1

	// BufferUsageCopySrc indicates the buffer can be used as a copy source.
	BufferUsageCopySrc BufferUsage = 1 << 2

	// BufferUsageCopyDst indicates the buffer can be used as a copy destination.
	BufferUsageCopyDst BufferUsage = 1 << 3

	// BufferUsageIndex indicates the buffer can be used as an index buffer.
	BufferUsageIndex BufferUsage = 1 << 4

	// BufferUsageVertex indicates the buffer can be used as a vertex buffer.
	BufferUsageVertex BufferUsage = 1 << 5

	// BufferUsageUniform indicates the buffer can be used as a uniform buffer.
	BufferUsageUniform BufferUsage = 1 << 6

	// BufferUsageStorage indicates the buffer can be used as a storage buffer.
	BufferUsageStorage BufferUsage = 1 << 7

	// BufferUsageIndirect indicates the buffer can be used for indirect dispatch/draw.
	BufferUsageIndirect BufferUsage = 1 << 8
)

var bufferUsageNames = []struct {
	flag BufferUsage
	name string
}{
	{BufferUsageMapRead, "MapRead"},
	{BufferUsageMapWrite, "MapWrite"},
	{BufferUsageCopySrc, "CopySrc"},
	{BufferUsageCopyDst, "CopyDst"},
	{BufferUsageIndex, "Index"},
	{BufferUsageVertex, "Vertex"},
	{BufferUsageUniform, "Uniform"},
	{BufferUsageStorage, "Storage"},
	{BufferUsageIndirect, "Indirect"},
}

// Contains reports whether all flags in other are set in u.
func (u BufferUsage) Contains(other BufferUsage) bool {
	return u&other == other
}

// String returns the set flags joined with "|", or "None".
func (u BufferUsage) String() string {
	if u == 0 {
		return "None"
	}
	var parts []string
	for _, n := range bufferUsageNames {
		if u&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, "|")
}
