package bufvec

import "fmt"

// UsageHint describes the expected access pattern of a buffer's contents.
//
// The hint is a performance classification only: it is interpreted by the
// Context when allocating device memory and never changes what a vector does.
// A vector passes its hint unchanged to every allocation it makes, including
// reallocations triggered by Update.
//
// The first word describes how often the contents change:
//   - Static: written once, used many times
//   - Dynamic: rewritten repeatedly, used many times
//   - Stream: rewritten for (almost) every use
//
// The second word describes who consumes the contents:
//   - Draw: read by the device, e.g. as vertex or index input
//   - Read: written by the device, read back by the host
//   - Copy: written and read by the device
type UsageHint uint8

// Usage hints.
const (
	// StaticDraw is for contents that are uploaded once and drawn many times.
	StaticDraw UsageHint = iota
	// DynamicDraw is for contents that are updated repeatedly and drawn many times.
	DynamicDraw
	// StreamDraw is for contents that are updated before nearly every draw.
	StreamDraw
	// StaticRead is for contents that are read back by the host many times.
	StaticRead
	// DynamicRead is for contents that are rewritten and read back repeatedly.
	DynamicRead
	// StreamRead is for contents that are read back at most a few times.
	StreamRead
	// StaticCopy is for contents that are copied on the device many times.
	StaticCopy
	// DynamicCopy is for contents that are rewritten and copied repeatedly.
	DynamicCopy
	// StreamCopy is for contents that are copied on the device at most a few times.
	StreamCopy
)

// String returns the string representation of UsageHint.
func (h UsageHint) String() string {
	switch h {
	case StaticDraw:
		return "StaticDraw"
	case DynamicDraw:
		return "DynamicDraw"
	case StreamDraw:
		return "StreamDraw"
	case StaticRead:
		return "StaticRead"
	case DynamicRead:
		return "DynamicRead"
	case StreamRead:
		return "StreamRead"
	case StaticCopy:
		return "StaticCopy"
	case DynamicCopy:
		return "DynamicCopy"
	case StreamCopy:
		return "StreamCopy"
	default:
		return fmt.Sprintf("Unknown(%d)", int(h))
	}
}

// IsRead reports whether the hint expects the host to read the contents back.
func (h UsageHint) IsRead() bool {
	return h == StaticRead || h == DynamicRead || h == StreamRead
}

// IsCopy reports whether the hint expects the contents to be a copy source on
// the device.
func (h UsageHint) IsCopy() bool {
	return h == StaticCopy || h == DynamicCopy || h == StreamCopy
}
