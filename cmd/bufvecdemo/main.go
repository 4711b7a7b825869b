// Command bufvecdemo streams a growing triangle fan through bufvec vectors and
// prints the resulting update counters.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/gogpu/bufvec"
	"github.com/gogpu/bufvec/backend"
	_ "github.com/gogpu/bufvec/backend/native" // registers the noop backend
	"github.com/gogpu/bufvec/backend/software"
)

// Vertex is a 2D position with a packed RGBA color.
type Vertex struct {
	X, Y  float32
	Color uint32
}

func main() {
	var (
		name    = flag.String("backend", backend.BackendSoftware, "buffer backend: software or noop")
		frames  = flag.Int("frames", 16, "number of frames to stream")
		budget  = flag.Uint64("budget", software.DefaultBudget, "software backend memory budget in bytes")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		bufvec.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	b, err := openBackend(*name, *budget)
	if err != nil {
		log.Fatalf("Failed to open %s backend: %v", *name, err)
	}
	defer b.Close()

	ctx, err := bufvec.NewDeviceContext(b.Adapter())
	if err != nil {
		log.Fatalf("Failed to create device context: %v", err)
	}

	if err := stream(ctx, *frames); err != nil {
		log.Fatalf("Streaming failed: %v", err)
	}

	if sb, ok := b.(*backend.SoftwareBackend); ok {
		log.Printf("Software backend: %s", sb.SoftwareAdapter().Stats())
	}
	bufvec.WriteMetrics(os.Stdout)
}

// openBackend initializes the named backend.
func openBackend(name string, budget uint64) (backend.BufferBackend, error) {
	if name == backend.BackendSoftware {
		b := backend.NewSoftwareBackend(software.WithBudget(budget))
		return b, b.Init()
	}
	b, err := backend.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w (registered: %s)", err, strings.Join(backend.Available(), ", "))
	}
	return b, nil
}

// stream uploads a triangle fan with one more segment every frame.
func stream(ctx bufvec.Context, frames int) error {
	vertices, err := bufvec.New[Vertex](ctx, bufvec.StreamDraw, bufvec.WithLabel("fan-vertices"))
	if err != nil {
		return err
	}
	defer vertices.Destroy()

	indices, err := bufvec.NewIndex[uint16](ctx, bufvec.StreamDraw, bufvec.WithLabel("fan-indices"))
	if err != nil {
		return err
	}
	defer indices.Destroy()

	for frame := 1; frame <= frames; frame++ {
		verts, idx := fan(frame + 2)

		vRealloc, err := vertices.Update(verts)
		if err != nil {
			return fmt.Errorf("frame %d: vertices: %w", frame, err)
		}
		iRealloc, err := indices.Update(idx)
		if err != nil {
			return fmt.Errorf("frame %d: indices: %w", frame, err)
		}

		view := indices.View()
		log.Printf("frame %3d: %4d vertices (cap %4d, realloc %-5v) %4d %s indices (cap %4d, realloc %v)",
			frame, vertices.Len(), vertices.Capacity(), vRealloc,
			view.Len(), view.Format(), indices.Capacity(), iRealloc)
	}
	return nil
}

// fan builds a triangle fan with n outer vertices around the origin.
func fan(n int) ([]Vertex, []uint16) {
	verts := make([]Vertex, 0, n+1)
	verts = append(verts, Vertex{Color: 0xffffffff})
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		verts = append(verts, Vertex{
			X:     float32(math.Cos(a)),
			Y:     float32(math.Sin(a)),
			Color: 0xff000000 | uint32(i*0x10101)&0xffffff, //nolint:gosec // G115: demo color
		})
	}

	idx := make([]uint16, 0, 3*n)
	for i := range n {
		next := (i+1)%n + 1
		idx = append(idx, 0, uint16(i+1), uint16(next)) //nolint:gosec // G115: n is small
	}
	return verts, idx
}
