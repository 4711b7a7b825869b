package bufvec_test

import (
	"fmt"

	"github.com/gogpu/bufvec"
	"github.com/gogpu/bufvec/backend/software"
)

func ExamplePlanCapacity() {
	capacity := 0
	for _, n := range []int{1, 2, 3, 4, 5} {
		if next, grow := bufvec.PlanCapacity(capacity, n); grow {
			capacity = next
		}
		fmt.Print(capacity, " ")
	}
	fmt.Println()
	// Output: 2 2 4 4 8
}

func ExampleVector() {
	adapter := software.NewAdapter()
	defer adapter.Close()

	ctx, err := bufvec.NewDeviceContext(adapter)
	if err != nil {
		panic(err)
	}

	type Vertex struct {
		X, Y float32
	}

	vertices, err := bufvec.New[Vertex](ctx, bufvec.StreamDraw)
	if err != nil {
		panic(err)
	}
	defer vertices.Destroy()

	for _, n := range []int{1, 3, 2} {
		reallocated, err := vertices.Update(make([]Vertex, n))
		if err != nil {
			panic(err)
		}
		fmt.Printf("len=%d cap=%d reallocated=%v\n", vertices.Len(), vertices.Capacity(), reallocated)
	}
	// Output:
	// len=1 cap=2 reallocated=true
	// len=3 cap=4 reallocated=true
	// len=2 cap=4 reallocated=false
}

func ExampleIndexVector() {
	adapter := software.NewAdapter()
	defer adapter.Close()

	ctx, err := bufvec.NewDeviceContext(adapter)
	if err != nil {
		panic(err)
	}

	indices, err := bufvec.NewIndex[uint16](ctx, bufvec.StaticDraw)
	if err != nil {
		panic(err)
	}
	defer indices.Destroy()

	if _, err := indices.Update([]uint16{0, 1, 2, 2, 1, 3}); err != nil {
		panic(err)
	}

	view := indices.View()
	fmt.Println(view.Len(), view.Format())
	// Output: 6 Uint16
}
