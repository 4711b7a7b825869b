// Package software provides a host-memory implementation of
// gpucore.BufferAdapter.
//
// The adapter keeps every buffer in a Go byte slice and executes writes
// immediately. It serves as the CPU fallback when no GPU is available and as a
// deterministic device for tests: unlike GPU backends it supports readback of
// the exact bytes written.
//
// Usage:
//
//	adapter := software.NewAdapter(software.WithBudget(64 << 20))
//	defer adapter.Close()
//
//	ctx, err := bufvec.NewDeviceContext(adapter)
package software
