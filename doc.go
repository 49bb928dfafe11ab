// Package ownership provides explicit lifetime management for Go values
// that need deterministic cleanup: shared, reference-counted handles and
// exclusive, move-only handles.
//
// Go's garbage collector reclaims memory, but it says nothing about when
// a file is closed, a buffer is returned to its pool, or a session is
// torn down. The handle types in this module make that moment explicit:
// a value is adopted by a handle, co-owned or transferred through handle
// operations, and dropped exactly once when the last owner lets go.
//
// # Architecture Overview
//
// The module is organized into a small set of packages:
//
//	ownership/       Root package with the Dropper and CellAllocator interfaces
//	├── handle/      Shared[T] and Owned[T] handles, cast helpers, allocators
//	├── errors/      Structured error types for failure and invariant reporting
//	├── track/       Live-lineage accounting and leak detection
//	└── cmd/demo/    Scenario replay tool with an interactive TUI
//
// # Quick Start
//
// Adopt a value into a shared handle and co-own it:
//
//	buf := NewBuffer(1024)        // implements ownership.Dropper
//	x := handle.NewShared(buf)    // use count 1
//	y := x.Clone()                // use count 2
//
//	x.Release()                   // use count 1, buf still alive
//	y.Release()                   // buf.Drop() called exactly once
//
// Exclusive ownership transfers instead of counting:
//
//	a := handle.NewOwned(buf)
//	b := a.Move()                 // a is now empty, b owns buf
//	b.Release()                   // buf.Drop() called
//
// All handle operations are synchronous and unsynchronized; lineages
// shared across goroutines require external serialization.
package ownership
