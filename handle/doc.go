// Package handle implements the ownership handle types.
//
// Two handle kinds manage the lifetime of a referent (a pointer or
// interface value, typically implementing ownership.Dropper):
//
//	Shared[T]  counted co-ownership: clones share one counter cell, the
//	           referent is dropped when the last clone releases it
//	Owned[T]   exclusive ownership: transfer-only, never duplicated
//
// # Handle Lifecycle
//
// A handle is either empty or owning. Adoption moves it to owning;
// Release, a completed Move, or a replacing ResetTo move it back. When a
// Shared lineage's count reaches zero, or an Owned handle releases its
// referent, the referent's Drop method is invoked exactly once (when
// implemented) and the counter cell is returned to its allocator.
//
//	x := handle.NewShared(conn)   // count 1
//	y := x.Clone()                // count 2, same lineage
//	x.Release()                   // count 1
//	y.Release()                   // conn.Drop(), cell freed
//
// # Casts
//
// StaticCast and DynamicCast convert a handle across a polymorphic Go
// hierarchy (concrete types behind interfaces) while preserving the
// lineage. They are the only way to build a handle that shares another
// handle's counter under a different referent type.
//
//	c := handle.NewShared(&Circle{R: 2})
//	s := handle.StaticCast[Shape](c)       // count 2, same circle
//	back := handle.DynamicCast[*Circle](s) // count 3
//	miss := handle.DynamicCast[*Square](s) // empty, count unchanged
//
// # Concurrency
//
// Counter cells are plain integers. Handles and lineages are not safe for
// concurrent use without external synchronization; see the root package
// documentation.
package handle
