package handle

import (
	"github.com/wippyai/ownership/errors"
)

// Owned is an exclusive ownership handle: at any instant at most one
// handle holds a given referent, and ownership moves rather than
// duplicates. There is deliberately no Clone; Move and MoveFrom are the
// only transfer paths, so an accidental copy cannot silently empty its
// source. The zero value is an empty handle.
type Owned[T any] struct {
	px T
}

// NewOwned adopts v. No bookkeeping state is allocated, so adoption
// cannot fail. A null v produces an empty handle.
func NewOwned[T any](v T) *Owned[T] {
	o := &Owned[T]{}
	if RefNil(v) {
		return o
	}
	o.px = v
	if observed() {
		notify(Event{Type: EventAdopt, Lineage: refAddr(v), Count: 1, Value: v})
	}
	return o
}

// Move transfers the referent into a fresh handle, leaving this one
// empty. Moving an empty handle yields another empty handle.
func (o *Owned[T]) Move() *Owned[T] {
	out := &Owned[T]{px: o.px}
	var zero T
	o.px = zero
	if !RefNil(out.px) && observed() {
		notify(Event{Type: EventMove, Lineage: refAddr(out.px), Count: 1, Value: out.px})
	}
	return out
}

// MoveFrom is transfer-assignment: it releases o's current referent,
// then takes src's, emptying src. Transferring a handle into itself is a
// no-op.
func (o *Owned[T]) MoveFrom(src *Owned[T]) {
	if o == src {
		return
	}
	o.Release()
	o.px = src.px
	var zero T
	src.px = zero
	if !RefNil(o.px) && observed() {
		notify(Event{Type: EventMove, Lineage: refAddr(o.px), Count: 1, Value: o.px})
	}
}

// Release drops the referent, if any, and leaves the handle empty.
func (o *Owned[T]) Release() {
	if !RefNil(o.px) {
		if observed() {
			notify(Event{Type: EventDestroy, Lineage: refAddr(o.px), Count: 0, Value: o.px})
		}
		dropRef(o.px)
	}
	var zero T
	o.px = zero
}

// ResetTo releases the current referent and adopts v. Resetting to the
// currently held referent panics. A null v is equivalent to Release.
func (o *Owned[T]) ResetTo(v T) {
	if !RefNil(v) && RefEqual(v, o.px) {
		panic(errors.Invariant(errors.PhaseReset, "reset to the currently held referent"))
	}
	o.Release()
	if RefNil(v) {
		return
	}
	o.px = v
	if observed() {
		notify(Event{Type: EventAdopt, Lineage: refAddr(v), Count: 1, Value: v})
	}
}

// Swap exchanges the referents of two handles. Never fails.
func (o *Owned[T]) Swap(other *Owned[T]) {
	o.px, other.px = other.px, o.px
}

// Valid reports whether the handle owns a referent.
func (o *Owned[T]) Valid() bool {
	return !RefNil(o.px)
}

// Get returns the referent without affecting ownership; the zero value
// for an empty handle.
func (o *Owned[T]) Get() T {
	return o.px
}

// MustGet returns the referent, panicking if the handle is empty.
func (o *Owned[T]) MustGet() T {
	if RefNil(o.px) {
		panic(errors.Invariant(errors.PhaseAccess, "dereference of an empty handle"))
	}
	return o.px
}

// Equal reports whether both handles refer to the same referent. Two
// empty handles are equal.
func (o *Owned[T]) Equal(other *Owned[T]) bool {
	return RefEqual(o.px, other.px)
}
