package handle

import (
	"unsafe"

	"github.com/wippyai/ownership/errors"
)

// Shared is a counted co-ownership handle. Clones of a handle share one
// counter cell; the referent is dropped, exactly once, when the last
// handle in the lineage releases it.
//
// Invariant: the counter cell is present iff the referent is, and its
// value equals the number of live handles in the lineage. The zero value
// is an empty handle.
type Shared[T any] struct {
	px    T
	pn    *int64
	alloc CellAllocator
}

// NewShared adopts v with the default heap cell allocator. A null v
// produces an empty handle.
func NewShared[T any](v T) *Shared[T] {
	s, err := AdoptShared(defaultCells, v)
	if err != nil {
		// HeapCells cannot fail
		panic(err)
	}
	return s
}

// AdoptShared adopts v, allocating its counter cell from alloc. On
// allocation failure the adopted value is dropped first, so no referent
// leaks, and the error surfaces to the caller. A null v produces an
// empty handle without touching the allocator. Clones inherit alloc.
func AdoptShared[T any](alloc CellAllocator, v T) (*Shared[T], error) {
	s := &Shared[T]{alloc: cellsOrDefault(alloc)}
	if RefNil(v) {
		return s, nil
	}

	cell, err := s.alloc.AllocCell()
	if err != nil {
		dropRef(v)
		return nil, errors.Allocation(errors.PhaseAdopt, typeName(v), err)
	}

	*cell = 1
	s.px = v
	s.pn = cell
	if observed() {
		notify(Event{Type: EventAdopt, Lineage: s.Lineage(), Count: 1, Value: v})
	}
	return s, nil
}

// Clone copy-constructs a new handle co-owning the same referent. It
// never allocates: the counter cell already exists when the source is
// non-empty.
func (s *Shared[T]) Clone() *Shared[T] {
	s.checkCoherent()
	c := &Shared[T]{px: s.px, pn: s.pn, alloc: s.alloc}
	if c.pn != nil {
		*c.pn++
		if observed() {
			notify(Event{Type: EventShare, Lineage: c.Lineage(), Count: *c.pn, Value: c.px})
		}
	}
	return c
}

// Assign copy-assigns other into s by copy-and-swap: the previous
// referent is released only after the new state is fully in place, which
// makes self-assignment safe and keeps s intact if other is s's own
// lineage. Never fails.
func (s *Shared[T]) Assign(other *Shared[T]) {
	tmp := other.Clone()
	s.Swap(tmp)
	tmp.Release()
}

// Release drops this handle's ownership, leaving it empty. When the
// lineage count reaches zero the referent is dropped and the counter
// cell is freed in the same step. Releasing an empty handle is a no-op.
func (s *Shared[T]) Release() {
	if s.pn != nil {
		if *s.pn <= 0 {
			panic(errors.Invariant(errors.PhaseRelease, "release of a dead lineage"))
		}
		*s.pn--
		if *s.pn == 0 {
			if observed() {
				notify(Event{Type: EventDestroy, Lineage: s.Lineage(), Count: 0, Value: s.px})
			}
			dropRef(s.px)
			s.allocRef().FreeCell(s.pn)
		} else if observed() {
			notify(Event{Type: EventRelease, Lineage: s.Lineage(), Count: *s.pn, Value: s.px})
		}
	}
	var zero T
	s.px = zero
	s.pn = nil
}

// ResetTo releases the current referent and adopts v as a fresh lineage
// with a count of one. Resetting to the currently held referent panics.
// The replacement cell is allocated before anything is released: on
// allocation failure the handle still holds its previous referent and v
// is dropped. A null v is equivalent to Release.
func (s *Shared[T]) ResetTo(v T) error {
	if !RefNil(v) && RefEqual(v, s.px) {
		panic(errors.Invariant(errors.PhaseReset, "reset to the currently held referent"))
	}
	if RefNil(v) {
		s.Release()
		return nil
	}

	cell, err := s.allocRef().AllocCell()
	if err != nil {
		dropRef(v)
		return errors.Allocation(errors.PhaseReset, typeName(v), err)
	}

	s.Release()
	*cell = 1
	s.px = v
	s.pn = cell
	if observed() {
		notify(Event{Type: EventAdopt, Lineage: s.Lineage(), Count: 1, Value: v})
	}
	return nil
}

// Swap exchanges the internals of two handles. Never fails.
func (s *Shared[T]) Swap(other *Shared[T]) {
	s.px, other.px = other.px, s.px
	s.pn, other.pn = other.pn, s.pn
	s.alloc, other.alloc = other.alloc, s.alloc
}

// Valid reports whether the handle owns a referent (use count > 0).
func (s *Shared[T]) Valid() bool {
	return s.UseCount() > 0
}

// Unique reports whether this handle is the sole owner of its referent.
func (s *Shared[T]) Unique() bool {
	return s.UseCount() == 1
}

// UseCount returns the lineage's live-handle count, 0 for an empty handle.
func (s *Shared[T]) UseCount() int64 {
	if s.pn == nil {
		return 0
	}
	return *s.pn
}

// Get returns the referent without affecting ownership; the zero value
// for an empty handle.
func (s *Shared[T]) Get() T {
	return s.px
}

// MustGet returns the referent, panicking if the handle is empty.
func (s *Shared[T]) MustGet() T {
	if s.pn == nil {
		panic(errors.Invariant(errors.PhaseAccess, "dereference of an empty handle"))
	}
	return s.px
}

// Equal reports whether both handles refer to the same referent. Two
// empty handles are equal. Use RefEqual with Get for cross-type
// comparison.
func (s *Shared[T]) Equal(other *Shared[T]) bool {
	return RefEqual(s.px, other.px)
}

// Lineage identifies the counter cell; 0 for an empty handle. Stable for
// the lineage's lifetime, may be reused after destruction.
func (s *Shared[T]) Lineage() uintptr {
	return uintptr(unsafe.Pointer(s.pn))
}

func (s *Shared[T]) allocRef() CellAllocator {
	return cellsOrDefault(s.alloc)
}

// checkCoherent asserts the referent/counter pairing: a null referent
// must have no counter, a live counter must be positive.
func (s *Shared[T]) checkCoherent() {
	if RefNil(s.px) != (s.pn == nil) {
		panic(errors.Invariant(errors.PhaseAccess, "referent and counter cell out of step"))
	}
	if s.pn != nil && *s.pn <= 0 {
		panic(errors.Invariant(errors.PhaseAccess, "use of a dead lineage"))
	}
}

// newAliased builds a handle that stores v while sharing src's counter
// cell. This is the cast-support path: counter sharing must always
// correspond to a cast of the same underlying referent, so it stays
// unexported and reachable only through the cast helpers.
func newAliased[T, U any](src *Shared[U], v T) *Shared[T] {
	if RefNil(src.px) && src.pn != nil {
		panic(errors.Invariant(errors.PhaseCast, "aliasing an incoherent lineage"))
	}

	out := &Shared[T]{alloc: src.alloc}
	if RefNil(v) {
		return out
	}
	if src.pn == nil {
		panic(errors.Invariant(errors.PhaseCast, "aliasing an empty lineage"))
	}

	out.px = v
	out.pn = src.pn
	*out.pn++
	if observed() {
		notify(Event{Type: EventShare, Lineage: out.Lineage(), Count: *out.pn, Value: v})
	}
	return out
}
