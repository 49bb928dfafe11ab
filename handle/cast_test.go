package handle

import (
	"testing"

	"github.com/wippyai/ownership/errors"
)

// polymorphic hierarchy for cast tests

type shape interface {
	area() float64
}

type circle struct {
	live *int
	r    float64
}

func newCircle(live *int, r float64) *circle {
	*live++
	return &circle{live: live, r: r}
}

func (c *circle) area() float64 { return 3.14159 * c.r * c.r }
func (c *circle) Drop()         { *c.live-- }

type square struct {
	live *int
	side float64
}

func newSquare(live *int, side float64) *square {
	*live++
	return &square{live: live, side: side}
}

func (s *square) area() float64 { return s.side * s.side }
func (s *square) Drop()         { *s.live-- }

func TestStaticCastShared(t *testing.T) {
	live := 0

	c := NewShared(newCircle(&live, 2))
	s := StaticCast[shape](c)

	// upcast shares the lineage: count bumped by exactly one
	if c.UseCount() != 2 || s.UseCount() != 2 {
		t.Errorf("counts = %d/%d, want 2/2", c.UseCount(), s.UseCount())
	}
	if !RefEqual(s.Get(), c.Get()) {
		t.Error("cast result must refer to the same referent")
	}
	if got := s.MustGet().area(); got != c.Get().area() {
		t.Errorf("area through interface = %v", got)
	}

	// destruction timing unchanged: the referent lives until both go
	c.Release()
	if live != 1 {
		t.Fatalf("live = %d with cast handle outstanding, want 1", live)
	}
	s.Release()
	if live != 0 {
		t.Errorf("live = %d, want 0", live)
	}
}

func TestStaticCastSharedEmpty(t *testing.T) {
	c := NewShared[*circle](nil)
	s := StaticCast[shape](c)

	if s.Valid() || s.UseCount() != 0 {
		t.Error("cast of empty handle must be empty")
	}
}

func TestStaticCastSharedMismatchPanics(t *testing.T) {
	type cornered interface{ corners() int }

	live := 0
	c := NewShared(newCircle(&live, 1))
	defer c.Release()
	defer wantPanicKind(t, errors.PhaseCast, errors.KindTypeMismatch)()

	_ = StaticCast[cornered](c)
}

func TestDynamicCastShared(t *testing.T) {
	live := 0

	c := NewShared(newCircle(&live, 1))
	base := StaticCast[shape](c)

	t.Run("hit shares ownership", func(t *testing.T) {
		back := DynamicCast[*circle](base)
		if !back.Valid() {
			t.Fatal("downcast to the actual type should succeed")
		}
		if back.Get() != c.Get() {
			t.Error("downcast must recover the original referent")
		}
		if base.UseCount() != 3 {
			t.Errorf("count = %d, want 3", base.UseCount())
		}
		back.Release()
	})

	t.Run("miss returns empty without mutating the source", func(t *testing.T) {
		before := base.UseCount()
		miss := DynamicCast[*square](base)

		if miss.Valid() || miss.UseCount() != 0 || miss.Get() != nil {
			t.Error("failed downcast must produce an empty handle")
		}
		if base.UseCount() != before || !base.Valid() {
			t.Error("failed downcast must leave the source untouched")
		}
		if live != 1 {
			t.Errorf("live = %d, want 1", live)
		}
	})

	base.Release()
	c.Release()
	if live != 0 {
		t.Errorf("live = %d, want 0", live)
	}
}

func TestDynamicCastSharedEmpty(t *testing.T) {
	base := NewShared[shape](nil)
	d := DynamicCast[*circle](base)

	if d.Valid() {
		t.Error("cast of empty handle must be empty")
	}
}

func TestStaticCastOwned(t *testing.T) {
	live := 0

	c := NewOwned(newCircle(&live, 2))
	ref := c.Get()

	s := StaticCastOwned[shape](c)
	if c.Valid() {
		t.Error("cast must consume the exclusive source")
	}
	if !s.Valid() || !RefEqual(s.Get(), ref) {
		t.Error("cast result must own the original referent")
	}
	if live != 1 {
		t.Fatalf("live = %d, want 1", live)
	}

	s.Release()
	if live != 0 {
		t.Errorf("live = %d, want 0", live)
	}
}

func TestStaticCastOwnedMismatchPanics(t *testing.T) {
	type cornered interface{ corners() int }

	live := 0
	c := NewOwned(newCircle(&live, 1))
	defer c.Release()
	defer wantPanicKind(t, errors.PhaseCast, errors.KindTypeMismatch)()

	_ = StaticCastOwned[cornered](c)
}

func TestDynamicCastOwned(t *testing.T) {
	live := 0

	t.Run("hit consumes the source", func(t *testing.T) {
		c := NewOwned(newCircle(&live, 1))
		base := StaticCastOwned[shape](c)

		back := DynamicCastOwned[*circle](base)
		if base.Valid() {
			t.Error("successful downcast must consume the source")
		}
		if !back.Valid() {
			t.Fatal("downcast to the actual type should succeed")
		}

		back.Release()
		if live != 0 {
			t.Errorf("live = %d, want 0", live)
		}
	})

	t.Run("miss leaves the source intact", func(t *testing.T) {
		sq := NewOwned(newSquare(&live, 3))
		base := StaticCastOwned[shape](sq)

		miss := DynamicCastOwned[*circle](base)
		if miss.Valid() {
			t.Error("failed downcast must produce an empty handle")
		}
		if !base.Valid() {
			t.Error("failed downcast must not consume the source")
		}
		if live != 1 {
			t.Errorf("no referent may be lost or duplicated, live = %d", live)
		}

		base.Release()
		if live != 0 {
			t.Errorf("live = %d, want 0", live)
		}
	})
}

func TestDynamicCastOwnedEmpty(t *testing.T) {
	base := NewOwned[shape](nil)
	d := DynamicCastOwned[*circle](base)

	if d.Valid() {
		t.Error("cast of empty handle must be empty")
	}
}
