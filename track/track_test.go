package track

import (
	"testing"

	"github.com/wippyai/ownership/handle"
)

type session struct {
	live *int
	id   int
}

func newSession(live *int, id int) *session {
	*live++
	return &session{live: live, id: id}
}

func (s *session) Drop() { *s.live-- }

type recordingObserver struct {
	events []handle.Event
}

func (r *recordingObserver) OnOwnershipEvent(e handle.Event) {
	r.events = append(r.events, e)
}

func TestTrackerAccounting(t *testing.T) {
	tracker := NewTracker()
	handle.SetObserver(tracker)
	defer handle.SetObserver(nil)

	live := 0
	x := handle.NewShared(newSession(&live, 1))
	y := handle.NewShared(newSession(&live, 2))

	if got := tracker.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if tracker.Adopted() != 2 || tracker.Destroyed() != 0 {
		t.Errorf("adopted/destroyed = %d/%d, want 2/0", tracker.Adopted(), tracker.Destroyed())
	}

	c := x.Clone()
	if got := tracker.Len(); got != 2 {
		t.Errorf("cloning must not create lineages, Len() = %d", got)
	}

	c.Release()
	x.Release()
	y.Release()

	if got := tracker.Len(); got != 0 {
		t.Errorf("Len() = %d after full release, want 0", got)
	}
	if tracker.Destroyed() != 2 {
		t.Errorf("Destroyed() = %d, want 2", tracker.Destroyed())
	}
	if live != 0 {
		t.Errorf("live = %d, want 0", live)
	}
}

func TestTrackerLeakDetection(t *testing.T) {
	tracker := NewTracker()
	handle.SetObserver(tracker)
	defer handle.SetObserver(nil)

	live := 0
	kept := handle.NewShared(newSession(&live, 7))
	released := handle.NewShared(newSession(&live, 8))
	released.Release()

	leaked := tracker.Leaked()
	if len(leaked) != 1 {
		t.Fatalf("Leaked() = %d entries, want 1", len(leaked))
	}
	if s, ok := leaked[0].Value.(*session); !ok || s.id != 7 {
		t.Errorf("leaked entry = %#v, want session 7", leaked[0].Value)
	}
	if leaked[0].Count != 1 {
		t.Errorf("leaked count = %d, want 1", leaked[0].Count)
	}

	kept.Release()
	if got := tracker.Leaked(); len(got) != 0 {
		t.Errorf("Leaked() = %d entries after cleanup, want 0", len(got))
	}
}

func TestTrackerOwnedHandles(t *testing.T) {
	tracker := NewTracker()
	handle.SetObserver(tracker)
	defer handle.SetObserver(nil)

	live := 0
	a := handle.NewOwned(newSession(&live, 1))
	b := a.Move()

	if got := tracker.Len(); got != 1 {
		t.Errorf("Len() = %d after move, want 1", got)
	}

	b.Release()
	if got := tracker.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
	if live != 0 {
		t.Errorf("live = %d, want 0", live)
	}
}

func TestTrackerEach(t *testing.T) {
	tracker := NewTracker()
	handle.SetObserver(tracker)
	defer handle.SetObserver(nil)

	live := 0
	x := handle.NewShared(newSession(&live, 1))
	y := handle.NewShared(newSession(&live, 2))

	seen := 0
	tracker.Each(func(e Entry) bool {
		seen++
		return true
	})
	if seen != 2 {
		t.Errorf("Each visited %d entries, want 2", seen)
	}

	// early stop
	seen = 0
	tracker.Each(func(e Entry) bool {
		seen++
		return false
	})
	if seen != 1 {
		t.Errorf("Each visited %d entries after stop, want 1", seen)
	}

	x.Release()
	y.Release()
}

func TestTrackerSubscribe(t *testing.T) {
	tracker := NewTracker()
	handle.SetObserver(tracker)
	defer handle.SetObserver(nil)

	rec := &recordingObserver{}
	tracker.Subscribe(rec)

	live := 0
	x := handle.NewShared(newSession(&live, 1))
	x.Release()

	if len(rec.events) != 2 {
		t.Fatalf("subscriber saw %d events, want 2", len(rec.events))
	}
	if rec.events[0].Type != handle.EventAdopt || rec.events[1].Type != handle.EventDestroy {
		t.Errorf("subscriber events = %v/%v", rec.events[0].Type, rec.events[1].Type)
	}

	tracker.Unsubscribe(rec)
	y := handle.NewShared(newSession(&live, 2))
	y.Release()

	if len(rec.events) != 2 {
		t.Errorf("unsubscribed observer still receiving events")
	}
}

func TestTrackerReset(t *testing.T) {
	tracker := NewTracker()
	handle.SetObserver(tracker)
	defer handle.SetObserver(nil)

	live := 0
	x := handle.NewShared(newSession(&live, 1))

	tracker.Reset()
	if tracker.Len() != 0 || tracker.Adopted() != 0 || tracker.Destroyed() != 0 {
		t.Error("Reset did not clear accounting")
	}

	x.Release()
}
