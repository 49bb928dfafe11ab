package track

import (
	"sync"

	"github.com/wippyai/ownership/handle"
)

// Entry is a live lineage snapshot.
type Entry struct {
	Value   any
	Lineage uintptr
	Count   int64
}

// Tracker accounts for live lineages by consuming handle lifecycle
// events. Install it with handle.SetObserver. It answers "what is still
// alive" (leak detection) and fans events out to subscribers.
//
// The tracker locks internally: unlike the handles themselves it may be
// read from any goroutine.
type Tracker struct {
	mu        sync.Mutex
	live      map[uintptr]Entry
	adopted   uint64
	destroyed uint64

	obsMu     sync.RWMutex
	observers []handle.Observer
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		live: make(map[uintptr]Entry, 16),
	}
}

// OnOwnershipEvent implements handle.Observer.
func (t *Tracker) OnOwnershipEvent(e handle.Event) {
	t.mu.Lock()
	switch e.Type {
	case handle.EventAdopt:
		t.adopted++
		t.live[e.Lineage] = Entry{Value: e.Value, Lineage: e.Lineage, Count: e.Count}
	case handle.EventShare, handle.EventRelease, handle.EventMove:
		t.live[e.Lineage] = Entry{Value: e.Value, Lineage: e.Lineage, Count: e.Count}
	case handle.EventDestroy:
		t.destroyed++
		delete(t.live, e.Lineage)
	}
	t.mu.Unlock()

	t.notify(e)
}

// Len returns the number of live lineages.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Adopted returns the total number of adoptions observed.
func (t *Tracker) Adopted() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.adopted
}

// Destroyed returns the total number of destructions observed.
func (t *Tracker) Destroyed() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.destroyed
}

// Each iterates over live lineages until fn returns false.
func (t *Tracker) Each(fn func(Entry) bool) {
	t.mu.Lock()
	entries := make([]Entry, 0, len(t.live))
	for _, e := range t.live {
		entries = append(entries, e)
	}
	t.mu.Unlock()

	for _, e := range entries {
		if !fn(e) {
			return
		}
	}
}

// Leaked returns a snapshot of lineages that are still live. An empty
// result after a workload means every adopted value was destroyed.
func (t *Tracker) Leaked() []Entry {
	var out []Entry
	t.Each(func(e Entry) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Reset clears all accounting.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.live = make(map[uintptr]Entry, 16)
	t.adopted = 0
	t.destroyed = 0
}

// Subscribe adds a downstream observer for lifecycle events.
func (t *Tracker) Subscribe(o handle.Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes a downstream observer.
func (t *Tracker) Unsubscribe(o handle.Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

func (t *Tracker) notify(e handle.Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnOwnershipEvent(e)
	}
}
