package handle

import (
	"sync"
)

// Event types for handle lifecycle notifications.
type EventType uint8

const (
	EventAdopt   EventType = iota // fresh value adopted, count 1
	EventShare                    // lineage gained a co-owner
	EventRelease                  // lineage lost a co-owner, referent alive
	EventDestroy                  // last owner released, referent dropped
	EventMove                     // exclusive ownership transferred
)

var eventNames = [...]string{
	EventAdopt:   "adopt",
	EventShare:   "share",
	EventRelease: "release",
	EventDestroy: "destroy",
	EventMove:    "move",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event describes one lifecycle transition. Lineage identifies the
// counter cell for shared handles and the referent for exclusive ones;
// it is stable for the lineage's lifetime and may be reused afterwards.
type Event struct {
	Value   any
	Lineage uintptr
	Count   int64
	Type    EventType
}

// Observer receives handle lifecycle events.
type Observer interface {
	OnOwnershipEvent(Event)
}

var (
	obsMu    sync.RWMutex
	observer Observer
)

// SetObserver installs the package-wide lifecycle observer. Pass nil to
// remove it. Observers run synchronously inside handle operations and
// must not call back into the handle being mutated.
func SetObserver(o Observer) {
	obsMu.Lock()
	observer = o
	obsMu.Unlock()
}

func notify(e Event) {
	obsMu.RLock()
	o := observer
	obsMu.RUnlock()
	if o != nil {
		o.OnOwnershipEvent(e)
	}
	debugf("%s lineage=%#x count=%d type=%s", e.Type, e.Lineage, e.Count, typeName(e.Value))
}

// observed reports whether any observer or debug logger is active,
// letting the hot paths skip event construction entirely.
func observed() bool {
	if debug {
		return true
	}
	obsMu.RLock()
	defer obsMu.RUnlock()
	return observer != nil
}
