// Package track provides live-lineage accounting for ownership handles.
//
// A Tracker consumes the handle package's lifecycle events and maintains
// the set of lineages that are currently alive, which makes leaks
// observable: after a workload completes, anything still reported by
// Leaked was adopted but never fully released.
//
//	tracker := track.NewTracker()
//	handle.SetObserver(tracker)
//	defer handle.SetObserver(nil)
//
//	runWorkload()
//
//	for _, e := range tracker.Leaked() {
//	    log.Printf("leaked %T (count %d)", e.Value, e.Count)
//	}
//
// Downstream observers can subscribe to the tracker for their own
// processing (logging, metrics) without replacing the package observer.
package track
