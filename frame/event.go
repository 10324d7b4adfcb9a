// Package frame implements the Loop/FrameHandle scheduler spec.md §4.6
// describes: a single dispatch thread owning exactly one Device, a
// CompiledQueue DAG walk per submitted FrameRequest, and the
// DependencyEvent latches that order work across frames.
//
// Grounded on the teacher's internal/thread package (the dispatch-thread
// primitive reused here verbatim as the Loop's "gl thread") and
// core/hub.go's cyclic Device/Loop/FrameHandle ownership, replaced per
// spec.md §9's Design Notes with arena IDs and a plain dispatch loop
// instead of manually counted smart pointers and a destroyer thread.
package frame

import "sync"

// DependencyEvent is the single-shot latch spec.md §3.1/§3.2 invariant 6
// describes: signaled exactly once with a success bit; a waiter
// registered before signaling is invoked at signal time, one registered
// after observes the cached bit immediately.
type DependencyEvent struct {
	mu       sync.Mutex
	signaled bool
	success  bool
	waiters  []func(bool)
}

// NewDependencyEvent returns an unsignaled event.
func NewDependencyEvent() *DependencyEvent {
	return &DependencyEvent{}
}

// Signal fires waiters exactly once with success, caching the bit for any
// waiter registered afterward. A second Signal call is a no-op.
func (e *DependencyEvent) Signal(success bool) {
	e.mu.Lock()
	if e.signaled {
		e.mu.Unlock()
		return
	}
	e.signaled = true
	e.success = success
	waiters := e.waiters
	e.waiters = nil
	e.mu.Unlock()

	for _, w := range waiters {
		w(success)
	}
}

// OnSignal registers cb to run once this event signals: immediately, with
// the cached bit, if it already has; otherwise queued for the next Signal.
func (e *DependencyEvent) OnSignal(cb func(bool)) {
	e.mu.Lock()
	if e.signaled {
		success := e.success
		e.mu.Unlock()
		cb(success)
		return
	}
	e.waiters = append(e.waiters, cb)
	e.mu.Unlock()
}

// Signaled reports whether Signal has fired, and if so, with what bit.
func (e *DependencyEvent) Signaled() (signaled, success bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.signaled, e.success
}

// WaitForAll registers cb to run exactly once, with success = the AND of
// every event's success bit, once all of events have signaled (spec.md
// §4.6 "waitForDependencies"). Matches testable property/scenario S6:
// waiters registered in any order over overlapping event sets each fire
// once, in the order their final dependency resolves.
func WaitForAll(events []*DependencyEvent, cb func(success bool)) {
	if len(events) == 0 {
		cb(true)
		return
	}

	var mu sync.Mutex
	remaining := len(events)
	allSuccess := true
	fired := false

	for _, ev := range events {
		ev.OnSignal(func(success bool) {
			mu.Lock()
			defer mu.Unlock()
			if fired {
				return
			}
			if !success {
				allSuccess = false
			}
			remaining--
			if remaining == 0 {
				fired = true
				cb(allSuccess)
			}
		})
	}
}

// SignalAll signals every event in events with success, cascading to
// whatever waiters are registered on each (spec.md §4.6
// "signalDependencies").
func SignalAll(events []*DependencyEvent, success bool) {
	for _, ev := range events {
		ev.Signal(success)
	}
}
