package frame

import (
	"sync"
	"testing"
)

func TestDependencyEventSignalOnce(t *testing.T) {
	ev := NewDependencyEvent()
	var calls []bool
	ev.OnSignal(func(success bool) { calls = append(calls, success) })
	ev.Signal(true)
	ev.Signal(false) // second Signal is a no-op

	if len(calls) != 1 || !calls[0] {
		t.Fatalf("want one callback with true, got %v", calls)
	}
	signaled, success := ev.Signaled()
	if !signaled || !success {
		t.Fatalf("Signaled() = (%v, %v), want (true, true)", signaled, success)
	}
}

func TestDependencyEventOnSignalAfterFireUsesCachedBit(t *testing.T) {
	ev := NewDependencyEvent()
	ev.Signal(false)

	called := false
	var got bool
	ev.OnSignal(func(success bool) { called = true; got = success })

	if !called || got {
		t.Fatalf("late waiter should fire immediately with cached false, got called=%v success=%v", called, got)
	}
}

func TestWaitForAllEmptySetFiresImmediatelyTrue(t *testing.T) {
	called := false
	WaitForAll(nil, func(success bool) {
		called = true
		if !success {
			t.Fatalf("empty event set should succeed")
		}
	})
	if !called {
		t.Fatalf("callback never invoked")
	}
}

func TestWaitForAllSuccessIsAND(t *testing.T) {
	e1, e2 := NewDependencyEvent(), NewDependencyEvent()
	var got bool
	WaitForAll([]*DependencyEvent{e1, e2}, func(success bool) { got = success })

	e1.Signal(true)
	e2.Signal(false)

	if got {
		t.Fatalf("expected AND of {true,false} = false")
	}
}

// TestDependencyCoalescing matches spec.md §8 scenario S6: three events
// {e1,e2,e3}; waiters W1(e1), W2(e1,e2), W3(e1,e2,e3); signaled in order
// e2,e1,e3. Expected callback order W1, W2, W3, each exactly once, with
// its own AND of its events' success bits.
func TestDependencyCoalescing(t *testing.T) {
	e1, e2, e3 := NewDependencyEvent(), NewDependencyEvent(), NewDependencyEvent()

	var mu sync.Mutex
	var order []string
	record := func(name string) func(bool) {
		return func(success bool) {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			if !success {
				t.Errorf("%s: want success=true", name)
			}
		}
	}

	WaitForAll([]*DependencyEvent{e1}, record("W1"))
	WaitForAll([]*DependencyEvent{e1, e2}, record("W2"))
	WaitForAll([]*DependencyEvent{e1, e2, e3}, record("W3"))

	e2.Signal(true)
	e1.Signal(true)
	e3.Signal(true)

	want := []string{"W1", "W2", "W3"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestSignalAllCascades(t *testing.T) {
	events := []*DependencyEvent{NewDependencyEvent(), NewDependencyEvent(), NewDependencyEvent()}
	fired := make([]bool, len(events))
	for i, ev := range events {
		i := i
		ev.OnSignal(func(bool) { fired[i] = true })
	}

	SignalAll(events, true)

	for i, f := range fired {
		if !f {
			t.Fatalf("event %d never fired", i)
		}
	}
}
