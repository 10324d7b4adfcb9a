package gpusync

import "testing"

func TestSemaphoreResetRequiresWaitedCaughtUpAndNotInUse(t *testing.T) {
	s := &Semaphore{}
	s.MarkSignaled()
	if s.Reset() {
		t.Fatal("Reset should fail: signaled but not waited, and still in-use")
	}

	s.MarkWaited()
	if s.Reset() {
		t.Fatal("Reset should fail while in-use")
	}

	s.ClearInUse()
	if !s.Reset() {
		t.Fatal("Reset should succeed once waited == signaled and not in-use")
	}
	if s.Timeline() != 1 {
		t.Fatalf("Timeline after first Reset = %d, want 1", s.Timeline())
	}
}

func TestSemaphoreResetBumpsTimelineOnEachSuccess(t *testing.T) {
	s := &Semaphore{}
	for i := uint64(1); i <= 3; i++ {
		s.MarkSignaled()
		s.MarkWaited()
		s.ClearInUse()
		if !s.Reset() {
			t.Fatalf("Reset %d failed unexpectedly", i)
		}
		if s.Timeline() != i {
			t.Fatalf("Timeline = %d, want %d", s.Timeline(), i)
		}
	}
}

func TestSemaphoreInUseReflectsMarkSignaled(t *testing.T) {
	s := &Semaphore{}
	if s.InUse() {
		t.Fatal("fresh semaphore should not be in-use")
	}
	s.MarkSignaled()
	if !s.InUse() {
		t.Fatal("MarkSignaled should set in-use")
	}
}
