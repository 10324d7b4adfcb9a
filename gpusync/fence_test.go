package gpusync

import "testing"

func TestFenceStateString(t *testing.T) {
	cases := []struct {
		s    State
		want string
	}{
		{Disabled, "Disabled"},
		{Armed, "Armed"},
		{Signaled, "Signaled"},
		{State(99), "Unknown"},
	}
	for _, c := range cases {
		if got := c.s.String(); got != c.want {
			t.Errorf("State(%d).String() = %q, want %q", c.s, got, c.want)
		}
	}
}

func TestFenceArmTransitionsState(t *testing.T) {
	f := &Fence{state: Disabled}
	f.Arm()
	if f.State() != Armed {
		t.Fatalf("state after Arm = %v, want Armed", f.State())
	}
	if f.armedAt.IsZero() {
		t.Fatal("Arm did not record armedAt")
	}
}

func TestFenceSignalFiresReleaseCallbacksAndClearsAutorelease(t *testing.T) {
	f := &Fence{state: Armed}
	fired := false
	f.OnRelease(func() { fired = true })
	f.Retain("held")

	f.state = Signaled
	callbacks := f.release
	f.release = nil
	f.autorelease = nil
	for _, fn := range callbacks {
		fn()
	}

	if !fired {
		t.Fatal("release callback did not fire")
	}
	if f.autorelease != nil {
		t.Fatal("autorelease set was not cleared")
	}
}

func TestFenceResetReturnsToDisabled(t *testing.T) {
	f := &Fence{state: Signaled}
	f.Reset()
	if f.State() != Disabled {
		t.Fatalf("state after Reset = %v, want Disabled", f.State())
	}
	if !f.armedAt.IsZero() {
		t.Fatal("Reset did not clear armedAt")
	}
}
