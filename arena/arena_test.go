package arena

import "testing"

func TestIdentityManagerReusesWithBumpedEpoch(t *testing.T) {
	im := NewIdentityManager[bufferMarker]()

	a := im.Alloc()
	b := im.Alloc()
	if a.Index() == b.Index() {
		t.Fatalf("expected distinct indices, got %v and %v", a, b)
	}

	im.Release(a)
	if got := im.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}

	c := im.Alloc()
	if c.Index() != a.Index() {
		t.Fatalf("expected reused index %d, got %d", a.Index(), c.Index())
	}
	if c.Epoch() <= a.Epoch() {
		t.Fatalf("expected bumped epoch > %d, got %d", a.Epoch(), c.Epoch())
	}
}

func TestStorageEpochInvalidatesStaleID(t *testing.T) {
	im := NewIdentityManager[bufferMarker]()
	st := NewStorage[string, bufferMarker](0)

	id := im.Alloc()
	st.Insert(id, "first")
	if v, ok := st.Get(id); !ok || v != "first" {
		t.Fatalf("Get(id) = %q, %v; want first, true", v, ok)
	}

	st.Remove(id)
	im.Release(id)

	reused := im.Alloc() // same index, epoch+1
	if reused.Index() != id.Index() {
		t.Fatalf("expected index reuse")
	}
	st.Insert(reused, "second")

	// The stale ID must not resolve to the new occupant.
	if _, ok := st.Get(id); ok {
		t.Fatalf("Get(stale id) succeeded, want not-found")
	}
	if v, ok := st.Get(reused); !ok || v != "second" {
		t.Fatalf("Get(reused) = %q, %v; want second, true", v, ok)
	}
}

func TestStorageForEachStopsEarly(t *testing.T) {
	im := NewIdentityManager[imageMarker]()
	st := NewStorage[int, imageMarker](0)

	ids := make([]ID[imageMarker], 5)
	for i := range ids {
		ids[i] = im.Alloc()
		st.Insert(ids[i], i)
	}

	seen := 0
	st.ForEach(func(ID[imageMarker], int) bool {
		seen++
		return seen < 2
	})
	if seen != 2 {
		t.Fatalf("ForEach visited %d items, want 2 (early stop)", seen)
	}
}

func TestStorageMutate(t *testing.T) {
	im := NewIdentityManager[fenceMarker]()
	st := NewStorage[int, fenceMarker](0)
	id := im.Alloc()
	st.Insert(id, 1)

	ok := st.Mutate(id, func(v *int) { *v += 41 })
	if !ok {
		t.Fatal("Mutate returned false for live id")
	}
	v, _ := st.Get(id)
	if v != 42 {
		t.Fatalf("Get(id) = %d, want 42", v)
	}

	unknown := NewID[fenceMarker](999, 1)
	if st.Mutate(unknown, func(*int) {}) {
		t.Fatal("Mutate returned true for unknown id")
	}
}
