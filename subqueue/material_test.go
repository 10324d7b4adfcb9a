package subqueue

import "testing"

// TestMaterialRequestMergeKeepsLatestVersionPerID matches spec.md §4.9:
// a MaterialRequest remembers the latest version per MaterialId.
func TestMaterialRequestMergeKeepsLatestVersionPerID(t *testing.T) {
	req := newMaterialRequest()

	req.merge(MaterialInputData{Add: []MaterialEntry{{ID: 7}}}, nil, nil)
	req.merge(MaterialInputData{Add: []MaterialEntry{{ID: 7}, {ID: 9}}}, nil, nil)

	if len(req.latest) != 2 {
		t.Fatalf("want 2 latest entries, got %d", len(req.latest))
	}
	if _, ok := req.latest[7]; !ok {
		t.Fatal("want material 7 present")
	}
	if _, ok := req.latest[9]; !ok {
		t.Fatal("want material 9 present")
	}
}

// TestMaterialRequestAddAfterRemoveUnremoves matches the coalescing rule:
// a later Add for an id already queued for Remove wins.
func TestMaterialRequestAddAfterRemoveUnremoves(t *testing.T) {
	req := newMaterialRequest()
	req.merge(MaterialInputData{Remove: []MaterialId{3}}, nil, nil)
	if !req.removed[3] {
		t.Fatal("want material 3 queued for removal")
	}

	req.merge(MaterialInputData{Add: []MaterialEntry{{ID: 3}}}, nil, nil)
	if req.removed[3] {
		t.Fatal("want material 3 un-removed after a later Add")
	}
	if _, ok := req.latest[3]; !ok {
		t.Fatal("want material 3 present in latest after a later Add")
	}
}

// TestMaterialRequestRemoveAfterAddDropsLatest mirrors the same rule in
// the other direction.
func TestMaterialRequestRemoveAfterAddDropsLatest(t *testing.T) {
	req := newMaterialRequest()
	req.merge(MaterialInputData{Add: []MaterialEntry{{ID: 5}}}, nil, nil)
	req.merge(MaterialInputData{Remove: []MaterialId{5}}, nil, nil)

	if _, ok := req.latest[5]; ok {
		t.Fatal("want material 5 dropped from latest after a later Remove")
	}
	if !req.removed[5] {
		t.Fatal("want material 5 queued for removal")
	}
}

// TestMaterialCompilerSubmitCoalescesWhileCompiling matches spec.md §4.9:
// only one compilation at a time per target attachment, with overlapping
// submissions coalesced into the pending request.
func TestMaterialCompilerSubmitCoalescesWhileCompiling(t *testing.T) {
	mc := &MaterialCompiler{compiling: map[string]bool{"geometry": true}, pending: map[string]*MaterialRequest{}}

	var called int
	mc.Submit("geometry", MaterialInputData{Add: []MaterialEntry{{ID: 1}}}, nil, func(error) { called++ })
	mc.Submit("geometry", MaterialInputData{Add: []MaterialEntry{{ID: 2}}}, nil, func(error) { called++ })

	pending := mc.pending["geometry"]
	if pending == nil {
		t.Fatal("want a pending request coalesced for the in-flight attachment")
	}
	if len(pending.latest) != 2 {
		t.Fatalf("want 2 coalesced materials, got %d", len(pending.latest))
	}
	if len(pending.callbacks) != 2 {
		t.Fatalf("want 2 coalesced callbacks, got %d", len(pending.callbacks))
	}
	if called != 0 {
		t.Fatal("callbacks should not fire until the in-flight compile completes")
	}
}
