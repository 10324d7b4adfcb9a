package subqueue

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kestrelgpu/vkrt/frame"
	"github.com/kestrelgpu/vkrt/texset"
)

// MaterialId identifies one material across MaterialInputData batches.
type MaterialId uint64

// MaterialEntry is one material's bindless slot layout to write, submitted
// as part of a MaterialInputData add set.
type MaterialEntry struct {
	ID     MaterialId
	Layout texset.MaterialLayout
}

// MaterialInputData is one caller-submitted batch: materials to add or
// update, plus materials to remove (spec.md §4.9 "a set of materials to
// add/update plus a set to remove").
type MaterialInputData struct {
	Add    []MaterialEntry
	Remove []MaterialId
}

// MaterialRequest coalesces overlapping MaterialInputData submissions
// targeting the same attachment while a compile is already in flight: it
// remembers the latest version per MaterialId, every forwarded dependency
// event, and every caller callback (spec.md §4.9 "overlapping requests are
// coalesced in a MaterialRequest record that remembers the latest version
// per MaterialId, forwarded dependency events, and user callbacks").
type MaterialRequest struct {
	latest  map[MaterialId]MaterialEntry
	removed map[MaterialId]bool

	events    []*frame.DependencyEvent
	callbacks []func(error)
}

func newMaterialRequest() *MaterialRequest {
	return &MaterialRequest{latest: map[MaterialId]MaterialEntry{}, removed: map[MaterialId]bool{}}
}

// merge folds data into the request, keeping only the latest entry per
// MaterialId: an Add after a Remove un-removes it, and vice versa.
func (r *MaterialRequest) merge(data MaterialInputData, events []*frame.DependencyEvent, callback func(error)) {
	for _, e := range data.Add {
		r.latest[e.ID] = e
		delete(r.removed, e.ID)
	}
	for _, id := range data.Remove {
		r.removed[id] = true
		delete(r.latest, id)
	}
	r.events = append(r.events, events...)
	if callback != nil {
		r.callbacks = append(r.callbacks, callback)
	}
}

// MaterialCompiler streams MaterialInputData batches into a TextureSet's
// descriptor slots, with at most one compilation in flight per target
// attachment (spec.md §4.9 "MaterialCompiler"). It writes descriptors
// only; it does not stage any buffer bytes.
type MaterialCompiler struct {
	ts *texset.TextureSet

	mu        sync.Mutex
	compiling map[string]bool
	pending   map[string]*MaterialRequest
}

// NewMaterialCompiler builds a MaterialCompiler that writes into ts.
func NewMaterialCompiler(ts *texset.TextureSet) *MaterialCompiler {
	return &MaterialCompiler{
		ts:        ts,
		compiling: map[string]bool{},
		pending:   map[string]*MaterialRequest{},
	}
}

// Submit streams data into attachment's material set. If a compile for
// attachment is already running, data is coalesced into the pending
// request that follows it instead of starting a second, concurrent
// compile (spec.md §4.9 "only one compilation at a time per target
// attachment").
func (mc *MaterialCompiler) Submit(attachment string, data MaterialInputData, events []*frame.DependencyEvent, callback func(error)) {
	mc.mu.Lock()
	if mc.compiling[attachment] {
		req := mc.pending[attachment]
		if req == nil {
			req = newMaterialRequest()
			mc.pending[attachment] = req
		}
		req.merge(data, events, callback)
		mc.mu.Unlock()
		return
	}

	mc.compiling[attachment] = true
	req := newMaterialRequest()
	req.merge(data, events, callback)
	mc.mu.Unlock()

	go mc.run(attachment, req)
}

func (mc *MaterialCompiler) run(attachment string, req *MaterialRequest) {
	frame.WaitForAll(req.events, func(success bool) {
		var err error
		if success {
			err = mc.apply(req)
		} else {
			err = fmt.Errorf("subqueue: material compile for %q aborted: a dependency failed", attachment)
		}
		for _, cb := range req.callbacks {
			cb(err)
		}

		mc.mu.Lock()
		next := mc.pending[attachment]
		delete(mc.pending, attachment)
		if next != nil {
			mc.mu.Unlock()
			mc.run(attachment, next)
			return
		}
		mc.compiling[attachment] = false
		mc.mu.Unlock()
	})
}

// apply writes every surviving add in deterministic MaterialId order. A
// caller that wants a removed material's slots to read as empty again
// submits an Add entry whose Layout points those slots back at
// TextureSet.Sentinels — the compiler itself holds no record of which
// slots a given MaterialId previously occupied.
func (mc *MaterialCompiler) apply(req *MaterialRequest) error {
	ids := make([]MaterialId, 0, len(req.latest))
	for id := range req.latest {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		mc.ts.Write(req.latest[id].Layout)
	}
	return nil
}
