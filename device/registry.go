package device

import (
	"sync"

	"github.com/kestrelgpu/vkrt/arena"
	"github.com/kestrelgpu/vkrt/gpusync"
	"github.com/kestrelgpu/vkrt/object"
)

// Registry is the device's ObjectRegistry (spec.md §3.1): an identity
// manager plus Storage table per owned-object kind, and a pending-
// destruction list gated on fence retirement so no wrapper is torn down
// before every fence that could reference it has signaled (invariant 1 in
// spec.md §3.2).
type Registry struct {
	bufferIDs  *arena.IdentityManager[arena.BufferMarker]
	imageIDs   *arena.IdentityManager[arena.ImageMarker]
	viewIDs    *arena.IdentityManager[arena.ImageViewMarker]
	samplerIDs *arena.IdentityManager[arena.SamplerMarker]

	buffers  *arena.Storage[*object.Buffer, arena.BufferMarker]
	images   *arena.Storage[*object.Image, arena.ImageMarker]
	views    *arena.Storage[*object.ImageView, arena.ImageViewMarker]
	samplers *arena.Storage[*object.Sampler, arena.SamplerMarker]

	mu      sync.Mutex
	pending []*pendingDestroy
}

type pendingDestroy struct {
	fn    func()
	fired bool
}

func newRegistry() *Registry {
	return &Registry{
		bufferIDs:  arena.NewIdentityManager[arena.BufferMarker](),
		imageIDs:   arena.NewIdentityManager[arena.ImageMarker](),
		viewIDs:    arena.NewIdentityManager[arena.ImageViewMarker](),
		samplerIDs: arena.NewIdentityManager[arena.SamplerMarker](),
		buffers:    arena.NewStorage[*object.Buffer, arena.BufferMarker](256),
		images:     arena.NewStorage[*object.Image, arena.ImageMarker](256),
		views:      arena.NewStorage[*object.ImageView, arena.ImageViewMarker](256),
		samplers:   arena.NewStorage[*object.Sampler, arena.SamplerMarker](64),
	}
}

// InsertBuffer assigns buf a fresh BufferID and tracks it as live.
func (reg *Registry) InsertBuffer(buf *object.Buffer) arena.BufferID {
	id := reg.bufferIDs.Alloc()
	reg.buffers.Insert(id, buf)
	return id
}

// Buffer resolves id to its live Buffer, or (nil, false) if id is stale.
func (reg *Registry) Buffer(id arena.BufferID) (*object.Buffer, bool) { return reg.buffers.Get(id) }

// InsertImage assigns img a fresh ImageID and tracks it as live.
func (reg *Registry) InsertImage(img *object.Image) arena.ImageID {
	id := reg.imageIDs.Alloc()
	reg.images.Insert(id, img)
	return id
}

// Image resolves id to its live Image, or (nil, false) if id is stale.
func (reg *Registry) Image(id arena.ImageID) (*object.Image, bool) { return reg.images.Get(id) }

// InsertView assigns v a fresh ImageViewID and tracks it as live.
func (reg *Registry) InsertView(v *object.ImageView) arena.ImageViewID {
	id := reg.viewIDs.Alloc()
	reg.views.Insert(id, v)
	return id
}

// View resolves id to its live ImageView, or (nil, false) if id is stale.
func (reg *Registry) View(id arena.ImageViewID) (*object.ImageView, bool) { return reg.views.Get(id) }

// InsertSampler assigns s a fresh SamplerID and tracks it as live.
func (reg *Registry) InsertSampler(s *object.Sampler) arena.SamplerID {
	id := reg.samplerIDs.Alloc()
	reg.samplers.Insert(id, s)
	return id
}

// Sampler resolves id to its live Sampler, or (nil, false) if id is stale.
func (reg *Registry) Sampler(id arena.SamplerID) (*object.Sampler, bool) { return reg.samplers.Get(id) }

// RemoveBuffer drops buf's entry and releases its ID for reuse. Callers
// must route the actual vkDestroyBuffer call through DestroyWhenIdle.
func (reg *Registry) RemoveBuffer(id arena.BufferID) {
	reg.buffers.Remove(id)
	reg.bufferIDs.Release(id)
}

// RemoveImage drops img's entry and releases its ID for reuse.
func (reg *Registry) RemoveImage(id arena.ImageID) {
	reg.images.Remove(id)
	reg.imageIDs.Release(id)
}

// RemoveView drops v's entry and releases its ID for reuse.
func (reg *Registry) RemoveView(id arena.ImageViewID) {
	reg.views.Remove(id)
	reg.viewIDs.Release(id)
}

// RemoveSampler drops s's entry and releases its ID for reuse.
func (reg *Registry) RemoveSampler(id arena.SamplerID) {
	reg.samplers.Remove(id)
	reg.samplerIDs.Release(id)
}

// DestroyWhenIdle schedules fn — typically a wrapper's Destroy method bound
// to its handle — to run once fence signals, or immediately if fence is
// nil (the object was never submitted with GPU work pending). This is the
// mechanism invariant 1 describes: destruction deferred to "after all
// fences that could reference it have signaled".
func (reg *Registry) DestroyWhenIdle(fence *gpusync.Fence, fn func()) {
	if fence == nil {
		fn()
		return
	}
	entry := &pendingDestroy{fn: fn}
	reg.mu.Lock()
	reg.pending = append(reg.pending, entry)
	reg.mu.Unlock()
	fence.OnRelease(func() {
		reg.mu.Lock()
		already := entry.fired
		entry.fired = true
		reg.mu.Unlock()
		if !already {
			entry.fn()
		}
	})
}

// drain runs every destructor that has not yet fired, for use during device
// shutdown after vkDeviceWaitIdle guarantees no fence can still be pending.
func (reg *Registry) drain() {
	reg.mu.Lock()
	pending := reg.pending
	reg.pending = nil
	reg.mu.Unlock()
	for _, entry := range pending {
		reg.mu.Lock()
		already := entry.fired
		entry.fired = true
		reg.mu.Unlock()
		if !already {
			entry.fn()
		}
	}
}
