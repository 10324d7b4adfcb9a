package queue

import (
	"sync"

	"github.com/kestrelgpu/vkrt/instance"
	"github.com/kestrelgpu/vkrt/vk"
)

// DeviceQueueFamily owns every VkQueue created on one queue family index,
// tracking which are free and resolving acquire requests synchronously when
// possible and asynchronously (via a FIFO of Waiters) otherwise, per
// spec.md §3.1's DeviceQueueFamily entity and §3.2 invariant 5 ("a Waiter is
// either resolved before AcquireQueue returns, or queued in arrival order
// and resolved no later than the next ReleaseQueue of a matching queue").
type DeviceQueueFamily struct {
	mu sync.Mutex

	index      uint32
	properties instance.QueueFamily

	queues []*DeviceQueue
	free   []*DeviceQueue

	waiters []*Waiter
}

// New wraps count pre-created VkQueue handles on family index into a
// DeviceQueueFamily with every queue initially free.
func New(index uint32, properties instance.QueueFamily, handles []vk.Queue) *DeviceQueueFamily {
	f := &DeviceQueueFamily{index: index, properties: properties}
	f.queues = make([]*DeviceQueue, len(handles))
	for i, h := range handles {
		q := &DeviceQueue{handle: h, family: f}
		f.queues[i] = q
		f.free = append(f.free, q)
	}
	return f
}

// Index returns the VkQueueFamilyIndex this family was built from.
func (f *DeviceQueueFamily) Index() uint32 { return f.index }

// Supports reports whether every bit set in ops is backed by this family's
// queue flags.
func (f *DeviceQueueFamily) Supports(ops Ops) bool {
	if ops&OpsGraphics != 0 && !f.properties.HasGraphics() {
		return false
	}
	if ops&OpsCompute != 0 && !f.properties.HasCompute() {
		return false
	}
	if ops&OpsTransfer != 0 && !f.properties.HasTransfer() {
		return false
	}
	if ops&OpsPresent != 0 && !f.properties.SupportsPresent {
		return false
	}
	return true
}

// Acquire returns an immediately free queue if one exists, assigning owner
// as its new Owner. Otherwise it registers a Waiter and blocks until
// Release grants one, returning nil if owner goes invalid first.
func (f *DeviceQueueFamily) Acquire(owner Owner, ops Ops) *DeviceQueue {
	f.mu.Lock()
	if q := f.popFree(); q != nil {
		q.owner = owner
		f.mu.Unlock()
		return q
	}

	w := &Waiter{ops: ops, owner: owner, synchronous: true, done: make(chan *DeviceQueue, 1)}
	f.waiters = append(f.waiters, w)
	f.mu.Unlock()

	return <-w.done
}

// AcquireAsync behaves like Acquire but never blocks: if no queue is
// immediately free, acquireCb fires later from within Release, and
// invalidateCb fires instead if owner.Valid() is false by then.
func (f *DeviceQueueFamily) AcquireAsync(owner Owner, ops Ops, acquireCb func(*DeviceQueue), invalidateCb func()) {
	f.mu.Lock()
	if q := f.popFree(); q != nil {
		q.owner = owner
		f.mu.Unlock()
		acquireCb(q)
		return
	}
	f.waiters = append(f.waiters, &Waiter{ops: ops, owner: owner, acquireCb: acquireCb, invalidate: invalidateCb})
	f.mu.Unlock()
}

func (f *DeviceQueueFamily) popFree() *DeviceQueue {
	if n := len(f.free); n > 0 {
		q := f.free[n-1]
		f.free = f.free[:n-1]
		return q
	}
	return nil
}

// Release returns q to the family's free list and hands it straight to the
// oldest still-valid Waiter instead, if any are queued (spec.md §3.2
// invariant 5). Invalid waiters ahead of the first valid one are skipped
// and have invalidate called.
func (f *DeviceQueueFamily) Release(q *DeviceQueue) {
	f.mu.Lock()
	q.owner = nil

	for len(f.waiters) > 0 {
		w := f.waiters[0]
		f.waiters = f.waiters[1:]

		if !w.owner.Valid() {
			if w.synchronous {
				w.done <- nil
			} else if w.invalidate != nil {
				f.mu.Unlock()
				w.invalidate()
				f.mu.Lock()
			}
			continue
		}

		q.owner = w.owner
		f.mu.Unlock()
		if w.synchronous {
			w.done <- q
		} else {
			w.acquireCb(q)
		}
		return
	}

	f.free = append(f.free, q)
	f.mu.Unlock()
}

// Len returns the total number of queues in this family, free or owned.
func (f *DeviceQueueFamily) Len() int { return len(f.queues) }

// FreeLen returns the number of queues currently free, used by the
// acquired+free=n testable property.
func (f *DeviceQueueFamily) FreeLen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.free)
}
