// Package queue implements the per-queue-family scheduler spec.md §4.3
// describes: a DeviceQueueFamily holding a free list of DeviceQueues plus a
// FIFO of Waiters, and the DeviceQueue acquire/release/submit protocol.
//
// Grounded on the teacher's hal/vulkan/queue.go and the queue half of
// hal/vulkan/device.go (family enumeration, submit's wait/signal semaphore
// gathering), generalized to the spec's synchronous-then-async waiter
// resolution (invariant 5 in spec.md §3.2).
package queue

import (
	"fmt"
	"sync"

	"github.com/kestrelgpu/vkrt/command"
	"github.com/kestrelgpu/vkrt/gpusync"
	"github.com/kestrelgpu/vkrt/vk"
)

// Ops is a bitmask of operation classes a caller needs a queue for.
type Ops uint32

const (
	OpsGraphics Ops = 1 << iota
	OpsCompute
	OpsTransfer
	OpsPresent
)

// Owner identifies whatever acquired a DeviceQueue: either a frame-scoped
// or loop-scoped requester (spec.md §3.1's DeviceQueueFamily wait list).
type Owner interface {
	// Valid reports whether this owner is still alive; an owner that has
	// been invalidated between enqueuing as a Waiter and being granted a
	// queue triggers invalidateCb instead of acquireCb.
	Valid() bool
}

// Waiter is a pending acquirer registered on a family because no queue was
// free at request time.
type Waiter struct {
	ops         Ops
	owner       Owner
	acquireCb   func(*DeviceQueue)
	invalidate  func()
	synchronous bool
	done        chan *DeviceQueue // used only when synchronous
}

// DeviceQueue wraps one VkQueue, its current owner (nil when free), and a
// pre-warmed CommandPool list (spec.md §3.1).
type DeviceQueue struct {
	mu sync.Mutex

	handle vk.Queue
	family *DeviceQueueFamily

	owner Owner
	pools []*command.Pool
}

// Handle returns the underlying VkQueue.
func (q *DeviceQueue) Handle() vk.Queue { return q.handle }

// Owner returns whatever currently owns this queue, or nil if free.
func (q *DeviceQueue) Owner() Owner {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.owner
}

// Family returns the DeviceQueueFamily this queue belongs to, so a caller
// holding only a *DeviceQueue can still call Release on the right family.
func (q *DeviceQueue) Family() *DeviceQueueFamily { return q.family }

// AcquirePool pops a pre-warmed CommandPool, or creates one if the
// pre-warmed list is empty.
func (q *DeviceQueue) AcquirePool(cmds *vk.Commands, device vk.Device, portabilityMode bool) (*command.Pool, error) {
	q.mu.Lock()
	if n := len(q.pools); n > 0 {
		p := q.pools[n-1]
		q.pools = q.pools[:n-1]
		q.mu.Unlock()
		return p, nil
	}
	q.mu.Unlock()
	return command.New(cmds, device, q.family.index, portabilityMode)
}

// ReleasePool returns pool to the queue's pre-warmed list after resetting
// it (release=true also drops its autorelease set).
func (q *DeviceQueue) ReleasePool(pool *command.Pool, release bool) error {
	if err := pool.Reset(release); err != nil {
		return err
	}
	q.mu.Lock()
	q.pools = append(q.pools, pool)
	q.mu.Unlock()
	return nil
}

// SyncSet bundles the wait/signal semaphores and layout-transition book-
// keeping Submit consults, matching the `sync` parameter of spec.md §4.3's
// DeviceQueue.submit.
type SyncSet struct {
	WaitAttachments   []*gpusync.Semaphore
	WaitStages        []vk.PipelineStageFlags
	SignalAttachments []*gpusync.Semaphore
}

// IdleFlags controls the pre-/post-submit vkDeviceWaitIdle/vkQueueWaitIdle
// calls portability-mode devices need to avoid validation false positives.
type IdleFlags uint32

const (
	IdleNone IdleFlags = 0
	IdlePre  IdleFlags = 1 << iota
	IdlePost
)

// Submit gathers not-yet-waited wait semaphores and signal semaphores from
// sync, optionally idles the queue per idleFlags, calls vkQueueSubmit with
// fence attached, and on success marks semaphores waited/signaled and
// registers fence release callbacks that clear their in-use flag
// (spec.md §4.3).
func (q *DeviceQueue) Submit(cmds *vk.Commands, device vk.Device, sync SyncSet, buffers []vk.CommandBuffer, fence *gpusync.Fence, idleFlags IdleFlags) error {
	if idleFlags&IdlePre != 0 {
		cmds.DeviceWaitIdle(device)
	}

	var waitSems []vk.Semaphore
	var waitStages []vk.PipelineStageFlags
	for i, s := range sync.WaitAttachments {
		if s.InUse() {
			// Already consumed as a wait by an earlier submit on this
			// timeline; do not wait on it twice.
			continue
		}
		waitSems = append(waitSems, s.Handle())
		if i < len(sync.WaitStages) {
			waitStages = append(waitStages, sync.WaitStages[i])
		} else {
			waitStages = append(waitStages, vk.PipelineStageAllCommandsBit)
		}
	}
	var signalSems []vk.Semaphore
	for _, s := range sync.SignalAttachments {
		signalSems = append(signalSems, s.Handle())
	}

	info := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: uint32(len(waitSems)),
		CommandBufferCount: uint32(len(buffers)),
		SignalSemaphoreCount: uint32(len(signalSems)),
	}
	if len(waitSems) > 0 {
		info.PWaitSemaphores = &waitSems[0]
		info.PWaitDstStageMask = &waitStages[0]
	}
	if len(buffers) > 0 {
		info.PCommandBuffers = &buffers[0]
	}
	if len(signalSems) > 0 {
		info.PSignalSemaphores = &signalSems[0]
	}

	fenceHandle := vk.Fence(0)
	if fence != nil {
		fenceHandle = fence.Handle()
	}
	r := cmds.QueueSubmit(q.handle, []vk.SubmitInfo{info}, fenceHandle)
	if r != vk.Success {
		return fmt.Errorf("queue: vkQueueSubmit failed: %d", r)
	}

	for _, s := range sync.WaitAttachments {
		s.MarkWaited()
	}
	for _, s := range sync.SignalAttachments {
		s.MarkSignaled()
		sig := s
		if fence != nil {
			fence.OnRelease(func() { sig.ClearInUse() })
		}
	}
	if fence != nil {
		fence.Arm()
	}

	if idleFlags&IdlePost != 0 {
		cmds.QueueWaitIdle(q.handle)
	}
	return nil
}
