// Package gpusync implements the runtime's fence and semaphore bookkeeping:
// a binary VkFence lifecycle with release callbacks and an autorelease set
// (spec.md §4.2), and a reusable VkSemaphore wrapper tracking signaled/
// waited/in-use flags plus a timeline counter.
//
// Grounded on the teacher's hal/vulkan/fence.go and fence_pool.go binary
// fence path: this module always uses the binary path (no timeline-
// semaphore fast path), since the spec's Fence state machine (Disabled →
// Armed → Signaled, with release callbacks and autorelease lists) maps
// directly onto per-submission VkFences rather than a single counter.
package gpusync

import (
	"fmt"
	"time"

	"github.com/kestrelgpu/vkrt/rtlog"
	"github.com/kestrelgpu/vkrt/vk"
)

// State is a Fence's position in its Disabled → Armed → Signaled cycle.
type State int

const (
	Disabled State = iota
	Armed
	Signaled
)

func (s State) String() string {
	switch s {
	case Disabled:
		return "Disabled"
	case Armed:
		return "Armed"
	case Signaled:
		return "Signaled"
	default:
		return "Unknown"
	}
}

// brokenThreshold is how long a fence may sit Armed before check() logs a
// "possibly broken" diagnostic and falls back to a single blocking wait.
const brokenThreshold = time.Second

// Fence wraps a VkFence plus the release/autorelease bookkeeping spec.md
// §4.2 assigns it. It cycles Disabled → Armed (at submit) → Signaled
// (observed via check, or forced via Wait); on the Signaled transition its
// release callbacks fire and it is ready to be returned to a pool.
type Fence struct {
	handle vk.Fence
	state  State

	armedAt time.Time

	// release holds callbacks registered at arm time; they fire once, in
	// registration order, on the Armed → Signaled transition.
	release []func()

	// autorelease holds arbitrary refs (retained objects, semaphores) kept
	// alive for the duration this fence is armed; cleared alongside release.
	autorelease []any
}

// New creates a Disabled fence backed by a fresh unsignaled VkFence.
func New(cmds *vk.Commands, device vk.Device) (*Fence, error) {
	handle, r := cmds.CreateFence(device, &vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo}, nil)
	if r != vk.Success {
		return nil, fmt.Errorf("gpusync: vkCreateFence failed: %d", r)
	}
	return &Fence{handle: handle, state: Disabled}, nil
}

// Handle returns the underlying VkFence for use in a submit call.
func (f *Fence) Handle() vk.Fence { return f.handle }

// State reports the fence's current lifecycle position.
func (f *Fence) State() State { return f.state }

// Retain appends v to the autorelease set, keeping it alive until this
// fence signals.
func (f *Fence) Retain(v any) {
	f.autorelease = append(f.autorelease, v)
}

// OnRelease registers a callback to fire once, on the Armed → Signaled
// transition, after the autorelease set is cleared.
func (f *Fence) OnRelease(fn func()) {
	f.release = append(f.release, fn)
}

// Arm transitions Disabled → Armed, recording the arm-time clock used by
// check's "possibly broken" diagnostic. The caller must have already
// passed Handle() to vkQueueSubmit.
func (f *Fence) Arm() {
	f.state = Armed
	f.armedAt = time.Now()
}

// Check polls the fence without blocking (lockfree=true in spec terms): if
// the driver reports it signaled, the state transitions to Signaled and
// release callbacks fire. If the fence has been Armed for longer than
// brokenThreshold, it logs a diagnostic and performs a single blocking
// vkWaitForFences with no timeout before re-checking — once only, since a
// second stall within the same Armed period would re-trigger this branch
// on the next poll rather than loop here.
func (f *Fence) Check(cmds *vk.Commands, device vk.Device) {
	if f.state != Armed {
		return
	}

	if r := cmds.GetFenceStatus(device, f.handle); r == vk.Success {
		f.signal(cmds, device)
		return
	}

	if time.Since(f.armedAt) > brokenThreshold {
		rtlog.Logger().Warn("gpusync: fence armed past threshold, forcing blocking wait",
			"elapsed", time.Since(f.armedAt))
		if r := cmds.WaitForFences(device, []vk.Fence{f.handle}, true, ^uint64(0)); r == vk.Success {
			f.signal(cmds, device)
		}
	}
}

// Wait blocks until the fence signals or timeoutNs elapses, transitioning
// to Signaled and firing release callbacks on success.
func (f *Fence) Wait(cmds *vk.Commands, device vk.Device, timeoutNs uint64) error {
	if f.state == Signaled {
		return nil
	}
	r := cmds.WaitForFences(device, []vk.Fence{f.handle}, true, timeoutNs)
	if r != vk.Success {
		return fmt.Errorf("gpusync: vkWaitForFences failed: %d", r)
	}
	f.signal(cmds, device)
	return nil
}

// signal transitions Armed → Signaled, fires release callbacks, and clears
// the autorelease set. The underlying VkFence is reset so the Fence is
// ready to be rearmed by a pool.
func (f *Fence) signal(cmds *vk.Commands, device vk.Device) {
	_ = cmds.ResetFences(device, []vk.Fence{f.handle})
	f.state = Signaled

	callbacks := f.release
	f.release = nil
	f.autorelease = nil
	for _, fn := range callbacks {
		fn()
	}
}

// Reset returns the fence to Disabled, ready for its next Arm. Must only be
// called once the fence is Signaled.
func (f *Fence) Reset() {
	f.state = Disabled
	f.armedAt = time.Time{}
}

// Destroy releases the underlying VkFence. The caller must ensure the
// fence is not in use by the device (it is not Armed, or the device is
// idle).
func (f *Fence) Destroy(cmds *vk.Commands, device vk.Device) {
	if f.handle != 0 {
		cmds.DestroyFence(device, f.handle, nil)
		f.handle = 0
	}
}
