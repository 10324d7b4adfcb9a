package gpusync

import (
	"fmt"

	"github.com/kestrelgpu/vkrt/vk"
)

// Semaphore wraps a binary VkSemaphore plus the signaled/waited/in-use
// flags and timeline counter spec.md §4.2 assigns it. A semaphore is only
// reusable once waited has caught up with signaled and nothing still
// depends on it (in-use == false); Reset bumps the timeline and reports
// whether reuse was valid.
type Semaphore struct {
	handle vk.Semaphore

	signaled bool
	waited   bool
	inUse    bool

	timeline uint64
}

// New creates an unsignaled, unwaited, not-in-use Semaphore.
func New(cmds *vk.Commands, device vk.Device) (*Semaphore, error) {
	handle, r := cmds.CreateSemaphore(device, &vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}, nil)
	if r != vk.Success {
		return nil, fmt.Errorf("gpusync: vkCreateSemaphore failed: %d", r)
	}
	return &Semaphore{handle: handle}, nil
}

// Handle returns the underlying VkSemaphore.
func (s *Semaphore) Handle() vk.Semaphore { return s.handle }

// Timeline returns the current reuse counter. It increments on every
// successful Reset.
func (s *Semaphore) Timeline() uint64 { return s.timeline }

// MarkSignaled records that a submit will signal this semaphore and that
// it is now in-use for the duration of that submission.
func (s *Semaphore) MarkSignaled() {
	s.signaled = true
	s.inUse = true
}

// MarkWaited records that a submit has consumed this semaphore as a wait.
func (s *Semaphore) MarkWaited() {
	s.waited = true
}

// ClearInUse drops the in-use flag, normally called from a Fence release
// callback once the submission that depended on this semaphore completes.
func (s *Semaphore) ClearInUse() {
	s.inUse = false
}

// InUse reports whether a pending submission still depends on this
// semaphore.
func (s *Semaphore) InUse() bool { return s.inUse }

// Reset returns the semaphore to its unsignaled/unwaited state and bumps
// the timeline, but only if waited has caught up with signaled and nothing
// still depends on it; otherwise it returns false and leaves the state
// untouched, signaling that the caller must not reuse this semaphore yet.
func (s *Semaphore) Reset() bool {
	if s.waited != s.signaled || s.inUse {
		return false
	}
	s.signaled = false
	s.waited = false
	s.timeline++
	return true
}

// Destroy releases the underlying VkSemaphore.
func (s *Semaphore) Destroy(cmds *vk.Commands, device vk.Device) {
	if s.handle != 0 {
		cmds.DestroySemaphore(device, s.handle, nil)
		s.handle = 0
	}
}
