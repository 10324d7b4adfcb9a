// Package object implements the typed Vulkan-object wrappers (Buffer,
// Image, ImageView, Sampler) spec.md §3.1/§4.2 describes: each holds an
// owning ref to its backing memory and a single-slot pending barrier used
// to hand off queue-family ownership transfers from a producer to the
// next consumer.
//
// Grounded on the teacher's hal/vulkan/resource.go (the Buffer/Texture/
// TextureView/Sampler wrapper shape, Destroy-through-owning-device
// pattern) and convert.go (format/aspect classification, now reimplemented
// against this module's own vk.Format).
package object

import "github.com/kestrelgpu/vkrt/vk"

// PendingBarrier describes an outstanding queue-family ownership release
// recorded by a producer, to be completed by whichever consumer uses the
// object next. Exactly one of Buffer/Image is populated, matching which
// kind of object this barrier was recorded against.
type PendingBarrier struct {
	SrcStage vk.PipelineStageFlags
	DstStage vk.PipelineStageFlags

	Buffer *vk.BufferMemoryBarrier
	Image  *vk.ImageMemoryBarrier
}

// pendingSlot is embedded by every object wrapper to provide the single-
// slot setPendingBarrier/getPendingBarrier/dropPendingBarrier handoff.
type pendingSlot struct {
	pending *PendingBarrier
}

// SetPendingBarrier installs b as the object's outstanding barrier. It
// panics if a barrier is already pending, since spec.md §4.2 requires the
// slot be empty before writing (an object carries at most one pending
// barrier at a time, per invariant 4 in §3.2).
func (s *pendingSlot) SetPendingBarrier(b *PendingBarrier) {
	if s.pending != nil {
		panic("object: pending barrier slot already occupied")
	}
	s.pending = b
}

// GetPendingBarrier returns the currently pending barrier, or nil.
func (s *pendingSlot) GetPendingBarrier() *PendingBarrier {
	return s.pending
}

// DropPendingBarrier clears the slot and returns what was there, so a
// consumer can both observe and consume the handoff in one call.
func (s *pendingSlot) DropPendingBarrier() *PendingBarrier {
	b := s.pending
	s.pending = nil
	return b
}

// HasPendingBarrier reports whether the slot is occupied.
func (s *pendingSlot) HasPendingBarrier() bool {
	return s.pending != nil
}
