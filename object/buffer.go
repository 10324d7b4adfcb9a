package object

import (
	"fmt"

	"github.com/kestrelgpu/vkrt/memory"
	"github.com/kestrelgpu/vkrt/vk"
)

// Buffer wraps a VkBuffer plus its backing memory sub-allocation and
// pending-barrier slot.
type Buffer struct {
	pendingSlot

	handle vk.Buffer
	size   vk.DeviceSize
	bound  bool
	mem    memory.MemBlock
}

// NewBuffer creates a VkBuffer of size bytes with usage/sharing flags
// given by info; the caller binds memory separately via BindMemory.
func NewBuffer(cmds *vk.Commands, device vk.Device, info *vk.BufferCreateInfo) (*Buffer, error) {
	handle, r := cmds.CreateBuffer(device, info, nil)
	if r != vk.Success {
		return nil, fmt.Errorf("object: vkCreateBuffer failed: %d", r)
	}
	return &Buffer{handle: handle, size: info.Size}, nil
}

// Handle returns the underlying VkBuffer.
func (b *Buffer) Handle() vk.Buffer { return b.handle }

// Size returns the buffer's byte size.
func (b *Buffer) Size() vk.DeviceSize { return b.size }

// MemoryRequirements returns this buffer's VkMemoryRequirements.
func (b *Buffer) MemoryRequirements(cmds *vk.Commands, device vk.Device) vk.MemoryRequirements {
	return cmds.GetBufferMemoryRequirements(device, b.handle)
}

// BindMemory performs vkBindBufferMemory exactly once, taking ownership of
// block. A second call panics, matching spec.md §4.2's "exactly once"
// requirement.
func (b *Buffer) BindMemory(cmds *vk.Commands, device vk.Device, block memory.MemBlock) error {
	if b.bound {
		panic("object: buffer memory already bound")
	}
	r := cmds.BindBufferMemory(device, b.handle, block.Node.Memory, block.Offset)
	if r != vk.Success {
		return fmt.Errorf("object: vkBindBufferMemory failed: %d", r)
	}
	b.mem = block
	b.bound = true
	return nil
}

// Memory returns the bound backing allocation.
func (b *Buffer) Memory() memory.MemBlock { return b.mem }

// Bound reports whether BindMemory has completed, letting a caller treat
// a repeated bind request as a no-op instead of hitting the panic
// (spec.md §8 testable property 8: "a redundant bindMemory on an object
// is a no-op").
func (b *Buffer) Bound() bool { return b.bound }

// MappedPointer returns the host pointer for the buffer's bytes within the
// backing page, or (0, false) if the page is not mapped.
func (b *Buffer) MappedPointer() (uintptr, bool) {
	if b.mem.Node == nil || b.mem.Node.MappedPtr == nil {
		return 0, false
	}
	return uintptr(b.mem.Node.MappedPtr) + uintptr(b.mem.Offset), true
}

// Destroy releases the VkBuffer. The caller is responsible for returning
// the backing memory block to its pool.
func (b *Buffer) Destroy(cmds *vk.Commands, device vk.Device) {
	if b.handle != 0 {
		cmds.DestroyBuffer(device, b.handle, nil)
		b.handle = 0
	}
}
