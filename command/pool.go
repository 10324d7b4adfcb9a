// Package command implements the CommandPool/CommandBuffer recording
// surface described in spec.md §4.3: a pool that records one VkCommandBuffer
// at a time via a closure, retains every buffer it successfully records,
// and resets either by vkResetCommandPool or, on portability-flagged
// devices, by destroying and recreating the pool outright to sidestep a
// known driver leak.
//
// Grounded on the teacher's hal/vulkan/command.go (CommandPool/
// CommandEncoder's begin/end/reset shape) generalized to the spec's
// closure-based recordBuffer contract and per-buffer resource retention.
package command

import (
	"fmt"

	"github.com/kestrelgpu/vkrt/vk"
)

// Pool wraps a VkCommandPool plus the buffers it has allocated and an
// autorelease list of objects kept alive for the pool's lifetime.
type Pool struct {
	cmds             *vk.Commands
	device           vk.Device
	queueFamilyIndex uint32
	portabilityMode  bool

	handle     vk.CommandPool
	recorded   []*Buffer
	autorelease []any
}

// New creates a CommandPool on queueFamilyIndex. portabilityMode, set for
// devices reporting VK_KHR_portability_subset, switches Reset's behavior
// to destroy-and-recreate instead of vkResetCommandPool (spec.md §9 open
// question 2).
func New(cmds *vk.Commands, device vk.Device, queueFamilyIndex uint32, portabilityMode bool) (*Pool, error) {
	p := &Pool{cmds: cmds, device: device, queueFamilyIndex: queueFamilyIndex, portabilityMode: portabilityMode}
	if err := p.create(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pool) create() error {
	info := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateResetCommandBufferBit,
		QueueFamilyIndex: p.queueFamilyIndex,
	}
	handle, r := p.cmds.CreateCommandPool(p.device, &info, nil)
	if r != vk.Success {
		return fmt.Errorf("command: vkCreateCommandPool failed: %d", r)
	}
	p.handle = handle
	return nil
}

// Handle returns the underlying VkCommandPool.
func (p *Pool) Handle() vk.CommandPool { return p.handle }

// Retain appends v to the pool's autorelease set.
func (p *Pool) Retain(v any) {
	p.autorelease = append(p.autorelease, v)
}

// RecordBuffer allocates one VkCommandBuffer at level, begins it with
// usage flags, invokes fn to record commands, then ends it. If fn returns
// false, the buffer is freed and (nil, nil) is returned; otherwise the
// buffer is retained in the pool's recorded list and returned.
func (p *Pool) RecordBuffer(usage vk.CommandBufferUsageFlags, level uint32, fn func(*Buffer) bool) (*Buffer, error) {
	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        p.handle,
		Level:              level,
		CommandBufferCount: 1,
	}
	handles, r := p.cmds.AllocateCommandBuffers(p.device, &allocInfo)
	if r != vk.Success || len(handles) == 0 {
		return nil, fmt.Errorf("command: vkAllocateCommandBuffers failed: %d", r)
	}
	handle := handles[0]

	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: usage,
	}
	if r := p.cmds.BeginCommandBuffer(handle, &beginInfo); r != vk.Success {
		p.cmds.FreeCommandBuffers(p.device, p.handle, []vk.CommandBuffer{handle})
		return nil, fmt.Errorf("command: vkBeginCommandBuffer failed: %d", r)
	}

	cb := &Buffer{handle: handle, cmds: p.cmds}
	ok := fn(cb)

	if r := p.cmds.EndCommandBuffer(handle); r != vk.Success {
		p.cmds.FreeCommandBuffers(p.device, p.handle, []vk.CommandBuffer{handle})
		return nil, fmt.Errorf("command: vkEndCommandBuffer failed: %d", r)
	}

	if !ok {
		p.cmds.FreeCommandBuffers(p.device, p.handle, []vk.CommandBuffer{handle})
		return nil, nil
	}

	p.recorded = append(p.recorded, cb)
	return cb, nil
}

// Reset frees every buffer this pool has allocated. If release is true,
// the pool's autorelease set and each buffer's retained-object set are
// also cleared. On portability-flagged devices, the pool is destroyed and
// recreated from scratch instead of calling vkResetCommandPool, avoiding a
// known driver leak (spec.md §4.3, §9 open question 2).
func (p *Pool) Reset(release bool) error {
	handles := make([]vk.CommandBuffer, len(p.recorded))
	for i, cb := range p.recorded {
		handles[i] = cb.handle
	}
	if len(handles) > 0 {
		p.cmds.FreeCommandBuffers(p.device, p.handle, handles)
	}
	p.recorded = nil

	if release {
		p.autorelease = nil
	}

	if p.portabilityMode {
		p.cmds.DestroyCommandPool(p.device, p.handle, nil)
		return p.create()
	}

	if r := p.cmds.ResetCommandPool(p.device, p.handle, 0); r != vk.Success {
		return fmt.Errorf("command: vkResetCommandPool failed: %d", r)
	}
	return nil
}

// Destroy releases the underlying VkCommandPool and every buffer it owns.
func (p *Pool) Destroy() {
	if p.handle != 0 {
		p.cmds.DestroyCommandPool(p.device, p.handle, nil)
		p.handle = 0
	}
}
