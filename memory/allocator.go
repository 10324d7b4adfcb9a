// Package memory implements the device-memory allocator (spec.md §4.1): a
// per-MemType free list of 8 MiB pages with persistent mapping. Each MemType
// has one flat free list searched first-fit; pages are not filed by size
// class, and this package makes no dedicated allocations. Grounded on the
// teacher's hal/vulkan/memory package (MemoryTypeSelector's scoring shape,
// GpuAllocator's pooled/dedicated split, Stats bookkeeping) but replaces
// the teacher's buddy allocator with the page-and-size-class scheme spec
// §4.1 specifies; see DESIGN.md for why.
package memory

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/kestrelgpu/vkrt/vk"
)

// PageSize is the granularity Allocator requests from vkAllocateMemory.
const PageSize = 8 << 20 // 8 MiB

// bucketCount is the number of size classes bucketFor distinguishes; the
// free lists themselves are not split by size class.
const bucketCount = 20

// DefaultPreservedPages is how many free pages Free keeps per MemType
// before unmapping and releasing the surplus back to the driver.
const DefaultPreservedPages = 20

var (
	ErrNoSuitableMemoryType = errors.New("memory: no suitable memory type")
	ErrAllocationFailed     = errors.New("memory: vkAllocateMemory failed")
	ErrMapFailed            = errors.New("memory: vkMapMemory failed")
)

// MemNode is one VkDeviceMemory page, optionally persistently mapped. A
// page may be mapped by at most one thread at a time (spec.md §3.2
// invariant 2); Mu serializes callers that map/write/unmap it.
type MemNode struct {
	Mu sync.Mutex

	Memory    vk.DeviceMemory
	Size      vk.DeviceSize
	TypeIdx   uint32
	MappedPtr unsafe.Pointer
}

// Allocator owns one free list of MemNode pages per MemType.
type Allocator struct {
	mu sync.Mutex

	device vk.Device
	cmds   *vk.Commands

	types          []MemType
	heaps          []MemHeap
	granularity    vk.DeviceSize
	atomSize       vk.DeviceSize
	discreteGPU    bool

	// free[typeIdx] holds the free pages of that MemType in the order Free
	// returned them.
	free [][]*poolPage

	preservedPages int
}

// poolPage is a free (not currently claimed by any DeviceMemoryPool) page.
type poolPage struct {
	node *MemNode
}

// New builds an Allocator from a device's enumerated memory properties and
// limits. discreteGPU selects the DeviceLocalHostVisible scoring branch
// (spec.md §4.1): a discrete GPU penalizes host-coherent types, an
// integrated one penalizes them less than host-cached types.
func New(device vk.Device, cmds *vk.Commands, props vk.PhysicalDeviceMemoryProperties, limits vk.PhysicalDeviceLimits, discreteGPU bool) *Allocator {
	types := make([]MemType, props.MemoryTypeCount)
	for i := uint32(0); i < props.MemoryTypeCount; i++ {
		t := props.MemoryTypes[i]
		types[i] = MemType{Index: i, PropertyFlags: t.PropertyFlags, HeapIndex: t.HeapIndex}
	}
	heaps := make([]MemHeap, props.MemoryHeapCount)
	for i := uint32(0); i < props.MemoryHeapCount; i++ {
		h := props.MemoryHeaps[i]
		heaps[i] = MemHeap{Size: h.Size, DeviceLocal: h.Flags&vk.MemoryHeapDeviceLocalBit != 0}
	}

	a := &Allocator{
		device:         device,
		cmds:           cmds,
		types:          types,
		heaps:          heaps,
		granularity:    limits.BufferImageGranularity,
		atomSize:       limits.NonCoherentAtomSize,
		discreteGPU:    discreteGPU,
		preservedPages: DefaultPreservedPages,
	}
	a.free = make([][]*poolPage, len(types))
	return a
}

// FindMemoryType selects the best MemType for usage among the bits set in
// typeMask (VkMemoryRequirements.memoryTypeBits); returns false if no type
// scores above zero.
func (a *Allocator) FindMemoryType(typeMask uint32, usage Usage) (MemType, bool) {
	best := -1
	bestScore := 0
	for i, t := range a.types {
		if typeMask&(1<<uint(t.Index)) == 0 {
			continue
		}
		s := score(t, a.heaps, usage, a.discreteGPU)
		if s > bestScore {
			bestScore = s
			best = i
		}
	}
	if best < 0 {
		return MemType{}, false
	}
	return a.types[best], true
}

// BufferMemoryRequirements wraps vkGetBufferMemoryRequirements. Dedicated
// hinting (VK_KHR_get_memory_requirements2) is not wired: this module binds
// a deliberately small Vulkan surface and always falls back to the plain
// query, so RequiresDedicated/PrefersDedicated are always false here. See
// DESIGN.md.
func (a *Allocator) BufferMemoryRequirements(buf vk.Buffer) (req vk.MemoryRequirements, requiresDedicated, prefersDedicated bool) {
	return a.cmds.GetBufferMemoryRequirements(a.device, buf), false, false
}

// ImageMemoryRequirements wraps vkGetImageMemoryRequirements; see the
// dedicated-hinting note on BufferMemoryRequirements.
func (a *Allocator) ImageMemoryRequirements(img vk.Image) (req vk.MemoryRequirements, requiresDedicated, prefersDedicated bool) {
	return a.cmds.GetImageMemoryRequirements(a.device, img), false, false
}

func pagesFor(size vk.DeviceSize) int {
	n := (int(size) + PageSize - 1) / PageSize
	if n < 1 {
		n = 1
	}
	return n
}

// bucketFor returns the size-class bucket index for a run of n pages:
// bucket i covers [2^i, 2^(i+1)) pages, clamped to the last bucket for
// runs too large to classify precisely (the "sink" bucket spec §4.1
// mentions).
func bucketFor(pages int) int {
	b := 0
	for (1 << uint(b+1)) <= pages && b < bucketCount-1 {
		b++
	}
	return b
}

// Alloc rounds size up to a whole number of 8 MiB pages, takes the first
// page on t's free list that is at least that large, and allocates a fresh
// VkDeviceMemory if nothing fits. If persistent and t is HostVisible, the
// returned node is mapped.
func (a *Allocator) Alloc(t MemType, size vk.DeviceSize, persistent bool) (*MemNode, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	needed := pagesFor(size)
	startBucket := bucketFor(needed)

	list := a.free[t.Index]
	for b := startBucket; b < bucketCount; b++ {
		for i, p := range list {
			if pagesFor(p.node.Size) < needed {
				continue
			}
			if persistent && t.isHostVisible() && p.node.MappedPtr == nil {
				ptr, r := a.cmds.MapMemory(a.device, p.node.Memory, 0, p.node.Size, 0)
				if r != vk.Success {
					return nil, fmt.Errorf("%w: %d", ErrMapFailed, r)
				}
				p.node.MappedPtr = ptr
			}
			// Claim the page outright; sub-allocation within a page is
			// DeviceMemoryPool's job, not Allocator's.
			a.free[t.Index] = append(list[:i], list[i+1:]...)
			return p.node, nil
		}
	}

	allocSize := vk.DeviceSize(needed * PageSize)
	node, err := a.vulkanAllocate(allocSize, t.Index, persistent && t.isHostVisible())
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (a *Allocator) vulkanAllocate(size vk.DeviceSize, typeIdx uint32, mapOnAlloc bool) (*MemNode, error) {
	info := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  size,
		MemoryTypeIndex: typeIdx,
	}
	mem, r := a.cmds.AllocateMemory(a.device, &info, nil)
	if r != vk.Success {
		return nil, fmt.Errorf("%w: %d", ErrAllocationFailed, r)
	}

	node := &MemNode{Memory: mem, Size: size, TypeIdx: typeIdx}
	if mapOnAlloc {
		ptr, r := a.cmds.MapMemory(a.device, mem, 0, size, 0)
		if r != vk.Success {
			a.cmds.FreeMemory(a.device, mem, nil)
			return nil, fmt.Errorf("%w: %d", ErrMapFailed, r)
		}
		node.MappedPtr = ptr
	}
	return node, nil
}

// Free returns nodes to t's free list. If the number of free pages for t
// exceeds the preserved-page budget, the surplus is unmapped and released
// back to the driver, starting with the pages that have been on the free
// list longest.
func (a *Allocator) Free(t MemType, nodes []*MemNode) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, n := range nodes {
		a.free[t.Index] = append(a.free[t.Index], &poolPage{node: n})
	}

	total := 0
	for _, p := range a.free[t.Index] {
		total += pagesFor(p.node.Size)
	}
	for total > a.preservedPages && len(a.free[t.Index]) > 0 {
		p := a.free[t.Index][0]
		a.free[t.Index] = a.free[t.Index][1:]
		total -= pagesFor(p.node.Size)
		a.releaseNode(p.node)
	}
}

func (a *Allocator) releaseNode(n *MemNode) {
	if n.MappedPtr != nil {
		a.cmds.UnmapMemory(a.device, n.Memory)
	}
	a.cmds.FreeMemory(a.device, n.Memory, nil)
}

// Destroy frees every page on the free lists. Pages still claimed by a
// DeviceMemoryPool are not released here. Callers must ensure no in-flight
// frame references any of them.
func (a *Allocator) Destroy() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.free {
		for _, p := range a.free[i] {
			a.releaseNode(p.node)
		}
		a.free[i] = nil
	}
}
