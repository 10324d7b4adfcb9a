package memory

import (
	"errors"
	"math/bits"
	"sync"

	"github.com/kestrelgpu/vkrt/vk"
)

// AllocationType distinguishes linear (buffer) from optimal-tiling (image)
// allocations, per spec.md §4.1's bufferImageGranularity rule: adjacent
// allocations of different categories on the same page need extra padding
// to satisfy the driver's aliasing guarantees.
type AllocationType int

const (
	Unknown AllocationType = iota
	Linear
	Optimal
)

var ErrPoolExhausted = errors.New("memory: pool page exhausted")

// freeBlock is a previously allocated, now-returned sub-range of a page.
type freeBlock struct {
	page   *pageState
	offset vk.DeviceSize
	size   vk.DeviceSize
}

// MemBlock is a sub-allocation handed out by a DeviceMemoryPool.
type MemBlock struct {
	Node   *MemNode
	Offset vk.DeviceSize
	Size   vk.DeviceSize
	Type   AllocationType
}

// DeviceMemoryPool bump-allocates sub-blocks out of pages sourced from an
// Allocator, honoring bufferImageGranularity between allocation-type
// transitions and nonCoherentAtomSize alignment for every allocation.
type DeviceMemoryPool struct {
	mu sync.Mutex

	alloc       *Allocator
	granularity vk.DeviceSize
	atomSize    vk.DeviceSize

	pages []*pageState
	free  []freeBlock
}

type pageState struct {
	node     *MemNode
	offset   vk.DeviceSize
	lastType AllocationType
}

// NewDeviceMemoryPool creates a pool drawing pages from alloc.
func NewDeviceMemoryPool(alloc *Allocator, granularity, atomSize vk.DeviceSize) *DeviceMemoryPool {
	return &DeviceMemoryPool{alloc: alloc, granularity: granularity, atomSize: atomSize}
}

func alignUp(v, align vk.DeviceSize) vk.DeviceSize {
	if align == 0 {
		return v
	}
	return (v + align - 1) / align * align
}

// trailingZeros64 counts trailing zero bits, used to compare a request's
// alignment against a free block's offset alignment (spec.md §4.1: a free
// block is reusable when its offset's trailing-zero count is at least the
// request's).
func trailingZeros64(v uint64) int {
	if v == 0 {
		return 64
	}
	return bits.TrailingZeros64(v)
}

// Alloc returns a sub-block of at least size bytes aligned to
// max(align, nonCoherentAtomSize), additionally aligned to
// bufferImageGranularity when kind differs from the allocation that last
// used the page it lands on. t is the MemType pages should be sourced
// from; persistent requests a host-mapped page.
func (p *DeviceMemoryPool) Alloc(t MemType, size, align vk.DeviceSize, kind AllocationType, persistent bool) (MemBlock, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	reqAlign := align
	if p.atomSize > reqAlign {
		reqAlign = p.atomSize
	}

	// Try the free list first.
	reqTZ := trailingZeros64(uint64(reqAlign))
	for i, fb := range p.free {
		if fb.size < size {
			continue
		}
		if fb.offset != 0 && trailingZeros64(uint64(fb.offset)) < reqTZ {
			continue
		}
		p.free = append(p.free[:i], p.free[i+1:]...)
		return MemBlock{Node: fb.page.node, Offset: fb.offset, Size: size, Type: kind}, nil
	}

	// Bump-allocate from the most recently opened page, opening a new one
	// if none exists or the request doesn't fit.
	if len(p.pages) > 0 {
		ps := p.pages[len(p.pages)-1]
		offset := alignUp(ps.offset, reqAlign)
		if kind != Unknown && ps.lastType != Unknown && kind != ps.lastType {
			offset = alignUp(offset, p.granularity)
		}
		if offset+size <= ps.node.Size {
			ps.offset = offset + size
			ps.lastType = kind
			return MemBlock{Node: ps.node, Offset: offset, Size: size, Type: kind}, nil
		}
	}

	node, err := p.alloc.Alloc(t, size, persistent)
	if err != nil {
		return MemBlock{}, err
	}
	offset := vk.DeviceSize(0)
	ps := &pageState{node: node, offset: offset + size, lastType: kind}
	p.pages = append(p.pages, ps)
	return MemBlock{Node: node, Offset: offset, Size: size, Type: kind}, nil
}

// Free returns block's range to the pool's free list for reuse by a later
// Alloc call with compatible alignment.
func (p *DeviceMemoryPool) Free(block MemBlock) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ps := range p.pages {
		if ps.node == block.Node {
			p.free = append(p.free, freeBlock{page: ps, offset: block.Offset, size: block.Size})
			return
		}
	}
}

// Release returns every page this pool holds back to its Allocator.
func (p *DeviceMemoryPool) Release(t MemType) {
	p.mu.Lock()
	defer p.mu.Unlock()
	nodes := make([]*MemNode, len(p.pages))
	for i, ps := range p.pages {
		nodes[i] = ps.node
	}
	p.alloc.Free(t, nodes)
	p.pages = nil
	p.free = nil
}
