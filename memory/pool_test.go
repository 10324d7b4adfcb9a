package memory

import (
	"testing"

	"github.com/kestrelgpu/vkrt/vk"
)

func newTestAllocator() *Allocator {
	return &Allocator{
		types: []MemType{{Index: 0, PropertyFlags: vk.MemoryPropertyDeviceLocalBit}},
		heaps: []MemHeap{{DeviceLocal: true, Size: 1 << 30}},
		free:  make([][]*poolPage, 1),
	}
}

// seedPage lets pool tests avoid going through Allocator.Alloc's
// vkAllocateMemory call by pre-seeding a page directly.
func seedPage(a *Allocator, size vk.DeviceSize) *MemNode {
	node := &MemNode{Memory: 1, Size: size, TypeIdx: 0}
	a.free[0] = append(a.free[0], &poolPage{node: node})
	return node
}

func TestPoolBumpAllocatesWithinPage(t *testing.T) {
	a := newTestAllocator()
	seedPage(a, PageSize)
	pool := NewDeviceMemoryPool(a, 256, 16)

	b1, err := pool.Alloc(a.types[0], 1024, 16, Linear, false)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if b1.Offset != 0 {
		t.Fatalf("first alloc offset = %d, want 0", b1.Offset)
	}

	b2, err := pool.Alloc(a.types[0], 2048, 16, Linear, false)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if b2.Offset < b1.Offset+b1.Size {
		t.Fatalf("second alloc offset %d overlaps first block [%d,%d)", b2.Offset, b1.Offset, b1.Offset+b1.Size)
	}
}

func TestPoolInsertsGranularityPaddingOnTypeTransition(t *testing.T) {
	a := newTestAllocator()
	seedPage(a, PageSize)
	pool := NewDeviceMemoryPool(a, 256, 16)

	b1, err := pool.Alloc(a.types[0], 100, 16, Linear, false)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	b2, err := pool.Alloc(a.types[0], 100, 16, Optimal, false)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if b2.Offset%256 != 0 {
		t.Fatalf("expected granularity-aligned offset after Linear->Optimal transition, got %d", b2.Offset)
	}
	if b2.Offset < b1.Offset+b1.Size {
		t.Fatal("expected second block to start after the first")
	}
}

func TestPoolFreeAndReuse(t *testing.T) {
	a := newTestAllocator()
	seedPage(a, PageSize)
	pool := NewDeviceMemoryPool(a, 256, 16)

	b1, _ := pool.Alloc(a.types[0], 1024, 16, Linear, false)
	pool.Free(b1)

	b2, err := pool.Alloc(a.types[0], 512, 16, Linear, false)
	if err != nil {
		t.Fatalf("Alloc after free: %v", err)
	}
	if b2.Offset != b1.Offset {
		t.Fatalf("expected reused free block at offset %d, got %d", b1.Offset, b2.Offset)
	}
}

func TestAlignUp(t *testing.T) {
	cases := []struct{ v, align, want vk.DeviceSize }{
		{0, 256, 0},
		{1, 256, 256},
		{256, 256, 256},
		{257, 256, 512},
		{100, 0, 100},
	}
	for _, c := range cases {
		if got := alignUp(c.v, c.align); got != c.want {
			t.Errorf("alignUp(%d, %d) = %d, want %d", c.v, c.align, got, c.want)
		}
	}
}
