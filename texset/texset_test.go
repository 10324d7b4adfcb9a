package texset

import (
	"testing"

	"github.com/kestrelgpu/vkrt/vk"
)

func TestBufferBindingCoalescesAndSuppressesRepeats(t *testing.T) {
	b := newBufferBinding(vk.DescriptorSet(1), storageBufferBinding, 8)

	info := vk.DescriptorBufferInfo{Buffer: vk.Buffer(7), Range: 16}
	b.set_(0, info)
	b.set_(1, info)
	b.flush()

	// Re-setting the same values must not re-dirty anything.
	b.set_(0, info)
	b.set_(1, info)
	if writes := b.flush(); len(writes) != 0 {
		t.Fatalf("expected no writes for unchanged buffer slots, got %d", len(writes))
	}

	newInfo := vk.DescriptorBufferInfo{Buffer: vk.Buffer(8), Range: 32}
	b.set_(0, newInfo)
	writes := b.flush()
	if len(writes) != 1 || writes[0].DstArrayElement != 0 || writes[0].DescriptorCount != 1 {
		t.Fatalf("expected exactly one write at slot 0, got %+v", writes)
	}
}

func TestBufferBindingCollapsesContiguousRun(t *testing.T) {
	b := newBufferBinding(vk.DescriptorSet(1), storageBufferBinding, 8)
	for i := 0; i < 3; i++ {
		b.set_(i, vk.DescriptorBufferInfo{Buffer: vk.Buffer(uint64(i) + 1), Range: 16})
	}
	writes := b.flush()
	if len(writes) != 1 || writes[0].DescriptorCount != 3 {
		t.Fatalf("expected one coalesced write of count 3, got %+v", writes)
	}
}
