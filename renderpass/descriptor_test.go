package renderpass

import (
	"testing"

	"github.com/kestrelgpu/vkrt/vk"
)

// TestDescriptorBindingCoalescing exercises scenario S4: a material set
// has images at slots {0,2,5}; updating slot 2 while 0 and 5 are
// unchanged must emit exactly one VkWriteDescriptorSet, for slot 2 alone.
func TestDescriptorBindingCoalescing(t *testing.T) {
	d := NewDescriptorBinding(vk.DescriptorSet(1), 0, vk.DescriptorTypeSampledImage, 8)

	img0 := vk.DescriptorImageInfo{ImageView: vk.ImageView(100)}
	img2 := vk.DescriptorImageInfo{ImageView: vk.ImageView(200)}
	img5 := vk.DescriptorImageInfo{ImageView: vk.ImageView(500)}
	d.Set(0, img0)
	d.Set(2, img2)
	d.Set(5, img5)
	d.Flush() // initial population, not under test

	newImg2 := vk.DescriptorImageInfo{ImageView: vk.ImageView(201)}
	d.Set(0, img0) // unchanged
	d.Set(2, newImg2)
	d.Set(5, img5) // unchanged

	writes := d.Flush()
	if len(writes) != 1 {
		t.Fatalf("expected exactly one write, got %d", len(writes))
	}
	if writes[0].DstArrayElement != 2 || writes[0].DescriptorCount != 1 {
		t.Fatalf("expected dstArrayElement=2 descriptorCount=1, got %+v", writes[0])
	}
}

// TestDescriptorBindingIdempotentWrite exercises testable property 3:
// two successive writes of the same value yield zero emitted writes.
func TestDescriptorBindingIdempotentWrite(t *testing.T) {
	d := NewDescriptorBinding(vk.DescriptorSet(1), 0, vk.DescriptorTypeSampledImage, 4)
	info := vk.DescriptorImageInfo{ImageView: vk.ImageView(42)}
	d.Set(1, info)
	d.Flush()

	d.Set(1, info)
	if writes := d.Flush(); len(writes) != 0 {
		t.Fatalf("expected no writes for an unchanged value, got %d", len(writes))
	}
}

// TestDescriptorBindingCollapsesContiguousRun verifies that a run of
// adjacent dirty indices collapses into a single write spanning the run.
func TestDescriptorBindingCollapsesContiguousRun(t *testing.T) {
	d := NewDescriptorBinding(vk.DescriptorSet(1), 3, vk.DescriptorTypeSampledImage, 8)
	for i := 2; i <= 4; i++ {
		d.Set(i, vk.DescriptorImageInfo{ImageView: vk.ImageView(100 + uint64(i))})
	}
	d.Set(6, vk.DescriptorImageInfo{ImageView: vk.ImageView(999)})

	writes := d.Flush()
	if len(writes) != 2 {
		t.Fatalf("expected 2 writes (one run of 3, one singleton), got %d", len(writes))
	}
	if writes[0].DstArrayElement != 2 || writes[0].DescriptorCount != 3 {
		t.Fatalf("expected first write to span [2,5), got %+v", writes[0])
	}
	if writes[1].DstArrayElement != 6 || writes[1].DescriptorCount != 1 {
		t.Fatalf("expected second write at index 6, got %+v", writes[1])
	}
}

func TestMergePushConstants(t *testing.T) {
	ranges := []vk.PushConstantRange{
		{StageFlags: vk.ShaderStageVertexBit, Offset: 0, Size: 16},
		{StageFlags: vk.ShaderStageVertexBit, Offset: 16, Size: 16},
		{StageFlags: vk.ShaderStageFragmentBit, Offset: 0, Size: 8},
	}
	merged := mergePushConstants(ranges)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged ranges, got %d", len(merged))
	}
	if merged[0].Size != 32 {
		t.Fatalf("expected vertex range merged to size 32, got %d", merged[0].Size)
	}
}
