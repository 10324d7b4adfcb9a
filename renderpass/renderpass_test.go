package renderpass

import (
	"testing"

	"github.com/kestrelgpu/vkrt/vk"
)

func TestComputeMayAlias(t *testing.T) {
	data := QueuePassData{
		Attachments: []AttachmentDesc{{Format: vk.FormatR8G8B8A8Unorm}, {Format: vk.FormatD32Sfloat}},
		Subpasses: []SubpassDesc{
			{
				Input: []SubpassRef{{Attachment: 0, Layout: vk.ImageLayoutShaderReadOnlyOptimal}},
				Color: []SubpassRef{{Attachment: 0, Layout: vk.ImageLayoutColorAttachmentOptimal}},
			},
		},
	}
	flags := computeMayAlias(data)
	if !flags[0] {
		t.Fatalf("expected attachment 0 (used as both input and color) to be flagged mayAlias")
	}
	if flags[1] {
		t.Fatalf("expected attachment 1 (untouched by subpass 0) to not be flagged")
	}
}

func TestInsertPreserved(t *testing.T) {
	data := QueuePassData{
		Attachments: []AttachmentDesc{{Format: vk.FormatR8G8B8A8Unorm}},
		Subpasses: []SubpassDesc{
			{Color: []SubpassRef{{Attachment: 0, Layout: vk.ImageLayoutColorAttachmentOptimal}}},
			{}, // intermediate subpass that does not touch attachment 0
			{Input: []SubpassRef{{Attachment: 0, Layout: vk.ImageLayoutShaderReadOnlyOptimal}}},
		},
	}
	insertPreserved(&data)
	if len(data.Subpasses[1].Preserve) != 1 || data.Subpasses[1].Preserve[0] != 0 {
		t.Fatalf("expected subpass 1 to preserve attachment 0, got %v", data.Subpasses[1].Preserve)
	}
	if len(data.Subpasses[0].Preserve) != 0 || len(data.Subpasses[2].Preserve) != 0 {
		t.Fatalf("first/last touching subpasses should not gain preserve entries")
	}
}

func TestClearValueForDerivesFromLoadOpAndFormat(t *testing.T) {
	colorClear := clearValueFor(AttachmentDesc{Format: vk.FormatR8G8B8A8Unorm, LoadOp: vk.AttachmentLoadOpClear})
	if colorClear != (vk.ClearValue{0, 0, 0, 0}) {
		t.Fatalf("expected zeroed color clear value, got %+v", colorClear)
	}

	depthClear := clearValueFor(AttachmentDesc{Format: vk.FormatD32Sfloat, LoadOp: vk.AttachmentLoadOpClear})
	if depthClear[0] != 1.0 {
		t.Fatalf("expected far-depth clear value, got %+v", depthClear)
	}

	noClear := clearValueFor(AttachmentDesc{Format: vk.FormatR8G8B8A8Unorm, LoadOp: vk.AttachmentLoadOpLoad})
	if noClear != (vk.ClearValue{}) {
		t.Fatalf("expected zero-value clear for a Load op, got %+v", noClear)
	}
}

func TestDescriptorCountsSortedByType(t *testing.T) {
	var c DescriptorCounts
	c.Add(vk.DescriptorTypeStorageBuffer, 4)
	c.Add(vk.DescriptorTypeSampler, 2)
	c.Add(vk.DescriptorTypeSampledImage, 8)

	sizes := c.PoolSizes()
	for i := 1; i < len(sizes); i++ {
		if sizes[i-1].Type > sizes[i].Type {
			t.Fatalf("expected pool sizes sorted by type, got %+v", sizes)
		}
	}
}
