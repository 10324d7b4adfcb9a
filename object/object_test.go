package object

import (
	"testing"

	"github.com/kestrelgpu/vkrt/memory"
	"github.com/kestrelgpu/vkrt/vk"
)

func TestAspectMaskForFormat(t *testing.T) {
	cases := []struct {
		name   string
		format vk.Format
		want   vk.ImageAspectFlags
	}{
		{"color", vk.FormatR8G8B8A8Unorm, vk.ImageAspectColorBit},
		{"depth-only", vk.FormatD32Sfloat, vk.ImageAspectDepthBit},
		{"stencil-only", vk.FormatS8Uint, vk.ImageAspectStencilBit},
		{"depth-stencil", vk.FormatD24UnormS8Uint, vk.ImageAspectDepthBit | vk.ImageAspectStencilBit},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := aspectMaskForFormat(c.format); got != c.want {
				t.Errorf("aspectMaskForFormat(%v) = %v, want %v", c.format, got, c.want)
			}
		})
	}
}

func TestViewTypeCompatibleWithImageType(t *testing.T) {
	cases := []struct {
		name      string
		viewType  uint32
		imageType uint32
		want      bool
	}{
		{"2d view on 2d image", vk.ImageViewType2D, vk.ImageType2D, true},
		{"cube view on 2d image", vk.ImageViewTypeCube, vk.ImageType2D, true},
		{"cube view on 3d image", vk.ImageViewTypeCube, vk.ImageType3D, false},
		{"3d view on 3d image", vk.ImageViewType3D, vk.ImageType3D, true},
		{"1d view on 2d image", vk.ImageViewType1D, vk.ImageType2D, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := viewTypeCompatibleWithImageType(c.viewType, c.imageType); got != c.want {
				t.Errorf("viewTypeCompatibleWithImageType(%d, %d) = %v, want %v", c.viewType, c.imageType, got, c.want)
			}
		})
	}
}

func TestPendingBarrierSingleSlotHandoff(t *testing.T) {
	var s pendingSlot
	if s.HasPendingBarrier() {
		t.Fatal("fresh slot should be empty")
	}

	b := &PendingBarrier{SrcStage: vk.PipelineStageTransferBit}
	s.SetPendingBarrier(b)
	if !s.HasPendingBarrier() {
		t.Fatal("slot should be occupied after SetPendingBarrier")
	}

	got := s.DropPendingBarrier()
	if got != b {
		t.Fatal("DropPendingBarrier returned wrong barrier")
	}
	if s.HasPendingBarrier() {
		t.Fatal("slot should be empty after DropPendingBarrier")
	}
}

func TestPendingBarrierSetPanicsWhenOccupied(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when setting a barrier on an occupied slot")
		}
	}()
	var s pendingSlot
	s.SetPendingBarrier(&PendingBarrier{})
	s.SetPendingBarrier(&PendingBarrier{})
}

func TestWrapExternalImageIsNotDestroyedOrBindable(t *testing.T) {
	img := WrapExternal(vk.Image(1), vk.FormatB8G8R8A8Unorm, vk.Extent3D{Width: 800, Height: 600, Depth: 1})
	if !img.IsExternal() {
		t.Fatal("WrapExternal image should report IsExternal")
	}
	if img.AspectMask() != vk.ImageAspectColorBit {
		t.Fatalf("expected color aspect for external swapchain image, got %v", img.AspectMask())
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic binding memory to an external image")
		}
	}()
	_ = img.BindMemory(nil, 0, memory.MemBlock{})
}
