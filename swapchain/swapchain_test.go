package swapchain

import (
	"testing"

	"github.com/kestrelgpu/vkrt/vk"
)

func TestOptionsPickFormatPrefersPreferred(t *testing.T) {
	opts := Options{Formats: []vk.SurfaceFormatKHR{
		{Format: uint32(vk.FormatR8G8B8A8Unorm)},
		{Format: uint32(vk.FormatB8G8R8A8Unorm)},
	}}
	got := opts.PickFormat(vk.SurfaceFormatKHR{Format: uint32(vk.FormatB8G8R8A8Unorm)})
	if got.Format != uint32(vk.FormatB8G8R8A8Unorm) {
		t.Fatalf("expected preferred format to win, got %+v", got)
	}
}

func TestOptionsPickFormatFallsBackToFirst(t *testing.T) {
	opts := Options{Formats: []vk.SurfaceFormatKHR{{Format: uint32(vk.FormatR8G8B8A8Unorm)}}}
	got := opts.PickFormat(vk.SurfaceFormatKHR{Format: uint32(vk.FormatB8G8R8A8Unorm)})
	if got.Format != uint32(vk.FormatR8G8B8A8Unorm) {
		t.Fatalf("expected fallback to only reported format, got %+v", got)
	}
}

func TestOptionsPickPresentModeFallsBackToFifo(t *testing.T) {
	opts := Options{PresentModes: []uint32{vk.PresentModeFifoKHR}}
	got := opts.PickPresentMode(vk.PresentModeMailboxKHR)
	if got != vk.PresentModeFifoKHR {
		t.Fatalf("expected fallback to FIFO, got %d", got)
	}
}

func TestOptionsPickPresentModeHonorsSupported(t *testing.T) {
	opts := Options{PresentModes: []uint32{vk.PresentModeFifoKHR, vk.PresentModeMailboxKHR}}
	got := opts.PickPresentMode(vk.PresentModeMailboxKHR)
	if got != vk.PresentModeMailboxKHR {
		t.Fatalf("expected mailbox to be honored when supported, got %d", got)
	}
}

// TestSuboptimalCounterTripsAfterThreshold encodes scenario S2: a
// swapchain that keeps reporting Suboptimal on present should only
// surface that to the caller once MaxSuboptimalFrames consecutive
// suboptimal presents have accumulated, not on every frame.
func TestSuboptimalCounterTripsAfterThreshold(t *testing.T) {
	s := &SwapchainHandle{}
	tripped := 0
	for i := 0; i < MaxSuboptimalFrames; i++ {
		s.suboptimalCount++
		if s.suboptimalCount >= MaxSuboptimalFrames {
			tripped++
			s.suboptimalCount = 0
		}
	}
	if tripped != 1 {
		t.Fatalf("expected exactly one trip across %d suboptimal frames, got %d", MaxSuboptimalFrames, tripped)
	}
}

// TestViewCacheKeyComparable exercises the same key-equality semantics
// ViewFor relies on: two ImageViewCreateInfo values built the same way
// must compare equal so the second call is a cache hit (testable
// property 9).
func TestViewCacheKeyComparable(t *testing.T) {
	a := vk.ImageViewCreateInfo{
		SType: vk.StructureTypeImageViewCreateInfo, ViewType: 1, Format: uint32(vk.FormatR8G8B8A8Unorm),
		SubresourceRange: vk.ImageSubresourceRange{AspectMask: vk.ImageAspectColorBit, LevelCount: 1, LayerCount: 1},
	}
	b := a
	if a != b {
		t.Fatalf("expected identical ImageViewCreateInfo values to compare equal")
	}

	cache := map[vk.ImageViewCreateInfo]int{}
	cache[a] = 1
	if _, ok := cache[b]; !ok {
		t.Fatalf("expected cache lookup with an equal-but-distinct info value to hit")
	}
}
