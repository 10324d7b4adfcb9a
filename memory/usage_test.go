package memory

import (
	"testing"

	"github.com/kestrelgpu/vkrt/vk"
)

func TestScoreDeviceLocalPrefersPureDeviceLocal(t *testing.T) {
	heaps := []MemHeap{{DeviceLocal: true}, {DeviceLocal: false}}
	pure := MemType{PropertyFlags: vk.MemoryPropertyDeviceLocalBit, HeapIndex: 0}
	hostVisible := MemType{
		PropertyFlags: vk.MemoryPropertyDeviceLocalBit | vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit,
		HeapIndex:     0,
	}
	if score(pure, heaps, DeviceLocal, false) <= score(hostVisible, heaps, DeviceLocal, false) {
		t.Fatal("expected pure device-local type to outscore a host-visible device-local type")
	}
}

func TestScoreRejectsNonMatchingType(t *testing.T) {
	heaps := []MemHeap{{DeviceLocal: false}}
	hostOnly := MemType{PropertyFlags: vk.MemoryPropertyHostVisibleBit, HeapIndex: 0}
	if s := score(hostOnly, heaps, DeviceLocal, false); s != 0 {
		t.Fatalf("score(hostOnly, DeviceLocal) = %d, want 0", s)
	}
}

func TestScoreHostTransitionSourcePrefersCoherent(t *testing.T) {
	heaps := []MemHeap{{DeviceLocal: false}}
	coherent := MemType{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit}
	cached := MemType{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCachedBit}
	if score(coherent, heaps, HostTransitionSource, false) <= score(cached, heaps, HostTransitionSource, false) {
		t.Fatal("expected coherent type to outscore cached for upload (HostTransitionSource)")
	}
}

func TestScoreHostTransitionDestinationPrefersCached(t *testing.T) {
	heaps := []MemHeap{{DeviceLocal: false}}
	coherent := MemType{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit}
	cached := MemType{PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCachedBit}
	if score(cached, heaps, HostTransitionDestination, false) <= score(coherent, heaps, HostTransitionDestination, false) {
		t.Fatal("expected cached type to outscore coherent for readback (HostTransitionDestination)")
	}
}

// TestScoreDeviceLocalHostVisiblePenalizesCoherentOnDiscrete matches
// spec.md §4.1 ("discrete: -Coherent"): on a discrete GPU, a non-coherent
// DeviceLocalHostVisible type outscores a coherent one.
func TestScoreDeviceLocalHostVisiblePenalizesCoherentOnDiscrete(t *testing.T) {
	heaps := []MemHeap{{DeviceLocal: true}}
	coherent := MemType{
		PropertyFlags: vk.MemoryPropertyDeviceLocalBit | vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit,
		HeapIndex:     0,
	}
	nonCoherent := MemType{
		PropertyFlags: vk.MemoryPropertyDeviceLocalBit | vk.MemoryPropertyHostVisibleBit,
		HeapIndex:     0,
	}
	if score(nonCoherent, heaps, DeviceLocalHostVisible, true) <= score(coherent, heaps, DeviceLocalHostVisible, true) {
		t.Fatal("expected non-coherent type to outscore coherent for DeviceLocalHostVisible on a discrete GPU")
	}
}

// TestScoreDeviceLocalHostVisiblePrefersCoherentOnIntegrated matches the
// non-discrete branch of the same table: an integrated GPU prefers
// coherent over cached.
func TestScoreDeviceLocalHostVisiblePrefersCoherentOnIntegrated(t *testing.T) {
	heaps := []MemHeap{{DeviceLocal: true}}
	coherent := MemType{
		PropertyFlags: vk.MemoryPropertyDeviceLocalBit | vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit,
		HeapIndex:     0,
	}
	cached := MemType{
		PropertyFlags: vk.MemoryPropertyDeviceLocalBit | vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCachedBit,
		HeapIndex:     0,
	}
	if score(coherent, heaps, DeviceLocalHostVisible, false) <= score(cached, heaps, DeviceLocalHostVisible, false) {
		t.Fatal("expected coherent type to outscore cached for DeviceLocalHostVisible on an integrated GPU")
	}
}

func TestFindMemoryTypeRespectsTypeMask(t *testing.T) {
	a := &Allocator{
		types: []MemType{
			{Index: 0, PropertyFlags: vk.MemoryPropertyDeviceLocalBit},
			{Index: 1, PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit},
		},
		heaps: []MemHeap{{DeviceLocal: true}},
	}
	// typeMask only allows index 1.
	got, ok := a.FindMemoryType(1<<1, HostTransitionSource)
	if !ok || got.Index != 1 {
		t.Fatalf("FindMemoryType = %+v, %v; want index 1", got, ok)
	}
}

func TestFindMemoryTypeNoMatch(t *testing.T) {
	a := &Allocator{
		types: []MemType{{Index: 0, PropertyFlags: vk.MemoryPropertyHostVisibleBit}},
		heaps: []MemHeap{{}},
	}
	if _, ok := a.FindMemoryType(1, DeviceLocal); ok {
		t.Fatal("expected no suitable memory type for DeviceLocal usage")
	}
}
