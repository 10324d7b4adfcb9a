package memory

import "github.com/kestrelgpu/vkrt/vk"

// Usage is the caller's intent for an allocation; findMemoryType scores
// candidate memory types against it (spec.md §4.1's scoring table).
type Usage int

const (
	DeviceLocal Usage = iota
	DeviceLocalHostVisible
	DeviceLocalLazilyAllocated
	HostTransitionSource
	HostTransitionDestination
)

func (u Usage) String() string {
	switch u {
	case DeviceLocal:
		return "DeviceLocal"
	case DeviceLocalHostVisible:
		return "DeviceLocalHostVisible"
	case DeviceLocalLazilyAllocated:
		return "DeviceLocalLazilyAllocated"
	case HostTransitionSource:
		return "HostTransitionSource"
	case HostTransitionDestination:
		return "HostTransitionDestination"
	default:
		return "Usage(unknown)"
	}
}

// MemType mirrors one VkMemoryType entry, generalized with its index.
type MemType struct {
	Index         uint32
	PropertyFlags vk.MemoryPropertyFlags
	HeapIndex     uint32
}

func (t MemType) has(bit vk.MemoryPropertyFlags) bool { return t.PropertyFlags&bit != 0 }

func (t MemType) isDeviceLocal() bool      { return t.has(vk.MemoryPropertyDeviceLocalBit) }
func (t MemType) isHostVisible() bool      { return t.has(vk.MemoryPropertyHostVisibleBit) }
func (t MemType) isHostCoherent() bool     { return t.has(vk.MemoryPropertyHostCoherentBit) }
func (t MemType) isHostCached() bool       { return t.has(vk.MemoryPropertyHostCachedBit) }
func (t MemType) isLazilyAllocated() bool  { return t.has(vk.MemoryPropertyLazilyAllocatedBit) }

// MemHeap mirrors one VkMemoryHeap entry.
type MemHeap struct {
	Size        vk.DeviceSize
	DeviceLocal bool
}

// score implements the table in spec.md §4.1. Types with a non-matching
// shape (missing a required bit the usage demands) score 0 and are never
// selected; every other combination returns a positive integer, higher is
// better. discreteGPU is VkPhysicalDeviceProperties.deviceType ==
// VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU, needed because DeviceLocalHostVisible
// scoring differs by device class (spec.md §4.1: "discrete: -Coherent").
func score(t MemType, heaps []MemHeap, usage Usage, discreteGPU bool) int {
	deviceLocalHeap := int(t.HeapIndex) < len(heaps) && heaps[t.HeapIndex].DeviceLocal

	switch usage {
	case DeviceLocal, DeviceLocalLazilyAllocated:
		if !t.isDeviceLocal() {
			return 0
		}
		base := 32
		if !deviceLocalHeap {
			base = 24
		}
		if usage == DeviceLocalLazilyAllocated {
			base += 12
			if t.isLazilyAllocated() {
				base += 4
			}
		}
		if t.isHostVisible() {
			base -= 4
		}
		if t.isHostCoherent() {
			base -= 2
		}
		if t.isHostCached() {
			base -= 2
		}
		return base

	case DeviceLocalHostVisible:
		if !t.isDeviceLocal() || !t.isHostVisible() {
			return 0
		}
		base := 32
		if discreteGPU {
			if t.isHostCoherent() {
				base -= 3
			}
			if t.isHostCached() {
				base -= 4
			}
		} else if t.isHostCoherent() {
			base -= 2
		} else if t.isHostCached() {
			base -= 4
		}
		return base

	case HostTransitionSource:
		if !t.isHostVisible() {
			return 0
		}
		base := 32
		if t.isHostCoherent() {
			base += 3
		}
		if t.isHostCached() {
			base -= 4
		}
		return base

	case HostTransitionDestination:
		if !t.isHostVisible() {
			return 0
		}
		base := 32
		if t.isHostCached() {
			base += 4
		}
		if t.isHostCoherent() {
			base -= 3
		}
		return base

	default:
		return 0
	}
}
