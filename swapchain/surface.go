// Package swapchain implements the Surface/SwapchainHandle presentation
// lifecycle spec.md §4.8 describes: acquiring and presenting swapchain
// images, recreation on suboptimal/out-of-date, and inheriting semaphores
// across a recreate.
//
// Grounded on the teacher's hal/vulkan/swapchain.go (capability query,
// image/view bookkeeping, present-mode and format selection) and root
// surface.go (the thin VkSurfaceKHR wrapper), generalized from the
// teacher's single-format/present-mode selection to the spec's full
// getSurfaceOptions query and its acquiredIndexes/suboptimal-counter
// bookkeeping.
package swapchain

import (
	"fmt"

	"github.com/kestrelgpu/vkrt/vk"
)

// Surface is a thin wrapper over VkSurfaceKHR plus the instance that
// created it (spec.md §4.8 "Surface").
type Surface struct {
	cmds     *vk.Commands
	instance vk.Instance
	handle   vk.SurfaceKHR
}

// Wrap adopts an already-created VkSurfaceKHR (platform surface creation
// is the caller's responsibility: Xlib/Wayland/Win32, per vk/structs.go's
// per-platform CreateInfo types).
func Wrap(cmds *vk.Commands, instance vk.Instance, handle vk.SurfaceKHR) *Surface {
	return &Surface{cmds: cmds, instance: instance, handle: handle}
}

// Handle returns the underlying VkSurfaceKHR.
func (s *Surface) Handle() vk.SurfaceKHR { return s.handle }

// Options bundles everything getSurfaceOptions reports (spec.md §4.8):
// formats, present modes, capabilities (extent/transform/composite-alpha/
// supported usage).
type Options struct {
	Capabilities vk.SurfaceCapabilitiesKHR
	Formats      []vk.SurfaceFormatKHR
	PresentModes []uint32
}

// GetSurfaceOptions queries pd's support for this surface: capabilities,
// formats, and present modes.
func (s *Surface) GetSurfaceOptions(pd vk.PhysicalDevice) (Options, error) {
	caps, r := s.cmds.GetPhysicalDeviceSurfaceCapabilitiesKHR(pd, s.handle)
	if r != vk.Success {
		return Options{}, fmt.Errorf("swapchain: vkGetPhysicalDeviceSurfaceCapabilitiesKHR failed: %d", r)
	}
	formats, r := s.cmds.GetPhysicalDeviceSurfaceFormatsKHR(pd, s.handle)
	if r != vk.Success {
		return Options{}, fmt.Errorf("swapchain: vkGetPhysicalDeviceSurfaceFormatsKHR failed: %d", r)
	}
	modes, r := s.cmds.GetPhysicalDeviceSurfacePresentModesKHR(pd, s.handle)
	if r != vk.Success {
		return Options{}, fmt.Errorf("swapchain: vkGetPhysicalDeviceSurfacePresentModesKHR failed: %d", r)
	}
	return Options{Capabilities: caps, Formats: formats, PresentModes: modes}, nil
}

// SupportsPresent reports whether queueFamily on pd can present to this
// surface.
func (s *Surface) SupportsPresent(pd vk.PhysicalDevice, queueFamily uint32) (bool, error) {
	ok, r := s.cmds.GetPhysicalDeviceSurfaceSupportKHR(pd, queueFamily, s.handle)
	if r != vk.Success {
		return false, fmt.Errorf("swapchain: vkGetPhysicalDeviceSurfaceSupportKHR failed: %d", r)
	}
	return ok, nil
}

// PickFormat chooses preferred if present among opts.Formats, else the
// first reported format.
func (o Options) PickFormat(preferred vk.SurfaceFormatKHR) vk.SurfaceFormatKHR {
	for _, f := range o.Formats {
		if f == preferred {
			return f
		}
	}
	if len(o.Formats) > 0 {
		return o.Formats[0]
	}
	return vk.SurfaceFormatKHR{Format: uint32(vk.FormatB8G8R8A8Unorm)}
}

// PickPresentMode chooses preferred if the surface reports supporting it,
// else falls back to VK_PRESENT_MODE_FIFO_KHR (always supported).
func (o Options) PickPresentMode(preferred uint32) uint32 {
	for _, m := range o.PresentModes {
		if m == preferred {
			return m
		}
	}
	return vk.PresentModeFifoKHR
}

// Destroy releases the underlying VkSurfaceKHR.
func (s *Surface) Destroy() {
	if s.handle != 0 {
		s.cmds.DestroySurfaceKHR(s.instance, s.handle, nil)
		s.handle = 0
	}
}
