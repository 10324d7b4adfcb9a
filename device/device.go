// Package device implements spec.md §3.1's Device entity: a logical
// VkDevice plus its Allocator, up to four DeviceQueueFamily records
// (graphics/present/transfer/compute, possibly aliased onto the same
// family), a per-format feature cache, a compiled sampler set, and an
// ObjectRegistry of live resources whose destruction is deferred until
// fence retirement (invariant 1 in spec.md §3.2). A deferred destructor
// runs on whichever goroutine observes the fence signal, not on the
// disposal thread.
//
// Grounded on the teacher's hal/vulkan/device.go (device creation, the
// initAllocator/CreateBuffer/CreateTexture shape) and adapter.go (queue
// family selection, vkCreateDevice wiring), generalized from a single
// graphics queue to the spec's up-to-four-family model and from the
// teacher's hal.BufferDescriptor-shaped surface to this module's own
// object/memory packages.
package device

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/kestrelgpu/vkrt/config"
	"github.com/kestrelgpu/vkrt/instance"
	"github.com/kestrelgpu/vkrt/internal/thread"
	"github.com/kestrelgpu/vkrt/memory"
	"github.com/kestrelgpu/vkrt/queue"
	"github.com/kestrelgpu/vkrt/rtlog"
	"github.com/kestrelgpu/vkrt/vk"
)

// Role indexes the up-to-four DeviceQueueFamily slots spec.md §3.1
// describes. Two or more roles may alias the same family when the
// physical device reports fewer distinct families than roles.
type Role int

const (
	RoleGraphics Role = iota
	RolePresent
	RoleTransfer
	RoleCompute
	roleCount
)

// Device owns a VkDevice, its function table, an Allocator, one
// DeviceQueueFamily per Role (aliased where the hardware doesn't
// distinguish them), a per-format feature cache, a compiled sampler set,
// and the live-object registry.
type Device struct {
	handle   vk.Device
	cmds     vk.Commands
	physical instance.PhysicalDeviceInfo

	allocator *memory.Allocator
	families  [roleCount]*queue.DeviceQueueFamily

	formatCache map[vk.Format]vk.FormatProperties
	samplers    *SamplerSet

	registry *Registry
	disposal *thread.Thread
}

// Samplers returns the device's compiled sampler set.
func (d *Device) Samplers() *SamplerSet { return d.samplers }

// Disposal returns the device's disposal thread, used by callers that need
// to post destructor work off the calling goroutine (spec.md §3.2
// invariant 1).
func (d *Device) Disposal() *thread.Thread { return d.disposal }

// Handle returns the underlying VkDevice.
func (d *Device) Handle() vk.Device { return d.handle }

// Commands returns the loaded device-level function table.
func (d *Device) Commands() *vk.Commands { return &d.cmds }

// Physical returns the immutable physical-device description this device
// was opened against.
func (d *Device) Physical() instance.PhysicalDeviceInfo { return d.physical }

// Allocator returns the device's memory allocator.
func (d *Device) Allocator() *memory.Allocator { return d.allocator }

// Family returns the DeviceQueueFamily serving role, or nil if no family on
// this physical device supports it.
func (d *Device) Family(role Role) *queue.DeviceQueueFamily { return d.families[role] }

// Registry returns the device's live-object registry.
func (d *Device) Registry() *Registry { return d.registry }

// pickFamily chooses the first queue family satisfying ops, preferring one
// that does not also satisfy any of avoidOps unless no alternative exists
// (so, e.g., a dedicated transfer family is preferred over the graphics
// family when both support transfer).
func pickFamily(families []instance.QueueFamily, ops queue.Ops, avoidOps queue.Ops) (int, bool) {
	fallback := -1
	for i, f := range families {
		if !supportsOps(f, ops) {
			continue
		}
		if !supportsOps(f, avoidOps) {
			return i, true
		}
		if fallback < 0 {
			fallback = i
		}
	}
	return fallback, fallback >= 0
}

func supportsOps(f instance.QueueFamily, ops queue.Ops) bool {
	if ops&queue.OpsGraphics != 0 && !f.HasGraphics() {
		return false
	}
	if ops&queue.OpsCompute != 0 && !f.HasCompute() {
		return false
	}
	if ops&queue.OpsTransfer != 0 && !f.HasTransfer() {
		return false
	}
	if ops&queue.OpsPresent != 0 && !f.SupportsPresent {
		return false
	}
	return true
}

func cStringArray(names []string) (**byte, func()) {
	if len(names) == 0 {
		return nil, func() {}
	}
	ptrs := make([]*byte, len(names))
	bufs := make([][]byte, len(names))
	for i, n := range names {
		b := make([]byte, len(n)+1)
		copy(b, n)
		bufs[i] = b
		ptrs[i] = &bufs[i][0]
	}
	keepAlive := func() {
		runtime.KeepAlive(bufs)
		runtime.KeepAlive(ptrs)
	}
	return &ptrs[0], keepAlive
}

// New opens a logical device against info, picking up to four queue
// families by Role (graphics, present, transfer, compute), enabling
// VK_KHR_swapchain plus VK_KHR_portability_subset when info.HasPortability,
// plus any extensions cfg.DeviceExtensionsCallback requests. It then builds
// the Allocator and one DeviceQueueFamily wrapper per distinct family index
// actually used.
func New(inst *instance.Instance, info instance.PhysicalDeviceInfo, cfg config.Config) (*Device, error) {
	graphicsIdx, ok := pickFamily(info.QueueFamilies, queue.OpsGraphics, 0)
	if !ok {
		return nil, fmt.Errorf("device: no graphics-capable queue family")
	}
	presentIdx, ok := pickFamily(info.QueueFamilies, queue.OpsPresent, 0)
	if !ok {
		presentIdx = graphicsIdx
	}
	transferIdx, ok := pickFamily(info.QueueFamilies, queue.OpsTransfer, queue.OpsGraphics)
	if !ok {
		transferIdx = graphicsIdx
	}
	computeIdx, ok := pickFamily(info.QueueFamilies, queue.OpsCompute, queue.OpsGraphics)
	if !ok {
		computeIdx = graphicsIdx
	}

	roleFamily := [roleCount]int{RoleGraphics: graphicsIdx, RolePresent: presentIdx, RoleTransfer: transferIdx, RoleCompute: computeIdx}

	// Collect distinct family indices and how many queues each needs (the
	// max over roles mapped to it, capped by the family's reported count).
	queueCounts := map[int]uint32{}
	for _, idx := range roleFamily {
		if queueCounts[idx] < 1 {
			queueCounts[idx] = 1
		}
	}

	priority := float32(1.0)
	var queueInfos []vk.DeviceQueueCreateInfo
	orderedIdx := make([]int, 0, len(queueCounts))
	for idx, count := range queueCounts {
		if count > info.QueueFamilies[idx].Count {
			count = info.QueueFamilies[idx].Count
		}
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: uint32(idx),
			QueueCount:       count,
			PQueuePriorities: &priority,
		})
		orderedIdx = append(orderedIdx, idx)
	}

	extensions := []string{"VK_KHR_swapchain"}
	if info.HasPortability {
		extensions = append(extensions, "VK_KHR_portability_subset")
	}
	if cfg.DeviceExtensionsCallback != nil {
		extensions = append(extensions, cfg.DeviceExtensionsCallback(info.Summary())...)
	}

	extPtr, keepExt := cStringArray(extensions)
	defer keepExt()

	features := info.Features
	createInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       &queueInfos[0],
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extPtr,
		PEnabledFeatures:        unsafe.Pointer(&features),
	}

	cmds := *inst.Commands()
	handle, r := cmds.CreateDevice(info.Handle, &createInfo, nil)
	if r != vk.Success {
		return nil, fmt.Errorf("device: vkCreateDevice failed: %d", r)
	}
	if err := cmds.LoadDevice(handle); err != nil {
		cmds.DestroyDevice(handle, nil)
		return nil, fmt.Errorf("device: %w", err)
	}

	d := &Device{
		handle:      handle,
		cmds:        cmds,
		physical:    info,
		formatCache: make(map[vk.Format]vk.FormatProperties),
		registry:    newRegistry(),
		disposal:    thread.New(),
	}

	memProps := cmds.GetPhysicalDeviceMemoryProperties(info.Handle)
	d.allocator = memory.New(handle, &d.cmds, memProps, info.Properties.Limits, info.IsDiscreteGPU())

	familyByIdx := map[int]*queue.DeviceQueueFamily{}
	for _, idx := range orderedIdx {
		count := queueCounts[idx]
		handles := make([]vk.Queue, count)
		for i := uint32(0); i < count; i++ {
			handles[i] = cmds.GetDeviceQueue(handle, uint32(idx), i)
		}
		familyByIdx[idx] = queue.New(uint32(idx), info.QueueFamilies[idx], handles)
	}
	for role, idx := range roleFamily {
		d.families[role] = familyByIdx[idx]
	}
	d.samplers = newSamplerSet(d)

	rtlog.Logger().Info("device: opened logical device", "name", info.Name(), "graphics_family", graphicsIdx, "present_family", presentIdx, "transfer_family", transferIdx, "compute_family", computeIdx)

	return d, nil
}

// FormatFeatures returns the optimal-tiling format features for format,
// querying vkGetPhysicalDeviceFormatProperties once per distinct format and
// caching the result.
func (d *Device) FormatFeatures(format vk.Format) vk.FormatFeatureFlags {
	if props, ok := d.formatCache[format]; ok {
		return props.OptimalTilingFeatures
	}
	props := d.cmds.GetPhysicalDeviceFormatProperties(d.physical.Handle, format)
	d.formatCache[format] = props
	return props.OptimalTilingFeatures
}

// Destroy drains the registry (waiting for any fence-gated destructions to
// complete), stops the disposal thread, destroys the allocator, and
// destroys the VkDevice. Matches spec.md §3.3's Loop-shutdown sequence:
// waitIdle, drain fences, then run destroyers in reverse-construction
// order.
func (d *Device) Destroy() {
	d.cmds.DeviceWaitIdle(d.handle)
	d.registry.drain()
	if d.samplers != nil {
		d.samplers.Destroy()
	}
	d.disposal.Stop()
	if d.allocator != nil {
		d.allocator.Destroy()
	}
	if d.handle != 0 {
		d.cmds.DestroyDevice(d.handle, nil)
		d.handle = 0
	}
}
