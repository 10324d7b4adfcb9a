// Package instance loads the Vulkan library, creates the process-wide
// VkInstance, and enumerates every physical device into an immutable
// PhysicalDeviceInfo record (spec.md §3.1). It mirrors the teacher's
// hal/vulkan adapter/api/debug split: instance.go owns creation and
// device enumeration, messenger.go owns the validation callback.
package instance

import (
	"fmt"
	"runtime"

	"github.com/kestrelgpu/vkrt/config"
	"github.com/kestrelgpu/vkrt/rtlog"
	"github.com/kestrelgpu/vkrt/vk"
)

// Instance owns the process-wide VkInstance handle, its resolved function
// table, an optional validation messenger, and the physical devices found
// at creation time.
type Instance struct {
	handle    vk.Instance
	cmds      vk.Commands
	messenger vk.DebugUtilsMessengerEXT
	devices   []PhysicalDeviceInfo
}

// QueueFamily describes one VkQueueFamilyProperties entry, generalized with
// the presentation-support bit the spec's PhysicalDeviceInfo requires.
type QueueFamily struct {
	Index                       uint32
	Count                       uint32
	Flags                       vk.QueueFlags
	MinImageTransferGranularity vk.Extent3D
	// SupportsPresent is resolved lazily: it depends on a platform surface
	// that does not exist until the caller supplies a PresentSupportCallback.
	SupportsPresent bool
}

func (f QueueFamily) HasGraphics() bool      { return f.Flags&vk.QueueGraphicsBit != 0 }
func (f QueueFamily) HasCompute() bool       { return f.Flags&vk.QueueComputeBit != 0 }
func (f QueueFamily) HasTransfer() bool      { return f.Flags&vk.QueueTransferBit != 0 }
func (f QueueFamily) HasSparseBinding() bool { return f.Flags&vk.QueueSparseBindingBit != 0 }
func (f QueueFamily) HasProtected() bool     { return f.Flags&vk.QueueProtectedBit != 0 }

// PhysicalDeviceInfo is an immutable description of one GPU (spec.md §3.1):
// its queue families, properties, supported extensions, and a feature set.
// It never changes after New returns; Device construction reads
// from it but never mutates it.
type PhysicalDeviceInfo struct {
	Handle         vk.PhysicalDevice
	Properties     vk.PhysicalDeviceProperties
	Features       vk.PhysicalDeviceFeatures
	QueueFamilies  []QueueFamily
	Extensions     []string
	HasPortability bool // VK_KHR_portability_subset present (MoltenVK et al.)
}

// Name returns the NUL-terminated device name as a Go string.
func (p PhysicalDeviceInfo) Name() string {
	b := p.Properties.DeviceName[:]
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// IsDiscreteGPU reports whether VkPhysicalDeviceProperties.deviceType is
// VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU.
func (p PhysicalDeviceInfo) IsDiscreteGPU() bool {
	return p.Properties.DeviceType == physicalDeviceTypeDiscreteGPU
}

// HasExtension reports whether name is in the device's supported extension
// list.
func (p PhysicalDeviceInfo) HasExtension(name string) bool {
	for _, e := range p.Extensions {
		if e == name {
			return true
		}
	}
	return false
}

// Summary reduces a PhysicalDeviceInfo to the shape config's selection
// callbacks consume, keeping package config free of an import on instance.
func (p PhysicalDeviceInfo) Summary() config.DeviceSummary {
	driverExt := ""
	if p.HasPortability {
		driverExt = "VK_KHR_portability_subset"
	}
	return config.DeviceSummary{
		Name:            p.Name(),
		IsDiscreteGPU:   p.IsDiscreteGPU(),
		APIVersion:      p.Properties.APIVersion,
		DriverExtension: driverExt,
	}
}

const physicalDeviceTypeDiscreteGPU = 2 // VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU

// Handle returns the underlying VkInstance.
func (i *Instance) Handle() vk.Instance { return i.handle }

// Commands returns the instance-level (and, once LoadDevice has been
// called downstream, device-level) function table.
func (i *Instance) Commands() *vk.Commands { return &i.cmds }

// Devices returns the physical devices discovered when the instance was
// created.
func (i *Instance) Devices() []PhysicalDeviceInfo { return i.devices }

func makeVersion(major, minor, patch uint32) uint32 {
	return (major << 22) | (minor << 12) | patch
}

func cString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

func platformSurfaceExtension() string {
	switch runtime.GOOS {
	case "windows":
		return "VK_KHR_win32_surface"
	case "darwin":
		return "VK_EXT_metal_surface"
	default:
		return "VK_KHR_xlib_surface"
	}
}

// New loads the Vulkan library, creates a VkInstance, and enumerates every
// physical device into PhysicalDeviceInfo records. cfg.EnableValidationLayers
// requests VK_LAYER_KHRONOS_validation and installs a debug-utils messenger
// that forwards to rtlog.
func New(cfg config.Config) (*Instance, error) {
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("instance: %w", err)
	}

	var cmds vk.Commands
	if err := cmds.LoadGlobal(); err != nil {
		return nil, fmt.Errorf("instance: %w", err)
	}

	appName := cString("vkrt")
	engineName := cString("vkrt")
	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   &appName[0],
		ApplicationVersion: makeVersion(0, 1, 0),
		PEngineName:        &engineName[0],
		EngineVersion:      makeVersion(0, 1, 0),
		APIVersion:         makeVersion(1, 3, 0),
	}

	extensions := []string{"VK_KHR_surface", platformSurfaceExtension()}
	var layers []string
	if cfg.EnableValidationLayers {
		layers = append(layers, "VK_LAYER_KHRONOS_validation")
		extensions = append(extensions, "VK_EXT_debug_utils")
	}

	extPtrs, extBufs := cStringArray(extensions)
	layerPtrs, layerBufs := cStringArray(layers)

	createInfo := vk.InstanceCreateInfo{
		SType:                 vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:      &appInfo,
		EnabledExtensionCount: uint32(len(extensions)),
		EnabledLayerCount:     uint32(len(layers)),
	}
	if len(extPtrs) > 0 {
		createInfo.PpEnabledExtensionNames = &extPtrs[0]
	}
	if len(layerPtrs) > 0 {
		createInfo.PpEnabledLayerNames = &layerPtrs[0]
	}

	handle, r := cmds.CreateInstance(&createInfo, nil)
	if r != vk.Success {
		return nil, fmt.Errorf("instance: vkCreateInstance failed: %d", r)
	}
	runtime.KeepAlive(appName)
	runtime.KeepAlive(engineName)
	runtime.KeepAlive(extBufs)
	runtime.KeepAlive(layerBufs)
	runtime.KeepAlive(extPtrs)
	runtime.KeepAlive(layerPtrs)

	if err := cmds.LoadInstance(handle); err != nil {
		return nil, fmt.Errorf("instance: %w", err)
	}
	vk.SetDeviceProcAddr(handle)

	inst := &Instance{handle: handle, cmds: cmds}

	if cfg.EnableValidationLayers {
		inst.messenger = createMessenger(&inst.cmds, handle)
	}

	devices, err := enumerateDevices(&inst.cmds, handle, cfg.PresentSupportCallback)
	if err != nil {
		inst.Destroy()
		return nil, err
	}
	inst.devices = devices

	return inst, nil
}

func cStringArray(names []string) ([]*byte, [][]byte) {
	if len(names) == 0 {
		return nil, nil
	}
	ptrs := make([]*byte, len(names))
	bufs := make([][]byte, len(names))
	for i, n := range names {
		bufs[i] = cString(n)
		ptrs[i] = &bufs[i][0]
	}
	return ptrs, bufs
}

func enumerateDevices(cmds *vk.Commands, handle vk.Instance, presentSupport config.PresentSupportCallback) ([]PhysicalDeviceInfo, error) {
	handles, r := cmds.EnumeratePhysicalDevices(handle)
	if r != vk.Success {
		return nil, fmt.Errorf("instance: vkEnumeratePhysicalDevices failed: %d", r)
	}

	infos := make([]PhysicalDeviceInfo, 0, len(handles))
	for _, pd := range handles {
		props := cmds.GetPhysicalDeviceProperties(pd)
		features := cmds.GetPhysicalDeviceFeatures(pd)

		rawFamilies := cmds.GetPhysicalDeviceQueueFamilyProperties(pd)
		families := make([]QueueFamily, len(rawFamilies))
		for i, fam := range rawFamilies {
			qf := QueueFamily{
				Index:                       uint32(i),
				Count:                       fam.QueueCount,
				Flags:                       fam.QueueFlags,
				MinImageTransferGranularity: fam.MinImageTransferGranularity,
			}
			if presentSupport != nil {
				qf.SupportsPresent = presentSupport(pd, uint32(i))
			}
			families[i] = qf
		}

		extProps, r := cmds.EnumerateDeviceExtensionProperties(pd)
		if r != vk.Success && r != vk.Incomplete {
			rtlog.Logger().Warn("instance: vkEnumerateDeviceExtensionProperties failed", "result", r)
		}
		extensions := make([]string, len(extProps))
		hasPortability := false
		for i, e := range extProps {
			extensions[i] = e.Name()
			if extensions[i] == "VK_KHR_portability_subset" {
				hasPortability = true
			}
		}

		infos = append(infos, PhysicalDeviceInfo{
			Handle:         pd,
			Properties:     props,
			Features:       features,
			QueueFamilies:  families,
			Extensions:     extensions,
			HasPortability: hasPortability,
		})
	}
	return infos, nil
}

// Select runs cfg's DeviceSupportCallback (or, absent one, accepts every
// device) over the enumerated devices and returns the one chosen by
// cfg.DeviceIdx: config.DeviceIndexDefault picks the first that passes,
// any other value is a direct index into the (pre-filter) device list.
func (i *Instance) Select(cfg config.Config) (PhysicalDeviceInfo, error) {
	if cfg.DeviceIdx != config.DeviceIndexDefault {
		if cfg.DeviceIdx < 0 || cfg.DeviceIdx >= len(i.devices) {
			return PhysicalDeviceInfo{}, fmt.Errorf("instance: device index %d out of range (%d devices)", cfg.DeviceIdx, len(i.devices))
		}
		return i.devices[cfg.DeviceIdx], nil
	}
	for _, d := range i.devices {
		if cfg.DeviceSupportCallback == nil || cfg.DeviceSupportCallback(d.Summary()) {
			return d, nil
		}
	}
	return PhysicalDeviceInfo{}, fmt.Errorf("instance: no device passed DeviceSupportCallback")
}

// Destroy tears down the debug messenger (if any) and the VkInstance.
func (i *Instance) Destroy() {
	if i.messenger != 0 {
		destroyMessenger(&i.cmds, i.handle, i.messenger)
		i.messenger = 0
	}
	if i.handle != 0 {
		i.cmds.DestroyInstance(i.handle, nil)
		i.handle = 0
	}
}
