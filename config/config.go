// Package config holds the runtime's enumerated configuration (spec.md
// §6) and its defaults, matching the teacher's DefaultConfig() idiom
// (hal/vulkan/memory.DefaultConfig).
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/kestrelgpu/vkrt/vk"
)

// DeviceIndexDefault picks the first device that passes DeviceSupportCallback.
const DeviceIndexDefault = -1

// PresentSupportCallback gates surface backend support during instance
// initialization; supplied by the platform layer (out of scope per spec §1).
type PresentSupportCallback func(physicalDevice vk.PhysicalDevice, queueFamily uint32) bool

// DeviceSupportCallback is a per-device yes/no gate.
type DeviceSupportCallback func(info DeviceSummary) bool

// DeviceExtensionsCallback returns extra required device extensions.
type DeviceExtensionsCallback func(info DeviceSummary) []string

// DeviceFeaturesCallback overrides the feature chain; returned features are
// still canEnable-checked against the physical device before use.
type DeviceFeaturesCallback func(info DeviceSummary) FeatureOverrides

// DeviceSummary is the minimal device description callbacks need; the full
// PhysicalDeviceInfo lives in package instance (config cannot import it
// without a cycle, since instance.Config references this package).
type DeviceSummary struct {
	Name            string
	IsDiscreteGPU   bool
	APIVersion      uint32
	DriverExtension string // set to "VK_KHR_portability_subset" when present
}

// FeatureOverrides is a caller-supplied wishlist of Vulkan feature bits to
// try to enable; unsupported bits are silently dropped.
type FeatureOverrides struct {
	SamplerAnisotropy bool
	ShaderInt64       bool
	TimelineSemaphore bool
}

// Config is the single configuration object threaded through Instance,
// Device, and Loop construction.
type Config struct {
	// DeviceIdx selects a specific physical device; DeviceIndexDefault (-1)
	// picks the first device for which DeviceSupportCallback (or, absent
	// one, any device) returns true.
	DeviceIdx int

	// EnableValidationLayers turns on VK_LAYER_KHRONOS_validation and the
	// debug-utils messenger.
	EnableValidationLayers bool

	DeviceSupportCallback    DeviceSupportCallback
	DeviceExtensionsCallback DeviceExtensionsCallback
	DeviceFeaturesCallback   DeviceFeaturesCallback
	PresentSupportCallback   PresentSupportCallback

	// PresentationSchedulerInterval is the fence-poll interval, in
	// microseconds.
	PresentationSchedulerInterval uint64

	// MaxSuboptimalFrames is the threshold (spec §4.8) after which the
	// swapchain reports Suboptimal to trigger present-mode renegotiation.
	// The swapchain package does not read this field: Present uses the
	// constant swapchain.MaxSuboptimalFrames (24).
	MaxSuboptimalFrames int

	// MaxTextureSetImages/MaxTextureSetBuffers cap bindless slot counts.
	MaxTextureSetImages  uint32
	MaxTextureSetBuffers uint32

	// UseExternalFenceSync exports fences as sync-fds when the OS and
	// driver support it, bypassing the poll timer.
	UseExternalFenceSync bool

	// FontPreloadGroups expands a requested codepoint to its containing
	// Unicode block for the blocks subqueue.FontQueue enumerates.
	FontPreloadGroups bool
}

// DefaultConfig returns the runtime's defaults.
func DefaultConfig() Config {
	return Config{
		DeviceIdx:                     DeviceIndexDefault,
		EnableValidationLayers:        false,
		PresentationSchedulerInterval: 2000, // 2ms
		MaxSuboptimalFrames:           24,
		MaxTextureSetImages:           4096,
		MaxTextureSetBuffers:          4096,
		UseExternalFenceSync:          false,
		FontPreloadGroups:             false,
	}
}

// fileConfig is the TOML-serializable subset of Config; callback fields
// cannot be expressed in a config file and are left at their Config
// zero/default values when loading from disk.
type fileConfig struct {
	DeviceIdx                     int    `toml:"device_idx"`
	EnableValidationLayers        bool   `toml:"enable_validation_layers"`
	PresentationSchedulerInterval uint64 `toml:"presentation_scheduler_interval_us"`
	MaxSuboptimalFrames           int    `toml:"max_suboptimal_frames"`
	MaxTextureSetImages           uint32 `toml:"max_texture_set_images"`
	MaxTextureSetBuffers          uint32 `toml:"max_texture_set_buffers"`
	UseExternalFenceSync          bool   `toml:"use_external_fence_sync"`
	FontPreloadGroups             bool   `toml:"font_preload_groups"`
}

// LoadFile reads a TOML config file (for the cmd/vkrtd sample driver),
// starting from DefaultConfig and overriding only the fields present in
// the file.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	fc := fileConfig{
		DeviceIdx:                     cfg.DeviceIdx,
		PresentationSchedulerInterval: cfg.PresentationSchedulerInterval,
		MaxSuboptimalFrames:           cfg.MaxSuboptimalFrames,
		MaxTextureSetImages:           cfg.MaxTextureSetImages,
		MaxTextureSetBuffers:          cfg.MaxTextureSetBuffers,
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, err
	}

	cfg.DeviceIdx = fc.DeviceIdx
	cfg.EnableValidationLayers = fc.EnableValidationLayers
	cfg.PresentationSchedulerInterval = fc.PresentationSchedulerInterval
	cfg.MaxSuboptimalFrames = fc.MaxSuboptimalFrames
	cfg.MaxTextureSetImages = fc.MaxTextureSetImages
	cfg.MaxTextureSetBuffers = fc.MaxTextureSetBuffers
	cfg.UseExternalFenceSync = fc.UseExternalFenceSync
	cfg.FontPreloadGroups = fc.FontPreloadGroups
	return cfg, nil
}
