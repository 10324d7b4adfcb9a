// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

// Handle types. Vulkan dispatchable and non-dispatchable handles are both
// represented as 64-bit integers; on 32-bit platforms Vulkan defines
// non-dispatchable handles as 32-bit, but this module only targets 64-bit
// targets, matching the teacher binding's assumption.
type (
	Instance       uint64
	PhysicalDevice uint64
	Device         uint64
	Queue          uint64

	DeviceMemory        uint64
	Buffer              uint64
	Image               uint64
	ImageView            uint64
	BufferView          uint64
	Sampler             uint64
	ShaderModule        uint64
	Pipeline            uint64
	PipelineLayout      uint64
	PipelineCache       uint64
	RenderPass          uint64
	Framebuffer         uint64
	DescriptorSetLayout uint64
	DescriptorPool      uint64
	DescriptorSet       uint64
	CommandPool         uint64
	CommandBuffer       uint64
	Fence               uint64
	Semaphore           uint64
	Event               uint64
	QueryPool           uint64
	SurfaceKHR          uint64
	SwapchainKHR        uint64
	DebugUtilsMessengerEXT uint64
)

// Result mirrors VkResult.
type Result int32

const (
	Success                    Result = 0
	NotReady                   Result = 1
	Timeout                    Result = 2
	EventSet                   Result = 3
	EventReset                 Result = 4
	Incomplete                 Result = 5
	ErrorOutOfHostMemory       Result = -1
	ErrorOutOfDeviceMemory     Result = -2
	ErrorInitializationFailed  Result = -3
	ErrorDeviceLost            Result = -4
	ErrorMemoryMapFailed       Result = -5
	ErrorLayerNotPresent       Result = -6
	ErrorExtensionNotPresent   Result = -7
	ErrorFeatureNotPresent     Result = -8
	ErrorIncompatibleDriver    Result = -9
	ErrorTooManyObjects        Result = -10
	ErrorFormatNotSupported    Result = -11
	ErrorFragmentedPool        Result = -12
	ErrorUnknown               Result = -13
	ErrorOutOfPoolMemory       Result = -1000069000
	ErrorInvalidExternalHandle Result = -1000072003
	ErrorFragmentation         Result = -1000161000
	ErrorSurfaceLostKHR        Result = -1000000000
	ErrorNativeWindowInUseKHR  Result = -1000000001
	SuboptimalKHR              Result = 1000001003
	ErrorOutOfDateKHR          Result = -1000001004
	ErrorFullScreenExclusiveModeLostEXT Result = -1000255000
)

// Bool32 mirrors VkBool32 (a 32-bit integer, not a Go bool).
type Bool32 uint32

const (
	False Bool32 = 0
	True  Bool32 = 1
)

// DeviceSize mirrors VkDeviceSize (64-bit, unsigned).
type DeviceSize uint64

// Flag types. Vulkan flag typedefs are all VkFlags (uint32) underneath;
// distinct Go types exist so call sites can't mix unrelated flag bits.
type (
	QueueFlags               uint32
	MemoryPropertyFlags      uint32
	MemoryHeapFlags          uint32
	BufferUsageFlags         uint32
	ImageUsageFlags          uint32
	ImageAspectFlags         uint32
	PipelineStageFlags       uint32
	AccessFlags              uint32
	CommandPoolCreateFlags   uint32
	CommandBufferUsageFlags  uint32
	FenceCreateFlags         uint32
	SampleCountFlagBits      uint32
	ShaderStageFlags         uint32
	DescriptorPoolCreateFlags uint32
	SurfaceTransformFlagBitsKHR uint32
	CompositeAlphaFlagBitsKHR   uint32
)

const (
	QueueGraphicsBit      QueueFlags = 0x00000001
	QueueComputeBit       QueueFlags = 0x00000002
	QueueTransferBit      QueueFlags = 0x00000004
	QueueSparseBindingBit QueueFlags = 0x00000008
	QueueProtectedBit     QueueFlags = 0x00000010
)

const (
	MemoryPropertyDeviceLocalBit     MemoryPropertyFlags = 0x00000001
	MemoryPropertyHostVisibleBit     MemoryPropertyFlags = 0x00000002
	MemoryPropertyHostCoherentBit    MemoryPropertyFlags = 0x00000004
	MemoryPropertyHostCachedBit      MemoryPropertyFlags = 0x00000008
	MemoryPropertyLazilyAllocatedBit MemoryPropertyFlags = 0x00000010
	MemoryPropertyProtectedBit       MemoryPropertyFlags = 0x00000020
)

const (
	MemoryHeapDeviceLocalBit MemoryHeapFlags = 0x00000001
)

const (
	ImageAspectColorBit   ImageAspectFlags = 0x00000001
	ImageAspectDepthBit   ImageAspectFlags = 0x00000002
	ImageAspectStencilBit ImageAspectFlags = 0x00000004
)

const (
	AccessTransferReadBit         AccessFlags = 0x00000800
	AccessTransferWriteBit        AccessFlags = 0x00001000
	AccessShaderReadBit           AccessFlags = 0x00000020
	AccessColorAttachmentWriteBit AccessFlags = 0x00000100
	AccessDepthStencilAttachmentWriteBit AccessFlags = 0x00000400
	AccessMemoryReadBit           AccessFlags = 0x00008000
	AccessMemoryWriteBit          AccessFlags = 0x00010000
)

const (
	PipelineStageTopOfPipeBit          PipelineStageFlags = 0x00000001
	PipelineStageTransferBit           PipelineStageFlags = 0x00001000
	PipelineStageBottomOfPipeBit       PipelineStageFlags = 0x00002000
	PipelineStageColorAttachmentOutputBit PipelineStageFlags = 0x00000400
	PipelineStageFragmentShaderBit     PipelineStageFlags = 0x00000080
	PipelineStageAllCommandsBit        PipelineStageFlags = 0x00010000
)

const (
	ImageLayoutUndefined                     = 0
	ImageLayoutGeneral                       = 1
	ImageLayoutColorAttachmentOptimal         = 2
	ImageLayoutDepthStencilAttachmentOptimal  = 3
	ImageLayoutShaderReadOnlyOptimal          = 5
	ImageLayoutTransferSrcOptimal             = 6
	ImageLayoutTransferDstOptimal             = 7
	ImageLayoutPresentSrcKHR                  = 1000001002
)

const (
	CommandPoolCreateTransientBit          CommandPoolCreateFlags = 0x00000001
	CommandPoolCreateResetCommandBufferBit CommandPoolCreateFlags = 0x00000002
)

const (
	FenceCreateSignaledBit FenceCreateFlags = 0x00000001
)

const (
	BufferUsageTransferSrcBit         BufferUsageFlags = 0x00000001
	BufferUsageTransferDstBit         BufferUsageFlags = 0x00000002
	BufferUsageUniformBufferBit       BufferUsageFlags = 0x00000010
	BufferUsageStorageBufferBit       BufferUsageFlags = 0x00000020
	BufferUsageIndexBufferBit         BufferUsageFlags = 0x00000040
	BufferUsageVertexBufferBit        BufferUsageFlags = 0x00000080
)

const (
	ImageUsageTransferSrcBit            ImageUsageFlags = 0x00000001
	ImageUsageTransferDstBit            ImageUsageFlags = 0x00000002
	ImageUsageSampledBit                ImageUsageFlags = 0x00000004
	ImageUsageStorageBit                ImageUsageFlags = 0x00000008
	ImageUsageColorAttachmentBit        ImageUsageFlags = 0x00000010
	ImageUsageDepthStencilAttachmentBit ImageUsageFlags = 0x00000020
	ImageUsageInputAttachmentBit        ImageUsageFlags = 0x00000080
)

const (
	SurfaceTransformIdentityBitKHR SurfaceTransformFlagBitsKHR = 0x00000001
)

const (
	CompositeAlphaOpaqueBitKHR         CompositeAlphaFlagBitsKHR = 0x00000001
	CompositeAlphaPreMultipliedBitKHR  CompositeAlphaFlagBitsKHR = 0x00000002
	CompositeAlphaPostMultipliedBitKHR CompositeAlphaFlagBitsKHR = 0x00000004
	CompositeAlphaInheritBitKHR        CompositeAlphaFlagBitsKHR = 0x00000008
)

// SampleCount1Bit is the only multisample count this module's render-pass
// compiler issues, matching every retrieved example's single-sample
// attachment descriptions.
const SampleCount1Bit SampleCountFlagBits = 0x00000001

// AttachmentUnused mirrors VK_ATTACHMENT_UNUSED, used by the render-pass
// compiler to fill unused depth/input-attachment references.
const AttachmentUnused uint32 = 0xFFFFFFFF

// FormatFeatureFlags mirrors VkFormatFeatureFlags, the subset device's
// per-format feature cache and the render-pass compiler consult to decide
// whether a format can back a sampled image, a color attachment, or a
// depth/stencil attachment.
type FormatFeatureFlags uint32

const (
	FormatFeatureSampledImageBit              FormatFeatureFlags = 0x00000001
	FormatFeatureColorAttachmentBit           FormatFeatureFlags = 0x00000080
	FormatFeatureColorAttachmentBlendBit      FormatFeatureFlags = 0x00000100
	FormatFeatureDepthStencilAttachmentBit    FormatFeatureFlags = 0x00000200
	FormatFeatureBlitSrcBit                   FormatFeatureFlags = 0x00000400
	FormatFeatureBlitDstBit                   FormatFeatureFlags = 0x00000800
	FormatFeatureSampledImageFilterLinearBit  FormatFeatureFlags = 0x00001000
)

// FormatProperties mirrors VkFormatProperties.
type FormatProperties struct {
	LinearTilingFeatures  FormatFeatureFlags
	OptimalTilingFeatures FormatFeatureFlags
	BufferFeatures        FormatFeatureFlags
}

// Format mirrors VkFormat; only the subset this module's object and
// render-pass compilers inspect directly (for aspect-mask derivation and
// depth/stencil classification) is listed.
type Format uint32

const (
	FormatUndefined         Format = 0
	FormatR8G8B8A8Unorm     Format = 37
	FormatR8G8B8A8Srgb      Format = 43
	FormatB8G8R8A8Unorm     Format = 44
	FormatB8G8R8A8Srgb      Format = 50
	FormatR16G16B16A16Sfloat Format = 97
	FormatR32G32B32A32Sfloat Format = 109
	FormatD16Unorm          Format = 124
	FormatX8D24UnormPack32  Format = 125
	FormatD32Sfloat         Format = 126
	FormatS8Uint            Format = 127
	FormatD16UnormS8Uint    Format = 128
	FormatD24UnormS8Uint    Format = 129
	FormatD32SfloatS8Uint   Format = 130
)

// HasDepth reports whether f carries a depth component.
func (f Format) HasDepth() bool {
	switch f {
	case FormatD16Unorm, FormatX8D24UnormPack32, FormatD32Sfloat,
		FormatD16UnormS8Uint, FormatD24UnormS8Uint, FormatD32SfloatS8Uint:
		return true
	default:
		return false
	}
}

// HasStencil reports whether f carries a stencil component.
func (f Format) HasStencil() bool {
	switch f {
	case FormatS8Uint, FormatD16UnormS8Uint, FormatD24UnormS8Uint, FormatD32SfloatS8Uint:
		return true
	default:
		return false
	}
}

// ImageType mirrors VkImageType.
const (
	ImageType1D uint32 = 0
	ImageType2D uint32 = 1
	ImageType3D uint32 = 2
)

// ImageViewType mirrors VkImageViewType.
const (
	ImageViewType1D         uint32 = 0
	ImageViewType2D         uint32 = 1
	ImageViewType3D         uint32 = 2
	ImageViewTypeCube       uint32 = 3
	ImageViewType1DArray    uint32 = 4
	ImageViewType2DArray    uint32 = 5
	ImageViewTypeCubeArray  uint32 = 6
)

const QueueFamilyIgnored uint32 = 0xFFFFFFFF
const RemainingMipLevels uint32 = 0xFFFFFFFF
const RemainingArrayLayers uint32 = 0xFFFFFFFF
const WholeSize uint64 = 0xFFFFFFFFFFFFFFFF

// StructureType mirrors VkStructureType; only the subset in use is listed.
type StructureType uint32

const (
	StructureTypeApplicationInfo                  StructureType = 0
	StructureTypeInstanceCreateInfo                StructureType = 1
	StructureTypeDeviceQueueCreateInfo              StructureType = 2
	StructureTypeDeviceCreateInfo                   StructureType = 3
	StructureTypeSubmitInfo                         StructureType = 4
	StructureTypeMemoryAllocateInfo                 StructureType = 5
	StructureTypeFenceCreateInfo                    StructureType = 8
	StructureTypeSemaphoreCreateInfo                StructureType = 9
	StructureTypeBufferCreateInfo                   StructureType = 12
	StructureTypeImageCreateInfo                    StructureType = 14
	StructureTypeImageViewCreateInfo                StructureType = 15
	StructureTypeShaderModuleCreateInfo             StructureType = 16
	StructureTypePipelineLayoutCreateInfo           StructureType = 30
	StructureTypeSamplerCreateInfo                  StructureType = 31
	StructureTypeDescriptorSetLayoutCreateInfo      StructureType = 32
	StructureTypeDescriptorPoolCreateInfo           StructureType = 33
	StructureTypeDescriptorSetAllocateInfo          StructureType = 34
	StructureTypeWriteDescriptorSet                 StructureType = 35
	StructureTypeCommandPoolCreateInfo              StructureType = 39
	StructureTypeCommandBufferAllocateInfo          StructureType = 40
	StructureTypeCommandBufferBeginInfo             StructureType = 42
	StructureTypeRenderPassBeginInfo                StructureType = 43
	StructureTypeBufferMemoryBarrier                StructureType = 44
	StructureTypeImageMemoryBarrier                 StructureType = 45
	StructureTypeFramebufferCreateInfo              StructureType = 37
	StructureTypeRenderPassCreateInfo                StructureType = 38
	StructureTypeGraphicsPipelineCreateInfo         StructureType = 28
	StructureTypeComputePipelineCreateInfo          StructureType = 29
	StructureTypePipelineShaderStageCreateInfo      StructureType = 18
	StructureTypePipelineVertexInputStateCreateInfo StructureType = 19
	StructureTypePipelineInputAssemblyStateCreateInfo StructureType = 20
	StructureTypePipelineRasterizationStateCreateInfo StructureType = 23
	StructureTypePipelineViewportStateCreateInfo    StructureType = 22
	StructureTypePipelineMultisampleStateCreateInfo StructureType = 24
	StructureTypePipelineDepthStencilStateCreateInfo StructureType = 25
	StructureTypePipelineColorBlendStateCreateInfo  StructureType = 26
	StructureTypePipelineDynamicStateCreateInfo     StructureType = 27
	StructureTypeSwapchainCreateInfoKHR             StructureType = 1000001000
	StructureTypePresentInfoKHR                     StructureType = 1000001001
	StructureTypeXlibSurfaceCreateInfoKhr            StructureType = 1000004000
	StructureTypeWaylandSurfaceCreateInfoKhr         StructureType = 1000006000
	StructureTypeWin32SurfaceCreateInfoKhr           StructureType = 1000009000
	StructureTypeSemaphoreTypeCreateInfo            StructureType = 1000207002
	StructureTypeSemaphoreWaitInfo                  StructureType = 1000207004
	StructureTypeDebugUtilsMessengerCreateInfoEXT   StructureType = 1000128004
	StructureTypeDebugUtilsMessengerCallbackDataEXT StructureType = 1000128003
	StructureTypePresentTimesInfoGOOGLE             StructureType = 1000092000
	StructureTypeAcquireNextImageInfoKHR            StructureType = 1000060010
)

// SemaphoreType mirrors VkSemaphoreType.
type SemaphoreType uint32

const (
	SemaphoreTypeBinary    SemaphoreType = 0
	SemaphoreTypeTimeline  SemaphoreType = 1
)

// SharingMode mirrors VkSharingMode.
type SharingMode uint32

const (
	SharingModeExclusive  SharingMode = 0
	SharingModeConcurrent SharingMode = 1
)

// Extent2D / Extent3D / Offset3D mirror their Vulkan counterparts.
type Extent2D struct {
	Width, Height uint32
}

type Extent3D struct {
	Width, Height, Depth uint32
}

type Offset3D struct {
	X, Y, Z int32
}

// AllocationCallbacks is left opaque: this module never installs custom
// host allocation callbacks, matching every retrieved example.
type AllocationCallbacks struct{}
