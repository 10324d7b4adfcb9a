// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import "unsafe"

// MemoryType / MemoryHeap / PhysicalDeviceMemoryProperties mirror the
// vkGetPhysicalDeviceMemoryProperties output.
type MemoryType struct {
	PropertyFlags MemoryPropertyFlags
	HeapIndex     uint32
}

type MemoryHeap struct {
	Size  DeviceSize
	Flags MemoryHeapFlags
}

type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [32]MemoryType
	MemoryHeapCount uint32
	MemoryHeaps     [16]MemoryHeap
}

// QueueFamilyProperties mirrors vkGetPhysicalDeviceQueueFamilyProperties.
type QueueFamilyProperties struct {
	QueueFlags                  QueueFlags
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity Extent3D
}

// PhysicalDeviceLimits is a deliberately partial mirror of
// VkPhysicalDeviceLimits: only the fields the allocator and render-pass
// compiler consult.
type PhysicalDeviceLimits struct {
	MaxMemoryAllocationCount        uint32
	BufferImageGranularity          DeviceSize
	NonCoherentAtomSize             DeviceSize
	MaxBoundDescriptorSets          uint32
	MaxPerStageDescriptorSamplers   uint32
	MaxPerStageDescriptorSampledImages uint32
	MaxPerStageDescriptorStorageBuffers uint32
	MaxPushConstantsSize            uint32
	TimestampPeriod                 float32
}

type PhysicalDeviceProperties struct {
	APIVersion    uint32
	DriverVersion uint32
	VendorID      uint32
	DeviceID      uint32
	DeviceType    uint32
	DeviceName    [256]byte
	Limits        PhysicalDeviceLimits
}

// MemoryRequirements mirrors VkMemoryRequirements.
type MemoryRequirements struct {
	Size           DeviceSize
	Alignment      DeviceSize
	MemoryTypeBits uint32
}

// MemoryDedicatedRequirements holds the two dedicated-allocation flags.
// Nothing in this module queries or reads it.
type MemoryDedicatedRequirements struct {
	PrefersDedicatedAllocation Bool32
	RequiresDedicatedAllocation Bool32
}

type MemoryAllocateInfo struct {
	SType           StructureType
	PNext           *uintptr
	AllocationSize  DeviceSize
	MemoryTypeIndex uint32
}

type BufferCreateInfo struct {
	SType                 StructureType
	PNext                 *uintptr
	Flags                 uint32
	Size                  DeviceSize
	Usage                 BufferUsageFlags
	SharingMode           SharingMode
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
}

type ImageCreateInfo struct {
	SType                 StructureType
	PNext                 *uintptr
	Flags                 uint32
	ImageType             uint32
	Format                uint32
	Extent                Extent3D
	MipLevels             uint32
	ArrayLayers           uint32
	Samples               SampleCountFlagBits
	Tiling                uint32
	Usage                 ImageUsageFlags
	SharingMode           SharingMode
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
	InitialLayout         uint32
}

const (
	ImageTypeOptimal2D uint32 = 1
	ImageTilingOptimal uint32 = 0
	ImageTilingLinear  uint32 = 1
)

type ImageViewCreateInfo struct {
	SType      StructureType
	PNext      *uintptr
	Flags      uint32
	Image      Image
	ViewType   uint32
	Format     uint32
	Components ComponentMapping
	SubresourceRange ImageSubresourceRange
}

type ComponentMapping struct {
	R, G, B, A uint32
}

type ImageSubresourceRange struct {
	AspectMask     ImageAspectFlags
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

type ImageSubresourceLayers struct {
	AspectMask     ImageAspectFlags
	MipLevel       uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

type BufferImageCopy struct {
	BufferOffset      DeviceSize
	BufferRowLength   uint32
	BufferImageHeight uint32
	ImageSubresource  ImageSubresourceLayers
	ImageOffset       Offset3D
	ImageExtent       Extent3D
}

type BufferCopy struct {
	SrcOffset DeviceSize
	DstOffset DeviceSize
	Size      DeviceSize
}

// BufferMemoryBarrier / ImageMemoryBarrier mirror the synchronization
// structs spec 3.1's "pending barrier" concept is built on.
type BufferMemoryBarrier struct {
	SType               StructureType
	PNext               *uintptr
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Buffer              Buffer
	Offset              DeviceSize
	Size                DeviceSize
}

type ImageMemoryBarrier struct {
	SType               StructureType
	PNext               *uintptr
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	OldLayout           uint32
	NewLayout           uint32
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Image               Image
	SubresourceRange    ImageSubresourceRange
}

type SamplerCreateInfo struct {
	SType        StructureType
	PNext        *uintptr
	Flags        uint32
	MagFilter    uint32
	MinFilter    uint32
	MipmapMode   uint32
	AddressModeU uint32
	AddressModeV uint32
	AddressModeW uint32
	MipLodBias   float32
	AnisotropyEnable Bool32
	MaxAnisotropy    float32
	CompareEnable    Bool32
	CompareOp        uint32
	MinLod           float32
	MaxLod           float32
	BorderColor      uint32
	UnnormalizedCoordinates Bool32
}

type FenceCreateInfo struct {
	SType StructureType
	PNext *uintptr
	Flags FenceCreateFlags
}

type SemaphoreCreateInfo struct {
	SType StructureType
	PNext *uintptr
	Flags uint32
}

type SemaphoreTypeCreateInfo struct {
	SType         StructureType
	PNext         *uintptr
	SemaphoreType SemaphoreType
	InitialValue  uint64
}

type SemaphoreWaitInfo struct {
	SType          StructureType
	PNext          *uintptr
	Flags          uint32
	SemaphoreCount uint32
	PSemaphores    *Semaphore
	PValues        *uint64
}

type CommandPoolCreateInfo struct {
	SType            StructureType
	PNext            *uintptr
	Flags            CommandPoolCreateFlags
	QueueFamilyIndex uint32
}

type CommandBufferAllocateInfo struct {
	SType              StructureType
	PNext              *uintptr
	CommandPool        CommandPool
	Level              uint32
	CommandBufferCount uint32
}

const (
	CommandBufferLevelPrimary   uint32 = 0
	CommandBufferLevelSecondary uint32 = 1
)

type CommandBufferBeginInfo struct {
	SType            StructureType
	PNext            *uintptr
	Flags            CommandBufferUsageFlags
	PInheritanceInfo unsafe.Pointer
}

const (
	CommandBufferUsageOneTimeSubmitBit CommandBufferUsageFlags = 0x00000001
)

type SubmitInfo struct {
	SType                StructureType
	PNext                *uintptr
	WaitSemaphoreCount   uint32
	PWaitSemaphores      *Semaphore
	PWaitDstStageMask    *PipelineStageFlags
	CommandBufferCount   uint32
	PCommandBuffers      *CommandBuffer
	SignalSemaphoreCount uint32
	PSignalSemaphores    *Semaphore
}

type RenderPassBeginInfo struct {
	SType           StructureType
	PNext           *uintptr
	RenderPass      RenderPass
	Framebuffer     Framebuffer
	RenderAreaOffset Offset3D
	RenderAreaExtent Extent2D
	ClearValueCount int32
	PClearValues    unsafe.Pointer
}

// ClearValue is a 16-byte union (VkClearColorValue/VkClearDepthStencilValue).
type ClearValue [4]float32

type FramebufferCreateInfo struct {
	SType           StructureType
	PNext           *uintptr
	Flags           uint32
	RenderPass      RenderPass
	AttachmentCount uint32
	PAttachments    *ImageView
	Width           uint32
	Height          uint32
	Layers          uint32
}

// AttachmentDescription / SubpassDescription / SubpassDependency /
// RenderPassCreateInfo mirror the structures the render-pass compiler
// (spec 4.5) assembles from a QueuePassData.
type AttachmentDescription struct {
	Flags          uint32
	Format         uint32
	Samples        SampleCountFlagBits
	LoadOp         uint32
	StoreOp        uint32
	StencilLoadOp  uint32
	StencilStoreOp uint32
	InitialLayout  uint32
	FinalLayout    uint32
}

const (
	AttachmentLoadOpLoad     uint32 = 0
	AttachmentLoadOpClear    uint32 = 1
	AttachmentLoadOpDontCare uint32 = 2

	AttachmentStoreOpStore    uint32 = 0
	AttachmentStoreOpDontCare uint32 = 1

	AttachmentDescriptionMayAliasBit uint32 = 0x00000001
)

type AttachmentReference struct {
	Attachment uint32
	Layout     uint32
}

type SubpassDescription struct {
	Flags                   uint32
	PipelineBindPoint       uint32
	InputAttachmentCount    uint32
	PInputAttachments       *AttachmentReference
	ColorAttachmentCount    uint32
	PColorAttachments       *AttachmentReference
	PResolveAttachments     *AttachmentReference
	PDepthStencilAttachment *AttachmentReference
	PreserveAttachmentCount uint32
	PPreserveAttachments    *uint32
}

const (
	PipelineBindPointGraphics uint32 = 0
	PipelineBindPointCompute  uint32 = 1
)

type SubpassDependency struct {
	SrcSubpass      uint32
	DstSubpass      uint32
	SrcStageMask    PipelineStageFlags
	DstStageMask    PipelineStageFlags
	SrcAccessMask   AccessFlags
	DstAccessMask   AccessFlags
	DependencyFlags uint32
}

const SubpassExternal uint32 = 0xFFFFFFFF
const DependencyByRegionBit uint32 = 0x00000001

type RenderPassCreateInfo struct {
	SType           StructureType
	PNext           *uintptr
	Flags           uint32
	AttachmentCount uint32
	PAttachments    *AttachmentDescription
	SubpassCount    uint32
	PSubpasses      *SubpassDescription
	DependencyCount uint32
	PDependencies   *SubpassDependency
}

// DescriptorSetLayoutBinding / WriteDescriptorSet mirror the binding
// model in spec 3.1's DescriptorBinding and 4.5's descriptor writing.
type DescriptorSetLayoutBinding struct {
	Binding            uint32
	DescriptorType     uint32
	DescriptorCount    uint32
	StageFlags         ShaderStageFlags
	PImmutableSamplers *Sampler
}

const (
	DescriptorTypeSampler             uint32 = 0
	DescriptorTypeCombinedImageSampler uint32 = 1
	DescriptorTypeSampledImage        uint32 = 2
	DescriptorTypeStorageImage        uint32 = 3
	DescriptorTypeUniformBuffer       uint32 = 6
	DescriptorTypeStorageBuffer       uint32 = 7
)

type DescriptorSetLayoutCreateInfo struct {
	SType        StructureType
	PNext        *uintptr
	Flags        uint32
	BindingCount uint32
	PBindings    *DescriptorSetLayoutBinding
}

const DescriptorSetLayoutCreateUpdateAfterBindPoolBit uint32 = 0x00000002
const DescriptorBindingUpdateAfterBindBit uint32 = 0x00000008
const DescriptorBindingPartiallyBoundBit uint32 = 0x00000002

type DescriptorPoolSize struct {
	Type            uint32
	DescriptorCount uint32
}

type DescriptorPoolCreateInfo struct {
	SType         StructureType
	PNext         *uintptr
	Flags         DescriptorPoolCreateFlags
	MaxSets       uint32
	PoolSizeCount uint32
	PPoolSizes    *DescriptorPoolSize
}

const DescriptorPoolCreateFreeDescriptorSetBit DescriptorPoolCreateFlags = 0x00000001
const DescriptorPoolCreateUpdateAfterBindBit DescriptorPoolCreateFlags = 0x00000002

type DescriptorSetAllocateInfo struct {
	SType              StructureType
	PNext              *uintptr
	DescriptorPool     DescriptorPool
	DescriptorSetCount uint32
	PSetLayouts        *DescriptorSetLayout
}

type DescriptorImageInfo struct {
	Sampler     Sampler
	ImageView   ImageView
	ImageLayout uint32
}

type DescriptorBufferInfo struct {
	Buffer Buffer
	Offset DeviceSize
	Range  DeviceSize
}

type WriteDescriptorSet struct {
	SType           StructureType
	PNext           *uintptr
	DstSet          DescriptorSet
	DstBinding      uint32
	DstArrayElement uint32
	DescriptorCount uint32
	DescriptorType  uint32
	PImageInfo      *DescriptorImageInfo
	PBufferInfo     *DescriptorBufferInfo
	PTexelBufferView unsafe.Pointer
}

type PushConstantRange struct {
	StageFlags ShaderStageFlags
	Offset     uint32
	Size       uint32
}

type PipelineLayoutCreateInfo struct {
	SType                  StructureType
	PNext                  *uintptr
	Flags                  uint32
	SetLayoutCount         uint32
	PSetLayouts            *DescriptorSetLayout
	PushConstantRangeCount uint32
	PPushConstantRanges    *PushConstantRange
}

const (
	ShaderStageVertexBit   ShaderStageFlags = 0x00000001
	ShaderStageFragmentBit ShaderStageFlags = 0x00000010
	ShaderStageComputeBit  ShaderStageFlags = 0x00000020
)

type ShaderModuleCreateInfo struct {
	SType    StructureType
	PNext    *uintptr
	Flags    uint32
	CodeSize uintptr
	PCode    unsafe.Pointer
}

// Graphics/compute pipeline state, mirroring the subset of
// VkGraphicsPipelineCreateInfo's dependent structs the render-queue and
// material compilers build (spec.md §5.2/§5.3).

type PipelineShaderStageCreateInfo struct {
	SType               StructureType
	PNext               *uintptr
	Flags               uint32
	Stage               ShaderStageFlags
	Module              ShaderModule
	PName               *byte
	PSpecializationInfo unsafe.Pointer
}

type VertexInputBindingDescription struct {
	Binding   uint32
	Stride    uint32
	InputRate uint32
}

const (
	VertexInputRateVertex   uint32 = 0
	VertexInputRateInstance uint32 = 1
)

type VertexInputAttributeDescription struct {
	Location uint32
	Binding  uint32
	Format   Format
	Offset   uint32
}

type PipelineVertexInputStateCreateInfo struct {
	SType                           StructureType
	PNext                           *uintptr
	Flags                           uint32
	VertexBindingDescriptionCount   uint32
	PVertexBindingDescriptions      *VertexInputBindingDescription
	VertexAttributeDescriptionCount uint32
	PVertexAttributeDescriptions    *VertexInputAttributeDescription
}

type PipelineInputAssemblyStateCreateInfo struct {
	SType                  StructureType
	PNext                  *uintptr
	Flags                  uint32
	Topology               uint32
	PrimitiveRestartEnable Bool32
}

const (
	PrimitiveTopologyPointList    uint32 = 0
	PrimitiveTopologyLineList     uint32 = 1
	PrimitiveTopologyTriangleList uint32 = 3
	PrimitiveTopologyTriangleStrip uint32 = 4
)

type Viewport struct {
	X, Y, Width, Height, MinDepth, MaxDepth float32
}

type Offset2D struct {
	X, Y int32
}

type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}

type PipelineViewportStateCreateInfo struct {
	SType         StructureType
	PNext         *uintptr
	Flags         uint32
	ViewportCount uint32
	PViewports    *Viewport
	ScissorCount  uint32
	PScissors     *Rect2D
}

type PipelineRasterizationStateCreateInfo struct {
	SType                   StructureType
	PNext                   *uintptr
	Flags                   uint32
	DepthClampEnable        Bool32
	RasterizerDiscardEnable Bool32
	PolygonMode             uint32
	CullMode                uint32
	FrontFace               uint32
	DepthBiasEnable         Bool32
	DepthBiasConstantFactor float32
	DepthBiasClamp          float32
	DepthBiasSlopeFactor    float32
	LineWidth               float32
}

const (
	PolygonModeFill  uint32 = 0
	PolygonModeLine  uint32 = 1
	PolygonModePoint uint32 = 2
)

const (
	CullModeNone         uint32 = 0
	CullModeFrontBit     uint32 = 0x00000001
	CullModeBackBit      uint32 = 0x00000002
)

const (
	FrontFaceCounterClockwise uint32 = 0
	FrontFaceClockwise        uint32 = 1
)

type PipelineMultisampleStateCreateInfo struct {
	SType                 StructureType
	PNext                 *uintptr
	Flags                 uint32
	RasterizationSamples  SampleCountFlagBits
	SampleShadingEnable   Bool32
	MinSampleShading      float32
	PSampleMask           *uint32
	AlphaToCoverageEnable Bool32
	AlphaToOneEnable      Bool32
}

type StencilOpState struct {
	FailOp      uint32
	PassOp      uint32
	DepthFailOp uint32
	CompareOp   uint32
	CompareMask uint32
	WriteMask   uint32
	Reference   uint32
}

type PipelineDepthStencilStateCreateInfo struct {
	SType                 StructureType
	PNext                 *uintptr
	Flags                 uint32
	DepthTestEnable       Bool32
	DepthWriteEnable      Bool32
	DepthCompareOp        uint32
	DepthBoundsTestEnable Bool32
	StencilTestEnable     Bool32
	Front                 StencilOpState
	Back                  StencilOpState
	MinDepthBounds        float32
	MaxDepthBounds        float32
}

const (
	CompareOpNever        uint32 = 0
	CompareOpLess         uint32 = 1
	CompareOpEqual        uint32 = 2
	CompareOpLessOrEqual  uint32 = 3
	CompareOpGreater      uint32 = 4
	CompareOpAlways       uint32 = 7
)

type PipelineColorBlendAttachmentState struct {
	BlendEnable         Bool32
	SrcColorBlendFactor uint32
	DstColorBlendFactor uint32
	ColorBlendOp        uint32
	SrcAlphaBlendFactor uint32
	DstAlphaBlendFactor uint32
	AlphaBlendOp        uint32
	ColorWriteMask      uint32
}

const ColorComponentAllBits uint32 = 0xF

type PipelineColorBlendStateCreateInfo struct {
	SType           StructureType
	PNext           *uintptr
	Flags           uint32
	LogicOpEnable   Bool32
	LogicOp         uint32
	AttachmentCount uint32
	PAttachments    *PipelineColorBlendAttachmentState
	BlendConstants  [4]float32
}

type PipelineDynamicStateCreateInfo struct {
	SType             StructureType
	PNext             *uintptr
	Flags             uint32
	DynamicStateCount uint32
	PDynamicStates    *uint32
}

const (
	DynamicStateViewport uint32 = 0
	DynamicStateScissor  uint32 = 1
)

type GraphicsPipelineCreateInfo struct {
	SType               StructureType
	PNext               *uintptr
	Flags               uint32
	StageCount          uint32
	PStages             *PipelineShaderStageCreateInfo
	PVertexInputState   *PipelineVertexInputStateCreateInfo
	PInputAssemblyState *PipelineInputAssemblyStateCreateInfo
	PViewportState      *PipelineViewportStateCreateInfo
	PRasterizationState *PipelineRasterizationStateCreateInfo
	PMultisampleState   *PipelineMultisampleStateCreateInfo
	PDepthStencilState  *PipelineDepthStencilStateCreateInfo
	PColorBlendState    *PipelineColorBlendStateCreateInfo
	PDynamicState       *PipelineDynamicStateCreateInfo
	Layout              PipelineLayout
	RenderPass          RenderPass
	Subpass             uint32
	BasePipelineHandle  Pipeline
	BasePipelineIndex   int32
}

type ComputePipelineCreateInfo struct {
	SType              StructureType
	PNext              *uintptr
	Flags              uint32
	Stage              PipelineShaderStageCreateInfo
	Layout             PipelineLayout
	BasePipelineHandle Pipeline
	BasePipelineIndex  int32
}

// Swapchain / surface structs.
type SurfaceCapabilitiesKHR struct {
	MinImageCount           uint32
	MaxImageCount           uint32
	CurrentExtent           Extent2D
	MinImageExtent          Extent2D
	MaxImageExtent          Extent2D
	MaxImageArrayLayers     uint32
	SupportedTransforms     SurfaceTransformFlagBitsKHR
	CurrentTransform        SurfaceTransformFlagBitsKHR
	SupportedCompositeAlpha CompositeAlphaFlagBitsKHR
	SupportedUsageFlags     ImageUsageFlags
}

type SurfaceFormatKHR struct {
	Format     uint32
	ColorSpace uint32
}

type SwapchainCreateInfoKHR struct {
	SType                 StructureType
	PNext                 *uintptr
	Flags                 uint32
	Surface               SurfaceKHR
	MinImageCount         uint32
	ImageFormat           uint32
	ImageColorSpace       uint32
	ImageExtent           Extent2D
	ImageArrayLayers      uint32
	ImageUsage            ImageUsageFlags
	ImageSharingMode      SharingMode
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
	PreTransform          SurfaceTransformFlagBitsKHR
	CompositeAlpha        CompositeAlphaFlagBitsKHR
	PresentMode           uint32
	Clipped               Bool32
	OldSwapchain          SwapchainKHR
}

const (
	PresentModeImmediateKHR   uint32 = 0
	PresentModeMailboxKHR     uint32 = 1
	PresentModeFifoKHR        uint32 = 2
	PresentModeFifoRelaxedKHR uint32 = 3
)

type PresentInfoKHR struct {
	SType              StructureType
	PNext              *uintptr
	WaitSemaphoreCount uint32
	PWaitSemaphores    *Semaphore
	SwapchainCount     uint32
	PSwapchains        *SwapchainKHR
	PImageIndices      *uint32
	PResults           *Result
}

// PresentTimeGOOGLE / PresentTimesInfoGOOGLE mirror the VK_GOOGLE_display_timing
// extension structs, chained onto a present when the extension is
// available (spec.md §4.8).
type PresentTimeGOOGLE struct {
	PresentID          uint32
	DesiredPresentTime uint64
}

type PresentTimesInfoGOOGLE struct {
	SType          StructureType
	PNext          *uintptr
	SwapchainCount uint32
	PTimes         *PresentTimeGOOGLE
}

type AcquireNextImageInfoKHR struct {
	SType      StructureType
	PNext      *uintptr
	Swapchain  SwapchainKHR
	Timeout    uint64
	Semaphore  Semaphore
	Fence      Fence
	DeviceMask uint32
}

type XlibSurfaceCreateInfoKHR struct {
	SType  StructureType
	PNext  *uintptr
	Flags  uint32
	Dpy    uintptr
	Window uint64
}

type WaylandSurfaceCreateInfoKHR struct {
	SType   StructureType
	PNext   *uintptr
	Flags   uint32
	Display uintptr
	Surface uintptr
}

type Win32SurfaceCreateInfoKHR struct {
	SType     StructureType
	PNext     *uintptr
	Flags     uint32
	Hinstance uintptr
	Hwnd      uintptr
}

type DebugUtilsMessengerCallbackDataEXT struct {
	SType           StructureType
	PNext           *uintptr
	Flags           uint32
	PMessageIDName  *byte
	MessageIDNumber int32
	PMessage        *byte
}

type DebugUtilsMessengerCreateInfoEXT struct {
	SType           StructureType
	PNext           *uintptr
	Flags           uint32
	MessageSeverity uint32
	MessageType     uint32
	PfnUserCallback uintptr
	PUserData       unsafe.Pointer
}

const (
	DebugUtilsMessageSeverityVerboseBitEXT uint32 = 0x00000001
	DebugUtilsMessageSeverityInfoBitEXT    uint32 = 0x00000010
	DebugUtilsMessageSeverityWarningBitEXT uint32 = 0x00000100
	DebugUtilsMessageSeverityErrorBitEXT   uint32 = 0x00001000
)

// PhysicalDeviceFeatures is a deliberately partial mirror of
// VkPhysicalDeviceFeatures: only the bits the memory allocator, render-pass
// compiler, and device-selection callbacks consult. Field order matches the
// VkPhysicalDeviceFeatures struct layout for the fields present, so a
// GetPhysicalDeviceFeatures call can fill it directly.
type PhysicalDeviceFeatures struct {
	RobustBufferAccess              Bool32
	FullDrawIndexUint32              Bool32
	ImageCubeArray                   Bool32
	IndependentBlend                 Bool32
	GeometryShader                   Bool32
	TessellationShader               Bool32
	SampleRateShading                Bool32
	DualSrcBlend                     Bool32
	LogicOp                          Bool32
	MultiDrawIndirect                Bool32
	DrawIndirectFirstInstance        Bool32
	DepthClamp                       Bool32
	DepthBiasClamp                   Bool32
	FillModeNonSolid                 Bool32
	DepthBounds                      Bool32
	WideLines                        Bool32
	LargePoints                      Bool32
	AlphaToOne                       Bool32
	MultiViewport                    Bool32
	SamplerAnisotropy                Bool32
	TextureCompressionETC2           Bool32
	TextureCompressionASTC_LDR       Bool32
	TextureCompressionBC             Bool32
	OcclusionQueryPrecise            Bool32
	PipelineStatisticsQuery          Bool32
	VertexPipelineStoresAndAtomics   Bool32
	FragmentStoresAndAtomics         Bool32
	ShaderImageGatherExtended        Bool32
	ShaderStorageImageExtendedFormats Bool32
	ShaderClipDistance               Bool32
	ShaderCullDistance               Bool32
	ShaderFloat64                    Bool32
	ShaderInt64                      Bool32
	ShaderInt16                      Bool32
	SparseBinding                    Bool32
	VariableMultisampleRate          Bool32
}

// ExtensionProperties mirrors VkExtensionProperties, as returned by
// EnumerateInstanceExtensionProperties and EnumerateDeviceExtensionProperties.
type ExtensionProperties struct {
	ExtensionName [256]byte
	SpecVersion   uint32
}

// Name returns the NUL-terminated ExtensionName field as a Go string.
func (e ExtensionProperties) Name() string {
	n := 0
	for n < len(e.ExtensionName) && e.ExtensionName[n] != 0 {
		n++
	}
	return string(e.ExtensionName[:n])
}
