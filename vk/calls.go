// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import "unsafe"

// InstanceCreateInfo mirrors VkInstanceCreateInfo.
type InstanceCreateInfo struct {
	SType                   StructureType
	PNext                   *uintptr
	Flags                   uint32
	PApplicationInfo        *ApplicationInfo
	EnabledLayerCount       uint32
	PpEnabledLayerNames     **byte
	EnabledExtensionCount   uint32
	PpEnabledExtensionNames **byte
}

type ApplicationInfo struct {
	SType              StructureType
	PNext              *uintptr
	PApplicationName   *byte
	ApplicationVersion uint32
	PEngineName        *byte
	EngineVersion      uint32
	APIVersion         uint32
}

type DeviceQueueCreateInfo struct {
	SType            StructureType
	PNext            *uintptr
	Flags            uint32
	QueueFamilyIndex uint32
	QueueCount       uint32
	PQueuePriorities *float32
}

type DeviceCreateInfo struct {
	SType                   StructureType
	PNext                   *uintptr
	Flags                   uint32
	QueueCreateInfoCount    uint32
	PQueueCreateInfos       *DeviceQueueCreateInfo
	EnabledLayerCount       uint32
	PpEnabledLayerNames     **byte
	EnabledExtensionCount   uint32
	PpEnabledExtensionNames **byte
	PEnabledFeatures        unsafe.Pointer
}

// CreateInstance wraps vkCreateInstance.
func (c *Commands) CreateInstance(info *InstanceCreateInfo, alloc *AllocationCallbacks) (Instance, Result) {
	var instance Instance
	r := callResult(c.createInstance,
		[]argKind{kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&instance))})
	return instance, r
}

func (c *Commands) DestroyInstance(instance Instance, alloc *AllocationCallbacks) {
	callVoid(c.destroyInstance, []argKind{kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&instance)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) EnumeratePhysicalDevices(instance Instance) ([]PhysicalDevice, Result) {
	var count uint32
	r := callResult(c.enumeratePhysicalDevices, []argKind{kindU64, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&instance)), ptrArg(unsafe.Pointer(&count)), ptrArg(nil)})
	if r != Success || count == 0 {
		return nil, r
	}
	devices := make([]PhysicalDevice, count)
	r = callResult(c.enumeratePhysicalDevices, []argKind{kindU64, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&instance)), ptrArg(unsafe.Pointer(&count)), ptrArg(unsafe.Pointer(&devices[0]))})
	return devices, r
}

func (c *Commands) GetPhysicalDeviceProperties(pd PhysicalDevice) PhysicalDeviceProperties {
	var props PhysicalDeviceProperties
	callVoid(c.getPhysicalDeviceProperties, []argKind{kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), ptrArg(unsafe.Pointer(&props))})
	return props
}

func (c *Commands) GetPhysicalDeviceMemoryProperties(pd PhysicalDevice) PhysicalDeviceMemoryProperties {
	var props PhysicalDeviceMemoryProperties
	callVoid(c.getPhysicalDeviceMemoryProperties, []argKind{kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), ptrArg(unsafe.Pointer(&props))})
	return props
}

func (c *Commands) GetPhysicalDeviceFeatures(pd PhysicalDevice) PhysicalDeviceFeatures {
	var features PhysicalDeviceFeatures
	callVoid(c.getPhysicalDeviceFeatures, []argKind{kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), ptrArg(unsafe.Pointer(&features))})
	return features
}

// EnumerateInstanceExtensionProperties lists the extensions available with
// no layer selected (layerName is always passed as nil).
func (c *Commands) EnumerateInstanceExtensionProperties() ([]ExtensionProperties, Result) {
	var count uint32
	r := callResult(c.enumerateInstanceExtensionProperties, []argKind{kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{ptrArg(nil), ptrArg(unsafe.Pointer(&count)), ptrArg(nil)})
	if r != Success || count == 0 {
		return nil, r
	}
	props := make([]ExtensionProperties, count)
	r = callResult(c.enumerateInstanceExtensionProperties, []argKind{kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{ptrArg(nil), ptrArg(unsafe.Pointer(&count)), ptrArg(unsafe.Pointer(&props[0]))})
	return props, r
}

// EnumerateDeviceExtensionProperties lists the extensions a physical device
// supports with no layer selected.
func (c *Commands) EnumerateDeviceExtensionProperties(pd PhysicalDevice) ([]ExtensionProperties, Result) {
	var count uint32
	r := callResult(c.enumerateDeviceExtensionProperties, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), ptrArg(nil), ptrArg(unsafe.Pointer(&count)), ptrArg(nil)})
	if r != Success || count == 0 {
		return nil, r
	}
	props := make([]ExtensionProperties, count)
	r = callResult(c.enumerateDeviceExtensionProperties, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), ptrArg(nil), ptrArg(unsafe.Pointer(&count)), ptrArg(unsafe.Pointer(&props[0]))})
	return props, r
}

func (c *Commands) GetPhysicalDeviceFormatProperties(pd PhysicalDevice, format Format) FormatProperties {
	var props FormatProperties
	callVoid(c.getPhysicalDeviceFormatProperties, []argKind{kindU64, kindU32, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), word(unsafe.Pointer(&format)), ptrArg(unsafe.Pointer(&props))})
	return props
}

func (c *Commands) GetPhysicalDeviceQueueFamilyProperties(pd PhysicalDevice) []QueueFamilyProperties {
	var count uint32
	callVoid(c.getPhysicalDeviceQueueFamilyProperties, []argKind{kindU64, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), ptrArg(unsafe.Pointer(&count)), ptrArg(nil)})
	if count == 0 {
		return nil
	}
	families := make([]QueueFamilyProperties, count)
	callVoid(c.getPhysicalDeviceQueueFamilyProperties, []argKind{kindU64, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), ptrArg(unsafe.Pointer(&count)), ptrArg(unsafe.Pointer(&families[0]))})
	return families
}

func (c *Commands) CreateDevice(pd PhysicalDevice, info *DeviceCreateInfo, alloc *AllocationCallbacks) (Device, Result) {
	var device Device
	r := callResult(c.createDevice, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&device))})
	return device, r
}

func (c *Commands) DestroyDevice(device Device, alloc *AllocationCallbacks) {
	callVoid(c.destroyDevice, []argKind{kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) GetDeviceQueue(device Device, familyIndex, queueIndex uint32) Queue {
	var queue Queue
	callVoid(c.getDeviceQueue, []argKind{kindU64, kindU32, kindU32, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&familyIndex)), word(unsafe.Pointer(&queueIndex)), ptrArg(unsafe.Pointer(&queue))})
	return queue
}

func (c *Commands) DeviceWaitIdle(device Device) Result {
	return callResult(c.deviceWaitIdle, []argKind{kindU64}, []unsafe.Pointer{word(unsafe.Pointer(&device))})
}

func (c *Commands) QueueSubmit(queue Queue, submits []SubmitInfo, fence Fence) Result {
	var pSubmits unsafe.Pointer
	count := uint32(len(submits))
	if count > 0 {
		pSubmits = unsafe.Pointer(&submits[0])
	}
	return callResult(c.queueSubmit, []argKind{kindU64, kindU32, kindPtr, kindU64},
		[]unsafe.Pointer{word(unsafe.Pointer(&queue)), word(unsafe.Pointer(&count)), ptrArg(pSubmits), word(unsafe.Pointer(&fence))})
}

func (c *Commands) QueueWaitIdle(queue Queue) Result {
	return callResult(c.queueWaitIdle, []argKind{kindU64}, []unsafe.Pointer{word(unsafe.Pointer(&queue))})
}

func (c *Commands) QueuePresentKHR(queue Queue, info *PresentInfoKHR) Result {
	return callResult(c.queuePresentKHR, []argKind{kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&queue)), ptrArg(unsafe.Pointer(info))})
}

// --- synchronization ---

func (c *Commands) CreateFence(device Device, info *FenceCreateInfo, alloc *AllocationCallbacks) (Fence, Result) {
	var fence Fence
	r := callResult(c.createFence, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&fence))})
	return fence, r
}

func (c *Commands) DestroyFence(device Device, fence Fence, alloc *AllocationCallbacks) {
	callVoid(c.destroyFence, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&fence)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) ResetFences(device Device, fences []Fence) Result {
	count := uint32(len(fences))
	var p unsafe.Pointer
	if count > 0 {
		p = unsafe.Pointer(&fences[0])
	}
	return callResult(c.resetFences, []argKind{kindU64, kindU32, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&count)), ptrArg(p)})
}

func (c *Commands) WaitForFences(device Device, fences []Fence, waitAll bool, timeout uint64) Result {
	count := uint32(len(fences))
	var p unsafe.Pointer
	if count > 0 {
		p = unsafe.Pointer(&fences[0])
	}
	all := Bool32(0)
	if waitAll {
		all = True
	}
	return callResult(c.waitForFences, []argKind{kindU64, kindU32, kindPtr, kindU32, kindU64},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&count)), ptrArg(p), word(unsafe.Pointer(&all)), word(unsafe.Pointer(&timeout))})
}

func (c *Commands) GetFenceStatus(device Device, fence Fence) Result {
	return callResult(c.getFenceStatus, []argKind{kindU64, kindU64},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&fence))})
}

func (c *Commands) CreateSemaphore(device Device, info *SemaphoreCreateInfo, alloc *AllocationCallbacks) (Semaphore, Result) {
	var sem Semaphore
	r := callResult(c.createSemaphore, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&sem))})
	return sem, r
}

func (c *Commands) DestroySemaphore(device Device, sem Semaphore, alloc *AllocationCallbacks) {
	callVoid(c.destroySemaphore, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&sem)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) GetSemaphoreCounterValue(device Device, sem Semaphore) (uint64, Result) {
	var value uint64
	r := callResult(c.getSemaphoreCounterValue, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&sem)), ptrArg(unsafe.Pointer(&value))})
	return value, r
}

func (c *Commands) WaitSemaphores(device Device, info *SemaphoreWaitInfo, timeout uint64) Result {
	return callResult(c.waitSemaphores, []argKind{kindU64, kindPtr, kindU64},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), word(unsafe.Pointer(&timeout))})
}

type SemaphoreSignalInfo struct {
	SType     StructureType
	PNext     *uintptr
	Semaphore Semaphore
	Value     uint64
}

func (c *Commands) SignalSemaphore(device Device, info *SemaphoreSignalInfo) Result {
	return callResult(c.signalSemaphore, []argKind{kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info))})
}

// --- command pools / buffers ---

func (c *Commands) CreateCommandPool(device Device, info *CommandPoolCreateInfo, alloc *AllocationCallbacks) (CommandPool, Result) {
	var pool CommandPool
	r := callResult(c.createCommandPool, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&pool))})
	return pool, r
}

func (c *Commands) DestroyCommandPool(device Device, pool CommandPool, alloc *AllocationCallbacks) {
	callVoid(c.destroyCommandPool, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&pool)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) ResetCommandPool(device Device, pool CommandPool, flags uint32) Result {
	return callResult(c.resetCommandPool, []argKind{kindU64, kindU64, kindU32},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&pool)), word(unsafe.Pointer(&flags))})
}

func (c *Commands) AllocateCommandBuffers(device Device, info *CommandBufferAllocateInfo) ([]CommandBuffer, Result) {
	bufs := make([]CommandBuffer, info.CommandBufferCount)
	r := callResult(c.allocateCommandBuffers, []argKind{kindU64, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(&bufs[0]))})
	return bufs, r
}

func (c *Commands) FreeCommandBuffers(device Device, pool CommandPool, bufs []CommandBuffer) {
	count := uint32(len(bufs))
	var p unsafe.Pointer
	if count > 0 {
		p = unsafe.Pointer(&bufs[0])
	}
	callVoid(c.freeCommandBuffers, []argKind{kindU64, kindU64, kindU32, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&pool)), word(unsafe.Pointer(&count)), ptrArg(p)})
}

func (c *Commands) BeginCommandBuffer(cb CommandBuffer, info *CommandBufferBeginInfo) Result {
	return callResult(c.beginCommandBuffer, []argKind{kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&cb)), ptrArg(unsafe.Pointer(info))})
}

func (c *Commands) EndCommandBuffer(cb CommandBuffer) Result {
	return callResult(c.endCommandBuffer, []argKind{kindU64}, []unsafe.Pointer{word(unsafe.Pointer(&cb))})
}

func (c *Commands) ResetCommandBuffer(cb CommandBuffer, flags uint32) Result {
	return callResult(c.resetCommandBuffer, []argKind{kindU64, kindU32},
		[]unsafe.Pointer{word(unsafe.Pointer(&cb)), word(unsafe.Pointer(&flags))})
}

// --- command recording ---

func (c *Commands) CmdPipelineBarrier(cb CommandBuffer, srcStage, dstStage PipelineStageFlags, dependencyFlags uint32,
	bufferBarriers []BufferMemoryBarrier, imageBarriers []ImageMemoryBarrier) {
	var bCount, iCount uint32
	var bPtr, iPtr unsafe.Pointer
	if len(bufferBarriers) > 0 {
		bCount = uint32(len(bufferBarriers))
		bPtr = unsafe.Pointer(&bufferBarriers[0])
	}
	if len(imageBarriers) > 0 {
		iCount = uint32(len(imageBarriers))
		iPtr = unsafe.Pointer(&imageBarriers[0])
	}
	memCount := uint32(0)
	callVoid(c.cmdPipelineBarrier,
		[]argKind{kindU64, kindU32, kindU32, kindU32, kindU32, kindPtr, kindU32, kindPtr, kindU32, kindPtr},
		[]unsafe.Pointer{
			word(unsafe.Pointer(&cb)), word(unsafe.Pointer(&srcStage)), word(unsafe.Pointer(&dstStage)), word(unsafe.Pointer(&dependencyFlags)),
			word(unsafe.Pointer(&memCount)), ptrArg(nil),
			word(unsafe.Pointer(&bCount)), ptrArg(bPtr),
			word(unsafe.Pointer(&iCount)), ptrArg(iPtr),
		})
}

func (c *Commands) CmdCopyBuffer(cb CommandBuffer, src, dst Buffer, regions []BufferCopy) {
	count := uint32(len(regions))
	var p unsafe.Pointer
	if count > 0 {
		p = unsafe.Pointer(&regions[0])
	}
	callVoid(c.cmdCopyBuffer, []argKind{kindU64, kindU64, kindU64, kindU32, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&cb)), word(unsafe.Pointer(&src)), word(unsafe.Pointer(&dst)), word(unsafe.Pointer(&count)), ptrArg(p)})
}

func (c *Commands) CmdCopyBufferToImage(cb CommandBuffer, src Buffer, dst Image, dstLayout uint32, regions []BufferImageCopy) {
	count := uint32(len(regions))
	var p unsafe.Pointer
	if count > 0 {
		p = unsafe.Pointer(&regions[0])
	}
	callVoid(c.cmdCopyBufferToImage, []argKind{kindU64, kindU64, kindU64, kindU32, kindU32, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&cb)), word(unsafe.Pointer(&src)), word(unsafe.Pointer(&dst)), word(unsafe.Pointer(&dstLayout)), word(unsafe.Pointer(&count)), ptrArg(p)})
}

func (c *Commands) CmdBeginRenderPass(cb CommandBuffer, info *RenderPassBeginInfo, contents uint32) {
	callVoid(c.cmdBeginRenderPass, []argKind{kindU64, kindPtr, kindU32},
		[]unsafe.Pointer{word(unsafe.Pointer(&cb)), ptrArg(unsafe.Pointer(info)), word(unsafe.Pointer(&contents))})
}

func (c *Commands) CmdEndRenderPass(cb CommandBuffer) {
	callVoid(c.cmdEndRenderPass, []argKind{kindU64}, []unsafe.Pointer{word(unsafe.Pointer(&cb))})
}

func (c *Commands) CmdBindPipeline(cb CommandBuffer, bindPoint uint32, pipeline Pipeline) {
	callVoid(c.cmdBindPipeline, []argKind{kindU64, kindU32, kindU64},
		[]unsafe.Pointer{word(unsafe.Pointer(&cb)), word(unsafe.Pointer(&bindPoint)), word(unsafe.Pointer(&pipeline))})
}

func (c *Commands) CmdBindDescriptorSets(cb CommandBuffer, bindPoint uint32, layout PipelineLayout, firstSet uint32,
	sets []DescriptorSet, dynamicOffsets []uint32) {
	setCount := uint32(len(sets))
	var setPtr unsafe.Pointer
	if setCount > 0 {
		setPtr = unsafe.Pointer(&sets[0])
	}
	offCount := uint32(len(dynamicOffsets))
	var offPtr unsafe.Pointer
	if offCount > 0 {
		offPtr = unsafe.Pointer(&dynamicOffsets[0])
	}
	callVoid(c.cmdBindDescriptorSets,
		[]argKind{kindU64, kindU32, kindU64, kindU32, kindU32, kindPtr, kindU32, kindPtr},
		[]unsafe.Pointer{
			word(unsafe.Pointer(&cb)), word(unsafe.Pointer(&bindPoint)), word(unsafe.Pointer(&layout)), word(unsafe.Pointer(&firstSet)),
			word(unsafe.Pointer(&setCount)), ptrArg(setPtr), word(unsafe.Pointer(&offCount)), ptrArg(offPtr),
		})
}

func (c *Commands) CmdBindVertexBuffers(cb CommandBuffer, firstBinding uint32, buffers []Buffer, offsets []DeviceSize) {
	count := uint32(len(buffers))
	var bufPtr, offPtr unsafe.Pointer
	if count > 0 {
		bufPtr = unsafe.Pointer(&buffers[0])
		offPtr = unsafe.Pointer(&offsets[0])
	}
	callVoid(c.cmdBindVertexBuffers, []argKind{kindU64, kindU32, kindU32, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&cb)), word(unsafe.Pointer(&firstBinding)), word(unsafe.Pointer(&count)), ptrArg(bufPtr), ptrArg(offPtr)})
}

func (c *Commands) CmdBindIndexBuffer(cb CommandBuffer, buffer Buffer, offset DeviceSize, indexType uint32) {
	callVoid(c.cmdBindIndexBuffer, []argKind{kindU64, kindU64, kindU64, kindU32},
		[]unsafe.Pointer{word(unsafe.Pointer(&cb)), word(unsafe.Pointer(&buffer)), word(unsafe.Pointer(&offset)), word(unsafe.Pointer(&indexType))})
}

func (c *Commands) CmdDraw(cb CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	callVoid(c.cmdDraw, []argKind{kindU64, kindU32, kindU32, kindU32, kindU32},
		[]unsafe.Pointer{word(unsafe.Pointer(&cb)), word(unsafe.Pointer(&vertexCount)), word(unsafe.Pointer(&instanceCount)), word(unsafe.Pointer(&firstVertex)), word(unsafe.Pointer(&firstInstance))})
}

func (c *Commands) CmdDrawIndexed(cb CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	callVoid(c.cmdDrawIndexed, []argKind{kindU64, kindU32, kindU32, kindU32, kindI32, kindU32},
		[]unsafe.Pointer{word(unsafe.Pointer(&cb)), word(unsafe.Pointer(&indexCount)), word(unsafe.Pointer(&instanceCount)), word(unsafe.Pointer(&firstIndex)), word(unsafe.Pointer(&vertexOffset)), word(unsafe.Pointer(&firstInstance))})
}

func (c *Commands) CmdDispatch(cb CommandBuffer, x, y, z uint32) {
	callVoid(c.cmdDispatch, []argKind{kindU64, kindU32, kindU32, kindU32},
		[]unsafe.Pointer{word(unsafe.Pointer(&cb)), word(unsafe.Pointer(&x)), word(unsafe.Pointer(&y)), word(unsafe.Pointer(&z))})
}

func (c *Commands) CmdPushConstants(cb CommandBuffer, layout PipelineLayout, stageFlags ShaderStageFlags, offset, size uint32, values unsafe.Pointer) {
	callVoid(c.cmdPushConstants, []argKind{kindU64, kindU64, kindU32, kindU32, kindU32, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&cb)), word(unsafe.Pointer(&layout)), word(unsafe.Pointer(&stageFlags)), word(unsafe.Pointer(&offset)), word(unsafe.Pointer(&size)), ptrArg(values)})
}

// --- memory ---

func (c *Commands) AllocateMemory(device Device, info *MemoryAllocateInfo, alloc *AllocationCallbacks) (DeviceMemory, Result) {
	var mem DeviceMemory
	r := callResult(c.allocateMemory, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&mem))})
	return mem, r
}

func (c *Commands) FreeMemory(device Device, mem DeviceMemory, alloc *AllocationCallbacks) {
	callVoid(c.freeMemory, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&mem)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) MapMemory(device Device, mem DeviceMemory, offset, size DeviceSize, flags uint32) (unsafe.Pointer, Result) {
	var data unsafe.Pointer
	r := callResult(c.mapMemory, []argKind{kindU64, kindU64, kindU64, kindU64, kindU32, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&mem)), word(unsafe.Pointer(&offset)), word(unsafe.Pointer(&size)), word(unsafe.Pointer(&flags)), ptrArg(unsafe.Pointer(&data))})
	return data, r
}

func (c *Commands) UnmapMemory(device Device, mem DeviceMemory) {
	callVoid(c.unmapMemory, []argKind{kindU64, kindU64},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&mem))})
}

func (c *Commands) BindBufferMemory(device Device, buffer Buffer, mem DeviceMemory, offset DeviceSize) Result {
	return callResult(c.bindBufferMemory, []argKind{kindU64, kindU64, kindU64, kindU64},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&buffer)), word(unsafe.Pointer(&mem)), word(unsafe.Pointer(&offset))})
}

func (c *Commands) BindImageMemory(device Device, image Image, mem DeviceMemory, offset DeviceSize) Result {
	return callResult(c.bindImageMemory, []argKind{kindU64, kindU64, kindU64, kindU64},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&image)), word(unsafe.Pointer(&mem)), word(unsafe.Pointer(&offset))})
}

func (c *Commands) GetBufferMemoryRequirements(device Device, buffer Buffer) MemoryRequirements {
	var req MemoryRequirements
	callVoid(c.getBufferMemoryRequirements, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&buffer)), ptrArg(unsafe.Pointer(&req))})
	return req
}

func (c *Commands) GetImageMemoryRequirements(device Device, image Image) MemoryRequirements {
	var req MemoryRequirements
	callVoid(c.getImageMemoryRequirements, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&image)), ptrArg(unsafe.Pointer(&req))})
	return req
}

// --- resources ---

func (c *Commands) CreateBuffer(device Device, info *BufferCreateInfo, alloc *AllocationCallbacks) (Buffer, Result) {
	var buf Buffer
	r := callResult(c.createBuffer, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&buf))})
	return buf, r
}

func (c *Commands) DestroyBuffer(device Device, buf Buffer, alloc *AllocationCallbacks) {
	callVoid(c.destroyBuffer, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&buf)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) CreateImage(device Device, info *ImageCreateInfo, alloc *AllocationCallbacks) (Image, Result) {
	var img Image
	r := callResult(c.createImage, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&img))})
	return img, r
}

func (c *Commands) DestroyImage(device Device, img Image, alloc *AllocationCallbacks) {
	callVoid(c.destroyImage, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&img)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) CreateImageView(device Device, info *ImageViewCreateInfo, alloc *AllocationCallbacks) (ImageView, Result) {
	var view ImageView
	r := callResult(c.createImageView, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&view))})
	return view, r
}

func (c *Commands) DestroyImageView(device Device, view ImageView, alloc *AllocationCallbacks) {
	callVoid(c.destroyImageView, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&view)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) CreateSampler(device Device, info *SamplerCreateInfo, alloc *AllocationCallbacks) (Sampler, Result) {
	var s Sampler
	r := callResult(c.createSampler, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&s))})
	return s, r
}

func (c *Commands) DestroySampler(device Device, s Sampler, alloc *AllocationCallbacks) {
	callVoid(c.destroySampler, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&s)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) CreateShaderModule(device Device, info *ShaderModuleCreateInfo, alloc *AllocationCallbacks) (ShaderModule, Result) {
	var m ShaderModule
	r := callResult(c.createShaderModule, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&m))})
	return m, r
}

func (c *Commands) DestroyShaderModule(device Device, m ShaderModule, alloc *AllocationCallbacks) {
	callVoid(c.destroyShaderModule, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&m)), ptrArg(unsafe.Pointer(alloc))})
}

// --- render pass / framebuffer ---

func (c *Commands) CreateRenderPass(device Device, info *RenderPassCreateInfo, alloc *AllocationCallbacks) (RenderPass, Result) {
	var rp RenderPass
	r := callResult(c.createRenderPass, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&rp))})
	return rp, r
}

func (c *Commands) DestroyRenderPass(device Device, rp RenderPass, alloc *AllocationCallbacks) {
	callVoid(c.destroyRenderPass, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&rp)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) CreateFramebuffer(device Device, info *FramebufferCreateInfo, alloc *AllocationCallbacks) (Framebuffer, Result) {
	var fb Framebuffer
	r := callResult(c.createFramebuffer, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&fb))})
	return fb, r
}

func (c *Commands) DestroyFramebuffer(device Device, fb Framebuffer, alloc *AllocationCallbacks) {
	callVoid(c.destroyFramebuffer, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&fb)), ptrArg(unsafe.Pointer(alloc))})
}

// --- descriptors ---

func (c *Commands) CreateDescriptorSetLayout(device Device, info *DescriptorSetLayoutCreateInfo, alloc *AllocationCallbacks) (DescriptorSetLayout, Result) {
	var layout DescriptorSetLayout
	r := callResult(c.createDescriptorSetLayout, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&layout))})
	return layout, r
}

func (c *Commands) DestroyDescriptorSetLayout(device Device, layout DescriptorSetLayout, alloc *AllocationCallbacks) {
	callVoid(c.destroyDescriptorSetLayout, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&layout)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) CreateDescriptorPool(device Device, info *DescriptorPoolCreateInfo, alloc *AllocationCallbacks) (DescriptorPool, Result) {
	var pool DescriptorPool
	r := callResult(c.createDescriptorPool, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&pool))})
	return pool, r
}

func (c *Commands) DestroyDescriptorPool(device Device, pool DescriptorPool, alloc *AllocationCallbacks) {
	callVoid(c.destroyDescriptorPool, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&pool)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) ResetDescriptorPool(device Device, pool DescriptorPool) Result {
	var flags uint32
	return callResult(c.resetDescriptorPool, []argKind{kindU64, kindU64, kindU32},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&pool)), word(unsafe.Pointer(&flags))})
}

func (c *Commands) AllocateDescriptorSets(device Device, info *DescriptorSetAllocateInfo) ([]DescriptorSet, Result) {
	sets := make([]DescriptorSet, info.DescriptorSetCount)
	r := callResult(c.allocateDescriptorSets, []argKind{kindU64, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(&sets[0]))})
	return sets, r
}

func (c *Commands) UpdateDescriptorSets(device Device, writes []WriteDescriptorSet) {
	count := uint32(len(writes))
	var p unsafe.Pointer
	if count > 0 {
		p = unsafe.Pointer(&writes[0])
	}
	copyCount := uint32(0)
	callVoid(c.updateDescriptorSets, []argKind{kindU64, kindU32, kindPtr, kindU32, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&count)), ptrArg(p), word(unsafe.Pointer(&copyCount)), ptrArg(nil)})
}

// --- pipelines ---

func (c *Commands) CreatePipelineLayout(device Device, info *PipelineLayoutCreateInfo, alloc *AllocationCallbacks) (PipelineLayout, Result) {
	var layout PipelineLayout
	r := callResult(c.createPipelineLayout, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&layout))})
	return layout, r
}

func (c *Commands) DestroyPipelineLayout(device Device, layout PipelineLayout, alloc *AllocationCallbacks) {
	callVoid(c.destroyPipelineLayout, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&layout)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) CreateGraphicsPipelines(device Device, cache PipelineCache, infos unsafe.Pointer, count uint32, alloc *AllocationCallbacks) ([]Pipeline, Result) {
	pipelines := make([]Pipeline, count)
	r := callResult(c.createGraphicsPipelines, []argKind{kindU64, kindU64, kindU32, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&cache)), word(unsafe.Pointer(&count)), ptrArg(infos), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&pipelines[0]))})
	return pipelines, r
}

func (c *Commands) CreateComputePipelines(device Device, cache PipelineCache, infos unsafe.Pointer, count uint32, alloc *AllocationCallbacks) ([]Pipeline, Result) {
	pipelines := make([]Pipeline, count)
	r := callResult(c.createComputePipelines, []argKind{kindU64, kindU64, kindU32, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&cache)), word(unsafe.Pointer(&count)), ptrArg(infos), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&pipelines[0]))})
	return pipelines, r
}

func (c *Commands) DestroyPipeline(device Device, p Pipeline, alloc *AllocationCallbacks) {
	callVoid(c.destroyPipeline, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&p)), ptrArg(unsafe.Pointer(alloc))})
}

// --- WSI ---

func (c *Commands) GetPhysicalDeviceSurfaceSupportKHR(pd PhysicalDevice, queueFamily uint32, surface SurfaceKHR) (bool, Result) {
	var supported Bool32
	r := callResult(c.getPhysicalDeviceSurfaceSupportKHR, []argKind{kindU64, kindU32, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), word(unsafe.Pointer(&queueFamily)), word(unsafe.Pointer(&surface)), ptrArg(unsafe.Pointer(&supported))})
	return supported == True, r
}

func (c *Commands) GetPhysicalDeviceSurfaceCapabilitiesKHR(pd PhysicalDevice, surface SurfaceKHR) (SurfaceCapabilitiesKHR, Result) {
	var caps SurfaceCapabilitiesKHR
	r := callResult(c.getPhysicalDeviceSurfaceCapabilitiesKHR, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), word(unsafe.Pointer(&surface)), ptrArg(unsafe.Pointer(&caps))})
	return caps, r
}

func (c *Commands) GetPhysicalDeviceSurfaceFormatsKHR(pd PhysicalDevice, surface SurfaceKHR) ([]SurfaceFormatKHR, Result) {
	var count uint32
	r := callResult(c.getPhysicalDeviceSurfaceFormatsKHR, []argKind{kindU64, kindU64, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), word(unsafe.Pointer(&surface)), ptrArg(unsafe.Pointer(&count)), ptrArg(nil)})
	if r != Success || count == 0 {
		return nil, r
	}
	formats := make([]SurfaceFormatKHR, count)
	r = callResult(c.getPhysicalDeviceSurfaceFormatsKHR, []argKind{kindU64, kindU64, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), word(unsafe.Pointer(&surface)), ptrArg(unsafe.Pointer(&count)), ptrArg(unsafe.Pointer(&formats[0]))})
	return formats, r
}

func (c *Commands) GetPhysicalDeviceSurfacePresentModesKHR(pd PhysicalDevice, surface SurfaceKHR) ([]uint32, Result) {
	var count uint32
	r := callResult(c.getPhysicalDeviceSurfacePresentModesKHR, []argKind{kindU64, kindU64, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), word(unsafe.Pointer(&surface)), ptrArg(unsafe.Pointer(&count)), ptrArg(nil)})
	if r != Success || count == 0 {
		return nil, r
	}
	modes := make([]uint32, count)
	r = callResult(c.getPhysicalDeviceSurfacePresentModesKHR, []argKind{kindU64, kindU64, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&pd)), word(unsafe.Pointer(&surface)), ptrArg(unsafe.Pointer(&count)), ptrArg(unsafe.Pointer(&modes[0]))})
	return modes, r
}

func (c *Commands) DestroySurfaceKHR(instance Instance, surface SurfaceKHR, alloc *AllocationCallbacks) {
	callVoid(c.destroySurfaceKHR, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&instance)), word(unsafe.Pointer(&surface)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) CreateXlibSurfaceKHR(instance Instance, info *XlibSurfaceCreateInfoKHR, alloc *AllocationCallbacks) (SurfaceKHR, Result) {
	var s SurfaceKHR
	r := callResult(c.createXlibSurfaceKHR, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&instance)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&s))})
	return s, r
}

func (c *Commands) CreateWaylandSurfaceKHR(instance Instance, info *WaylandSurfaceCreateInfoKHR, alloc *AllocationCallbacks) (SurfaceKHR, Result) {
	var s SurfaceKHR
	r := callResult(c.createWaylandSurfaceKHR, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&instance)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&s))})
	return s, r
}

func (c *Commands) CreateWin32SurfaceKHR(instance Instance, info *Win32SurfaceCreateInfoKHR, alloc *AllocationCallbacks) (SurfaceKHR, Result) {
	var s SurfaceKHR
	r := callResult(c.createWin32SurfaceKHR, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&instance)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&s))})
	return s, r
}

func (c *Commands) CreateSwapchainKHR(device Device, info *SwapchainCreateInfoKHR, alloc *AllocationCallbacks) (SwapchainKHR, Result) {
	var sc SwapchainKHR
	r := callResult(c.createSwapchainKHR, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&sc))})
	return sc, r
}

func (c *Commands) DestroySwapchainKHR(device Device, sc SwapchainKHR, alloc *AllocationCallbacks) {
	callVoid(c.destroySwapchainKHR, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&sc)), ptrArg(unsafe.Pointer(alloc))})
}

func (c *Commands) GetSwapchainImagesKHR(device Device, sc SwapchainKHR) ([]Image, Result) {
	var count uint32
	r := callResult(c.getSwapchainImagesKHR, []argKind{kindU64, kindU64, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&sc)), ptrArg(unsafe.Pointer(&count)), ptrArg(nil)})
	if r != Success || count == 0 {
		return nil, r
	}
	images := make([]Image, count)
	r = callResult(c.getSwapchainImagesKHR, []argKind{kindU64, kindU64, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&sc)), ptrArg(unsafe.Pointer(&count)), ptrArg(unsafe.Pointer(&images[0]))})
	return images, r
}

func (c *Commands) AcquireNextImageKHR(device Device, sc SwapchainKHR, timeout uint64, semaphore Semaphore, fence Fence) (uint32, Result) {
	var index uint32
	r := callResult(c.acquireNextImageKHR, []argKind{kindU64, kindU64, kindU64, kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), word(unsafe.Pointer(&sc)), word(unsafe.Pointer(&timeout)), word(unsafe.Pointer(&semaphore)), word(unsafe.Pointer(&fence)), ptrArg(unsafe.Pointer(&index))})
	return index, r
}

func (c *Commands) AcquireNextImage2KHR(device Device, info *AcquireNextImageInfoKHR) (uint32, Result) {
	var index uint32
	r := callResult(c.acquireNextImage2KHR, []argKind{kindU64, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&device)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(&index))})
	return index, r
}

// --- debug messenger ---

func (c *Commands) CreateDebugUtilsMessengerEXT(instance Instance, info *DebugUtilsMessengerCreateInfoEXT, alloc *AllocationCallbacks) (DebugUtilsMessengerEXT, Result) {
	var m DebugUtilsMessengerEXT
	r := callResult(c.createDebugUtilsMessengerEXT, []argKind{kindU64, kindPtr, kindPtr, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&instance)), ptrArg(unsafe.Pointer(info)), ptrArg(unsafe.Pointer(alloc)), ptrArg(unsafe.Pointer(&m))})
	return m, r
}

func (c *Commands) DestroyDebugUtilsMessengerEXT(instance Instance, m DebugUtilsMessengerEXT, alloc *AllocationCallbacks) {
	callVoid(c.destroyDebugUtilsMessengerEXT, []argKind{kindU64, kindU64, kindPtr},
		[]unsafe.Pointer{word(unsafe.Pointer(&instance)), word(unsafe.Pointer(&m)), ptrArg(unsafe.Pointer(alloc))})
}
