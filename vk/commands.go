// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"unsafe"
)

// Commands holds resolved PFN_vk* function pointers for one loader
// instance. Fields are populated in three stages (LoadGlobal,
// LoadInstance, LoadDevice) matching the points in a Vulkan program's
// lifetime at which each tier of function becomes callable.
type Commands struct {
	// global, pre-instance
	createInstance                        unsafe.Pointer
	enumerateInstanceVersion              unsafe.Pointer
	enumerateInstanceLayerProperties      unsafe.Pointer
	enumerateInstanceExtensionProperties  unsafe.Pointer

	// instance-level
	destroyInstance                         unsafe.Pointer
	enumeratePhysicalDevices                unsafe.Pointer
	getPhysicalDeviceProperties              unsafe.Pointer
	getPhysicalDeviceQueueFamilyProperties   unsafe.Pointer
	getPhysicalDeviceMemoryProperties         unsafe.Pointer
	getPhysicalDeviceFeatures                 unsafe.Pointer
	getPhysicalDeviceFormatProperties          unsafe.Pointer
	createDevice                              unsafe.Pointer
	enumerateDeviceExtensionProperties        unsafe.Pointer
	destroySurfaceKHR                         unsafe.Pointer
	getPhysicalDeviceSurfaceSupportKHR         unsafe.Pointer
	getPhysicalDeviceSurfaceCapabilitiesKHR    unsafe.Pointer
	getPhysicalDeviceSurfaceFormatsKHR         unsafe.Pointer
	getPhysicalDeviceSurfacePresentModesKHR    unsafe.Pointer
	createXlibSurfaceKHR                      unsafe.Pointer
	createWaylandSurfaceKHR                   unsafe.Pointer
	createWin32SurfaceKHR                     unsafe.Pointer
	createDebugUtilsMessengerEXT              unsafe.Pointer
	destroyDebugUtilsMessengerEXT             unsafe.Pointer

	// device-level
	destroyDevice                     unsafe.Pointer
	getDeviceQueue                    unsafe.Pointer
	deviceWaitIdle                    unsafe.Pointer
	queueSubmit                       unsafe.Pointer
	queueWaitIdle                     unsafe.Pointer
	queuePresentKHR                   unsafe.Pointer

	createFence       unsafe.Pointer
	destroyFence      unsafe.Pointer
	resetFences       unsafe.Pointer
	waitForFences     unsafe.Pointer
	getFenceStatus    unsafe.Pointer

	createSemaphore            unsafe.Pointer
	destroySemaphore           unsafe.Pointer
	getSemaphoreCounterValue   unsafe.Pointer
	waitSemaphores             unsafe.Pointer
	signalSemaphore            unsafe.Pointer

	createCommandPool        unsafe.Pointer
	destroyCommandPool       unsafe.Pointer
	resetCommandPool         unsafe.Pointer
	allocateCommandBuffers   unsafe.Pointer
	freeCommandBuffers       unsafe.Pointer
	beginCommandBuffer       unsafe.Pointer
	endCommandBuffer         unsafe.Pointer
	resetCommandBuffer       unsafe.Pointer

	cmdPipelineBarrier      unsafe.Pointer
	cmdCopyBuffer           unsafe.Pointer
	cmdCopyBufferToImage    unsafe.Pointer
	cmdBeginRenderPass      unsafe.Pointer
	cmdEndRenderPass        unsafe.Pointer
	cmdBindPipeline         unsafe.Pointer
	cmdBindDescriptorSets   unsafe.Pointer
	cmdBindVertexBuffers    unsafe.Pointer
	cmdBindIndexBuffer      unsafe.Pointer
	cmdDraw                 unsafe.Pointer
	cmdDrawIndexed          unsafe.Pointer
	cmdDispatch             unsafe.Pointer
	cmdPushConstants        unsafe.Pointer

	allocateMemory               unsafe.Pointer
	freeMemory                   unsafe.Pointer
	mapMemory                    unsafe.Pointer
	unmapMemory                  unsafe.Pointer
	bindBufferMemory             unsafe.Pointer
	bindImageMemory              unsafe.Pointer
	getBufferMemoryRequirements  unsafe.Pointer
	getImageMemoryRequirements   unsafe.Pointer

	createBuffer   unsafe.Pointer
	destroyBuffer  unsafe.Pointer
	createImage    unsafe.Pointer
	destroyImage   unsafe.Pointer
	createImageView  unsafe.Pointer
	destroyImageView unsafe.Pointer
	createSampler    unsafe.Pointer
	destroySampler   unsafe.Pointer

	createShaderModule   unsafe.Pointer
	destroyShaderModule  unsafe.Pointer

	createRenderPass     unsafe.Pointer
	destroyRenderPass    unsafe.Pointer
	createFramebuffer    unsafe.Pointer
	destroyFramebuffer   unsafe.Pointer

	createDescriptorSetLayout   unsafe.Pointer
	destroyDescriptorSetLayout  unsafe.Pointer
	createDescriptorPool        unsafe.Pointer
	destroyDescriptorPool       unsafe.Pointer
	resetDescriptorPool         unsafe.Pointer
	allocateDescriptorSets      unsafe.Pointer
	updateDescriptorSets        unsafe.Pointer

	createPipelineLayout     unsafe.Pointer
	destroyPipelineLayout    unsafe.Pointer
	createGraphicsPipelines  unsafe.Pointer
	createComputePipelines   unsafe.Pointer
	destroyPipeline          unsafe.Pointer

	createSwapchainKHR     unsafe.Pointer
	destroySwapchainKHR    unsafe.Pointer
	getSwapchainImagesKHR  unsafe.Pointer
	acquireNextImageKHR    unsafe.Pointer
	acquireNextImage2KHR   unsafe.Pointer
}

// NewCommands returns a Commands with no function pointers resolved yet.
func NewCommands() *Commands {
	return &Commands{}
}

// LoadGlobal resolves the functions callable before any VkInstance exists.
func (c *Commands) LoadGlobal() error {
	c.createInstance = GetInstanceProcAddr(0, "vkCreateInstance")
	if c.createInstance == nil {
		return fmt.Errorf("vk: vkCreateInstance not found")
	}
	c.enumerateInstanceVersion = GetInstanceProcAddr(0, "vkEnumerateInstanceVersion")
	c.enumerateInstanceLayerProperties = GetInstanceProcAddr(0, "vkEnumerateInstanceLayerProperties")
	c.enumerateInstanceExtensionProperties = GetInstanceProcAddr(0, "vkEnumerateInstanceExtensionProperties")
	return nil
}

// LoadInstance resolves instance-level functions, including every WSI
// surface entry point this module might need across platforms. Missing
// platform-specific surface functions (e.g. vkCreateWin32SurfaceKHR on
// Linux) simply stay nil; callers never reach them on the wrong platform.
func (c *Commands) LoadInstance(instance Instance) error {
	if instance == 0 {
		return fmt.Errorf("vk: LoadInstance called with null instance")
	}

	c.destroyInstance = GetInstanceProcAddr(instance, "vkDestroyInstance")
	c.enumeratePhysicalDevices = GetInstanceProcAddr(instance, "vkEnumeratePhysicalDevices")
	c.getPhysicalDeviceProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceProperties")
	c.getPhysicalDeviceQueueFamilyProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceQueueFamilyProperties")
	c.getPhysicalDeviceMemoryProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceMemoryProperties")
	c.getPhysicalDeviceFeatures = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceFeatures")
	c.getPhysicalDeviceFormatProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceFormatProperties")
	c.createDevice = GetInstanceProcAddr(instance, "vkCreateDevice")
	c.enumerateDeviceExtensionProperties = GetInstanceProcAddr(instance, "vkEnumerateDeviceExtensionProperties")

	c.destroySurfaceKHR = GetInstanceProcAddr(instance, "vkDestroySurfaceKHR")
	c.getPhysicalDeviceSurfaceSupportKHR = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceSurfaceSupportKHR")
	c.getPhysicalDeviceSurfaceCapabilitiesKHR = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceSurfaceCapabilitiesKHR")
	c.getPhysicalDeviceSurfaceFormatsKHR = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceSurfaceFormatsKHR")
	c.getPhysicalDeviceSurfacePresentModesKHR = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceSurfacePresentModesKHR")
	c.createXlibSurfaceKHR = GetInstanceProcAddr(instance, "vkCreateXlibSurfaceKHR")
	c.createWaylandSurfaceKHR = GetInstanceProcAddr(instance, "vkCreateWaylandSurfaceKHR")
	c.createWin32SurfaceKHR = GetInstanceProcAddr(instance, "vkCreateWin32SurfaceKHR")

	c.createDebugUtilsMessengerEXT = GetInstanceProcAddr(instance, "vkCreateDebugUtilsMessengerEXT")
	c.destroyDebugUtilsMessengerEXT = GetInstanceProcAddr(instance, "vkDestroyDebugUtilsMessengerEXT")

	// Some drivers (Intel Iris Xe) won't resolve vkGetDeviceProcAddr from a
	// null instance; prime it now so LoadDevice always succeeds.
	SetDeviceProcAddr(instance)

	if c.destroyInstance == nil || c.enumeratePhysicalDevices == nil || c.createDevice == nil {
		return fmt.Errorf("vk: failed to load critical instance functions")
	}
	return nil
}

// LoadDevice resolves device-level functions. Must run after vkCreateDevice
// succeeds.
func (c *Commands) LoadDevice(device Device) error {
	if device == 0 {
		return fmt.Errorf("vk: LoadDevice called with null device")
	}

	get := func(name string) unsafe.Pointer { return GetDeviceProcAddr(device, name) }

	c.destroyDevice = get("vkDestroyDevice")
	c.getDeviceQueue = get("vkGetDeviceQueue")
	c.deviceWaitIdle = get("vkDeviceWaitIdle")
	c.queueSubmit = get("vkQueueSubmit")
	c.queueWaitIdle = get("vkQueueWaitIdle")
	c.queuePresentKHR = get("vkQueuePresentKHR")

	c.createFence = get("vkCreateFence")
	c.destroyFence = get("vkDestroyFence")
	c.resetFences = get("vkResetFences")
	c.waitForFences = get("vkWaitForFences")
	c.getFenceStatus = get("vkGetFenceStatus")

	c.createSemaphore = get("vkCreateSemaphore")
	c.destroySemaphore = get("vkDestroySemaphore")
	c.getSemaphoreCounterValue = get("vkGetSemaphoreCounterValue")
	c.waitSemaphores = get("vkWaitSemaphores")
	c.signalSemaphore = get("vkSignalSemaphore")

	c.createCommandPool = get("vkCreateCommandPool")
	c.destroyCommandPool = get("vkDestroyCommandPool")
	c.resetCommandPool = get("vkResetCommandPool")
	c.allocateCommandBuffers = get("vkAllocateCommandBuffers")
	c.freeCommandBuffers = get("vkFreeCommandBuffers")
	c.beginCommandBuffer = get("vkBeginCommandBuffer")
	c.endCommandBuffer = get("vkEndCommandBuffer")
	c.resetCommandBuffer = get("vkResetCommandBuffer")

	c.cmdPipelineBarrier = get("vkCmdPipelineBarrier")
	c.cmdCopyBuffer = get("vkCmdCopyBuffer")
	c.cmdCopyBufferToImage = get("vkCmdCopyBufferToImage")
	c.cmdBeginRenderPass = get("vkCmdBeginRenderPass")
	c.cmdEndRenderPass = get("vkCmdEndRenderPass")
	c.cmdBindPipeline = get("vkCmdBindPipeline")
	c.cmdBindDescriptorSets = get("vkCmdBindDescriptorSets")
	c.cmdBindVertexBuffers = get("vkCmdBindVertexBuffers")
	c.cmdBindIndexBuffer = get("vkCmdBindIndexBuffer")
	c.cmdDraw = get("vkCmdDraw")
	c.cmdDrawIndexed = get("vkCmdDrawIndexed")
	c.cmdDispatch = get("vkCmdDispatch")
	c.cmdPushConstants = get("vkCmdPushConstants")

	c.allocateMemory = get("vkAllocateMemory")
	c.freeMemory = get("vkFreeMemory")
	c.mapMemory = get("vkMapMemory")
	c.unmapMemory = get("vkUnmapMemory")
	c.bindBufferMemory = get("vkBindBufferMemory")
	c.bindImageMemory = get("vkBindImageMemory")
	c.getBufferMemoryRequirements = get("vkGetBufferMemoryRequirements")
	c.getImageMemoryRequirements = get("vkGetImageMemoryRequirements")

	c.createBuffer = get("vkCreateBuffer")
	c.destroyBuffer = get("vkDestroyBuffer")
	c.createImage = get("vkCreateImage")
	c.destroyImage = get("vkDestroyImage")
	c.createImageView = get("vkCreateImageView")
	c.destroyImageView = get("vkDestroyImageView")
	c.createSampler = get("vkCreateSampler")
	c.destroySampler = get("vkDestroySampler")

	c.createShaderModule = get("vkCreateShaderModule")
	c.destroyShaderModule = get("vkDestroyShaderModule")

	c.createRenderPass = get("vkCreateRenderPass")
	c.destroyRenderPass = get("vkDestroyRenderPass")
	c.createFramebuffer = get("vkCreateFramebuffer")
	c.destroyFramebuffer = get("vkDestroyFramebuffer")

	c.createDescriptorSetLayout = get("vkCreateDescriptorSetLayout")
	c.destroyDescriptorSetLayout = get("vkDestroyDescriptorSetLayout")
	c.createDescriptorPool = get("vkCreateDescriptorPool")
	c.destroyDescriptorPool = get("vkDestroyDescriptorPool")
	c.resetDescriptorPool = get("vkResetDescriptorPool")
	c.allocateDescriptorSets = get("vkAllocateDescriptorSets")
	c.updateDescriptorSets = get("vkUpdateDescriptorSets")

	c.createPipelineLayout = get("vkCreatePipelineLayout")
	c.destroyPipelineLayout = get("vkDestroyPipelineLayout")
	c.createGraphicsPipelines = get("vkCreateGraphicsPipelines")
	c.createComputePipelines = get("vkCreateComputePipelines")
	c.destroyPipeline = get("vkDestroyPipeline")

	c.createSwapchainKHR = get("vkCreateSwapchainKHR")
	c.destroySwapchainKHR = get("vkDestroySwapchainKHR")
	c.getSwapchainImagesKHR = get("vkGetSwapchainImagesKHR")
	c.acquireNextImageKHR = get("vkAcquireNextImageKHR")
	c.acquireNextImage2KHR = get("vkAcquireNextImage2KHR")

	if c.createBuffer == nil || c.allocateMemory == nil || c.queueSubmit == nil {
		return fmt.Errorf("vk: failed to load critical device functions")
	}
	return nil
}
