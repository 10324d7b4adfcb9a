package object

import (
	"fmt"

	"github.com/kestrelgpu/vkrt/memory"
	"github.com/kestrelgpu/vkrt/vk"
)

// Image wraps a VkImage plus its backing memory sub-allocation and
// pending-barrier slot. isExternal marks images this wrapper does not own
// the memory for (swapchain images), whose Destroy is a no-op and whose
// BindMemory panics.
type Image struct {
	pendingSlot

	handle      vk.Image
	format      vk.Format
	imageType   uint32
	extent      vk.Extent3D
	mipLevels   uint32
	arrayLayers uint32
	aspectMask  vk.ImageAspectFlags

	bound      bool
	isExternal bool
	mem        memory.MemBlock
}

// aspectMaskForFormat derives an image's aspect mask from its format, per
// spec.md §4.2: Depth, DepthStencil, Stencil, else Color.
func aspectMaskForFormat(format vk.Format) vk.ImageAspectFlags {
	switch {
	case format.HasDepth() && format.HasStencil():
		return vk.ImageAspectDepthBit | vk.ImageAspectStencilBit
	case format.HasDepth():
		return vk.ImageAspectDepthBit
	case format.HasStencil():
		return vk.ImageAspectStencilBit
	default:
		return vk.ImageAspectColorBit
	}
}

// NewImage creates a VkImage per info; the caller binds memory separately
// via BindMemory.
func NewImage(cmds *vk.Commands, device vk.Device, info *vk.ImageCreateInfo) (*Image, error) {
	handle, r := cmds.CreateImage(device, info, nil)
	if r != vk.Success {
		return nil, fmt.Errorf("object: vkCreateImage failed: %d", r)
	}
	format := vk.Format(info.Format)
	return &Image{
		handle:      handle,
		format:      format,
		imageType:   info.ImageType,
		extent:      info.Extent,
		mipLevels:   info.MipLevels,
		arrayLayers: info.ArrayLayers,
		aspectMask:  aspectMaskForFormat(format),
	}, nil
}

// WrapExternal wraps a VkImage this module does not own the memory for
// (a swapchain image), with no pending-barrier ownership implied beyond
// the normal slot.
func WrapExternal(handle vk.Image, format vk.Format, extent vk.Extent3D) *Image {
	return &Image{
		handle:      handle,
		format:      format,
		imageType:   vk.ImageType2D,
		extent:      extent,
		mipLevels:   1,
		arrayLayers: 1,
		aspectMask:  aspectMaskForFormat(format),
		isExternal:  true,
	}
}

// Handle returns the underlying VkImage.
func (img *Image) Handle() vk.Image { return img.handle }

// Format returns the image's VkFormat.
func (img *Image) Format() vk.Format { return img.format }

// AspectMask returns the aspect mask derived at creation time.
func (img *Image) AspectMask() vk.ImageAspectFlags { return img.aspectMask }

// ImageType returns the VkImageType this image was created with.
func (img *Image) ImageType() uint32 { return img.imageType }

// Extent returns the image's dimensions.
func (img *Image) Extent() vk.Extent3D { return img.extent }

// MipLevels returns the image's mip level count.
func (img *Image) MipLevels() uint32 { return img.mipLevels }

// ArrayLayers returns the image's array layer count.
func (img *Image) ArrayLayers() uint32 { return img.arrayLayers }

// IsExternal reports whether this wrapper's memory is owned elsewhere
// (a swapchain image).
func (img *Image) IsExternal() bool { return img.isExternal }

// MemoryRequirements returns this image's VkMemoryRequirements.
func (img *Image) MemoryRequirements(cmds *vk.Commands, device vk.Device) vk.MemoryRequirements {
	return cmds.GetImageMemoryRequirements(device, img.handle)
}

// BindMemory performs vkBindImageMemory exactly once, taking ownership of
// block. Panics on a second call, and on an external (swapchain) image.
func (img *Image) BindMemory(cmds *vk.Commands, device vk.Device, block memory.MemBlock) error {
	if img.isExternal {
		panic("object: cannot bind memory to an external image")
	}
	if img.bound {
		panic("object: image memory already bound")
	}
	r := cmds.BindImageMemory(device, img.handle, block.Node.Memory, block.Offset)
	if r != vk.Success {
		return fmt.Errorf("object: vkBindImageMemory failed: %d", r)
	}
	img.mem = block
	img.bound = true
	return nil
}

// Memory returns the bound backing allocation.
func (img *Image) Memory() memory.MemBlock { return img.mem }

// Bound reports whether BindMemory has completed, letting a caller treat
// a repeated bind request as a no-op instead of hitting the panic
// (spec.md §8 testable property 8: "a redundant bindMemory on an object
// is a no-op").
func (img *Image) Bound() bool { return img.bound }

// Destroy releases the VkImage, unless it is external. The caller is
// responsible for returning the backing memory block to its pool.
func (img *Image) Destroy(cmds *vk.Commands, device vk.Device) {
	if img.isExternal {
		return
	}
	if img.handle != 0 {
		cmds.DestroyImage(device, img.handle, nil)
		img.handle = 0
	}
}
