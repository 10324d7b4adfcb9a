package object

import (
	"fmt"

	"github.com/kestrelgpu/vkrt/vk"
)

// viewTypeCompatibleWithImageType reports whether viewType may be created
// against an image of imageType, per spec.md §4.2 ("view-cube requires
// image-2D").
func viewTypeCompatibleWithImageType(viewType, imageType uint32) bool {
	switch viewType {
	case vk.ImageViewType1D, vk.ImageViewType1DArray:
		return imageType == vk.ImageType1D
	case vk.ImageViewType2D, vk.ImageViewType2DArray,
		vk.ImageViewTypeCube, vk.ImageViewTypeCubeArray:
		return imageType == vk.ImageType2D
	case vk.ImageViewType3D:
		return imageType == vk.ImageType3D
	default:
		return false
	}
}

// ImageView wraps a VkImageView bound to the Image it was created from.
type ImageView struct {
	handle   vk.ImageView
	image    *Image
	viewType uint32
	format   vk.Format
}

// NewImageView creates a VkImageView over img, after checking that
// info.ViewType is compatible with img's underlying VkImageType.
func NewImageView(cmds *vk.Commands, device vk.Device, img *Image, info *vk.ImageViewCreateInfo) (*ImageView, error) {
	if !viewTypeCompatibleWithImageType(info.ViewType, img.ImageType()) {
		return nil, fmt.Errorf("object: view type %d incompatible with image type %d", info.ViewType, img.ImageType())
	}
	info.Image = img.Handle()
	handle, r := cmds.CreateImageView(device, info, nil)
	if r != vk.Success {
		return nil, fmt.Errorf("object: vkCreateImageView failed: %d", r)
	}
	return &ImageView{handle: handle, image: img, viewType: info.ViewType, format: vk.Format(info.Format)}, nil
}

// Handle returns the underlying VkImageView.
func (v *ImageView) Handle() vk.ImageView { return v.handle }

// Image returns the image this view was created from.
func (v *ImageView) Image() *Image { return v.image }

// ViewType returns the VkImageViewType this view was created with.
func (v *ImageView) ViewType() uint32 { return v.viewType }

// Format returns the view's VkFormat (may differ from the image's own
// format for reinterpreted views).
func (v *ImageView) Format() vk.Format { return v.format }

// Destroy releases the VkImageView. Does not affect the owning Image.
func (v *ImageView) Destroy(cmds *vk.Commands, device vk.Device) {
	if v.handle != 0 {
		cmds.DestroyImageView(device, v.handle, nil)
		v.handle = 0
	}
}

// Sampler wraps a VkSampler.
type Sampler struct {
	handle vk.Sampler
}

// NewSampler creates a VkSampler per info.
func NewSampler(cmds *vk.Commands, device vk.Device, info *vk.SamplerCreateInfo) (*Sampler, error) {
	handle, r := cmds.CreateSampler(device, info, nil)
	if r != vk.Success {
		return nil, fmt.Errorf("object: vkCreateSampler failed: %d", r)
	}
	return &Sampler{handle: handle}, nil
}

// Handle returns the underlying VkSampler.
func (s *Sampler) Handle() vk.Sampler { return s.handle }

// Destroy releases the VkSampler.
func (s *Sampler) Destroy(cmds *vk.Commands, device vk.Device) {
	if s.handle != 0 {
		cmds.DestroySampler(device, s.handle, nil)
		s.handle = 0
	}
}
