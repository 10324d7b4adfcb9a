package swapchain

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/kestrelgpu/vkrt/gpusync"
	"github.com/kestrelgpu/vkrt/object"
	"github.com/kestrelgpu/vkrt/status"
	"github.com/kestrelgpu/vkrt/vk"
)

// MaxSuboptimalFrames is the number of consecutive Suboptimal present
// results (spec.md §6 config table) after which Present reports
// Suboptimal, so the caller renegotiates present mode. Until then a
// Suboptimal result is reported as Ok. A Success result resets the count,
// and so does reporting Suboptimal.
const MaxSuboptimalFrames = 24

// AcquiredImage is what a successful Acquire returns: the image index,
// its wrapped Image, and the semaphore that will be signaled when it is
// ready (spec.md §4.8 "Acquire").
type AcquiredImage struct {
	Index     uint32
	Image     *object.Image
	Semaphore *gpusync.Semaphore
}

// SwapchainHandle is the compiled VkSwapchainKHR plus its images, a view
// cache keyed by view configuration for reuse (testable property 9), and
// the acquire/present semaphore pools. mu serializes Acquire/Present and
// every other state transition (spec.md §3.2 invariant 7, §5 "present
// calls on a given swapchain are serialized by the swapchain's internal
// mutex").
type SwapchainHandle struct {
	mu sync.Mutex

	cmds    *vk.Commands
	device  vk.Device
	surface *Surface

	handle vk.SwapchainKHR
	format vk.SurfaceFormatKHR
	extent vk.Extent2D

	images     []*object.Image
	viewCache  []map[vk.ImageViewCreateInfo]*object.ImageView

	acquireSemPool []*gpusync.Semaphore
	presentSemPool []*gpusync.Semaphore
	// presentSemForImage holds, per swapchain image index, the semaphore
	// a previous present attached to that slot (spec.md §4.8 "releases
	// per-image present-semaphores to the pool or a quarantine list").
	presentSemForImage []*gpusync.Semaphore
	// quarantinedSem holds present semaphores a recreate found still
	// InUse(): not safe to hand back out yet, but still owned and
	// destroyed once the swapchain is (reclaimQuarantine promotes them
	// to presentSemPool once their submission completes).
	quarantinedSem []*gpusync.Semaphore

	acquiredIndexes map[uint32]bool

	deprecated      bool
	suboptimalCount int

	sharingMode vk.SharingMode
}

// Handle returns the underlying VkSwapchainKHR.
func (s *SwapchainHandle) Handle() vk.SwapchainKHR { return s.handle }

// Format returns the selected surface format.
func (s *SwapchainHandle) Format() vk.SurfaceFormatKHR { return s.format }

// Extent returns the selected swapchain extent.
func (s *SwapchainHandle) Extent() vk.Extent2D { return s.extent }

// Deprecated reports whether the last Acquire observed VK_SUBOPTIMAL_KHR,
// meaning the next frame should trigger recreation.
func (s *SwapchainHandle) Deprecated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deprecated
}

// Images returns the swapchain's wrapped images, in index order.
func (s *SwapchainHandle) Images() []*object.Image { return s.images }

// Init builds a SwapchainHandle for surface against pd/device, sized to
// desiredExtent, reusing old's semaphore pools if old is non-nil
// (spec.md §4.8 "SwapchainHandle.init"). sharingMode is Concurrent when
// graphicsFamily != presentFamily, else Exclusive.
func Init(cmds *vk.Commands, device vk.Device, pd vk.PhysicalDevice, surface *Surface, desiredExtent vk.Extent2D, graphicsFamily, presentFamily uint32, old *SwapchainHandle) (*SwapchainHandle, error) {
	opts, err := surface.GetSurfaceOptions(pd)
	if err != nil {
		return nil, err
	}

	format := opts.PickFormat(vk.SurfaceFormatKHR{Format: uint32(vk.FormatB8G8R8A8Unorm)})
	presentMode := opts.PickPresentMode(vk.PresentModeFifoKHR)

	extent := opts.Capabilities.CurrentExtent
	if extent.Width == 0xFFFFFFFF {
		extent = desiredExtent
	}

	imageCount := opts.Capabilities.MinImageCount + 1
	if opts.Capabilities.MaxImageCount > 0 && imageCount > opts.Capabilities.MaxImageCount {
		imageCount = opts.Capabilities.MaxImageCount
	}

	sharingMode := vk.SharingModeExclusive
	var familyIndices []uint32
	if graphicsFamily != presentFamily {
		sharingMode = vk.SharingModeConcurrent
		familyIndices = []uint32{graphicsFamily, presentFamily}
	}

	info := vk.SwapchainCreateInfoKHR{
		SType: vk.StructureTypeSwapchainCreateInfoKHR, Surface: surface.Handle(),
		MinImageCount: imageCount, ImageFormat: format.Format, ImageColorSpace: format.ColorSpace,
		ImageExtent: extent, ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageColorAttachmentBit | vk.ImageUsageTransferDstBit,
		ImageSharingMode: sharingMode,
		PreTransform:     opts.Capabilities.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBitKHR,
		PresentMode:      presentMode,
		Clipped:          vk.True,
	}
	if len(familyIndices) > 0 {
		info.QueueFamilyIndexCount = uint32(len(familyIndices))
		info.PQueueFamilyIndices = &familyIndices[0]
	}
	if old != nil {
		info.OldSwapchain = old.handle
	}

	handle, r := cmds.CreateSwapchainKHR(device, &info, nil)
	if r != vk.Success {
		return nil, fmt.Errorf("swapchain: vkCreateSwapchainKHR failed: %d", r)
	}

	rawImages, r := cmds.GetSwapchainImagesKHR(device, handle)
	if r != vk.Success {
		cmds.DestroySwapchainKHR(device, handle, nil)
		return nil, fmt.Errorf("swapchain: vkGetSwapchainImagesKHR failed: %d", r)
	}

	images := make([]*object.Image, len(rawImages))
	views := make([]map[vk.ImageViewCreateInfo]*object.ImageView, len(rawImages))
	for i, img := range rawImages {
		images[i] = object.WrapExternal(img, vk.Format(format.Format), vk.Extent3D{Width: extent.Width, Height: extent.Height, Depth: 1})
		views[i] = map[vk.ImageViewCreateInfo]*object.ImageView{}
	}

	sc := &SwapchainHandle{
		cmds: cmds, device: device, surface: surface,
		handle: handle, format: format, extent: extent,
		images: images, viewCache: views,
		acquiredIndexes:    map[uint32]bool{},
		presentSemForImage: make([]*gpusync.Semaphore, len(images)),
		sharingMode:        sharingMode,
	}

	if old != nil {
		old.mu.Lock()
		sc.acquireSemPool = old.acquireSemPool
		sc.presentSemPool = old.presentSemPool
		sc.quarantinedSem = old.quarantinedSem
		for _, sem := range old.presentSemForImage {
			if sem == nil {
				continue
			}
			if sem.Reset() {
				sc.presentSemPool = append(sc.presentSemPool, sem)
			} else {
				sc.quarantinedSem = append(sc.quarantinedSem, sem)
			}
		}
		old.presentSemForImage = nil
		old.destroyImagesOnly()
		if old.handle != 0 {
			cmds.DestroySwapchainKHR(device, old.handle, nil)
			old.handle = 0
		}
		old.mu.Unlock()
	}

	return sc, nil
}

// ViewFor returns a cached ImageView for image index idx matching info,
// creating and caching one on first use (testable property 9: identical
// ImageViewInfo issued twice returns the same ImageView object).
func (s *SwapchainHandle) ViewFor(idx int, info vk.ImageViewCreateInfo) (*object.ImageView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.viewCache[idx][info]; ok {
		return cached, nil
	}
	view, err := object.NewImageView(s.cmds, s.device, s.images[idx], &info)
	if err != nil {
		return nil, err
	}
	s.viewCache[idx][info] = view
	return view, nil
}

func (s *SwapchainHandle) acquireSemaphore() (*gpusync.Semaphore, error) {
	s.reclaimQuarantine()
	if n := len(s.acquireSemPool); n > 0 {
		sem := s.acquireSemPool[n-1]
		s.acquireSemPool = s.acquireSemPool[:n-1]
		return sem, nil
	}
	return gpusync.New(s.cmds, s.device)
}

// reclaimQuarantine promotes quarantined present semaphores back into the
// reusable pool once their submission has completed (Reset succeeds).
func (s *SwapchainHandle) reclaimQuarantine() {
	if len(s.quarantinedSem) == 0 {
		return
	}
	still := s.quarantinedSem[:0]
	for _, sem := range s.quarantinedSem {
		if sem.Reset() {
			s.presentSemPool = append(s.presentSemPool, sem)
		} else {
			still = append(still, sem)
		}
	}
	s.quarantinedSem = still
}

// Acquire pulls a semaphore from the pool and calls vkAcquireNextImageKHR
// with timeout 0 (lockfree) or infinite, per spec.md §4.8 "Acquire". On
// OUT_OF_DATE or a surface-lost/fullscreen-lost failure it releases the
// semaphore and returns (nil, status, nil); callers recreate the
// swapchain in that case.
func (s *SwapchainHandle) Acquire(lockfree bool, fence *gpusync.Fence) (*AcquiredImage, status.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sem, err := s.acquireSemaphore()
	if err != nil {
		return nil, status.ErrorUnknown, err
	}

	timeout := ^uint64(0)
	if lockfree {
		timeout = 0
	}

	fenceHandle := vk.Fence(0)
	if fence != nil {
		fenceHandle = fence.Handle()
	}

	idx, r := s.cmds.AcquireNextImageKHR(s.device, s.handle, timeout, sem.Handle(), fenceHandle)
	st := status.FromResult(r)

	switch st {
	case status.Ok, status.Suboptimal:
		sem.MarkSignaled()
		if fence != nil {
			fence.Arm()
		}
		s.acquiredIndexes[idx] = true
		s.deprecated = st == status.Suboptimal
		return &AcquiredImage{Index: idx, Image: s.images[idx], Semaphore: sem}, st, nil
	case status.ErrorCancelled, status.ErrorSurfaceLost, status.ErrorFullscreenLost:
		s.acquireSemPool = append(s.acquireSemPool, sem)
		return nil, st, nil
	default:
		s.acquireSemPool = append(s.acquireSemPool, sem)
		return nil, st, fmt.Errorf("swapchain: vkAcquireNextImageKHR failed: %d", r)
	}
}

// Present builds a VkPresentInfoKHR for img, chaining VkPresentTimesInfoGOOGLE
// when displayTimingAvailable, and submits via vkQueuePresentKHR. Regardless
// of result, the acquired index is retired and any previously stored
// present semaphore for that slot is released back to the pool before the
// new wait semaphore is stored in its place (spec.md §4.8 "Present").
func (s *SwapchainHandle) Present(queue vk.Queue, img *AcquiredImage, waitSemaphore *gpusync.Semaphore, displayTimingAvailable bool, presentID uint32, desiredPresentTime uint64) (status.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.acquiredIndexes, img.Index)

	if prior := s.presentSemForImage[img.Index]; prior != nil {
		s.presentSemPool = append(s.presentSemPool, prior)
	}
	s.presentSemForImage[img.Index] = waitSemaphore

	waitHandle := waitSemaphore.Handle()
	swapchains := []vk.SwapchainKHR{s.handle}
	indices := []uint32{img.Index}

	info := vk.PresentInfoKHR{
		SType:              vk.StructureTypePresentInfoKHR,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    &waitHandle,
		SwapchainCount:     uint32(len(swapchains)),
		PSwapchains:        &swapchains[0],
		PImageIndices:      &indices[0],
	}

	if displayTimingAvailable {
		times := []vk.PresentTimeGOOGLE{{PresentID: presentID, DesiredPresentTime: desiredPresentTime}}
		timingInfo := vk.PresentTimesInfoGOOGLE{
			SType: vk.StructureTypePresentTimesInfoGOOGLE, SwapchainCount: uint32(len(swapchains)), PTimes: &times[0],
		}
		pNext := uintptr(unsafe.Pointer(&timingInfo))
		info.PNext = &pNext
	}

	r := s.cmds.QueuePresentKHR(queue, &info)
	st := status.FromResult(r)
	waitSemaphore.MarkWaited()

	if st == status.Ok {
		s.suboptimalCount = 0
		return st, nil
	}
	if st == status.Suboptimal {
		s.suboptimalCount++
		if s.suboptimalCount >= MaxSuboptimalFrames {
			s.suboptimalCount = 0
			return status.Suboptimal, nil
		}
		return status.Ok, nil
	}
	if st == status.ErrorCancelled {
		return st, nil
	}
	return st, fmt.Errorf("swapchain: vkQueuePresentKHR failed: %d", r)
}

func (s *SwapchainHandle) destroyImagesOnly() {
	for i, img := range s.images {
		for _, v := range s.viewCache[i] {
			v.Destroy(s.cmds, s.device)
		}
		img.Destroy(s.cmds, s.device) // no-op: swapchain images are external
	}
	s.images = nil
	s.viewCache = nil
}

// Destroy releases every view, semaphore, and the VkSwapchainKHR itself.
func (s *SwapchainHandle) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.destroyImagesOnly()
	for _, sem := range s.acquireSemPool {
		sem.Destroy(s.cmds, s.device)
	}
	for _, sem := range s.presentSemPool {
		sem.Destroy(s.cmds, s.device)
	}
	for _, sem := range s.presentSemForImage {
		if sem != nil {
			sem.Destroy(s.cmds, s.device)
		}
	}
	for _, sem := range s.quarantinedSem {
		sem.Destroy(s.cmds, s.device)
	}
	s.acquireSemPool = nil
	s.presentSemPool = nil
	s.presentSemForImage = nil
	s.quarantinedSem = nil
	if s.handle != 0 {
		s.cmds.DestroySwapchainKHR(s.device, s.handle, nil)
		s.handle = 0
	}
}
