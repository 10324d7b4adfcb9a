// Package subqueue implements the five startup/streaming sub-queues
// spec.md §4.9 describes: TransferQueue, RenderQueueCompiler,
// MaterialCompiler, MeshCompiler, and FontQueue. TransferQueue and
// MeshCompiler each declare frame.AttachmentDecl/frame.PassDecl pairs
// (Declare) that a caller wires into a frame.CompiledQueue and drives
// through a frame.Loop like any other declared pass; RenderQueueCompiler,
// MaterialCompiler and FontQueue declare no passes and are called
// directly.
//
// Grounded on the teacher's hal/vulkan/queue.go and memory.go (staging
// buffer lifecycle, host-map-vs-copy decision) generalized to this
// module's frame.Capability/PassDecl shape.
package subqueue

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/kestrelgpu/vkrt/command"
	"github.com/kestrelgpu/vkrt/frame"
	"github.com/kestrelgpu/vkrt/memory"
	"github.com/kestrelgpu/vkrt/object"
	"github.com/kestrelgpu/vkrt/queue"
	"github.com/kestrelgpu/vkrt/rtlog"
	"github.com/kestrelgpu/vkrt/texset"
	"github.com/kestrelgpu/vkrt/vk"
)

// TransferResource is one object a TransferQueue pass should populate:
// exactly one of Buffer/Image is set, matching the object kind this
// request targets (spec.md §4.9 "the pass batches pre-created buffers
// and images").
type TransferResource struct {
	Buffer *object.Buffer
	Image  *object.Image

	// Usage selects the memory type bindMemory should claim for this
	// object (spec.md §4.1's scoring table); DeviceLocal is the common
	// case for resources a shader will later read.
	Usage memory.Usage
	// Dedicated requests a standalone VkDeviceMemory allocation instead of
	// a DeviceMemoryPool sub-block, per spec.md §4.9 "dedicated
	// allocations are spun up per object when its requirements flag it".
	Dedicated bool

	HostData []byte

	// FinalLayout and AspectMask apply only when Image != nil.
	FinalLayout uint32
	AspectMask  vk.ImageAspectFlags
	Extent      vk.Extent3D

	// FinalFamily, if non-zero and different from this queue's own
	// family, triggers a release-side ownership-transfer barrier via
	// queue.ReleaseOwnership so a consumer on that family can complete
	// the handoff with queue.AcquireOwnership (spec.md §8 scenario S3).
	FinalFamily uint32
}

// TransferQueue is the spec's single-attachment, single-pass sub-queue
// that binds memory to pre-created objects and writes their initial
// contents (spec.md §4.9 "TransferQueue").
type TransferQueue struct {
	cmds        *vk.Commands
	device      vk.Device
	allocator   *memory.Allocator
	stagingPool *memory.DeviceMemoryPool
	familyIndex uint32

	mu      sync.Mutex
	staging []stagingAlloc
}

type stagingAlloc struct {
	buf   *object.Buffer
	block memory.MemBlock
}

// New builds a TransferQueue whose pass records on familyIndex (the
// transfer-capable queue family it will be scheduled against) and whose
// staging buffers are sub-allocated from alloc via a dedicated pool.
func New(cmds *vk.Commands, device vk.Device, alloc *memory.Allocator, granularity, atomSize vk.DeviceSize, familyIndex uint32) *TransferQueue {
	return &TransferQueue{
		cmds: cmds, device: device, allocator: alloc,
		stagingPool: memory.NewDeviceMemoryPool(alloc, granularity, atomSize),
		familyIndex: familyIndex,
	}
}

// Declare builds the TransferAttachment/pass pair described in spec.md
// §4.9: the attachment's SubmitInput capability accepts a
// []*TransferResource blob, and the pass (gated on that attachment being
// Ready) performs the actual binds, transitions, and writes.
func (tq *TransferQueue) Declare() (*frame.AttachmentDecl, *frame.PassDecl) {
	decl := &frame.AttachmentDecl{
		Name:     "transfer",
		Kind:     frame.AttachmentGeneric,
		HasInput: true,
		Cap: frame.Capability{
			SubmitInput: func(h *frame.AttachmentHandle, data any) error {
				resources, ok := data.([]*TransferResource)
				if !ok {
					return fmt.Errorf("subqueue: transfer attachment expects []*TransferResource, got %T", data)
				}
				h.Data = resources
				return nil
			},
		},
	}

	pass := &frame.PassDecl{
		Name:   "transfer",
		Kind:   frame.PassTransfer,
		Inputs: []*frame.AttachmentDecl{decl},
		Record: func(h *frame.PassHandle, cb *command.Buffer) {
			tq.record(h, cb)
		},
	}

	return decl, pass
}

func (tq *TransferQueue) record(h *frame.PassHandle, cb *command.Buffer) {
	resources, _ := h.Inputs[0].Data.([]*TransferResource)

	var pending []stagingAlloc
	for _, res := range resources {
		switch {
		case res.Buffer != nil:
			if s := tq.writeBuffer(cb, res); s != nil {
				pending = append(pending, *s)
			}
		case res.Image != nil:
			if s := tq.writeImage(cb, res); s != nil {
				pending = append(pending, *s)
			}
		}
	}

	if len(pending) == 0 {
		return
	}
	h.Done.OnSignal(func(bool) {
		tq.mu.Lock()
		defer tq.mu.Unlock()
		for _, s := range pending {
			s.buf.Destroy(tq.cmds, tq.device)
			tq.stagingPool.Free(s.block)
		}
	})
}

// bindIfNeeded allocates memory of the requested usage for req (a whole
// allocator node when dedicated is set, otherwise a block from the staging
// pool) and passes it to bind. It does not check whether the object is
// already bound; writeBuffer and writeImage call it only for objects that
// are not yet bound, which keeps spec.md §8 testable property 8 ("a
// redundant bindMemory on an object is a no-op").
func (tq *TransferQueue) bindIfNeeded(req vk.MemoryRequirements, usage memory.Usage, dedicated bool, bind func(memory.MemBlock) error) error {
	memType, ok := tq.allocator.FindMemoryType(req.MemoryTypeBits, usage)
	if !ok {
		return fmt.Errorf("subqueue: no memory type for usage %s", usage)
	}

	var block memory.MemBlock
	if dedicated {
		node, err := tq.allocator.Alloc(memType, req.Size, usage == memory.DeviceLocalHostVisible)
		if err != nil {
			return err
		}
		block = memory.MemBlock{Node: node, Offset: 0, Size: req.Size}
	} else {
		var err error
		block, err = tq.stagingPool.Alloc(memType, req.Size, req.Alignment, memory.Linear, usage == memory.DeviceLocalHostVisible)
		if err != nil {
			return err
		}
	}
	return bind(block)
}

func (tq *TransferQueue) writeBuffer(cb *command.Buffer, res *TransferResource) *stagingAlloc {
	buf := res.Buffer
	if !buf.Bound() {
		req := buf.MemoryRequirements(tq.cmds, tq.device)
		if err := tq.bindIfNeeded(req, res.Usage, res.Dedicated, func(b memory.MemBlock) error {
			return buf.BindMemory(tq.cmds, tq.device, b)
		}); err != nil {
			rtlog.Logger().Warn("subqueue: transfer bindMemory failed", "error", err)
			return nil
		}
	}

	if len(res.HostData) == 0 {
		return nil
	}

	if ptr, ok := buf.MappedPointer(); ok {
		dst := unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(res.HostData))
		copy(dst, res.HostData)
		return nil
	}

	staging, block, err := tq.makeStaging(res.HostData)
	if err != nil {
		rtlog.Logger().Warn("subqueue: transfer staging buffer failed", "error", err)
		return nil
	}
	cb.CopyBuffer(staging.Handle(), buf.Handle(), []vk.BufferCopy{{Size: vk.DeviceSize(len(res.HostData))}})
	return &stagingAlloc{buf: staging, block: block}
}

func (tq *TransferQueue) writeImage(cb *command.Buffer, res *TransferResource) *stagingAlloc {
	img := res.Image
	if !img.Bound() {
		req := img.MemoryRequirements(tq.cmds, tq.device)
		if err := tq.bindIfNeeded(req, res.Usage, res.Dedicated, func(b memory.MemBlock) error {
			return img.BindMemory(tq.cmds, tq.device, b)
		}); err != nil {
			rtlog.Logger().Warn("subqueue: transfer bindMemory failed", "error", err)
			return nil
		}
	}

	subresource := vk.ImageSubresourceRange{AspectMask: res.AspectMask, LevelCount: 1, LayerCount: 1}

	cb.PipelineBarrier(vk.PipelineStageTopOfPipeBit, vk.PipelineStageTransferBit, nil, []vk.ImageMemoryBarrier{{
		SType: vk.StructureTypeImageMemoryBarrier, OldLayout: vk.ImageLayoutUndefined, NewLayout: vk.ImageLayoutTransferDstOptimal,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored, DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstAccessMask: vk.AccessTransferWriteBit, Image: img.Handle(), SubresourceRange: subresource,
	}})

	var pending *stagingAlloc
	if len(res.HostData) > 0 {
		staging, block, err := tq.makeStaging(res.HostData)
		if err != nil {
			rtlog.Logger().Warn("subqueue: transfer staging buffer failed", "error", err)
		} else {
			cb.CopyBufferToImage(staging.Handle(), img.Handle(), vk.ImageLayoutTransferDstOptimal, []vk.BufferImageCopy{{
				ImageSubresource: vk.ImageSubresourceLayers{AspectMask: res.AspectMask, LayerCount: 1},
				ImageExtent:      res.Extent,
			}})
			pending = &stagingAlloc{buf: staging, block: block}
		}
	}

	finalLayout := res.FinalLayout
	if finalLayout == 0 {
		finalLayout = vk.ImageLayoutShaderReadOnlyOptimal
	}
	imgBarrier := vk.ImageMemoryBarrier{
		SType: vk.StructureTypeImageMemoryBarrier, OldLayout: vk.ImageLayoutTransferDstOptimal, NewLayout: finalLayout,
		SrcAccessMask: vk.AccessTransferWriteBit, DstAccessMask: vk.AccessShaderReadBit,
		Image: img.Handle(), SubresourceRange: subresource,
	}

	if res.FinalFamily != 0 && res.FinalFamily != tq.familyIndex {
		queue.ReleaseOwnership(cb, img, tq.familyIndex, res.FinalFamily,
			vk.PipelineStageTransferBit, vk.PipelineStageFragmentShaderBit, nil, &imgBarrier)
	} else {
		cb.PipelineBarrier(vk.PipelineStageTransferBit, vk.PipelineStageFragmentShaderBit, nil, []vk.ImageMemoryBarrier{imgBarrier})
	}

	return pending
}

func (tq *TransferQueue) makeStaging(data []byte) (*object.Buffer, memory.MemBlock, error) {
	info := &vk.BufferCreateInfo{
		SType: vk.StructureTypeBufferCreateInfo, Size: vk.DeviceSize(len(data)),
		Usage: vk.BufferUsageTransferSrcBit, SharingMode: vk.SharingModeExclusive,
	}
	buf, err := object.NewBuffer(tq.cmds, tq.device, info)
	if err != nil {
		return nil, memory.MemBlock{}, err
	}

	req := buf.MemoryRequirements(tq.cmds, tq.device)
	memType, ok := tq.allocator.FindMemoryType(req.MemoryTypeBits, memory.HostTransitionSource)
	if !ok {
		buf.Destroy(tq.cmds, tq.device)
		return nil, memory.MemBlock{}, fmt.Errorf("subqueue: no HostTransitionSource memory type")
	}
	block, err := tq.stagingPool.Alloc(memType, req.Size, req.Alignment, memory.Linear, true)
	if err != nil {
		buf.Destroy(tq.cmds, tq.device)
		return nil, memory.MemBlock{}, err
	}
	if err := buf.BindMemory(tq.cmds, tq.device, block); err != nil {
		tq.stagingPool.Free(block)
		buf.Destroy(tq.cmds, tq.device)
		return nil, memory.MemBlock{}, err
	}

	ptr, ok := buf.MappedPointer()
	if !ok {
		tq.stagingPool.Free(block)
		buf.Destroy(tq.cmds, tq.device)
		return nil, memory.MemBlock{}, fmt.Errorf("subqueue: staging buffer memory not host-mapped")
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(data)), data)

	return buf, block, nil
}

// SentinelFillResources returns the TransferResource batch that writes
// ts's sentinel images and buffer with their required bytes (spec.md
// §4.7: a 1x1 zero image, a 1x1 solid-white image, and a 16-byte buffer
// filled with 0xFFFFFFFF), to be fed into a TransferQueue's attachment
// once at device-init time.
func SentinelFillResources(ts *texset.TextureSet) []*TransferResource {
	return sentinelFillResourcesFor(ts.Sentinels())
}

func sentinelFillResourcesFor(s texset.Sentinels) []*TransferResource {
	white := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	empty := make([]byte, 16)
	for i := range empty {
		empty[i] = 0xFF
	}
	extent := vk.Extent3D{Width: 1, Height: 1, Depth: 1}

	return []*TransferResource{
		{
			Image: s.ZeroImage, HostData: make([]byte, 4), Usage: memory.DeviceLocal,
			FinalLayout: vk.ImageLayoutShaderReadOnlyOptimal, AspectMask: vk.ImageAspectColorBit, Extent: extent,
		},
		{
			Image: s.WhiteImage, HostData: white, Usage: memory.DeviceLocal,
			FinalLayout: vk.ImageLayoutShaderReadOnlyOptimal, AspectMask: vk.ImageAspectColorBit, Extent: extent,
		},
		{
			Buffer: s.EmptyBuffer, HostData: empty, Usage: memory.DeviceLocal,
		},
	}
}
