package queue

import (
	"github.com/kestrelgpu/vkrt/command"
	"github.com/kestrelgpu/vkrt/object"
	"github.com/kestrelgpu/vkrt/vk"
)

// Transferable is anything that can carry an ownership-transfer PendingBarrier
// handoff: both object.Buffer and object.Image implement this.
type Transferable interface {
	SetPendingBarrier(b *object.PendingBarrier)
	GetPendingBarrier() *object.PendingBarrier
	DropPendingBarrier() *object.PendingBarrier
	HasPendingBarrier() bool
}

// ReleaseOwnership records a release-side queue-family ownership-transfer
// barrier on obj's pending slot and emits the corresponding vkCmdPipeline
// Barrier into cb, matching scenario S3's producer half: a resource written
// on one queue family and consumed on another must have its ownership
// explicitly released before the consumer's acquire barrier is valid.
func ReleaseOwnership(cb *command.Buffer, obj Transferable, srcFamily, dstFamily uint32, srcStage, dstStage vk.PipelineStageFlags, bufBarrier *vk.BufferMemoryBarrier, imgBarrier *vk.ImageMemoryBarrier) {
	pb := &object.PendingBarrier{SrcStage: srcStage, DstStage: dstStage}
	var bufBarriers []vk.BufferMemoryBarrier
	var imgBarriers []vk.ImageMemoryBarrier
	if bufBarrier != nil {
		b := *bufBarrier
		b.SrcQueueFamilyIndex = srcFamily
		b.DstQueueFamilyIndex = dstFamily
		pb.Buffer = &b
		bufBarriers = append(bufBarriers, b)
	}
	if imgBarrier != nil {
		b := *imgBarrier
		b.SrcQueueFamilyIndex = srcFamily
		b.DstQueueFamilyIndex = dstFamily
		pb.Image = &b
		imgBarriers = append(imgBarriers, b)
	}
	cb.PipelineBarrier(srcStage, dstStage, bufBarriers, imgBarriers)
	obj.SetPendingBarrier(pb)
}

// AcquireOwnership completes a pending ownership transfer recorded by
// ReleaseOwnership, emitting the matching acquire-side vkCmdPipelineBarrier
// into cb and clearing obj's pending slot. It is a no-op if obj has no
// pending barrier, which is the common case for resources never shared
// across queue families.
func AcquireOwnership(cb *command.Buffer, obj Transferable) {
	pb := obj.DropPendingBarrier()
	if pb == nil {
		return
	}
	var bufBarriers []vk.BufferMemoryBarrier
	var imgBarriers []vk.ImageMemoryBarrier
	if pb.Buffer != nil {
		bufBarriers = append(bufBarriers, *pb.Buffer)
	}
	if pb.Image != nil {
		imgBarriers = append(imgBarriers, *pb.Image)
	}
	cb.PipelineBarrier(pb.SrcStage, pb.DstStage, bufBarriers, imgBarriers)
}
