package renderpass

import (
	"github.com/kestrelgpu/vkrt/command"
	"github.com/kestrelgpu/vkrt/object"
	"github.com/kestrelgpu/vkrt/vk"
)

// BarrierSource is anything a pass's attachment handles can scan for a
// pending producer→consumer barrier before and after `perform` runs
// (spec.md §4.5 "Pass execution"): object.Buffer and object.Image both
// satisfy it via their embedded pendingSlot.
type BarrierSource interface {
	HasPendingBarrier() bool
	GetPendingBarrier() *object.PendingBarrier
	DropPendingBarrier() *object.PendingBarrier
}

// gatherBarriers drains every pending barrier from sources, OR-ing the
// producer→consumer pipeline stages across all of them (spec.md §4.5:
// "builds a pre-pass barrier batch by OR-ing pipeline stages of each
// object's producer→consumer transition").
func gatherBarriers(sources []BarrierSource) (srcStage, dstStage vk.PipelineStageFlags, bufferBarriers []vk.BufferMemoryBarrier, imageBarriers []vk.ImageMemoryBarrier) {
	for _, s := range sources {
		if !s.HasPendingBarrier() {
			continue
		}
		b := s.DropPendingBarrier()
		srcStage |= b.SrcStage
		dstStage |= b.DstStage
		if b.Buffer != nil {
			bufferBarriers = append(bufferBarriers, *b.Buffer)
		}
		if b.Image != nil {
			imageBarriers = append(imageBarriers, *b.Image)
		}
	}
	return
}

// Perform implements spec.md §4.5's pass execution: scans sources for
// pending barriers and issues one vkCmdPipelineBarrier covering all of
// them (skipped if none are pending), runs body (which begins/ends a
// render pass, or just records compute/transfer commands), then does the
// same for postSources — attachments whose next consumer lies on a
// different queue family and so need a release barrier recorded before
// the buffer ends.
func Perform(cb *command.Buffer, preSources []BarrierSource, body func(*command.Buffer), postSources []BarrierSource) {
	if srcStage, dstStage, bufBarriers, imgBarriers := gatherBarriers(preSources); srcStage != 0 || dstStage != 0 || len(bufBarriers) > 0 || len(imgBarriers) > 0 {
		cb.PipelineBarrier(srcStage, dstStage, bufBarriers, imgBarriers)
	}

	body(cb)

	if srcStage, dstStage, bufBarriers, imgBarriers := gatherBarriers(postSources); srcStage != 0 || dstStage != 0 || len(bufBarriers) > 0 || len(imgBarriers) > 0 {
		cb.PipelineBarrier(srcStage, dstStage, bufBarriers, imgBarriers)
	}
}
