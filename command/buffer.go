package command

import "github.com/kestrelgpu/vkrt/vk"

// Buffer is a typed wrapper over one recorded VkCommandBuffer. It tracks
// the three pieces of state spec.md §4.3 calls out: the bound pipeline
// layout and descriptor-set prefix (to suppress redundant binds), render
// pass state, and a retained-object set that keeps objects alive until GPU
// execution ends. The set holds only what callers add through Retain; the
// recording methods do not add the objects they reference to it.
type Buffer struct {
	handle vk.CommandBuffer
	cmds   *vk.Commands

	boundLayout vk.PipelineLayout
	boundSets   []vk.DescriptorSet

	withinRenderPass bool
	currentSubpass   uint32

	retained []any
}

// Handle returns the underlying VkCommandBuffer.
func (b *Buffer) Handle() vk.CommandBuffer { return b.handle }

// Retain adds v to this buffer's resource-retention set.
func (b *Buffer) Retain(v any) {
	b.retained = append(b.retained, v)
}

// PipelineBarrier issues vkCmdPipelineBarrier.
func (b *Buffer) PipelineBarrier(srcStage, dstStage vk.PipelineStageFlags, bufferBarriers []vk.BufferMemoryBarrier, imageBarriers []vk.ImageMemoryBarrier) {
	b.cmds.CmdPipelineBarrier(b.handle, srcStage, dstStage, 0, bufferBarriers, imageBarriers)
}

// CopyBuffer issues vkCmdCopyBuffer.
func (b *Buffer) CopyBuffer(src, dst vk.Buffer, regions []vk.BufferCopy) {
	b.cmds.CmdCopyBuffer(b.handle, src, dst, regions)
}

// CopyBufferToImage issues vkCmdCopyBufferToImage.
func (b *Buffer) CopyBufferToImage(src vk.Buffer, dst vk.Image, dstLayout uint32, regions []vk.BufferImageCopy) {
	b.cmds.CmdCopyBufferToImage(b.handle, src, dst, dstLayout, regions)
}

// BeginRenderPass issues vkCmdBeginRenderPass and updates render pass state.
func (b *Buffer) BeginRenderPass(info *vk.RenderPassBeginInfo, contents uint32) {
	b.cmds.CmdBeginRenderPass(b.handle, info, contents)
	b.withinRenderPass = true
	b.currentSubpass = 0
}

// NextSubpass advances the tracked subpass index.
func (b *Buffer) NextSubpass() {
	b.currentSubpass++
}

// EndRenderPass issues vkCmdEndRenderPass and clears render pass state.
func (b *Buffer) EndRenderPass() {
	b.cmds.CmdEndRenderPass(b.handle)
	b.withinRenderPass = false
	b.currentSubpass = 0
}

// WithinRenderPass reports whether a render pass is currently active.
func (b *Buffer) WithinRenderPass() bool { return b.withinRenderPass }

// CurrentSubpass returns the tracked subpass index.
func (b *Buffer) CurrentSubpass() uint32 { return b.currentSubpass }

// BindPipeline issues vkCmdBindPipeline.
func (b *Buffer) BindPipeline(bindPoint uint32, pipeline vk.Pipeline) {
	b.cmds.CmdBindPipeline(b.handle, bindPoint, pipeline)
}

// BindDescriptorSets issues vkCmdBindDescriptorSets, but suppresses the
// call entirely when layout and the full set of sets being bound at
// firstSet already match what is currently bound (spec.md §4.3 item 1).
func (b *Buffer) BindDescriptorSets(bindPoint uint32, layout vk.PipelineLayout, firstSet uint32, sets []vk.DescriptorSet, dynamicOffsets []uint32) {
	if b.setsAlreadyBound(layout, firstSet, sets) && len(dynamicOffsets) == 0 {
		return
	}
	b.cmds.CmdBindDescriptorSets(b.handle, bindPoint, layout, firstSet, sets, dynamicOffsets)
	b.boundLayout = layout
	needed := int(firstSet) + len(sets)
	if len(b.boundSets) < needed {
		grown := make([]vk.DescriptorSet, needed)
		copy(grown, b.boundSets)
		b.boundSets = grown
	}
	copy(b.boundSets[firstSet:], sets)
}

func (b *Buffer) setsAlreadyBound(layout vk.PipelineLayout, firstSet uint32, sets []vk.DescriptorSet) bool {
	if b.boundLayout != layout {
		return false
	}
	if int(firstSet)+len(sets) > len(b.boundSets) {
		return false
	}
	for i, s := range sets {
		if b.boundSets[int(firstSet)+i] != s {
			return false
		}
	}
	return true
}

// BindVertexBuffers issues vkCmdBindVertexBuffers.
func (b *Buffer) BindVertexBuffers(firstBinding uint32, buffers []vk.Buffer, offsets []vk.DeviceSize) {
	b.cmds.CmdBindVertexBuffers(b.handle, firstBinding, buffers, offsets)
}

// BindIndexBuffer issues vkCmdBindIndexBuffer.
func (b *Buffer) BindIndexBuffer(buffer vk.Buffer, offset vk.DeviceSize, indexType uint32) {
	b.cmds.CmdBindIndexBuffer(b.handle, buffer, offset, indexType)
}

// Draw issues vkCmdDraw.
func (b *Buffer) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	b.cmds.CmdDraw(b.handle, vertexCount, instanceCount, firstVertex, firstInstance)
}

// DrawIndexed issues vkCmdDrawIndexed.
func (b *Buffer) DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	b.cmds.CmdDrawIndexed(b.handle, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
}

// Dispatch issues vkCmdDispatch.
func (b *Buffer) Dispatch(x, y, z uint32) {
	b.cmds.CmdDispatch(b.handle, x, y, z)
}

// PushConstants issues vkCmdPushConstants.
func (b *Buffer) PushConstants(layout vk.PipelineLayout, stages vk.ShaderStageFlags, offset, size uint32, values []byte) {
	var p any
	_ = p
	b.cmds.CmdPushConstants(b.handle, layout, stages, offset, size, bytesPtr(values))
}
