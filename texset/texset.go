// Package texset implements the per-Device bindless texture-set layout
// spec.md §4.7 describes: one descriptor set holding three parallel
// arrays (samplers, sampled images, storage buffers), each slot-indexed
// and populated either from a material's declared resources or from
// sentinel resources so an unpopulated slot never reads garbage.
//
// Grounded on the teacher's hal/vulkan/descriptor.go (DescriptorAllocator
// pool sizing and Stats bookkeeping, reused here via the renderpass
// package's DescriptorPool) and the coalescing scheme built for
// renderpass.DescriptorBinding, generalized here to cover both image and
// buffer descriptor arrays.
package texset

import (
	"fmt"
	"sort"

	"github.com/kestrelgpu/vkrt/object"
	"github.com/kestrelgpu/vkrt/renderpass"
	"github.com/kestrelgpu/vkrt/vk"
)

// Config bounds the bindless set's slot counts, capped by device limits
// and engine configuration (spec.md §6 "MaxTextureSetImages/Buffers").
type Config struct {
	MaxSamplers      uint32
	MaxSampledImages uint32
	MaxStorageBuffers uint32
}

const (
	samplerBinding       uint32 = 0
	sampledImageBinding  uint32 = 1
	storageBufferBinding uint32 = 2
)

// bufferBinding tracks a storage-buffer descriptor array the same way
// renderpass.DescriptorBinding tracks an image array: last-written value
// per slot, with dirty indices coalesced into contiguous-run writes on
// Flush.
type bufferBinding struct {
	set      vk.DescriptorSet
	binding  uint32
	bound    []vk.DescriptorBufferInfo
	dirty    map[int]bool
}

func newBufferBinding(set vk.DescriptorSet, binding uint32, capacity uint32) *bufferBinding {
	return &bufferBinding{set: set, binding: binding, bound: make([]vk.DescriptorBufferInfo, capacity), dirty: map[int]bool{}}
}

func (b *bufferBinding) set_(i int, info vk.DescriptorBufferInfo) {
	if b.bound[i] == info {
		return
	}
	b.bound[i] = info
	b.dirty[i] = true
}

func (b *bufferBinding) flush() []vk.WriteDescriptorSet {
	if len(b.dirty) == 0 {
		return nil
	}
	indices := make([]int, 0, len(b.dirty))
	for i := range b.dirty {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	b.dirty = map[int]bool{}

	var writes []vk.WriteDescriptorSet
	runStart, runEnd := indices[0], indices[0]
	flushRun := func() {
		count := runEnd - runStart + 1
		infos := make([]vk.DescriptorBufferInfo, count)
		copy(infos, b.bound[runStart:runEnd+1])
		writes = append(writes, vk.WriteDescriptorSet{
			SType: vk.StructureTypeWriteDescriptorSet, DstSet: b.set, DstBinding: b.binding,
			DstArrayElement: uint32(runStart), DescriptorCount: uint32(count),
			DescriptorType: vk.DescriptorTypeStorageBuffer, PBufferInfo: &infos[0],
		})
	}
	for _, idx := range indices[1:] {
		if idx == runEnd+1 {
			runEnd = idx
			continue
		}
		flushRun()
		runStart, runEnd = idx, idx
	}
	flushRun()
	return writes
}

// Sentinels are the always-present fallback resources spec.md §4.7
// describes: a 1x1 zero image, a 1x1 solid-white image, and a tiny
// "empty buffer" filled with 0xFFFFFFFF.
type Sentinels struct {
	ZeroImage  *object.Image
	ZeroView   *object.ImageView
	WhiteImage *object.Image
	WhiteView  *object.ImageView
	Sampler    *object.Sampler
	EmptyBuffer *object.Buffer
}

// TextureSet is the per-Device bindless descriptor set.
type TextureSet struct {
	cmds   *vk.Commands
	device vk.Device

	layout vk.DescriptorSetLayout
	pool   *renderpass.DescriptorPool
	set    vk.DescriptorSet

	samplers *renderpass.DescriptorBinding
	images   *renderpass.DescriptorBinding
	buffers  *bufferBinding

	sentinels Sentinels
}

// Handle returns the underlying VkDescriptorSet, to be bound as the last
// set in a pipeline layout that declares this TextureSet's layout
// (spec.md §4.5 item 6: "appended as the last set").
func (ts *TextureSet) Handle() vk.DescriptorSet { return ts.set }

// Layout returns the underlying VkDescriptorSetLayout.
func (ts *TextureSet) Layout() vk.DescriptorSetLayout { return ts.layout }

// Sentinels returns the sentinel resources created alongside this set, so
// the transfer sub-queue can fill their bytes at device-init time (the
// images and buffer above are created but left unbound and unwritten by
// createSentinels; see subqueue.SentinelFillResources).
func (ts *TextureSet) Sentinels() Sentinels { return ts.sentinels }

// New builds the bindless descriptor set layout, a prewarmed pool, the set
// itself, and the sentinel resources (a zero image, a white image, a
// sampler and an empty buffer), then binds every slot to a sentinel so no
// slot ever reads uninitialized descriptor memory.
func New(cmds *vk.Commands, device vk.Device, cfg Config) (*TextureSet, error) {
	bindings := []vk.DescriptorSetLayoutBinding{
		{Binding: samplerBinding, DescriptorType: vk.DescriptorTypeSampler, DescriptorCount: cfg.MaxSamplers, StageFlags: vk.ShaderStageFragmentBit | vk.ShaderStageComputeBit},
		{Binding: sampledImageBinding, DescriptorType: vk.DescriptorTypeSampledImage, DescriptorCount: cfg.MaxSampledImages, StageFlags: vk.ShaderStageFragmentBit | vk.ShaderStageComputeBit},
		{Binding: storageBufferBinding, DescriptorType: vk.DescriptorTypeStorageBuffer, DescriptorCount: cfg.MaxStorageBuffers, StageFlags: vk.ShaderStageFragmentBit | vk.ShaderStageComputeBit},
	}
	layoutInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		Flags:        vk.DescriptorSetLayoutCreateUpdateAfterBindPoolBit,
		BindingCount: uint32(len(bindings)),
		PBindings:    &bindings[0],
	}
	layout, r := cmds.CreateDescriptorSetLayout(device, &layoutInfo, nil)
	if r != vk.Success {
		return nil, fmt.Errorf("texset: vkCreateDescriptorSetLayout failed: %d", r)
	}

	var counts renderpass.DescriptorCounts
	counts.Add(vk.DescriptorTypeSampler, cfg.MaxSamplers)
	counts.Add(vk.DescriptorTypeSampledImage, cfg.MaxSampledImages)
	counts.Add(vk.DescriptorTypeStorageBuffer, cfg.MaxStorageBuffers)

	pool, err := renderpass.NewDescriptorPoolForCounts(cmds, device, counts, 1)
	if err != nil {
		cmds.DestroyDescriptorSetLayout(device, layout, nil)
		return nil, err
	}

	sets, err := pool.Allocate([]vk.DescriptorSetLayout{layout})
	if err != nil {
		pool.Destroy()
		cmds.DestroyDescriptorSetLayout(device, layout, nil)
		return nil, err
	}

	ts := &TextureSet{
		cmds: cmds, device: device,
		layout: layout, pool: pool, set: sets[0],
		samplers: renderpass.NewDescriptorBinding(sets[0], samplerBinding, vk.DescriptorTypeSampler, int(cfg.MaxSamplers)),
		images:   renderpass.NewDescriptorBinding(sets[0], sampledImageBinding, vk.DescriptorTypeSampledImage, int(cfg.MaxSampledImages)),
		buffers:  newBufferBinding(sets[0], storageBufferBinding, cfg.MaxStorageBuffers),
	}

	if err := ts.createSentinels(); err != nil {
		ts.Destroy()
		return nil, err
	}
	ts.bindSentinelsToAllSlots(cfg)
	ts.Flush()

	return ts, nil
}

func (ts *TextureSet) createSentinels() error {
	makeImage := func(fill bool) (*object.Image, *object.ImageView, error) {
		_ = fill // fill content is uploaded by the transfer sub-queue at init time; see DESIGN.md
		info := &vk.ImageCreateInfo{
			SType: vk.StructureTypeImageCreateInfo, ImageType: vk.ImageType2D,
			Format: uint32(vk.FormatR8G8B8A8Unorm), Extent: vk.Extent3D{Width: 1, Height: 1, Depth: 1},
			MipLevels: 1, ArrayLayers: 1, Samples: vk.SampleCount1Bit, Tiling: vk.ImageTilingOptimal,
			Usage: vk.ImageUsageSampledBit | vk.ImageUsageTransferDstBit, SharingMode: vk.SharingModeExclusive,
			InitialLayout: vk.ImageLayoutUndefined,
		}
		img, err := object.NewImage(ts.cmds, ts.device, info)
		if err != nil {
			return nil, nil, err
		}
		viewInfo := &vk.ImageViewCreateInfo{
			SType: vk.StructureTypeImageViewCreateInfo, ViewType: vk.ImageViewType2D, Format: uint32(vk.FormatR8G8B8A8Unorm),
			SubresourceRange: vk.ImageSubresourceRange{AspectMask: vk.ImageAspectColorBit, LevelCount: 1, LayerCount: 1},
		}
		view, err := object.NewImageView(ts.cmds, ts.device, img, viewInfo)
		if err != nil {
			return nil, nil, err
		}
		return img, view, nil
	}

	zeroImg, zeroView, err := makeImage(false)
	if err != nil {
		return err
	}
	whiteImg, whiteView, err := makeImage(true)
	if err != nil {
		return err
	}

	samplerInfo := &vk.SamplerCreateInfo{SType: vk.StructureTypeSamplerCreateInfo, MaxLod: 0.25}
	sampler, err := object.NewSampler(ts.cmds, ts.device, samplerInfo)
	if err != nil {
		return err
	}

	bufInfo := &vk.BufferCreateInfo{
		SType: vk.StructureTypeBufferCreateInfo, Size: 16,
		Usage: vk.BufferUsageStorageBufferBit | vk.BufferUsageTransferDstBit, SharingMode: vk.SharingModeExclusive,
	}
	emptyBuf, err := object.NewBuffer(ts.cmds, ts.device, bufInfo)
	if err != nil {
		return err
	}

	ts.sentinels = Sentinels{ZeroImage: zeroImg, ZeroView: zeroView, WhiteImage: whiteImg, WhiteView: whiteView, Sampler: sampler, EmptyBuffer: emptyBuf}
	return nil
}

// bindSentinelsToAllSlots writes the sentinel sampler into every sampler
// slot, the zero image's view into every sampled-image slot, and the empty
// buffer into every storage-buffer slot, so the set starts fully populated;
// the white image is not bound to any slot (spec.md §4.7:
// sentinels are "bound into every index that a material has not
// populated").
func (ts *TextureSet) bindSentinelsToAllSlots(cfg Config) {
	samplerInfo := vk.DescriptorImageInfo{Sampler: ts.sentinels.Sampler.Handle()}
	imageInfo := vk.DescriptorImageInfo{ImageView: ts.sentinels.ZeroView.Handle(), ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal}
	bufferInfo := vk.DescriptorBufferInfo{Buffer: ts.sentinels.EmptyBuffer.Handle(), Range: 16}

	for i := uint32(0); i < cfg.MaxSamplers; i++ {
		ts.samplers.Set(int(i), samplerInfo)
	}
	for i := uint32(0); i < cfg.MaxSampledImages; i++ {
		ts.images.Set(int(i), imageInfo)
	}
	for i := uint32(0); i < cfg.MaxStorageBuffers; i++ {
		ts.buffers.set_(int(i), bufferInfo)
	}
}

// MaterialLayout describes the per-slot resources one material wants
// bound, keyed by bindless slot index (spec.md §4.7's "material layout").
type MaterialLayout struct {
	SamplerSlots map[int]*object.Sampler
	ImageSlots   map[int]struct {
		View   *object.ImageView
		Layout uint32
	}
	BufferSlots map[int]*object.Buffer
}

// Write iterates material's slot vectors, queuing a descriptor write for
// every slot whose resource differs from what is currently bound
// (spec.md §4.7: "Updates... iterates the material's image and buffer
// slot vectors; for each slot whose resource differs from the record,
// queues a descriptor write"), then flushes the coalesced writes.
func (ts *TextureSet) Write(material MaterialLayout) {
	for slot, s := range material.SamplerSlots {
		ts.samplers.Set(slot, vk.DescriptorImageInfo{Sampler: s.Handle()})
	}
	for slot, img := range material.ImageSlots {
		ts.images.Set(slot, vk.DescriptorImageInfo{ImageView: img.View.Handle(), ImageLayout: img.Layout})
	}
	for slot, buf := range material.BufferSlots {
		ts.buffers.set_(slot, vk.DescriptorBufferInfo{Buffer: buf.Handle(), Range: vk.WholeSize})
	}
	ts.Flush()
}

// Flush issues vkUpdateDescriptorSets for every slot dirtied since the
// last Flush across all three arrays.
func (ts *TextureSet) Flush() {
	var writes []vk.WriteDescriptorSet
	writes = append(writes, ts.samplers.Flush()...)
	writes = append(writes, ts.images.Flush()...)
	writes = append(writes, ts.buffers.flush()...)
	if len(writes) > 0 {
		ts.cmds.UpdateDescriptorSets(ts.device, writes)
	}
}

// Destroy releases the descriptor pool, set layout, and sentinel
// resources.
func (ts *TextureSet) Destroy() {
	if ts.sentinels.ZeroView != nil {
		ts.sentinels.ZeroView.Destroy(ts.cmds, ts.device)
	}
	if ts.sentinels.ZeroImage != nil {
		ts.sentinels.ZeroImage.Destroy(ts.cmds, ts.device)
	}
	if ts.sentinels.WhiteView != nil {
		ts.sentinels.WhiteView.Destroy(ts.cmds, ts.device)
	}
	if ts.sentinels.WhiteImage != nil {
		ts.sentinels.WhiteImage.Destroy(ts.cmds, ts.device)
	}
	if ts.sentinels.Sampler != nil {
		ts.sentinels.Sampler.Destroy(ts.cmds, ts.device)
	}
	if ts.sentinels.EmptyBuffer != nil {
		ts.sentinels.EmptyBuffer.Destroy(ts.cmds, ts.device)
	}
	if ts.pool != nil {
		ts.pool.Destroy()
	}
	if ts.layout != 0 {
		ts.cmds.DestroyDescriptorSetLayout(ts.device, ts.layout, nil)
		ts.layout = 0
	}
}
