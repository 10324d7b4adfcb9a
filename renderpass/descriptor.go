package renderpass

import (
	"fmt"
	"sort"

	"github.com/kestrelgpu/vkrt/vk"
)

// BindingDecl declares one descriptor-set-layout binding (spec.md §4.5
// item 6). It carries no initial resource handles.
type BindingDecl struct {
	Binding         uint32
	Type            uint32
	DescriptorCount uint32
	Stages          vk.ShaderStageFlags
	UpdateAfterBind bool
}

// SetDecl declares one descriptor set's bindings.
type SetDecl struct {
	Bindings []BindingDecl
}

// LayoutDecl is a declared pipeline layout: an ordered list of sets plus
// push-constant ranges, and an optional bindless texture-set layout
// appended as the last set.
type LayoutDecl struct {
	Sets           []SetDecl
	PushConstants  []vk.PushConstantRange
	BindlessLayout vk.DescriptorSetLayout // 0 if none
}

// PipelineLayout is the compiled VkPipelineLayout plus its per-set
// VkDescriptorSetLayouts and a prewarmed DescriptorPool (spec.md §4.5
// items 6-7).
type PipelineLayout struct {
	cmds   *vk.Commands
	device vk.Device

	handle      vk.PipelineLayout
	setLayouts  []vk.DescriptorSetLayout
	ownedLayout []bool // false for the appended bindless layout, which the caller owns
	pool        *DescriptorPool
}

// Handle returns the underlying VkPipelineLayout.
func (l *PipelineLayout) Handle() vk.PipelineLayout { return l.handle }

// SetLayouts returns the per-set VkDescriptorSetLayouts, in declaration
// order, with the bindless layout (if any) last.
func (l *PipelineLayout) SetLayouts() []vk.DescriptorSetLayout { return l.setLayouts }

// Pool returns the prewarmed DescriptorPool sized for this layout.
func (l *PipelineLayout) Pool() *DescriptorPool { return l.pool }

// mergePushConstants merges ranges per shader stage, per spec.md §4.5
// item 6 ("push-constant ranges are merged per shader stage"): ranges
// sharing an identical stage mask are combined into the widest
// [min(offset), max(offset+size)) span.
func mergePushConstants(ranges []vk.PushConstantRange) []vk.PushConstantRange {
	byStage := map[vk.ShaderStageFlags]vk.PushConstantRange{}
	order := []vk.ShaderStageFlags{}
	for _, r := range ranges {
		cur, ok := byStage[r.StageFlags]
		if !ok {
			byStage[r.StageFlags] = r
			order = append(order, r.StageFlags)
			continue
		}
		lo := r.Offset
		if cur.Offset < lo {
			lo = cur.Offset
		}
		hi := r.Offset + r.Size
		if cur.Offset+cur.Size > hi {
			hi = cur.Offset + cur.Size
		}
		cur.Offset = lo
		cur.Size = hi - lo
		byStage[r.StageFlags] = cur
	}
	out := make([]vk.PushConstantRange, len(order))
	for i, s := range order {
		out[i] = byStage[s]
	}
	return out
}

// BuildPipelineLayout compiles decl into a VkPipelineLayout with one
// VkDescriptorSetLayout per declared set (plus the bindless layout
// appended last, when decl.BindlessLayout is non-zero), merged push-
// constant ranges, and a DescriptorPool prewarmed to the layout's total
// binding counts (spec.md §4.5 items 6-7).
func BuildPipelineLayout(cmds *vk.Commands, device vk.Device, decl LayoutDecl) (*PipelineLayout, error) {
	setLayouts := make([]vk.DescriptorSetLayout, 0, len(decl.Sets)+1)
	owned := make([]bool, 0, len(decl.Sets)+1)
	counts := DescriptorCounts{}

	for _, set := range decl.Sets {
		bindings := make([]vk.DescriptorSetLayoutBinding, len(set.Bindings))
		flags := uint32(0)
		for i, b := range set.Bindings {
			bindings[i] = vk.DescriptorSetLayoutBinding{
				Binding:         b.Binding,
				DescriptorType:  b.Type,
				DescriptorCount: b.DescriptorCount,
				StageFlags:      b.Stages,
			}
			if b.UpdateAfterBind {
				flags = vk.DescriptorSetLayoutCreateUpdateAfterBindPoolBit
			}
			counts.Add(b.Type, b.DescriptorCount)
		}
		info := vk.DescriptorSetLayoutCreateInfo{
			SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
			Flags:        flags,
			BindingCount: uint32(len(bindings)),
		}
		if len(bindings) > 0 {
			info.PBindings = &bindings[0]
		}
		handle, r := cmds.CreateDescriptorSetLayout(device, &info, nil)
		if r != vk.Success {
			destroySetLayouts(cmds, device, setLayouts, owned)
			return nil, fmt.Errorf("renderpass: vkCreateDescriptorSetLayout failed: %d", r)
		}
		setLayouts = append(setLayouts, handle)
		owned = append(owned, true)
	}

	if decl.BindlessLayout != 0 {
		setLayouts = append(setLayouts, decl.BindlessLayout)
		owned = append(owned, false)
	}

	pushConstants := mergePushConstants(decl.PushConstants)
	info := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         uint32(len(setLayouts)),
		PushConstantRangeCount: uint32(len(pushConstants)),
	}
	if len(setLayouts) > 0 {
		info.PSetLayouts = &setLayouts[0]
	}
	if len(pushConstants) > 0 {
		info.PPushConstantRanges = &pushConstants[0]
	}
	handle, r := cmds.CreatePipelineLayout(device, &info, nil)
	if r != vk.Success {
		destroySetLayouts(cmds, device, setLayouts, owned)
		return nil, fmt.Errorf("renderpass: vkCreatePipelineLayout failed: %d", r)
	}

	maxSets := uint32(len(decl.Sets))
	if maxSets == 0 {
		maxSets = 1
	}
	pool, err := newDescriptorPool(cmds, device, counts, maxSets)
	if err != nil {
		cmds.DestroyPipelineLayout(device, handle, nil)
		destroySetLayouts(cmds, device, setLayouts, owned)
		return nil, err
	}

	return &PipelineLayout{
		cmds: cmds, device: device,
		handle: handle, setLayouts: setLayouts, ownedLayout: owned, pool: pool,
	}, nil
}

func destroySetLayouts(cmds *vk.Commands, device vk.Device, layouts []vk.DescriptorSetLayout, owned []bool) {
	for i, l := range layouts {
		if i < len(owned) && owned[i] && l != 0 {
			cmds.DestroyDescriptorSetLayout(device, l, nil)
		}
	}
}

// Destroy releases the pipeline layout, its owned set layouts (not the
// appended bindless layout, which the caller of BuildPipelineLayout still
// owns), and its descriptor pool.
func (l *PipelineLayout) Destroy() {
	if l.pool != nil {
		l.pool.Destroy()
	}
	destroySetLayouts(l.cmds, l.device, l.setLayouts, l.ownedLayout)
	if l.handle != 0 {
		l.cmds.DestroyPipelineLayout(l.device, l.handle, nil)
		l.handle = 0
	}
}

// DescriptorCounts tallies descriptor type→count, used to size a pool.
// Grounded on the teacher's hal/vulkan/descriptor.go DescriptorCounts.
type DescriptorCounts struct {
	counts map[uint32]uint32
}

// Add records n descriptors of the given type.
func (c *DescriptorCounts) Add(descriptorType uint32, n uint32) {
	if c.counts == nil {
		c.counts = map[uint32]uint32{}
	}
	c.counts[descriptorType] += n
}

// PoolSizes returns one VkDescriptorPoolSize per distinct type, sorted by
// type (spec.md §4.5 item 7: "pool sizes are sorted by type").
func (c DescriptorCounts) PoolSizes() []vk.DescriptorPoolSize {
	types := make([]uint32, 0, len(c.counts))
	for t := range c.counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	out := make([]vk.DescriptorPoolSize, len(types))
	for i, t := range types {
		out[i] = vk.DescriptorPoolSize{Type: t, DescriptorCount: c.counts[t]}
	}
	return out
}

// DescriptorPool wraps one prewarmed VkDescriptorPool sized for a single
// PipelineLayout.
type DescriptorPool struct {
	cmds   *vk.Commands
	device vk.Device
	handle vk.DescriptorPool
}

// NewDescriptorPoolForCounts builds a DescriptorPool sized for an
// explicit DescriptorCounts tally, for callers (like texset.New) that
// size a pool directly rather than through BuildPipelineLayout.
func NewDescriptorPoolForCounts(cmds *vk.Commands, device vk.Device, counts DescriptorCounts, maxSets uint32) (*DescriptorPool, error) {
	return newDescriptorPool(cmds, device, counts, maxSets)
}

func newDescriptorPool(cmds *vk.Commands, device vk.Device, counts DescriptorCounts, maxSets uint32) (*DescriptorPool, error) {
	sizes := counts.PoolSizes()
	if len(sizes) == 0 {
		sizes = []vk.DescriptorPoolSize{{Type: vk.DescriptorTypeUniformBuffer, DescriptorCount: 1}}
	}
	info := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		Flags:         vk.DescriptorPoolCreateUpdateAfterBindBit | vk.DescriptorPoolCreateFreeDescriptorSetBit,
		MaxSets:       maxSets,
		PoolSizeCount: uint32(len(sizes)),
		PPoolSizes:    &sizes[0],
	}
	handle, r := cmds.CreateDescriptorPool(device, &info, nil)
	if r != vk.Success {
		return nil, fmt.Errorf("renderpass: vkCreateDescriptorPool failed: %d", r)
	}
	return &DescriptorPool{cmds: cmds, device: device, handle: handle}, nil
}

// Handle returns the underlying VkDescriptorPool.
func (p *DescriptorPool) Handle() vk.DescriptorPool { return p.handle }

// Allocate allocates one descriptor set per layout.
func (p *DescriptorPool) Allocate(layouts []vk.DescriptorSetLayout) ([]vk.DescriptorSet, error) {
	info := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     p.handle,
		DescriptorSetCount: uint32(len(layouts)),
	}
	if len(layouts) > 0 {
		info.PSetLayouts = &layouts[0]
	}
	sets, r := p.cmds.AllocateDescriptorSets(p.device, &info)
	if r != vk.Success {
		return nil, fmt.Errorf("renderpass: vkAllocateDescriptorSets failed: %d", r)
	}
	return sets, nil
}

// Destroy releases the underlying VkDescriptorPool.
func (p *DescriptorPool) Destroy() {
	if p.handle != 0 {
		p.cmds.DestroyDescriptorPool(p.device, p.handle, nil)
		p.handle = 0
	}
}

// DescriptorBinding tracks, for one (set, binding) pair holding an array
// of image descriptors, the last resource handle written at each array
// index, so repeated writes of the same value are suppressed and runs of
// unchanged indices collapse the emitted VkWriteDescriptorSets (spec.md
// §4.5 "Descriptor writing", testable property 3, scenario S4).
type DescriptorBinding struct {
	set     vk.DescriptorSet
	binding uint32
	descType uint32

	bound []vk.DescriptorImageInfo
	dirty map[int]bool
}

// NewDescriptorBinding creates a binding tracker for capacity descriptor
// array slots, all initially unbound.
func NewDescriptorBinding(set vk.DescriptorSet, binding uint32, descType uint32, capacity int) *DescriptorBinding {
	return &DescriptorBinding{
		set: set, binding: binding, descType: descType,
		bound: make([]vk.DescriptorImageInfo, capacity),
		dirty: map[int]bool{},
	}
}

// Get returns the resource currently bound at index i.
func (d *DescriptorBinding) Get(i int) vk.DescriptorImageInfo { return d.bound[i] }

// Set records that index i should hold info, marking it dirty only if the
// value actually differs from what is already bound (testable property 3:
// two successive writes of the same value yield zero emitted writes).
func (d *DescriptorBinding) Set(i int, info vk.DescriptorImageInfo) {
	if d.bound[i] == info {
		return
	}
	d.bound[i] = info
	d.dirty[i] = true
}

// EnumerateDirty returns the sorted list of indices queued for a write
// since the last Flush call (spec.md §4.5 "enumerateDirtyDescriptors").
func (d *DescriptorBinding) EnumerateDirty() []int {
	out := make([]int, 0, len(d.dirty))
	for i := range d.dirty {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Flush builds the minimal set of VkWriteDescriptorSets covering every
// dirty index, coalescing contiguous runs into a single write whose
// DescriptorCount spans the run (spec.md §4.5: "collapsed into fewer
// VkWriteDescriptorSets by advancing dstArrayElement across gaps").
// Clears the dirty set on return.
func (d *DescriptorBinding) Flush() []vk.WriteDescriptorSet {
	indices := d.EnumerateDirty()
	d.dirty = map[int]bool{}
	if len(indices) == 0 {
		return nil
	}

	var writes []vk.WriteDescriptorSet
	runStart := indices[0]
	runEnd := indices[0]
	flushRun := func() {
		count := runEnd - runStart + 1
		infos := make([]vk.DescriptorImageInfo, count)
		copy(infos, d.bound[runStart:runEnd+1])
		writes = append(writes, vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          d.set,
			DstBinding:      d.binding,
			DstArrayElement: uint32(runStart),
			DescriptorCount: uint32(count),
			DescriptorType:  d.descType,
			PImageInfo:      &infos[0],
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
