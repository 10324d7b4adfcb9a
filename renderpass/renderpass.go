// Package renderpass implements the render-pass compiler spec.md §4.5
// describes: given a declarative QueuePassData (attachments, per-subpass
// references, and subpass dependencies), it produces a VkRenderPass (for
// Graphics passes), per-attachment clear values, an "alternative" render
// pass for off-screen capture of a PresentSrc attachment, a PipelineLayout
// per declared layout, and a prewarmed DescriptorPool.
//
// Grounded on the teacher's hal/vulkan/renderpass.go (RenderPassCache's
// AttachmentDescription/SubpassDescription assembly and create/destroy
// shape) and hal/vulkan/descriptor.go (DescriptorAllocator's pool-growth
// and Stats bookkeeping), generalized from the teacher's cache-by-key
// model to the spec's declarative compile-once-per-QueuePassData model.
package renderpass

import (
	"fmt"

	"github.com/kestrelgpu/vkrt/vk"
)

// FormatCategory classifies a pixel format for clear-value derivation
// (spec.md §4.5 item 3).
type FormatCategory int

const (
	CategoryColor FormatCategory = iota
	CategoryDepth
	CategoryDepthStencil
	CategoryStencil
)

func categoryOf(format vk.Format) FormatCategory {
	switch {
	case format.HasDepth() && format.HasStencil():
		return CategoryDepthStencil
	case format.HasDepth():
		return CategoryDepth
	case format.HasStencil():
		return CategoryStencil
	default:
		return CategoryColor
	}
}

// AttachmentDesc is one entry of a QueuePassData's declared attachments.
type AttachmentDesc struct {
	Format         vk.Format
	LoadOp         uint32
	StoreOp        uint32
	StencilLoadOp  uint32
	StencilStoreOp uint32
	InitialLayout  uint32
	FinalLayout    uint32
}

// SubpassRef is an attachment reference within one subpass.
type SubpassRef struct {
	Attachment uint32
	Layout     uint32
}

// SubpassDesc is one subpass's input/output/resolve/depth-stencil
// reference lists. Preserve is appended to by the compiler for any
// attachment whose lifetime spans this subpass without being touched by
// it (spec.md §4.5 item 5); callers need not populate it themselves.
type SubpassDesc struct {
	Input        []SubpassRef
	Color        []SubpassRef
	Resolve      []SubpassRef
	DepthStencil *SubpassRef
	Preserve     []uint32
}

// Dependency mirrors VkSubpassDependency.
type Dependency struct {
	SrcSubpass, DstSubpass uint32
	SrcStage, DstStage     vk.PipelineStageFlags
	SrcAccess, DstAccess   vk.AccessFlags
	ByRegion               bool
}

// QueuePassData is the declarative input the compiler consumes.
type QueuePassData struct {
	Attachments  []AttachmentDesc
	Subpasses    []SubpassDesc
	Dependencies []Dependency
}

// RenderPass is the compiled output: a VkRenderPass plus the clear values
// and alternative render pass spec.md §4.5 describes.
type RenderPass struct {
	cmds   *vk.Commands
	device vk.Device

	handle    vk.RenderPass
	alt       vk.RenderPass // 0 if no attachment has a PresentSrc final layout
	clears    []vk.ClearValue
	mayAlias  []bool
	attachCnt uint32
}

// Handle returns the primary VkRenderPass.
func (rp *RenderPass) Handle() vk.RenderPass { return rp.handle }

// AltHandle returns the alternative render pass (PresentSrc final layouts
// rewritten to TransferSrcOptimal), or 0 if none was needed.
func (rp *RenderPass) AltHandle() vk.RenderPass { return rp.alt }

// HasAlt reports whether an alternative render pass was built.
func (rp *RenderPass) HasAlt() bool { return rp.alt != 0 }

// Select returns the handle to bind for a frame: the alternative pass when
// the render target is not a swapchain image and one was built, the
// primary pass otherwise (spec.md §4.5 item 4).
func (rp *RenderPass) Select(targetIsSwapchainImage bool) vk.RenderPass {
	if !targetIsSwapchainImage && rp.alt != 0 {
		return rp.alt
	}
	return rp.handle
}

// ClearValues returns the per-attachment clear values derived at compile
// time from load-op and format category.
func (rp *RenderPass) ClearValues() []vk.ClearValue { return rp.clears }

// MayAlias reports whether attachment idx carries the mayAlias flag.
func (rp *RenderPass) MayAlias(idx int) bool { return rp.mayAlias[idx] }

func clearValueFor(a AttachmentDesc) vk.ClearValue {
	if a.LoadOp != vk.AttachmentLoadOpClear {
		return vk.ClearValue{}
	}
	switch categoryOf(a.Format) {
	case CategoryDepth, CategoryDepthStencil, CategoryStencil:
		// [0]=depth, reinterpreted as stencil in the low bits by callers
		// that need it; this module always clears to far-depth/zero-
		// stencil, matching every retrieved example's default clear.
		return vk.ClearValue{1.0, 0, 0, 0}
	default:
		return vk.ClearValue{0, 0, 0, 0}
	}
}

// usesInput/usesOutput report whether attachment idx appears in subpass
// s's input list, or in its color/depth-stencil (output) lists.
func usesInput(s SubpassDesc, idx uint32) bool {
	for _, r := range s.Input {
		if r.Attachment == idx {
			return true
		}
	}
	return false
}

func usesOutput(s SubpassDesc, idx uint32) bool {
	for _, r := range s.Color {
		if r.Attachment == idx {
			return true
		}
	}
	for _, r := range s.Resolve {
		if r.Attachment == idx {
			return true
		}
	}
	if s.DepthStencil != nil && s.DepthStencil.Attachment == idx {
		return true
	}
	return false
}

func touches(s SubpassDesc, idx uint32) bool {
	return usesInput(s, idx) || usesOutput(s, idx)
}

// computeMayAlias flags attachment idx when some subpass uses it as both
// an input and an output/depth-stencil reference (spec.md §4.5 item 2:
// InputOutput or InputDepthStencil usage).
func computeMayAlias(data QueuePassData) []bool {
	flags := make([]bool, len(data.Attachments))
	for _, s := range data.Subpasses {
		for _, in := range s.Input {
			if usesOutput(s, in.Attachment) {
				flags[in.Attachment] = true
			}
		}
	}
	return flags
}

// insertPreserved auto-inserts, into each intermediate subpass, any
// attachment whose lifetime spans it (touched by an earlier and a later
// subpass) but which that subpass itself neither reads nor writes
// (spec.md §4.5 item 5).
func insertPreserved(data *QueuePassData) {
	n := len(data.Subpasses)
	for idx := range data.Attachments {
		first, last := -1, -1
		for s := 0; s < n; s++ {
			if touches(data.Subpasses[s], uint32(idx)) {
				if first < 0 {
					first = s
				}
				last = s
			}
		}
		if first < 0 || first == last {
			continue
		}
		for s := first + 1; s < last; s++ {
			if !touches(data.Subpasses[s], uint32(idx)) {
				data.Subpasses[s].Preserve = append(data.Subpasses[s].Preserve, uint32(idx))
			}
		}
	}
}

func refsFor(refs []SubpassRef) *vk.AttachmentReference {
	if len(refs) == 0 {
		return nil
	}
	out := make([]vk.AttachmentReference, len(refs))
	for i, r := range refs {
		out[i] = vk.AttachmentReference{Attachment: r.Attachment, Layout: r.Layout}
	}
	return &out[0]
}

func buildAttachments(data QueuePassData, mayAlias []bool, finalLayoutOverride map[int]uint32) []vk.AttachmentDescription {
	out := make([]vk.AttachmentDescription, len(data.Attachments))
	for i, a := range data.Attachments {
		flags := uint32(0)
		if mayAlias[i] {
			flags = vk.AttachmentDescriptionMayAliasBit
		}
		finalLayout := a.FinalLayout
		if ov, ok := finalLayoutOverride[i]; ok {
			finalLayout = ov
		}
		out[i] = vk.AttachmentDescription{
			Flags:          flags,
			Format:         uint32(a.Format),
			Samples:        vk.SampleCount1Bit,
			LoadOp:         a.LoadOp,
			StoreOp:        a.StoreOp,
			StencilLoadOp:  a.StencilLoadOp,
			StencilStoreOp: a.StencilStoreOp,
			InitialLayout:  a.InitialLayout,
			FinalLayout:    finalLayout,
		}
	}
	return out
}

func buildSubpasses(data QueuePassData) []vk.SubpassDescription {
	out := make([]vk.SubpassDescription, len(data.Subpasses))
	for i, s := range data.Subpasses {
		sd := vk.SubpassDescription{
			PipelineBindPoint:    vk.PipelineBindPointGraphics,
			InputAttachmentCount: uint32(len(s.Input)),
			PInputAttachments:    refsFor(s.Input),
			ColorAttachmentCount: uint32(len(s.Color)),
			PColorAttachments:    refsFor(s.Color),
			PResolveAttachments:  refsFor(s.Resolve),
		}
		if s.DepthStencil != nil {
			ref := vk.AttachmentReference{Attachment: s.DepthStencil.Attachment, Layout: s.DepthStencil.Layout}
			sd.PDepthStencilAttachment = &ref
		}
		if len(s.Preserve) > 0 {
			preserve := append([]uint32(nil), s.Preserve...)
			sd.PreserveAttachmentCount = uint32(len(preserve))
			sd.PPreserveAttachments = &preserve[0]
		}
		out[i] = sd
	}
	return out
}

func buildDependencies(data QueuePassData) []vk.SubpassDependency {
	out := make([]vk.SubpassDependency, len(data.Dependencies))
	for i, d := range data.Dependencies {
		flags := uint32(0)
		if d.ByRegion {
			flags = vk.DependencyByRegionBit
		}
		out[i] = vk.SubpassDependency{
			SrcSubpass: d.SrcSubpass, DstSubpass: d.DstSubpass,
			SrcStageMask: d.SrcStage, DstStageMask: d.DstStage,
			SrcAccessMask: d.SrcAccess, DstAccessMask: d.DstAccess,
			DependencyFlags: flags,
		}
	}
	return out
}

func createPass(cmds *vk.Commands, device vk.Device, attachments []vk.AttachmentDescription, subpasses []vk.SubpassDescription, deps []vk.SubpassDependency) (vk.RenderPass, error) {
	info := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		SubpassCount:    uint32(len(subpasses)),
	}
	if len(attachments) > 0 {
		info.PAttachments = &attachments[0]
	}
	if len(subpasses) > 0 {
		info.PSubpasses = &subpasses[0]
	}
	if len(deps) > 0 {
		info.DependencyCount = uint32(len(deps))
		info.PDependencies = &deps[0]
	}
	handle, r := cmds.CreateRenderPass(device, &info, nil)
	if r != vk.Success {
		return 0, fmt.Errorf("renderpass: vkCreateRenderPass failed: %d", r)
	}
	return handle, nil
}

// Build compiles data into a RenderPass (spec.md §4.5). It always builds
// the alternative render pass when some attachment's final layout is
// PresentSrc, regardless of whether the current frame's target happens to
// be a swapchain image — see the Open Question decision recorded in
// DESIGN.md (an attachment's swapchain-ness is decided per frame, not per
// compile, so both variants must exist for the lifetime of the compiled
// queue).
func Build(cmds *vk.Commands, device vk.Device, data QueuePassData) (*RenderPass, error) {
	insertPreserved(&data)
	mayAlias := computeMayAlias(data)

	attachments := buildAttachments(data, mayAlias, nil)
	subpasses := buildSubpasses(data)
	deps := buildDependencies(data)

	handle, err := createPass(cmds, device, attachments, subpasses, deps)
	if err != nil {
		return nil, err
	}

	rp := &RenderPass{
		cmds: cmds, device: device,
		handle:    handle,
		mayAlias:  mayAlias,
		attachCnt: uint32(len(data.Attachments)),
	}

	altOverride := map[int]uint32{}
	needAlt := false
	for i, a := range data.Attachments {
		if a.FinalLayout == vk.ImageLayoutPresentSrcKHR {
			altOverride[i] = vk.ImageLayoutTransferSrcOptimal
			needAlt = true
		}
	}
	if needAlt {
		altAttachments := buildAttachments(data, mayAlias, altOverride)
		altHandle, err := createPass(cmds, device, altAttachments, subpasses, deps)
		if err != nil {
			cmds.DestroyRenderPass(device, handle, nil)
			return nil, err
		}
		rp.alt = altHandle
	}

	rp.clears = make([]vk.ClearValue, len(data.Attachments))
	for i, a := range data.Attachments {
		rp.clears[i] = clearValueFor(a)
	}

	return rp, nil
}

// Destroy releases both the primary and (if built) alternative VkRenderPass.
func (rp *RenderPass) Destroy() {
	if rp.handle != 0 {
		rp.cmds.DestroyRenderPass(rp.device, rp.handle, nil)
		rp.handle = 0
	}
	if rp.alt != 0 {
		rp.cmds.DestroyRenderPass(rp.device, rp.alt, nil)
		rp.alt = 0
	}
}
