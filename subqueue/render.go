package subqueue

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/naga"

	"github.com/kestrelgpu/vkrt/arena"
	"github.com/kestrelgpu/vkrt/frame"
	"github.com/kestrelgpu/vkrt/object"
	"github.com/kestrelgpu/vkrt/renderpass"
	"github.com/kestrelgpu/vkrt/rtlog"
	"github.com/kestrelgpu/vkrt/vk"
)

// Program is one compiled shader: naga-generated SPIR-V loaded into a
// VkShaderModule, addressed by its entry point name for use in a
// PipelineShaderStageCreateInfo.
type Program struct {
	cmds   *vk.Commands
	device vk.Device

	module vk.ShaderModule
	stage  vk.ShaderStageFlags
	entry  string
}

// Handle returns the underlying VkShaderModule.
func (p *Program) Handle() vk.ShaderModule { return p.module }

// Destroy releases the VkShaderModule.
func (p *Program) Destroy() {
	if p.module != 0 {
		p.cmds.DestroyShaderModule(p.device, p.module, nil)
		p.module = 0
	}
}

// GraphicsPipelineDecl is the declarative input to compiling one graphics
// pipeline, covering the fixed-function state a material varies (spec.md
// §4.9's "pipelines depend on programs, programs on device").
type GraphicsPipelineDecl struct {
	Vertex   *Program
	Fragment *Program

	VertexBindings   []vk.VertexInputBindingDescription
	VertexAttributes []vk.VertexInputAttributeDescription
	Topology         uint32
	CullMode         uint32
	FrontFace        uint32
	DepthTest        bool
	DepthWrite       bool
	DepthCompareOp   uint32
	BlendAttachments []vk.PipelineColorBlendAttachmentState

	Layout     *renderpass.PipelineLayout
	RenderPass *renderpass.RenderPass
	Subpass    uint32
}

// ComputePipelineDecl is the declarative input to compiling one compute
// pipeline.
type ComputePipelineDecl struct {
	Compute *Program
	Layout  *renderpass.PipelineLayout
}

// RenderQueueCompiler compiles a user-supplied render queue's programs,
// render passes, and pipelines (spec.md §4.9 "RenderQueueCompiler"):
// SPIR-V modules are compiled and loaded, samplers declared on
// TextureSetLayouts are built in parallel, and pipelines are built once
// their dependent programs are ready. The compiler tracks outstanding
// tasks per queue and calls SetCompiled once all succeed.
type RenderQueueCompiler struct {
	cmds   *vk.Commands
	device vk.Device
	loop   *frame.Loop

	ids *arena.IdentityManager[arena.CompiledQueueMarker]
}

// New builds a RenderQueueCompiler bound to loop's device.
func New(cmds *vk.Commands, device vk.Device, loop *frame.Loop) *RenderQueueCompiler {
	return &RenderQueueCompiler{
		cmds: cmds, device: device, loop: loop,
		ids: arena.NewIdentityManager[arena.CompiledQueueMarker](),
	}
}

// CompileProgram translates wgsl to SPIR-V via naga and loads it as a
// VkShaderModule (spec.md §4.9 "programs (SPIR-V -> VkShaderModule)").
func (rc *RenderQueueCompiler) CompileProgram(wgsl string, stage vk.ShaderStageFlags, entry string) (*Program, error) {
	spirv, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("subqueue: naga compile failed: %w", err)
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("subqueue: spir-v byte count %d not a multiple of 4", len(spirv))
	}

	info := &vk.ShaderModuleCreateInfo{
		SType: vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uintptr(len(spirv)),
		PCode:    unsafe.Pointer(&spirv[0]),
	}
	module, r := rc.cmds.CreateShaderModule(rc.device, info, nil)
	if r != vk.Success {
		return nil, fmt.Errorf("subqueue: vkCreateShaderModule failed: %d", r)
	}
	return &Program{cmds: rc.cmds, device: rc.device, module: module, stage: stage, entry: entry}, nil
}

// CompileSamplers builds one object.Sampler per decl, in parallel (spec.md
// §4.9 "Samplers declared on TextureSetLayouts are compiled in parallel").
func (rc *RenderQueueCompiler) CompileSamplers(decls []*vk.SamplerCreateInfo) ([]*object.Sampler, error) {
	out := make([]*object.Sampler, len(decls))
	errs := make([]error, len(decls))

	var wg sync.WaitGroup
	for i, decl := range decls {
		wg.Add(1)
		go func(i int, decl *vk.SamplerCreateInfo) {
			defer wg.Done()
			s, err := object.NewSampler(rc.cmds, rc.device, decl)
			out[i] = s
			errs[i] = err
		}(i, decl)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("subqueue: sampler compile failed: %w", err)
		}
	}
	return out, nil
}

func entryName(p *Program) *byte {
	b := append([]byte(p.entry), 0)
	return &b[0]
}

func shaderStage(p *Program) vk.PipelineShaderStageCreateInfo {
	return vk.PipelineShaderStageCreateInfo{
		SType: vk.StructureTypePipelineShaderStageCreateInfo,
		Stage: p.stage, Module: p.module, PName: entryName(p),
	}
}

// CompileGraphicsPipeline builds one VkPipeline from decl.
func (rc *RenderQueueCompiler) CompileGraphicsPipeline(decl GraphicsPipelineDecl) (vk.Pipeline, error) {
	stages := []vk.PipelineShaderStageCreateInfo{shaderStage(decl.Vertex), shaderStage(decl.Fragment)}

	vertexInput := vk.PipelineVertexInputStateCreateInfo{SType: vk.StructureTypePipelineVertexInputStateCreateInfo}
	if len(decl.VertexBindings) > 0 {
		vertexInput.VertexBindingDescriptionCount = uint32(len(decl.VertexBindings))
		vertexInput.PVertexBindingDescriptions = &decl.VertexBindings[0]
	}
	if len(decl.VertexAttributes) > 0 {
		vertexInput.VertexAttributeDescriptionCount = uint32(len(decl.VertexAttributes))
		vertexInput.PVertexAttributeDescriptions = &decl.VertexAttributes[0]
	}

	topology := decl.Topology
	if topology == 0 {
		topology = vk.PrimitiveTopologyTriangleList
	}
	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType: vk.StructureTypePipelineInputAssemblyStateCreateInfo, Topology: topology,
	}

	// Viewport and scissor are set dynamically per frame (spec.md §4.6 item
	// 5: a pass binds viewport/scissor from the frame's render extent).
	viewportState := vk.PipelineViewportStateCreateInfo{
		SType: vk.StructureTypePipelineViewportStateCreateInfo, ViewportCount: 1, ScissorCount: 1,
	}
	dynamicStates := []uint32{vk.DynamicStateViewport, vk.DynamicStateScissor}
	dynamicState := vk.PipelineDynamicStateCreateInfo{
		SType: vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)), PDynamicStates: &dynamicStates[0],
	}

	cullMode := decl.CullMode
	rasterization := vk.PipelineRasterizationStateCreateInfo{
		SType: vk.StructureTypePipelineRasterizationStateCreateInfo,
		PolygonMode: vk.PolygonModeFill, CullMode: cullMode, FrontFace: decl.FrontFace, LineWidth: 1,
	}

	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType: vk.StructureTypePipelineMultisampleStateCreateInfo, RasterizationSamples: vk.SampleCount1Bit,
	}

	depthStencil := vk.PipelineDepthStencilStateCreateInfo{
		SType: vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthTestEnable: boolToBool32(decl.DepthTest), DepthWriteEnable: boolToBool32(decl.DepthWrite),
		DepthCompareOp: decl.DepthCompareOp,
	}

	blendAttachments := decl.BlendAttachments
	if len(blendAttachments) == 0 {
		blendAttachments = []vk.PipelineColorBlendAttachmentState{{ColorWriteMask: vk.ColorComponentAllBits}}
	}
	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType: vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: uint32(len(blendAttachments)), PAttachments: &blendAttachments[0],
	}

	info := vk.GraphicsPipelineCreateInfo{
		SType: vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount: uint32(len(stages)), PStages: &stages[0],
		PVertexInputState: &vertexInput, PInputAssemblyState: &inputAssembly,
		PViewportState: &viewportState, PRasterizationState: &rasterization,
		PMultisampleState: &multisample, PDepthStencilState: &depthStencil,
		PColorBlendState: &colorBlend, PDynamicState: &dynamicState,
		Layout: decl.Layout.Handle(), RenderPass: decl.RenderPass.Handle(), Subpass: decl.Subpass,
	}

	pipelines, r := rc.cmds.CreateGraphicsPipelines(rc.device, 0, unsafe.Pointer(&info), 1, nil)
	if r != vk.Success {
		return 0, fmt.Errorf("subqueue: vkCreateGraphicsPipelines failed: %d", r)
	}
	return pipelines[0], nil
}

// CompileComputePipeline builds one compute VkPipeline from decl.
func (rc *RenderQueueCompiler) CompileComputePipeline(decl ComputePipelineDecl) (vk.Pipeline, error) {
	info := vk.ComputePipelineCreateInfo{
		SType: vk.StructureTypeComputePipelineCreateInfo,
		Stage: shaderStage(decl.Compute), Layout: decl.Layout.Handle(),
	}
	pipelines, r := rc.cmds.CreateComputePipelines(rc.device, 0, unsafe.Pointer(&info), 1, nil)
	if r != vk.Success {
		return 0, fmt.Errorf("subqueue: vkCreateComputePipelines failed: %d", r)
	}
	return pipelines[0], nil
}

// CompileTask is one outstanding unit of compilation work the caller
// submits to CompileAll: programs, pipelines, and samplers all run behind
// this uniform shape so the compiler can track completion across mixed
// task kinds.
type CompileTask func() error

// CompileAll runs tasks concurrently, tracking outstanding tasks per
// queue; once every task succeeds it calls q.SetCompiled() (spec.md §4.9
// "the compiler tracks outstanding tasks per queue object and calls
// setCompiled once all succeed"). The first error aborts SetCompiled and
// is returned; already-launched tasks still run to completion.
func (rc *RenderQueueCompiler) CompileAll(q *frame.CompiledQueue, tasks []CompileTask) error {
	if q.ID.IsZero() {
		q.ID = rc.ids.Alloc()
	}

	remaining := int32(len(tasks))
	var errOnce sync.Once
	var firstErr error
	var wg sync.WaitGroup

	for _, task := range tasks {
		wg.Add(1)
		go func(task CompileTask) {
			defer wg.Done()
			if err := task(); err != nil {
				errOnce.Do(func() { firstErr = err })
			}
			left := atomic.AddInt32(&remaining, -1)
			rtlog.Logger().Debug("subqueue: render queue task finished", "remaining", left)
		}(task)
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	q.SetCompiled()
	return nil
}

// Destroy releases every render pass this queue's passes declared and
// drops their cached framebuffers from the Loop, then releases q's
// identity (spec.md §4.9 "a completion callback removes referenced
// pass/attachment IDs from the Loop's frame cache when the compiled queue
// is later destroyed").
func (rc *RenderQueueCompiler) Destroy(q *frame.CompiledQueue) {
	for _, p := range q.Passes {
		if p.RenderPass == nil {
			continue
		}
		rc.loop.InvalidateFramebuffersForRenderPass(p.RenderPass.Handle())
		if p.RenderPass.HasAlt() {
			rc.loop.InvalidateFramebuffersForRenderPass(p.RenderPass.AltHandle())
		}
		p.RenderPass.Destroy()
	}
	if !q.ID.IsZero() {
		rc.ids.Release(q.ID)
	}
	rtlog.Logger().Debug("subqueue: compiled queue destroyed", "passes", len(q.Passes))
}

func boolToBool32(b bool) vk.Bool32 {
	if b {
		return 1
	}
	return 0
}
