package subqueue

import (
	"fmt"

	"github.com/kestrelgpu/vkrt/command"
	"github.com/kestrelgpu/vkrt/frame"
	"github.com/kestrelgpu/vkrt/memory"
	"github.com/kestrelgpu/vkrt/object"
	"github.com/kestrelgpu/vkrt/vk"
)

// MeshId identifies one mesh's index object across compiled mesh sets, so
// a later compile can detect it was carried over unchanged.
type MeshId uint64

// MeshRange locates one mesh's bytes within a compiled MeshSet's two
// compacted buffers.
type MeshRange struct {
	IndexOffset, IndexSize   vk.DeviceSize
	VertexOffset, VertexSize vk.DeviceSize
}

// MeshEntry is one mesh the compiler should place into the next compacted
// set. CarryOver, when non-nil, copies this mesh's bytes buffer-to-buffer
// from the prior MeshSet's range instead of re-uploading IndexBytes and
// VertexBytes from host (spec.md §4.9: "when a mesh is carried over from a
// prior set... its data is copied buffer-to-buffer from the prior target
// rather than re-uploaded from host").
type MeshEntry struct {
	ID          MeshId
	IndexBytes  []byte
	VertexBytes []byte
	CarryOver   *MeshRange
}

// MeshSet is one compacted pair of device-local index/vertex buffers plus
// the byte range each compiled mesh landed at, so a later MeshCompiler run
// can carry entries over from it.
type MeshSet struct {
	IndexBuffer  *object.Buffer
	VertexBuffer *object.Buffer
	Ranges       map[MeshId]MeshRange
}

// Destroy releases both compacted buffers. The caller is responsible for
// returning their backing memory blocks to whatever pool allocated them.
func (s *MeshSet) Destroy(cmds *vk.Commands, device vk.Device) {
	if s.IndexBuffer != nil {
		s.IndexBuffer.Destroy(cmds, device)
	}
	if s.VertexBuffer != nil {
		s.VertexBuffer.Destroy(cmds, device)
	}
}

// MeshCompileRequest is the input blob a MeshCompiler's request attachment
// accepts: the mesh list for the next set, plus the prior set entries may
// carry over from.
type MeshCompileRequest struct {
	Entries []MeshEntry
	Prior   *MeshSet
}

// MeshCompiler compacts a render queue's mesh data into two device-local
// buffers per compiled set (spec.md §4.9 "MeshCompiler").
type MeshCompiler struct {
	tq *TransferQueue
}

// NewMeshCompiler builds a MeshCompiler that allocates and stages through
// tq.
func NewMeshCompiler(tq *TransferQueue) *MeshCompiler {
	return &MeshCompiler{tq: tq}
}

// Declare builds the mesh compiler's request/result attachment and pass
// pair: the request attachment accepts a MeshCompileRequest, and the
// result attachment's Data becomes a *MeshSet once Record runs.
func (mc *MeshCompiler) Declare() (request, result *frame.AttachmentDecl, pass *frame.PassDecl) {
	request = &frame.AttachmentDecl{
		Name:     "mesh-request",
		Kind:     frame.AttachmentGeneric,
		HasInput: true,
		Cap: frame.Capability{
			SubmitInput: func(h *frame.AttachmentHandle, data any) error {
				req, ok := data.(MeshCompileRequest)
				if !ok {
					return fmt.Errorf("subqueue: mesh-request attachment expects MeshCompileRequest, got %T", data)
				}
				h.Data = req
				return nil
			},
		},
	}
	result = &frame.AttachmentDecl{Name: "mesh-set", Kind: frame.AttachmentBuffer}

	pass = &frame.PassDecl{
		Name:    "mesh-compile",
		Kind:    frame.PassTransfer,
		Inputs:  []*frame.AttachmentDecl{request},
		Outputs: []*frame.AttachmentDecl{result},
		Record: func(h *frame.PassHandle, cb *command.Buffer) {
			mc.record(h, cb)
		},
	}
	return request, result, pass
}

func (mc *MeshCompiler) record(h *frame.PassHandle, cb *command.Buffer) {
	req, _ := h.Inputs[0].Data.(MeshCompileRequest)

	set, cleanup, err := mc.compile(cb, req)
	if err != nil {
		h.Outputs[0].Data = nil
		return
	}
	h.Outputs[0].Data = set

	if len(cleanup) > 0 {
		h.Done.OnSignal(func(bool) {
			for _, s := range cleanup {
				s.buf.Destroy(mc.tq.cmds, mc.tq.device)
				mc.tq.stagingPool.Free(s.block)
			}
		})
	}
}

// layoutMeshRanges computes each entry's destination range within the two
// compacted buffers, in declaration order, and the two buffers' total
// sizes.
func layoutMeshRanges(entries []MeshEntry) (ranges []MeshRange, indexTotal, vertexTotal vk.DeviceSize) {
	ranges = make([]MeshRange, len(entries))
	for i, e := range entries {
		r := MeshRange{IndexOffset: indexTotal, VertexOffset: vertexTotal}
		if e.CarryOver != nil {
			r.IndexSize = e.CarryOver.IndexSize
			r.VertexSize = e.CarryOver.VertexSize
		} else {
			r.IndexSize = vk.DeviceSize(len(e.IndexBytes))
			r.VertexSize = vk.DeviceSize(len(e.VertexBytes))
		}
		ranges[i] = r
		indexTotal += r.IndexSize
		vertexTotal += r.VertexSize
	}
	return ranges, indexTotal, vertexTotal
}

func (mc *MeshCompiler) compile(cb *command.Buffer, req MeshCompileRequest) (*MeshSet, []stagingAlloc, error) {
	sizes, indexTotal, vertexTotal := layoutMeshRanges(req.Entries)

	set := &MeshSet{Ranges: map[MeshId]MeshRange{}}
	var cleanup []stagingAlloc

	if indexTotal > 0 {
		buf, err := mc.makeCompactBuffer(indexTotal, vk.BufferUsageIndexBufferBit)
		if err != nil {
			return nil, nil, fmt.Errorf("subqueue: mesh index buffer: %w", err)
		}
		set.IndexBuffer = buf
	}
	if vertexTotal > 0 {
		buf, err := mc.makeCompactBuffer(vertexTotal, vk.BufferUsageVertexBufferBit)
		if err != nil {
			return nil, nil, fmt.Errorf("subqueue: mesh vertex buffer: %w", err)
		}
		set.VertexBuffer = buf
	}

	for i, e := range req.Entries {
		r := sizes[i]
		set.Ranges[e.ID] = r

		if e.CarryOver != nil {
			if r.IndexSize > 0 && req.Prior != nil {
				cb.CopyBuffer(req.Prior.IndexBuffer.Handle(), set.IndexBuffer.Handle(), []vk.BufferCopy{
					{SrcOffset: e.CarryOver.IndexOffset, DstOffset: r.IndexOffset, Size: r.IndexSize},
				})
			}
			if r.VertexSize > 0 && req.Prior != nil {
				cb.CopyBuffer(req.Prior.VertexBuffer.Handle(), set.VertexBuffer.Handle(), []vk.BufferCopy{
					{SrcOffset: e.CarryOver.VertexOffset, DstOffset: r.VertexOffset, Size: r.VertexSize},
				})
			}
			continue
		}

		if r.IndexSize > 0 {
			staging, block, err := mc.tq.makeStaging(e.IndexBytes)
			if err != nil {
				return nil, nil, fmt.Errorf("subqueue: mesh index staging: %w", err)
			}
			cb.CopyBuffer(staging.Handle(), set.IndexBuffer.Handle(), []vk.BufferCopy{{DstOffset: r.IndexOffset, Size: r.IndexSize}})
			cleanup = append(cleanup, stagingAlloc{buf: staging, block: block})
		}
		if r.VertexSize > 0 {
			staging, block, err := mc.tq.makeStaging(e.VertexBytes)
			if err != nil {
				return nil, nil, fmt.Errorf("subqueue: mesh vertex staging: %w", err)
			}
			cb.CopyBuffer(staging.Handle(), set.VertexBuffer.Handle(), []vk.BufferCopy{{DstOffset: r.VertexOffset, Size: r.VertexSize}})
			cleanup = append(cleanup, stagingAlloc{buf: staging, block: block})
		}
	}

	return set, cleanup, nil
}

func (mc *MeshCompiler) makeCompactBuffer(size vk.DeviceSize, usage vk.BufferUsageFlags) (*object.Buffer, error) {
	info := &vk.BufferCreateInfo{
		SType: vk.StructureTypeBufferCreateInfo, Size: size,
		Usage: usage | vk.BufferUsageTransferDstBit, SharingMode: vk.SharingModeExclusive,
	}
	buf, err := object.NewBuffer(mc.tq.cmds, mc.tq.device, info)
	if err != nil {
		return nil, err
	}
	req := buf.MemoryRequirements(mc.tq.cmds, mc.tq.device)
	if err := mc.tq.bindIfNeeded(req, memory.DeviceLocal, false, func(b memory.MemBlock) error {
		return buf.BindMemory(mc.tq.cmds, mc.tq.device, b)
	}); err != nil {
		buf.Destroy(mc.tq.cmds, mc.tq.device)
		return nil, err
	}
	return buf, nil
}
