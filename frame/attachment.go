package frame

import (
	"github.com/kestrelgpu/vkrt/arena"
	"github.com/kestrelgpu/vkrt/command"
	"github.com/kestrelgpu/vkrt/renderpass"
	"github.com/kestrelgpu/vkrt/rtlog"
	"github.com/kestrelgpu/vkrt/uuidkey"
)

// AttachmentKind tags an AttachmentHandle with which of the three shapes
// spec.md §9's Design Notes calls out it is. Replaces the original's
// Attachment/AttachmentHandle base-plus-backend-plus-pass-type class
// hierarchy with a flat enum plus a capability record of function
// pointers, keyed on the tag rather than resolved through virtual calls.
type AttachmentKind int

const (
	AttachmentImage AttachmentKind = iota
	AttachmentBuffer
	AttachmentGeneric
)

func (k AttachmentKind) String() string {
	switch k {
	case AttachmentImage:
		return "Image"
	case AttachmentBuffer:
		return "Buffer"
	default:
		return "Generic"
	}
}

// Capability is the free-function table spec.md §9 prescribes in place of
// virtual overrides: {prepare, recordCommands, submitInput,
// enumerateDirty, enumerateObjects}. A nil field means that operation is a
// no-op for this kind (e.g. a Generic attachment has no backing objects to
// enumerate).
type Capability struct {
	// Prepare runs once input data has arrived (or immediately, if the
	// declaration carries no external input), building/binding whatever
	// backing resource the handle needs before its pass records.
	Prepare func(h *AttachmentHandle) error

	// RecordCommands records into cb any commands this attachment itself
	// must contribute before its pass body runs (e.g. a staging copy);
	// most attachment kinds leave this nil and let the pass body do all
	// recording.
	RecordCommands func(h *AttachmentHandle, cb *command.Buffer)

	// SubmitInput installs an external input blob, returning once this
	// handle's data is ready for Prepare to consume.
	SubmitInput func(h *AttachmentHandle, data any) error

	// EnumerateDirty reports which descriptor-array slots this attachment
	// dirtied since its last flush (spec.md §4.5 "enumerateDirtyDescriptors").
	EnumerateDirty func(h *AttachmentHandle) []int

	// EnumerateObjects returns the backing Vulkan-object wrappers a pass
	// should scan for pending cross-queue barriers (spec.md §4.5 "Pass
	// execution").
	EnumerateObjects func(h *AttachmentHandle) []renderpass.BarrierSource
}

// AttachmentDecl is one compiled-queue attachment declaration: its kind,
// capability table, and render-pass-compiler-facing pass data (spec.md
// §6 "attachments (image/buffer/generic) each with a frame-handle factory
// and usage declarations").
type AttachmentDecl struct {
	Name       string
	Kind       AttachmentKind
	Cap        Capability
	PassData   renderpass.AttachmentDesc
	HasInput   bool // true if this attachment expects an external SubmitInput blob
}

// AttachmentHandle is one frame's live instance of an AttachmentDecl:
// spec.md §3.1's FrameHandle owns one per declared attachment, tracking
// readiness via a DependencyEvent its pass waits on before recording.
type AttachmentHandle struct {
	ID   arena.AttachmentHandleID
	UUID uuidkey.Key

	Decl *AttachmentDecl

	// Ready fires once this handle's data has arrived and Prepare has run.
	Ready *DependencyEvent

	// Data holds whatever opaque input blob SubmitInput installed, and/or
	// whatever backing object(s) Prepare created; kind-specific code reads
	// and writes this through type assertions.
	Data any

	err error
}

// SubmitInput forwards to the declaration's capability, signaling Ready
// with success=false if either the capability call or a prior error has
// already doomed this handle.
func (h *AttachmentHandle) SubmitInput(data any) {
	if h.err != nil {
		h.Ready.Signal(false)
		return
	}
	if h.Decl.Cap.SubmitInput == nil {
		h.Ready.Signal(true)
		return
	}
	if err := h.Decl.Cap.SubmitInput(h, data); err != nil {
		h.err = err
		rtlog.Logger().Warn("frame: attachment input rejected", "attachment", h.Decl.Name, "uuid", h.UUID, "error", err)
		h.Ready.Signal(false)
		return
	}
	h.prepare()
}

// prepare runs the declaration's Prepare hook (if any is declared for
// this kind) and signals Ready with the outcome.
func (h *AttachmentHandle) prepare() {
	if h.Decl.Cap.Prepare != nil {
		if err := h.Decl.Cap.Prepare(h); err != nil {
			h.err = err
			rtlog.Logger().Warn("frame: attachment prepare failed", "attachment", h.Decl.Name, "uuid", h.UUID, "error", err)
			h.Ready.Signal(false)
			return
		}
	}
	h.Ready.Signal(true)
}

// Err returns the error, if any, that caused this handle's Ready event to
// signal failure.
func (h *AttachmentHandle) Err() error { return h.err }

// EnumerateDirty and EnumerateObjects forward to the declaration's
// capability table, tolerating a nil entry (spec.md §9: "cross-cutting
// behavior... stays in free functions keyed on the tag").
func (h *AttachmentHandle) EnumerateDirty() []int {
	if h.Decl.Cap.EnumerateDirty == nil {
		return nil
	}
	return h.Decl.Cap.EnumerateDirty(h)
}

func (h *AttachmentHandle) EnumerateObjects() []renderpass.BarrierSource {
	if h.Decl.Cap.EnumerateObjects == nil {
		return nil
	}
	return h.Decl.Cap.EnumerateObjects(h)
}
