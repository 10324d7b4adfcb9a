package frame

import (
	"fmt"

	"github.com/kestrelgpu/vkrt/arena"
	"github.com/kestrelgpu/vkrt/command"
	"github.com/kestrelgpu/vkrt/gpusync"
	"github.com/kestrelgpu/vkrt/queue"
	"github.com/kestrelgpu/vkrt/renderpass"
	"github.com/kestrelgpu/vkrt/rtlog"
	"github.com/kestrelgpu/vkrt/uuidkey"
	"github.com/kestrelgpu/vkrt/vk"
)

// PassKind is the class of queue operation a pass performs, determining
// which vk.Commands subset its recording closure may call and which
// DeviceQueueFamily role it needs acquiring from (spec.md §6: "passes
// (graphics/compute/transfer/generic)").
type PassKind int

const (
	PassGraphics PassKind = iota
	PassCompute
	PassTransfer
	PassGeneric
)

func (k PassKind) Ops() queue.Ops {
	switch k {
	case PassGraphics:
		return queue.OpsGraphics
	case PassCompute:
		return queue.OpsCompute
	case PassTransfer:
		return queue.OpsTransfer
	default:
		return queue.OpsGraphics
	}
}

// PassDecl is a compiled queue's declared pass: which attachments it
// consumes/produces, its render-pass-compiler data (Graphics only), and a
// recording callback (spec.md §6 "an optional commands callback").
type PassDecl struct {
	Name   string
	Kind   PassKind
	Inputs []*AttachmentDecl
	// Outputs lists the attachments this pass produces; a topological
	// walk of a CompiledQueue makes a pass eligible once all of Inputs'
	// handles for the current frame have signaled Ready.
	Outputs []*AttachmentDecl

	RenderPass *renderpass.RenderPass // nil for Compute/Transfer/Generic
	Layout     *renderpass.PipelineLayout

	// Record is invoked inside renderpass.Perform's body callback once
	// the pass's DeviceQueue, CommandPool, and (for Graphics) framebuffer
	// are ready.
	Record func(h *PassHandle, cb *command.Buffer)
}

// PassHandle is one frame's live instance of a PassDecl: spec.md §4.6
// item 2-3 ("create its PassHandle, call prepare... acquire a DeviceQueue
// of the pass's required class; submit with a freshly-acquired Fence").
type PassHandle struct {
	ID   arena.PassHandleID
	UUID uuidkey.Key

	Decl *PassDecl

	Inputs  []*AttachmentHandle
	Outputs []*AttachmentHandle

	Done *DependencyEvent

	recorded vk.CommandBuffer
	q        *queue.DeviceQueue
	pool     *command.Pool
	err      error
}

// AssignQueue installs the DeviceQueue the Loop acquired for this pass,
// prior to calling Prepare.
func (h *PassHandle) AssignQueue(q *queue.DeviceQueue) { h.q = q }

// Valid reports whether this pass's owning FrameHandle is still alive,
// satisfying queue.Owner so a PassHandle can itself be registered as an
// async acquirer on a DeviceQueueFamily (spec.md §4.3 "acquireQueue").
func (h *PassHandle) Valid() bool {
	signaled, _ := h.Done.Signaled()
	return !signaled
}

// barrierSources flattens the enumerated backing objects of a set of
// attachment handles into renderpass.BarrierSource values.
func barrierSources(handles []*AttachmentHandle) []renderpass.BarrierSource {
	var out []renderpass.BarrierSource
	for _, h := range handles {
		out = append(out, h.EnumerateObjects()...)
	}
	return out
}

// Prepare records this pass's command buffer: gathers pending barriers
// from its input attachments, runs the declaration's Record callback
// (which binds pipelines/descriptors and issues draw/dispatch/copy
// commands), and gathers post-pass barriers from its output attachments
// for any that hand off to a different queue family (spec.md §4.5 "Pass
// execution").
func (h *PassHandle) Prepare(cmds *vk.Commands, device vk.Device, portabilityMode bool) error {
	for _, in := range h.Inputs {
		if err := in.Err(); err != nil {
			h.err = fmt.Errorf("frame: pass %q: input %q failed: %w", h.Decl.Name, in.Decl.Name, err)
			return h.err
		}
	}

	pool, err := h.q.AcquirePool(cmds, device, portabilityMode)
	if err != nil {
		h.err = fmt.Errorf("frame: pass %q: acquiring command pool: %w", h.Decl.Name, err)
		return h.err
	}
	h.pool = pool

	cb, err := pool.RecordBuffer(vk.CommandBufferUsageOneTimeSubmitBit, vk.CommandBufferLevelPrimary, func(cb *command.Buffer) bool {
		renderpass.Perform(cb, barrierSources(h.Inputs), func(cb *command.Buffer) {
			if h.Decl.Record != nil {
				h.Decl.Record(h, cb)
			}
		}, barrierSources(h.Outputs))
		return true
	})
	if err != nil {
		h.err = fmt.Errorf("frame: pass %q: recording: %w", h.Decl.Name, err)
		return h.err
	}
	h.recorded = cb.Handle()
	return nil
}

// Submit issues the recorded buffer on this pass's acquired queue via
// queue.DeviceQueue.Submit, then registers a fence release callback that
// returns the pool, releases the queue, and marks this pass's Done event
// and every output attachment's Ready event with the outcome (spec.md
// §4.6 item 3's "completion chain that marks output attachments ready and
// frees the pass's resources on signal").
func (h *PassHandle) Submit(cmds *vk.Commands, device vk.Device, sync queue.SyncSet, fence *gpusync.Fence, idleFlags queue.IdleFlags) error {
	if h.err != nil {
		SignalFailure(h)
		return h.err
	}

	if err := h.q.Submit(cmds, device, sync, []vk.CommandBuffer{h.recorded}, fence, idleFlags); err != nil {
		h.err = fmt.Errorf("frame: pass %q: submit: %w", h.Decl.Name, err)
		SignalFailure(h)
		return h.err
	}

	q := h.q
	pool := h.pool
	fence.OnRelease(func() {
		_ = pool.Reset(false)
		_ = q.ReleasePool(pool, false)
		q.Family().Release(q)
		success := h.err == nil
		h.Done.Signal(success)
		for _, out := range h.Outputs {
			out.Ready.Signal(success)
		}
	})
	return nil
}

// SignalFailure marks this pass and its declared outputs as failed
// without ever submitting, per spec.md §7's frame-level error policy
// ("prepare/submit failures flip the FrameHandle's valid flag... bubble
// success=false through the completion chain and dependency events"). The
// pass's UUID is logged alongside its error so a failure can be traced
// back to this specific pass instance across a log stream shared by many
// concurrent frames.
func SignalFailure(h *PassHandle) {
	rtlog.Logger().Warn("frame: pass failed", "pass", h.Decl.Name, "uuid", h.UUID, "error", h.err)
	h.Done.Signal(false)
	for _, out := range h.Outputs {
		out.Ready.Signal(false)
	}
}

// Err returns the error, if any, this pass's Prepare/Submit encountered.
func (h *PassHandle) Err() error { return h.err }
