package frame

import "github.com/kestrelgpu/vkrt/uuidkey"

// FrameRequest is the external input surface spec.md §6 describes: a
// compiled queue to execute, an opaque input blob per attachment that
// declares HasInput, and a list of events to signal once the frame
// completes.
type FrameRequest struct {
	Queue *CompiledQueue

	// Inputs maps an attachment declaration to the blob its SubmitInput
	// capability should consume.
	Inputs map[*AttachmentDecl]any

	// SignalOnComplete is signaled with the frame's overall success bit
	// once every pass has completed (spec.md §6 "a signal-dependency
	// list").
	SignalOnComplete []*DependencyEvent

	// WaitFor gates the frame's first pass from recording until every
	// listed event has signaled (spec.md §3.2 invariant 6's DAG ordering
	// applied across frames).
	WaitFor []*DependencyEvent

	// PoolKey selects which of a DeviceFrameHandle's per-pool-key
	// DeviceMemoryPools transient allocations for this frame should draw
	// from (spec.md §4.6 item 4).
	PoolKey string

	// Complete is invoked once, off the Loop thread is not guaranteed,
	// with the frame's overall success bit and its FrameHandle's UUID
	// (spec.md §6 "Frame completion callback with success bit"), so a
	// caller that captured the UUID at submission time can match this
	// callback back to the frame it belongs to.
	Complete func(success bool, uuid uuidkey.Key)
}
