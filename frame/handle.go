package frame

import (
	"sync"

	"github.com/kestrelgpu/vkrt/arena"
	"github.com/kestrelgpu/vkrt/device"
	"github.com/kestrelgpu/vkrt/memory"
	"github.com/kestrelgpu/vkrt/queue"
	"github.com/kestrelgpu/vkrt/rtlog"
	"github.com/kestrelgpu/vkrt/uuidkey"
	"github.com/kestrelgpu/vkrt/vk"
)

// roleFor maps a pass's operation class onto the device.Role its
// DeviceQueueFamily is acquired under (spec.md §4.6 item 3 "acquire a
// DeviceQueue of the pass's required class").
func roleFor(kind PassKind) device.Role {
	switch kind {
	case PassCompute:
		return device.RoleCompute
	case PassTransfer:
		return device.RoleTransfer
	default:
		return device.RoleGraphics
	}
}

// FrameHandle walks one CompiledQueue to completion: it creates an
// AttachmentHandle per declared attachment, feeds external inputs in,
// creates a PassHandle for each pass once its inputs are ready, and
// drives prepare/submit for each in turn (spec.md §4.6 "FrameHandle
// walks its compiled queue").
//
// Grounded on core/hub.go's per-frame walk of the original's render
// graph, replaced per spec.md §9's Design Notes with the DependencyEvent
// gate (event.go) instead of a manually sequenced callback chain threaded
// through smart-pointer retains.
type FrameHandle struct {
	ID   arena.FrameHandleID
	UUID uuidkey.Key

	loop *Loop
	req  FrameRequest

	attachments map[*AttachmentDecl]*AttachmentHandle
	passes      map[*PassDecl]*PassHandle

	mu        sync.Mutex
	remaining int
	success   bool
	done      bool
}

// newFrameHandle allocates a FrameHandle against loop and req, but does
// not begin walking until run is called.
func newFrameHandle(loop *Loop, req FrameRequest) *FrameHandle {
	fh := &FrameHandle{
		ID:          loop.frameIDs.Alloc(),
		UUID:        uuidkey.New(),
		loop:        loop,
		req:         req,
		attachments: make(map[*AttachmentDecl]*AttachmentHandle, len(req.Queue.Attachments)),
		passes:      make(map[*PassDecl]*PassHandle, len(req.Queue.Passes)),
		remaining:   len(req.Queue.Passes),
		success:     true,
	}
	return fh
}

// Valid reports whether this frame has not yet finished, satisfying
// queue.Owner so a FrameHandle-scoped acquire can be registered as a
// waiter that self-invalidates once the frame is abandoned.
func (fh *FrameHandle) Valid() bool {
	fh.mu.Lock()
	defer fh.mu.Unlock()
	return !fh.done
}

// Attachment returns the live AttachmentHandle for decl, if this frame's
// queue declares it.
func (fh *FrameHandle) Attachment(decl *AttachmentDecl) *AttachmentHandle {
	return fh.attachments[decl]
}

// run performs the full walk described at spec.md §4.6: wait for
// req.WaitFor, create every AttachmentHandle, submit external inputs or
// self-prepare attachments with no producing pass, then create and drive
// each PassHandle in topological order as its inputs become ready.
func (fh *FrameHandle) run() {
	WaitForAll(fh.req.WaitFor, func(gated bool) {
		if !gated {
			fh.finish(false)
			return
		}
		fh.walk()
	})
}

func (fh *FrameHandle) walk() {
	q := fh.req.Queue

	for _, decl := range q.Attachments {
		ah := &AttachmentHandle{
			ID:    fh.loop.attachIDs.Alloc(),
			UUID:  uuidkey.New(),
			Decl:  decl,
			Ready: NewDependencyEvent(),
		}
		fh.attachments[decl] = ah
	}

	for _, decl := range q.Attachments {
		ah := fh.attachments[decl]
		if q.producerOf(decl) != nil {
			// A pass produces this attachment; its Ready event fires from
			// that pass's completion chain (pass.go Submit).
			continue
		}
		if decl.HasInput {
			if data, ok := fh.req.Inputs[decl]; ok {
				ah.SubmitInput(data)
			} else {
				ah.SubmitInput(nil)
			}
			continue
		}
		ah.prepare()
	}

	order := q.TopologicalOrder()
	if len(order) == 0 {
		fh.finish(true)
		return
	}

	for _, decl := range order {
		fh.startPass(decl)
	}
}

// startPass builds the PassHandle for decl and registers it to begin
// recording once every input attachment signals Ready (spec.md §4.6 item
// 2 "when all its input attachments are ready, create its PassHandle").
func (fh *FrameHandle) startPass(decl *PassDecl) {
	inputs := make([]*AttachmentHandle, len(decl.Inputs))
	for i, in := range decl.Inputs {
		inputs[i] = fh.attachments[in]
	}
	outputs := make([]*AttachmentHandle, len(decl.Outputs))
	for i, out := range decl.Outputs {
		outputs[i] = fh.attachments[out]
	}

	ph := &PassHandle{
		ID:      fh.loop.passIDs.Alloc(),
		UUID:    uuidkey.New(),
		Decl:    decl,
		Inputs:  inputs,
		Outputs: outputs,
		Done:    NewDependencyEvent(),
	}
	fh.passes[decl] = ph

	ready := make([]*DependencyEvent, len(inputs))
	for i, in := range inputs {
		ready[i] = in.Ready
	}

	WaitForAll(ready, func(success bool) {
		if !success {
			SignalFailure(ph)
			return
		}
		fh.acquireAndRun(ph)
	})

	// Every outcome, success or failure, signals ph.Done exactly once, so
	// this is the one place the pass is accounted in passDone.
	ph.Done.OnSignal(func(success bool) {
		fh.passDone(success)
	})
}

// acquireAndRun acquires a DeviceQueue of ph's required class, then
// dispatches prepare/submit onto the Loop thread (spec.md §4.6 item 3).
func (fh *FrameHandle) acquireAndRun(ph *PassHandle) {
	family := fh.loop.dev.Family(roleFor(ph.Decl.Kind))
	family.AcquireAsync(ph, ph.Decl.Kind.Ops(), func(q *queue.DeviceQueue) {
		ph.AssignQueue(q)
		fh.loop.thread.CallAsync(func() {
			fh.recordAndSubmit(ph, q, family)
		})
	}, func() {
		SignalFailure(ph)
	})
}

func (fh *FrameHandle) recordAndSubmit(ph *PassHandle, q *queue.DeviceQueue, family *queue.DeviceQueueFamily) {
	cmds := fh.loop.dev.Commands()
	dev := fh.loop.dev.Handle()

	if err := ph.Prepare(cmds, dev, fh.loop.portabilityMode); err != nil {
		family.Release(q)
		SignalFailure(ph)
		return
	}

	fence, err := fh.loop.AcquireFence(FenceDefault)
	if err != nil {
		family.Release(q)
		SignalFailure(ph)
		return
	}

	// A failed Submit has already called SignalFailure(ph).
	if err := ph.Submit(cmds, dev, queue.SyncSet{}, fence, queue.IdleNone); err != nil {
		family.Release(q)
		fh.loop.ReleaseFence(FenceDefault, fence)
		return
	}

	fence.OnRelease(func() {
		fh.loop.ReleaseFence(FenceDefault, fence)
	})
}

// passDone accounts one pass's completion, ANDing success into the
// frame's overall outcome and calling finish once every pass declared by
// the queue has reported in.
func (fh *FrameHandle) passDone(success bool) {
	fh.mu.Lock()
	if !success {
		fh.success = false
	}
	fh.remaining--
	remaining := fh.remaining
	fh.mu.Unlock()

	if remaining == 0 {
		fh.finish(fh.success)
	}
}

// finish marks the frame done, signals SignalOnComplete, and invokes the
// completion callback, exactly once (spec.md §6 "Frame completion
// callback with success bit"). The frame's UUID is logged on failure so a
// caller tracing a FrameRequest end to end (e.g. via the UUID it captured
// in a completion callback) can match it back to this specific frame
// instance in a log stream interleaved across many concurrent frames.
func (fh *FrameHandle) finish(success bool) {
	fh.mu.Lock()
	if fh.done {
		fh.mu.Unlock()
		return
	}
	fh.done = true
	fh.mu.Unlock()

	if !success {
		rtlog.Logger().Warn("frame: frame failed", "uuid", fh.UUID)
	}

	fh.loop.frameIDs.Release(fh.ID)
	SignalAll(fh.req.SignalOnComplete, success)
	if fh.req.Complete != nil {
		fh.req.Complete(success, fh.UUID)
	}
}

// DeviceFrameHandle is a FrameHandle that additionally owns one
// DeviceMemoryPool per pool key for its transient allocations (spec.md
// §4.6 item 4 "A DeviceFrameHandle subclass also owns one
// DeviceMemoryPool per 'pool key' for transient allocations").
type DeviceFrameHandle struct {
	*FrameHandle

	mu    sync.Mutex
	pools map[string]*memory.DeviceMemoryPool
}

// newDeviceFrameHandle wraps a plain FrameHandle with pool-key scoped
// transient memory.
func newDeviceFrameHandle(loop *Loop, req FrameRequest) *DeviceFrameHandle {
	return &DeviceFrameHandle{
		FrameHandle: newFrameHandle(loop, req),
		pools:       make(map[string]*memory.DeviceMemoryPool),
	}
}

// Pool returns the DeviceMemoryPool for this frame's PoolKey, lazily
// creating one against alloc on first use.
func (d *DeviceFrameHandle) Pool(alloc *memory.Allocator, granularity, atomSize vk.DeviceSize) *memory.DeviceMemoryPool {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := d.req.PoolKey
	if p, ok := d.pools[key]; ok {
		return p
	}
	p := memory.NewDeviceMemoryPool(alloc, granularity, atomSize)
	d.pools[key] = p
	return p
}
