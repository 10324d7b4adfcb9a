// Package arena provides the generational-index ID scheme used by every
// owned entity in this runtime (Instance, Device, Buffer, Image, Fence,
// Semaphore, FrameHandle, PassHandle, AttachmentHandle, RenderPass,
// DescriptorPool, CompiledQueue, ...).
//
// Per the Design Notes in spec.md §9, the original's cyclic ownership
// between Device/Loop/FrameHandle (manually counted smart pointers plus a
// destroyer thread passing raw handles back to the device) is replaced
// here with arena-owned entities indexed by an opaque (index, epoch) ID:
// a FrameHandle holds a Device ID and a generation counter instead of a
// raw pointer, so destruction races become stale-epoch lookups instead of
// use-after-free.
package arena

import "fmt"

// Index is the slot component of an ID.
type Index = uint32

// Epoch is the generation component of an ID; incremented on every reuse
// of a slot so that a stale ID is detectably invalid rather than silently
// aliasing a newer occupant.
type Epoch = uint32

// Marker distinguishes ID[T] types at compile time so an InstanceID can
// never be passed where a BufferID is expected.
type Marker interface {
	marker()
}

// ID is a type-safe, generational identifier.
type ID[T Marker] struct {
	index Index
	epoch Epoch
}

// NewID constructs an ID from its components. Used by Storage and tests;
// application code obtains IDs from IdentityManager.Alloc.
func NewID[T Marker](index Index, epoch Epoch) ID[T] {
	return ID[T]{index: index, epoch: epoch}
}

// Index returns the slot component.
func (id ID[T]) Index() Index { return id.index }

// Epoch returns the generation component.
func (id ID[T]) Epoch() Epoch { return id.epoch }

// IsZero reports whether id is the zero value (never returned by Alloc,
// since epochs start at 1).
func (id ID[T]) IsZero() bool { return id.index == 0 && id.epoch == 0 }

func (id ID[T]) String() string { return fmt.Sprintf("ID(%d,%d)", id.index, id.epoch) }

// Marker types, one per owned entity kind in the runtime.

type (
	instanceMarker         struct{}
	deviceMarker           struct{}
	bufferMarker           struct{}
	imageMarker            struct{}
	imageViewMarker        struct{}
	samplerMarker          struct{}
	fenceMarker            struct{}
	semaphoreMarker        struct{}
	commandPoolMarker      struct{}
	descriptorPoolMarker   struct{}
	renderPassMarker       struct{}
	pipelineLayoutMarker   struct{}
	frameHandleMarker      struct{}
	passHandleMarker       struct{}
	attachmentHandleMarker struct{}
	compiledQueueMarker    struct{}
	textureSetMarker       struct{}
)

func (instanceMarker) marker()         {}
func (deviceMarker) marker()           {}
func (bufferMarker) marker()           {}
func (imageMarker) marker()            {}
func (imageViewMarker) marker()        {}
func (samplerMarker) marker()          {}
func (fenceMarker) marker()            {}
func (semaphoreMarker) marker()        {}
func (commandPoolMarker) marker()      {}
func (descriptorPoolMarker) marker()   {}
func (renderPassMarker) marker()       {}
func (pipelineLayoutMarker) marker()   {}
func (frameHandleMarker) marker()      {}
func (passHandleMarker) marker()       {}
func (attachmentHandleMarker) marker() {}
func (compiledQueueMarker) marker()    {}
func (textureSetMarker) marker()       {}

type (
	InstanceID         = ID[instanceMarker]
	DeviceID           = ID[deviceMarker]
	BufferID           = ID[bufferMarker]
	ImageID            = ID[imageMarker]
	ImageViewID        = ID[imageViewMarker]
	SamplerID          = ID[samplerMarker]
	FenceID            = ID[fenceMarker]
	SemaphoreID        = ID[semaphoreMarker]
	CommandPoolID      = ID[commandPoolMarker]
	DescriptorPoolID   = ID[descriptorPoolMarker]
	RenderPassID       = ID[renderPassMarker]
	PipelineLayoutID   = ID[pipelineLayoutMarker]
	FrameHandleID      = ID[frameHandleMarker]
	PassHandleID       = ID[passHandleMarker]
	AttachmentHandleID = ID[attachmentHandleMarker]
	CompiledQueueID    = ID[compiledQueueMarker]
	TextureSetID       = ID[textureSetMarker]
)

// Exported marker aliases, so packages outside arena can instantiate
// Storage[V, T] against the same marker a given *ID type uses (an ID alias
// only names ID[T], not T itself).
type (
	BufferMarker           = bufferMarker
	ImageMarker            = imageMarker
	ImageViewMarker        = imageViewMarker
	SamplerMarker          = samplerMarker
	FenceMarker            = fenceMarker
	SemaphoreMarker        = semaphoreMarker
	CommandPoolMarker      = commandPoolMarker
	DescriptorPoolMarker   = descriptorPoolMarker
	RenderPassMarker       = renderPassMarker
	PipelineLayoutMarker   = pipelineLayoutMarker
	FrameHandleMarker      = frameHandleMarker
	PassHandleMarker       = passHandleMarker
	AttachmentHandleMarker = attachmentHandleMarker
	CompiledQueueMarker    = compiledQueueMarker
	TextureSetMarker       = textureSetMarker
)
