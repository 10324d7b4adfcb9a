package device

import (
	"testing"

	"github.com/kestrelgpu/vkrt/object"
)

func TestRegistryInsertGetRemove(t *testing.T) {
	reg := newRegistry()
	buf := &object.Buffer{}

	id := reg.InsertBuffer(buf)
	got, ok := reg.Buffer(id)
	if !ok || got != buf {
		t.Fatal("expected to resolve inserted buffer")
	}

	reg.RemoveBuffer(id)
	if _, ok := reg.Buffer(id); ok {
		t.Fatal("expected removed buffer to no longer resolve")
	}
}

func TestDestroyWhenIdleRunsOnceWithoutFence(t *testing.T) {
	reg := newRegistry()
	calls := 0
	reg.DestroyWhenIdle(nil, func() { calls++ })
	if calls != 1 {
		t.Fatalf("expected immediate destroy to run exactly once, got %d", calls)
	}
}

func TestDrainRunsEachPendingDestroyOnce(t *testing.T) {
	reg := newRegistry()
	calls := 0
	entry := &pendingDestroy{fn: func() { calls++ }}
	reg.pending = append(reg.pending, entry)

	reg.drain()
	reg.drain()

	if calls != 1 {
		t.Fatalf("expected drain to fire each pending destroy exactly once, got %d", calls)
	}
}
