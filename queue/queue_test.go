package queue

import (
	"sync"
	"testing"

	"github.com/kestrelgpu/vkrt/instance"
	"github.com/kestrelgpu/vkrt/vk"
)

type testOwner struct {
	mu    sync.Mutex
	valid bool
}

func newOwner() *testOwner { return &testOwner{valid: true} }

func (o *testOwner) Valid() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.valid
}

func (o *testOwner) invalidate() {
	o.mu.Lock()
	o.valid = false
	o.mu.Unlock()
}

func newFamily(n int) *DeviceQueueFamily {
	handles := make([]vk.Queue, n)
	for i := range handles {
		handles[i] = vk.Queue(uintptr(i + 1))
	}
	props := instance.QueueFamily{Index: 0, Count: uint32(n), Flags: vk.QueueGraphicsBit | vk.QueueTransferBit, SupportsPresent: true}
	return New(0, props, handles)
}

func TestAcquireReleaseConservesCount(t *testing.T) {
	const n = 4
	f := newFamily(n)

	var acquired []*DeviceQueue
	for i := 0; i < n; i++ {
		o := newOwner()
		q := f.Acquire(o, OpsGraphics)
		if q == nil {
			t.Fatalf("acquire %d returned nil", i)
		}
		acquired = append(acquired, q)
	}

	if got := f.FreeLen(); got != 0 {
		t.Fatalf("expected 0 free queues, got %d", got)
	}
	if got := len(acquired) + f.FreeLen(); got != n {
		t.Fatalf("acquired+free = %d, want %d", got, n)
	}

	for _, q := range acquired {
		f.Release(q)
	}
	if got := f.FreeLen(); got != n {
		t.Fatalf("expected %d free queues after release, got %d", n, got)
	}
}

func TestAsyncAcquireGrantedOnRelease(t *testing.T) {
	f := newFamily(1)
	first := newOwner()
	q := f.Acquire(first, OpsGraphics)

	waiter := newOwner()
	granted := make(chan *DeviceQueue, 1)
	f.AcquireAsync(waiter, OpsGraphics, func(got *DeviceQueue) { granted <- got }, func() { t.Fatal("should not invalidate") })

	select {
	case <-granted:
		t.Fatal("waiter granted a queue before one was released")
	default:
	}

	f.Release(q)

	select {
	case got := <-granted:
		if got != q {
			t.Fatalf("expected waiter to receive the released queue")
		}
		if got.Owner() != Owner(waiter) {
			t.Fatalf("released queue owner not set to waiter")
		}
	default:
		t.Fatal("waiter was not granted the released queue")
	}
}

func TestInvalidWaiterSkippedInFIFOOrder(t *testing.T) {
	f := newFamily(1)
	first := newOwner()
	q := f.Acquire(first, OpsGraphics)

	stale := newOwner()
	staleInvalidated := false
	f.AcquireAsync(stale, OpsGraphics, func(*DeviceQueue) { t.Fatal("stale waiter must not be granted a queue") }, func() { staleInvalidated = true })
	stale.invalidate()

	next := newOwner()
	granted := make(chan *DeviceQueue, 1)
	f.AcquireAsync(next, OpsGraphics, func(got *DeviceQueue) { granted <- got }, func() { t.Fatal("should not invalidate") })

	f.Release(q)

	if !staleInvalidated {
		t.Fatal("expected stale waiter to be marked invalidated")
	}
	select {
	case got := <-granted:
		if got.Owner() != Owner(next) {
			t.Fatalf("expected the next waiter in FIFO order to be granted the queue")
		}
	default:
		t.Fatal("expected the next valid waiter to be granted the queue")
	}
}

func TestSupportsChecksOpsAgainstFlags(t *testing.T) {
	f := newFamily(1)
	if !f.Supports(OpsGraphics | OpsTransfer) {
		t.Fatal("expected graphics+transfer to be supported")
	}
	if f.Supports(OpsCompute) {
		t.Fatal("family with no compute bit should not support OpsCompute")
	}
}
