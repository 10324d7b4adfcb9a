package subqueue

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/kestrelgpu/vkrt/arena"
	"github.com/kestrelgpu/vkrt/frame"
)

func newTestCompiler() *RenderQueueCompiler {
	return &RenderQueueCompiler{ids: arena.NewIdentityManager[arena.CompiledQueueMarker]()}
}

// TestCompileAllSetsCompiledOnceAllTasksSucceed matches spec.md §4.9: the
// compiler calls setCompiled once every outstanding task succeeds.
func TestCompileAllSetsCompiledOnceAllTasksSucceed(t *testing.T) {
	rc := newTestCompiler()
	q := frame.NewCompiledQueue(arena.CompiledQueueID{}, nil, nil)

	var ran int32
	tasks := make([]CompileTask, 5)
	for i := range tasks {
		tasks[i] = func() error {
			atomic.AddInt32(&ran, 1)
			return nil
		}
	}

	if err := rc.CompileAll(q, tasks); err != nil {
		t.Fatalf("CompileAll: %v", err)
	}
	if !q.Compiled() {
		t.Fatal("want queue compiled after every task succeeds")
	}
	if ran != int32(len(tasks)) {
		t.Fatalf("want all %d tasks run, got %d", len(tasks), ran)
	}
	if q.ID.IsZero() {
		t.Fatal("want a non-zero compiled-queue ID allocated")
	}
}

// TestCompileAllLeavesQueueUncompiledOnError matches spec.md §4.9: a
// failing task aborts setCompiled and the error is reported.
func TestCompileAllLeavesQueueUncompiledOnError(t *testing.T) {
	rc := newTestCompiler()
	q := frame.NewCompiledQueue(arena.CompiledQueueID{}, nil, nil)

	wantErr := errors.New("boom")
	tasks := []CompileTask{
		func() error { return nil },
		func() error { return wantErr },
		func() error { return nil },
	}

	err := rc.CompileAll(q, tasks)
	if err == nil {
		t.Fatal("want an error when a task fails")
	}
	if q.Compiled() {
		t.Fatal("want queue left uncompiled after a task failure")
	}
}
