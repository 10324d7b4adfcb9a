package frame

import (
	"testing"

	"github.com/kestrelgpu/vkrt/arena"
)

func TestCompiledQueueTopologicalOrder(t *testing.T) {
	colorAttachment := &AttachmentDecl{Name: "color", Kind: AttachmentImage}
	depthAttachment := &AttachmentDecl{Name: "depth", Kind: AttachmentImage}
	uiAttachment := &AttachmentDecl{Name: "ui", Kind: AttachmentImage}

	geometry := &PassDecl{Name: "geometry", Kind: PassGraphics, Outputs: []*AttachmentDecl{colorAttachment, depthAttachment}}
	overlay := &PassDecl{Name: "overlay", Kind: PassGraphics, Inputs: []*AttachmentDecl{colorAttachment}, Outputs: []*AttachmentDecl{uiAttachment}}

	q := NewCompiledQueue(arena.CompiledQueueID{}, []*AttachmentDecl{colorAttachment, depthAttachment, uiAttachment}, []*PassDecl{overlay, geometry})

	order := q.TopologicalOrder()
	if len(order) != 2 {
		t.Fatalf("want 2 passes, got %d", len(order))
	}
	if order[0] != geometry || order[1] != overlay {
		t.Fatalf("want [geometry overlay], got [%s %s]", order[0].Name, order[1].Name)
	}
}

func TestCompiledQueueTopologicalOrderIsStableForIndependentPasses(t *testing.T) {
	a := &AttachmentDecl{Name: "a"}
	b := &AttachmentDecl{Name: "b"}
	passA := &PassDecl{Name: "passA", Outputs: []*AttachmentDecl{a}}
	passB := &PassDecl{Name: "passB", Outputs: []*AttachmentDecl{b}}

	q := NewCompiledQueue(arena.CompiledQueueID{}, []*AttachmentDecl{a, b}, []*PassDecl{passA, passB})
	order := q.TopologicalOrder()
	if order[0] != passA || order[1] != passB {
		t.Fatalf("want declaration order preserved for independent passes, got [%s %s]", order[0].Name, order[1].Name)
	}
}

// TestSetCompiledIdempotent matches spec.md §8 property 8: calling
// setCompiled twice has the same effect as once.
func TestSetCompiledIdempotent(t *testing.T) {
	q := NewCompiledQueue(arena.CompiledQueueID{}, nil, nil)
	q.SetCompiled()
	q.SetCompiled()
	if !q.Compiled() {
		t.Fatalf("want compiled=true")
	}
}
