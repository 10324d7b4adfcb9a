package frame

import (
	"github.com/kestrelgpu/vkrt/arena"
)

// CompiledQueue is the DAG of passes with resolved dependencies the
// glossary calls a "compiled queue": attachments and passes declared
// once, reused across every FrameHandle submitted against it (spec.md §6
// "Input surface... A compiled render-queue DAG").
type CompiledQueue struct {
	ID arena.CompiledQueueID

	Attachments []*AttachmentDecl
	Passes      []*PassDecl

	compiled bool
}

// NewCompiledQueue builds a CompiledQueue from its declared attachments
// and passes. The DAG's edges are implicit: pass P depends on pass Q iff
// some attachment in P.Inputs appears in Q.Outputs.
func NewCompiledQueue(id arena.CompiledQueueID, attachments []*AttachmentDecl, passes []*PassDecl) *CompiledQueue {
	return &CompiledQueue{ID: id, Attachments: attachments, Passes: passes}
}

// SetCompiled marks the queue ready for frame submission. Idempotent per
// spec.md testable property 8 ("calling setCompiled on a queue twice has
// the same effect as once").
func (q *CompiledQueue) SetCompiled() { q.compiled = true }

// Compiled reports whether SetCompiled has run.
func (q *CompiledQueue) Compiled() bool { return q.compiled }

// producerOf returns, for each attachment declaration, the pass that
// declares it as an output (nil if it has none — an externally-fed
// attachment).
func (q *CompiledQueue) producerOf(decl *AttachmentDecl) *PassDecl {
	for _, p := range q.Passes {
		for _, out := range p.Outputs {
			if out == decl {
				return p
			}
		}
	}
	return nil
}

// TopologicalOrder returns passes ordered so that every pass appears
// after all passes whose outputs it consumes (spec.md §5 "Within one
// FrameHandle, passes execute in the topological order of the compiled
// queue's dependency graph"). Passes sharing no dependency edge keep
// their declaration-relative order, making the result deterministic.
func (q *CompiledQueue) TopologicalOrder() []*PassDecl {
	visited := make(map[*PassDecl]bool, len(q.Passes))
	order := make([]*PassDecl, 0, len(q.Passes))

	var visit func(p *PassDecl)
	visit = func(p *PassDecl) {
		if visited[p] {
			return
		}
		visited[p] = true
		for _, in := range p.Inputs {
			if producer := q.producerOf(in); producer != nil {
				visit(producer)
			}
		}
		order = append(order, p)
	}

	for _, p := range q.Passes {
		visit(p)
	}
	return order
}
