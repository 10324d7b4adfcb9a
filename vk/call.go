// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"strings"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// argKind identifies the goffi type descriptor a call argument needs.
// Vulkan's ABI only ever puts handles, small integers, floats and
// pointers in argument position, so a handful of kinds covers every
// entry point this package binds.
type argKind byte

const (
	kindU32 argKind = iota
	kindU64
	kindI32
	kindF32
	kindPtr
)

func (k argKind) descriptor() *types.TypeDescriptor {
	switch k {
	case kindU32:
		return types.UInt32TypeDescriptor
	case kindI32:
		return types.Int32TypeDescriptor
	case kindF32:
		return types.Float32TypeDescriptor
	case kindPtr:
		return types.PointerTypeDescriptor
	default:
		return types.UInt64TypeDescriptor
	}
}

// signatureCache holds one prepared CallInterface per distinct argument
// shape, keyed by kindsKey's string ("r:" or "v:" followed by one digit
// per argKind) so vkCreateBuffer and
// vkCreateFence (both handle,ptr,ptr,ptr) share a single CallInterface
// instead of each binding its own, mirroring the teacher's observation
// that Vulkan's ~700 entry points reduce to a few dozen real shapes.
type signatureCache struct {
	mu   sync.Mutex
	byKey map[string]*types.CallInterface
}

var signatures = signatureCache{byKey: make(map[string]*types.CallInterface)}

func kindsKey(returnsResult bool, kinds []argKind) string {
	var b strings.Builder
	if returnsResult {
		b.WriteString("r:")
	} else {
		b.WriteString("v:")
	}
	for _, k := range kinds {
		b.WriteByte(byte('0' + k))
	}
	return b.String()
}

func (c *signatureCache) get(returnsResult bool, kinds []argKind) (*types.CallInterface, error) {
	key := kindsKey(returnsResult, kinds)

	c.mu.Lock()
	defer c.mu.Unlock()

	if cif, ok := c.byKey[key]; ok {
		return cif, nil
	}

	descs := make([]*types.TypeDescriptor, len(kinds))
	for i, k := range kinds {
		descs[i] = k.descriptor()
	}

	ret := types.VoidTypeDescriptor
	if returnsResult {
		ret = types.Int32TypeDescriptor
	}

	cif := &types.CallInterface{}
	if err := ffi.PrepareCallInterface(cif, types.DefaultCall, ret, descs); err != nil {
		return nil, err
	}
	c.byKey[key] = cif
	return cif, nil
}

// callResult invokes fn, a resolved PFN_vk* pointer that returns VkResult.
// args must already be in goffi's pointer-to-storage form: scalar
// arguments are &value, pointer arguments are &ptrVariable. ptrArg is
// the helper below that builds the pointer form.
func callResult(fn unsafe.Pointer, kinds []argKind, args []unsafe.Pointer) Result {
	if fn == nil {
		return ErrorInitializationFailed
	}
	cif, err := signatures.get(true, kinds)
	if err != nil {
		return ErrorInitializationFailed
	}
	var result int32
	if err := ffi.CallFunction(cif, fn, unsafe.Pointer(&result), args); err != nil {
		return ErrorUnknown
	}
	return Result(result)
}

// callVoid invokes fn, a resolved PFN_vk* pointer with no return value
// (vkDestroy*, vkCmd*, vkGetPhysicalDevice* queries).
func callVoid(fn unsafe.Pointer, kinds []argKind, args []unsafe.Pointer) {
	if fn == nil {
		return
	}
	cif, err := signatures.get(false, kinds)
	if err != nil {
		return
	}
	_ = ffi.CallFunction(cif, fn, nil, args)
}

// word wraps a scalar argument (handle, integer, float, Bool32) in the
// pointer-to-storage form goffi requires. v must be addressable, so
// callers pass &local rather than a temporary.
func word(v unsafe.Pointer) unsafe.Pointer { return v }

// ptrArg wraps a pointer-typed argument. p is the pointer value itself
// (e.g. the address of a CreateInfo struct, or nil); ptrArg returns a
// pointer to a local copy of p, which is what goffi's calling convention
// requires for every pointer parameter -- see the package doc comment.
func ptrArg(p unsafe.Pointer) unsafe.Pointer {
	holder := p
	return unsafe.Pointer(&holder)
}
