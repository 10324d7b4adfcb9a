// Package status classifies Vulkan result codes into the first-class
// categories the rest of this module branches on, per spec.md §7.
package status

import (
	"errors"
	"fmt"

	"github.com/kestrelgpu/vkrt/vk"
)

// Status is a coarse classification of a vk.Result, grouping codes that
// callers handle identically regardless of the exact VkResult value.
type Status int

const (
	// Ok means the call succeeded with no caveats.
	Ok Status = iota
	// Declined covers VK_NOT_READY / VK_TIMEOUT / VK_INCOMPLETE: expected,
	// non-error control flow a caller polls or retries on.
	Declined
	// Suboptimal means the call succeeded but a recreation should happen
	// soon (VK_SUBOPTIMAL_KHR).
	Suboptimal
	// ErrorCancelled means the operation should be discarded and retried
	// (VK_ERROR_OUT_OF_DATE_KHR).
	ErrorCancelled
	// ErrorDeviceLost is fatal: the Loop must stop.
	ErrorDeviceLost
	// ErrorOutOfHostMemory indicates host allocation failure.
	ErrorOutOfHostMemory
	// ErrorOutOfDeviceMemory indicates device allocation failure.
	ErrorOutOfDeviceMemory
	// ErrorOutOfPoolMemory indicates a descriptor/command pool is exhausted.
	ErrorOutOfPoolMemory
	// ErrorTooManyObjects indicates a Vulkan object-count limit was hit.
	ErrorTooManyObjects
	// ErrorFragmentation indicates allocation failed due to fragmentation.
	ErrorFragmentation
	// ErrorNotPresent covers missing extensions, layers, or formats.
	ErrorNotPresent
	// ErrorSurfaceLost means the platform surface is gone.
	ErrorSurfaceLost
	// ErrorNativeWindowInUse means the native window already has a surface.
	ErrorNativeWindowInUse
	// ErrorFullscreenLost means exclusive fullscreen mode was lost.
	ErrorFullscreenLost
	// ErrorUnknown is the fallback for unrecognized result codes.
	ErrorUnknown
)

func (s Status) String() string {
	switch s {
	case Ok:
		return "Ok"
	case Declined:
		return "Declined"
	case Suboptimal:
		return "Suboptimal"
	case ErrorCancelled:
		return "ErrorCancelled"
	case ErrorDeviceLost:
		return "ErrorDeviceLost"
	case ErrorOutOfHostMemory:
		return "ErrorOutOfHostMemory"
	case ErrorOutOfDeviceMemory:
		return "ErrorOutOfDeviceMemory"
	case ErrorOutOfPoolMemory:
		return "ErrorOutOfPoolMemory"
	case ErrorTooManyObjects:
		return "ErrorTooManyObjects"
	case ErrorFragmentation:
		return "ErrorFragmentation"
	case ErrorNotPresent:
		return "ErrorNotPresent"
	case ErrorSurfaceLost:
		return "ErrorSurfaceLost"
	case ErrorNativeWindowInUse:
		return "ErrorNativeWindowInUse"
	case ErrorFullscreenLost:
		return "ErrorFullscreenLost"
	default:
		return "ErrorUnknown"
	}
}

// IsError reports whether s represents a failure a caller must react to,
// as opposed to Ok/Declined/Suboptimal which are normal control flow.
func (s Status) IsError() bool {
	return s >= ErrorCancelled
}

// Sentinel errors for conditions callers branch on with errors.Is, mirroring
// the teacher hal package's sentinel-error style rather than a tagged union.
var (
	ErrDeviceLost       = errors.New("vkrt: device lost")
	ErrSurfaceOutdated  = errors.New("vkrt: surface out of date")
	ErrNoFreeQueue      = errors.New("vkrt: no free queue in family")
	ErrPoolExhausted    = errors.New("vkrt: pool exhausted")
	ErrInvalidFrame     = errors.New("vkrt: frame handle invalidated")
	ErrUnsupportedUsage = errors.New("vkrt: no memory type for requested usage")
)

// FromResult classifies a raw vk.Result into a Status.
func FromResult(r vk.Result) Status {
	switch r {
	case vk.Success:
		return Ok
	case vk.NotReady, vk.Timeout, vk.Incomplete:
		return Declined
	case vk.SuboptimalKHR:
		return Suboptimal
	case vk.ErrorOutOfDateKHR:
		return ErrorCancelled
	case vk.ErrorDeviceLost:
		return ErrorDeviceLost
	case vk.ErrorOutOfHostMemory:
		return ErrorOutOfHostMemory
	case vk.ErrorOutOfDeviceMemory:
		return ErrorOutOfDeviceMemory
	case vk.ErrorOutOfPoolMemory:
		return ErrorOutOfPoolMemory
	case vk.ErrorTooManyObjects:
		return ErrorTooManyObjects
	case vk.ErrorFragmentation, vk.ErrorFragmentedPool:
		return ErrorFragmentation
	case vk.ErrorExtensionNotPresent, vk.ErrorLayerNotPresent, vk.ErrorFeatureNotPresent, vk.ErrorFormatNotSupported:
		return ErrorNotPresent
	case vk.ErrorSurfaceLostKHR:
		return ErrorSurfaceLost
	case vk.ErrorNativeWindowInUseKHR:
		return ErrorNativeWindowInUse
	case vk.ErrorFullScreenExclusiveModeLostEXT:
		return ErrorFullscreenLost
	default:
		return ErrorUnknown
	}
}

// Err converts a vk.Result into a Go error, or nil for Ok/Declined/Suboptimal
// (which are not failures — callers that need to distinguish Suboptimal
// from Ok should inspect FromResult directly rather than call Err).
func Err(op string, r vk.Result) error {
	s := FromResult(r)
	switch s {
	case Ok, Declined, Suboptimal:
		return nil
	case ErrorDeviceLost:
		return fmt.Errorf("%s: %w", op, ErrDeviceLost)
	case ErrorCancelled:
		return fmt.Errorf("%s: %w", op, ErrSurfaceOutdated)
	default:
		return fmt.Errorf("%s: %s (vk.Result=%d)", op, s, r)
	}
}
