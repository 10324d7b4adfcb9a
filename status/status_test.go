package status

import (
	"errors"
	"testing"

	"github.com/kestrelgpu/vkrt/vk"
)

func TestFromResult(t *testing.T) {
	cases := []struct {
		r    vk.Result
		want Status
	}{
		{vk.Success, Ok},
		{vk.NotReady, Declined},
		{vk.Timeout, Declined},
		{vk.Incomplete, Declined},
		{vk.SuboptimalKHR, Suboptimal},
		{vk.ErrorOutOfDateKHR, ErrorCancelled},
		{vk.ErrorDeviceLost, ErrorDeviceLost},
		{vk.ErrorOutOfHostMemory, ErrorOutOfHostMemory},
		{vk.ErrorOutOfDeviceMemory, ErrorOutOfDeviceMemory},
		{vk.ErrorOutOfPoolMemory, ErrorOutOfPoolMemory},
		{vk.ErrorTooManyObjects, ErrorTooManyObjects},
		{vk.ErrorFragmentation, ErrorFragmentation},
		{vk.ErrorExtensionNotPresent, ErrorNotPresent},
		{vk.ErrorSurfaceLostKHR, ErrorSurfaceLost},
		{vk.ErrorNativeWindowInUseKHR, ErrorNativeWindowInUse},
		{vk.ErrorFullScreenExclusiveModeLostEXT, ErrorFullscreenLost},
		{vk.Result(-999), ErrorUnknown},
	}
	for _, c := range cases {
		if got := FromResult(c.r); got != c.want {
			t.Errorf("FromResult(%d) = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestIsError(t *testing.T) {
	for _, s := range []Status{Ok, Declined, Suboptimal} {
		if s.IsError() {
			t.Errorf("%v.IsError() = true, want false", s)
		}
	}
	for _, s := range []Status{ErrorCancelled, ErrorDeviceLost, ErrorUnknown} {
		if !s.IsError() {
			t.Errorf("%v.IsError() = false, want true", s)
		}
	}
}

func TestErrDeviceLostIsSentinel(t *testing.T) {
	err := Err("vkWaitForFences", vk.ErrorDeviceLost)
	if !errors.Is(err, ErrDeviceLost) {
		t.Fatalf("Err(ErrorDeviceLost) = %v, want wrap of ErrDeviceLost", err)
	}
}

func TestErrNilForNonErrors(t *testing.T) {
	for _, r := range []vk.Result{vk.Success, vk.NotReady, vk.SuboptimalKHR} {
		if err := Err("op", r); err != nil {
			t.Errorf("Err(%d) = %v, want nil", r, err)
		}
	}
}
