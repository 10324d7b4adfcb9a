package instance

import (
	"context"
	"log/slog"
	"runtime"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"

	"github.com/kestrelgpu/vkrt/rtlog"
	"github.com/kestrelgpu/vkrt/vk"
)

// knownBenignVUIDs demotes validation messages this runtime's usage
// pattern is known to trip spuriously (spec.md §6) from Warning to Info so
// they don't drown out real issues in a caller's log.
var knownBenignVUIDs = map[string]bool{
	"VUID-vkCmdPipelineBarrier-pDependencies-02285": true,
}

// debugCallbackPtr is created once and kept alive for the process lifetime,
// matching the teacher's debugCallbackPtr (Vulkan requires the callback
// pointer outlive every messenger built from it).
var debugCallbackPtr uintptr

func vulkanDebugCallback(severity, msgType, callbackData, _ uintptr) uintptr {
	if callbackData == 0 {
		return uintptr(vk.False)
	}
	data := (*vk.DebugUtilsMessengerCallbackDataEXT)(unsafe.Pointer(callbackData))

	msg := "(no message)"
	if data.PMessage != nil {
		msg = cStringFromPtr(data.PMessage)
	}
	msgID := ""
	if data.PMessageIDName != nil {
		msgID = cStringFromPtr(data.PMessageIDName)
	}

	level := slog.LevelDebug
	switch {
	case uint32(severity)&vk.DebugUtilsMessageSeverityErrorBitEXT != 0:
		level = slog.LevelError
	case uint32(severity)&vk.DebugUtilsMessageSeverityWarningBitEXT != 0:
		level = slog.LevelWarn
	case uint32(severity)&vk.DebugUtilsMessageSeverityInfoBitEXT != 0:
		level = slog.LevelInfo
	}
	if knownBenignVUIDs[msgID] && level == slog.LevelWarn {
		level = slog.LevelInfo
	}

	attrs := []slog.Attr{slog.Uint64("type", uint64(msgType))}
	if msgID != "" {
		attrs = append(attrs, slog.String("vuid", msgID))
	}
	rtlog.Logger().LogAttrs(context.Background(), level, "vulkan: "+msg, attrs...)

	// VK_FALSE: never abort the call that triggered the callback.
	return uintptr(vk.False)
}

func cStringFromPtr(p *byte) string {
	if p == nil {
		return ""
	}
	const maxLen = 4096
	buf := unsafe.Slice(p, maxLen)
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

func createMessenger(cmds *vk.Commands, handle vk.Instance) vk.DebugUtilsMessengerEXT {
	if debugCallbackPtr == 0 {
		debugCallbackPtr = ffi.NewCallback(vulkanDebugCallback)
	}

	info := vk.DebugUtilsMessengerCreateInfoEXT{
		SType: vk.StructureTypeDebugUtilsMessengerCreateInfoEXT,
		MessageSeverity: vk.DebugUtilsMessageSeverityWarningBitEXT |
			vk.DebugUtilsMessageSeverityErrorBitEXT,
		MessageType:     debugUtilsMessageTypeGeneral | debugUtilsMessageTypeValidation | debugUtilsMessageTypePerformance,
		PfnUserCallback: debugCallbackPtr,
	}

	messenger, r := cmds.CreateDebugUtilsMessengerEXT(handle, &info, nil)
	if r != vk.Success {
		rtlog.Logger().Warn("instance: failed to create debug messenger", "result", r)
		return 0
	}
	runtime.KeepAlive(debugCallbackPtr)
	return messenger
}

func destroyMessenger(cmds *vk.Commands, handle vk.Instance, messenger vk.DebugUtilsMessengerEXT) {
	cmds.DestroyDebugUtilsMessengerEXT(handle, messenger, nil)
}

const (
	debugUtilsMessageTypeGeneral     uint32 = 0x00000001
	debugUtilsMessageTypeValidation  uint32 = 0x00000002
	debugUtilsMessageTypePerformance uint32 = 0x00000004
)
