package instance

import (
	"testing"

	"github.com/kestrelgpu/vkrt/config"
	"github.com/kestrelgpu/vkrt/vk"
)

func makeDeviceName(name string) [256]byte {
	var b [256]byte
	copy(b[:], name)
	return b
}

func TestPhysicalDeviceInfoName(t *testing.T) {
	p := PhysicalDeviceInfo{Properties: vk.PhysicalDeviceProperties{DeviceName: makeDeviceName("Test GPU")}}
	if got := p.Name(); got != "Test GPU" {
		t.Fatalf("Name() = %q, want %q", got, "Test GPU")
	}
}

func TestPhysicalDeviceInfoIsDiscreteGPU(t *testing.T) {
	discrete := PhysicalDeviceInfo{Properties: vk.PhysicalDeviceProperties{DeviceType: physicalDeviceTypeDiscreteGPU}}
	if !discrete.IsDiscreteGPU() {
		t.Error("expected discrete GPU to report true")
	}
	integrated := PhysicalDeviceInfo{Properties: vk.PhysicalDeviceProperties{DeviceType: 1}}
	if integrated.IsDiscreteGPU() {
		t.Error("expected integrated GPU to report false")
	}
}

func TestPhysicalDeviceInfoHasExtension(t *testing.T) {
	p := PhysicalDeviceInfo{Extensions: []string{"VK_KHR_swapchain", "VK_KHR_portability_subset"}}
	if !p.HasExtension("VK_KHR_swapchain") {
		t.Error("expected VK_KHR_swapchain to be found")
	}
	if p.HasExtension("VK_KHR_missing") {
		t.Error("expected VK_KHR_missing to be absent")
	}
}

func TestInstanceSelectByIndex(t *testing.T) {
	inst := &Instance{devices: []PhysicalDeviceInfo{
		{Properties: vk.PhysicalDeviceProperties{DeviceName: makeDeviceName("GPU 0")}},
		{Properties: vk.PhysicalDeviceProperties{DeviceName: makeDeviceName("GPU 1")}},
	}}
	got, err := inst.Select(config.Config{DeviceIdx: 1})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Name() != "GPU 1" {
		t.Fatalf("Select(1) = %q, want GPU 1", got.Name())
	}
}

func TestInstanceSelectByIndexOutOfRange(t *testing.T) {
	inst := &Instance{devices: []PhysicalDeviceInfo{{}}}
	if _, err := inst.Select(config.Config{DeviceIdx: 5}); err == nil {
		t.Fatal("expected out-of-range index to error")
	}
}

func TestInstanceSelectDefaultUsesCallback(t *testing.T) {
	inst := &Instance{devices: []PhysicalDeviceInfo{
		{Properties: vk.PhysicalDeviceProperties{DeviceName: makeDeviceName("Integrated"), DeviceType: 1}},
		{Properties: vk.PhysicalDeviceProperties{DeviceName: makeDeviceName("Discrete"), DeviceType: physicalDeviceTypeDiscreteGPU}},
	}}
	cfg := config.DefaultConfig()
	cfg.DeviceSupportCallback = func(d config.DeviceSummary) bool { return d.IsDiscreteGPU }

	got, err := inst.Select(cfg)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got.Name() != "Discrete" {
		t.Fatalf("Select() = %q, want Discrete", got.Name())
	}
}

func TestInstanceSelectNoneMatch(t *testing.T) {
	inst := &Instance{devices: []PhysicalDeviceInfo{{Properties: vk.PhysicalDeviceProperties{DeviceType: 1}}}}
	cfg := config.DefaultConfig()
	cfg.DeviceSupportCallback = func(config.DeviceSummary) bool { return false }
	if _, err := inst.Select(cfg); err == nil {
		t.Fatal("expected error when no device passes the callback")
	}
}

func TestQueueFamilyFlagHelpers(t *testing.T) {
	f := QueueFamily{Flags: vk.QueueGraphicsBit | vk.QueueTransferBit}
	if !f.HasGraphics() || !f.HasTransfer() {
		t.Error("expected graphics and transfer bits set")
	}
	if f.HasCompute() || f.HasSparseBinding() || f.HasProtected() {
		t.Error("expected compute/sparse-binding/protected bits clear")
	}
}
