package device

import (
	"testing"

	"github.com/kestrelgpu/vkrt/instance"
	"github.com/kestrelgpu/vkrt/queue"
	"github.com/kestrelgpu/vkrt/vk"
)

func TestPickFamilyPrefersDedicated(t *testing.T) {
	families := []instance.QueueFamily{
		{Index: 0, Flags: vk.QueueGraphicsBit | vk.QueueComputeBit | vk.QueueTransferBit, SupportsPresent: true},
		{Index: 1, Flags: vk.QueueTransferBit},
	}

	idx, ok := pickFamily(families, queue.OpsTransfer, queue.OpsGraphics)
	if !ok || idx != 1 {
		t.Fatalf("expected dedicated transfer family 1, got idx=%d ok=%v", idx, ok)
	}
}

func TestPickFamilyFallsBackWhenNoDedicated(t *testing.T) {
	families := []instance.QueueFamily{
		{Index: 0, Flags: vk.QueueGraphicsBit | vk.QueueComputeBit | vk.QueueTransferBit, SupportsPresent: true},
	}

	idx, ok := pickFamily(families, queue.OpsTransfer, queue.OpsGraphics)
	if !ok || idx != 0 {
		t.Fatalf("expected fallback to family 0, got idx=%d ok=%v", idx, ok)
	}
}

func TestPickFamilyNoneSupported(t *testing.T) {
	families := []instance.QueueFamily{
		{Index: 0, Flags: vk.QueueGraphicsBit},
	}

	if _, ok := pickFamily(families, queue.OpsCompute, 0); ok {
		t.Fatal("expected no family to support compute")
	}
}
