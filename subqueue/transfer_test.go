package subqueue

import (
	"testing"

	"github.com/kestrelgpu/vkrt/object"
	"github.com/kestrelgpu/vkrt/texset"
	"github.com/kestrelgpu/vkrt/vk"
)

// TestSentinelFillResourcesByteContent matches spec.md §4.7's sentinel
// description: a 1x1 zero image, a 1x1 solid-white image, and a 16-byte
// buffer filled with 0xFFFFFFFF.
func TestSentinelFillResourcesByteContent(t *testing.T) {
	zeroImg := &object.Image{}
	whiteImg := &object.Image{}
	emptyBuf := &object.Buffer{}

	resources := sentinelFillResourcesFor(texset.Sentinels{ZeroImage: zeroImg, WhiteImage: whiteImg, EmptyBuffer: emptyBuf})
	if len(resources) != 3 {
		t.Fatalf("want 3 resources, got %d", len(resources))
	}

	zero, white, empty := resources[0], resources[1], resources[2]

	if zero.Image != zeroImg {
		t.Fatal("first resource should target the zero image")
	}
	for i, b := range zero.HostData {
		if b != 0 {
			t.Fatalf("zero image byte %d = %#x, want 0", i, b)
		}
	}
	if len(zero.HostData) != 4 {
		t.Fatalf("zero image fill len = %d, want 4", len(zero.HostData))
	}

	if white.Image != whiteImg {
		t.Fatal("second resource should target the white image")
	}
	for i, b := range white.HostData {
		if b != 0xFF {
			t.Fatalf("white image byte %d = %#x, want 0xFF", i, b)
		}
	}

	if empty.Buffer != emptyBuf {
		t.Fatal("third resource should target the empty buffer")
	}
	if len(empty.HostData) != 16 {
		t.Fatalf("empty buffer fill len = %d, want 16", len(empty.HostData))
	}
	for i, b := range empty.HostData {
		if b != 0xFF {
			t.Fatalf("empty buffer byte %d = %#x, want 0xFF", i, b)
		}
	}

	for _, r := range []*TransferResource{zero, white} {
		if r.FinalLayout != vk.ImageLayoutShaderReadOnlyOptimal {
			t.Fatalf("sentinel image FinalLayout = %v, want ShaderReadOnlyOptimal", r.FinalLayout)
		}
		if r.AspectMask != vk.ImageAspectColorBit {
			t.Fatalf("sentinel image AspectMask = %v, want ColorBit", r.AspectMask)
		}
	}
}
