package memory

import (
	"testing"

	"github.com/kestrelgpu/vkrt/vk"
)

func TestPagesFor(t *testing.T) {
	cases := []struct {
		size vk.DeviceSize
		want int
	}{
		{1, 1},
		{PageSize, 1},
		{PageSize + 1, 2},
		{PageSize * 3, 3},
	}
	for _, c := range cases {
		if got := pagesFor(c.size); got != c.want {
			t.Errorf("pagesFor(%d) = %d, want %d", c.size, got, c.want)
		}
	}
}

func TestBucketForClampsToSinkBucket(t *testing.T) {
	if b := bucketFor(1); b != 0 {
		t.Errorf("bucketFor(1) = %d, want 0", b)
	}
	if b := bucketFor(1 << 30); b != bucketCount-1 {
		t.Errorf("bucketFor(huge) = %d, want sink bucket %d", b, bucketCount-1)
	}
}
