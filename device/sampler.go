package device

import (
	"fmt"

	"github.com/kestrelgpu/vkrt/object"
	"github.com/kestrelgpu/vkrt/vk"
)

// SamplerKey names one of the small fixed set of sampler configurations the
// texture-set and material compilers request; spec.md §3.1 calls this the
// device's "compiled sampler set" — created once and shared by every
// material rather than one VkSampler per texture binding.
type SamplerKey struct {
	MagFilter    uint32
	MinFilter    uint32
	MipmapMode   uint32
	AddressMode  uint32
	Anisotropy   float32
}

// SamplerSet lazily compiles and caches VkSamplers keyed by SamplerKey.
type SamplerSet struct {
	d       *Device
	cache   map[SamplerKey]*object.Sampler
}

func newSamplerSet(d *Device) *SamplerSet {
	return &SamplerSet{d: d, cache: make(map[SamplerKey]*object.Sampler)}
}

// Get returns the VkSampler for key, compiling it on first request.
func (s *SamplerSet) Get(key SamplerKey) (*object.Sampler, error) {
	if samp, ok := s.cache[key]; ok {
		return samp, nil
	}
	info := vk.SamplerCreateInfo{
		SType:            vk.StructureTypeSamplerCreateInfo,
		MagFilter:        key.MagFilter,
		MinFilter:        key.MinFilter,
		MipmapMode:       key.MipmapMode,
		AddressModeU:     key.AddressMode,
		AddressModeV:     key.AddressMode,
		AddressModeW:     key.AddressMode,
		MaxLod:           1000,
		AnisotropyEnable: boolToVk(key.Anisotropy > 0),
		MaxAnisotropy:    key.Anisotropy,
	}
	samp, err := object.NewSampler(&s.d.cmds, s.d.handle, &info)
	if err != nil {
		return nil, fmt.Errorf("device: compiling sampler %+v: %w", key, err)
	}
	s.cache[key] = samp
	return samp, nil
}

func boolToVk(b bool) vk.Bool32 {
	if b {
		return 1
	}
	return 0
}

// Destroy releases every compiled sampler.
func (s *SamplerSet) Destroy() {
	for _, samp := range s.cache {
		samp.Destroy(&s.d.cmds, s.d.handle)
	}
	s.cache = nil
}
