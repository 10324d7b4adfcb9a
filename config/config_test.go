package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DeviceIdx != DeviceIndexDefault {
		t.Errorf("DeviceIdx = %d, want %d", cfg.DeviceIdx, DeviceIndexDefault)
	}
	if cfg.MaxSuboptimalFrames != 24 {
		t.Errorf("MaxSuboptimalFrames = %d, want 24", cfg.MaxSuboptimalFrames)
	}
	if cfg.EnableValidationLayers {
		t.Error("EnableValidationLayers should default to false")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vkrt.toml")
	content := []byte(`
enable_validation_layers = true
max_suboptimal_frames = 8
device_idx = 2
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !cfg.EnableValidationLayers {
		t.Error("EnableValidationLayers not overridden from file")
	}
	if cfg.MaxSuboptimalFrames != 8 {
		t.Errorf("MaxSuboptimalFrames = %d, want 8", cfg.MaxSuboptimalFrames)
	}
	if cfg.DeviceIdx != 2 {
		t.Errorf("DeviceIdx = %d, want 2", cfg.DeviceIdx)
	}
	// Fields absent from the file keep their defaults.
	if cfg.MaxTextureSetImages != DefaultConfig().MaxTextureSetImages {
		t.Errorf("MaxTextureSetImages changed unexpectedly: %d", cfg.MaxTextureSetImages)
	}
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	def := DefaultConfig()
	if cfg.DeviceIdx != def.DeviceIdx || cfg.EnableValidationLayers != def.EnableValidationLayers ||
		cfg.PresentationSchedulerInterval != def.PresentationSchedulerInterval || cfg.MaxSuboptimalFrames != def.MaxSuboptimalFrames ||
		cfg.MaxTextureSetImages != def.MaxTextureSetImages || cfg.MaxTextureSetBuffers != def.MaxTextureSetBuffers ||
		cfg.UseExternalFenceSync != def.UseExternalFenceSync || cfg.FontPreloadGroups != def.FontPreloadGroups {
		t.Error("expected defaults returned alongside error")
	}
}
