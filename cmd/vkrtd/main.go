// Command vkrtd is a minimal sample driver: it loads a config file, opens
// an instance and device, boots a frame.Loop, and runs the TransferQueue
// once to populate the device's texset sentinels. It does no windowing or
// presentation, since surface creation is a platform-layer concern out of
// scope for this module (spec.md §1).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/kestrelgpu/vkrt/command"
	"github.com/kestrelgpu/vkrt/config"
	"github.com/kestrelgpu/vkrt/device"
	"github.com/kestrelgpu/vkrt/frame"
	"github.com/kestrelgpu/vkrt/gpusync"
	"github.com/kestrelgpu/vkrt/instance"
	"github.com/kestrelgpu/vkrt/queue"
	"github.com/kestrelgpu/vkrt/rtlog"
	"github.com/kestrelgpu/vkrt/subqueue"
	"github.com/kestrelgpu/vkrt/texset"
	"github.com/kestrelgpu/vkrt/vk"
)

// staticOwner always reports itself as alive; the startup-only queue
// acquisition this driver performs never outlives the call that made it.
type staticOwner struct{}

func (staticOwner) Valid() bool { return true }

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (defaults to config.DefaultConfig())")
	verbose := flag.Bool("v", false, "enable debug-level logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	rtlog.Set(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "vkrtd:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	inst, err := instance.New(cfg)
	if err != nil {
		return fmt.Errorf("creating instance: %w", err)
	}
	defer inst.Destroy()

	picked, err := inst.Select(cfg)
	if err != nil {
		return fmt.Errorf("selecting device: %w", err)
	}
	rtlog.Logger().Info("vkrtd: selected device", "name", picked.Name())

	dev, err := device.New(inst, picked, cfg)
	if err != nil {
		return fmt.Errorf("creating device: %w", err)
	}

	loop := frame.New(dev, picked.HasPortability)

	limits := picked.Properties.Limits
	transferFamily := dev.Family(device.RoleTransfer)
	tq := subqueue.New(dev.Commands(), dev.Handle(), dev.Allocator(),
		limits.BufferImageGranularity, limits.NonCoherentAtomSize, transferFamily.Index())

	ts, err := texset.New(dev.Commands(), dev.Handle(), texset.Config{
		MaxSamplers:       cfg.MaxTextureSetImages,
		MaxSampledImages:  cfg.MaxTextureSetImages,
		MaxStorageBuffers: cfg.MaxTextureSetBuffers,
	})
	if err != nil {
		return fmt.Errorf("creating texture set: %w", err)
	}

	if err := fillSentinels(dev, tq, ts); err != nil {
		return fmt.Errorf("filling sentinels: %w", err)
	}

	rtlog.Logger().Info("vkrtd: startup sub-queues ready", "transfer_family", transferFamily.Index())

	loop.Shutdown()
	return nil
}

// fillSentinels runs the TransferQueue once, synchronously, to populate
// texset's sentinel resources at startup (spec.md §4.7).
func fillSentinels(dev *device.Device, tq *subqueue.TransferQueue, ts *texset.TextureSet) error {
	family := dev.Family(device.RoleTransfer)
	q := family.Acquire(staticOwner{}, queue.OpsTransfer)
	defer family.Release(q)

	pool, err := q.AcquirePool(dev.Commands(), dev.Handle(), dev.Physical().HasPortability)
	if err != nil {
		return err
	}
	defer q.ReleasePool(pool, true)

	_, pass := tq.Declare()
	resources := subqueue.SentinelFillResources(ts)
	handle := &frame.PassHandle{
		Inputs: []*frame.AttachmentHandle{{Data: resources}},
		Done:   frame.NewDependencyEvent(),
	}

	cb, err := pool.RecordBuffer(vk.CommandBufferUsageOneTimeSubmitBit, vk.CommandBufferLevelPrimary, func(cb *command.Buffer) bool {
		pass.Record(handle, cb)
		return true
	})
	if err != nil {
		return err
	}

	fence, err := gpusync.New(dev.Commands(), dev.Handle())
	if err != nil {
		return err
	}
	defer fence.Destroy(dev.Commands(), dev.Handle())
	fence.Arm()

	if err := q.Submit(dev.Commands(), dev.Handle(), queue.SyncSet{}, []vk.CommandBuffer{cb.Handle()}, fence, queue.IdleNone); err != nil {
		return err
	}
	if err := fence.Wait(dev.Commands(), dev.Handle(), ^uint64(0)); err != nil {
		return err
	}
	handle.Done.Signal(true)
	return nil
}
