/*
Headless demo of the water render passes: builds a small lake scene,
runs the pipeline over every viewer for a few frames and prints what
was submitted.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/naiad/engine/core"
	"github.com/spaghettifunk/naiad/engine/renderer/headless"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
	"github.com/spaghettifunk/naiad/engine/systems"
	"github.com/spaghettifunk/naiad/testbed"
)

const waterConfigPath = "assets/water.toml"
const frameCount = 120

func main() {
	core.EventInitialize()
	if err := core.MetricsInitialize(); err != nil {
		panic(err)
	}

	water, err := systems.LoadWaterConfig(waterConfigPath)
	if err != nil {
		core.LogWarn("using default water configuration: %s", err.Error())
		water = metadata.DefaultWaterConfig()
	}

	watcher, err := systems.WatchWaterConfig(waterConfigPath)
	if err != nil {
		core.LogWarn("water configuration hot reload unavailable: %s", err.Error())
	} else {
		defer watcher.Close()
	}

	backend := headless.NewBackend()
	scene, err := testbed.NewScene(backend)
	if err != nil {
		panic(err)
	}

	pipeline, err := systems.NewWaterPipelineSystem(&systems.WaterPipelineConfig{
		Mode:  executionMode(),
		Water: water,
	}, backend)
	if err != nil {
		panic(err)
	}
	pipeline.SetHorizonMesh(scene.HorizonMesh)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	clock := core.NewClock()
	clock.Start()

loop:
	for frame := uint64(0); frame < frameCount; frame++ {
		select {
		case <-sigCh:
			core.LogInfo("interrupted, shutting down")
			break loop
		default:
		}

		delta := clock.Tick()
		for _, viewer := range scene.Viewers {
			if err := pipeline.RunViewerFrame(scene.FrameContext(viewer, frame, delta)); err != nil {
				core.LogError("frame %d viewer '%s' failed: %s", frame, viewer.Name, err.Error())
			}
		}
		core.MetricsUpdate(delta)
	}

	submitted, skipped := core.MetricsPassCounts()
	core.LogInfo("done: %d pass submissions, %d skips, %d commands recorded",
		submitted, skipped, len(backend.Commands))
	for _, name := range []string{metadata.WATER_INTERACTION_A_TEXTURE_NAME, metadata.WATER_INTERACTION_B_TEXTURE_NAME} {
		if texture := backend.GlobalBinding(name); texture != nil {
			core.LogInfo("global binding '%s' -> %dx%d", name, texture.Width, texture.Height)
		}
	}

	if err := pipeline.Shutdown(); err != nil {
		core.LogError("pipeline shutdown failed: %s", err.Error())
	}
	core.EventShutdown()
}

func executionMode() systems.ExecutionMode {
	if os.Getenv("NAIAD_WATER_MODE") == "immediate" {
		return systems.EXECUTION_MODE_IMMEDIATE
	}
	return systems.EXECUTION_MODE_GRAPH
}
