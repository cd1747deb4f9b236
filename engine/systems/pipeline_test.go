package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/naiad/engine/core"
	"github.com/spaghettifunk/naiad/engine/renderer/headless"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
	"github.com/spaghettifunk/naiad/testbed"
)

func newPipeline(t *testing.T, mode ExecutionMode) (*WaterPipelineSystem, *headless.Backend, *testbed.Scene) {
	t.Helper()
	core.EventInitialize()

	backend := headless.NewBackend()
	scene, err := testbed.NewScene(backend)
	require.NoError(t, err)

	pipeline, err := NewWaterPipelineSystem(&WaterPipelineConfig{Mode: mode}, backend)
	require.NoError(t, err)
	pipeline.SetHorizonMesh(scene.HorizonMesh)
	t.Cleanup(func() { pipeline.Shutdown() })

	return pipeline, backend, scene
}

func TestExecutionModesProduceTheSameCommandStream(t *testing.T) {
	immediate, immediateBackend, immediateScene := newPipeline(t, EXECUTION_MODE_IMMEDIATE)
	graph, graphBackend, graphScene := newPipeline(t, EXECUTION_MODE_GRAPH)

	for frame := uint64(0); frame < 3; frame++ {
		for _, viewer := range immediateScene.Viewers {
			require.NoError(t, immediate.RunViewerFrame(immediateScene.FrameContext(viewer, frame, 0.016)))
		}
		for _, viewer := range graphScene.Viewers {
			require.NoError(t, graph.RunViewerFrame(graphScene.FrameContext(viewer, frame, 0.016)))
		}
	}

	assert.Equal(t, immediateBackend.Signatures(), graphBackend.Signatures(),
		"switching the resource lifetime model must not change what is drawn")
}

func TestInteractionBuffersReleasedAtEndOfCamera(t *testing.T) {
	pipeline, backend, scene := newPipeline(t, EXECUTION_MODE_GRAPH)

	viewer := scene.Viewers[0]
	require.Equal(t, metadata.VIEWER_KIND_GAME, viewer.Kind)
	require.NoError(t, pipeline.RunViewerFrame(scene.FrameContext(viewer, 0, 0.016)))

	assert.Equal(t, 0, backend.LiveTransientCount(), "every transient is returned once the camera is done")

	// The buffers outlive the passes: their releases trail the frame end.
	var sawEndFrame bool
	released := map[string]bool{}
	for _, c := range backend.Commands {
		switch c.Kind {
		case headless.COMMAND_END_FRAME:
			sawEndFrame = true
		case headless.COMMAND_RELEASE_TEXTURE:
			if sawEndFrame {
				released[c.TextureName] = true
			}
		}
	}
	assert.True(t, released[metadata.WATER_INTERACTION_A_TEXTURE_NAME])
	assert.True(t, released[metadata.WATER_INTERACTION_B_TEXTURE_NAME])
}

func TestIneligibleViewersProduceNoPassWork(t *testing.T) {
	pipeline, backend, scene := newPipeline(t, EXECUTION_MODE_GRAPH)

	for _, viewer := range scene.Viewers {
		if viewer.Kind != metadata.VIEWER_KIND_PREVIEW && viewer.Kind != metadata.VIEWER_KIND_REFLECTION_PROBE {
			continue
		}
		backend.ResetCommands()
		require.NoError(t, pipeline.RunViewerFrame(scene.FrameContext(viewer, 0, 0.016)))

		assert.Empty(t, backend.CommandsOfKind(headless.COMMAND_ALLOCATE_TEXTURE))
		assert.Empty(t, backend.CommandsOfKind(headless.COMMAND_SUBMIT_BATCH))
	}
}

func TestReloadedConfigIsAppliedToPasses(t *testing.T) {
	pipeline, backend, scene := newPipeline(t, EXECUTION_MODE_GRAPH)

	reloaded := metadata.DefaultWaterConfig()
	reloaded.ResolutionScale = 0.5
	core.EventFire(core.EVENT_CODE_WATER_CONFIG_CHANGED, t, core.EventContext{
		Type: core.EVENT_CODE_WATER_CONFIG_CHANGED,
		Data: reloaded,
	})
	// The reload is staged, not applied mid-frame.
	assert.NotSame(t, reloaded, pipeline.Config())

	require.NoError(t, pipeline.RunViewerFrame(scene.FrameContext(scene.Viewers[0], 0, 0.016)))
	assert.Same(t, reloaded, pipeline.Config())

	bufferA := backend.GlobalBinding(metadata.WATER_INTERACTION_A_TEXTURE_NAME)
	require.NotNil(t, bufferA)
	assert.Equal(t, scene.Viewers[0].Width/2, bufferA.Width)
	assert.Equal(t, scene.Viewers[0].Height/2, bufferA.Height)
}

func TestInvalidReloadedConfigIsRejected(t *testing.T) {
	pipeline, _, scene := newPipeline(t, EXECUTION_MODE_GRAPH)
	previous := pipeline.Config()

	bad := metadata.DefaultWaterConfig()
	bad.Debug = "ShowEverything"
	core.EventFire(core.EVENT_CODE_WATER_CONFIG_CHANGED, t, core.EventContext{
		Type: core.EVENT_CODE_WATER_CONFIG_CHANGED,
		Data: bad,
	})

	require.NoError(t, pipeline.RunViewerFrame(scene.FrameContext(scene.Viewers[0], 0, 0.016)))
	assert.Same(t, previous, pipeline.Config(), "a rejected reload keeps the previous configuration")
}

func TestConfigReloadDuringFramesIsSafe(t *testing.T) {
	pipeline, _, scene := newPipeline(t, EXECUTION_MODE_GRAPH)

	// Reloads arrive on the watcher goroutine while the frame loop runs;
	// the pipeline must stage them and swap only between frames.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			cfg := metadata.DefaultWaterConfig()
			cfg.ResolutionScale = 0.5
			core.EventFire(core.EVENT_CODE_WATER_CONFIG_CHANGED, t, core.EventContext{
				Type: core.EVENT_CODE_WATER_CONFIG_CHANGED,
				Data: cfg,
			})
		}
	}()

	for frame := uint64(0); frame < 200; frame++ {
		require.NoError(t, pipeline.RunViewerFrame(scene.FrameContext(scene.Viewers[0], frame, 0.016)))
	}
	<-done

	// At least one staged reload has been applied by now.
	require.NoError(t, pipeline.RunViewerFrame(scene.FrameContext(scene.Viewers[0], 200, 0.016)))
	assert.Equal(t, float32(0.5), pipeline.Config().ResolutionScale)
}

func TestPipelineRequiresViewer(t *testing.T) {
	pipeline, _, _ := newPipeline(t, EXECUTION_MODE_GRAPH)
	assert.Error(t, pipeline.RunViewerFrame(&metadata.FrameContext{}))
	assert.Error(t, pipeline.RunViewerFrame(nil))
}
