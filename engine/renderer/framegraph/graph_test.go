package framegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/naiad/engine/renderer"
	"github.com/spaghettifunk/naiad/engine/renderer/headless"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
)

func colourDescriptor(width, height uint32) *metadata.FrameTextureDescriptor {
	return metadata.FrameTextureDescriptorFromTarget(metadata.NewColourTargetDescriptor(width, height))
}

func TestCompileRejectsInvalidHandles(t *testing.T) {
	builder := NewBuilder()
	builder.AddPass("broken").Writes(TextureHandle(17))

	_, err := builder.Compile()
	assert.Error(t, err)
}

func TestPassWithNoConsumersIsCulled(t *testing.T) {
	backend := headless.NewBackend()
	builder := NewBuilder()

	target := builder.CreateTexture("orphan", colourDescriptor(64, 64))
	executed := false
	builder.AddPass("dead").Writes(target).SetExecute(func(sink renderer.CommandSink, resources *Resources) error {
		executed = true
		return nil
	})

	graph, err := builder.Compile()
	require.NoError(t, err)
	require.NoError(t, graph.Run(backend))

	assert.False(t, executed)
	assert.Empty(t, backend.CommandsOfKind(headless.COMMAND_ALLOCATE_TEXTURE), "culled passes must not allocate")
}

func TestExternallyObservedWriteSurvivesCulling(t *testing.T) {
	backend := headless.NewBackend()
	builder := NewBuilder()

	target := builder.CreateTexture("buffer", colourDescriptor(64, 64))
	builder.MarkExternallyObserved(target)
	executed := false
	builder.AddPass("producer").Writes(target).SetExecute(func(sink renderer.CommandSink, resources *Resources) error {
		executed = true
		assert.NotNil(t, resources.Get(target))
		return nil
	})

	graph, err := builder.Compile()
	require.NoError(t, err)
	require.NoError(t, graph.Run(backend))

	assert.True(t, executed)
	// Held for the external consumer: the graph itself never releases it.
	assert.Empty(t, backend.CommandsOfKind(headless.COMMAND_RELEASE_TEXTURE))
	require.Len(t, graph.ExternalTextures(), 1)
	assert.Equal(t, "buffer", graph.ExternalTextures()[0].Name)
	assert.Equal(t, 1, backend.LiveTransientCount())
}

func TestDisableCullingForcesExecution(t *testing.T) {
	backend := headless.NewBackend()
	builder := NewBuilder()

	target := builder.CreateTexture("scratch", colourDescriptor(32, 32))
	executed := false
	builder.AddPass("side-effects").Writes(target).DisableCulling().SetExecute(func(sink renderer.CommandSink, resources *Resources) error {
		executed = true
		return nil
	})

	graph, err := builder.Compile()
	require.NoError(t, err)
	require.NoError(t, graph.Run(backend))
	assert.True(t, executed)
}

func TestWriteToImportedTextureSurvivesCulling(t *testing.T) {
	backend := headless.NewBackend()
	builder := NewBuilder()

	scene := builder.ImportTexture("scene_colour", &metadata.Texture{Name: "scene_colour"})
	executed := false
	builder.AddPass("composite").Writes(scene).SetExecute(func(sink renderer.CommandSink, resources *Resources) error {
		executed = true
		assert.Equal(t, "scene_colour", resources.Get(scene).Name)
		return nil
	})

	graph, err := builder.Compile()
	require.NoError(t, err)
	require.NoError(t, graph.Run(backend))

	assert.True(t, executed)
	assert.Empty(t, backend.CommandsOfKind(headless.COMMAND_ALLOCATE_TEXTURE), "imported textures are host owned")
	assert.Empty(t, backend.CommandsOfKind(headless.COMMAND_RELEASE_TEXTURE))
}

func TestCullingCascadesThroughUnreadChains(t *testing.T) {
	backend := headless.NewBackend()
	builder := NewBuilder()

	a := builder.CreateTexture("a", colourDescriptor(64, 64))
	b := builder.CreateTexture("b", colourDescriptor(64, 64))

	var order []string
	builder.AddPass("first").Writes(a).SetExecute(func(sink renderer.CommandSink, resources *Resources) error {
		order = append(order, "first")
		return nil
	})
	builder.AddPass("second").Reads(a).Writes(b).SetExecute(func(sink renderer.CommandSink, resources *Resources) error {
		order = append(order, "second")
		return nil
	})

	graph, err := builder.Compile()
	require.NoError(t, err)
	require.NoError(t, graph.Run(backend))

	// Nothing reads b, so second is culled; with second gone nothing
	// reads a either and first is culled too.
	assert.Empty(t, order)
}

func TestTransientReleasedAfterLastUse(t *testing.T) {
	backend := headless.NewBackend()
	builder := NewBuilder()

	scene := builder.ImportTexture("scene_colour", &metadata.Texture{Name: "scene_colour"})
	scratch := builder.CreateTexture("scratch", colourDescriptor(64, 64))

	builder.AddPass("produce").Writes(scratch).SetExecute(func(sink renderer.CommandSink, resources *Resources) error {
		return nil
	})
	builder.AddPass("consume").Reads(scratch).Writes(scene).SetExecute(func(sink renderer.CommandSink, resources *Resources) error {
		return nil
	})

	graph, err := builder.Compile()
	require.NoError(t, err)
	require.NoError(t, graph.Run(backend))

	assert.Len(t, backend.CommandsOfKind(headless.COMMAND_ALLOCATE_TEXTURE), 1)
	assert.Len(t, backend.CommandsOfKind(headless.COMMAND_RELEASE_TEXTURE), 1)
	assert.Equal(t, 0, backend.LiveTransientCount())
}

func TestCompatibleDisjointTexturesShareOneAllocation(t *testing.T) {
	backend := headless.NewBackend()
	builder := NewBuilder()

	scene := builder.ImportTexture("scene_colour", &metadata.Texture{Name: "scene_colour"})
	first := builder.CreateTexture("first", colourDescriptor(128, 128))
	second := builder.CreateTexture("second", colourDescriptor(128, 128))

	noop := func(sink renderer.CommandSink, resources *Resources) error { return nil }
	builder.AddPass("p0").Writes(first).SetExecute(noop)
	builder.AddPass("p1").Reads(first).Writes(scene).SetExecute(noop)
	builder.AddPass("p2").Writes(second).SetExecute(noop)
	builder.AddPass("p3").Reads(second).Writes(scene).SetExecute(noop)

	graph, err := builder.Compile()
	require.NoError(t, err)
	require.NoError(t, graph.Run(backend))

	// second's lifetime starts after first's ends and the descriptors
	// match, so both map onto one physical texture.
	assert.Len(t, backend.CommandsOfKind(headless.COMMAND_ALLOCATE_TEXTURE), 1)
	assert.Equal(t, 0, backend.LiveTransientCount())
}

func TestIncompatibleTexturesDoNotAlias(t *testing.T) {
	backend := headless.NewBackend()
	builder := NewBuilder()

	scene := builder.ImportTexture("scene_colour", &metadata.Texture{Name: "scene_colour"})
	first := builder.CreateTexture("first", colourDescriptor(128, 128))
	second := builder.CreateTexture("second", colourDescriptor(256, 256))

	noop := func(sink renderer.CommandSink, resources *Resources) error { return nil }
	builder.AddPass("p0").Writes(first).SetExecute(noop)
	builder.AddPass("p1").Reads(first).Writes(scene).SetExecute(noop)
	builder.AddPass("p2").Writes(second).SetExecute(noop)
	builder.AddPass("p3").Reads(second).Writes(scene).SetExecute(noop)

	graph, err := builder.Compile()
	require.NoError(t, err)
	require.NoError(t, graph.Run(backend))

	assert.Len(t, backend.CommandsOfKind(headless.COMMAND_ALLOCATE_TEXTURE), 2)
}

func TestPassFailureStaysLocal(t *testing.T) {
	backend := headless.NewBackend()
	builder := NewBuilder()

	scene := builder.ImportTexture("scene_colour", &metadata.Texture{Name: "scene_colour"})
	ran := false
	builder.AddPass("faulty").Writes(scene).SetExecute(func(sink renderer.CommandSink, resources *Resources) error {
		return assert.AnError
	})
	builder.AddPass("healthy").Writes(scene).SetExecute(func(sink renderer.CommandSink, resources *Resources) error {
		ran = true
		return nil
	})

	graph, err := builder.Compile()
	require.NoError(t, err)
	require.NoError(t, graph.Run(backend))
	assert.True(t, ran, "a failing pass must not take its siblings down")
}
