package passes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/naiad/engine/math"
	"github.com/spaghettifunk/naiad/engine/renderer/framegraph"
	"github.com/spaghettifunk/naiad/engine/renderer/headless"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
)

func gameViewer() *metadata.Viewer {
	return &metadata.Viewer{
		Kind:     metadata.VIEWER_KIND_GAME,
		Name:     "Main Camera",
		Position: math.NewVec3(10.0, 5.0, -20.0),
		Width:    1280,
		Height:   720,
	}
}

func testFrame(viewer *metadata.Viewer) *metadata.FrameContext {
	return &metadata.FrameContext{
		FrameNumber: 1,
		Viewer:      viewer,
		WaterBody:   math.TransformFromPosition(math.NewVec3(0.0, 1.5, 0.0)),
		SceneColour: &metadata.Texture{Name: "scene_colour", Width: 1280, Height: 720},
		SceneDepth:  &metadata.Texture{Name: "scene_depth", Width: 1280, Height: 720, DepthBitDepth: 32},
	}
}

func interacting(id uint32, position math.Vec3) *metadata.GeometryRenderData {
	return &metadata.GeometryRenderData{
		Model:       math.NewMat4Translation(position),
		ShaderTag:   metadata.SHADER_TAG_WATER_INTERACTION,
		RenderQueue: metadata.RENDER_QUEUE_TRANSPARENT_START,
		UniqueID:    id,
	}
}

// declarePass runs DeclareResources against a fresh builder and returns
// the compiled graph without executing it, so tests can mutate frame
// state in between.
func declarePass(t *testing.T, pass WaterPass, frame *metadata.FrameContext) *framegraph.Graph {
	t.Helper()
	builder := framegraph.NewBuilder()
	require.NoError(t, pass.DeclareResources(builder, frame))
	graph, err := builder.Compile()
	require.NoError(t, err)
	return graph
}

func runPass(t *testing.T, pass WaterPass, frame *metadata.FrameContext, backend *headless.Backend) *framegraph.Graph {
	t.Helper()
	graph := declarePass(t, pass, frame)
	require.NoError(t, graph.Run(backend))
	return graph
}

func submittedBatches(backend *headless.Backend) []*metadata.DrawBatch {
	var out []*metadata.DrawBatch
	for _, c := range backend.CommandsOfKind(headless.COMMAND_SUBMIT_BATCH) {
		out = append(out, c.Batch)
	}
	return out
}
