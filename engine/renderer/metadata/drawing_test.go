package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/naiad/engine/math"
)

func TestWaterInteractionFilter(t *testing.T) {
	filter := NewWaterInteractionFilter()

	assert.True(t, filter.Matches(&GeometryRenderData{
		RenderQueue: RENDER_QUEUE_TRANSPARENT_START,
		ShaderTag:   SHADER_TAG_WATER_INTERACTION,
	}))
	assert.True(t, filter.Matches(&GeometryRenderData{
		RenderQueue: RENDER_QUEUE_TRANSPARENT_END,
		ShaderTag:   SHADER_TAG_WATER_INTERACTION,
	}))
	assert.False(t, filter.Matches(&GeometryRenderData{
		RenderQueue: RENDER_QUEUE_OPAQUE,
		ShaderTag:   SHADER_TAG_WATER_INTERACTION,
	}), "opaque objects never reach the interaction buffers")
	assert.False(t, filter.Matches(&GeometryRenderData{
		RenderQueue: RENDER_QUEUE_TRANSPARENT_START,
		ShaderTag:   "glass",
	}), "untagged transparents never reach the interaction buffers")
	assert.False(t, filter.Matches(&GeometryRenderData{
		RenderQueue: RENDER_QUEUE_TRANSPARENT_END + 1,
		ShaderTag:   SHADER_TAG_WATER_INTERACTION,
	}))
}

func TestWaterPlaneHeight(t *testing.T) {
	frame := &FrameContext{}
	assert.Equal(t, float32(0.0), frame.WaterPlaneHeight(), "no water body means height zero")

	frame.WaterBody = math.TransformFromPosition(math.NewVec3(3.0, 1.5, -2.0))
	assert.Equal(t, float32(1.5), frame.WaterPlaneHeight())
}

func TestDirectionalLightOrientationMatrix(t *testing.T) {
	light := &DirectionalLight{
		EulerRotation: math.NewVec3(math.DegToRad(30.0), math.DegToRad(60.0), 0.0),
	}
	want := math.NewMat4EulerXYZ(math.DegToRad(30.0), math.DegToRad(60.0), 0.0)
	assert.True(t, light.OrientationMatrix().Compare(want, math.K_FLOAT_EPSILON))
}

func TestViewerReflectionCaptureMarker(t *testing.T) {
	capture := &Viewer{Kind: VIEWER_KIND_SCENE, Name: "Lake Reflection Capture"}
	assert.True(t, capture.IsReflectionCapture())

	plain := &Viewer{Kind: VIEWER_KIND_SCENE, Name: "Editor Scene"}
	assert.False(t, plain.IsReflectionCapture())
}

func TestFrameTextureDescriptorFromTarget(t *testing.T) {
	colour := FrameTextureDescriptorFromTarget(NewColourTargetDescriptor(1280, 720))
	assert.Equal(t, uint32(1280), colour.Width)
	assert.Equal(t, TextureFormatRGBA8, colour.ColourFormat)
	assert.Equal(t, uint8(0), colour.DepthBitDepth)
	assert.Equal(t, uint8(1), colour.SampleCount)

	depth := FrameTextureDescriptorFromTarget(NewDepthTargetDescriptor(1280, 720))
	assert.Equal(t, TextureFormatDepth32F, depth.ColourFormat)
	assert.Equal(t, uint8(32), depth.DepthBitDepth)

	// A zero sample count defaults to single-sampled.
	legacy := &RenderTargetDescriptor{Width: 64, Height: 64}
	assert.Equal(t, uint8(1), FrameTextureDescriptorFromTarget(legacy).SampleCount)
}

func TestInteractionBufferClearColour(t *testing.T) {
	want := math.NewVec4(0.0, 0.5, 0.5, 0.5)
	assert.True(t, InteractionBufferClearColour().Compare(want, math.K_FLOAT_EPSILON))
}
