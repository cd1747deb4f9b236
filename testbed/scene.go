package testbed

import (
	"fmt"

	"github.com/spaghettifunk/naiad/engine/math"
	"github.com/spaghettifunk/naiad/engine/renderer"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
)

/**
 * @brief A small demo scene for exercising the water passes without a
 * host engine: a lake at height 1.5, a couple of boats interacting with
 * the water, an opaque pier that must not reach the interaction buffers,
 * and a set of viewers covering every eligibility rule.
 */
type Scene struct {
	Viewers     []*metadata.Viewer
	Geometries  []*metadata.GeometryRenderData
	Light       *metadata.DirectionalLight
	WaterBody   *math.Transform
	HorizonMesh *metadata.Geometry

	SceneColour *metadata.Texture
	SceneDepth  *metadata.Texture
}

func NewScene(backend renderer.CommandSink) (*Scene, error) {
	water := math.TransformFromPosition(math.NewVec3(0.0, 1.5, 0.0))

	horizonMesh, err := backend.CreateGeometry(metadata.GenerateProjectionMeshConfig(4000.0, true))
	if err != nil {
		return nil, fmt.Errorf("failed to upload horizon water mesh: %w", err)
	}

	light := &metadata.DirectionalLight{
		EulerRotation: math.NewVec3(math.DegToRad(-35.0), math.DegToRad(120.0), 0.0),
		Colour:        math.NewVec4(1.0, 0.95, 0.8, 1.0),
	}

	return &Scene{
		Viewers: []*metadata.Viewer{
			{Kind: metadata.VIEWER_KIND_GAME, Name: "Main Camera", Position: math.NewVec3(12.0, 6.0, -20.0), Width: 1280, Height: 720},
			{Kind: metadata.VIEWER_KIND_SCENE, Name: "Editor Scene", Position: math.NewVec3(-40.0, 25.0, 0.0), Width: 1600, Height: 900},
			{Kind: metadata.VIEWER_KIND_SCENE, Name: "Lake Reflection Capture", Position: math.NewVec3(12.0, -3.0, -20.0), Width: 512, Height: 512},
			{Kind: metadata.VIEWER_KIND_PREVIEW, Name: "Asset Preview", Position: math.NewVec3(0.0, 2.0, -4.0), Width: 256, Height: 256},
			{Kind: metadata.VIEWER_KIND_REFLECTION_PROBE, Name: "Sky Probe", Position: math.NewVec3(0.0, 50.0, 0.0), Width: 128, Height: 128},
		},
		Geometries: []*metadata.GeometryRenderData{
			// Water-interacting transparent objects at various distances.
			boat(1, math.NewVec3(4.0, 1.5, -12.0)),
			boat(2, math.NewVec3(-8.0, 1.5, 6.0)),
			boat(3, math.NewVec3(30.0, 1.5, 25.0)),
			// A transparent object without the interaction tag.
			{
				Model:       math.NewMat4Translation(math.NewVec3(0.0, 3.0, 0.0)),
				ShaderTag:   "glass",
				RenderQueue: metadata.RENDER_QUEUE_TRANSPARENT_START + 10,
				UniqueID:    100,
			},
			// An opaque pier; wrong queue, never drawn by the water passes.
			{
				Model:       math.NewMat4Translation(math.NewVec3(10.0, 1.0, -10.0)),
				ShaderTag:   metadata.SHADER_TAG_WATER_INTERACTION,
				RenderQueue: metadata.RENDER_QUEUE_OPAQUE,
				UniqueID:    101,
			},
		},
		Light:       light,
		WaterBody:   water,
		HorizonMesh: horizonMesh,
		SceneColour: &metadata.Texture{Name: "scene_colour", Width: 1280, Height: 720, Format: metadata.TextureFormatRGBA8},
		SceneDepth: &metadata.Texture{
			Name: "scene_depth", Width: 1280, Height: 720,
			Format: metadata.TextureFormatDepth32F, DepthBitDepth: 32,
			Flags: metadata.TextureFlagBits(metadata.TextureFlagIsDepth),
		},
	}, nil
}

func boat(id uint32, position math.Vec3) *metadata.GeometryRenderData {
	return &metadata.GeometryRenderData{
		Model:       math.NewMat4Translation(position),
		ShaderTag:   metadata.SHADER_TAG_WATER_INTERACTION,
		RenderQueue: metadata.RENDER_QUEUE_TRANSPARENT_START + int32(id),
		UniqueID:    id,
	}
}

// FrameContext assembles the per-viewer frame state the way a host
// pipeline would, including the once-per-frame ambient probe sample.
func (s *Scene) FrameContext(viewer *metadata.Viewer, frameNumber uint64, delta float64) *metadata.FrameContext {
	return &metadata.FrameContext{
		FrameNumber:  frameNumber,
		DeltaTime:    delta,
		Viewer:       viewer,
		Geometries:   s.Geometries,
		PrimaryLight: s.Light,
		AmbientProbe: s.sampleAmbient(viewer.Position),
		WaterBody:    s.WaterBody,
		SceneColour:  s.SceneColour,
		SceneDepth:   s.SceneDepth,
	}
}

// sampleAmbient fakes a spherical-harmonics probe lookup with a constant
// sky term plus a small positional variation.
func (s *Scene) sampleAmbient(position math.Vec3) metadata.AmbientProbe {
	probe := metadata.AmbientProbe{}
	probe.Coefficients[0] = math.NewVec3(0.4, 0.5, 0.6)
	probe.Coefficients[1] = math.NewVec3(0.0, position.Y*0.01, 0.0)
	return probe
}
