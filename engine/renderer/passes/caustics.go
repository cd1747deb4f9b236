package passes

import (
	"github.com/spaghettifunk/naiad/engine/core"
	"github.com/spaghettifunk/naiad/engine/math"
	"github.com/spaghettifunk/naiad/engine/renderer"
	"github.com/spaghettifunk/naiad/engine/renderer/framegraph"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
)

/**
 * @brief Projects fake underwater light caustics onto geometry near the
 * water surface by drawing a ground-aligned quad. The quad follows the
 * viewer on X/Z while Y is clamped to the current water-plane height, so
 * the projection always sits at the water surface regardless of viewer
 * altitude.
 *
 * The scene depth buffer is declared as a read even though this pass
 * never writes depth: the shading program clips and blends against
 * existing geometry depth.
 */
type CausticsPass struct {
	cache  *ResourceCache
	config *metadata.WaterConfig
}

func NewCausticsPass(cache *ResourceCache, config *metadata.WaterConfig) *CausticsPass {
	return &CausticsPass{cache: cache, config: config}
}

func (p *CausticsPass) Name() string {
	return "water.caustics"
}

func (p *CausticsPass) InsertionPoint() metadata.InsertionPoint {
	return metadata.INSERTION_POINT_BEFORE_TRANSPARENTS
}

func (p *CausticsPass) SetConfig(config *metadata.WaterConfig) {
	p.config = config
}

func (p *CausticsPass) DeclareResources(builder *framegraph.Builder, frame *metadata.FrameContext) error {
	viewer := frame.Viewer
	if !viewerEligible(viewer) || viewer.Kind == metadata.VIEWER_KIND_PREVIEW {
		core.MetricsPassSkipped()
		return nil
	}
	mesh, err := p.cache.CausticsMesh()
	if err != nil {
		core.LogError("caustics pass could not create its projection mesh: %s", err.Error())
		core.MetricsPassSkipped()
		return nil
	}
	shader, err := p.cache.CausticsShader()
	if err != nil {
		// Disabled for this frame only; creation is retried next frame.
		core.LogError("caustics pass could not create its shading program: %s", err.Error())
		core.MetricsPassSkipped()
		return nil
	}
	if frame.SceneColour == nil || frame.SceneDepth == nil {
		core.LogDebug("caustics pass skipped, host scene buffers unavailable")
		core.MetricsPassSkipped()
		return nil
	}

	waterHeight := frame.WaterPlaneHeight()
	position := math.NewVec3(viewer.Position.X, waterHeight, viewer.Position.Z)
	model := math.NewMat4Translation(position)

	batch := &metadata.DrawBatch{
		Shader: shader,
		Uniforms: metadata.DrawUniforms{
			Model:        model,
			SunDirection: sunOrientation(frame.PrimaryLight),
			WaterHeight:  waterHeight,
		},
		Geometries: []*metadata.GeometryRenderData{{
			Model:    model,
			Geometry: mesh,
		}},
		DepthTest: true,
	}

	sceneColour := builder.ImportTexture("scene_colour", frame.SceneColour)
	sceneDepth := builder.ImportTexture("scene_depth", frame.SceneDepth)

	node := builder.AddPass(p.Name())
	node.Reads(sceneDepth).Writes(sceneColour)
	node.SetExecute(func(sink renderer.CommandSink, resources *framegraph.Resources) error {
		sink.BindTargets([]*metadata.Texture{resources.Get(sceneColour)}, resources.Get(sceneDepth))
		if err := sink.SubmitBatch(batch); err != nil {
			return err
		}
		core.MetricsPassSubmitted()
		return nil
	})
	return nil
}

// sunOrientation derives the sun-direction matrix from the primary
// directional light. A missing light is not an error: a fixed default
// orientation of pitch -45, yaw 45 degrees is used instead.
func sunOrientation(light *metadata.DirectionalLight) math.Mat4 {
	if light != nil {
		return light.OrientationMatrix()
	}
	return math.NewMat4EulerXYZ(math.DegToRad(-45.0), math.DegToRad(45.0), 0.0)
}
