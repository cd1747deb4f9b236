package passes

import (
	"github.com/spaghettifunk/naiad/engine/core"
	"github.com/spaghettifunk/naiad/engine/math"
	"github.com/spaghettifunk/naiad/engine/renderer"
	"github.com/spaghettifunk/naiad/engine/renderer/framegraph"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
)

/**
 * @brief Draws a single large caller-supplied mesh centered on the viewer
 * at water level zero so the surface appears to extend to the horizon
 * regardless of viewer movement. Runs immediately before the host
 * pipeline draws regular transparent objects, so the infinite water is
 * available as a backdrop for nearer transparent geometry.
 *
 * Never runs for reflection-capture viewers: planar reflections must not
 * draw the infinite water into themselves.
 */
type HorizonWaterPass struct {
	cache *ResourceCache
	mesh  *metadata.Geometry
}

func NewHorizonWaterPass(cache *ResourceCache) *HorizonWaterPass {
	return &HorizonWaterPass{cache: cache}
}

func (p *HorizonWaterPass) Name() string {
	return "water.horizon"
}

func (p *HorizonWaterPass) InsertionPoint() metadata.InsertionPoint {
	return metadata.INSERTION_POINT_BEFORE_TRANSPARENTS
}

// SetMesh assigns the horizon water geometry. The mesh is authored
// externally and resolved by the surrounding system from configuration.
func (p *HorizonWaterPass) SetMesh(mesh *metadata.Geometry) {
	p.mesh = mesh
}

func (p *HorizonWaterPass) DeclareResources(builder *framegraph.Builder, frame *metadata.FrameContext) error {
	viewer := frame.Viewer
	if !viewerEligible(viewer) || viewer.IsReflectionCapture() {
		core.MetricsPassSkipped()
		return nil
	}
	if p.mesh == nil {
		core.LogError("horizon water pass has no mesh assigned, skipping draw for this frame")
		core.MetricsPassSkipped()
		return nil
	}
	shader, err := p.cache.WaterShader()
	if err != nil {
		// Disabled for this frame only; creation is retried next frame.
		core.LogError("horizon water pass could not create its shading program: %s", err.Error())
		core.MetricsPassSkipped()
		return nil
	}
	if frame.SceneColour == nil || frame.SceneDepth == nil {
		core.LogDebug("horizon water pass skipped, host scene buffers unavailable")
		core.MetricsPassSkipped()
		return nil
	}

	// The mesh follows the viewer on X/Z with identity rotation/scale.
	position := math.NewVec3(viewer.Position.X, 0.0, viewer.Position.Z)
	model := math.NewMat4Translation(position)

	// Per-draw values are snapshotted here; the ambient probe is copied
	// by value, sampled at viewer position once per frame by the host.
	batch := &metadata.DrawBatch{
		Shader: shader,
		Uniforms: metadata.DrawUniforms{
			Model:       model,
			WaterHeight: frame.WaterPlaneHeight(),
			BumpScale:   metadata.WATER_BUMP_SCALE,
			Ambient:     frame.AmbientProbe,
		},
		Geometries: []*metadata.GeometryRenderData{{
			Model:    model,
			Geometry: p.mesh,
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
