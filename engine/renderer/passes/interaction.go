package passes

import (
	"sort"

	"github.com/spaghettifunk/naiad/engine/core"
	"github.com/spaghettifunk/naiad/engine/math"
	"github.com/spaghettifunk/naiad/engine/renderer"
	"github.com/spaghettifunk/naiad/engine/renderer/framegraph"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
)

/**
 * @brief Renders all transparent objects tagged as water-interacting into
 * two packed full-resolution buffers: A carries foam/normal-x/normal-z/
 * displacement, B is reserved for future packed data. A placeholder depth
 * target is allocated alongside because the host pipeline's real depth is
 * not available yet at this phase.
 *
 * The buffers have no graph-visible readers; later shading programs
 * sample them through the published global bindings. They are therefore
 * declared as externally observed so the scheduler does not cull the
 * pass, and the integration layer releases them once the camera is done.
 */
type InteractionBufferPass struct {
	filter metadata.DrawFilter
	config *metadata.WaterConfig
}

func NewInteractionBufferPass(config *metadata.WaterConfig) *InteractionBufferPass {
	return &InteractionBufferPass{
		filter: metadata.NewWaterInteractionFilter(),
		config: config,
	}
}

func (p *InteractionBufferPass) Name() string {
	return "water.interaction"
}

func (p *InteractionBufferPass) InsertionPoint() metadata.InsertionPoint {
	return metadata.INSERTION_POINT_BEFORE_OPAQUE_PREPASS
}

func (p *InteractionBufferPass) SetConfig(config *metadata.WaterConfig) {
	p.config = config
}

func (p *InteractionBufferPass) DeclareResources(builder *framegraph.Builder, frame *metadata.FrameContext) error {
	if !viewerEligible(frame.Viewer) {
		core.MetricsPassSkipped()
		return nil
	}

	scale := float32(1.0)
	if p.config != nil && p.config.ResolutionScale > 0 {
		scale = p.config.ResolutionScale
	}
	width := math.Clamp(uint32(float32(frame.Viewer.Width)*scale), 1, frame.Viewer.Width)
	height := math.Clamp(uint32(float32(frame.Viewer.Height)*scale), 1, frame.Viewer.Height)

	descriptorA := metadata.FrameTextureDescriptorFromTarget(metadata.NewColourTargetDescriptor(width, height))
	descriptorB := metadata.FrameTextureDescriptorFromTarget(metadata.NewColourTargetDescriptor(width, height))
	descriptorDepth := metadata.FrameTextureDescriptorFromTarget(metadata.NewDepthTargetDescriptor(width, height))

	bufferA := builder.CreateTexture(metadata.WATER_INTERACTION_A_TEXTURE_NAME, descriptorA)
	bufferB := builder.CreateTexture(metadata.WATER_INTERACTION_B_TEXTURE_NAME, descriptorB)
	depth := builder.CreateTexture(metadata.WATER_INTERACTION_DEPTH_TEXTURE_NAME, descriptorDepth)

	// Sampled as ambient global bindings, never read through the graph.
	builder.MarkExternallyObserved(bufferA)
	builder.MarkExternallyObserved(bufferB)

	// Snapshot the draw list now: filtered and sorted back-to-front for
	// standard transparent compositing.
	geometries := p.collectGeometries(frame)
	clearColour := metadata.InteractionBufferClearColour()

	node := builder.AddPass(p.Name())
	node.Writes(bufferA, bufferB, depth)
	node.SetExecute(func(sink renderer.CommandSink, resources *framegraph.Resources) error {
		a := resources.Get(bufferA)
		b := resources.Get(bufferB)
		sink.BindTargets([]*metadata.Texture{a, b}, resources.Get(depth))
		sink.Clear(clearColour)
		if len(geometries) > 0 {
			batch := &metadata.DrawBatch{
				Geometries: geometries,
				DepthTest:  false,
			}
			if err := sink.SubmitBatch(batch); err != nil {
				return err
			}
		}
		// An empty buffer is a valid value ("no interaction anywhere"),
		// so publication happens even with zero draws.
		sink.PublishGlobalTexture(metadata.WATER_INTERACTION_A_TEXTURE_NAME, a)
		sink.PublishGlobalTexture(metadata.WATER_INTERACTION_B_TEXTURE_NAME, b)
		core.MetricsPassSubmitted()
		return nil
	})
	return nil
}

func (p *InteractionBufferPass) collectGeometries(frame *metadata.FrameContext) []*metadata.GeometryRenderData {
	var out []*metadata.GeometryRenderData
	for _, g := range frame.Geometries {
		if p.filter.Matches(g) {
			out = append(out, g)
		}
	}
	viewerPosition := frame.Viewer.Position
	sort.Slice(out, func(i, j int) bool {
		return objectDistance(out[i], viewerPosition) > objectDistance(out[j], viewerPosition)
	})
	return out
}

func objectDistance(data *metadata.GeometryRenderData, from math.Vec3) float32 {
	position := math.NewVec3(data.Model.Data[12], data.Model.Data[13], data.Model.Data[14])
	if data.Geometry != nil {
		position = position.Add(data.Geometry.Center)
	}
	return position.Distance(from)
}
