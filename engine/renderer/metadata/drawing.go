package metadata

import (
	"github.com/spaghettifunk/naiad/engine/math"
)

const (
	/** @brief The render queue value for standard opaque objects. */
	RENDER_QUEUE_OPAQUE int32 = 2000
	/** @brief The first queue value of the transparent range. */
	RENDER_QUEUE_TRANSPARENT_START int32 = 3000
	/** @brief The last queue value of the transparent range. */
	RENDER_QUEUE_TRANSPARENT_END int32 = 3999
)

/** @brief The shading-program variant tag selecting water-interacting objects. */
const SHADER_TAG_WATER_INTERACTION string = "water_interaction"

/**
 * @brief Selects which of the visible objects a pass actually draws:
 * a render-queue range plus a shading-program variant tag.
 * Fixed for the lifetime of the pass.
 */
type DrawFilter struct {
	QueueStart int32
	QueueEnd   int32
	ShaderTag  string
}

// NewWaterInteractionFilter returns the filter used by the interaction
// buffer pass: transparent-range objects tagged for water interaction.
func NewWaterInteractionFilter() DrawFilter {
	return DrawFilter{
		QueueStart: RENDER_QUEUE_TRANSPARENT_START,
		QueueEnd:   RENDER_QUEUE_TRANSPARENT_END,
		ShaderTag:  SHADER_TAG_WATER_INTERACTION,
	}
}

func (f DrawFilter) Matches(data *GeometryRenderData) bool {
	if data.RenderQueue < f.QueueStart || data.RenderQueue > f.QueueEnd {
		return false
	}
	return f.ShaderTag == "" || f.ShaderTag == data.ShaderTag
}

/**
 * @brief A single renderable object as provided by the host pipeline's
 * visibility determination.
 */
type GeometryRenderData struct {
	/** @brief The world Model matrix. */
	Model math.Mat4
	/** @brief The Geometry to be drawn. */
	Geometry *Geometry
	/** @brief The shading-program variant tag of the object's material. */
	ShaderTag string
	/** @brief The render queue classification of the object. */
	RenderQueue int32
	/** @brief The unique identifier of the object. */
	UniqueID uint32
}

/**
 * @brief Precomputed low-frequency lighting sample (second-order
 * spherical-harmonics coefficients) representing ambient illumination
 * at a point. A value type so it can be snapshotted into draw uniforms.
 */
type AmbientProbe struct {
	Coefficients [9]math.Vec3
}

/**
 * @brief The primary directional light of the scene.
 */
type DirectionalLight struct {
	/** @brief The orientation as Euler angles (pitch, yaw, roll) in radians. */
	EulerRotation math.Vec3
	/** @brief The light Colour. */
	Colour math.Vec4
}

// OrientationMatrix returns the light's rotation matrix, used as the
// sun-direction uniform by the caustics pass.
func (l *DirectionalLight) OrientationMatrix() math.Mat4 {
	return math.NewMat4EulerXYZ(l.EulerRotation.X, l.EulerRotation.Y, l.EulerRotation.Z)
}

const (
	/** @brief The per-draw sun-direction matrix uniform name. */
	UNIFORM_SUN_DIRECTION string = "sun_direction"
	/** @brief The per-draw water-plane world height uniform name. */
	UNIFORM_WATER_HEIGHT string = "water_height"
	/** @brief The per-draw bump-scale uniform name. */
	UNIFORM_BUMP_SCALE string = "bump_scale"
)

/** @brief The fixed bump-scale constant of the horizon water material. */
const WATER_BUMP_SCALE float32 = 0.5

/**
 * @brief The per-draw uniform values of a pass invocation. All fields are
 * value types: they are snapshotted at declaration time and must not
 * depend on state that changes before deferred execution runs.
 */
type DrawUniforms struct {
	/** @brief The Model matrix of the drawn mesh. */
	Model math.Mat4
	/** @brief The sun-direction matrix (caustics only). */
	SunDirection math.Mat4
	/** @brief The current water-plane world height. */
	WaterHeight float32
	/** @brief The bump-scale constant (horizon water only). */
	BumpScale float32
	/** @brief The ambient probe coefficients (horizon water only). */
	Ambient AmbientProbe
}

/**
 * @brief One draw-call batch submitted to the command sink.
 */
type DrawBatch struct {
	/** @brief The shading program to draw with. */
	Shader *Shader
	/** @brief The snapshotted per-draw uniform values. */
	Uniforms DrawUniforms
	/** @brief The objects to draw, already sorted for compositing. */
	Geometries []*GeometryRenderData
	/** @brief Whether the depth test is enabled for this batch. */
	DepthTest bool
}

/** @brief Pipeline phases the water passes can be inserted at. */
type InsertionPoint int

const (
	/** @brief Before the host pipeline's opaque pre-passes. */
	INSERTION_POINT_BEFORE_OPAQUE_PREPASS InsertionPoint = 0x1
	/** @brief Before the host pipeline draws regular transparent objects. */
	INSERTION_POINT_BEFORE_TRANSPARENTS InsertionPoint = 0x2
)

/**
 * @brief The per-frame, per-viewer context handed to the water passes by
 * the host pipeline. Read-only to the passes.
 */
type FrameContext struct {
	/** @brief The monotonically increasing frame number. */
	FrameNumber uint64
	/** @brief Time in seconds since the previous frame. */
	DeltaTime float64
	/** @brief The Viewer being rendered. */
	Viewer *Viewer
	/** @brief The host-culled visible object list. */
	Geometries []*GeometryRenderData
	/** @brief The primary directional light. Nil when the scene has none. */
	PrimaryLight *DirectionalLight
	/** @brief The ambient probe, sampled at the viewer position by the host. */
	AmbientProbe AmbientProbe
	/** @brief The transform of the water body. Nil when no water body exists. */
	WaterBody *math.Transform
	/** @brief The host scene colour buffer for this viewer. */
	SceneColour *Texture
	/** @brief The host scene depth buffer for this viewer. */
	SceneDepth *Texture
}

// WaterPlaneHeight returns the current water-surface world height, read
// from the water body transform. Zero when no water body exists.
func (fc *FrameContext) WaterPlaneHeight() float32 {
	if fc.WaterBody == nil {
		return 0
	}
	return fc.WaterBody.Position.Y
}
