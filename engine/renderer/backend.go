package renderer

import (
	"github.com/spaghettifunk/naiad/engine/math"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
)

/**
 * @brief The command sink the water passes submit work to. The host
 * pipeline provides an implementation backed by its renderer; the
 * headless package provides a recording implementation for tests and
 * offline runs.
 *
 * All calls are frame-synchronous and single-threaded.
 */
type CommandSink interface {
	// BeginFrame is invoked once per viewer before any pass work.
	BeginFrame(frame *metadata.FrameContext) error
	// EndFrame is invoked once per viewer after all pass work.
	EndFrame(frame *metadata.FrameContext) error

	// AllocateTransientTexture allocates a frame-scoped texture from the
	// given descriptor. The caller owns the release.
	AllocateTransientTexture(name string, descriptor *metadata.FrameTextureDescriptor) (*metadata.Texture, error)
	// ReleaseTransientTexture returns a transient texture to the backend.
	ReleaseTransientTexture(texture *metadata.Texture)

	// BindTargets binds the given colour textures (multiple-render-target
	// write) and optional depth texture for subsequent draws.
	BindTargets(colours []*metadata.Texture, depth *metadata.Texture)
	// Clear clears all currently bound colour targets to the given value.
	Clear(colour math.Vec4)
	// SubmitBatch submits one draw-call batch.
	SubmitBatch(batch *metadata.DrawBatch) error

	// PublishGlobalTexture publishes a texture under a well-known name so
	// downstream shading programs can sample it.
	PublishGlobalTexture(name string, texture *metadata.Texture)

	// CreateGeometry uploads the given geometry configuration.
	CreateGeometry(config *metadata.GeometryConfig) (*metadata.Geometry, error)
	// DestroyGeometry releases an uploaded geometry.
	DestroyGeometry(geometry *metadata.Geometry)

	// CreateShader creates a shading-program instance by name.
	CreateShader(name string) (*metadata.Shader, error)
	// DestroyShader releases a shading-program instance.
	DestroyShader(shader *metadata.Shader)
}
