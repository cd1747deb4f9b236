package passes

import (
	"github.com/spaghettifunk/naiad/engine/renderer"
	"github.com/spaghettifunk/naiad/engine/renderer/metadata"
)

/**
 * @brief Holds the lazily created resources shared by the water passes:
 * the caustics projection mesh and the water shading programs. Owned by
 * the pipeline-integration layer and passed into each pass at
 * construction.
 *
 * Each resource is created at most once, on first acquisition. A failed
 * creation is not cached: the owning pass skips its frame and the next
 * acquisition retries. Access is single-threaded by the frame loop, so
 * no locking is required. Destroyed only at pipeline teardown.
 */
type ResourceCache struct {
	backend renderer.CommandSink

	causticsMesh   *metadata.Geometry
	waterShader    *metadata.Shader
	causticsShader *metadata.Shader
}

func NewResourceCache(backend renderer.CommandSink) *ResourceCache {
	return &ResourceCache{backend: backend}
}

// CausticsMesh returns the shared projection quad, generating and
// uploading it on first use.
func (c *ResourceCache) CausticsMesh() (*metadata.Geometry, error) {
	if c.causticsMesh != nil {
		return c.causticsMesh, nil
	}
	config := metadata.GenerateProjectionMeshConfig(metadata.DefaultProjectionMeshSize, true)
	mesh, err := c.backend.CreateGeometry(config)
	if err != nil {
		return nil, err
	}
	c.causticsMesh = mesh
	return mesh, nil
}

// WaterShader returns the horizon water shading program, creating it on
// first use.
func (c *ResourceCache) WaterShader() (*metadata.Shader, error) {
	if c.waterShader != nil {
		return c.waterShader, nil
	}
	shader, err := c.backend.CreateShader(metadata.WaterShaderName)
	if err != nil {
		return nil, err
	}
	c.waterShader = shader
	return shader, nil
}

// CausticsShader returns the caustics shading program, creating it on
// first use.
func (c *ResourceCache) CausticsShader() (*metadata.Shader, error) {
	if c.causticsShader != nil {
		return c.causticsShader, nil
	}
	shader, err := c.backend.CreateShader(metadata.CausticsShaderName)
	if err != nil {
		return nil, err
	}
	c.causticsShader = shader
	return shader, nil
}

// Destroy releases the cached resources. Called at pipeline teardown only.
func (c *ResourceCache) Destroy() {
	if c.causticsMesh != nil {
		c.backend.DestroyGeometry(c.causticsMesh)
		c.causticsMesh = nil
	}
	if c.waterShader != nil {
		c.backend.DestroyShader(c.waterShader)
		c.waterShader = nil
	}
	if c.causticsShader != nil {
		c.backend.DestroyShader(c.causticsShader)
		c.causticsShader = nil
	}
}
