package metadata

import (
	"github.com/spaghettifunk/naiad/engine/math"
)

/** @brief The name of the shared caustics projection mesh. */
const CausticsMeshName string = "mesh_water_caustics"

/**
 * @brief Represents the configuration for a geometry.
 */
type GeometryConfig struct {
	/** @brief The number of vertices. */
	VertexCount uint32
	/** @brief An array of Vertices. */
	Vertices []math.Vertex3D
	/** @brief The number of indices. */
	IndexCount uint32
	/** @brief An array of Indices. */
	Indices []uint32

	Center     math.Vec3
	MinExtents math.Vec3
	MaxExtents math.Vec3

	/** @brief The Name of the geometry. */
	Name string
}

/**
 * @brief Represents actual geometry in the world.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uint32
	/** @brief The internal geometry identifier, used by the renderer backend. */
	InternalID uint32
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
	/** @brief The geometry name. */
	Name string
}

/** @brief The default world-unit footprint of the caustics projection mesh. */
const DefaultProjectionMeshSize float32 = 1000.0

/**
 * @brief Generates the configuration for a flat projection quad centered
 * at the origin with half-extent size/2: 4 vertices and 2 triangles with
 * indices {0,2,1} and {2,3,1}. The quad lies in the XZ plane when flat is
 * true, in the XY plane otherwise.
 *
 * Every call allocates a fresh configuration; callers that draw it every
 * frame are responsible for caching the uploaded geometry.
 */
func GenerateProjectionMeshConfig(size float32, flat bool) *GeometryConfig {
	half := size * 0.5

	vertices := make([]math.Vertex3D, 4)
	if flat {
		vertices[0].Position = math.NewVec3(-half, 0.0, -half)
		vertices[1].Position = math.NewVec3(half, 0.0, -half)
		vertices[2].Position = math.NewVec3(-half, 0.0, half)
		vertices[3].Position = math.NewVec3(half, 0.0, half)
		for i := range vertices {
			vertices[i].Normal = math.NewVec3Up()
		}
	} else {
		vertices[0].Position = math.NewVec3(-half, -half, 0.0)
		vertices[1].Position = math.NewVec3(half, -half, 0.0)
		vertices[2].Position = math.NewVec3(-half, half, 0.0)
		vertices[3].Position = math.NewVec3(half, half, 0.0)
		for i := range vertices {
			vertices[i].Normal = math.NewVec3(0.0, 0.0, 1.0)
		}
	}
	vertices[0].Texcoord = math.NewVec2(0.0, 0.0)
	vertices[1].Texcoord = math.NewVec2(1.0, 0.0)
	vertices[2].Texcoord = math.NewVec2(0.0, 1.0)
	vertices[3].Texcoord = math.NewVec2(1.0, 1.0)

	indices := []uint32{0, 2, 1, 2, 3, 1}

	config := &GeometryConfig{
		VertexCount: 4,
		Vertices:    vertices,
		IndexCount:  6,
		Indices:     indices,
		Name:        CausticsMeshName,
	}
	config.MinExtents = vertices[0].Position
	config.MaxExtents = vertices[3].Position
	config.Center = math.NewVec3Zero()
	return config
}

/**
 * @brief Represents a shading program instance.
 */
type Shader struct {
	/** @brief The shader identifier. */
	ID uint32
	/** @brief The shader Name. */
	Name string
}

const (
	/** @brief The horizon water shading program name. */
	WaterShaderName string = "Shader.Water.Horizon"
	/** @brief The caustics projection shading program name. */
	CausticsShaderName string = "Shader.Water.Caustics"
	/** @brief The interaction buffer shading program name. */
	InteractionShaderName string = "Shader.Water.Interaction"
)
