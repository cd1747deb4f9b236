package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/naiad/engine/math"
)

func TestGenerateProjectionMeshConfigFlat(t *testing.T) {
	config := GenerateProjectionMeshConfig(1000.0, true)
	require.NotNil(t, config)

	assert.Equal(t, uint32(4), config.VertexCount)
	assert.Equal(t, uint32(6), config.IndexCount)
	assert.Equal(t, []uint32{0, 2, 1, 2, 3, 1}, config.Indices)

	for _, v := range config.Vertices {
		assert.Equal(t, float32(0.0), v.Position.Y, "flat quad must lie in the XZ plane")
		assert.True(t, v.Normal.Compare(math.NewVec3Up(), math.K_FLOAT_EPSILON))
	}
	assert.True(t, config.MinExtents.Compare(math.NewVec3(-500.0, 0.0, -500.0), math.K_FLOAT_EPSILON))
	assert.True(t, config.MaxExtents.Compare(math.NewVec3(500.0, 0.0, 500.0), math.K_FLOAT_EPSILON))
	assert.True(t, config.Center.Compare(math.NewVec3Zero(), math.K_FLOAT_EPSILON))
}

func TestGenerateProjectionMeshConfigUpright(t *testing.T) {
	config := GenerateProjectionMeshConfig(10.0, false)

	for _, v := range config.Vertices {
		assert.Equal(t, float32(0.0), v.Position.Z, "upright quad must lie in the XY plane")
		assert.True(t, v.Normal.Compare(math.NewVec3(0.0, 0.0, 1.0), math.K_FLOAT_EPSILON))
	}
}

func TestGenerateProjectionMeshConfigAllocatesFresh(t *testing.T) {
	first := GenerateProjectionMeshConfig(100.0, true)
	second := GenerateProjectionMeshConfig(100.0, true)

	first.Vertices[0].Position.X = 9999.0
	first.Indices[0] = 42

	assert.Equal(t, float32(-50.0), second.Vertices[0].Position.X)
	assert.Equal(t, uint32(0), second.Indices[0])
}
