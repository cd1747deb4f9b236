package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDegToRad(t *testing.T) {
	assert.InDelta(t, K_PI, DegToRad(180.0), 1e-5)
	assert.InDelta(t, -K_PI/4.0, DegToRad(-45.0), 1e-5)
	assert.InDelta(t, 180.0, RadToDeg(K_PI), 1e-4)
}

func TestMat4Translation(t *testing.T) {
	m := NewMat4Translation(NewVec3(1.0, 2.0, 3.0))
	assert.Equal(t, float32(1.0), m.Data[12])
	assert.Equal(t, float32(2.0), m.Data[13])
	assert.Equal(t, float32(3.0), m.Data[14])

	// Translation only: the rotation block stays identity.
	identity := NewMat4Identity()
	for _, i := range []int{0, 1, 2, 4, 5, 6, 8, 9, 10} {
		assert.Equal(t, identity.Data[i], m.Data[i])
	}
}

func TestMat4EulerXYZComposition(t *testing.T) {
	x, y := DegToRad(30.0), DegToRad(60.0)
	composed := NewMat4EulerX(x).Mul(NewMat4EulerY(y))
	assert.True(t, NewMat4EulerXYZ(x, y, 0.0).Compare(composed, K_FLOAT_EPSILON))
}

func TestVec3Operations(t *testing.T) {
	a := NewVec3(1.0, 0.0, 0.0)
	b := NewVec3(0.0, 1.0, 0.0)

	assert.True(t, a.Cross(b).Compare(NewVec3(0.0, 0.0, 1.0), K_FLOAT_EPSILON))
	assert.InDelta(t, 0.0, a.Dot(b), 1e-6)
	assert.InDelta(t, 5.0, NewVec3(3.0, 4.0, 0.0).Length(), 1e-6)
	assert.InDelta(t, 1.0, NewVec3(0.0, 0.0, 9.0).Normalized().Length(), 1e-6)
	assert.InDelta(t, 5.0, NewVec3(0.0, 3.0, 0.0).Distance(NewVec3(4.0, 0.0, 0.0)), 1e-6)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0.1), Clamp(float32(0.01), 0.1, 1.0))
	assert.Equal(t, float32(1.0), Clamp(float32(7.0), 0.1, 1.0))
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0.1, 1.0))
	assert.Equal(t, uint32(640), Clamp(uint32(640), 1, 1280))
}

func TestTransformWorldMatrix(t *testing.T) {
	transform := TransformFromPosition(NewVec3(0.0, 1.5, 0.0))
	world := transform.GetWorld()
	assert.Equal(t, float32(1.5), world.Data[13])

	transform.SetPosition(NewVec3(0.0, 3.0, 0.0))
	world = transform.GetWorld()
	assert.Equal(t, float32(3.0), world.Data[13], "position changes must invalidate the cached matrix")
}
