package mesh

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-materials/engine/geometry"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer/material"
	"github.com/stretchr/testify/assert"
)

func TestMeshesShareMaterial(t *testing.T) {
	mat := material.NewMaterial()
	a := NewMesh(geometry.Sphere(0.5, 16, 16), mat, WithPosition(-2, 0, 0))
	b := NewMesh(geometry.Torus(0.3, 0.2, 16, 32), mat, WithPosition(2, 0, 0))

	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "sphere", a.Name())

	mat.SetRoughness(0.2)
	assert.Equal(t, float32(0.2), a.Material().Roughness())
	assert.Equal(t, float32(0.2), b.Material().Roughness())
}

func TestMeshTransform(t *testing.T) {
	m := NewMesh(geometry.Plane(1, 1, 1, 1), material.NewMaterial(), WithPosition(2, 0, 0))
	m.SetRotation(1.5, -1.5, 0)
	assert.Equal(t, [3]float32{1.5, -1.5, 0}, m.Rotation())

	model := m.ModelMatrix()
	assert.Equal(t, float32(2), model[12])
	assert.Equal(t, float32(1), model[15])

	u := m.GPU()
	assert.Len(t, u.Marshal(), 128)
	// pure rotation: the normal matrix equals the rotation part
	for col := range 3 {
		for row := range 3 {
			assert.InDelta(t, model[col*4+row], u.Normal[col*4+row], 1e-5)
		}
	}
}

func TestMeshEnabled(t *testing.T) {
	m := NewMesh(geometry.Plane(1, 1, 1, 1), material.NewMaterial())
	assert.True(t, m.Enabled())
	m.SetEnabled(false)
	assert.False(t, m.Enabled())
}
