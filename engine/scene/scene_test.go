package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-materials/engine/geometry"
	"github.com/Carmen-Shannon/oxy-materials/engine/light"
	"github.com/Carmen-Shannon/oxy-materials/engine/mesh"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-materials/engine/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneMeshes(t *testing.T) {
	mat := material.NewMaterial()
	sphere := mesh.NewMesh(geometry.Sphere(0.5, 16, 16), mat)
	plane := mesh.NewMesh(geometry.Plane(1, 1, 1, 1), mat)
	torus := mesh.NewMesh(geometry.Torus(0.3, 0.2, 16, 32), mat)

	s := NewScene("demo", WithMeshes(sphere))
	s.Add(plane, torus, sphere)
	require.Equal(t, 3, s.Count())

	ids := []uint64{}
	for _, m := range s.Meshes() {
		ids = append(ids, m.ID())
	}
	assert.Equal(t, []uint64{sphere.ID(), plane.ID(), torus.ID()}, ids)

	assert.Equal(t, plane, s.Get(plane.ID()))
	assert.True(t, s.Remove(plane.ID()))
	assert.False(t, s.Remove(plane.ID()))
	assert.Nil(t, s.Get(plane.ID()))
	assert.Equal(t, 2, s.Count())

	s.Clear()
	assert.Zero(t, s.Count())
}

func TestSceneLights(t *testing.T) {
	l := light.NewPointLight()
	s := NewScene("demo", WithLights(l))
	s.AddLight(l)
	assert.Len(t, s.Lights(), 1)
	s.RemoveLight(l)
	assert.Empty(t, s.Lights())
}

func TestSceneEnvironment(t *testing.T) {
	s := NewScene("demo")
	assert.Nil(t, s.Background())
	assert.Equal(t, DefaultAmbientColor, s.AmbientColor())

	env := texture.NewTexture("2k.hdr", texture.WithMapping(texture.MappingEquirectangularReflection))
	s.SetBackground(env)
	s.SetEnvironment(env)
	assert.Equal(t, env, s.Background())
	assert.Equal(t, env, s.Environment())

	s.SetAmbientColor([3]float32{1, 0, 0})
	assert.Equal(t, [3]float32{1, 0, 0}, s.AmbientColor())
}

func TestGPUEnvironmentUniform(t *testing.T) {
	s := NewScene("demo", WithAmbientColor([3]float32{0.1, 0.2, 0.3}))
	u := NewGPUEnvironmentUniform(s)
	assert.Equal(t, uint32(0), u.HasEnvironment)
	assert.Equal(t, [3]float32{0.1, 0.2, 0.3}, u.Ambient)

	env := texture.NewTexture("2k.hdr")
	s.SetEnvironment(env)
	assert.Equal(t, uint32(0), NewGPUEnvironmentUniform(s).HasEnvironment, "unloaded environment is ignored")

	env.SetFloatImage(&texture.FloatImage{Width: 1, Height: 1, Pix: []float32{1, 1, 1, 1}})
	u = NewGPUEnvironmentUniform(s)
	assert.Equal(t, uint32(1), u.HasEnvironment)
	assert.Equal(t, 16, u.Size())
	require.Len(t, u.Marshal(), 16)
	assert.Equal(t, []byte{1, 0, 0, 0}, u.Marshal()[12:])
}
