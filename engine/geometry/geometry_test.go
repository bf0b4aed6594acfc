package geometry

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveCounts(t *testing.T) {
	tests := []struct {
		name         string
		geo          Geometry
		wantVertices int
		wantIndices  int
	}{
		{"sphere 0.5 16x16", Sphere(0.5, 16, 16), 17 * 17, 16 * 15 * 2 * 3},
		{"plane 1x1 100x100", Plane(1, 1, 100, 100), 101 * 101, 100 * 100 * 6},
		{"torus 0.3 0.2 16x32", Torus(0.3, 0.2, 16, 32), 17 * 33, 16 * 32 * 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.geo.Vertices(), tt.wantVertices)
			assert.Len(t, tt.geo.Indices(), tt.wantIndices)
			assert.Len(t, tt.geo.VertexBytes(), tt.wantVertices*48)
			assert.Len(t, tt.geo.IndexBytes(), tt.wantIndices*4)
			for _, idx := range tt.geo.Indices() {
				require.Less(t, int(idx), tt.wantVertices)
			}
		})
	}
}

func TestSphereVerticesOnSurface(t *testing.T) {
	g := Sphere(0.5, 16, 16)
	for _, v := range g.Vertices() {
		p := v.Position
		r := math32.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
		assert.InDelta(t, 0.5, r, 1e-5)
	}
	first := g.Vertices()[0]
	assert.InDelta(t, 0.5, first.Position[1], 1e-6, "first row is the north pole")
	assert.InDelta(t, 1, first.TexCoord[1], 1e-6)
	assert.InDelta(t, 0.5/16, first.TexCoord[0], 1e-6)
}

func TestPlaneLayout(t *testing.T) {
	g := Plane(1, 1, 2, 2)
	v := g.Vertices()
	assert.Equal(t, [3]float32{-0.5, 0.5, 0}, v[0].Position)
	assert.Equal(t, [2]float32{0, 1}, v[0].TexCoord)
	assert.Equal(t, [3]float32{0.5, -0.5, 0}, v[8].Position)
	assert.Equal(t, [2]float32{1, 0}, v[8].TexCoord)
	assert.Equal(t, []uint32{0, 3, 1, 3, 4, 1}, g.Indices()[:6])

	// tangents follow +u, which is +X on the plane
	for _, vert := range v {
		assert.InDelta(t, 1, vert.Tangent[0], 1e-5)
		assert.InDelta(t, 1, vert.Tangent[3], 1e-5)
	}
}

func TestPlaneFrontFaceIsCounterClockwise(t *testing.T) {
	g := Plane(1, 1, 1, 1)
	v, idx := g.Vertices(), g.Indices()
	a, b, c := v[idx[0]].Position, v[idx[1]].Position, v[idx[2]].Position
	n := cross(sub(b, a), sub(c, a))
	assert.Greater(t, n[2], float32(0))
}

func TestTorusNormalsPointAwayFromTube(t *testing.T) {
	g := Torus(0.3, 0.2, 16, 32)
	for _, v := range g.Vertices() {
		n := v.Normal
		assert.InDelta(t, 1, math32.Sqrt(dot(n, n)), 1e-5)
		assert.InDelta(t, 1, math32.Sqrt(dot([3]float32{v.Tangent[0], v.Tangent[1], v.Tangent[2]}, [3]float32{v.Tangent[0], v.Tangent[1], v.Tangent[2]})), 1e-4)
	}
}

func TestVertexMarshal(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}}
	assert.Len(t, v.Marshal(), v.Size())
	assert.Equal(t, 48, v.Size())
}
