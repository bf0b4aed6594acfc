package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func TestBuildModelMatrixTranslationOnly(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, [3]float32{-2, 0, 3}, [3]float32{}, [3]float32{1, 1, 1})

	want := []float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, -2, 0, 3, 1}
	assert.InDeltaSlice(t, want, m, eps)
}

func TestBuildModelMatrixEulerXYZ(t *testing.T) {
	tests := []struct {
		name string
		rot  [3]float32
		// image of the unit Y axis (second column)
		y [3]float32
		// image of the unit Z axis (third column)
		z [3]float32
	}{
		{name: "x quarter turn", rot: [3]float32{math32.Pi / 2, 0, 0}, y: [3]float32{0, 0, 1}, z: [3]float32{0, -1, 0}},
		{name: "y quarter turn", rot: [3]float32{0, math32.Pi / 2, 0}, y: [3]float32{0, 1, 0}, z: [3]float32{1, 0, 0}},
		// XYZ order applies Z first, then Y, then X to a vector.
		{name: "x then y", rot: [3]float32{math32.Pi / 2, math32.Pi / 2, 0}, y: [3]float32{0, 0, 1}, z: [3]float32{1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := make([]float32, 16)
			BuildModelMatrix(m, [3]float32{}, tt.rot, [3]float32{1, 1, 1})
			assert.InDeltaSlice(t, tt.y[:], m[4:7], eps)
			assert.InDeltaSlice(t, tt.z[:], m[8:11], eps)
		})
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, [3]float32{1, 2, 3}, [3]float32{0.3, -0.7, 1.1}, [3]float32{2, 2, 2})

	inv := make([]float32, 16)
	require.True(t, Invert4(inv, m))

	prod := make([]float32, 16)
	Mul4(prod, m, inv)
	id := make([]float32, 16)
	Identity(id)
	assert.InDeltaSlice(t, id, prod, 1e-4)
}

func TestInvert4Singular(t *testing.T) {
	zero := make([]float32, 16)
	out := []float32{7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7}
	assert.False(t, Invert4(out, zero))
	assert.Equal(t, float32(7), out[0])
}

func TestNormalMatrixUniformScale(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, [3]float32{5, 5, 5}, [3]float32{}, [3]float32{2, 2, 2})

	n := make([]float32, 16)
	NormalMatrix(n, m)
	assert.InDelta(t, 0.5, n[0], eps)
	assert.InDelta(t, 0.5, n[5], eps)
	assert.InDelta(t, 0.5, n[10], eps)
	assert.InDelta(t, 0, n[12], eps)
	assert.InDelta(t, 1, n[15], eps)
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := make([]float32, 16)
	near, far := float32(0.1), float32(100)
	Perspective(p, DegToRad(75), 2, near, far)

	project := func(z float32) float32 {
		clipZ := p[10]*z + p[14]
		clipW := p[11] * z
		return clipZ / clipW
	}
	assert.InDelta(t, 0, project(-near), eps)
	assert.InDelta(t, 1, project(-far), 1e-4)
	assert.InDelta(t, p[5]/2, p[0], eps)
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	v := make([]float32, 16)
	LookAt(v, [3]float32{0, 0, 2}, [3]float32{}, [3]float32{0, 1, 0})
	assert.InDelta(t, -2, v[14], eps)
	assert.InDelta(t, 1, v[0], eps)
}

func TestClampAndDegToRad(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(3, -1, 1))
	assert.Equal(t, float32(-1), Clamp(-3, -1, 1))
	assert.Equal(t, float32(0.5), Clamp(0.5, -1, 1))
	assert.InDelta(t, math32.Pi, DegToRad(180), eps)
}

func TestHexToRGB(t *testing.T) {
	assert.Equal(t, [3]float32{1, 1, 1}, HexToRGB(0xffffff))
	assert.InDeltaSlice(t, []float32{1, 0, 128.0 / 255}, func() []float32 { c := HexToRGB(0xff0080); return c[:] }(), eps)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
