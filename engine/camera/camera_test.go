package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-materials/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCamera() Camera {
	return NewCamera(
		WithFov(common.DegToRad(75)),
		WithAspect(2),
		WithNear(0.1),
		WithFar(100),
		WithPosition(0, 0, 2),
		WithTarget(0, 0, 0),
	)
}

func TestCameraProjectionIsRecomputedOnDemand(t *testing.T) {
	c := newTestCamera()
	before := c.ProjectionMatrix()

	c.SetAspect(1)
	assert.Equal(t, before, c.ProjectionMatrix(), "setting aspect alone does not touch the projection")
	assert.Equal(t, uint64(0), c.ProjectionUpdates())

	c.UpdateProjectionMatrix()
	after := c.ProjectionMatrix()
	assert.InDelta(t, after[5], after[0], 1e-6)
	assert.Equal(t, uint64(1), c.ProjectionUpdates())
}

func TestCameraViewProjectionCentersTarget(t *testing.T) {
	c := newTestCamera()
	vp := c.ViewProjectionMatrix()

	// the origin projects to the middle of clip space
	clipX := vp[12]
	clipY := vp[13]
	clipW := vp[15]
	require.NotZero(t, clipW)
	assert.InDelta(t, 0, clipX/clipW, 1e-6)
	assert.InDelta(t, 0, clipY/clipW, 1e-6)
}

func TestCameraUniformMarshal(t *testing.T) {
	c := newTestCamera()
	u := c.Uniform()
	assert.Equal(t, [3]float32{0, 0, 2}, u.CameraPosition)

	buf := u.Marshal()
	assert.Len(t, buf, 144)
	assert.Equal(t, u.Size(), len(buf))
}

func TestOrbitControlsWithoutDamping(t *testing.T) {
	c := newTestCamera()
	oc := NewOrbitControls(c)

	oc.RotateLeft(math32.Pi / 2)
	assert.True(t, oc.Update())

	p := c.Position()
	assert.InDelta(t, -2, p[0], 1e-5)
	assert.InDelta(t, 0, p[1], 1e-5)
	assert.InDelta(t, 0, p[2], 1e-5)

	assert.False(t, oc.Update(), "deltas are consumed by a single update")
}

func TestOrbitControlsDampingDecay(t *testing.T) {
	c := newTestCamera()
	oc := NewOrbitControls(c, WithDamping(true), WithDampingFactor(0.05))

	oc.RotateLeft(1)
	oc.Update()
	p := c.Position()
	assert.InDelta(t, -0.05, math32.Atan2(p[0], p[2]), 1e-5)

	oc.Update()
	p = c.Position()
	assert.InDelta(t, -0.05-0.05*0.95, math32.Atan2(p[0], p[2]), 1e-5)

	for range 400 {
		oc.Update()
	}
	p = c.Position()
	assert.InDelta(t, -1, math32.Atan2(p[0], p[2]), 1e-3, "damped motion converges on the full rotation")
	assert.False(t, oc.Update())
}

func TestOrbitControlsRespectsDirectPositionEdits(t *testing.T) {
	c := newTestCamera()
	oc := NewOrbitControls(c, WithDamping(true))

	c.SetPosition(0, 0, 3)
	oc.Update()
	p := c.Position()
	assert.InDelta(t, 3, p[2], 1e-5)

	c.SetPosition(0, 0, -3)
	oc.Update()
	p = c.Position()
	assert.InDelta(t, -3, p[2], 1e-5)
}

func TestOrbitControlsScrollDolly(t *testing.T) {
	c := newTestCamera()
	oc := NewOrbitControls(c)

	oc.HandleScroll(1)
	assert.True(t, oc.Update())
	assert.InDelta(t, 1.9, c.Position()[2], 1e-5)

	oc.HandleScroll(-1)
	oc.Update()
	assert.InDelta(t, 2, c.Position()[2], 1e-5)
}

func TestOrbitControlsDistanceAndPolarLimits(t *testing.T) {
	c := newTestCamera()
	oc := NewOrbitControls(c, WithDistanceLimits(1.5, 2.5), WithPolarLimits(0.5, 2))

	oc.Dolly(0.1)
	oc.Update()
	assert.InDelta(t, 1.5, c.Position()[2], 1e-4)

	oc.RotateUp(math32.Pi)
	oc.Update()
	p := c.Position()
	r := math32.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
	assert.InDelta(t, 0.5, math32.Acos(p[1]/r), 1e-4)
}

func TestOrbitControlsDragRotates(t *testing.T) {
	c := newTestCamera()
	oc := NewOrbitControls(c)

	oc.HandleMouseDown(common.MouseButtonLeft, 100, 100)
	oc.HandleMouseMove(150, 100, 400)
	oc.HandleMouseUp()
	oc.HandleMouseMove(300, 100, 400)
	oc.Update()

	p := c.Position()
	want := -2 * math32.Pi * 50 / 400
	assert.InDelta(t, want, math32.Atan2(p[0], p[2]), 1e-5)
}

func TestOrbitControlsPanMovesTarget(t *testing.T) {
	c := newTestCamera()
	oc := NewOrbitControls(c)

	oc.Pan(10, 0, 100)
	oc.Update()

	target := oc.Target()
	assert.Less(t, target[0], float32(0), "dragging right moves the target left")
	assert.InDelta(t, 0, target[1], 1e-6)
	p := c.Position()
	assert.InDelta(t, target[0], p[0], 1e-5)
}
