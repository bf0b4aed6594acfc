package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-materials/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32
	up       [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix              [16]float32
	projectionMatrix        [16]float32
	inverseProjectionMatrix [16]float32

	// projectionUpdates counts calls to UpdateProjectionMatrix.
	projectionUpdates uint64
}

// Camera defines the interface for a perspective camera.
// Changing fov, aspect, near or far only records the value; the projection matrix is
// recomputed when UpdateProjectionMatrix is called. The view matrix follows position and
// target immediately.
type Camera interface {
	// Position returns the camera position in world space.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// SetPosition moves the camera and recomputes the view matrix.
	//
	// Parameters:
	//   - x, y, z: the new position
	SetPosition(x, y, z float32)

	// Target returns the world-space point the camera looks at.
	//
	// Returns:
	//   - [3]float32: the look-at target
	Target() [3]float32

	// LookAt orients the camera toward a world-space point and recomputes the view matrix.
	//
	// Parameters:
	//   - x, y, z: the point to look at
	LookAt(x, y, z float32)

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - [3]float32: up vector components
	Up() [3]float32

	// SetUp sets the camera's up vector and recomputes the view matrix.
	//
	// Parameters:
	//   - x, y, z: up vector components
	SetUp(x, y, z float32)

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// SetFov records a new vertical field of view in radians.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// SetAspect records a new aspect ratio (width / height).
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// SetNear records a new near clipping plane distance.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetFar records a new far clipping plane distance.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// UpdateProjectionMatrix recomputes the projection matrix and its inverse from fov, aspect, near and far.
	UpdateProjectionMatrix()

	// ProjectionUpdates returns how many times UpdateProjectionMatrix has run.
	//
	// Returns:
	//   - uint64: the update count
	ProjectionUpdates() uint64

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// InverseProjectionMatrix returns the inverse of the current projection matrix.
	//
	// Returns:
	//   - [16]float32: the inverse projection matrix
	InverseProjectionMatrix() [16]float32

	// Uniform builds the GPU camera uniform for the current state.
	//
	// Returns:
	//   - GPUCameraUniform: view-projection, inverse view-projection and position
	Uniform() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings.
// Defaults: 50 degree fov, aspect 1, near 0.1, far 2000, positioned at the origin looking down -Z.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera with its matrices computed
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     [3]float32{0, 1, 0},
		target: [3]float32{0, 0, -1},
		fov:    common.DegToRad(50),
		aspect: 1.0,
		near:   0.1,
		far:    2000.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateView()
	c.updateProjection()
	return c
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = [3]float32{x, y, z}
	c.updateView()
}

func (c *cameraImpl) Target() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) LookAt(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = [3]float32{x, y, z}
	c.updateView()
}

func (c *cameraImpl) Up() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = [3]float32{x, y, z}
	c.updateView()
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
}

func (c *cameraImpl) UpdateProjectionMatrix() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateProjection()
	c.projectionUpdates++
}

func (c *cameraImpl) ProjectionUpdates() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionUpdates
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjection()
}

func (c *cameraImpl) InverseProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()

	u := GPUCameraUniform{
		ViewProj:       c.viewProjection(),
		CameraPosition: c.position,
	}
	// The background pass only needs ray directions, so drop the translation before inverting.
	rotOnly := c.viewMatrix
	rotOnly[12], rotOnly[13], rotOnly[14] = 0, 0, 0
	var vp [16]float32
	common.Mul4(vp[:], c.projectionMatrix[:], rotOnly[:])
	if !common.Invert4(u.InvViewProjNoTranslation[:], vp[:]) {
		common.Identity(u.InvViewProjNoTranslation[:])
	}
	return u
}

// viewProjection returns projection * view. Caller must hold the mutex.
func (c *cameraImpl) viewProjection() [16]float32 {
	var vp [16]float32
	common.Mul4(vp[:], c.projectionMatrix[:], c.viewMatrix[:])
	return vp
}

// updateView recalculates the view matrix from position, target and up. Caller must hold the mutex.
func (c *cameraImpl) updateView() {
	common.LookAt(c.viewMatrix[:], c.position, c.target, c.up)
}

// updateProjection recalculates the projection and inverse projection matrices. Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Invert4(c.inverseProjectionMatrix[:], c.projectionMatrix[:])
}
