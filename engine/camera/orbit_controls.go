package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-materials/common"
	"github.com/chewxy/math32"
)

// orbitEpsilon bounds the polar angle away from the poles and detects movement in Update.
const orbitEpsilon = 1e-6

// controlState is the drag gesture currently in progress.
type controlState int

const (
	stateNone controlState = iota
	stateRotate
	statePan
)

// InputSource is the subset of a window the orbit controls listen to.
type InputSource interface {
	SetMouseDownCallback(callback func(button int, x, y float32))
	SetMouseUpCallback(callback func(button int, x, y float32))
	SetMouseMoveCallback(callback func(x, y float32))
	SetScrollCallback(callback func(delta float32))
	DisplaySize() (int, int)
}

// OrbitControls rotates, pans and dollies a camera around a target point.
// Pointer input accumulates deltas; Update applies them. With damping enabled the
// accumulated deltas decay by (1 - DampingFactor) on every Update, so Update must be
// called once per frame for the motion to settle.
type OrbitControls interface {
	// Connect registers the controls' pointer handlers on an input source.
	//
	// Parameters:
	//   - src: the input source, usually the engine window
	Connect(src InputSource)

	// Target returns the orbit center.
	//
	// Returns:
	//   - [3]float32: the target point
	Target() [3]float32

	// SetTarget moves the orbit center.
	//
	// Parameters:
	//   - x, y, z: the new target point
	SetTarget(x, y, z float32)

	// EnableDamping reports whether inertial damping is active.
	//
	// Returns:
	//   - bool: true if damping is enabled
	EnableDamping() bool

	// SetEnableDamping toggles inertial damping.
	//
	// Parameters:
	//   - enabled: whether deltas decay over several updates
	SetEnableDamping(enabled bool)

	// DampingFactor returns the fraction of the remaining delta applied per update.
	//
	// Returns:
	//   - float32: the damping factor
	DampingFactor() float32

	// SetDampingFactor sets the fraction of the remaining delta applied per update.
	//
	// Parameters:
	//   - factor: value in (0, 1]
	SetDampingFactor(factor float32)

	// RotateLeft queues a rotation around the up axis.
	//
	// Parameters:
	//   - angle: the azimuth change in radians
	RotateLeft(angle float32)

	// RotateUp queues a change of the polar angle.
	//
	// Parameters:
	//   - angle: the polar change in radians
	RotateUp(angle float32)

	// Pan queues a screen-space translation of camera and target.
	//
	// Parameters:
	//   - dx: horizontal pointer travel in window coordinates
	//   - dy: vertical pointer travel in window coordinates
	//   - viewportHeight: the viewport height in window coordinates
	Pan(dx, dy, viewportHeight float32)

	// Dolly queues a change of the camera distance from the target.
	//
	// Parameters:
	//   - scale: multiplier applied to the distance (below 1 moves closer)
	Dolly(scale float32)

	// HandleMouseDown starts a rotate (left) or pan (right, middle) gesture.
	//
	// Parameters:
	//   - button: the mouse button (see common.MouseButton*)
	//   - x, y: the cursor position
	HandleMouseDown(button int, x, y float32)

	// HandleMouseMove continues the active gesture.
	//
	// Parameters:
	//   - x, y: the cursor position
	//   - viewportHeight: the viewport height in window coordinates
	HandleMouseMove(x, y, viewportHeight float32)

	// HandleMouseUp ends the active gesture.
	HandleMouseUp()

	// HandleScroll dollies in for positive deltas and out for negative ones.
	//
	// Parameters:
	//   - delta: the scroll wheel delta
	HandleScroll(delta float32)

	// Update applies the queued deltas to the camera.
	// The current camera position is read on every call so external position changes are respected.
	//
	// Returns:
	//   - bool: true if the camera moved
	Update() bool
}

type orbitControls struct {
	mu *sync.Mutex

	camera Camera
	target [3]float32

	enableDamping bool
	dampingFactor float32

	enableRotate bool
	enableZoom   bool
	enablePan    bool

	rotateSpeed float32
	zoomSpeed   float32
	panSpeed    float32

	minDistance, maxDistance         float32
	minPolarAngle, maxPolarAngle     float32
	minAzimuthAngle, maxAzimuthAngle float32

	state        controlState
	pointerX     float32
	pointerY     float32
	deltaTheta   float32
	deltaPhi     float32
	panOffset    [3]float32
	scale        float32
	lastPosition [3]float32
	zoomChanged  bool
}

var _ OrbitControls = &orbitControls{}

// NewOrbitControls creates orbit controls for the given camera.
// Defaults: target at the origin, damping disabled with factor 0.05, unit speeds, no distance limit
// and the full polar range.
//
// Parameters:
//   - cam: the camera to move
//   - options: functional options to configure the controls
//
// Returns:
//   - OrbitControls: the new controls, with the camera oriented toward the target
func NewOrbitControls(cam Camera, options ...OrbitControlsBuilderOption) OrbitControls {
	oc := &orbitControls{
		mu:              &sync.Mutex{},
		camera:          cam,
		dampingFactor:   0.05,
		enableRotate:    true,
		enableZoom:      true,
		enablePan:       true,
		rotateSpeed:     1,
		zoomSpeed:       1,
		panSpeed:        1,
		minDistance:     0,
		maxDistance:     math32.Inf(1),
		minPolarAngle:   0,
		maxPolarAngle:   math32.Pi,
		minAzimuthAngle: math32.Inf(-1),
		maxAzimuthAngle: math32.Inf(1),
		scale:           1,
	}
	for _, opt := range options {
		opt(oc)
	}
	cam.LookAt(oc.target[0], oc.target[1], oc.target[2])
	oc.lastPosition = cam.Position()
	return oc
}

func (oc *orbitControls) Connect(src InputSource) {
	src.SetMouseDownCallback(func(button int, x, y float32) {
		oc.HandleMouseDown(button, x, y)
	})
	src.SetMouseUpCallback(func(button int, x, y float32) {
		oc.HandleMouseUp()
	})
	src.SetMouseMoveCallback(func(x, y float32) {
		_, h := src.DisplaySize()
		oc.HandleMouseMove(x, y, float32(h))
	})
	src.SetScrollCallback(func(delta float32) {
		oc.HandleScroll(delta)
	})
}

func (oc *orbitControls) Target() [3]float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControls) SetTarget(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = [3]float32{x, y, z}
}

func (oc *orbitControls) EnableDamping() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enableDamping
}

func (oc *orbitControls) SetEnableDamping(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enableDamping = enabled
}

func (oc *orbitControls) DampingFactor() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.dampingFactor
}

func (oc *orbitControls) SetDampingFactor(factor float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.dampingFactor = common.Clamp(factor, orbitEpsilon, 1)
}

func (oc *orbitControls) RotateLeft(angle float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.deltaTheta -= angle
}

func (oc *orbitControls) RotateUp(angle float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.deltaPhi -= angle
}

func (oc *orbitControls) Pan(dx, dy, viewportHeight float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.pan(dx, dy, viewportHeight)
}

func (oc *orbitControls) Dolly(scale float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if scale > 0 {
		oc.scale *= scale
		oc.zoomChanged = true
	}
}

func (oc *orbitControls) HandleMouseDown(button int, x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	switch button {
	case common.MouseButtonLeft:
		if !oc.enableRotate {
			return
		}
		oc.state = stateRotate
	case common.MouseButtonRight, common.MouseButtonMiddle:
		if !oc.enablePan {
			return
		}
		oc.state = statePan
	default:
		return
	}
	oc.pointerX, oc.pointerY = x, y
}

func (oc *orbitControls) HandleMouseMove(x, y, viewportHeight float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.state == stateNone || viewportHeight <= 0 {
		return
	}
	dx, dy := x-oc.pointerX, y-oc.pointerY
	oc.pointerX, oc.pointerY = x, y

	switch oc.state {
	case stateRotate:
		dx *= oc.rotateSpeed
		dy *= oc.rotateSpeed
		oc.deltaTheta -= 2 * math32.Pi * dx / viewportHeight
		oc.deltaPhi -= 2 * math32.Pi * dy / viewportHeight
	case statePan:
		oc.pan(dx*oc.panSpeed, dy*oc.panSpeed, viewportHeight)
	}
}

func (oc *orbitControls) HandleMouseUp() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.state = stateNone
}

func (oc *orbitControls) HandleScroll(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enableZoom || delta == 0 {
		return
	}
	zoomScale := math32.Pow(0.95, oc.zoomSpeed)
	if delta > 0 {
		oc.scale *= zoomScale
	} else {
		oc.scale /= zoomScale
	}
	oc.zoomChanged = true
}

func (oc *orbitControls) Update() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	pos := oc.camera.Position()
	offset := [3]float32{pos[0] - oc.target[0], pos[1] - oc.target[1], pos[2] - oc.target[2]}

	radius := math32.Sqrt(offset[0]*offset[0] + offset[1]*offset[1] + offset[2]*offset[2])
	var theta, phi float32
	if radius > 0 {
		theta = math32.Atan2(offset[0], offset[2])
		phi = math32.Acos(common.Clamp(offset[1]/radius, -1, 1))
	}

	step := float32(1)
	if oc.enableDamping {
		step = oc.dampingFactor
	}
	theta += oc.deltaTheta * step
	phi += oc.deltaPhi * step

	if !math32.IsInf(oc.minAzimuthAngle, 0) && !math32.IsInf(oc.maxAzimuthAngle, 0) {
		theta = common.Clamp(theta, oc.minAzimuthAngle, oc.maxAzimuthAngle)
	}
	phi = common.Clamp(phi, oc.minPolarAngle, oc.maxPolarAngle)
	phi = common.Clamp(phi, orbitEpsilon, math32.Pi-orbitEpsilon)

	for i := range 3 {
		oc.target[i] += oc.panOffset[i] * step
	}

	radius = common.Clamp(radius*oc.scale, oc.minDistance, oc.maxDistance)

	sinPhi := math32.Sin(phi)
	newPos := [3]float32{
		oc.target[0] + radius*sinPhi*math32.Sin(theta),
		oc.target[1] + radius*math32.Cos(phi),
		oc.target[2] + radius*sinPhi*math32.Cos(theta),
	}
	oc.camera.SetPosition(newPos[0], newPos[1], newPos[2])
	oc.camera.LookAt(oc.target[0], oc.target[1], oc.target[2])

	if oc.enableDamping {
		decay := 1 - oc.dampingFactor
		oc.deltaTheta *= decay
		oc.deltaPhi *= decay
		for i := range 3 {
			oc.panOffset[i] *= decay
		}
	} else {
		oc.deltaTheta, oc.deltaPhi = 0, 0
		oc.panOffset = [3]float32{}
	}
	oc.scale = 1

	dx := newPos[0] - oc.lastPosition[0]
	dy := newPos[1] - oc.lastPosition[1]
	dz := newPos[2] - oc.lastPosition[2]
	moved := oc.zoomChanged || dx*dx+dy*dy+dz*dz > orbitEpsilon
	oc.lastPosition = newPos
	oc.zoomChanged = false
	return moved
}

// pan converts pointer travel into a world-space offset along the camera's right and up axes,
// scaled so the target plane tracks the pointer. Caller must hold the mutex.
func (oc *orbitControls) pan(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	pos := oc.camera.Position()
	ox, oy, oz := pos[0]-oc.target[0], pos[1]-oc.target[1], pos[2]-oc.target[2]
	targetDistance := math32.Sqrt(ox*ox+oy*oy+oz*oz) * math32.Tan(oc.camera.Fov()/2)

	left := 2 * dx * targetDistance / viewportHeight
	up := 2 * dy * targetDistance / viewportHeight

	// rows of the view matrix are the camera axes in world space
	v := oc.camera.ViewMatrix()
	right := [3]float32{v[0], v[4], v[8]}
	camUp := [3]float32{v[1], v[5], v[9]}
	for i := range 3 {
		oc.panOffset[i] += -right[i]*left + camUp[i]*up
	}
}
