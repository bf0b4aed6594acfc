package camera

// OrbitControlsBuilderOption is a functional option for configuring orbitControls.
type OrbitControlsBuilderOption func(*orbitControls)

// WithDamping enables or disables inertial damping.
//
// Parameters:
//   - enabled: whether deltas decay over several updates
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithDamping(enabled bool) OrbitControlsBuilderOption {
	return func(oc *orbitControls) {
		oc.enableDamping = enabled
	}
}

// WithDampingFactor sets the fraction of the remaining delta applied per update.
//
// Parameters:
//   - factor: value in (0, 1]
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithDampingFactor(factor float32) OrbitControlsBuilderOption {
	return func(oc *orbitControls) {
		oc.dampingFactor = factor
	}
}

// WithOrbitTarget sets the initial orbit center.
//
// Parameters:
//   - x, y, z: the target point
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithOrbitTarget(x, y, z float32) OrbitControlsBuilderOption {
	return func(oc *orbitControls) {
		oc.target = [3]float32{x, y, z}
	}
}

// WithSpeeds sets the rotate, zoom and pan speed multipliers.
//
// Parameters:
//   - rotate: rotation speed multiplier
//   - zoom: zoom speed multiplier
//   - pan: pan speed multiplier
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithSpeeds(rotate, zoom, pan float32) OrbitControlsBuilderOption {
	return func(oc *orbitControls) {
		oc.rotateSpeed = rotate
		oc.zoomSpeed = zoom
		oc.panSpeed = pan
	}
}

// WithDistanceLimits bounds the camera distance from the target.
//
// Parameters:
//   - minDistance: the closest allowed distance
//   - maxDistance: the farthest allowed distance
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithDistanceLimits(minDistance, maxDistance float32) OrbitControlsBuilderOption {
	return func(oc *orbitControls) {
		oc.minDistance = minDistance
		oc.maxDistance = maxDistance
	}
}

// WithPolarLimits bounds the angle between the up axis and the camera offset.
//
// Parameters:
//   - minAngle: the smallest polar angle in radians
//   - maxAngle: the largest polar angle in radians
//
// Returns:
//   - OrbitControlsBuilderOption: option function to apply
func WithPolarLimits(minAngle, maxAngle float32) OrbitControlsBuilderOption {
	return func(oc *orbitControls) {
		oc.minPolarAngle = minAngle
		oc.maxPolarAngle = maxAngle
	}
}
