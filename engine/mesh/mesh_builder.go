package mesh

// MeshBuilderOption is a functional option for configuring a meshImpl.
type MeshBuilderOption func(*meshImpl)

// WithName overrides the mesh name, which defaults to the geometry name.
//
// Parameters:
//   - name: the mesh name
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithName(name string) MeshBuilderOption {
	return func(m *meshImpl) {
		m.name = name
	}
}

// WithPosition sets the initial world-space translation.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithPosition(x, y, z float32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.position = [3]float32{x, y, z}
	}
}

// WithRotation sets the initial Euler rotation in radians.
//
// Parameters:
//   - rx, ry, rz: rotation angles
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithRotation(rx, ry, rz float32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.rotation = [3]float32{rx, ry, rz}
	}
}

// WithScale sets the initial per-axis scale.
//
// Parameters:
//   - sx, sy, sz: scale factors
//
// Returns:
//   - MeshBuilderOption: option function to apply
func WithScale(sx, sy, sz float32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.scale = [3]float32{sx, sy, sz}
	}
}
