package mesh

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-materials/common"
	"github.com/Carmen-Shannon/oxy-materials/engine/geometry"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer/material"
)

// meshCount generates unique mesh IDs.
var meshCount atomic.Uint64

type meshImpl struct {
	mu *sync.Mutex

	id      uint64
	name    string
	enabled atomic.Bool

	geo geometry.Geometry
	mat material.Material

	position [3]float32
	rotation [3]float32
	scale    [3]float32
}

// Mesh defines a renderable scene entity: a geometry drawn with a material at a transform.
// The material is held by reference; several meshes may share one material.
type Mesh interface {
	// ID returns the mesh's unique identifier.
	//
	// Returns:
	//   - uint64: the mesh ID
	ID() uint64

	// Name returns the mesh name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this mesh is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled toggles drawing of the mesh.
	//
	// Parameters:
	//   - enabled: whether the mesh is drawn
	SetEnabled(enabled bool)

	// Geometry returns the mesh geometry.
	//
	// Returns:
	//   - geometry.Geometry: the geometry
	Geometry() geometry.Geometry

	// Material returns the mesh material.
	//
	// Returns:
	//   - material.Material: the shared material
	Material() material.Material

	// Position returns the world-space translation.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// SetPosition sets the world-space translation.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// Rotation returns the Euler rotation in radians, applied in XYZ order.
	//
	// Returns:
	//   - [3]float32: rotation around X, Y and Z
	Rotation() [3]float32

	// SetRotation sets the Euler rotation in radians, applied in XYZ order.
	//
	// Parameters:
	//   - rx, ry, rz: rotation angles
	SetRotation(rx, ry, rz float32)

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - [3]float32: the scale
	Scale() [3]float32

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - sx, sy, sz: scale factors
	SetScale(sx, sy, sz float32)

	// ModelMatrix builds the model matrix from the current transform.
	//
	// Returns:
	//   - [16]float32: the column-major model matrix
	ModelMatrix() [16]float32

	// GPU returns the per-mesh uniform for the current transform.
	//
	// Returns:
	//   - GPUMeshUniform: model and normal matrices
	GPU() GPUMeshUniform
}

var _ Mesh = &meshImpl{}

// NewMesh creates a mesh drawing geo with mat at the origin with unit scale.
//
// Parameters:
//   - geo: the geometry, must not be nil
//   - mat: the material, must not be nil
//   - options: functional options to configure the mesh
//
// Returns:
//   - Mesh: the new enabled mesh
func NewMesh(geo geometry.Geometry, mat material.Material, options ...MeshBuilderOption) Mesh {
	m := &meshImpl{
		mu:    &sync.Mutex{},
		id:    meshCount.Add(1),
		geo:   geo,
		mat:   mat,
		scale: [3]float32{1, 1, 1},
	}
	if geo != nil {
		m.name = geo.Name()
	}
	m.enabled.Store(true)
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *meshImpl) ID() uint64 {
	return m.id
}

func (m *meshImpl) Name() string {
	return m.name
}

func (m *meshImpl) Enabled() bool {
	return m.enabled.Load()
}

func (m *meshImpl) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

func (m *meshImpl) Geometry() geometry.Geometry {
	return m.geo
}

func (m *meshImpl) Material() material.Material {
	return m.mat
}

func (m *meshImpl) Position() [3]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *meshImpl) SetPosition(x, y, z float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = [3]float32{x, y, z}
}

func (m *meshImpl) Rotation() [3]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rotation
}

func (m *meshImpl) SetRotation(rx, ry, rz float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotation = [3]float32{rx, ry, rz}
}

func (m *meshImpl) Scale() [3]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scale
}

func (m *meshImpl) SetScale(sx, sy, sz float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scale = [3]float32{sx, sy, sz}
}

func (m *meshImpl) ModelMatrix() [16]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out [16]float32
	common.BuildModelMatrix(out[:], m.position, m.rotation, m.scale)
	return out
}

func (m *meshImpl) GPU() GPUMeshUniform {
	model := m.ModelMatrix()
	u := GPUMeshUniform{Model: model}
	common.NormalMatrix(u.Normal[:], model[:])
	return u
}
