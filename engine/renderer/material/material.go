package material

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-materials/common"
	"github.com/Carmen-Shannon/oxy-materials/engine/texture"
	"github.com/chewxy/math32"
	"github.com/jinzhu/copier"
)

// IOR limits. The stored ior is only bounded below by MinIOR; the shader sees it
// saturated to MaxShadedIOR, the highest ior the Fresnel fit handles.
const (
	MinIOR       float32 = 1.0
	MaxShadedIOR float32 = 2.333
)

// Side selects which triangle faces are rendered.
type Side uint32

const (
	SideFront Side = iota
	SideBack
	SideDouble
)

// MapSlot identifies one of the material's texture maps. The slot index is also the
// bit position in the map-presence mask sent to the GPU.
type MapSlot int

const (
	MapColor MapSlot = iota
	MapAO
	MapDisplacement
	MapMetalness
	MapRoughness
	MapNormal
	MapAlpha
	MapSlotCount
)

// PhysicalParams is the complete parameter set of a physical material.
// Texture fields are shared references; copying the struct does not copy image data.
type PhysicalParams struct {
	Color     [3]float32
	Opacity   float32
	Metalness float32
	Roughness float32

	Map             texture.Texture
	AOMap           texture.Texture
	AOMapIntensity  float32
	DisplacementMap texture.Texture
	// DisplacementScale and DisplacementBias map a displacement texel d to an offset along the normal of d*scale + bias.
	DisplacementScale float32
	DisplacementBias  float32
	MetalnessMap      texture.Texture
	RoughnessMap      texture.Texture
	NormalMap         texture.Texture
	NormalScale       [2]float32
	AlphaMap          texture.Texture

	Side        Side
	Transparent bool
	AlphaTest   float32

	Transmission        float32
	IOR                 float32
	Thickness           float32
	AttenuationColor    [3]float32
	AttenuationDistance float32

	SpecularIntensity  float32
	Clearcoat          float32
	ClearcoatRoughness float32
	Sheen              float32
	SheenRoughness     float32
	SheenColor         [3]float32
	Iridescence        float32
	IridescenceIOR     float32
	EnvMapIntensity    float32
}

// DefaultPhysicalParams returns the parameters of a freshly constructed physical material:
// white, dielectric, fully rough, opaque, front-sided, ior 1.5.
//
// Returns:
//   - PhysicalParams: the defaults
func DefaultPhysicalParams() PhysicalParams {
	return PhysicalParams{
		Color:               [3]float32{1, 1, 1},
		Opacity:             1,
		Metalness:           0,
		Roughness:           1,
		AOMapIntensity:      1,
		DisplacementScale:   1,
		NormalScale:         [2]float32{1, 1},
		Side:                SideFront,
		IOR:                 1.5,
		AttenuationColor:    [3]float32{1, 1, 1},
		AttenuationDistance: math32.Inf(1),
		SpecularIntensity:   1,
		SheenColor:          [3]float32{0, 0, 0},
		IridescenceIOR:      1.3,
		EnvMapIntensity:     1,
	}
}

// Material is a physically-based surface description shared by any number of meshes.
// All parameter writes bump Version so the renderer can re-upload the uniform lazily.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Version returns a counter bumped on every parameter change.
	//
	// Returns:
	//   - uint64: the version
	Version() uint64

	// Params returns a copy of the current parameters.
	//
	// Returns:
	//   - PhysicalParams: the parameters
	Params() PhysicalParams

	// Update mutates the parameters in one step. Values are clamped to their valid ranges afterwards.
	//
	// Parameters:
	//   - fn: function receiving the parameters to modify
	Update(fn func(p *PhysicalParams))

	// Metalness retrieves the metalness factor.
	//
	// Returns:
	//   - float32: the metalness in [0, 1]
	Metalness() float32

	// SetMetalness sets the metalness factor, clamped to [0, 1].
	//
	// Parameters:
	//   - v: the metalness
	SetMetalness(v float32)

	// Roughness retrieves the roughness factor.
	//
	// Returns:
	//   - float32: the roughness in [0, 1]
	Roughness() float32

	// SetRoughness sets the roughness factor, clamped to [0, 1].
	//
	// Parameters:
	//   - v: the roughness
	SetRoughness(v float32)

	// Transmission retrieves the fraction of light transmitted through the surface.
	//
	// Returns:
	//   - float32: the transmission in [0, 1]
	Transmission() float32

	// SetTransmission sets the transmission factor, clamped to [0, 1].
	//
	// Parameters:
	//   - v: the transmission
	SetTransmission(v float32)

	// IOR retrieves the index of refraction.
	//
	// Returns:
	//   - float32: the ior, at least MinIOR
	IOR() float32

	// SetIOR sets the index of refraction. Values below MinIOR are raised to it; values
	// above MaxShadedIOR are kept but render as MaxShadedIOR.
	//
	// Parameters:
	//   - v: the ior
	SetIOR(v float32)

	// Thickness retrieves the volume thickness used for refraction.
	//
	// Returns:
	//   - float32: the thickness, never negative
	Thickness() float32

	// SetThickness sets the volume thickness, clamped to zero or more.
	//
	// Parameters:
	//   - v: the thickness
	SetThickness(v float32)

	// Maps returns the texture maps indexed by MapSlot. Missing maps are nil.
	//
	// Returns:
	//   - [MapSlotCount]texture.Texture: the maps
	Maps() [MapSlotCount]texture.Texture

	// MapFlags returns a bitmask with bit MapSlot set for every map that is present and loaded.
	//
	// Returns:
	//   - uint32: the bitmask
	MapFlags() uint32

	// Clone returns an independent material with the same parameters and shared textures.
	//
	// Returns:
	//   - Material: the copy
	Clone() Material

	// GPU returns the uniform representation of the material.
	//
	// Returns:
	//   - GPUPhysicalMaterial: the uniform-ready parameters
	GPU() GPUPhysicalMaterial
}

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name    string
	version uint64
	params  PhysicalParams
}

var _ Material = &material{}

// NewMaterial creates a new physical Material configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:     &sync.Mutex{},
		params: DefaultPhysicalParams(),
	}
	for _, opt := range options {
		opt(m)
	}
	m.params.normalize()
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

func (m *material) Params() PhysicalParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params
}

func (m *material) Update(fn func(p *PhysicalParams)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.params)
	m.params.normalize()
	m.version++
}

func (m *material) Metalness() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params.Metalness
}

func (m *material) SetMetalness(v float32) {
	m.Update(func(p *PhysicalParams) { p.Metalness = v })
}

func (m *material) Roughness() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params.Roughness
}

func (m *material) SetRoughness(v float32) {
	m.Update(func(p *PhysicalParams) { p.Roughness = v })
}

func (m *material) Transmission() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params.Transmission
}

func (m *material) SetTransmission(v float32) {
	m.Update(func(p *PhysicalParams) { p.Transmission = v })
}

func (m *material) IOR() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params.IOR
}

func (m *material) SetIOR(v float32) {
	m.Update(func(p *PhysicalParams) { p.IOR = v })
}

func (m *material) Thickness() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params.Thickness
}

func (m *material) SetThickness(v float32) {
	m.Update(func(p *PhysicalParams) { p.Thickness = v })
}

func (m *material) Maps() [MapSlotCount]texture.Texture {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params.maps()
}

func (m *material) MapFlags() uint32 {
	maps := m.Maps()
	var flags uint32
	for slot, tex := range maps {
		if tex != nil && tex.IsLoaded() {
			flags |= 1 << slot
		}
	}
	return flags
}

func (m *material) Clone() Material {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := &material{
		mu:   &sync.Mutex{},
		name: m.name,
	}
	// Shallow copy: textures stay shared between the original and the clone.
	if err := copier.Copy(&c.params, &m.params); err != nil {
		c.params = m.params
	}
	return c
}

func (m *material) GPU() GPUPhysicalMaterial {
	flags := m.MapFlags()

	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.params
	g := GPUPhysicalMaterial{
		Color:               p.Color,
		Opacity:             p.Opacity,
		Metalness:           p.Metalness,
		Roughness:           p.Roughness,
		AOMapIntensity:      p.AOMapIntensity,
		DisplacementScale:   p.DisplacementScale,
		DisplacementBias:    p.DisplacementBias,
		NormalScale:         p.NormalScale,
		Transmission:        p.Transmission,
		IOR:                 min(p.IOR, MaxShadedIOR),
		Thickness:           p.Thickness,
		AttenuationDistance: p.AttenuationDistance,
		Clearcoat:           p.Clearcoat,
		AttenuationColor:    p.AttenuationColor,
		ClearcoatRoughness:  p.ClearcoatRoughness,
		SheenColor:          p.SheenColor,
		Sheen:               p.Sheen,
		SheenRoughness:      p.SheenRoughness,
		Iridescence:         p.Iridescence,
		IridescenceIOR:      p.IridescenceIOR,
		EnvMapIntensity:     p.EnvMapIntensity,
		MapFlags:            flags,
		Side:                uint32(p.Side),
		AlphaTest:           p.AlphaTest,
		SpecularIntensity:   p.SpecularIntensity,
	}
	// WGSL has no infinity literal; a huge distance means no absorption.
	if math32.IsInf(g.AttenuationDistance, 1) {
		g.AttenuationDistance = math.MaxFloat32
	}
	return g
}

// maps lists the texture fields in MapSlot order.
func (p *PhysicalParams) maps() [MapSlotCount]texture.Texture {
	return [MapSlotCount]texture.Texture{
		MapColor:        p.Map,
		MapAO:           p.AOMap,
		MapDisplacement: p.DisplacementMap,
		MapMetalness:    p.MetalnessMap,
		MapRoughness:    p.RoughnessMap,
		MapNormal:       p.NormalMap,
		MapAlpha:        p.AlphaMap,
	}
}

// normalize clamps every parameter to its valid range.
func (p *PhysicalParams) normalize() {
	p.Opacity = common.Clamp(p.Opacity, 0, 1)
	p.Metalness = common.Clamp(p.Metalness, 0, 1)
	p.Roughness = common.Clamp(p.Roughness, 0, 1)
	p.Transmission = common.Clamp(p.Transmission, 0, 1)
	p.IOR = max(p.IOR, MinIOR)
	p.Thickness = max(p.Thickness, 0)
	p.AOMapIntensity = max(p.AOMapIntensity, 0)
	p.AttenuationDistance = max(p.AttenuationDistance, 0)
	p.AlphaTest = common.Clamp(p.AlphaTest, 0, 1)
	p.SpecularIntensity = common.Clamp(p.SpecularIntensity, 0, 1)
	p.Clearcoat = common.Clamp(p.Clearcoat, 0, 1)
	p.ClearcoatRoughness = common.Clamp(p.ClearcoatRoughness, 0, 1)
	p.Sheen = common.Clamp(p.Sheen, 0, 1)
	p.SheenRoughness = common.Clamp(p.SheenRoughness, 0, 1)
	p.Iridescence = common.Clamp(p.Iridescence, 0, 1)
	p.IridescenceIOR = common.Clamp(p.IridescenceIOR, MinIOR, MaxShadedIOR)
	if p.Side > SideDouble {
		p.Side = SideFront
	}
}
