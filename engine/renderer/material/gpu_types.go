package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUPhysicalMaterialSource is the canonical WGSL definition of the PhysicalMaterial struct.
// Matches GPUPhysicalMaterial layout exactly (128 bytes).
//
//go:embed assets/physical_material.wgsl
var GPUPhysicalMaterialSource string

// GPUPhysicalMaterial is the GPU-aligned uniform for the physical fragment shader.
// Matches the WGSL PhysicalMaterial struct layout exactly (see GPUPhysicalMaterialSource).
// Size: 128 bytes.
type GPUPhysicalMaterial struct {
	Color   [3]float32 // offset   0
	Opacity float32    // offset  12

	Metalness         float32 // offset  16
	Roughness         float32 // offset  20
	AOMapIntensity    float32 // offset  24
	DisplacementScale float32 // offset  28

	DisplacementBias float32    // offset  32
	NormalScale      [2]float32 // offset  36
	Transmission     float32    // offset  44

	IOR                 float32 // offset  48
	Thickness           float32 // offset  52
	AttenuationDistance float32 // offset  56
	Clearcoat           float32 // offset  60

	AttenuationColor   [3]float32 // offset  64
	ClearcoatRoughness float32    // offset  76

	SheenColor [3]float32 // offset  80
	Sheen      float32    // offset  92

	SheenRoughness  float32 // offset  96
	Iridescence     float32 // offset 100
	IridescenceIOR  float32 // offset 104
	EnvMapIntensity float32 // offset 108

	MapFlags          uint32  // offset 112: bit n set when MapSlot n is bound
	Side              uint32  // offset 116: 0 front, 1 back, 2 double
	AlphaTest         float32 // offset 120
	SpecularIntensity float32 // offset 124
}

// Size returns the size of the GPUPhysicalMaterial struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (128)
func (g *GPUPhysicalMaterial) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPhysicalMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (g *GPUPhysicalMaterial) Marshal() []byte {
	words := [32]uint32{
		f(g.Color[0]), f(g.Color[1]), f(g.Color[2]), f(g.Opacity),
		f(g.Metalness), f(g.Roughness), f(g.AOMapIntensity), f(g.DisplacementScale),
		f(g.DisplacementBias), f(g.NormalScale[0]), f(g.NormalScale[1]), f(g.Transmission),
		f(g.IOR), f(g.Thickness), f(g.AttenuationDistance), f(g.Clearcoat),
		f(g.AttenuationColor[0]), f(g.AttenuationColor[1]), f(g.AttenuationColor[2]), f(g.ClearcoatRoughness),
		f(g.SheenColor[0]), f(g.SheenColor[1]), f(g.SheenColor[2]), f(g.Sheen),
		f(g.SheenRoughness), f(g.Iridescence), f(g.IridescenceIOR), f(g.EnvMapIntensity),
		g.MapFlags, g.Side, f(g.AlphaTest), f(g.SpecularIntensity),
	}
	buf := make([]byte, 128)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return buf
}

func f(v float32) uint32 {
	return math.Float32bits(v)
}
