package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPULights is the number of point light slots in the lights uniform.
// Lights beyond this count are ignored by the shader.
const MaxGPULights = 4

// GPUPointLightSource is the canonical WGSL definition of the PointLight and LightsUniform structs.
//
//go:embed assets/point_light.wgsl
var GPUPointLightSource string

// GPUPointLight is the GPU-aligned representation of a single point light.
// Size: 48 bytes.
type GPUPointLight struct {
	Position  [3]float32 // offset  0: world-space position
	Intensity float32    // offset 12: candela
	Color     [3]float32 // offset 16: linear RGB
	Distance  float32    // offset 28: cutoff range, 0 = unlimited
	Decay     float32    // offset 32: falloff exponent
	Enabled   uint32     // offset 36: 1 = lit
	_pad      [2]uint32  // offset 40: padding to 48 bytes
}

// Size returns the size of the GPUPointLight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPUPointLight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPointLight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPUPointLight) Marshal() []byte {
	buf := make([]byte, 48)
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Intensity))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Distance))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Decay))
	binary.LittleEndian.PutUint32(buf[36:40], g.Enabled)
	return buf
}

// GPULightsUniform is the lights uniform buffer: a count header followed by MaxGPULights slots.
// Size: 16 + 48*MaxGPULights bytes.
type GPULightsUniform struct {
	Count  uint32                      // offset  0: number of populated slots
	_pad   [3]uint32                   // offset  4: padding to 16 bytes
	Lights [MaxGPULights]GPUPointLight // offset 16: light slots
}

// NewGPULightsUniform packs up to MaxGPULights lights into a uniform.
//
// Parameters:
//   - lights: the scene lights, extras beyond MaxGPULights are dropped
//
// Returns:
//   - GPULightsUniform: the packed uniform
func NewGPULightsUniform(lights []Light) GPULightsUniform {
	var u GPULightsUniform
	for _, l := range lights {
		if int(u.Count) == MaxGPULights {
			break
		}
		u.Lights[u.Count] = l.GPU()
		u.Count++
	}
	return u
}

// Size returns the size of the GPULightsUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes
func (g *GPULightsUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the lights uniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPULightsUniform) Marshal() []byte {
	buf := make([]byte, 16, g.Size())
	binary.LittleEndian.PutUint32(buf[0:4], g.Count)
	for i := range g.Lights {
		buf = append(buf, g.Lights[i].Marshal()...)
	}
	return buf
}
