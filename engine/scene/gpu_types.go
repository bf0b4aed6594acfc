package scene

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUEnvironmentUniformSource is the canonical WGSL definition of the EnvironmentUniform struct.
// Matches GPUEnvironmentUniform layout exactly (16 bytes).
//
//go:embed assets/environment_uniform.wgsl
var GPUEnvironmentUniformSource string

// GPUEnvironmentUniform carries the scene-wide lighting terms that are not per-light.
// Size: 16 bytes.
type GPUEnvironmentUniform struct {
	Ambient        [3]float32 // offset  0: flat ambient used when no environment is bound
	HasEnvironment uint32     // offset 12: 1 when the environment texture is loaded
}

// NewGPUEnvironmentUniform captures the environment state of a scene.
//
// Parameters:
//   - s: the scene to read
//
// Returns:
//   - GPUEnvironmentUniform: the packed uniform
func NewGPUEnvironmentUniform(s Scene) GPUEnvironmentUniform {
	u := GPUEnvironmentUniform{Ambient: s.AmbientColor()}
	if env := s.Environment(); env != nil && env.IsLoaded() {
		u.HasEnvironment = 1
	}
	return u
}

// Size returns the size of the GPUEnvironmentUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUEnvironmentUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer
func (g *GPUEnvironmentUniform) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(g.Ambient[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(g.Ambient[1]))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(g.Ambient[2]))
	binary.LittleEndian.PutUint32(buf[12:], g.HasEnvironment)
	return buf
}
