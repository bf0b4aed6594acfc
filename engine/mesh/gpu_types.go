package mesh

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMeshUniformSource is the canonical WGSL definition of the MeshUniform struct.
// Matches GPUMeshUniform layout exactly (128 bytes).
//
//go:embed assets/mesh_uniform.wgsl
var GPUMeshUniformSource string

// GPUMeshUniform holds the per-draw transforms.
// Size: 128 bytes.
type GPUMeshUniform struct {
	Model  [16]float32 // offset  0: model matrix
	Normal [16]float32 // offset 64: inverse-transpose of the model matrix, padded to 4x4
}

// Size returns the size of the GPUMeshUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUMeshUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMeshUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUMeshUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Normal[i]))
	}
	return buf
}
