// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds pixel data for a texture binding pending GPU upload.
// Level 0 is the full-resolution image; additional entries in Mips are successive half-size levels.
type TextureStagingData struct {
	// Pixels is the level 0 pixel data, tightly packed rows.
	Pixels []byte
	// Mips holds the pixel data of mip levels 1..n. Empty when no mip chain was generated.
	Mips [][]byte
	// Width is the width of level 0 in pixels.
	Width uint32
	// Height is the height of level 0 in pixels.
	Height uint32
	// Format is the GPU texture format the pixels are encoded in (RGBA8Unorm, RGBA8UnormSrgb or RGBA16Float).
	Format wgpu.TextureFormat
	// BytesPerPixel is the size of one texel in Pixels (4 for 8-bit RGBA, 8 for half-float RGBA).
	BytesPerPixel uint32
}

// MipLevelCount returns the number of mip levels described by the staging data, including level 0.
//
// Returns:
//   - uint32: 1 + len(Mips)
func (t *TextureStagingData) MipLevelCount() uint32 {
	return 1 + uint32(len(t.Mips))
}

// MipSize returns the width and height of the given mip level.
//
// Parameters:
//   - level: the mip level, 0 is full resolution
//
// Returns:
//   - uint32: width of the level, at least 1
//   - uint32: height of the level, at least 1
func (t *TextureStagingData) MipSize(level uint32) (uint32, uint32) {
	return max(t.Width>>level, 1), max(t.Height>>level, 1)
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// This is primarily used in the BindGroupProvider to stage sampler data before creating the GPU sampler and bind group.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}
