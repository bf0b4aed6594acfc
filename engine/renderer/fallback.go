package renderer

import (
	"github.com/Carmen-Shannon/oxy-materials/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// fallbackStaging is a single opaque white texel, bound wherever a map is missing.
func fallbackStaging() *common.TextureStagingData {
	return &common.TextureStagingData{
		Pixels:        []byte{0xff, 0xff, 0xff, 0xff},
		Width:         1,
		Height:        1,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		BytesPerPixel: 4,
	}
}

func fallbackSampler() common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeNearest,
		MinFilter:    wgpu.FilterModeNearest,
		MipmapFilter: wgpu.MipmapFilterModeNearest,
	}
}
