package texture

import (
	"image"
	"image/color"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoRowImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := range 4 {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
		img.Set(x, 1, color.RGBA{B: 255, A: 255})
	}
	return img
}

func TestStagingNotLoaded(t *testing.T) {
	tex := NewTexture("missing.jpg")
	assert.False(t, tex.IsLoaded())
	_, err := tex.Staging()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestStagingFlipsAndSelectsFormat(t *testing.T) {
	tex := NewTexture("color.jpg", WithColorSpace(ColorSpaceSRGB), WithGenerateMipmaps(false))
	tex.SetImage(twoRowImage())

	data, err := tex.Staging()
	require.NoError(t, err)
	assert.Equal(t, wgpu.TextureFormatRGBA8UnormSrgb, data.Format)
	assert.Equal(t, uint32(4), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	assert.Len(t, data.Pixels, 4*2*4)
	// the bottom (blue) row comes first after flipping
	assert.Equal(t, []byte{0, 0, 255, 255}, data.Pixels[0:4])
	assert.Empty(t, data.Mips)

	tex.SetFlipY(false)
	data, err = tex.Staging()
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0, 255}, data.Pixels[0:4])
}

func TestStagingMipChain(t *testing.T) {
	tex := NewTexture("rough.jpg")
	tex.SetImage(image.NewRGBA(image.Rect(0, 0, 8, 2)))

	data, err := tex.Staging()
	require.NoError(t, err)
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, data.Format)
	// 8x2 -> 4x1 -> 2x1 -> 1x1
	require.Len(t, data.Mips, 3)
	assert.Equal(t, uint32(4), data.MipLevelCount())
	for i, mip := range data.Mips {
		w, h := data.MipSize(uint32(i + 1))
		assert.Len(t, mip, int(w*h*4))
	}
}

func TestVersionBumps(t *testing.T) {
	tex := NewTexture("gradient.jpg")
	v := tex.Version()
	tex.SetMinFilter(FilterNearest)
	tex.SetMagFilter(FilterNearest)
	tex.SetGenerateMipmaps(false)
	assert.Equal(t, v+3, tex.Version())

	s := tex.Sampler()
	assert.Equal(t, wgpu.FilterModeNearest, s.MinFilter)
	assert.Equal(t, wgpu.FilterModeNearest, s.MagFilter)
	assert.Equal(t, wgpu.MipmapFilterModeNearest, s.MipmapFilter)
}

func TestFloatStaging(t *testing.T) {
	tex := NewTexture("2k.hdr", WithMapping(MappingEquirectangularReflection))
	tex.SetFloatImage(&FloatImage{
		Width:  1,
		Height: 2,
		Pix:    []float32{1, 1, 1, 1, 2, 2, 2, 1},
	})

	data, err := tex.Staging()
	require.NoError(t, err)
	assert.Equal(t, wgpu.TextureFormatRGBA16Float, data.Format)
	assert.Equal(t, uint32(8), data.BytesPerPixel)
	// flipped: the row of 2.0 (0x4000) comes first
	assert.Equal(t, []byte{0x00, 0x40}, data.Pixels[0:2])
	assert.Equal(t, wgpu.AddressModeRepeat, tex.Sampler().AddressModeU)
}

func TestFloat32ToHalf(t *testing.T) {
	tests := []struct {
		in   float32
		want uint16
	}{
		{0, 0x0000},
		{1, 0x3c00},
		{-2, 0xc000},
		{0.5, 0x3800},
		{65504, 0x7bff},
		{1e6, 0x7c00},
		{5.960464477539063e-08, 0x0001},
		{6.103515625e-05, 0x0400},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, float32ToHalf(tt.in), "input %g", tt.in)
	}
}
