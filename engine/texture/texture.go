// Package texture holds CPU-side texture state and converts it into GPU staging data.
package texture

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/Carmen-Shannon/oxy-materials/common"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNotLoaded is returned by Staging when the texture has no image data yet.
var ErrNotLoaded = errors.New("texture image not loaded")

// ColorSpace describes how 8-bit texel values are interpreted.
type ColorSpace int

const (
	// ColorSpaceLinear stores texels as linear values (data maps: normal, roughness, ao).
	ColorSpaceLinear ColorSpace = iota
	// ColorSpaceSRGB stores texels sRGB-encoded (albedo, matcaps); the GPU decodes them on sampling.
	ColorSpaceSRGB
)

// Filter selects texel filtering.
type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
)

// Wrap selects how coordinates outside [0, 1] are resolved.
type Wrap int

const (
	WrapClamp Wrap = iota
	WrapRepeat
	WrapMirror
)

// Mapping selects how the texture is projected.
type Mapping int

const (
	// MappingUV samples with mesh texture coordinates.
	MappingUV Mapping = iota
	// MappingEquirectangularReflection samples a latitude/longitude panorama by direction.
	MappingEquirectangularReflection
)

// FloatImage is a float RGBA image, rows top to bottom, four channels per texel.
type FloatImage struct {
	Width  int
	Height int
	Pix    []float32
}

// Texture is an image plus the sampling settings the renderer applies to it.
// Every change to the image or the sampling settings bumps Version so the renderer
// knows when to re-upload.
type Texture interface {
	// Name returns the texture's identifier, usually its source path.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Version returns a counter bumped on every image or settings change.
	//
	// Returns:
	//   - uint64: the version
	Version() uint64

	// IsLoaded reports whether image data is present.
	//
	// Returns:
	//   - bool: true once SetImage or SetFloatImage has been called with data
	IsLoaded() bool

	// Image returns the 8-bit image, or nil.
	//
	// Returns:
	//   - image.Image: the image
	Image() image.Image

	// SetImage replaces the 8-bit image data.
	//
	// Parameters:
	//   - img: the decoded image
	SetImage(img image.Image)

	// FloatImage returns the high dynamic range image, or nil.
	//
	// Returns:
	//   - *FloatImage: the float image
	FloatImage() *FloatImage

	// SetFloatImage replaces the texture data with high dynamic range data.
	//
	// Parameters:
	//   - img: the float image
	SetFloatImage(img *FloatImage)

	// ColorSpace returns how 8-bit texels are interpreted.
	//
	// Returns:
	//   - ColorSpace: the color space
	ColorSpace() ColorSpace

	// SetColorSpace sets how 8-bit texels are interpreted.
	//
	// Parameters:
	//   - cs: the color space
	SetColorSpace(cs ColorSpace)

	// MinFilter returns the minification filter.
	//
	// Returns:
	//   - Filter: the filter
	MinFilter() Filter

	// SetMinFilter sets the minification filter.
	//
	// Parameters:
	//   - f: the filter
	SetMinFilter(f Filter)

	// MagFilter returns the magnification filter.
	//
	// Returns:
	//   - Filter: the filter
	MagFilter() Filter

	// SetMagFilter sets the magnification filter.
	//
	// Parameters:
	//   - f: the filter
	SetMagFilter(f Filter)

	// GenerateMipmaps reports whether a mip chain is built on upload.
	//
	// Returns:
	//   - bool: true if mipmaps are generated
	GenerateMipmaps() bool

	// SetGenerateMipmaps toggles mip chain generation.
	//
	// Parameters:
	//   - enabled: whether to build mipmaps
	SetGenerateMipmaps(enabled bool)

	// FlipY reports whether rows are flipped on upload so v = 0 addresses the bottom row.
	//
	// Returns:
	//   - bool: true if flipped
	FlipY() bool

	// SetFlipY toggles the row flip on upload.
	//
	// Parameters:
	//   - flip: whether to flip
	SetFlipY(flip bool)

	// Wrap returns the wrap modes for u and v.
	//
	// Returns:
	//   - Wrap: the u wrap mode
	//   - Wrap: the v wrap mode
	Wrap() (Wrap, Wrap)

	// SetWrap sets the wrap modes for u and v.
	//
	// Parameters:
	//   - s: the u wrap mode
	//   - t: the v wrap mode
	SetWrap(s, t Wrap)

	// Mapping returns the projection used when sampling.
	//
	// Returns:
	//   - Mapping: the mapping
	Mapping() Mapping

	// SetMapping sets the projection used when sampling.
	//
	// Parameters:
	//   - m: the mapping
	SetMapping(m Mapping)

	// Staging converts the image into upload-ready data, applying flipY, color space and mipmaps.
	//
	// Returns:
	//   - *common.TextureStagingData: the staging data
	//   - error: ErrNotLoaded if no image is present
	Staging() (*common.TextureStagingData, error)

	// Sampler returns the sampler configuration for the current settings.
	//
	// Returns:
	//   - common.SamplerStagingData: the sampler configuration
	Sampler() common.SamplerStagingData
}

type textureImpl struct {
	mu *sync.Mutex

	name    string
	version uint64

	img      image.Image
	floatImg *FloatImage

	colorSpace      ColorSpace
	minFilter       Filter
	magFilter       Filter
	generateMipmaps bool
	flipY           bool
	wrapS, wrapT    Wrap
	mapping         Mapping
}

var _ Texture = &textureImpl{}

// NewTexture creates an empty texture with linear color space, linear filtering, mipmaps, flipY and clamped wrapping.
//
// Parameters:
//   - name: the texture identifier
//   - options: functional options to configure the texture
//
// Returns:
//   - Texture: the new texture without image data
func NewTexture(name string, options ...TextureBuilderOption) Texture {
	t := &textureImpl{
		mu:              &sync.Mutex{},
		name:            name,
		colorSpace:      ColorSpaceLinear,
		minFilter:       FilterLinear,
		magFilter:       FilterLinear,
		generateMipmaps: true,
		flipY:           true,
		wrapS:           WrapClamp,
		wrapT:           WrapClamp,
		mapping:         MappingUV,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *textureImpl) Name() string {
	return t.name
}

func (t *textureImpl) Version() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version
}

func (t *textureImpl) IsLoaded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.img != nil || t.floatImg != nil
}

func (t *textureImpl) Image() image.Image {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.img
}

func (t *textureImpl) SetImage(img image.Image) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.img = img
	t.floatImg = nil
	t.version++
}

func (t *textureImpl) FloatImage() *FloatImage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.floatImg
}

func (t *textureImpl) SetFloatImage(img *FloatImage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.floatImg = img
	t.img = nil
	t.version++
}

func (t *textureImpl) ColorSpace() ColorSpace {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.colorSpace
}

func (t *textureImpl) SetColorSpace(cs ColorSpace) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.colorSpace = cs
	t.version++
}

func (t *textureImpl) MinFilter() Filter {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.minFilter
}

func (t *textureImpl) SetMinFilter(f Filter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.minFilter = f
	t.version++
}

func (t *textureImpl) MagFilter() Filter {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.magFilter
}

func (t *textureImpl) SetMagFilter(f Filter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.magFilter = f
	t.version++
}

func (t *textureImpl) GenerateMipmaps() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generateMipmaps
}

func (t *textureImpl) SetGenerateMipmaps(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.generateMipmaps = enabled
	t.version++
}

func (t *textureImpl) FlipY() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flipY
}

func (t *textureImpl) SetFlipY(flip bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.flipY = flip
	t.version++
}

func (t *textureImpl) Wrap() (Wrap, Wrap) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.wrapS, t.wrapT
}

func (t *textureImpl) SetWrap(s, tw Wrap) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.wrapS, t.wrapT = s, tw
	t.version++
}

func (t *textureImpl) Mapping() Mapping {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mapping
}

func (t *textureImpl) SetMapping(m Mapping) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mapping = m
	t.version++
}

func (t *textureImpl) Staging() (*common.TextureStagingData, error) {
	t.mu.Lock()
	img, floatImg := t.img, t.floatImg
	flipY, mips, cs := t.flipY, t.generateMipmaps, t.colorSpace
	t.mu.Unlock()

	switch {
	case floatImg != nil:
		return stageFloat(floatImg, flipY)
	case img != nil:
		return stageRGBA(img, flipY, mips, cs)
	default:
		return nil, fmt.Errorf("%s: %w", t.name, ErrNotLoaded)
	}
}

func (t *textureImpl) Sampler() common.SamplerStagingData {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := common.SamplerStagingData{
		AddressModeU:  addressMode(t.wrapS),
		AddressModeV:  addressMode(t.wrapT),
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     filterMode(t.magFilter),
		MinFilter:     filterMode(t.minFilter),
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
	if t.generateMipmaps && t.floatImg == nil {
		s.MipmapFilter = wgpu.MipmapFilterModeLinear
	}
	if t.mapping == MappingEquirectangularReflection {
		s.AddressModeU = wgpu.AddressModeRepeat
	}
	return s
}

func addressMode(w Wrap) wgpu.AddressMode {
	switch w {
	case WrapRepeat:
		return wgpu.AddressModeRepeat
	case WrapMirror:
		return wgpu.AddressModeMirrorRepeat
	default:
		return wgpu.AddressModeClampToEdge
	}
}

func filterMode(f Filter) wgpu.FilterMode {
	if f == FilterNearest {
		return wgpu.FilterModeNearest
	}
	return wgpu.FilterModeLinear
}

// stageRGBA converts an 8-bit image into RGBA staging data, building a mip chain by repeated halving.
func stageRGBA(img image.Image, flipY, mips bool, cs ColorSpace) (*common.TextureStagingData, error) {
	if flipY {
		img = transform.FlipV(img)
	}
	rgba := clone.AsRGBA(img)
	b := rgba.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("texture has empty bounds %v", b)
	}

	format := wgpu.TextureFormatRGBA8Unorm
	if cs == ColorSpaceSRGB {
		format = wgpu.TextureFormatRGBA8UnormSrgb
	}
	data := &common.TextureStagingData{
		Pixels:        tightRows(rgba),
		Width:         uint32(b.Dx()),
		Height:        uint32(b.Dy()),
		Format:        format,
		BytesPerPixel: 4,
	}
	if !mips {
		return data, nil
	}

	level := image.Image(rgba)
	w, h := b.Dx(), b.Dy()
	for w > 1 || h > 1 {
		w, h = max(w/2, 1), max(h/2, 1)
		level = transform.Resize(level, w, h, transform.Linear)
		data.Mips = append(data.Mips, tightRows(clone.AsRGBA(level)))
	}
	return data, nil
}

// tightRows returns the pixel bytes of an RGBA image without row padding.
func tightRows(img *image.RGBA) []byte {
	b := img.Bounds()
	rowBytes := b.Dx() * 4
	if img.Stride == rowBytes && img.Rect.Min == (image.Point{}) {
		return img.Pix[:rowBytes*b.Dy()]
	}
	out := make([]byte, 0, rowBytes*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := img.PixOffset(b.Min.X, y)
		out = append(out, img.Pix[start:start+rowBytes]...)
	}
	return out
}

// stageFloat converts a float image into RGBA16Float staging data. Float textures carry no mip chain.
func stageFloat(img *FloatImage, flipY bool) (*common.TextureStagingData, error) {
	if img.Width <= 0 || img.Height <= 0 || len(img.Pix) < img.Width*img.Height*4 {
		return nil, fmt.Errorf("float texture has invalid size %dx%d (%d values)", img.Width, img.Height, len(img.Pix))
	}
	rowValues := img.Width * 4
	out := make([]byte, 0, img.Width*img.Height*8)
	for row := range img.Height {
		src := row
		if flipY {
			src = img.Height - 1 - row
		}
		for _, v := range img.Pix[src*rowValues : (src+1)*rowValues] {
			h := float32ToHalf(v)
			out = append(out, byte(h), byte(h>>8))
		}
	}
	return &common.TextureStagingData{
		Pixels:        out,
		Width:         uint32(img.Width),
		Height:        uint32(img.Height),
		Format:        wgpu.TextureFormatRGBA16Float,
		BytesPerPixel: 8,
	}, nil
}
