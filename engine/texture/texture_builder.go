package texture

// TextureBuilderOption is a functional option for configuring a textureImpl.
type TextureBuilderOption func(*textureImpl)

// WithColorSpace sets how 8-bit texels are interpreted.
//
// Parameters:
//   - cs: the color space
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithColorSpace(cs ColorSpace) TextureBuilderOption {
	return func(t *textureImpl) {
		t.colorSpace = cs
	}
}

// WithFilters sets the minification and magnification filters.
//
// Parameters:
//   - minFilter: the minification filter
//   - magFilter: the magnification filter
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithFilters(minFilter, magFilter Filter) TextureBuilderOption {
	return func(t *textureImpl) {
		t.minFilter = minFilter
		t.magFilter = magFilter
	}
}

// WithGenerateMipmaps toggles mip chain generation.
//
// Parameters:
//   - enabled: whether to build mipmaps
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithGenerateMipmaps(enabled bool) TextureBuilderOption {
	return func(t *textureImpl) {
		t.generateMipmaps = enabled
	}
}

// WithFlipY toggles the row flip on upload.
//
// Parameters:
//   - flip: whether to flip
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithFlipY(flip bool) TextureBuilderOption {
	return func(t *textureImpl) {
		t.flipY = flip
	}
}

// WithWrap sets the u and v wrap modes.
//
// Parameters:
//   - s: the u wrap mode
//   - tw: the v wrap mode
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithWrap(s, tw Wrap) TextureBuilderOption {
	return func(t *textureImpl) {
		t.wrapS, t.wrapT = s, tw
	}
}

// WithMapping sets the projection used when sampling.
//
// Parameters:
//   - m: the mapping
//
// Returns:
//   - TextureBuilderOption: option function to apply
func WithMapping(m Mapping) TextureBuilderOption {
	return func(t *textureImpl) {
		t.mapping = m
	}
}
