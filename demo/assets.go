package demo

import (
	"github.com/Carmen-Shannon/oxy-materials/engine/loader"
	"github.com/Carmen-Shannon/oxy-materials/engine/texture"
)

// Asset paths, relative to Config.AssetRoot.
const (
	pathDoorAlpha            = "textures/door/alpha.jpg"
	pathDoorAmbientOcclusion = "textures/door/ambientOcclusion.jpg"
	pathDoorColor            = "textures/door/color.jpg"
	pathDoorHeight           = "textures/door/height.jpg"
	pathDoorMetalness        = "textures/door/metalness.jpg"
	pathDoorNormal           = "textures/door/normal.jpg"
	pathDoorRoughness        = "textures/door/roughness.jpg"
	pathGradient3            = "textures/gradients/3.jpg"
	pathGradient5            = "textures/gradients/5.jpg"
	pathMatcap1              = "textures/matcaps/1.png"
	pathEnvironmentMap       = "textures/environmentMap/2k.hdr"
)

// Assets holds every texture the demo requests. Each one is usable immediately and
// renders as a flat fallback until its file has been decoded.
type Assets struct {
	DoorAlpha            texture.Texture
	DoorAmbientOcclusion texture.Texture
	DoorColor            texture.Texture
	DoorHeight           texture.Texture
	DoorMetalness        texture.Texture
	DoorNormal           texture.Texture
	DoorRoughness        texture.Texture
	Gradient3            texture.Texture
	Gradient5            texture.Texture
	Matcap1              texture.Texture
	EnvironmentMap       texture.Texture
}

// LoadAssets requests every demo texture. Loads are fire-and-forget: failures are
// reported through the manager callbacks and leave the texture unloaded.
//
// Parameters:
//   - images: loader for the raster textures
//   - hdr: loader for the environment map
//   - onEnvironment: called with the environment map once it has loaded; may be nil
//
// Returns:
//   - Assets: the requested textures
func LoadAssets(images, hdr loader.TextureLoader, onEnvironment func(texture.Texture)) Assets {
	srgb := texture.WithColorSpace(texture.ColorSpaceSRGB)

	a := Assets{
		DoorAlpha:            images.Load(pathDoorAlpha, nil, nil),
		DoorAmbientOcclusion: images.Load(pathDoorAmbientOcclusion, nil, nil),
		DoorColor:            images.Load(pathDoorColor, nil, nil, srgb),
		DoorHeight:           images.Load(pathDoorHeight, nil, nil),
		DoorMetalness:        images.Load(pathDoorMetalness, nil, nil),
		DoorNormal:           images.Load(pathDoorNormal, nil, nil),
		DoorRoughness:        images.Load(pathDoorRoughness, nil, nil),
		Gradient3: images.Load(pathGradient3, nil, nil,
			texture.WithFilters(texture.FilterNearest, texture.FilterNearest),
			texture.WithGenerateMipmaps(false),
		),
		Gradient5: images.Load(pathGradient5, nil, nil),
		Matcap1:   images.Load(pathMatcap1, nil, nil, srgb),
	}

	a.EnvironmentMap = hdr.Load(pathEnvironmentMap, func(env texture.Texture) {
		env.SetMapping(texture.MappingEquirectangularReflection)
		if onEnvironment != nil {
			onEnvironment(env)
		}
	}, nil)

	return a
}
