package material

import (
	"github.com/Carmen-Shannon/oxy-materials/common"
	"github.com/Carmen-Shannon/oxy-materials/engine/texture"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor is an option builder that sets the base color from a packed 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		m.params.Color = common.HexToRGB(hex)
	}
}

// WithSide is an option builder that selects which faces are rendered.
//
// Parameters:
//   - side: SideFront, SideBack or SideDouble
//
// Returns:
//   - MaterialBuilderOption: a function that applies the side option to a material
func WithSide(side Side) MaterialBuilderOption {
	return func(m *material) {
		m.params.Side = side
	}
}

// WithMetalness is an option builder that sets the metalness factor.
//
// Parameters:
//   - metalness: the metalness factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.params.Metalness = metalness
	}
}

// WithRoughness is an option builder that sets the roughness factor.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = mirror, 1.0 = fully rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.params.Roughness = roughness
	}
}

// WithMap is an option builder that sets the color map.
//
// Parameters:
//   - tex: the color texture, sampled as sRGB when its color space says so
//
// Returns:
//   - MaterialBuilderOption: a function that applies the map option to a material
func WithMap(tex texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.params.Map = tex
	}
}

// WithAOMap is an option builder that sets the ambient occlusion map and its intensity.
//
// Parameters:
//   - tex: the occlusion texture (red channel)
//   - intensity: the occlusion strength
//
// Returns:
//   - MaterialBuilderOption: a function that applies the ao map option to a material
func WithAOMap(tex texture.Texture, intensity float32) MaterialBuilderOption {
	return func(m *material) {
		m.params.AOMap = tex
		m.params.AOMapIntensity = intensity
	}
}

// WithDisplacementMap is an option builder that sets the displacement map and its scale.
//
// Parameters:
//   - tex: the height texture (red channel)
//   - scale: the displacement distance at full height
//
// Returns:
//   - MaterialBuilderOption: a function that applies the displacement option to a material
func WithDisplacementMap(tex texture.Texture, scale float32) MaterialBuilderOption {
	return func(m *material) {
		m.params.DisplacementMap = tex
		m.params.DisplacementScale = scale
	}
}

// WithMetalnessMap is an option builder that sets the metalness map.
//
// Parameters:
//   - tex: the metalness texture (blue channel)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness map option to a material
func WithMetalnessMap(tex texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.params.MetalnessMap = tex
	}
}

// WithRoughnessMap is an option builder that sets the roughness map.
//
// Parameters:
//   - tex: the roughness texture (green channel)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness map option to a material
func WithRoughnessMap(tex texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.params.RoughnessMap = tex
	}
}

// WithNormalMap is an option builder that sets the tangent-space normal map.
//
// Parameters:
//   - tex: the normal texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the normal map option to a material
func WithNormalMap(tex texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.params.NormalMap = tex
	}
}

// WithAlphaMap is an option builder that sets the alpha map and marks the material transparent.
//
// Parameters:
//   - tex: the alpha texture (green channel)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the alpha map option to a material
func WithAlphaMap(tex texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.params.AlphaMap = tex
	}
}

// WithTransparent is an option builder that enables alpha blending.
//
// Parameters:
//   - transparent: whether the material is blended
//
// Returns:
//   - MaterialBuilderOption: a function that applies the transparency option to a material
func WithTransparent(transparent bool) MaterialBuilderOption {
	return func(m *material) {
		m.params.Transparent = transparent
	}
}

// WithTransmission is an option builder that sets the transmission, ior and thickness together.
//
// Parameters:
//   - transmission: the transmitted fraction in [0, 1]
//   - ior: the index of refraction
//   - thickness: the volume thickness
//
// Returns:
//   - MaterialBuilderOption: a function that applies the transmission options to a material
func WithTransmission(transmission, ior, thickness float32) MaterialBuilderOption {
	return func(m *material) {
		m.params.Transmission = transmission
		m.params.IOR = ior
		m.params.Thickness = thickness
	}
}
