package light

import "github.com/Carmen-Shannon/oxy-materials/common"

// LightBuilderOption is a functional option for configuring a lightImpl.
type LightBuilderOption func(*lightImpl)

// WithPosition sets the light's world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = [3]float32{x, y, z}
	}
}

// WithColor sets the light color from a packed 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithColor(hex uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = common.HexToRGB(hex)
	}
}

// WithIntensity sets the luminous intensity in candela.
//
// Parameters:
//   - intensity: the intensity
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithDistance sets the cutoff range, 0 meaning unlimited.
//
// Parameters:
//   - distance: the range
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithDistance(distance float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.distance = distance
	}
}

// WithDecay sets the distance falloff exponent.
//
// Parameters:
//   - decay: the exponent
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithDecay(decay float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.decay = decay
	}
}
