package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-materials/common"
)

// Light is an omnidirectional point light.
// Illuminance falls off with distance as 1/d^decay; a non-zero Distance also fades the
// light smoothly to zero at that range.
type Light interface {
	// Position returns the world-space position.
	//
	// Returns:
	//   - [3]float32: the light position
	Position() [3]float32

	// SetPosition moves the light.
	//
	// Parameters:
	//   - x, y, z: the new position
	SetPosition(x, y, z float32)

	// Color returns the linear RGB color.
	//
	// Returns:
	//   - [3]float32: the light color
	Color() [3]float32

	// SetColor sets the light color from a packed 0xRRGGBB value.
	//
	// Parameters:
	//   - hex: the packed color
	SetColor(hex uint32)

	// Intensity returns the luminous intensity in candela.
	//
	// Returns:
	//   - float32: the intensity
	Intensity() float32

	// SetIntensity sets the luminous intensity in candela.
	//
	// Parameters:
	//   - intensity: the intensity
	SetIntensity(intensity float32)

	// Distance returns the cutoff range, 0 meaning unlimited.
	//
	// Returns:
	//   - float32: the range
	Distance() float32

	// SetDistance sets the cutoff range, 0 meaning unlimited.
	//
	// Parameters:
	//   - distance: the range
	SetDistance(distance float32)

	// Decay returns the distance falloff exponent.
	//
	// Returns:
	//   - float32: the decay exponent
	Decay() float32

	// SetDecay sets the distance falloff exponent.
	//
	// Parameters:
	//   - decay: the exponent, 2 for physically correct falloff
	SetDecay(decay float32)

	// Enabled reports whether the light contributes to shading.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled toggles the light.
	//
	// Parameters:
	//   - enabled: whether the light contributes to shading
	SetEnabled(enabled bool)

	// GPU returns the GPU representation of the light.
	//
	// Returns:
	//   - GPUPointLight: the uniform-ready light
	GPU() GPUPointLight
}

type lightImpl struct {
	mu *sync.Mutex

	position  [3]float32
	color     [3]float32
	intensity float32
	distance  float32
	decay     float32
	enabled   bool
}

var _ Light = &lightImpl{}

// NewPointLight creates a white point light at the origin with intensity 1, unlimited range and decay 2.
//
// Parameters:
//   - opts: functional options to configure the light
//
// Returns:
//   - Light: the new light
func NewPointLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		color:     [3]float32{1, 1, 1},
		intensity: 1,
		decay:     2,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) Color() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) SetColor(hex uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = common.HexToRGB(hex)
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) Distance() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.distance
}

func (l *lightImpl) SetDistance(distance float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.distance = max(distance, 0)
}

func (l *lightImpl) Decay() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.decay
}

func (l *lightImpl) SetDecay(decay float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decay = decay
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *lightImpl) GPU() GPUPointLight {
	l.mu.Lock()
	defer l.mu.Unlock()
	g := GPUPointLight{
		Position:  l.position,
		Intensity: l.intensity,
		Color:     l.color,
		Distance:  l.distance,
		Decay:     l.decay,
	}
	if l.enabled {
		g.Enabled = 1
	}
	return g
}
