package demo

import (
	"fmt"

	"cogentcore.org/core/base/reflectx"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer"
)

// PixelRatioCap is the highest device pixel ratio the drawing buffer ever uses.
const PixelRatioCap float32 = 2

// Config holds the demo settings. Field defaults come from the `default:` tags; the command
// line and an optional TOML file override them.
type Config struct {

	// AssetRoot is the directory holding the textures/ tree.
	AssetRoot string `default:"static" flag:"assets"`

	// Title is the initial window title. The debug panel replaces it once attached.
	Title string `default:"oxy-materials"`

	// Width and Height are the initial logical window size.
	Width  int `default:"1280"`
	Height int `default:"720"`

	// Fullscreen starts the window in fullscreen.
	Fullscreen bool `default:"false"`

	// MinWidth and MinHeight bound interactive resizing.
	MinWidth  int `default:"320"`
	MinHeight int `default:"200"`

	// Software forces a CPU adapter, for machines without a usable GPU driver.
	Software bool `default:"false"`

	// VSync waits for vertical blank before presenting.
	VSync bool `default:"true"`

	// MSAA is the multisample count: 1, 4, 8 or 16.
	MSAA int `default:"4"`

	// MaxPixelRatio caps the device pixel ratio used for the drawing buffer, in (0, PixelRatioCap].
	MaxPixelRatio float32 `default:"2"`

	// FrameLimit caps the frame rate; 0 leaves it to the present mode.
	FrameLimit float64 `default:"0"`

	// Profile logs frame rate and memory statistics every second.
	Profile bool `default:"false"`

	// Workers is the number of texture decoding goroutines.
	Workers int `default:"4"`

	// Preset is an optional TOML file of panel values, applied at startup and whenever it changes.
	// Ctrl+S writes the current values to it.
	Preset string
}

// DefaultConfig returns a Config populated from its default tags.
//
// Returns:
//   - Config: the default settings
func DefaultConfig() Config {
	var cfg Config
	// The tags are constants; a failure here is a programming error.
	if err := reflectx.SetFromDefaultTags(&cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Validate reports settings the renderer or window cannot honour.
//
// Returns:
//   - error: the first invalid field, or nil
func (c Config) Validate() error {
	switch renderer.MSAASampleCount(c.MSAA) {
	case renderer.MSAAOff, renderer.MSAA4x, renderer.MSAA8x, renderer.MSAA16x:
	default:
		return fmt.Errorf("invalid msaa sample count %d: must be 1, 4, 8 or 16", c.MSAA)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if !(c.MaxPixelRatio > 0) || c.MaxPixelRatio > PixelRatioCap {
		return fmt.Errorf("invalid max pixel ratio %v: must be in (0, %v]", c.MaxPixelRatio, PixelRatioCap)
	}
	if c.FrameLimit < 0 {
		return fmt.Errorf("invalid frame limit %v: must not be negative", c.FrameLimit)
	}
	return nil
}

// presentMode maps the VSync switch to a renderer present mode.
func (c Config) presentMode() renderer.PresentMode {
	if c.VSync {
		return renderer.PresentModeVSync
	}
	return renderer.PresentModeUncapped
}
