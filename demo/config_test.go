package demo

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-materials/engine/renderer"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "static", cfg.AssetRoot)
	assert.Equal(t, "oxy-materials", cfg.Title)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, 320, cfg.MinWidth)
	assert.Equal(t, 200, cfg.MinHeight)
	assert.False(t, cfg.Software)
	assert.True(t, cfg.VSync)
	assert.Equal(t, 4, cfg.MSAA)
	assert.Equal(t, float32(2), cfg.MaxPixelRatio)
	assert.Zero(t, cfg.FrameLimit)
	assert.False(t, cfg.Profile)
	assert.Equal(t, 4, cfg.Workers)
	assert.Empty(t, cfg.Preset)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, renderer.PresentModeVSync, cfg.presentMode())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"msaa", func(c *Config) { c.MSAA = 2 }, "msaa"},
		{"size", func(c *Config) { c.Width = 0 }, "window size"},
		{"pixel ratio", func(c *Config) { c.MaxPixelRatio = 0 }, "pixel ratio"},
		{"pixel ratio above cap", func(c *Config) { c.MaxPixelRatio = 4 }, "pixel ratio"},
		{"frame limit", func(c *Config) { c.FrameLimit = -1 }, "frame limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}

	cfg := DefaultConfig()
	cfg.MaxPixelRatio = 1.5
	assert.NoError(t, cfg.Validate())
}

func TestPresentModeFollowsVSync(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VSync = false
	assert.Equal(t, renderer.PresentModeUncapped, cfg.presentMode())
}
