package demo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Carmen-Shannon/oxy-materials/common"
	"github.com/Carmen-Shannon/oxy-materials/engine/camera"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-materials/engine/scene"
	"github.com/Carmen-Shannon/oxy-materials/engine/texture"
	"github.com/Carmen-Shannon/oxy-materials/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	width, height int
	ratio         float32
	fullscreen    bool
	title         string
	polls         int
	closeAfter    int
	closed        bool

	onKeyDown     func(keyCode uint32, mods uint32)
	onDoubleClick func(x, y float32)
	onMouseDown   func(button int, x, y float32)
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) IsFullscreen() bool { return w.fullscreen }
func (w *fakeWindow) RequestFullscreen() error {
	w.fullscreen = true
	return nil
}
func (w *fakeWindow) RequestBorderlessFullscreen() error {
	w.fullscreen = true
	return nil
}
func (w *fakeWindow) ExitFullscreen() error {
	w.fullscreen = false
	return nil
}
func (w *fakeWindow) SetResizeCallback(func(width, height int)) {}
func (w *fakeWindow) SetScrollCallback(func(delta float32))     {}
func (w *fakeWindow) SetKeyDownCallback(callback func(keyCode uint32, mods uint32)) {
	w.onKeyDown = callback
}
func (w *fakeWindow) SetKeyUpCallback(func(keyCode uint32)) {}
func (w *fakeWindow) SetMouseDownCallback(callback func(button int, x, y float32)) {
	w.onMouseDown = callback
}
func (w *fakeWindow) SetMouseUpCallback(func(button int, x, y float32)) {}
func (w *fakeWindow) SetMouseMoveCallback(func(x, y float32))           {}
func (w *fakeWindow) SetDoubleClickCallback(callback func(x, y float32)) {
	w.onDoubleClick = callback
}
func (w *fakeWindow) SetTitle(title string)                      { w.title = title }
func (w *fakeWindow) DisplaySize() (int, int)                    { return w.width, w.height }
func (w *fakeWindow) FramebufferSize() (int, int)                { return w.width, w.height }
func (w *fakeWindow) DevicePixelRatio() float32                  { return w.ratio }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) PollEvents()                                { w.polls++ }
func (w *fakeWindow) IsRunning() bool {
	return !w.closed && (w.closeAfter == 0 || w.polls < w.closeAfter)
}
func (w *fakeWindow) Close() error {
	w.closed = true
	return nil
}

type fakeRenderer struct {
	width, height int
	ratio         float32
	sizeChanges   int
	renders       int
	released      bool
	renderErr     error
	lastScene     scene.Scene
	lastCamera    camera.Camera
}

func (r *fakeRenderer) SetSize(width, height int) bool {
	if width == r.width && height == r.height {
		return false
	}
	r.width, r.height = width, height
	r.sizeChanges++
	return true
}

func (r *fakeRenderer) SetPixelRatio(ratio float32) { r.ratio = ratio }

func (r *fakeRenderer) Render(s scene.Scene, cam camera.Camera) error {
	r.renders++
	r.lastScene, r.lastCamera = s, cam
	return r.renderErr
}

func (r *fakeRenderer) Release() { r.released = true }

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func flatHDR(w, h int, texel [4]byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y %d +X %d\n", h, w)
	for range w * h {
		buf.Write(texel[:])
	}
	return buf.Bytes()
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range 4 {
		img.Set(i%2, i/2, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type harness struct {
	app      *App
	window   *fakeWindow
	renderer *fakeRenderer
	clock    *fakeClock
}

func newHarness(t *testing.T, cfg Config, assets fstest.MapFS) *harness {
	t.Helper()
	h := &harness{
		window:   &fakeWindow{width: 800, height: 600, ratio: 1},
		renderer: &fakeRenderer{},
		clock:    &fakeClock{now: time.Unix(1000, 0)},
	}
	if assets == nil {
		assets = fstest.MapFS{}
	}
	app, err := NewApp(cfg,
		WithLogger(slog.New(slog.DiscardHandler)),
		WithWindowFactory(func(Config) (window.Window, error) { return h.window, nil }),
		WithRendererFactory(func(window.Window, Config, *slog.Logger) (Renderer, error) { return h.renderer, nil }),
		WithAssetFS(assets),
		WithClock(h.clock.Now),
	)
	require.NoError(t, err)
	h.app = app
	t.Cleanup(func() { _ = app.Close() })
	return h
}

func TestMissingSurfaceAlertsAndBuildsNothing(t *testing.T) {
	var alerts []string
	rendererCalls := 0
	app, err := NewApp(DefaultConfig(),
		WithLogger(slog.New(slog.DiscardHandler)),
		WithAlert(func(msg string) { alerts = append(alerts, msg) }),
		WithWindowFactory(func(Config) (window.Window, error) {
			return nil, fmt.Errorf("%w: glfw init failed", window.ErrSurfaceNotFound)
		}),
		WithRendererFactory(func(window.Window, Config, *slog.Logger) (Renderer, error) {
			rendererCalls++
			return &fakeRenderer{}, nil
		}),
	)

	assert.Nil(t, app)
	assert.ErrorIs(t, err, window.ErrSurfaceNotFound)
	assert.Equal(t, []string{AlertNoSurface}, alerts)
	assert.Zero(t, rendererCalls)
}

func TestRendererWithoutSurfaceAlerts(t *testing.T) {
	var alerts []string
	win := &fakeWindow{width: 10, height: 10, ratio: 1}
	_, err := NewApp(DefaultConfig(),
		WithLogger(slog.New(slog.DiscardHandler)),
		WithAlert(func(msg string) { alerts = append(alerts, msg) }),
		WithWindowFactory(func(Config) (window.Window, error) { return win, nil }),
		WithRendererFactory(func(window.Window, Config, *slog.Logger) (Renderer, error) {
			return nil, window.ErrSurfaceNotFound
		}),
	)

	assert.ErrorIs(t, err, window.ErrSurfaceNotFound)
	assert.Equal(t, []string{AlertNoSurface}, alerts)
	assert.True(t, win.closed)
}

func TestInvalidConfigIsRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MSAA = 3
	opened := false
	_, err := NewApp(cfg, WithWindowFactory(func(Config) (window.Window, error) {
		opened = true
		return &fakeWindow{}, nil
	}))
	assert.ErrorContains(t, err, "msaa")
	assert.False(t, opened)
}

func TestSceneSetup(t *testing.T) {
	h := newHarness(t, DefaultConfig(), nil)
	app := h.app

	cam := app.Camera()
	assert.InDelta(t, common.DegToRad(75), cam.Fov(), 1e-6)
	assert.Equal(t, float32(2), cam.Aspect())
	assert.Equal(t, float32(0.1), cam.Near())
	assert.Equal(t, float32(100), cam.Far())
	assert.Equal(t, [3]float32{0, 0, 2}, cam.Position())
	assert.True(t, app.controls.EnableDamping())

	lights := app.Scene().Lights()
	require.Len(t, lights, 1)
	assert.Equal(t, float32(50), lights[0].Intensity())
	assert.Equal(t, [3]float32{-1, 5, 4}, lights[0].Position())

	meshes := app.Meshes()
	require.Len(t, meshes, 3)
	assert.Equal(t, [3]float32{-2, 0, 0}, meshes[0].Position())
	assert.Equal(t, [3]float32{0, 0, 0}, meshes[1].Position())
	assert.Equal(t, [3]float32{2, 0, 0}, meshes[2].Position())
	for _, m := range meshes {
		assert.Same(t, app.Material(), m.Material())
	}
	assert.Len(t, app.Scene().Meshes(), 3)

	p := app.Material().Params()
	assert.Equal(t, material.SideDouble, p.Side)
	assert.Equal(t, float32(1), p.Metalness)
	assert.Equal(t, float32(1), p.Roughness)
	assert.Equal(t, float32(1), p.Transmission)
	assert.Equal(t, float32(1.5), p.IOR)
	assert.Equal(t, float32(0.5), p.Thickness)
	assert.True(t, p.Transparent)

	maps := app.Material().Maps()
	assets := app.Assets()
	assert.Equal(t, assets.DoorColor, maps[material.MapColor])
	assert.Equal(t, assets.DoorAmbientOcclusion, maps[material.MapAO])
	assert.Equal(t, assets.DoorHeight, maps[material.MapDisplacement])
	assert.Equal(t, assets.DoorMetalness, maps[material.MapMetalness])
	assert.Nil(t, maps[material.MapRoughness])
	assert.Equal(t, assets.DoorNormal, maps[material.MapNormal])
	assert.Equal(t, assets.DoorAlpha, maps[material.MapAlpha])

	assert.Equal(t, texture.ColorSpaceSRGB, assets.DoorColor.ColorSpace())
	assert.Equal(t, texture.ColorSpaceSRGB, assets.Matcap1.ColorSpace())
	assert.Equal(t, texture.ColorSpaceLinear, assets.DoorNormal.ColorSpace())
	assert.Equal(t, texture.FilterNearest, assets.Gradient3.MinFilter())
	assert.Equal(t, texture.FilterNearest, assets.Gradient3.MagFilter())
	assert.False(t, assets.Gradient3.GenerateMipmaps())
}

func TestAssetFailuresAreCosmetic(t *testing.T) {
	h := newHarness(t, DefaultConfig(), nil)
	m := h.app.Loader()
	m.Wait()
	m.Dispatch()

	loaded, total := m.Progress()
	assert.Equal(t, 11, total)
	assert.Equal(t, 11, loaded)
	assert.False(t, h.app.Assets().DoorColor.IsLoaded())
	assert.Nil(t, h.app.Scene().Environment())

	h.app.Tick()
	assert.Equal(t, 1, h.renderer.renders)
}

func TestEnvironmentInstalledOnLoad(t *testing.T) {
	assets := fstest.MapFS{
		pathEnvironmentMap: {Data: flatHDR(4, 2, [4]byte{128, 128, 128, 129})},
		pathDoorColor:      {Data: pngBytes(t)},
	}
	h := newHarness(t, DefaultConfig(), assets)
	s := h.app.Scene()
	assert.Nil(t, s.Background())

	m := h.app.Loader()
	m.Wait()
	m.Dispatch()

	env := h.app.Assets().EnvironmentMap
	require.True(t, env.IsLoaded())
	assert.Equal(t, env, s.Background())
	assert.Equal(t, env, s.Environment())
	assert.Equal(t, texture.MappingEquirectangularReflection, env.Mapping())
	assert.True(t, h.app.Assets().DoorColor.IsLoaded())
	assert.NotZero(t, h.app.Material().MapFlags()&(1<<material.MapColor))
}

func TestTickAnimatesFromElapsedTime(t *testing.T) {
	h := newHarness(t, DefaultConfig(), nil)

	h.app.Tick()
	for _, m := range h.app.Meshes() {
		assert.Equal(t, [3]float32{0, 0, 0}, m.Rotation())
	}

	h.clock.now = h.clock.now.Add(1500 * time.Millisecond)
	h.app.Tick()
	// elapsed is read before the timer update, so the rotation lags one frame
	for _, m := range h.app.Meshes() {
		assert.Equal(t, [3]float32{0, 0, 0}, m.Rotation())
	}

	h.clock.now = h.clock.now.Add(500 * time.Millisecond)
	h.app.Tick()
	for _, m := range h.app.Meshes() {
		assert.InDelta(t, 1.5, m.Rotation()[0], 1e-6)
		assert.InDelta(t, -1.5, m.Rotation()[1], 1e-6)
	}
	assert.Equal(t, 3, h.renderer.renders)
	assert.Equal(t, h.app.Scene(), h.renderer.lastScene)
	assert.Equal(t, h.app.Camera(), h.renderer.lastCamera)
}

func TestTickRotationStaysSmoothInLongSessions(t *testing.T) {
	h := newHarness(t, DefaultConfig(), nil)
	h.app.Tick()

	h.clock.now = h.clock.now.Add(30 * 24 * time.Hour)
	h.app.Tick()
	h.clock.now = h.clock.now.Add(16 * time.Millisecond)
	h.app.Tick()
	first := h.app.Meshes()[0].Rotation()[0]

	h.clock.now = h.clock.now.Add(16 * time.Millisecond)
	h.app.Tick()
	second := h.app.Meshes()[0].Rotation()[0]

	want := math.Mod(30*24*3600, 2*math.Pi)
	assert.InDelta(t, want, float64(first), 1e-5)
	assert.InDelta(t, 0.016, float64(second-first), 1e-5)
	assert.InDelta(t, -float64(second), float64(h.app.Meshes()[0].Rotation()[1]), 1e-7)
}

func TestTickResizesOncePerSizeChange(t *testing.T) {
	h := newHarness(t, DefaultConfig(), nil)
	h.window.ratio = 3

	h.app.Tick()
	cam := h.app.Camera()
	assert.InDelta(t, 800.0/600.0, cam.Aspect(), 1e-6)
	assert.Equal(t, float32(2), h.renderer.ratio, "pixel ratio is capped")
	updates := cam.ProjectionUpdates()

	h.app.Tick()
	h.app.Tick()
	assert.Equal(t, updates, cam.ProjectionUpdates())
	assert.Equal(t, 1, h.renderer.sizeChanges)

	h.window.width, h.window.height = 1000, 500
	h.window.ratio = 1.5
	h.app.Tick()
	assert.Equal(t, float32(2), cam.Aspect())
	assert.Equal(t, float32(1.5), h.renderer.ratio)
	assert.Equal(t, updates+1, cam.ProjectionUpdates())
	assert.Equal(t, 2, h.renderer.sizeChanges)
}

func TestTickPixelRatioNeverExceedsCap(t *testing.T) {
	h := newHarness(t, DefaultConfig(), nil)
	h.app.cfg.MaxPixelRatio = 4
	h.window.ratio = 3
	h.app.Tick()
	assert.Equal(t, PixelRatioCap, h.renderer.ratio)

	h.app.cfg.MaxPixelRatio = 1.25
	h.window.width = 900
	h.app.Tick()
	assert.Equal(t, float32(1.25), h.renderer.ratio)
}

func TestTickSkipsAspectForEmptyDisplay(t *testing.T) {
	h := newHarness(t, DefaultConfig(), nil)
	h.window.width, h.window.height = 0, 0
	h.app.Tick()
	assert.Equal(t, float32(2), h.app.Camera().Aspect())
}

func TestRenderErrorDoesNotStopTick(t *testing.T) {
	h := newHarness(t, DefaultConfig(), nil)
	h.renderer.renderErr = errors.New("surface lost")
	h.app.Tick()
	h.app.Tick()
	assert.Equal(t, 2, h.renderer.renders)
}

func TestDoubleClickTogglesFullscreen(t *testing.T) {
	h := newHarness(t, DefaultConfig(), nil)
	require.NotNil(t, h.window.onDoubleClick)

	h.window.onDoubleClick(10, 10)
	assert.True(t, h.window.fullscreen)
	h.window.onDoubleClick(10, 10)
	assert.False(t, h.window.fullscreen)
}

func TestKeys(t *testing.T) {
	h := newHarness(t, DefaultConfig(), nil)
	require.NotNil(t, h.window.onKeyDown)

	h.window.onKeyDown(common.KeyF, 0)
	assert.True(t, h.window.fullscreen)
	h.window.onKeyDown(common.KeyEsc, 0)
	assert.False(t, h.window.fullscreen)

	// panel keys change the selected value and the title
	h.window.onKeyDown(common.KeyUp, 0)
	assert.InDelta(t, 2.1, h.app.Camera().Position()[2], 1e-5)
	assert.Contains(t, h.window.title, PanelTitle)
	assert.Contains(t, h.window.title, "camera position z")
}

func TestPanelBindings(t *testing.T) {
	h := newHarness(t, DefaultConfig(), nil)
	panel := h.app.Panel()
	assert.Equal(t, PanelTitle, panel.Title())

	tests := []struct {
		folder, label string
		lo, hi        float32
	}{
		{"camera", "camera position z", -3, 3},
		{"material", "metalness", 0, 1},
		{"material", "roughness", 0, 1},
		{"material", "transmission", 0, 1},
		{"material", "ior", 1, 10},
		{"material", "thickness", 0, 1},
	}
	for _, tt := range tests {
		c := panel.Find(tt.folder, tt.label)
		require.NotNil(t, c, tt.label)
		lo, hi := c.Bounds()
		assert.Equal(t, tt.lo, lo, tt.label)
		assert.Equal(t, tt.hi, hi, tt.label)
	}

	panel.Find("camera", "camera position z").SetValue(10)
	assert.Equal(t, float32(3), h.app.Camera().Position()[2])

	panel.Find("material", "metalness").SetValue(0.333)
	assert.InDelta(t, 0.33, h.app.Material().Metalness(), 1e-6)
	for _, m := range h.app.Meshes() {
		assert.InDelta(t, 0.33, m.Material().Metalness(), 1e-6)
	}

	// the whole ior range is live, not only what the shader can resolve
	ior := panel.Find("material", "ior")
	assert.Equal(t, float32(5), ior.SetValue(5))
	assert.Equal(t, float32(5), ior.Value())
	assert.Equal(t, float32(5), h.app.Material().IOR())
	assert.Equal(t, float32(10), ior.SetValue(12))
	assert.Equal(t, float32(10), h.app.Material().IOR())
}

func TestPresetAppliedAtStartupAndSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.toml")
	require.NoError(t, SavePreset(path, map[string]map[string]float32{
		"material": {"roughness": 0.25},
		"camera":   {"camera position z": 1.5},
	}))

	cfg := DefaultConfig()
	cfg.Preset = path
	h := newHarness(t, cfg, nil)
	assert.Equal(t, float32(0.25), h.app.Material().Roughness())
	assert.Equal(t, float32(1.5), h.app.Camera().Position()[2])

	h.app.Material().SetMetalness(0.5)
	h.window.onKeyDown(common.KeyS, common.ModControl)

	saved, err := LoadPreset(path)
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), saved["material"]["metalness"])
	assert.Equal(t, float32(0.25), saved["material"]["roughness"])
}

func TestMissingPresetFileUsesDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preset = filepath.Join(t.TempDir(), "absent.toml")
	h := newHarness(t, cfg, nil)
	assert.Equal(t, float32(1), h.app.Material().Roughness())
}

func TestRunStopsWhenWindowCloses(t *testing.T) {
	h := newHarness(t, DefaultConfig(), nil)
	h.window.closeAfter = 4

	require.NoError(t, h.app.Run(context.Background()))
	assert.Equal(t, 3, h.renderer.renders)
}

func TestRunStopsOnCancel(t *testing.T) {
	h := newHarness(t, DefaultConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, h.app.Run(ctx), context.Canceled)
	assert.Zero(t, h.renderer.renders)
}

func TestCloseReleasesEverything(t *testing.T) {
	h := newHarness(t, DefaultConfig(), nil)
	require.NoError(t, h.app.Close())
	assert.True(t, h.renderer.released)
	assert.True(t, h.window.closed)
}
