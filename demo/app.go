// Package demo is the materials showcase: one physical material shared by a sphere, a plane
// and a torus, lit by a point light and an HDR environment, with orbit controls, a
// keyboard debug panel and a double-click fullscreen toggle.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"time"

	cerrors "cogentcore.org/core/base/errors"
	"github.com/Carmen-Shannon/oxy-materials/common"
	"github.com/Carmen-Shannon/oxy-materials/engine"
	"github.com/Carmen-Shannon/oxy-materials/engine/camera"
	"github.com/Carmen-Shannon/oxy-materials/engine/debugpanel"
	"github.com/Carmen-Shannon/oxy-materials/engine/geometry"
	"github.com/Carmen-Shannon/oxy-materials/engine/light"
	"github.com/Carmen-Shannon/oxy-materials/engine/loader"
	"github.com/Carmen-Shannon/oxy-materials/engine/mesh"
	"github.com/Carmen-Shannon/oxy-materials/engine/profiler"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-materials/engine/scene"
	"github.com/Carmen-Shannon/oxy-materials/engine/texture"
	"github.com/Carmen-Shannon/oxy-materials/engine/timer"
	"github.com/Carmen-Shannon/oxy-materials/engine/window"
)

// AlertNoSurface is the message shown when no drawable surface could be opened.
const AlertNoSurface = "canvas not found"

// PanelTitle is the debug panel title.
const PanelTitle = "ThreeJS Starter Bun"

// Renderer is the part of renderer.Renderer the demo drives.
type Renderer interface {
	SetSize(width, height int) bool
	SetPixelRatio(ratio float32)
	Render(s scene.Scene, cam camera.Camera) error
	Release()
}

var _ Renderer = renderer.Renderer(nil)

// WindowFactory opens the demo window.
type WindowFactory func(cfg Config) (window.Window, error)

// RendererFactory creates the renderer drawing into win.
type RendererFactory func(win window.Window, cfg Config, logger *slog.Logger) (Renderer, error)

// App owns every object of the running demo. All fields are touched only from the
// goroutine running the frame loop.
type App struct {
	cfg    Config
	logger *slog.Logger

	openWindow  WindowFactory
	newRenderer RendererFactory
	alert       func(message string)
	assets      fs.FS
	clock       timer.Clock

	window   window.Window
	renderer Renderer
	manager  loader.Manager
	engine   engine.Engine

	camera   camera.Camera
	controls camera.OrbitControls
	scene    scene.Scene
	light    light.Light
	material material.Material
	meshes   []mesh.Mesh
	textures Assets
	timer    timer.Timer
	panel    debugpanel.Panel

	closed bool
}

// NewApp opens the window, starts the asset loads and builds the scene.
// When no surface can be opened the alert fires and nothing else is constructed.
//
// Parameters:
//   - cfg: the demo settings
//   - options: functional options, mainly for substituting the window and renderer
//
// Returns:
//   - *App: the ready demo
//   - error: a configuration error, or an error wrapping window.ErrSurfaceNotFound
func NewApp(cfg Config, options ...AppBuilderOption) (*App, error) {
	a := &App{
		cfg:         cfg,
		logger:      slog.Default(),
		openWindow:  openWindow,
		newRenderer: newRenderer,
		clock:       time.Now,
	}
	for _, opt := range options {
		opt(a)
	}
	if a.alert == nil {
		logger := a.logger
		a.alert = func(message string) {
			logger.Error("alert", "message", message)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	win, err := a.openWindow(cfg)
	if win == nil && err == nil {
		err = window.ErrSurfaceNotFound
	}
	if win == nil || errors.Is(err, window.ErrSurfaceNotFound) {
		return nil, a.surfaceFailure(err)
	}
	if err != nil {
		a.logger.Warn("window opened with errors", "error", err)
	}
	a.window = win

	r, err := a.newRenderer(win, cfg, a.logger)
	if err != nil {
		cerrors.Log(win.Close())
		if errors.Is(err, window.ErrSurfaceNotFound) {
			return nil, a.surfaceFailure(err)
		}
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer = r

	a.manager = loader.NewManager(
		loader.WithCallbacks(loader.LogCallbacks(a.logger)),
		loader.WithWorkers(cfg.Workers),
	)
	if a.assets == nil {
		a.assets = os.DirFS(cfg.AssetRoot)
	}

	a.textures = LoadAssets(
		loader.NewTextureLoader(a.manager, loader.WithFS(a.assets)),
		loader.NewHDRLoader(a.manager, loader.WithFS(a.assets)),
		a.setEnvironment,
	)
	a.buildScene()
	a.buildPanel()
	a.bindInput()
	a.loadPreset()

	a.timer = timer.NewTimer(a.clock)
	a.engine = engine.NewEngine(
		engine.WithWindow(win),
		engine.WithDispatcher(a.manager),
		engine.WithFrameCallback(func(float32) { a.Tick() }),
		engine.WithProfiling(cfg.Profile),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithLogger(a.logger))),
		engine.WithFrameLimit(cfg.FrameLimit),
	)
	return a, nil
}

// surfaceFailure fires the alert for a missing surface and wraps the cause.
func (a *App) surfaceFailure(err error) error {
	a.alert(AlertNoSurface)
	if errors.Is(err, window.ErrSurfaceNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", window.ErrSurfaceNotFound, err)
}

// buildScene creates the camera, controls, light, material and meshes.
func (a *App) buildScene() {
	a.camera = camera.NewCamera(
		camera.WithFov(common.DegToRad(75)),
		camera.WithAspect(2),
		camera.WithNear(0.1),
		camera.WithFar(100),
		camera.WithPosition(0, 0, 2),
	)
	a.controls = camera.NewOrbitControls(a.camera, camera.WithDamping(true))
	a.controls.Connect(a.window)

	a.light = light.NewPointLight(
		light.WithColor(0xffffff),
		light.WithIntensity(50),
		light.WithPosition(-1, 5, 4),
	)

	// Maps render as flat values until their image arrives.
	t := a.textures
	a.material = material.NewMaterial(
		material.WithName("door"),
		material.WithSide(material.SideDouble),
		material.WithMetalness(1),
		material.WithRoughness(1),
		material.WithMap(t.DoorColor),
		material.WithAOMap(t.DoorAmbientOcclusion, 1),
		material.WithDisplacementMap(t.DoorHeight, 0.1),
		material.WithMetalnessMap(t.DoorMetalness),
		material.WithNormalMap(t.DoorNormal),
		material.WithTransparent(true),
		material.WithAlphaMap(t.DoorAlpha),
		material.WithTransmission(1, 1.5, 0.5),
	)

	a.meshes = []mesh.Mesh{
		mesh.NewMesh(geometry.Sphere(0.5, 16, 16), a.material, mesh.WithName("sphere"), mesh.WithPosition(-2, 0, 0)),
		mesh.NewMesh(geometry.Plane(1, 1, 100, 100), a.material, mesh.WithName("plane")),
		mesh.NewMesh(geometry.Torus(0.3, 0.2, 16, 32), a.material, mesh.WithName("torus"), mesh.WithPosition(2, 0, 0)),
	}

	a.scene = scene.NewScene("materials",
		scene.WithMeshes(a.meshes...),
		scene.WithLights(a.light),
	)
}

// setEnvironment installs the loaded HDR map as background and environment.
func (a *App) setEnvironment(env texture.Texture) {
	a.scene.SetBackground(env)
	a.scene.SetEnvironment(env)
}

// buildPanel binds the panel controllers to the live camera and material.
func (a *App) buildPanel() {
	a.panel = debugpanel.NewPanel(PanelTitle)

	cam := a.panel.Folder("camera")
	cam.AddNumber("z",
		func() float32 { return a.camera.Position()[2] },
		func(v float32) {
			p := a.camera.Position()
			a.camera.SetPosition(p[0], p[1], v)
		},
	).Min(-3).Max(3).Step(0.1).Name("camera position z")

	mat := a.panel.Folder("material")
	mat.AddNumber("metalness", a.material.Metalness, a.material.SetMetalness).Min(0).Max(1).Step(0.01)
	mat.AddNumber("roughness", a.material.Roughness, a.material.SetRoughness).Min(0).Max(1).Step(0.01)
	mat.AddNumber("transmission", a.material.Transmission, a.material.SetTransmission).Min(0).Max(1)
	mat.AddNumber("ior", a.material.IOR, a.material.SetIOR).Min(1).Max(10)
	mat.AddNumber("thickness", a.material.Thickness, a.material.SetThickness).Min(0).Max(1)

	a.panel.Attach(a.window)
}

// bindInput wires fullscreen and panel keys. Pointer input belongs to the orbit controls.
func (a *App) bindInput() {
	a.window.SetDoubleClickCallback(func(x, y float32) {
		a.toggleFullscreen()
	})
	a.window.SetKeyDownCallback(a.handleKey)
}

func (a *App) toggleFullscreen() {
	if err := window.ToggleFullscreen(a.window); err != nil {
		a.logger.Warn("failed to toggle fullscreen", "error", err)
	}
}

// handleKey gives the panel the first look at every key press.
func (a *App) handleKey(keyCode, mods uint32) {
	if a.panel.HandleKey(keyCode, mods) {
		return
	}
	switch {
	case keyCode == common.KeyF:
		a.toggleFullscreen()
	case keyCode == common.KeyEsc && a.window.IsFullscreen():
		cerrors.Log(a.window.ExitFullscreen())
	case keyCode == common.KeyS && mods&common.ModControl != 0:
		a.savePreset()
	}
}

// loadPreset applies the configured preset file once, if it exists.
func (a *App) loadPreset() {
	if a.cfg.Preset == "" {
		return
	}
	if _, err := os.Stat(a.cfg.Preset); errors.Is(err, fs.ErrNotExist) {
		a.logger.Info("preset file not found, using defaults", "path", a.cfg.Preset)
		return
	}
	a.reloadPreset()
}

func (a *App) reloadPreset() {
	p, err := LoadPreset(a.cfg.Preset)
	if err != nil {
		a.logger.Warn("failed to load preset", "error", err)
		return
	}
	if err := a.panel.Apply(p); err != nil {
		a.logger.Warn("preset has unknown entries", "path", a.cfg.Preset, "error", err)
	}
	a.logger.Info("applied preset", "path", a.cfg.Preset)
}

func (a *App) savePreset() {
	if a.cfg.Preset == "" {
		a.logger.Info("no preset file configured")
		return
	}
	if err := SavePreset(a.cfg.Preset, a.panel.Snapshot()); err != nil {
		a.logger.Warn("failed to save preset", "error", err)
		return
	}
	a.logger.Info("saved preset", "path", a.cfg.Preset)
}

// Tick advances one frame: animate, resize when the display size changed, render, then
// step the orbit damping.
func (a *App) Tick() {
	elapsed := a.timer.Elapsed()
	a.timer.Update()

	// one turn is the same rotation; wrapping in float64 keeps float32 angles exact in long sessions
	angle := float32(math.Mod(elapsed, 2*math.Pi))
	for _, m := range a.meshes {
		r := m.Rotation()
		m.SetRotation(angle, -angle, r[2])
	}

	w, h := a.window.DisplaySize()
	if a.renderer.SetSize(w, h) && w > 0 && h > 0 {
		a.camera.SetAspect(float32(w) / float32(h))
		a.camera.UpdateProjectionMatrix()
		a.renderer.SetPixelRatio(min(a.window.DevicePixelRatio(), a.cfg.MaxPixelRatio, PixelRatioCap))
	}

	if err := a.renderer.Render(a.scene, a.camera); err != nil {
		a.logger.Warn("failed to render frame", "error", err)
	}
	a.controls.Update()
}

// Run drives the frame loop until ctx is cancelled or the window closes, and watches the
// preset file while running. Changes are applied between frames.
//
// Parameters:
//   - ctx: cancels the loop
//
// Returns:
//   - error: the loop error; nil when the window was closed
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.cfg.Preset != "" {
		err := WatchPreset(ctx, a.cfg.Preset, a.logger, func() {
			a.manager.Post(a.reloadPreset)
		})
		if err != nil {
			a.logger.Warn("preset changes will not be reloaded", "error", err)
		}
	}

	return a.engine.Run(ctx)
}

// Close releases the renderer, stops the loader and closes the window.
// Calls after the first are no-ops.
//
// Returns:
//   - error: error if the window failed to close
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.renderer.Release()
	a.manager.Close()
	return a.window.Close()
}

// Scene returns the demo scene.
func (a *App) Scene() scene.Scene { return a.scene }

// Camera returns the demo camera.
func (a *App) Camera() camera.Camera { return a.camera }

// Material returns the material shared by every mesh.
func (a *App) Material() material.Material { return a.material }

// Meshes returns the sphere, plane and torus in that order.
func (a *App) Meshes() []mesh.Mesh { return a.meshes }

// Panel returns the debug panel.
func (a *App) Panel() debugpanel.Panel { return a.panel }

// Assets returns the requested textures.
func (a *App) Assets() Assets { return a.textures }

// Loader returns the manager tracking the asset loads.
func (a *App) Loader() loader.Manager { return a.manager }

func openWindow(cfg Config) (window.Window, error) {
	return window.NewWindow(
		window.WithTitle(cfg.Title),
		window.WithWidth(cfg.Width),
		window.WithHeight(cfg.Height),
		window.WithMinSize(cfg.MinWidth, cfg.MinHeight),
		window.WithFullscreen(cfg.Fullscreen),
	)
}

func newRenderer(win window.Window, cfg Config, logger *slog.Logger) (Renderer, error) {
	return renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(cfg.presentMode()),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Software),
		renderer.WithLogger(logger),
	)
}
