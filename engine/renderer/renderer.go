package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-materials/engine/camera"
	"github.com/Carmen-Shannon/oxy-materials/engine/geometry"
	"github.com/Carmen-Shannon/oxy-materials/engine/light"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-materials/engine/scene"
	"github.com/Carmen-Shannon/oxy-materials/engine/texture"
	"github.com/Carmen-Shannon/oxy-materials/engine/window"
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// BackgroundPipelineKey is the cache key of the fullscreen background pipeline.
const BackgroundPipelineKey = "background"

// materialBinding is the material bind group and the texture providers it was built from.
type materialBinding struct {
	provider bind_group_provider.BindGroupProvider
	maps     [material.MapSlotCount]bind_group_provider.BindGroupProvider
	built    bool
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu     *sync.Mutex
	logger *slog.Logger

	backendType RendererBackendType
	backend     RendererBackend

	pipelineCache map[string]pipeline.Pipeline

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           wgpu.Color

	pixelRatio       float32
	displayW         int
	displayH         int
	bufferW          int
	bufferH          int
	surfaceErr       error
	initialized      bool
	sceneLayout      *wgpu.BindGroupLayout
	materialLayout   *wgpu.BindGroupLayout
	meshLayout       *wgpu.BindGroupLayout
	backgroundLayout *wgpu.BindGroupLayout
	physicalVS       shader.Shader
	physicalFS       shader.Shader
	backgroundVS     shader.Shader
	backgroundFS     shader.Shader

	fallback        bind_group_provider.BindGroupProvider
	textures        map[texture.Texture]bind_group_provider.BindGroupProvider
	failed          map[texture.Texture]uint64
	sceneGroup      bind_group_provider.BindGroupProvider
	sceneEnv        bind_group_provider.BindGroupProvider
	sceneBuilt      bool
	backgroundGroup bind_group_provider.BindGroupProvider
	backgroundTex   bind_group_provider.BindGroupProvider
	materials       map[material.Material]*materialBinding
	geometries      map[geometry.Geometry]bind_group_provider.BindGroupProvider
	meshes          map[uint64]bind_group_provider.BindGroupProvider
}

// Renderer draws a scene of physical-material meshes under point lights and an
// equirectangular environment onto the window surface.
//
// The Renderer owns every GPU resource it creates. Textures are uploaded lazily when they
// finish loading or change version, and missing maps are bound to a 1x1 white texture so
// the material bind group is always complete.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines returns a copy of the pipeline cache.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a map of pipeline keys to their corresponding Pipeline objects
	Pipelines() map[string]pipeline.Pipeline

	// SetPresentMode sets the surface present mode. The surface is reconfigured on the next size change.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the frame is cleared to before the background is drawn.
	//
	// Parameters:
	//   - color: the clear color in linear space
	SetClearColor(color wgpu.Color)

	// SetPixelRatio sets the ratio between drawing buffer pixels and display pixels.
	// Values that are not finite and positive are treated as 1.
	//
	// Parameters:
	//   - ratio: the device pixel ratio to render at
	SetPixelRatio(ratio float32)

	// PixelRatio returns the current pixel ratio.
	//
	// Returns:
	//   - float32: the pixel ratio
	PixelRatio() float32

	// SetSize sets the display size of the surface. The drawing buffer becomes
	// floor(display × pixel ratio) and the surface is reconfigured when that changes.
	//
	// Parameters:
	//   - width: the display width in logical pixels
	//   - height: the display height in logical pixels
	//
	// Returns:
	//   - bool: true if the drawing buffer size changed
	SetSize(width, height int) bool

	// Size returns the display size last passed to SetSize.
	//
	// Returns:
	//   - int: the display width
	//   - int: the display height
	Size() (int, int)

	// DrawingBufferSize returns the size of the surface in physical pixels.
	//
	// Returns:
	//   - int: the drawing buffer width
	//   - int: the drawing buffer height
	DrawingBufferSize() (int, int)

	// Render draws one frame of s as seen from cam. A zero-sized drawing buffer draws nothing.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to draw from
	//
	// Returns:
	//   - error: an error if the surface could not be configured or the frame could not be encoded
	Render(s scene.Scene, cam camera.Camera) error

	// Release frees every GPU resource owned by the Renderer and its backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer drawing onto the given window's surface.
// The drawing buffer stays empty until the first SetSize.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window providing the surface descriptor
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new Renderer
//   - error: window.ErrSurfaceNotFound if the window has no surface, or a GPU initialisation error
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	desc := win.SurfaceDescriptor()
	if desc == nil {
		return nil, window.ErrSurfaceNotFound
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(desc, r.forceFallbackAdapter, r.msaa, r.logger)
	}
	if err != nil {
		return nil, err
	}
	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)
	return r, nil
}

// newRendererWithBackend creates a Renderer over an already constructed backend.
func newRendererWithBackend(backend RendererBackend, options ...RendererBuilderOption) *renderer {
	r := newRenderer(BackendTypeWGPU, options...)
	r.backend = backend
	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)
	return r
}

func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		logger:        slog.Default(),
		backendType:   backendType,
		pipelineCache: make(map[string]pipeline.Pipeline),
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
		clearColor:    wgpu.Color{A: 1},
		pixelRatio:    1,
		textures:      make(map[texture.Texture]bind_group_provider.BindGroupProvider),
		failed:        make(map[texture.Texture]uint64),
		materials:     make(map[material.Material]*materialBinding),
		geometries:    make(map[geometry.Geometry]bind_group_provider.BindGroupProvider),
		meshes:        make(map[uint64]bind_group_provider.BindGroupProvider),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.pipelineCache)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentMode = mode
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(color wgpu.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = color
	r.backend.SetClearColor(color)
}

func (r *renderer) SetPixelRatio(ratio float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !(ratio > 0) || math32.IsInf(ratio, 0) {
		ratio = 1
	}
	r.pixelRatio = ratio
	r.resizeLocked()
}

func (r *renderer) PixelRatio() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pixelRatio
}

func (r *renderer) SetSize(width, height int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.displayW, r.displayH = max(width, 0), max(height, 0)
	return r.resizeLocked()
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.displayW, r.displayH
}

func (r *renderer) DrawingBufferSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bufferW, r.bufferH
}

// resizeLocked recomputes the drawing buffer size and reconfigures the surface when it changed.
func (r *renderer) resizeLocked() bool {
	w := int(math.Floor(float64(r.displayW) * float64(r.pixelRatio)))
	h := int(math.Floor(float64(r.displayH) * float64(r.pixelRatio)))
	if w == r.bufferW && h == r.bufferH {
		return false
	}
	r.bufferW, r.bufferH = w, h
	r.surfaceErr = nil
	if w > 0 && h > 0 {
		if err := r.backend.ConfigureSurface(w, h); err != nil {
			r.surfaceErr = fmt.Errorf("failed to configure surface %dx%d: %w", w, h, err)
		}
	}
	return true
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.surfaceErr != nil {
		return r.surfaceErr
	}
	if r.bufferW == 0 || r.bufferH == 0 {
		return nil
	}
	if s == nil || cam == nil {
		return errors.New("render needs a scene and a camera")
	}
	if err := r.initLocked(); err != nil {
		return err
	}

	var writes []bind_group_provider.BufferWrite

	envProvider := r.textureProvider(s.Environment())
	if err := r.bindSceneGroup(envProvider); err != nil {
		return err
	}
	camUniform := cam.Uniform()
	lightsUniform := light.NewGPULightsUniform(s.Lights())
	envUniform := scene.NewGPUEnvironmentUniform(s)
	if envProvider == r.fallback {
		envUniform.HasEnvironment = 0
	}
	writes = append(writes,
		bind_group_provider.BufferWrite{Provider: r.sceneGroup, Binding: bindingCamera, Data: camUniform.Marshal()},
		bind_group_provider.BufferWrite{Provider: r.sceneGroup, Binding: bindingLights, Data: lightsUniform.Marshal()},
		bind_group_provider.BufferWrite{Provider: r.sceneGroup, Binding: bindingEnvironment, Data: envUniform.Marshal()},
	)

	var background pipeline.Pipeline
	if bgProvider := r.textureProvider(s.Background()); bgProvider != r.fallback {
		if err := r.bindBackgroundGroup(bgProvider); err != nil {
			return err
		}
		var err error
		if background, err = r.backgroundPipeline(); err != nil {
			return err
		}
	}

	type draw struct {
		pipeline pipeline.Pipeline
		geometry bind_group_provider.BindGroupProvider
		groups   []bind_group_provider.BindGroupProvider
	}
	items := buildDrawList(s.Meshes(), cam.Position())
	draws := make([]draw, 0, len(items))
	seenMaterials := make(map[material.Material]bool)
	seenGeometries := make(map[geometry.Geometry]bool)
	seenMeshes := make(map[uint64]bool)
	for _, item := range items {
		p, err := r.physicalPipeline(item.cull, item.blend)
		if err != nil {
			return err
		}
		geo, err := r.geometryProvider(item.mesh.Geometry())
		if err != nil {
			return err
		}
		mb, err := r.materialBinding(item.material)
		if err != nil {
			return err
		}
		meshProvider, err := r.meshProvider(item.mesh.ID(), item.mesh.Name())
		if err != nil {
			return err
		}

		if !seenMaterials[item.material] {
			seenMaterials[item.material] = true
			u := item.material.GPU()
			u.MapFlags = mb.mapFlags(r.fallback)
			writes = append(writes, bind_group_provider.BufferWrite{Provider: mb.provider, Binding: bindingMaterialUniform, Data: u.Marshal()})
		}
		if !seenMeshes[item.mesh.ID()] {
			seenMeshes[item.mesh.ID()] = true
			u := item.mesh.GPU()
			writes = append(writes, bind_group_provider.BufferWrite{Provider: meshProvider, Binding: bindingMeshUniform, Data: u.Marshal()})
		}
		seenGeometries[item.mesh.Geometry()] = true

		draws = append(draws, draw{
			pipeline: p,
			geometry: geo,
			groups:   []bind_group_provider.BindGroupProvider{r.sceneGroup, mb.provider, meshProvider},
		})
	}
	r.prune(seenMaterials, seenGeometries, seenMeshes)

	r.backend.WriteBuffers(writes)
	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	if background != nil {
		r.backend.DrawFullscreen(background, []bind_group_provider.BindGroupProvider{r.sceneGroup, r.backgroundGroup})
	}
	for _, d := range draws {
		r.backend.DrawCall(d.pipeline, d.geometry, d.groups)
	}
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

// initLocked creates the shared layouts, shaders and the fallback texture on the first frame.
func (r *renderer) initLocked() error {
	if r.initialized {
		return nil
	}

	var err error
	layouts := []struct {
		desc wgpu.BindGroupLayoutDescriptor
		dst  **wgpu.BindGroupLayout
	}{
		{sceneLayoutDescriptor(), &r.sceneLayout},
		{materialLayoutDescriptor(), &r.materialLayout},
		{meshLayoutDescriptor(), &r.meshLayout},
		{backgroundLayoutDescriptor(), &r.backgroundLayout},
	}
	for _, l := range layouts {
		if *l.dst, err = r.backend.CreateBindGroupLayout(&l.desc); err != nil {
			return fmt.Errorf("failed to create %s: %w", l.desc.Label, err)
		}
	}

	if r.physicalVS, err = shader.NewShader("physical.vs", shader.ShaderTypeVertex, PhysicalSource); err != nil {
		return err
	}
	if r.physicalFS, err = shader.NewShader("physical.fs", shader.ShaderTypeFragment, PhysicalSource); err != nil {
		return err
	}
	if r.backgroundVS, err = shader.NewShader("background.vs", shader.ShaderTypeVertex, BackgroundSource); err != nil {
		return err
	}
	if r.backgroundFS, err = shader.NewShader("background.fs", shader.ShaderTypeFragment, BackgroundSource); err != nil {
		return err
	}
	physicalLayouts := map[int]wgpu.BindGroupLayoutDescriptor{
		groupScene:    sceneLayoutDescriptor(),
		groupMaterial: materialLayoutDescriptor(),
		groupMesh:     meshLayoutDescriptor(),
	}
	backgroundLayouts := map[int]wgpu.BindGroupLayoutDescriptor{
		groupScene:      sceneLayoutDescriptor(),
		groupBackground: backgroundLayoutDescriptor(),
	}
	for _, check := range []struct {
		s       shader.Shader
		layouts map[int]wgpu.BindGroupLayoutDescriptor
	}{
		{r.physicalVS, physicalLayouts},
		{r.backgroundVS, backgroundLayouts},
	} {
		if err := validateDeclarations(check.s, check.layouts); err != nil {
			return err
		}
	}

	r.fallback = bind_group_provider.NewBindGroupProvider("Fallback Texture")
	if err := r.backend.InitTextureView(r.fallback, bindingTextureView, fallbackStaging()); err != nil {
		return fmt.Errorf("failed to create fallback texture: %w", err)
	}
	if err := r.backend.InitSampler(r.fallback, bindingSampler, fallbackSampler()); err != nil {
		return fmt.Errorf("failed to create fallback sampler: %w", err)
	}

	r.sceneGroup = bind_group_provider.NewBindGroupProvider("Scene",
		bind_group_provider.WithBorrowedResources(),
		bind_group_provider.WithBindGroupLayout(r.sceneLayout),
	)
	r.backgroundGroup = bind_group_provider.NewBindGroupProvider("Background",
		bind_group_provider.WithBorrowedResources(),
		bind_group_provider.WithBindGroupLayout(r.backgroundLayout),
	)
	r.initialized = true
	return nil
}

// textureProvider returns the uploaded texture for tex, uploading it when it is new or its
// version changed. Unloaded textures and textures that failed to upload resolve to the fallback.
func (r *renderer) textureProvider(tex texture.Texture) bind_group_provider.BindGroupProvider {
	if tex == nil || !tex.IsLoaded() {
		return r.fallback
	}
	version := tex.Version()
	existing := r.textures[tex]
	if existing != nil && existing.Version() == version {
		return existing
	}
	if v, failed := r.failed[tex]; failed && v == version {
		return r.fallback
	}

	provider, err := r.uploadTexture(tex, version)
	if err != nil {
		r.failed[tex] = version
		r.logger.Error("failed to upload texture", "texture", tex.Name(), "error", err)
		return r.fallback
	}
	delete(r.failed, tex)
	if existing != nil {
		existing.Release()
	}
	r.textures[tex] = provider
	return provider
}

func (r *renderer) uploadTexture(tex texture.Texture, version uint64) (bind_group_provider.BindGroupProvider, error) {
	staging, err := tex.Staging()
	if err != nil {
		return nil, err
	}
	provider := bind_group_provider.NewBindGroupProvider("Texture "+tex.Name(), bind_group_provider.WithVersion(version))
	if err := r.backend.InitTextureView(provider, bindingTextureView, staging); err != nil {
		provider.Release()
		return nil, err
	}
	if err := r.backend.InitSampler(provider, bindingSampler, tex.Sampler()); err != nil {
		provider.Release()
		return nil, err
	}
	return provider, nil
}

// bindSceneGroup (re)builds the scene bind group when the environment texture changes.
func (r *renderer) bindSceneGroup(env bind_group_provider.BindGroupProvider) error {
	if r.sceneBuilt && r.sceneEnv == env {
		return nil
	}
	r.sceneGroup.SetTextureView(bindingEnvTexture, env.TextureView(bindingTextureView))
	r.sceneGroup.SetSampler(bindingEnvSampler, env.Sampler(bindingSampler))
	if err := r.backend.InitBindGroup(r.sceneGroup, sceneLayoutDescriptor()); err != nil {
		return fmt.Errorf("failed to build scene bind group: %w", err)
	}
	r.sceneEnv = env
	r.sceneBuilt = true
	return nil
}

// bindBackgroundGroup (re)builds the background bind group when the background texture changes.
func (r *renderer) bindBackgroundGroup(bg bind_group_provider.BindGroupProvider) error {
	if r.backgroundTex == bg {
		return nil
	}
	r.backgroundGroup.SetTextureView(bindingTextureView, bg.TextureView(bindingTextureView))
	r.backgroundGroup.SetSampler(bindingSampler, bg.Sampler(bindingSampler))
	if err := r.backend.InitBindGroup(r.backgroundGroup, backgroundLayoutDescriptor()); err != nil {
		return fmt.Errorf("failed to build background bind group: %w", err)
	}
	r.backgroundTex = bg
	return nil
}

func (r *renderer) physicalPipeline(cull wgpu.CullMode, blend bool) (pipeline.Pipeline, error) {
	key := physicalPipelineKey(cull, blend)
	if p, ok := r.pipelineCache[key]; ok {
		return p, nil
	}
	p := pipeline.NewPipeline(key,
		pipeline.WithVertexShader(r.physicalVS),
		pipeline.WithFragmentShader(r.physicalFS),
		pipeline.WithCullMode(cull),
		pipeline.WithBlendEnabled(blend),
		pipeline.WithBindGroupLayouts(r.sceneLayout, r.materialLayout, r.meshLayout),
		pipeline.WithVertexLayouts(vertexLayout()),
	)
	return r.registerPipeline(p)
}

func (r *renderer) backgroundPipeline() (pipeline.Pipeline, error) {
	if p, ok := r.pipelineCache[BackgroundPipelineKey]; ok {
		return p, nil
	}
	p := pipeline.NewPipeline(BackgroundPipelineKey,
		pipeline.WithVertexShader(r.backgroundVS),
		pipeline.WithFragmentShader(r.backgroundFS),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithBindGroupLayouts(r.sceneLayout, r.backgroundLayout),
	)
	return r.registerPipeline(p)
}

func (r *renderer) registerPipeline(p pipeline.Pipeline) (pipeline.Pipeline, error) {
	if err := r.backend.RegisterRenderPipeline(p); err != nil {
		return nil, fmt.Errorf("failed to register pipeline %s: %w", p.PipelineKey(), err)
	}
	r.pipelineCache[p.PipelineKey()] = p
	return p, nil
}

func (r *renderer) geometryProvider(geo geometry.Geometry) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := r.geometries[geo]; ok {
		return p, nil
	}
	p := bind_group_provider.NewBindGroupProvider("Geometry " + geo.Name())
	if err := r.backend.InitMeshBuffers(p, geo.VertexBytes(), geo.IndexBytes(), len(geo.Indices())); err != nil {
		p.Release()
		return nil, fmt.Errorf("failed to upload geometry %s: %w", geo.Name(), err)
	}
	r.geometries[geo] = p
	return p, nil
}

// materialBinding returns the bind group of mat, rebuilding it when any of its maps resolves
// to a different texture than last frame.
func (r *renderer) materialBinding(mat material.Material) (*materialBinding, error) {
	mb := r.materials[mat]
	if mb == nil {
		mb = &materialBinding{
			provider: bind_group_provider.NewBindGroupProvider("Material "+mat.Name(),
				bind_group_provider.WithBorrowedResources(),
				bind_group_provider.WithBindGroupLayout(r.materialLayout),
			),
		}
		r.materials[mat] = mb
	}

	var resolved [material.MapSlotCount]bind_group_provider.BindGroupProvider
	for slot, tex := range mat.Maps() {
		resolved[slot] = r.textureProvider(tex)
	}
	if mb.built && resolved == mb.maps {
		return mb, nil
	}
	for i, p := range resolved {
		slot := material.MapSlot(i)
		mb.provider.SetTextureView(materialTextureBinding(slot), p.TextureView(bindingTextureView))
		mb.provider.SetSampler(materialSamplerBinding(slot), p.Sampler(bindingSampler))
	}
	if err := r.backend.InitBindGroup(mb.provider, materialLayoutDescriptor()); err != nil {
		return nil, fmt.Errorf("failed to build material bind group %s: %w", mat.Name(), err)
	}
	mb.maps = resolved
	mb.built = true
	return mb, nil
}

// mapFlags sets a bit for every slot bound to a real texture.
func (mb *materialBinding) mapFlags(fallback bind_group_provider.BindGroupProvider) uint32 {
	var flags uint32
	for slot, p := range mb.maps {
		if p != nil && p != fallback {
			flags |= 1 << slot
		}
	}
	return flags
}

func (r *renderer) meshProvider(id uint64, name string) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := r.meshes[id]; ok {
		return p, nil
	}
	p := bind_group_provider.NewBindGroupProvider("Mesh "+name,
		bind_group_provider.WithBorrowedResources(),
		bind_group_provider.WithBindGroupLayout(r.meshLayout),
	)
	if err := r.backend.InitBindGroup(p, meshLayoutDescriptor()); err != nil {
		p.Release()
		return nil, fmt.Errorf("failed to build mesh bind group %s: %w", name, err)
	}
	r.meshes[id] = p
	return p, nil
}

// prune releases the GPU resources of meshes, materials and geometries that were not drawn this frame.
func (r *renderer) prune(materials map[material.Material]bool, geometries map[geometry.Geometry]bool, meshes map[uint64]bool) {
	for id, p := range r.meshes {
		if !meshes[id] {
			p.Release()
			delete(r.meshes, id)
		}
	}
	for mat, mb := range r.materials {
		if !materials[mat] {
			mb.provider.Release()
			delete(r.materials, mat)
		}
	}
	for geo, p := range r.geometries {
		if !geometries[geo] {
			p.Release()
			delete(r.geometries, geo)
		}
	}
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prune(nil, nil, nil)
	for tex, p := range r.textures {
		p.Release()
		delete(r.textures, tex)
	}
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	for _, p := range []bind_group_provider.BindGroupProvider{r.sceneGroup, r.backgroundGroup, r.fallback} {
		if p != nil {
			p.Release()
		}
	}
	for _, l := range []*wgpu.BindGroupLayout{r.sceneLayout, r.materialLayout, r.meshLayout, r.backgroundLayout} {
		if l != nil {
			l.Release()
		}
	}
	r.initialized = false
	r.sceneBuilt = false
	r.sceneEnv, r.backgroundTex = nil, nil
	if r.backend != nil {
		r.backend.Release()
	}
}
