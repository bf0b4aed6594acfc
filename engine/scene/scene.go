package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-materials/engine/light"
	"github.com/Carmen-Shannon/oxy-materials/engine/mesh"
	"github.com/Carmen-Shannon/oxy-materials/engine/texture"
)

// DefaultAmbientColor is the flat ambient term used when no environment texture is loaded.
var DefaultAmbientColor = [3]float32{0.03, 0.03, 0.03}

// Scene holds everything a frame draws: meshes in insertion order, point lights, and the
// optional background and environment textures.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Add appends meshes to the scene. A mesh already present is ignored.
	//
	// Parameters:
	//   - meshes: the meshes to add
	Add(meshes ...mesh.Mesh)

	// Remove removes a mesh by ID.
	//
	// Parameters:
	//   - id: the mesh ID
	//
	// Returns:
	//   - bool: true if the mesh was present
	Remove(id uint64) bool

	// Get returns the mesh with the given ID, or nil if not found.
	//
	// Parameters:
	//   - id: the mesh ID
	//
	// Returns:
	//   - mesh.Mesh: the mesh or nil
	Get(id uint64) mesh.Mesh

	// Meshes returns a snapshot of the scene meshes in insertion order.
	//
	// Returns:
	//   - []mesh.Mesh: the meshes
	Meshes() []mesh.Mesh

	// Count returns the number of meshes in the scene.
	//
	// Returns:
	//   - int: the mesh count
	Count() int

	// Clear removes all meshes and lights. Textures are kept.
	Clear()

	// AddLight adds a light source to the scene.
	//
	// Parameters:
	//   - l: the Light to add
	AddLight(l light.Light)

	// RemoveLight removes a light source from the scene by reference.
	//
	// Parameters:
	//   - l: the Light to remove
	RemoveLight(l light.Light)

	// Lights returns all lights currently registered in the scene.
	//
	// Returns:
	//   - []light.Light: the scene's light list
	Lights() []light.Light

	// Background returns the texture drawn behind all meshes, or nil.
	//
	// Returns:
	//   - texture.Texture: the background texture
	Background() texture.Texture

	// SetBackground sets the texture drawn behind all meshes. Nil clears to the ambient color.
	//
	// Parameters:
	//   - tex: the background texture
	SetBackground(tex texture.Texture)

	// Environment returns the texture used for image-based reflections and refraction, or nil.
	//
	// Returns:
	//   - texture.Texture: the environment texture
	Environment() texture.Texture

	// SetEnvironment sets the texture used for image-based reflections and refraction.
	//
	// Parameters:
	//   - tex: the environment texture
	SetEnvironment(tex texture.Texture)

	// AmbientColor returns the scene's ambient light color.
	//
	// Returns:
	//   - [3]float32: the ambient RGB color
	AmbientColor() [3]float32

	// SetAmbientColor sets the scene's ambient light color.
	//
	// Parameters:
	//   - color: the ambient RGB color
	SetAmbientColor(color [3]float32)
}

type scene struct {
	mu *sync.Mutex

	name        string
	meshes      []mesh.Mesh
	lights      []light.Light
	background  texture.Texture
	environment texture.Texture
	ambient     [3]float32
}

var _ Scene = &scene{}

// NewScene creates an empty scene.
//
// Parameters:
//   - name: the scene identifier
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:      &sync.Mutex{},
		name:    name,
		ambient: DefaultAmbientColor,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Add(meshes ...mesh.Mesh) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(meshes...)
}

func (s *scene) addLocked(meshes ...mesh.Mesh) {
	for _, m := range meshes {
		if m == nil || s.indexLocked(m.ID()) >= 0 {
			continue
		}
		s.meshes = append(s.meshes, m)
	}
}

func (s *scene) indexLocked(id uint64) int {
	return slices.IndexFunc(s.meshes, func(m mesh.Mesh) bool { return m.ID() == id })
}

func (s *scene) Remove(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.meshes = slices.Delete(s.meshes, i, i+1)
	return true
}

func (s *scene) Get(id uint64) mesh.Mesh {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.meshes[i]
	}
	return nil
}

func (s *scene) Meshes() []mesh.Mesh {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.meshes)
}

func (s *scene) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.meshes)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meshes = nil
	s.lights = nil
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.lights, l) {
		return
	}
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.lights, l); i >= 0 {
		s.lights = slices.Delete(s.lights, i, i+1)
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lights)
}

func (s *scene) Background() texture.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

func (s *scene) SetBackground(tex texture.Texture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = tex
}

func (s *scene) Environment() texture.Texture {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.environment
}

func (s *scene) SetEnvironment(tex texture.Texture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.environment = tex
}

func (s *scene) AmbientColor() [3]float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ambient
}

func (s *scene) SetAmbientColor(color [3]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambient = color
}
