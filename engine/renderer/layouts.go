package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-materials/engine/camera"
	"github.com/Carmen-Shannon/oxy-materials/engine/geometry"
	"github.com/Carmen-Shannon/oxy-materials/engine/light"
	"github.com/Carmen-Shannon/oxy-materials/engine/mesh"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-materials/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group indices shared by the physical and background pipelines.
const (
	groupScene      = 0
	groupMaterial   = 1
	groupMesh       = 2
	groupBackground = 1
)

// Bindings of the scene group.
const (
	bindingCamera = iota
	bindingLights
	bindingEnvironment
	bindingEnvTexture
	bindingEnvSampler
)

// Bindings of a texture provider and of the background group.
const (
	bindingTextureView = 0
	bindingSampler     = 1
)

// bindingMaterialUniform is the material uniform; map slot n uses the texture at
// materialTextureBinding(n) and the sampler right after it.
const bindingMaterialUniform = 0

// bindingMeshUniform is the only binding of the mesh group.
const bindingMeshUniform = 0

func materialTextureBinding(slot material.MapSlot) int {
	return 1 + 2*int(slot)
}

func materialSamplerBinding(slot material.MapSlot) int {
	return 2 + 2*int(slot)
}

func uniformEntry(binding int, visibility wgpu.ShaderStage, size int) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    uint32(binding),
		Visibility: visibility,
		Buffer: wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeUniform,
			MinBindingSize: uint64(size),
		},
	}
}

func textureEntry(binding int, visibility wgpu.ShaderStage) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    uint32(binding),
		Visibility: visibility,
		Texture: wgpu.TextureBindingLayout{
			SampleType:    wgpu.TextureSampleTypeFloat,
			ViewDimension: wgpu.TextureViewDimension2D,
		},
	}
}

func samplerEntry(binding int, visibility wgpu.ShaderStage) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    uint32(binding),
		Visibility: visibility,
		Sampler: wgpu.SamplerBindingLayout{
			Type: wgpu.SamplerBindingTypeFiltering,
		},
	}
}

// sceneLayoutDescriptor describes group 0: camera, lights, environment terms and the
// equirectangular environment texture.
func sceneLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	var cam camera.GPUCameraUniform
	var lights light.GPULightsUniform
	var env scene.GPUEnvironmentUniform
	both := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Scene Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(bindingCamera, both, cam.Size()),
			uniformEntry(bindingLights, wgpu.ShaderStageFragment, lights.Size()),
			uniformEntry(bindingEnvironment, wgpu.ShaderStageFragment, env.Size()),
			textureEntry(bindingEnvTexture, wgpu.ShaderStageFragment),
			samplerEntry(bindingEnvSampler, wgpu.ShaderStageFragment),
		},
	}
}

// materialLayoutDescriptor describes group 1 of the physical pipeline: the material uniform
// followed by one texture/sampler pair per map slot. The displacement map is read by the
// vertex stage.
func materialLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	var m material.GPUPhysicalMaterial
	both := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	entries := []wgpu.BindGroupLayoutEntry{uniformEntry(bindingMaterialUniform, both, m.Size())}
	for slot := material.MapSlot(0); slot < material.MapSlotCount; slot++ {
		visibility := wgpu.ShaderStageFragment
		if slot == material.MapDisplacement {
			visibility = both
		}
		entries = append(entries,
			textureEntry(materialTextureBinding(slot), visibility),
			samplerEntry(materialSamplerBinding(slot), visibility),
		)
	}
	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Material Bind Group Layout",
		Entries: entries,
	}
}

// meshLayoutDescriptor describes group 2 of the physical pipeline: the per-mesh transforms.
func meshLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	var m mesh.GPUMeshUniform
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Mesh Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(bindingMeshUniform, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, m.Size()),
		},
	}
}

// backgroundLayoutDescriptor describes group 1 of the background pipeline.
func backgroundLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Background Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			textureEntry(bindingTextureView, wgpu.ShaderStageFragment),
			samplerEntry(bindingSampler, wgpu.ShaderStageFragment),
		},
	}
}

// vertexLayout matches geometry.GPUVertex: position, normal, uv, tangent.
func vertexLayout() wgpu.VertexBufferLayout {
	var v geometry.GPUVertex
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(v.Size()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 3},
		},
	}
}

// validateDeclarations checks that every uniform a shader declares through a group
// annotation exists in the matching layout as a uniform buffer binding.
func validateDeclarations(s shader.Shader, layouts map[int]wgpu.BindGroupLayoutDescriptor) error {
	for _, d := range s.Declarations() {
		desc, ok := layouts[*d.Group]
		if !ok {
			return fmt.Errorf("shader %s line %d: group %d has no layout", s.Key(), d.Line, *d.Group)
		}
		found := false
		for _, e := range desc.Entries {
			if int(e.Binding) == *d.Binding && e.Buffer.Type == wgpu.BufferBindingTypeUniform {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("shader %s line %d: group %d binding %d is not a uniform in %s",
				s.Key(), d.Line, *d.Group, *d.Binding, desc.Label)
		}
	}
	return nil
}
