package renderer

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-materials/engine/mesh"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
)

// drawItem is one draw of a mesh with the fixed-function state its material needs.
type drawItem struct {
	mesh     mesh.Mesh
	material material.Material
	cull     wgpu.CullMode
	blend    bool
	depth    float32
}

// pipelineKey names the physical pipeline variant an item is drawn with.
func (d drawItem) pipelineKey() string {
	return physicalPipelineKey(d.cull, d.blend)
}

func physicalPipelineKey(cull wgpu.CullMode, blend bool) string {
	mode := "none"
	switch cull {
	case wgpu.CullModeBack:
		mode = "back"
	case wgpu.CullModeFront:
		mode = "front"
	}
	return fmt.Sprintf("physical/%s/%t", mode, blend)
}

func cullModeForSide(side material.Side) wgpu.CullMode {
	switch side {
	case material.SideBack:
		return wgpu.CullModeFront
	case material.SideDouble:
		return wgpu.CullModeNone
	default:
		return wgpu.CullModeBack
	}
}

// buildDrawList orders meshes for drawing from eye: opaque near to far, then transparent
// far to near. A transparent double-sided mesh is drawn twice, back faces first.
func buildDrawList(meshes []mesh.Mesh, eye [3]float32) []drawItem {
	var opaque, transparent []drawItem
	for _, m := range meshes {
		if m == nil || !m.Enabled() || m.Geometry() == nil || m.Material() == nil {
			continue
		}
		mat := m.Material()
		params := mat.Params()
		p := m.Position()
		dx, dy, dz := p[0]-eye[0], p[1]-eye[1], p[2]-eye[2]
		item := drawItem{
			mesh:     m,
			material: mat,
			cull:     cullModeForSide(params.Side),
			blend:    params.Transparent,
			depth:    dx*dx + dy*dy + dz*dz,
		}
		if !params.Transparent {
			opaque = append(opaque, item)
			continue
		}
		if params.Side == material.SideDouble {
			back := item
			back.cull = wgpu.CullModeFront
			item.cull = wgpu.CullModeBack
			transparent = append(transparent, back, item)
			continue
		}
		transparent = append(transparent, item)
	}

	sort.SliceStable(opaque, func(i, j int) bool { return opaque[i].depth < opaque[j].depth })
	sort.SliceStable(transparent, func(i, j int) bool { return transparent[i].depth > transparent[j].depth })
	return append(opaque, transparent...)
}
