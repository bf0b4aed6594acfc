// pre_processor.go implements the WGSL pre-processor. It replaces @oxy: annotations with
// the WGSL definitions of the engine's GPU types and with generated binding declarations,
// keeping the Go structs and the shader structs defined in exactly one place.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-materials/engine/camera"
	"github.com/Carmen-Shannon/oxy-materials/engine/geometry"
	"github.com/Carmen-Shannon/oxy-materials/engine/light"
	"github.com/Carmen-Shannon/oxy-materials/engine/mesh"
	"github.com/Carmen-Shannon/oxy-materials/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-materials/engine/scene"
)

// registryEntry pairs an embedded WGSL struct source with the type name used in
// generated binding declarations.
type registryEntry struct {
	Source string
	Type   string
}

type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string

	declarations []Annotation
}

// PreProcessor expands @oxy: annotations in WGSL source.
type PreProcessor interface {
	// Process expands every annotation in source. Include annotations are replaced by the
	// registered struct source, once per struct type; repeated includes of the same type are
	// dropped. Group annotations are replaced by a @group/@binding declaration and recorded.
	//
	// Parameters:
	//   - source: the raw WGSL source
	//
	// Returns:
	//   - string: the expanded WGSL source
	//   - error: an error if an annotation is malformed
	Process(source string) (string, error)

	// Declarations returns the group annotations collected by the most recent Process call,
	// in source order.
	//
	// Returns:
	//   - []Annotation: the collected declarations
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with every engine GPU type registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:      {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			AnnotationArgLights:      {Source: light.GPUPointLightSource, Type: "LightsUniform"},
			AnnotationArgEnvironment: {Source: scene.GPUEnvironmentUniformSource, Type: "EnvironmentUniform"},
			AnnotationArgMaterial:    {Source: material.GPUPhysicalMaterialSource, Type: "PhysicalMaterial"},
			AnnotationArgMesh:        {Source: mesh.GPUMeshUniformSource, Type: "MeshUniform"},
			annotationArgVertex:      {Source: geometry.GPUVertexSource, Type: "VertexInput"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	included := make(map[AnnotationArg]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			if included[a.Args[0]] {
				continue
			}
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", i+1, a.Args[0])
			}
			included[a.Args[0]] = true
			out = append(out, strings.TrimRight(entry.Source, "\n"))
		case AnnotationTypeBindingGroup:
			entry := p.structRegistry[a.Args[2]]
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				*a.Group, *a.Binding, p.addressSpaceRegistry[a.Args[0]], a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
