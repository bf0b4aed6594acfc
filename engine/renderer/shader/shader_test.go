package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    AnnotationType
		wantNil bool
		wantErr bool
	}{
		{name: "plain code", line: "let x = 1.0;", wantNil: true},
		{name: "ordinary comment", line: "// just a note", wantNil: true},
		{name: "prefix outside comment", line: "let s = \"@oxy:include camera\";", wantNil: true},
		{name: "include", line: "//@oxy:include camera", want: annotationTypeInclude},
		{name: "include indented", line: "    // @oxy:include vertex", want: annotationTypeInclude},
		{name: "group", line: "//@oxy:group 0 1 storage_uniform lights lights", want: AnnotationTypeBindingGroup},
		{name: "empty", line: "//@oxy:", wantErr: true},
		{name: "unknown type", line: "//@oxy:provider 1 0 material", wantErr: true},
		{name: "unknown struct", line: "//@oxy:include skeleton", wantErr: true},
		{name: "include arity", line: "//@oxy:include camera mesh", wantErr: true},
		{name: "group arity", line: "//@oxy:group 0 0 storage_uniform camera", wantErr: true},
		{name: "group number", line: "//@oxy:group x 0 storage_uniform camera camera", wantErr: true},
		{name: "negative binding", line: "//@oxy:group 0 -1 storage_uniform camera camera", wantErr: true},
		{name: "address space", line: "//@oxy:group 0 0 private camera camera", wantErr: true},
		{name: "vertex is not bindable", line: "//@oxy:group 0 0 storage_uniform v vertex", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := parseAnnotation(tt.line, 7)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "line 7")
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, a)
				return
			}
			require.NotNil(t, a)
			assert.Equal(t, tt.want, a.Type)
			assert.Equal(t, 7, a.Line)
		})
	}
}

func TestPreProcessorExpandsIncludesAndGroups(t *testing.T) {
	pp := NewPreProcessor()
	src := strings.Join([]string{
		"//@oxy:include camera",
		"//@oxy:include material",
		"//@oxy:include camera",
		"//@oxy:group 0 0 storage_uniform camera camera",
		"//@oxy:group 1 0 storage_uniform material material",
		"@group(1) @binding(1) var color_map: texture_2d<f32>;",
	}, "\n")

	out, err := pp.Process(src)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "struct CameraUniform"), "repeated include is dropped")
	assert.Contains(t, out, "struct PhysicalMaterial")
	assert.Contains(t, out, "@group(0) @binding(0) var<uniform> camera: CameraUniform;")
	assert.Contains(t, out, "@group(1) @binding(0) var<uniform> material: PhysicalMaterial;")
	assert.Contains(t, out, "var color_map: texture_2d<f32>;")
	assert.NotContains(t, out, "@oxy:")

	decls := pp.Declarations()
	require.Len(t, decls, 2)
	assert.Equal(t, 0, *decls[0].Group)
	assert.Equal(t, 1, *decls[1].Group)
	assert.Equal(t, AnnotationArgMaterial, decls[1].Args[2])

	_, err = pp.Process("//@oxy:group 2 0 storage_uniform mesh mesh")
	require.NoError(t, err)
	assert.Len(t, pp.Declarations(), 1, "declarations reset per Process call")
}

func TestNewShader(t *testing.T) {
	vs, err := NewShader("physical_vs", ShaderTypeVertex, "//@oxy:include vertex\n@vertex fn vs_main() {}")
	require.NoError(t, err)
	assert.Equal(t, "physical_vs", vs.Key())
	assert.Equal(t, DefaultVertexEntryPoint, vs.EntryPoint())
	assert.Equal(t, ShaderTypeVertex, vs.ShaderType())
	assert.Contains(t, vs.Source(), "struct VertexInput")
	require.NotNil(t, vs.Module())
	assert.Equal(t, vs.Source(), vs.Module().WGSLDescriptor.Code)

	fs, err := NewShader("bg_fs", ShaderTypeFragment, "@fragment fn main_bg() {}", WithEntryPoint("main_bg"))
	require.NoError(t, err)
	assert.Equal(t, "main_bg", fs.EntryPoint())

	_, err = NewShader("empty", ShaderTypeFragment, "")
	assert.Error(t, err)

	_, err = NewShader("bad", ShaderTypeFragment, "//@oxy:include nothing")
	assert.ErrorContains(t, err, "bad")
}
