package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("material:door", WithVersion(3))
	assert.Equal(t, "material:door", p.Label())
	assert.Equal(t, uint64(3), p.Version())
	assert.False(t, p.Borrowed())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.TextureView(1))
	assert.Nil(t, p.Sampler(2))

	p.SetVersion(4)
	p.SetIndexCount(36)
	assert.Equal(t, uint64(4), p.Version())
	assert.Equal(t, 36, p.IndexCount())

	b := NewBindGroupProvider("scene", WithBorrowedResources())
	assert.True(t, b.Borrowed())
}

func TestReleaseWithoutGPUResources(t *testing.T) {
	p := NewBindGroupProvider("geometry:plane")
	p.SetIndexCount(6)
	p.SetBuffer(0, nil)
	p.SetTextureView(1, nil)
	p.SetSampler(2, nil)

	assert.NotPanics(t, p.Release)
	assert.Equal(t, 0, p.IndexCount())
	assert.NotPanics(t, p.ReleaseBindGroup)
}
