package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBindGroupLayout sets the layout the bind group will be created against.
//
// Parameters:
//   - bgl: the bind group layout to use for this provider
//
// Returns:
//   - BindGroupProviderOption: a function that sets the bind group layout for this provider
func WithBindGroupLayout(bgl *wgpu.BindGroupLayout) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.bindGroupLayout = bgl
	}
}

// WithBorrowedResources marks texture views, samplers and the layout as shared. They are
// owned by other providers or by the renderer and Release will not free them.
//
// Returns:
//   - BindGroupProviderOption: a function that marks the provider's textures as borrowed
func WithBorrowedResources() BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.borrowed = true
	}
}

// WithVersion records the source revision the provider is being built from.
//
// Parameters:
//   - v: the revision
//
// Returns:
//   - BindGroupProviderOption: a function that sets the version for this provider
func WithVersion(v uint64) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.version = v
	}
}
