package renderer

import _ "embed"

// PhysicalSource is the WGSL of the physical material pipeline, before pre-processing.
//
//go:embed assets/physical.wgsl
var PhysicalSource string

// BackgroundSource is the WGSL of the equirectangular background pass, before pre-processing.
//
//go:embed assets/background.wgsl
var BackgroundSource string
