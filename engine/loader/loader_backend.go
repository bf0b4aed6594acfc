package loader

import (
	"image"

	"github.com/Carmen-Shannon/oxy-materials/engine/texture"
)

// decoded carries the result of a backend decode: exactly one of the fields is set.
type decoded struct {
	img   image.Image
	float *texture.FloatImage
}

// loaderBackend decodes the raw bytes of one file format.
// Concrete implementations (imageLoaderBackend, hdrLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Decode parses a complete file.
	//
	// Parameters:
	//   - data: the raw file contents
	//
	// Returns:
	//   - *decoded: the decoded image data
	//   - error: error if the data is not in the backend's format or is corrupt
	Decode(data []byte) (*decoded, error)
}
