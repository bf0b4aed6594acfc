package loader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when a file is not a decodable raster image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// imageLoaderBackend decodes 8-bit raster formats: png, jpeg, gif, bmp, tiff and webp.
type imageLoaderBackend struct{}

var _ loaderBackend = imageLoaderBackend{}

func (imageLoaderBackend) Decode(data []byte) (*decoded, error) {
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return nil, fmt.Errorf("%w: unrecognized content", ErrUnsupportedFormat)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
		}
		return nil, fmt.Errorf("failed to decode %s: %w", kind.MIME.Value, err)
	}
	return &decoded{img: img}, nil
}
