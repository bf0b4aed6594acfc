package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-materials/engine/texture"
)

type fileLoader struct {
	manager  Manager
	fsys     fs.FS
	backend  loaderBackend
	defaults []texture.TextureBuilderOption
}

// TextureLoader starts asynchronous texture loads through a Manager.
type TextureLoader interface {
	// Load returns a texture immediately and fills its image when the file has been
	// decoded and the manager dispatches the completion. On failure the texture stays
	// unloaded; there is no retry.
	//
	// Parameters:
	//   - name: slash-separated path of the file, relative to the loader's file system
	//   - onLoad: called with the texture once its image is set; may be nil
	//   - onError: called with the failure; may be nil
	//   - options: texture options applied after the loader's defaults
	//
	// Returns:
	//   - texture.Texture: the texture, unloaded until the completion runs
	Load(name string, onLoad func(texture.Texture), onError func(error), options ...texture.TextureBuilderOption) texture.Texture
}

var _ TextureLoader = &fileLoader{}

// NewTextureLoader creates a loader for 8-bit raster images (png, jpeg, gif, bmp, tiff, webp).
// Textures default to linear color space with mipmaps and flipY enabled.
//
// Parameters:
//   - m: the manager that runs loads and tracks progress
//   - options: functional options to configure the loader
//
// Returns:
//   - TextureLoader: the image loader
func NewTextureLoader(m Manager, options ...FileLoaderBuilderOption) TextureLoader {
	return newFileLoader(m, imageLoaderBackend{}, nil, options)
}

// NewHDRLoader creates a loader for Radiance RGBE (.hdr) images. Textures are linear
// float data with linear filtering and no mipmaps.
//
// Parameters:
//   - m: the manager that runs loads and tracks progress
//   - options: functional options to configure the loader
//
// Returns:
//   - TextureLoader: the HDR loader
func NewHDRLoader(m Manager, options ...FileLoaderBuilderOption) TextureLoader {
	defaults := []texture.TextureBuilderOption{
		texture.WithColorSpace(texture.ColorSpaceLinear),
		texture.WithFilters(texture.FilterLinear, texture.FilterLinear),
		texture.WithGenerateMipmaps(false),
		texture.WithFlipY(true),
	}
	return newFileLoader(m, hdrLoaderBackend{}, defaults, options)
}

func newFileLoader(m Manager, backend loaderBackend, defaults []texture.TextureBuilderOption, options []FileLoaderBuilderOption) *fileLoader {
	l := &fileLoader{
		manager:  m,
		fsys:     os.DirFS("."),
		backend:  backend,
		defaults: defaults,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *fileLoader) Load(name string, onLoad func(texture.Texture), onError func(error), options ...texture.TextureBuilderOption) texture.Texture {
	clean := path.Clean(strings.TrimPrefix(name, "/"))
	tex := texture.NewTexture(path.Base(clean), slices.Concat(l.defaults, options)...)

	l.manager.Submit(name, func() (any, error) {
		data, err := fs.ReadFile(l.fsys, clean)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		dec, err := l.backend.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", name, err)
		}
		return dec, nil
	}, func(result any, err error) {
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		dec := result.(*decoded)
		if dec.float != nil {
			tex.SetFloatImage(dec.float)
		} else {
			tex.SetImage(dec.img)
		}
		if onLoad != nil {
			onLoad(tex)
		}
	})
	return tex
}
