package loader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Carmen-Shannon/oxy-materials/engine/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []string
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnStart: func(url string, loaded, total int) {
			r.events = append(r.events, fmt.Sprintf("start %s %d/%d", url, loaded, total))
		},
		OnProgress: func(url string, loaded, total int) {
			r.events = append(r.events, fmt.Sprintf("progress %d/%d", loaded, total))
		},
		OnError: func(url string, err error) {
			r.events = append(r.events, "error "+url)
		},
		OnLoad: func() {
			r.events = append(r.events, "load")
		},
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// flatHDR encodes texels without run length compression.
func flatHDR(w, h int, texel [4]byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y %d +X %d\n", h, w)
	for range w * h {
		buf.Write(texel[:])
	}
	return buf.Bytes()
}

// rleHDR encodes every channel of every scanline as a single run.
func rleHDR(w, h int, texel [4]byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "#?RGBE\n\n-Y %d +X %d\n", h, w)
	for range h {
		buf.Write([]byte{2, 2, byte(w >> 8), byte(w)})
		for c := range 4 {
			buf.Write([]byte{byte(128 + w), texel[c]})
		}
	}
	return buf.Bytes()
}

func newTestManager(r *recorder) Manager {
	return NewManager(WithWorkers(2), WithCallbacks(r.callbacks()))
}

func TestManagerAccounting(t *testing.T) {
	rec := &recorder{}
	m := newTestManager(rec)
	defer m.Close()

	fsys := fstest.MapFS{
		"textures/color.png": {Data: pngBytes(t, 4, 4)},
	}
	tl := NewTextureLoader(m, WithFS(fsys))

	var loaded []texture.Texture
	var failures []error
	onLoad := func(tex texture.Texture) { loaded = append(loaded, tex) }
	onError := func(err error) { failures = append(failures, err) }

	colorTex := tl.Load("textures/color.png", onLoad, onError, texture.WithColorSpace(texture.ColorSpaceSRGB))
	missing := tl.Load("textures/missing.png", onLoad, onError)

	assert.True(t, m.IsLoading())
	assert.False(t, colorTex.IsLoaded())
	assert.Equal(t, []string{"start textures/color.png 0/1"}, rec.events)

	m.Wait()
	assert.False(t, colorTex.IsLoaded(), "completions wait for Dispatch")
	assert.Equal(t, 2, m.Dispatch())

	assert.True(t, colorTex.IsLoaded())
	assert.Equal(t, texture.ColorSpaceSRGB, colorTex.ColorSpace())
	assert.False(t, missing.IsLoaded())
	require.Len(t, loaded, 1)
	require.Len(t, failures, 1)
	assert.True(t, errors.Is(failures[0], fs.ErrNotExist))

	assert.Contains(t, rec.events, "error textures/missing.png")
	assert.Equal(t, "load", rec.events[len(rec.events)-1])
	l, total := m.Progress()
	assert.Equal(t, 2, l)
	assert.Equal(t, 2, total)
	assert.False(t, m.IsLoading())
}

func TestManagerNewBatch(t *testing.T) {
	rec := &recorder{}
	m := newTestManager(rec)
	defer m.Close()

	m.Submit("a", func() (any, error) { return 1, nil }, nil)
	m.Wait()
	m.Dispatch()
	m.Submit("b", func() (any, error) { return 2, nil }, nil)
	m.Wait()
	m.Dispatch()

	assert.Equal(t, []string{
		"start a 0/1", "progress 1/1", "load",
		"start b 1/2", "progress 2/2", "load",
	}, rec.events)
}

func TestManagerPost(t *testing.T) {
	m := NewManager(WithWorkers(1))
	defer m.Close()

	ran := false
	go m.Post(func() { ran = true })
	<-m.Notify()
	assert.Equal(t, 1, m.Dispatch())
	assert.True(t, ran)
	assert.Zero(t, m.Dispatch())
}

func TestUnsupportedImage(t *testing.T) {
	_, err := imageLoaderBackend{}.Decode([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestHDRDecode(t *testing.T) {
	texel := [4]byte{128, 64, 255, 129} // exponent 1: scale 2/255
	tests := []struct {
		name string
		data []byte
		w, h int
	}{
		{"flat", flatHDR(3, 2, texel), 3, 2},
		{"rle", rleHDR(16, 3, texel), 16, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := hdrLoaderBackend{}.Decode(tt.data)
			require.NoError(t, err)
			require.NotNil(t, dec.float)
			img := dec.float
			assert.Equal(t, tt.w, img.Width)
			assert.Equal(t, tt.h, img.Height)
			require.Len(t, img.Pix, tt.w*tt.h*4)
			last := img.Pix[len(img.Pix)-4:]
			assert.InDelta(t, 128*2.0/255, last[0], 1e-6)
			assert.InDelta(t, 64*2.0/255, last[1], 1e-6)
			assert.InDelta(t, 2.0, last[2], 1e-6)
			assert.Equal(t, float32(1), last[3])
		})
	}
}

func TestHDRZeroExponent(t *testing.T) {
	dec, err := hdrLoaderBackend{}.Decode(flatHDR(1, 1, [4]byte{200, 200, 200, 0}))
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 1}, dec.float.Pix)
}

func TestHDRErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"no magic", []byte("P6\n1 1\n255\n")},
		{"xyze", []byte("#?RADIANCE\nFORMAT=32-bit_rle_xyze\n\n-Y 1 +X 1\n\x00\x00\x00\x00")},
		{"orientation", []byte("#?RADIANCE\n\n+Y 1 +X 1\n\x00\x00\x00\x00")},
		{"truncated", flatHDR(4, 4, [4]byte{1, 1, 1, 128})[:50]},
		{"bad run", append([]byte("#?RADIANCE\n\n-Y 1 +X 8\n"), 2, 2, 0, 8, 200, 1)},
		{"huge resolution", []byte("#?RADIANCE\n\n-Y 2000000000 +X 2000000000\n\x02\x02\x00\x08")},
		{"overflowing resolution", []byte("#?RADIANCE\n\n-Y 9223372036854775807 +X 9223372036854775807\n")},
		{"pixel budget", []byte("#?RADIANCE\n\n-Y 32768 +X 32768\n")},
		{"more pixels than data", []byte("#?RADIANCE\n\n-Y 4096 +X 2048\n\x02\x02\x08\x00\x90\x01")},
		{"flat narrow", []byte("#?RADIANCE\n\n-Y 30000 +X 4\n\x00\x00\x00\x00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hdrLoaderBackend{}.Decode(tt.data)
			assert.ErrorIs(t, err, ErrBadHDR)
		})
	}
}

func TestHDRLoaderTexture(t *testing.T) {
	m := NewManager(WithWorkers(1))
	defer m.Close()

	fsys := fstest.MapFS{"environmentMap/2k.hdr": {Data: rleHDR(8, 4, [4]byte{10, 20, 30, 128})}}
	hl := NewHDRLoader(m, WithFS(fsys))

	var got texture.Texture
	tex := hl.Load("environmentMap/2k.hdr", func(tx texture.Texture) { got = tx }, nil,
		texture.WithMapping(texture.MappingEquirectangularReflection))
	m.Wait()
	m.Dispatch()

	require.Equal(t, tex, got)
	assert.True(t, tex.IsLoaded())
	assert.Equal(t, "2k.hdr", tex.Name())
	assert.False(t, tex.GenerateMipmaps())
	assert.Equal(t, texture.ColorSpaceLinear, tex.ColorSpace())
	assert.Equal(t, texture.MappingEquirectangularReflection, tex.Mapping())
	require.NotNil(t, tex.FloatImage())
	assert.Equal(t, 8, tex.FloatImage().Width)
}

func TestManagerRecoversJobPanic(t *testing.T) {
	rec := &recorder{}
	m := newTestManager(rec)
	defer m.Close()

	var got error
	m.Submit("bad.hdr", func() (any, error) {
		var pix []float32
		return pix[3], nil
	}, func(_ any, err error) { got = err })
	m.Wait()
	m.Dispatch()

	assert.ErrorIs(t, got, ErrJobPanic)
	assert.Equal(t, []string{"start bad.hdr 0/1", "error bad.hdr", "progress 1/1", "load"}, rec.events)
	assert.False(t, m.IsLoading())
}

func TestManagerCloseDropsQueuedJobs(t *testing.T) {
	rec := &recorder{}
	m := NewManager(WithWorkers(1), WithCallbacks(rec.callbacks()))

	started := make(chan struct{})
	release := make(chan struct{})
	var results []error
	done := func(_ any, err error) { results = append(results, err) }

	m.Submit("slow", func() (any, error) {
		close(started)
		<-release
		return nil, nil
	}, done)
	<-started
	m.Submit("queued-1", func() (any, error) { return nil, nil }, done)
	m.Submit("queued-2", func() (any, error) { return nil, nil }, done)

	m.Close()
	close(release)

	waited := make(chan struct{})
	go func() {
		m.Wait()
		close(waited)
	}()
	require.Eventually(t, func() bool {
		select {
		case <-waited:
			return true
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 3, m.Dispatch())
	require.Len(t, results, 3)
	closed := 0
	for _, err := range results {
		if errors.Is(err, ErrClosed) {
			closed++
		}
	}
	assert.Equal(t, 2, closed)
	loaded, total := m.Progress()
	assert.Equal(t, 3, loaded)
	assert.Equal(t, 3, total)
	assert.False(t, m.IsLoading())
	assert.Equal(t, "load", rec.events[len(rec.events)-1])
}

func TestManagerSubmitAfterClose(t *testing.T) {
	rec := &recorder{}
	m := newTestManager(rec)
	m.Close()
	m.Close()

	ran := false
	var got error
	m.Submit("late", func() (any, error) {
		ran = true
		return nil, nil
	}, func(_ any, err error) { got = err })
	m.Wait()
	m.Dispatch()

	assert.False(t, ran)
	assert.ErrorIs(t, got, ErrClosed)
	assert.Equal(t, []string{"start late 0/1", "error late", "progress 1/1", "load"}, rec.events)
}
