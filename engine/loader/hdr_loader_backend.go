package loader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-materials/engine/texture"
)

// ErrBadHDR is returned for Radiance files that cannot be parsed.
var ErrBadHDR = errors.New("bad radiance hdr")

const (
	hdrMaxHeaderLines = 64
	hdrRLEMinWidth    = 8
	hdrRLEMaxWidth    = 0x7fff

	// Resolution limits checked before any pixel allocation.
	hdrMaxDimension = 32768
	hdrMaxPixels    = 1 << 27

	// hdrMaxRun is the longest repeat a single two-byte run can encode.
	hdrMaxRun = 127
)

// hdrLoaderBackend decodes Radiance RGBE (.hdr) images into linear float texels.
type hdrLoaderBackend struct{}

var _ loaderBackend = hdrLoaderBackend{}

func (hdrLoaderBackend) Decode(data []byte) (*decoded, error) {
	src := bytes.NewReader(data)
	r := bufio.NewReader(src)
	width, height, err := readHDRHeader(r)
	if err != nil {
		return nil, err
	}
	if err := checkHDRSize(width, height, src.Len()+r.Buffered()); err != nil {
		return nil, err
	}
	rgbe, err := readHDRPixels(r, width, height)
	if err != nil {
		return nil, err
	}
	img := &texture.FloatImage{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*4),
	}
	for i := range width * height {
		rgbeToFloat(rgbe[i*4:i*4+4], img.Pix[i*4:i*4+4])
	}
	return &decoded{float: img}, nil
}

// readHDRHeader consumes the header block and resolution line.
// Only the standard "-Y height +X width" orientation is accepted.
func readHDRHeader(r *bufio.Reader) (int, int, error) {
	first, err := r.ReadString('\n')
	if err != nil {
		return 0, 0, fmt.Errorf("%w: missing header: %w", ErrBadHDR, err)
	}
	if !strings.HasPrefix(first, "#?") {
		return 0, 0, fmt.Errorf("%w: bad initial token", ErrBadHDR)
	}

	for range hdrMaxHeaderLines {
		line, err := r.ReadString('\n')
		if err != nil {
			return 0, 0, fmt.Errorf("%w: unterminated header: %w", ErrBadHDR, err)
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return readHDRResolution(r)
		}
		if format, ok := strings.CutPrefix(line, "FORMAT="); ok && format != "32-bit_rle_rgbe" {
			return 0, 0, fmt.Errorf("%w: unsupported format %q", ErrBadHDR, format)
		}
	}
	return 0, 0, fmt.Errorf("%w: header too long", ErrBadHDR)
}

func readHDRResolution(r *bufio.Reader) (int, int, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, 0, fmt.Errorf("%w: missing resolution: %w", ErrBadHDR, err)
	}
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "-Y" || fields[2] != "+X" {
		return 0, 0, fmt.Errorf("%w: unsupported resolution %q", ErrBadHDR, strings.TrimSpace(line))
	}
	height, herr := strconv.Atoi(fields[1])
	width, werr := strconv.Atoi(fields[3])
	if herr != nil || werr != nil || width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: bad resolution %q", ErrBadHDR, strings.TrimSpace(line))
	}
	return width, height, nil
}

// checkHDRSize rejects resolutions beyond the pixel limits and resolutions the remaining
// bytes cannot hold, even fully run length compressed.
func checkHDRSize(width, height, remaining int) error {
	if width > hdrMaxDimension || height > hdrMaxDimension || width*height > hdrMaxPixels {
		return fmt.Errorf("%w: resolution %dx%d too large", ErrBadHDR, width, height)
	}
	minLine := 4 + 4*2*((width+hdrMaxRun-1)/hdrMaxRun)
	if width < hdrRLEMinWidth || width > hdrRLEMaxWidth {
		minLine = width * 4
	}
	if remaining < minLine*height {
		return fmt.Errorf("%w: %d bytes cannot hold %dx%d pixels", ErrBadHDR, remaining, width, height)
	}
	return nil
}

// readHDRPixels reads all scanlines as RGBE bytes. Images that do not start with a
// new-style run length header are read flat.
func readHDRPixels(r *bufio.Reader, width, height int) ([]byte, error) {
	out := make([]byte, width*height*4)
	head, err := r.Peek(4)
	if width < hdrRLEMinWidth || width > hdrRLEMaxWidth || err != nil ||
		head[0] != 2 || head[1] != 2 || head[2]&0x80 != 0 {
		if _, err := io.ReadFull(r, out); err != nil {
			return nil, fmt.Errorf("%w: truncated flat data: %w", ErrBadHDR, err)
		}
		return out, nil
	}

	line := make([]byte, width*4)
	for y := range height {
		if err := readHDRScanline(r, line, width); err != nil {
			return nil, fmt.Errorf("scanline %d: %w", y, err)
		}
		// planar RRRR GGGG BBBB EEEE to interleaved RGBE
		row := out[y*width*4 : (y+1)*width*4]
		for x := range width {
			for c := range 4 {
				row[x*4+c] = line[c*width+x]
			}
		}
	}
	return out, nil
}

func readHDRScanline(r *bufio.Reader, line []byte, width int) error {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return fmt.Errorf("%w: truncated scanline header: %w", ErrBadHDR, err)
	}
	if head[0] != 2 || head[1] != 2 || int(head[2])<<8|int(head[3]) != width {
		return fmt.Errorf("%w: wrong scanline width", ErrBadHDR)
	}

	for c := range 4 {
		channel := line[c*width : (c+1)*width]
		for pos := 0; pos < width; {
			count, err := r.ReadByte()
			if err != nil {
				return fmt.Errorf("%w: truncated run: %w", ErrBadHDR, err)
			}
			if count > 128 {
				n := int(count) - 128
				if pos+n > width {
					return fmt.Errorf("%w: run overflows scanline", ErrBadHDR)
				}
				v, err := r.ReadByte()
				if err != nil {
					return fmt.Errorf("%w: truncated run: %w", ErrBadHDR, err)
				}
				for i := range n {
					channel[pos+i] = v
				}
				pos += n
				continue
			}
			n := int(count)
			if n == 0 || pos+n > width {
				return fmt.Errorf("%w: bad literal run", ErrBadHDR)
			}
			if _, err := io.ReadFull(r, channel[pos:pos+n]); err != nil {
				return fmt.Errorf("%w: truncated literal: %w", ErrBadHDR, err)
			}
			pos += n
		}
	}
	return nil
}

// rgbeToFloat expands one shared-exponent texel to linear RGBA with alpha 1.
func rgbeToFloat(src []byte, dst []float32) {
	dst[3] = 1
	if src[3] == 0 {
		dst[0], dst[1], dst[2] = 0, 0, 0
		return
	}
	scale := float32(math.Ldexp(1, int(src[3])-128)) / 255
	dst[0] = float32(src[0]) * scale
	dst[1] = float32(src[1]) * scale
	dst[2] = float32(src[2]) * scale
}
