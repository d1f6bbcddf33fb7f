package convert

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"ambient-portfolio/internal/utils"

	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"
)

// Texture pixel formats stored in the TEXI header.
const (
	FormatRGBA8888 uint32 = 0
	FormatDXT5     uint32 = 4
	FormatDXT3     uint32 = 6
	FormatDXT1     uint32 = 7
	FormatRG88     uint32 = 8
	FormatR8       uint32 = 9
)

const (
	texMagic      = "TEXV0005"
	texInfoMagic  = "TEXI0001"
	containerV1   = "TEXB0001"
	containerV2   = "TEXB0002"
	containerV3   = "TEXB0003"
	maxMipmapSize = 64 << 20
)

var ErrNotTexture = errors.New("not a TEXV0005 texture")

type texHeader struct {
	Format      uint32
	Flags       uint32
	TexWidth    uint32
	TexHeight   uint32
	ImageWidth  uint32
	ImageHeight uint32
	Unknown     uint32
}

type texReader struct {
	r   io.Reader
	err error
}

func (t *texReader) u32() uint32 {
	var v uint32
	if t.err == nil {
		t.err = binary.Read(t.r, binary.LittleEndian, &v)
	}
	return v
}

// magic reads an eight byte tag followed by its NUL terminator.
func (t *texReader) magic() string {
	if t.err != nil {
		return ""
	}
	b := make([]byte, 9)
	if _, err := io.ReadFull(t.r, b); err != nil {
		t.err = err
		return ""
	}
	return string(bytes.TrimRight(b, "\x00"))
}

// DecodeTex decodes the first mipmap of the first image in a texture
// container and crops it to the artwork's own size.
func DecodeTex(r io.Reader) (image.Image, error) {
	tr := &texReader{r: r}

	if m := tr.magic(); m != texMagic {
		if tr.err != nil {
			return nil, fmt.Errorf("failed to read texture magic: %w", tr.err)
		}
		return nil, fmt.Errorf("%w: magic %q", ErrNotTexture, m)
	}
	if m := tr.magic(); m != texInfoMagic && tr.err == nil {
		return nil, fmt.Errorf("%w: info magic %q", ErrNotTexture, m)
	}

	var hdr texHeader
	if tr.err == nil {
		tr.err = binary.Read(r, binary.LittleEndian, &hdr)
	}

	container := tr.magic()
	imageCount := tr.u32()
	if tr.err != nil {
		return nil, fmt.Errorf("failed to read texture header: %w", tr.err)
	}
	switch container {
	case containerV1, containerV2:
	case containerV3:
		tr.u32() // source image format
	default:
		return nil, fmt.Errorf("unsupported texture container %q", container)
	}
	if imageCount == 0 {
		return nil, fmt.Errorf("texture has no images")
	}

	mipmaps := tr.u32()
	if tr.err != nil {
		return nil, fmt.Errorf("failed to read mipmap table: %w", tr.err)
	}
	if mipmaps == 0 {
		return nil, fmt.Errorf("texture has no mipmaps")
	}

	w, h := tr.u32(), tr.u32()
	compressed, rawSize := false, uint32(0)
	if container != containerV1 {
		compressed = tr.u32() == 1
		rawSize = tr.u32()
	}
	size := tr.u32()
	if tr.err != nil {
		return nil, fmt.Errorf("failed to read mipmap header: %w", tr.err)
	}
	if size > maxMipmapSize || rawSize > maxMipmapSize {
		return nil, fmt.Errorf("mipmap too large: %d bytes", max(size, rawSize))
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("failed to read mipmap data: %w", err)
	}
	if compressed {
		raw := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(data, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress mipmap: %w", err)
		}
		data = raw[:n]
	}

	pix, err := decodePixels(hdr.Format, data, w, h)
	if err != nil {
		return nil, err
	}
	utils.Debug("Decoded texture format %d %dx%d (image %dx%d)", hdr.Format, w, h, hdr.ImageWidth, hdr.ImageHeight)

	img := &image.RGBA{Pix: pix, Stride: int(w) * 4, Rect: image.Rect(0, 0, int(w), int(h))}
	cropW, cropH := int(hdr.ImageWidth), int(hdr.ImageHeight)
	if cropW <= 0 || cropW > int(w) {
		cropW = int(w)
	}
	if cropH <= 0 || cropH > int(h) {
		cropH = int(h)
	}
	return img.SubImage(image.Rect(0, 0, cropW, cropH)), nil
}

func decodePixels(format uint32, data []byte, w, h uint32) ([]byte, error) {
	pixels := int(w) * int(h)
	blocks := int((w+3)/4) * int((h+3)/4)

	want := 0
	switch format {
	case FormatRGBA8888:
		want = pixels * 4
	case FormatDXT5:
		want = blocks * 16
	case FormatDXT1:
		want = blocks * 8
	case FormatRG88:
		want = pixels * 2
	case FormatR8:
		want = pixels
	case FormatDXT3:
		return nil, fmt.Errorf("texture format DXT3 is not supported")
	default:
		return nil, fmt.Errorf("unknown texture format %d", format)
	}
	if len(data) < want {
		return nil, fmt.Errorf("texture format %d %dx%d: want %d bytes, got %d", format, w, h, want, len(data))
	}
	data = data[:want]

	switch format {
	case FormatDXT5:
		return dxt.DecodeDXT5(data, uint(w), uint(h))
	case FormatDXT1:
		return dxt.DecodeDXT1(data, uint(w), uint(h))
	case FormatRGBA8888:
		pix := make([]byte, len(data))
		copy(pix, data)
		return pix, nil
	case FormatRG88:
		// Luminance in the first channel, alpha in the second.
		pix := make([]byte, pixels*4)
		for i := 0; i < pixels; i++ {
			l, a := data[i*2], data[i*2+1]
			pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = l, l, l, a
		}
		return pix, nil
	}

	pix := make([]byte, pixels*4)
	for i := 0; i < pixels; i++ {
		v := data[i]
		pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3] = v, v, v, 255
	}
	return pix, nil
}

func DecodeTexFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := DecodeTex(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
