package pixel

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"github.com/sergeymakinen/go-bmp"
	xbmp "golang.org/x/image/bmp"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Source describes the encoded form a decoded image came from.
type Source struct {
	Format string

	// BMP header fields, zero for other formats.
	BitCount    int
	Compression int
	AlphaMask   uint32

	// GrayAlpha is set for PNG files with the gray+alpha color type.
	GrayAlpha bool
}

// BMP compression methods.
const (
	biBitfields      = 3
	biAlphaBitfields = 6
)

const pngGrayAlpha = 4

var (
	bmpMagic = []byte("BM")
	pngMagic = []byte("\x89PNG\r\n\x1a\n")
)

// Decode reads a whole encoded image from r.
func Decode(r io.Reader) (image.Image, Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Source{}, fmt.Errorf("read image: %w", err)
	}

	if bytes.HasPrefix(data, bmpMagic) {
		return decodeBMP(data)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, Source{}, fmt.Errorf("decode image: %w", err)
	}
	return img, Source{Format: format, GrayAlpha: pngColorType(data) == pngGrayAlpha}, nil
}

// decodeBMP tries go-bmp first, then go-bmp again with any gap between the
// color table and the pixel array removed, then golang.org/x/image/bmp.
func decodeBMP(data []byte) (image.Image, Source, error) {
	h, _ := parseBMPHeader(data)
	src := Source{
		Format:      "bmp",
		BitCount:    h.bitCount,
		Compression: h.compression,
		AlphaMask:   h.alphaMask,
	}

	img, err := bmp.Decode(bytes.NewReader(data))
	if err == nil {
		return img, src, nil
	}

	if compact := compactBMP(data, h); compact != nil {
		if img, cerr := bmp.Decode(bytes.NewReader(compact)); cerr == nil {
			return img, src, nil
		}
	}

	if img, xerr := xbmp.Decode(bytes.NewReader(data)); xerr == nil {
		return img, src, nil
	}

	return nil, Source{}, fmt.Errorf("decode bmp: %w", err)
}

type bmpHeader struct {
	offset      int
	dibSize     int
	bitCount    int
	compression int
	colorsUsed  int
	alphaMask   uint32
}

// parseBMPHeader reads the file and DIB headers. OS/2 core headers are
// 12 bytes long and keep the bit count at a different offset.
func parseBMPHeader(data []byte) (bmpHeader, bool) {
	le := binary.LittleEndian
	if len(data) < 18 {
		return bmpHeader{}, false
	}

	h := bmpHeader{
		offset:  int(le.Uint32(data[10:14])),
		dibSize: int(le.Uint32(data[14:18])),
	}

	if h.dibSize == 12 {
		if len(data) < 26 {
			return h, false
		}
		h.bitCount = int(le.Uint16(data[24:26]))
		return h, true
	}

	if len(data) < 50 {
		if len(data) >= 30 {
			h.bitCount = int(le.Uint16(data[28:30]))
		}
		return h, false
	}
	h.bitCount = int(le.Uint16(data[28:30]))
	h.compression = int(le.Uint32(data[30:34]))
	h.colorsUsed = int(le.Uint32(data[46:50]))

	// The alpha mask sits right after the blue mask, either inside a V3+
	// header or trailing a 40-byte header with ALPHABITFIELDS.
	if (h.dibSize >= 56 || h.compression == biAlphaBitfields) && len(data) >= 70 {
		h.alphaMask = le.Uint32(data[66:70])
	}
	return h, true
}

// tableSize returns the length of the color table or trailing masks.
func (h bmpHeader) tableSize() int {
	if h.bitCount > 0 && h.bitCount <= 8 {
		colors := h.colorsUsed
		if colors == 0 {
			colors = 1 << uint(h.bitCount)
		}
		if h.dibSize == 12 {
			return colors * 3
		}
		return colors * 4
	}
	if h.dibSize == 40 {
		switch h.compression {
		case biBitfields:
			return 12
		case biAlphaBitfields:
			return 16
		}
	}
	return 0
}

// compactBMP drops the bytes between the color table and the pixel array,
// or returns nil when there is no such gap.
func compactBMP(data []byte, h bmpHeader) []byte {
	want := 14 + h.dibSize + h.tableSize()
	if h.dibSize == 0 || h.offset <= want || h.offset > len(data) {
		return nil
	}

	out := make([]byte, 0, len(data)-(h.offset-want))
	out = append(out, data[:want]...)
	out = append(out, data[h.offset:]...)
	binary.LittleEndian.PutUint32(out[2:6], uint32(len(out)))
	binary.LittleEndian.PutUint32(out[10:14], uint32(want))
	return out
}

// pngColorType reads the color type byte of the IHDR chunk, -1 if absent.
func pngColorType(data []byte) int {
	if !bytes.HasPrefix(data, pngMagic) || len(data) < 26 || string(data[12:16]) != "IHDR" {
		return -1
	}
	return int(data[25])
}
