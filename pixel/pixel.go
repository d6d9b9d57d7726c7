package pixel

import (
	"fmt"
	"image"
	"image/color"
	"os"
)

// Mode names the array layout of a decoded image.
type Mode string

const (
	ModeBilevel Mode = "1"
	ModeL       Mode = "L"
	ModeLA      Mode = "LA"
	ModeP       Mode = "P"
	ModeRGB     Mode = "RGB"
	ModeRGBA    Mode = "RGBA"
	ModeCMYK    Mode = "CMYK"
	ModeI16     Mode = "I;16"
)

// Channels returns the number of values stored per pixel.
func (m Mode) Channels() int {
	switch m {
	case ModeLA:
		return 2
	case ModeRGB:
		return 3
	case ModeRGBA, ModeCMYK:
		return 4
	}
	return 1
}

// ElemSize returns the size in bytes of one stored value.
func (m Mode) ElemSize() int {
	if m == ModeI16 {
		return 2
	}
	return 1
}

// Buffer is a flattened pixel grid: rows top to bottom, channels interleaved.
type Buffer struct {
	Mode   Mode
	Width  int
	Height int
	Data   []byte
}

// Len returns the number of elements in the buffer.
func (b *Buffer) Len() int {
	return len(b.Data) / b.Mode.ElemSize()
}

// Even returns the buffer trimmed to an even element count. The last element
// is dropped when the count is odd; the buffer itself is returned otherwise.
func (b *Buffer) Even() *Buffer {
	n := b.Len()
	if n%2 == 0 {
		return b
	}
	out := *b
	out.Data = b.Data[:(n-1)*b.Mode.ElemSize()]
	return &out
}

// Samples reinterprets the raw buffer as unsigned 8-bit samples.
func (b *Buffer) Samples() []uint8 {
	return b.Data
}

// Load opens and decodes the image at path and flattens its pixels.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, src, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return Flatten(img, Detect(img, src)), nil
}

// Detect picks the array layout for a decoded image.
func Detect(img image.Image, src Source) Mode {
	if src.Format == "bmp" && src.BitCount > 0 {
		return detectBMP(img, src)
	}
	if src.GrayAlpha {
		return ModeLA
	}

	switch img.(type) {
	case *image.Gray:
		return ModeL
	case *image.Gray16:
		return ModeI16
	case *image.Paletted:
		return ModeP
	case *image.RGBA, *image.RGBA64, *image.YCbCr:
		return ModeRGB
	case *image.CMYK:
		return ModeCMYK
	}
	return ModeRGBA
}

func detectBMP(img image.Image, src Source) Mode {
	if src.BitCount <= 8 {
		switch m := img.(type) {
		case *image.Paletted:
			if !isGrayPalette(m.Palette) {
				return ModeP
			}
			if len(m.Palette) == 2 {
				return ModeBilevel
			}
			return ModeL
		case *image.Gray:
			return ModeL
		}
		return ModeRGB
	}

	// Only a declared alpha mask makes a bitmap RGBA; the fourth byte of a
	// BI_RGB 32-bit pixel is padding.
	if src.BitCount == 32 && src.AlphaMask != 0 &&
		(src.Compression == biBitfields || src.Compression == biAlphaBitfields) {
		return ModeRGBA
	}
	return ModeRGB
}

// isGrayPalette reports whether p is black and white for two entries, or
// maps every index i to gray level i otherwise.
func isGrayPalette(p color.Palette) bool {
	if len(p) < 2 {
		return false
	}
	for i, c := range p {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		want := uint8(i)
		if len(p) == 2 {
			want = uint8(i * 0xff)
		}
		if n.R != want || n.G != want || n.B != want {
			return false
		}
	}
	return true
}

// Flatten walks img row by row and emits the channel values of mode.
func Flatten(img image.Image, mode Mode) *Buffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	data := make([]byte, 0, w*h*mode.Channels()*mode.ElemSize())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			data = appendPixel(data, img, x, y, mode)
		}
	}

	return &Buffer{Mode: mode, Width: w, Height: h, Data: data}
}

func appendPixel(dst []byte, img image.Image, x, y int, mode Mode) []byte {
	switch mode {
	case ModeBilevel:
		if p, ok := img.(*image.Paletted); ok {
			return append(dst, p.ColorIndexAt(x, y))
		}
		if color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y >= 0x80 {
			return append(dst, 1)
		}
		return append(dst, 0)
	case ModeP:
		if p, ok := img.(*image.Paletted); ok {
			return append(dst, p.ColorIndexAt(x, y))
		}
	case ModeLA:
		c := nrgbaAt(img, x, y)
		return append(dst, c.R, c.A)
	case ModeRGB:
		c := nrgbaAt(img, x, y)
		return append(dst, c.R, c.G, c.B)
	case ModeRGBA:
		c := nrgbaAt(img, x, y)
		return append(dst, c.R, c.G, c.B, c.A)
	case ModeCMYK:
		c := color.CMYKModel.Convert(img.At(x, y)).(color.CMYK)
		return append(dst, c.C, c.M, c.Y, c.K)
	case ModeI16:
		g := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
		return append(dst, byte(g.Y), byte(g.Y>>8))
	}

	// L, and P for images that carry no palette
	return append(dst, color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
}

// nrgbaAt returns the non-premultiplied color at (x, y). NRGBA pixels are read
// as stored so color channels survive a zero alpha.
func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	if m, ok := img.(*image.NRGBA); ok {
		return m.NRGBAAt(x, y)
	}
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}
