package spectrum

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/cmplx"
	"os"

	"github.com/mjibson/go-dsp/fft"
	"github.com/r9y9/gossp/stft"
	"github.com/x448/float16"
)

// floor keeps log magnitudes finite for silent bins.
const floor = 1e-5

// Spectrum represents the configuration for generating spectrograms.
type Spectrum struct {
	Window   int // hop between frames
	Resolut  int // frame length
	YReverse bool
}

// NewSpectrum creates a new Spectrum instance with default values.
func NewSpectrum() *Spectrum {
	return &Spectrum{
		Window:   256,
		Resolut:  1024,
		YReverse: true,
	}
}

// Spectrogram holds log magnitudes, frame-major, Bins values per frame.
type Spectrogram struct {
	Frames   int
	Bins     int
	YReverse bool
	Data     []float64
}

// Analyze runs a short-time Fourier transform over buf.
func (m *Spectrum) Analyze(buf []float64) *Spectrogram {
	buf = pad(buf, m.Window, m.Resolut)

	spectrum := stft.New(m.Window, m.Resolut).STFT(buf)

	bins := m.Resolut / 2
	out := &Spectrogram{
		Frames:   len(spectrum),
		Bins:     bins,
		YReverse: m.YReverse,
		Data:     make([]float64, 0, len(spectrum)*bins),
	}
	for _, frame := range spectrum {
		for j := 0; j < bins; j++ {
			out.Data = append(out.Data, math.Log(math.Max(cmplx.Abs(frame[j]), floor)))
		}
	}
	return out
}

// pad zero-extends buf to at least one frame and a whole number of hops.
func pad(buf []float64, hop, frame int) []float64 {
	n := len(buf)
	if n < frame {
		n = frame
	}
	if r := (n - frame) % hop; r != 0 {
		n += hop - r
	}
	out := make([]float64, n)
	copy(out, buf)
	return out
}

// At returns the log magnitude of bin j in frame i.
func (s *Spectrogram) At(i, j int) float64 {
	return s.Data[i*s.Bins+j]
}

// Image renders the spectrogram one column per frame, normalised to 0..255.
func (s *Spectrogram) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, s.Frames, s.Bins))

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range s.Data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo

	for x := 0; x < s.Frames; x++ {
		for j := 0; j < s.Bins; j++ {
			var val float64
			if span > 0 {
				val = (s.At(x, j) - lo) / span
			}
			y := j
			if s.YReverse {
				y = s.Bins - j - 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(255 * val)})
		}
	}
	return img
}

// SavePNG writes the spectrogram image to name.
func (s *Spectrogram) SavePNG(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	if err := png.Encode(f, s.Image()); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Halfs packs the log magnitudes as IEEE 754 half-precision bits.
func (s *Spectrogram) Halfs() []uint16 {
	out := make([]uint16, len(s.Data))
	for i, v := range s.Data {
		out[i] = float16.Fromfloat32(float32(v)).Bits()
	}
	return out
}

// SaveHalfs writes Halfs to name as little-endian uint16 values.
func (s *Spectrogram) SaveHalfs(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	if err := binary.Write(f, binary.LittleEndian, s.Halfs()); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Peak returns the strongest non-DC frequency of buf in Hz.
func Peak(buf []float64, sampleRate int) float64 {
	if len(buf) < 2 {
		return 0
	}

	spec := fft.FFTReal(buf)

	best, mag := 0, 0.0
	for i := 1; i <= len(buf)/2; i++ {
		if a := cmplx.Abs(spec[i]); a > mag {
			best, mag = i, a
		}
	}
	return float64(best) * float64(sampleRate) / float64(len(buf))
}
