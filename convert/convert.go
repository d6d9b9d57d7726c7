package convert

import (
	"fmt"

	"github.com/IgLemp/audioimage/pixel"
	"github.com/IgLemp/audioimage/wave"
)

const (
	DefaultInput  = "audio_hilbert.bmp"
	DefaultOutput = "out.wav"
)

// Converter represents the configuration for converting images to audio.
type Converter struct {
	// sample rate of the output wav, 48000 when zero
	SampleRate int
}

// NewConverter creates a new Converter instance with default values.
func NewConverter() *Converter {
	return &Converter{
		SampleRate: wave.SampleRate,
	}
}

// Result describes a finished conversion.
type Result struct {
	Mode     pixel.Mode
	Width    int
	Height   int
	Elements int // flattened element count before trimming
	Samples  int
	Dropped  bool // the last element was dropped to even the length
}

func (c *Converter) sampleRate() int {
	if c.SampleRate <= 0 {
		return wave.SampleRate
	}
	return c.SampleRate
}

// Samples trims buf to an even length and returns its bytes as unsigned 8-bit samples.
func (c *Converter) Samples(buf *pixel.Buffer) []uint8 {
	return buf.Even().Samples()
}

// Convert reads the image at inputFile and writes its pixel bytes as a mono
// 8-bit wav to outputFile. The output is not touched when the input fails to
// load.
func (c *Converter) Convert(inputFile, outputFile string) (*Result, error) {
	buf, err := pixel.Load(inputFile)
	if err != nil {
		return nil, fmt.Errorf("loading image: %w", err)
	}

	samples := c.Samples(buf)

	if err := wave.SaveU8(outputFile, samples, c.sampleRate()); err != nil {
		return nil, fmt.Errorf("writing audio: %w", err)
	}

	return &Result{
		Mode:     buf.Mode,
		Width:    buf.Width,
		Height:   buf.Height,
		Elements: buf.Len(),
		Samples:  len(samples),
		Dropped:  buf.Len()%2 != 0,
	}, nil
}
