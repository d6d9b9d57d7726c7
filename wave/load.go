package wave

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/faiface/beep/wav"
	"github.com/mewkiz/flac"
)

var ErrFileNotLoaded = errors.New("wavNotLoaded")

// Load loads a mono sample vector and its sample rate from a WAV or FLAC file.
func Load(inputFile string) ([]float64, int, error) {
	if strings.HasSuffix(strings.ToLower(inputFile), ".flac") {
		return LoadFlac(inputFile)
	}
	return LoadWav(inputFile)
}

// LoadWav loads a wav file to a mono sample vector, averaging the channels.
func LoadWav(inputFile string) ([]float64, int, error) {
	f, err := os.Open(inputFile)
	if err != nil {
		return nil, 0, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decode wav: %w", err)
	}
	defer stream.Close()

	var out []float64
	samples := make([][2]float64, 512)
	for {
		n, ok := stream.Stream(samples)
		if !ok {
			break
		}
		for _, s := range samples[:n] {
			out = append(out, (s[0]+s[1])/2)
		}
	}
	if err := stream.Err(); err != nil {
		return nil, 0, fmt.Errorf("stream wav: %w", err)
	}

	if len(out) == 0 {
		return nil, 0, ErrFileNotLoaded
	}
	return out, int(format.SampleRate), nil
}

// LoadFlac loads the first channel of a flac file to a sample vector in [-1, 1].
func LoadFlac(inputFile string) ([]float64, int, error) {
	stream, err := flac.ParseFile(inputFile)
	if err != nil {
		return nil, 0, fmt.Errorf("open flac: %w", err)
	}
	defer stream.Close()

	scale := math.Exp2(float64(stream.Info.BitsPerSample) - 1)

	var out []float64
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("parse flac frame: %w", err)
		}
		for _, s := range frame.Subframes[0].Samples {
			out = append(out, float64(s)/scale)
		}
	}

	if len(out) == 0 {
		return nil, 0, ErrFileNotLoaded
	}
	return out, int(stream.Info.SampleRate), nil
}
