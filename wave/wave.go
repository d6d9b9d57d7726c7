package wave

import (
	"fmt"
	"io"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

const (
	// SampleRate is the rate raw sample files are written at unless told otherwise.
	SampleRate = 48000
	// NumChannels is always mono.
	NumChannels = 1
	// Precision is the sample width in bytes; 1 byte WAV samples are unsigned.
	Precision = 1
)

// Format returns the beep format of a mono unsigned 8-bit stream.
func Format(sampleRate int) beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: NumChannels,
		Precision:   Precision,
	}
}

// u8Streamer streams raw unsigned bytes as beep samples.
//
// beep quantises an unsigned 8-bit sample x as floor((x+1)/2*255), so each
// byte is placed at the centre of its step. Values above 254.5 are clamped
// to 1 by the encoder, which still yields 255.
type u8Streamer struct {
	data []uint8
	pos  int
}

func (s *u8Streamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	for n < len(samples) && s.pos < len(s.data) {
		v := (float64(s.data[s.pos])+0.5)/255*2 - 1
		samples[n][0] = v
		samples[n][1] = v
		n++
		s.pos++
	}
	return n, true
}

func (s *u8Streamer) Err() error {
	return nil
}

// EncodeU8 writes samples as a mono 8-bit PCM WAV stream.
func EncodeU8(w io.WriteSeeker, samples []uint8, sampleRate int) error {
	if err := wav.Encode(w, &u8Streamer{data: samples}, Format(sampleRate)); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}

// SaveU8 writes samples to a mono 8-bit PCM WAV file, replacing any existing file.
func SaveU8(outputFile string, samples []uint8, sampleRate int) error {
	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}

	if err := EncodeU8(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close wav: %w", err)
	}

	return nil
}
