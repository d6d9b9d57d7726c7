// Package spectrum renders audio as spectrogram images.
//
// It is used to inspect waveforms produced from pixel data:
//   - STFT log-magnitude spectrograms with a configurable hop and frame length
//   - grayscale PNG output, low frequencies at the bottom by default
//   - half-precision packing of the spectrogram values
//   - dominant frequency detection through a real FFT
package spectrum
