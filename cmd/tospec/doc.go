// Command tospec converts audio files (WAV/FLAC) to spectrogram images (PNG).
//
// This tool renders a log-magnitude STFT spectrogram of an audio file, such as
// the output of towav, and reports its dominant frequency.
//
// Usage:
//
//	tospec <audio_file>
//
// The output PNG file will be named <audio_file>.png. The log magnitudes are
// also written as little-endian IEEE half floats to <audio_file>.f16, frame by
// frame.
//
// Supported input formats: .wav, .flac
package main
