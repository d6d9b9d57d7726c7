// Package convert turns the raw pixel bytes of an image into a PCM waveform.
//
// The image is decoded and flattened row by row, trimmed to an even length,
// and its bytes are written unchanged as unsigned 8-bit mono samples to a WAV
// file at a fixed sample rate.
package convert
