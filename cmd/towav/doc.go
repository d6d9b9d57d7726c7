// Command towav converts the raw pixel bytes of an image to an audio file (WAV).
//
// The image is decoded, its pixels are flattened row by row with the channels
// interleaved, and the resulting bytes are written unchanged as unsigned 8-bit
// mono samples at 48000 Hz. An odd byte count loses its last byte.
//
// Usage:
//
//	towav
//
// The input is read from audio_hilbert.bmp in the working directory (any
// supported image format despite the name) and the output is written to
// out.wav, replacing an existing file.
package main
