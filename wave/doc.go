// Package wave reads and writes PCM audio files.
//
// Raw unsigned 8-bit samples are written to mono WAV files through
// github.com/faiface/beep/wav without any requantisation: every input byte
// comes out as the same byte in the data chunk. WAV and FLAC files can be
// loaded back as mono float sample vectors for analysis.
package wave
