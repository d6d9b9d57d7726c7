package main

import (
	"fmt"
	"os"

	"github.com/IgLemp/audioimage/spectrum"
	"github.com/IgLemp/audioimage/wave"
)

func main() {
	// Check if the filename argument is provided
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go <audio_file>")
		os.Exit(1)
	}

	// Get the filename from the command-line arguments
	var filename = os.Args[1]

	buf, sr, err := wave.Load(filename)
	if err != nil {
		fmt.Printf("Error loading audio: %v\n", err)
		os.Exit(1)
	}

	// Create a new instance of Spectrum
	var m = spectrum.NewSpectrum()

	// Generate the spectrogram and save it as a PNG file
	outputFile := filename + ".png"
	spec := m.Analyze(buf)
	if err := spec.SavePNG(outputFile); err != nil {
		fmt.Printf("Error saving spectrogram: %v\n", err)
		os.Exit(1)
	}

	halfsFile := filename + ".f16"
	if err := spec.SaveHalfs(halfsFile); err != nil {
		fmt.Printf("Error saving half floats: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Input:  %s (%d samples at %d Hz)\n", filename, len(buf), sr)
	fmt.Printf("Output: %s (%d x %d)\n", outputFile, spec.Frames, spec.Bins)
	fmt.Printf("Halfs:  %s (%d values)\n", halfsFile, len(spec.Data))
	fmt.Printf("Peak:   %.1f Hz\n", spectrum.Peak(buf, sr))
}
