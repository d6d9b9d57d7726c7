package main

import (
	"fmt"
	"os"

	"github.com/IgLemp/audioimage/convert"
)

func main() {
	// Create a new instance of Converter
	var c = convert.NewConverter()

	// Generate the wave from the bitmap in the working directory
	inputFile := convert.DefaultInput
	outputFile := convert.DefaultOutput
	res, err := c.Convert(inputFile, outputFile)
	if err != nil {
		fmt.Printf("Error generating wave from image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Converted %dx%d %s image (%d values)\n", res.Width, res.Height, res.Mode, res.Elements)
	if res.Dropped {
		fmt.Println("Dropped the last value to keep the sample count even")
	}
	fmt.Printf("Output: %s (%d samples at %d Hz)\n", outputFile, res.Samples, c.SampleRate)
}
