// Command quantize-wav runs control-voltage traces stored in WAV files
// through the pitch quantizer and writes the quantized traces back out.
//
// Usage:
//
//	quantize-wav -scale major input.wav output.wav
//	quantize-wav -scale minor-pentatonic -mode equal cv.wav quantized.wav
//	quantize-wav -scale fifths -mode skip -span 5 cv.wav quantized.wav
//
// Each WAV channel is treated as a 1V/octave control voltage: sample 0 maps
// to 0V and positive full scale to the -span voltage. Mono files drive
// channel A only; stereo files drive both channels.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-audio/wav"

	quantizer "github.com/tphakala/go-pitch-quantizer"
)

const (
	// Buffer size for processing (number of frames per chunk)
	bufferSize = 65536

	// Pitch scaling: 1V/octave with 96 fixed-point units per octave
	unitsPerOctave = 96
	notesPerOctave = 12

	// CLI defaults
	defaultScale     = "chromatic"
	defaultMode      = "nearest"
	defaultSpanVolts = 10.0
	minRequiredArgs  = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// WAV format constants
	audioFormatPCM = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Parse command line flags
	scaleName := flag.String("scale", defaultScale, "Scale preset: chromatic, major, minor, harmonic-minor, major-pentatonic, minor-pentatonic, whole-tone, fifths, octaves")
	modeName := flag.String("mode", defaultMode, "Quantization mode: nearest, skip, equal")
	span := flag.Float64("span", defaultSpanVolts, "Full-scale input voltage (1V/octave)")
	legato := flag.Bool("legato", false, "Keep the gate open across note changes")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -scale major cv.wav out.wav              # Snap to C major\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -scale fifths -mode skip cv.wav out.wav  # Exact hits only\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	mask, err := parseScale(*scaleName)
	if err != nil {
		return err
	}
	mode, err := parseMode(*modeName)
	if err != nil {
		return err
	}
	if *span <= 0 {
		return fmt.Errorf("span must be positive, got %g", *span)
	}

	inputPath := args[0]
	outputPath := args[1]

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Scale: %s (%d notes)", *scaleName, mask.Count())
		log.Printf("Mode: %s", mode)
		log.Printf("Span: %.1f V full scale", *span)
	}

	start := time.Now()
	stats, err := quantizeWAV(inputPath, outputPath, mask, mode, *span, *legato, *verbose)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Quantized %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz, %d channels, %d-bit, %d frames\n",
		stats.rate, stats.channels, stats.bitDepth, stats.frames)
	for ch := 0; ch < stats.channels; ch++ {
		fmt.Printf("  Channel %c: %d gate events\n", 'A'+ch, stats.gateRises[ch])
	}
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.frames)/float64(stats.rate)/elapsed.Seconds())

	return nil
}

type quantizeStats struct {
	rate      int
	channels  int
	bitDepth  int
	frames    int64
	gateRises [quantizer.NumChannels]int
}

func quantizeWAV(inputPath, outputPath string, mask quantizer.ScaleMask, mode quantizer.QuantizeMode, span float64, legato, verbose bool) (stats *quantizeStats, err error) {
	// 1. Open and validate input
	input, err := openWAVInput(inputPath, verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	if input.channels > quantizer.NumChannels {
		return nil, fmt.Errorf("input has %d channels, at most %d supported", input.channels, quantizer.NumChannels)
	}

	// 2. Create the quantizer module
	module, sim, err := quantizer.NewWithScale(mask, mode)
	if err != nil {
		return nil, err
	}
	if legato {
		module.SetLegato(legato)
	}

	// 3. Create output encoder
	outputFile, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	encoder := wav.NewEncoder(outputFile, input.rate, input.bitDepth, input.channels, audioFormatPCM)
	defer func() {
		if closeErr := encoder.Close(); err == nil {
			err = closeErr
		}
		if closeErr := outputFile.Close(); err == nil {
			err = closeErr
		}
	}()

	// 4. Initialize processing buffers
	buffers := newTraceBuffers(input.channels, input.bitDepth, input.format)

	stats = &quantizeStats{
		rate:     input.rate,
		channels: input.channels,
		bitDepth: input.bitDepth,
	}
	var levelSum float64
	var levelCount int

	// 5. Main processing loop
	for {
		n, err := input.decoder.PCMBuffer(buffers.intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read CV data: %w", err)
		}
		if n == 0 {
			break
		}

		frames := n / input.channels
		buffers.intBuffer.Data = buffers.intBuffer.Data[:n]
		stats.frames += int64(frames)

		buffers.normalize(n)
		if verbose {
			levelSum += buffers.sum(n)
			levelCount += n
		}

		for i := 0; i < frames; i++ {
			for ch := 0; ch < input.channels; ch++ {
				units := voltsToUnits(buffers.floatBuf[i*input.channels+ch], span)
				sim.SetLevel(channelSlot(ch), units)
			}
			sim.RunChannelSamples(module, 1)
			for ch := 0; ch < input.channels; ch++ {
				note, ok := sim.Pitch(ch)
				if !ok {
					buffers.intBuffer.Data[i*input.channels+ch] = 0
					continue
				}
				buffers.intBuffer.Data[i*input.channels+ch] = noteToSample(note, span, buffers.maxVal)
			}
		}

		if err := encoder.Write(buffers.intBuffer); err != nil {
			return nil, fmt.Errorf("failed to write quantized data: %w", err)
		}

		// Reset buffer
		buffers.intBuffer.Data = buffers.intBuffer.Data[:cap(buffers.intBuffer.Data)]
	}

	for ch := 0; ch < input.channels; ch++ {
		stats.gateRises[ch] = sim.GateRises(ch)
	}

	if verbose && levelCount > 0 {
		log.Printf("Mean input level: %.4f of full scale", levelSum/float64(levelCount))
	}

	return stats, nil
}

// channelSlot maps a WAV channel index to a conversion slot.
func channelSlot(ch int) int {
	if ch == 0 {
		return quantizer.SlotChannelA
	}
	return quantizer.SlotChannelB
}
