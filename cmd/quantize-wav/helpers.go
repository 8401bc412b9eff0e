package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"

	quantizer "github.com/tphakala/go-pitch-quantizer"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
	format   *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit",
			format.SampleRate, format.NumChannels, decoder.BitDepth)
	}

	return &wavInputInfo{
		file:     inputFile,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: int(decoder.BitDepth),
		format:   format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// parseScale maps a preset name to its scale mask.
func parseScale(name string) (quantizer.ScaleMask, error) {
	switch name {
	case "chromatic":
		return quantizer.ScaleChromatic, nil
	case "major":
		return quantizer.ScaleMajor, nil
	case "minor":
		return quantizer.ScaleNaturalMinor, nil
	case "harmonic-minor":
		return quantizer.ScaleHarmonicMinor, nil
	case "major-pentatonic":
		return quantizer.ScaleMajorPentatonic, nil
	case "minor-pentatonic":
		return quantizer.ScaleMinorPentatonic, nil
	case "whole-tone":
		return quantizer.ScaleWholeTone, nil
	case "fifths":
		return quantizer.ScaleFifths, nil
	case "octaves":
		return quantizer.ScaleOctaves, nil
	default:
		return 0, fmt.Errorf("unknown scale %q", name)
	}
}

// parseMode maps a mode name to its quantization mode.
func parseMode(name string) (quantizer.QuantizeMode, error) {
	switch name {
	case "nearest":
		return quantizer.ModeNearest, nil
	case "skip":
		return quantizer.ModeSkip, nil
	case "equal":
		return quantizer.ModeEqual, nil
	default:
		return 0, fmt.Errorf("unknown quantization mode %q", name)
	}
}

// maxSampleValue returns the maximum sample value for the given bit depth.
func maxSampleValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// voltsToUnits maps a normalized sample in [-1, 1] to raw pitch units:
// 0 is 0V, positive full scale is span volts, 1V per octave.
func voltsToUnits(normalized, span float64) int {
	if normalized < 0 {
		return 0
	}
	return int(normalized*span*unitsPerOctave + 0.5)
}

// noteToSample maps an output note back to an integer PCM sample with the
// same 1V/octave scaling.
func noteToSample(note quantizer.Note, span, maxVal float64) int {
	normalized := float64(note) / notesPerOctave / span
	if normalized > 1 {
		normalized = 1
	}
	return int(normalized * maxVal)
}

// traceBuffers holds the preallocated conversion buffers for one file.
type traceBuffers struct {
	intBuffer *audio.IntBuffer
	floatBuf  []float64
	invMaxVal float64
	maxVal    float64
}

// newTraceBuffers creates and preallocates the processing buffers.
func newTraceBuffers(channels, bitDepth int, format *audio.Format) *traceBuffers {
	maxVal := maxSampleValue(bitDepth)
	return &traceBuffers{
		intBuffer: &audio.IntBuffer{
			Data:   make([]int, bufferSize*channels),
			Format: format,
		},
		floatBuf:  make([]float64, bufferSize*channels),
		invMaxVal: 1.0 / maxVal,
		maxVal:    maxVal,
	}
}

// normalize converts the first n interleaved PCM samples to [-1, 1] floats.
func (b *traceBuffers) normalize(n int) {
	buf := b.floatBuf[:n]
	for i, s := range b.intBuffer.Data[:n] {
		buf[i] = float64(s)
	}
	f64.Scale(buf, buf, b.invMaxVal)
}

// sum returns the sum of the first n normalized samples, for level
// reporting.
func (b *traceBuffers) sum(n int) float64 {
	return f64.Sum(b.floatBuf[:n])
}
