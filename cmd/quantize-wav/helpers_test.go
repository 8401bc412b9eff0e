package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quantizer "github.com/tphakala/go-pitch-quantizer"
)

func TestParseScale(t *testing.T) {
	tests := []struct {
		name string
		want quantizer.ScaleMask
	}{
		{"chromatic", quantizer.ScaleChromatic},
		{"major", quantizer.ScaleMajor},
		{"minor", quantizer.ScaleNaturalMinor},
		{"harmonic-minor", quantizer.ScaleHarmonicMinor},
		{"major-pentatonic", quantizer.ScaleMajorPentatonic},
		{"minor-pentatonic", quantizer.ScaleMinorPentatonic},
		{"whole-tone", quantizer.ScaleWholeTone},
		{"fifths", quantizer.ScaleFifths},
		{"octaves", quantizer.ScaleOctaves},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScale(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseScale("dorian-flat-nine")
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name string
		want quantizer.QuantizeMode
	}{
		{"nearest", quantizer.ModeNearest},
		{"skip", quantizer.ModeSkip},
		{"equal", quantizer.ModeEqual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMode(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseMode("median")
	assert.Error(t, err)
}

func TestVoltsToUnits(t *testing.T) {
	tests := []struct {
		name       string
		normalized float64
		span       float64
		want       int
	}{
		{"zero volts", 0, 10, 0},
		{"negative clamps to zero", -0.5, 10, 0},
		{"one octave", 0.1, 10, 96},
		{"one semitone", 1.0 / 120, 10, 8},
		{"full scale", 1.0, 10, 960},
		{"narrow span", 0.5, 5, 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, voltsToUnits(tt.normalized, tt.span))
		})
	}
}

func TestNoteToSampleRoundTrip(t *testing.T) {
	// A note encoded to PCM and normalized back must land on the exact
	// same semitone when re-read as a voltage.
	const span = 10.0
	maxVal := maxSampleValue(bitsPerSample16)

	for note := quantizer.Note(0); note <= 110; note++ {
		sample := noteToSample(note, span, maxVal)
		normalized := float64(sample) / maxVal
		units := voltsToUnits(normalized, span)

		// Round to the nearest semitone the way the engine does.
		got := (units + 4) / 8
		assert.Equal(t, int(note), got, "note %d did not survive the round trip", note)
	}
}

func TestMaxSampleValue(t *testing.T) {
	assert.InDelta(t, maxInt16, maxSampleValue(bitsPerSample16), 0)
	assert.InDelta(t, maxInt24, maxSampleValue(bitsPerSample24), 0)
	assert.InDelta(t, maxInt32, maxSampleValue(bitsPerSample32), 0)
	assert.InDelta(t, maxInt16, maxSampleValue(8), 0, "unknown depths fall back to 16-bit")
}
