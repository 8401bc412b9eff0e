// Package testutil provides reusable test helper functions for quantizer tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-pitch-quantizer/internal/quant"
	"github.com/tphakala/go-pitch-quantizer/internal/scale"
)

// Ramp returns n raw CV samples rising linearly from start by step, never
// going below zero.
func Ramp(start, step, n int) []int {
	samples := make([]int, n)
	v := start
	for i := range samples {
		if v < 0 {
			samples[i] = 0
		} else {
			samples[i] = v
		}
		v += step
	}
	return samples
}

// AssertInScale verifies that a note's octave position is enabled in mask.
func AssertInScale(t *testing.T, mask scale.Bitmask, note quant.Note, msgAndArgs ...any) bool {
	t.Helper()
	pos := int(note) % scale.NoteCount
	if !mask.Has(pos) {
		return assert.Fail(t, "note not in scale",
			"note %d (position %d) is disabled in mask %#04x", note, pos, uint16(mask))
	}
	return true
}

// AssertAllInScale verifies that every note's octave position is enabled in mask.
func AssertAllInScale(t *testing.T, mask scale.Bitmask, notes []quant.Note, msgAndArgs ...any) bool {
	t.Helper()
	for i, n := range notes {
		pos := int(n) % scale.NoteCount
		if !mask.Has(pos) {
			return assert.Fail(t, "note not in scale",
				"notes[%d]=%d (position %d) is disabled in mask %#04x", i, n, pos, uint16(mask))
		}
	}
	return true
}

// AssertWithinSemitones verifies that two notes are at most maxDistance
// semitones apart.
func AssertWithinSemitones(t *testing.T, a, b quant.Note, maxDistance int, msgAndArgs ...any) bool {
	t.Helper()
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	if d > maxDistance {
		return assert.Fail(t, "notes too far apart",
			"notes %d and %d are %d semitones apart, want at most %d", a, b, d, maxDistance)
	}
	return true
}

// AssertLowNibbleClear verifies the scale bitmask representation invariant:
// the low four bits are always zero.
func AssertLowNibbleClear(t *testing.T, mask scale.Bitmask, msgAndArgs ...any) bool {
	t.Helper()
	return assert.Zero(t, uint16(mask)&0x000F,
		"mask %#04x has bits set in the low nibble", uint16(mask))
}

// AssertMonotonicInts verifies that a slice is monotonically non-decreasing.
func AssertMonotonicInts(t *testing.T, s []int, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, "not monotonic",
				"s[%d]=%d < s[%d]=%d", i, s[i], i-1, s[i-1])
		}
	}
	return true
}
