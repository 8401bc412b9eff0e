package quant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-pitch-quantizer/internal/scale"
)

// majorScale enables semitones {0,2,4,5,7,9,11}.
var majorScale = scale.FromNotes(0, 2, 4, 5, 7, 9, 11)

func TestSemitone_RoundHalfUp(t *testing.T) {
	testCases := []struct {
		sample int
		want   int
	}{
		{0, 0},
		{3, 0},
		{4, 1}, // exactly half a semitone rounds up
		{8, 1},
		{11, 1},
		{12, 2},
		{96, 12},
		{1023, 128},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Semitone(tc.sample), "Semitone(%d)", tc.sample)
	}
}

func TestQuantizers_EmptyScale(t *testing.T) {
	// Every algorithm signals "no candidate" for every input when the
	// rotated scale has no enabled notes.
	empty := scale.Bitmask(0)
	for sample := 0; sample <= 1023; sample++ {
		if _, ok := Nearest(sample, empty); ok {
			t.Fatalf("Nearest(%d, empty) returned a candidate", sample)
		}
		if _, ok := Skip(sample, empty); ok {
			t.Fatalf("Skip(%d, empty) returned a candidate", sample)
		}
		if _, ok := Equal(sample, empty); ok {
			t.Fatalf("Equal(%d, empty) returned a candidate", sample)
		}
	}
}

func TestSkip_MajorScale(t *testing.T) {
	// Semitone 1 is disabled in the major pattern: hold previous output.
	_, ok := Skip(1*UnitsPerSemitone, majorScale)
	assert.False(t, ok, "disabled semitone must not produce a candidate")

	// Semitone 2 is enabled: pass through.
	note, ok := Skip(2*UnitsPerSemitone, majorScale)
	assert.True(t, ok)
	assert.Equal(t, Note(2), note)

	// Octave above behaves identically.
	note, ok = Skip(2*UnitsPerSemitone+UnitsPerOctave, majorScale)
	assert.True(t, ok)
	assert.Equal(t, Note(14), note)
}

func TestNearest_TieBreak(t *testing.T) {
	// A sample exactly at disabled semitone 1 is equidistant from enabled
	// neighbors 0 and 2. The rounding remainder decides: at the exact
	// semitone the biased remainder is half, so the higher neighbor wins.
	note, ok := Nearest(1*UnitsPerSemitone, majorScale)
	assert.True(t, ok)
	assert.Equal(t, Note(2), note, "remainder >= half picks the higher neighbor")

	// One unit below the semitone the remainder drops under half: the
	// lower neighbor wins.
	note, ok = Nearest(1*UnitsPerSemitone-1, majorScale)
	assert.True(t, ok)
	assert.Equal(t, Note(0), note, "remainder < half picks the lower neighbor")
}

func TestNearest_EnabledPassThrough(t *testing.T) {
	for _, pos := range []int{0, 2, 4, 5, 7, 9, 11} {
		note, ok := Nearest(pos*UnitsPerSemitone, majorScale)
		assert.True(t, ok)
		assert.Equal(t, Note(pos), note, "enabled semitone %d", pos)
	}
}

func TestNearest_OctaveWrap(t *testing.T) {
	// With only semitone 0 enabled, a sample at semitone 11 must wrap up
	// into the next octave rather than searching 11 steps down.
	rootOnly := scale.FromNotes(0)
	note, ok := Nearest(11*UnitsPerSemitone, rootOnly)
	assert.True(t, ok)
	assert.Equal(t, Note(12), note)

	// And a sample at semitone 13 wraps down to the octave.
	note, ok = Nearest(13*UnitsPerSemitone-1, rootOnly)
	assert.True(t, ok)
	assert.Equal(t, Note(12), note)
}

func TestNearest_OutOfRange(t *testing.T) {
	// Candidates above 127 are rejected, not wrapped.
	_, ok := Nearest(1023, scale.Chromatic)
	assert.False(t, ok, "note 128 is outside the valid output range")

	// The highest valid note is still reachable.
	note, ok := Nearest(127*UnitsPerSemitone, scale.Chromatic)
	assert.True(t, ok)
	assert.Equal(t, Note(127), note)
}

func TestEqual_RankSelection(t *testing.T) {
	// With 7 enabled notes, octave position 50 selects rank
	// floor(50*7/96) = 3: the fourth enabled note in ascending order.
	note, ok := Equal(50, majorScale)
	assert.True(t, ok)
	assert.Equal(t, Note(5), note)

	// Position 0 selects the first enabled note.
	note, ok = Equal(0, majorScale)
	assert.True(t, ok)
	assert.Equal(t, Note(0), note)

	// The last sliver of the octave selects the last enabled note.
	note, ok = Equal(UnitsPerOctave-1, majorScale)
	assert.True(t, ok)
	assert.Equal(t, Note(11), note)

	// Octaves offset the selected note by 12.
	note, ok = Equal(50+2*UnitsPerOctave, majorScale)
	assert.True(t, ok)
	assert.Equal(t, Note(29), note)
}

func TestEqual_SingleNote(t *testing.T) {
	// One enabled note owns the whole octave.
	fifth := scale.FromNotes(7)
	for pos := 0; pos < UnitsPerOctave; pos++ {
		note, ok := Equal(pos, fifth)
		if !ok || note != 7 {
			t.Fatalf("Equal(%d, {7}) = (%d, %v), want (7, true)", pos, note, ok)
		}
	}
}

func TestQuantizers_NegativeSamples(t *testing.T) {
	// Offset modulation can push the effective sample below zero. Every
	// algorithm must stay total there: candidates below note 0 degrade to
	// "no candidate", never to a fault.
	for sample := -2 * UnitsPerOctave; sample < 0; sample++ {
		if note, ok := Nearest(sample, majorScale); ok && note > MaxNote {
			t.Fatalf("Nearest(%d) = %d, outside the valid range", sample, note)
		}
		if note, ok := Skip(sample, majorScale); ok && note > MaxNote {
			t.Fatalf("Skip(%d) = %d, outside the valid range", sample, note)
		}
		if _, ok := Equal(sample, majorScale); ok {
			t.Fatalf("Equal(%d) returned a candidate below note 0", sample)
		}
	}
}

func TestNearest_NegativeWrapsUpward(t *testing.T) {
	// Two semitones below zero the rounded note is -1; with only the root
	// enabled the upward search must wrap to position 0 and land on note 0.
	rootOnly := scale.FromNotes(0)
	note, ok := Nearest(-2*UnitsPerSemitone, rootOnly)
	assert.True(t, ok)
	assert.Equal(t, Note(0), note)

	// Further down every candidate is below note 0: hold.
	_, ok = Nearest(-7*UnitsPerSemitone, rootOnly)
	assert.False(t, ok)
}

func TestEqual_NegativeFloorSplit(t *testing.T) {
	// A negative sample belongs to the octave below zero; its selected
	// note is always negative and therefore rejected, but the rank lookup
	// itself must stay in bounds.
	for _, sample := range []int{-1, -16, -UnitsPerOctave, -UnitsPerOctave - 1} {
		_, ok := Equal(sample, majorScale)
		assert.False(t, ok, "Equal(%d)", sample)
	}
}

func BenchmarkNearest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Nearest(i&1023, majorScale)
	}
}

func BenchmarkEqual(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Equal(i&1023, majorScale)
	}
}
