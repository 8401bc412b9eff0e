// Package quant implements the pitch quantization algorithms: scale-free
// semitone rounding plus the nearest, skip, and equal-spacing scale
// quantizers.
//
// All algorithms operate on raw samples in a fixed fractional unit where
// 8 units equal one semitone (96 units per octave). Valid output notes are
// 0-127; the historical firmware signalled "no candidate" with values of
// 128 and above, which this package expresses as a (Note, bool) pair while
// preserving the 0-127 validity boundary as the documented contract.
package quant

import "github.com/tphakala/go-pitch-quantizer/internal/scale"

// Fixed-point sample format constants.
const (
	// UnitsPerSemitone is the number of raw sample units per semitone.
	UnitsPerSemitone = 8

	// UnitsPerOctave is the number of raw sample units per octave.
	UnitsPerOctave = UnitsPerSemitone * scale.NoteCount

	// roundBias rounds half-up when added before truncating division.
	roundBias = UnitsPerSemitone / 2

	// halfSemitone is the tie-break threshold on the rounding remainder.
	halfSemitone = UnitsPerSemitone / 2

	// maxSearchDistance bounds the outward search in Nearest: any enabled
	// position is at most 6 semitones from any octave position.
	maxSearchDistance = scale.NoteCount / 2
)

// MaxNote is the highest valid output note.
const MaxNote = 127

// Note is a pitch output value in the range 0..MaxNote.
type Note uint8

// Semitone rounds a raw sample to the nearest semitone with no scale
// constraint (round-half-up). It returns a plain int because auxiliary
// processing needs signed arithmetic relative to a center note; the result
// is non-negative for non-negative samples.
func Semitone(sample int) int {
	return (sample + roundBias) / UnitsPerSemitone
}

// Nearest rounds the sample to the nearest semitone and, if that position
// is disabled in mask, searches outward in both directions (wrapping across
// octave boundaries) for the closest enabled position. An equidistant tie
// is broken by the fractional remainder of the rounding step: the lower
// candidate wins unless the remainder is at least half a semitone.
// Returns ok=false if mask is empty or the result falls outside 0-127.
func Nearest(sample int, mask scale.Bitmask) (Note, bool) {
	if mask.Empty() {
		return 0, false
	}

	biased := sample + roundBias
	note := biased / UnitsPerSemitone
	rem := biased % UnitsPerSemitone

	// Normalized so that both search directions stay in 0-11 even when a
	// negative offset pushes the rounded note below zero.
	pos := ((note % scale.NoteCount) + scale.NoteCount) % scale.NoteCount
	if mask.Has(pos) {
		return toNote(note)
	}

	for d := 1; d <= maxSearchDistance; d++ {
		lower := mask.Has(((pos-d)%scale.NoteCount + scale.NoteCount) % scale.NoteCount)
		higher := mask.Has((pos + d) % scale.NoteCount)
		switch {
		case lower && higher:
			if rem >= halfSemitone {
				return toNote(note + d)
			}
			return toNote(note - d)
		case lower:
			return toNote(note - d)
		case higher:
			return toNote(note + d)
		}
	}

	// Unreachable: a non-empty mask always has a position within 6 steps.
	return 0, false
}

// Skip rounds the sample to the nearest semitone and returns it only if
// that exact position is enabled in mask. Otherwise ok=false and the
// caller is expected to hold its previous output.
func Skip(sample int, mask scale.Bitmask) (Note, bool) {
	if mask.Empty() {
		return 0, false
	}

	note := (sample + roundBias) / UnitsPerSemitone
	if !mask.Has(note % scale.NoteCount) {
		return 0, false
	}
	return toNote(note)
}

// Equal computes a high-resolution position within the octave (0-95) and
// selects the enabled note whose ascending rank equals
// floor(position*count/96). This redistributes the enabled notes to equal
// angular spacing regardless of their true semitone gaps.
// Returns ok=false if mask is empty.
func Equal(sample int, mask scale.Bitmask) (Note, bool) {
	count := mask.Count()
	if count == 0 {
		return 0, false
	}

	// Floor semantics: offset modulation can push the sample negative, and
	// Go's truncating division would yield a negative position and rank.
	octave := sample / UnitsPerOctave
	position := sample % UnitsPerOctave
	if position < 0 {
		position += UnitsPerOctave
		octave--
	}
	rank := position * count / UnitsPerOctave

	var notes [scale.NoteCount]int
	mask.EnabledNotes(&notes)

	return toNote(octave*scale.NoteCount + notes[rank])
}

// toNote converts a candidate semitone number to a Note, rejecting
// candidates outside the valid 0-127 output range.
func toNote(n int) (Note, bool) {
	if n < 0 || n > MaxNote {
		return 0, false
	}
	return Note(n), true
}
