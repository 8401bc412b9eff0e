// Package scale implements the 12-tone scale bitmask model used by the
// quantization engine. A scale is the subset of the 12 semitones of an
// octave that are enabled for quantization, plus a cyclic rotation that
// shifts which physical position maps to which scale degree.
package scale

import "math/bits"

// NoteCount is the number of semitones in one octave.
const NoteCount = 12

// fieldShift is the position of the 12-bit scale field within the uint16
// representation. The low 4 bits of a Bitmask are always zero; keeping the
// field in the top 12 bits lets the mask double as the top of a 16-bit
// front-panel display word.
const fieldShift = 4

// fieldMask selects the 12 usable bits of the representation.
const fieldMask uint16 = 0xFFF0

// Bitmask is a 12-tone scale stored in the top 12 bits of a uint16.
// Semitone i (0-11) corresponds to bit i+4. The low 4 bits are always
// zero; every operation preserves this invariant.
type Bitmask uint16

// Chromatic is the scale with all 12 semitones enabled.
const Chromatic Bitmask = Bitmask(fieldMask)

// FromNotes builds a Bitmask from a list of semitone positions (0-11).
// Out-of-range positions are ignored.
func FromNotes(notes ...int) Bitmask {
	var m Bitmask
	for _, n := range notes {
		if n >= 0 && n < NoteCount {
			m |= 1 << (n + fieldShift)
		}
	}
	return m
}

// Has reports whether semitone position pos (0-11) is enabled.
func (m Bitmask) Has(pos int) bool {
	if pos < 0 || pos >= NoteCount {
		return false
	}
	return m&(1<<(pos+fieldShift)) != 0
}

// Toggle returns the mask with semitone position pos (0-11) flipped.
// The caller is responsible for recomputing any cached rotated scale.
func (m Bitmask) Toggle(pos int) Bitmask {
	if pos < 0 || pos >= NoteCount {
		return m
	}
	return m ^ (1 << (pos + fieldShift))
}

// Rotate returns the mask rotated left by r positions within the 12-bit
// field. Rotation is cyclic modulo 12 and preserves the low-nibble-zero
// invariant: Rotate(r) followed by Rotate(12-r) yields the original mask.
func (m Bitmask) Rotate(r int) Bitmask {
	r = ((r % NoteCount) + NoteCount) % NoteCount
	if r == 0 {
		return m
	}
	v := uint16(m) >> fieldShift
	v = ((v << r) | (v >> (NoteCount - r))) & (fieldMask >> fieldShift)
	return Bitmask(v << fieldShift)
}

// Count returns the number of enabled semitones.
func (m Bitmask) Count() int {
	return bits.OnesCount16(uint16(m) & fieldMask)
}

// Empty reports whether no semitones are enabled.
func (m Bitmask) Empty() bool {
	return uint16(m)&fieldMask == 0
}

// EnabledNotes fills buf with the enabled semitone positions in ascending
// order and returns the count. The fixed-size buffer keeps the sampling
// path free of allocations.
func (m Bitmask) EnabledNotes(buf *[NoteCount]int) int {
	n := 0
	for pos := 0; pos < NoteCount; pos++ {
		if m.Has(pos) {
			buf[n] = pos
			n++
		}
	}
	return n
}

// Rotated computes the effective scale from a base mask and the combined
// base and auxiliary rotations. It is a pure function of its inputs; the
// caller caches the result and recomputes it whenever any input changes.
func Rotated(base Bitmask, baseRotation, auxRotation int) Bitmask {
	return base.Rotate(baseRotation + auxRotation)
}
