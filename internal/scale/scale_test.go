package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// majorPattern is the familiar major-scale semitone set {0,2,4,5,7,9,11}.
var majorPattern = FromNotes(0, 2, 4, 5, 7, 9, 11)

func TestFromNotes(t *testing.T) {
	m := FromNotes(0, 2, 11)
	assert.True(t, m.Has(0))
	assert.True(t, m.Has(2))
	assert.True(t, m.Has(11))
	assert.False(t, m.Has(1))
	assert.Equal(t, 3, m.Count())

	// Out-of-range positions are ignored.
	assert.Equal(t, m, FromNotes(0, 2, 11, -1, 12, 99))
}

func TestBitmask_LowNibbleInvariant(t *testing.T) {
	// Every constructor and operation must leave the low 4 bits clear.
	assert.Zero(t, uint16(Chromatic)&0x000F)
	assert.Zero(t, uint16(majorPattern)&0x000F)
	assert.Zero(t, uint16(majorPattern.Toggle(5))&0x000F)
	for r := 0; r < NoteCount; r++ {
		assert.Zero(t, uint16(majorPattern.Rotate(r))&0x000F,
			"rotation by %d dirtied the low nibble", r)
	}
}

func TestBitmask_RotateInvertible(t *testing.T) {
	// rotate(rotate(S, r), 12-r) == S for all 12-bit masks and rotations.
	for raw := 0; raw < 1<<NoteCount; raw++ {
		m := Bitmask(raw << 4)
		for r := 0; r < NoteCount; r++ {
			got := m.Rotate(r).Rotate(NoteCount - r)
			if got != m {
				t.Fatalf("rotate(rotate(%#04x, %d), %d) = %#04x, want %#04x",
					uint16(m), r, NoteCount-r, uint16(got), uint16(m))
			}
			if uint16(m.Rotate(r))&0x000F != 0 {
				t.Fatalf("rotate(%#04x, %d) dirtied low nibble", uint16(m), r)
			}
		}
	}
}

func TestBitmask_RotateMovesPositions(t *testing.T) {
	m := FromNotes(0)
	assert.True(t, m.Rotate(1).Has(1), "rotating left by 1 moves position 0 to 1")
	assert.True(t, m.Rotate(11).Has(11))
	assert.Equal(t, m, m.Rotate(12), "rotation is modulo 12")
	assert.Equal(t, m, m.Rotate(-12))
	assert.Equal(t, m.Rotate(5), m.Rotate(-7))
}

func TestBitmask_Toggle(t *testing.T) {
	m := Bitmask(0)
	m = m.Toggle(3)
	assert.True(t, m.Has(3))
	m = m.Toggle(3)
	assert.True(t, m.Empty())

	// Out-of-range toggles are no-ops.
	assert.Equal(t, majorPattern, majorPattern.Toggle(12))
	assert.Equal(t, majorPattern, majorPattern.Toggle(-1))
}

func TestBitmask_EnabledNotes(t *testing.T) {
	var buf [NoteCount]int
	n := majorPattern.EnabledNotes(&buf)
	require.Equal(t, 7, n)
	assert.Equal(t, []int{0, 2, 4, 5, 7, 9, 11}, buf[:n])

	n = Bitmask(0).EnabledNotes(&buf)
	assert.Zero(t, n)
}

func TestRotated(t *testing.T) {
	// Base and auxiliary rotations combine modulo 12.
	assert.Equal(t, majorPattern.Rotate(5), Rotated(majorPattern, 2, 3))
	assert.Equal(t, majorPattern, Rotated(majorPattern, 7, 5))
	assert.Equal(t, majorPattern.Rotate(1), Rotated(majorPattern, 11, 2))
}
