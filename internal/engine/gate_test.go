package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateDuration_Interpolation(t *testing.T) {
	// Worked example: base index 0, remainder 20 of 0-39, table [5, 50, ...]
	// yields 5 + floor(20*(50-5)/39) = 28.
	assert.Equal(t, 28, GateDuration(0, 20))

	// Remainder 0 is the table entry itself.
	for i := 0; i < gateTableSize-1; i++ {
		assert.Equal(t, gateLengthTable[i], GateDuration(i, 0), "index %d", i)
	}

	// Remainder 39 lands one short of (or exactly on) the next entry.
	assert.Equal(t, gateLengthTable[1], GateDuration(0, gateInterpDivisor))
}

func TestGateDuration_Clamping(t *testing.T) {
	// Indexes past either end clamp to the first/last table entry.
	assert.Equal(t, gateLengthTable[0], GateDuration(-1, 25))
	assert.Equal(t, gateLengthTable[0], GateDuration(-100, 0))
	assert.Equal(t, gateLengthTable[gateTableSize-1], GateDuration(gateTableSize-1, 10))
	assert.Equal(t, gateLengthTable[gateTableSize-1], GateDuration(100, 0))
}

func TestGateDuration_Monotonic(t *testing.T) {
	prev := 0
	for index := 0; index < gateTableSize-1; index++ {
		for rem := 0; rem < gateFractionSteps; rem++ {
			d := GateDuration(index, rem)
			if d < prev {
				t.Fatalf("GateDuration(%d, %d) = %d < previous %d", index, rem, d, prev)
			}
			prev = d
		}
	}
}

func TestGateSamples_CombinesOverlay(t *testing.T) {
	var o Overlay

	// Neutral overlay: plain table lookup.
	assert.Equal(t, gateLengthTable[3], GateSamples(3, &o))

	// Auxiliary modulation shifts the index and adds the remainder.
	o.SetGateModulation(0, (gateZeroSteps-3)*gateFractionSteps+20)
	index, rem := o.GateModulation()
	assert.Equal(t, -3, index)
	assert.Equal(t, 20, rem)
	assert.Equal(t, GateDuration(0, 20), GateSamples(3, &o))
}
