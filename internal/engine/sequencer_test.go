package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequencer_PipelineLatency(t *testing.T) {
	var s Sequencer

	// The slot being read lags the slot being selected by exactly two
	// conversions: reading = next XOR 2.
	assert.Equal(t, SlotAuxA, s.Reading())

	got := make([]int, 0, 8)
	for i := 0; i < 8; i++ {
		got = append(got, s.Advance())
	}
	assert.Equal(t, []int{
		SlotAuxA, SlotAuxB, SlotChannelA, SlotChannelB,
		SlotAuxA, SlotAuxB, SlotChannelA, SlotChannelB,
	}, got, "round-robin must repeat with the fixed pipeline delay")
}

func TestSequencer_SlotHelpers(t *testing.T) {
	assert.False(t, IsAux(SlotChannelA))
	assert.False(t, IsAux(SlotChannelB))
	assert.True(t, IsAux(SlotAuxA))
	assert.True(t, IsAux(SlotAuxB))

	assert.Equal(t, 0, AuxIndex(SlotAuxA))
	assert.Equal(t, 1, AuxIndex(SlotAuxB))
}
