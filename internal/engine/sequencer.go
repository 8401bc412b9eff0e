package engine

// Conversion slot identifiers: the sampling context round-robins across
// the two audio channels and the two auxiliary inputs.
const (
	SlotChannelA = 0
	SlotChannelB = 1
	SlotAuxA     = 2
	SlotAuxB     = 3

	// NumSlots is the number of multiplexed conversion sources.
	NumSlots = 4

	// pipelineXorMask encodes the one-conversion pipeline latency of the
	// sampling hardware: the conversion completing now was started when
	// slot next^pipelineXorMask was selected, two selections ago.
	pipelineXorMask = 2
)

// Sequencer is the explicit round-robin state machine for the sampling
// context. Rather than relying on hardware-counter side effects, it tracks
// the next slot to select and derives the slot being read from the fixed
// pipeline delay.
type Sequencer struct {
	next int
}

// Reading returns the slot whose completed conversion the current sample
// belongs to.
func (s *Sequencer) Reading() int {
	return s.next ^ pipelineXorMask
}

// Advance consumes one completed conversion: it returns the slot being
// read and steps the selection to the next slot.
func (s *Sequencer) Advance() int {
	reading := s.Reading()
	s.next = (s.next + 1) & (NumSlots - 1)
	return reading
}

// Resync realigns the sequencer after observed sample skew, so that the
// given slot is the one just read.
func (s *Sequencer) Resync(reading int) {
	s.next = ((reading ^ pipelineXorMask) + 1) & (NumSlots - 1)
}

// IsAux reports whether a slot is an auxiliary input.
func IsAux(slot int) bool {
	return slot >= SlotAuxA
}

// AuxIndex converts an auxiliary slot to its input index (0 or 1).
func AuxIndex(slot int) int {
	return slot - SlotAuxA
}
