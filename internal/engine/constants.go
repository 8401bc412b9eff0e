package engine

// Channel and input counts. All state is statically sized.
const (
	// NumChannels is the number of audio channels.
	NumChannels = 2

	// NumAuxInputs is the number of auxiliary modulation inputs.
	NumAuxInputs = 2

	// ChannelA and ChannelB index the two audio channels.
	ChannelA = 0
	ChannelB = 1
)

// Hysteresis constants. The raw sample is pulled toward the center of the
// last accepted note to suppress chatter at quantization boundaries. The
// rising constant is slightly larger than the falling one, matching the
// asymmetry of the round-half-up quantization step.
const (
	hysteresisRise = 3
	hysteresisFall = 2
)

// Trigger and gate timing constants, in samples.
const (
	// gateSettleSamples is the delay between accepting a new note and
	// raising the gate, letting the pitch output stabilize first.
	gateSettleSamples = 8

	// triggerDelayStep scales the configured trigger-delay setting:
	// an armed trigger fires 1 + triggerDelayStep*setting samples after
	// the debounced edge.
	triggerDelayStep = 2

	// triggerDebounceSamples is the refractory period after a trigger
	// edge during which further edges are ignored.
	triggerDebounceSamples = 16

	// triggerRevertSamples is the trigger-silence timeout after which a
	// triggered channel reverts to free-running.
	triggerRevertSamples = 60000
)

// Auxiliary-voltage mapping constants.
const (
	// AuxCenterNote is the quantized semitone corresponding to the
	// neutral auxiliary voltage; effects are computed relative to it.
	AuxCenterNote = 24

	// gateFractionSteps is the divisor splitting an auxiliary sample into
	// a gate-length index and remainder; the remainder spans 0-39.
	gateFractionSteps = 40

	// gateZeroSteps offsets the gate-length index so the neutral voltage
	// maps to index 0. Index and remainder come from a single
	// non-negative division of the raw sample.
	gateZeroSteps = 5

	// gateInterpDivisor scales the 0-39 remainder when interpolating
	// between adjacent gate-length table entries.
	gateInterpDivisor = gateFractionSteps - 1
)

// gateTableSize is the number of entries in the gate-length table.
const gateTableSize = 12

// gateLengthTable holds the available gate durations in samples,
// logarithmically spaced from the shortest pulse to the longest hold.
var gateLengthTable = [gateTableSize]int{
	5, 50, 110, 205, 360, 610, 1010, 1650, 2670, 4300, 6900, 11000,
}
