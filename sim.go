package quantizer

import "github.com/tphakala/go-pitch-quantizer/internal/engine"

// Conversion slot identifiers for Peripherals implementations and the
// simulator: the sampling context multiplexes four voltage sources.
const (
	SlotChannelA = engine.SlotChannelA
	SlotChannelB = engine.SlotChannelB
	SlotAuxA     = engine.SlotAuxA
	SlotAuxB     = engine.SlotAuxB
)

// housekeepDivider is the ratio of sampling ticks to housekeeping ticks
// driven by Simulator.Run, mirroring the fixed low housekeeping frequency.
const housekeepDivider = 8

// Simulator is an in-process Peripherals implementation for tests and
// offline tools. It serves the four conversion slots in the hardware's
// round-robin order with the one-conversion pipeline delay and records
// every pitch and gate the module emits.
type Simulator struct {
	seq    engine.Sequencer
	levels [engine.NumSlots]int

	pitch      [NumChannels]Note
	pitchKnown [NumChannels]bool
	gate       [NumChannels]bool

	// GateRises counts gate-on transitions per channel.
	gateRises [NumChannels]int

	// PitchTrace records every pitch write per channel.
	pitchTrace [NumChannels][]Note
}

// NewSimulator returns a simulator with all inputs at zero volts.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// SetLevel sets the held voltage of a conversion slot, in raw units
// (8 per semitone).
func (s *Simulator) SetLevel(slot, value int) {
	if slot < 0 || slot >= engine.NumSlots {
		return
	}
	s.levels[slot] = value
}

// ReadSample serves the next completed conversion in round-robin order.
func (s *Simulator) ReadSample() (slot, value int) {
	slot = s.seq.Advance()
	return slot, s.levels[slot]
}

// WritePitch records a pitch output.
func (s *Simulator) WritePitch(channel int, note Note) {
	s.pitch[channel] = note
	s.pitchKnown[channel] = true
	s.pitchTrace[channel] = append(s.pitchTrace[channel], note)
}

// SetGate records a gate transition.
func (s *Simulator) SetGate(channel int, on bool) {
	if on && !s.gate[channel] {
		s.gateRises[channel]++
	}
	s.gate[channel] = on
}

// Run drives the module for n sampling ticks, interleaving housekeeping at
// the fixed divider and giving the background context a step whenever the
// higher-priority contexts are idle.
func (s *Simulator) Run(m *Module, n int) {
	for i := 0; i < n; i++ {
		m.SampleTick()
		if i%housekeepDivider == 0 {
			m.HousekeepTick()
		}
		m.BackgroundStep()
	}
}

// RunChannelSamples drives the module long enough for one channel to see
// n of its own samples (the round-robin visits each slot every fourth
// tick).
func (s *Simulator) RunChannelSamples(m *Module, n int) {
	s.Run(m, n*engine.NumSlots)
}

// Pitch returns the last pitch written to a channel.
func (s *Simulator) Pitch(channel int) (Note, bool) {
	return s.pitch[channel], s.pitchKnown[channel]
}

// Gate returns the current gate level of a channel.
func (s *Simulator) Gate(channel int) bool {
	return s.gate[channel]
}

// GateRises returns the number of gate-on transitions seen on a channel.
func (s *Simulator) GateRises(channel int) int {
	return s.gateRises[channel]
}

// PitchTrace returns every pitch written to a channel, in order.
func (s *Simulator) PitchTrace(channel int) []Note {
	return s.pitchTrace[channel]
}

var _ Peripherals = (*Simulator)(nil)
