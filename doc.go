// Package quantizer implements the realtime control core of a dual-channel
// pitch quantizer in pure Go.
//
// The engine samples two continuously varying control voltages per audio
// channel, snaps each sample to a musical scale under a selectable
// algorithm, drives two pitch and two gate outputs, and accepts two
// auxiliary modulation voltages that reconfigure quantization parameters
// in real time. The signal path is integer/fixed-point throughout: raw
// samples use a fixed fractional unit of 8 per semitone, and valid output
// notes span 0-127.
//
// # Quick start
//
// For an offline module wired to in-memory storage and a simulated
// converter:
//
//	m, sim, err := quantizer.NewWithScale(quantizer.ScaleMajor, quantizer.ModeNearest)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sim.SetLevel(quantizer.SlotChannelA, 30) // just below semitone 4
//	sim.RunChannelSamples(m, 16)
//	note, _ := sim.Pitch(0)
//
// On real hardware, implement [Storage] and [Peripherals] over the actual
// persistent storage and converter, then invoke [Module.SampleTick] from
// the conversion-complete interrupt, [Module.HousekeepTick] from the
// low-frequency housekeeping interrupt, and [Module.BackgroundStep] from
// the idle loop.
//
// # Quantization algorithms
//
//   - [ModeNearest]: rounds to the nearest semitone and searches outward,
//     wrapping across octaves, for the closest enabled note; equidistant
//     ties are broken by the rounding remainder.
//   - [ModeSkip]: passes only samples landing exactly on an enabled note
//     and holds the previous output otherwise.
//   - [ModeEqual]: redistributes the enabled notes to equal spacing across
//     the octave regardless of their true semitone gaps.
//
// # Execution model
//
// The core runs under a fixed two-level preemptive model with a background
// loop, mirrored here as three entry points. SampleTick is the sampling
// context: it round-robins across the two audio channels and two auxiliary
// inputs with an explicit one-conversion pipeline delay, and must finish
// one component invocation per sample. HousekeepTick never nests with
// itself. BackgroundStep commits configuration edits to storage a fixed
// delay after the last change, serialized by a busy flag. Shared state is
// guarded by a single critical section held for minimal field sets, so the
// sampling context never observes partially updated configuration.
// Exceeding the per-sample time budget is not detected; it degrades into
// sample skew, from which the round-robin sequencer realigns.
//
// # Error handling
//
// No operation panics. "Cannot quantize" is a held output, not an error;
// uninitialized or corrupt storage fails open to [DefaultConfig] and is
// persisted immediately; a busy storage path defers the pending save to
// the next background opportunity.
package quantizer
