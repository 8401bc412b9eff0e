package engine

import (
	"github.com/tphakala/go-pitch-quantizer/internal/quant"
	"github.com/tphakala/go-pitch-quantizer/internal/scale"
)

// ChannelParams is the per-sample parameter snapshot for one channel
// invocation. The module assembles it inside the critical section so the
// channel never observes a partially updated configuration.
type ChannelParams struct {
	// Mask is the effective (rotated) scale.
	Mask scale.Bitmask

	// Mode selects the quantization algorithm.
	Mode QuantizeMode

	// Legato keeps the gate untouched across accepted notes.
	Legato bool

	// Transpose is added to the note after quantization, in semitones
	// (global + auxiliary + channel-specific, already combined).
	Transpose int

	// Offset is added to the sample before quantization, in semitones
	// (global + auxiliary + channel-specific, already combined).
	Offset int

	// GateSamples is the gate duration for newly fired gates.
	GateSamples int
}

// Keyboard is a manual-override candidate: a direct note selection with an
// explicit trigger flag. While present, hysteresis and quantization are
// bypassed.
type Keyboard struct {
	Note    quant.Note
	Trigger bool
}

// ChannelResult reports the output actions for one sample: a pitch update
// on acceptance and at most one gate transition.
type ChannelResult struct {
	PitchValid  bool
	Pitch       quant.Note
	GateChanged bool
	Gate        bool
}

// Channel is the per-channel trigger/gate state machine, invoked once per
// sample at the channel's sampling cadence. All mutation happens in the
// sampling-priority context for that channel.
type Channel struct {
	output    quant.Note
	hasOutput bool

	// refUnits is the hysteresis center: the raw-sample value equivalent
	// to the last accepted candidate before offset modulation.
	refUnits int
	hasRef   bool

	// lastGated is the output value that produced the previous gate,
	// valid while hasGated is set. It suppresses re-gating when a noisy
	// input oscillates back to the same pitch before a gate completes.
	lastGated quant.Note
	hasGated  bool

	// gatePhase counts down: negative while waiting out the settling
	// delay before the gate opens, positive while the gate is held open.
	gatePhase int
	gateOpen  bool

	freeRunning    bool
	pendingTrigger int
	debounce       int
	idleSamples    int
}

// NewChannel returns a channel in free-running mode with the gate low.
func NewChannel() *Channel {
	return &Channel{freeRunning: true}
}

// NoteTriggerEdge registers a debounced active edge from the trigger input.
// In free-running mode the observed activity switches the channel to
// triggered mode; the edge also arms a delayed trigger of
// 1 + triggerDelayStep*delaySetting samples unless it falls inside the
// debounce refractory window.
func (c *Channel) NoteTriggerEdge(delaySetting int) {
	c.idleSamples = 0
	c.freeRunning = false
	if c.debounce > 0 {
		return
	}
	c.debounce = triggerDebounceSamples
	c.pendingTrigger = 1 + triggerDelayStep*delaySetting
}

// Process runs one sample through the channel state machine. kb, when
// non-nil, supplies a manual-override candidate instead of quantizing the
// sample.
func (c *Channel) Process(sample int, p ChannelParams, kb *Keyboard) ChannelResult {
	var res ChannelResult

	fireDelayed := c.tickTrigger()

	// Gate timing advances independently of triggering, before the new
	// sample is considered.
	c.advanceGate(p.GateSamples, &res)

	cand, refUnits, ok, forced := c.candidate(sample, p, kb)

	fire := false
	if ok {
		switch {
		case forced:
			fire = true
		case c.freeRunning:
			fire = !c.hasOutput || cand != c.output
		default:
			fire = fireDelayed
		}
	}

	if fire {
		c.output = cand
		c.hasOutput = true
		c.refUnits = refUnits
		c.hasRef = true
		res.PitchValid = true
		res.Pitch = cand

		if !p.Legato {
			if c.gateOpen {
				c.gateOpen = false
				res.GateChanged = true
				res.Gate = false
			}
			c.gatePhase = -gateSettleSamples
		}
	}

	return res
}

// tickTrigger advances the debounce, auto-revert, and pending-trigger
// counters; it reports whether an armed trigger fires this sample.
func (c *Channel) tickTrigger() bool {
	if c.debounce > 0 {
		c.debounce--
	}

	if !c.freeRunning {
		c.idleSamples++
		if c.idleSamples >= triggerRevertSamples {
			c.freeRunning = true
			c.pendingTrigger = 0
		}
	}

	if c.pendingTrigger > 0 {
		c.pendingTrigger--
		return c.pendingTrigger == 0
	}
	return false
}

// candidate computes the note candidate for this sample, its hysteresis
// reference, validity, and whether acceptance is forced by a manual
// trigger.
func (c *Channel) candidate(sample int, p ChannelParams, kb *Keyboard) (cand quant.Note, refUnits int, ok, forced bool) {
	if kb != nil {
		// Manual override: direct selection, hysteresis suspended.
		if kb.Note > quant.MaxNote {
			return 0, 0, false, false
		}
		return kb.Note, int(kb.Note) * quant.UnitsPerSemitone, true, kb.Trigger
	}

	s := sample
	if c.hasRef {
		if s > c.refUnits {
			s -= hysteresisRise
		} else if s < c.refUnits {
			s += hysteresisFall
		}
	}

	s += p.Offset * quant.UnitsPerSemitone

	var pre quant.Note
	switch p.Mode {
	case ModeSkip:
		pre, ok = quant.Skip(s, p.Mask)
	case ModeEqual:
		pre, ok = quant.Equal(s, p.Mask)
	default:
		pre, ok = quant.Nearest(s, p.Mask)
	}
	if !ok {
		return 0, 0, false, false
	}

	// The hysteresis center tracks the pre-offset sample value of the
	// accepted note.
	refUnits = (int(pre) - p.Offset) * quant.UnitsPerSemitone

	t := int(pre) + p.Transpose
	if t < 0 || t > quant.MaxNote {
		return 0, 0, false, false
	}
	return quant.Note(t), refUnits, true, false
}

// advanceGate steps the gate phase counter: through the settling delay
// toward gate-on, then through the gate length toward gate-off. The gate
// opens only if the current output differs from the value that produced
// the previous gate; that memory clears once a gate runs its full length.
func (c *Channel) advanceGate(gateSamples int, res *ChannelResult) {
	switch {
	case c.gatePhase < 0:
		c.gatePhase++
		if c.gatePhase == 0 {
			if !c.hasGated || c.output != c.lastGated {
				c.gateOpen = true
				c.lastGated = c.output
				c.hasGated = true
				c.gatePhase = gateSamples
				res.GateChanged = true
				res.Gate = true
			}
		}

	case c.gatePhase > 0:
		c.gatePhase--
		if c.gatePhase == 0 {
			c.gateOpen = false
			c.hasGated = false
			res.GateChanged = true
			res.Gate = false
		}
	}
}

// Output returns the current output note, if one has been accepted.
func (c *Channel) Output() (quant.Note, bool) {
	return c.output, c.hasOutput
}

// GateOpen reports whether the gate output is currently high.
func (c *Channel) GateOpen() bool {
	return c.gateOpen
}

// FreeRunning reports whether the channel is in free-running mode.
func (c *Channel) FreeRunning() bool {
	return c.freeRunning
}
