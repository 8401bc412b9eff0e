package engine

// Contribution holds one auxiliary input's share of the modulation overlay.
// All fields are neutral at zero.
type Contribution struct {
	// Rotation is the auxiliary scale rotation, 0-11.
	Rotation int

	// Transpose is added to each channel's note after quantization.
	Transpose [NumChannels]int

	// Offset is added to each channel's sample before quantization,
	// in semitones.
	Offset [NumChannels]int

	// GateIndex and GateRemainder modulate the gate-length lookup.
	GateIndex     int
	GateRemainder int
}

// Overlay is the ephemeral, never-persisted modulation state written by the
// auxiliary-voltage processors and read by the channel processors and the
// gate-length calculator. It is owned by the module and only touched inside
// its critical section.
type Overlay struct {
	Aux [NumAuxInputs]Contribution
}

// Effect describes follow-up work an overlay update requires of the caller.
type Effect struct {
	// RecomputeRotation is set when the cached rotated scale is stale.
	RecomputeRotation bool

	// RecallBank is the scale bank to load, or -1 for none.
	RecallBank int
}

// noEffect is the neutral Effect value.
func noEffect() Effect { return Effect{RecallBank: -1} }

// Apply dispatches a changed auxiliary value into the overlay for the given
// mode. The value is the quantized semitone; effects are relative to
// AuxCenterNote. Gate-length modulation is not handled here: it is
// recomputed on every sample via SetGateModulation, not only on change.
func (o *Overlay) Apply(aux int, mode AuxMode, value int) Effect {
	c := &o.Aux[aux]
	delta := value - AuxCenterNote

	switch mode {
	case AuxRotate:
		c.Rotation = mod12(delta)
		return Effect{RecomputeRotation: true, RecallBank: -1}

	case AuxTranspose:
		for ch := range c.Transpose {
			c.Transpose[ch] = delta
		}

	case AuxTransposeB:
		c.Transpose[ChannelB] = delta

	case AuxOffset:
		for ch := range c.Offset {
			c.Offset[ch] = delta
		}

	case AuxOffsetB:
		c.Offset[ChannelB] = delta

	case AuxScaleRecall:
		return Effect{RecallBank: mod12(delta)}
	}

	return noEffect()
}

// SetGateModulation maps a raw auxiliary sample to the gate-length index
// and remainder contribution. The zero point is chosen so both values come
// out of a single non-negative division of the sample.
func (o *Overlay) SetGateModulation(aux, sample int) {
	c := &o.Aux[aux]
	c.GateIndex = sample/gateFractionSteps - gateZeroSteps
	c.GateRemainder = sample % gateFractionSteps
}

// Reset returns one auxiliary input's contribution to neutral. The caller
// must force a rotation recompute afterwards, even if the base scale is
// unchanged.
func (o *Overlay) Reset(aux int) {
	o.Aux[aux] = Contribution{}
}

// Rotation returns the combined auxiliary rotation, 0-11.
func (o *Overlay) Rotation() int {
	r := 0
	for i := range o.Aux {
		r += o.Aux[i].Rotation
	}
	return mod12(r)
}

// Transpose returns the combined auxiliary transpose for a channel.
func (o *Overlay) Transpose(ch int) int {
	t := 0
	for i := range o.Aux {
		t += o.Aux[i].Transpose[ch]
	}
	return t
}

// Offset returns the combined auxiliary offset for a channel, in semitones.
func (o *Overlay) Offset(ch int) int {
	v := 0
	for i := range o.Aux {
		v += o.Aux[i].Offset[ch]
	}
	return v
}

// GateModulation returns the combined gate-length index offset and a
// normalized remainder in 0-39, carrying remainder overflow into the index.
func (o *Overlay) GateModulation() (index, remainder int) {
	total := 0
	for i := range o.Aux {
		total += o.Aux[i].GateIndex*gateFractionSteps + o.Aux[i].GateRemainder
	}

	index = total / gateFractionSteps
	remainder = total % gateFractionSteps
	if remainder < 0 {
		remainder += gateFractionSteps
		index--
	}
	return index, remainder
}

// mod12 reduces a value to 0-11, handling negative inputs.
func mod12(v int) int {
	v %= 12
	if v < 0 {
		v += 12
	}
	return v
}
