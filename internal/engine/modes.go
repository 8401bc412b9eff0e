package engine

// QuantizeMode selects the scale-quantization algorithm applied to the
// audio channels.
type QuantizeMode int

const (
	// ModeNearest snaps to the closest enabled note, wrapping across
	// octave boundaries.
	ModeNearest QuantizeMode = iota

	// ModeSkip passes only samples landing exactly on an enabled note
	// and holds the previous output otherwise.
	ModeSkip

	// ModeEqual redistributes the enabled notes to equal spacing across
	// the octave.
	ModeEqual
)

// String returns the mode name for logging and tools.
func (m QuantizeMode) String() string {
	switch m {
	case ModeNearest:
		return "nearest"
	case ModeSkip:
		return "skip"
	case ModeEqual:
		return "equal"
	default:
		return "unknown"
	}
}

// AuxMode selects the effect an auxiliary input's quantized voltage drives.
// The historical firmware encoded the disabled state as the out-of-band
// value 255; here it is an explicit variant.
type AuxMode int

const (
	// AuxOff disables the auxiliary input.
	AuxOff AuxMode = iota

	// AuxRotate drives the auxiliary scale rotation.
	AuxRotate

	// AuxTranspose transposes both channels after quantization.
	AuxTranspose

	// AuxTransposeB transposes channel B only.
	AuxTransposeB

	// AuxOffset offsets both channels before quantization.
	AuxOffset

	// AuxOffsetB offsets channel B only.
	AuxOffsetB

	// AuxGateLength modulates the gate duration.
	AuxGateLength

	// AuxScaleRecall recalls a scale bank selected by the voltage.
	AuxScaleRecall
)

// String returns the mode name for logging and tools.
func (m AuxMode) String() string {
	switch m {
	case AuxOff:
		return "off"
	case AuxRotate:
		return "rotate"
	case AuxTranspose:
		return "transpose"
	case AuxTransposeB:
		return "transpose-b"
	case AuxOffset:
		return "offset"
	case AuxOffsetB:
		return "offset-b"
	case AuxGateLength:
		return "gate-length"
	case AuxScaleRecall:
		return "scale-recall"
	default:
		return "unknown"
	}
}
