package quantizer

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-pitch-quantizer/internal/engine"
	"github.com/tphakala/go-pitch-quantizer/internal/quant"
	"github.com/tphakala/go-pitch-quantizer/internal/scale"
)

// Note is a pitch output value in the range 0-127. Values of 128 and above
// are invalid by contract; the engine never emits them.
type Note = quant.Note

// ScaleMask is a 12-tone scale stored in the top 12 bits of a uint16, with
// the low 4 bits always zero.
type ScaleMask = scale.Bitmask

// QuantizeMode selects the scale-quantization algorithm.
type QuantizeMode = engine.QuantizeMode

// Quantization modes.
const (
	// ModeNearest snaps to the closest enabled note.
	ModeNearest = engine.ModeNearest

	// ModeSkip passes only exact hits on enabled notes.
	ModeSkip = engine.ModeSkip

	// ModeEqual redistributes enabled notes to equal spacing.
	ModeEqual = engine.ModeEqual
)

// AuxMode selects the effect an auxiliary input drives.
type AuxMode = engine.AuxMode

// Auxiliary input modes.
const (
	AuxModeOff         = engine.AuxOff
	AuxModeRotate      = engine.AuxRotate
	AuxModeTranspose   = engine.AuxTranspose
	AuxModeTransposeB  = engine.AuxTransposeB
	AuxModeOffset      = engine.AuxOffset
	AuxModeOffsetB     = engine.AuxOffsetB
	AuxModeGateLength  = engine.AuxGateLength
	AuxModeScaleRecall = engine.AuxScaleRecall
)

// Counts of statically sized resources.
const (
	// NumChannels is the number of audio channels.
	NumChannels = engine.NumChannels

	// NumAuxInputs is the number of auxiliary modulation inputs.
	NumAuxInputs = engine.NumAuxInputs

	// NumScaleBanks is the number of storable scale presets.
	NumScaleBanks = 12
)

// Configuration limits.
const (
	// MaxGateLengthIndex is the highest gate-length table index.
	MaxGateLengthIndex = 11

	// MaxRotation is the highest base rotation.
	MaxRotation = 11

	// MaxTriggerDelay is the highest trigger-delay setting.
	MaxTriggerDelay = 11

	// MinTranspose and MaxTranspose bound the signed transpose and
	// offset settings, in semitones.
	MinTranspose = -49
	MaxTranspose = 60
)

// Common errors returned by the quantizer.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid quantizer configuration")

	// ErrInvalidBank indicates a scale bank index outside 0-11.
	ErrInvalidBank = errors.New("scale bank index out of range")

	// ErrNoConfiguration indicates uninitialized or corrupt persistent
	// state; callers fall back to DefaultConfig.
	ErrNoConfiguration = errors.New("no stored configuration")
)

// Config holds the persisted quantizer configuration. It is created with
// DefaultConfig on first run or explicit reset, mutated through the
// module's synchronized entry points, and read by every core component.
type Config struct {
	// Scale is the base 12-tone scale before rotation.
	Scale ScaleMask

	// GateLengthIndex selects the base gate duration, 0-11.
	GateLengthIndex int

	// BaseRotation rotates the scale, 0-11. Combined with the auxiliary
	// rotation modulo 12.
	BaseRotation int

	// Transpose is added to both channels' notes after quantization;
	// TransposeB additionally to channel B. Semitone units.
	Transpose  int
	TransposeB int

	// Offset is added to both channels' samples before quantization;
	// OffsetB additionally to channel B. Semitone units.
	Offset  int
	OffsetB int

	// Legato keeps the gate untouched when a new note is accepted.
	Legato bool

	// Mode selects the quantization algorithm.
	Mode QuantizeMode

	// TriggerDelay defers the armed trigger by 1 + 2*setting samples,
	// 0-11.
	TriggerDelay int

	// AuxModes assigns an effect to each auxiliary input.
	AuxModes [NumAuxInputs]AuxMode
}

// DefaultConfig returns the documented first-run configuration: chromatic
// scale, nearest quantization, mid-range gate length, no modulation, both
// auxiliary inputs off.
func DefaultConfig() Config {
	return Config{
		Scale:           scale.Chromatic,
		GateLengthIndex: 5,
		Mode:            ModeNearest,
		AuxModes:        [NumAuxInputs]AuxMode{AuxModeOff, AuxModeOff},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.GateLengthIndex < 0 || c.GateLengthIndex > MaxGateLengthIndex {
		return fmt.Errorf("%w: gate length index must be 0-%d", ErrInvalidConfig, MaxGateLengthIndex)
	}

	if c.BaseRotation < 0 || c.BaseRotation > MaxRotation {
		return fmt.Errorf("%w: base rotation must be 0-%d", ErrInvalidConfig, MaxRotation)
	}

	if c.TriggerDelay < 0 || c.TriggerDelay > MaxTriggerDelay {
		return fmt.Errorf("%w: trigger delay must be 0-%d", ErrInvalidConfig, MaxTriggerDelay)
	}

	for _, v := range []int{c.Transpose, c.TransposeB, c.Offset, c.OffsetB} {
		if v < MinTranspose || v > MaxTranspose {
			return fmt.Errorf("%w: transpose/offset must be %d..%d", ErrInvalidConfig, MinTranspose, MaxTranspose)
		}
	}

	if c.Mode < ModeNearest || c.Mode > ModeEqual {
		return fmt.Errorf("%w: unknown quantization mode %d", ErrInvalidConfig, c.Mode)
	}

	for i, m := range c.AuxModes {
		if m < AuxModeOff || m > AuxModeScaleRecall {
			return fmt.Errorf("%w: unknown auxiliary mode %d on input %d", ErrInvalidConfig, m, i)
		}
	}

	return nil
}

// Storage is the persistent-storage collaborator. Implementations signal
// uninitialized or corrupt state from LoadConfiguration with
// ErrNoConfiguration; the module fails open to DefaultConfig and
// immediately persists it.
type Storage interface {
	// LoadConfiguration returns the stored configuration.
	LoadConfiguration() (Config, error)

	// SaveConfiguration persists the configuration.
	SaveConfiguration(Config) error

	// LoadScaleBank returns the scale preset in bank index 0-11.
	LoadScaleBank(index int) (ScaleMask, error)

	// SaveScaleBank stores a scale preset in bank index 0-11.
	SaveScaleBank(index int, mask ScaleMask) error

	// ScaleBankOccupancyMask reports the banks holding a non-zero scale,
	// bank i mapping to the same bit as semitone i in a ScaleMask. Empty
	// banks may still be loaded; the mask is for status reporting only.
	ScaleBankOccupancyMask() ScaleMask
}

// Peripherals is the conversion-hardware collaborator: one completed
// voltage sample in, pitch and gate levels out.
type Peripherals interface {
	// ReadSample returns the conversion slot the completed sample
	// belongs to (0-1 audio channels, 2-3 auxiliary inputs) and its raw
	// value in fixed fractional units (8 per semitone).
	ReadSample() (slot, value int)

	// WritePitch updates a channel's pitch output, 0-127.
	WritePitch(channel int, note Note)

	// SetGate drives a channel's gate output.
	SetGate(channel int, on bool)
}
