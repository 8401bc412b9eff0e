package quantizer

import "github.com/tphakala/go-pitch-quantizer/internal/scale"

// Common scale presets. Semitone 0 is the root of the pattern; rotation
// moves the pattern to other roots.
var (
	// ScaleChromatic enables all 12 semitones.
	ScaleChromatic = scale.Chromatic

	// ScaleMajor is the major (ionian) pattern.
	ScaleMajor = scale.FromNotes(0, 2, 4, 5, 7, 9, 11)

	// ScaleNaturalMinor is the natural minor (aeolian) pattern.
	ScaleNaturalMinor = scale.FromNotes(0, 2, 3, 5, 7, 8, 10)

	// ScaleHarmonicMinor raises the natural minor's seventh.
	ScaleHarmonicMinor = scale.FromNotes(0, 2, 3, 5, 7, 8, 11)

	// ScaleMajorPentatonic is the five-note major pattern.
	ScaleMajorPentatonic = scale.FromNotes(0, 2, 4, 7, 9)

	// ScaleMinorPentatonic is the five-note minor pattern.
	ScaleMinorPentatonic = scale.FromNotes(0, 3, 5, 7, 10)

	// ScaleWholeTone is the six-note whole-tone pattern.
	ScaleWholeTone = scale.FromNotes(0, 2, 4, 6, 8, 10)

	// ScaleFifths enables only the root and fifth.
	ScaleFifths = scale.FromNotes(0, 7)

	// ScaleOctaves enables only the root.
	ScaleOctaves = scale.FromNotes(0)
)

// NewScale builds a ScaleMask from semitone positions 0-11.
func NewScale(notes ...int) ScaleMask {
	return scale.FromNotes(notes...)
}

// NewDefault creates a module on fresh in-memory storage with the default
// configuration and a simulator peripheral, ready for offline use. It
// returns the module together with the simulator driving it.
func NewDefault() (*Module, *Simulator, error) {
	sim := NewSimulator()
	m, err := New(NewMemoryStorage(), sim)
	if err != nil {
		return nil, nil, err
	}
	return m, sim, nil
}

// NewWithScale is like NewDefault but starts from the given scale and
// quantization mode.
func NewWithScale(mask ScaleMask, mode QuantizeMode) (*Module, *Simulator, error) {
	storage := NewMemoryStorage()
	cfg := DefaultConfig()
	cfg.Scale = mask
	cfg.Mode = mode
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if err := storage.SaveConfiguration(cfg); err != nil {
		return nil, nil, err
	}

	sim := NewSimulator()
	m, err := New(storage, sim)
	if err != nil {
		return nil, nil, err
	}
	return m, sim, nil
}
