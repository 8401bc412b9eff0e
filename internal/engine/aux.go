package engine

import "github.com/tphakala/go-pitch-quantizer/internal/quant"

// AuxInput quantizes one auxiliary modulation voltage to semitone
// resolution with its own hysteresis and last-value memory, invoked once
// per sample in the sampling-priority context.
type AuxInput struct {
	last    int
	hasLast bool
}

// Process quantizes the raw sample and reports the value together with
// whether it changed since the previous sample. Change detection drives
// the effect dispatch: all effects except gate-length fire only on change.
func (a *AuxInput) Process(sample int) (value int, changed bool) {
	if a.hasLast {
		center := a.last * quant.UnitsPerSemitone
		if sample > center {
			sample -= hysteresisRise
		} else if sample < center {
			sample += hysteresisFall
		}
	}

	q := quant.Semitone(sample)
	changed = !a.hasLast || q != a.last
	a.last = q
	a.hasLast = true
	return q, changed
}

// Reset clears the last-value memory. Called when the input's effect mode
// is reassigned, so the next sample re-dispatches unconditionally.
func (a *AuxInput) Reset() {
	*a = AuxInput{}
}

// Last returns the last quantized value, if any sample has been processed.
func (a *AuxInput) Last() (int, bool) {
	return a.last, a.hasLast
}
