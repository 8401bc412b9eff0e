package engine

// GateDuration returns the gate length in samples for a combined table
// index and a remainder in 0-39. Indexes at or below zero clamp to the
// first table entry and indexes at or above the last to the final entry;
// in between, the duration is interpolated linearly toward the next entry
// using the remainder as the fraction.
func GateDuration(index, remainder int) int {
	if index < 0 {
		return gateLengthTable[0]
	}
	if index >= gateTableSize-1 {
		return gateLengthTable[gateTableSize-1]
	}

	lo := gateLengthTable[index]
	hi := gateLengthTable[index+1]
	return lo + remainder*(hi-lo)/gateInterpDivisor
}

// GateSamples combines the configured gate-length index with the overlay's
// auxiliary modulation and returns the resulting duration. Callers cache
// the result and recompute whenever the configured index or the overlay
// changes.
func GateSamples(configIndex int, o *Overlay) int {
	index, remainder := o.GateModulation()
	return GateDuration(configIndex+index, remainder)
}
