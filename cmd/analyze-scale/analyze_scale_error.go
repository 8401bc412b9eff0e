// Command analyze-scale sweeps the quantizers across the full input range
// and reports per-scale error and note-distribution statistics.
package main

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/tphakala/go-pitch-quantizer/internal/quant"
	"github.com/tphakala/go-pitch-quantizer/internal/scale"
)

const (
	// Input sweep parameters
	sweepUnits = 1024 // Full 10-octave-plus input range in raw units

	// Fixed-point pitch format
	unitsPerSemitone = 8
	centsPerUnit     = 12.5 // 100 cents per semitone / 8 units

	// Display limits
	maxNotesToShow = 12 // One histogram row per octave position
)

func main() {
	testScales := []struct {
		mask scale.Bitmask
		name string
	}{
		{scale.Chromatic, "chromatic"},
		{scale.FromNotes(0, 2, 4, 5, 7, 9, 11), "major"},
		{scale.FromNotes(0, 2, 4, 7, 9), "major pentatonic"},
		{scale.FromNotes(0, 7), "fifths"},
		{scale.FromNotes(0), "octaves"},
	}

	quantizers := []struct {
		fn   func(int, scale.Bitmask) (quant.Note, bool)
		name string
	}{
		{quant.Nearest, "nearest"},
		{quant.Skip, "skip"},
		{quant.Equal, "equal"},
	}

	for _, ts := range testScales {
		fmt.Printf("=== %s (%d notes) ===\n", ts.name, ts.mask.Count())

		for _, q := range quantizers {
			var errorsCents []float64
			hits := make(map[int]int)
			held := 0

			for sample := 0; sample < sweepUnits; sample++ {
				note, ok := q.fn(sample, ts.mask)
				if !ok {
					held++
					continue
				}
				hits[int(note)%scale.NoteCount]++
				errCents := float64(sample-int(note)*unitsPerSemitone) * centsPerUnit
				if errCents < 0 {
					errCents = -errCents
				}
				errorsCents = append(errorsCents, errCents)
			}

			mean := stat.Mean(errorsCents, nil)
			stddev := stat.StdDev(errorsCents, nil)
			fmt.Printf("\n  %s: %d samples quantized, %d held\n", q.name, len(errorsCents), held)
			fmt.Printf("    Absolute error: mean %.1f cents, stddev %.1f cents\n", mean, stddev)

			fmt.Printf("    Note histogram:")
			shown := 0
			for pos := 0; pos < scale.NoteCount && shown < maxNotesToShow; pos++ {
				if hits[pos] == 0 {
					continue
				}
				fmt.Printf(" %d:%d", pos, hits[pos])
				shown++
			}
			fmt.Println()
		}
		fmt.Println()
	}
}
