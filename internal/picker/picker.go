// Package picker derives the band/value grids behind the touch number
// pickers. Everything here is a pure function of the domain and the current
// value; screens call these on every render.
package picker

import "math"

// Domain describes one pickable quantity: its value range, the width of the
// tappable bands it is split into, and the step between grid values.
type Domain struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	BandSize float64 `json:"bandSize"`
	Step     float64 `json:"step"`

	// DisjointBands ends each band one step before the next band starts, so
	// no value sits in two bands. Integer domains use this; continuous
	// domains share band boundaries instead.
	DisjointBands bool `json:"-"`
}

// Reps is the repetition-count domain: 1–30 in bands of 5, whole numbers.
var Reps = Domain{Min: 1, Max: 30, BandSize: 5, Step: 1, DisjointBands: true}

// Weight is the weight domain: 0–200 kg in 10 kg bands, 2.5 kg grid steps.
var Weight = Domain{Min: 0, Max: 200, BandSize: 10, Step: 2.5}

// FineSteps are the micro-adjust increments offered on top of the weight
// grid, finest last.
var FineSteps = []float64{1, 0.5, 0.25, 0.125}

// Range is one contiguous band of a domain.
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// BuildRanges partitions [d.Min, d.Max] into bands of d.BandSize, the last
// band clipped to d.Max.
func BuildRanges(d Domain) []Range {
	var ranges []Range
	for s := d.Min; s <= d.Max; s += d.BandSize {
		end := s + d.BandSize
		if d.DisjointBands {
			end -= d.Step
		}
		ranges = append(ranges, Range{Start: s, End: math.Min(d.Max, end)})
	}
	return ranges
}

// BuildValues enumerates start, start+step, ... up to and including end,
// every value snapped to the step grid to avoid float drift. Returns nil for
// an empty interval.
func BuildValues(start, end, step float64) []float64 {
	count := int(math.Floor((end-start)/step)) + 1
	if count < 1 {
		return nil
	}
	out := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, RoundToStep(start+float64(i)*step, step))
	}
	return out
}

// InitialBandIndex returns the index of the band containing value, so a
// picker opens on the band the current value sits in. Values outside the
// domain are clamped first.
func InitialBandIndex(value float64, d Domain) int {
	v := Clamp(value, d.Min, d.Max)
	idx := int(math.Floor((v - d.Min) / d.BandSize))
	last := len(BuildRanges(d)) - 1
	if idx < 0 {
		return 0
	}
	if idx > last {
		return last
	}
	return idx
}

// Adjust applies a fine-adjust delta on top of a picked value. The result is
// snapped to fineStep and clamped to the domain.
func (d Domain) Adjust(value, delta, fineStep float64) float64 {
	return Clamp(RoundToStep(value+delta, fineStep), d.Min, d.Max)
}

// RoundToStep rounds v to the nearest multiple of step.
func RoundToStep(v, step float64) float64 {
	inv := 1 / step
	return math.Round(v*inv) / inv
}

// Clamp limits v to [min, max].
func Clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}
