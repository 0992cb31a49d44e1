package picker

import (
	"math"
	"testing"
)

// TestBuildRangesReps verifies the reps domain splits into disjoint bands of
// five whole numbers: a rep count belongs to exactly one band.
func TestBuildRangesReps(t *testing.T) {
	ranges := BuildRanges(Reps)
	if len(ranges) != 6 {
		t.Fatalf("got %d ranges, want 6", len(ranges))
	}
	if ranges[0].Start != 1 || ranges[0].End != 5 {
		t.Errorf("first band = [%v, %v], want [1, 5]", ranges[0].Start, ranges[0].End)
	}
	for i := 1; i < len(ranges); i++ {
		if ranges[i].Start != ranges[i-1].End+Reps.Step {
			t.Errorf("band %d starts at %v, band %d ends at %v; bands must not share values",
				i, ranges[i].Start, i-1, ranges[i-1].End)
		}
	}
	last := ranges[len(ranges)-1]
	if last.End != Reps.Max {
		t.Errorf("last band ends at %v, want %v", last.End, Reps.Max)
	}
}

// TestRepsBandsShareNoValues verifies no rep count appears in two bands'
// value grids.
func TestRepsBandsShareNoValues(t *testing.T) {
	seen := map[float64]int{}
	for i, r := range BuildRanges(Reps) {
		for _, v := range BuildValues(r.Start, r.End, Reps.Step) {
			if prev, ok := seen[v]; ok {
				t.Errorf("value %v in bands %d and %d", v, prev, i)
			}
			seen[v] = i
		}
	}
	for v := Reps.Min; v <= Reps.Max; v += Reps.Step {
		if _, ok := seen[v]; !ok {
			t.Errorf("value %v missing from every band", v)
		}
	}
}

// TestBuildRangesWeight verifies the weight bands cover 0–200 in tens with no
// band exceeding the domain maximum.
func TestBuildRangesWeight(t *testing.T) {
	ranges := BuildRanges(Weight)
	for i, r := range ranges {
		if r.End > Weight.Max {
			t.Errorf("band %d end %v exceeds max %v", i, r.End, Weight.Max)
		}
		if r.End < r.Start {
			t.Errorf("band %d is inverted: [%v, %v]", i, r.Start, r.End)
		}
	}
}

// TestBandCoverage verifies that every grid value of both domains falls into
// the band InitialBandIndex picks for it.
func TestBandCoverage(t *testing.T) {
	for _, d := range []Domain{Reps, Weight} {
		ranges := BuildRanges(d)
		for v := d.Min; v <= d.Max; v += d.Step {
			idx := InitialBandIndex(v, d)
			r := ranges[idx]
			if v < r.Start || v > r.End {
				t.Errorf("value %v mapped to band %d [%v, %v]", v, idx, r.Start, r.End)
			}
		}
	}
}

// TestBuildValues verifies value enumeration includes both endpoints and
// stays on the step grid.
func TestBuildValues(t *testing.T) {
	values := BuildValues(10, 20, 2.5)
	want := []float64{10, 12.5, 15, 17.5, 20}
	if len(values) != len(want) {
		t.Fatalf("got %d values, want %d", len(values), len(want))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("values[%d] = %v, want %v", i, values[i], want[i])
		}
	}
}

// TestBuildValuesNoDrift verifies repeated float addition does not leak
// off-grid values for the weight step.
func TestBuildValuesNoDrift(t *testing.T) {
	values := BuildValues(0, 200, 2.5)
	for _, v := range values {
		if snapped := RoundToStep(v, 2.5); math.Abs(v-snapped) > 1e-9 {
			t.Errorf("value %v is off the 2.5 grid", v)
		}
	}
	if values[len(values)-1] != 200 {
		t.Errorf("last value = %v, want 200", values[len(values)-1])
	}
}

// TestBuildValuesEmptyInterval verifies an inverted interval yields no
// values instead of panicking.
func TestBuildValuesEmptyInterval(t *testing.T) {
	if got := BuildValues(10, 5, 2.5); len(got) != 0 {
		t.Errorf("BuildValues(10, 5, 2.5) = %v, want empty", got)
	}
}

// TestInitialBandIndexClamps verifies out-of-domain values land in the first
// or last band instead of panicking.
func TestInitialBandIndexClamps(t *testing.T) {
	if idx := InitialBandIndex(-50, Weight); idx != 0 {
		t.Errorf("below-min index = %d, want 0", idx)
	}
	last := len(BuildRanges(Weight)) - 1
	if idx := InitialBandIndex(999, Weight); idx != last {
		t.Errorf("above-max index = %d, want %d", idx, last)
	}
	if idx := InitialBandIndex(Weight.Max, Weight); idx != last {
		t.Errorf("max value index = %d, want %d", idx, last)
	}
}

// TestAdjust verifies fine adjustment snaps to the fine step and clamps to
// the domain.
func TestAdjust(t *testing.T) {
	tests := []struct {
		value, delta, step float64
		want               float64
	}{
		{80, 0.125, 0.125, 80.125},
		{80, -0.5, 0.5, 79.5},
		{199.9, 1, 1, 200},
		{0.1, -1, 0.25, 0},
		{80.3, 0.25, 0.25, 80.5},
	}
	for _, tt := range tests {
		if got := Weight.Adjust(tt.value, tt.delta, tt.step); got != tt.want {
			t.Errorf("Adjust(%v, %v, %v) = %v, want %v", tt.value, tt.delta, tt.step, got, tt.want)
		}
	}
}

// TestRoundToStep verifies rounding to fractional steps.
func TestRoundToStep(t *testing.T) {
	if got := RoundToStep(81.3, 2.5); got != 82.5 {
		t.Errorf("RoundToStep(81.3, 2.5) = %v, want 82.5", got)
	}
	if got := RoundToStep(80.07, 0.125); got != 80.125 {
		t.Errorf("RoundToStep(80.07, 0.125) = %v, want 80.125", got)
	}
}
