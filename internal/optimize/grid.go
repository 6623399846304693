package optimize

import "math"

// Range is a half-open arithmetic range [Start, Stop) with a fixed Step.
// Values are computed as Start + i*Step so no rounding accumulates.
type Range struct {
	Start float64
	Stop  float64
	Step  float64
}

func (r Range) Len() int {
	if r.Step <= 0 || r.Stop <= r.Start {
		return 0
	}
	return int(math.Ceil((r.Stop - r.Start) / r.Step))
}

func (r Range) At(i int) float64 {
	return r.Start + float64(i)*r.Step
}

func (r Range) Values() []float64 {
	n := r.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = r.At(i)
	}
	return out
}

// Band is a closed interval of acceptable solar fractions.
type Band struct {
	Min float64
	Max float64
}

// Contains reports whether f lies in [Min, Max]. NaN is never contained.
func (b Band) Contains(f float64) bool {
	return f >= b.Min && f <= b.Max
}

// The search space is fixed: 36 areas x 14 volumes.
var (
	AreaRange   = Range{Start: 2, Stop: 20, Step: 0.5}
	VolumeRange = Range{Start: 100, Stop: 800, Step: 50}
	SweepRange  = Range{Start: 2, Stop: 20, Step: 1}

	FeasibleBand = Band{Min: 0.6, Max: 0.9}
)
