package simulate

// MonthRow is one month of simulator output.
// This is the primary artifact for "where the energy came from" in a run.
type MonthRow struct {
	Index int
	Month string

	Irradiation   float64
	AmbientC      float64
	Efficiency    float64
	GrossKWh      float64
	StorageLoss   float64
	NetKWh        float64
	CumulativeKWh float64
}

// Result is the annual simulation of one (area, volume) configuration.
// Fraction is AnnualKWh divided by the annual demand; it is not clamped and may
// exceed 1, be negative, or be non-finite for degenerate demand.
type Result struct {
	AreaM2       float64
	VolumeL      float64
	Months       []MonthRow
	AnnualKWh    float64
	AnnualDemand float64
	Fraction     float64
}

// Profile returns the monthly net energy sequence in table order.
func (r *Result) Profile() []float64 {
	out := make([]float64, len(r.Months))
	for i, m := range r.Months {
		out[i] = m.NetKWh
	}
	return out
}
