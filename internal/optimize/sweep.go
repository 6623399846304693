package optimize

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// SweepPoint is the solar fraction at one surface area for a fixed volume.
type SweepPoint struct {
	AreaM2    float64 `json:"area_m2"`
	Fraction  float64 `json:"fraction"`
	AnnualKWh float64 `json:"annual_kwh"`
}

// Sweep evaluates the fraction at every integer area in [2, 20) holding the
// storage volume fixed. No feasibility filter is applied.
func (o *Optimizer) Sweep(p Problem, volume float64) ([]SweepPoint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]SweepPoint, 0, SweepRange.Len())
	for _, area := range SweepRange.Values() {
		res, err := o.Engine.Run(area, volume, p.Table, p.DailyDemand, p.Collector)
		if err != nil {
			return nil, errors.Wrapf(err, "sweep area %.0f", area)
		}
		out = append(out, SweepPoint{AreaM2: area, Fraction: res.Fraction, AnnualKWh: res.AnnualKWh})
	}
	return out, nil
}

func WriteSweepCSV(path string, points []SweepPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create sweep csv")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"area_m2", "fraction", "annual_kwh"}); err != nil {
		return err
	}
	for _, pt := range points {
		row := []string{
			strconv.FormatFloat(pt.AreaM2, 'f', 1, 64),
			strconv.FormatFloat(pt.Fraction, 'f', 6, 64),
			strconv.FormatFloat(pt.AnnualKWh, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
