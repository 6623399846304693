package optimize

import (
	"solar-thermal-sizing/internal/logger"
	"solar-thermal-sizing/internal/model"
	"solar-thermal-sizing/internal/simulate"

	"github.com/pkg/errors"
)

// Problem bundles the read-only inputs of one sizing run.
type Problem struct {
	Table       model.ClimateTable
	DailyDemand float64
	Collector   model.CollectorParameters
	CostPerM2   float64
}

func (p Problem) Validate() error {
	if err := p.Table.Validate(); err != nil {
		return err
	}
	if err := p.Collector.Validate(); err != nil {
		return errors.Wrap(err, "collector")
	}
	if p.CostPerM2 <= 0 {
		return errors.Wrap(model.ErrInvalidParameters, "cost per m2 must be > 0")
	}
	return nil
}

// Candidate is one evaluated grid point that passed the feasibility band.
type Candidate struct {
	AreaM2     float64 `json:"area_m2"`
	VolumeL    float64 `json:"volume_l"`
	Fraction   float64 `json:"fraction"`
	AnnualKWh  float64 `json:"annual_kwh"`
	Investment float64 `json:"investment"`
	Score      float64 `json:"score"`
}

// Outcome is the result of a search. Found is false when no grid point had a
// fraction inside the band; Best is then the zero value.
type Outcome struct {
	Best      Candidate
	Found     bool
	Evaluated int
	Feasible  int
}

// Optimizer brute-forces the fixed (area, volume) grid. The grid and the
// feasibility band are not configurable.
type Optimizer struct {
	Engine *simulate.Engine

	areas   Range
	volumes Range
	band    Band
}

func New(engine *simulate.Engine) *Optimizer {
	return &Optimizer{
		Engine:  engine,
		areas:   AreaRange,
		volumes: VolumeRange,
		band:    FeasibleBand,
	}
}

// Search evaluates every grid point, area outer and volume inner, and keeps
// the feasible candidate with the highest score (fraction / investment).
// A later candidate replaces the best only on a strictly higher score, so ties
// go to the smaller area, then the smaller volume.
func (o *Optimizer) Search(p Problem) (Outcome, error) {
	var out Outcome
	evaluated, feasible, err := o.walk(p, func(c Candidate) {
		if !out.Found || c.Score > out.Best.Score {
			out.Best = c
			out.Found = true
		}
	})
	if err != nil {
		return Outcome{}, err
	}
	out.Evaluated = evaluated
	out.Feasible = feasible

	if out.Found {
		logger.L().Debugf("search: %d points, %d feasible, best area=%.1f m2 volume=%.0f L fraction=%.3f score=%.3g",
			evaluated, feasible, out.Best.AreaM2, out.Best.VolumeL, out.Best.Fraction, out.Best.Score)
	} else {
		logger.L().Debugf("search: %d points, no candidate in [%.2f, %.2f]", evaluated, o.band.Min, o.band.Max)
	}
	return out, nil
}

// walk runs the simulator on every grid point in enumeration order and calls
// fn for each candidate inside the band.
func (o *Optimizer) walk(p Problem, fn func(Candidate)) (evaluated, feasible int, err error) {
	if err := p.Validate(); err != nil {
		return 0, 0, err
	}

	for i := 0; i < o.areas.Len(); i++ {
		area := o.areas.At(i)
		for j := 0; j < o.volumes.Len(); j++ {
			volume := o.volumes.At(j)

			res, err := o.Engine.Run(area, volume, p.Table, p.DailyDemand, p.Collector)
			if err != nil {
				return evaluated, feasible, errors.Wrapf(err, "area %.1f volume %.0f", area, volume)
			}
			evaluated++

			if !o.band.Contains(res.Fraction) {
				continue
			}
			feasible++

			investment := area * p.CostPerM2
			fn(Candidate{
				AreaM2:     area,
				VolumeL:    volume,
				Fraction:   res.Fraction,
				AnnualKWh:  res.AnnualKWh,
				Investment: investment,
				Score:      res.Fraction / investment,
			})
		}
	}
	return evaluated, feasible, nil
}
