package analysis

import (
	"solar-thermal-sizing/internal/model"
	"solar-thermal-sizing/internal/optimize"
	"solar-thermal-sizing/internal/simulate"

	"github.com/pkg/errors"
)

// Report is everything the presentation layer shows for one sizing run.
// When Found is false only the inputs, demand and search counters are set.
type Report struct {
	Parameters      model.UserParameters
	Collector       model.CollectorParameters
	DailyDemandKWh  float64
	AnnualDemandKWh float64

	Found     bool
	Evaluated int
	Feasible  int

	Best       optimize.Candidate
	Months     []simulate.MonthRow
	AnnualKWh  float64
	Fraction   float64
	Financials Financials
	Sweep      []optimize.SweepPoint
}

// Request carries the inputs of BuildReport.
type Request struct {
	Parameters  model.UserParameters
	Collector   model.CollectorParameters
	Table       model.ClimateTable
	EnergyPrice float64
}

// BuildReport runs the search, re-simulates the best configuration for the
// monthly profile and sweeps the surface area at the best volume.
func BuildReport(opt *optimize.Optimizer, req Request) (*Report, error) {
	c := opt.Engine.Constants
	daily := req.Parameters.DailyDemand(c)

	problem := optimize.Problem{
		Table:       req.Table,
		DailyDemand: daily,
		Collector:   req.Collector,
		CostPerM2:   req.Parameters.CostPerM2,
	}

	outcome, err := opt.Search(problem)
	if err != nil {
		return nil, errors.Wrap(err, "search")
	}

	r := &Report{
		Parameters:      req.Parameters,
		Collector:       req.Collector,
		DailyDemandKWh:  daily,
		AnnualDemandKWh: daily * c.DaysPerYear,
		Found:           outcome.Found,
		Evaluated:       outcome.Evaluated,
		Feasible:        outcome.Feasible,
	}
	if !outcome.Found {
		return r, nil
	}

	best := outcome.Best
	res, err := opt.Engine.Run(best.AreaM2, best.VolumeL, req.Table, daily, req.Collector)
	if err != nil {
		return nil, errors.Wrap(err, "re-simulate best")
	}
	sweep, err := opt.Sweep(problem, best.VolumeL)
	if err != nil {
		return nil, errors.Wrap(err, "sensitivity sweep")
	}

	price := req.EnergyPrice
	if price <= 0 {
		price = DefaultEnergyPrice
	}

	r.Best = best
	r.Months = res.Months
	r.AnnualKWh = res.AnnualKWh
	r.Fraction = res.Fraction
	r.Financials = ComputeFinancials(best.Investment, res.AnnualKWh, price)
	r.Sweep = sweep
	return r, nil
}
