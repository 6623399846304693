package simulate

import (
	"math"

	"solar-thermal-sizing/internal/model"

	"github.com/pkg/errors"
)

type Engine struct {
	Constants model.Constants
}

func New(c model.Constants) *Engine { return &Engine{Constants: c} }

// Run simulates one year of the configuration over the climate table.
//
// For each month:
//
//	eta  = Efficiency(eta0, a1, Tm, Ta, G)
//	net  = max(0, area*eta*G*days - StorageLoss(volume, Ta))
//
// and the fraction is sum(net) / (dailyDemand * daysPerYear). The table is
// only read.
func (e *Engine) Run(area, volume float64, table model.ClimateTable, dailyDemand float64, collector model.CollectorParameters) (*Result, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if err := collector.Validate(); err != nil {
		return nil, errors.Wrap(err, "collector")
	}

	c := e.Constants
	months := make([]MonthRow, 0, len(table))
	total := 0.0

	for idx, rec := range table {
		eta := model.Efficiency(collector.Eta0, collector.A1, c.MeanFluidTempC, rec.TemperatureC, rec.Irradiation)
		gross := model.MonthlyEnergy(area, eta, rec.Irradiation, c.DaysPerMonth)
		loss := model.StorageLoss(c, volume, rec.TemperatureC)
		net := math.Max(0, gross-loss)
		total += net

		months = append(months, MonthRow{
			Index:         idx,
			Month:         rec.Month,
			Irradiation:   rec.Irradiation,
			AmbientC:      rec.TemperatureC,
			Efficiency:    eta,
			GrossKWh:      gross,
			StorageLoss:   loss,
			NetKWh:        net,
			CumulativeKWh: total,
		})
	}

	annualDemand := dailyDemand * c.DaysPerYear
	return &Result{
		AreaM2:       area,
		VolumeL:      volume,
		Months:       months,
		AnnualKWh:    total,
		AnnualDemand: annualDemand,
		Fraction:     total / annualDemand,
	}, nil
}
