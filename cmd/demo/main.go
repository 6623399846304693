package main

import (
	"fmt"
	"os"

	"solar-thermal-sizing/internal/analysis"
	"solar-thermal-sizing/internal/config"
	"solar-thermal-sizing/internal/data"
	"solar-thermal-sizing/internal/logger"
	"solar-thermal-sizing/internal/model"
	"solar-thermal-sizing/internal/optimize"
	"solar-thermal-sizing/internal/simulate"

	"github.com/spf13/pflag"
)

// Demo:
// - Load a climate table and a household (config optional)
// - Walk one month through demand, efficiency, gross energy and storage loss
// - Size the installation with every catalogue collector side by side
func main() {
	defer logger.Close()

	climatePath := pflag.StringP("climate", "C", "examples/climate/sample.csv", "Climate table (.csv, .json, .yaml)")
	cfgPath := pflag.StringP("config", "c", "", "Path to YAML config (optional)")
	month := pflag.IntP("month", "m", 1, "Month (1-12) to break down")
	area := pflag.Float64("area", 4, "Collector area for the monthly breakdown (m2)")
	volume := pflag.Float64("volume", 200, "Storage volume for the monthly breakdown (L)")
	pflag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.L().Fatal(err)
	}
	table, err := data.LoadClimate(*climatePath)
	if err != nil {
		logger.L().Fatal(err)
	}
	if *month < 1 || *month > model.MonthsPerYear {
		logger.L().Fatalf("--month must be in 1..%d", model.MonthsPerYear)
	}

	params, err := cfg.ToUserParameters()
	if err != nil {
		logger.L().Fatal(err)
	}
	col, err := cfg.CollectorParameters()
	if err != nil {
		logger.L().Fatal(err)
	}
	c := cfg.ModelConstants()
	daily := params.DailyDemand(c)

	rec := table[*month-1]
	eta := model.Efficiency(col.Eta0, col.A1, c.MeanFluidTempC, rec.TemperatureC, rec.Irradiation)
	gross := model.MonthlyEnergy(*area, eta, rec.Irradiation, c.DaysPerMonth)
	loss := model.StorageLoss(c, *volume, rec.TemperatureC)

	fmt.Printf("Household: %s\n", params)
	fmt.Printf("Daily demand: %.3f kWh (annual %.1f kWh)\n\n", daily, daily*c.DaysPerYear)
	fmt.Printf("%s with %.1f m2 %s and %.0f L storage:\n", rec.Month, *area, col.Type, *volume)
	fmt.Printf("  irradiation %.1f, ambient %.1f degC\n", rec.Irradiation, rec.TemperatureC)
	fmt.Printf("  efficiency  %.4f  (eta0=%.2f a1=%.2f Tm=%.0f)\n", eta, col.Eta0, col.A1, c.MeanFluidTempC)
	fmt.Printf("  gross       %.2f kWh\n", gross)
	fmt.Printf("  loss        %.2f kWh\n", loss)
	fmt.Printf("  net         %.2f kWh\n\n", max(0, gross-loss))

	opt := optimize.New(simulate.New(c))
	fmt.Printf("%-16s %-8s %-8s %-10s %-12s %-10s %-10s\n", "collector", "area", "volume", "fraction", "annual_kwh", "invest", "payback")
	for _, ct := range model.CollectorTypes() {
		p, err := model.CollectorFor(ct)
		if err != nil {
			logger.L().Fatal(err)
		}
		up := params
		up.Collector = ct
		report, err := analysis.BuildReport(opt, analysis.Request{
			Parameters:  up,
			Collector:   p,
			Table:       table,
			EnergyPrice: cfg.Economics.EnergyPricePerKWh,
		})
		if err != nil {
			logger.L().Fatal(err)
		}
		if !report.Found {
			fmt.Printf("%-16s no optimal configuration found (%d evaluated)\n", ct, report.Evaluated)
			continue
		}
		payback := "n/a"
		if report.Financials.PaybackYears.Valid {
			payback = report.Financials.PaybackYears.Decimal.StringFixed(1)
		}
		fmt.Printf("%-16s %-8.1f %-8.0f %-10.3f %-12.1f %-10s %-10s\n",
			ct, report.Best.AreaM2, report.Best.VolumeL, report.Fraction, report.AnnualKWh,
			report.Financials.Investment.StringFixed(2), payback)
	}

	if len(os.Args) == 1 {
		fmt.Println("\n(run with --help to change the climate, household or month)")
	}
}
