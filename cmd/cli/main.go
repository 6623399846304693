package main

import (
	"fmt"
	"os"
	"path/filepath"

	"solar-thermal-sizing/internal/analysis"
	"solar-thermal-sizing/internal/config"
	"solar-thermal-sizing/internal/data"
	"solar-thermal-sizing/internal/logger"
	"solar-thermal-sizing/internal/model"
	"solar-thermal-sizing/internal/optimize"
	"solar-thermal-sizing/internal/simulate"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// errNoSolution reports that no grid point reached the fraction band. The
// message has already been printed when it is returned.
var errNoSolution = errors.New("no optimal configuration found")

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string) int {
	defer logger.Close()

	if len(args) < 1 {
		usage()
		return 2
	}

	var err error
	switch args[0] {
	case "size":
		err = cmdSize(args[1:])
	case "simulate":
		err = cmdSimulate(args[1:])
	case "rank":
		err = cmdRank(args[1:])
	case "sweep":
		err = cmdSweep(args[1:])
	default:
		usage()
		return 2
	}
	if errors.Is(err, errNoSolution) {
		return 1
	}
	if err != nil {
		logger.L().Error(err)
		return 1
	}
	return 0
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli size --config examples/config.yaml --out results/")
	fmt.Println("  cli simulate --climate examples/climate/sample.csv --area 4 --volume 100")
	fmt.Println("  cli rank --config examples/config.yaml --limit 10")
	fmt.Println("  cli sweep --config examples/config.yaml --volume 200")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - size searches areas 2..19.5 m2 (step 0.5) and volumes 100..750 L (step 50)")
	fmt.Println("    for the best solar fraction per unit of investment within [0.6, 0.9]")
	fmt.Println("  - flags override the config file; run 'cli <command> --help' for the full list")
}

// common holds the flags shared by every subcommand.
type common struct {
	fs *pflag.FlagSet

	configPath  string
	climatePath string
	outDir      string
	logLevel    string

	occupants   int
	consumption float64
	useTemp     float64
	coldTemp    float64
	collector   string
	eta0        float64
	a1          float64
	cost        float64
	price       float64
}

func newCommon(name string) *common {
	c := &common{fs: pflag.NewFlagSet(name, pflag.ExitOnError)}
	fs := c.fs
	fs.StringVarP(&c.configPath, "config", "c", "", "Path to YAML config (defaults are used when empty)")
	fs.StringVar(&c.climatePath, "climate", "", "Climate table (.csv, .json, .yaml); overrides climate_file")
	fs.StringVarP(&c.outDir, "out", "o", "", "Optional: directory for CSV exports")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	fs.IntVarP(&c.occupants, "occupants", "n", 0, "Number of occupants")
	fs.Float64Var(&c.consumption, "consumption", 0, "Hot water per person per day (L)")
	fs.Float64Var(&c.useTemp, "use-temp", 0, "Hot water use temperature (degC)")
	fs.Float64Var(&c.coldTemp, "cold-temp", 0, "Cold water inlet temperature (degC)")
	fs.StringVarP(&c.collector, "collector", "t", "", "Collector type: flat-plate or evacuated-tube")
	fs.Float64Var(&c.eta0, "eta0", 0, "Override collector optical efficiency")
	fs.Float64Var(&c.a1, "a1", 0, "Override collector heat loss coefficient (W/m2K)")
	fs.Float64Var(&c.cost, "cost", 0, "Collector cost per m2")
	fs.Float64Var(&c.price, "price", 0, "Energy price per kWh (financials only)")
	return c
}

// setup parses args, loads the config with flag overrides applied and the
// climate table it points at.
func (c *common) setup(args []string) (*config.Config, model.ClimateTable, error) {
	_ = c.fs.Parse(args)

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, nil, err
	}
	override := config.Config{ClimateFile: c.climatePath, LogLevel: c.logLevel}
	override.Household = config.HouseholdConfig{
		Occupants:             c.occupants,
		ConsumptionLPerPerson: c.consumption,
		UseTempC:              c.useTemp,
		ColdTempC:             c.coldTemp,
	}
	override.Collector = config.CollectorConfig{Type: c.collector, Eta0: c.eta0, A1: c.a1}
	override.Economics = config.EconomicsConfig{CostPerM2: c.cost, EnergyPricePerKWh: c.price}
	cfg.Merge(override)
	// Merge skips zero values; an explicit 0 degC on the command line still counts.
	if c.fs.Changed("use-temp") {
		cfg.Household.UseTempC = c.useTemp
	}
	if c.fs.Changed("cold-temp") {
		cfg.Household.ColdTempC = c.coldTemp
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	if err := logger.SetLogLevelString(cfg.LogLevel); err != nil {
		return nil, nil, err
	}

	if cfg.ClimateFile == "" {
		return nil, nil, errors.New("no climate table: set climate_file in the config or pass --climate")
	}
	table, err := data.LoadClimate(cfg.ClimateFile)
	if err != nil {
		return nil, nil, err
	}
	logger.L().Debugf("climate table %s: %d months", cfg.ClimateFile, len(table))
	return cfg, table, nil
}

// problem builds the optimizer inputs shared by size, rank and sweep.
func problem(cfg *config.Config, table model.ClimateTable) (*optimize.Optimizer, optimize.Problem, error) {
	params, err := cfg.ToUserParameters()
	if err != nil {
		return nil, optimize.Problem{}, err
	}
	col, err := cfg.CollectorParameters()
	if err != nil {
		return nil, optimize.Problem{}, err
	}
	engine := simulate.New(cfg.ModelConstants())
	return optimize.New(engine), optimize.Problem{
		Table:       table,
		DailyDemand: params.DailyDemand(engine.Constants),
		Collector:   col,
		CostPerM2:   params.CostPerM2,
	}, nil
}

func cmdSize(args []string) error {
	c := newCommon("size")
	cfg, table, err := c.setup(args)
	if err != nil {
		return err
	}

	params, err := cfg.ToUserParameters()
	if err != nil {
		return err
	}
	col, err := cfg.CollectorParameters()
	if err != nil {
		return err
	}

	opt := optimize.New(simulate.New(cfg.ModelConstants()))
	report, err := analysis.BuildReport(opt, analysis.Request{
		Parameters:  params,
		Collector:   col,
		Table:       table,
		EnergyPrice: cfg.Economics.EnergyPricePerKWh,
	})
	if err != nil {
		return err
	}

	printReport(report)
	if !report.Found {
		return errNoSolution
	}

	if c.outDir != "" {
		if err := os.MkdirAll(c.outDir, 0o755); err != nil {
			return errors.Wrap(err, "create output directory")
		}
		profilePath := filepath.Join(c.outDir, "profile.csv")
		if err := simulate.WriteProfileCSV(profilePath, report.Months); err != nil {
			return err
		}
		sweepPath := filepath.Join(c.outDir, "sweep.csv")
		if err := optimize.WriteSweepCSV(sweepPath, report.Sweep); err != nil {
			return err
		}
		fmt.Printf("\nWrote %s and %s\n", profilePath, sweepPath)
	}
	return nil
}

func cmdSimulate(args []string) error {
	c := newCommon("simulate")
	area := c.fs.Float64("area", 4, "Collector surface area (m2)")
	volume := c.fs.Float64("volume", 200, "Storage volume (L)")
	cfg, table, err := c.setup(args)
	if err != nil {
		return err
	}
	if *area <= 0 || *volume <= 0 {
		return errors.Wrap(model.ErrInvalidParameters, "--area and --volume must be > 0")
	}

	opt, p, err := problem(cfg, table)
	if err != nil {
		return err
	}
	res, err := opt.Engine.Run(*area, *volume, p.Table, p.DailyDemand, p.Collector)
	if err != nil {
		return err
	}

	fmt.Printf("Area %.1f m2, volume %.0f L, %s\n\n", res.AreaM2, res.VolumeL, p.Collector.Type)
	printMonths(res.Months)
	fmt.Printf("\nAnnual solar yield  %10.1f kWh\n", res.AnnualKWh)
	fmt.Printf("Annual demand       %10.1f kWh\n", res.AnnualDemand)
	fmt.Printf("Solar fraction      %10.3f\n", res.Fraction)
	fmt.Printf("Within [%.2f, %.2f]  %v\n", optimize.FeasibleBand.Min, optimize.FeasibleBand.Max,
		optimize.FeasibleBand.Contains(res.Fraction))

	if c.outDir != "" {
		if err := os.MkdirAll(c.outDir, 0o755); err != nil {
			return errors.Wrap(err, "create output directory")
		}
		path := filepath.Join(c.outDir, "profile.csv")
		if err := simulate.WriteProfileCSV(path, res.Months); err != nil {
			return err
		}
		fmt.Printf("\nWrote %d rows to %s\n", len(res.Months), path)
	}
	return nil
}

func cmdRank(args []string) error {
	c := newCommon("rank")
	limit := c.fs.Int("limit", 10, "Number of configurations to list (0=all)")
	cfg, table, err := c.setup(args)
	if err != nil {
		return err
	}

	opt, p, err := problem(cfg, table)
	if err != nil {
		return err
	}
	ranked, err := opt.Rank(p, *limit)
	if err != nil {
		return err
	}
	if len(ranked) == 0 {
		fmt.Println("No optimal configuration found.")
		return errNoSolution
	}

	fmt.Printf("%-4s %-8s %-8s %-10s %-12s %-12s %-12s\n", "rank", "area", "volume", "fraction", "annual_kwh", "investment", "score")
	for i, r := range ranked {
		fmt.Printf(
			"%-4d %-8.1f %-8.0f %-10.3f %-12.1f %-12.2f %-12.4g\n",
			i+1,
			r.AreaM2,
			r.VolumeL,
			r.Fraction,
			r.AnnualKWh,
			r.Investment,
			r.Score,
		)
	}
	return nil
}

func cmdSweep(args []string) error {
	c := newCommon("sweep")
	volume := c.fs.Float64("volume", 100, "Storage volume held fixed (L)")
	cfg, table, err := c.setup(args)
	if err != nil {
		return err
	}
	if *volume <= 0 {
		return errors.Wrap(model.ErrInvalidParameters, "--volume must be > 0")
	}

	opt, p, err := problem(cfg, table)
	if err != nil {
		return err
	}
	points, err := opt.Sweep(p, *volume)
	if err != nil {
		return err
	}

	fmt.Printf("Volume %.0f L\n\n", *volume)
	printSweep(points)

	if c.outDir != "" {
		if err := os.MkdirAll(c.outDir, 0o755); err != nil {
			return errors.Wrap(err, "create output directory")
		}
		path := filepath.Join(c.outDir, "sweep.csv")
		if err := optimize.WriteSweepCSV(path, points); err != nil {
			return err
		}
		fmt.Printf("\nWrote %d rows to %s\n", len(points), path)
	}
	return nil
}

func printReport(r *analysis.Report) {
	fmt.Printf("Household: %s\n", r.Parameters)
	fmt.Printf("Collector: %s (eta0=%.2f, a1=%.2f)\n", r.Collector.Type, r.Collector.Eta0, r.Collector.A1)
	fmt.Printf("Demand:    %.2f kWh/day, %.0f kWh/year\n", r.DailyDemandKWh, r.AnnualDemandKWh)
	fmt.Printf("Search:    %d configurations, %d within the fraction band\n\n", r.Evaluated, r.Feasible)

	if !r.Found {
		fmt.Println("No optimal configuration found.")
		return
	}

	fmt.Printf("Best configuration\n")
	fmt.Printf("  collector area   %8.1f m2\n", r.Best.AreaM2)
	fmt.Printf("  storage volume   %8.0f L\n", r.Best.VolumeL)
	fmt.Printf("  solar fraction   %8.1f %%\n", r.Fraction*100)
	fmt.Printf("  annual yield     %8.1f kWh\n", r.AnnualKWh)
	fmt.Printf("  investment       %8s\n", r.Financials.Investment.StringFixed(2))
	fmt.Printf("  annual savings   %8s (at %s/kWh)\n", r.Financials.AnnualSavings.StringFixed(2), r.Financials.EnergyPrice)
	if r.Financials.PaybackYears.Valid {
		fmt.Printf("  payback          %8s years\n", r.Financials.PaybackYears.Decimal.StringFixed(1))
	} else {
		fmt.Printf("  payback          %8s\n", "n/a")
	}

	fmt.Println("\nMonthly profile")
	printMonths(r.Months)

	fmt.Printf("\nSensitivity (volume %.0f L)\n", r.Best.VolumeL)
	printSweep(r.Sweep)
}

func printMonths(rows []simulate.MonthRow) {
	fmt.Printf("%-6s %-12s %-8s %-10s %-10s %-10s %-10s\n", "month", "irradiation", "ambient", "eta", "gross", "loss", "net_kwh")
	for _, m := range rows {
		fmt.Printf(
			"%-6s %-12.1f %-8.1f %-10.3f %-10.1f %-10.2f %-10.1f\n",
			m.Month,
			m.Irradiation,
			m.AmbientC,
			m.Efficiency,
			m.GrossKWh,
			m.StorageLoss,
			m.NetKWh,
		)
	}
}

func printSweep(points []optimize.SweepPoint) {
	fmt.Printf("%-8s %-10s %-12s\n", "area", "fraction", "annual_kwh")
	for _, p := range points {
		fmt.Printf("%-8.0f %-10.3f %-12.1f\n", p.AreaM2, p.Fraction, p.AnnualKWh)
	}
}
