package model

// Constants groups the physical and model constants used by the demand,
// collector and storage models. Defaults() returns the values the sizing tool
// ships with; tests and configs may override any of them.
//
// Units:
// - SpecificHeat: J/(kg.K)
// - Density: kg/m3 (informational, consumption is already in liters ~ kg)
// - JoulesPerKWh: J per kWh
// - MeanFluidTempC, StorageTempC: degC
// - StorageLossCoeff: dimensionless U applied per liter and per kelvin
// - LossScale: kWh per (U.L.K) and month
type Constants struct {
	SpecificHeat     float64 `yaml:"specific_heat" json:"specific_heat"`
	Density          float64 `yaml:"density" json:"density"`
	JoulesPerKWh     float64 `yaml:"joules_per_kwh" json:"joules_per_kwh"`
	MeanFluidTempC   float64 `yaml:"mean_fluid_temp_c" json:"mean_fluid_temp_c"`
	StorageTempC     float64 `yaml:"storage_temp_c" json:"storage_temp_c"`
	StorageLossCoeff float64 `yaml:"storage_loss_coeff" json:"storage_loss_coeff"`
	LossScale        float64 `yaml:"loss_scale" json:"loss_scale"`
	DaysPerMonth     float64 `yaml:"days_per_month" json:"days_per_month"`
	DaysPerYear      float64 `yaml:"days_per_year" json:"days_per_year"`
}

func Defaults() Constants {
	return Constants{
		SpecificHeat:     4180,
		Density:          1000,
		JoulesPerKWh:     3.6e6,
		MeanFluidTempC:   50,
		StorageTempC:     60,
		StorageLossCoeff: 0.8,
		LossScale:        0.001,
		DaysPerMonth:     30,
		DaysPerYear:      365,
	}
}

// Merge overlays non-zero fields from override onto c.
func (c Constants) Merge(override Constants) Constants {
	out := c
	if override.SpecificHeat != 0 {
		out.SpecificHeat = override.SpecificHeat
	}
	if override.Density != 0 {
		out.Density = override.Density
	}
	if override.JoulesPerKWh != 0 {
		out.JoulesPerKWh = override.JoulesPerKWh
	}
	if override.MeanFluidTempC != 0 {
		out.MeanFluidTempC = override.MeanFluidTempC
	}
	if override.StorageTempC != 0 {
		out.StorageTempC = override.StorageTempC
	}
	if override.StorageLossCoeff != 0 {
		out.StorageLossCoeff = override.StorageLossCoeff
	}
	if override.LossScale != 0 {
		out.LossScale = override.LossScale
	}
	if override.DaysPerMonth != 0 {
		out.DaysPerMonth = override.DaysPerMonth
	}
	if override.DaysPerYear != 0 {
		out.DaysPerYear = override.DaysPerYear
	}
	return out
}
