package models

import (
	"solar-thermal-sizing/internal/analysis"
	"solar-thermal-sizing/internal/optimize"
)

const (
	StatusCompleted  = "completed"
	StatusNoSolution = "no_solution"
)

// SizingResponse represents the response from a sizing run.
// Best, Profile, Financials and Sweep are only set when Status is completed.
type SizingResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`

	Demand DemandSummary `json:"demand"`
	Search SearchSummary `json:"search"`

	Best       *optimize.Candidate   `json:"best,omitempty"`
	Profile    []MonthEnergy         `json:"profile,omitempty"`
	AnnualKWh  float64               `json:"annual_kwh,omitempty"`
	Fraction   float64               `json:"fraction,omitempty"`
	Financials *analysis.Financials  `json:"financials,omitempty"`
	Sweep      []optimize.SweepPoint `json:"sweep,omitempty"`
}

// DemandSummary contains the household hot-water demand.
type DemandSummary struct {
	DailyKWh  float64 `json:"daily_kwh"`
	AnnualKWh float64 `json:"annual_kwh"`
}

// SearchSummary contains grid-search counters.
type SearchSummary struct {
	Evaluated int     `json:"evaluated"`
	Feasible  int     `json:"feasible"`
	BandMin   float64 `json:"band_min"`
	BandMax   float64 `json:"band_max"`
}

// MonthEnergy represents one month of the energy profile.
type MonthEnergy struct {
	Month       string  `json:"month"`
	Irradiation float64 `json:"irradiation"`
	AmbientC    float64 `json:"ambient_c"`
	Efficiency  float64 `json:"efficiency"`
	GrossKWh    float64 `json:"gross_kwh"`
	LossKWh     float64 `json:"loss_kwh"`
	NetKWh      float64 `json:"net_kwh"`
}

// SimulateResponse represents one simulated configuration. Fraction is null
// when the demand is zero and the ratio is undefined.
type SimulateResponse struct {
	AreaM2          float64       `json:"area_m2"`
	VolumeL         float64       `json:"volume_l"`
	Profile         []MonthEnergy `json:"profile"`
	AnnualKWh       float64       `json:"annual_kwh"`
	AnnualDemandKWh float64       `json:"annual_demand_kwh"`
	Fraction        *float64      `json:"fraction"`
	Feasible        bool          `json:"feasible"`
}

// RankResponse represents the ranked feasible configurations.
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked configuration.
type Ranking struct {
	Rank int `json:"rank"`
	optimize.Candidate
}

// CollectorInfo represents a catalogue collector.
type CollectorInfo struct {
	Type string  `json:"type"`
	Eta0 float64 `json:"eta0"`
	A1   float64 `json:"a1"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
