package models

import "solar-thermal-sizing/internal/model"

// SizingRequest is the body of POST /api/v1/sizing and the common part of the
// other sizing endpoints.
type SizingRequest struct {
	Household HouseholdInput `json:"household"`
	Collector CollectorInput `json:"collector"`
	Economics EconomicsInput `json:"economics"`
	Climate   ClimateInput   `json:"climate"`
}

// HouseholdInput describes hot-water use. Temperatures may be 0 (degC).
type HouseholdInput struct {
	Occupants             int     `json:"occupants" binding:"required,min=1"`
	ConsumptionLPerPerson float64 `json:"consumption_l_per_person" binding:"required,gt=0"`
	UseTempC              float64 `json:"use_temp_c"`
	ColdTempC             float64 `json:"cold_temp_c"`
}

// CollectorInput selects a catalogue collector ("flat-plate", "evacuated-tube")
// and optionally overrides its coefficients.
type CollectorInput struct {
	Type string  `json:"type" binding:"required"`
	Eta0 float64 `json:"eta0,omitempty"`
	A1   float64 `json:"a1,omitempty"`
}

type EconomicsInput struct {
	CostPerM2         float64 `json:"cost_per_m2" binding:"required,gt=0"`
	EnergyPricePerKWh float64 `json:"energy_price_per_kwh,omitempty"` // default: 0.15
}

// ClimateInput names a dataset from the climate directory or carries the 12
// monthly records inline. Records win when both are set.
type ClimateInput struct {
	Dataset string                `json:"dataset,omitempty"`
	Records []model.ClimateRecord `json:"records,omitempty"`
}

// SimulateRequest runs the annual simulator for one configuration.
// Area is capped at 1000 m2 and volume at 100000 L.
type SimulateRequest struct {
	SizingRequest
	AreaM2  float64 `json:"area_m2" binding:"required,gt=0,lte=1000"`
	VolumeL float64 `json:"volume_l" binding:"required,gt=0,lte=100000"`
}

// RankRequest lists the best feasible configurations.
type RankRequest struct {
	SizingRequest
	Limit int `json:"limit,omitempty"` // default: 10
}
