package model

import (
	"fmt"

	"github.com/pkg/errors"
)

// UserParameters describes the household and the economic inputs.
// Units:
// - ConsumptionL: liters per person per day
// - UseTempC, ColdTempC: degC
// - CostPerM2: currency per m2 of collector
type UserParameters struct {
	Occupants    int           `json:"occupants" yaml:"occupants"`
	ConsumptionL float64       `json:"consumption_l_per_person" yaml:"consumption_l_per_person"`
	UseTempC     float64       `json:"use_temp_c" yaml:"use_temp_c"`
	ColdTempC    float64       `json:"cold_temp_c" yaml:"cold_temp_c"`
	Collector    CollectorType `json:"collector_type" yaml:"collector_type"`
	CostPerM2    float64       `json:"cost_per_m2" yaml:"cost_per_m2"`
}

// Validate checks the input ranges. UseTempC <= ColdTempC is allowed: it is a
// degenerate household with non-positive demand, not an input error.
func (u UserParameters) Validate() error {
	if u.Occupants < 1 {
		return errors.Wrap(ErrInvalidParameters, "occupants must be >= 1")
	}
	if u.ConsumptionL <= 0 {
		return errors.Wrap(ErrInvalidParameters, "consumption must be > 0")
	}
	if u.CostPerM2 <= 0 {
		return errors.Wrap(ErrInvalidParameters, "cost per m2 must be > 0")
	}
	if _, err := CollectorFor(u.Collector); err != nil {
		return errors.Wrap(ErrInvalidParameters, err.Error())
	}
	return nil
}

func (u UserParameters) String() string {
	return fmt.Sprintf("%d occupants x %.0f L, %.1f->%.1f degC, %s @ %.2f/m2",
		u.Occupants, u.ConsumptionL, u.ColdTempC, u.UseTempC, u.Collector, u.CostPerM2)
}

// DailyDemand returns the daily hot-water energy need in kWh.
// Zero or negative results are returned as computed.
func DailyDemand(c Constants, occupants int, consumptionL, useTempC, coldTempC float64) float64 {
	mass := float64(occupants) * consumptionL
	return mass * c.SpecificHeat * (useTempC - coldTempC) / c.JoulesPerKWh
}

func (u UserParameters) DailyDemand(c Constants) float64 {
	return DailyDemand(c, u.Occupants, u.ConsumptionL, u.UseTempC, u.ColdTempC)
}
