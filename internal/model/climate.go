package model

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const MonthsPerYear = 12

// ClimateRecord is one calendar month of climate data.
// - Irradiation: mean solar irradiation, same unit the collector curve expects
// - TemperatureC: mean ambient temperature, degC
type ClimateRecord struct {
	Month        string  `json:"month" yaml:"month"`
	Irradiation  float64 `json:"irradiation" yaml:"irradiation"`
	TemperatureC float64 `json:"temperature" yaml:"temperature"`
}

// climateRecordFields detects keys absent from a JSON or YAML record, which
// would otherwise decode to 0.
type climateRecordFields struct {
	Month        *string  `json:"month" yaml:"month"`
	Irradiation  *float64 `json:"irradiation" yaml:"irradiation"`
	TemperatureC *float64 `json:"temperature" yaml:"temperature"`
}

func (f climateRecordFields) record() (ClimateRecord, error) {
	var missing []string
	if f.Month == nil {
		missing = append(missing, "month")
	}
	if f.Irradiation == nil {
		missing = append(missing, "irradiation")
	}
	if f.TemperatureC == nil {
		missing = append(missing, "temperature")
	}
	if len(missing) > 0 {
		return ClimateRecord{}, errors.Wrapf(ErrInvalidClimateTable, "record missing %s", strings.Join(missing, ", "))
	}
	return ClimateRecord{Month: *f.Month, Irradiation: *f.Irradiation, TemperatureC: *f.TemperatureC}, nil
}

// UnmarshalJSON rejects records without all three fields.
func (r *ClimateRecord) UnmarshalJSON(raw []byte) error {
	var f climateRecordFields
	if err := json.Unmarshal(raw, &f); err != nil {
		return err
	}
	rec, err := f.record()
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// UnmarshalYAML rejects records without all three fields.
func (r *ClimateRecord) UnmarshalYAML(node *yaml.Node) error {
	var f climateRecordFields
	if err := node.Decode(&f); err != nil {
		return err
	}
	rec, err := f.record()
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// ClimateTable is one year of records in calendar order. It is treated as
// read-only by every consumer.
type ClimateTable []ClimateRecord

func (t ClimateTable) Validate() error {
	if len(t) != MonthsPerYear {
		return errors.Wrapf(ErrInvalidClimateTable, "expected %d rows, got %d", MonthsPerYear, len(t))
	}
	for i, r := range t {
		if !finite(r.Irradiation) || !finite(r.TemperatureC) {
			return errors.Wrapf(ErrInvalidClimateTable, "row %d (%s): non-finite value", i+1, r.Month)
		}
	}
	return nil
}

// Months returns the month labels in table order.
func (t ClimateTable) Months() []string {
	out := make([]string, len(t))
	for i, r := range t {
		out[i] = r.Month
	}
	return out
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
