package model

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

type CollectorType string

const (
	FlatPlate     CollectorType = "flat-plate"
	EvacuatedTube CollectorType = "evacuated-tube"
)

// CollectorParameters holds the two-coefficient efficiency curve of a collector.
// - Eta0: zero-loss (optical) efficiency, 0..1
// - A1: heat-loss coefficient, > 0
type CollectorParameters struct {
	Type CollectorType `json:"type" yaml:"type"`
	Eta0 float64       `json:"eta0" yaml:"eta0"`
	A1   float64       `json:"a1" yaml:"a1"`
}

var catalogue = map[CollectorType]CollectorParameters{
	FlatPlate:     {Type: FlatPlate, Eta0: 0.75, A1: 3.5},
	EvacuatedTube: {Type: EvacuatedTube, Eta0: 0.85, A1: 2.0},
}

// CollectorTypes lists the supported collector types in display order.
func CollectorTypes() []CollectorType {
	return []CollectorType{FlatPlate, EvacuatedTube}
}

// ParseCollectorType accepts the canonical names plus a few spellings seen in
// user input ("flat_plate", "Evacuated Tube").
func ParseCollectorType(s string) (CollectorType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	ct := CollectorType(norm)
	if _, ok := catalogue[ct]; !ok {
		return "", errors.Wrapf(ErrUnknownCollector, "%q", s)
	}
	return ct, nil
}

// CollectorFor returns the catalogue parameters for a collector type.
func CollectorFor(ct CollectorType) (CollectorParameters, error) {
	p, ok := catalogue[ct]
	if !ok {
		return CollectorParameters{}, errors.Wrapf(ErrUnknownCollector, "%q", ct)
	}
	return p, nil
}

func (p CollectorParameters) Validate() error {
	if p.Eta0 <= 0 || p.Eta0 > 1 {
		return errors.New("collector eta0 must be in (0, 1]")
	}
	if p.A1 <= 0 {
		return errors.New("collector a1 must be > 0")
	}
	return nil
}

// Efficiency returns the instantaneous collector efficiency
//
//	eta = max(0, eta0 - a1*(tm-ta)/g)
//
// Irradiation g <= 0 yields 0, and so does any non-finite intermediate, so the
// result is always a finite number >= 0.
func Efficiency(eta0, a1, tm, ta, g float64) float64 {
	if g <= 0 {
		return 0
	}
	eta := eta0 - a1*(tm-ta)/g
	if math.IsNaN(eta) || math.IsInf(eta, 0) {
		return 0
	}
	return math.Max(0, eta)
}

// MonthlyEnergy is the gross energy collected in one month (kWh) by a field of
// the given surface area, using a fixed day count per month.
func MonthlyEnergy(area, eta, irradiation, daysPerMonth float64) float64 {
	return area * eta * irradiation * daysPerMonth
}
