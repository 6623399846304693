package analysis

import "github.com/shopspring/decimal"

// DefaultEnergyPrice is the value of one kWh of displaced backup heating.
const DefaultEnergyPrice = 0.15

// Financials summarizes the economics of a configuration.
// - Investment: area * cost per m2, rounded to cents
// - AnnualSavings: annual solar yield * energy price, rounded to cents
// - PaybackYears: Investment / AnnualSavings, invalid (null) when savings <= 0
type Financials struct {
	Investment    decimal.Decimal     `json:"investment"`
	AnnualSavings decimal.Decimal     `json:"annual_savings"`
	EnergyPrice   decimal.Decimal     `json:"energy_price_per_kwh"`
	PaybackYears  decimal.NullDecimal `json:"payback_years"`
}

func ComputeFinancials(investment, annualKWh, energyPrice float64) Financials {
	inv := decimal.NewFromFloat(investment)
	price := decimal.NewFromFloat(energyPrice)
	savings := decimal.NewFromFloat(annualKWh).Mul(price)

	f := Financials{
		Investment:    inv.Round(2),
		AnnualSavings: savings.Round(2),
		EnergyPrice:   price,
	}
	if savings.IsPositive() {
		f.PaybackYears = decimal.NewNullDecimal(inv.DivRound(savings, 1))
	}
	return f
}
