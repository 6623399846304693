package config

import (
	"os"
	"path/filepath"
	"testing"

	"solar-thermal-sizing/internal/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	p, err := c.ToUserParameters()
	require.NoError(t, err)
	assert.Equal(t, model.UserParameters{
		Occupants: 4, ConsumptionL: 50, UseTempC: 55, ColdTempC: 18,
		Collector: model.FlatPlate, CostPerM2: 450,
	}, p)
	assert.Equal(t, model.Defaults(), c.ModelConstants())
}

func TestLoad_ExampleConfig(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "examples", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("..", "..", "examples", "climate", "sample.csv"), c.ClimateFile)
	assert.Equal(t, 0.15, c.Economics.EnergyPricePerKWh)
}

func TestLoad_PartialFileFilledAndResolved(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "climate.csv", "x")
	path := write(t, dir, "cfg.yaml", `
household:
  occupants: 6
collector:
  type: evacuated_tube
  a1: 1.8
climate_file: climate.csv
constants:
  storage_temp_c: 65
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, c.Household.Occupants)
	assert.Equal(t, 50.0, c.Household.ConsumptionLPerPerson)
	assert.Equal(t, 55.0, c.Household.UseTempC)
	assert.Equal(t, filepath.Join(dir, "climate.csv"), c.ClimateFile)

	col, err := c.CollectorParameters()
	require.NoError(t, err)
	assert.Equal(t, model.EvacuatedTube, col.Type)
	assert.Equal(t, 0.85, col.Eta0)
	assert.Equal(t, 1.8, col.A1)

	k := c.ModelConstants()
	assert.Equal(t, 65.0, k.StorageTempC)
	assert.Equal(t, 50.0, k.MeanFluidTempC)
}

func TestLoad_ZeroColdInletKept(t *testing.T) {
	path := write(t, t.TempDir(), "cfg.yaml", "household:\n  use_temp_c: 50\n  cold_temp_c: 0\n")
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50.0, c.Household.UseTempC)
	assert.Equal(t, 0.0, c.Household.ColdTempC)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"collector": "collector:\n  type: unglazed\n",
		"eta0":      "collector:\n  type: flat-plate\n  eta0: 1.4\n",
		"price":     "economics:\n  energy_price_per_kwh: -1\n",
		"occupants": "household:\n  occupants: -2\n",
	}
	for name, body := range tests {
		_, err := Load(write(t, dir, name+".yaml", body))
		assert.True(t, errors.Is(err, ErrInvalidConfig), "%s: %v", name, err)
	}

	_, err := Load(write(t, dir, "broken.yaml", "household: [unclosed"))
	assert.Error(t, err)
	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	c := Default()
	c.Merge(Config{
		Household: HouseholdConfig{Occupants: 2, ColdTempC: 12},
		Collector: CollectorConfig{Type: "evacuated-tube"},
		Economics: EconomicsConfig{CostPerM2: 600},
	})
	assert.Equal(t, 2, c.Household.Occupants)
	assert.Equal(t, 50.0, c.Household.ConsumptionLPerPerson)
	assert.Equal(t, 12.0, c.Household.ColdTempC)
	assert.Equal(t, "evacuated-tube", c.Collector.Type)
	assert.Equal(t, 600.0, c.Economics.CostPerM2)
	assert.Equal(t, 0.15, c.Economics.EnergyPricePerKWh)
	require.NoError(t, c.Validate())
}
