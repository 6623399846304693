package config

import (
	"os"
	"path/filepath"

	"solar-thermal-sizing/internal/model"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the on-disk configuration shape (YAML).
type Config struct {
	LogLevel string `yaml:"log_level"`

	Household HouseholdConfig `yaml:"household"`
	Collector CollectorConfig `yaml:"collector"`
	Economics EconomicsConfig `yaml:"economics"`

	// ClimateFile is resolved relative to the config file directory when it
	// is not absolute and exists there.
	ClimateFile string `yaml:"climate_file"`

	// Constants overrides individual physical/model constants; zero fields
	// keep the defaults.
	Constants model.Constants `yaml:"constants"`
}

type HouseholdConfig struct {
	Occupants             int     `yaml:"occupants"`
	ConsumptionLPerPerson float64 `yaml:"consumption_l_per_person"`
	UseTempC              float64 `yaml:"use_temp_c"`
	ColdTempC             float64 `yaml:"cold_temp_c"`
}

// CollectorConfig selects a catalogue collector. Eta0/A1 override the
// catalogue coefficients when non-zero.
type CollectorConfig struct {
	Type string  `yaml:"type"`
	Eta0 float64 `yaml:"eta0,omitempty"`
	A1   float64 `yaml:"a1,omitempty"`
}

type EconomicsConfig struct {
	CostPerM2         float64 `yaml:"cost_per_m2"`
	EnergyPricePerKWh float64 `yaml:"energy_price_per_kwh"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Household: HouseholdConfig{
			Occupants:             4,
			ConsumptionLPerPerson: 50,
			UseTempC:              55,
			ColdTempC:             18,
		},
		Collector: CollectorConfig{Type: string(model.FlatPlate)},
		Economics: EconomicsConfig{
			CostPerM2:         450,
			EnergyPricePerKWh: 0.15,
		},
	}
}

// Load reads path (if non-empty), fills defaults for missing sections and
// validates the result.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		loaded, err := LoadUnchecked(path)
		if err != nil {
			return nil, err
		}
		c = loaded
		c.FillDefaults()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the config file and resolves the climate file path, but
// does not validate it. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if c.ClimateFile != "" && !filepath.IsAbs(c.ClimateFile) {
		// Prefer the config file directory, fall back to cwd.
		cand := filepath.Join(filepath.Dir(path), c.ClimateFile)
		if _, err := os.Stat(cand); err == nil {
			c.ClimateFile = cand
		}
	}
	return &c, nil
}

// FillDefaults sets defaults for every zero field except the temperatures,
// which are only defaulted together (a 0 degC cold inlet is legitimate).
func (c *Config) FillDefaults() {
	d := Default()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Household.Occupants == 0 {
		c.Household.Occupants = d.Household.Occupants
	}
	if c.Household.ConsumptionLPerPerson == 0 {
		c.Household.ConsumptionLPerPerson = d.Household.ConsumptionLPerPerson
	}
	if c.Household.UseTempC == 0 && c.Household.ColdTempC == 0 {
		c.Household.UseTempC = d.Household.UseTempC
		c.Household.ColdTempC = d.Household.ColdTempC
	}
	if c.Collector.Type == "" {
		c.Collector.Type = d.Collector.Type
	}
	if c.Economics.CostPerM2 == 0 {
		c.Economics.CostPerM2 = d.Economics.CostPerM2
	}
	if c.Economics.EnergyPricePerKWh == 0 {
		c.Economics.EnergyPricePerKWh = d.Economics.EnergyPricePerKWh
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.Wrap(ErrInvalidConfig, "config is nil")
	}
	params, err := c.ToUserParameters()
	if err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if err := params.Validate(); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	col, err := c.CollectorParameters()
	if err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if err := col.Validate(); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if c.Economics.EnergyPricePerKWh < 0 {
		return errors.Wrap(ErrInvalidConfig, "economics.energy_price_per_kwh must be >= 0")
	}
	return nil
}

func (c *Config) ToUserParameters() (model.UserParameters, error) {
	ct, err := model.ParseCollectorType(c.Collector.Type)
	if err != nil {
		return model.UserParameters{}, err
	}
	return model.UserParameters{
		Occupants:    c.Household.Occupants,
		ConsumptionL: c.Household.ConsumptionLPerPerson,
		UseTempC:     c.Household.UseTempC,
		ColdTempC:    c.Household.ColdTempC,
		Collector:    ct,
		CostPerM2:    c.Economics.CostPerM2,
	}, nil
}

// CollectorParameters returns the catalogue collector with any configured
// coefficient overrides applied.
func (c *Config) CollectorParameters() (model.CollectorParameters, error) {
	ct, err := model.ParseCollectorType(c.Collector.Type)
	if err != nil {
		return model.CollectorParameters{}, err
	}
	p, err := model.CollectorFor(ct)
	if err != nil {
		return model.CollectorParameters{}, err
	}
	if c.Collector.Eta0 != 0 {
		p.Eta0 = c.Collector.Eta0
	}
	if c.Collector.A1 != 0 {
		p.A1 = c.Collector.A1
	}
	return p, nil
}

func (c *Config) ModelConstants() model.Constants {
	return model.Defaults().Merge(c.Constants)
}

// MergeHousehold overlays non-zero fields from override onto base.
// This is used to apply CLI flags and API request fields on top of a file.
func MergeHousehold(base, override HouseholdConfig) HouseholdConfig {
	out := base
	if override.Occupants != 0 {
		out.Occupants = override.Occupants
	}
	if override.ConsumptionLPerPerson != 0 {
		out.ConsumptionLPerPerson = override.ConsumptionLPerPerson
	}
	// Note: 0 degC cannot be set through an override; use the config file.
	if override.UseTempC != 0 {
		out.UseTempC = override.UseTempC
	}
	if override.ColdTempC != 0 {
		out.ColdTempC = override.ColdTempC
	}
	return out
}

// Merge applies MergeHousehold plus the collector, economics and climate
// overrides.
func (c *Config) Merge(override Config) {
	c.Household = MergeHousehold(c.Household, override.Household)
	if override.Collector.Type != "" {
		c.Collector.Type = override.Collector.Type
	}
	if override.Collector.Eta0 != 0 {
		c.Collector.Eta0 = override.Collector.Eta0
	}
	if override.Collector.A1 != 0 {
		c.Collector.A1 = override.Collector.A1
	}
	if override.Economics.CostPerM2 != 0 {
		c.Economics.CostPerM2 = override.Economics.CostPerM2
	}
	if override.Economics.EnergyPricePerKWh != 0 {
		c.Economics.EnergyPricePerKWh = override.Economics.EnergyPricePerKWh
	}
	if override.ClimateFile != "" {
		c.ClimateFile = override.ClimateFile
	}
	if override.LogLevel != "" {
		c.LogLevel = override.LogLevel
	}
	c.Constants = c.Constants.Merge(override.Constants)
}
