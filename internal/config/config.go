// Package config binds the YAML configuration of the commands: weather
// input, model chain options, turbines and farms, logging and server
// settings. Validation is eager; a config that loads is runnable.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wind_simulator/internal/curve"
	"wind_simulator/internal/modelchain"
	"wind_simulator/internal/turbine"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Weather WeatherConfig `yaml:"weather"`
	Chain   ChainConfig   `yaml:"chain"`

	Turbines []TurbineConfig `yaml:"turbines"`
	Farms    []FarmYAML      `yaml:"farms"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// Speed is the initial replay speed multiplier.
	Speed float64 `yaml:"speed"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type WeatherConfig struct {
	// Path of the weather CSV (two-row quantity/height header).
	Path string `yaml:"path"`
}

// ChainConfig mirrors modelchain.Options plus the farm-level stages.
type ChainConfig struct {
	WindSpeedModel    string  `yaml:"wind_speed_model"`
	TemperatureModel  string  `yaml:"temperature_model"`
	DensityModel      string  `yaml:"density_model"`
	PowerOutputModel  string  `yaml:"power_output_model"`
	DensityCorrection bool    `yaml:"density_correction"`
	ObstacleHeight    float64 `yaml:"obstacle_height"`
	HellmanExponent   float64 `yaml:"hellman_exponent"`

	WakeLossesModel string  `yaml:"wake_losses_model"`
	Smoothing       bool    `yaml:"smoothing"`
	SmoothingOrder  string  `yaml:"smoothing_order"`
	BlockWidth      float64 `yaml:"block_width"`
	StdDevMethod    string  `yaml:"std_dev_method"`
}

type TurbineConfig struct {
	Name          string  `yaml:"name"`
	HubHeight     float64 `yaml:"hub_height"`
	NominalPower  float64 `yaml:"nominal_power"`
	RotorDiameter float64 `yaml:"rotor_diameter"`

	PowerCurve            []CurvePoint `yaml:"power_curve"`
	PowerCoefficientCurve []CurvePoint `yaml:"power_coefficient_curve"`
}

type CurvePoint struct {
	WindSpeed float64 `yaml:"wind_speed"`
	Value     float64 `yaml:"value"`
}

type FarmYAML struct {
	Name            string       `yaml:"name"`
	Efficiency      float64      `yaml:"efficiency"`
	EfficiencyCurve []CurvePoint `yaml:"efficiency_curve"`
	Fleet           []FleetYAML  `yaml:"fleet"`
}

type FleetYAML struct {
	Turbine string `yaml:"turbine"` // name of a configured turbine
	Count   int    `yaml:"count"`
}

// Load reads and validates a YAML config file. Environment overrides
// (WINDSIM_ADDR, LOG_LEVEL) are applied after parsing.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Speed == 0 {
		c.Server.Speed = 3600
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("WINDSIM_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate builds every configured object once to surface malformed
// input at load time.
func (c *Config) Validate() error {
	if c.Weather.Path == "" {
		return fmt.Errorf("weather.path is required")
	}
	if len(c.Turbines) == 0 {
		return fmt.Errorf("at least one turbine must be configured")
	}
	turbines, err := c.BuildTurbines()
	if err != nil {
		return err
	}
	if _, err := c.BuildFarms(turbines); err != nil {
		return err
	}
	if err := c.ChainOptions().Validate(); err != nil {
		return err
	}
	return nil
}

// ChainOptions maps the chain section onto modelchain options, filling
// defaults for unset fields.
func (c *Config) ChainOptions() modelchain.Options {
	opts := modelchain.DefaultOptions()
	if c.Chain.WindSpeedModel != "" {
		opts.WindSpeedModel = c.Chain.WindSpeedModel
	}
	if c.Chain.TemperatureModel != "" {
		opts.TemperatureModel = c.Chain.TemperatureModel
	}
	if c.Chain.DensityModel != "" {
		opts.DensityModel = c.Chain.DensityModel
	}
	if c.Chain.PowerOutputModel != "" {
		opts.PowerOutputModel = c.Chain.PowerOutputModel
	}
	opts.DensityCorrection = c.Chain.DensityCorrection
	opts.ObstacleHeight = c.Chain.ObstacleHeight
	opts.HellmanExponent = c.Chain.HellmanExponent
	return opts
}

// FarmChainOptions maps the chain section onto farm chain options.
func (c *Config) FarmChainOptions() modelchain.FarmOptions {
	return modelchain.FarmOptions{
		Options:         c.ChainOptions(),
		WakeLossesModel: c.Chain.WakeLossesModel,
		Smoothing:       c.Chain.Smoothing,
		SmoothingOrder:  c.Chain.SmoothingOrder,
		BlockWidth:      c.Chain.BlockWidth,
		StdDevMethod:    c.Chain.StdDevMethod,
	}
}

// BuildTurbines constructs the configured turbines, keyed by name.
func (c *Config) BuildTurbines() (map[string]*turbine.Turbine, error) {
	turbines := make(map[string]*turbine.Turbine, len(c.Turbines))
	for _, tc := range c.Turbines {
		if tc.Name == "" {
			return nil, fmt.Errorf("turbine without a name")
		}
		if _, dup := turbines[tc.Name]; dup {
			return nil, fmt.Errorf("duplicate turbine name %q", tc.Name)
		}
		t, err := turbine.New(turbine.Config{
			Name:                  tc.Name,
			HubHeight:             tc.HubHeight,
			NominalPower:          tc.NominalPower,
			RotorDiameter:         tc.RotorDiameter,
			PowerCurve:            toCurvePoints(tc.PowerCurve),
			PowerCoefficientCurve: toCurvePoints(tc.PowerCoefficientCurve),
		})
		if err != nil {
			return nil, fmt.Errorf("turbine %q: %w", tc.Name, err)
		}
		turbines[tc.Name] = t
	}
	return turbines, nil
}

// BuildFarms constructs the configured farms from already-built
// turbines.
func (c *Config) BuildFarms(turbines map[string]*turbine.Turbine) ([]*turbine.Farm, error) {
	farms := make([]*turbine.Farm, 0, len(c.Farms))
	for _, fy := range c.Farms {
		fleet := make([]turbine.FleetEntry, 0, len(fy.Fleet))
		for _, entry := range fy.Fleet {
			t, ok := turbines[entry.Turbine]
			if !ok {
				return nil, fmt.Errorf("farm %q references unknown turbine %q", fy.Name, entry.Turbine)
			}
			fleet = append(fleet, turbine.FleetEntry{Turbine: t, Count: entry.Count})
		}
		f, err := turbine.NewFarm(turbine.FarmConfig{
			Name:            fy.Name,
			Fleet:           fleet,
			Efficiency:      fy.Efficiency,
			EfficiencyCurve: toCurvePoints(fy.EfficiencyCurve),
		})
		if err != nil {
			return nil, err
		}
		farms = append(farms, f)
	}
	return farms, nil
}

func toCurvePoints(points []CurvePoint) []curve.Point {
	if points == nil {
		return nil
	}
	out := make([]curve.Point, len(points))
	for i, p := range points {
		out[i] = curve.Point{WindSpeed: p.WindSpeed, Value: p.Value}
	}
	return out
}
