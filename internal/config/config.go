// Package config loads and saves YAML scenario files for the CLI.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mseri/owl-ode/ode"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
)

type Config struct {
	Model     string    `yaml:"model"`
	Stepper   string    `yaml:"stepper"`
	T0        float64   `yaml:"t0"`
	Dt        float64   `yaml:"dt"`
	Duration  float64   `yaml:"duration"`
	Tolerance float64   `yaml:"tolerance"`
	MinDt     float64   `yaml:"min_dt"`
	GrowthCap float64   `yaml:"growth_cap"`
	ShrinkCap float64   `yaml:"shrink_cap"`
	InitState []float64 `yaml:"init_state"`
	Label     string    `yaml:"label"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:    "pendulum",
		Stepper:  "rk4",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// TimeSpec builds the fixed-horizon specification of the scenario.
func (c *Config) TimeSpec() ode.FixedHorizon {
	return ode.FixedHorizon{T0: c.T0, Duration: c.Duration, Dt: c.Dt}
}

// Options builds the driver configuration; zero fields fall back to the
// library defaults.
func (c *Config) Options() ode.Config {
	return ode.Config{
		Tolerance: c.Tolerance,
		MinDt:     c.MinDt,
		GrowthCap: c.GrowthCap,
		ShrinkCap: c.ShrinkCap,
	}
}
