// Package config loads and saves run configuration as YAML.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ristakaen/PlasmaTransition/internal/dynamics"
)

const (
	DefaultAlpha  = 1.0
	DefaultNu     = 2.0
	DefaultMu     = 2.0
	DefaultSource = 2.0
)

type Config struct {
	Grid        GridConfig        `yaml:"grid"`
	Equilibrium EquilibriumConfig `yaml:"equilibrium"`
	Params      ParamsConfig      `yaml:"params"`
	Init        InitConfig        `yaml:"init"`
	Sweep       SweepConfig       `yaml:"sweep"`
	Strict      bool              `yaml:"strict"`
}

type GridConfig struct {
	Lower  float64 `yaml:"lower"`
	Upper  float64 `yaml:"upper"`
	Points int     `yaml:"points"`
}

type EquilibriumConfig struct {
	Window    int     `yaml:"window"`
	Tolerance float64 `yaml:"tolerance"`
	Fallback  float64 `yaml:"fallback"`
}

type ParamsConfig struct {
	Alpha float64 `yaml:"alpha"`
	Nu    float64 `yaml:"nu"`
	Mu    float64 `yaml:"mu"`
	S     float64 `yaml:"s"`
}

// InitConfig fixes the initial state. With Auto set the model derives its
// default seed from the current parameters and N0/E0/V0 are ignored.
type InitConfig struct {
	Auto bool    `yaml:"auto"`
	N0   float64 `yaml:"n0"`
	E0   float64 `yaml:"e0"`
	V0   float64 `yaml:"v0"`
}

type SweepConfig struct {
	SValues []float64 `yaml:"s_values"`
}

func DefaultConfig() *Config {
	run := dynamics.DefaultConfig()
	return &Config{
		Grid: GridConfig{
			Lower:  run.Lower,
			Upper:  run.Upper,
			Points: run.Points,
		},
		Equilibrium: EquilibriumConfig{
			Tolerance: run.Tolerance,
			Fallback:  run.Fallback,
		},
		Params: ParamsConfig{
			Alpha: DefaultAlpha,
			Nu:    DefaultNu,
			Mu:    DefaultMu,
			S:     DefaultSource,
		},
		Init: InitConfig{Auto: true},
		Sweep: SweepConfig{
			SValues: []float64{0.5, 1.0, 1.5, 2.0, 2.5, 3.0, 3.5, 4.0, 4.5, 5.0},
		},
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

// RunConfig translates the file representation into the driver's config.
func (c *Config) RunConfig() dynamics.Config {
	return dynamics.Config{
		Lower:     c.Grid.Lower,
		Upper:     c.Grid.Upper,
		Points:    c.Grid.Points,
		Window:    c.Equilibrium.Window,
		Tolerance: c.Equilibrium.Tolerance,
		Fallback:  c.Equilibrium.Fallback,
		Strict:    c.Strict,
	}
}
