// Package config loads the simulated annealing driver's parameters from a
// TOML file (§4.9, §6 "SA driver configuration") with the BurntSushi/toml
// library.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/floorkit/hbstar/pkg/hberrors"
)

// Weights is the normalized perturbation probability vector (§6): rotate,
// move, swap, changeRepresentative, convertSymmetryType.
type Weights struct {
	Rotate          float64 `toml:"rotate"`
	Move            float64 `toml:"move"`
	Swap            float64 `toml:"swap"`
	ChangeRep       float64 `toml:"change_representative"`
	ConvertSymmetry float64 `toml:"convert_symmetry"`
}

// CostWeights blends area and wirelength in the annealing cost function.
type CostWeights struct {
	AreaRatio float64 `toml:"area_ratio"`
}

// Config is the SA driver's tunable parameter set.
type Config struct {
	InitialTemperature float64     `toml:"initial_temperature"`
	FinalTemperature   float64     `toml:"final_temperature"`
	CoolingRate        float64     `toml:"cooling_rate"`
	IterationsPerTemp  int         `toml:"iterations_per_temperature"`
	NoImprovementLimit int         `toml:"no_improvement_limit"`
	Perturbations      Weights     `toml:"perturbations"`
	Cost               CostWeights `toml:"cost"`
	Seed               uint64      `toml:"seed"`
}

// Default returns a Config with reasonable out-of-the-box values.
func Default() Config {
	return Config{
		InitialTemperature: 1000.0,
		FinalTemperature:   0.1,
		CoolingRate:        0.95,
		IterationsPerTemp:  100,
		NoImprovementLimit: 500,
		Perturbations: Weights{
			Rotate: 0.2, Move: 0.3, Swap: 0.3, ChangeRep: 0.1, ConvertSymmetry: 0.1,
		},
		Cost: CostWeights{AreaRatio: 0.7},
		Seed: 1,
	}
}

// Load reads and parses a TOML config file at path, starting from
// Default and overriding only the fields present in the file.
//
// Returns an *hberrors.Error with ErrCodeInvalidConfig on a read or parse
// failure.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, hberrors.Wrap(hberrors.ErrCodeInvalidConfig, err, "reading config %q", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, hberrors.Wrap(hberrors.ErrCodeInvalidConfig, err, "parsing config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks parameter ranges and normalizes the perturbation
// probability vector to sum to 1, per §6.
func (c *Config) Validate() error {
	if c.Cost.AreaRatio < 0 || c.Cost.AreaRatio > 1 {
		return hberrors.New(hberrors.ErrCodeInvalidConfig, "cost.area_ratio must be in [0,1], got %f", c.Cost.AreaRatio)
	}
	if c.CoolingRate <= 0 || c.CoolingRate >= 1 {
		return hberrors.New(hberrors.ErrCodeInvalidConfig, "cooling_rate must be in (0,1), got %f", c.CoolingRate)
	}

	w := &c.Perturbations
	sum := w.Rotate + w.Move + w.Swap + w.ChangeRep + w.ConvertSymmetry
	if sum <= 0 {
		return hberrors.New(hberrors.ErrCodeInvalidConfig, "perturbation weights must sum to a positive value")
	}
	w.Rotate /= sum
	w.Move /= sum
	w.Swap /= sum
	w.ChangeRep /= sum
	w.ConvertSymmetry /= sum
	return nil
}
