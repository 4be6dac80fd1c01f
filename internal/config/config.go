// Package config loads the YAML run configuration for one session:
// credentials, server location, and the tuning knobs the spec leaves to
// the implementer (round budget, optimizer deadline, horizon windows,
// penalty constants, GA parameters).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level run configuration.
type Config struct {
	APIKey    string `yaml:"api_key"`
	ServerURL string `yaml:"server_url"`

	RoundBudget      time.Duration `yaml:"round_budget"`
	OptimizerBudget  time.Duration `yaml:"optimizer_budget"`
	HorizonLoadHours int           `yaml:"horizon_load_hours"`
	HorizonBuyHours  int           `yaml:"horizon_purchase_hours"`

	MonitorAddr string `yaml:"monitor_addr"`

	// DataDir holds the three §6.2 CSV tables (airports.csv,
	// aircraft_types.csv, flight_plan.csv) loaded once at session start. The wire handshake
	// (/session/start) never carries the network description itself.
	DataDir string `yaml:"data_dir"`

	Penalty PenaltyConfig `yaml:"penalty"`
	GA      GAConfig      `yaml:"genetic_algorithm"`

	RandomSeed int64 `yaml:"random_seed"`
}

// PenaltyConfig externalizes the cost-model calibration constants (§4.2).
type PenaltyConfig struct {
	NegativeInventoryFactor float64 `yaml:"negative_inventory_factor"`
	OverstockFactor         float64 `yaml:"overstock_factor"`
	OverloadFactor          float64 `yaml:"overload_factor"`
	UnfulfilledFactor       float64 `yaml:"unfulfilled_factor"`
	IncorrectLoadFactor     float64 `yaml:"incorrect_load_factor"`
	EndOfGameMultiplier     float64 `yaml:"end_of_game_multiplier"`
}

// GAConfig tunes the population-based optimizer.
type GAConfig struct {
	PopulationSize      int     `yaml:"population_size"`
	TournamentSize       int     `yaml:"tournament_size"`
	MutationRate         float64 `yaml:"mutation_rate"`
	ElitismCount         int     `yaml:"elitism_count"`
	NoImprovementLimit   int     `yaml:"no_improvement_limit"`
}

// Default returns the configuration the spec calls out as default values.
func Default() Config {
	return Config{
		RoundBudget:      5 * time.Second,
		OptimizerBudget:  2 * time.Second,
		HorizonLoadHours: 6,
		HorizonBuyHours:  72,
		MonitorAddr:      ":8090",
		DataDir:          "data",
		Penalty: PenaltyConfig{
			NegativeInventoryFactor: 500,
			OverstockFactor:         20,
			OverloadFactor:          5,
			UnfulfilledFactor:       0.003,
			IncorrectLoadFactor:     1000,
			EndOfGameMultiplier:     3,
		},
		GA: GAConfig{
			PopulationSize:     40,
			TournamentSize:     4,
			MutationRate:       0.15,
			ElitismCount:       3,
			NoImprovementLimit: 12,
		},
		RandomSeed: 1,
	}
}

// Load reads a YAML config file, filling every unset field from Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("config: api_key is required")
	}
	if cfg.ServerURL == "" {
		return cfg, fmt.Errorf("config: server_url is required")
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	d := Default()
	if cfg.RoundBudget <= 0 {
		cfg.RoundBudget = d.RoundBudget
	}
	if cfg.OptimizerBudget <= 0 {
		cfg.OptimizerBudget = d.OptimizerBudget
	}
	if cfg.HorizonLoadHours <= 0 {
		cfg.HorizonLoadHours = d.HorizonLoadHours
	}
	if cfg.HorizonBuyHours <= 0 {
		cfg.HorizonBuyHours = d.HorizonBuyHours
	}
	if cfg.MonitorAddr == "" {
		cfg.MonitorAddr = d.MonitorAddr
	}
	if cfg.DataDir == "" {
		cfg.DataDir = d.DataDir
	}
	if cfg.Penalty == (PenaltyConfig{}) {
		cfg.Penalty = d.Penalty
	}
	if cfg.GA == (GAConfig{}) {
		cfg.GA = d.GA
	}
	if cfg.RandomSeed == 0 {
		cfg.RandomSeed = d.RandomSeed
	}
}
