// Package strategy implements the scoring model, the resource policy and the
// library of checks and behaviors that get assembled into the bot's behavior
// tree. Every weight and threshold lives in Config so variant policies are
// configuration choices, not code forks.
package strategy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the scoring engine and the strategy library.
type Config struct {
	// Target score: growth*GrowthWeight + (1/distance)*DistanceWeight - ships*ShipsWeight.
	ScoreGrowthWeight   float64 `yaml:"score_growth_weight"`
	ScoreDistanceWeight float64 `yaml:"score_distance_weight"`
	ScoreShipsWeight    float64 `yaml:"score_ships_weight"`

	// Danger level weights. Fleet terms are normalized before weighting;
	// planet terms are raw distance and ship counts.
	DangerFleetDistWeight   float64 `yaml:"danger_fleet_dist_weight"`
	DangerFleetShipsWeight  float64 `yaml:"danger_fleet_ships_weight"`
	DangerPlanetDistWeight  float64 `yaml:"danger_planet_dist_weight"`
	DangerPlanetShipsWeight float64 `yaml:"danger_planet_ships_weight"`

	// Attack thresholds.
	AttackMinShips     int     `yaml:"attack_min_ships"`
	AttackMargin       int     `yaml:"attack_margin"`
	SimpleAttackMargin int     `yaml:"simple_attack_margin"`
	AttackSafetyRatio  float64 `yaml:"attack_safety_ratio"`

	// Expansion thresholds.
	ExpandMinShips      int     `yaml:"expand_min_ships"`
	ExpandMargin        int     `yaml:"expand_margin"`
	SpreadMargin        int     `yaml:"spread_margin"`
	ExpandStrengthRatio float64 `yaml:"expand_strength_ratio"`
	ExpandIncomingRatio float64 `yaml:"expand_incoming_ratio"`
	ExpandHorizon       int     `yaml:"expand_horizon"`

	// Defense and redistribution thresholds.
	DefendSafetyMargin int     `yaml:"defend_safety_margin"`
	ReinforceKeep      int     `yaml:"reinforce_keep"`
	ReinforceMinSend   int     `yaml:"reinforce_min_send"`
	WaveSize           int     `yaml:"wave_size"`
	FrontlineDistance  int     `yaml:"frontline_distance"`
	DangerThreshold    float64 `yaml:"danger_threshold"`
}

// DefaultConfig returns the baseline policy tuning.
func DefaultConfig() Config {
	return Config{
		ScoreGrowthWeight:   3.0,
		ScoreDistanceWeight: 2.0,
		ScoreShipsWeight:    1.5,

		DangerFleetDistWeight:   5.0,
		DangerFleetShipsWeight:  3.0,
		DangerPlanetDistWeight:  3.0,
		DangerPlanetShipsWeight: 1.0,

		AttackMinShips:     10,
		AttackMargin:       15,
		SimpleAttackMargin: 10,
		AttackSafetyRatio:  1.5,

		ExpandMinShips:      15,
		ExpandMargin:        10,
		SpreadMargin:        5,
		ExpandStrengthRatio: 0.7,
		ExpandIncomingRatio: 0.3,
		ExpandHorizon:       10,

		DefendSafetyMargin: 5,
		ReinforceKeep:      10,
		ReinforceMinSend:   5,
		WaveSize:           20,
		FrontlineDistance:  15,
		DangerThreshold:    50,
	}
}

// LoadConfig reads a YAML weight file over the defaults. Keys not present in
// the file keep their default values, so partial overrides are fine.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
