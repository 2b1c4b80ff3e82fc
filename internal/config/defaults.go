package config

import (
	_ "embed"
)

//go:embed defaults/rl2048.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	maxTile := 2048
	return Config{
		Env: EnvConfig{
			MaxTile:           &maxTile,
			IllegalMoveReward: 0,
			EmptyCellBonus:    0.5,
			HighestTileBonus:  true,
			Spawn4Prob:        0.1,
		},
		Run: RunConfig{
			Policy:   "greedy",
			Episodes: 100,
			Workers:  4,
			MaxSteps: 10000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
