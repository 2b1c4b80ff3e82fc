// Package config provides YAML-based configuration loading for the
// episode wrapper, the episode runner and logging.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Config is the top-level configuration.
type Config struct {
	Env EnvConfig `yaml:"env"`
	Run RunConfig `yaml:"run"`
	Log LogConfig `yaml:"log"`
}

// EnvConfig defines the episode wrapper parameters.
type EnvConfig struct {
	MaxTile           *int    `yaml:"max_tile"` // nil means no limit
	IllegalMoveReward float64 `yaml:"illegal_move_reward"`
	EmptyCellBonus    float64 `yaml:"empty_cell_bonus"`
	HighestTileBonus  bool    `yaml:"highest_tile_bonus"`
	Spawn4Prob        float64 `yaml:"spawn4_prob"`
}

// RunConfig defines how episodes are played.
type RunConfig struct {
	Policy   string `yaml:"policy"`
	Episodes int    `yaml:"episodes"`
	Workers  int    `yaml:"workers"`
	MaxSteps int    `yaml:"max_steps"` // 0 means play until the game ends
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// MaxTileValue returns the configured max tile, or 0 when there is no limit.
func (c EnvConfig) MaxTileValue() int {
	if c.MaxTile == nil {
		return 0
	}
	return *c.MaxTile
}

// Mode is a named max-tile preset.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeEndless Mode = "endless"
)

// ApplyMode modifies the config based on a mode preset.
// An empty mode leaves the config unchanged.
func ApplyMode(cfg *Config, mode Mode) error {
	switch mode {
	case "":
		return nil
	case ModeClassic:
		tile := 2048
		cfg.Env.MaxTile = &tile
	case ModeEndless:
		cfg.Env.MaxTile = nil
	default:
		return fmt.Errorf("config: unknown mode %q (want classic or endless)", mode)
	}
	return nil
}

// ErrInvalid is wrapped by all validation failures.
var ErrInvalid = errors.New("config: invalid value")

// Validate checks the config for values the engine cannot run with.
func (c Config) Validate() error {
	if c.Env.MaxTile != nil {
		tile := *c.Env.MaxTile
		if tile < 4 || tile&(tile-1) != 0 {
			return fmt.Errorf("%w: env.max_tile %d is not a power of two >= 4", ErrInvalid, tile)
		}
	}
	if c.Env.Spawn4Prob < 0 || c.Env.Spawn4Prob > 1 {
		return fmt.Errorf("%w: env.spawn4_prob %v outside [0, 1]", ErrInvalid, c.Env.Spawn4Prob)
	}
	if c.Run.Episodes < 0 {
		return fmt.Errorf("%w: run.episodes %d", ErrInvalid, c.Run.Episodes)
	}
	if c.Run.Workers < 0 {
		return fmt.Errorf("%w: run.workers %d", ErrInvalid, c.Run.Workers)
	}
	if c.Run.MaxSteps < 0 {
		return fmt.Errorf("%w: run.max_steps %d", ErrInvalid, c.Run.MaxSteps)
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
		}
	}
	return nil
}
