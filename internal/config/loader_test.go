package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}

	def := DefaultConfig()
	if cfg.Env.MaxTileValue() != def.Env.MaxTileValue() {
		t.Errorf("max_tile = %d, want %d", cfg.Env.MaxTileValue(), def.Env.MaxTileValue())
	}
	if cfg.Env.EmptyCellBonus != def.Env.EmptyCellBonus {
		t.Errorf("empty_cell_bonus = %v, want %v", cfg.Env.EmptyCellBonus, def.Env.EmptyCellBonus)
	}
	if cfg.Env.Spawn4Prob != def.Env.Spawn4Prob {
		t.Errorf("spawn4_prob = %v, want %v", cfg.Env.Spawn4Prob, def.Env.Spawn4Prob)
	}
	if cfg.Run != def.Run {
		t.Errorf("run = %+v, want %+v", cfg.Run, def.Run)
	}
	if cfg.Log != def.Log {
		t.Errorf("log = %+v, want %+v", cfg.Log, def.Log)
	}
}

func TestParseNullMaxTile(t *testing.T) {
	cfg, err := Parse([]byte("env:\n  max_tile: null\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Env.MaxTile != nil {
		t.Errorf("max_tile = %v, want nil", *cfg.Env.MaxTile)
	}
	if cfg.Env.MaxTileValue() != 0 {
		t.Errorf("MaxTileValue() = %d, want 0", cfg.Env.MaxTileValue())
	}
	// Untouched sections keep defaults
	if cfg.Run.Policy != "greedy" {
		t.Errorf("run.policy = %q, want greedy", cfg.Run.Policy)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := []string{
		"env:\n  max_tile: 1000\n",
		"env:\n  spawn4_prob: 1.5\n",
		"run:\n  episodes: -1\n",
		"run:\n  workers: -3\n",
		"log:\n  level: loud\n",
	}
	for _, c := range cases {
		if _, err := Parse([]byte(c)); !errors.Is(err, ErrInvalid) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalid", c, err)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("env:\n  max_tile: 512\n  illegal_move_reward: -5\nrun:\n  policy: random\n  episodes: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", path, err)
	}
	if cfg.Env.MaxTileValue() != 512 {
		t.Errorf("max_tile = %d, want 512", cfg.Env.MaxTileValue())
	}
	if cfg.Env.IllegalMoveReward != -5 {
		t.Errorf("illegal_move_reward = %v, want -5", cfg.Env.IllegalMoveReward)
	}
	if cfg.Run.Policy != "random" || cfg.Run.Episodes != 3 {
		t.Errorf("run = %+v", cfg.Run)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load with missing custom path should fail")
	}
}

func TestApplyMode(t *testing.T) {
	cfg := DefaultConfig()

	if err := ApplyMode(&cfg, ModeEndless); err != nil {
		t.Fatalf("ApplyMode(endless): %v", err)
	}
	if cfg.Env.MaxTile != nil {
		t.Error("endless mode should remove the max tile")
	}

	if err := ApplyMode(&cfg, ModeClassic); err != nil {
		t.Fatalf("ApplyMode(classic): %v", err)
	}
	if cfg.Env.MaxTileValue() != 2048 {
		t.Errorf("classic max tile = %d, want 2048", cfg.Env.MaxTileValue())
	}

	if err := ApplyMode(&cfg, ""); err != nil {
		t.Errorf("ApplyMode(\"\") should be a no-op, got %v", err)
	}
	if err := ApplyMode(&cfg, Mode("campaign")); err == nil {
		t.Error("ApplyMode with unknown mode should fail")
	}
}
