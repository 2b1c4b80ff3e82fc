// Package env wraps the 2048 engine as an episodic environment: actions in,
// shaped rewards and termination out.
package env

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rl2048/internal/config"
	"github.com/vovakirdan/rl2048/internal/t2048"
)

// ErrInvalidAction is returned for action indices outside [0, ActionCount).
var ErrInvalidAction = errors.New("env: invalid action")

// Info carries diagnostics about the last step.
type Info struct {
	IllegalMove bool
	MaxTile     int
	Score       int
	Empty       int
}

// StepResult is returned by Step.
type StepResult struct {
	Observation t2048.Board
	Reward      float64
	Done        bool
	Info        Info
}

// Env is a single-episode-at-a-time 2048 environment.
// It owns a private engine; use one Env per goroutine.
type Env struct {
	engine      *t2048.Engine
	cfg         config.EnvConfig
	logger      *log.Logger
	prevHighest int
	lastInfo    Info
	steps       int
}

// New creates an environment seeded with seed and resets it.
// A nil logger discards log output.
func New(cfg config.EnvConfig, seed int64, logger *log.Logger) *Env {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Env{
		engine: t2048.New(
			t2048.WithRand(rand.New(rand.NewSource(seed))),
			t2048.WithMaxTile(cfg.MaxTileValue()),
			t2048.WithSpawn4Prob(cfg.Spawn4Prob),
		),
		cfg:    cfg,
		logger: logger,
	}
	e.Reset()
	return e
}

// ActionCount returns the number of discrete actions.
func (e *Env) ActionCount() int {
	return t2048.DirectionCount
}

// RewardRange returns the lowest and highest reward a step can return.
// The illegal-move reward is assumed to be the lowest value.
func (e *Env) RewardRange() (float64, float64) {
	return e.cfg.IllegalMoveReward, math.Pow(2, t2048.BoardSize*t2048.BoardSize)
}

// Reset starts a new episode and returns the initial board.
func (e *Env) Reset() t2048.Board {
	board := e.engine.Reset()
	e.prevHighest = e.engine.Highest()
	e.steps = 0
	e.lastInfo = e.info(false)
	e.logger.Debug("episode reset", "highest", e.prevHighest)
	return board
}

// Step applies one action. An illegal move leaves the board untouched and
// is rewarded with the configured illegal-move reward.
func (e *Env) Step(action int) (StepResult, error) {
	dir := t2048.Direction(action)
	if !dir.Valid() {
		return StepResult{}, fmt.Errorf("%w: %d", ErrInvalidAction, action)
	}
	e.steps++

	score, err := e.engine.Move(dir, false)
	if errors.Is(err, t2048.ErrIllegalMove) {
		e.logger.Debug("illegal move", "dir", dir, "step", e.steps)
		e.lastInfo = e.info(true)
		return StepResult{
			Observation: e.engine.Board(),
			Reward:      e.cfg.IllegalMoveReward,
			Done:        e.engine.IsEnd(),
			Info:        e.lastInfo,
		}, nil
	}
	if err != nil {
		return StepResult{}, err
	}

	cell, value := e.engine.AddTile()
	e.logger.Debug("move", "dir", dir, "score", score, "tile", value, "x", cell.X, "y", cell.Y)

	reward := float64(score)
	if e.cfg.HighestTileBonus {
		if highest := e.engine.Highest(); highest > e.prevHighest {
			reward += float64(highest - e.prevHighest)
			e.prevHighest = highest
		}
	}
	reward += float64(len(e.engine.Empties())) * e.cfg.EmptyCellBonus

	e.lastInfo = e.info(false)
	return StepResult{
		Observation: e.engine.Board(),
		Reward:      reward,
		Done:        e.engine.IsEnd(),
		Info:        e.lastInfo,
	}, nil
}

func (e *Env) info(illegal bool) Info {
	return Info{
		IllegalMove: illegal,
		MaxTile:     e.engine.Highest(),
		Score:       e.engine.Score(),
		Empty:       len(e.engine.Empties()),
	}
}

// LastInfo returns the info of the last step or reset.
func (e *Env) LastInfo() Info {
	return e.lastInfo
}

// Steps returns the number of steps taken since the last reset.
func (e *Env) Steps() int {
	return e.steps
}

// Board returns a copy of the current board.
func (e *Env) Board() t2048.Board {
	return e.engine.Board()
}

// SetBoard replaces the board after validating its tiles.
// The highest-tile tracker restarts from the new board.
func (e *Env) SetBoard(b t2048.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}
	e.engine.SetBoard(b)
	e.prevHighest = t2048.MaxTile(b)
	return nil
}

// Score returns the game score, separate from accumulated rewards.
func (e *Env) Score() int {
	return e.engine.Score()
}

// Highest returns the highest tile on the board.
func (e *Env) Highest() int {
	return e.engine.Highest()
}

// Done reports whether the episode has ended.
func (e *Env) Done() bool {
	return e.engine.IsEnd()
}
