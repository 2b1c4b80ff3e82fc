// Package runner plays batches of episodes with a policy. Each episode gets
// its own environment and random source, so episodes may run in parallel.
package runner

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/rl2048/internal/config"
	"github.com/vovakirdan/rl2048/internal/env"
	"github.com/vovakirdan/rl2048/internal/metrics"
	"github.com/vovakirdan/rl2048/internal/registry"
)

// Options configures a batch of episodes.
type Options struct {
	Policy   string
	Episodes int
	Workers  int   // 0 means GOMAXPROCS
	MaxSteps int   // 0 means play until the game ends
	Seed     int64 // episode i is seeded with Seed+i
	Env      config.EnvConfig
}

// OptionsFromConfig builds runner options from the loaded config.
func OptionsFromConfig(cfg config.Config, seed int64) Options {
	return Options{
		Policy:   cfg.Run.Policy,
		Episodes: cfg.Run.Episodes,
		Workers:  cfg.Run.Workers,
		MaxSteps: cfg.Run.MaxSteps,
		Seed:     seed,
		Env:      cfg.Env,
	}
}

// Result is the outcome of one episode.
type Result struct {
	Episode   int
	Seed      int64
	Score     int
	Reward    float64
	Steps     int
	Illegal   int
	MaxTile   int
	Truncated bool // stopped by MaxSteps before the game ended
}

// Run plays opts.Episodes episodes and returns their results in episode
// order. callback may be nil. Run stops early when ctx is cancelled.
func Run(ctx context.Context, opts Options, logger *log.Logger, callback metrics.Callback) ([]Result, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if !registry.Exists(opts.Policy) {
		return nil, fmt.Errorf("runner: unknown policy %q", opts.Policy)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logger.Info("starting run", "policy", opts.Policy, "episodes", opts.Episodes,
		"workers", workers, "seed", opts.Seed)

	results := make([]Result, opts.Episodes)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < opts.Episodes; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := playEpisode(gctx, i, opts, logger, callback)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("run finished", "policy", opts.Policy, "episodes", opts.Episodes)
	return results, nil
}

// playEpisode runs one episode to completion with a private env and policy.
func playEpisode(ctx context.Context, episode int, opts Options, logger *log.Logger, callback metrics.Callback) (Result, error) {
	policy, err := registry.Create(opts.Policy)
	if err != nil {
		return Result{}, err
	}

	seed := opts.Seed + int64(episode)
	e := env.New(opts.Env, seed, logger.With("episode", episode))
	rng := rand.New(rand.NewSource(seed))

	if callback != nil {
		callback.OnEpisodeBegin(episode)
	}

	res := Result{Episode: episode, Seed: seed}
	for !e.Done() {
		if opts.MaxSteps > 0 && res.Steps >= opts.MaxSteps {
			res.Truncated = true
			break
		}
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		step, err := e.Step(int(policy.Choose(e.Board(), rng)))
		if err != nil {
			return Result{}, fmt.Errorf("runner: episode %d step %d: %w", episode, res.Steps, err)
		}
		res.Steps++
		res.Reward += step.Reward
		if step.Info.IllegalMove {
			res.Illegal++
		}
		if callback != nil {
			callback.OnStepEnd(episode, metrics.StepLogs{Reward: step.Reward})
		}
	}

	info := e.LastInfo()
	res.Score = e.Score()
	res.MaxTile = e.Highest()
	if callback != nil {
		callback.OnEpisodeEnd(episode, metrics.EpisodeLogs{
			Reward:  res.Reward,
			Score:   res.Score,
			MaxTile: info.MaxTile,
		})
	}

	logger.Debug("episode finished", "episode", episode, "score", res.Score,
		"max_tile", res.MaxTile, "steps", res.Steps)
	return res, nil
}
