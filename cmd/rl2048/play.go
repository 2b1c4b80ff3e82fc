package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rl2048/internal/config"
	"github.com/vovakirdan/rl2048/internal/metrics"
	"github.com/vovakirdan/rl2048/internal/registry"
	"github.com/vovakirdan/rl2048/internal/runner"
	"github.com/vovakirdan/rl2048/internal/storage"
)

var (
	flagEpisodes int
	flagWorkers  int
	flagMaxSteps int
	flagMode     string
	flagNoSave   bool
)

var playCmd = &cobra.Command{
	Use:   "play [policy]",
	Short: "Play a batch of episodes",
	Long: `Play a batch of episodes with the given policy (default from config)
and print a summary. Results are recorded in the episodes database.

Mode options:
  classic  - Episodes end when a 2048 tile appears
  endless  - Episodes run until no move is left

Examples:
  rl2048 play
  rl2048 play random --episodes 1000
  rl2048 play lookahead --mode endless --workers 8
  rl2048 play greedy --seed 42 --no-save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagEpisodes, "episodes", 0, "Number of episodes (0 = from config)")
	playCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel workers (0 = from config)")
	playCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0, "Step cap per episode (0 = from config)")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Mode preset: classic, endless")
	playCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record results")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.ApplyMode(&cfg, config.Mode(flagMode)); err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Run.Policy = args[0]
	}
	if flagEpisodes > 0 {
		cfg.Run.Episodes = flagEpisodes
	}
	if flagWorkers > 0 {
		cfg.Run.Workers = flagWorkers
	}
	if flagMaxSteps > 0 {
		cfg.Run.MaxSteps = flagMaxSteps
	}

	if !registry.Exists(cfg.Run.Policy) {
		return fmt.Errorf("unknown policy %q, run 'rl2048 list' to see available policies", cfg.Run.Policy)
	}

	logger := newLogger(cfg)
	seed := resolveSeed()
	opts := runner.OptionsFromConfig(cfg, seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	collector := metrics.NewCollector()
	results, err := runner.Run(ctx, opts, logger, collector)
	if err != nil {
		return err
	}

	printSummary(cfg.Run.Policy, seed, collector.Summary())

	if flagNoSave {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open episodes database", "error", err)
		return nil
	}
	defer store.Close()

	runID := fmt.Sprintf("%s-%d", cfg.Run.Policy, seed)
	records := lo.Map(results, func(r runner.Result, _ int) storage.EpisodeRecord {
		return storage.EpisodeRecord{
			RunID:   runID,
			Policy:  cfg.Run.Policy,
			Episode: r.Episode,
			Seed:    r.Seed,
			Score:   r.Score,
			Reward:  r.Reward,
			Steps:   r.Steps,
			MaxTile: r.MaxTile,
		}
	})
	if err := store.SaveEpisodes(records); err != nil {
		return err
	}
	logger.Info("episodes saved", "run", runID, "count", len(records), "db", flagDBPath)
	return nil
}

func printSummary(policy string, seed int64, s metrics.Summary) {
	fmt.Printf("Policy %s, seed %d\n", policy, seed)
	fmt.Println()
	fmt.Printf("  Episodes     %d\n", s.Episodes)
	fmt.Printf("  Mean reward  %.2f (std %.2f)\n", s.MeanReward, s.StdReward)
	fmt.Printf("  Mean score   %.1f\n", s.MeanScore)
	fmt.Printf("  Mean steps   %.1f\n", s.MeanSteps)
	fmt.Printf("  Best score   %d\n", s.BestScore)
	fmt.Printf("  Best tile    %d\n", s.BestTile)

	if len(s.TileCounts) == 0 {
		return
	}
	tiles := lo.Keys(s.TileCounts)
	sort.Sort(sort.Reverse(sort.IntSlice(tiles)))

	fmt.Println()
	fmt.Printf("  %-6s  %-8s  %s\n", "Tile", "Episodes", "Reached")
	fmt.Printf("  %-6s  %-8s  %s\n", "----", "--------", "-------")
	for _, tile := range tiles {
		fmt.Printf("  %-6d  %-8d  %5.1f%%\n", tile, s.TileCounts[tile], 100*s.TileRate(tile))
	}
}
