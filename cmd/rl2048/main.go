// rl2048 plays and records 2048 episodes driven by baseline policies.
//
// Usage:
//
//	rl2048 list                - List available policies
//	rl2048 play [policy]       - Play a batch of episodes
//	rl2048 scores <policy>     - Show the best recorded episodes
//	rl2048 encode              - Show the lookahead encoding of a fresh board
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.rl2048/episodes.db)
//	--config <path>      - Path to a config YAML
//	--log-level <level>  - Override the configured log level
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"lukechampine.com/frand"

	"github.com/vovakirdan/rl2048/internal/config"
	// Import policies to register them
	_ "github.com/vovakirdan/rl2048/internal/policy"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rl2048",
	Short: "rl2048 - Play 2048 episodes with scripted policies",
	Long: `rl2048 drives the 2048 board engine through an episode wrapper
with shaped rewards, plays batches of episodes in parallel and records
the results.

Available commands:
  list     - Show all available policies
  play     - Play a batch of episodes
  scores   - View the best recorded episodes
  encode   - Show the two-move lookahead encoding

Examples:
  rl2048 list
  rl2048 play greedy --episodes 50
  rl2048 play lookahead --mode endless --seed 42
  rl2048 scores greedy
  rl2048 encode --seed 7`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rl2048/episodes.db", "Path to episodes database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(encodeCmd)
}

// loadConfig loads the config and applies the --log-level override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, cfg.Validate()
}

// newLogger builds the stderr logger at the configured level.
func newLogger(cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rl2048",
	})
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// resolveSeed returns --seed, or a fresh random seed when it is 0.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return int64(frand.Uint64n(1 << 62))
}
