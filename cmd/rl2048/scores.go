package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rl2048/internal/registry"
	"github.com/vovakirdan/rl2048/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <policy>",
	Short: "Show the best recorded episodes for a policy",
	Long: `Display the top recorded episodes for the specified policy.

Examples:
  rl2048 scores greedy
  rl2048 scores lookahead --limit 20`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of episodes to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	policyID := args[0]

	policy, err := registry.Create(policyID)
	if err != nil {
		return fmt.Errorf("%w, run 'rl2048 list' to see available policies", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening episodes database: %w", err)
	}
	defer store.Close()

	episodes, err := store.TopEpisodes(policyID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Episodes - %s\n", policy.Title())
	fmt.Println()

	if len(episodes) == 0 {
		fmt.Println("No episodes recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'rl2048 play %s' to record some.\n", policyID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-20s  %s\n", "Rank", "Score", "Tile", "Steps", "Seed", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-20s  %s\n", "----", "-----", "----", "-----", "----", "----")
	for i, e := range episodes {
		dateStr := e.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %-20d  %s\n", i+1, e.Score, e.MaxTile, e.Steps, e.Seed, dateStr)
	}

	fmt.Println()
	if best, err := store.BestTile(policyID); err == nil {
		fmt.Printf("Best tile: %d\n", best)
	}
	return nil
}
