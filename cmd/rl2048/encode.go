package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rl2048/internal/lookahead"
	"github.com/vovakirdan/rl2048/internal/t2048"
)

var flagPlanes int

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Show the lookahead encoding of a fresh board",
	Long: `Deal a fresh board from the seed, expand its 20 lookahead candidates
(4 one-move and 16 two-move boards) and print the tensor shape.

Examples:
  rl2048 encode --seed 7
  rl2048 encode --planes 18`,
	Args: cobra.NoArgs,
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().IntVar(&flagPlanes, "planes", lookahead.DefaultPlanes, "One-hot planes per board")
}

func runEncode(cmd *cobra.Command, args []string) error {
	seed := resolveSeed()
	engine := t2048.New(t2048.WithSeed(seed))
	board := engine.Board()

	dense, err := lookahead.NewEncoder(flagPlanes).Encode(board)
	if err != nil {
		return err
	}

	fmt.Printf("Board (seed %d)\n", seed)
	for _, row := range board {
		fmt.Printf("  %5d %5d %5d %5d\n", row[0], row[1], row[2], row[3])
	}
	fmt.Println()
	fmt.Printf("Tensor shape %v\n", dense.Shape())
	fmt.Println()

	next := lookahead.Next(board)
	for _, dir := range t2048.Directions() {
		legal := "illegal"
		if next[dir] != board {
			legal = "legal"
		}
		first, _ := lookahead.CandidateIndex(dir, t2048.DirUp)
		fmt.Printf("  %-5s  candidate %2d  %s\n", dir, first, legal)
	}
	return nil
}
