// Package policy provides baseline move policies for driving episodes.
// Each policy registers itself with the registry in init().
package policy

import (
	"math/rand"

	"github.com/samber/lo"

	"github.com/vovakirdan/rl2048/internal/registry"
	"github.com/vovakirdan/rl2048/internal/t2048"
)

func init() {
	registry.Register("random", func() registry.Policy { return Random{} })
	registry.Register("greedy", func() registry.Policy { return Greedy{} })
	registry.Register("lookahead", func() registry.Policy { return Planner{} })
}

// legalDirections returns the directions that change the board.
func legalDirections(board t2048.Board) []t2048.Direction {
	dirs := t2048.Directions()
	return lo.Filter(dirs[:], func(d t2048.Direction, _ int) bool {
		_, _, err := t2048.Move(board, d)
		return err == nil
	})
}

// anyDirection is the fallback on a board with no legal move.
func anyDirection(rng *rand.Rand) t2048.Direction {
	return t2048.Direction(rng.Intn(t2048.DirectionCount))
}
