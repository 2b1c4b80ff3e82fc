package policy

import (
	"math/rand"

	"github.com/samber/lo"

	"github.com/vovakirdan/rl2048/internal/t2048"
)

// Greedy plays the legal direction with the highest immediate merge score.
// Ties go to the move that leaves more empty cells, then to action order.
type Greedy struct{}

// ID returns the policy identifier.
func (Greedy) ID() string { return "greedy" }

// Title returns the display name.
func (Greedy) Title() string { return "Greedy merge score" }

type scoredMove struct {
	dir   t2048.Direction
	score int
	empty int
}

// Choose returns the best-scoring legal direction.
func (Greedy) Choose(board t2048.Board, rng *rand.Rand) t2048.Direction {
	legal := legalDirections(board)
	if len(legal) == 0 {
		return anyDirection(rng)
	}

	moves := lo.Map(legal, func(d t2048.Direction, _ int) scoredMove {
		after, score, _ := t2048.Move(board, d)
		return scoredMove{dir: d, score: score, empty: len(t2048.EmptyCells(after))}
	})

	best := lo.MaxBy(moves, func(a, b scoredMove) bool {
		if a.score != b.score {
			return a.score > b.score
		}
		return a.empty > b.empty
	})
	return best.dir
}
