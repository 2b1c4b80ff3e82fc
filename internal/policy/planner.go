package policy

import (
	"math/rand"

	"github.com/vovakirdan/rl2048/internal/lookahead"
	"github.com/vovakirdan/rl2048/internal/t2048"
)

// Planner looks two moves ahead and plays the first move whose best
// follow-up leaves the most empty cells. Ties are broken by the immediate
// merge score, then by action order.
type Planner struct{}

// ID returns the policy identifier.
func (Planner) ID() string { return "lookahead" }

// Title returns the display name.
func (Planner) Title() string { return "Two-move lookahead" }

// Choose returns the legal direction with the best two-move outlook.
func (Planner) Choose(board t2048.Board, rng *rand.Rand) t2048.Direction {
	legal := legalDirections(board)
	if len(legal) == 0 {
		return anyDirection(rng)
	}

	candidates := lookahead.Candidates(board)

	best := legal[0]
	bestEmpty, bestScore := -1, -1
	for _, first := range legal {
		empty := 0
		for _, second := range t2048.Directions() {
			_, idx := lookahead.CandidateIndex(first, second)
			if n := len(t2048.EmptyCells(candidates[idx])); n > empty {
				empty = n
			}
		}
		_, score, _ := t2048.Move(board, first)
		if empty > bestEmpty || (empty == bestEmpty && score > bestScore) {
			best, bestEmpty, bestScore = first, empty, score
		}
	}
	return best
}
