package policy

import (
	"math/rand"

	"github.com/vovakirdan/rl2048/internal/t2048"
)

// Random picks uniformly among the legal directions.
type Random struct{}

// ID returns the policy identifier.
func (Random) ID() string { return "random" }

// Title returns the display name.
func (Random) Title() string { return "Random legal move" }

// Choose returns a random legal direction.
func (Random) Choose(board t2048.Board, rng *rand.Rand) t2048.Direction {
	legal := legalDirections(board)
	if len(legal) == 0 {
		return anyDirection(rng)
	}
	return legal[rng.Intn(len(legal))]
}
