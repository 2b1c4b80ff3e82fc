package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying GameStateType = "playing"
	StateMaxTile GameStateType = "max_tile"
	StateNoMoves GameStateType = "no_moves"
)

// Snapshot captures the complete engine state for determinism testing and diagnostics.
type Snapshot struct {
	Score   int
	Board   Board
	MaxTile int // Highest tile on board
	Empty   int // Number of empty cells
	State   GameStateType
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case e.maxTileReached():
		state = StateMaxTile
	case !CanMove(e.board):
		state = StateNoMoves
	}

	return Snapshot{
		Score:   e.score,
		Board:   e.board,
		MaxTile: MaxTile(e.board),
		Empty:   len(EmptyCells(e.board)),
		State:   state,
	}
}
