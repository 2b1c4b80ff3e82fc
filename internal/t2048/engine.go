// Package t2048 implements the 2048 board engine: shifting and merging
// tiles, score keeping, random tile spawns and end-of-game detection.
package t2048

import (
	"math/rand"
)

// DefaultMaxTile is the tile value that ends a game unless configured otherwise.
const DefaultMaxTile = 2048

// NoMaxTile disables the max-tile termination check.
const NoMaxTile = 0

// DefaultSpawn4Prob is the probability of spawning a 4 instead of a 2.
const DefaultSpawn4Prob = 0.10

// Engine owns one board and its score.
// An Engine is not safe for concurrent use; give each caller its own.
type Engine struct {
	rng        *rand.Rand
	board      Board
	score      int
	maxTile    int
	spawn4Prob float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed seeds the engine's private random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand uses the given random source for tile spawns.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithMaxTile sets the tile value that ends the game. NoMaxTile means no limit.
func WithMaxTile(tile int) Option {
	return func(e *Engine) {
		e.maxTile = tile
	}
}

// WithSpawn4Prob sets the probability of spawning a 4.
func WithSpawn4Prob(p float64) Option {
	return func(e *Engine) {
		e.spawn4Prob = p
	}
}

// New creates an engine and starts a fresh game with two tiles.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxTile:    DefaultMaxTile,
		spawn4Prob: DefaultSpawn4Prob,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(0))
	}
	e.Reset()
	return e
}

// Reset clears the board and score and spawns the two initial tiles.
func (e *Engine) Reset() Board {
	e.board = Board{}
	e.score = 0
	e.AddTile()
	e.AddTile()
	return e.board
}

// Get returns the value at column x, row y.
func (e *Engine) Get(x, y int) int {
	return e.board[y][x]
}

// Set writes the value at column x, row y.
func (e *Engine) Set(x, y, value int) {
	e.board[y][x] = value
}

// Board returns a copy of the current board.
func (e *Engine) Board() Board {
	return e.board
}

// SetBoard replaces the whole board. The score is left untouched.
func (e *Engine) SetBoard(b Board) {
	e.board = b
}

// Score returns the accumulated merge score.
func (e *Engine) Score() int {
	return e.score
}

// MaxTileLimit returns the configured terminating tile, or NoMaxTile.
func (e *Engine) MaxTileLimit() int {
	return e.maxTile
}

// Empties returns the empty cells in row-major order.
func (e *Engine) Empties() []Cell {
	return EmptyCells(e.board)
}

// Highest returns the highest tile on the board.
func (e *Engine) Highest() int {
	return MaxTile(e.board)
}

// Move performs a move and returns the score it gains.
// With trial set the board and score are left unchanged, so the call only
// tests legality. An illegal move returns ErrIllegalMove and never mutates.
func (e *Engine) Move(dir Direction, trial bool) (int, error) {
	next, score, err := Move(e.board, dir)
	if err != nil {
		return 0, err
	}
	if !trial {
		e.board = next
		e.score += score
	}
	return score, nil
}

// AddTile spawns a 2 or a 4 in a random empty cell and returns where it went.
// It panics if the board is full: spawns only follow legal moves, which
// always leave at least one empty cell.
func (e *Engine) AddTile() (Cell, int) {
	value := 2
	if e.rng.Float64() < e.spawn4Prob {
		value = 4
	}

	empties := EmptyCells(e.board)
	if len(empties) == 0 {
		panic("t2048: AddTile called on a full board")
	}

	cell := empties[e.rng.Intn(len(empties))]
	e.board[cell.Y][cell.X] = value
	return cell, value
}

// maxTileReached reports whether the configured terminating tile is on the board.
func (e *Engine) maxTileReached() bool {
	return e.maxTile != NoMaxTile && e.Highest() >= e.maxTile
}

// IsEnd reports whether the game is over: the max tile has been reached or
// no direction yields a legal move.
func (e *Engine) IsEnd() bool {
	if e.maxTileReached() {
		return true
	}
	for _, dir := range Directions() {
		if _, err := e.Move(dir, true); err == nil {
			return false
		}
	}
	return true
}
