// Package lookahead builds two-move lookahead features from a 2048 board.
// For a board it materialises the board after every first move and after
// every pair of moves (4 + 4*4 = 20 candidates) and one-hot encodes each
// candidate into tile planes. The caller's board is never modified.
package lookahead

import (
	"errors"
	"fmt"
	"math/bits"

	"gorgonia.org/tensor"

	"github.com/vovakirdan/rl2048/internal/t2048"
)

// CandidateCount is the number of boards produced by Candidates.
const CandidateCount = t2048.DirectionCount + t2048.DirectionCount*t2048.DirectionCount

// DefaultPlanes encodes tiles up to 2^15.
const DefaultPlanes = 16

// ErrTileOutOfRange is returned when a tile has no plane in the encoding.
var ErrTileOutOfRange = errors.New("lookahead: tile out of encoder range")

// Next returns the board after each direction, in action order.
// An illegal direction yields the unchanged board, so the result always has
// one entry per direction.
func Next(board t2048.Board) [t2048.DirectionCount]t2048.Board {
	var next [t2048.DirectionCount]t2048.Board
	for i, dir := range t2048.Directions() {
		after, _, err := t2048.Move(board, dir)
		if err != nil {
			after = board
		}
		next[i] = after
	}
	return next
}

// Candidates returns the lookahead boards ordered as: after(d1) followed by
// after(d1, d2) for every d2, for each d1 in action order.
func Candidates(board t2048.Board) []t2048.Board {
	out := make([]t2048.Board, 0, CandidateCount)
	for _, first := range Next(board) {
		out = append(out, first)
		second := Next(first)
		out = append(out, second[:]...)
	}
	return out
}

// CandidateIndex returns the position of after(first) and after(first, second)
// inside the slice returned by Candidates.
func CandidateIndex(first, second t2048.Direction) (int, int) {
	base := int(first) * (t2048.DirectionCount + 1)
	return base, base + 1 + int(second)
}

// Encoder one-hot encodes boards into tile planes.
type Encoder struct {
	Planes int
}

// NewEncoder creates an encoder with the given plane count.
// Plane 0 marks empty cells; plane k marks tiles of value 2^k.
func NewEncoder(planes int) *Encoder {
	if planes <= 0 {
		planes = DefaultPlanes
	}
	return &Encoder{Planes: planes}
}

// plane returns the plane index for a tile value.
func (e *Encoder) plane(v int) (int, error) {
	if v == 0 {
		return 0, nil
	}
	if v < 2 || v&(v-1) != 0 {
		return 0, fmt.Errorf("%w: %d is not a power of two", ErrTileOutOfRange, v)
	}
	p := bits.TrailingZeros(uint(v))
	if p >= e.Planes {
		return 0, fmt.Errorf("%w: %d needs plane %d of %d", ErrTileOutOfRange, v, p, e.Planes)
	}
	return p, nil
}

// OneHot appends the plane-major encoding of one board to dst.
// Layout: plane, row, column.
func (e *Encoder) OneHot(dst []float32, board t2048.Board) ([]float32, error) {
	const cells = t2048.BoardSize * t2048.BoardSize
	start := len(dst)
	dst = append(dst, make([]float32, e.Planes*cells)...)
	for y := range t2048.BoardSize {
		for x := range t2048.BoardSize {
			p, err := e.plane(board[y][x])
			if err != nil {
				return dst[:start], err
			}
			dst[start+p*cells+y*t2048.BoardSize+x] = 1
		}
	}
	return dst, nil
}

// Encode returns the lookahead tensor for a board with shape
// (CandidateCount, Planes, BoardSize, BoardSize).
func (e *Encoder) Encode(board t2048.Board) (*tensor.Dense, error) {
	candidates := Candidates(board)
	backing := make([]float32, 0, len(candidates)*e.Planes*t2048.BoardSize*t2048.BoardSize)
	for i, c := range candidates {
		var err error
		backing, err = e.OneHot(backing, c)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
	}
	return tensor.New(
		tensor.WithShape(len(candidates), e.Planes, t2048.BoardSize, t2048.BoardSize),
		tensor.WithBacking(backing),
	), nil
}
