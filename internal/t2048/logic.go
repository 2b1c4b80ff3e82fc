package t2048

import (
	"errors"
	"fmt"
)

// Direction represents a move direction.
// Values match the action indices used by the episode wrapper.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// DirectionCount is the number of move directions.
const DirectionCount = 4

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirLeft
}

// Directions returns all directions in action-index order.
func Directions() [DirectionCount]Direction {
	return [DirectionCount]Direction{DirUp, DirRight, DirDown, DirLeft}
}

// columns reports whether the direction operates on columns (Up/Down).
func (d Direction) columns() bool {
	return d == DirUp || d == DirDown
}

// toBack reports whether the direction shifts toward the highest index (Down/Right).
func (d Direction) toBack() bool {
	return d == DirDown || d == DirRight
}

// BoardSize is the board dimension.
const BoardSize = 4

// Line is one row or column of the board.
type Line [BoardSize]int

// Board represents a 4x4 game board, indexed board[y][x].
type Board [BoardSize][BoardSize]int

// ErrIllegalMove is returned when a move would not change any line.
var ErrIllegalMove = errors.New("t2048: illegal move")

// ErrInvalidTile is returned by Validate for negative or non-power-of-two cells.
var ErrInvalidTile = errors.New("t2048: invalid tile value")

// Validate checks that every cell is empty or a power of two.
func (b Board) Validate() error {
	for y := range BoardSize {
		for x := range BoardSize {
			v := b[y][x]
			if v < 0 || v == 1 || v&(v-1) != 0 {
				return fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidTile, v, x, y)
			}
		}
	}
	return nil
}

// Sum returns the total of all tile values.
func (b Board) Sum() int {
	total := 0
	for y := range BoardSize {
		for x := range BoardSize {
			total += b[y][x]
		}
	}
	return total
}

// line extracts row or column i, reading along increasing index.
func (b Board) line(i int, columns bool) Line {
	var l Line
	for j := range BoardSize {
		if columns {
			l[j] = b[j][i]
		} else {
			l[j] = b[i][j]
		}
	}
	return l
}

// setLine writes row or column i.
func (b *Board) setLine(i int, columns bool, l Line) {
	for j := range BoardSize {
		if columns {
			b[j][i] = l[j]
		} else {
			b[i][j] = l[j]
		}
	}
}

// combine merges equal neighbours of a compacted line toward index 0.
// A tile produced by a merge is never merged again.
func combine(tiles []int) (Line, int) {
	var result Line
	score := 0
	out := 0
	for i := 0; i < len(tiles); i++ {
		if i+1 < len(tiles) && tiles[i] == tiles[i+1] {
			result[out] = tiles[i] + tiles[i+1]
			score += result[out]
			i++
		} else {
			result[out] = tiles[i]
		}
		out++
	}
	return result, score
}

// reverseLine reverses a line.
func reverseLine(l Line) Line {
	var result Line
	for i := range BoardSize {
		result[i] = l[BoardSize-1-i]
	}
	return result
}

// Shift compacts one line toward index 0 (or toward the last index when
// toBack is set), merging equal tiles once each.
// Returns the updated line and the score gained from merges.
func Shift(l Line, toBack bool) (Line, int) {
	tiles := make([]int, 0, BoardSize)
	for _, v := range l {
		if v != 0 {
			tiles = append(tiles, v)
		}
	}

	if toBack {
		for i, j := 0, len(tiles)-1; i < j; i, j = i+1, j-1 {
			tiles[i], tiles[j] = tiles[j], tiles[i]
		}
	}

	result, score := combine(tiles)

	if toBack {
		result = reverseLine(result)
	}
	return result, score
}

// Move applies a move to a board value and returns the resulting board and
// the score gained. The input board is never modified. If no line changes,
// the original board is returned together with ErrIllegalMove.
func Move(board Board, dir Direction) (Board, int, error) {
	if !dir.Valid() {
		return board, 0, fmt.Errorf("t2048: unknown direction %d", dir)
	}

	next := board
	columns := dir.columns()
	toBack := dir.toBack()
	totalScore := 0
	changed := false

	for i := range BoardSize {
		old := board.line(i, columns)
		shifted, score := Shift(old, toBack)
		totalScore += score
		if shifted != old {
			changed = true
			next.setLine(i, columns, shifted)
		}
	}

	if !changed {
		return board, 0, ErrIllegalMove
	}
	return next, totalScore, nil
}

// CanMove reports whether any direction yields a legal move.
func CanMove(board Board) bool {
	for _, dir := range Directions() {
		if _, _, err := Move(board, dir); err == nil {
			return true
		}
	}
	return false
}

// Cell is a board coordinate: X is the column, Y the row.
type Cell struct {
	X, Y int
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(board Board) []Cell {
	var cells []Cell
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] == 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(board Board) int {
	maxVal := 0
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] > maxVal {
				maxVal = board[y][x]
			}
		}
	}
	return maxVal
}
