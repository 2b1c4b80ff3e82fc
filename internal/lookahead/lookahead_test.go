package lookahead

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/vovakirdan/rl2048/internal/t2048"
)

func TestNextKeepsIllegalBoards(t *testing.T) {
	is := is.New(t)
	board := t2048.Board{{2, 2, 0, 0}}

	next := Next(board)

	is.Equal(next[t2048.DirLeft], t2048.Board{{4, 0, 0, 0}})
	is.Equal(next[t2048.DirRight], t2048.Board{{0, 0, 0, 4}})
	is.Equal(next[t2048.DirUp], board) // illegal: unchanged
	is.Equal(next[t2048.DirDown][3], [4]int{2, 2, 0, 0})
}

func TestCandidatesLayout(t *testing.T) {
	is := is.New(t)
	board := t2048.Board{{2, 2, 0, 0}}
	original := board

	cands := Candidates(board)

	is.Equal(len(cands), CandidateCount)
	is.Equal(CandidateCount, 20)
	is.Equal(board, original) // caller board untouched

	first, second := CandidateIndex(t2048.DirLeft, t2048.DirRight)
	is.Equal(first, 15)
	is.Equal(second, 17)
	is.Equal(cands[first], t2048.Board{{4, 0, 0, 0}})
	is.Equal(cands[second], t2048.Board{{0, 0, 0, 4}})

	up, upUp := CandidateIndex(t2048.DirUp, t2048.DirUp)
	is.Equal(cands[up], board)
	is.Equal(cands[upUp], board)
}

func TestOneHot(t *testing.T) {
	is := is.New(t)
	enc := NewEncoder(DefaultPlanes)
	board := t2048.Board{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 2048},
		{0, 0, 0, 0},
	}

	vec, err := enc.OneHot(nil, board)
	is.NoErr(err)
	is.Equal(len(vec), DefaultPlanes*16)

	is.Equal(vec[1*16+0], float32(1))      // 2 at (0,0) on plane 1
	is.Equal(vec[11*16+2*4+3], float32(1)) // 2048 at (3,2) on plane 11
	is.Equal(vec[0*16+1], float32(1))      // empty cell on plane 0
	is.Equal(vec[0*16+0], float32(0))

	var ones float32
	for _, v := range vec {
		ones += v
	}
	is.Equal(ones, float32(16)) // exactly one plane per cell
}

func TestOneHotOutOfRange(t *testing.T) {
	is := is.New(t)
	enc := NewEncoder(4)

	_, err := enc.OneHot(nil, t2048.Board{{16, 0, 0, 0}})
	is.True(errors.Is(err, ErrTileOutOfRange))

	_, err = enc.OneHot(nil, t2048.Board{{3, 0, 0, 0}})
	is.True(errors.Is(err, ErrTileOutOfRange))

	vec, err := enc.OneHot(nil, t2048.Board{{8, 0, 0, 0}})
	is.NoErr(err)
	is.Equal(len(vec), 4*16)
}

func TestEncodeShape(t *testing.T) {
	is := is.New(t)
	enc := NewEncoder(0) // falls back to the default plane count
	board := t2048.Board{
		{2, 4, 8, 16},
		{0, 2, 0, 0},
		{0, 0, 4, 0},
		{2, 0, 0, 2},
	}
	original := board

	dense, err := enc.Encode(board)
	is.NoErr(err)
	is.Equal([]int(dense.Shape()), []int{CandidateCount, DefaultPlanes, 4, 4})

	data, ok := dense.Data().([]float32)
	is.True(ok)
	is.Equal(len(data), CandidateCount*DefaultPlanes*16)

	var ones float32
	for _, v := range data {
		ones += v
	}
	is.Equal(ones, float32(CandidateCount*16))
	is.Equal(board, original)
}

func TestEncodeRejectsLargeTiles(t *testing.T) {
	is := is.New(t)
	enc := NewEncoder(4)

	_, err := enc.Encode(t2048.Board{{8, 8, 0, 0}}) // merges into 16, outside 4 planes
	is.True(errors.Is(err, ErrTileOutOfRange))
}
