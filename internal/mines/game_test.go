package mines

import (
	"errors"
	"io"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log.SetOutput(io.Discard)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func countCells(g *Game, pred func(Cell) bool) (n int) {
	for r := range g.Size() {
		for c := range g.Size() {
			cell, err := g.Cell(r, c)
			if err != nil {
				panic(err)
			}
			if pred(cell) {
				n++
			}
		}
	}
	return
}

func isMine(c Cell) bool    { return c.Mine }
func isExposed(c Cell) bool { return c.Exposed }

func TestNewGameLaysExactMineCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		size      int
		mineCount int
	}{
		{name: "1x1(0)", size: 1, mineCount: 0},
		{name: "1x1(1)", size: 1, mineCount: 1},
		{name: "3x3(9)", size: 3, mineCount: 9},
		{name: "9x9(10)", size: 9, mineCount: 10},
		{name: "16x16(40)", size: 16, mineCount: 40},
		{name: "20x20(399)", size: 20, mineCount: 399},
	}

	r := newRand()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g, err := NewGame(test.size, test.mineCount, r)
			require.NoError(t, err)
			assert.Equal(t, test.mineCount, countCells(g, isMine))
			assert.Zero(t, countCells(g, isExposed))
			assert.Equal(t, InProgress, g.Status())
		})
	}
}

func TestNewGameRejectsInvalidConfiguration(t *testing.T) {
	tests := []struct {
		size, mineCount int
	}{
		{0, 0},
		{-1, 0},
		{3, -1},
		{3, 10},
	}
	for _, test := range tests {
		g, err := NewGame(test.size, test.mineCount, newRand())
		assert.Nil(t, g)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration), "%d/%d: %v", test.size, test.mineCount, err)
	}
}

func TestNewGameFromMinesRejectsBadLayouts(t *testing.T) {
	_, err := NewGameFromMines(3, []Point{{0, 0}, {0, 0}}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewGameFromMines(3, []Point{{3, 0}}, nil)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestNeighborCounts(t *testing.T) {
	g, err := NewGameFromMines(3, []Point{{0, 0}, {2, 2}}, newRand())
	require.NoError(t, err)

	want := [3][3]int{
		{0, 1, 0},
		{1, 2, 1},
		{0, 1, 0},
	}
	for r := range 3 {
		for c := range 3 {
			cell, err := g.Cell(r, c)
			require.NoError(t, err)
			assert.Equal(t, want[r][c], cell.NeighborMines, "cell %d:%d", r, c)
		}
	}
}

func TestNeighborCountsMatchBruteForce(t *testing.T) {
	g, err := NewGame(12, 30, newRand())
	require.NoError(t, err)

	for r := range 12 {
		for c := range 12 {
			want := 0
			for rr := r - 1; rr <= r+1; rr++ {
				for cc := c - 1; cc <= c+1; cc++ {
					if rr == r && cc == c {
						continue
					}
					if n, err := g.Cell(rr, cc); err == nil && n.Mine {
						want++
					}
				}
			}
			cell, _ := g.Cell(r, c)
			assert.Equal(t, want, cell.NeighborMines, "cell %d:%d", r, c)
		}
	}
}

func TestSelectFlaggedCellIsIgnored(t *testing.T) {
	g, err := NewGameFromMines(3, []Point{{1, 1}}, newRand())
	require.NoError(t, err)

	require.NoError(t, g.ToggleFlag(1, 1))
	require.NoError(t, g.Select(1, 1))

	cell, _ := g.Cell(1, 1)
	assert.False(t, cell.Exposed)
	assert.True(t, cell.Flagged)
	assert.Equal(t, Won, g.Status(), "flagging the only mine wins")

	g, err = NewGameFromMines(3, []Point{{1, 1}}, newRand())
	require.NoError(t, err)
	require.NoError(t, g.ToggleFlag(0, 0))
	require.NoError(t, g.Select(0, 0))

	cell, _ = g.Cell(0, 0)
	assert.False(t, cell.Exposed)
	assert.Equal(t, InProgress, g.Status())
}

func TestSelectMineLoses(t *testing.T) {
	// 0 0 0 0
	// 0 0 0 0
	// 0 0 0 0
	// 0 0 0 M
	g, err := NewGameFromMines(4, []Point{{3, 3}}, newRand())
	require.NoError(t, err)

	require.NoError(t, g.Select(3, 3))

	assert.Equal(t, Lost, g.Status())
	assert.Equal(t, 1, countCells(g, isExposed), "no flood from a mine")

	// the board is over; nothing else changes
	require.NoError(t, g.Select(0, 0))
	require.NoError(t, g.ToggleFlag(0, 1))
	assert.Equal(t, 1, countCells(g, isExposed))
	assert.Zero(t, g.FlagCount())
	assert.Equal(t, Lost, g.Status())
}

func TestFloodFillEmptyBoard(t *testing.T) {
	for r := range 4 {
		for c := range 4 {
			g, err := NewGame(4, 0, newRand())
			require.NoError(t, err)
			require.NoError(t, g.Select(r, c))
			assert.Equal(t, 16, g.ExposedCount())
			assert.Equal(t, Won, g.Status())
		}
	}
}

func TestFloodFillStopsAtNumbers(t *testing.T) {
	// column 2 is a wall of mines:
	//
	// 0 2 M 2 0
	// 0 3 M 3 0
	// 0 3 M 3 0
	// 0 3 M 3 0
	// 0 2 M 2 0
	mines := []Point{{0, 2}, {1, 2}, {2, 2}, {3, 2}, {4, 2}}
	g, err := NewGameFromMines(5, mines, newRand())
	require.NoError(t, err)

	require.NoError(t, g.Select(2, 0))

	for r := range 5 {
		for c := range 5 {
			cell, _ := g.Cell(r, c)
			assert.Equal(t, c < 2, cell.Exposed, "cell %d:%d", r, c)
		}
	}
	assert.Equal(t, InProgress, g.Status())

	require.NoError(t, g.Select(0, 4))
	assert.Equal(t, Won, g.Status(), "every safe cell is exposed")
	for _, p := range mines {
		cell, _ := g.Cell(p.Row, p.Col)
		assert.False(t, cell.Exposed)
		assert.False(t, cell.Flagged)
	}
}

func TestFloodFillSkipsFlags(t *testing.T) {
	g, err := NewGameFromMines(4, []Point{{3, 3}}, newRand())
	require.NoError(t, err)

	require.NoError(t, g.ToggleFlag(0, 1))
	require.NoError(t, g.Select(0, 0))

	flagged, _ := g.Cell(0, 1)
	assert.False(t, flagged.Exposed)
	assert.True(t, flagged.Flagged)

	// the flood still reaches around the flag
	far, _ := g.Cell(0, 3)
	assert.True(t, far.Exposed)
	assert.Equal(t, 14, g.ExposedCount())
	assert.Equal(t, InProgress, g.Status())
}

func TestSelectNumberIsLeaf(t *testing.T) {
	g, err := NewGameFromMines(4, []Point{{3, 3}}, newRand())
	require.NoError(t, err)

	require.NoError(t, g.Select(2, 2))
	assert.Equal(t, 1, g.ExposedCount())
	assert.Equal(t, InProgress, g.Status())
}

func TestWinByFlagging(t *testing.T) {
	mines := []Point{{0, 0}, {2, 1}}
	g, err := NewGameFromMines(3, mines, newRand())
	require.NoError(t, err)

	require.NoError(t, g.ToggleFlag(0, 0))
	assert.Equal(t, InProgress, g.Status())

	// a false flag blocks the win
	require.NoError(t, g.ToggleFlag(1, 1))
	require.NoError(t, g.ToggleFlag(2, 1))
	assert.Equal(t, InProgress, g.Status())

	require.NoError(t, g.ToggleFlag(1, 1))
	assert.Equal(t, Won, g.Status())
	assert.Zero(t, g.ExposedCount())
}

func TestToggleFlagTwiceRestores(t *testing.T) {
	g, err := NewGameFromMines(3, []Point{{0, 0}, {1, 1}}, newRand())
	require.NoError(t, err)

	before, _ := g.Cell(2, 2)
	require.NoError(t, g.ToggleFlag(2, 2))
	mid, _ := g.Cell(2, 2)
	require.NoError(t, g.ToggleFlag(2, 2))
	after, _ := g.Cell(2, 2)

	assert.NotEqual(t, before.Flagged, mid.Flagged)
	assert.Equal(t, before, after)
}

func TestToggleFlagOnExposedCellIsIgnored(t *testing.T) {
	g, err := NewGameFromMines(3, []Point{{0, 0}}, newRand())
	require.NoError(t, err)

	require.NoError(t, g.Select(1, 1))
	require.NoError(t, g.ToggleFlag(1, 1))

	cell, _ := g.Cell(1, 1)
	assert.True(t, cell.Exposed)
	assert.False(t, cell.Flagged)
}

func TestOutOfBoundsLeavesBoardUnchanged(t *testing.T) {
	g, err := NewGame(5, 5, newRand())
	require.NoError(t, err)
	require.NoError(t, g.ToggleFlag(0, 0))
	before := g.PlayerGrid()

	points := []Point{{-1, 0}, {0, -1}, {5, 0}, {0, 5}, {100, 100}}
	for _, p := range points {
		assert.ErrorIs(t, g.Select(p.Row, p.Col), ErrOutOfBounds)
		assert.ErrorIs(t, g.ToggleFlag(p.Row, p.Col), ErrOutOfBounds)
		_, err := g.Cell(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		assert.False(t, g.ValidatePoint(p.Row, p.Col))
	}

	assert.Equal(t, before, g.PlayerGrid())
	assert.Equal(t, InProgress, g.Status())
}

func TestResetKeepsTallies(t *testing.T) {
	g, err := NewGame(6, 8, newRand())
	require.NoError(t, err)

	g.IncrementWinCount()
	g.IncrementLossCount()
	g.IncrementLossCount()

	for r := range 6 {
		require.NoError(t, g.ToggleFlag(r, 0))
		require.NoError(t, g.Select(r, 5))
	}

	g.Reset()

	assert.Equal(t, 1, g.WinCount())
	assert.Equal(t, 2, g.LossCount())
	assert.Equal(t, InProgress, g.Status())
	assert.Zero(t, g.ExposedCount())
	assert.Zero(t, g.FlagCount())
	assert.Equal(t, 8, countCells(g, isMine))
}

func TestTalliesAreNotTouchedByMoves(t *testing.T) {
	g, err := NewGameFromMines(3, []Point{{0, 0}}, newRand())
	require.NoError(t, err)

	require.NoError(t, g.Select(0, 0))
	assert.Equal(t, Lost, g.Status())
	assert.Zero(t, g.LossCount())
	assert.Zero(t, g.WinCount())
}

func TestPlayerGrid(t *testing.T) {
	g, err := NewGameFromMines(3, []Point{{0, 0}, {2, 2}}, newRand())
	require.NoError(t, err)

	require.NoError(t, g.ToggleFlag(2, 2))
	require.NoError(t, g.ToggleFlag(0, 2))
	require.NoError(t, g.Select(1, 1))

	assert.Equal(t, Grid{
		Unknown, Unknown, Flagged,
		Unknown, 2, Unknown,
		Unknown, Unknown, Flagged,
	}, g.PlayerGrid())

	require.NoError(t, g.Select(0, 0))
	require.Equal(t, Lost, g.Status())

	assert.Equal(t, Grid{
		ExplodedMine, Unknown, FalselyFlagged,
		Unknown, 2, Unknown,
		Unknown, Unknown, CorrectlyFlagged,
	}, g.PlayerGrid())

	assert.Equal(t, "X . x \n. 2 . \n. . F \n", g.String())
}
