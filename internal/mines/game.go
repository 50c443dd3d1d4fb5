package mines

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Status int8

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", int8(s))
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Over reports whether the board accepts no more moves.
func (s Status) Over() bool {
	return s == Won || s == Lost
}

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Game is a square minesweeper board together with the win/loss tallies of
// the session that plays on it. A Game is not safe for concurrent use.
type Game struct {
	size      int
	mineCount int
	cells     []Cell
	status    Status
	exploded  int // index of the mine that ended the board, -1 if none

	winCount  int
	lossCount int

	rnd *rand.Rand
}

func validate(size, mineCount int) error {
	if size < 1 {
		return fmt.Errorf("%w: board size %d must be at least 1", ErrInvalidConfiguration, size)
	}
	if mineCount < 0 || mineCount > size*size {
		return fmt.Errorf(
			"%w: mine count %d must be between 0 and %d",
			ErrInvalidConfiguration, mineCount, size*size,
		)
	}
	return nil
}

// NewGame builds a size x size board with mineCount randomly placed mines.
// A nil rnd gets a randomly seeded generator.
func NewGame(size, mineCount int, rnd *rand.Rand) (*Game, error) {
	if err := validate(size, mineCount); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewRand()
	}
	g := &Game{
		size:      size,
		mineCount: mineCount,
		rnd:       rnd,
	}
	g.Reset()
	return g, nil
}

// NewGameFromMines builds a board with mines at exactly the given points.
// Later resets place the same number of mines at random.
func NewGameFromMines(size int, mines []Point, rnd *rand.Rand) (*Game, error) {
	if err := validate(size, len(mines)); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewRand()
	}
	g := &Game{
		size: size,
		rnd:  rnd,
	}
	g.clear()
	for _, p := range mines {
		i, err := g.index(p.Row, p.Col)
		if err != nil {
			return nil, err
		}
		if g.cells[i].Mine {
			return nil, fmt.Errorf("%w: duplicate mine at %d:%d", ErrInvalidConfiguration, p.Row, p.Col)
		}
		g.cells[i].Mine = true
	}
	g.mineCount = len(mines)
	g.countNeighbors()
	return g, nil
}

func (g *Game) Size() int      { return g.size }
func (g *Game) MineCount() int { return g.mineCount }
func (g *Game) Status() Status { return g.status }

func (g *Game) WinCount() int  { return g.winCount }
func (g *Game) LossCount() int { return g.lossCount }

// IncrementWinCount records one consumed win. The game never calls it on its
// own; whoever observes the transition does.
func (g *Game) IncrementWinCount() { g.winCount++ }

// IncrementLossCount records one consumed loss.
func (g *Game) IncrementLossCount() { g.lossCount++ }

// Reset lays a fresh board with the same size and mine count. Tallies are kept.
func (g *Game) Reset() {
	g.clear()
	g.layMines()
	g.countNeighbors()
	Log.WithFields(logrus.Fields{
		"size":  g.size,
		"mines": g.mineCount,
	}).Debug("board laid")
}

func (g *Game) clear() {
	g.cells = make([]Cell, g.size*g.size)
	g.status = InProgress
	g.exploded = -1
}

// layMines samples uniformly and retries positions that already hold a mine.
func (g *Game) layMines() {
	for placed := 0; placed < g.mineCount; {
		r, c := g.rnd.IntN(g.size), g.rnd.IntN(g.size)
		i := r*g.size + c
		if !g.cells[i].Mine {
			g.cells[i].Mine = true
			placed++
		}
	}
}

func (g *Game) countNeighbors() {
	for i := range g.cells {
		n := 0
		g.forEachNeighbor(i, func(j int) {
			if g.cells[j].Mine {
				n++
			}
		})
		g.cells[i].NeighborMines = n
	}
}

func (g *Game) forEachNeighbor(i int, fn func(j int)) {
	row, col := i/g.size, i%g.size
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := row+dr, col+dc
			if (dr != 0 || dc != 0) &&
				0 <= r && r < g.size &&
				0 <= c && c < g.size {
				fn(r*g.size + c)
			}
		}
	}
}

func (g *Game) index(row, col int) (int, error) {
	if row < 0 || row >= g.size || col < 0 || col >= g.size {
		return 0, fmt.Errorf(
			"%w: %d:%d on a %dx%d board", ErrOutOfBounds, row, col, g.size, g.size,
		)
	}
	return row*g.size + col, nil
}

// ValidatePoint reports whether row, col lies on the board.
func (g *Game) ValidatePoint(row, col int) bool {
	_, err := g.index(row, col)
	return err == nil
}

// Cell returns a copy of the cell at row, col.
func (g *Game) Cell(row, col int) (Cell, error) {
	i, err := g.index(row, col)
	if err != nil {
		return Cell{}, err
	}
	return g.cells[i], nil
}

// Select exposes the cell at row, col. Flagged cells are left alone. Exposing
// a mine loses the board; exposing a blank cell floods outwards.
func (g *Game) Select(row, col int) error {
	i, err := g.index(row, col)
	if err != nil {
		return err
	}
	if g.status.Over() || g.cells[i].Flagged {
		return nil
	}

	g.cells[i].Exposed = true

	if g.cells[i].Mine {
		g.status = Lost
		g.exploded = i
		Log.WithFields(logrus.Fields{"row": row, "col": col}).Debug("mine hit")
		return nil
	}

	g.reveal(i)
	g.evaluateStatus()
	return nil
}

// reveal floods exposure out of start across connected blank cells. Cells with
// a nonzero count are exposed but not expanded; flagged cells stay hidden.
func (g *Game) reveal(start int) {
	visited := make(map[int]struct{})
	visited[start] = struct{}{}
	todo := []int{start}

	for len(todo) > 0 {
		i := todo[0]
		todo = todo[1:]

		if !g.cells[i].Blank() {
			continue
		}
		g.forEachNeighbor(i, func(j int) {
			if g.cells[j].Flagged {
				return
			}
			g.cells[j].Exposed = true
			if _, ok := visited[j]; ok || !g.cells[j].Blank() {
				return
			}
			visited[j] = struct{}{}
			todo = append(todo, j)
		})
	}
}

// ToggleFlag flips the flag on a hidden cell. Exposed cells cannot be flagged.
func (g *Game) ToggleFlag(row, col int) error {
	i, err := g.index(row, col)
	if err != nil {
		return err
	}
	if g.status.Over() || g.cells[i].Exposed {
		return nil
	}
	g.cells[i].Flagged = !g.cells[i].Flagged
	g.evaluateStatus()
	return nil
}

// evaluateStatus decides between InProgress and Won. The board is won when
// every safe cell is exposed, or when the flags sit on exactly the mines.
func (g *Game) evaluateStatus() {
	exposedAll, flaggedExactly := true, true
	for _, c := range g.cells {
		if !c.Mine && !c.Exposed {
			exposedAll = false
		}
		if c.Mine != c.Flagged {
			flaggedExactly = false
		}
	}
	if exposedAll || flaggedExactly {
		g.status = Won
		Log.WithFields(logrus.Fields{
			"exposed_all":     exposedAll,
			"flagged_exactly": flaggedExactly,
		}).Debug("board won")
	} else {
		g.status = InProgress
	}
}

func (g *Game) FlagCount() (n int) {
	for _, c := range g.cells {
		if c.Flagged {
			n++
		}
	}
	return
}

func (g *Game) ExposedCount() (n int) {
	for _, c := range g.cells {
		if c.Exposed {
			n++
		}
	}
	return
}

// PlayerGrid renders what the player may see. While the board is in progress
// hidden cells stay Unknown; once it is over every mine is shown and wrong
// flags are marked.
func (g *Game) PlayerGrid() Grid {
	grid := make(Grid, len(g.cells))
	over := g.status.Over()
	for i, c := range g.cells {
		switch {
		case over && c.Mine && i == g.exploded:
			grid[i] = ExplodedMine
		case over && c.Mine && c.Flagged:
			grid[i] = CorrectlyFlagged
		case over && c.Mine:
			grid[i] = UnflaggedMine
		case over && c.Flagged:
			grid[i] = FalselyFlagged
		case c.Flagged:
			grid[i] = Flagged
		case c.Exposed:
			grid[i] = CellState(c.NeighborMines)
		default:
			grid[i] = Unknown
		}
	}
	return grid
}

// String renders the player view as text.
func (g *Game) String() string {
	return g.PlayerGrid().ToString(g.size)
}
