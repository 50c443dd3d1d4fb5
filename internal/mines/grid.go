package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is what the player is allowed to see of a cell.
type CellState int8

const (
	Unknown          CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
	/*
	 * 0 to 8 mean the cell is exposed and carry its neighbor mine count.
	 *
	 * 64 and up only appear once the board is over:
	 *
	 * 	- 64 a mine the player had flagged.
	 * 	- 65 the mine the player stepped on.
	 * 	- 66 a flag placed on a safe cell.
	 * 	- 67 a mine the player never flagged.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "."
	case s == Flagged, s == CorrectlyFlagged:
		return "F"
	case s == FalselyFlagged:
		return "x"
	case s == ExplodedMine:
		return "X"
	case s == UnflaggedMine:
		return "*"
	case s == 0:
		return " "
	case 0 < s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Revealed reports whether the state shows a count, i.e. the cell is exposed
// and safe.
func (s CellState) Revealed() bool {
	return 0 <= s && s <= 8
}

// Grid holds the player view of a board in row-major order.
type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// At returns the state at row, col for a grid of the given width.
func (g Grid) At(width, row, col int) CellState {
	return g[row*width+col]
}
