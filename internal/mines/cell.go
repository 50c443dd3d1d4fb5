package mines

// Cell is a snapshot of one board position.
type Cell struct {
	Mine          bool `json:"mine"`
	Flagged       bool `json:"flagged"`
	Exposed       bool `json:"exposed"`
	NeighborMines int  `json:"neighbor_mines"`
}

// Blank reports whether the cell is a non-mine with no mined neighbors.
// Exposing a blank cell floods into its neighbors.
func (c Cell) Blank() bool {
	return !c.Mine && c.NeighborMines == 0
}
