package session

import "github.com/vancomm/sweeper/internal/mines"

// Outcome is the final board of a game that was just won or lost.
type Outcome struct {
	Status mines.Status `json:"status"`
	Grid   mines.Grid   `json:"grid"`
}

// Snapshot is everything a view needs to draw the session.
type Snapshot struct {
	Size      int          `json:"size"`
	MineCount int          `json:"mine_count"`
	Status    mines.Status `json:"status"`
	Grid      mines.Grid   `json:"grid"`
	Flags     int          `json:"flags"`
	Wins      int          `json:"wins"`
	Losses    int          `json:"losses"`
	Outcome   *Outcome     `json:"outcome,omitempty"`
}

func newSnapshot(g *mines.Game) Snapshot {
	return Snapshot{
		Size:      g.Size(),
		MineCount: g.MineCount(),
		Status:    g.Status(),
		Grid:      g.PlayerGrid(),
		Flags:     g.FlagCount(),
		Wins:      g.WinCount(),
		Losses:    g.LossCount(),
	}
}

// At returns the visible state at row, col.
func (s Snapshot) At(row, col int) mines.CellState {
	return s.Grid.At(s.Size, row, col)
}
