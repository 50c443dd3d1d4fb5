package config

import (
	"fmt"

	"github.com/vancomm/sweeper/internal/mines"
)

const (
	MinBoardSize = 3
	MaxBoardSize = 20
)

var DefaultBoard = Board{Size: 10, MineCount: 10}

type Board struct {
	Size      int `json:"size"`
	MineCount int `json:"mine_count"`
}

// Normalize replaces out-of-range values with defaults. A size outside
// [MinBoardSize, MaxBoardSize] becomes 10; a mine count outside [0, size²]
// becomes 10, or 3 on the smallest board. Every substitution is reported.
func (b Board) Normalize() (Board, []string) {
	var warnings []string

	if b.Size < MinBoardSize || b.Size > MaxBoardSize {
		warnings = append(warnings, fmt.Sprintf(
			"board size must be between %d and %d, got %d; using %d",
			MinBoardSize, MaxBoardSize, b.Size, DefaultBoard.Size,
		))
		b.Size = DefaultBoard.Size
	}

	if b.MineCount < 0 || b.MineCount > b.Size*b.Size {
		fallback := DefaultBoard.MineCount
		if b.Size <= MinBoardSize {
			fallback = 3
		}
		warnings = append(warnings, fmt.Sprintf(
			"mine count must be between 0 and %d, got %d; using %d",
			b.Size*b.Size, b.MineCount, fallback,
		))
		b.MineCount = fallback
	}

	return b, warnings
}

// Validate rejects boards a remote player may not request. Unlike Normalize
// it never substitutes values.
func (b Board) Validate() error {
	if b.Size < MinBoardSize || b.Size > MaxBoardSize {
		return fmt.Errorf(
			"%w: board size must be between %d and %d, got %d",
			mines.ErrInvalidConfiguration, MinBoardSize, MaxBoardSize, b.Size,
		)
	}
	if b.MineCount < 0 || b.MineCount > b.Size*b.Size {
		return fmt.Errorf(
			"%w: mine count must be between 0 and %d, got %d",
			mines.ErrInvalidConfiguration, b.Size*b.Size, b.MineCount,
		)
	}
	return nil
}
