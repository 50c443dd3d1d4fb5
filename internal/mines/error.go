package mines

import "errors"

var (
	// ErrInvalidConfiguration is returned when a board cannot be built from
	// the requested size and mine count.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrOutOfBounds is returned for coordinates outside the board.
	ErrOutOfBounds = errors.New("out of bounds")
)
