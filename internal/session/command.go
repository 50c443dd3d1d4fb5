package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidArgs    = errors.New("invalid arguments")
)

type Kind int8

const (
	Get Kind = iota
	Open
	Flag
	Reset
	NewGame
)

func (k Kind) String() string {
	switch k {
	case Get:
		return "get"
	case Open:
		return "open"
	case Flag:
		return "flag"
	case Reset:
		return "reset"
	case NewGame:
		return "new_game"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// Command is one player action. Row and Col are used by Open and Flag,
// Size and MineCount by NewGame.
type Command struct {
	Kind      Kind
	Row, Col  int
	Size      int
	MineCount int
}

func OpenCmd(row, col int) Command { return Command{Kind: Open, Row: row, Col: col} }
func FlagCmd(row, col int) Command { return Command{Kind: Flag, Row: row, Col: col} }

func NewGameCmd(size, mineCount int) Command {
	return Command{Kind: NewGame, Size: size, MineCount: mineCount}
}

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"r": 0,
	"n": 2,
}

func parseInts(twoStrings []string) (a int, b int, err error) {
	if a, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("%w: first argument must be an int", ErrInvalidArgs)
		return
	}
	if b, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("%w: second argument must be an int", ErrInvalidArgs)
		return
	}
	return
}

// ParseCommand reads the text form of a command:
//
//	g              get the current board
//	o <row> <col>  open a cell
//	f <row> <col>  toggle a flag
//	r              reset the board
//	n <size> <mines>  start a new game
func ParseCommand(c string) (Command, error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf(
			"%w: %q takes %d arguments", ErrInvalidArgs, parts[0], nargs,
		)
	}

	switch parts[0] {
	case "g":
		return Command{Kind: Get}, nil
	case "r":
		return Command{Kind: Reset}, nil
	}

	a, b, err := parseInts(parts[1:])
	if err != nil {
		return Command{}, err
	}
	switch parts[0] {
	case "o":
		return OpenCmd(a, b), nil
	case "f":
		return FlagCmd(a, b), nil
	default:
		return NewGameCmd(a, b), nil
	}
}
