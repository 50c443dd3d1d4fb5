package handlers

import (
	"errors"
	"fmt"

	"github.com/gorilla/schema"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/session"
)

var ErrInvalidMove = errors.New("invalid move")

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type NewGameDTO struct {
	Size      int `schema:"size,required"`
	MineCount int `schema:"mine_count,required"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (dto NewGameDTO) Command() (session.Command, error) {
	return checkCommand(session.NewGameCmd(dto.Size, dto.MineCount))
}

// checkCommand bounds the boards that remote players may start.
func checkCommand(cmd session.Command) (session.Command, error) {
	if cmd.Kind != session.NewGame {
		return cmd, nil
	}
	board := config.Board{Size: cmd.Size, MineCount: cmd.MineCount}
	if err := board.Validate(); err != nil {
		return session.Command{}, err
	}
	return cmd, nil
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	Row  int    `schema:"row,required"`
	Col  int    `schema:"col,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

func (dto MoveDTO) Command() (session.Command, error) {
	switch dto.Move {
	case "open":
		return session.OpenCmd(dto.Row, dto.Col), nil
	case "flag":
		return session.FlagCmd(dto.Row, dto.Col), nil
	default:
		return session.Command{}, fmt.Errorf("%w: %q", ErrInvalidMove, dto.Move)
	}
}
