package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/session"
)

const (
	title     = "MineSweeper"
	cellWidth = 3
	boardTop  = 3

	msgLost = "You Lose. The game will reset."
	msgWon  = "You Win: all mines have been found! The game will reset."
)

type action int

const (
	actionQuit action = iota
	actionReset
	actionNewGame
)

type button struct {
	label  string
	action action
	x, y   int
}

func (b button) hit(x, y int) bool {
	return y == b.y && b.x <= x && x < b.x+len(b.label)
}

// View draws a session as a grid of buttons and routes mouse and key input
// back to it: left click opens a cell, right click flags it.
type View struct {
	screen  tcell.Screen
	session *session.Session
	logger  *logrus.Logger
	board   config.Board

	snap    session.Snapshot
	final   *session.Outcome // shown until the next input
	message string
	buttons []button
	pressed tcell.ButtonMask
}

func New(screen tcell.Screen, s *session.Session, board config.Board, logger *logrus.Logger) *View {
	return &View{
		screen:  screen,
		session: s,
		board:   board,
		logger:  logger,
	}
}

// Run draws the board and handles input until the player quits or ctx is
// cancelled. The session must already be running.
func (v *View) Run(ctx context.Context) error {
	if err := v.apply(ctx, session.Command{Kind: session.Get}); err != nil {
		return err
	}
	v.draw()

	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		quit, err := v.handle(ctx, ev)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		v.draw()
	}
}

func (v *View) apply(ctx context.Context, cmd session.Command) error {
	snap, err := v.session.Do(ctx, cmd)
	if err != nil {
		return err
	}
	v.snap = snap
	if snap.Outcome != nil {
		v.final = snap.Outcome
		if snap.Outcome.Status == mines.Won {
			v.message = msgWon
		} else {
			v.message = msgLost
		}
	}
	return nil
}

func (v *View) handle(ctx context.Context, ev tcell.Event) (quit bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()

	case *tcell.EventKey:
		if v.dismiss() {
			return false, nil
		}
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true, nil
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true, nil
			case 'r':
				return v.do(ctx, actionReset)
			case 'n':
				return v.do(ctx, actionNewGame)
			}
		}

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons &^ v.pressed
		v.pressed = buttons
		if pressed&(tcell.Button1|tcell.Button2) == 0 {
			return false, nil
		}
		if v.dismiss() {
			return false, nil
		}

		x, y := ev.Position()
		if row, col, ok := v.cellAt(x, y); ok {
			if pressed&tcell.Button1 != 0 {
				return false, v.apply(ctx, session.OpenCmd(row, col))
			}
			return false, v.apply(ctx, session.FlagCmd(row, col))
		}
		if pressed&tcell.Button1 == 0 {
			return false, nil
		}
		for _, b := range v.buttons {
			if b.hit(x, y) {
				return v.do(ctx, b.action)
			}
		}
	}
	return false, nil
}

// dismiss clears a finished board from the screen. It reports whether there
// was one to clear.
func (v *View) dismiss() bool {
	if v.final == nil {
		return false
	}
	v.final = nil
	v.message = ""
	return true
}

func (v *View) do(ctx context.Context, a action) (bool, error) {
	switch a {
	case actionQuit:
		return true, nil
	case actionReset:
		return false, v.apply(ctx, session.Command{Kind: session.Reset})
	case actionNewGame:
		v.logger.WithFields(logrus.Fields{
			"size":  v.board.Size,
			"mines": v.board.MineCount,
		}).Info("new game requested")
		return false, v.apply(ctx, session.NewGameCmd(v.board.Size, v.board.MineCount))
	}
	return false, nil
}

func (v *View) cellAt(x, y int) (row, col int, ok bool) {
	row, col = y-boardTop, x/cellWidth
	if row < 0 || row >= v.snap.Size || col < 0 || col >= v.snap.Size {
		return 0, 0, false
	}
	return row, col, true
}

func (v *View) grid() mines.Grid {
	if v.final != nil {
		return v.final.Grid
	}
	return v.snap.Grid
}

func (v *View) putString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (v *View) draw() {
	v.screen.Clear()

	header := tcell.StyleDefault.Bold(true)
	v.putString(0, 0, title, header)
	v.putString(0, 1, fmt.Sprintf(
		"Wins: %d  Losses: %d  Mines: %d  Flags: %d",
		v.snap.Wins, v.snap.Losses, v.snap.MineCount, v.snap.Flags,
	), tcell.StyleDefault)
	v.putString(0, 2, v.message, tcell.StyleDefault.Foreground(tcell.ColorYellow))

	grid := v.grid()
	for row := range v.snap.Size {
		for col := range v.snap.Size {
			s := grid.At(v.snap.Size, row, col)
			v.putString(col*cellWidth, boardTop+row, " "+s.String()+" ", cellStyle(s))
		}
	}

	v.buttons = v.buttons[:0]
	x, y := 0, boardTop+v.snap.Size+1
	for _, b := range []button{
		{label: "[Quit]", action: actionQuit},
		{label: "[Reset]", action: actionReset},
		{label: "[New Game]", action: actionNewGame},
	} {
		b.x, b.y = x, y
		v.buttons = append(v.buttons, b)
		v.putString(b.x, b.y, b.label, tcell.StyleDefault.Reverse(true))
		x += len(b.label) + 1
	}

	v.screen.Show()
}

var countColors = [...]tcell.Color{
	tcell.ColorDefault,
	tcell.ColorBlue,
	tcell.ColorGreen,
	tcell.ColorRed,
	tcell.ColorNavy,
	tcell.ColorMaroon,
	tcell.ColorTeal,
	tcell.ColorBlack,
	tcell.ColorGray,
}

func cellStyle(s mines.CellState) tcell.Style {
	switch {
	case s.Revealed():
		return tcell.StyleDefault.Foreground(countColors[s])
	case s == mines.ExplodedMine:
		return tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite)
	case s == mines.Flagged, s == mines.CorrectlyFlagged, s == mines.FalselyFlagged:
		return tcell.StyleDefault.Reverse(true).Foreground(tcell.ColorRed)
	default:
		return tcell.StyleDefault.Reverse(true)
	}
}
