package session

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/mines"
)

var ErrStopped = errors.New("session stopped")

type result struct {
	snap Snapshot
	err  error
}

type request struct {
	cmd   Command
	reply chan result
}

// Session owns a single game and applies commands to it one at a time from
// the goroutine running Run. Views talk to it through Do.
//
// When a move ends the board, the session records the outcome, bumps the
// matching tally exactly once and lays a fresh board. The final board is
// returned in Snapshot.Outcome.
type Session struct {
	logger   *logrus.Logger
	rnd      *rand.Rand
	game     *mines.Game
	requests chan request
	done     chan struct{}
}

func New(size, mineCount int, rnd *rand.Rand, logger *logrus.Logger) (*Session, error) {
	if rnd == nil {
		rnd = mines.NewRand()
	}
	game, err := mines.NewGame(size, mineCount, rnd)
	if err != nil {
		return nil, err
	}
	s := &Session{
		logger:   logger,
		rnd:      rnd,
		game:     game,
		requests: make(chan request),
		done:     make(chan struct{}),
	}
	return s, nil
}

// Run serves commands until ctx is cancelled. It must be called exactly once.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	s.logger.WithFields(logrus.Fields{
		"size":  s.game.Size(),
		"mines": s.game.MineCount(),
	}).Info("session started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session stopped")
			return ctx.Err()
		case req := <-s.requests:
			snap, err := s.apply(req.cmd)
			req.reply <- result{snap, err}
		}
	}
}

// Do submits cmd and waits for the resulting snapshot.
func (s *Session) Do(ctx context.Context, cmd Command) (Snapshot, error) {
	reply := make(chan result, 1)
	select {
	case s.requests <- request{cmd, reply}:
	case <-s.done:
		return Snapshot{}, ErrStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	select {
	case res := <-reply:
		return res.snap, res.err
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

func (s *Session) apply(cmd Command) (Snapshot, error) {
	log := s.logger.WithField("command", cmd.Kind.String())

	var err error
	switch cmd.Kind {
	case Get:
	case Open:
		err = s.game.Select(cmd.Row, cmd.Col)
	case Flag:
		err = s.game.ToggleFlag(cmd.Row, cmd.Col)
	case Reset:
		s.game.Reset()
	case NewGame:
		var game *mines.Game
		game, err = mines.NewGame(cmd.Size, cmd.MineCount, s.rnd)
		if err == nil {
			s.game = game
			log.WithFields(logrus.Fields{
				"size":  cmd.Size,
				"mines": cmd.MineCount,
			}).Info("new game")
		}
	default:
		err = ErrUnknownCommand
	}
	if err != nil {
		log.WithError(err).Debug("command rejected")
		return Snapshot{}, err
	}

	status := s.game.Status()
	if !status.Over() {
		return newSnapshot(s.game), nil
	}

	outcome := &Outcome{
		Status: status,
		Grid:   s.game.PlayerGrid(),
	}
	if status == mines.Won {
		s.game.IncrementWinCount()
	} else {
		s.game.IncrementLossCount()
	}
	log.WithFields(logrus.Fields{
		"outcome": status.String(),
		"wins":    s.game.WinCount(),
		"losses":  s.game.LossCount(),
	}).Info("game over")

	s.game.Reset()

	snap := newSnapshot(s.game)
	snap.Outcome = outcome
	return snap, nil
}
