package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/app"
	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/session"
	"github.com/vancomm/sweeper/internal/tui"
)

var (
	configPath string
	size       int
	mineCount  int
)

func init() {
	flag.StringVar(&configPath, "config", "", "config file path")
	flag.StringVar(&configPath, "c", "", "config file path (shorthand)")
	flag.IntVar(&size, "size", 0, "board side length")
	flag.IntVar(&mineCount, "mines", 0, "number of mines")
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "sweep:", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if size > 0 {
		c.Board.Size = size
	}
	if mineCount > 0 {
		c.Board.MineCount = mineCount
	}

	// the terminal belongs to the screen, so entries only reach the log file
	log := logrus.New()
	log.SetOutput(io.Discard)
	if err := app.SetupLogging(log, c); err != nil {
		return err
	}
	mines.Log = log

	board, warnings := c.Board.Normalize()
	for _, w := range warnings {
		log.Warn(w)
	}

	s, err := session.New(board.Size, board.MineCount, mines.NewRand(), log)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("unable to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("unable to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	err = tui.New(screen, s, board, log).Run(ctx)
	cancel()
	if runErr := <-done; runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return err
}
