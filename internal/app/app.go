package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/middleware"
	"github.com/vancomm/sweeper/internal/session"
)

type App struct {
	logger  *logrus.Logger
	config  config.Config
	router  *http.ServeMux
	session *session.Session
	ws      *config.WebSocket
}

// New builds the app around a fresh session. The board parameters are
// normalized first; substitutions are logged as warnings.
func New(logger *logrus.Logger, c config.Config, rnd *rand.Rand) (*App, error) {
	board, warnings := c.Board.Normalize()
	for _, w := range warnings {
		logger.Warn(w)
	}
	c.Board = board

	s, err := session.New(board.Size, board.MineCount, rnd, logger)
	if err != nil {
		return nil, fmt.Errorf("unable to create session: %w", err)
	}

	app := &App{
		logger:  logger,
		config:  c,
		router:  http.NewServeMux(),
		session: s,
		ws:      config.NewWebSocket(c),
	}
	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Cors(a.config.Development()),
		middleware.Logging(a.logger),
	)
}

// Start serves until ctx is cancelled, then shuts the server down within the
// configured timeout.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := a.session.Run(gCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		a.logger.Infof("ready to serve @ %s", a.config.Addr)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), a.config.ShutdownTimeout.Duration,
		)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
